// Licensed to NASA JPL under one or more contributor
// license agreements. See the NOTICE file distributed with
// this work for additional information regarding copyright
// ownership. NASA JPL licenses this file to you under
// the Apache License, Version 2.0 (the "License"); you may
// not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing,
// software distributed under the License is distributed on an
// "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY
// KIND, either express or implied.  See the License for the
// specific language governing permissions and limitations
// under the License.

package omero

import (
	"github.com/aws/aws-sdk-go/service/secretsmanager/secretsmanageriface"
	"github.com/idr/idroi/core/awsutil"
)

type loginSecret struct {
	Host     string `json:"host"`
	Port     int    `json:"port"`
	Username string `json:"username"`
	Password string `json:"password"`
}

// GetCredentialsFromSecretCache - fills in whatever the secret has over the top of info. Anything the
// secret leaves blank keeps its value from info
func GetCredentialsFromSecretCache(secMan secretsmanageriface.SecretsManagerAPI, secretName string, info ConnectInfo) (ConnectInfo, error) {
	var secret loginSecret
	if err := awsutil.ReadSecretJSON(secMan, secretName, &secret); err != nil {
		return info, err
	}

	if len(secret.Host) > 0 {
		info.Host = secret.Host
	}
	if secret.Port > 0 {
		info.Port = secret.Port
	}
	if len(secret.Username) > 0 {
		info.User = secret.Username
	}
	if len(secret.Password) > 0 {
		info.Pass = secret.Password
	}

	return info, nil
}
