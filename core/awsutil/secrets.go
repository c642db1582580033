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

package awsutil

import (
	"encoding/json"

	"github.com/aws/aws-sdk-go/service/secretsmanager/secretsmanageriface"
	"github.com/aws/aws-secretsmanager-caching-go/secretcache"
	"github.com/pkg/errors"
)

// ReadSecretJSON - Reads a JSON secret string through the secrets manager cache and unmarshals it into out.
// Both the mongo connection info and the OMERO login are stored this way
func ReadSecretJSON(secMan secretsmanageriface.SecretsManagerAPI, secretName string, out interface{}) error {
	seccache, err := secretcache.New(func(c *secretcache.Cache) { c.Client = secMan })
	if err != nil {
		return err
	}

	secretValue, err := seccache.GetSecretString(secretName)
	if err != nil {
		return errors.Wrapf(err, "failed to read secret: %v", secretName)
	}

	err = json.Unmarshal([]byte(secretValue), out)
	if err != nil {
		return errors.Wrapf(err, "failed to parse secret: %v", secretName)
	}

	return nil
}
