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
	"fmt"

	"github.com/idr/idroi/core/awsutil"
)

func Example_getCredentialsFromSecretCache() {
	secMan := &awsutil.MockSecretsManager{Secrets: map[string]string{
		"idr/omero-login": `{"host": "idr.openmicroscopy.org", "username": "importer", "password": "secret123"}`,
	}}

	info, err := GetCredentialsFromSecretCache(secMan, "idr/omero-login", ConnectInfo{Host: "localhost", Port: 443, User: "me", Group: "3"})
	fmt.Printf("%v|%+v\n", err, info)

	_, err = GetCredentialsFromSecretCache(secMan, "idr/missing", ConnectInfo{})
	fmt.Println(err != nil)

	// Output:
	// <nil>|{Host:idr.openmicroscopy.org Port:443 User:importer Pass:secret123 Group:3}
	// true
}
