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

package mongoDBConnection

import (
	"fmt"
	"os"
	"path/filepath"
)

func Example_getDatabaseName() {
	fmt.Println(GetDatabaseName("idroi", "prod"))
	fmt.Println(GetDatabaseName("idroi", "unittest"))

	// Output:
	// idroi-prod
	// idroi-unittest
}

func Example_getCustomTLSConfig() {
	_, err := getCustomTLSConfig(filepath.Join(os.TempDir(), "no-such-bundle.pem"))
	fmt.Println(os.IsNotExist(err))

	dir, _ := os.MkdirTemp("", "tlsconfig")
	defer os.RemoveAll(dir)

	badPem := filepath.Join(dir, "bad.pem")
	os.WriteFile(badPem, []byte("not a certificate"), 0644)
	_, err = getCustomTLSConfig(badPem)
	fmt.Println(err)

	// Output:
	// true
	// Failed parsing pem file
}
