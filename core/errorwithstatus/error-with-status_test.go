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

package errorwithstatus

import (
	"errors"
	"fmt"
	"net/http"

	pkgerrors "github.com/pkg/errors"
)

func Example_statusOf() {
	notFound := MakeNotFoundError("Image 42")
	wrapped := pkgerrors.Wrap(notFound, "failed to get image")
	wrappedTwice := pkgerrors.Wrapf(wrapped, "failed to save ROIs for image %v", 42)

	fmt.Println(notFound.Error())
	fmt.Println(StatusOf(notFound), IsNotFound(notFound))
	fmt.Println(StatusOf(wrappedTwice), IsNotFound(wrappedTwice))
	fmt.Println(StatusOf(errors.New("plain")), IsNotFound(errors.New("plain")))
	fmt.Println(IsUnauthorised(MakeStatusError(http.StatusForbidden, errors.New("nope"))))
	fmt.Println(IsUnauthorised(MakeUnauthorisedError(errors.New("login first"))))

	// Output:
	// Image 42 not found
	// 404 true
	// 404 true
	// 0 false
	// true
	// true
}
