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
	"fmt"
	"net/http"
)

// Error represents an error that came back from (or is destined for) an HTTP exchange. It provides
// the HTTP status code and embeds the built-in error interface.
type Error interface {
	error
	Status() int
}

// StatusError represents an error with an associated HTTP status code.
type StatusError struct {
	Code int
	Err  error
}

// Allows StatusError to satisfy the error interface.
func (se StatusError) Error() string {
	return se.Err.Error()
}

// Status - Returns our HTTP status code.
func (se StatusError) Status() int {
	return se.Code
}

// Cause - So errors.Cause can see through us
func (se StatusError) Cause() error {
	return se.Err
}

func MakeNotFoundError(ID string) StatusError {
	return StatusError{
		Code: http.StatusNotFound,
		Err:  fmt.Errorf("%v not found", ID),
	}
}

func MakeUnauthorisedError(err error) StatusError {
	return StatusError{
		Code: http.StatusUnauthorized,
		Err:  err,
	}
}

// Mainly so we don't get a bunch of errors for not using field names in StatusError{}
func MakeStatusError(code int, err error) StatusError {
	return StatusError{
		Code: code,
		Err:  err,
	}
}

// StatusOf - Finds the HTTP status buried in err (which may have been wrapped), or 0 if there is none
func StatusOf(err error) int {
	for err != nil {
		if se, ok := err.(Error); ok {
			return se.Status()
		}

		cause, ok := err.(interface{ Cause() error })
		if !ok {
			break
		}
		next := cause.Cause()
		if next == err {
			break
		}
		err = next
	}

	return 0
}

// IsNotFound - Is this (possibly wrapped) error an HTTP 404?
func IsNotFound(err error) bool {
	return StatusOf(err) == http.StatusNotFound
}

// IsUnauthorised - Is this (possibly wrapped) error an HTTP 401 or 403?
func IsUnauthorised(err error) bool {
	code := StatusOf(err)
	return code == http.StatusUnauthorized || code == http.StatusForbidden
}
