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

package position

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/pkg/errors"
)

// Key - join key between the remote image names and the rows of the HDF5 Images table:
// "{plate} | {well} | {field}", well normalised
type Key string

const keySeparator = " | "

// ErrMalformedWell - well code isn't a letter followed by digits
var ErrMalformedWell = errors.New("malformed well code")

// Remote image names look like: "PlateX [Well A03, Field 2]"
var imageNameRegex = regexp.MustCompile(`^(.+) \[Well ([^,\]]+), Field ([^\]]+)\]$`)

var wellRegex = regexp.MustCompile(`^([A-Za-z])([0-9]+)$`)

// NormaliseWell - strips a single leading zero from the row number, A03 -> A3, B10 -> B10, C003 -> C03
func NormaliseWell(well string) (string, error) {
	parts := wellRegex.FindStringSubmatch(strings.TrimSpace(well))
	if parts == nil {
		return "", errors.Wrapf(ErrMalformedWell, "%q", well)
	}

	digits := parts[2]
	if len(digits) > 1 && digits[0] == '0' {
		digits = digits[1:]
	}

	return parts[1] + digits, nil
}

// MakeKey - builds the key from its parts, normalising the well
func MakeKey(plate string, well string, field string) (Key, error) {
	normWell, err := NormaliseWell(well)
	if err != nil {
		return "", err
	}
	return Key(strings.Join([]string{strings.TrimSpace(plate), normWell, strings.TrimSpace(field)}, keySeparator)), nil
}

// ParseImageName - reads the plate, well and field out of an image name and returns its key
func ParseImageName(name string) (Key, error) {
	parts := imageNameRegex.FindStringSubmatch(strings.TrimSpace(name))
	if parts == nil {
		return "", fmt.Errorf("image name %q does not look like \"{plate} [Well {well}, Field {field}]\"", name)
	}
	return MakeKey(parts[1], parts[2], parts[3])
}

// Parts - splits a key back into plate, well and field
func (k Key) Parts() (string, string, string) {
	parts := strings.SplitN(string(k), keySeparator, 3)
	for len(parts) < 3 {
		parts = append(parts, "")
	}
	return parts[0], parts[1], parts[2]
}

func (k Key) String() string {
	return string(k)
}
