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

package utils

import (
	"golang.org/x/exp/constraints"
	"golang.org/x/exp/slices"
)

// Simple Go helper functions
// stuff that you'd expect to be part of the std lib but aren't, eg functions to search for strings
// in string arrays...

func ItemInSlice[T comparable](a T, list []T) bool {
	for _, b := range list {
		if b == a {
			return true
		}
	}
	return false
}

func GetMapKeys[K comparable, V any](theMap map[K]V) []K {
	result := make([]K, 0, len(theMap))

	for key := range theMap {
		result = append(result, key)
	}

	return result
}

// GetSortedMapKeys - Map keys in ascending order, so iterating over a map can be repeatable
func GetSortedMapKeys[K constraints.Ordered, V any](theMap map[K]V) []K {
	result := GetMapKeys(theMap)
	slices.Sort(result)
	return result
}

