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

package h5table

import (
	"github.com/idr/idroi/core/utils"
)

// Index - secondary index of a table on an integer column, so rows for one key can be found without a scan
type Index struct {
	Column string
	rows   map[int64][]int
}

// BuildIndex - one pass over the table, row order is preserved within each key
func BuildIndex(t *Table, col string) (Index, error) {
	idx := Index{Column: col, rows: map[int64][]int{}}

	for c, row := range t.Rows {
		key, err := row.Int(col)
		if err != nil {
			return Index{}, err
		}
		idx.rows[key] = append(idx.rows[key], c)
	}

	return idx, nil
}

// Rows - row numbers with the given key, nil if none
func (i Index) Rows(key int64) []int {
	return i.rows[key]
}

// Keys - all distinct keys, ascending
func (i Index) Keys() []int64 {
	return utils.GetSortedMapKeys(i.rows)
}

// Count - how many rows had the key
func (i Index) Count(key int64) int {
	return len(i.rows[key])
}
