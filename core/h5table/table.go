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
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/idr/idroi/core/utils"
	"github.com/pkg/errors"
)

// Source - something that can hand out named tables. The HDF5 file is the real one, tests use MemorySource
type Source interface {
	ReadTable(name string) (*Table, error)
	Close() error
}

// Row - one record of a compound table, keyed by member (column) name
type Row map[string]interface{}

// Table - all rows of one compound dataset
type Table struct {
	Name string
	Rows []Row
}

// ErrNoSuchColumn - the row has no member with the requested name
var ErrNoSuchColumn = errors.New("no such column")

// ErrNoSuchTable - the source has no dataset with the requested name
var ErrNoSuchTable = errors.New("no such table")

func (r Row) get(col string) (interface{}, error) {
	v, ok := r[col]
	if !ok {
		return nil, errors.Wrapf(ErrNoSuchColumn, "%q", col)
	}
	return v, nil
}

// Int - reads a column as an integer. HDF5 writers aren't consistent about widths, so any numeric type is accepted
// as long as it holds a whole number
func (r Row) Int(col string) (int64, error) {
	v, err := r.get(col)
	if err != nil {
		return 0, err
	}

	switch n := v.(type) {
	case int:
		return int64(n), nil
	case int8:
		return int64(n), nil
	case int16:
		return int64(n), nil
	case int32:
		return int64(n), nil
	case int64:
		return n, nil
	case uint:
		return int64(n), nil
	case uint8:
		return int64(n), nil
	case uint16:
		return int64(n), nil
	case uint32:
		return int64(n), nil
	case uint64:
		return int64(n), nil
	case float32, float64:
		f, _ := r.Float(col)
		if f != math.Trunc(f) {
			return 0, fmt.Errorf("column %q value %v is not a whole number", col, f)
		}
		return int64(f), nil
	case string, []byte:
		s, _ := r.String(col)
		i, err := strconv.ParseInt(s, 10, 64)
		if err != nil {
			return 0, errors.Wrapf(err, "column %q", col)
		}
		return i, nil
	}

	return 0, fmt.Errorf("column %q has unsupported type %T", col, v)
}

// Float - reads a column as a float64
func (r Row) Float(col string) (float64, error) {
	v, err := r.get(col)
	if err != nil {
		return 0, err
	}

	switch n := v.(type) {
	case float32:
		return float64(n), nil
	case float64:
		return n, nil
	case string, []byte:
		s, _ := r.String(col)
		f, err := strconv.ParseFloat(s, 64)
		if err != nil {
			return 0, errors.Wrapf(err, "column %q", col)
		}
		return f, nil
	}

	i, err := r.Int(col)
	if err != nil {
		return 0, err
	}
	return float64(i), nil
}

// String - reads a column as a string. Fixed length HDF5 strings come back NUL or space padded, that's trimmed.
// Numbers are formatted so a site stored as an int can still be used as text
func (r Row) String(col string) (string, error) {
	v, err := r.get(col)
	if err != nil {
		return "", err
	}

	switch s := v.(type) {
	case string:
		return trimFixedString(s), nil
	case []byte:
		return trimFixedString(string(s)), nil
	case float32:
		return strconv.FormatFloat(float64(s), 'f', -1, 32), nil
	case float64:
		return strconv.FormatFloat(s, 'f', -1, 64), nil
	}

	i, err := r.Int(col)
	if err != nil {
		return "", err
	}
	return strconv.FormatInt(i, 10), nil
}

func trimFixedString(s string) string {
	return strings.TrimSpace(strings.TrimRight(s, "\x00"))
}

// Len - number of rows
func (t *Table) Len() int {
	return len(t.Rows)
}

// Columns - names of the columns in the first row, sorted. Empty for an empty table
func (t *Table) Columns() []string {
	if len(t.Rows) <= 0 {
		return []string{}
	}
	return utils.GetSortedMapKeys(t.Rows[0])
}

// RequireColumns - checks the first row has all the named columns so we fail before starting any remote work
func (t *Table) RequireColumns(cols ...string) error {
	if len(t.Rows) <= 0 {
		return nil
	}

	missing := []string{}
	for _, col := range cols {
		if _, ok := t.Rows[0][col]; !ok {
			missing = append(missing, col)
		}
	}

	if len(missing) > 0 {
		return errors.Wrapf(ErrNoSuchColumn, "table %v missing: %v", t.Name, strings.Join(missing, ", "))
	}
	return nil
}
