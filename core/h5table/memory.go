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

// MemorySource - Source backed by tables held in memory
type MemorySource struct {
	Tables map[string]*Table
	Closed bool
}

func NewMemorySource(tables ...*Table) *MemorySource {
	src := &MemorySource{Tables: map[string]*Table{}}
	for _, t := range tables {
		src.Tables[t.Name] = t
	}
	return src
}

func (m *MemorySource) ReadTable(name string) (*Table, error) {
	t, ok := m.Tables[name]
	if !ok {
		return nil, noSuchTable(name)
	}
	return t, nil
}

func (m *MemorySource) Close() error {
	m.Closed = true
	return nil
}
