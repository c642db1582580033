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
	"reflect"
	"strings"

	"github.com/batchatco/go-native-netcdf/netcdf/api"
	"github.com/batchatco/go-native-netcdf/netcdf/hdf5"
	"github.com/idr/idroi/core/utils"
	"github.com/pkg/errors"
)

// FileSource - reads compound datasets out of an HDF5 file. Dataset names are their path within the file
// without the leading slash, so a root level table is just "Objects". Both old style symbol table groups
// (version 0 superblock, what h5py and PyTables write by default) and newer link message groups are read
type FileSource struct {
	path     string
	root     api.Group
	datasets map[string]bool
}

// OpenFile - opens the file and finds every dataset in it. Caller must Close()
func OpenFile(path string) (*FileSource, error) {
	root, err := hdf5.Open(path)
	if err != nil {
		return nil, errors.Wrapf(err, "failed to open HDF5 file: %v", path)
	}

	src := &FileSource{path: path, root: root, datasets: map[string]bool{}}
	if err := src.findDatasets(root, ""); err != nil {
		root.Close()
		return nil, errors.Wrapf(err, "failed to list datasets in %v", path)
	}

	return src, nil
}

func (s *FileSource) findDatasets(g api.Group, prefix string) error {
	for _, name := range g.ListVariables() {
		s.datasets[prefix+name] = true
	}

	for _, sub := range g.ListSubgroups() {
		sg, err := g.GetGroup(sub)
		if err != nil {
			return errors.Wrapf(err, "group %v%v", prefix, sub)
		}
		err = s.findDatasets(sg, prefix+sub+"/")
		sg.Close()
		if err != nil {
			return err
		}
	}
	return nil
}

// DatasetNames - sorted names of all datasets found
func (s *FileSource) DatasetNames() []string {
	return utils.GetSortedMapKeys(s.datasets)
}

func (s *FileSource) ReadTable(name string) (*Table, error) {
	name = strings.Trim(name, "/")
	if !s.datasets[name] {
		return nil, noSuchTable(name)
	}

	g := s.root
	varName := name
	if pos := strings.LastIndex(name, "/"); pos >= 0 {
		sg, err := s.root.GetGroup(name[:pos])
		if err != nil {
			return nil, errors.Wrapf(err, "failed to open group of %v in %v", name, s.path)
		}
		defer sg.Close()
		g = sg
		varName = name[pos+1:]
	}

	v, err := g.GetVariable(varName)
	if err != nil {
		return nil, errors.Wrapf(err, "failed to read compound dataset %v from %v", name, s.path)
	}

	rows, err := compoundRows(v.Values)
	if err != nil {
		return nil, errors.Wrapf(err, "dataset %v in %v", name, s.path)
	}

	return &Table{Name: name, Rows: rows}, nil
}

func (s *FileSource) Close() error {
	s.root.Close()
	return nil
}

func noSuchTable(name string) error {
	return errors.Wrapf(ErrNoSuchTable, "%q", name)
}

// compoundRows - the reader hands back a 1-D compound dataset as a slice with one element per record. An
// unregistered record is itself a slice of {Name, Val} member structs, a registered one is a Go struct
func compoundRows(values interface{}) ([]Row, error) {
	rv := reflect.ValueOf(values)
	if rv.Kind() != reflect.Slice {
		return nil, errors.Errorf("not a compound table, got %T", values)
	}

	// A scalar compound comes back as a single record
	if isMemberList(rv) {
		row, err := compoundRow(rv)
		if err != nil {
			return nil, err
		}
		return []Row{row}, nil
	}

	rows := make([]Row, 0, rv.Len())
	for c := 0; c < rv.Len(); c++ {
		row, err := compoundRow(rv.Index(c))
		if err != nil {
			return nil, errors.Wrapf(err, "record %v", c)
		}
		rows = append(rows, row)
	}
	return rows, nil
}

func isMemberList(rv reflect.Value) bool {
	t := rv.Type().Elem()
	if t.Kind() != reflect.Struct {
		return false
	}
	name, ok := t.FieldByName("Name")
	if !ok || name.Type.Kind() != reflect.String {
		return false
	}
	_, ok = t.FieldByName("Val")
	return ok
}

func compoundRow(rv reflect.Value) (Row, error) {
	for rv.Kind() == reflect.Interface || rv.Kind() == reflect.Ptr {
		rv = rv.Elem()
	}

	row := Row{}
	switch rv.Kind() {
	case reflect.Slice:
		if !isMemberList(rv) {
			return nil, errors.Errorf("not a compound record, got %v", rv.Type())
		}
		for c := 0; c < rv.Len(); c++ {
			member := rv.Index(c)
			row[member.FieldByName("Name").String()] = member.FieldByName("Val").Interface()
		}

	case reflect.Struct:
		t := rv.Type()
		for c := 0; c < t.NumField(); c++ {
			if t.Field(c).IsExported() {
				row[t.Field(c).Name] = rv.Field(c).Interface()
			}
		}

	case reflect.Map:
		iter := rv.MapRange()
		for iter.Next() {
			if iter.Key().Kind() != reflect.String {
				return nil, errors.Errorf("not a compound record, got %v", rv.Type())
			}
			row[iter.Key().String()] = iter.Value().Interface()
		}

	default:
		return nil, errors.Errorf("not a compound record, got %v", rv.Type())
	}

	return row, nil
}
