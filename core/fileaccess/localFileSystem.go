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

package fileaccess

import (
	"encoding/json"
	"errors"
	iofs "io/fs"
	"os"
	"path"
	"path/filepath"
	"strings"

	"github.com/idr/idroi/core/utils"
)

// Implementation of file access using local file system
type FSAccess struct {
}

func (fs *FSAccess) ListObjects(rootPath string, prefix string) ([]string, error) {
	result := []string{}

	rootOnly := path.Join(rootPath) // Using path.Join to make it match the fullPath cleans off ./ for example

	// Prefix may be a partial file name, so walk from the directory it's in and filter
	walkFrom := fs.filePath(rootPath, prefix)
	if !strings.HasSuffix(prefix, "/") && len(prefix) > 0 {
		walkFrom = filepath.Dir(walkFrom)
	}

	err := filepath.Walk(walkFrom, func(pathFound string, info os.FileInfo, err error) error {
		if err != nil {
			return err
		}
		if !info.IsDir() {
			// Also note pathFound contains the root directory, so we chop it off
			toSave := filepath.ToSlash(pathFound)
			if strings.HasPrefix(toSave, rootOnly) {
				toSave = toSave[len(rootOnly)+1:]
			}
			if strings.HasPrefix(toSave, prefix) {
				result = append(result, toSave)
			}
		}
		return nil
	})

	// Listing something that isn't there is just an empty listing, same as S3
	if err != nil && fs.IsNotFoundError(err) {
		return []string{}, nil
	}

	return result, err
}

func (fs *FSAccess) ObjectExists(rootPath string, path string) (bool, error) {
	_, err := os.Stat(fs.filePath(rootPath, path))
	if err == nil {
		return true, nil
	}
	if fs.IsNotFoundError(err) {
		return false, nil
	}
	return false, err
}

func (fs *FSAccess) ReadObject(rootPath string, path string) ([]byte, error) {
	fullPath := fs.filePath(rootPath, path)
	return os.ReadFile(fullPath)
}

func (fs *FSAccess) WriteObject(rootPath string, path string, data []byte) error {
	fullPath := fs.filePath(rootPath, path)

	// Ensure any subdirs in between are created
	createPath := filepath.Dir(fullPath)
	err := os.MkdirAll(createPath, 0777)
	if err != nil {
		return err
	}

	// Write the file out, this will create if needed else truncate and write
	return os.WriteFile(fullPath, data, 0644)
}

func (fs *FSAccess) ReadJSON(rootPath string, filePath string, itemsPtr interface{}, emptyIfNotFound bool) error {
	fileData, err := fs.ReadObject(rootPath, filePath)

	// If we got an error, and it's a not found, and we're told to ignore these and return empty data, then do so
	if err != nil {
		if emptyIfNotFound && fs.IsNotFoundError(err) {
			return nil
		}
		return err
	}

	return json.Unmarshal(fileData, itemsPtr)
}

func (fs *FSAccess) WriteJSON(rootPath string, filePath string, itemsPtr interface{}) error {
	fileData, err := json.MarshalIndent(itemsPtr, "", utils.PrettyPrintIndentForJSON)
	if err != nil {
		return err
	}

	return fs.WriteObject(rootPath, filePath, fileData)
}

func (fs *FSAccess) DeleteObject(rootPath string, path string) error {
	fullPath := fs.filePath(rootPath, path)
	return os.Remove(fullPath)
}

func (fs *FSAccess) IsNotFoundError(err error) bool {
	return errors.Is(err, iofs.ErrNotExist)
}

func (fs *FSAccess) filePath(rootPath string, filePath string) string {
	return path.Join(rootPath, filePath)
}
