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

package roiLedger

import (
	"context"
	"fmt"
	"path"
	"strings"

	"github.com/idr/idroi/core/fileaccess"
	"github.com/pkg/errors"
)

// FileLedger - one JSON file per image and source file: screens/{screenId}/files/{sourceFile}/{imageId}.json
// under the root. The root is a local directory or an S3 bucket depending on the FileAccess
type FileLedger struct {
	fs   fileaccess.FileAccess
	root string
}

func MakeFileLedger(fs fileaccess.FileAccess, root string) *FileLedger {
	return &FileLedger{fs: fs, root: root}
}

// listPrefix - everything for the screen, or only what one file created
func listPrefix(screenID int64, sourceFile string) string {
	prefix := fmt.Sprintf("screens/%v/files/", screenID)
	if len(sourceFile) > 0 {
		prefix += sourceFile + "/"
	}
	return prefix
}

func entryPath(screenID int64, imageID int64, sourceFile string) string {
	return path.Join(listPrefix(screenID, sourceFile), fmt.Sprintf("%v.json", imageID))
}

func (l *FileLedger) Record(ctx context.Context, entry Entry) error {
	p := entryPath(entry.ScreenID, entry.ImageID, entry.SourceFile)

	existing := Entry{}
	if err := l.fs.ReadJSON(l.root, p, &existing, true); err != nil {
		return errors.Wrapf(err, "failed to read ledger entry %v", p)
	}

	if err := l.fs.WriteJSON(l.root, p, merge(existing, entry)); err != nil {
		return errors.Wrapf(err, "failed to write ledger entry %v", p)
	}
	return nil
}

func (l *FileLedger) List(ctx context.Context, screenID int64, sourceFile string) ([]Entry, error) {
	paths, err := l.fs.ListObjects(l.root, listPrefix(screenID, sourceFile))
	if err != nil {
		return nil, errors.Wrapf(err, "failed to list ledger for screen %v", screenID)
	}

	result := []Entry{}
	for _, p := range paths {
		if !strings.HasSuffix(p, ".json") {
			continue
		}

		entry := Entry{}
		if err := l.fs.ReadJSON(l.root, p, &entry, false); err != nil {
			return nil, errors.Wrapf(err, "failed to read ledger entry %v", p)
		}

		if len(sourceFile) > 0 && entry.SourceFile != sourceFile {
			continue
		}
		result = append(result, entry)
	}

	sortEntries(result)
	return result, nil
}

func (l *FileLedger) Forget(ctx context.Context, screenID int64, imageID int64, sourceFile string) error {
	p := entryPath(screenID, imageID, sourceFile)

	err := l.fs.DeleteObject(l.root, p)
	if err != nil && !l.fs.IsNotFoundError(err) {
		return errors.Wrapf(err, "failed to delete ledger entry %v", p)
	}
	return nil
}
