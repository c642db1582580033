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
	"sort"

	"github.com/idr/idroi/core/utils"
)

// Entry - ROI ids created on one image of one screen by imports of one source file. Importing the same file
// onto the same image again adds to RoiIDs and updates CreatedUnixSec. A different file gets its own entry
type Entry struct {
	ID             string  `json:"id" bson:"_id"`
	ScreenID       int64   `json:"screenId" bson:"screenId"`
	ImageID        int64   `json:"imageId" bson:"imageId"`
	SourceFile     string  `json:"sourceFile" bson:"sourceFile"`
	RoiIDs         []int64 `json:"roiIds" bson:"roiIds"`
	CreatedUnixSec int64   `json:"createdUnixSec" bson:"createdUnixSec"`
}

// Ledger - remembers what an import created so it can be removed again
type Ledger interface {
	// Record - adds the entry's ROI ids to whatever is already recorded for that screen, image and source file
	Record(ctx context.Context, entry Entry) error
	// List - entries for a screen ordered by image id, then source file. A non-empty sourceFile only returns
	// entries from that file
	List(ctx context.Context, screenID int64, sourceFile string) ([]Entry, error)
	// Forget - drops the entry for a screen, image and source file, not an error if there isn't one. Entries
	// other files made on the same image are kept
	Forget(ctx context.Context, screenID int64, imageID int64, sourceFile string) error
}

func MakeEntryID(screenID int64, imageID int64, sourceFile string) string {
	return fmt.Sprintf("%v-%v-%v", screenID, imageID, sourceFile)
}

// merge - combines a new entry into the existing one for the same image and file, keeping ROI ids unique
func merge(existing Entry, entry Entry) Entry {
	result := entry
	result.ID = MakeEntryID(entry.ScreenID, entry.ImageID, entry.SourceFile)
	result.RoiIDs = append([]int64{}, existing.RoiIDs...)

	for _, id := range entry.RoiIDs {
		if !utils.ItemInSlice(id, result.RoiIDs) {
			result.RoiIDs = append(result.RoiIDs, id)
		}
	}

	return result
}

// sortEntries - by image, then file
func sortEntries(entries []Entry) {
	sort.Slice(entries, func(i, j int) bool {
		if entries[i].ImageID != entries[j].ImageID {
			return entries[i].ImageID < entries[j].ImageID
		}
		return entries[i].SourceFile < entries[j].SourceFile
	})
}
