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

package roiimport

import (
	"context"
	"fmt"
	"sort"

	"github.com/idr/idroi/core/errorwithstatus"
	"github.com/idr/idroi/core/h5table"
	"github.com/idr/idroi/core/importMetrics"
	"github.com/idr/idroi/core/logger"
	"github.com/idr/idroi/core/omero"
	"github.com/idr/idroi/core/roiLedger"
	"github.com/idr/idroi/core/roiModel"
	"github.com/idr/idroi/core/timestamper"
)

type fakeServer struct {
	screens      map[int64][]omero.Image
	queryErr     error
	failSaveFor  map[int64]bool
	missingOnGet map[int64]bool

	nextID    int64
	saveCalls [][]roiModel.ROI
	deletes   [][]int64
	getCalls  []int64
}

func newFakeServer() *fakeServer {
	return &fakeServer{
		screens: map[int64][]omero.Image{
			102: {
				{ID: 1230, Name: "PlateX [Well A03, Field 1]"},
				{ID: 1231, Name: "PlateX [Well A03, Field 2]"},
				{ID: 1232, Name: "PlateX [Well B10, Field 1]"},
				{ID: 1233, Name: "PlateY [Well C01, Field 1]"},
				{ID: 1299, Name: "overview.png"},
			},
		},
		failSaveFor: map[int64]bool{},
		nextID:      5000,
	}
}

func (f *fakeServer) ProjectScreenImages(ctx context.Context, screenID int64) ([]omero.Image, error) {
	if f.queryErr != nil {
		return nil, f.queryErr
	}
	return f.screens[screenID], nil
}

func (f *fakeServer) GetImage(ctx context.Context, imageID int64) (omero.Image, error) {
	f.getCalls = append(f.getCalls, imageID)
	if f.missingOnGet[imageID] {
		return omero.Image{}, errorwithstatus.MakeNotFoundError(fmt.Sprintf("Image %v", imageID))
	}
	for _, images := range f.screens {
		for _, img := range images {
			if img.ID == imageID {
				return img, nil
			}
		}
	}
	return omero.Image{}, errorwithstatus.MakeNotFoundError(fmt.Sprintf("Image %v", imageID))
}

func (f *fakeServer) SaveCollection(ctx context.Context, rois []roiModel.ROI) ([]roiModel.ROI, error) {
	f.saveCalls = append(f.saveCalls, rois)

	saved := []roiModel.ROI{}
	for _, r := range rois {
		if f.failSaveFor[r.ImageID] {
			return saved, errorwithstatus.MakeStatusError(500, fmt.Errorf("save failed for image %v", r.ImageID))
		}
		r.ID = f.nextID
		f.nextID++
		saved = append(saved, r)
	}
	return saved, nil
}

func (f *fakeServer) DeleteROIs(ctx context.Context, roiIDs []int64) (int, error) {
	f.deletes = append(f.deletes, roiIDs)
	for _, id := range roiIDs {
		if id < 0 {
			return 0, fmt.Errorf("cannot delete %v", id)
		}
	}
	return len(roiIDs), nil
}

func (f *fakeServer) writeCalls() int {
	return len(f.saveCalls) + len(f.deletes)
}

type memLedger struct {
	entries map[string]roiLedger.Entry
}

func newMemLedger() *memLedger {
	return &memLedger{entries: map[string]roiLedger.Entry{}}
}

func (l *memLedger) Record(ctx context.Context, entry roiLedger.Entry) error {
	id := roiLedger.MakeEntryID(entry.ScreenID, entry.ImageID, entry.SourceFile)
	existing := l.entries[id]
	entry.ID = id
	entry.RoiIDs = append(existing.RoiIDs, entry.RoiIDs...)
	l.entries[id] = entry
	return nil
}

func (l *memLedger) List(ctx context.Context, screenID int64, sourceFile string) ([]roiLedger.Entry, error) {
	result := []roiLedger.Entry{}
	for _, e := range l.entries {
		if e.ScreenID == screenID && (len(sourceFile) <= 0 || e.SourceFile == sourceFile) {
			result = append(result, e)
		}
	}
	sort.Slice(result, func(i, j int) bool {
		if result[i].ImageID != result[j].ImageID {
			return result[i].ImageID < result[j].ImageID
		}
		return result[i].SourceFile < result[j].SourceFile
	})
	return result, nil
}

func (l *memLedger) Forget(ctx context.Context, screenID int64, imageID int64, sourceFile string) error {
	delete(l.entries, roiLedger.MakeEntryID(screenID, imageID, sourceFile))
	return nil
}

func imagesRow(num int, plate string, well string, site int) h5table.Row {
	return h5table.Row{
		"ImageNumber":                      int32(num),
		"Image_Metadata_PlateID":           plate,
		"Image_Metadata_CPD_WELL_POSITION": well,
		"Image_Metadata_Site":              int32(site),
	}
}

func objectsRow(num int, base float64) h5table.Row {
	return h5table.Row{
		"ImageNumber":                 int32(num),
		"Nuclei_Location_Center_X":    base + 0.1,
		"Nuclei_Location_Center_Y":    base + 0.2,
		"Cells_Location_Center_X":     base + 1.1,
		"Cells_Location_Center_Y":     base + 1.2,
		"Cytoplasm_Location_Center_X": float32(base + 2),
		"Cytoplasm_Location_Center_Y": float32(base + 3),
	}
}

// makeSource - image numbers 1-3 are on screen 102, 4 is a position the screen doesn't have, and
// objects reference image number 9 which isn't in the Images table at all
func makeSource() *h5table.MemorySource {
	return h5table.NewMemorySource(
		&h5table.Table{Name: "Images", Rows: []h5table.Row{
			imagesRow(1, "PlateX", "A03", 1),
			imagesRow(2, "PlateX", "A03", 2),
			imagesRow(3, "PlateX", "B10", 1),
			imagesRow(4, "PlateZ", "D04", 1),
		}},
		&h5table.Table{Name: "Objects", Rows: []h5table.Row{
			objectsRow(1, 10),
			objectsRow(1, 20),
			objectsRow(3, 30),
			objectsRow(2, 40),
			objectsRow(4, 50),
			objectsRow(9, 60),
			objectsRow(9, 70),
			objectsRow(1, 80),
		}},
	)
}

func makeImporter(srv *fakeServer, ledger roiLedger.Ledger, log logger.ILogger, dryRun bool) *Importer {
	return &Importer{
		Query:       srv,
		Update:      srv,
		Ledger:      ledger,
		Log:         log,
		Metrics:     importMetrics.New(),
		TimeStamper: &timestamper.MockTimeNowStamper{QueuedTimeStamps: []int64{1700000000}},
		Columns:     DefaultColumns(),
		DryRun:      dryRun,
	}
}
