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
	"testing"

	"github.com/idr/idroi/core/logger"
	"github.com/idr/idroi/core/roiLedger"
)

func seedLedger() *memLedger {
	l := newMemLedger()
	ctx := context.Background()
	l.Record(ctx, roiLedger.Entry{ScreenID: 102, ImageID: 1230, SourceFile: "a.h5", RoiIDs: []int64{1, 2, 3}})
	l.Record(ctx, roiLedger.Entry{ScreenID: 102, ImageID: 1231, SourceFile: "b.h5", RoiIDs: []int64{4, 5, 6}})
	l.Record(ctx, roiLedger.Entry{ScreenID: 102, ImageID: 1232, SourceFile: "a.h5", RoiIDs: []int64{7, -8, 9}})
	l.Record(ctx, roiLedger.Entry{ScreenID: 103, ImageID: 1300, SourceFile: "a.h5", RoiIDs: []int64{10}})
	return l
}

func Example_importerRemove() {
	srv := newFakeServer()
	ledger := seedLedger()
	log := &logger.MemoryLogger{}
	imp := makeImporter(srv, ledger, log, false)

	summary, err := imp.Remove(context.Background(), 102, "/some/dir/a.h5")
	fmt.Printf("%v|%+v\n", err, summary)

	for _, line := range log.GetLogs() {
		fmt.Println(line)
	}

	fmt.Println(srv.deletes)

	entries, _ := ledger.List(context.Background(), 102, "")
	for _, e := range entries {
		fmt.Println(e.ID)
	}

	// Output:
	// <nil>|{ImagesMapped:0 Images:0 Objects:0 ImagesWithROIs:0 ROIsCreated:0 ROIsSkipped:0 ROIsSaved:0 ROIsRemoved:3 BatchesFailed:1}
	// INFO: Remove ROIs imported from file a.h5 for screen 102
	// INFO: Found imported ROIs for 2 images
	// INFO: Deleted 3 ROIs for Image 1230 (1 / 2 images done)
	// ERROR: Failed to delete ROIs for Image 1232, continuing with next image: cannot delete -8
	// [[1 2 3] [7 -8 9]]
	// 102-1231-b.h5
	// 102-1232-a.h5
}

func TestRemoveAllForScreen(t *testing.T) {
	srv := newFakeServer()
	ledger := seedLedger()
	delete(ledger.entries, "102-1232-a.h5")
	imp := makeImporter(srv, ledger, &logger.NullLogger{}, false)

	summary, err := imp.Remove(context.Background(), 102, "")
	if err != nil {
		t.Fatal(err)
	}
	if summary.ROIsRemoved != 6 || summary.BatchesFailed != 0 {
		t.Errorf("unexpected summary: %+v", summary)
	}
	if len(ledger.entries) != 1 {
		t.Errorf("only screen 103 should be left in ledger, got %v", ledger.entries)
	}
}

func TestRemoveDryRun(t *testing.T) {
	srv := newFakeServer()
	ledger := seedLedger()
	log := &logger.MemoryLogger{}
	imp := makeImporter(srv, ledger, log, true)

	summary, err := imp.Remove(context.Background(), 102, "")
	if err != nil {
		t.Fatal(err)
	}

	if srv.writeCalls() != 0 || summary.ROIsRemoved != 0 {
		t.Errorf("dry run deleted something: %v, %+v", srv.deletes, summary)
	}
	if len(ledger.entries) != 4 {
		t.Errorf("dry run changed the ledger")
	}
	if log.CountContaining("Dryrun - Would delete 3 ROIs for Image") != 3 {
		t.Errorf("unexpected logs: %v", log.GetLogs())
	}
}

func TestRemoveOneOfTwoFilesOnSameImage(t *testing.T) {
	srv := newFakeServer()
	ledger := newMemLedger()
	ctx := context.Background()

	// Both files have objects on images 1230-1232
	for _, file := range []string{"/data/a.h5", "/data/b.h5"} {
		if _, err := makeImporter(srv, ledger, &logger.NullLogger{}, false).Import(ctx, makeSource(), file, 102); err != nil {
			t.Fatal(err)
		}
	}

	aEntries, _ := ledger.List(ctx, 102, "a.h5")
	bEntries, _ := ledger.List(ctx, 102, "b.h5")
	if len(aEntries) != 3 || len(bEntries) != 3 {
		t.Fatalf("expected 3 ledger entries per file, got %v and %v", len(aEntries), len(bEntries))
	}

	summary, err := makeImporter(srv, ledger, &logger.NullLogger{}, false).Remove(ctx, 102, "a.h5")
	if err != nil {
		t.Fatal(err)
	}
	if summary.ROIsRemoved != 15 || summary.BatchesFailed != 0 {
		t.Errorf("unexpected summary: %+v", summary)
	}

	// Only a.h5's ids were deleted: the first import saved ids 5000-5014
	for _, batch := range srv.deletes {
		for _, id := range batch {
			if id < 5000 || id > 5014 {
				t.Errorf("deleted roi %v, which b.h5 created", id)
			}
		}
	}

	left, _ := ledger.List(ctx, 102, "")
	if len(left) != 3 {
		t.Fatalf("expected b.h5's 3 entries to be kept, got %v", left)
	}
	for c, e := range left {
		if e.SourceFile != "b.h5" || e.RoiIDs[0] < 5015 || e.ImageID != bEntries[c].ImageID {
			t.Errorf("unexpected entry left: %+v", e)
		}
	}

	summary, err = makeImporter(srv, ledger, &logger.NullLogger{}, false).Remove(ctx, 102, "b.h5")
	if err != nil {
		t.Fatal(err)
	}
	if summary.ROIsRemoved != 15 || len(ledger.entries) != 0 {
		t.Errorf("b.h5 remove: %+v, left %v", summary, ledger.entries)
	}
}
