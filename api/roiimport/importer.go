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
	"path/filepath"

	"github.com/idr/idroi/core/h5table"
	"github.com/idr/idroi/core/importMetrics"
	"github.com/idr/idroi/core/logger"
	"github.com/idr/idroi/core/position"
	"github.com/idr/idroi/core/roiLedger"
	"github.com/idr/idroi/core/roiModel"
	"github.com/idr/idroi/core/timestamper"
	"github.com/idr/idroi/core/utils"
	"github.com/pkg/errors"
)

// Importer - everything needed to import ROIs into, or remove them from, a screen. Front ends build
// one of these and call Import, Remove or Parse
type Importer struct {
	Query       QueryService
	Update      UpdateService
	Ledger      roiLedger.Ledger
	Log         logger.ILogger
	Metrics     *importMetrics.Metrics
	TimeStamper timestamper.ITimeStamper
	Columns     Columns
	DryRun      bool
}

// Summary - the counts that get logged during a run
type Summary struct {
	ImagesMapped   int // Screen images whose name gave a position
	Images         int // Rows in the Images table
	Objects        int // Rows in the Objects table
	ImagesWithROIs int
	ROIsCreated    int
	ROIsSkipped    int
	ROIsSaved      int
	ROIsRemoved    int
	BatchesFailed  int
}

// ParseReport - what the parse command found in a file
type ParseReport struct {
	Datasets      []string
	Images        int
	Objects       int
	Positions     int // Distinct position keys in the Images table
	MappedObjects int // Object rows whose image number is in the Images table
	OrphanObjects int
}

// setDefaults - fills in anything a hand built Importer left out
func (imp *Importer) setDefaults() {
	if imp.Log == nil {
		imp.Log = &logger.NullLogger{}
	}
	if imp.Metrics == nil {
		imp.Metrics = importMetrics.New()
	}
	if imp.TimeStamper == nil {
		imp.TimeStamper = &timestamper.UnixTimeNowStamper{}
	}
	if len(imp.Columns.ImagesTable) <= 0 {
		imp.Columns = DefaultColumns()
	}
}

func (imp *Importer) writer(screenID int64, sourceFile string) *Writer {
	return &Writer{
		Query:       imp.Query,
		Update:      imp.Update,
		Ledger:      imp.Ledger,
		Log:         imp.Log,
		Metrics:     imp.Metrics,
		TimeStamper: imp.TimeStamper,
		DryRun:      imp.DryRun,
		ScreenID:    screenID,
		SourceFile:  sourceFile,
	}
}

// readTables - the Images and Objects tables, with their columns checked, and the Objects index on image number
func (imp *Importer) readTables(src h5table.Source) (*h5table.Table, *h5table.Table, h5table.Index, error) {
	images, err := src.ReadTable(imp.Columns.ImagesTable)
	if err != nil {
		return nil, nil, h5table.Index{}, err
	}

	objects, err := src.ReadTable(imp.Columns.ObjectsTable)
	if err != nil {
		return nil, nil, h5table.Index{}, err
	}

	if err := objects.RequireColumns(imp.Columns.objectColumns()...); err != nil {
		return nil, nil, h5table.Index{}, err
	}

	idx, err := h5table.BuildIndex(objects, imp.Columns.ImageNumber)
	if err != nil {
		return nil, nil, h5table.Index{}, errors.Wrapf(err, "failed to index %v", objects.Name)
	}

	return images, objects, idx, nil
}

// Import - builds 3 point ROIs per object row and saves them, one batch per image. Object rows that can't be
// tied to a screen image are skipped and counted. A failed batch is logged and the next image carries on
func (imp *Importer) Import(ctx context.Context, src h5table.Source, sourceFile string, screenID int64) (Summary, error) {
	imp.setDefaults()
	summary := Summary{}
	imp.Log.Infof("Import ROIs from file %s for screen %d", sourceFile, screenID)

	ids, err := ResolveImageIDs(ctx, imp.Query, screenID, imp.Log)
	if err != nil {
		return summary, err
	}
	summary.ImagesMapped = len(ids)
	imp.Metrics.ImagesMapped.Set(float64(len(ids)))
	imp.Log.Infof("Mapped %d image ids to plate positions", len(ids))

	images, objects, idx, err := imp.readTables(src)
	if err != nil {
		return summary, err
	}

	summary.Images = images.Len()
	imp.Log.Infof("Images: %d", images.Len())

	numToKey, err := MapImageNumbers(images, imp.Columns)
	if err != nil {
		return summary, err
	}

	summary.Objects = objects.Len()
	imp.Log.Infof("Objects: %d", objects.Len())

	roisPerRow := len(imp.Columns.Points)
	roisByImage := map[int64][]roiModel.ROI{}

	for _, num := range idx.Keys() {
		rows := idx.Rows(num)

		key, ok := numToKey[num]
		if !ok {
			imp.Log.Debugf("Image number %v not in %v table, skipping %v objects", num, images.Name, len(rows))
			summary.ROIsSkipped += roisPerRow * len(rows)
			continue
		}

		imageID, ok := ids[key]
		if !ok {
			imp.Log.Debugf("No screen image at %v (image number %v), skipping %v objects", key, num, len(rows))
			summary.ROIsSkipped += roisPerRow * len(rows)
			continue
		}

		rois, err := BuildROIs(objects, rows, imageID, imp.Columns)
		if err != nil {
			return summary, err
		}

		roisByImage[imageID] = append(roisByImage[imageID], rois...)
		summary.ROIsCreated += len(rois)
	}

	imp.Metrics.ROIsCreated.Add(float64(summary.ROIsCreated))
	imp.Metrics.ROIsSkipped.Add(float64(summary.ROIsSkipped))

	if summary.ROIsSkipped > 0 {
		imp.Log.Infof("Skipped %d ROIs because they can't be associated with an image", summary.ROIsSkipped)
	}

	summary.ImagesWithROIs = len(roisByImage)
	imp.Log.Infof("Created ROIs for %d images", len(roisByImage))

	w := imp.writer(screenID, sourceFile)
	imageIDs := utils.GetSortedMapKeys(roisByImage)
	for c, imageID := range imageIDs {
		saved, err := w.Write(ctx, imageID, roisByImage[imageID], c+1, len(imageIDs))
		summary.ROIsSaved += saved
		if err != nil {
			summary.BatchesFailed++
			imp.Metrics.BatchesFailed.Inc()
			imp.Log.Errorf("Failed to save ROIs for Image %d, continuing with next image: %v", imageID, err)
		}
	}

	return summary, nil
}

// Remove - deletes the ROIs the ledger says were imported into the screen. With a sourceFile, only those
// imported from a file of that name
func (imp *Importer) Remove(ctx context.Context, screenID int64, sourceFile string) (Summary, error) {
	imp.setDefaults()
	summary := Summary{}

	fileName := ""
	if len(sourceFile) > 0 {
		fileName = filepath.Base(sourceFile)
		imp.Log.Infof("Remove ROIs imported from file %s for screen %d", fileName, screenID)
	} else {
		imp.Log.Infof("Remove all imported ROIs for screen %d", screenID)
	}

	entries, err := imp.Ledger.List(ctx, screenID, fileName)
	if err != nil {
		return summary, err
	}

	imp.Log.Infof("Found imported ROIs for %d images", len(entries))

	for c, entry := range entries {
		if imp.DryRun {
			imp.Log.Infof("Dryrun - Would delete %d ROIs for Image %d", len(entry.RoiIDs), entry.ImageID)
			continue
		}

		deleted, err := imp.Update.DeleteROIs(ctx, entry.RoiIDs)
		summary.ROIsRemoved += deleted
		imp.Metrics.ROIsRemoved.Add(float64(deleted))

		if err != nil {
			summary.BatchesFailed++
			imp.Metrics.BatchesFailed.Inc()
			imp.Log.Errorf("Failed to delete ROIs for Image %d, continuing with next image: %v", entry.ImageID, err)
			continue
		}

		if err := imp.Ledger.Forget(ctx, screenID, entry.ImageID, entry.SourceFile); err != nil {
			imp.Log.Errorf("Deleted ROIs for Image %d but failed to update the ledger: %v", entry.ImageID, err)
		}

		imp.Log.Infof("Deleted %d ROIs for Image %d (%d / %d images done)", deleted, entry.ImageID, c+1, len(entries))
	}

	return summary, nil
}

// Parse - reads the file and reports on it without talking to the server
func (imp *Importer) Parse(src h5table.Source) (ParseReport, error) {
	imp.setDefaults()
	report := ParseReport{}

	if fs, ok := src.(*h5table.FileSource); ok {
		report.Datasets = fs.DatasetNames()
		imp.Log.Infof("Datasets: %v", report.Datasets)
	}

	images, objects, idx, err := imp.readTables(src)
	if err != nil {
		return report, err
	}

	report.Images = images.Len()
	report.Objects = objects.Len()
	imp.Log.Infof("Images: %d", report.Images)
	imp.Log.Infof("Objects: %d", report.Objects)

	numToKey, err := MapImageNumbers(images, imp.Columns)
	if err != nil {
		return report, err
	}

	positions := map[position.Key]bool{}
	for _, key := range numToKey {
		positions[key] = true
	}
	report.Positions = len(positions)

	for _, num := range idx.Keys() {
		if _, ok := numToKey[num]; ok {
			report.MappedObjects += idx.Count(num)
		} else {
			report.OrphanObjects += idx.Count(num)
		}
	}

	imp.Log.Infof("Positions: %d", report.Positions)
	imp.Log.Infof("Objects with a known image: %d, without: %d", report.MappedObjects, report.OrphanObjects)

	return report, nil
}
