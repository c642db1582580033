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
	"time"

	"github.com/idr/idroi/core/importMetrics"
	"github.com/idr/idroi/core/logger"
	"github.com/idr/idroi/core/roiLedger"
	"github.com/idr/idroi/core/roiModel"
	"github.com/idr/idroi/core/timestamper"
	"github.com/pkg/errors"
)

// Writer - saves the ROIs of one image at a time. In dry run mode nothing is written, to the server or
// the ledger, but the image is still looked up
type Writer struct {
	Query       QueryService
	Update      UpdateService
	Ledger      roiLedger.Ledger
	Log         logger.ILogger
	Metrics     *importMetrics.Metrics
	TimeStamper timestamper.ITimeStamper
	DryRun      bool

	ScreenID   int64
	SourceFile string
}

// Write - attaches the ROIs to the image and saves them as one batch. done/total are only for the log line.
// Returns how many were saved, which can be non-zero even with an error if the batch failed part way
func (w *Writer) Write(ctx context.Context, imageID int64, rois []roiModel.ROI, done int, total int) (int, error) {
	w.setDefaults()

	image, err := w.Query.GetImage(ctx, imageID)
	if err != nil {
		return 0, errors.Wrapf(err, "failed to get image %v", imageID)
	}

	batch := make([]roiModel.ROI, len(rois))
	for c, r := range rois {
		r.ImageID = image.ID
		batch[c] = r
	}

	if w.DryRun {
		w.Log.Infof("Dryrun - Would save %d ROIs for Image %d (%d / %d images done)", len(batch), imageID, done, total)
		return 0, nil
	}

	start := time.Now()
	saved, err := w.Update.SaveCollection(ctx, batch)
	w.Metrics.ObserveBatchSave(start)
	w.Metrics.ROIsSaved.Add(float64(len(saved)))

	// Even a partial save is worth remembering, otherwise remove can't find what did get created
	if len(saved) > 0 {
		w.record(ctx, image.ID, saved)
	}

	if err != nil {
		return len(saved), errors.Wrapf(err, "failed to save ROIs for image %v", imageID)
	}

	w.Log.Infof("Saved %d ROIs for Image %d (%d / %d images done)", len(saved), imageID, done, total)
	return len(saved), nil
}

func (w *Writer) setDefaults() {
	if w.Log == nil {
		w.Log = &logger.NullLogger{}
	}
	if w.Metrics == nil {
		w.Metrics = importMetrics.New()
	}
	if w.TimeStamper == nil {
		w.TimeStamper = &timestamper.UnixTimeNowStamper{}
	}
}

func (w *Writer) record(ctx context.Context, imageID int64, saved []roiModel.ROI) {
	entry := roiLedger.Entry{
		ScreenID:       w.ScreenID,
		ImageID:        imageID,
		SourceFile:     filepath.Base(w.SourceFile),
		RoiIDs:         roiModel.IDs(saved),
		CreatedUnixSec: w.TimeStamper.GetTimeNowSec(),
	}

	if err := w.Ledger.Record(ctx, entry); err != nil {
		w.Log.Errorf("Saved %d ROIs for Image %d but failed to record them in the ledger: %v", len(saved), imageID, err)
	}
}
