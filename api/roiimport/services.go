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

	"github.com/idr/idroi/core/omero"
	"github.com/idr/idroi/core/roiModel"
)

// QueryService - read side of the image server
type QueryService interface {
	// ProjectScreenImages - (id, name) of every image under the screen's plates, wells and well samples
	ProjectScreenImages(ctx context.Context, screenID int64) ([]omero.Image, error)
	GetImage(ctx context.Context, imageID int64) (omero.Image, error)
}

// UpdateService - write side of the image server
type UpdateService interface {
	// SaveCollection - saves the batch, returns the ROIs with server ids (those saved before any failure)
	SaveCollection(ctx context.Context, rois []roiModel.ROI) ([]roiModel.ROI, error)
	// DeleteROIs - returns how many were actually deleted
	DeleteROIs(ctx context.Context, roiIDs []int64) (int, error)
}

var _ QueryService = (*omero.Client)(nil)
var _ UpdateService = (*omero.Client)(nil)
