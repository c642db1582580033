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

package omero

import (
	"context"
	"fmt"

	"github.com/idr/idroi/core/errorwithstatus"
	"github.com/idr/idroi/core/roiModel"
	"github.com/pkg/errors"
)

// SaveCollection - saves each ROI (with its shapes) and returns them with the ids the server assigned.
// The JSON API saves one object per request, if one fails we stop and return what was saved so far
// along with the error
func (c *Client) SaveCollection(ctx context.Context, rois []roiModel.ROI) ([]roiModel.ROI, error) {
	saved := make([]roiModel.ROI, 0, len(rois))

	for _, r := range rois {
		var resp struct {
			Data roiJSON `json:"data"`
		}

		if err := c.postJSON(ctx, "/m/save/", toROIJSON(r), &resp); err != nil {
			return saved, errors.Wrapf(err, "saved %v of %v ROIs for image %v", len(saved), len(rois), r.ImageID)
		}

		saved = append(saved, fromROIJSON(r, resp.Data))
	}

	return saved, nil
}

// DeleteROIs - deletes ROIs by id. Already gone ones (404) are fine, anything else stops the run and
// returns how many were deleted
func (c *Client) DeleteROIs(ctx context.Context, roiIDs []int64) (int, error) {
	deleted := 0

	for _, id := range roiIDs {
		err := c.delete(ctx, fmt.Sprintf("/m/rois/%v/", id))
		if err != nil {
			if errorwithstatus.IsNotFound(err) {
				c.log.Debugf("ROI %v already deleted", id)
				continue
			}
			return deleted, errors.Wrapf(err, "failed to delete ROI %v", id)
		}
		deleted++
	}

	return deleted, nil
}
