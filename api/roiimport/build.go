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
	"github.com/idr/idroi/core/h5table"
	"github.com/idr/idroi/core/roiModel"
	"github.com/pkg/errors"
)

// BuildROIs - one point ROI per configured column pair (nucleus, cell, cytoplasm by default) for each of
// the given object rows. Coordinates are taken as they are
func BuildROIs(objects *h5table.Table, rowIdxs []int, imageID int64, cols Columns) ([]roiModel.ROI, error) {
	result := make([]roiModel.ROI, 0, len(rowIdxs)*len(cols.Points))

	for _, idx := range rowIdxs {
		if idx < 0 || idx >= objects.Len() {
			return nil, errors.Errorf("%v has no row %v", objects.Name, idx)
		}
		row := objects.Rows[idx]

		for _, pt := range cols.Points {
			x, err := row.Float(pt.X)
			if err != nil {
				return nil, errors.Wrapf(err, "%v row %v", objects.Name, idx)
			}
			y, err := row.Float(pt.Y)
			if err != nil {
				return nil, errors.Wrapf(err, "%v row %v", objects.Name, idx)
			}

			result = append(result, roiModel.NewPointROI(imageID, pt.Label, x, y))
		}
	}

	return result, nil
}
