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

	"github.com/idr/idroi/core/h5table"
	"github.com/idr/idroi/core/logger"
	"github.com/idr/idroi/core/position"
	"github.com/pkg/errors"
)

// IdentifierMap - position key to server image id, built once per run
type IdentifierMap map[position.Key]int64

// ResolveImageIDs - asks the server for every image under the screen and keys them by the position parsed
// from their name. Names that don't parse are skipped. An empty screen gives an empty map, not an error
func ResolveImageIDs(ctx context.Context, query QueryService, screenID int64, log logger.ILogger) (IdentifierMap, error) {
	images, err := query.ProjectScreenImages(ctx, screenID)
	if err != nil {
		return nil, errors.Wrapf(err, "failed to query images of screen %v", screenID)
	}

	result := IdentifierMap{}
	for _, img := range images {
		key, err := position.ParseImageName(img.Name)
		if err != nil {
			log.Debugf("Ignoring image %v: %v", img.ID, err)
			continue
		}

		if existing, ok := result[key]; ok && existing != img.ID {
			log.Debugf("Images %v and %v both at position %v, using %v", existing, img.ID, key, img.ID)
		}
		result[key] = img.ID
	}

	return result, nil
}

// MapImageNumbers - image number of each row of the Images table to its position key. A malformed well
// stops everything, the file doesn't look like what we expect
func MapImageNumbers(images *h5table.Table, cols Columns) (map[int64]position.Key, error) {
	if err := images.RequireColumns(cols.imageColumns()...); err != nil {
		return nil, err
	}

	result := map[int64]position.Key{}
	for c, row := range images.Rows {
		num, err := row.Int(cols.ImageNumber)
		if err != nil {
			return nil, errors.Wrapf(err, "%v row %v", images.Name, c)
		}
		plate, err := row.String(cols.PlateID)
		if err != nil {
			return nil, errors.Wrapf(err, "%v row %v", images.Name, c)
		}
		well, err := row.String(cols.Well)
		if err != nil {
			return nil, errors.Wrapf(err, "%v row %v", images.Name, c)
		}
		site, err := row.String(cols.Site)
		if err != nil {
			return nil, errors.Wrapf(err, "%v row %v", images.Name, c)
		}

		key, err := position.MakeKey(plate, well, site)
		if err != nil {
			return nil, errors.Wrapf(err, "%v row %v (image number %v)", images.Name, c, num)
		}

		result[num] = key
	}

	return result, nil
}
