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

	"github.com/pkg/errors"
)

// ProjectScreenImages - every image in every well of every plate linked to the screen, as (id, name)
func (c *Client) ProjectScreenImages(ctx context.Context, screenID int64) ([]Image, error) {
	plates, err := getAllPages[plate](ctx, c, fmt.Sprintf("/m/screens/%v/plates/", screenID))
	if err != nil {
		return nil, errors.Wrapf(err, "failed to list plates of screen %v", screenID)
	}

	c.log.Debugf("Screen %v has %v plates", screenID, len(plates))

	result := []Image{}
	for _, p := range plates {
		wells, err := getAllPages[well](ctx, c, fmt.Sprintf("/m/plates/%v/wells/", p.ID))
		if err != nil {
			return nil, errors.Wrapf(err, "failed to list wells of plate %v", p.ID)
		}

		for _, w := range wells {
			for _, ws := range w.WellSamples {
				if ws.Image.ID > 0 {
					result = append(result, ws.Image)
				}
			}
		}

		c.log.Debugf("Plate %v (%v): %v wells, %v images so far", p.ID, p.Name, len(wells), len(result))
	}

	return result, nil
}

// GetImage - fetches one image by id, a missing image is a StatusError with 404
func (c *Client) GetImage(ctx context.Context, imageID int64) (Image, error) {
	var resp struct {
		Data Image `json:"data"`
	}

	err := c.getJSON(ctx, fmt.Sprintf("/m/images/%v/", imageID), nil, &resp)
	if err != nil {
		return Image{}, err
	}

	return resp.Data, nil
}
