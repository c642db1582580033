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

import "github.com/idr/idroi/core/roiModel"

const omeSchema = "http://www.openmicroscopy.org/Schemas/OME/2016-06"

const (
	typeROI   = omeSchema + "#ROI"
	typePoint = omeSchema + "#Point"
	typeImage = omeSchema + "#Image"
)

// Image - the (id, name) pair we need from an OMERO image
type Image struct {
	ID   int64  `json:"@id"`
	Name string `json:"Name"`
}

type plate struct {
	ID   int64  `json:"@id"`
	Name string `json:"Name"`
}

type wellSample struct {
	ID    int64 `json:"@id"`
	Image Image `json:"Image"`
}

type well struct {
	ID          int64        `json:"@id"`
	Row         int          `json:"Row"`
	Column      int          `json:"Column"`
	WellSamples []wellSample `json:"WellSamples"`
}

type objectRef struct {
	ID   int64  `json:"@id"`
	Type string `json:"@type"`
}

type pointJSON struct {
	ID   int64   `json:"@id,omitempty"`
	Type string  `json:"@type"`
	X    float64 `json:"X"`
	Y    float64 `json:"Y"`
	TheZ int32   `json:"TheZ"`
	TheT int32   `json:"TheT"`
	Text string  `json:"Text"`
}

type roiJSON struct {
	ID     int64       `json:"@id,omitempty"`
	Type   string      `json:"@type"`
	Image  *objectRef  `json:"Image,omitempty"`
	Shapes []pointJSON `json:"shapes"`
}

func toROIJSON(r roiModel.ROI) roiJSON {
	result := roiJSON{
		ID:     r.ID,
		Type:   typeROI,
		Image:  &objectRef{ID: r.ImageID, Type: typeImage},
		Shapes: make([]pointJSON, 0, len(r.Shapes)),
	}

	for _, p := range r.Shapes {
		result.Shapes = append(result.Shapes, pointJSON{
			ID:   p.ID,
			Type: typePoint,
			X:    p.X,
			Y:    p.Y,
			TheZ: p.TheZ,
			TheT: p.TheT,
			Text: p.Text,
		})
	}

	return result
}

// fromROIJSON - copies server assigned ids back onto what we sent
func fromROIJSON(sent roiModel.ROI, saved roiJSON) roiModel.ROI {
	result := sent
	result.ID = saved.ID
	result.Shapes = make([]roiModel.Point, len(sent.Shapes))
	copy(result.Shapes, sent.Shapes)

	for c := range result.Shapes {
		if c < len(saved.Shapes) {
			result.Shapes[c].ID = saved.Shapes[c].ID
		}
	}

	return result
}
