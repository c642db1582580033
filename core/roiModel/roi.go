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

package roiModel

import "fmt"

// Shape labels, one point ROI of each is made per segmented object
const (
	LabelNucleus   = "Nucleus"
	LabelCell      = "Cell"
	LabelCytoplasm = "Cytoplasm"
)

// Labels - in the order the ROIs are created for each object
var Labels = []string{LabelNucleus, LabelCell, LabelCytoplasm}

// Point - single point shape. Z and T are plane indexes
type Point struct {
	ID   int64   `json:"id,omitempty"`
	X    float64 `json:"x"`
	Y    float64 `json:"y"`
	TheZ int32   `json:"z"`
	TheT int32   `json:"t"`
	Text string  `json:"text"`
}

// ROI - attached to exactly one image. ID is 0 until the server has saved it
type ROI struct {
	ID      int64   `json:"id,omitempty"`
	ImageID int64   `json:"imageId"`
	Shapes  []Point `json:"shapes"`
}

// NewPointROI - ROI holding one labelled point on the first Z and T plane
func NewPointROI(imageID int64, label string, x float64, y float64) ROI {
	return ROI{
		ImageID: imageID,
		Shapes: []Point{
			{X: x, Y: y, TheZ: 0, TheT: 0, Text: label},
		},
	}
}

func (r ROI) String() string {
	return fmt.Sprintf("ROI %v on image %v with %v shape(s)", r.ID, r.ImageID, len(r.Shapes))
}

// IDs - server ids of the given ROIs, unsaved ones are left out
func IDs(rois []ROI) []int64 {
	result := make([]int64, 0, len(rois))
	for _, r := range rois {
		if r.ID > 0 {
			result = append(result, r.ID)
		}
	}
	return result
}
