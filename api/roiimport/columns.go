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

import "github.com/idr/idroi/core/roiModel"

// PointColumns - the X/Y column pair one labelled point is read from
type PointColumns struct {
	Label string
	X     string
	Y     string
}

// Columns - table and column names in the HDF5 file
type Columns struct {
	ImagesTable  string
	ObjectsTable string

	ImageNumber string
	PlateID     string
	Well        string
	Site        string

	Points []PointColumns
}

// DefaultColumns - names as written by the CellProfiler pipeline used for the IDR screens
func DefaultColumns() Columns {
	return Columns{
		ImagesTable:  "Images",
		ObjectsTable: "Objects",

		ImageNumber: "ImageNumber",
		PlateID:     "Image_Metadata_PlateID",
		Well:        "Image_Metadata_CPD_WELL_POSITION",
		Site:        "Image_Metadata_Site",

		Points: []PointColumns{
			{Label: roiModel.LabelNucleus, X: "Nuclei_Location_Center_X", Y: "Nuclei_Location_Center_Y"},
			{Label: roiModel.LabelCell, X: "Cells_Location_Center_X", Y: "Cells_Location_Center_Y"},
			{Label: roiModel.LabelCytoplasm, X: "Cytoplasm_Location_Center_X", Y: "Cytoplasm_Location_Center_Y"},
		},
	}
}

func (c Columns) imageColumns() []string {
	return []string{c.ImageNumber, c.PlateID, c.Well, c.Site}
}

func (c Columns) objectColumns() []string {
	result := []string{c.ImageNumber}
	for _, p := range c.Points {
		result = append(result, p.X, p.Y)
	}
	return result
}
