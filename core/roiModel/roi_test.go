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

func Example_newPointROI() {
	roi := NewPointROI(1230, LabelCell, 10.5, 22.25)
	fmt.Println(roi)
	fmt.Printf("%+v\n", roi.Shapes[0])

	// Output:
	// ROI 0 on image 1230 with 1 shape(s)
	// {ID:0 X:10.5 Y:22.25 TheZ:0 TheT:0 Text:Cell}
}

func Example_roiIDs() {
	rois := []ROI{
		{ID: 5, ImageID: 1},
		{ImageID: 1},
		{ID: 7, ImageID: 1},
	}
	fmt.Println(IDs(rois))
	fmt.Println(IDs(nil))

	// Output:
	// [5 7]
	// []
}
