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

package timestamper

import "time"

// ITimeStamper - source of "now", so ledger entries can be stamped predictably in tests
type ITimeStamper interface {
	GetTimeNowSec() int64
}

type UnixTimeNowStamper struct {
}

func (ts *UnixTimeNowStamper) GetTimeNowSec() int64 {
	return time.Now().Unix()
}

// MockTimeNowStamper - hands out the queued times in order, then keeps repeating the last one
type MockTimeNowStamper struct {
	QueuedTimeStamps []int64
	last             int64
}

func (ts *MockTimeNowStamper) GetTimeNowSec() int64 {
	if len(ts.QueuedTimeStamps) <= 0 {
		return ts.last
	}

	ts.last = ts.QueuedTimeStamps[0]
	ts.QueuedTimeStamps = ts.QueuedTimeStamps[1:]
	return ts.last
}
