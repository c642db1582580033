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

package awsutil

import (
	"errors"
	"fmt"
	"io"
	"strings"
	"sync"

	"github.com/aws/aws-sdk-go/aws/awserr"
	"github.com/aws/aws-sdk-go/service/s3"
	"github.com/aws/aws-sdk-go/service/s3/s3iface"
	"github.com/idr/idroi/core/utils"
)

// MockS3Client - mock S3 client for unit tests. Don't forget to call FinishTest() at the end of your test to check
// that all calls to S3 were made, and there were no unexpected calls!
type MockS3Client struct {
	mutex sync.Mutex

	s3iface.S3API

	// Expected requests
	ExpListObjectsV2Input []s3.ListObjectsV2Input
	ExpHeadObjectInput    []s3.HeadObjectInput
	ExpGetObjectInput     []s3.GetObjectInput
	ExpPutObjectInput     []s3.PutObjectInput
	ExpDeleteObjectInput  []s3.DeleteObjectInput

	// Responses replayed as each request comes in. A nil entry makes that call fail
	QueuedListObjectsV2Output []*s3.ListObjectsV2Output
	QueuedHeadObjectOutput    []*s3.HeadObjectOutput
	QueuedGetObjectOutput     []*s3.GetObjectOutput
	QueuedPutObjectOutput     []*s3.PutObjectOutput
	QueuedDeleteObjectOutput  []*s3.DeleteObjectOutput

	SkipPutCheckNames []string
}

const ErrNoMoreInputsExpected = "No more inputs expected for "
const ErrWrongInput = "Incorrect input in "
const ErrNothingToReturn = "Nothing to return from "
const ErrReturningError = "Returning error from "

// NOTE: This function MUST be called at the end of a unit test/example test. Use defer when declaring MockS3Client!
func (m *MockS3Client) FinishTest() error {
	m.mutex.Lock()
	defer m.mutex.Unlock()

	err := m.getFinishTestResult()

	// If we found something unexpected, print an error so any example tests get this in their input
	// Unit tests which aren't example based will still get our return value
	if err != nil {
		fmt.Println(err)
	}

	return err
}

func (m *MockS3Client) getFinishTestResult() error {
	remaining := []struct {
		name    string
		inputs  int
		outputs int
	}{
		{"ListObjectsV2", len(m.ExpListObjectsV2Input), len(m.QueuedListObjectsV2Output)},
		{"HeadObject", len(m.ExpHeadObjectInput), len(m.QueuedHeadObjectOutput)},
		{"GetObject", len(m.ExpGetObjectInput), len(m.QueuedGetObjectOutput)},
		{"PutObject", len(m.ExpPutObjectInput), len(m.QueuedPutObjectOutput)},
		{"DeleteObject", len(m.ExpDeleteObjectInput), len(m.QueuedDeleteObjectOutput)},
	}

	for _, r := range remaining {
		if r.inputs > 0 {
			return fmt.Errorf("Test expected more %v calls to func", r.name)
		}
		if r.outputs > 0 {
			return fmt.Errorf("Remaining output %v for func", r.name)
		}
	}

	return nil
}

// nextCall - Pops the next expected input and queued output. Input is compared via the AWS String()
// representation which covers every field set on it
func nextCall[I fmt.Stringer, O any](name string, input I, expList *[]I, outputs *[]*O) (*O, error) {
	if len(*expList) <= 0 {
		return nil, errors.New(ErrNoMoreInputsExpected + name)
	}

	expStr := (*expList)[0].String()

	// Don't need this any more!
	*expList = (*expList)[1:]

	inpStr := input.String()
	if expStr != inpStr {
		return nil, fmt.Errorf("%v expected: \"%v\" S3 recvd: \"%v\"\n", ErrWrongInput+name, expStr, inpStr)
	}

	return nextOutput(name, outputs)
}

func nextOutput[O any](name string, outputs *[]*O) (*O, error) {
	if len(*outputs) <= 0 {
		return nil, errors.New(ErrNothingToReturn + name)
	}

	result := (*outputs)[0]
	*outputs = (*outputs)[1:]

	return result, nil
}

func (m *MockS3Client) ListObjectsV2(input *s3.ListObjectsV2Input) (*s3.ListObjectsV2Output, error) {
	m.mutex.Lock()
	defer m.mutex.Unlock()

	result, err := nextCall("ListObjectsV2", *input, &m.ExpListObjectsV2Input, &m.QueuedListObjectsV2Output)

	if err == nil && result == nil {
		err = errors.New(ErrReturningError + "ListObjectsV2")
	}
	return result, err
}

func (m *MockS3Client) HeadObject(input *s3.HeadObjectInput) (*s3.HeadObjectOutput, error) {
	m.mutex.Lock()
	defer m.mutex.Unlock()

	result, err := nextCall("HeadObject", *input, &m.ExpHeadObjectInput, &m.QueuedHeadObjectOutput)

	if err == nil && result == nil {
		// Same as what S3 sends for a HEAD of something missing
		err = awserr.New("NotFound", ErrReturningError+"HeadObject", nil)
	}
	return result, err
}

func (m *MockS3Client) GetObject(input *s3.GetObjectInput) (*s3.GetObjectOutput, error) {
	m.mutex.Lock()
	defer m.mutex.Unlock()

	result, err := nextCall("GetObject", *input, &m.ExpGetObjectInput, &m.QueuedGetObjectOutput)

	if err == nil && result == nil {
		err = awserr.New(s3.ErrCodeNoSuchKey, ErrReturningError+"GetObject", nil)
	}
	return result, err
}

func (m *MockS3Client) DeleteObject(input *s3.DeleteObjectInput) (*s3.DeleteObjectOutput, error) {
	m.mutex.Lock()
	defer m.mutex.Unlock()

	result, err := nextCall("DeleteObject", *input, &m.ExpDeleteObjectInput, &m.QueuedDeleteObjectOutput)

	if err == nil && result == nil {
		err = errors.New(ErrReturningError + "DeleteObject")
	}
	return result, err
}

func getAsStr(r io.Reader) string {
	if r == nil {
		return ""
	}
	data, err := io.ReadAll(r)
	if err != nil {
		return "ERROR GETTING DATA"
	}
	return string(data)
}

// PutObject compares bucket, key and body separately so a body mismatch can point at the line
func (m *MockS3Client) PutObject(input *s3.PutObjectInput) (*s3.PutObjectOutput, error) {
	m.mutex.Lock()
	defer m.mutex.Unlock()

	name := "PutObject"

	if len(m.ExpPutObjectInput) <= 0 {
		return nil, errors.New(ErrNoMoreInputsExpected + name)
	}

	expItem := m.ExpPutObjectInput[0]
	m.ExpPutObjectInput = m.ExpPutObjectInput[1:]

	if *input.Bucket != *expItem.Bucket {
		return nil, fmt.Errorf("%v %v - bucket\nexpected: \"%v\"\nS3 recvd: \"%v\"\n", ErrWrongInput, name, *expItem.Bucket, *input.Bucket)
	}

	if *input.Key != *expItem.Key {
		return nil, fmt.Errorf("%v %v - key\nexpected: \"%v\"\nS3 recvd: \"%v\"\n", ErrWrongInput, name, *expItem.Key, *input.Key)
	}

	if !utils.ItemInSlice(*input.Key, m.SkipPutCheckNames) {
		inpBody := getAsStr(input.Body)
		expBody := getAsStr(expItem.Body)
		if inpBody != expBody {
			inpBodyLines := strings.Split(inpBody, "\n")
			expBodyLines := strings.Split(expBody, "\n")

			loopToIdx := len(inpBodyLines)
			if l := len(expBodyLines); l > loopToIdx {
				loopToIdx = l
			}

			expLine := ""
			inpLine := ""

			c := 0
			for ; c < loopToIdx; c++ {
				if c >= len(inpBodyLines) || c >= len(expBodyLines) || inpBodyLines[c] != expBodyLines[c] {
					if c < len(inpBodyLines) {
						inpLine = inpBodyLines[c]
					}
					if c < len(expBodyLines) {
						expLine = expBodyLines[c]
					}
					break
				}
			}

			return nil, fmt.Errorf("%v %v - body\nline %v\nexpected: \"%v\"\nS3 recvd: \"%v\"\n", ErrWrongInput, name, c+1, expLine, inpLine)
		}
	}

	result, err := nextOutput(name, &m.QueuedPutObjectOutput)
	if err == nil && result == nil {
		err = errors.New(ErrReturningError + name)
	}
	return result, err
}

func (m *MockS3Client) SkipPutChecks(path []string) {
	m.SkipPutCheckNames = path
}
