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

package fileaccess

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/pkg/errors"
)

// IsS3Url - Does this look like s3://bucket/path
func IsS3Url(url string) bool {
	return strings.HasPrefix(url, "s3://")
}

// SplitS3Url - Returns the bucket and object path of an s3://bucket/path url
func SplitS3Url(url string) (string, string, error) {
	trimmedUrl := strings.TrimPrefix(url, "s3://")
	if trimmedUrl == url {
		return "", "", fmt.Errorf("not a valid S3 url: %v", url)
	}

	// Get the bit before the first slash, that's the bucket
	slashPos := strings.Index(trimmedUrl, "/")
	if slashPos <= 0 || slashPos == len(trimmedUrl)-1 {
		return "", "", fmt.Errorf("failed to get bucket and path from S3 url: %v", url)
	}

	return trimmedUrl[0:slashPos], trimmedUrl[slashPos+1:], nil
}

// CopyToLocalFile - Reads an object and writes it into a new file inside localDir. Some readers (eg HDF5)
// need random access to a real file, so anything remote has to be brought down first. Returns the path
// of the written file, caller is responsible for deleting it
func CopyToLocalFile(fs FileAccess, bucket string, path string, localDir string) (string, error) {
	data, err := fs.ReadObject(bucket, path)
	if err != nil {
		return "", errors.Wrapf(err, "failed to read %v/%v", bucket, path)
	}

	f, err := os.CreateTemp(localDir, "*-"+filepath.Base(path))
	if err != nil {
		return "", errors.Wrap(err, "failed to create local copy")
	}
	defer f.Close()

	if _, err := f.Write(data); err != nil {
		os.Remove(f.Name())
		return "", errors.Wrapf(err, "failed to write local copy %v", f.Name())
	}

	return f.Name(), nil
}
