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
	"os"

	"github.com/aws/aws-sdk-go/aws"
	"github.com/aws/aws-sdk-go/aws/session"
	"github.com/aws/aws-sdk-go/service/s3"
	"github.com/aws/aws-sdk-go/service/s3/s3iface"
	"github.com/aws/aws-sdk-go/service/secretsmanager"
	"github.com/aws/aws-sdk-go/service/secretsmanager/secretsmanageriface"
)

////////////////////////////////////////////////////////////////////////////////////////////////////////////
// AWS SDK Utils
// According to: https://docs.aws.amazon.com/sdk-for-go/api/aws/session/
// Sessions are safe to use concurrently as long as the Session is not being modified.
// So we get the session once on startup and pass it to whatever needs S3 or secrets

// GetSession - returns an AWS session for the region in AWS_DEFAULT_REGION (or the SDK's default chain)
func GetSession() (*session.Session, error) {
	region := os.Getenv("AWS_DEFAULT_REGION")
	return GetSessionWithRegion(region)
}

// GetSessionWithRegion - Can specify an AWS region, returns an AWS session
func GetSessionWithRegion(region string) (*session.Session, error) {
	cfg := &aws.Config{}
	if len(region) > 0 {
		cfg.Region = aws.String(region)
	}

	sess, err := session.NewSessionWithOptions(session.Options{
		Config:            *cfg,
		SharedConfigState: session.SharedConfigEnable,
	})
	if err != nil {
		return nil, err
	}
	return sess, nil
}

// GetS3 - returns an S3 client
func GetS3(sess *session.Session) (s3iface.S3API, error) {
	svc := s3.New(sess)
	return svc, nil
}

// GetSecretsManager - returns a secrets manager client, mainly to feed the secret cache
func GetSecretsManager(sess *session.Session) secretsmanageriface.SecretsManagerAPI {
	return secretsmanager.New(sess)
}
