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
	"fmt"

	"github.com/aws/aws-sdk-go/aws"
	"github.com/aws/aws-sdk-go/aws/request"
	"github.com/aws/aws-sdk-go/service/secretsmanager"
	"github.com/aws/aws-sdk-go/service/secretsmanager/secretsmanageriface"
)

// MockSecretsManager - serves secret strings by name for unit tests. Only implements what the secret cache calls
type MockSecretsManager struct {
	secretsmanageriface.SecretsManagerAPI
	Secrets map[string]string
}

func (m *MockSecretsManager) DescribeSecretWithContext(ctx aws.Context, input *secretsmanager.DescribeSecretInput, opts ...request.Option) (*secretsmanager.DescribeSecretOutput, error) {
	if _, ok := m.Secrets[*input.SecretId]; !ok {
		return nil, fmt.Errorf("no secret named %v", *input.SecretId)
	}
	return &secretsmanager.DescribeSecretOutput{
		ARN:                aws.String("arn:" + *input.SecretId),
		Name:               input.SecretId,
		VersionIdsToStages: map[string][]*string{"v1": {aws.String("AWSCURRENT")}},
	}, nil
}

func (m *MockSecretsManager) GetSecretValueWithContext(ctx aws.Context, input *secretsmanager.GetSecretValueInput, opts ...request.Option) (*secretsmanager.GetSecretValueOutput, error) {
	value, ok := m.Secrets[*input.SecretId]
	if !ok {
		return nil, fmt.Errorf("no secret named %v", *input.SecretId)
	}
	return &secretsmanager.GetSecretValueOutput{
		ARN:          aws.String("arn:" + *input.SecretId),
		Name:         input.SecretId,
		SecretString: aws.String(value),
		VersionId:    aws.String("v1"),
	}, nil
}
