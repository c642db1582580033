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

package mongoDBConnection

import (
	"context"
	"fmt"
	"time"

	"github.com/aws/aws-sdk-go/aws/session"
	"github.com/idr/idroi/core/awsutil"
	"github.com/idr/idroi/core/logger"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/event"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

const connectTimeout = 10 * time.Second

// Connect - connects to a mongo DB. With a blank secret we connect to a local DB with no auth (LOCAL_MONGO_URI or
// localhost), otherwise the secret names a Secrets Manager entry holding the host and credentials
func Connect(
	sess *session.Session, // Can be nil for local connection
	mongoSecret string, // empty for local connection
	iLog logger.ILogger,
) (*mongo.Client, error) {
	if len(mongoSecret) <= 0 {
		return connectToLocalMongoDB(iLog)
	}

	var info MongoConnectionInfo
	err := awsutil.ReadSecretJSON(awsutil.GetSecretsManager(sess), mongoSecret, &info)
	if err != nil {
		return nil, fmt.Errorf("Failed to read mongo secret \"%v\" info from secrets cache: %v", mongoSecret, err)
	}

	return connectToRemoteMongoDB(info.Host, info.Username, info.Password, iLog)
}

// GetDatabaseName - DB names are suffixed with the environment so several can share a cluster
func GetDatabaseName(dbName string, envName string) string {
	return dbName + "-" + envName
}

func ping(client *mongo.Client) error {
	ctx, cancel := context.WithTimeout(context.Background(), connectTimeout)
	defer cancel()

	var result bson.M
	return client.Database("admin").RunCommand(ctx, bson.D{{Key: "ping", Value: 1}}).Decode(&result)
}

func makeMongoCommandMonitor(log logger.ILogger) *event.CommandMonitor {
	return &event.CommandMonitor{
		Started: func(_ context.Context, evt *event.CommandStartedEvent) {
			log.Debugf("Mongo request:\n%v", evt.Command)
		},
		Succeeded: func(_ context.Context, evt *event.CommandSucceededEvent) {
			log.Debugf("Mongo success:\n%v", evt.CommandFinishedEvent)
		},
		Failed: func(_ context.Context, evt *event.CommandFailedEvent) {
			log.Errorf("Mongo FAIL:\n%v", evt.Failure)
		},
	}
}

func baseClientOptions(uri string, log logger.ILogger) *options.ClientOptions {
	return options.Client().ApplyURI(uri).SetMonitor(makeMongoCommandMonitor(log)).SetDirect(true)
}
