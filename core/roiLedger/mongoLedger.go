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

package roiLedger

import (
	"context"

	"github.com/idr/idroi/core/mongoDBConnection"
	"github.com/pkg/errors"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

const CollectionName = "roiImports"

// MongoLedger - entries are documents in the roiImports collection, _id is "{screenId}-{imageId}-{sourceFile}"
type MongoLedger struct {
	coll *mongo.Collection
}

// MakeMongoLedger - dbName gets the environment appended, like every other DB we use
func MakeMongoLedger(client *mongo.Client, dbName string, envName string) *MongoLedger {
	db := client.Database(mongoDBConnection.GetDatabaseName(dbName, envName))
	return &MongoLedger{coll: db.Collection(CollectionName)}
}

func (l *MongoLedger) Record(ctx context.Context, entry Entry) error {
	id := MakeEntryID(entry.ScreenID, entry.ImageID, entry.SourceFile)
	roiIDs := entry.RoiIDs
	if roiIDs == nil {
		roiIDs = []int64{}
	}

	filter := bson.D{{Key: "_id", Value: id}}
	update := bson.D{
		{Key: "$set", Value: bson.D{
			{Key: "screenId", Value: entry.ScreenID},
			{Key: "imageId", Value: entry.ImageID},
			{Key: "sourceFile", Value: entry.SourceFile},
			{Key: "createdUnixSec", Value: entry.CreatedUnixSec},
		}},
		{Key: "$addToSet", Value: bson.D{
			{Key: "roiIds", Value: bson.D{{Key: "$each", Value: roiIDs}}},
		}},
	}

	_, err := l.coll.UpdateOne(ctx, filter, update, options.Update().SetUpsert(true))
	if err != nil {
		return errors.Wrapf(err, "failed to record ledger entry %v", id)
	}
	return nil
}

func (l *MongoLedger) List(ctx context.Context, screenID int64, sourceFile string) ([]Entry, error) {
	filter := bson.D{{Key: "screenId", Value: screenID}}
	if len(sourceFile) > 0 {
		filter = append(filter, bson.E{Key: "sourceFile", Value: sourceFile})
	}

	opts := options.Find().SetSort(bson.D{{Key: "imageId", Value: 1}, {Key: "sourceFile", Value: 1}})
	cursor, err := l.coll.Find(ctx, filter, opts)
	if err != nil {
		return nil, errors.Wrapf(err, "failed to list ledger for screen %v", screenID)
	}

	result := []Entry{}
	if err := cursor.All(ctx, &result); err != nil {
		return nil, errors.Wrapf(err, "failed to read ledger for screen %v", screenID)
	}
	return result, nil
}

func (l *MongoLedger) Forget(ctx context.Context, screenID int64, imageID int64, sourceFile string) error {
	id := MakeEntryID(screenID, imageID, sourceFile)
	_, err := l.coll.DeleteOne(ctx, bson.D{{Key: "_id", Value: id}})
	if err != nil {
		return errors.Wrapf(err, "failed to delete ledger entry %v", id)
	}
	return nil
}
