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
	"encoding/json"
	"fmt"
)

const s3EventJSON = `{
    "Records": [
        {
            "eventVersion": "2.1",
            "eventSource": "aws:s3",
            "awsRegion": "us-east-1",
            "eventTime": "2024-06-22T14:36:07.988Z",
            "eventName": "ObjectCreated:Put",
            "s3": {
                "s3SchemaVersion": "1.0",
                "bucket": {
                    "name": "idr-roi-uploads",
                    "arn": "arn:aws:s3:::idr-roi-uploads"
                },
                "object": {
                    "key": "screens/102/idr0013-objects.h5",
                    "size": 41407836
                }
            }
        }
    ]
}`

func Example_getEventType() {
	var e Event

	fmt.Printf("%v\n", e.getEventType([]byte(s3EventJSON)))
	fmt.Printf("%v\n", e.getEventType([]byte(`{"Records": [{"EventSource": "aws:sns"}]}`)))
	fmt.Printf("%v\n", e.getEventType([]byte(`{"Records": [{"eventSource": "aws:sqs"}]}`)))
	fmt.Printf("%v\n", e.getEventType([]byte(`{"Records": []}`)))
	fmt.Printf("%v\n", e.getEventType([]byte(`not json`)))

	// Output:
	// 1
	// 2
	// 3
	// 0
	// 0
}

func Example_unmarshalS3Event() {
	var e Event
	err := json.Unmarshal([]byte(s3EventJSON), &e)
	fmt.Printf("%v|%v\n", err, len(e.Records))
	fmt.Printf("%v|%v|%v\n", e.Records[0].EventSource, e.Records[0].AWSRegion, e.Records[0].EventSourceArn)
	fmt.Printf("%+v\n", e.S3Objects())

	// Output:
	// <nil>|1
	// aws:s3|us-east-1|arn:aws:s3:::idr-roi-uploads
	// [{Bucket:idr-roi-uploads Key:screens/102/idr0013-objects.h5}]
}

func Example_unmarshalSQSEvent() {
	body, _ := json.Marshal(s3EventJSON)
	sqs := `{"Records": [{"messageId": "m1", "eventSource": "aws:sqs", "awsRegion": "us-west-2", "eventSourceARN": "arn:aws:sqs:us-west-2:123:roi-queue", "body": ` + string(body) + `}]}`

	var e Event
	err := json.Unmarshal([]byte(sqs), &e)
	fmt.Printf("%v|%v\n", err, len(e.Records))
	fmt.Printf("%v|%v|%v\n", e.Records[0].EventSource, e.Records[0].AWSRegion, e.Records[0].SQS.MessageId)
	fmt.Printf("%+v\n", e.S3Objects())

	// Output:
	// <nil>|1
	// aws:sqs|us-west-2|m1
	// [{Bucket:idr-roi-uploads Key:screens/102/idr0013-objects.h5}]
}

func Example_unmarshalSNSEvent() {
	msg, _ := json.Marshal(s3EventJSON)
	sns := `{"Records": [{"EventSource": "aws:sns", "Sns": {"TopicArn": "arn:aws:sns:eu-west-1:123:roi-topic", "Message": ` + string(msg) + `}}]}`

	var e Event
	err := json.Unmarshal([]byte(sns), &e)
	fmt.Printf("%v|%v\n", err, len(e.Records))
	fmt.Printf("%v|%v\n", e.Records[0].EventSource, e.Records[0].AWSRegion)
	fmt.Printf("%+v\n", e.S3Objects())

	// Output:
	// <nil>|1
	// aws:sns|eu-west-1
	// [{Bucket:idr-roi-uploads Key:screens/102/idr0013-objects.h5}]
}

func Example_unmarshalUnknownEvent() {
	var e Event
	err := json.Unmarshal([]byte(`{"Records": [{"eventSource": "aws:kinesis"}]}`), &e)
	fmt.Println(err)

	// Output:
	// unrecognised event, expected S3, SNS or SQS records
}
