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

package services

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/aws/aws-sdk-go/aws/session"
	"github.com/aws/aws-sdk-go/service/s3/s3iface"
	"github.com/idr/idroi/api/config"
	"github.com/idr/idroi/api/roiimport"
	"github.com/idr/idroi/core/awsutil"
	"github.com/idr/idroi/core/fileaccess"
	"github.com/idr/idroi/core/h5table"
	"github.com/idr/idroi/core/importMetrics"
	"github.com/idr/idroi/core/logger"
	"github.com/idr/idroi/core/mongoDBConnection"
	"github.com/idr/idroi/core/omero"
	"github.com/idr/idroi/core/roiLedger"
	"github.com/idr/idroi/core/timestamper"
	"github.com/pkg/errors"
	"go.mongodb.org/mongo-driver/mongo"
)

// NOTE: these 2 vars are set at build time with -ldflags "-X ..."
var ApiVersion string
var GitHash string

// ImporterServices - everything a front end (CLI or lambda) needs to run a command. Instead of global
// variables we pass this around, and tests can build one with mocks in it
type ImporterServices struct {
	// Configuration read in on startup
	Config config.ImporterConfig

	// Default logger. Errors also go to sentry if it's configured
	Log logger.ILogger

	AWSSession *session.Session

	// Anything talking to S3 should use this
	S3 s3iface.S3API

	// Used to read s3:// input files
	S3FS fileaccess.FileAccess

	// Only set if the ledger lives in mongo
	Mongo *mongo.Client

	Metrics *importMetrics.Metrics

	// Timestamp retriever - so can be mocked for unit tests
	TimeStamper timestamper.ITimeStamper

	// Temp copies of S3 input files, removed by Finish
	tempFiles []string
}

// InitImporterServices sets up logging, sentry, AWS and metrics. Connections to OMERO and the ledger are
// made later, only by the commands that need them
func InitImporterServices(cfg config.ImporterConfig) (*ImporterServices, error) {
	level, err := logger.GetLogLevel(cfg.LogLevel)
	if err != nil {
		return nil, err
	}

	var ourLogger logger.ILogger = logger.NewStdOutLogger(level)

	if len(cfg.SentryEndpoint) > 0 {
		if err := logger.InitSentry(cfg.SentryEndpoint, cfg.EnvironmentName, ApiVersion); err != nil {
			ourLogger.Errorf("Sentry initialization failed: %v", err)
		} else {
			ourLogger = logger.NewSentryLogger(ourLogger)
		}
	}

	// Get a session for the default region
	sess, err := awsutil.GetSession()
	if err != nil {
		return nil, errors.Wrap(err, "failed to create AWS session")
	}

	s3svc, err := awsutil.GetS3(sess)
	if err != nil {
		return nil, errors.Wrap(err, "failed to create AWS S3 service")
	}

	return &ImporterServices{
		Config:      cfg,
		Log:         ourLogger,
		AWSSession:  sess,
		S3:          s3svc,
		S3FS:        fileaccess.MakeS3Access(s3svc),
		Metrics:     importMetrics.New(),
		TimeStamper: &timestamper.UnixTimeNowStamper{},
	}, nil
}

// ConnectOmero logs in to OMERO. If a secret is configured, whatever it holds overrides the configured login
func (svcs *ImporterServices) ConnectOmero(ctx context.Context) (*omero.Client, error) {
	info := omero.ConnectInfo{
		Host:  svcs.Config.OmeroServer,
		Port:  int(svcs.Config.OmeroPort),
		User:  svcs.Config.OmeroUser,
		Pass:  svcs.Config.OmeroPassword,
		Group: svcs.Config.OmeroGroup,
	}

	if len(svcs.Config.OmeroSecret) > 0 {
		var err error
		info, err = omero.GetCredentialsFromSecretCache(awsutil.GetSecretsManager(svcs.AWSSession), svcs.Config.OmeroSecret, info)
		if err != nil {
			return nil, errors.Wrap(err, "failed to read OMERO login from secrets cache")
		}
	}

	return omero.Connect(ctx, info, time.Duration(svcs.Config.HTTPTimeoutSec)*time.Second, svcs.Log)
}

// ledgerLocation - where the file ledger lives given the configured LedgerBucket: an S3 bucket or a local dir
func ledgerLocation(ledgerBucket string) (bool, string) {
	if fileaccess.IsS3Url(ledgerBucket) {
		return true, strings.TrimSuffix(strings.TrimPrefix(ledgerBucket, "s3://"), "/")
	}
	return false, ledgerBucket
}

// OpenLedger picks the ledger implementation: mongo if a DB name is configured, otherwise JSON files in
// an S3 bucket or a local directory
func (svcs *ImporterServices) OpenLedger() (roiLedger.Ledger, error) {
	if len(svcs.Config.LedgerDBName) > 0 {
		client, err := mongoDBConnection.Connect(svcs.AWSSession, svcs.Config.LedgerMongoSecret, svcs.Log)
		if err != nil {
			return nil, errors.Wrap(err, "failed to connect to ledger DB")
		}
		svcs.Mongo = client

		dbName := mongoDBConnection.GetDatabaseName(svcs.Config.LedgerDBName, svcs.Config.EnvironmentName)
		svcs.Log.Infof("Using ledger DB: %v", dbName)
		return roiLedger.MakeMongoLedger(client, svcs.Config.LedgerDBName, svcs.Config.EnvironmentName), nil
	}

	isS3, root := ledgerLocation(svcs.Config.LedgerBucket)
	if len(root) <= 0 {
		return nil, errors.New("no ledger location configured")
	}

	svcs.Log.Infof("Using ledger: %v", svcs.Config.LedgerBucket)
	if isS3 {
		return roiLedger.MakeFileLedger(svcs.S3FS, root), nil
	}
	return roiLedger.MakeFileLedger(&fileaccess.FSAccess{}, root), nil
}

// MakeImporter connects to OMERO and the ledger and returns an importer that uses them
func (svcs *ImporterServices) MakeImporter(ctx context.Context) (*roiimport.Importer, error) {
	client, err := svcs.ConnectOmero(ctx)
	if err != nil {
		return nil, err
	}

	ledger, err := svcs.OpenLedger()
	if err != nil {
		return nil, err
	}

	return &roiimport.Importer{
		Query:       client,
		Update:      client,
		Ledger:      ledger,
		Log:         svcs.Log,
		Metrics:     svcs.Metrics,
		TimeStamper: svcs.TimeStamper,
		Columns:     roiimport.DefaultColumns(),
		DryRun:      svcs.Config.DryRun,
	}, nil
}

// MakeParser returns an importer that can only Parse, it has no remote connections
func (svcs *ImporterServices) MakeParser() *roiimport.Importer {
	return &roiimport.Importer{
		Log:         svcs.Log,
		Metrics:     svcs.Metrics,
		TimeStamper: svcs.TimeStamper,
		Columns:     roiimport.DefaultColumns(),
	}
}

// OpenSource opens an HDF5 file. s3:// paths are first copied to a local temp file, which Finish removes
func (svcs *ImporterServices) OpenSource(path string) (*h5table.FileSource, error) {
	localPath := path
	if fileaccess.IsS3Url(path) {
		bucket, key, err := fileaccess.SplitS3Url(path)
		if err != nil {
			return nil, err
		}

		svcs.Log.Infof("Downloading %v", path)
		localPath, err = fileaccess.CopyToLocalFile(svcs.S3FS, bucket, key, os.TempDir())
		if err != nil {
			return nil, err
		}
		svcs.tempFiles = append(svcs.tempFiles, localPath)
	}

	src, err := h5table.OpenFile(localPath)
	if err != nil {
		return nil, errors.Wrapf(err, "failed to open %v", filepath.Base(path))
	}
	return src, nil
}

// Finish is called once the command is done, before exiting. Problems are
// only logged, the command's own result is what matters. Metrics are pushed
// then replaced, so the lambda's next file in the same invocation starts from zero
func (svcs *ImporterServices) Finish(grouping map[string]string) {
	if len(svcs.Config.PushGatewayURL) > 0 {
		if err := svcs.Metrics.Push(svcs.Config.PushGatewayURL, grouping); err != nil {
			svcs.Log.Errorf("%v", err)
		}
	}
	svcs.Metrics = importMetrics.New()

	for _, f := range svcs.tempFiles {
		if err := os.Remove(f); err != nil {
			svcs.Log.Errorf("Failed to remove temp file %v: %v", f, err)
		}
	}
	svcs.tempFiles = nil

	if svcs.Mongo != nil {
		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := svcs.Mongo.Disconnect(ctx); err != nil {
			svcs.Log.Errorf("Failed to disconnect from ledger DB: %v", err)
		}
		svcs.Mongo = nil
	}

	if len(svcs.Config.SentryEndpoint) > 0 {
		logger.FlushSentry(2 * time.Second)
	}
}

// Grouping - Pushgateway labels for a run
func Grouping(command string, screenID int64) map[string]string {
	result := map[string]string{"command": command}
	if screenID > 0 {
		result["screen"] = fmt.Sprintf("%v", screenID)
	}
	return result
}
