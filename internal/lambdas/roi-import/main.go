package main

import (
	"context"
	"fmt"
	"regexp"
	"strconv"

	"github.com/aws/aws-lambda-go/lambda"
	"github.com/idr/idroi/api/config"
	"github.com/idr/idroi/api/services"
	"github.com/idr/idroi/core/awsutil"
	"github.com/idr/idroi/core/logger"
	"github.com/pkg/errors"
)

// Uploads are expected at screens/<screen id>/<anything>.h5
var screenKeyRegex = regexp.MustCompile(`^screens/([0-9]+)/.+\.(h5|hdf5)$`)

// screenIDFromKey - the screen an uploaded file is for, or false if the key isn't an upload we handle
func screenIDFromKey(key string) (int64, bool) {
	m := screenKeyRegex.FindStringSubmatch(key)
	if m == nil {
		return 0, false
	}

	id, err := strconv.ParseInt(m[1], 10, 64)
	if err != nil || id <= 0 {
		return 0, false
	}
	return id, true
}

func HandleRequest(ctx context.Context, event awsutil.Event) (string, error) {
	cfg, err := config.NewConfigFromEnv()
	if err != nil {
		return "", errors.Wrap(err, "failed to read configuration")
	}
	if err := cfg.Validate(); err != nil {
		return "", err
	}

	svcs, err := services.InitImporterServices(cfg)
	if err != nil {
		return "", err
	}
	defer logger.HandlePanicWithLog(svcs.Log)

	imported := 0
	for _, obj := range event.S3Objects() {
		screenID, ok := screenIDFromKey(obj.Key)
		if !ok {
			svcs.Log.Infof("Ignoring %v/%v, not a screen upload", obj.Bucket, obj.Key)
			continue
		}

		err := importFile(ctx, svcs, "s3://"+obj.Bucket+"/"+obj.Key, screenID)
		svcs.Finish(services.Grouping("import", screenID))
		if err != nil {
			return "", errors.Wrapf(err, "import of %v/%v failed", obj.Bucket, obj.Key)
		}
		imported++
	}

	return fmt.Sprintf("Imported %v files", imported), nil
}

func importFile(ctx context.Context, svcs *services.ImporterServices, path string, screenID int64) error {
	imp, err := svcs.MakeImporter(ctx)
	if err != nil {
		return err
	}

	src, err := svcs.OpenSource(path)
	if err != nil {
		return err
	}
	defer src.Close()

	summary, err := imp.Import(ctx, src, path, screenID)
	svcs.Log.Infof("Summary: %+v", summary)
	return err
}

func main() {
	lambda.Start(HandleRequest)
}
