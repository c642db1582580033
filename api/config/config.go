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

package config

import (
	"encoding/json"
	"flag"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"reflect"
	"strconv"

	"github.com/idr/idroi/core/logger"
)

const envPrefix = "IDROI_CONFIG_"

// ImporterConfig - Everything the importer needs that isn't a command line positional.
// Sources in increasing priority: defaults, JSON config file, IDROI_CONFIG_<Field> env vars, command line flags
type ImporterConfig struct {
	// OMERO login
	OmeroServer   string
	OmeroPort     int32
	OmeroUser     string
	OmeroPassword string
	OmeroGroup    string
	OmeroSecret   string // AWS Secrets Manager secret holding host/port/username/password

	// Where the import ledger lives. A local dir, or s3://bucket. Ignored if LedgerDBName is set
	LedgerBucket string

	// Mongo ledger, LedgerMongoSecret blank means local mongo
	LedgerMongoSecret string
	LedgerDBName      string

	PushGatewayURL string
	SentryEndpoint string

	EnvironmentName string
	LogLevel        string
	HTTPTimeoutSec  int32

	DryRun bool
}

func homeDir() string {
	if h := os.Getenv("HOME"); h != "" {
		return h
	}
	return os.Getenv("USERPROFILE") // windows
}

func defaultConfig() ImporterConfig {
	return ImporterConfig{
		OmeroPort:       443,
		LedgerBucket:    filepath.Join(homeDir(), ".idroi", "ledger"),
		EnvironmentName: "local",
		LogLevel:        logger.GetLogLevelName(logger.LogInfo),
		HTTPTimeoutSec:  60,
	}
}

// NewConfigFromFile - defaults, overwritten by whatever the file has, overwritten by env vars
func NewConfigFromFile(configFilePath string) (ImporterConfig, error) {
	fileData, err := os.ReadFile(configFilePath)
	if err != nil {
		return ImporterConfig{}, fmt.Errorf("could not read config file at %s", configFilePath)
	}
	return buildConfig(fileData)
}

// NewConfigFromEnv - defaults overwritten by env vars, for when there's no config file (eg in a lambda)
func NewConfigFromEnv() (ImporterConfig, error) {
	return buildConfig(nil)
}

func buildConfig(configJson []byte) (ImporterConfig, error) {
	cfg := defaultConfig()

	if len(configJson) > 0 {
		if err := json.Unmarshal(configJson, &cfg); err != nil {
			return cfg, fmt.Errorf("failed to parse custom config: %v", err)
		}
	}

	// Override Config with any values explicitly set in Env Vars (IDROI_CONFIG_*)
	reflection := reflect.ValueOf(&cfg).Elem()
	for i := 0; i < reflection.NumField(); i++ {
		fieldName := reflection.Type().Field(i).Name
		field := reflection.Field(i)
		val, present := os.LookupEnv(envPrefix + fieldName)
		if !present {
			continue
		}

		switch field.Kind() {
		case reflect.String:
			field.SetString(val)
		case reflect.Int32:
			i, err := strconv.ParseInt(val, 10, 32)
			if err != nil {
				return cfg, fmt.Errorf("could not cast value %s%s=%s to Int", envPrefix, fieldName, val)
			}
			field.SetInt(i)
		case reflect.Bool:
			b, err := strconv.ParseBool(val)
			if err != nil {
				return cfg, fmt.Errorf("could not cast value %s%s=%s to Bool", envPrefix, fieldName, val)
			}
			field.SetBool(b)
		}
	}

	return cfg, nil
}

// Validate - checks values that would only blow up later on
func (cfg ImporterConfig) Validate() error {
	if _, err := logger.GetLogLevel(cfg.LogLevel); err != nil {
		return err
	}
	if cfg.OmeroPort <= 0 || cfg.OmeroPort > 65535 {
		return fmt.Errorf("invalid OMERO port: %v", cfg.OmeroPort)
	}
	if cfg.HTTPTimeoutSec <= 0 {
		return fmt.Errorf("invalid HTTP timeout: %v", cfg.HTTPTimeoutSec)
	}
	return nil
}

// Init - Parses command line args into config. Flags may come before, between or after the positional args,
// which are returned in order. Returns flag.ErrHelp if -h was asked for
func Init(args []string, output io.Writer) (ImporterConfig, []string, error) {
	fs := flag.NewFlagSet("idroi", flag.ContinueOnError)
	fs.SetOutput(output)
	fs.Usage = func() {
		fmt.Fprintf(output, "Usage:\n  idroi [flags] import <hdf5 file> <screen id>\n  idroi [flags] remove [hdf5 file] <screen id>\n  idroi [flags] parse <hdf5 file>\n")
		fs.PrintDefaults()
	}

	configFilePath := fs.String("config", "", "Path to a JSON config file")
	server := fs.String("server", "", "OMERO server host")
	port := fs.Int("port", 0, "OMERO server port")
	user := fs.String("user", "", "OMERO user name")
	password := fs.String("password", "", "OMERO password")
	group := fs.String("group", "", "OMERO group id to work in")
	secret := fs.String("secret", "", "AWS secret holding the OMERO login")
	ledger := fs.String("ledger", "", "Ledger directory or s3://bucket")
	logLevel := fs.String("log-level", "", "DEBUG, INFO or ERROR")
	dryRun := fs.Bool("dry-run", false, "Build ROIs and report what would be saved or deleted without changing anything")

	positionals := []string{}
	remaining := args
	for {
		if err := fs.Parse(remaining); err != nil {
			return ImporterConfig{}, nil, err
		}
		if fs.NArg() <= 0 {
			break
		}
		positionals = append(positionals, fs.Arg(0))
		remaining = fs.Args()[1:]
	}

	var cfg ImporterConfig
	var err error
	if len(*configFilePath) > 0 {
		cfg, err = NewConfigFromFile(*configFilePath)
	} else {
		cfg, err = NewConfigFromEnv()
	}
	if err != nil {
		return cfg, positionals, err
	}

	// Only flags that were actually given override
	var flagErr error
	fs.Visit(func(f *flag.Flag) {
		switch f.Name {
		case "server":
			cfg.OmeroServer = *server
		case "port":
			// Checked before narrowing, or a huge value could wrap round to a valid port
			if *port <= 0 || *port > 65535 {
				flagErr = fmt.Errorf("invalid OMERO port: %v", *port)
			} else {
				cfg.OmeroPort = int32(*port)
			}
		case "user":
			cfg.OmeroUser = *user
		case "password":
			cfg.OmeroPassword = *password
		case "group":
			cfg.OmeroGroup = *group
		case "secret":
			cfg.OmeroSecret = *secret
		case "ledger":
			cfg.LedgerBucket = *ledger
		case "log-level":
			cfg.LogLevel = *logLevel
		case "dry-run":
			cfg.DryRun = *dryRun
		}
	})
	if flagErr != nil {
		return cfg, positionals, flagErr
	}

	return cfg, positionals, cfg.Validate()
}
