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

package logger

import (
	"fmt"
	"time"

	"github.com/getsentry/sentry-go"
)

// SentryLogger - Wraps another logger, anything logged as an error is also sent to Sentry. Sentry must
// have been initialised (see InitSentry) for anything to actually get sent
type SentryLogger struct {
	Inner ILogger
	// Allows tests to see what would be sent without talking to sentry
	capture func(msg string)
}

// NewSentryLogger - Wraps inner so errors go to sentry
func NewSentryLogger(inner ILogger) *SentryLogger {
	return &SentryLogger{
		Inner: inner,
		capture: func(msg string) {
			sentry.CaptureMessage(msg)
		},
	}
}

// InitSentry - Sets up the sentry client. Empty DSN means sentry is left disabled, which is not an error
func InitSentry(dsn string, environment string, release string) error {
	if len(dsn) <= 0 {
		return nil
	}

	return sentry.Init(sentry.ClientOptions{
		Dsn:         dsn,
		Environment: environment,
		Release:     release,
	})
}

// FlushSentry - Blocks until queued events are sent, or the timeout passes. Call before exiting
func FlushSentry(timeout time.Duration) bool {
	return sentry.Flush(timeout)
}

func (l *SentryLogger) Printf(level LogLevel, format string, a ...interface{}) {
	l.Inner.Printf(level, format, a...)

	if level == LogError && l.capture != nil {
		l.capture(fmt.Sprintf(format, a...))
	}
}
func (l *SentryLogger) Debugf(format string, a ...interface{}) {
	l.Printf(LogDebug, format, a...)
}
func (l *SentryLogger) Infof(format string, a ...interface{}) {
	l.Printf(LogInfo, format, a...)
}
func (l *SentryLogger) Errorf(format string, a ...interface{}) {
	l.Printf(LogError, format, a...)
}
