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
	"strings"
	"testing"
)

func Example_getLogLevel() {
	for _, name := range []string{"DEBUG", "info", " Error ", "VERBOSE"} {
		level, err := GetLogLevel(name)
		fmt.Printf("%v|%v|%v\n", level, GetLogLevelName(level), err)
	}

	// Output:
	// 0|DEBUG|<nil>
	// 1|INFO|<nil>
	// 2|ERROR|<nil>
	// 1|INFO|unknown log level: "VERBOSE"
}

func Example_memoryLogger() {
	l := &MemoryLogger{}
	l.Debugf("Images: %v", 12)
	l.Infof("Objects: %v", 300)
	l.Errorf("Failed to save ROIs for Image %v", 51)

	for _, line := range l.GetLogs() {
		fmt.Println(line)
	}
	fmt.Println(l.CountContaining("ROIs"))

	// Output:
	// DEBUG: Images: 12
	// INFO: Objects: 300
	// ERROR: Failed to save ROIs for Image 51
	// 1
}

func TestSentryLoggerOnlyCapturesErrors(t *testing.T) {
	inner := &MemoryLogger{}
	captured := []string{}
	l := &SentryLogger{Inner: inner, capture: func(msg string) { captured = append(captured, msg) }}

	l.Infof("Saved %v ROIs", 3)
	l.Debugf("detail")
	l.Errorf("Failed to save ROIs for Image %v: %v", 7, "timeout")

	if len(inner.GetLogs()) != 3 {
		t.Errorf("expected all 3 lines passed through, got %v", inner.GetLogs())
	}
	if len(captured) != 1 || !strings.Contains(captured[0], "Image 7") {
		t.Errorf("unexpected capture: %v", captured)
	}
}

func TestHandlePanicWithLog(t *testing.T) {
	l := &MemoryLogger{}

	defer func() {
		if r := recover(); r == nil {
			t.Errorf("expected panic to be re-raised")
		}
		if l.CountContaining("PANIC: boom") != 1 {
			t.Errorf("panic not logged: %v", l.GetLogs())
		}
	}()

	func() {
		defer HandlePanicWithLog(l)
		panic("boom")
	}()
}

func TestInitSentryNoDSN(t *testing.T) {
	if err := InitSentry("", "unit-test", "0.0.0"); err != nil {
		t.Errorf("expected no error for empty DSN, got %v", err)
	}
}
