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
	"sync"
)

// MemoryLogger - Keeps every line it's given, for tests that need to check what got logged
type MemoryLogger struct {
	mutex sync.Mutex
	logs  []string
}

func (l *MemoryLogger) Printf(level LogLevel, format string, a ...interface{}) {
	txt := logLevelPrefix[level] + ": " + fmt.Sprintf(format, a...)

	l.mutex.Lock()
	defer l.mutex.Unlock()
	l.logs = append(l.logs, txt)
}
func (l *MemoryLogger) Debugf(format string, a ...interface{}) {
	l.Printf(LogDebug, format, a...)
}
func (l *MemoryLogger) Infof(format string, a ...interface{}) {
	l.Printf(LogInfo, format, a...)
}
func (l *MemoryLogger) Errorf(format string, a ...interface{}) {
	l.Printf(LogError, format, a...)
}

// GetLogs - Returns a copy of everything logged so far
func (l *MemoryLogger) GetLogs() []string {
	l.mutex.Lock()
	defer l.mutex.Unlock()

	result := make([]string, len(l.logs))
	copy(result, l.logs)
	return result
}

// CountContaining - How many lines contain the given text
func (l *MemoryLogger) CountContaining(text string) int {
	count := 0
	for _, line := range l.GetLogs() {
		if strings.Contains(line, text) {
			count++
		}
	}
	return count
}
