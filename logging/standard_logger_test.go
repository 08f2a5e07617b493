/*
 * Copyright 2021. Go-Sharding Author All Rights Reserved.
 *
 *  Licensed under the Apache License, Version 2.0 (the "License");
 *  you may not use this file except in compliance with the License.
 *  You may obtain a copy of the License at
 *
 *      http://www.apache.org/licenses/LICENSE-2.0
 *
 *  Unless required by applicable law or agreed to in writing, software
 *  distributed under the License is distributed on an "AS IS" BASIS,
 *  WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
 *  See the License for the specific language governing permissions and
 *  limitations under the License.
 *
 *  File author: Anders Xiao
 */

package logging

import (
	"fmt"
	"sync"
)

var _ StandardLogger = &recordingLogger{}

// recordingLogger keeps every message as "LEVEL text".
type recordingLogger struct {
	mu       sync.Mutex
	messages []string
}

func (r *recordingLogger) record(level string, msg string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.messages = append(r.messages, level+" "+msg)
}

func (r *recordingLogger) Messages() []string {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]string(nil), r.messages...)
}

func (r *recordingLogger) Debug(args ...interface{}) { r.record("DEBUG", fmt.Sprint(args...)) }
func (r *recordingLogger) Info(args ...interface{})  { r.record("INFO", fmt.Sprint(args...)) }
func (r *recordingLogger) Warn(args ...interface{})  { r.record("WARN", fmt.Sprint(args...)) }
func (r *recordingLogger) Error(args ...interface{}) { r.record("ERROR", fmt.Sprint(args...)) }
func (r *recordingLogger) Panic(args ...interface{}) { r.record("PANIC", fmt.Sprint(args...)) }
func (r *recordingLogger) Fatal(args ...interface{}) { r.record("FATAL", fmt.Sprint(args...)) }

func (r *recordingLogger) Debugf(template string, args ...interface{}) {
	r.Debug(fmt.Sprintf(template, args...))
}

func (r *recordingLogger) Infof(template string, args ...interface{}) {
	r.Info(fmt.Sprintf(template, args...))
}

func (r *recordingLogger) Warnf(template string, args ...interface{}) {
	r.Warn(fmt.Sprintf(template, args...))
}

func (r *recordingLogger) Errorf(template string, args ...interface{}) {
	r.Error(fmt.Sprintf(template, args...))
}

func (r *recordingLogger) Panicf(template string, args ...interface{}) {
	r.Panic(fmt.Sprintf(template, args...))
}

func (r *recordingLogger) Fatalf(template string, args ...interface{}) {
	r.Fatal(fmt.Sprintf(template, args...))
}
