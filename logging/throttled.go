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
	"time"
)

// ThrottledLogger writes at most one message per interval for each key. Messages dropped in the
// meantime are summarised once the interval is over.
type ThrottledLogger struct {
	name     string
	interval time.Duration
	logger   StandardLogger

	now       func() time.Time
	afterFunc func(time.Duration, func())

	mu    sync.Mutex
	slots map[string]*throttleSlot
}

type throttleSlot struct {
	last    time.Time
	skipped int
	pending bool
}

func NewThrottledLogger(name string, logger StandardLogger, interval time.Duration) *ThrottledLogger {
	if logger == nil {
		logger = GetLogger(name)
	}
	return &ThrottledLogger{
		name:     name,
		interval: interval,
		logger:   logger,
		now:      time.Now,
		afterFunc: func(d time.Duration, f func()) {
			time.AfterFunc(d, f)
		},
		slots: make(map[string]*throttleSlot),
	}
}

func (tl *ThrottledLogger) Infof(key string, format string, args ...interface{}) {
	tl.write(tl.logger.Info, key, format, args...)
}

func (tl *ThrottledLogger) Warnf(key string, format string, args ...interface{}) {
	tl.write(tl.logger.Warn, key, format, args...)
}

func (tl *ThrottledLogger) Errorf(key string, format string, args ...interface{}) {
	tl.write(tl.logger.Error, key, format, args...)
}

// SkippedCount returns the number of messages of the key dropped since the last summary.
func (tl *ThrottledLogger) SkippedCount(key string) int {
	tl.mu.Lock()
	defer tl.mu.Unlock()
	if s, ok := tl.slots[key]; ok {
		return s.skipped
	}
	return 0
}

func (tl *ThrottledLogger) write(output func(args ...interface{}), key string, format string, args ...interface{}) {
	now := tl.now()

	tl.mu.Lock()
	defer tl.mu.Unlock()

	slot, ok := tl.slots[key]
	if !ok {
		slot = &throttleSlot{}
		tl.slots[key] = slot
	}
	wait := tl.interval - now.Sub(slot.last)
	if !ok || wait <= 0 {
		slot.last = now
		output(fmt.Sprintf("%s: %s", tl.name, fmt.Sprintf(format, args...)))
		return
	}

	slot.skipped++
	if !slot.pending {
		slot.pending = true
		tl.afterFunc(wait, func() {
			tl.flush(output, key)
		})
	}
}

func (tl *ThrottledLogger) flush(output func(args ...interface{}), key string) {
	tl.mu.Lock()
	defer tl.mu.Unlock()
	slot := tl.slots[key]
	if slot.skipped > 0 {
		output(fmt.Sprintf("%s: %d message(s) of '%s' skipped", tl.name, slot.skipped, key))
	}
	slot.skipped = 0
	slot.pending = false
}
