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

package telemetry

import (
	"errors"
	"strings"
	"sync"
	"unicode"

	"github.com/prometheus/client_golang/prometheus"
)

// Registry holds every metric created by this project.
var Registry = prometheus.NewRegistry()

var meterMap = make(map[string]*NamedMeter)
var meterMutex sync.Mutex

func GetMeter(instrumentationName string) *NamedMeter {
	meterMutex.Lock()
	defer meterMutex.Unlock()
	if m, ok := meterMap[instrumentationName]; ok {
		return m
	}
	nm := newNamedMeter(BuildMetricName(instrumentationName), Registry)
	meterMap[instrumentationName] = nm
	return nm
}

// BuildMetricName joins the statements with '_' after converting them to snake case,
// characters which are not letters or digits are treated as separators.
func BuildMetricName(statement ...string) string {
	if len(statement) == 0 {
		panic(errors.New("name for 'BuildMetricName' can not be nil or empty"))
	}

	array := make([]string, 0, len(statement))
	sb := &strings.Builder{}
	for _, s := range statement {
		sb.Reset()
		pendingSeparator := false
		prevLower := false
		for _, r := range s {
			switch {
			case unicode.IsUpper(r):
				if prevLower {
					pendingSeparator = true
				}
				r = unicode.ToLower(r)
				prevLower = false
			case unicode.IsLetter(r) || unicode.IsDigit(r):
				prevLower = true
			default:
				pendingSeparator = true
				prevLower = false
				continue
			}
			if pendingSeparator && sb.Len() > 0 {
				sb.WriteByte('_')
			}
			pendingSeparator = false
			sb.WriteRune(r)
		}
		if sb.Len() > 0 {
			array = append(array, sb.String())
		}
	}
	return strings.Join(array, "_")
}
