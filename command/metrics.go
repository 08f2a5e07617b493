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

package command

import "github.com/endink/go-sharding/telemetry"

const (
	cacheHit  = "hit"
	cacheMiss = "miss"
)

var (
	meter = telemetry.GetMeter("command")

	classifyCounter = meter.NewInt64Counter("classify", "number of classified statements by cache result", "cache")
)

func init() {
	meter.NewInt64ValueObserver("classifier.cache.size", "number of statement types known by the default classifier", func() int64 {
		return int64(defaultClassifier.CacheSize())
	})
}
