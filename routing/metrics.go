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

package routing

import (
	"time"

	"github.com/endink/go-sharding/logging"
	"github.com/endink/go-sharding/telemetry"
)

var log = logging.GetLogger("routing")

var bindingLog = logging.NewThrottledLogger("binding", log, 5*time.Second)

const (
	resultOk    = "ok"
	resultEmpty = "empty"
	resultError = "error"
)

var (
	meter = telemetry.GetMeter("routing")

	routeCounter = meter.NewInt64Counter("route", "number of routed statements by result", "result")

	routeLatency = meter.NewDurationValueRecorder("route.latency", "time spent on routing a statement", "result")

	routeTargets = meter.NewInt64ValueRecorder("route.targets", "number of targets of a routed statement",
		[]float64{0, 1, 2, 4, 8, 16, 32, 64, 128}, "tables")

	bindingFallbackCounter = meter.NewInt64Counter("binding.fallback", "binding groups routed by cartesian product because their unit counts differ")
)
