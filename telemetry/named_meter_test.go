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
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNamedMeterCounter(t *testing.T) {
	meter := newNamedMeter("test", prometheus.NewRegistry())
	c := meter.NewInt64Counter("requests", "requests", "result")
	c.WithLabelValues("ok").Inc()

	again := meter.NewInt64Counter("requests", "requests", "result")
	again.WithLabelValues("ok").Add(2)

	assert.Same(t, c, again)
	assert.Equal(t, float64(3), testutil.ToFloat64(c.WithLabelValues("ok")))
}

func TestNamedMeterDuration(t *testing.T) {
	registry := prometheus.NewRegistry()
	meter := newNamedMeter("test", registry)
	d := meter.NewDurationValueRecorder("RouteLatency", "latency", "result")
	d.Record(time.Millisecond, "ok")
	d.RecordLatency(time.Now(), "ok")

	families, err := registry.Gather()
	require.NoError(t, err)
	require.Len(t, families, 1)
	assert.Equal(t, "test_route_latency_seconds", families[0].GetName())
	assert.Equal(t, uint64(2), families[0].GetMetric()[0].GetHistogram().GetSampleCount())
}

func TestNamedMeterObserver(t *testing.T) {
	registry := prometheus.NewRegistry()
	meter := newNamedMeter("test", registry)
	meter.NewInt64ValueObserver("cache.size", "size", func() int64 { return 7 })

	families, err := registry.Gather()
	require.NoError(t, err)
	require.Len(t, families, 1)
	assert.Equal(t, "test_cache_size", families[0].GetName())
	assert.Equal(t, float64(7), families[0].GetMetric()[0].GetGauge().GetValue())
}

func TestGetMeter(t *testing.T) {
	assert.Same(t, GetMeter("telemetry-test"), GetMeter("telemetry-test"))
}
