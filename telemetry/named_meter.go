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
	"sync"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// NamedMeter creates metrics prefixed by its name, metrics with the same name are created once.
type NamedMeter struct {
	namespace     string
	factory       promauto.Factory
	recorderMutex sync.Mutex
	recorders     map[string]interface{}
}

func newNamedMeter(namespace string, registerer prometheus.Registerer) *NamedMeter {
	return &NamedMeter{
		namespace: namespace,
		factory:   promauto.With(registerer),
		recorders: make(map[string]interface{}),
	}
}

func (m *NamedMeter) getOrPutRecorder(name string, factory func() interface{}) interface{} {
	m.recorderMutex.Lock()
	defer m.recorderMutex.Unlock()
	r, ok := m.recorders[name]
	if !ok {
		r = factory()
		m.recorders[name] = r
	}
	return r
}

func (m *NamedMeter) NewInt64ValueObserver(name, desc string, callback func() int64) {
	m.getOrPutRecorder(name, func() interface{} {
		return m.factory.NewGaugeFunc(prometheus.GaugeOpts{
			Namespace: m.namespace,
			Name:      BuildMetricName(name),
			Help:      desc,
		}, func() float64 {
			return float64(callback())
		})
	})
}

func (m *NamedMeter) NewInt64Counter(name, desc string, labelNames ...string) *prometheus.CounterVec {
	fac := func() interface{} {
		return m.factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: m.namespace,
			Name:      BuildMetricName(name, "total"),
			Help:      desc,
		}, labelNames)
	}
	return m.getOrPutRecorder(name, fac).(*prometheus.CounterVec)
}

func (m *NamedMeter) NewInt64ValueRecorder(name, desc string, buckets []float64, labelNames ...string) *prometheus.HistogramVec {
	fac := func() interface{} {
		return m.factory.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: m.namespace,
			Name:      BuildMetricName(name),
			Help:      desc,
			Buckets:   buckets,
		}, labelNames)
	}
	return m.getOrPutRecorder(name, fac).(*prometheus.HistogramVec)
}

func (m *NamedMeter) NewDurationValueRecorder(name, desc string, labelNames ...string) DurationValueRecorder {
	fac := func() interface{} {
		return DurationValueRecorder{
			histogram: m.factory.NewHistogramVec(prometheus.HistogramOpts{
				Namespace: m.namespace,
				Name:      BuildMetricName(name, "seconds"),
				Help:      desc,
				Buckets:   prometheus.ExponentialBuckets(0.00001, 4, 10),
			}, labelNames),
		}
	}
	return m.getOrPutRecorder(name, fac).(DurationValueRecorder)
}

type DurationValueRecorder struct {
	histogram *prometheus.HistogramVec
}

func (d DurationValueRecorder) Record(duration time.Duration, labelValues ...string) {
	d.histogram.WithLabelValues(labelValues...).Observe(duration.Seconds())
}

func (d DurationValueRecorder) RecordLatency(startTime time.Time, labelValues ...string) {
	d.Record(time.Since(startTime), labelValues...)
}
