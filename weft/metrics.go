// Copyright 2025 The Weft Authors
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package weft

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

// Metrics is the narrow Prometheus recorder the worker pool and connection
// pipeline report through. A nil *Metrics is valid and every method on it
// is a no-op, so metrics cost nothing when WithMetrics is never supplied.
type Metrics struct {
	workers  prometheus.Gauge
	scaleUps prometheus.Counter
	requests *prometheus.CounterVec
	latency  *prometheus.HistogramVec
}

// NewMetrics builds a Metrics and registers its collectors with reg.
func NewMetrics(reg prometheus.Registerer) *Metrics {
	m := &Metrics{
		workers: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: "weft",
			Name:      "workers",
			Help:      "Current number of running pool workers.",
		}),
		scaleUps: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "weft",
			Name:      "scale_up_total",
			Help:      "Number of times the accept loop grew the worker pool under backpressure.",
		}),
		requests: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "weft",
			Name:      "requests_total",
			Help:      "Requests served, by method and response status class.",
		}, []string{"method", "status_class"}),
		latency: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: "weft",
			Name:      "request_duration_seconds",
			Help:      "End-to-end pipeline latency, by method.",
			Buckets:   prometheus.DefBuckets,
		}, []string{"method"}),
	}
	reg.MustRegister(m.workers, m.scaleUps, m.requests, m.latency)
	return m
}

func (m *Metrics) setWorkerCount(n int) {
	if m == nil {
		return
	}
	m.workers.Set(float64(n))
}

func (m *Metrics) incScaleUp() {
	if m == nil {
		return
	}
	m.scaleUps.Inc()
}

func (m *Metrics) observeRequest(method, status string, d time.Duration) {
	if m == nil {
		return
	}
	m.requests.WithLabelValues(method, statusClass(status)).Inc()
	m.latency.WithLabelValues(method).Observe(d.Seconds())
}

// statusClass extracts the leading digit of an "NNN Reason" status line as
// "Nxx", defaulting to "unknown" for a malformed or empty status.
func statusClass(status string) string {
	if len(status) == 0 || status[0] < '1' || status[0] > '5' {
		return "unknown"
	}
	return string(status[0]) + "xx"
}
