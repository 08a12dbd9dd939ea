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
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/trace"

	"github.com/weftserve/weft/logging"
	"github.com/weftserve/weft/middleware/recovery"
)

// Option configures an App at construction time, in the functional-options
// style the teacher uses throughout.
type Option func(*config)

type config struct {
	serviceName    string
	serviceVersion string
	environment    string
	logger         *logging.Logger
	initialWorkers int
	scaleFactor    int
	errorCallback  func(string)
	metrics        *Metrics
	tracer         trace.Tracer
	recoveryOpts   []recovery.Option
}

// defaultConfig mirrors the spec's defaults: 10 for the scale factor, an
// unconfigured (no-op) tracer, and a small initial worker pool.
func defaultConfig() *config {
	return &config{
		serviceName:    "weft",
		initialWorkers: 4,
		scaleFactor:    10,
		tracer:         otel.Tracer("weft"),
	}
}

// WithServiceName sets the name attached to every log record and the
// banner. Default: "weft".
func WithServiceName(name string) Option {
	return func(c *config) { c.serviceName = name }
}

// WithServiceVersion sets the version attached to every log record.
func WithServiceVersion(version string) Option {
	return func(c *config) { c.serviceVersion = version }
}

// WithEnvironment sets the environment attached to every log record.
func WithEnvironment(env string) Option {
	return func(c *config) { c.environment = env }
}

// WithLogger installs a preconfigured logger in place of App's default
// text logger.
func WithLogger(l *logging.Logger) Option {
	return func(c *config) { c.logger = l }
}

// WithInitialWorkers sets the worker pool's starting size. Default: 4.
func WithInitialWorkers(n int) Option {
	return func(c *config) {
		if n > 0 {
			c.initialWorkers = n
		}
	}
}

// WithScaleFactor sets the multiplicative worker-pool scale factor applied
// when the accept loop observes backpressure (§4.7). Default: 10.
func WithScaleFactor(factor int) Option {
	return func(c *config) {
		if factor > 1 {
			c.scaleFactor = factor
		}
	}
}

// WithErrorCallback installs the sink invoked with a message string for
// parse failures, accept errors, and routing misses. Must be set before
// Start to see startup-adjacent errors; App logs through its Logger
// regardless of whether this is set.
func WithErrorCallback(fn func(string)) Option {
	return func(c *config) { c.errorCallback = fn }
}

// WithMetrics attaches a Metrics recorder (see NewMetrics) to the worker
// pool and connection pipeline.
func WithMetrics(m *Metrics) Option {
	return func(c *config) { c.metrics = m }
}

// WithTracer sets the tracer the connection pipeline starts a span on per
// request. Default: the global OpenTelemetry tracer, which is a no-op
// until the embedding application configures an exporter.
func WithTracer(t trace.Tracer) Option {
	return func(c *config) { c.tracer = t }
}

// WithRecoveryOptions forwards options to the recovery.Guard wrapping
// every connection's middleware-chain-plus-endpoint span.
func WithRecoveryOptions(opts ...recovery.Option) Option {
	return func(c *config) { c.recoveryOpts = opts }
}
