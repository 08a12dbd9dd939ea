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

// Package recovery guards a connection pipeline run against a panicking
// middleware or endpoint, turning it into a 500 resolution instead of
// taking the worker (and the whole pool, if unguarded) down with it.
//
// The Decision-based middleware protocol this module serves is a flat,
// driver-run list rather than a nested call chain (there is no c.Next() a
// middleware can wrap), so — unlike an http.Handler-chain recovery
// middleware — this package does not itself implement middleware.Func. It
// instead exposes Guard, which the App's connection pipeline
// (serveConnection, via resolveWithRecovery) wraps around the whole
// middleware-chain-plus-endpoint invocation for one connection, which is
// the equivalent span of user code a chain-wrapping recovery middleware
// would have covered.
package recovery

import (
	"fmt"
	"runtime"

	"github.com/weftserve/weft/httpproto"
)

// Option configures Guard.
type Option func(*config)

type config struct {
	stackTrace      bool
	stackSize       int
	logger          func(err any, stack []byte)
	disableStackAll bool
}

func defaultConfig() *config {
	return &config{
		stackTrace:      true,
		stackSize:       4 << 10,
		disableStackAll: true,
		logger:          func(any, []byte) {},
	}
}

// WithStackTrace enables or disables stack trace capture. Default: true.
func WithStackTrace(enabled bool) Option {
	return func(c *config) { c.stackTrace = enabled }
}

// WithStackSize caps the captured stack trace in bytes. Default: 4KB.
func WithStackSize(size int) Option {
	return func(c *config) { c.stackSize = size }
}

// WithLogger sets the function invoked with the recovered value and its
// stack trace (nil if WithStackTrace(false)).
func WithLogger(logger func(err any, stack []byte)) Option {
	return func(c *config) { c.logger = logger }
}

// WithDisableStackAll limits capture to the panicking goroutine's stack
// rather than every goroutine. Default: true.
func WithDisableStackAll(disabled bool) Option {
	return func(c *config) { c.disableStackAll = disabled }
}

// Guard runs fn and, if it panics, recovers and returns a 500 Resolution
// instead of letting the panic escape to the calling worker.
func Guard(fn func() httpproto.Resolution, opts ...Option) (res httpproto.Resolution) {
	cfg := defaultConfig()
	for _, opt := range opts {
		opt(cfg)
	}

	defer func() {
		if err := recover(); err != nil {
			var stack []byte
			if cfg.stackTrace {
				buf := make([]byte, cfg.stackSize)
				stack = buf[:runtime.Stack(buf, !cfg.disableStackAll)]
			}
			cfg.logger(err, stack)
			res = httpproto.Bytes("500 Internal Server Error", "text/plain",
				[]byte(fmt.Sprintf("internal server error: %v", err)))
		}
	}()

	return fn()
}
