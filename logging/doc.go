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

// Package logging provides the structured logging weft.App and its
// middleware log through: a *Logger wrapping log/slog, selectable
// handlers, and request/error/duration helpers built against
// httpproto.Request rather than net/http.
//
// Design philosophy: this package abstracts the slog handler choice to
// enable:
//   - Zero-dependency default (slog in stdlib)
//   - Drop-in replacements for existing logging infrastructure
//   - Multiple independent Logger instances in the same process
//
// weft.Bind builds its default logger this way (see weft/app.go):
//
//	logger := logging.MustNew(
//	    logging.WithTextHandler(),
//	    logging.WithServiceName(cfg.serviceName),
//	    logging.WithServiceVersion(cfg.serviceVersion),
//	    logging.WithEnvironment(cfg.environment),
//	)
//
// # Basic Usage
//
//	logger := logging.MustNew(logging.WithConsoleHandler())
//	defer logger.Shutdown(context.Background())
//	logger.Info("service started", "addr", ":8080")
//
// # Structured Logging
//
//	logger := logging.MustNew(
//	    logging.WithJSONHandler(),
//	    logging.WithServiceName("my-service"),
//	    logging.WithDebugLevel(),
//	)
//	defer logger.Shutdown(context.Background())
//	logger.Info("request processed",
//	    "method", httpproto.GET.String(),
//	    "path", "/api/users",
//	    "status", "200 OK",
//	)
//
// # Convenience Methods
//
// The package provides helper methods for common logging patterns, all
// built against this engine's own wire types:
//
//	// connection-pipeline request logging (see weft/app.go's serveConnection)
//	logger.LogRequest(req, "status", "200 OK", "duration_ms", 45)
//
//	// Error logging with context
//	logger.LogError(err, "operation failed", "route", req.Route.Path)
//
//	// Duration tracking
//	start := time.Now()
//	logger.LogDuration("processing completed", start, "items", count)
//
// # Log Sampling
//
// Reduce log volume in high-traffic scenarios:
//
//	logger := logging.MustNew(
//	    logging.WithJSONHandler(),
//	    logging.WithSampling(logging.SamplingConfig{
//	        Initial:    100,          // Log first 100 entries
//	        Thereafter: 100,          // Then log 1 in 100
//	        Tick:       time.Minute,  // Reset every minute
//	    }),
//	)
//
// Note: Errors (level >= ERROR) always bypass sampling.
//
// # Dynamic Log Levels
//
// Change log levels at runtime:
//
//	logger.SetLevel(logging.LevelDebug)  // Enable debug logging
//	logger.SetLevel(logging.LevelWarn)   // Reduce to warnings only
//
// # Global Logger Registration
//
// To register as the global slog default (for use with slog.Info(), etc.):
//
//	logger := logging.MustNew(
//	    logging.WithJSONHandler(),
//	    logging.WithGlobalLogger(), // Sets slog.SetDefault()
//	)
//
// By default, loggers are NOT registered globally to allow multiple independent
// logger instances in the same process (weft.App never calls WithGlobalLogger
// for you).
//
// # Sensitive Data Redaction
//
// Sensitive data (password, token, secret, api_key, authorization) is
// automatically redacted from all log output. Additional sanitization can be
// configured using WithReplaceAttr.
package logging
