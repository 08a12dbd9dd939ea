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

// Package cors provides middleware that handles Cross-Origin Resource
// Sharing, annotating the response with the appropriate Access-Control-*
// headers and short-circuiting preflight OPTIONS requests.
package cors

import (
	"context"
	"slices"
	"strconv"
	"strings"

	"github.com/weftserve/weft/httpproto"
	"github.com/weftserve/weft/middleware"
)

// Option configures New.
type Option func(*config)

type config struct {
	allowedOrigins   []string
	allowedMethods   []string
	allowedHeaders   []string
	exposedHeaders   []string
	allowCredentials bool
	maxAge           int
	allowAllOrigins  bool
	allowOriginFunc  func(origin string) bool
}

// defaultConfig is restrictive: no origins are allowed until configured.
func defaultConfig() *config {
	return &config{
		allowedOrigins: []string{},
		allowedMethods: []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		allowedHeaders: []string{"Origin", "Content-Type", "Accept", "Authorization"},
		exposedHeaders: []string{},
		maxAge:         3600,
	}
}

// WithAllowedOrigins sets the exact origins CORS requests are accepted from.
func WithAllowedOrigins(origins ...string) Option {
	return func(c *config) { c.allowedOrigins = origins }
}

// WithAllowAllOrigins accepts every origin (Access-Control-Allow-Origin: *
// unless credentials are enabled, in which case the specific origin is
// echoed back instead, since '*' is invalid alongside credentials).
func WithAllowAllOrigins(allow bool) Option {
	return func(c *config) { c.allowAllOrigins = allow }
}

// WithAllowOriginFunc sets a custom predicate for origin validation,
// overriding WithAllowedOrigins/WithAllowAllOrigins.
func WithAllowOriginFunc(fn func(origin string) bool) Option {
	return func(c *config) { c.allowOriginFunc = fn }
}

// WithAllowedMethods sets the methods reported in preflight responses.
func WithAllowedMethods(methods ...string) Option {
	return func(c *config) { c.allowedMethods = methods }
}

// WithAllowedHeaders sets the headers reported in preflight responses.
func WithAllowedHeaders(headers ...string) Option {
	return func(c *config) { c.allowedHeaders = headers }
}

// WithExposedHeaders sets Access-Control-Expose-Headers.
func WithExposedHeaders(headers ...string) Option {
	return func(c *config) { c.exposedHeaders = headers }
}

// WithAllowCredentials sets Access-Control-Allow-Credentials: true.
func WithAllowCredentials(allow bool) Option {
	return func(c *config) { c.allowCredentials = allow }
}

// WithMaxAge sets Access-Control-Max-Age, in seconds.
func WithMaxAge(seconds int) Option {
	return func(c *config) { c.maxAge = seconds }
}

// New returns a middleware handling CORS: it annotates every
// cross-origin request's ResponseHeaders, and short-circuits a preflight
// OPTIONS request with a 204 once the preflight headers are attached.
func New(opts ...Option) middleware.Func {
	cfg := defaultConfig()
	for _, opt := range opts {
		opt(cfg)
	}

	allowedMethodsHeader := strings.Join(cfg.allowedMethods, ", ")
	allowedHeadersHeader := strings.Join(cfg.allowedHeaders, ", ")
	exposedHeadersHeader := strings.Join(cfg.exposedHeaders, ", ")
	maxAgeHeader := strconv.Itoa(cfg.maxAge)

	return func(_ context.Context, req *httpproto.Request) middleware.Decision {
		origin, ok := req.Headers.Get("Origin")
		if !ok || origin == "" {
			return middleware.NextDecision()
		}

		allowedOrigin := ""
		switch {
		case cfg.allowOriginFunc != nil:
			if cfg.allowOriginFunc(origin) {
				allowedOrigin = origin
			}
		case cfg.allowAllOrigins:
			allowedOrigin = "*"
		case slices.Contains(cfg.allowedOrigins, origin):
			allowedOrigin = origin
		}

		if allowedOrigin == "" {
			return middleware.NextDecision()
		}

		if cfg.allowCredentials && allowedOrigin == "*" {
			req.ResponseHeaders.Set("Access-Control-Allow-Origin", origin)
			req.ResponseHeaders.Set("Access-Control-Allow-Credentials", "true")
		} else {
			req.ResponseHeaders.Set("Access-Control-Allow-Origin", allowedOrigin)
			if cfg.allowCredentials {
				req.ResponseHeaders.Set("Access-Control-Allow-Credentials", "true")
			}
		}

		if exposedHeadersHeader != "" {
			req.ResponseHeaders.Set("Access-Control-Expose-Headers", exposedHeadersHeader)
		}

		if req.Method.String() == "OPTIONS" {
			req.ResponseHeaders.Set("Access-Control-Allow-Methods", allowedMethodsHeader)
			req.ResponseHeaders.Set("Access-Control-Allow-Headers", allowedHeadersHeader)
			req.ResponseHeaders.Set("Access-Control-Max-Age", maxAgeHeader)
			return middleware.InvalidEmptyDecision("204 No Content")
		}

		return middleware.NextDecision()
	}
}
