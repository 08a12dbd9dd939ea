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

package requestid

import (
	"context"

	"github.com/google/uuid"

	"github.com/weftserve/weft/httpproto"
	"github.com/weftserve/weft/middleware"
)

// VariableName is the key New binds the resolved request ID under in
// Request.Variables, so a later middleware or the endpoint can retrieve it
// with Get without threading it through context.Context.
const VariableName = "$request-id"

// Option configures New.
type Option func(*config)

type config struct {
	headerName    string
	generator     func() string
	allowClientID bool
}

func defaultConfig() *config {
	return &config{
		headerName:    "X-Request-ID",
		generator:     generateUUID,
		allowClientID: true,
	}
}

func generateUUID() string {
	return uuid.New().String()
}

// New returns a middleware that assigns each request a unique ID, echoed
// on the response via the configured header name (default
// "X-Request-ID") and bound into Request.Variables under VariableName.
//
// Basic usage:
//
//	app.UseMiddleware(requestid.New())
//
// With ULID instead of UUID:
//
//	app.UseMiddleware(requestid.New(requestid.WithULID()))
func New(opts ...Option) middleware.Func {
	cfg := defaultConfig()
	for _, opt := range opts {
		opt(cfg)
	}

	return func(_ context.Context, req *httpproto.Request) middleware.Decision {
		var id string
		if cfg.allowClientID {
			if v, ok := req.Headers.Get(cfg.headerName); ok && v != "" {
				id = v
			}
		}
		if id == "" {
			id = cfg.generator()
		}

		req.Variables[VariableName] = id
		req.ResponseHeaders.Set(cfg.headerName, id)
		return middleware.NextDecision()
	}
}

// Get retrieves the request ID New bound onto req, or "" if New never ran.
func Get(req *httpproto.Request) string {
	return req.Variables[VariableName]
}
