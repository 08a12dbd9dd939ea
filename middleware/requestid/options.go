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

// Package requestid provides middleware that assigns each request a
// unique, client-echoable identifier for log correlation and tracing.
package requestid

import "github.com/oklog/ulid/v2"

// WithHeader sets the header name used to read and echo the request ID.
// Default: "X-Request-ID".
func WithHeader(headerName string) Option {
	return func(c *config) { c.headerName = headerName }
}

// WithULID switches generation to a ULID (time-ordered, 26-character,
// case-insensitive) instead of the default UUID v4.
func WithULID() Option {
	return func(c *config) { c.generator = generateULID }
}

func generateULID() string {
	return ulid.Make().String()
}

// WithGenerator sets a custom request-ID generator function.
func WithGenerator(generator func() string) Option {
	return func(c *config) { c.generator = generator }
}

// WithAllowClientID controls whether a client-supplied header value is
// trusted as the request ID. When false, New always generates a fresh ID.
// Default: true.
func WithAllowClientID(allow bool) Option {
	return func(c *config) { c.allowClientID = allow }
}
