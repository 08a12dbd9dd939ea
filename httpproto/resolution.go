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

package httpproto

import (
	"context"
	"io"
)

// StatusHeader is the reserved header name whose value supplies the status
// line suffix (e.g. "200 OK"). The emitter treats it specially: it never
// appears as an ordinary header in the output, only as the status line.
const StatusHeader = "HTTP/1.1"

// ChunkIterator is a pull-style, finite sequence of body bytes. Next
// returns io.EOF once the body is exhausted. Resolutions backed by a file
// or other streaming source implement this directly; in-memory bodies use
// bytesChunkIterator (see Bytes).
type ChunkIterator interface {
	Next(ctx context.Context) ([]byte, error)
}

// Resolution is the open, extensible contract an endpoint or middleware
// decision produces: an ordered header sequence (with StatusHeader
// supplying the status line) and a lazy body chunk sequence. The only
// concrete resolutions in this module are the two minimal ones here
// (Empty, Bytes); the core pipeline only needs to consume the interface,
// and other variants are left to callers to implement.
type Resolution interface {
	Headers() []HeaderEntry
	Content() ChunkIterator
}

// emptyResolution is a Resolution with a status and no body.
type emptyResolution struct {
	status string
}

// Empty builds a Resolution with the given status text (e.g. "204 No
// Content") and no body. The core pipeline uses this itself to satisfy a
// middleware InvalidEmpty(status) decision.
func Empty(status string) Resolution {
	return &emptyResolution{status: status}
}

func (e *emptyResolution) Headers() []HeaderEntry {
	return []HeaderEntry{{Name: StatusHeader, Value: e.status}}
}

func (e *emptyResolution) Content() ChunkIterator {
	return &bytesChunkIterator{}
}

// bytesResolution is a Resolution whose entire body is an in-memory slice
// delivered as a single chunk.
type bytesResolution struct {
	status  string
	headers []HeaderEntry
	body    []byte
}

// Bytes builds a single-chunk Resolution: status, an optional
// Content-Type (empty string omits it), and the full body.
func Bytes(status, contentType string, body []byte) Resolution {
	headers := []HeaderEntry{{Name: StatusHeader, Value: status}}
	if contentType != "" {
		headers = append(headers, HeaderEntry{Name: "Content-Type", Value: contentType})
	}
	return &bytesResolution{status: status, headers: headers, body: body}
}

func (b *bytesResolution) Headers() []HeaderEntry {
	return b.headers
}

func (b *bytesResolution) Content() ChunkIterator {
	return &bytesChunkIterator{data: b.body}
}

// mergedResolution prepends extra header entries ahead of an inner
// Resolution's own headers, without disturbing the inner Resolution's
// status line (Emit takes the status from the last StatusHeader entry it
// sees, so an inner StatusHeader wins over one in extra).
type mergedResolution struct {
	extra []HeaderEntry
	inner Resolution
}

// WithHeaders returns a Resolution that emits extra's entries ahead of
// res's own. The connection pipeline uses this to splice a request's
// ResponseHeaders (set by middleware) onto whatever Resolution the
// middleware chain or endpoint ultimately produced.
func WithHeaders(extra *Header, res Resolution) Resolution {
	entries := extra.Entries()
	if len(entries) == 0 {
		return res
	}
	return &mergedResolution{extra: entries, inner: res}
}

func (m *mergedResolution) Headers() []HeaderEntry {
	return append(append([]HeaderEntry{}, m.extra...), m.inner.Headers()...)
}

func (m *mergedResolution) Content() ChunkIterator {
	return m.inner.Content()
}

// bytesChunkIterator yields its entire payload as one chunk, then io.EOF.
type bytesChunkIterator struct {
	data []byte
	done bool
}

func (it *bytesChunkIterator) Next(ctx context.Context) ([]byte, error) {
	if it.done {
		return nil, io.EOF
	}
	it.done = true
	if len(it.data) == 0 {
		return nil, io.EOF
	}
	return it.data, nil
}
