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

import "strings"

// Header is an ordered case-insensitive header collection. Lookup and Set
// canonicalize via a case-folded key; iteration (Entries) preserves the
// original case each value was written with. This resolves Open Question
// 1: header access is case-insensitive, but the wire form the parser (or a
// handler) wrote is what gets re-emitted.
type Header struct {
	order []string          // original-case keys, in insertion order
	folded map[string]string // folded key -> original-case key
	values map[string]string // folded key -> value
}

// NewHeader creates an empty Header collection.
func NewHeader() *Header {
	return &Header{folded: map[string]string{}, values: map[string]string{}}
}

// Set inserts or replaces the value for name, matched case-insensitively.
// The first time a given folded key is written, its exact case is what
// Entries later reports.
func (h *Header) Set(name, value string) {
	key := strings.ToLower(name)
	if _, exists := h.folded[key]; !exists {
		h.order = append(h.order, key)
		h.folded[key] = name
	}
	h.values[key] = value
}

// Get returns the value for name (case-insensitive) and whether it was
// present at all.
func (h *Header) Get(name string) (string, bool) {
	key := strings.ToLower(name)
	v, ok := h.values[key]
	return v, ok
}

// Entries returns (originalCaseName, value) pairs in insertion order.
func (h *Header) Entries() []HeaderEntry {
	out := make([]HeaderEntry, 0, len(h.order))
	for _, key := range h.order {
		out = append(out, HeaderEntry{Name: h.folded[key], Value: h.values[key]})
	}
	return out
}

// HeaderEntry is a single header line in its original-case written form.
type HeaderEntry struct {
	Name  string
	Value string
}

// Request is the parsed form of one HTTP/1.1 request. It is created once
// per connection; Variables is populated by the router after a route
// match, and Body may be taken (moved) out by an endpoint.
type Request struct {
	Method    Method
	Route     Route
	Headers   *Header
	Variables map[string]string
	// Body is nil when Content-Length was absent, and a non-nil
	// (possibly zero-length) slice when Content-Length was present,
	// including "Content-Length: 0" — this resolves Open Question 2.
	Body       []byte
	RemoteAddr string
	// ResponseHeaders lets middleware annotate the eventual response (e.g.
	// CORS headers, a request-id echo) without owning the Resolution
	// itself: the pipeline merges these ahead of whatever Resolution the
	// chain or endpoint ultimately produces. This is the "decision value
	// plus an optional mutation function" shape the governing design notes
	// describe for sharing a mutable Request across middleware.
	ResponseHeaders *Header
}

// NewRequest builds an empty Request ready for the parser to populate.
func NewRequest() *Request {
	return &Request{Headers: NewHeader(), Variables: map[string]string{}, ResponseHeaders: NewHeader()}
}

// ContentLength reads the Content-Length header through the same
// case-insensitive accessor used for every other header, returning the
// parsed length and whether the header was present and well-formed.
func (r *Request) ContentLength() (int, bool) {
	v, ok := r.Headers.Get("Content-Length")
	if !ok {
		return 0, false
	}
	n := 0
	for _, c := range v {
		if c < '0' || c > '9' {
			return 0, false
		}
		n = n*10 + int(c-'0')
	}
	return n, true
}
