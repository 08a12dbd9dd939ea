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

// Route is the parsed form of the raw path token on a request line: the
// original string, the path cleaned of its query suffix, and the query
// key/value pairs. Query keys and values retain percent-encoding exactly
// as received; no decoding is specified.
type Route struct {
	Original string
	Path     string
	Query    map[string]string
}

// ParseRoute splits raw at the first '?': the prefix becomes Path, the
// suffix is split on '&' into k=v pairs inserted into Query. Segments
// without '?' pass through verbatim.
func ParseRoute(raw string) Route {
	r := Route{Original: raw, Query: map[string]string{}}

	idx := strings.IndexByte(raw, '?')
	if idx < 0 {
		r.Path = raw
		return r
	}

	r.Path = raw[:idx]
	for _, pair := range strings.Split(raw[idx+1:], "&") {
		if pair == "" {
			continue
		}
		if eq := strings.IndexByte(pair, '='); eq >= 0 {
			r.Query[pair[:eq]] = pair[eq+1:]
		} else {
			r.Query[pair] = ""
		}
	}
	return r
}

// Segments splits Path on '/', dropping empty segments so that leading,
// trailing, and doubled slashes are all equivalent.
func (r Route) Segments() []string {
	return splitSegments(r.Path)
}

func splitSegments(path string) []string {
	parts := strings.Split(path, "/")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if p == "" {
			continue
		}
		out = append(out, p)
	}
	return out
}
