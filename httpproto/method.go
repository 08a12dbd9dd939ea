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

// Package httpproto implements the wire-level pieces of the request
// lifecycle: the Method/Route/Request data model, the request-line/header
// parser, the Resolution contract, and the chunked response emitter.
package httpproto

// Method is a closed set of well-known HTTP methods plus an Other
// catch-all. Equality is structural: Other("GET") is never equal to GET,
// even though they print the same.
type Method struct {
	known MethodKind
	other string
}

// MethodKind enumerates the well-known method kinds; kindOther marks a
// Method built via OtherMethod.
type MethodKind uint8

const (
	kindOther MethodKind = iota
	kindGet
	kindPost
	kindPut
	kindDelete
	kindPatch
)

// Well-known methods.
var (
	GET    = Method{known: kindGet}
	POST   = Method{known: kindPost}
	PUT    = Method{known: kindPut}
	DELETE = Method{known: kindDelete}
	PATCH  = Method{known: kindPatch}
)

// OtherMethod builds a Method carrying a non-standard verb, e.g. "HEAD" or
// "OPTIONS". Other("GET") != GET: it carries kindOther, not kindGet.
func OtherMethod(verb string) Method {
	return Method{known: kindOther, other: verb}
}

// ParseMethod maps the five well-known verbs to their Method value and
// anything else to OtherMethod(token).
func ParseMethod(token string) Method {
	switch token {
	case "GET":
		return GET
	case "POST":
		return POST
	case "PUT":
		return PUT
	case "DELETE":
		return DELETE
	case "PATCH":
		return PATCH
	default:
		return OtherMethod(token)
	}
}

// String renders the method's wire form.
func (m Method) String() string {
	switch m.known {
	case kindGet:
		return "GET"
	case kindPost:
		return "POST"
	case kindPut:
		return "PUT"
	case kindDelete:
		return "DELETE"
	case kindPatch:
		return "PATCH"
	default:
		return m.other
	}
}

// IsOther reports whether m was built via OtherMethod (including the case
// where its verb happens to spell a well-known method).
func (m Method) IsOther() bool {
	return m.known == kindOther
}
