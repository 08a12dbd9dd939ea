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

// Package routing implements the path trie: static, named-variable, and
// terminal-wildcard segments, with per-method endpoints.
package routing

import (
	"errors"
	"fmt"
)

// Sentinel errors returned by Tree.Add / Tree.AddOrChange.
var (
	// ErrExist is returned by the strict Add surface when (path, method)
	// already has an endpoint.
	ErrExist = errors.New("routing: route already exists for this method")
	// ErrMethodMissing is returned by Add("/", nil).
	ErrMethodMissing = errors.New("routing: no method/endpoint supplied")
	// ErrInvalidRoute is returned for structurally invalid paths (see
	// InvalidRouteError for the reason).
	ErrInvalidRoute = errors.New("routing: invalid route")
	// ErrNoRouteExist is returned by Lookup-driven callers when no route
	// matches and no missing-route handler is registered.
	ErrNoRouteExist = errors.New("routing: no route exists for this path")
)

// InvalidRouteError wraps ErrInvalidRoute with a structured reason, mirroring
// the teacher's pattern of carrying a Field/Reason instead of an opaque
// string so callers can branch on Reason without parsing error text.
type InvalidRouteError struct {
	Reason string
}

// Error implements the error interface.
func (e *InvalidRouteError) Error() string {
	return fmt.Sprintf("routing: invalid route: %s", e.Reason)
}

// Unwrap lets errors.Is(err, ErrInvalidRoute) succeed.
func (e *InvalidRouteError) Unwrap() error {
	return ErrInvalidRoute
}
