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

// Package middleware defines the Decision protocol a middleware function
// returns, and the chain-composition helper the connection pipeline uses
// to run global and per-endpoint middleware in order.
package middleware

import (
	"context"

	"github.com/weftserve/weft/httpproto"
)

// Outcome is the shape of a middleware's verdict: continue to the next
// step (Next), short-circuit with a caller-built Resolution (Invalid), or
// short-circuit with just a status code (InvalidEmpty).
type Outcome uint8

const (
	// Next means the pipeline should proceed to the next middleware, or
	// to the endpoint if this was the last one.
	Next Outcome = iota
	// Invalid means the pipeline should stop and emit Resolution.
	Invalid
	// InvalidEmpty means the pipeline should stop and emit an empty
	// body with the given status text (e.g. "401 Unauthorized").
	InvalidEmpty
)

// Decision is the value a Func returns.
type Decision struct {
	Outcome    Outcome
	Resolution httpproto.Resolution // set when Outcome == Invalid
	Status     string               // set when Outcome == InvalidEmpty
}

// NextDecision lets the pipeline continue.
func NextDecision() Decision { return Decision{Outcome: Next} }

// InvalidDecision short-circuits the pipeline with res.
func InvalidDecision(res httpproto.Resolution) Decision {
	return Decision{Outcome: Invalid, Resolution: res}
}

// InvalidEmptyDecision short-circuits the pipeline with an empty body at
// the given status.
func InvalidEmptyDecision(status string) Decision {
	return Decision{Outcome: InvalidEmpty, Status: status}
}

// Func is a middleware: given the request, it returns a Decision.
type Func func(ctx context.Context, req *httpproto.Request) Decision

// Run executes chain in order, stopping at the first non-Next Decision.
// It returns the stopping Decision (or NextDecision if every middleware in
// chain returned Next).
func Run(ctx context.Context, req *httpproto.Request, chain []Func) Decision {
	for _, fn := range chain {
		d := fn(ctx, req)
		if d.Outcome != Next {
			return d
		}
	}
	return NextDecision()
}

// Resolve turns a stopping Decision into the Resolution the emitter should
// write. Only meaningful for Decisions with Outcome != Next.
func Resolve(d Decision) httpproto.Resolution {
	if d.Outcome == Invalid {
		return d.Resolution
	}
	return httpproto.Empty(d.Status)
}
