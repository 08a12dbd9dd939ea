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

package routing

import (
	"context"
	"strings"

	"github.com/weftserve/weft/httpproto"
	"github.com/weftserve/weft/middleware"
)

// ResolutionFunc is the handler an endpoint invokes once middleware has
// cleared the request: given the request, it produces a Resolution.
type ResolutionFunc func(ctx context.Context, req *httpproto.Request) httpproto.Resolution

// Endpoint is the (resolution function, optional middleware chain) pair
// attached to a (path, method).
type Endpoint struct {
	Middleware []middleware.Func
	Resolve    ResolutionFunc
}

// wildcardID is the reserved variable-segment spelling that marks a
// terminal wildcard: it absorbs every remaining path segment.
const wildcardID = "{*}"

// Node is one segment of the path trie. Unlike the teacher/original this
// carries no parent back-pointer — variables are bound during the forward
// walk instead (see Tree.Lookup), per the recommended design in §9 of the
// governing specification, which eliminates the cycle entirely.
type Node struct {
	ID         string
	IsVariable bool
	Endpoints  map[httpproto.Method]*Endpoint
	Children   map[string]*Node
	VarChild   *Node
}

// newNode creates a Node for segment id.
func newNode(id string) *Node {
	return &Node{ID: id, IsVariable: isVariableID(id), Endpoints: map[httpproto.Method]*Endpoint{}, Children: map[string]*Node{}}
}

// isVariableID reports whether id is spelled "{name}".
func isVariableID(id string) bool {
	return strings.HasPrefix(id, "{") && strings.HasSuffix(id, "}")
}

// variableName strips the braces from a variable segment id.
func variableName(id string) string {
	return strings.TrimSuffix(strings.TrimPrefix(id, "{"), "}")
}

// child returns the literal child matching id, if any.
func (n *Node) child(id string) (*Node, bool) {
	c, ok := n.Children[id]
	return c, ok
}
