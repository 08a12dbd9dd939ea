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
	"strings"
	"sync"

	"github.com/weftserve/weft/httpproto"
)

// Tree is the trie mapping path segments to Endpoints, guarded by a single
// mutex covering the whole structure. Per §5 of the governing
// specification, registration happens at setup and per-request lookups are
// short, so a single coarse lock is an intentional simplification over the
// teacher's (and the original's) per-node locking.
type Tree struct {
	mu           sync.Mutex
	root         *Node
	missingRoute *Endpoint
}

// New creates a Tree with an empty root node (segment id "/").
func New() *Tree {
	return &Tree{root: newNode("/")}
}

// AddMissingRoute installs the fallback endpoint queried (always under
// GET) when no route matches.
func (t *Tree) AddMissingRoute(ep *Endpoint) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.missingRoute = ep
}

// MissingRoute returns the fallback endpoint, if one was installed.
func (t *Tree) MissingRoute() (*Endpoint, bool) {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.missingRoute, t.missingRoute != nil
}

// Add registers path for method strictly: it fails with ErrExist if an
// endpoint already exists for (path, method) on the terminal node.
func (t *Tree) Add(path string, method httpproto.Method, ep *Endpoint) error {
	return t.add(path, method, ep, false)
}

// AddOrChange registers path for method, overwriting any existing
// endpoint for (path, method).
func (t *Tree) AddOrChange(path string, method httpproto.Method, ep *Endpoint) error {
	return t.add(path, method, ep, true)
}

func (t *Tree) add(path string, method httpproto.Method, ep *Endpoint, overwrite bool) error {
	if path == "" {
		return &InvalidRouteError{Reason: "empty"}
	}

	t.mu.Lock()
	defer t.mu.Unlock()

	if path == "/" {
		if ep == nil {
			return ErrMethodMissing
		}
		return attachEndpoint(t.root, method, ep, overwrite)
	}

	segments := splitSegments(path)
	node := t.root
	for i, seg := range segments {
		last := i == len(segments)-1

		// Open Question 3: {*} registered mid-path is rejected outright
		// rather than given undefined lookup semantics.
		if seg == wildcardID && !last {
			return &InvalidRouteError{Reason: "wildcard {*} must be the final segment"}
		}

		child, exists := node.child(seg)
		if !exists && isVariableID(seg) {
			if node.VarChild != nil && node.VarChild.ID == seg {
				child = node.VarChild
				exists = true
			}
		}

		if !exists {
			child = newNode(seg)
			if child.IsVariable {
				node.VarChild = child
			} else {
				node.Children[seg] = child
			}
		}

		if last {
			if ep != nil {
				if err := attachEndpoint(child, method, ep, overwrite); err != nil {
					return err
				}
			}
			return nil
		}

		node = child
	}

	return nil
}

// splitSegments splits path on '/', dropping empty segments so that
// leading, trailing, and doubled slashes are all equivalent.
func splitSegments(path string) []string {
	parts := strings.Split(path, "/")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if p != "" {
			out = append(out, p)
		}
	}
	return out
}

func attachEndpoint(n *Node, method httpproto.Method, ep *Endpoint, overwrite bool) error {
	if _, exists := n.Endpoints[method]; exists && !overwrite {
		return ErrExist
	}
	n.Endpoints[method] = ep
	return nil
}

// RouteSummary is a read-only snapshot of one registered path and the
// methods bound under it, used by startup diagnostics (e.g. a banner
// table) rather than by request handling itself.
type RouteSummary struct {
	Path    string
	Methods []string
}

// Routes returns a summary of every registered path, in no particular
// order.
func (t *Tree) Routes() []RouteSummary {
	t.mu.Lock()
	defer t.mu.Unlock()

	var out []RouteSummary
	var walk func(n *Node, prefix string)
	walk = func(n *Node, prefix string) {
		if len(n.Endpoints) > 0 {
			methods := make([]string, 0, len(n.Endpoints))
			for m := range n.Endpoints {
				methods = append(methods, m.String())
			}
			path := prefix
			if path == "" {
				path = "/"
			}
			out = append(out, RouteSummary{Path: path, Methods: methods})
		}
		for _, c := range n.Children {
			walk(c, prefix+"/"+c.ID)
		}
		if n.VarChild != nil {
			walk(n.VarChild, prefix+"/"+n.VarChild.ID)
		}
	}
	walk(t.root, "")
	return out
}

// Match is the result of a successful Lookup: the matched node and the
// path variables bound along the way.
type Match struct {
	Node      *Node
	Variables map[string]string
}

// Lookup walks path from the root, preferring a literal child over the
// variable child at each step, and binds variables during that same
// forward walk (tracking the segments consumed so far) rather than via a
// reverse walk through parent pointers. A variable child spelled exactly
// "{*}" is returned immediately, absorbing every remaining segment
// (joined with '/') into the variable named "*". If the walk dead-ends
// below a literal child that has a "{*}" sibling, the closest such
// wildcard is returned instead, absorbing the segments from that point on.
// A walk that ends on a node with no endpoints of its own but a "{*}"
// child resolves to that wildcard, with "*" bound to the empty string.
func (t *Tree) Lookup(path string) (*Match, bool) {
	t.mu.Lock()
	defer t.mu.Unlock()

	if path == "/" {
		return &Match{Node: t.root, Variables: map[string]string{}}, true
	}

	segments := splitSegments(path)
	node := t.root
	vars := map[string]string{}
	var fallback *Match

	for i, seg := range segments {
		if child, ok := node.child(seg); ok {
			if wc := node.VarChild; wc != nil && wc.ID == wildcardID {
				fbVars := map[string]string{"*": strings.Join(segments[i:], "/")}
				for k, v := range vars {
					fbVars[k] = v
				}
				fallback = &Match{Node: wc, Variables: fbVars}
			}
			node = child
			continue
		}

		if node.VarChild == nil {
			if fallback != nil {
				return fallback, true
			}
			return nil, false
		}

		varChild := node.VarChild
		if varChild.ID == wildcardID {
			vars["*"] = strings.Join(segments[i:], "/")
			return &Match{Node: varChild, Variables: vars}, true
		}

		vars[variableName(varChild.ID)] = seg
		node = varChild
	}

	if len(node.Endpoints) == 0 && node.VarChild != nil && node.VarChild.ID == wildcardID {
		vars["*"] = ""
		return &Match{Node: node.VarChild, Variables: vars}, true
	}
	return &Match{Node: node, Variables: vars}, true
}
