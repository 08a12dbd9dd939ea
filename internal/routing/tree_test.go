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

package routing_test

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/weftserve/weft/httpproto"
	"github.com/weftserve/weft/internal/routing"
)

func ep() *routing.Endpoint { return &routing.Endpoint{} }

func TestAddThenLookupFindsSameEndpoint(t *testing.T) {
	tree := routing.New()
	want := ep()
	require.NoError(t, tree.Add("/tasks", httpproto.GET, want))

	m, ok := tree.Lookup("/tasks")
	require.True(t, ok)
	assert.Same(t, want, m.Node.Endpoints[httpproto.GET])
}

func TestLiteralBeatsParametric(t *testing.T) {
	tree := routing.New()
	require.NoError(t, tree.Add("/a/{x}", httpproto.GET, ep()))
	literalEP := ep()
	require.NoError(t, tree.Add("/a/b", httpproto.GET, literalEP))

	m, ok := tree.Lookup("/a/b")
	require.True(t, ok)
	assert.Same(t, literalEP, m.Node.Endpoints[httpproto.GET])
	assert.Empty(t, m.Variables)

	m2, ok := tree.Lookup("/a/c")
	require.True(t, ok)
	assert.Equal(t, "c", m2.Variables["x"])
}

func TestWildcardAbsorbsAllRemainingSegments(t *testing.T) {
	tree := routing.New()
	require.NoError(t, tree.Add("/wild/{*}", httpproto.GET, ep()))

	cases := map[string]string{
		"/wild/a":     "a",
		"/wild/a/b/c": "a/b/c",
		"/wild/":      "",
	}
	for path, want := range cases {
		m, ok := tree.Lookup(path)
		require.True(t, ok, path)
		assert.Equal(t, want, m.Variables["*"], path)
	}
}

func TestTrailingLeadingSlashEquivalence(t *testing.T) {
	tree := routing.New()
	want := ep()
	require.NoError(t, tree.Add("/a/b", httpproto.GET, want))

	for _, path := range []string{"/a/b", "/a/b/", "//a//b"} {
		m, ok := tree.Lookup(path)
		require.True(t, ok, path)
		assert.Same(t, want, m.Node.Endpoints[httpproto.GET], path)
	}
}

func TestReAddingStrictlyFailsExistAddOrChangeOverwrites(t *testing.T) {
	tree := routing.New()
	first := ep()
	second := ep()
	require.NoError(t, tree.Add("/x", httpproto.GET, first))

	err := tree.Add("/x", httpproto.GET, second)
	assert.ErrorIs(t, err, routing.ErrExist)

	require.NoError(t, tree.AddOrChange("/x", httpproto.GET, second))
	m, ok := tree.Lookup("/x")
	require.True(t, ok)
	assert.Same(t, second, m.Node.Endpoints[httpproto.GET])
}

func TestWildcardMidPathRejected(t *testing.T) {
	tree := routing.New()
	err := tree.Add("/a/{*}/b", httpproto.GET, ep())
	require.Error(t, err)
	var invalid *routing.InvalidRouteError
	assert.True(t, errors.As(err, &invalid))
	assert.ErrorIs(t, err, routing.ErrInvalidRoute)
}

func TestEmptyPathRejected(t *testing.T) {
	tree := routing.New()
	err := tree.Add("", httpproto.GET, ep())
	assert.ErrorIs(t, err, routing.ErrInvalidRoute)
}

func TestRootPathWithoutEndpointFailsMethodMissing(t *testing.T) {
	tree := routing.New()
	err := tree.Add("/", httpproto.GET, nil)
	assert.ErrorIs(t, err, routing.ErrMethodMissing)
}

func TestLookupMissReturnsFalse(t *testing.T) {
	tree := routing.New()
	require.NoError(t, tree.Add("/a/b", httpproto.GET, ep()))
	_, ok := tree.Lookup("/a/c/d")
	assert.False(t, ok)
}

func TestMethodConflictThenOverwrite(t *testing.T) {
	tree := routing.New()
	require.NoError(t, tree.Add("/x", httpproto.GET, ep()))
	err := tree.Add("/x", httpproto.GET, ep())
	assert.ErrorIs(t, err, routing.ErrExist)

	replacement := ep()
	require.NoError(t, tree.AddOrChange("/x", httpproto.GET, replacement))
	m, ok := tree.Lookup("/x")
	require.True(t, ok)
	assert.Same(t, replacement, m.Node.Endpoints[httpproto.GET])
}

func TestLiteralPrecedenceOverWildcardAcrossMethods(t *testing.T) {
	tree := routing.New()
	wildcardEP := ep()
	literalEP := ep()
	require.NoError(t, tree.Add("/wild/{*}", httpproto.GET, wildcardEP))
	require.NoError(t, tree.Add("/wild/asd", httpproto.POST, literalEP))

	m, ok := tree.Lookup("/wild/asd")
	require.True(t, ok)
	assert.Same(t, literalEP, m.Node.Endpoints[httpproto.POST])

	m2, ok := tree.Lookup("/wild/asd/deep")
	require.True(t, ok)
	assert.Same(t, wildcardEP, m2.Node.Endpoints[httpproto.GET])
}
