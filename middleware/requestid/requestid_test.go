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

package requestid_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/weftserve/weft/httpproto"
	"github.com/weftserve/weft/middleware"
	"github.com/weftserve/weft/middleware/requestid"
)

func TestNewGeneratesIDWhenAbsent(t *testing.T) {
	req := httpproto.NewRequest()
	d := requestid.New()(context.Background(), req)

	assert.Equal(t, middleware.Next, d.Outcome)
	id, ok := req.ResponseHeaders.Get("X-Request-ID")
	require.True(t, ok)
	assert.NotEmpty(t, id)
	assert.Equal(t, id, requestid.Get(req))
}

func TestClientSuppliedIDHonoredByDefault(t *testing.T) {
	req := httpproto.NewRequest()
	req.Headers.Set("X-Request-ID", "client-id-123")

	requestid.New()(context.Background(), req)
	assert.Equal(t, "client-id-123", requestid.Get(req))
}

func TestDisallowClientIDAlwaysGenerates(t *testing.T) {
	req := httpproto.NewRequest()
	req.Headers.Set("X-Request-ID", "client-id-123")

	requestid.New(requestid.WithAllowClientID(false))(context.Background(), req)
	assert.NotEqual(t, "client-id-123", requestid.Get(req))
}

func TestCustomHeaderName(t *testing.T) {
	req := httpproto.NewRequest()
	requestid.New(requestid.WithHeader("X-Trace-ID"))(context.Background(), req)

	_, ok := req.ResponseHeaders.Get("X-Request-ID")
	assert.False(t, ok)
	v, ok := req.ResponseHeaders.Get("X-Trace-ID")
	require.True(t, ok)
	assert.Equal(t, v, requestid.Get(req))
}

func TestCustomGeneratorIsUsed(t *testing.T) {
	req := httpproto.NewRequest()
	requestid.New(requestid.WithGenerator(func() string { return "fixed-id" }))(context.Background(), req)
	assert.Equal(t, "fixed-id", requestid.Get(req))
}

func TestULIDGeneratorProducesDistinctIDs(t *testing.T) {
	first := httpproto.NewRequest()
	second := httpproto.NewRequest()
	gen := requestid.New(requestid.WithULID())
	gen(context.Background(), first)
	gen(context.Background(), second)

	assert.Len(t, requestid.Get(first), 26)
	assert.NotEqual(t, requestid.Get(first), requestid.Get(second))
}

func TestCombinedOptionsIgnoreClientHeader(t *testing.T) {
	req := httpproto.NewRequest()
	req.Headers.Set("X-Trace-ID", "client-id")

	requestid.New(
		requestid.WithHeader("X-Trace-ID"),
		requestid.WithAllowClientID(false),
		requestid.WithGenerator(func() string { return "generated-123" }),
	)(context.Background(), req)

	v, ok := req.ResponseHeaders.Get("X-Trace-ID")
	require.True(t, ok)
	assert.Equal(t, "generated-123", v)
}
