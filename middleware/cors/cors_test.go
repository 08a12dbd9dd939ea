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

package cors_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/weftserve/weft/httpproto"
	"github.com/weftserve/weft/middleware"
	"github.com/weftserve/weft/middleware/cors"
)

func request(method httpproto.Method, origin string) *httpproto.Request {
	req := httpproto.NewRequest()
	req.Method = method
	if origin != "" {
		req.Headers.Set("Origin", origin)
	}
	return req
}

func TestNoOriginHeaderPassesThrough(t *testing.T) {
	req := request(httpproto.GET, "")
	d := cors.New(cors.WithAllowAllOrigins(true))(context.Background(), req)
	assert.Equal(t, middleware.Next, d.Outcome)
	_, ok := req.ResponseHeaders.Get("Access-Control-Allow-Origin")
	assert.False(t, ok)
}

func TestAllowAllOriginsSetsWildcard(t *testing.T) {
	req := request(httpproto.GET, "https://example.com")
	cors.New(cors.WithAllowAllOrigins(true))(context.Background(), req)

	v, ok := req.ResponseHeaders.Get("Access-Control-Allow-Origin")
	require.True(t, ok)
	assert.Equal(t, "*", v)
}

func TestAllowedOriginsListMatches(t *testing.T) {
	req := request(httpproto.GET, "https://allowed.example.com")
	cors.New(cors.WithAllowedOrigins("https://allowed.example.com"))(context.Background(), req)
	v, ok := req.ResponseHeaders.Get("Access-Control-Allow-Origin")
	require.True(t, ok)
	assert.Equal(t, "https://allowed.example.com", v)
}

func TestDisallowedOriginSetsNoHeaders(t *testing.T) {
	req := request(httpproto.GET, "https://evil.example.com")
	d := cors.New(cors.WithAllowedOrigins("https://allowed.example.com"))(context.Background(), req)
	assert.Equal(t, middleware.Next, d.Outcome)
	_, ok := req.ResponseHeaders.Get("Access-Control-Allow-Origin")
	assert.False(t, ok)
}

func TestAllowOriginFuncOverridesList(t *testing.T) {
	req := request(httpproto.GET, "https://foo.internal.example.com")
	cors.New(cors.WithAllowedOrigins("https://other.example.org"), cors.WithAllowOriginFunc(func(origin string) bool {
		suffix := ".example.com"
		return len(origin) > len(suffix) && origin[len(origin)-len(suffix):] == suffix
	}))(context.Background(), req)

	v, ok := req.ResponseHeaders.Get("Access-Control-Allow-Origin")
	require.True(t, ok)
	assert.Equal(t, "https://foo.internal.example.com", v)
}

func TestPreflightShortCircuitsWithNoContent(t *testing.T) {
	req := request(httpproto.OtherMethod("OPTIONS"), "https://allowed.example.com")
	d := cors.New(cors.WithAllowedOrigins("https://allowed.example.com"))(context.Background(), req)

	require.Equal(t, middleware.InvalidEmpty, d.Outcome)
	assert.Equal(t, "204 No Content", d.Status)
	v, ok := req.ResponseHeaders.Get("Access-Control-Allow-Methods")
	require.True(t, ok)
	assert.NotEmpty(t, v)
}

func TestPreflightDisallowedOriginPassesThrough(t *testing.T) {
	req := request(httpproto.OtherMethod("OPTIONS"), "https://evil.example.com")
	d := cors.New(cors.WithAllowedOrigins("https://allowed.example.com"))(context.Background(), req)
	assert.Equal(t, middleware.Next, d.Outcome)
}

func TestCredentialsWithSpecificOrigin(t *testing.T) {
	req := request(httpproto.GET, "https://allowed.example.com")
	cors.New(
		cors.WithAllowedOrigins("https://allowed.example.com"),
		cors.WithAllowCredentials(true),
	)(context.Background(), req)

	v, _ := req.ResponseHeaders.Get("Access-Control-Allow-Credentials")
	assert.Equal(t, "true", v)
}

func TestCredentialsWithAllOriginsEchoesSpecificOrigin(t *testing.T) {
	req := request(httpproto.GET, "https://caller.example.com")
	cors.New(
		cors.WithAllowAllOrigins(true),
		cors.WithAllowCredentials(true),
	)(context.Background(), req)

	// '*' is invalid alongside credentials, so the actual origin is echoed.
	v, ok := req.ResponseHeaders.Get("Access-Control-Allow-Origin")
	require.True(t, ok)
	assert.Equal(t, "https://caller.example.com", v)
}

func TestExposedHeadersSet(t *testing.T) {
	req := request(httpproto.GET, "https://allowed.example.com")
	cors.New(
		cors.WithAllowedOrigins("https://allowed.example.com"),
		cors.WithExposedHeaders("X-Custom-Header"),
	)(context.Background(), req)

	v, ok := req.ResponseHeaders.Get("Access-Control-Expose-Headers")
	require.True(t, ok)
	assert.Equal(t, "X-Custom-Header", v)
}
