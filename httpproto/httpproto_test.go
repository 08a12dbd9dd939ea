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

package httpproto_test

import (
	"bufio"
	"bytes"
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/weftserve/weft/httpproto"
)

func TestMethodOtherIsStructurallyDistinct(t *testing.T) {
	assert.NotEqual(t, httpproto.GET, httpproto.OtherMethod("GET"))
	assert.Equal(t, "GET", httpproto.OtherMethod("GET").String())
	assert.Equal(t, httpproto.GET, httpproto.ParseMethod("GET"))
	assert.True(t, httpproto.ParseMethod("TRACE").IsOther())
}

func TestHeaderCaseInsensitiveLookupPreservesWrittenCase(t *testing.T) {
	h := httpproto.NewHeader()
	h.Set("Content-Length", "5")
	v, ok := h.Get("content-length")
	require.True(t, ok)
	assert.Equal(t, "5", v)

	entries := h.Entries()
	require.Len(t, entries, 1)
	assert.Equal(t, "Content-Length", entries[0].Name)
}

func TestParseRouteSplitsQueryPreservingEncoding(t *testing.T) {
	r := httpproto.ParseRoute("/a/b%20c?x=1&y=%2F&flag")
	assert.Equal(t, "/a/b%20c", r.Path)
	assert.Equal(t, "1", r.Query["x"])
	assert.Equal(t, "%2F", r.Query["y"])
	_, hasFlag := r.Query["flag"]
	assert.True(t, hasFlag)
}

func TestParseRequestContentLengthZeroYieldsNonNilBody(t *testing.T) {
	raw := "GET /x HTTP/1.1\r\nContent-Length: 0\r\n\r\n"
	req, err := httpproto.ParseRequest(bufio.NewReader(strings.NewReader(raw)), "127.0.0.1:1")
	require.NoError(t, err)
	require.NotNil(t, req.Body)
	assert.Len(t, req.Body, 0)
}

func TestParseRequestAbsentContentLengthYieldsNilBody(t *testing.T) {
	raw := "GET /x HTTP/1.1\r\n\r\n"
	req, err := httpproto.ParseRequest(bufio.NewReader(strings.NewReader(raw)), "127.0.0.1:1")
	require.NoError(t, err)
	assert.Nil(t, req.Body)
}

func TestParseRequestReadsExactBody(t *testing.T) {
	raw := "POST /submit HTTP/1.1\r\nContent-Length: 5\r\n\r\nhello"
	req, err := httpproto.ParseRequest(bufio.NewReader(strings.NewReader(raw)), "127.0.0.1:1")
	require.NoError(t, err)
	assert.Equal(t, httpproto.POST, req.Method)
	assert.Equal(t, []byte("hello"), req.Body)
}

func TestParseRequestEmptyLineIsNoData(t *testing.T) {
	_, err := httpproto.ParseRequest(bufio.NewReader(strings.NewReader("")), "127.0.0.1:1")
	assert.ErrorIs(t, err, httpproto.ErrNoData)
}

func TestEmitWritesChunkedResponse(t *testing.T) {
	res := httpproto.Bytes("200 OK", "text/plain", []byte("hi world"))
	var buf bytes.Buffer
	require.NoError(t, httpproto.Emit(context.Background(), &buf, res))

	out := buf.String()
	assert.True(t, strings.HasPrefix(out, "HTTP/1.1 200 OK\r\n"))
	assert.Contains(t, out, "Transfer-Encoding: chunked\r\n")
	assert.Contains(t, out, "8\r\nhi world\r\n")
	assert.True(t, strings.HasSuffix(out, "0\r\n\r\n"))
}

func TestEmitEmptyBodyStillChunked(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, httpproto.Emit(context.Background(), &buf, httpproto.Empty("204 No Content")))
	out := buf.String()
	assert.Contains(t, out, "HTTP/1.1 204 No Content\r\n")
	assert.True(t, strings.HasSuffix(out, "0\r\n\r\n"))
}
