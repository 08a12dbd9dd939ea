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

import (
	"bufio"
	"fmt"
	"io"
	"strings"
)

// ParseRequest reads one HTTP/1.1 request from r: a request line, headers
// terminated by an empty line, and — if Content-Length is present — a body
// of exactly that many bytes. No size limits are imposed; callers must
// apply external bounds (connection deadlines, max-body wrappers, etc.).
func ParseRequest(r *bufio.Reader, remoteAddr string) (*Request, error) {
	line, err := readLine(r)
	if err != nil {
		return nil, err
	}
	if line == "" {
		return nil, ErrNoData
	}

	req := NewRequest()
	req.RemoteAddr = remoteAddr

	parts := strings.SplitN(line, " ", 3)
	if len(parts) < 2 {
		return nil, fmt.Errorf("httpproto: malformed request line %q", line)
	}
	req.Method = ParseMethod(parts[0])
	req.Route = ParseRoute(parts[1])
	// parts[2], the HTTP version token, is ignored per the wire contract.

	for {
		headerLine, err := readLine(r)
		if err != nil {
			return nil, err
		}
		if headerLine == "" {
			break
		}
		idx := strings.IndexByte(headerLine, ':')
		if idx < 0 {
			continue // lines without ':' are skipped silently
		}
		name := headerLine[:idx]
		value := strings.TrimSpace(headerLine[idx+1:])
		req.Headers.Set(name, value)
	}

	if n, ok := req.ContentLength(); ok {
		body := make([]byte, n)
		if n > 0 {
			if _, err := io.ReadFull(r, body); err != nil {
				return nil, fmt.Errorf("httpproto: reading body: %w", err)
			}
		}
		req.Body = body
	}

	return req, nil
}

// readLine reads a single line terminated by "\r\n" or "\n" (tolerant of
// either), with the terminator stripped.
func readLine(r *bufio.Reader) (string, error) {
	line, err := r.ReadString('\n')
	if err != nil {
		if err == io.EOF && line != "" {
			return strings.TrimRight(line, "\r\n"), nil
		}
		return "", err
	}
	return strings.TrimRight(line, "\r\n"), nil
}
