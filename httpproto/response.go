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
	"context"
	"fmt"
	"io"
)

// defaultStatus is used when a Resolution's header sequence omits
// StatusHeader.
const defaultStatus = "200 OK"

// Emit writes res as an HTTP/1.1 response over w, always using
// Transfer-Encoding: chunked — even for an empty body — per the wire
// contract in §4.8. Any write error aborts emission; the caller is
// expected to drop the connection, not distinguish the error further.
func Emit(ctx context.Context, w io.Writer, res Resolution) error {
	status := defaultStatus
	var headers []HeaderEntry
	for _, h := range res.Headers() {
		if h.Name == StatusHeader {
			status = h.Value
			continue
		}
		headers = append(headers, h)
	}

	if _, err := fmt.Fprintf(w, "HTTP/1.1 %s\r\n", status); err != nil {
		return err
	}
	for _, h := range headers {
		if h.Value == "" {
			if _, err := fmt.Fprintf(w, "%s\r\n", h.Name); err != nil {
				return err
			}
			continue
		}
		if _, err := fmt.Fprintf(w, "%s: %s\r\n", h.Name, h.Value); err != nil {
			return err
		}
	}
	// The emitter always overrides any Transfer-Encoding the resolution
	// may have set, appending its own as the last header.
	if _, err := io.WriteString(w, "Transfer-Encoding: chunked\r\n\r\n"); err != nil {
		return err
	}

	content := res.Content()
	for {
		chunk, err := content.Next(ctx)
		if err == io.EOF {
			break
		}
		if err != nil {
			return err
		}
		if len(chunk) == 0 {
			continue
		}
		if _, err := fmt.Fprintf(w, "%x\r\n", len(chunk)); err != nil {
			return err
		}
		if _, err := w.Write(chunk); err != nil {
			return err
		}
		if _, err := io.WriteString(w, "\r\n"); err != nil {
			return err
		}
	}

	_, err := io.WriteString(w, "0\r\n\r\n")
	return err
}
