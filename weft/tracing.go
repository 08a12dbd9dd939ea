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

package weft

import (
	"context"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"

	"github.com/weftserve/weft/httpproto"
)

// startRequestSpan opens the per-connection span "weft.handle_request".
// With the default (unconfigured) global tracer this is a no-op: spans
// are created but never exported, so tracing costs nothing until the
// embedding application wires an exporter via WithTracer.
func (a *App) startRequestSpan(ctx context.Context, req *httpproto.Request) (context.Context, trace.Span) {
	return a.tracer.Start(ctx, "weft.handle_request", trace.WithAttributes(
		attribute.String("http.method", req.Method.String()),
		attribute.String("http.path", req.Route.Path),
	))
}

// recordRouteOutcome annotates span with the status line the pipeline
// eventually emitted.
func recordRouteOutcome(span trace.Span, status string) {
	span.SetAttributes(attribute.String("http.status_line", status))
}
