// Copyright 2025 The packetd Authors
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
// http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

// Package tracing wraps the otel/trace API this module uses to emit one
// span per synchronous channel operation (declare, bind, publish-and-wait,
// and so on), so an application embedding this client can see AMQP
// round-trips in the same trace as the rest of its request handling. The
// tracer defaults to a private no-op provider, not otel's global one;
// callers that want real
// spans call SetTracerProvider once during setup.
package tracing

import (
	"context"

	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
)

const instrumentationName = "github.com/goamqp/amqp"

var tracer trace.Tracer = trace.NewNoopTracerProvider().Tracer(instrumentationName)

// SetTracerProvider swaps the tracer used for every subsequent Start call.
func SetTracerProvider(p trace.TracerProvider) {
	tracer = p.Tracer(instrumentationName)
}

// Start begins a span named op (e.g. "queue.declare", "basic.publish").
// The returned End function finishes the span, recording err on it (via
// RecordError and a Error status) when non-nil; callers should defer it
// with a named error return:
//
//	ctx, end := tracing.Start(ctx, "queue.declare")
//	defer func() { end(err) }()
func Start(ctx context.Context, op string) (context.Context, func(err error)) {
	ctx, span := tracer.Start(ctx, op)
	return ctx, func(err error) {
		if err != nil {
			span.RecordError(err)
			span.SetStatus(codes.Error, err.Error())
		}
		span.End()
	}
}
