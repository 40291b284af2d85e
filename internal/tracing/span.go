package tracing

import (
	"context"
	"net/http"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/propagation"
	"go.opentelemetry.io/otel/trace"
)

// StartRequestSpan starts a client span for one GET of the work list.
func StartRequestSpan(ctx context.Context, p *Provider, method, target, host string, pass int) (context.Context, trace.Span) {
	spanName := method + " request"
	if host != "" {
		spanName = method + " " + host
	}
	ctx, span := p.Tracer().Start(ctx, spanName,
		trace.WithSpanKind(trace.SpanKindClient),
	)
	span.SetAttributes(
		attribute.String("http.request.method", method),
		attribute.String("url.full", target),
		attribute.Int("pour.pass", pass),
	)
	if id := p.RunID(); id != "" {
		span.SetAttributes(attribute.String("pour.run_id", id))
	}
	return ctx, span
}

// EndSpan finishes a span, recording error status if applicable.
func EndSpan(span trace.Span, err error, attrs ...attribute.KeyValue) {
	if len(attrs) > 0 {
		span.SetAttributes(attrs...)
	}
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
	} else {
		span.SetStatus(codes.Ok, "")
	}
	span.End()
}

// StatusAttribute tags a span with the response status code.
func StatusAttribute(code int) attribute.KeyValue {
	return attribute.Int("http.response.status_code", code)
}

// InjectHTTPHeaders injects W3C trace context into HTTP headers.
func InjectHTTPHeaders(ctx context.Context, headers http.Header) {
	otel.GetTextMapPropagator().Inject(ctx, propagation.HeaderCarrier(headers))
}
