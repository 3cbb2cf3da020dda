package decorator

import (
	"context"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"github.com/rise-and-shine/decor/callable"
)

const tracerName = "github.com/rise-and-shine/decor/decorator"

// TracingWrapper opens one OpenTelemetry span per call.
type TracingWrapper[I callable.Input, R callable.Result] struct {
	tracer   trace.Tracer
	spanName string
	attrs    []attribute.KeyValue
	next     callable.Callable[I, R]
}

// NewTracingWrapper returns a wrap function tracing calls with tp, or with the global
// provider when tp is nil. Spans are named after the callable.
func NewTracingWrapper[I callable.Input, R callable.Result](tp trace.TracerProvider) callable.WrapFunc[I, R] {
	return func(next callable.Callable[I, R]) callable.Callable[I, R] {
		provider := tp
		if provider == nil {
			provider = otel.GetTracerProvider()
		}

		m := next.Meta()
		return &TracingWrapper[I, R]{
			tracer:   provider.Tracer(tracerName),
			spanName: m.Name,
			attrs: []attribute.KeyValue{
				attribute.String("code.function", m.Name),
				attribute.String("decor.description", m.Description),
				attribute.StringSlice("decor.parameters", m.AnnotationKeys()),
			},
			next: next,
		}
	}
}

func (w *TracingWrapper[I, R]) Call(ctx context.Context, input I) (R, error) {
	ctx, span := w.tracer.Start(ctx, w.spanName, trace.WithAttributes(w.attrs...))
	defer span.End()

	result, err := w.next.Call(ctx, input)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
	}

	return result, err
}

func (w *TracingWrapper[I, R]) Meta() callable.Meta {
	return w.next.Meta()
}
