package decorator

import (
	"context"

	"github.com/rise-and-shine/decor/callable"
	"github.com/rise-and-shine/decor/meta"
	"github.com/rise-and-shine/decor/observability/tracing"
)

// MetaInjectWrapper puts call metadata into the context seen by the wrapped function and
// by every wrapper below it.
type MetaInjectWrapper[I callable.Input, R callable.Result] struct {
	serviceName    string
	serviceVersion string
	next           callable.Callable[I, R]
}

// NewMetaInjectWrapper returns a wrap function injecting trace ID, service name and version,
// and the callable name. An existing trace ID in the context is kept.
func NewMetaInjectWrapper[I callable.Input, R callable.Result](
	serviceName, serviceVersion string,
) callable.WrapFunc[I, R] {
	return func(next callable.Callable[I, R]) callable.Callable[I, R] {
		return &MetaInjectWrapper[I, R]{serviceName: serviceName, serviceVersion: serviceVersion, next: next}
	}
}

func (w *MetaInjectWrapper[I, R]) Call(ctx context.Context, input I) (R, error) {
	traceID, err := meta.ShouldGetMeta(ctx, meta.TraceID)
	if err != nil || traceID == "" {
		traceID = tracing.GetStartingTraceID(ctx)
	}

	ctx = meta.InjectMetaToContext(ctx, map[meta.ContextKey]string{
		meta.TraceID:        traceID,
		meta.ServiceName:    w.serviceName,
		meta.ServiceVersion: w.serviceVersion,
		meta.CallName:       w.next.Meta().Name,
	})

	return w.next.Call(ctx, input)
}

func (w *MetaInjectWrapper[I, R]) Meta() callable.Meta {
	return w.next.Meta()
}
