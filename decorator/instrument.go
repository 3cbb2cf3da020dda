package decorator

import (
	"context"
	"time"

	"github.com/rcrowley/go-metrics"

	"github.com/rise-and-shine/decor/callable"
	"github.com/rise-and-shine/decor/observability/logger"
)

const (
	histogramReservoir = 1028
	histogramAlpha     = 0.015
)

// InvocationRecord is what the instrumentation wrapper captures around one successful call.
type InvocationRecord struct {
	FunctionName  string
	CalledAt      time.Time
	ExecutionTime time.Duration
	Description   string
	Annotations   map[string]string
}

type instrumentOptions struct {
	hook     func(InvocationRecord)
	registry metrics.Registry
}

// InstrumentOption configures the instrumentation wrapper.
type InstrumentOption func(*instrumentOptions)

// WithRecordHook receives every emitted record after it has been logged.
func WithRecordHook(hook func(InvocationRecord)) InstrumentOption {
	return func(o *instrumentOptions) {
		o.hook = hook
	}
}

// WithMetricsRegistry records execution times in a "decor.call.<name>" histogram of registry.
func WithMetricsRegistry(registry metrics.Registry) InstrumentOption {
	return func(o *instrumentOptions) {
		o.registry = registry
	}
}

// InstrumentWrapper logs name, call time, duration, description and annotations of each call.
type InstrumentWrapper[I callable.Input, R callable.Result] struct {
	logger    logger.Logger
	next      callable.Callable[I, R]
	hook      func(InvocationRecord)
	histogram metrics.Histogram
}

// NewInstrumentWrapper returns a wrap function that emits an InvocationRecord per successful call.
//
// Errors of the wrapped function are returned untouched and produce no record.
func NewInstrumentWrapper[I callable.Input, R callable.Result](
	log logger.Logger,
	opts ...InstrumentOption,
) callable.WrapFunc[I, R] {
	var o instrumentOptions
	for _, opt := range opts {
		opt(&o)
	}

	return func(next callable.Callable[I, R]) callable.Callable[I, R] {
		w := &InstrumentWrapper[I, R]{
			logger: named(log, "decorator.instrument"),
			next:   next,
			hook:   o.hook,
		}
		if o.registry != nil {
			w.histogram = metrics.GetOrRegisterHistogram(
				"decor.call."+next.Meta().Name,
				o.registry,
				metrics.NewExpDecaySample(histogramReservoir, histogramAlpha),
			)
		}
		return w
	}
}

func (w *InstrumentWrapper[I, R]) Call(ctx context.Context, input I) (R, error) {
	calledAt := time.Now().UTC()
	start := time.Now()

	result, err := w.next.Call(ctx, input)
	if err != nil {
		return result, err
	}

	elapsed := time.Since(start)

	// the record describes the wrapper, which mirrors the metadata of what it wraps
	m := w.Meta()
	rec := InvocationRecord{
		FunctionName:  m.Name,
		CalledAt:      calledAt,
		ExecutionTime: elapsed,
		Description:   m.Description,
		Annotations:   m.AnnotationMap(),
	}

	w.logger.
		WithContext(ctx).
		With(
			"function_name", rec.FunctionName,
			"called_at", rec.CalledAt.Format(time.RFC3339Nano),
			"execution_time", rec.ExecutionTime.String(),
			"description", rec.Description,
			"annotations", rec.Annotations,
		).
		Info("function called")

	if w.histogram != nil {
		w.histogram.Update(int64(elapsed))
	}
	if w.hook != nil {
		w.hook(rec)
	}

	return result, nil
}

func (w *InstrumentWrapper[I, R]) Meta() callable.Meta {
	return w.next.Meta()
}
