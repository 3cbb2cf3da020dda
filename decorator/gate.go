package decorator

import (
	"context"
	"time"

	"github.com/rise-and-shine/decor/callable"
	"github.com/rise-and-shine/decor/observability/logger"
)

type gateOptions struct {
	clock   func() time.Time
	perCall bool
}

// GateOption configures a parity gate.
type GateOption func(*gateOptions)

// WithClock replaces time.Now as the source of the sampled instant.
func WithClock(clock func() time.Time) GateOption {
	return func(o *gateOptions) {
		o.clock = clock
	}
}

// WithPerCallSampling samples the clock on every call instead of once at wrap time.
func WithPerCallSampling() GateOption {
	return func(o *gateOptions) {
		o.perCall = true
	}
}

// ParityGateWrapper lets calls through only when the sampled UTC second is odd.
type ParityGateWrapper[I callable.Input, R callable.Result] struct {
	logger  logger.Logger
	next    callable.Callable[I, R]
	clock   func() time.Time
	perCall bool
	even    bool
}

// NewParityGateWrapper returns a wrap function gating calls on the parity of the UTC second.
//
// By default the second is sampled once, when the returned function is applied, and the
// verdict holds for the lifetime of the wrapper. On an even second every call is suppressed:
// the wrapped function is not invoked, MsgEven is logged and the zero result is returned.
func NewParityGateWrapper[I callable.Input, R callable.Result](
	log logger.Logger,
	opts ...GateOption,
) callable.WrapFunc[I, R] {
	o := gateOptions{clock: time.Now}
	for _, opt := range opts {
		opt(&o)
	}

	return func(next callable.Callable[I, R]) callable.Callable[I, R] {
		return &ParityGateWrapper[I, R]{
			logger:  named(log, "decorator.gate").With("function_name", next.Meta().Name),
			next:    next,
			clock:   o.clock,
			perCall: o.perCall,
			even:    isEvenSecond(o.clock()),
		}
	}
}

func (w *ParityGateWrapper[I, R]) Call(ctx context.Context, input I) (R, error) {
	even := w.even
	if w.perCall {
		even = isEvenSecond(w.clock())
	}

	if even {
		w.logger.WithContext(ctx).Info(MsgEven)
		var zero R
		return zero, nil
	}

	return w.next.Call(ctx, input)
}

func (w *ParityGateWrapper[I, R]) Meta() callable.Meta {
	return w.next.Meta()
}

func isEvenSecond(t time.Time) bool {
	return t.UTC().Second()%2 == 0
}
