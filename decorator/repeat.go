package decorator

import (
	"context"
	"time"

	"github.com/code19m/errx"
	"github.com/rcrowley/go-metrics"

	"github.com/rise-and-shine/decor/callable"
	"github.com/rise-and-shine/decor/observability/logger"
)

// TimingReport summarizes the elapsed times of one repeated call.
type TimingReport struct {
	FunctionName string
	Repetitions  int
	Average      time.Duration
	Min          time.Duration
	Max          time.Duration
	StdDev       time.Duration
}

type repeatOptions struct {
	hook func(TimingReport)
}

// RepeatOption configures the repeat timer.
type RepeatOption func(*repeatOptions)

// WithReportHook receives every timing report after it has been logged.
func WithReportHook(hook func(TimingReport)) RepeatOption {
	return func(o *repeatOptions) {
		o.hook = hook
	}
}

// RepeatTimerWrapper runs the wrapped function a fixed number of times per call and
// reports the average elapsed time.
type RepeatTimerWrapper[I callable.Input, R callable.Result] struct {
	logger logger.Logger
	next   callable.Callable[I, R]
	reps   int
	hook   func(TimingReport)
}

// NewRepeatTimerWrapper returns a wrap function that invokes the wrapped function reps times
// per call with the same input and returns the result of the last invocation.
//
// reps must be positive.
func NewRepeatTimerWrapper[I callable.Input, R callable.Result](
	log logger.Logger,
	reps int,
	opts ...RepeatOption,
) (callable.WrapFunc[I, R], error) {
	if reps <= 0 {
		return nil, errx.New("[decorator.repeat]: repetitions must be positive",
			errx.WithType(errx.T_Validation),
			errx.WithCode(CodeInvalidRepetitions),
			errx.WithDetails(errx.D{"repetitions": reps}),
		)
	}

	var o repeatOptions
	for _, opt := range opts {
		opt(&o)
	}

	return func(next callable.Callable[I, R]) callable.Callable[I, R] {
		return &RepeatTimerWrapper[I, R]{
			logger: named(log, "decorator.repeat"),
			next:   next,
			reps:   reps,
			hook:   o.hook,
		}
	}, nil
}

// Call stops at the first failing repetition and returns its result and error unchanged,
// without reporting. Every elapsed time is kept until the report, so memory grows with reps.
func (w *RepeatTimerWrapper[I, R]) Call(ctx context.Context, input I) (R, error) {
	elapsed := make([]int64, 0, w.reps)

	var result R
	for range w.reps {
		start := time.Now()

		var err error
		result, err = w.next.Call(ctx, input)
		if err != nil {
			return result, err
		}

		elapsed = append(elapsed, int64(time.Since(start)))
	}

	// the Sample* reducers work on plain values and ignore metrics.UseNilMetrics
	report := TimingReport{
		FunctionName: w.next.Meta().Name,
		Repetitions:  w.reps,
		Average:      time.Duration(metrics.SampleMean(elapsed)),
		Min:          time.Duration(metrics.SampleMin(elapsed)),
		Max:          time.Duration(metrics.SampleMax(elapsed)),
		StdDev:       time.Duration(metrics.SampleStdDev(elapsed)),
	}

	w.logger.
		WithContext(ctx).
		With(
			"function_name", report.FunctionName,
			"repetitions", report.Repetitions,
			"avg_execution_time", report.Average.String(),
			"min_execution_time", report.Min.String(),
			"max_execution_time", report.Max.String(),
		).
		Infof("average run time for %d times: %s", report.Repetitions, report.Average)

	if w.hook != nil {
		w.hook(report)
	}

	return result, nil
}

func (w *RepeatTimerWrapper[I, R]) Meta() callable.Meta {
	return w.next.Meta()
}
