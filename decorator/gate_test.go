package decorator_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rise-and-shine/decor/callable"
	"github.com/rise-and-shine/decor/decorator"
)

func at(second int) time.Time {
	return time.Date(2024, 5, 1, 12, 30, second, 0, time.UTC)
}

func fixedClock(second int) func() time.Time {
	return func() time.Time { return at(second) }
}

func TestParityGate(t *testing.T) {
	tests := []struct {
		name       string
		second     int
		wantResult int
		wantCalls  int
		wantLogs   int
	}{
		{name: "odd second forwards", second: 5, wantResult: 3 + 4 + 1, wantCalls: 1},
		{name: "even second suppresses", second: 4, wantResult: 0, wantLogs: 1},
		{name: "zero second is even", second: 0, wantResult: 0, wantLogs: 1},
		{name: "59 is odd", second: 59, wantResult: 3 + 4 + 1, wantCalls: 1},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			log, logs := newObserved(t)
			rec := &recorder{}

			gated := decorator.NewParityGateWrapper[addInput, int](log, decorator.WithClock(fixedClock(tc.second)))(rec.callable())

			got, err := gated.Call(t.Context(), addInput{A: 3, B: 4})
			require.NoError(t, err)
			assert.Equal(t, tc.wantResult, got)
			assert.Equal(t, tc.wantCalls, rec.calls())

			require.Equal(t, tc.wantLogs, logs.Len())
			if tc.wantLogs > 0 {
				entry := logs.All()[0]
				assert.Equal(t, decorator.MsgEven, entry.Message)
				assert.Equal(t, "decorator.gate", entry.LoggerName)
				assert.Equal(t, "add", entry.ContextMap()["function_name"])
			}
		})
	}
}

func TestParityGate_SampledOnceAtWrapTime(t *testing.T) {
	log, logs := newObserved(t)
	rec := &recorder{}

	now := at(7)
	clock := func() time.Time { return now }

	gated := decorator.NewParityGateWrapper[addInput, int](log, decorator.WithClock(clock))(rec.callable())

	for second := range 4 {
		now = at(second * 2) // even from here on
		_, err := gated.Call(t.Context(), addInput{A: 1, B: 1})
		require.NoError(t, err)
	}

	assert.Equal(t, 4, rec.calls())
	assert.Equal(t, 0, logs.Len())
}

func TestParityGate_PerCallSampling(t *testing.T) {
	log, logs := newObserved(t)
	rec := &recorder{}

	now := at(7)
	clock := func() time.Time { return now }

	gated := decorator.NewParityGateWrapper[addInput, int](
		log,
		decorator.WithClock(clock),
		decorator.WithPerCallSampling(),
	)(rec.callable())

	for _, second := range []int{1, 2, 3, 4, 5} {
		now = at(second)
		_, err := gated.Call(t.Context(), addInput{})
		require.NoError(t, err)
	}

	assert.Equal(t, 3, rec.calls())
	assert.Equal(t, 2, logs.Len())
}

func TestParityGate_UsesUTCSecond(t *testing.T) {
	log, _ := newObserved(t)
	rec := &recorder{}

	zone := time.FixedZone("UTC+3", 3*60*60)
	clock := func() time.Time { return at(9).In(zone) }

	gated := decorator.NewParityGateWrapper[addInput, int](log, decorator.WithClock(clock))(rec.callable())

	_, err := gated.Call(t.Context(), addInput{})
	require.NoError(t, err)
	assert.Equal(t, 1, rec.calls())
}

func TestParityGate_PropagatesErrors(t *testing.T) {
	log, logs := newObserved(t)
	rec := &recorder{fail: func(int) bool { return true }}

	gated := decorator.NewParityGateWrapper[addInput, int](log, decorator.WithClock(fixedClock(1)))(rec.callable())

	got, err := gated.Call(t.Context(), addInput{})
	require.ErrorIs(t, err, errBoom)
	assert.Equal(t, -1, got)
	assert.Equal(t, 0, logs.Len())
}

func TestParityGate_PreservesMetaAndComposes(t *testing.T) {
	log, logs := newObserved(t)
	rec := &recorder{}
	original := rec.callable()

	wrap := decorator.NewParityGateWrapper[addInput, int](log, decorator.WithClock(fixedClock(2)))
	twice := callable.Chain(original, wrap, wrap)

	assert.Equal(t, original.Meta().Name, twice.Meta().Name)
	assert.Equal(t, original.Meta().Description, twice.Meta().Description)
	assert.Equal(t, original.Meta().AnnotationMap(), twice.Meta().AnnotationMap())

	got, err := twice.Call(t.Context(), addInput{A: 1})
	require.NoError(t, err)
	assert.Zero(t, got)
	assert.Equal(t, 0, rec.calls())
	assert.Equal(t, 1, logs.Len(), "the outer gate suppresses before the inner one runs")
}

func TestParityGate_NilLoggerFallsBackToGlobal(t *testing.T) {
	rec := &recorder{}

	gated := decorator.NewParityGateWrapper[addInput, int](nil, decorator.WithClock(fixedClock(3)))(rec.callable())

	got, err := gated.Call(t.Context(), addInput{A: 2, B: 2})
	require.NoError(t, err)
	assert.Equal(t, 5, got)
}
