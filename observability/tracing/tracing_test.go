package tracing_test

import (
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"

	"github.com/rise-and-shine/decor/observability/tracing"
)

func TestInitGlobalTracer_Disabled(t *testing.T) {
	shutdown, err := tracing.InitGlobalTracer(tracing.Config{Disable: true}, "decor", "test")
	require.NoError(t, err)
	require.NotNil(t, shutdown)

	assert.NoError(t, shutdown())
}

func TestGetStartingTraceID(t *testing.T) {
	t.Run("without span", func(t *testing.T) {
		id := tracing.GetStartingTraceID(context.Background())
		assert.True(t, strings.HasPrefix(id, "man-"))
		assert.NotEqual(t, id, tracing.GetStartingTraceID(context.Background()))
	})

	t.Run("with span", func(t *testing.T) {
		tp := sdktrace.NewTracerProvider()
		defer func() { _ = tp.Shutdown(context.Background()) }()

		ctx, span := tp.Tracer("test").Start(t.Context(), "op")
		defer span.End()

		assert.Equal(t, span.SpanContext().TraceID().String(), tracing.GetStartingTraceID(ctx))
	})
}
