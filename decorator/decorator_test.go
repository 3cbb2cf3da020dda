package decorator_test

import (
	"context"
	"errors"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"go.uber.org/goleak"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"

	"github.com/rise-and-shine/decor/callable"
	"github.com/rise-and-shine/decor/decorator"
	"github.com/rise-and-shine/decor/observability/logger"
)

func TestMain(m *testing.M) {
	goleak.VerifyTestMain(m)
}

var errBoom = errors.New("boom")

func newObserved(t *testing.T) (logger.Logger, *observer.ObservedLogs) {
	t.Helper()
	core, logs := observer.New(zapcore.DebugLevel)
	return logger.FromZap(zap.New(core)), logs
}

type addInput struct {
	A int
	B int
}

// recorder is a callable that remembers every input it was called with.
type recorder struct {
	mu     sync.Mutex
	inputs []addInput
	fail   func(call int) bool
}

func (r *recorder) calls() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.inputs)
}

// add returns A+B plus the number of the call, so successive results differ.
func (r *recorder) add(_ context.Context, in addInput) (int, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.inputs = append(r.inputs, in)
	call := len(r.inputs)
	if r.fail != nil && r.fail(call) {
		return -call, errBoom
	}
	return in.A + in.B + call, nil
}

func (r *recorder) callable() callable.Callable[addInput, int] {
	return callable.New(r.add,
		callable.WithName("add"),
		callable.WithDescription("Adds two integers."),
		callable.WithAnnotation("a", "int"),
		callable.WithAnnotation("b", "int"),
		callable.WithAnnotation("return", "int"),
	)
}

func TestOutcome_String(t *testing.T) {
	assert.Equal(t, decorator.MsgWrongCredential, decorator.Outcome[int]{Rejected: true, Message: decorator.MsgWrongCredential}.String())
	assert.Equal(t, "[a b]", decorator.Outcome[[]string]{Value: []string{"a", "b"}}.String())
}

func TestConfig(t *testing.T) {
	cfg := decorator.Config{Access: "mid", PerCallParity: true}

	assert.Equal(t, decorator.TierMid, cfg.Tier())
	assert.Len(t, cfg.GateOptions(), 1)
	assert.Empty(t, decorator.Config{Access: "high"}.GateOptions())
}
