package callable_test

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rise-and-shine/decor/callable"
)

type greetInput struct {
	First string
	Last  string
}

func greet(_ context.Context, in greetInput) (string, error) {
	return "hello " + in.First + " " + in.Last, nil
}

func TestNew_DerivesMetadata(t *testing.T) {
	c := callable.New(greet)

	m := c.Meta()
	assert.Equal(t, "greet", m.Name)
	assert.Empty(t, m.Description)
	assert.Equal(t, []string{callable.AnnotationInput, callable.AnnotationReturn}, m.AnnotationKeys())
	assert.Equal(t, map[string]string{
		"input":  "callable_test.greetInput",
		"return": "string",
	}, m.AnnotationMap())
}

func TestNew_EmptyInputAnnotation(t *testing.T) {
	c := callable.New(func(context.Context, callable.Empty) (int, error) { return 1, nil })

	assert.Equal(t, "empty", c.Meta().AnnotationMap()[callable.AnnotationInput])
	assert.True(t, strings.HasPrefix(c.Meta().Name, "TestNew_EmptyInputAnnotation"))
}

func TestNew_Options(t *testing.T) {
	c := callable.New(greet,
		callable.WithName("say_hello"),
		callable.WithDescription("Greets a person by full name."),
		callable.WithAnnotation("first", "str"),
		callable.WithAnnotation("last", "str"),
		callable.WithAnnotation("return", "str"),
	)

	m := c.Meta()
	assert.Equal(t, "say_hello", m.Name)
	assert.Equal(t, "Greets a person by full name.", m.Description)

	if diff := cmp.Diff([]string{"first", "last", "return"}, m.AnnotationKeys()); diff != "" {
		t.Errorf("annotation order mismatch (-want +got):\n%s", diff)
	}
}

func TestCall_ForwardsInputAndError(t *testing.T) {
	c := callable.New(greet)

	got, err := c.Call(t.Context(), greetInput{First: "Ada", Last: "Lovelace"})
	require.NoError(t, err)
	assert.Equal(t, "hello Ada Lovelace", got)

	boom := errors.New("boom")
	failing := callable.New(func(context.Context, int) (int, error) { return 7, boom })

	got2, err := failing.Call(t.Context(), 1)
	require.ErrorIs(t, err, boom)
	assert.Equal(t, 7, got2)
}

func TestMeta_IsACopy(t *testing.T) {
	c := callable.New(greet, callable.WithAnnotation("name", "str"))

	m := c.Meta()
	m.Name = "mutated"
	m.Annotations.Set("extra", "int")

	assert.Equal(t, "greet", c.Meta().Name)
	assert.Equal(t, []string{"name"}, c.Meta().AnnotationKeys())
}

func TestMeta_NilAnnotations(t *testing.T) {
	var m callable.Meta

	assert.Empty(t, m.AnnotationMap())
	assert.Nil(t, m.AnnotationKeys())
	assert.Equal(t, 0, m.Clone().Annotations.Len())
}

func TestChain_FirstWrapIsOutermost(t *testing.T) {
	var order []string
	trace := func(name string) callable.WrapFunc[int, int] {
		return func(next callable.Callable[int, int]) callable.Callable[int, int] {
			return callable.New(func(ctx context.Context, in int) (int, error) {
				order = append(order, name)
				return next.Call(ctx, in)
			})
		}
	}

	base := callable.New(func(_ context.Context, in int) (int, error) {
		order = append(order, "base")
		return in * 2, nil
	})

	c := callable.Chain(base, trace("outer"), trace("inner"))

	got, err := c.Call(t.Context(), 21)
	require.NoError(t, err)
	assert.Equal(t, 42, got)
	assert.Equal(t, []string{"outer", "inner", "base"}, order)
}

func TestChain_NoWraps(t *testing.T) {
	base := callable.New(greet)

	assert.Same(t, base, callable.Chain(base))
}
