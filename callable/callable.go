// Package callable defines the function shape that decorators in this module wrap.
//
// A plain Go function is lifted into a Callable together with an explicit metadata
// record (name, description and parameter annotations). Decorators receive a Callable
// and return a new one with the same calling convention, carrying the metadata forward
// so that wrapping never hides what is being wrapped.
package callable

import (
	"context"
	"reflect"
	"runtime"
	"strings"
)

type (
	// Empty is the input type of callables that take no arguments.
	Empty = struct{}
)

type (
	// Input represents the input type of a callable.
	Input any

	// Result represents the result type of a callable.
	Result any
)

// Func is the plain function shape accepted by New.
//
// Several arguments are passed as one struct input, zero arguments as Empty.
type Func[I Input, R Result] func(context.Context, I) (R, error)

// Callable is a function with attached metadata.
type Callable[I Input, R Result] interface {
	// Call invokes the function with the given input.
	//
	// Parameters:
	//   - ctx: Context for cancellation and request metadata.
	//   - input: The call input.
	//
	// Returns the call result and error, if any.
	Call(ctx context.Context, input I) (R, error)

	// Meta returns the metadata of the function.
	Meta() Meta
}

// WrapFunc defines a decorator that keeps the calling convention of the callable it wraps.
type WrapFunc[I Input, R Result] func(Callable[I, R]) Callable[I, R]

type funcCallable[I Input, R Result] struct {
	fn   Func[I, R]
	meta Meta
}

// New lifts fn into a Callable.
//
// Without options the name is taken from the Go symbol of fn and the annotations
// describe the input and return types.
func New[I Input, R Result](fn Func[I, R], opts ...Option) Callable[I, R] {
	o := options{meta: Meta{
		Name:        funcName(fn),
		Annotations: NewAnnotations(),
	}}
	o.meta.Annotations.Set(AnnotationInput, typeName[I]())
	o.meta.Annotations.Set(AnnotationReturn, typeName[R]())

	for _, opt := range opts {
		opt(&o)
	}

	return &funcCallable[I, R]{fn: fn, meta: o.meta}
}

func (c *funcCallable[I, R]) Call(ctx context.Context, input I) (R, error) {
	return c.fn(ctx, input)
}

func (c *funcCallable[I, R]) Meta() Meta {
	return c.meta.Clone()
}

// Chain applies wraps to c so that the first wrap listed is the outermost one.
func Chain[I Input, R Result](c Callable[I, R], wraps ...WrapFunc[I, R]) Callable[I, R] {
	for i := len(wraps) - 1; i >= 0; i-- {
		c = wraps[i](c)
	}
	return c
}

// funcName returns the unqualified symbol name of fn, e.g. "greet" for pkg.greet.
func funcName(fn any) string {
	v := reflect.ValueOf(fn)
	if v.Kind() != reflect.Func || v.IsNil() {
		return ""
	}

	rf := runtime.FuncForPC(v.Pointer())
	if rf == nil {
		return ""
	}

	name := rf.Name()
	if idx := strings.LastIndex(name, "/"); idx != -1 {
		name = name[idx+1:]
	}
	if idx := strings.Index(name, "."); idx != -1 {
		name = name[idx+1:]
	}

	return name
}

func typeName[T any]() string {
	t := reflect.TypeFor[T]()
	if t == nil {
		return "any"
	}
	if t.String() == "struct {}" {
		return "empty"
	}
	return t.String()
}
