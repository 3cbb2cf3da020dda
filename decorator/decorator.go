// Package decorator provides wrappers that attach cross-cutting behavior to a callable
// without changing its body.
//
// Signature preserving wrappers (parity gate, instrumentation, repeated timing, tracing,
// metadata injection) are callable.WrapFunc values and can be composed with callable.Chain.
// The access controller and the credential gate replace the call itself and therefore
// return their own wrapper types, which still implement callable.Callable.
package decorator

import (
	"fmt"

	"github.com/rise-and-shine/decor/observability/logger"
)

// Messages carried by soft outcomes and suppression notices.
const (
	MsgEven            = "We are even"
	MsgImproperAccess  = "Improper access keyword set"
	MsgWrongCredential = "Wrong Password"
)

// Outcome is the result of a wrapper that may refuse a call without failing.
//
// A refusal is a normal, reportable result: Rejected is set, Message explains why
// and Value is the zero value.
type Outcome[V any] struct {
	Value    V
	Rejected bool
	Message  string
}

func accepted[V any](v V) Outcome[V] {
	return Outcome[V]{Value: v}
}

func rejected[V any](msg string) Outcome[V] {
	return Outcome[V]{Rejected: true, Message: msg}
}

// String returns the message of a rejected outcome or the formatted value.
func (o Outcome[V]) String() string {
	if o.Rejected {
		return o.Message
	}
	return fmt.Sprint(o.Value)
}

// named scopes l, falling back to the global logger when l is nil.
func named(l logger.Logger, name string) logger.Logger {
	if l == nil {
		return logger.Named(name)
	}
	return l.Named(name)
}
