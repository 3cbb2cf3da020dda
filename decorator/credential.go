package decorator

import (
	"context"

	"github.com/rise-and-shine/decor/callable"
)

// CredentialGateWrapper invokes a zero argument callable only when given the stored credential.
//
// The comparison is plain equality. It is a toy gate, not an authentication mechanism.
type CredentialGateWrapper[R callable.Result] struct {
	secret string
	next   callable.Callable[callable.Empty, R]
}

// NewCredentialGateWrapper returns a function that guards a zero argument callable with secret.
//
// The wrapped callable takes exactly one argument, the offered credential.
func NewCredentialGateWrapper[R callable.Result](
	secret string,
) func(callable.Callable[callable.Empty, R]) *CredentialGateWrapper[R] {
	return func(next callable.Callable[callable.Empty, R]) *CredentialGateWrapper[R] {
		return &CredentialGateWrapper[R]{secret: secret, next: next}
	}
}

// Call runs the wrapped function when credential matches; otherwise it returns a rejected
// outcome carrying MsgWrongCredential. Errors of the wrapped function are returned as is.
func (w *CredentialGateWrapper[R]) Call(ctx context.Context, credential string) (Outcome[R], error) {
	if credential != w.secret {
		return rejected[R](MsgWrongCredential), nil
	}

	result, err := w.next.Call(ctx, callable.Empty{})
	if err != nil {
		return Outcome[R]{Value: result}, err
	}
	return accepted(result), nil
}

func (w *CredentialGateWrapper[R]) Meta() callable.Meta {
	return w.next.Meta()
}
