// Package meta carries call metadata through context.
package meta

import (
	"context"
	"slices"

	"github.com/code19m/errx"
)

// ContextKey is a type for keys used in context values for metadata.
type ContextKey string

const (
	// TraceID correlates every log line and span of one logical call.
	TraceID ContextKey = "trace_id"

	// ServiceName identifies the name of the running service.
	ServiceName ContextKey = "service_name"

	// ServiceVersion indicates the version of the service.
	ServiceVersion ContextKey = "service_version"

	// CallName is the metadata name of the callable being invoked.
	CallName ContextKey = "call_name"
)

// Error codes returned by ShouldGetMeta.
const (
	CodeKeyNotFound  = "META_KEY_NOT_FOUND"
	CodeTypeMismatch = "META_TYPE_MISMATCH"
)

//nolint:gochecknoglobals // fixed set of extractable keys
var knownKeys = []ContextKey{TraceID, ServiceName, ServiceVersion, CallName}

// Keys returns the known metadata keys in their fixed order.
func Keys() []ContextKey {
	return slices.Clone(knownKeys)
}

// InjectMetaToContext adds every non-empty value of data to ctx.
func InjectMetaToContext(ctx context.Context, data map[ContextKey]string) context.Context {
	for k, v := range data {
		if v != "" {
			ctx = context.WithValue(ctx, k, v) //nolint:fatcontext // finite number of keys
		}
	}
	return ctx
}

// ExtractMetaFromContext returns the non-empty string values of all known keys.
func ExtractMetaFromContext(ctx context.Context) map[ContextKey]string {
	data := make(map[ContextKey]string)
	for _, k := range knownKeys {
		if v, ok := ctx.Value(k).(string); ok && v != "" {
			data[k] = v
		}
	}
	return data
}

// ShouldGetMeta returns the value stored under key, failing when it is absent or not a string.
func ShouldGetMeta(ctx context.Context, key ContextKey) (string, error) {
	raw := ctx.Value(key)
	if raw == nil {
		return "", errx.New("[meta]: key not found in context",
			errx.WithCode(CodeKeyNotFound),
			errx.WithDetails(errx.D{"key": string(key)}),
		)
	}

	v, ok := raw.(string)
	if !ok {
		return "", errx.New("[meta]: type mismatch for context value",
			errx.WithCode(CodeTypeMismatch),
			errx.WithDetails(errx.D{"key": string(key)}),
		)
	}

	return v, nil
}
