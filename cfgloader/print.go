package cfgloader

import (
	"fmt"
	"log/slog"
	"reflect"

	"gopkg.in/yaml.v3"
)

const maskedValue = "********"

func printConfig(config any) {
	out, err := yaml.Marshal(Masked(config))
	if err != nil {
		slog.Error("[cfgloader]: failed to marshal config", "error", err.Error())
		return
	}
	slog.Info(fmt.Sprintf("[cfgloader]: loaded config:\n%s", string(out)))
}

// Masked returns a copy of config where every field tagged `mask:"true"` is hidden.
// Non-empty strings become "********", other masked values become their zero value.
func Masked(config any) any {
	val := reflect.ValueOf(config)
	if !val.IsValid() {
		return nil
	}
	return maskValue(val).Interface()
}

func maskValue(val reflect.Value) reflect.Value {
	switch val.Kind() { //nolint:exhaustive // other kinds are copied as is
	case reflect.Pointer:
		if val.IsNil() {
			return val
		}
		ptr := reflect.New(val.Elem().Type())
		ptr.Elem().Set(maskValue(val.Elem()))
		return ptr

	case reflect.Struct:
		out := reflect.New(val.Type()).Elem()
		for i := range val.NumField() {
			field := val.Type().Field(i)
			if !field.IsExported() {
				continue
			}
			if field.Tag.Get("mask") == "true" {
				out.Field(i).Set(hide(val.Field(i)))
				continue
			}
			out.Field(i).Set(maskValue(val.Field(i)))
		}
		return out

	default:
		return val
	}
}

func hide(val reflect.Value) reflect.Value {
	if val.Kind() == reflect.String && val.Len() > 0 {
		return reflect.ValueOf(maskedValue).Convert(val.Type())
	}
	return reflect.Zero(val.Type())
}
