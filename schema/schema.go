// Package schema implements a small declarative validation engine for
// decoded JSON values.
//
// A shape is declared once as data (field descriptors with types, aliases,
// defaults and constraints) and interpreted by a pure validator: no I/O, no
// shared state, and identical input always yields the identical result.
// Validation failures are reported as Issues, a slice of structured findings
// addressed by JSON Pointer.
package schema

import (
	"context"
	"fmt"
	"reflect"
)

// Type validates one decoded JSON value and returns its canonical Go form.
// Implementations parse as if the value were the document root; containers
// rebase child issue paths under the child's key or index.
type Type interface {
	Parse(ctx context.Context, v any) (any, error)
}

// TypeFunc adapts a function to the Type interface.
type TypeFunc func(ctx context.Context, v any) (any, error)

// Parse implements Type.
func (f TypeFunc) Parse(ctx context.Context, v any) (any, error) { return f(ctx, v) }

// Schema validates decoded JSON into a typed Go value.
type Schema[T any] interface {
	Parse(ctx context.Context, v any) (T, error)
}

// Of wraps an untyped descriptor as a Schema[T]. The canonical value the
// descriptor produces must be assignable or convertible to T.
func Of[T any](t Type) Schema[T] {
	return ofSchema[T]{t: t}
}

type ofSchema[T any] struct {
	t Type
}

func (s ofSchema[T]) Parse(ctx context.Context, v any) (T, error) {
	var zero T
	cv, err := s.t.Parse(ctx, v)
	if err != nil {
		return zero, err
	}
	if tv, ok := cv.(T); ok {
		return tv, nil
	}
	rt := reflect.TypeOf(zero)
	rv := reflect.ValueOf(cv)
	if rt != nil && rv.IsValid() && rv.Type().ConvertibleTo(rt) {
		return rv.Convert(rt).Interface().(T), nil
	}
	return zero, Issues{Issue{
		Path:    "/",
		Code:    CodeParseError,
		Message: fmt.Sprintf("cannot represent %T as %T", cv, zero),
	}}
}

// AsType adapts a typed schema for use as a field descriptor inside another
// schema. The canonical value it produces is the bound value itself, so a
// parent binder can assign it directly.
func AsType[T any](s Schema[T]) Type {
	return TypeFunc(func(ctx context.Context, v any) (any, error) {
		tv, err := s.Parse(ctx, v)
		if err != nil {
			return nil, err
		}
		return tv, nil
	})
}

// Transform applies fn to the canonical value produced by t. fn errors that
// are not already Issues are reported as a parse_error at the value root.
func Transform(t Type, fn func(v any) (any, error)) Type {
	return TypeFunc(func(ctx context.Context, v any) (any, error) {
		cv, err := t.Parse(ctx, v)
		if err != nil {
			return nil, err
		}
		out, err := fn(cv)
		if err != nil {
			if iss, ok := AsIssues(err); ok {
				return nil, iss
			}
			return nil, Issues{Issue{Path: "/", Code: CodeParseError, Message: err.Error(), Cause: err}}
		}
		return out, nil
	})
}
