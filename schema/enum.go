package schema

import (
	"context"
	"fmt"
)

// StringEnum accepts only the listed string literals.
func StringEnum(allowed ...string) Type {
	set := make(map[string]struct{}, len(allowed))
	for _, a := range allowed {
		set[a] = struct{}{}
	}
	inner := String()
	return TypeFunc(func(ctx context.Context, v any) (any, error) {
		cv, err := inner.Parse(ctx, v)
		if err != nil {
			return nil, err
		}
		s := cv.(string)
		if _, ok := set[s]; !ok {
			return nil, enumIssue(s, anySlice(allowed))
		}
		return s, nil
	})
}

// IntEnum accepts only the listed integer literals.
func IntEnum(allowed ...int64) Type {
	set := make(map[int64]struct{}, len(allowed))
	for _, a := range allowed {
		set[a] = struct{}{}
	}
	inner := Int()
	return TypeFunc(func(ctx context.Context, v any) (any, error) {
		cv, err := inner.Parse(ctx, v)
		if err != nil {
			return nil, err
		}
		n := cv.(int64)
		if _, ok := set[n]; !ok {
			return nil, enumIssue(n, anySlice(allowed))
		}
		return n, nil
	})
}

func enumIssue(got any, allowed []any) Issues {
	return Issues{Issue{
		Path:    "/",
		Code:    CodeInvalidEnum,
		Message: fmt.Sprintf("value %v is not one of %v", got, allowed),
		Params:  map[string]any{"allowed": allowed, "got": got},
	}}
}

func anySlice[T any](in []T) []any {
	out := make([]any, len(in))
	for i, v := range in {
		out[i] = v
	}
	return out
}
