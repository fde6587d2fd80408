package schema

import (
	"context"
	"fmt"
	"unicode/utf8"
)

// Min enforces an inclusive lower bound on a numeric type.
func Min(t Type, min float64) Type {
	return TypeFunc(func(ctx context.Context, v any) (any, error) {
		cv, err := t.Parse(ctx, v)
		if err != nil {
			return nil, err
		}
		f, ok := numValue(cv)
		if !ok {
			return nil, typeIssue("number", cv)
		}
		if f < min {
			return nil, Issues{Issue{
				Path:    "/",
				Code:    CodeTooSmall,
				Message: fmt.Sprintf("value %v is less than minimum %v", cv, min),
				Params:  map[string]any{"min": min, "got": cv},
			}}
		}
		return cv, nil
	})
}

// Max enforces an inclusive upper bound on a numeric type.
func Max(t Type, max float64) Type {
	return TypeFunc(func(ctx context.Context, v any) (any, error) {
		cv, err := t.Parse(ctx, v)
		if err != nil {
			return nil, err
		}
		f, ok := numValue(cv)
		if !ok {
			return nil, typeIssue("number", cv)
		}
		if f > max {
			return nil, Issues{Issue{
				Path:    "/",
				Code:    CodeTooBig,
				Message: fmt.Sprintf("value %v is greater than maximum %v", cv, max),
				Params:  map[string]any{"max": max, "got": cv},
			}}
		}
		return cv, nil
	})
}

// Range combines Min and Max.
func Range(t Type, min, max float64) Type {
	return Max(Min(t, min), max)
}

// MinLen enforces a minimum length, in runes, on a string type.
func MinLen(t Type, n int) Type {
	return TypeFunc(func(ctx context.Context, v any) (any, error) {
		cv, err := t.Parse(ctx, v)
		if err != nil {
			return nil, err
		}
		s, ok := cv.(string)
		if !ok {
			return nil, typeIssue("string", cv)
		}
		if got := utf8.RuneCountInString(s); got < n {
			return nil, Issues{Issue{
				Path:    "/",
				Code:    CodeTooShort,
				Message: fmt.Sprintf("length %d is less than minimum %d", got, n),
				Params:  map[string]any{"min_length": n, "got": got},
			}}
		}
		return cv, nil
	})
}

// MaxLen enforces a maximum length, in runes, on a string type.
func MaxLen(t Type, n int) Type {
	return TypeFunc(func(ctx context.Context, v any) (any, error) {
		cv, err := t.Parse(ctx, v)
		if err != nil {
			return nil, err
		}
		s, ok := cv.(string)
		if !ok {
			return nil, typeIssue("string", cv)
		}
		if got := utf8.RuneCountInString(s); got > n {
			return nil, Issues{Issue{
				Path:    "/",
				Code:    CodeTooLong,
				Message: fmt.Sprintf("length %d is greater than maximum %d", got, n),
				Params:  map[string]any{"max_length": n, "got": got},
			}}
		}
		return cv, nil
	})
}

func numValue(v any) (float64, bool) {
	switch n := v.(type) {
	case int64:
		return float64(n), true
	case float64:
		return n, true
	case int:
		return float64(n), true
	}
	return 0, false
}
