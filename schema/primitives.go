package schema

import (
	"context"
	"fmt"
	"math"
	"sort"

	j "github.com/goccy/go-json"
)

// String accepts JSON strings.
func String() Type {
	return TypeFunc(func(_ context.Context, v any) (any, error) {
		s, ok := v.(string)
		if !ok {
			return nil, typeIssue("string", v)
		}
		return s, nil
	})
}

// Int accepts JSON numbers with an integral value and yields int64. Numbers
// in float form are accepted when truncation would not lose anything, which
// mirrors how the service emits whole numbers.
func Int() Type {
	return TypeFunc(func(_ context.Context, v any) (any, error) {
		switch n := v.(type) {
		case j.Number:
			if i, err := n.Int64(); err == nil {
				return i, nil
			}
			f, err := n.Float64()
			if err != nil || math.Trunc(f) != f {
				return nil, typeIssue("integer", v)
			}
			return int64(f), nil
		case float64:
			if math.Trunc(n) != n {
				return nil, typeIssue("integer", v)
			}
			return int64(n), nil
		case int:
			return int64(n), nil
		case int64:
			return n, nil
		}
		return nil, typeIssue("integer", v)
	})
}

// Float accepts any JSON number and yields float64.
func Float() Type {
	return TypeFunc(func(_ context.Context, v any) (any, error) {
		switch n := v.(type) {
		case j.Number:
			f, err := n.Float64()
			if err != nil {
				return nil, typeIssue("number", v)
			}
			return f, nil
		case float64:
			return n, nil
		case int:
			return float64(n), nil
		case int64:
			return float64(n), nil
		}
		return nil, typeIssue("number", v)
	})
}

// Bool accepts JSON booleans.
func Bool() Type {
	return TypeFunc(func(_ context.Context, v any) (any, error) {
		b, ok := v.(bool)
		if !ok {
			return nil, typeIssue("boolean", v)
		}
		return b, nil
	})
}

// Any accepts every decoded JSON value unchanged.
func Any() Type {
	return TypeFunc(func(_ context.Context, v any) (any, error) {
		return v, nil
	})
}

// Map accepts a JSON object and yields it unchanged as map[string]any.
func Map() Type {
	return TypeFunc(func(_ context.Context, v any) (any, error) {
		m, ok := v.(map[string]any)
		if !ok {
			return nil, typeIssue("object", v)
		}
		return m, nil
	})
}

// StringMap accepts a JSON object whose values are all strings and yields
// map[string]string.
func StringMap() Type {
	return TypeFunc(func(_ context.Context, v any) (any, error) {
		m, ok := v.(map[string]any)
		if !ok {
			return nil, typeIssue("object", v)
		}
		keys := make([]string, 0, len(m))
		for k := range m {
			keys = append(keys, k)
		}
		sort.Strings(keys)
		out := make(map[string]string, len(m))
		var iss Issues
		for _, k := range keys {
			s, ok := m[k].(string)
			if !ok {
				iss = append(iss, rebase(k, typeIssue("string", m[k]))...)
				continue
			}
			out[k] = s
		}
		if len(iss) > 0 {
			return nil, iss
		}
		return out, nil
	})
}

// Nullable accepts JSON null, yielding nil, or the inner type. Absence of a
// field is the object layer's concern, not Nullable's.
func Nullable(t Type) Type {
	return TypeFunc(func(ctx context.Context, v any) (any, error) {
		if v == nil {
			return nil, nil
		}
		return t.Parse(ctx, v)
	})
}

func typeIssue(want string, got any) Issues {
	return Issues{Issue{
		Path:    "/",
		Code:    CodeInvalidType,
		Message: fmt.Sprintf("expected %s, got %s", want, jsonTypeName(got)),
		Params:  map[string]any{"expected": want},
	}}
}

func jsonTypeName(v any) string {
	switch v.(type) {
	case nil:
		return "null"
	case bool:
		return "boolean"
	case string:
		return "string"
	case j.Number, float64, int, int64:
		return "number"
	case []any:
		return "array"
	case map[string]any:
		return "object"
	default:
		return fmt.Sprintf("%T", v)
	}
}
