package schema

import (
	"context"
	"fmt"
)

// Variant names one alternative of a union.
type Variant struct {
	Name string
	Type Type
}

// Union is the canonical form of a OneOf match: the name of the variant that
// structurally matched and the value it produced.
type Union struct {
	Which string
	Value any
}

// OneOf tries each variant in declaration order and yields a Union for the
// first structural match.
func OneOf(variants ...Variant) Type {
	return TypeFunc(func(ctx context.Context, v any) (any, error) {
		for _, alt := range variants {
			cv, err := alt.Type.Parse(ctx, v)
			if err == nil {
				return Union{Which: alt.Name, Value: cv}, nil
			}
		}
		names := make([]string, 0, len(variants))
		for _, alt := range variants {
			names = append(names, alt.Name)
		}
		return nil, Issues{Issue{
			Path:    "/",
			Code:    CodeUnionMismatch,
			Message: fmt.Sprintf("value matches none of %v", names),
			Params:  map[string]any{"variants": names},
		}}
	})
}
