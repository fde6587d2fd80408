package schema

import (
	"context"
	"strconv"
)

// Array accepts a JSON array and validates every element with elem. Element
// issues are rebased under the element index; any element failure fails the
// whole array.
func Array(elem Type) Type {
	return TypeFunc(func(ctx context.Context, v any) (any, error) {
		arr, ok := v.([]any)
		if !ok {
			return nil, typeIssue("array", v)
		}
		out := make([]any, 0, len(arr))
		var iss Issues
		for i, ev := range arr {
			cv, err := elem.Parse(ctx, ev)
			if err != nil {
				iss = append(iss, rebaseErr(strconv.Itoa(i), err)...)
				continue
			}
			out = append(out, cv)
		}
		if len(iss) > 0 {
			return nil, iss
		}
		return out, nil
	})
}
