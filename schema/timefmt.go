package schema

import (
	"context"
	"time"
)

const dateLayout = "2006-01-02"

// DateTime accepts RFC 3339 timestamps and yields time.Time.
func DateTime() Type {
	return TypeFunc(func(_ context.Context, v any) (any, error) {
		s, ok := v.(string)
		if !ok {
			return nil, typeIssue("string", v)
		}
		t, err := parseRFC3339(s)
		if err != nil {
			return nil, Issues{Issue{
				Path:    "/",
				Code:    CodeInvalidFormat,
				Message: "invalid RFC 3339 timestamp",
				Cause:   err,
				Params:  map[string]any{"format": "date-time", "got": s},
			}}
		}
		return t, nil
	})
}

// Date accepts calendar dates in 2006-01-02 form and yields time.Time at
// midnight UTC.
func Date() Type {
	return TypeFunc(func(_ context.Context, v any) (any, error) {
		s, ok := v.(string)
		if !ok {
			return nil, typeIssue("string", v)
		}
		t, err := time.Parse(dateLayout, s)
		if err != nil {
			return nil, Issues{Issue{
				Path:    "/",
				Code:    CodeInvalidFormat,
				Message: "invalid calendar date",
				Cause:   err,
				Params:  map[string]any{"format": "date", "got": s},
			}}
		}
		return t, nil
	})
}

// parseRFC3339 tries the nanosecond layout first, then the plain one.
func parseRFC3339(s string) (time.Time, error) {
	if t, err := time.Parse(time.RFC3339Nano, s); err == nil {
		return t, nil
	}
	return time.Parse(time.RFC3339, s)
}
