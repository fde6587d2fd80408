package schema

import (
	"errors"
	"fmt"
	"strings"
)

// Issue codes. Exported as consts so callers can switch on them.
const (
	CodeInvalidType   = "invalid_type"
	CodeRequired      = "required"
	CodeTooSmall      = "too_small"
	CodeTooBig        = "too_big"
	CodeTooShort      = "too_short"
	CodeTooLong       = "too_long"
	CodeInvalidEnum   = "invalid_enum"
	CodeInvalidFormat = "invalid_format"
	CodeUnionMismatch = "union_mismatch"
	CodeParseError    = "parse_error"
)

// Issue is a single validation finding.
type Issue struct {
	Path    string // JSON Pointer into the offending value, e.g. /forecast/hourly/0/qnh.
	Code    string // One of the Code* constants.
	Message string
	Cause   error          // Optional underlying error.
	Params  map[string]any // Structured parameters, e.g. {"min": 1, "got": 0}.
}

// Issues is a collection of validation findings that implements error.
type Issues []Issue

// Error summarizes the first few issues.
func (iss Issues) Error() string {
	if len(iss) == 0 {
		return "validation failed"
	}
	var b strings.Builder
	n := len(iss)
	if n > 3 {
		n = 3
	}
	for i := 0; i < n; i++ {
		if i > 0 {
			b.WriteString("; ")
		}
		it := iss[i]
		fmt.Fprintf(&b, "%s at %s: %s", it.Code, it.Path, it.Message)
	}
	if len(iss) > 3 {
		fmt.Fprintf(&b, "; and %d more", len(iss)-3)
	}
	return b.String()
}

// AsIssues extracts an Issues value from err, unwrapping as needed.
func AsIssues(err error) (Issues, bool) {
	var iss Issues
	if errors.As(err, &iss) {
		return iss, true
	}
	return nil, false
}

// rebase shifts issue paths from a child's root onto the parent's segment.
func rebase(seg string, iss Issues) Issues {
	out := make(Issues, 0, len(iss))
	for _, it := range iss {
		p := it.Path
		if p == "" || p == "/" {
			p = ""
		}
		it.Path = "/" + seg + p
		out = append(out, it)
	}
	return out
}

// rebaseErr rebases err when it carries Issues and wraps it as a parse_error
// at the segment otherwise.
func rebaseErr(seg string, err error) Issues {
	if iss, ok := AsIssues(err); ok {
		return rebase(seg, iss)
	}
	return Issues{Issue{Path: "/" + seg, Code: CodeParseError, Message: err.Error(), Cause: err}}
}
