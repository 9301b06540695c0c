// Package render produces the unannotated fixed-width plan report from
// catalog rows: one delimiter-separated table per plan group, in the
// layout the annotator operates on.
package render

import (
	"fmt"
	"strings"
)

// Format selects which columns and sections the rendered report shows.
type Format int

const (
	// FormatBasic renders Id, Operation and Name.
	FormatBasic Format = iota
	// FormatTypical adds the Rows, Bytes and Cost columns.
	FormatTypical
	// FormatAll additionally appends the predicate information section.
	FormatAll
)

// ParameterError reports a malformed user-supplied parameter. It is
// raised before any catalog or report access happens.
type ParameterError struct {
	Param  string
	Value  string
	Reason string
}

func (e *ParameterError) Error() string {
	return fmt.Sprintf("invalid %s %q: %s", e.Param, e.Value, e.Reason)
}

// ParseFormat parses a format-options string. The empty string means
// typical.
func ParseFormat(s string) (Format, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "typical":
		return FormatTypical, nil
	case "basic":
		return FormatBasic, nil
	case "all":
		return FormatAll, nil
	default:
		return 0, &ParameterError{
			Param:  "format",
			Value:  s,
			Reason: "expected basic, typical or all",
		}
	}
}
