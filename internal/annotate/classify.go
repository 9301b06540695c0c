// Package annotate performs the width-aware text surgery that splices
// parent and execution-order columns into a pre-rendered, fixed-width
// plan report. Lines are treated as opaque text: each one is classified
// against a small table of literal markers and anything unrecognized
// passes through untouched.
package annotate

import (
	"regexp"
	"strconv"
	"strings"
)

// LineKind classifies one report line.
type LineKind int

const (
	// KindPassthrough is anything unrecognized; emitted verbatim.
	KindPassthrough LineKind = iota
	// KindSeparator is a line made entirely of rule characters.
	KindSeparator
	// KindHeader is the column-title row of a plan table.
	KindHeader
	// KindData is a table row opening with a step id.
	KindData
	// KindContinuation is a delimited line that is not a data row,
	// produced when a wide field wraps across physical lines.
	KindContinuation
)

// Delim separates the columns of the rendered report.
const Delim = '|'

// ruleChar draws separator lines.
const ruleChar = '-'

// headerTitles are the recognized first-column titles of a plan table
// header row.
var headerTitles = map[string]bool{
	"Id": true,
}

// dataPattern matches a table row: delimiter, optional predicate
// marker, the step id digits, delimiter.
var dataPattern = regexp.MustCompile(`^\|\s*\*?\s*([0-9]+)\s*\|`)

// Line is one classified report line. StepID is meaningful only for
// KindData.
type Line struct {
	Text   string
	Kind   LineKind
	StepID int
}

// Classify categorizes a single report line. Priority order: separator,
// header, data, continuation, passthrough.
func Classify(text string) Line {
	if isSeparator(text) {
		return Line{Text: text, Kind: KindSeparator}
	}
	if m := dataPattern.FindStringSubmatch(text); m != nil {
		id, err := strconv.Atoi(m[1])
		if err == nil {
			return Line{Text: text, Kind: KindData, StepID: id}
		}
	}
	if strings.IndexByte(text, Delim) >= 0 {
		if first, ok := firstField(text); ok && headerTitles[strings.TrimSpace(first)] {
			return Line{Text: text, Kind: KindHeader}
		}
		return Line{Text: text, Kind: KindContinuation}
	}
	return Line{Text: text, Kind: KindPassthrough}
}

// classifyAll classifies every line of a report slice. Working on the
// full slice gives later stages the lookahead they need to attach a
// separator to the header it precedes.
func classifyAll(lines []string) []Line {
	out := make([]Line, len(lines))
	for i, text := range lines {
		out[i] = Classify(text)
	}
	return out
}

func isSeparator(text string) bool {
	if len(text) == 0 {
		return false
	}
	for i := 0; i < len(text); i++ {
		if text[i] != ruleChar {
			return false
		}
	}
	return true
}

// firstField returns the content between the first two delimiters.
func firstField(text string) (string, bool) {
	start := strings.IndexByte(text, Delim)
	if start < 0 {
		return "", false
	}
	end := strings.IndexByte(text[start+1:], Delim)
	if end < 0 {
		return "", false
	}
	return text[start+1 : start+1+end], true
}
