package annotate

import (
	"sort"
	"strings"

	"github.com/oracle-developer/xplan/internal/plan"
)

// Version is the tool identity stamped into the report footer.
const Version = "2.1.0"

// Footer returns the informational block appended after each annotated
// report. Every footer line classifies as passthrough, so re-running
// the annotator over its own output never annotates twice.
func Footer() []string {
	return []string{
		"",
		"About",
		"   - xplan " + Version + ": report annotated with parent step (Pid) and execution order (Ord)",
	}
}

// MultiReport annotates one report segment per plan group. Groups are
// processed in ascending key order and each one sizes its injected
// columns and name padding from its own steps only; segments beyond the
// group count pass through untouched. Any integrity failure yields zero
// output lines.
//
// segments[i] must be the rendered block of the i-th group in ascending
// key order, as produced by the upstream renderer (or by Split).
func MultiReport(segments [][]string, groups []plan.Group, opts Options) ([]string, error) {
	sorted := append([]plan.Group(nil), groups...)
	sort.Slice(sorted, func(i, j int) bool { return sorted[i].Key < sorted[j].Key })

	var out []string
	for i, seg := range segments {
		if i >= len(sorted) {
			out = append(out, seg...)
			continue
		}
		annotated, err := Report(seg, sorted[i], opts)
		if err != nil {
			return nil, err
		}
		out = append(out, annotated...)
	}
	return out, nil
}

// preamble markers emitted by the renderer ahead of each group block.
func isPreamble(line string) bool {
	return strings.HasPrefix(line, "SQL_ID ") ||
		strings.HasPrefix(line, "Plan hash value")
}

// Split partitions an externally rendered multi-group line stream into
// one segment per plan table. A segment starts at its block's attached
// separator, pulled back through the passthrough run above it when a
// preamble marker line (and its leading blank) introduces the block.
// Streams with at most one table come back as a single segment.
func Split(lines []string) [][]string {
	if len(lines) == 0 {
		return nil
	}
	cls := classifyAll(lines)

	var headers []int
	for i := range cls {
		if cls[i].Kind == KindHeader {
			headers = append(headers, i)
		}
	}
	if len(headers) <= 1 {
		return [][]string{lines}
	}

	starts := make([]int, len(headers))
	prevEnd := blockEnd(cls, headers[0])
	for k := 1; k < len(headers); k++ {
		attached := headers[k]
		if attached-1 > prevEnd && cls[attached-1].Kind == KindSeparator {
			attached--
		}
		cut := attached
		for j := attached - 1; j > prevEnd; j-- {
			if cls[j].Kind != KindPassthrough {
				break
			}
			if isPreamble(lines[j]) {
				cut = j
				if j-1 > prevEnd && strings.TrimSpace(lines[j-1]) == "" {
					cut = j - 1
				}
				break
			}
		}
		starts[k] = cut
		prevEnd = blockEnd(cls, headers[k])
	}

	segments := make([][]string, 0, len(headers))
	for k := range starts {
		end := len(lines)
		if k+1 < len(starts) {
			end = starts[k+1]
		}
		segments = append(segments, lines[starts[k]:end])
	}
	return segments
}

// blockEnd returns the last separator/data/continuation line of the
// table whose header is at h.
func blockEnd(cls []Line, h int) int {
	j := h
	for j+1 < len(cls) {
		k := cls[j+1].Kind
		if k != KindSeparator && k != KindData && k != KindContinuation {
			break
		}
		j++
	}
	return j
}
