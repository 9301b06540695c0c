package annotate

import (
	"fmt"
	"strconv"
	"strings"

	"go.uber.org/zap"

	"github.com/oracle-developer/xplan/internal/plan"
)

// Options controls one annotation run.
type Options struct {
	// Qualify widens the object-name column to hold owner-qualified
	// names and substitutes "owner.name" on rows that have an owner.
	Qualify bool

	// StrictUnmatched makes a report row whose id has no catalog step
	// fatal. The default leaves the row unannotated and logs a warning.
	StrictUnmatched bool

	Logger *zap.Logger
}

func (o Options) logger() *zap.Logger {
	if o.Logger != nil {
		return o.Logger
	}
	return zap.NewNop()
}

// MismatchError reports a data line whose step id has no catalog entry.
// Only raised under Options.StrictUnmatched.
type MismatchError struct {
	ID int
}

func (e *MismatchError) Error() string {
	return fmt.Sprintf("report row id %d has no matching catalog step", e.ID)
}

// Width returns the injected column width for a group whose largest
// order rank is maxOrder: the rank's digit length plus 3, floored at 6.
func Width(maxOrder int) int {
	w := len(strconv.Itoa(maxOrder)) + 3
	if w < 6 {
		w = 6
	}
	return w
}

// block is one annotatable table: a header row, the separator attached
// above it, and the run of separator/data/continuation lines below it.
type block struct {
	start, end int // inclusive line range
	header     int
}

// findBlock locates the first table at or after line `from`. The
// separator immediately preceding the header belongs to the block;
// anything from the first passthrough line on does not.
func findBlock(cls []Line, from int) (block, bool) {
	for h := from; h < len(cls); h++ {
		if cls[h].Kind != KindHeader {
			continue
		}
		b := block{start: h, end: h, header: h}
		if h > from && cls[h-1].Kind == KindSeparator {
			b.start = h - 1
		}
		for j := h + 1; j < len(cls); j++ {
			k := cls[j].Kind
			if k != KindSeparator && k != KindData && k != KindContinuation {
				break
			}
			b.end = j
		}
		return b, true
	}
	return block{}, false
}

// splice inserts text immediately after the line's second delimiter,
// right after the existing id column. Lines without two delimiters are
// returned unchanged.
func splice(text, insert string) string {
	p := secondDelim(text)
	if p < 0 {
		return text
	}
	return text[:p+1] + insert + text[p+1:]
}

func secondDelim(s string) int {
	first := strings.IndexByte(s, Delim)
	if first < 0 {
		return -1
	}
	off := strings.IndexByte(s[first+1:], Delim)
	if off < 0 {
		return -1
	}
	return first + 1 + off
}

// Report annotates the rendered report of a single plan group: it
// splices the parent-id and order columns into the group's table,
// optionally qualifies the name column, and appends the footer.
//
// The tree is validated before any output is produced; an IntegrityError
// yields no lines at all. Empty input stays empty.
func Report(lines []string, group plan.Group, opts Options) ([]string, error) {
	if len(lines) == 0 {
		return nil, nil
	}

	order, err := plan.BuildOrder(group.Steps)
	if err != nil {
		return nil, err
	}
	w := Width(order.Len())

	cls := classifyAll(lines)
	out := make([]string, len(lines))
	copy(out, lines)
	annotated := make([]bool, len(lines))

	blk, ok := findBlock(cls, 0)
	if ok {
		for i := blk.start; i <= blk.end; i++ {
			switch cls[i].Kind {
			case KindSeparator:
				// Each injected field adds w characters plus its delimiter.
				out[i] = cls[i].Text + strings.Repeat("-", 2*(w+1))

			case KindHeader:
				out[i] = splice(cls[i].Text, fmt.Sprintf("%*s|%*s|", w, "Pid", w, "Ord"))
				annotated[i] = true

			case KindData:
				id := cls[i].StepID
				rank, found := order.Order(id)
				if !found {
					if opts.StrictUnmatched {
						return nil, &MismatchError{ID: id}
					}
					opts.logger().Warn("report row has no catalog step; left unannotated",
						zap.Int("id", id))
					continue
				}
				step, _ := order.Step(id)
				parent := ""
				if step.ParentID != plan.NoParent {
					parent = strconv.Itoa(step.ParentID)
				}
				out[i] = splice(cls[i].Text, fmt.Sprintf("%*s|%*d|", w, parent, w, rank))
				annotated[i] = true

			case KindContinuation:
				out[i] = splice(cls[i].Text, fmt.Sprintf("%*s|%*s|", w, "", w, ""))
				annotated[i] = true
			}
		}

		if opts.Qualify {
			qualifyBlock(out, cls, annotated, blk, group.Steps, order)
		}
	}

	return append(out, Footer()...), nil
}
