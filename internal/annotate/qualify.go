package annotate

import (
	"fmt"
	"strings"

	"github.com/oracle-developer/xplan/internal/plan"
)

// nameTitle is the column-title of the object-name field.
const nameTitle = "Name"

// namePadding computes how many extra characters the Name column needs
// to hold the longest owner-qualified name: the longest "owner.name"
// (bare name when no owner) minus the longest bare name.
func namePadding(steps []plan.Step) int {
	maxQual, maxBare := 0, 0
	for _, step := range steps {
		if step.Name == "" {
			continue
		}
		if n := len(step.QualifiedName()); n > maxQual {
			maxQual = n
		}
		if n := len(step.Name); n > maxBare {
			maxBare = n
		}
	}
	if pad := maxQual - maxBare; pad > 0 {
		return pad
	}
	return 0
}

// qualifyBlock re-pads the Name column of every annotated line in the
// block and substitutes owner-qualified names on data rows. It operates
// only on the portion of each line to the right of the columns the
// injector spliced in, and must run after injection.
func qualifyBlock(out []string, cls []Line, annotated []bool, blk block, steps []plan.Step, order *plan.OrderMap) {
	pad := namePadding(steps)
	nameIdx := fieldIndex(out[blk.header], nameTitle)
	if nameIdx < 0 {
		return
	}

	for i := blk.start; i <= blk.end; i++ {
		switch cls[i].Kind {
		case KindSeparator:
			out[i] += strings.Repeat("-", pad)

		case KindHeader, KindContinuation:
			if annotated[i] {
				out[i] = padField(out[i], nameIdx, pad)
			}

		case KindData:
			if !annotated[i] {
				continue
			}
			step, ok := order.Step(cls[i].StepID)
			if ok && step.Owner != "" && step.Name != "" {
				out[i] = replaceField(out[i], nameIdx, pad, step.QualifiedName())
			} else {
				out[i] = padField(out[i], nameIdx, pad)
			}
		}
	}
}

// fieldIndex returns the index of the delimited field whose trimmed
// content equals title, or -1.
func fieldIndex(line, title string) int {
	pos := delimPositions(line)
	for i := 0; i+1 < len(pos); i++ {
		if strings.TrimSpace(line[pos[i]+1:pos[i+1]]) == title {
			return i
		}
	}
	return -1
}

// padField widens field idx by pad spaces, inserted before its closing
// delimiter. Lines with too few delimiters are returned unchanged.
func padField(line string, idx, pad int) string {
	pos := delimPositions(line)
	if idx+1 >= len(pos) {
		return line
	}
	end := pos[idx+1]
	return line[:end] + strings.Repeat(" ", pad) + line[end:]
}

// replaceField rewrites field idx with the qualified name, left
// justified into the field widened by pad. Falls back to plain padding
// when the name would not fit, so column borders never shift.
func replaceField(line string, idx, pad int, qualified string) string {
	pos := delimPositions(line)
	if idx+1 >= len(pos) {
		return line
	}
	open, end := pos[idx], pos[idx+1]
	width := end - open - 1 + pad
	if len(qualified)+1 > width {
		return padField(line, idx, pad)
	}
	content := fmt.Sprintf(" %-*s", width-1, qualified)
	return line[:open+1] + content + line[end:]
}

func delimPositions(s string) []int {
	var pos []int
	for i := 0; i < len(s); i++ {
		if s[i] == Delim {
			pos = append(pos, i)
		}
	}
	return pos
}
