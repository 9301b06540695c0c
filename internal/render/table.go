package render

import (
	"fmt"
	"sort"
	"strconv"
	"strings"

	"github.com/oracle-developer/xplan/internal/plan"
)

const predTitle = "Predicate Information (identified by operation id):"

// Table renders the fixed-width report table for one group of plan
// steps, in ascending id order. Steps with predicates get a '*' marker
// next to their id; FormatAll appends the predicate section below the
// table. An empty group renders nothing.
func Table(steps []plan.Step, f Format) []string {
	if len(steps) == 0 {
		return nil
	}

	sorted := append([]plan.Step(nil), steps...)
	sort.Slice(sorted, func(i, j int) bool { return sorted[i].ID < sorted[j].ID })
	depths := plan.Depths(sorted)

	idW := len("Id")
	opW := len("Operation")
	nameW := len("Name")
	ops := make([]string, len(sorted))
	for i, s := range sorted {
		if n := len(strconv.Itoa(s.ID)); n > idW {
			idW = n
		}
		op := s.Operation
		if s.Options != "" {
			op += " " + s.Options
		}
		ops[i] = strings.Repeat(" ", depths[s.ID]) + op
		if len(ops[i]) > opW {
			opW = len(ops[i])
		}
		if len(s.Name) > nameW {
			nameW = len(s.Name)
		}
	}

	numeric := f != FormatBasic
	rowsW := numCol(sorted, "Rows", func(s plan.Step) int64 { return s.Rows })
	bytesW := numCol(sorted, "Bytes", func(s plan.Step) int64 { return s.Bytes })
	costW := numCol(sorted, "Cost", func(s plan.Step) int64 { return s.Cost })

	header := row(
		fmt.Sprintf(" %-*s ", idW+1, "Id"),
		fmt.Sprintf(" %-*s ", opW, "Operation"),
		fmt.Sprintf(" %-*s ", nameW, "Name"),
		numeric,
		fmt.Sprintf(" %*s ", rowsW, "Rows"),
		fmt.Sprintf(" %*s ", bytesW, "Bytes"),
		fmt.Sprintf(" %*s ", costW, "Cost"),
	)
	rule := strings.Repeat("-", len(header))

	out := make([]string, 0, len(sorted)+4)
	out = append(out, rule, header, rule)
	for i, s := range sorted {
		mark := byte(' ')
		if s.HasPredicate() {
			mark = '*'
		}
		out = append(out, row(
			fmt.Sprintf("%c%*d ", mark, idW+1, s.ID),
			fmt.Sprintf(" %-*s ", opW, ops[i]),
			fmt.Sprintf(" %-*s ", nameW, s.Name),
			numeric,
			fmt.Sprintf(" %*s ", rowsW, numText(s.Rows)),
			fmt.Sprintf(" %*s ", bytesW, numText(s.Bytes)),
			fmt.Sprintf(" %*s ", costW, numText(s.Cost)),
		))
	}
	out = append(out, rule)

	if f == FormatAll {
		out = append(out, predicates(sorted)...)
	}
	return out
}

func row(id, op, name string, numeric bool, rows, bytes, cost string) string {
	fields := []string{id, op, name}
	if numeric {
		fields = append(fields, rows, bytes, cost)
	}
	return "|" + strings.Join(fields, "|") + "|"
}

func numText(v int64) string {
	if v == 0 {
		return ""
	}
	return strconv.FormatInt(v, 10)
}

func numCol(steps []plan.Step, title string, get func(plan.Step) int64) int {
	w := len(title)
	for _, s := range steps {
		if n := len(numText(get(s))); n > w {
			w = n
		}
	}
	return w
}

// predicates renders the access/filter predicate section appended by
// FormatAll. Every line is plain text the annotator passes through.
func predicates(sorted []plan.Step) []string {
	var body []string
	for _, s := range sorted {
		if s.AccessPred != "" {
			body = append(body, fmt.Sprintf("%4d - access(%s)", s.ID, s.AccessPred))
		}
		if s.FilterPred != "" {
			body = append(body, fmt.Sprintf("%4d - filter(%s)", s.ID, s.FilterPred))
		}
	}
	if len(body) == 0 {
		return nil
	}
	out := []string{"", predTitle, strings.Repeat("-", len(predTitle)), ""}
	return append(out, body...)
}
