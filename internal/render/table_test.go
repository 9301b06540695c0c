package render

import (
	"errors"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/oracle-developer/xplan/internal/plan"
)

func testSteps() []plan.Step {
	return []plan.Step{
		{ID: 0, ParentID: plan.NoParent, Operation: "SELECT STATEMENT", Cost: 3},
		{ID: 1, ParentID: 0, Operation: "TABLE ACCESS", Options: "FULL", Name: "EMP",
			Rows: 14, Bytes: 518, Cost: 3, FilterPred: `"DEPTNO"=10`},
	}
}

func TestTableBasic(t *testing.T) {
	got := Table(testSteps(), FormatBasic)

	rule := strings.Repeat("-", 35)
	want := []string{
		rule,
		"| Id  | Operation          | Name |",
		rule,
		"|   0 | SELECT STATEMENT   |      |",
		"|*  1 |  TABLE ACCESS FULL | EMP  |",
		rule,
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("basic table mismatch (-want +got):\n%s", diff)
	}
}

func TestTableTypical(t *testing.T) {
	got := Table(testSteps(), FormatTypical)

	header := got[1]
	for _, title := range []string{"Rows", "Bytes", "Cost"} {
		if !strings.Contains(header, title) {
			t.Errorf("typical header missing %q: %q", title, header)
		}
	}
	if !strings.Contains(got[4], " 14 ") || !strings.Contains(got[4], " 518 ") {
		t.Errorf("typical row missing statistics: %q", got[4])
	}
	// NULL statistics render blank, not zero.
	if strings.Contains(got[3], " 0 ") {
		t.Errorf("unset statistic rendered as zero: %q", got[3])
	}
	for _, line := range got[:len(got)-1] {
		if len(line) != len(header) {
			t.Errorf("column drift: %q", line)
		}
	}
}

func TestTableAllAppendsPredicates(t *testing.T) {
	got := Table(testSteps(), FormatAll)

	joined := strings.Join(got, "\n")
	if !strings.Contains(joined, predTitle) {
		t.Fatalf("missing predicate section:\n%s", joined)
	}
	if !strings.Contains(joined, `   1 - filter("DEPTNO"=10)`) {
		t.Errorf("missing filter predicate:\n%s", joined)
	}
}

func TestTableEmpty(t *testing.T) {
	if got := Table(nil, FormatTypical); got != nil {
		t.Fatalf("empty group rendered %d lines", len(got))
	}
}

func TestParseFormat(t *testing.T) {
	tests := []struct {
		in   string
		want Format
		ok   bool
	}{
		{"", FormatTypical, true},
		{"typical", FormatTypical, true},
		{"TYPICAL", FormatTypical, true},
		{"basic", FormatBasic, true},
		{" all ", FormatAll, true},
		{"fancy", 0, false},
	}
	for _, tt := range tests {
		got, err := ParseFormat(tt.in)
		if tt.ok {
			if err != nil || got != tt.want {
				t.Errorf("ParseFormat(%q) = %v, %v", tt.in, got, err)
			}
			continue
		}
		var param *ParameterError
		if !errors.As(err, &param) {
			t.Errorf("ParseFormat(%q) error = %v, want ParameterError", tt.in, err)
		}
	}
}
