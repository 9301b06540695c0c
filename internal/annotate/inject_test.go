package annotate

import (
	"errors"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/oracle-developer/xplan/internal/plan"
)

func TestWidth(t *testing.T) {
	tests := []struct {
		maxOrder int
		want     int
	}{
		{1, 6},
		{42, 6},
		{999, 6},
		{1000, 7},
		{12345, 8},
	}
	for _, tt := range tests {
		if got := Width(tt.maxOrder); got != tt.want {
			t.Errorf("Width(%d) = %d, want %d", tt.maxOrder, got, tt.want)
		}
	}
}

var (
	testRule   = strings.Repeat("-", 35)
	testHeader = "| Id  | Operation          | Name |"
)

func twoStepGroup() plan.Group {
	return plan.Group{Steps: []plan.Step{
		{ID: 0, ParentID: plan.NoParent, Operation: "SELECT STATEMENT"},
		{ID: 1, ParentID: 0, Operation: "TABLE ACCESS", Options: "FULL", Name: "EMP", FilterPred: `"DEPTNO"=10`},
	}}
}

func TestReportInjectsColumns(t *testing.T) {
	lines := []string{
		testRule,
		testHeader,
		testRule,
		"|   0 | SELECT STATEMENT   |      |",
		"|*  1 |  TABLE ACCESS FULL | EMP  |",
		testRule,
	}

	got, err := Report(lines, twoStepGroup(), Options{})
	if err != nil {
		t.Fatalf("Report failed: %v", err)
	}

	wide := strings.Repeat("-", 35+14)
	want := []string{
		wide,
		"| Id  |   Pid|   Ord| Operation          | Name |",
		wide,
		"|   0 |      |     2| SELECT STATEMENT   |      |",
		"|*  1 |     0|     1|  TABLE ACCESS FULL | EMP  |",
		wide,
	}
	want = append(want, Footer()...)

	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("annotated report mismatch (-want +got):\n%s", diff)
	}
}

// Wrapped fields continue on id-less delimited lines; they get two
// blank fields so the block's columns stay aligned.
func TestReportPadsContinuationRows(t *testing.T) {
	lines := []string{
		testRule,
		testHeader,
		testRule,
		"|   0 | SELECT STATEMENT   |      |",
		"|*  1 |  TABLE ACCESS FULL | EMP  |",
		"|     |  AND COL2 = :B2    |      |",
		testRule,
	}

	got, err := Report(lines, twoStepGroup(), Options{})
	if err != nil {
		t.Fatalf("Report failed: %v", err)
	}

	wide := strings.Repeat("-", 35+14)
	want := []string{
		wide,
		"| Id  |   Pid|   Ord| Operation          | Name |",
		wide,
		"|   0 |      |     2| SELECT STATEMENT   |      |",
		"|*  1 |     0|     1|  TABLE ACCESS FULL | EMP  |",
		"|     |      |      |  AND COL2 = :B2    |      |",
		wide,
	}
	want = append(want, Footer()...)

	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("annotated report mismatch (-want +got):\n%s", diff)
	}
	for _, line := range got[:7] {
		if len(line) != len(got[0]) {
			t.Errorf("line width drifted: %q", line)
		}
	}
}

func TestReportUnmatchedRow(t *testing.T) {
	stray := "|   9 | NONSENSE           | X    |"
	lines := []string{
		testRule,
		testHeader,
		testRule,
		"|   0 | SELECT STATEMENT   |      |",
		stray,
		testRule,
	}

	// Default: the stray row passes through unannotated, everything
	// else is still spliced.
	got, err := Report(lines, twoStepGroup(), Options{})
	if err != nil {
		t.Fatalf("Report failed: %v", err)
	}
	if got[4] != stray {
		t.Errorf("stray row was modified: %q", got[4])
	}
	if !strings.Contains(got[3], "|     2|") {
		t.Errorf("matched row was not annotated: %q", got[3])
	}

	// Strict: the mismatch is fatal and produces no output.
	got, err = Report(lines, twoStepGroup(), Options{StrictUnmatched: true})
	var mismatch *MismatchError
	if !errors.As(err, &mismatch) || mismatch.ID != 9 {
		t.Fatalf("expected MismatchError for id 9, got %v", err)
	}
	if len(got) != 0 {
		t.Errorf("strict failure still produced %d lines", len(got))
	}
}

func TestReportIntegrityFailureProducesNoOutput(t *testing.T) {
	group := plan.Group{Steps: []plan.Step{
		{ID: 0, ParentID: plan.NoParent},
		{ID: 0, ParentID: plan.NoParent},
	}}
	got, err := Report([]string{testRule, testHeader, testRule}, group, Options{})
	var integrity *plan.IntegrityError
	if !errors.As(err, &integrity) {
		t.Fatalf("expected IntegrityError, got %v", err)
	}
	if len(got) != 0 {
		t.Errorf("failed report still produced %d lines", len(got))
	}
}

func TestReportEmptyInput(t *testing.T) {
	got, err := Report(nil, twoStepGroup(), Options{})
	if err != nil || len(got) != 0 {
		t.Fatalf("empty input: got %v lines, err %v", len(got), err)
	}
}

// Stripping the injected columns and the footer reproduces the
// original report byte for byte.
func TestReportRoundTrip(t *testing.T) {
	lines := []string{
		"Plan hash value: 272002086",
		"",
		testRule,
		testHeader,
		testRule,
		"|   0 | SELECT STATEMENT   |      |",
		"|*  1 |  TABLE ACCESS FULL | EMP  |",
		testRule,
		"",
		`   1 - filter("DEPTNO"=10)`,
	}

	got, err := Report(lines, twoStepGroup(), Options{})
	if err != nil {
		t.Fatalf("Report failed: %v", err)
	}

	stripped := strip(got, Width(2))
	if diff := cmp.Diff(lines, stripped); diff != "" {
		t.Errorf("round trip mismatch (-want +got):\n%s", diff)
	}
}

// strip undoes the injection: removes the footer, un-widens separators
// and cuts the two spliced fields out of delimited lines.
func strip(annotated []string, w int) []string {
	body := annotated[:len(annotated)-len(Footer())]
	out := make([]string, len(body))
	for i, line := range body {
		switch Classify(line).Kind {
		case KindSeparator:
			out[i] = line[:len(line)-2*(w+1)]
		case KindHeader, KindData, KindContinuation:
			p := secondDelim(line)
			out[i] = line[:p+1] + line[p+1+2*(w+1):]
		default:
			out[i] = line
		}
	}
	return out
}
