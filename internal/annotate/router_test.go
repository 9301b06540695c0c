package annotate

import (
	"errors"
	"strings"
	"testing"

	"github.com/oracle-developer/xplan/internal/plan"
)

func segment(dataRows ...string) []string {
	seg := []string{testRule, testHeader, testRule}
	seg = append(seg, dataRows...)
	return append(seg, testRule)
}

func TestMultiReportGroupIsolation(t *testing.T) {
	// Groups are given out of key order; key 1 must annotate the first
	// segment and key 2 the second, each sized from its own steps.
	groups := []plan.Group{
		{Key: 2, Steps: []plan.Step{
			{ID: 0, ParentID: plan.NoParent},
			{ID: 1, ParentID: 0},
			{ID: 2, ParentID: 1},
		}},
		{Key: 1, Steps: []plan.Step{
			{ID: 0, ParentID: plan.NoParent},
			{ID: 1, ParentID: 0},
		}},
	}
	segments := [][]string{
		segment(
			"|   0 | SELECT STATEMENT   |      |",
			"|   1 |  SORT AGGREGATE    |      |",
		),
		segment(
			"|   0 | SELECT STATEMENT   |      |",
			"|   1 |  SORT AGGREGATE    |      |",
			"|   2 |   TABLE ACCESS FULL| EMP  |",
		),
	}

	out, err := MultiReport(segments, groups, Options{})
	if err != nil {
		t.Fatalf("MultiReport failed: %v", err)
	}

	var annotated []string
	for _, line := range out {
		if Classify(line).Kind == KindData {
			annotated = append(annotated, line)
		}
	}
	if len(annotated) != 5 {
		t.Fatalf("annotated %d data rows, want 5", len(annotated))
	}

	// Group key 1 (N=2): root rank 2. Group key 2 (N=3): root rank 3,
	// step 2 is the deepest leaf and completes first.
	checks := map[int]string{
		0: "|     2|", // first segment root
		2: "|     3|", // second segment root
		4: "|     1|", // second segment leaf (id 2)
	}
	for i, want := range checks {
		if !strings.Contains(annotated[i], want) {
			t.Errorf("data row %d = %q, missing %q", i, annotated[i], want)
		}
	}
	if !strings.Contains(annotated[4], "|     1|     1|") {
		t.Errorf("leaf row parent/order = %q", annotated[4])
	}

	if footers := strings.Count(strings.Join(out, "\n"), "About"); footers != 2 {
		t.Errorf("emitted %d footers, want 2", footers)
	}
}

func TestMultiReportExtraSegmentsPassThrough(t *testing.T) {
	groups := []plan.Group{
		{Key: 0, Steps: []plan.Step{{ID: 0, ParentID: plan.NoParent}}},
	}
	extra := []string{"no table here", "just text"}
	segments := [][]string{
		segment("|   0 | SELECT STATEMENT   |      |"),
		extra,
	}

	out, err := MultiReport(segments, groups, Options{})
	if err != nil {
		t.Fatalf("MultiReport failed: %v", err)
	}
	tail := out[len(out)-2:]
	if tail[0] != extra[0] || tail[1] != extra[1] {
		t.Errorf("extra segment was modified: %v", tail)
	}
	if footers := strings.Count(strings.Join(out, "\n"), "About"); footers != 1 {
		t.Errorf("emitted %d footers, want 1", footers)
	}
}

func TestMultiReportIntegrityFailureProducesNoOutput(t *testing.T) {
	groups := []plan.Group{
		{Key: 0, Steps: []plan.Step{{ID: 0, ParentID: plan.NoParent}}},
		{Key: 1, Steps: []plan.Step{
			{ID: 0, ParentID: plan.NoParent},
			{ID: 0, ParentID: plan.NoParent},
		}},
	}
	segments := [][]string{
		segment("|   0 | SELECT STATEMENT   |      |"),
		segment("|   0 | SELECT STATEMENT   |      |"),
	}

	out, err := MultiReport(segments, groups, Options{})
	var integrity *plan.IntegrityError
	if !errors.As(err, &integrity) {
		t.Fatalf("expected IntegrityError, got %v", err)
	}
	if len(out) != 0 {
		t.Errorf("failed report still produced %d lines", len(out))
	}
}

func TestSplit(t *testing.T) {
	first := segment("|   0 | SELECT STATEMENT   |      |")
	second := segment("|   0 | SELECT STATEMENT   |      |")
	stream := append(append([]string{}, first...),
		"",
		"SQL_ID 9babjv8yq8ru3, child number 1",
		"")
	stream = append(stream, second...)

	segs := Split(stream)
	if len(segs) != 2 {
		t.Fatalf("Split produced %d segments, want 2", len(segs))
	}
	if len(segs[0]) != len(first) {
		t.Errorf("first segment has %d lines, want %d", len(segs[0]), len(first))
	}
	// The preamble and its leading blank belong to the second segment.
	if segs[1][0] != "" || !strings.HasPrefix(segs[1][1], "SQL_ID ") {
		t.Errorf("second segment starts with %q, %q", segs[1][0], segs[1][1])
	}
}

func TestSplitSingleTable(t *testing.T) {
	lines := segment("|   0 | SELECT STATEMENT   |      |")
	segs := Split(lines)
	if len(segs) != 1 || len(segs[0]) != len(lines) {
		t.Fatalf("Split of a single table: %d segments", len(segs))
	}
	if Split(nil) != nil {
		t.Error("Split(nil) should be nil")
	}
}
