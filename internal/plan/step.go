// Package plan models execution-plan steps and derives the physical
// execution order from their parent-pointer structure.
package plan

// NoParent marks a step without a parent (the root).
const NoParent = -1

// Step is one operation of an execution plan, as fetched from the
// plan-step catalog. Optional string columns are empty when absent and
// the numeric columns are zero when the catalog left them NULL, so a
// Step literal needs no sentinel bookkeeping. A root's depth of zero is
// recovered from the parent chain, never read from the column.
type Step struct {
	ID       int
	ParentID int // NoParent for the root

	Operation string
	Options   string
	Owner     string
	Name      string

	Depth int   // zero when the catalog did not record it
	Rows  int64 // zero when unset
	Bytes int64
	Cost  int64

	AccessPred string
	FilterPred string
}

// HasPredicate reports whether the step carries an access or filter
// predicate (rendered as a '*' marker next to the step id).
func (s Step) HasPredicate() bool {
	return s.AccessPred != "" || s.FilterPred != ""
}

// QualifiedName returns "owner.name" when an owner is present, else the
// bare object name.
func (s Step) QualifiedName() string {
	if s.Owner != "" && s.Name != "" {
		return s.Owner + "." + s.Name
	}
	return s.Name
}

// Group is one plan variant: the steps sharing a group key. The key is
// the plan_id, child number, or plan hash value depending on the report
// source.
type Group struct {
	Key   int64
	Steps []Step
}
