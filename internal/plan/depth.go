package plan

// Depths returns the tree depth of every step id, preferring the depth
// the catalog recorded and walking the parent chain when it did not.
// Steps with broken parent chains get depth 0; integrity is enforced by
// BuildOrder, not here.
func Depths(steps []Step) map[int]int {
	parents := make(map[int]int, len(steps))
	depths := make(map[int]int, len(steps))
	for _, s := range steps {
		parents[s.ID] = s.ParentID
		// A recorded zero carries no information beyond what the walk
		// computes, so only positive depths short-circuit it.
		if s.Depth > 0 {
			depths[s.ID] = s.Depth
		}
	}

	var walk func(id, fuel int) int
	walk = func(id, fuel int) int {
		if d, ok := depths[id]; ok {
			return d
		}
		p, ok := parents[id]
		if id == 0 || !ok || p == NoParent || fuel == 0 {
			depths[id] = 0
			return 0
		}
		d := walk(p, fuel-1) + 1
		depths[id] = d
		return d
	}
	for _, s := range steps {
		walk(s.ID, len(steps))
	}
	return depths
}
