package catalog

// Page is the parsed catalog tree. It mirrors the two grouping levels of the
// rendered page: outer organizational groups (one per issuing body) holding
// sub-groups, holding act lines.
//
// Hidden flags carry the current visibility state. They start false and are
// mutated only by the view synchronizer; no other component may toggle them.
type Page struct {
	Groups []*Group
	// Lines holds every act line in document order; Lines[i].StableIndex == i.
	Lines []*Line
}

// Group is an outer organizational group with its heading element text.
type Group struct {
	Heading   string
	SubGroups []*SubGroup
	Lines     []*Line
	Hidden    bool
}

// SubGroup is an inner grouping under an outer group.
type SubGroup struct {
	Heading string
	Lines   []*Line
	Hidden  bool
}

// Line is one rendered act entry. Records reference their line by
// StableIndex; the line does not own the record and vice versa.
type Line struct {
	StableIndex int
	Hidden      bool
	Group       *Group
	SubGroup    *SubGroup
}

// Total returns the number of act lines on the page.
func (p *Page) Total() int {
	return len(p.Lines)
}
