package interaction

// none marks an accordion with no expanded item.
const none = -1

// AccordionGroup tracks which single item of a fixed list is expanded.
// The state is one optional index, so at most one item is ever expanded.
type AccordionGroup struct {
	ids       []string
	expanded  int
	listeners observers[int]
}

// NewAccordionGroup returns a collapsed group over ids. The item count is
// fixed for the lifetime of the group.
func NewAccordionGroup(ids []string) *AccordionGroup {
	return &AccordionGroup{
		ids:      append([]string(nil), ids...),
		expanded: none,
	}
}

// Len returns the number of items.
func (a *AccordionGroup) Len() int { return len(a.ids) }

// ID returns the identifier of the item at index, or "" when out of range.
func (a *AccordionGroup) ID(index int) string {
	if index < 0 || index >= len(a.ids) {
		return ""
	}
	return a.ids[index]
}

// Select expands the item at index, or collapses it if it is already the
// expanded one.
func (a *AccordionGroup) Select(index int) error {
	if index < 0 || index >= len(a.ids) {
		return &OutOfRangeError{Index: index, Len: len(a.ids)}
	}
	if a.expanded == index {
		a.expanded = none
	} else {
		a.expanded = index
	}
	a.listeners.notify(a.expanded)
	return nil
}

// IsExpanded reports whether index is the expanded item.
func (a *AccordionGroup) IsExpanded(index int) bool {
	return a.expanded != none && a.expanded == index
}

// Expanded returns the expanded index and true, or -1 and false.
func (a *AccordionGroup) Expanded() (int, bool) {
	return a.expanded, a.expanded != none
}

// SetItems replaces the item list. The expanded item stays expanded when
// its id is still present, at its new index; otherwise the group collapses.
func (a *AccordionGroup) SetItems(ids []string) {
	prev := a.ID(a.expanded)
	a.ids = append([]string(nil), ids...)
	if a.expanded == none {
		return
	}
	for i, id := range a.ids {
		if id == prev {
			if i != a.expanded {
				a.expanded = i
				a.listeners.notify(i)
			}
			return
		}
	}
	a.Collapse()
}

// Collapse closes whichever item is expanded.
func (a *AccordionGroup) Collapse() {
	if a.expanded == none {
		return
	}
	a.expanded = none
	a.listeners.notify(none)
}

// Subscribe registers fn for expansion changes. fn receives the expanded
// index, or -1 when everything is collapsed.
func (a *AccordionGroup) Subscribe(fn func(expanded int)) func() {
	return a.listeners.subscribe(fn)
}
