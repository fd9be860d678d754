package interaction

// Navigator is the routing collaborator the menu hands targets to. It does
// not scroll or route anything itself from this package's point of view.
type Navigator interface {
	Navigate(target string)
}

// NavigatorFunc adapts a function to Navigator.
type NavigatorFunc func(target string)

// Navigate calls f(target).
func (f NavigatorFunc) Navigate(target string) { f(target) }

// DisclosureMenu is the open/closed state of the overlay navigation panel.
type DisclosureMenu struct {
	open      bool
	nav       Navigator
	listeners observers[bool]
}

// NewDisclosureMenu returns a closed menu. nav may be nil.
func NewDisclosureMenu(nav Navigator) *DisclosureMenu {
	return &DisclosureMenu{nav: nav}
}

// Open reports whether the panel is open.
func (m *DisclosureMenu) Open() bool { return m.open }

// Toggle flips the panel between open and closed.
func (m *DisclosureMenu) Toggle() {
	m.set(!m.open)
}

// Close forces the panel closed. Closing a closed menu does nothing. The
// responsive layout uses it as the force-closed signal on wide screens.
func (m *DisclosureMenu) Close() {
	m.set(false)
}

// SelectItem emits a navigation request for target, then closes the panel.
func (m *DisclosureMenu) SelectItem(target string) {
	if m.nav != nil {
		m.nav.Navigate(target)
	}
	m.set(false)
}

// Subscribe registers fn for open/closed changes and returns its cancel func.
func (m *DisclosureMenu) Subscribe(fn func(open bool)) func() {
	return m.listeners.subscribe(fn)
}

func (m *DisclosureMenu) set(open bool) {
	if m.open == open {
		return
	}
	m.open = open
	m.listeners.notify(open)
}
