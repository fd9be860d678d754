// Package session keeps one set of interaction state machines per visitor.
// Sessions live in memory only and expire after a period of inactivity.
package session

import (
	"sync"
	"time"

	"github.com/levelupinstalling/levelup/internal/interaction"
)

// Options configures the state machines of newly created sessions.
type Options struct {
	ScrollThreshold float64
	Services        []string
	Composer        interaction.ComposerConfig
}

// Snapshot is the chrome state a page needs to render.
type Snapshot struct {
	Compact  bool `json:"compact"`
	MenuOpen bool `json:"menu_open"`
	// Expanded is the expanded service index, or -1.
	Expanded int `json:"expanded"`
}

// Session owns the interaction state of one visitor. All access to the
// state machines goes through Do, which runs events one at a time.
type Session struct {
	ID string

	mu       sync.Mutex
	lastSeen time.Time

	current func() *generation
	gen     uint64

	chrome   *interaction.ScrollChrome
	menu     *interaction.DisclosureMenu
	services *interaction.AccordionGroup
	contact  *interaction.ContactComposer

	navNext      int
	navListeners map[int]func(target string)
}

func newSession(id string, current func() *generation, now time.Time) *Session {
	g := current()
	opts := g.opts
	s := &Session{
		ID:           id,
		lastSeen:     now,
		current:      current,
		gen:          g.n,
		chrome:       interaction.NewScrollChrome(opts.ScrollThreshold),
		services:     interaction.NewAccordionGroup(opts.Services),
		contact:      interaction.NewContactComposer(opts.Composer),
		navListeners: make(map[int]func(string)),
	}
	s.menu = interaction.NewDisclosureMenu(interaction.NavigatorFunc(s.navigate))
	return s
}

// State is the view of a session handed to Do callbacks.
type State struct {
	Chrome   *interaction.ScrollChrome
	Menu     *interaction.DisclosureMenu
	Services *interaction.AccordionGroup
	Contact  *interaction.ContactComposer
}

// Do runs fn with exclusive access to the session state. Listeners fire
// inside fn, on the calling goroutine. A session built from older options
// is brought up to date first.
func (s *Session) Do(fn func(st State)) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if g := s.current(); g.n != s.gen {
		s.reconfigure(g)
	}
	fn(State{
		Chrome:   s.chrome,
		Menu:     s.menu,
		Services: s.services,
		Contact:  s.contact,
	})
}

// reconfigure applies g to the existing state machines so subscribers stay
// attached. It runs with s.mu held.
func (s *Session) reconfigure(g *generation) {
	s.gen = g.n
	s.services.SetItems(g.opts.Services)
	s.contact.Configure(g.opts.Composer)
}

// Snapshot returns the current chrome state.
func (s *Session) Snapshot() Snapshot {
	var snap Snapshot
	s.Do(func(st State) { snap = snapshotOf(st) })
	return snap
}

func snapshotOf(st State) Snapshot {
	idx, ok := st.Services.Expanded()
	if !ok {
		idx = -1
	}
	return Snapshot{
		Compact:  st.Chrome.Compact(),
		MenuOpen: st.Menu.Open(),
		Expanded: idx,
	}
}

// SnapshotOf builds a Snapshot from state already held inside Do.
func SnapshotOf(st State) Snapshot { return snapshotOf(st) }

// OnNavigate registers fn for navigation requests emitted by the menu.
// fn runs inside Do; it must not call back into the session.
func (s *Session) OnNavigate(fn func(target string)) func() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.navNext++
	id := s.navNext
	s.navListeners[id] = fn
	return func() {
		s.mu.Lock()
		defer s.mu.Unlock()
		delete(s.navListeners, id)
	}
}

// navigate is the menu's Navigator. It runs with s.mu held.
func (s *Session) navigate(target string) {
	for _, fn := range s.navListeners {
		fn(target)
	}
}

func (s *Session) touch(now time.Time) {
	s.mu.Lock()
	s.lastSeen = now
	s.mu.Unlock()
}

func (s *Session) idleSince() time.Time {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.lastSeen
}
