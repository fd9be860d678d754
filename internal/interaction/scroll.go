package interaction

// DefaultScrollThreshold is the offset past which the chrome turns compact.
const DefaultScrollThreshold = 50

// ScrollChrome tracks the vertical scroll offset and exposes the compact
// flag the navigation bar uses to pick its density.
type ScrollChrome struct {
	threshold float64
	compact   bool
	listeners observers[bool]
}

// NewScrollChrome returns a ScrollChrome in non-compact mode. A threshold of
// zero or less selects DefaultScrollThreshold.
func NewScrollChrome(threshold float64) *ScrollChrome {
	if threshold <= 0 {
		threshold = DefaultScrollThreshold
	}
	return &ScrollChrome{threshold: threshold}
}

// OnScroll recomputes compact mode for offset and returns it. Listeners are
// notified only when the flag flips.
func (s *ScrollChrome) OnScroll(offset float64) bool {
	compact := offset > s.threshold
	if compact != s.compact {
		s.compact = compact
		s.listeners.notify(compact)
	}
	return s.compact
}

// Compact reports whether the chrome is in compact mode.
func (s *ScrollChrome) Compact() bool { return s.compact }

// Subscribe registers fn for compact flips and returns its cancel func.
func (s *ScrollChrome) Subscribe(fn func(compact bool)) func() {
	return s.listeners.subscribe(fn)
}
