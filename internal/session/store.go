package session

import (
	"context"
	"net/http"
	"sync"
	"sync/atomic"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// CookieName carries the session id.
const CookieName = "levelup_session"

// Store holds the live sessions.
type Store struct {
	mu       sync.Mutex
	sessions map[string]*Session
	current  atomic.Pointer[generation]
	ttl      time.Duration
	logger   *zap.Logger
	now      func() time.Time
}

// generation is one version of the session options. Sessions built from an
// older generation are reconfigured on their next event.
type generation struct {
	n    uint64
	opts Options
}

// NewStore creates an empty store. Sessions idle for longer than ttl are
// dropped by Sweep.
func NewStore(opts Options, ttl time.Duration, logger *zap.Logger) *Store {
	if logger == nil {
		logger = zap.NewNop()
	}
	st := &Store{
		sessions: make(map[string]*Session),
		ttl:      ttl,
		logger:   logger,
		now:      time.Now,
	}
	st.current.Store(&generation{opts: opts})
	return st
}

// SetOptions starts a new options generation. New sessions use it at once;
// existing sessions pick it up on their next event, keeping their draft.
func (st *Store) SetOptions(opts Options) {
	st.mu.Lock()
	n := st.current.Load().n + 1
	st.current.Store(&generation{n: n, opts: opts})
	st.mu.Unlock()
	st.logger.Debug("session options updated", zap.Uint64("generation", n))
}

// Generation returns the current options generation.
func (st *Store) Generation() uint64 {
	return st.current.Load().n
}

// Get returns the session with id, if it is live.
func (st *Store) Get(id string) (*Session, bool) {
	st.mu.Lock()
	s, ok := st.sessions[id]
	st.mu.Unlock()
	if ok {
		s.touch(st.now())
	}
	return s, ok
}

// Create starts a new session.
func (st *Store) Create() *Session {
	st.mu.Lock()
	defer st.mu.Unlock()
	s := newSession(uuid.NewString(), st.current.Load, st.now())
	st.sessions[s.ID] = s
	st.logger.Debug("session created", zap.String("session", s.ID))
	return s
}

// Ensure returns the request's session, creating it and setting the
// cookie when the request has none or it has expired.
func (st *Store) Ensure(w http.ResponseWriter, r *http.Request) *Session {
	if c, err := r.Cookie(CookieName); err == nil {
		if s, ok := st.Get(c.Value); ok {
			return s
		}
	}
	s := st.Create()
	http.SetCookie(w, &http.Cookie{
		Name:     CookieName,
		Value:    s.ID,
		Path:     "/",
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})
	return s
}

// Lookup returns the request's session without creating one.
func (st *Store) Lookup(r *http.Request) (*Session, bool) {
	c, err := r.Cookie(CookieName)
	if err != nil {
		return nil, false
	}
	return st.Get(c.Value)
}

// Touch marks s as active now.
func (st *Store) Touch(s *Session) {
	s.touch(st.now())
}

// Len returns the number of live sessions.
func (st *Store) Len() int {
	st.mu.Lock()
	defer st.mu.Unlock()
	return len(st.sessions)
}

// Sweep drops sessions idle since before now-ttl and returns how many.
func (st *Store) Sweep(now time.Time) int {
	cutoff := now.Add(-st.ttl)
	st.mu.Lock()
	defer st.mu.Unlock()
	removed := 0
	for id, s := range st.sessions {
		if s.idleSince().Before(cutoff) {
			delete(st.sessions, id)
			removed++
		}
	}
	if removed > 0 {
		st.logger.Debug("sessions expired", zap.Int("removed", removed), zap.Int("live", len(st.sessions)))
	}
	return removed
}

// Run sweeps every interval until ctx is done.
func (st *Store) Run(ctx context.Context, interval time.Duration) error {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return nil
		case t := <-ticker.C:
			st.Sweep(t)
		}
	}
}
