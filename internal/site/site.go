package site

import (
	"bytes"
	"fmt"
	"html/template"
	"net/http"
	"sync"
	"time"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"

	"github.com/levelupinstalling/levelup/internal/content"
	"github.com/levelupinstalling/levelup/internal/interaction"
	"github.com/levelupinstalling/levelup/internal/session"
)

// Options configures a Site.
type Options struct {
	// ScrollThreshold is the compact-mode offset for new sessions.
	ScrollThreshold float64
	// NavBreakpoint is the viewport width at which navigation is inline
	// and the overlay menu is forced closed.
	NavBreakpoint int
	// AssetsDir is served under /assets when non-empty.
	AssetsDir string
	Assets    AssetFilter
	Logger    *zap.Logger
}

// Site renders the brochure pages and drives each visitor's interaction
// state from form posts and the live channel.
type Site struct {
	mu       sync.RWMutex
	content  *content.Content
	sessions *session.Store
	tmpl     *template.Template
	opts     Options
	logger   *zap.Logger
	now      func() time.Time
}

// New creates a Site for c. The session store's options are kept in step
// with the content.
func New(c *content.Content, sessions *session.Store, opts Options) (*Site, error) {
	tmpl, err := parseTemplates()
	if err != nil {
		return nil, err
	}
	logger := opts.Logger
	if logger == nil {
		logger = zap.NewNop()
	}
	s := &Site{
		sessions: sessions,
		tmpl:     tmpl,
		opts:     opts,
		logger:   logger,
		now:      time.Now,
	}
	s.SetContent(c)
	return s, nil
}

// SessionOptions derives the per-session state machine options from c.
func SessionOptions(c *content.Content, scrollThreshold float64) session.Options {
	return session.Options{
		ScrollThreshold: scrollThreshold,
		Services:        c.ServiceIDs(),
		Composer: interaction.ComposerConfig{
			SiteName:       c.Company.Name,
			Recipient:      c.Contact.Recipient,
			DefaultSubject: c.Contact.DefaultSubject,
			Subjects:       c.Contact.Subjects,
		},
	}
}

// SetContent swaps the displayed content. Every session moves to the new
// service list and composer settings on its next event.
func (s *Site) SetContent(c *content.Content) {
	s.mu.Lock()
	s.content = c
	s.mu.Unlock()
	if s.sessions != nil {
		s.sessions.SetOptions(SessionOptions(c, s.opts.ScrollThreshold))
	}
}

// Content returns the content currently displayed.
func (s *Site) Content() *content.Content {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.content
}

// RegisterRoutes mounts the pages, interaction endpoints, live channel and
// static files onto r.
func (s *Site) RegisterRoutes(r chi.Router) {
	r.Get("/", s.handleIndex)
	r.Get("/contact", s.handleContact)
	r.Post("/contact", s.handleContactSubmit)
	r.Post("/contact/reset", s.handleContactReset)

	r.Post("/menu/toggle", s.handleMenuToggle)
	r.Post("/menu/close", s.handleMenuClose)
	r.Get("/nav/{target}", s.handleNav)
	r.Post("/services/{index}", s.handleService)

	r.Get("/ws/live", s.handleLive)

	r.Handle("/static/*", http.StripPrefix("/static/", http.FileServer(http.FS(staticFS()))))
	if s.opts.AssetsDir != "" {
		r.Handle("/assets/*", http.StripPrefix("/assets/", s.opts.Assets.Handler(s.opts.AssetsDir)))
	}
}

// render executes the named page into a buffer first so template errors
// never produce half a page.
func (s *Site) render(w http.ResponseWriter, status int, name string, data pageData) {
	var buf bytes.Buffer
	if err := s.tmpl.ExecuteTemplate(&buf, name, data); err != nil {
		s.logger.Error("rendering page", zap.String("page", name), zap.Error(err))
		http.Error(w, "internal server error", http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(status)
	w.Write(buf.Bytes())
}

// renderTo executes the named page for the static export.
func (s *Site) renderTo(name string, data pageData) ([]byte, error) {
	var buf bytes.Buffer
	if err := s.tmpl.ExecuteTemplate(&buf, name, data); err != nil {
		return nil, fmt.Errorf("rendering %s: %w", name, err)
	}
	return buf.Bytes(), nil
}
