package site

import (
	"io"
	"net/http"
	"net/http/httptest"
	"net/url"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/PuerkitoBio/goquery"
	"github.com/go-chi/chi/v5"
	"go.uber.org/goleak"
	"go.uber.org/zap"

	"github.com/levelupinstalling/levelup/internal/content"
	"github.com/levelupinstalling/levelup/internal/session"
)

func TestMain(m *testing.M) {
	goleak.VerifyTestMain(m)
}

func newTestSite(t *testing.T, opts Options) (*Site, chi.Router) {
	t.Helper()
	if opts.NavBreakpoint == 0 {
		opts.NavBreakpoint = 768
	}
	opts.Logger = zap.NewNop()
	c := content.Default()
	store := session.NewStore(SessionOptions(c, opts.ScrollThreshold), 30*time.Minute, zap.NewNop())
	s, err := New(c, store, opts)
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	s.now = func() time.Time { return time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC) }
	r := chi.NewRouter()
	s.RegisterRoutes(r)
	return s, r
}

// client keeps the session cookie between requests.
type client struct {
	t      *testing.T
	h      http.Handler
	cookie *http.Cookie
}

func (c *client) do(method, target string, form url.Values) *httptest.ResponseRecorder {
	c.t.Helper()
	var body io.Reader
	if form != nil {
		body = strings.NewReader(form.Encode())
	}
	req := httptest.NewRequest(method, target, body)
	if form != nil {
		req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	}
	if c.cookie != nil {
		req.AddCookie(c.cookie)
	}
	rec := httptest.NewRecorder()
	c.h.ServeHTTP(rec, req)
	for _, ck := range rec.Result().Cookies() {
		if ck.Name == session.CookieName {
			c.cookie = ck
		}
	}
	return rec
}

func (c *client) doc(target string) *goquery.Document {
	c.t.Helper()
	rec := c.do(http.MethodGet, target, nil)
	if rec.Code != http.StatusOK {
		c.t.Fatalf("GET %s: status %d", target, rec.Code)
	}
	return parseDoc(c.t, rec.Body)
}

func parseDoc(t *testing.T, r io.Reader) *goquery.Document {
	t.Helper()
	doc, err := goquery.NewDocumentFromReader(r)
	if err != nil {
		t.Fatalf("parsing html: %v", err)
	}
	return doc
}

func TestIndexRendersInitialState(t *testing.T) {
	_, r := newTestSite(t, Options{})
	c := &client{t: t, h: r}

	rec := c.do(http.MethodGet, "/", nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d", rec.Code)
	}
	if c.cookie == nil {
		t.Fatal("expected session cookie")
	}
	if !c.cookie.HttpOnly {
		t.Error("session cookie should be HttpOnly")
	}
	doc := parseDoc(t, rec.Body)

	if got := doc.Find("title").Text(); got != "Level Up Installation Corp | Data Center Infrastructure" {
		t.Errorf("title = %q", got)
	}
	if doc.Find("nav#chrome").HasClass("compact") {
		t.Error("chrome should not start compact")
	}
	if _, hidden := doc.Find("#menu-panel").Attr("hidden"); !hidden {
		t.Error("menu panel should start hidden")
	}
	if n := doc.Find("article.service").Length(); n != 4 {
		t.Errorf("services = %d, want 4", n)
	}
	if n := doc.Find("article.service.expanded").Length(); n != 0 {
		t.Errorf("expanded services = %d, want 0", n)
	}
	if n := doc.Find(".marquee-item").Length(); n != 4*8 {
		t.Errorf("marquee items = %d, want 32", n)
	}
	if got := doc.Find(".statement-body strong").Text(); got != "hard stuff" {
		t.Errorf("statement emphasis = %q", got)
	}
	if got, _ := doc.Find("body").Attr("data-live"); got != "/ws/live" {
		t.Errorf("data-live = %q", got)
	}
	if got, _ := doc.Find("body").Attr("data-breakpoint"); got != "768" {
		t.Errorf("data-breakpoint = %q", got)
	}
	if !strings.Contains(doc.Find(".copyright").Text(), "2026") {
		t.Errorf("copyright = %q", doc.Find(".copyright").Text())
	}
}

func TestIndexReusesSession(t *testing.T) {
	s, r := newTestSite(t, Options{})
	c := &client{t: t, h: r}
	c.do(http.MethodGet, "/", nil)
	first := c.cookie.Value

	rec := c.do(http.MethodGet, "/", nil)
	if len(rec.Result().Cookies()) != 0 {
		t.Error("known session should not set a new cookie")
	}
	if c.cookie.Value != first {
		t.Error("session id changed")
	}
	if n := s.sessions.Len(); n != 1 {
		t.Errorf("sessions = %d, want 1", n)
	}
}

func TestServiceAccordion(t *testing.T) {
	_, r := newTestSite(t, Options{})
	c := &client{t: t, h: r}
	c.do(http.MethodGet, "/", nil)

	rec := c.do(http.MethodPost, "/services/1", nil)
	if rec.Code != http.StatusSeeOther {
		t.Fatalf("status = %d, want 303", rec.Code)
	}
	if loc := rec.Header().Get("Location"); loc != "/#expertise" {
		t.Errorf("Location = %q", loc)
	}

	doc := c.doc("/")
	expanded := doc.Find("article.service.expanded")
	if expanded.Length() != 1 {
		t.Fatalf("expanded = %d, want 1", expanded.Length())
	}
	if id, _ := expanded.Attr("id"); id != "service-02" {
		t.Errorf("expanded id = %q, want service-02", id)
	}
	if v, _ := expanded.Find("button").Attr("aria-expanded"); v != "true" {
		t.Errorf("aria-expanded = %q", v)
	}

	c.do(http.MethodPost, "/services/3", nil)
	doc = c.doc("/")
	if id, _ := doc.Find("article.service.expanded").Attr("id"); id != "service-04" {
		t.Errorf("after switching, expanded id = %q", id)
	}

	c.do(http.MethodPost, "/services/3", nil)
	doc = c.doc("/")
	if n := doc.Find("article.service.expanded").Length(); n != 0 {
		t.Errorf("after second select, expanded = %d, want 0", n)
	}
}

func TestServiceBadIndex(t *testing.T) {
	_, r := newTestSite(t, Options{})
	c := &client{t: t, h: r}

	for _, target := range []string{"/services/9", "/services/-1", "/services/abc"} {
		rec := c.do(http.MethodPost, target, nil)
		if rec.Code != http.StatusBadRequest {
			t.Errorf("POST %s: status = %d, want 400", target, rec.Code)
		}
	}
	rec := c.do(http.MethodPost, "/services/9", nil)
	if !strings.Contains(rec.Body.String(), "out of range") {
		t.Errorf("body = %q", rec.Body.String())
	}
}

func TestMenuToggleAndClose(t *testing.T) {
	_, r := newTestSite(t, Options{})
	c := &client{t: t, h: r}
	c.do(http.MethodGet, "/", nil)

	rec := c.do(http.MethodPost, "/menu/toggle", nil)
	if rec.Code != http.StatusSeeOther || rec.Header().Get("Location") != "/" {
		t.Fatalf("toggle: %d %q", rec.Code, rec.Header().Get("Location"))
	}
	doc := c.doc("/")
	if _, hidden := doc.Find("#menu-panel").Attr("hidden"); hidden {
		t.Error("menu panel should be visible after toggle")
	}
	if v, _ := doc.Find(`[data-action="menu_toggle"]`).Attr("aria-expanded"); v != "true" {
		t.Errorf("aria-expanded = %q", v)
	}

	c.do(http.MethodPost, "/menu/close", nil)
	doc = c.doc("/")
	if _, hidden := doc.Find("#menu-panel").Attr("hidden"); !hidden {
		t.Error("menu panel should be hidden after close")
	}
}

func TestNavSelectNavigatesAndCloses(t *testing.T) {
	_, r := newTestSite(t, Options{})
	c := &client{t: t, h: r}
	c.do(http.MethodGet, "/", nil)
	c.do(http.MethodPost, "/menu/toggle", nil)

	rec := c.do(http.MethodGet, "/nav/projects", nil)
	if rec.Code != http.StatusSeeOther {
		t.Fatalf("status = %d", rec.Code)
	}
	if loc := rec.Header().Get("Location"); loc != "/#projects" {
		t.Errorf("Location = %q, want /#projects", loc)
	}
	doc := c.doc("/")
	if _, hidden := doc.Find("#menu-panel").Attr("hidden"); !hidden {
		t.Error("menu should close after selecting an item")
	}

	rec = c.do(http.MethodGet, "/nav/nowhere", nil)
	if loc := rec.Header().Get("Location"); loc != "/" {
		t.Errorf("unknown target Location = %q, want /", loc)
	}
}

func TestMenuLinksUseNavRoutes(t *testing.T) {
	_, r := newTestSite(t, Options{})
	c := &client{t: t, h: r}
	doc := c.doc("/")

	var hrefs []string
	doc.Find("#menu-panel a").Each(func(_ int, a *goquery.Selection) {
		href, _ := a.Attr("href")
		hrefs = append(hrefs, href)
	})
	want := []string{"/nav/expertise", "/nav/projects", "/nav/safety", "/nav/contact"}
	if strings.Join(hrefs, ",") != strings.Join(want, ",") {
		t.Errorf("menu hrefs = %v, want %v", hrefs, want)
	}
}

func TestContactPage(t *testing.T) {
	_, r := newTestSite(t, Options{})
	c := &client{t: t, h: r}
	doc := c.doc("/contact")

	if n := doc.Find(".member").Length(); n != 4 {
		t.Errorf("team members = %d, want 4", n)
	}
	if got, _ := doc.Find("form.contact-form").Attr("action"); got != "/contact" {
		t.Errorf("form action = %q", got)
	}
	if n := doc.Find(`select[name="subject"] option`).Length(); n != 4 {
		t.Errorf("subject options = %d, want 4", n)
	}
	if got := doc.Find(`select[name="subject"] option[selected]`).Text(); got != "New Installation Project" {
		t.Errorf("selected subject = %q", got)
	}
	if doc.Find(".form-errors").Length() != 0 {
		t.Error("fresh form should not show errors")
	}
}

func TestContactSubmitInvalid(t *testing.T) {
	_, r := newTestSite(t, Options{})
	c := &client{t: t, h: r}

	rec := c.do(http.MethodPost, "/contact", url.Values{
		"name":    {"  "},
		"email":   {"not-an-email"},
		"subject": {"Retrofit / Upgrade"},
		"message": {"Two halls, 40 racks."},
	})
	if rec.Code != http.StatusUnprocessableEntity {
		t.Fatalf("status = %d, want 422", rec.Code)
	}
	doc := parseDoc(t, rec.Body)

	if doc.Find(".form-errors").Length() != 1 {
		t.Error("expected the form error banner")
	}
	var invalid []string
	doc.Find(".field.invalid [data-field]").Each(func(_ int, s *goquery.Selection) {
		name, _ := s.Attr("name")
		invalid = append(invalid, name)
	})
	if strings.Join(invalid, ",") != "name,email" {
		t.Errorf("invalid fields = %v, want [name email]", invalid)
	}
	if v, _ := doc.Find(`input[name="email"]`).Attr("value"); v != "not-an-email" {
		t.Errorf("email value = %q, draft should be kept", v)
	}
	if got := doc.Find(`textarea[name="message"]`).Text(); got != "Two halls, 40 racks." {
		t.Errorf("message = %q", got)
	}
	if got := doc.Find(`select[name="subject"] option[selected]`).Text(); got != "Retrofit / Upgrade" {
		t.Errorf("selected subject = %q", got)
	}
}

func TestContactSubmitRedirectsToMailto(t *testing.T) {
	_, r := newTestSite(t, Options{})
	c := &client{t: t, h: r}

	rec := c.do(http.MethodPost, "/contact", url.Values{
		"name":    {"Dana Reyes"},
		"email":   {"dana@example.com"},
		"subject": {"Partnership Inquiry"},
		"message": {"Let's talk & plan."},
	})
	if rec.Code != http.StatusSeeOther {
		t.Fatalf("status = %d, want 303: %s", rec.Code, rec.Body.String())
	}
	u, err := url.Parse(rec.Header().Get("Location"))
	if err != nil {
		t.Fatalf("parsing Location: %v", err)
	}
	if u.Scheme != "mailto" || u.Opaque != "johncook@levelupinstalling.com" {
		t.Errorf("Location = %q", u.String())
	}
	q := u.Query()
	if got := q.Get("subject"); got != "Level Up Inquiry: Partnership Inquiry" {
		t.Errorf("subject = %q", got)
	}
	if !strings.HasSuffix(q.Get("body"), "BRIEFING:\nLet's talk & plan.") {
		t.Errorf("body = %q", q.Get("body"))
	}

	// The draft survives the hand-off.
	doc := c.doc("/contact")
	if v, _ := doc.Find(`input[name="name"]`).Attr("value"); v != "Dana Reyes" {
		t.Errorf("name after submit = %q", v)
	}
}

func TestContactPartialPostKeepsOtherFields(t *testing.T) {
	_, r := newTestSite(t, Options{})
	c := &client{t: t, h: r}

	c.do(http.MethodPost, "/contact", url.Values{"name": {"Dana"}})
	rec := c.do(http.MethodPost, "/contact", url.Values{"email": {"dana@example.com"}})
	if rec.Code != http.StatusUnprocessableEntity {
		t.Fatalf("status = %d, want 422", rec.Code)
	}
	doc := parseDoc(t, rec.Body)
	if v, _ := doc.Find(`input[name="name"]`).Attr("value"); v != "Dana" {
		t.Errorf("name = %q, earlier field should be kept", v)
	}
	if doc.Find(`.field.invalid [name="message"]`).Length() != 1 {
		t.Error("message should be the remaining invalid field")
	}
	if doc.Find(`.field.invalid [name="name"]`).Length() != 0 {
		t.Error("name should no longer be invalid")
	}
}

func TestContactReset(t *testing.T) {
	_, r := newTestSite(t, Options{})
	c := &client{t: t, h: r}
	c.do(http.MethodPost, "/contact", url.Values{"name": {"Dana"}, "subject": {"Retrofit / Upgrade"}})

	rec := c.do(http.MethodPost, "/contact/reset", nil)
	if rec.Code != http.StatusSeeOther || rec.Header().Get("Location") != "/contact" {
		t.Fatalf("reset: %d %q", rec.Code, rec.Header().Get("Location"))
	}
	doc := c.doc("/contact")
	if v, _ := doc.Find(`input[name="name"]`).Attr("value"); v != "" {
		t.Errorf("name after reset = %q", v)
	}
	if got := doc.Find(`select[name="subject"] option[selected]`).Text(); got != "New Installation Project" {
		t.Errorf("subject after reset = %q, want the default", got)
	}
}

func TestStaticFiles(t *testing.T) {
	_, r := newTestSite(t, Options{})
	c := &client{t: t, h: r}

	for _, p := range []string{"/static/site.css", "/static/live.js"} {
		if rec := c.do(http.MethodGet, p, nil); rec.Code != http.StatusOK {
			t.Errorf("GET %s: status %d", p, rec.Code)
		}
	}
}

func TestAssetsFiltered(t *testing.T) {
	dir := t.TempDir()
	for name, body := range map[string]string{
		"datacenter.png": "png",
		"img/crew.jpg":   "jpg",
		"design.psd":     "psd",
		".env":           "SECRET=1",
		"img/.DS_Store":  "x",
	} {
		p := filepath.Join(dir, filepath.FromSlash(name))
		if err := os.MkdirAll(filepath.Dir(p), 0o755); err != nil {
			t.Fatal(err)
		}
		if err := os.WriteFile(p, []byte(body), 0o644); err != nil {
			t.Fatal(err)
		}
	}
	_, r := newTestSite(t, Options{
		AssetsDir: dir,
		Assets:    AssetFilter{Include: []string{"**/*"}, Exclude: []string{"**/.*", "**/*.psd"}},
	})
	c := &client{t: t, h: r}

	tests := []struct {
		path string
		want int
	}{
		{"/assets/datacenter.png", http.StatusOK},
		{"/assets/img/crew.jpg", http.StatusOK},
		{"/assets/design.psd", http.StatusNotFound},
		{"/assets/.env", http.StatusNotFound},
		{"/assets/img/.DS_Store", http.StatusNotFound},
		{"/assets/img/", http.StatusNotFound},
		{"/assets/missing.png", http.StatusNotFound},
	}
	for _, tt := range tests {
		if rec := c.do(http.MethodGet, tt.path, nil); rec.Code != tt.want {
			t.Errorf("GET %s: status %d, want %d", tt.path, rec.Code, tt.want)
		}
	}
}

func TestAssetFilterMatch(t *testing.T) {
	f := AssetFilter{Include: []string{"**/*.png", "**/*.jpg"}, Exclude: []string{"drafts/**"}}
	tests := []struct {
		rel  string
		want bool
	}{
		{"logo.png", true},
		{"img/crew.jpg", true},
		{"notes.txt", false},
		{"drafts/logo.png", false},
	}
	for _, tt := range tests {
		if got := f.Match(tt.rel); got != tt.want {
			t.Errorf("Match(%q) = %v, want %v", tt.rel, got, tt.want)
		}
	}
	if !(AssetFilter{}).Match("anything.bin") {
		t.Error("empty filter should match everything")
	}
}

func TestSetContentReachesExistingSessions(t *testing.T) {
	s, r := newTestSite(t, Options{})
	c := &client{t: t, h: r}
	c.doc("/")
	c.do(http.MethodPost, "/contact", url.Values{"name": {"Dana Reyes"}})

	updated := content.Default()
	updated.Services = append(updated.Services, content.Service{ID: "05", Title: "Emergency Response"})
	updated.Contact.Subjects = append(updated.Contact.Subjects, "Emergency Repair")
	s.SetContent(updated)

	doc := c.doc("/")
	if n := doc.Find("article.service").Length(); n != 5 {
		t.Errorf("services after reload = %d, want 5", n)
	}
	rec := c.do(http.MethodPost, "/services/4", nil)
	if rec.Code != http.StatusSeeOther {
		t.Fatalf("POST /services/4: status %d: %s", rec.Code, rec.Body.String())
	}
	doc = c.doc("/")
	if id, _ := doc.Find("article.service.expanded").Attr("id"); id != "service-05" {
		t.Errorf("expanded service id = %q, want service-05", id)
	}

	rec = c.do(http.MethodPost, "/contact", url.Values{
		"email":   {"dana@example.com"},
		"subject": {"Emergency Repair"},
		"message": {"Hall B is down."},
	})
	if rec.Code != http.StatusSeeOther {
		t.Fatalf("POST /contact: status %d, want 303", rec.Code)
	}
	u, err := url.Parse(rec.Header().Get("Location"))
	if err != nil {
		t.Fatalf("parsing Location: %v", err)
	}
	if got := u.Query().Get("subject"); got != "Level Up Inquiry: Emergency Repair" {
		t.Errorf("subject = %q", got)
	}
	if !strings.Contains(u.Query().Get("body"), "Dana Reyes") {
		t.Errorf("body = %q, want the name posted before the reload", u.Query().Get("body"))
	}
}

func TestReturnPath(t *testing.T) {
	tests := []struct {
		value string
		want  string
	}{
		{"", "/"},
		{"/contact", "/contact"},
		{"//evil.example", "/"},
		{"https://evil.example", "/"},
		{`/\evil.example`, "/"},
		{`/\/evil.example`, "/"},
	}
	for _, tt := range tests {
		req := httptest.NewRequest(http.MethodPost, "/menu/toggle", strings.NewReader(url.Values{"return": {tt.value}}.Encode()))
		req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
		if got := returnPath(req); got != tt.want {
			t.Errorf("returnPath(%q) = %q, want %q", tt.value, got, tt.want)
		}
	}
}

func TestMenuToggleStaysOnSite(t *testing.T) {
	_, r := newTestSite(t, Options{})
	c := &client{t: t, h: r}

	rec := c.do(http.MethodPost, "/menu/toggle", url.Values{"return": {`/\evil.example`}})
	if rec.Code != http.StatusSeeOther {
		t.Fatalf("status = %d, want 303", rec.Code)
	}
	if loc := rec.Header().Get("Location"); loc != "/" {
		t.Errorf("Location = %q, want /", loc)
	}
}
