package session

import (
	"context"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"
	"time"

	"go.uber.org/zap/zaptest"

	"github.com/levelupinstalling/levelup/internal/interaction"
)

func testOptions() Options {
	return Options{
		ScrollThreshold: 50,
		Services:        []string{"01", "02", "03", "04"},
		Composer: interaction.ComposerConfig{
			SiteName:       "Level Up",
			Recipient:      "ops@example.com",
			DefaultSubject: "Other",
		},
	}
}

func TestEnsureCreatesAndReuses(t *testing.T) {
	st := NewStore(testOptions(), time.Minute, zaptest.NewLogger(t))

	w := httptest.NewRecorder()
	s1 := st.Ensure(w, httptest.NewRequest(http.MethodGet, "/", nil))
	cookies := w.Result().Cookies()
	if len(cookies) != 1 || cookies[0].Name != CookieName || cookies[0].Value != s1.ID {
		t.Fatalf("cookies = %+v", cookies)
	}
	if !cookies[0].HttpOnly {
		t.Error("session cookie should be HttpOnly")
	}

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.AddCookie(cookies[0])
	w2 := httptest.NewRecorder()
	s2 := st.Ensure(w2, req)
	if s2 != s1 {
		t.Error("Ensure should reuse the cookie's session")
	}
	if len(w2.Result().Cookies()) != 0 {
		t.Error("no new cookie expected for a live session")
	}
	if st.Len() != 1 {
		t.Errorf("Len = %d, want 1", st.Len())
	}
}

func TestEnsureUnknownCookie(t *testing.T) {
	st := NewStore(testOptions(), time.Minute, nil)
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.AddCookie(&http.Cookie{Name: CookieName, Value: "stale"})
	w := httptest.NewRecorder()

	s := st.Ensure(w, req)
	if s.ID == "stale" {
		t.Error("a stale id must not be adopted")
	}
	if len(w.Result().Cookies()) != 1 {
		t.Error("expected a fresh cookie")
	}
}

func TestLookup(t *testing.T) {
	st := NewStore(testOptions(), time.Minute, nil)
	if _, ok := st.Lookup(httptest.NewRequest(http.MethodGet, "/", nil)); ok {
		t.Error("Lookup without cookie should fail")
	}
	s := st.Create()
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.AddCookie(&http.Cookie{Name: CookieName, Value: s.ID})
	got, ok := st.Lookup(req)
	if !ok || got != s {
		t.Error("Lookup should find the session")
	}
}

func TestSweep(t *testing.T) {
	st := NewStore(testOptions(), time.Minute, nil)
	base := time.Date(2026, 10, 1, 12, 0, 0, 0, time.UTC)
	st.now = func() time.Time { return base }

	old := st.Create()
	st.now = func() time.Time { return base.Add(50 * time.Second) }
	fresh := st.Create()

	removed := st.Sweep(base.Add(90 * time.Second))
	if removed != 1 {
		t.Fatalf("removed = %d, want 1", removed)
	}
	if _, ok := st.Get(old.ID); ok {
		t.Error("old session should be gone")
	}
	if _, ok := st.Get(fresh.ID); !ok {
		t.Error("fresh session should survive")
	}
}

func TestGetTouches(t *testing.T) {
	st := NewStore(testOptions(), time.Minute, nil)
	base := time.Date(2026, 10, 1, 12, 0, 0, 0, time.UTC)
	st.now = func() time.Time { return base }
	s := st.Create()

	st.now = func() time.Time { return base.Add(55 * time.Second) }
	st.Get(s.ID)

	if st.Sweep(base.Add(90*time.Second)) != 0 {
		t.Error("a recently used session must not expire")
	}
}

func TestSessionStateIsPerSession(t *testing.T) {
	st := NewStore(testOptions(), time.Minute, nil)
	a, b := st.Create(), st.Create()

	a.Do(func(s State) {
		s.Menu.Toggle()
		s.Services.Select(2)
		s.Chrome.OnScroll(100)
	})

	if snap := a.Snapshot(); !snap.MenuOpen || !snap.Compact || snap.Expanded != 2 {
		t.Errorf("a snapshot = %+v", snap)
	}
	if snap := b.Snapshot(); snap.MenuOpen || snap.Compact || snap.Expanded != -1 {
		t.Errorf("b snapshot = %+v", snap)
	}
}

func TestSetOptionsReconfiguresExistingSessions(t *testing.T) {
	st := NewStore(testOptions(), time.Minute, nil)
	before := st.Create()
	var expanded []int
	before.Do(func(s State) {
		s.Services.Subscribe(func(i int) { expanded = append(expanded, i) })
		s.Services.Select(1)
		s.Contact.SetField(interaction.FieldName, "Jane")
	})

	opts := testOptions()
	opts.Services = []string{"00", "01", "02", "03", "04"}
	opts.Composer.Subjects = []string{"Other", "Emergency Repair"}
	st.SetOptions(opts)
	if st.Generation() != 1 {
		t.Errorf("Generation() = %d, want 1", st.Generation())
	}
	after := st.Create()

	before.Do(func(s State) {
		if s.Services.Len() != 5 {
			t.Errorf("existing session has %d services, want 5", s.Services.Len())
		}
		if idx, _ := s.Services.Expanded(); idx != 2 {
			t.Errorf("expanded = %d, want 2 following id 02", idx)
		}
		if err := s.Services.Select(4); err != nil {
			t.Errorf("Select(4): %v", err)
		}
		if got := s.Contact.Draft().Name; got != "Jane" {
			t.Errorf("draft name = %q, want it kept", got)
		}
		if got := s.Contact.Config().Subjects; len(got) != 2 {
			t.Errorf("subjects = %v", got)
		}
	})
	if want := []int{1, 2, 4}; len(expanded) != len(want) || expanded[1] != 2 || expanded[2] != 4 {
		t.Errorf("listener saw %v, want %v", expanded, want)
	}
	after.Do(func(s State) {
		if s.Services.Len() != 5 {
			t.Errorf("new session has %d services, want 5", s.Services.Len())
		}
	})
}

func TestOnNavigate(t *testing.T) {
	st := NewStore(testOptions(), time.Minute, nil)
	s := st.Create()

	var got []string
	cancel := s.OnNavigate(func(target string) { got = append(got, target) })

	s.Do(func(st State) {
		st.Menu.Toggle()
		st.Menu.SelectItem("projects")
	})
	cancel()
	s.Do(func(st State) { st.Menu.SelectItem("safety") })

	if len(got) != 1 || got[0] != "projects" {
		t.Errorf("navigations = %v, want [projects]", got)
	}
	if s.Snapshot().MenuOpen {
		t.Error("menu should be closed after SelectItem")
	}
}

func TestDoSerializesEvents(t *testing.T) {
	st := NewStore(testOptions(), time.Minute, nil)
	s := st.Create()

	var wg sync.WaitGroup
	for i := 0; i < 50; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			s.Do(func(st State) { st.Menu.Toggle() })
		}()
	}
	wg.Wait()

	if s.Snapshot().MenuOpen {
		t.Error("an even number of toggles should leave the menu closed")
	}
}

func TestRunStopsOnCancel(t *testing.T) {
	st := NewStore(testOptions(), time.Millisecond, nil)
	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- st.Run(ctx, time.Millisecond) }()

	st.Create()
	deadline := time.After(2 * time.Second)
	for st.Len() != 0 {
		select {
		case <-deadline:
			t.Fatal("session was never swept")
		case <-time.After(5 * time.Millisecond):
		}
	}

	cancel()
	if err := <-done; err != nil {
		t.Errorf("Run returned %v", err)
	}
}
