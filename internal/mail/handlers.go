package mail

import (
	"fmt"
	"net/http"
	"os/exec"
	"runtime"
	"sync"
)

// RedirectHandler hands an intent to the visitor's browser by redirecting
// to its mailto URL. The browser's registered mail client takes over.
type RedirectHandler struct {
	W http.ResponseWriter
	R *http.Request
}

// Handle writes a 303 redirect to the mailto URL.
func (h RedirectHandler) Handle(in Intent) error {
	if h.W == nil || h.R == nil {
		return fmt.Errorf("redirect handler: missing response or request")
	}
	http.Redirect(h.W, h.R, URL(in), http.StatusSeeOther)
	return nil
}

// Launcher opens the mailto URL with the operating system's default handler.
type Launcher struct {
	// command overrides the OS lookup; used by tests.
	command func(target string) *exec.Cmd
}

// NewLauncher returns a Launcher for the current platform.
func NewLauncher() *Launcher {
	return &Launcher{command: openCommand}
}

// Handle starts the platform opener. It does not wait for the mail client.
func (l *Launcher) Handle(in Intent) error {
	cmd := l.command(URL(in))
	if err := cmd.Start(); err != nil {
		return fmt.Errorf("opening mail client: %w", err)
	}
	go cmd.Wait()
	return nil
}

func openCommand(target string) *exec.Cmd {
	switch runtime.GOOS {
	case "windows":
		return exec.Command("cmd", "/c", "start", "", target)
	case "darwin":
		return exec.Command("open", target)
	default:
		return exec.Command("xdg-open", target)
	}
}

// Recorder keeps every intent it is handed. Safe for concurrent use.
type Recorder struct {
	mu      sync.Mutex
	intents []Intent
}

// Handle records the intent.
func (r *Recorder) Handle(in Intent) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.intents = append(r.intents, in)
	return nil
}

// Intents returns a copy of the recorded intents in hand-off order.
func (r *Recorder) Intents() []Intent {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]Intent, len(r.intents))
	copy(out, r.intents)
	return out
}

// Last returns the most recent intent, if any.
func (r *Recorder) Last() (Intent, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if len(r.intents) == 0 {
		return Intent{}, false
	}
	return r.intents[len(r.intents)-1], true
}
