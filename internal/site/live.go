package site

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"sync"
	"time"

	"github.com/gorilla/websocket"
	"go.uber.org/zap"

	"github.com/levelupinstalling/levelup/internal/interaction"
	"github.com/levelupinstalling/levelup/internal/session"
)

const (
	liveWriteWait  = 10 * time.Second
	liveSendBuffer = 16
)

// outbox queues outgoing messages without ever blocking the sender. A state
// message replaces a state message still waiting at the tail, since only
// the newest snapshot matters. Other messages are dropped when the queue
// is full.
type outbox struct {
	mu     sync.Mutex
	queue  []liveResponse
	closed bool
	wake   chan struct{}
}

func newOutbox() *outbox {
	return &outbox{wake: make(chan struct{}, 1)}
}

// push enqueues msg and reports whether it was kept.
func (o *outbox) push(msg liveResponse) bool {
	o.mu.Lock()
	n := len(o.queue)
	switch {
	case o.closed:
		o.mu.Unlock()
		return false
	case n > 0 && msg.Type == "state" && o.queue[n-1].Type == "state":
		o.queue[n-1] = msg
	case n >= liveSendBuffer:
		o.mu.Unlock()
		return false
	default:
		o.queue = append(o.queue, msg)
	}
	o.mu.Unlock()
	o.signal()
	return true
}

func (o *outbox) signal() {
	select {
	case o.wake <- struct{}{}:
	default:
	}
}

func (o *outbox) close() {
	o.mu.Lock()
	o.closed = true
	o.mu.Unlock()
	o.signal()
}

// take blocks until messages are queued and returns them in order. It
// returns false once the outbox is closed and empty.
func (o *outbox) take() ([]liveResponse, bool) {
	for {
		o.mu.Lock()
		if len(o.queue) > 0 {
			batch := o.queue
			o.queue = nil
			o.mu.Unlock()
			return batch, true
		}
		closed := o.closed
		o.mu.Unlock()
		if closed {
			return nil, false
		}
		<-o.wake
	}
}

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
}

// liveRequest is the incoming live channel message format.
type liveRequest struct {
	Type   string  `json:"type"` // scroll, viewport, menu_toggle, menu_close, menu_select, accordion, field
	Offset float64 `json:"offset,omitempty"`
	Width  int     `json:"width,omitempty"`
	Target string  `json:"target,omitempty"`
	Index  *int    `json:"index,omitempty"`
	Field  string  `json:"field,omitempty"`
	Value  string  `json:"value,omitempty"`
}

// liveResponse is the outgoing live channel message format.
type liveResponse struct {
	Type   string            `json:"type"` // state, navigate or error
	State  *session.Snapshot `json:"state,omitempty"`
	Target string            `json:"target,omitempty"`
	Href   string            `json:"href,omitempty"`
	Error  string            `json:"error,omitempty"`
}

// liveConn mirrors one visitor's state machines over a websocket. Listener
// callbacks run inside Session.Do and only enqueue; a single writer
// goroutine owns the socket.
type liveConn struct {
	site   *Site
	sess   *session.Session
	conn   *websocket.Conn
	out    *outbox
	logger *zap.Logger

	// width is the last viewport width the client reported, 0 if none.
	// Only the read loop touches it.
	width int
}

func (s *Site) handleLive(w http.ResponseWriter, r *http.Request) {
	sess, ok := s.sessions.Lookup(r)
	if !ok {
		http.Error(w, "no session; load a page first", http.StatusBadRequest)
		return
	}
	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		s.logger.Warn("live upgrade failed", zap.Error(err))
		return
	}
	l := &liveConn{
		site:   s,
		sess:   sess,
		conn:   conn,
		out:    newOutbox(),
		logger: s.logger.With(zap.String("session", sess.ID)),
	}
	l.run()
}

func (l *liveConn) run() {
	defer l.conn.Close()

	done := make(chan struct{})
	go l.writeLoop(done)

	var unsubscribe []func()
	l.sess.Do(func(st session.State) {
		push := func() {
			snap := session.SnapshotOf(st)
			l.out.push(liveResponse{Type: "state", State: &snap})
		}
		unsubscribe = append(unsubscribe,
			st.Chrome.Subscribe(func(bool) { push() }),
			st.Menu.Subscribe(func(bool) { push() }),
			st.Services.Subscribe(func(int) { push() }),
		)
		push()
	})
	cancelNav := l.sess.OnNavigate(func(target string) {
		msg := liveResponse{Type: "navigate", Target: target, Href: l.site.Content().Resolve(target)}
		if !l.out.push(msg) {
			l.logger.Warn("live queue full, navigate dropped", zap.String("target", target))
		}
	})
	l.logger.Debug("live channel open")

	l.readLoop()

	l.sess.Do(func(session.State) {
		for _, fn := range unsubscribe {
			fn()
		}
	})
	cancelNav()
	l.out.close()
	<-done
	l.logger.Debug("live channel closed")
}

func (l *liveConn) readLoop() {
	for {
		_, msg, err := l.conn.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure) {
				l.logger.Warn("live read", zap.Error(err))
			}
			return
		}
		l.site.sessions.Touch(l.sess)

		var req liveRequest
		if err := json.Unmarshal(msg, &req); err != nil {
			l.sendError("invalid message format")
			continue
		}
		if err := l.apply(req); err != nil {
			l.sendError(err.Error())
		}
	}
}

// writeLoop drains out until it is closed. After a write failure it keeps
// draining so the queue never fills against a dead socket.
func (l *liveConn) writeLoop(done chan<- struct{}) {
	defer close(done)
	failed := false
	for {
		batch, ok := l.out.take()
		if !ok {
			return
		}
		for _, msg := range batch {
			if failed {
				break
			}
			l.conn.SetWriteDeadline(time.Now().Add(liveWriteWait))
			if err := l.conn.WriteJSON(msg); err != nil {
				l.logger.Warn("live write", zap.Error(err))
				failed = true
				// Unblock readLoop so the connection is torn down.
				l.conn.Close()
			}
		}
	}
}

func (l *liveConn) sendError(message string) {
	if !l.out.push(liveResponse{Type: "error", Error: message}) {
		l.logger.Debug("live queue full, error dropped", zap.String("error", message))
	}
}

// wide reports whether the last reported viewport shows inline navigation.
func (l *liveConn) wide() bool {
	bp := l.site.opts.NavBreakpoint
	return bp > 0 && l.width >= bp
}

// apply feeds one event to the session's state machines.
func (l *liveConn) apply(req liveRequest) error {
	var err error
	l.sess.Do(func(st session.State) {
		switch req.Type {
		case "scroll":
			st.Chrome.OnScroll(req.Offset)
		case "viewport":
			l.width = req.Width
			if l.wide() {
				st.Menu.Close()
			}
		case "menu_toggle":
			// The overlay menu never opens beside inline navigation.
			if !st.Menu.Open() && l.wide() {
				return
			}
			st.Menu.Toggle()
		case "menu_close":
			st.Menu.Close()
		case "menu_select":
			if req.Target == "" {
				err = errors.New("target is required")
				return
			}
			st.Menu.SelectItem(req.Target)
		case "accordion":
			if req.Index == nil {
				err = errors.New("index is required")
				return
			}
			err = st.Services.Select(*req.Index)
		case "field":
			var f interaction.Field
			if f, err = interaction.ParseField(req.Field); err != nil {
				return
			}
			err = st.Contact.SetField(f, req.Value)
		default:
			err = fmt.Errorf("unknown message type: %q", req.Type)
		}
	})
	return err
}
