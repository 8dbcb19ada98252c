package handlers

import (
	"encoding/json"
	"errors"
	"log/slog"
	nethttp "net/http"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/gorilla/websocket"

	"github.com/preston-bernstein/scratchers-service/internal/app/session"
	"github.com/preston-bernstein/scratchers-service/internal/jurisdiction"
	"github.com/preston-bernstein/scratchers-service/internal/logging"
	"github.com/preston-bernstein/scratchers-service/internal/presenter"
)

const (
	writeWait      = 10 * time.Second
	pongWait       = 60 * time.Second
	pingPeriod     = (pongWait * 9) / 10
	maxMessageSize = 4096
)

// sessionAction is a client command sent over the session socket.
type sessionAction struct {
	Action string `json:"action"`
	Value  string `json:"value,omitempty"`
}

// sessionView is the rendered session state pushed to the client.
type sessionView struct {
	Type         string            `json:"type"`
	SessionID    string            `json:"sessionId"`
	Version      uint64            `json:"version"`
	Phase        session.Phase     `json:"phase"`
	Jurisdiction jurisdiction.Code `json:"jurisdiction,omitempty"`
	Layout       session.Layout    `json:"layout"`
	Filter       string            `json:"filter,omitempty"`
	Games        []presenter.Row   `json:"games,omitempty"`
	Error        string            `json:"error,omitempty"`
	CanRetry     bool              `json:"canRetry,omitempty"`
	Selected     *presenter.Detail `json:"selected,omitempty"`
}

type errorView struct {
	Type   string `json:"type"`
	Action string `json:"action"`
	Error  string `json:"error"`
}

// Session upgrades to a websocket that drives one view session. The session
// starts loading the default jurisdiction immediately.
func (h *Handler) Session(w nethttp.ResponseWriter, r *nethttp.Request) {
	if r.Method != nethttp.MethodGet {
		writeError(w, r, nethttp.StatusMethodNotAllowed, "method not allowed", h.logger)
		return
	}
	conn, err := h.upgrader.Upgrade(w, r, nil)
	if err != nil {
		logging.Warn(loggerFromContext(r, h.logger), "session upgrade failed", "error", err)
		return
	}

	id := uuid.NewString()
	logger := loggerFromContext(r, h.logger)
	ctrl := session.New(h.svc, session.Options{ID: id, Logger: logger, Metrics: h.metrics})
	c := &sessionConn{
		id:      id,
		conn:    conn,
		handler: h,
		ctrl:    ctrl,
		logger:  logger,
		wake:    make(chan struct{}, 1),
		errs:    make(chan errorView, 8),
		done:    make(chan struct{}),
	}
	ctrl.OnChange(c.push)

	h.metrics.RecordSessionDelta(1)
	defer h.metrics.RecordSessionDelta(-1)
	logging.Info(logger, "session opened", logging.FieldSessionID, id)

	var wg sync.WaitGroup
	wg.Add(1)
	go func() {
		defer wg.Done()
		c.writePump()
	}()

	c.push(ctrl.State())
	if err := ctrl.SelectJurisdiction(h.defaultJurisdiction.String()); err != nil {
		c.reject("jurisdiction", err)
	}

	c.readPump()

	ctrl.Close()
	close(c.done)
	wg.Wait()
	_ = conn.Close()
	logging.Info(logger, "session closed", logging.FieldSessionID, id)
}

type sessionConn struct {
	id      string
	conn    *websocket.Conn
	handler *Handler
	ctrl    *session.Controller
	logger  *slog.Logger

	mu     sync.Mutex
	latest *session.Snapshot
	wake   chan struct{}
	errs   chan errorView
	done   chan struct{}
}

// push keeps only the newest snapshot; the writer always renders the latest.
func (c *sessionConn) push(snap session.Snapshot) {
	c.mu.Lock()
	if c.latest == nil || snap.Version >= c.latest.Version {
		c.latest = &snap
	}
	c.mu.Unlock()

	select {
	case c.wake <- struct{}{}:
	default:
	}
}

func (c *sessionConn) reject(action string, err error) {
	select {
	case c.errs <- errorView{Type: "error", Action: action, Error: err.Error()}:
	default:
		logging.Warn(c.logger, "dropping session error for slow client", logging.FieldSessionID, c.id)
	}
}

func (c *sessionConn) readPump() {
	c.conn.SetReadLimit(maxMessageSize)
	_ = c.conn.SetReadDeadline(time.Now().Add(pongWait))
	c.conn.SetPongHandler(func(string) error {
		return c.conn.SetReadDeadline(time.Now().Add(pongWait))
	})

	for {
		_, message, err := c.conn.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure) {
				logging.Warn(c.logger, "session unexpected close", "error", err)
			}
			return
		}

		var msg sessionAction
		if err := json.Unmarshal(message, &msg); err != nil {
			c.reject("", errors.New("invalid message"))
			continue
		}
		if err := c.apply(msg); err != nil {
			c.reject(msg.Action, err)
		}
	}
}

func (c *sessionConn) apply(msg sessionAction) error {
	switch msg.Action {
	case "jurisdiction":
		return c.ctrl.SelectJurisdiction(msg.Value)
	case "retry":
		return c.ctrl.Retry()
	case "select":
		return c.ctrl.Select(msg.Value)
	case "dismiss":
		return c.ctrl.Dismiss()
	case "layout":
		return c.ctrl.SetLayout(session.Layout(msg.Value))
	case "filter":
		return c.ctrl.SetFilter(msg.Value)
	default:
		return errors.New("unknown action")
	}
}

func (c *sessionConn) writePump() {
	ticker := time.NewTicker(pingPeriod)
	defer ticker.Stop()

	for {
		select {
		case <-c.done:
			_ = c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			_ = c.conn.WriteMessage(websocket.CloseMessage, websocket.FormatCloseMessage(websocket.CloseNormalClosure, ""))
			return
		case <-c.wake:
			c.mu.Lock()
			snap := c.latest
			c.mu.Unlock()
			if snap == nil {
				continue
			}
			if !c.write(c.render(*snap)) {
				return
			}
		case ev := <-c.errs:
			if !c.write(ev) {
				return
			}
		case <-ticker.C:
			_ = c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := c.conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		}
	}
}

func (c *sessionConn) write(payload any) bool {
	_ = c.conn.SetWriteDeadline(time.Now().Add(writeWait))
	if err := c.conn.WriteJSON(payload); err != nil {
		logging.Debug(c.logger, "session write failed", logging.FieldSessionID, c.id, "error", err)
		return false
	}
	return true
}

func (c *sessionConn) render(snap session.Snapshot) sessionView {
	view := sessionView{
		Type:         "state",
		SessionID:    c.id,
		Version:      snap.Version,
		Phase:        snap.State.Phase(),
		Jurisdiction: snap.Jurisdiction,
		Layout:       snap.Layout,
		Filter:       snap.Filter,
	}
	switch st := snap.State.(type) {
	case session.Loaded:
		view.Games = presenter.ListRows(snap.Visible())
	case session.Failed:
		view.Error = st.Message
		view.CanRetry = true
	}
	if snap.Selected != nil {
		official, err := c.handler.svc.BuildExternalLink(*snap.Selected)
		if err != nil {
			official = ""
		}
		detail := presenter.BuildDetail(*snap.Selected, official)
		view.Selected = &detail
	}
	return view
}
