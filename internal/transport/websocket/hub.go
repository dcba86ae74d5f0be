// Package websocket streams live game snapshots to spectators.
//
// Games publish through a Hub; browsers or scripts connect to
// /watch?session=<id> and receive one JSON message per event.
package websocket

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"sort"
	"time"

	"github.com/charmbracelet/log"
	"github.com/gorilla/websocket"
)

const (
	// Time allowed to write a message to the peer.
	writeWait = 10 * time.Second

	// Time allowed to read the next pong message from the peer.
	pongWait = 60 * time.Second

	// Send pings to peer with this period. Must be less than pongWait.
	pingPeriod = (pongWait * 9) / 10

	// Spectators never send data; anything larger is dropped.
	maxMessageSize = 512

	sendBuffer    = 64
	publishBuffer = 256
)

// EventClosed is sent to spectators when the game session ends.
const EventClosed = "closed"

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	// Spectating is read-only
	CheckOrigin: func(r *http.Request) bool { return true },
}

// Message is the JSON payload sent to spectators.
type Message struct {
	SessionID string `json:"session_id"`
	Event     string `json:"event"`
	Snapshot  any    `json:"snapshot,omitempty"`
}

// SessionInfo describes a live game session.
type SessionInfo struct {
	ID         string    `json:"id"`
	Spectators int       `json:"spectators"`
	LastEvent  string    `json:"last_event"`
	UpdatedAt  time.Time `json:"updated_at"`
}

type client struct {
	hub       *Hub
	conn      *websocket.Conn
	send      chan []byte
	sessionID string
}

type session struct {
	clients   map[*client]bool
	last      []byte // Latest encoded message, replayed to new spectators
	lastEvent string
	updated   time.Time
	live      bool // Published to by a running game
}

// Hub keeps spectator connections per session and fans out published
// messages. All session state is owned by the Run goroutine.
type Hub struct {
	sessions   map[string]*session
	publish    chan *Message // Game events and closes, in publish order
	register   chan *client
	unregister chan *client
	list       chan chan []SessionInfo
	done       chan struct{}
	logger     *log.Logger
}

// NewHub creates a hub. Call Run before publishing.
func NewHub(logger *log.Logger) *Hub {
	if logger == nil {
		logger = log.New(io.Discard)
	}
	return &Hub{
		sessions:   make(map[string]*session),
		publish:    make(chan *Message, publishBuffer),
		register:   make(chan *client),
		unregister: make(chan *client),
		list:       make(chan chan []SessionInfo),
		done:       make(chan struct{}),
		logger:     logger,
	}
}

// Run processes hub events until ctx is cancelled. All spectator
// connections are closed on return.
func (h *Hub) Run(ctx context.Context) {
	defer close(h.done)
	for {
		select {
		case <-ctx.Done():
			for id, s := range h.sessions {
				for c := range s.clients {
					close(c.send)
				}
				delete(h.sessions, id)
			}
			return

		case c := <-h.register:
			h.registerClient(c)

		case c := <-h.unregister:
			h.unregisterClient(c)

		case msg := <-h.publish:
			if msg.Event == EventClosed {
				h.closeSession(msg.SessionID)
				continue
			}
			h.broadcast(msg)

		case reply := <-h.list:
			reply <- h.snapshotSessions()
		}
	}
}

// Publish queues a game event for the session's spectators. It never
// blocks the caller: when the queue is full the event is dropped.
func (h *Hub) Publish(sessionID, event string, payload any) {
	msg := &Message{SessionID: sessionID, Event: event, Snapshot: payload}
	select {
	case h.publish <- msg:
	case <-h.done:
	default:
		h.logger.Warn("spectator queue full, dropping event", "session", sessionID, "event", event)
	}
}

// Close ends a session: spectators receive a closed event and are
// disconnected. It is queued behind earlier Publish calls for the session.
func (h *Hub) Close(sessionID string) {
	select {
	case h.publish <- &Message{SessionID: sessionID, Event: EventClosed}:
	case <-h.done:
	default:
		h.logger.Warn("spectator queue full, dropping close", "session", sessionID)
	}
}

// Sessions lists live sessions ordered by ID.
func (h *Hub) Sessions() []SessionInfo {
	reply := make(chan []SessionInfo, 1)
	select {
	case h.list <- reply:
		return <-reply
	case <-h.done:
		return nil
	}
}

func (h *Hub) session(id string) *session {
	s, ok := h.sessions[id]
	if !ok {
		s = &session{clients: make(map[*client]bool)}
		h.sessions[id] = s
	}
	return s
}

func (h *Hub) registerClient(c *client) {
	s := h.session(c.sessionID)
	s.clients[c] = true
	if s.last != nil {
		c.send <- s.last
	}
	h.logger.Debug("spectator joined", "session", c.sessionID, "spectators", len(s.clients))
}

func (h *Hub) unregisterClient(c *client) {
	s, ok := h.sessions[c.sessionID]
	if !ok || !s.clients[c] {
		return
	}
	delete(s.clients, c)
	close(c.send)
	if len(s.clients) == 0 && !s.live {
		delete(h.sessions, c.sessionID)
	}
	h.logger.Debug("spectator left", "session", c.sessionID, "spectators", len(s.clients))
}

func (h *Hub) broadcast(msg *Message) {
	data, err := json.Marshal(msg)
	if err != nil {
		h.logger.Error("cannot encode spectator message", "session", msg.SessionID, "err", err)
		return
	}

	s := h.session(msg.SessionID)
	s.live = true
	s.last = data
	s.lastEvent = msg.Event
	s.updated = time.Now()

	for c := range s.clients {
		select {
		case c.send <- data:
		default:
			// Slow spectator
			h.unregisterClient(c)
		}
	}
}

func (h *Hub) closeSession(id string) {
	s, ok := h.sessions[id]
	if !ok {
		return
	}
	data, err := json.Marshal(&Message{SessionID: id, Event: EventClosed})
	if err == nil {
		for c := range s.clients {
			select {
			case c.send <- data:
			default:
			}
		}
	}
	for c := range s.clients {
		close(c.send)
	}
	delete(h.sessions, id)
	h.logger.Debug("session closed", "session", id)
}

func (h *Hub) snapshotSessions() []SessionInfo {
	out := make([]SessionInfo, 0, len(h.sessions))
	for id, s := range h.sessions {
		if !s.live {
			continue
		}
		out = append(out, SessionInfo{
			ID:         id,
			Spectators: len(s.clients),
			LastEvent:  s.lastEvent,
			UpdatedAt:  s.updated,
		})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out
}

// ServeWatch upgrades the request and streams the session named by the
// "session" query parameter. Spectators may connect before the game's
// first event.
func (h *Hub) ServeWatch(w http.ResponseWriter, r *http.Request) {
	sessionID := r.URL.Query().Get("session")
	if sessionID == "" {
		http.Error(w, "missing session parameter", http.StatusBadRequest)
		return
	}

	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		h.logger.Warn("websocket upgrade failed", "err", err)
		return
	}

	c := &client{
		hub:       h,
		conn:      conn,
		send:      make(chan []byte, sendBuffer),
		sessionID: sessionID,
	}

	select {
	case h.register <- c:
	case <-h.done:
		_ = conn.Close()
		return
	}

	go c.writePump()
	go c.readPump()
}

// ServeSessions writes the live session list as JSON.
func (h *Hub) ServeSessions(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(h.Sessions()); err != nil {
		h.logger.Warn("cannot write session list", "err", err)
	}
}

// Handler returns an HTTP handler exposing /watch and /sessions.
func (h *Hub) Handler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("/watch", h.ServeWatch)
	mux.HandleFunc("/sessions", h.ServeSessions)
	return mux
}

// ListenAndServe runs the hub and an HTTP server on addr until ctx is
// cancelled.
func (h *Hub) ListenAndServe(ctx context.Context, addr string) error {
	srv := &http.Server{
		Addr:              addr,
		Handler:           h.Handler(),
		ReadHeaderTimeout: 10 * time.Second,
	}

	go h.Run(ctx)

	errCh := make(chan error, 1)
	go func() {
		h.logger.Info("spectator feed listening", "address", addr)
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	}
}

// readPump drains the connection so control frames are handled and a
// closed peer is noticed.
func (c *client) readPump() {
	defer func() {
		select {
		case c.hub.unregister <- c:
		case <-c.hub.done:
		}
		_ = c.conn.Close()
	}()

	c.conn.SetReadLimit(maxMessageSize)
	_ = c.conn.SetReadDeadline(time.Now().Add(pongWait))
	c.conn.SetPongHandler(func(string) error {
		return c.conn.SetReadDeadline(time.Now().Add(pongWait))
	})

	for {
		if _, _, err := c.conn.ReadMessage(); err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseAbnormalClosure) {
				c.hub.logger.Debug("spectator read error", "session", c.sessionID, "err", err)
			}
			return
		}
	}
}

// writePump sends queued messages, one websocket frame per message.
func (c *client) writePump() {
	ticker := time.NewTicker(pingPeriod)
	defer func() {
		ticker.Stop()
		_ = c.conn.Close()
	}()

	for {
		select {
		case msg, ok := <-c.send:
			_ = c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if !ok {
				// Hub closed the channel
				_ = c.conn.WriteMessage(websocket.CloseMessage, []byte{})
				return
			}
			if err := c.conn.WriteMessage(websocket.TextMessage, msg); err != nil {
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
