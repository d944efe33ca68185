// Package spectate streams running games to websocket clients. Every enemy
// phase becomes a JSON Frame broadcast to all connected spectators.
package spectate

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"sync"
	"time"

	"github.com/charmbracelet/log"
	"github.com/gorilla/websocket"

	"github.com/vovakirdan/seawar/internal/games/seawar"
	"github.com/vovakirdan/seawar/internal/registry"
	"github.com/vovakirdan/seawar/internal/sim"
)

const (
	sendBuffer = 64
	writeWait  = 5 * time.Second
)

// Contact is one entity as seen by a spectator.
type Contact struct {
	ID    uint32 `json:"id"`
	Kind  string `json:"kind"`
	X     int    `json:"x"`
	Y     int    `json:"y"`
	Alive bool   `json:"alive"`
}

// Frame is one board update.
type Frame struct {
	Session  string    `json:"session"`
	Turn     int       `json:"turn"`
	Width    int       `json:"width"`
	Height   int       `json:"height"`
	Entities []Contact `json:"entities"`
	Events   []string  `json:"events,omitempty"`
	Board    string    `json:"board"`
	GameOver bool      `json:"game_over"`
	Reason   string    `json:"reason,omitempty"`
}

// FrameOf converts a published phase. Only casualties are listed as events.
func FrameOf(session string, p seawar.Phase) Frame {
	f := Frame{
		Session:  session,
		Turn:     p.Turn,
		Width:    p.Grid.Width,
		Height:   p.Grid.Height,
		Entities: make([]Contact, 0, len(p.Entities)),
		Board:    seawar.RenderText(p.Entities, p.Grid),
		GameOver: p.GameOver,
		Reason:   p.Reason,
	}
	for _, e := range p.Entities {
		f.Entities = append(f.Entities, Contact{
			ID:    uint32(e.ID),
			Kind:  e.Kind.String(),
			X:     e.Pos.X,
			Y:     e.Pos.Y,
			Alive: e.Alive,
		})
	}
	for _, ev := range p.Result.Events {
		switch ev.Kind {
		case sim.EventRammed, sim.EventDestroyed:
			f.Events = append(f.Events, fmt.Sprintf("%s %s %s at %s", ev.EntityKind, ev.Kind, ev.OtherKind, ev.To))
		}
	}
	return f
}

// phaseSource is implemented by games that publish their phases.
type phaseSource interface {
	OnPhase(fn func(seawar.Phase))
}

type client struct {
	conn *websocket.Conn
	send chan []byte
}

// Hub fans frames out to spectators. A client whose buffer is full is
// dropped rather than slowing the game down.
type Hub struct {
	mu       sync.Mutex
	clients  map[*client]struct{}
	latest   map[string][]byte // last frame of every session, for late joiners
	logger   *log.Logger
	upgrader websocket.Upgrader
	closed   bool
}

// NewHub creates an empty hub. A nil logger uses the default logger.
func NewHub(logger *log.Logger) *Hub {
	if logger == nil {
		logger = log.Default()
	}
	return &Hub{
		clients: make(map[*client]struct{}),
		latest:  make(map[string][]byte),
		logger:  logger,
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 4096,
			CheckOrigin:     func(*http.Request) bool { return true },
		},
	}
}

// Watch subscribes to g's phases under the given session name. It returns
// false for games that do not publish phases.
func (h *Hub) Watch(name string, g registry.Game) bool {
	src, ok := g.(phaseSource)
	if !ok {
		return false
	}
	src.OnPhase(func(p seawar.Phase) {
		h.Publish(FrameOf(name, p))
	})
	return true
}

// Publish broadcasts f to every spectator without blocking.
func (h *Hub) Publish(f Frame) {
	data, err := json.Marshal(f)
	if err != nil {
		h.logger.Error("cannot encode frame", "session", f.Session, "error", err)
		return
	}

	h.mu.Lock()
	defer h.mu.Unlock()

	if h.closed {
		return
	}
	if f.GameOver {
		delete(h.latest, f.Session)
	} else {
		h.latest[f.Session] = data
	}

	for c := range h.clients {
		select {
		case c.send <- data:
		default:
			h.logger.Warn("dropping slow spectator", "session", f.Session)
			h.dropLocked(c)
		}
	}
}

// Clients returns the number of connected spectators.
func (h *Hub) Clients() int {
	h.mu.Lock()
	defer h.mu.Unlock()
	return len(h.clients)
}

// ServeHTTP upgrades the request to a websocket and streams frames until
// the client goes away.
func (h *Hub) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	conn, err := h.upgrader.Upgrade(w, r, nil)
	if err != nil {
		h.logger.Warn("websocket upgrade failed", "remote", r.RemoteAddr, "error", err)
		return
	}

	c := &client{conn: conn, send: make(chan []byte, sendBuffer)}
	if !h.register(c) {
		conn.Close()
		return
	}
	h.logger.Info("spectator joined", "remote", r.RemoteAddr)

	go h.writePump(c)
	h.readPump(c)
	h.logger.Info("spectator left", "remote", r.RemoteAddr)
}

func (h *Hub) register(c *client) bool {
	h.mu.Lock()
	defer h.mu.Unlock()

	if h.closed {
		return false
	}
	for _, data := range h.latest {
		select {
		case c.send <- data:
		default:
		}
	}
	h.clients[c] = struct{}{}
	return true
}

func (h *Hub) drop(c *client) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.dropLocked(c)
}

func (h *Hub) dropLocked(c *client) {
	if _, ok := h.clients[c]; !ok {
		return
	}
	delete(h.clients, c)
	close(c.send)
}

// readPump discards incoming messages; it only notices the client leaving.
func (h *Hub) readPump(c *client) {
	defer func() {
		h.drop(c)
		c.conn.Close()
	}()
	for {
		if _, _, err := c.conn.ReadMessage(); err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure) {
				h.logger.Debug("spectator read failed", "error", err)
			}
			return
		}
	}
}

func (h *Hub) writePump(c *client) {
	defer c.conn.Close()

	for data := range c.send {
		c.conn.SetWriteDeadline(time.Now().Add(writeWait))
		if err := c.conn.WriteMessage(websocket.TextMessage, data); err != nil {
			h.drop(c)
			return
		}
	}
	c.conn.SetWriteDeadline(time.Now().Add(writeWait))
	//nolint:errcheck // The connection is going away either way
	c.conn.WriteMessage(websocket.CloseMessage, websocket.FormatCloseMessage(websocket.CloseNormalClosure, ""))
}

// Close disconnects every spectator and stops accepting new ones.
func (h *Hub) Close() {
	h.mu.Lock()
	defer h.mu.Unlock()

	h.closed = true
	for c := range h.clients {
		h.dropLocked(c)
	}
}

// ListenAndServe serves the hub on addr under /ws until ctx is cancelled.
func ListenAndServe(ctx context.Context, addr string, h *Hub) error {
	mux := http.NewServeMux()
	mux.Handle("/ws", h)

	srv := &http.Server{
		Addr:              addr,
		Handler:           mux,
		ReadHeaderTimeout: 10 * time.Second,
	}

	errc := make(chan error, 1)
	go func() {
		h.logger.Info("spectator endpoint listening", "address", addr, "path", "/ws")
		errc <- srv.ListenAndServe()
	}()

	select {
	case err := <-errc:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
		h.Close()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	}
}
