package spectate

import (
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gorilla/websocket"

	"github.com/vovakirdan/seawar/internal/config"
	"github.com/vovakirdan/seawar/internal/core"
	"github.com/vovakirdan/seawar/internal/games/seawar"
	"github.com/vovakirdan/seawar/internal/sim"
)

func dial(t *testing.T, h *Hub) *websocket.Conn {
	t.Helper()
	srv := httptest.NewServer(h)
	t.Cleanup(srv.Close)

	url := "ws" + strings.TrimPrefix(srv.URL, "http")
	conn, _, err := websocket.DefaultDialer.Dial(url, nil)
	if err != nil {
		t.Fatalf("Dial() failed: %v", err)
	}
	t.Cleanup(func() { conn.Close() })

	deadline := time.Now().Add(2 * time.Second)
	for h.Clients() == 0 {
		if time.Now().After(deadline) {
			t.Fatal("client never registered")
		}
		time.Sleep(5 * time.Millisecond)
	}
	return conn
}

func readFrame(t *testing.T, conn *websocket.Conn) Frame {
	t.Helper()
	conn.SetReadDeadline(time.Now().Add(2 * time.Second))
	var f Frame
	if err := conn.ReadJSON(&f); err != nil {
		t.Fatalf("ReadJSON() failed: %v", err)
	}
	return f
}

func TestPublishReachesSpectator(t *testing.T) {
	h := NewHub(nil)
	conn := dial(t, h)

	h.Publish(Frame{Session: "s1", Turn: 3, Width: 4, Height: 4, Board: "...."})

	f := readFrame(t, conn)
	if f.Session != "s1" || f.Turn != 3 || f.Board != "...." {
		t.Errorf("frame = %+v", f)
	}
}

func TestLateJoinerGetsLatestFrame(t *testing.T) {
	h := NewHub(nil)
	h.Publish(Frame{Session: "s1", Turn: 1})
	h.Publish(Frame{Session: "s1", Turn: 2})
	h.Publish(Frame{Session: "done", Turn: 9, GameOver: true})

	conn := dial(t, h)
	f := readFrame(t, conn)
	if f.Session != "s1" || f.Turn != 2 {
		t.Errorf("late joiner got %+v, want s1 turn 2", f)
	}
}

func TestSlowSpectatorIsDropped(t *testing.T) {
	h := NewHub(nil)
	c := &client{send: make(chan []byte, 1)}
	h.clients[c] = struct{}{}

	h.Publish(Frame{Session: "s", Turn: 1})
	if h.Clients() != 1 {
		t.Fatal("client dropped with room in its buffer")
	}
	h.Publish(Frame{Session: "s", Turn: 2})
	if h.Clients() != 0 {
		t.Error("slow client kept")
	}
	if _, ok := <-c.send; !ok {
		t.Error("buffered frame lost")
	}
	if _, ok := <-c.send; ok {
		t.Error("send channel not closed")
	}
}

func TestCloseRejectsNewFrames(t *testing.T) {
	h := NewHub(nil)
	c := &client{send: make(chan []byte, 4)}
	h.clients[c] = struct{}{}

	h.Close()
	h.Publish(Frame{Session: "s"})

	if h.Clients() != 0 {
		t.Errorf("Clients() = %d after Close", h.Clients())
	}
	if _, ok := <-c.send; ok {
		t.Error("frame delivered after Close")
	}
}

func TestWatchStreamsGame(t *testing.T) {
	cfg := config.DefaultSeaWarConfig()
	cfg.Difficulty.Enabled = false
	g := seawar.New(cfg)

	h := NewHub(nil)
	if !h.Watch("alice-1", g) {
		t.Fatal("Watch() refused a seawar game")
	}
	conn := dial(t, h)

	g.Reset(core.RuntimeConfig{Seed: 5})
	if err := g.Hold(); err != nil {
		t.Fatalf("Hold() failed: %v", err)
	}

	f := readFrame(t, conn)
	if f.Session != "alice-1" || f.Turn != 1 {
		t.Errorf("frame = session %q turn %d", f.Session, f.Turn)
	}
	if f.Width != cfg.Grid.Width || f.Height != cfg.Grid.Height {
		t.Errorf("frame size %dx%d", f.Width, f.Height)
	}
	if len(f.Entities) != len(g.Entities()) {
		t.Errorf("%d contacts, game has %d entities", len(f.Entities), len(g.Entities()))
	}
	if f.Board != seawar.RenderText(g.Entities(), g.Grid()) {
		t.Error("board does not match the game")
	}
}

func TestFrameOfListsCasualties(t *testing.T) {
	grid := sim.NewGrid(3, 1)
	p := seawar.Phase{
		Turn: 4,
		Grid: grid,
		Entities: []sim.Entity{
			sim.NewEntity(1, sim.KindShip, sim.P(1, 0)),
		},
		Result: sim.TickResult{Events: []sim.Event{
			{Kind: sim.EventMoved, EntityKind: sim.KindShip},
			{Kind: sim.EventRammed, EntityKind: sim.KindShip, OtherKind: sim.KindMine, To: sim.P(1, 0)},
		}},
	}

	f := FrameOf("s", p)
	if len(f.Events) != 1 || f.Events[0] != "ship rammed mine at (1,0)" {
		t.Errorf("events = %q", f.Events)
	}
	if len(f.Entities) != 1 || f.Entities[0].Kind != "ship" || f.Entities[0].X != 1 {
		t.Errorf("entities = %+v", f.Entities)
	}
}
