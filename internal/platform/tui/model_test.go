package tui

import (
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/vovakirdan/seawar/internal/core"
)

func newTestModel(t *testing.T, g *stubGame) Model {
	t.Helper()
	cfg := core.DefaultConfig()
	cfg.Seed = 1
	m := NewModel(g, openStore(t), cfg)
	m.Init()
	return m
}

func update(t *testing.T, m Model, msg tea.Msg) Model {
	t.Helper()
	next, _ := m.Update(msg)
	out, ok := next.(Model)
	if !ok {
		t.Fatalf("Update() returned %T", next)
	}
	return out
}

func TestModelFeedsKeysToGame(t *testing.T) {
	g := &stubGame{endAfter: 10}
	m := newTestModel(t, g)

	m = update(t, m, runes("f"))
	m = update(t, m, runes("d"))
	m = update(t, m, TickMsg{})
	m = update(t, m, TickMsg{})

	if len(g.inputs) != 2 {
		t.Fatalf("game saw %d steps, want 2", len(g.inputs))
	}
	if !g.inputs[0].Has(core.ActionFire) || !g.inputs[0].Has(core.ActionEast) {
		t.Error("first tick is missing the keys pressed before it")
	}
	if !g.inputs[1].Empty() {
		t.Error("input frame was not cleared after the tick")
	}
}

func TestModelRecordsFinishedGameOnce(t *testing.T) {
	g := &stubGame{endAfter: 2, score: 30}
	m := newTestModel(t, g)

	for i := 0; i < 6; i++ {
		m = update(t, m, TickMsg{})
	}

	patrols, err := m.store.RecentPatrols(stubID, 10)
	if err != nil {
		t.Fatalf("RecentPatrols() failed: %v", err)
	}
	if len(patrols) != 1 {
		t.Fatalf("%d patrols logged, want 1", len(patrols))
	}
	if best, _ := m.store.HighScore(stubID); best != 30 {
		t.Errorf("HighScore() = %d, want 30", best)
	}

	// A restart starts a fresh game that is logged again when it ends.
	m = update(t, m, runes("r"))
	m = update(t, m, TickMsg{})
	if g.resets != 2 {
		t.Fatalf("resets = %d, want 2", g.resets)
	}
	for i := 0; i < 4; i++ {
		m = update(t, m, TickMsg{})
	}
	patrols, _ = m.store.RecentPatrols(stubID, 10)
	if len(patrols) != 2 {
		t.Errorf("%d patrols logged after restart, want 2", len(patrols))
	}
}

func TestModelBackOnlyWhenStopped(t *testing.T) {
	g := &stubGame{endAfter: 10}
	m := newTestModel(t, g)

	m = update(t, m, TickMsg{})
	m = update(t, m, keyOf(tea.KeyEscape))
	if m.BackToMenu() {
		t.Fatal("back accepted while the game is running")
	}

	m = update(t, m, TickMsg{})
	m = update(t, m, runes("p"))
	m = update(t, m, TickMsg{})
	if !m.gameState.Paused {
		t.Fatal("game not paused")
	}
	m = update(t, m, keyOf(tea.KeyEscape))
	if !m.BackToMenu() {
		t.Error("back refused while paused")
	}
}

func TestModelQuit(t *testing.T) {
	m := newTestModel(t, &stubGame{})

	next, cmd := m.Update(runes("Q"))
	if !next.(Model).IsQuitting() {
		t.Error("Q did not quit")
	}
	if cmd == nil {
		t.Error("quit returned no command")
	}
	if next.(Model).View() != "" {
		t.Error("View() not empty after quit")
	}
}

func TestModelView(t *testing.T) {
	m := newTestModel(t, &stubGame{})
	m = update(t, m, tea.WindowSizeMsg{Width: 20, Height: 3})

	view := m.View()
	lines := strings.Split(view, "\n")
	if len(lines) != 3 {
		t.Fatalf("View() has %d lines, want 3", len(lines))
	}
	if !strings.HasPrefix(lines[0], "stub") {
		t.Errorf("first line = %q", lines[0])
	}
}

func TestRenderScreen(t *testing.T) {
	s := core.NewScreen(6, 2)
	s.DrawText(0, 0, "ab")
	s.SetColored(3, 0, '*', core.ColorRed)
	s.SetColored(4, 1, '#', core.Color(200))

	out := RenderScreen(s)
	lines := strings.Split(out, "\n")
	if len(lines) != 2 {
		t.Fatalf("RenderScreen() has %d lines, want 2", len(lines))
	}
	if !strings.HasPrefix(lines[0], "ab ") || !strings.Contains(lines[0], "*") {
		t.Errorf("line 0 = %q", lines[0])
	}
	if !strings.Contains(lines[1], "#") {
		t.Errorf("unknown color dropped its cell: %q", lines[1])
	}
}
