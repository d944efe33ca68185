package tui

import (
	"path/filepath"
	"testing"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/vovakirdan/seawar/internal/core"
	"github.com/vovakirdan/seawar/internal/registry"
	"github.com/vovakirdan/seawar/internal/storage"
)

const stubID = "tui_stub"

func init() {
	registry.Register(stubID, func() registry.Game { return &stubGame{endAfter: 3, score: 42} })
}

// stubGame ends after endAfter steps and reports a fixed summary.
type stubGame struct {
	endAfter int
	score    int
	steps    int
	resets   int
	paused   bool
	inputs   []core.InputFrame
}

func (g *stubGame) ID() string    { return stubID }
func (g *stubGame) Title() string { return "Stub Patrol" }

func (g *stubGame) Reset(core.RuntimeConfig) {
	g.resets++
	g.steps = 0
	g.paused = false
}

func (g *stubGame) Step(in core.InputFrame) core.StepResult {
	g.inputs = append(g.inputs, in)
	if in.Has(core.ActionPause) {
		g.paused = !g.paused
	}
	if !g.paused && !g.over() {
		g.steps++
	}
	return core.StepResult{State: g.State(), Advanced: true}
}

func (g *stubGame) Render(dst *core.Screen) {
	dst.DrawText(0, 0, "stub")
}

func (g *stubGame) over() bool {
	return g.endAfter > 0 && g.steps >= g.endAfter
}

func (g *stubGame) State() core.GameState {
	return core.GameState{Score: g.score, Turn: g.steps, GameOver: g.over(), Paused: g.paused}
}

func (g *stubGame) Summary() core.PatrolSummary {
	return core.PatrolSummary{
		Seed:           7,
		Turns:          g.steps,
		Score:          g.score,
		ShipsSunk:      2,
		MonstersSunk:   1,
		MinesCleared:   3,
		TorpedoesFired: 4,
		EndReason:      "HQ destroyed",
	}
}

func openStore(t *testing.T) storage.Store {
	t.Helper()
	store, err := storage.Open(filepath.Join(t.TempDir(), "scores.db"))
	if err != nil {
		t.Fatalf("storage.Open() failed: %v", err)
	}
	t.Cleanup(func() { store.Close() })
	return store
}

func runes(s string) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

func keyOf(k tea.KeyType) tea.KeyMsg {
	return tea.KeyMsg{Type: k}
}
