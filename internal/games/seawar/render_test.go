package seawar

import (
	"strings"
	"testing"

	"github.com/vovakirdan/seawar/internal/core"
	"github.com/vovakirdan/seawar/internal/sim"
)

func TestRenderText(t *testing.T) {
	grid := sim.NewGrid(8, 8)
	board := []sim.Entity{
		heading(1, sim.KindShip, 5, 1, 1, 0),
		at(2, sim.KindPlayer, 0, 0),
		at(3, sim.KindMine, 7, 7),
	}

	lines := strings.Split(RenderText(board, grid), "\n")
	if len(lines) != 10 {
		t.Fatalf("got %d lines, want 10", len(lines))
	}

	border := strings.Repeat(".", 26)
	if lines[0] != border || lines[9] != border {
		t.Errorf("border rows = %q / %q", lines[0], lines[9])
	}

	want := map[int]string{
		1: ".(X)" + strings.Repeat(" ", 21) + ".",
		2: "." + strings.Repeat(" ", 15) + `\S/` + strings.Repeat(" ", 6) + ".",
		3: "." + strings.Repeat(" ", 24) + ".",
		8: "." + strings.Repeat(" ", 21) + " $ " + ".",
	}
	for row, line := range want {
		if lines[row] != line {
			t.Errorf("row %d = %q, want %q", row, lines[row], line)
		}
	}
}

func TestGlyphs(t *testing.T) {
	seen := map[string]bool{}
	for _, k := range sim.Kinds {
		g := Glyph(k)
		if len(g) != cellWidth {
			t.Errorf("%s glyph %q is not %d wide", k, g, cellWidth)
		}
		if seen[g] {
			t.Errorf("glyph %q used twice", g)
		}
		seen[g] = true
		if KindColor(k) == core.ColorDefault {
			t.Errorf("%s has no color", k)
		}
	}
}

func TestRenderScreen(t *testing.T) {
	g := New(testConfig())
	startOn(t, g,
		at(100, sim.KindPlayer, 0, 0),
		heading(101, sim.KindMonster, 2, 0, 0, 1),
	)

	s := core.NewScreen(80, 24)
	g.Render(s)
	out := s.String()

	for _, want := range []string{"(X)", "SSS", "SEA WAR", "Torps   3/3", "Near monster 2.0"} {
		if !strings.Contains(out, want) {
			t.Errorf("screen is missing %q:\n%s", want, out)
		}
	}

	c := s.GetCell(strings.Index(s.Row(8), "(X)"), 8)
	if c.Color != core.ColorBrightCyan {
		t.Errorf("player drawn in color %d", c.Color)
	}
}

func TestRenderAlongsideWarning(t *testing.T) {
	g := New(testConfig())
	startOn(t, g,
		at(100, sim.KindPlayer, 0, 0),
		heading(101, sim.KindShip, 1, 1, 0, 1),
		heading(102, sim.KindMonster, 4, 0, 0, 1),
	)

	s := core.NewScreen(80, 24)
	g.Render(s)
	if !strings.Contains(s.String(), "1 ALONGSIDE") {
		t.Errorf("alongside warning missing:\n%s", s.String())
	}
}

func TestRenderOverlays(t *testing.T) {
	g := New(testConfig())
	startOn(t, g, at(100, sim.KindPlayer, 0, 0), heading(101, sim.KindShip, 2, 0, 0, 1))

	small := core.NewScreen(20, 5)
	g.Render(small)
	if !strings.Contains(small.String(), "Window too small") {
		t.Errorf("small screen:\n%s", small.String())
	}

	if _, err := g.Torpedo(east); err != nil {
		t.Fatal(err)
	}
	s := core.NewScreen(80, 24)
	g.Render(s)
	if !strings.Contains(s.String(), "Victory!") {
		t.Errorf("victory overlay missing:\n%s", s.String())
	}
}
