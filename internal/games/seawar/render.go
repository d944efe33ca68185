package seawar

import (
	"fmt"

	"github.com/vovakirdan/seawar/internal/core"
	"github.com/vovakirdan/seawar/internal/sim"
)

const (
	cellWidth = 3
	panelW    = 16
	panelGap  = 2
)

// Glyph returns the three-character map symbol of a kind.
func Glyph(k sim.Kind) string {
	switch k {
	case sim.KindPlayer:
		return "(X)"
	case sim.KindIsland:
		return "***"
	case sim.KindShip:
		return `\S/`
	case sim.KindMine:
		return " $ "
	case sim.KindHQ:
		return "-H-"
	case sim.KindMonster:
		return "SSS"
	}
	return "???"
}

// KindColor returns the color a kind is drawn in.
func KindColor(k sim.Kind) core.Color {
	switch k {
	case sim.KindPlayer:
		return core.ColorBrightCyan
	case sim.KindIsland:
		return core.ColorGreen
	case sim.KindShip:
		return core.ColorYellow
	case sim.KindMine:
		return core.ColorBrightRed
	case sim.KindHQ:
		return core.ColorBlue
	case sim.KindMonster:
		return core.ColorMagenta
	}
	return core.ColorDefault
}

func mapSize(grid sim.Grid) (w, h int) {
	return grid.Width*cellWidth + 2, grid.Height + 2
}

// drawMap draws the bordered sea with its top-left corner at (x0, y0).
func drawMap(dst *core.Screen, x0, y0 int, entities []sim.Entity, grid sim.Grid) {
	w, h := mapSize(grid)
	for x := 0; x < w; x++ {
		dst.SetColored(x0+x, y0, '.', core.ColorGray)
		dst.SetColored(x0+x, y0+h-1, '.', core.ColorGray)
	}
	for y := 1; y < h-1; y++ {
		dst.SetColored(x0, y0+y, '.', core.ColorGray)
		dst.SetColored(x0+w-1, y0+y, '.', core.ColorGray)
	}

	for _, e := range entities {
		if !e.Alive || !grid.Contains(e.Pos) {
			continue
		}
		dst.DrawTextColored(x0+1+e.Pos.X*cellWidth, y0+1+e.Pos.Y, Glyph(e.Kind), KindColor(e.Kind))
	}
}

// RenderText draws the sea as plain text, one grid row per line.
func RenderText(entities []sim.Entity, grid sim.Grid) string {
	w, h := mapSize(grid)
	s := core.NewScreen(w, h)
	drawMap(s, 0, 0, entities, grid)
	return s.String()
}

// Render draws the map, the side panel and any overlay.
func (g *Game) Render(dst *core.Screen) {
	mapW, mapH := mapSize(g.grid)
	if dst.Width() < mapW || dst.Height() < mapH {
		g.renderOverlay(dst, "Window too small", fmt.Sprintf("Need %dx%d", mapW, mapH))
		return
	}

	side := dst.Width() >= mapW+panelGap+panelW
	totalW := mapW
	if side {
		totalW += panelGap + panelW
	}
	x0 := (dst.Width() - totalW) / 2
	y0 := (dst.Height() - mapH) / 2

	drawMap(dst, x0, y0, g.entities, g.grid)
	if side {
		g.renderPanel(dst, core.NewRect(x0+mapW+panelGap, y0, panelW, mapH))
	} else if y0 > 0 {
		dst.DrawText(x0, y0-1, fmt.Sprintf("T%d  %d pts  %d torps", g.turn, g.score, g.torpedoes))
	}

	switch {
	case g.fault != nil:
		g.renderOverlay(dst, "Simulation fault", g.reason)
	case g.victory:
		g.renderOverlay(dst, "Victory!", fmt.Sprintf("Score %d - press R", g.score))
	case g.gameOver:
		g.renderOverlay(dst, g.reason, fmt.Sprintf("Score %d - press R", g.score))
	case g.paused:
		g.renderOverlay(dst, "Paused", "Press P to continue")
	}
}

func (g *Game) renderPanel(dst *core.Screen, r core.Rect) {
	y := r.Y
	line := func(c core.Color, format string, args ...any) {
		if y >= r.Bottom() {
			return
		}
		text := []rune(fmt.Sprintf(format, args...))
		if len(text) > r.W {
			text = text[:r.W]
		}
		dst.DrawTextColored(r.X, y, string(text), c)
		y++
	}

	title := "SEA WAR"
	if g.mode == ModeWatch {
		title = "SEA WAR - WATCH"
	}
	line(core.ColorBrightCyan, "%s", title)
	line(core.ColorDefault, "Turn    %d", g.turn)
	line(core.ColorDefault, "Score   %d", g.score)
	line(core.ColorDefault, "Torps   %d/%d", g.torpedoes, g.cfg.Player.Torpedoes)
	line(core.ColorDefault, "Enemies %d", g.Enemies())
	y++

	report := g.Sonar()
	line(core.ColorCyan, "Sonar %d contacts", len(report.Contacts))
	if c, ok := report.Nearest(); ok {
		line(KindColor(c.Entity.Kind), "Near %s %.1f", c.Entity.Kind, c.Distance)
	}
	if n := len(report.Alongside()); n > 0 {
		line(core.ColorBrightRed, "%d ALONGSIDE", n)
	}
	switch {
	case g.armed:
		line(core.ColorOrange, "TORPEDO ARMED")
	case g.ahead:
		line(core.ColorOrange, "FULL AHEAD")
	}
	y++

	for _, msg := range g.log {
		line(core.ColorGray, "%s", msg)
	}
}

// renderOverlay draws a framed two-line message in the middle of the screen.
func (g *Game) renderOverlay(dst *core.Screen, line1, line2 string) {
	textW := max(len([]rune(line1)), len([]rune(line2)))
	box := core.NewRect(0, 0, dst.Width(), dst.Height()).Centered(textW+4, 5)

	dst.FillRect(box, ' ')
	dst.DrawBox(box)
	dst.DrawTextColored(box.X+(box.W-len([]rune(line1)))/2, box.Y+1, line1, core.ColorYellow)
	dst.DrawText(box.X+(box.W-len([]rune(line2)))/2, box.Y+3, line2)
}
