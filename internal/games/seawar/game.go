// Package seawar is the patrol game built on the sim resolver: a submarine
// steers through a sea of islands, mines, enemy ships and monsters while the
// enemy fleet moves on its own after every command.
package seawar

import (
	"errors"
	"fmt"
	"math/rand"
	"sync"

	"github.com/vovakirdan/seawar/internal/config"
	"github.com/vovakirdan/seawar/internal/core"
	"github.com/vovakirdan/seawar/internal/registry"
	"github.com/vovakirdan/seawar/internal/sim"
)

// Mode selects who drives the turns.
type Mode string

const (
	ModePatrol Mode = "patrol" // Every player command ends the turn
	ModeWatch  Mode = "watch"  // The enemy moves on a timer, no player input
)

// Scoring.
const (
	PointsPerKill    = 10
	PointsPerTurn    = 1
	PointsForVictory = 100
)

const logSize = 6

// ErrGameOver is returned by commands issued after the game has ended.
var ErrGameOver = errors.New("seawar: game is over")

var (
	sharedMu  sync.RWMutex
	sharedCfg = config.DefaultSeaWarConfig()
)

// UseConfig sets the configuration used by games created through the
// registry.
func UseConfig(cfg config.SeaWarConfig) {
	sharedMu.Lock()
	defer sharedMu.Unlock()
	sharedCfg = cfg
}

func currentConfig() config.SeaWarConfig {
	sharedMu.RLock()
	defer sharedMu.RUnlock()
	return sharedCfg
}

func init() {
	registry.Register("seawar", func() registry.Game {
		return New(currentConfig())
	})
	registry.Register("seawar_watch", func() registry.Game {
		return NewWatch(currentConfig())
	})
}

// Stats counts what happened during a game.
type Stats struct {
	ShipsSunk      int
	MonstersSunk   int
	MinesCleared   int
	TorpedoesFired int
	Reinforcements int
}

// Phase is published to observers after every enemy phase, and once more
// when the player's own move ends the game. Result is empty in that case.
type Phase struct {
	Turn     int
	Grid     sim.Grid
	Entities []sim.Entity
	Result   sim.TickResult
	GameOver bool
	Reason   string
}

// Game implements registry.Game for both modes.
type Game struct {
	mode Mode
	cfg  config.SeaWarConfig

	runtime    core.RuntimeConfig
	rng        *rand.Rand
	ids        sim.IDSource
	grid       sim.Grid
	resolver   *sim.Resolver
	difficulty *config.DifficultyManager
	reinforced config.Reinforcements

	entities []sim.Entity
	playerID sim.EntityID
	last     sim.TickResult

	tick      uint64
	turn      int
	score     int
	torpedoes int
	stats     Stats
	log       []string

	armed       bool // Next steering key fires
	ahead       bool // Next steering key navigates the full distance
	phaseTicker int

	paused   bool
	gameOver bool
	victory  bool
	reason   string
	fault    error

	observers []func(Phase)
}

// New creates a patrol game.
func New(cfg config.SeaWarConfig) *Game {
	return &Game{mode: ModePatrol, cfg: cfg}
}

// NewWatch creates a game where only the enemy moves.
func NewWatch(cfg config.SeaWarConfig) *Game {
	return &Game{mode: ModeWatch, cfg: cfg}
}

// ID returns the mode identifier.
func (g *Game) ID() string {
	if g.mode == ModeWatch {
		return "seawar_watch"
	}
	return "seawar"
}

// Title returns the display name.
func (g *Game) Title() string {
	if g.mode == ModeWatch {
		return "Sea War (Watch)"
	}
	return "Sea War"
}

// Description returns a one-line summary for menus.
func (g *Game) Description() string {
	if g.mode == ModeWatch {
		return "Watch the enemy fleet move on its own"
	}
	return "Steer your submarine, sink the fleet, protect HQ"
}

// OnPhase registers fn to be called with every published Phase.
func (g *Game) OnPhase(fn func(Phase)) {
	g.observers = append(g.observers, fn)
}

// Reset starts a new game.
func (g *Game) Reset(runtime core.RuntimeConfig) {
	g.runtime = runtime
	g.rng = rand.New(rand.NewSource(runtime.Seed))
	g.ids = sim.IDSource{}
	g.grid = sim.NewGrid(g.cfg.Grid.Width, g.cfg.Grid.Height)
	g.resolver = sim.NewResolver(g.grid, g.rng)
	g.difficulty = config.NewDifficultyManager(g.cfg.Difficulty)
	g.reinforced = config.Reinforcements{}

	g.entities = nil
	g.playerID = 0
	g.last = sim.TickResult{}
	g.tick = 0
	g.turn = 0
	g.score = 0
	g.torpedoes = g.cfg.Player.Torpedoes
	g.stats = Stats{}
	g.log = nil
	g.armed = false
	g.ahead = false
	g.phaseTicker = 0
	g.paused = false
	g.gameOver = false
	g.victory = false
	g.reason = ""
	g.fault = nil

	entities, err := Setup(g.cfg.Fleet, g.grid, g.rng, &g.ids)
	if err != nil {
		g.faulted(err)
		return
	}
	g.entities = entities
	if p, ok := playerOf(entities); ok {
		g.playerID = p.ID
	}
	g.logf("Patrol started on a %dx%d sea", g.grid.Width, g.grid.Height)
}

// Step advances the game by one platform tick.
func (g *Game) Step(in core.InputFrame) core.StepResult {
	g.tick++

	if g.gameOver {
		return core.StepResult{State: g.State()}
	}
	if in.Has(core.ActionPause) {
		g.paused = !g.paused
	}
	if g.paused {
		return core.StepResult{State: g.State()}
	}

	advanced := false
	switch g.mode {
	case ModeWatch:
		g.phaseTicker++
		if g.phaseTicker >= max(g.cfg.Pace.EnemyEveryTicks, 1) {
			g.phaseTicker = 0
			_, err := g.Advance()
			advanced = err == nil
		}
	default:
		advanced = g.command(in)
	}

	return core.StepResult{State: g.State(), Advanced: advanced}
}

// command decodes one tick of player input. It reports whether a turn was
// played.
func (g *Game) command(in core.InputFrame) bool {
	switch {
	case in.Has(core.ActionFire):
		g.armed = !g.armed
		g.ahead = false
		return false
	case in.Has(core.ActionAhead):
		g.ahead = !g.ahead
		g.armed = false
		return false
	case in.Has(core.ActionWait):
		return g.Hold() == nil
	}

	a, ok := in.Steering()
	if !ok {
		return false
	}
	dx, dy, _ := a.Steering()
	dir := sim.Intent{DX: dx, DY: dy}

	if g.armed {
		g.armed = false
		_, err := g.Torpedo(dir)
		return err == nil
	}

	distance := 1
	if g.ahead {
		distance = g.cfg.Player.MaxNavDistance
		g.ahead = false
	}
	_, err := g.Steer(dir, distance)
	return err == nil
}

// Steer navigates the player and, if it survives, plays the enemy phase.
func (g *Game) Steer(dir sim.Intent, distance int) (NavResult, error) {
	if g.gameOver {
		return NavResult{}, ErrGameOver
	}
	distance = core.Clamp(distance, 1, max(g.cfg.Player.MaxNavDistance, 1))

	res, entities, err := Navigate(g.entities, g.playerID, dir, distance, g.grid)
	if err != nil {
		return res, err
	}
	g.entities = entities

	switch {
	case res.Destroyed:
		for _, c := range res.Casualties {
			g.credit(c)
		}
		g.logf("Struck %s at %s", res.Killer.Kind, res.Killer.Pos)
		g.end(fmt.Sprintf("Submarine lost to a %s", res.Killer.Kind))
		g.notify(sim.TickResult{})
		return res, nil
	case res.BlockedBy != nil:
		g.logf("Stopped by %s at %s", res.BlockedBy.Kind, res.BlockedBy.Pos)
	case res.Wall:
		g.logf("Reached the edge at %s", res.Final)
	}

	_, err = g.Advance()
	return res, err
}

// Torpedo fires along dir and, unless the game ends, plays the enemy phase.
func (g *Game) Torpedo(dir sim.Intent) (Shot, error) {
	if g.gameOver {
		return Shot{}, ErrGameOver
	}
	if g.torpedoes <= 0 {
		g.logf("Tubes empty")
		return Shot{}, errors.New("seawar: no torpedoes left")
	}

	shot, entities, err := Fire(g.entities, g.playerID, dir, g.cfg.Player.TorpedoRange, g.grid)
	if err != nil {
		return shot, err
	}
	g.entities = entities
	g.torpedoes--
	g.stats.TorpedoesFired++

	switch {
	case shot.Destroyed:
		g.credit(*shot.Target)
		g.logf("Torpedo sank %s at %s", shot.Target.Kind, shot.Target.Pos)
	case shot.Hit():
		g.logf("Torpedo hit %s at %s", shot.Target.Kind, shot.Target.Pos)
	default:
		g.logf("Torpedo missed")
	}

	if g.checkVictory() {
		g.notify(sim.TickResult{})
		return shot, nil
	}
	_, err = g.Advance()
	return shot, err
}

// Hold keeps the player in place for one turn.
func (g *Game) Hold() error {
	if g.gameOver {
		return ErrGameOver
	}
	g.logf("Holding position")
	_, err := g.Advance()
	return err
}

// Advance plays one enemy phase: reinforcements arrive, then every ship
// and monster moves one step.
func (g *Game) Advance() (sim.TickResult, error) {
	if g.gameOver {
		return sim.TickResult{}, ErrGameOver
	}

	g.turn++
	g.reinforce()

	res, err := g.resolver.Resolve(g.entities)
	if err != nil {
		g.faulted(err)
		g.notify(sim.TickResult{})
		return sim.TickResult{}, err
	}

	g.entities = res.Entities
	g.last = res
	for _, d := range res.Destroyed {
		g.credit(d)
	}
	for _, ev := range res.Events {
		if msg := describe(ev); msg != "" {
			g.logf("%s", msg)
		}
	}

	_, alive := g.Player()
	switch {
	case res.GameEnding && hqLost(res.Destroyed):
		g.end("HQ destroyed")
	case res.GameEnding || !alive:
		g.end("Submarine rammed")
	default:
		g.score += PointsPerTurn
		g.checkVictory()
	}

	g.notify(res)
	return res, nil
}

func (g *Game) reinforce() {
	if !g.difficulty.IsEnabled() {
		return
	}
	due := g.difficulty.Extra(g.score, g.turn)

	spawn := func(kind sim.Kind, have *int, want int) {
		for ; *have < want; *have++ {
			entities, ok := Spawn(g.entities, kind, g.grid, g.rng, &g.ids)
			if !ok {
				continue
			}
			g.entities = entities
			g.stats.Reinforcements++
			g.logf("Sonar: new %s contact", kind)
		}
	}
	spawn(sim.KindShip, &g.reinforced.Ships, due.Ships)
	spawn(sim.KindMonster, &g.reinforced.Monsters, due.Monsters)
}

func (g *Game) credit(e sim.Entity) {
	switch e.Kind {
	case sim.KindShip:
		g.stats.ShipsSunk++
	case sim.KindMonster:
		g.stats.MonstersSunk++
	case sim.KindMine:
		g.stats.MinesCleared++
	}
	if e.Kind.IsEnemy() {
		g.score += PointsPerKill
	}
}

func (g *Game) checkVictory() bool {
	if g.Enemies() > 0 {
		return false
	}
	g.victory = true
	g.score += PointsForVictory
	g.end("All enemies sunk")
	return true
}

func (g *Game) end(reason string) {
	g.gameOver = true
	g.reason = reason
	g.armed = false
	g.ahead = false
	g.logf("%s", reason)
}

func (g *Game) faulted(err error) {
	g.fault = err
	g.end("Fault: " + err.Error())
}

func (g *Game) notify(res sim.TickResult) {
	if len(g.observers) == 0 {
		return
	}
	p := Phase{
		Turn:     g.turn,
		Grid:     g.grid,
		Entities: sim.CloneAll(g.entities),
		Result:   res,
		GameOver: g.gameOver,
		Reason:   g.reason,
	}
	for _, fn := range g.observers {
		fn(p)
	}
}

func (g *Game) logf(format string, args ...any) {
	g.log = append(g.log, fmt.Sprintf(format, args...))
	if len(g.log) > logSize {
		g.log = g.log[len(g.log)-logSize:]
	}
}

func hqLost(destroyed []sim.Entity) bool {
	for _, d := range destroyed {
		if d.Kind == sim.KindHQ {
			return true
		}
	}
	return false
}

// describe turns a casualty event into a log line. Routine moves are not
// logged.
func describe(ev sim.Event) string {
	switch ev.Kind {
	case sim.EventRammed:
		return fmt.Sprintf("%s rammed %s at %s", ev.EntityKind, ev.OtherKind, ev.To)
	case sim.EventDestroyed:
		return fmt.Sprintf("%s sank on %s near %s", ev.EntityKind, ev.OtherKind, ev.From)
	}
	return ""
}

// State returns the current game state.
func (g *Game) State() core.GameState {
	return core.GameState{
		Score:    g.score,
		Turn:     g.turn,
		GameOver: g.gameOver,
		Paused:   g.paused,
		Reason:   g.reason,
	}
}

// Summary reports the patrol for the patrol log.
func (g *Game) Summary() core.PatrolSummary {
	return core.PatrolSummary{
		Seed:           g.runtime.Seed,
		Turns:          g.turn,
		Score:          g.score,
		ShipsSunk:      g.stats.ShipsSunk,
		MonstersSunk:   g.stats.MonstersSunk,
		MinesCleared:   g.stats.MinesCleared,
		TorpedoesFired: g.stats.TorpedoesFired,
		Victory:        g.victory,
		EndReason:      g.reason,
	}
}

// Mode returns the game mode.
func (g *Game) Mode() Mode { return g.mode }

// Grid returns the sea bounds.
func (g *Game) Grid() sim.Grid { return g.grid }

// Turn returns the number of enemy phases played.
func (g *Game) Turn() int { return g.turn }

// Torpedoes returns the torpedoes left.
func (g *Game) Torpedoes() int { return g.torpedoes }

// Stats returns the running counters.
func (g *Game) Stats() Stats { return g.stats }

// Fault returns the invariant error that stopped the game, if any.
func (g *Game) Fault() error { return g.fault }

// Victory reports whether the game ended with every enemy sunk.
func (g *Game) Victory() bool { return g.victory }

// Armed reports whether the next steering key fires a torpedo.
func (g *Game) Armed() bool { return g.armed }

// LastPhase returns the result of the most recent enemy phase.
func (g *Game) LastPhase() sim.TickResult { return g.last }

// Log returns the recent log lines, oldest first.
func (g *Game) Log() []string {
	return append([]string(nil), g.log...)
}

// Entities returns a copy of the live entities.
func (g *Game) Entities() []sim.Entity {
	return sim.CloneAll(g.entities)
}

// Player returns the player's submarine.
func (g *Game) Player() (sim.Entity, bool) {
	e, ok := sim.Find(g.entities, g.playerID)
	if !ok || !e.Alive || e.Kind != sim.KindPlayer {
		return sim.Entity{}, false
	}
	return e, true
}

// Enemies returns the number of ships and monsters afloat.
func (g *Game) Enemies() int {
	return sim.CountKind(g.entities, sim.KindShip) + sim.CountKind(g.entities, sim.KindMonster)
}

// Sonar returns the contacts around the player.
func (g *Game) Sonar() SonarReport {
	p, ok := g.Player()
	if !ok {
		return SonarReport{}
	}
	return Sonar(g.entities, p.Pos, g.cfg.Player.SonarRange)
}
