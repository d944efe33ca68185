package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/vovakirdan/seawar/internal/core"
	"github.com/vovakirdan/seawar/internal/games/seawar"
	"github.com/vovakirdan/seawar/internal/platform/spectate"
	"github.com/vovakirdan/seawar/internal/platform/tui"
	"github.com/vovakirdan/seawar/internal/sim"
)

var (
	flagTurns   int
	flagVerbose bool
	flagWSAddr  string
	flagDelay   time.Duration
	flagRecord  bool
	flagKinds   string
)

var simCmd = &cobra.Command{
	Use:   "sim",
	Short: "Run the enemy fleet headless",
	Long: `Run enemy phases without a player at the helm and print the final sea.

Each phase is logged with its pass count and casualties; --verbose adds
every move, narrowed to some entity kinds with --kinds. The run stops after --turns phases or when the game ends.
An internal fault is logged and exits with status 1.

With --ws the run is streamed to websocket spectators at ws://<addr>/ws;
--delay paces the phases so they can follow along.

Examples:
  seawar sim --seed 42
  seawar sim --turns 500 --verbose
  seawar sim -v --kinds monster
  seawar sim --ws :8080 --delay 500ms
  seawar sim --difficulty hard --record`,
	Args: cobra.NoArgs,
	Run:  runSim,
}

func init() {
	simCmd.Flags().IntVar(&flagTurns, "turns", 100, "Maximum number of enemy phases")
	simCmd.Flags().BoolVarP(&flagVerbose, "verbose", "v", false, "Log every event")
	simCmd.Flags().StringVar(&flagWSAddr, "ws", "", "Stream phases to websocket spectators on this address")
	simCmd.Flags().DurationVar(&flagDelay, "delay", 0, "Pause between phases")
	simCmd.Flags().BoolVar(&flagRecord, "record", false, "Log the run in the patrol log")
	simCmd.Flags().StringVar(&flagKinds, "kinds", "", "Only log events of these kinds, comma separated (e.g. ship,monster)")
}

func runSim(_ *cobra.Command, _ []string) {
	logger := log.NewWithOptions(os.Stderr, log.Options{
		ReportTimestamp: true,
		Prefix:          "seawar-sim",
	})
	if flagVerbose {
		logger.SetLevel(log.DebugLevel)
	}

	cfg, err := loadConfig()
	if err != nil {
		logger.Fatal("bad configuration", "error", err)
	}
	kinds, err := parseKinds(flagKinds)
	if err != nil {
		logger.Fatal("bad --kinds", "error", err)
	}

	seed := flagSeed
	if seed == 0 {
		seed = time.Now().UnixNano()
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	g := seawar.NewWatch(cfg)
	g.OnPhase(func(p seawar.Phase) { logPhase(logger, p, kinds) })

	if flagWSAddr != "" {
		hub := spectate.NewHub(logger.WithPrefix("seawar-ws"))
		hub.Watch(fmt.Sprintf("sim-%d", seed), g)
		go func() {
			if err := spectate.ListenAndServe(ctx, flagWSAddr, hub); err != nil {
				logger.Error("spectator endpoint failed", "error", err)
			}
		}()
	}

	g.Reset(core.RuntimeConfig{Seed: seed, TickRate: flagTPS})
	logger.Info("patrol started", "seed", seed,
		"grid", fmt.Sprintf("%dx%d", cfg.Grid.Width, cfg.Grid.Height),
		"entities", len(g.Entities()))

	for turn := 0; turn < flagTurns && !g.State().GameOver && ctx.Err() == nil; turn++ {
		if _, err := g.Advance(); err != nil {
			break
		}
		if flagDelay > 0 {
			select {
			case <-ctx.Done():
			case <-time.After(flagDelay):
			}
		}
	}

	fmt.Println(seawar.RenderText(g.Entities(), g.Grid()))
	printSummary(g)

	if flagRecord {
		store := openStore()
		if store != nil {
			if err := tui.RecordGame(store, g); err != nil {
				logger.Error("could not record run", "error", err)
			}
			store.Close()
		}
	}

	if err := g.Fault(); err != nil {
		logger.Error("simulation fault", "turn", g.Turn(), "error", err)
		stop()
		os.Exit(1)
	}
}

// parseKinds reads a comma separated list of entity kinds. An empty list
// selects every kind and returns nil.
func parseKinds(list string) (map[sim.Kind]bool, error) {
	var kinds map[sim.Kind]bool
	for _, name := range strings.Split(list, ",") {
		name = strings.TrimSpace(name)
		if name == "" {
			continue
		}
		k, err := sim.ParseKind(name)
		if err != nil {
			return nil, err
		}
		if kinds == nil {
			kinds = make(map[sim.Kind]bool)
		}
		kinds[k] = true
	}
	return kinds, nil
}

// logPhase logs one enemy phase. Per-event lines are limited to kinds when
// it is non-nil.
func logPhase(logger *log.Logger, p seawar.Phase, kinds map[sim.Kind]bool) {
	res := p.Result
	for _, ev := range res.Events {
		if kinds != nil && !kinds[ev.EntityKind] {
			continue
		}
		logger.Debug("event",
			"turn", p.Turn,
			"pass", ev.Pass,
			"kind", ev.Kind,
			"entity", fmt.Sprintf("%s#%d", ev.EntityKind, ev.Entity),
			"from", ev.From,
			"to", ev.To,
		)
	}

	destroyed := make([]string, 0, len(res.Destroyed))
	for _, d := range res.Destroyed {
		destroyed = append(destroyed, fmt.Sprintf("%s#%d", d.Kind, d.ID))
	}
	logger.Info("phase",
		"turn", p.Turn,
		"passes", res.Passes,
		"stalemate", res.Stalemate,
		"destroyed", destroyed,
	)
	if p.GameOver {
		logger.Info("game over", "turn", p.Turn, "reason", p.Reason)
	}
}

func printSummary(g *seawar.Game) {
	snap := g.Snapshot()
	fmt.Printf("Turns %d  Score %d  Status %s\n", snap.Turn, snap.Score, snap.Status)
	fmt.Printf("Afloat: %d ships, %d monsters, %d mines\n", snap.Ships, snap.Monsters, snap.Mines)
	fmt.Printf("Sunk %d ships, %d monsters; %d mines cleared; %d reinforcements\n",
		snap.Stats.ShipsSunk, snap.Stats.MonstersSunk, snap.Stats.MinesCleared, snap.Stats.Reinforcements)
	if reason := g.State().Reason; reason != "" {
		fmt.Printf("Ended: %s\n", reason)
	}
}
