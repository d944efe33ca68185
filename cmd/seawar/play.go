package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/seawar/internal/platform/tui"
	"github.com/vovakirdan/seawar/internal/registry"
)

var playCmd = &cobra.Command{
	Use:   "play [mode]",
	Short: "Start a patrol",
	Long: `Start the given mode, "seawar" by default.

Controls:
  q w e / a d / z x c  - Steer in eight directions (arrows and hjkl too)
  f / Space            - Arm a torpedo; the next direction fires it
  g / Tab              - Full ahead; the next direction moves the maximum distance
  s / .                - Hold position for a turn
  p                    - Pause
  r                    - New patrol (after game over)
  Esc / b              - Leave (when paused or over)
  Q / Ctrl+C           - Quit

Difficulty options:
  easy   - More torpedoes and a longer sonar, slow reinforcements
  normal - Reinforcements start at 30%
  hard   - Fewer torpedoes, more mines, reinforcements start at 70%
  fixed  - No reinforcements

Examples:
  seawar play
  seawar play seawar_watch
  seawar play --difficulty hard
  seawar play --config ./my-sea.yaml --seed 7`,
	Args: cobra.MaximumNArgs(1),
	Run:  runPlay,
}

func runPlay(_ *cobra.Command, args []string) {
	mode := "seawar"
	if len(args) == 1 {
		mode = args[0]
	}

	if !registry.Exists(mode) {
		fmt.Fprintf(os.Stderr, "Error: unknown mode %q\n", mode)
		fmt.Fprintln(os.Stderr, "Run 'seawar list' to see available modes.")
		os.Exit(1)
	}

	if _, err := loadConfig(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	game, err := registry.Create(mode)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error creating game: %v\n", err)
		os.Exit(1)
	}

	store := openStore()
	runErr := tui.Run(game, store, terminalConfig(), nil)

	if store != nil {
		store.Close()
	}

	if runErr != nil {
		fmt.Fprintf(os.Stderr, "Error running game: %v\n", runErr)
		os.Exit(1)
	}
}
