// seawar is a turn-based submarine patrol played in the terminal.
//
// Usage:
//
//	seawar list              - List game modes
//	seawar play [mode]       - Play a mode (default: seawar)
//	seawar menu              - Pick modes from a menu, browse the patrol log
//	seawar sim               - Run the enemy fleet headless and print the sea
//	seawar scores [mode]     - Show high scores and recent patrols
//	seawar serve             - Start the SSH server for remote play
//
// Global flags:
//
//	--tps <rate>           - Platform ticks per second (default: 30)
//	--seed <value>         - RNG seed for reproducible patrols
//	--db <path|dsn>        - SQLite path or postgres:// DSN (default: ~/.seawar/scores.db)
//	--config <path>        - Custom sea war YAML config
//	--difficulty <preset>  - easy, normal, hard or fixed
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/seawar/internal/storage"
)

var (
	// Global flags
	flagTPS        int
	flagSeed       int64
	flagDBPath     string
	flagConfig     string
	flagDifficulty string
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "seawar",
	Short: "Sea War - a submarine patrol in your terminal",
	Long: `Sea War puts you in command of a submarine on a grid sea full of
islands, mines, enemy ships and sea monsters. Every order you give is one
turn; after it the enemy fleet moves and collides by the rules of the sea.

Available commands:
  list     - Show game modes
  play     - Start a patrol
  menu     - Interactive mode picker and patrol log
  sim      - Headless run of the enemy fleet
  scores   - High scores and patrol history
  serve    - SSH server for remote play

Examples:
  seawar play
  seawar play --difficulty hard
  seawar sim --turns 200 --seed 42
  seawar serve --ssh :2222 --ws :8080`,
	SilenceUsage: true,
}

func init() {
	rootCmd.PersistentFlags().IntVar(&flagTPS, "tps", 30, "Platform ticks per second")
	rootCmd.PersistentFlags().Int64Var(&flagSeed, "seed", 0, "RNG seed (0 = random based on time)")
	rootCmd.PersistentFlags().StringVar(&flagDBPath, "db", storage.DefaultPath, "SQLite path or postgres:// DSN")
	rootCmd.PersistentFlags().StringVar(&flagConfig, "config", "", "Path to custom sea war config YAML")
	rootCmd.PersistentFlags().StringVar(&flagDifficulty, "difficulty", "", "Difficulty preset: easy, normal, hard, fixed")

	rootCmd.AddCommand(listCmd)
	rootCmd.AddCommand(playCmd)
	rootCmd.AddCommand(menuCmd)
	rootCmd.AddCommand(simCmd)
	rootCmd.AddCommand(scoresCmd)
	rootCmd.AddCommand(serveCmd)
}
