package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/seawar/internal/registry"
	"github.com/vovakirdan/seawar/internal/storage"
)

var flagScoreLimit int

var scoresCmd = &cobra.Command{
	Use:   "scores [mode]",
	Short: "Show high scores and recent patrols",
	Long: `Display the top scores, the patrol totals and the most recent patrols
of a mode ("seawar" by default).

Examples:
  seawar scores
  seawar scores seawar_watch --limit 20`,
	Args: cobra.MaximumNArgs(1),
	Run:  runScores,
}

func init() {
	scoresCmd.Flags().IntVar(&flagScoreLimit, "limit", 10, "Rows per table")
}

func runScores(_ *cobra.Command, args []string) {
	mode := "seawar"
	if len(args) == 1 {
		mode = args[0]
	}

	if !registry.Exists(mode) {
		fmt.Fprintf(os.Stderr, "Error: unknown mode %q\n", mode)
		fmt.Fprintln(os.Stderr, "Run 'seawar list' to see available modes.")
		os.Exit(1)
	}

	game, err := registry.Create(mode)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error creating game: %v\n", err)
		os.Exit(1)
	}

	store, err := storage.Open(flagDBPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error opening scores database: %v\n", err)
		os.Exit(1)
	}
	defer store.Close()

	if err := printScores(store, mode, game.Title()); err != nil {
		store.Close()
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func printScores(store storage.Store, mode, title string) error {
	scores, err := store.TopScores(mode, flagScoreLimit)
	if err != nil {
		return fmt.Errorf("retrieving scores: %w", err)
	}
	stats, err := store.PatrolStats(mode)
	if err != nil {
		return fmt.Errorf("retrieving patrol totals: %w", err)
	}
	patrols, err := store.RecentPatrols(mode, flagScoreLimit)
	if err != nil {
		return fmt.Errorf("retrieving patrols: %w", err)
	}

	fmt.Printf("High Scores - %s\n", title)
	fmt.Println()

	if len(scores) == 0 && len(patrols) == 0 {
		fmt.Println("No patrols logged yet.")
		fmt.Println()
		fmt.Printf("Run 'seawar play %s' to put to sea!\n", mode)
		return nil
	}

	fmt.Printf("  %-4s  %-8s  %s\n", "Rank", "Score", "Date")
	fmt.Printf("  %-4s  %-8s  %s\n", "----", "-----", "----")
	for i, e := range scores {
		fmt.Printf("  %-4d  %-8d  %s\n", i+1, e.Score, e.CreatedAt.Local().Format("2006-01-02 15:04"))
	}

	fmt.Println()
	fmt.Printf("Patrols %d, victories %d, best %d, %d turns at sea\n",
		stats.Patrols, stats.Victories, stats.BestScore, stats.TotalTurns)
	fmt.Printf("Sunk %d ships and %d monsters, cleared %d mines\n", stats.ShipsSunk, stats.MonstersSunk, stats.MinesCleared)

	if len(patrols) == 0 {
		return nil
	}

	fmt.Println()
	fmt.Println("Recent patrols:")
	fmt.Printf("  %-16s  %-6s  %-5s  %-5s  %-5s  %s\n", "Date", "Score", "Turns", "Sunk", "Torps", "Result")
	for _, p := range patrols {
		result := p.EndReason
		if p.Victory {
			result = "Victory"
		}
		fmt.Printf("  %-16s  %-6d  %-5d  %-5d  %-5d  %s\n",
			p.CreatedAt.Local().Format("2006-01-02 15:04"),
			p.Score, p.Turns, p.ShipsSunk+p.MonstersSunk, p.Torpedoes, result)
	}
	return nil
}
