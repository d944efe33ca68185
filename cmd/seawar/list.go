package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/seawar/internal/registry"
)

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "List game modes",
	Long:  `Shows every registered game mode.`,
	Run:   runList,
}

func runList(_ *cobra.Command, _ []string) {
	modes := registry.List()

	if len(modes) == 0 {
		fmt.Println("No modes available.")
		return
	}

	fmt.Println("Game modes:")
	fmt.Println()

	idw, titlew := len("ID"), len("Title")
	for _, m := range modes {
		idw = max(idw, len(m.ID))
		titlew = max(titlew, len(m.Title))
	}

	fmt.Printf("  %-*s  %-*s  %s\n", idw, "ID", titlew, "Title", "Description")
	fmt.Printf("  %-*s  %-*s  %s\n", idw, "--", titlew, "-----", "-----------")
	for _, m := range modes {
		fmt.Printf("  %-*s  %-*s  %s\n", idw, m.ID, titlew, m.Title, m.Description)
	}

	fmt.Println()
	fmt.Println("Run 'seawar play <id>' to start.")
}
