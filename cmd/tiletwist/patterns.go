package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/tiletwist/internal/registry"
	"github.com/vovakirdan/tiletwist/internal/stages"
)

var patternsCmd = &cobra.Command{
	Use:   "patterns",
	Short: "List procedural pictures",
	Long:  `Shows the built-in pictures a stage can use as "pattern:<name>".`,
	Args:  cobra.NoArgs,
	Run:   runPatterns,
}

func runPatterns(_ *cobra.Command, _ []string) {
	patterns := registry.List()

	if len(patterns) == 0 {
		fmt.Println("No patterns available.")
		return
	}

	fmt.Println("Available patterns:")
	fmt.Println()

	// Calculate column widths
	maxLen := len("Source")
	for _, p := range patterns {
		maxLen = max(maxLen, len(stages.PatternPrefix+p.Name))
	}

	fmt.Printf("  %-*s  %s\n", maxLen, "Source", "Title")
	fmt.Printf("  %-*s  %s\n", maxLen, "------", "-----")

	for _, p := range patterns {
		fmt.Printf("  %-*s  %s\n", maxLen, stages.PatternPrefix+p.Name, p.Title)
	}

	fmt.Println()
	fmt.Println("Use one with 'tiletwist stages add --source pattern:<name>'.")
}
