package main

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/tiletwist/internal/config"
	"github.com/vovakirdan/tiletwist/internal/game"
	"github.com/vovakirdan/tiletwist/internal/progress"
	"github.com/vovakirdan/tiletwist/internal/registry"
	"github.com/vovakirdan/tiletwist/internal/stages"
	"github.com/vovakirdan/tiletwist/internal/storage"
)

var (
	flagListMode string
	flagAddName  string
	flagAddSrc   string
	flagAddMode  string
	flagAddBoth  bool
)

var stagesCmd = &cobra.Command{
	Use:   "stages",
	Short: "List, add and remove stages",
}

var stagesListCmd = &cobra.Command{
	Use:   "list",
	Short: "List all stages with your progress",
	Long: `Shows every stage in the catalog, including custom ones (marked *).

Examples:
  tiletwist stages list
  tiletwist stages list --mode hard`,
	Args: cobra.NoArgs,
	RunE: runStagesList,
}

var stagesAddCmd = &cobra.Command{
	Use:   "add",
	Short: "Add a custom stage from a picture file or pattern",
	Long: `Adds a stage that uses your own picture. The picture is checked now
and referenced by absolute path, so keep the file where it is.

Examples:
  tiletwist stages add --name "My cat" --source ./cat.jpg
  tiletwist stages add --name "My cat" --source ./cat.jpg --mode hard
  tiletwist stages add --name Swirl --source pattern:rings --both`,
	Args: cobra.NoArgs,
	RunE: runStagesAdd,
}

var stagesRemoveCmd = &cobra.Command{
	Use:   "remove <id>",
	Short: "Remove a custom stage",
	Args:  cobra.ExactArgs(1),
	RunE:  runStagesRemove,
}

func init() {
	stagesListCmd.Flags().StringVar(&flagListMode, "mode", "", "Only list stages of this mode (easy, hard)")

	stagesAddCmd.Flags().StringVar(&flagAddName, "name", "", "Stage name")
	stagesAddCmd.Flags().StringVar(&flagAddSrc, "source", "", "Picture file, or pattern:<name>")
	stagesAddCmd.Flags().StringVar(&flagAddMode, "mode", string(config.ModeEasy), "Mode: easy or hard")
	stagesAddCmd.Flags().BoolVar(&flagAddBoth, "both", false, "Add the stage in every mode")
	//nolint:errcheck // Flags are defined above
	stagesAddCmd.MarkFlagRequired("name")
	//nolint:errcheck // Flags are defined above
	stagesAddCmd.MarkFlagRequired("source")

	stagesCmd.AddCommand(stagesListCmd, stagesAddCmd, stagesRemoveCmd)
}

func runStagesList(_ *cobra.Command, _ []string) error {
	a, err := setup(false)
	if err != nil {
		return err
	}
	defer a.close()

	modes := config.Modes()
	if flagListMode != "" {
		m, err := config.ParseMode(flagListMode)
		if err != nil {
			return err
		}
		modes = []config.Mode{m}
	}

	var tracker *progress.Tracker
	if a.store != nil {
		tracker = progress.NewTracker(a.store)
	}

	for _, m := range modes {
		list := a.catalog.ByMode(m)
		fmt.Printf("%s stages\n", m.Title())
		if tracker != nil {
			if sum, err := tracker.ModeProgress(list); err == nil {
				fmt.Printf("Completed %d/%d (%d%%)\n", sum.Completed, sum.Total, sum.Percent())
			}
		}
		fmt.Println()

		if len(list) == 0 {
			fmt.Println("  (none)")
			fmt.Println()
			continue
		}

		maxIDLen := 2 // "ID" header
		for _, s := range list {
			maxIDLen = max(maxIDLen, len(s.ID))
		}

		fmt.Printf("  %-*s  %-4s  %-6s  %s\n", maxIDLen, "ID", "Done", "Best", "Name")
		fmt.Printf("  %-*s  %-4s  %-6s  %s\n", maxIDLen, "--", "----", "----", "----")
		for _, s := range list {
			done, best := "", "-"
			if tracker != nil {
				if ok, _ := tracker.Completed(s); ok {
					done = "yes"
				}
				if d, ok, _ := tracker.BestTime(s); ok {
					best = game.FormatDuration(d)
				}
			}
			name := s.Title()
			if s.Custom {
				name += " *"
			}
			fmt.Printf("  %-*s  %-4s  %-6s  %s\n", maxIDLen, s.ID, done, best, name)
		}
		fmt.Println()
	}

	fmt.Println("Run 'tiletwist play <id>' to play a stage.")
	return nil
}

func runStagesAdd(_ *cobra.Command, _ []string) error {
	name := strings.TrimSpace(flagAddName)
	if name == "" {
		return fmt.Errorf("--name must not be empty")
	}

	modes := config.Modes()
	if !flagAddBoth {
		m, err := config.ParseMode(flagAddMode)
		if err != nil {
			return err
		}
		modes = []config.Mode{m}
	}

	source := flagAddSrc
	if strings.HasPrefix(source, stages.PatternPrefix) {
		if p := strings.TrimPrefix(source, stages.PatternPrefix); !registry.Exists(p) {
			return fmt.Errorf("unknown pattern %q (run 'tiletwist patterns')", p)
		}
	} else {
		abs, err := filepath.Abs(source)
		if err != nil {
			return fmt.Errorf("cannot resolve %s: %w", source, err)
		}
		source = abs
	}

	a, err := setup(true)
	if err != nil {
		return err
	}
	defer a.close()

	// Check every stage before storing any of them.
	var add []stages.Stage
	for _, m := range modes {
		s := stages.New(stages.CustomID(name, m), name, m, source, a.cfg)
		if _, exists := a.catalog.ByID(s.ID); exists {
			return fmt.Errorf("stage %q already exists", s.ID)
		}
		if _, err := s.Picture(); err != nil {
			return err
		}
		add = append(add, s)
	}

	for _, s := range add {
		err := a.store.AddCustomStage(storage.CustomStage{
			ID:     s.ID,
			Name:   s.Name,
			Mode:   string(s.Mode),
			Source: s.Source,
		})
		if err != nil {
			return err
		}
		fmt.Printf("Added %s (%s, %dx%d)\n", s.ID, s.Mode.Title(), s.Grid, s.Grid)
	}
	return nil
}

func runStagesRemove(_ *cobra.Command, args []string) error {
	a, err := setup(true)
	if err != nil {
		return err
	}
	defer a.close()

	removed, err := a.store.DeleteCustomStage(args[0])
	if err != nil {
		return err
	}
	if !removed {
		return fmt.Errorf("no custom stage %q (built-in stages cannot be removed)", args[0])
	}
	fmt.Printf("Removed %s\n", args[0])
	return nil
}
