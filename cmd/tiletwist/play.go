package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/tiletwist/internal/platform/tui"
)

var playCmd = &cobra.Command{
	Use:   "play [stage]",
	Short: "Play a stage",
	Long: `Start playing the specified stage, or open the stage picker when no
stage is given.

Controls:
  Arrows/WASD/HJKL - Move the cursor
  Space/R          - Rotate the tile under the cursor
  Enter            - Pick a tile, Enter on another tile swaps them
  Mouse            - Click to rotate, drag onto another tile to swap
  I                - Show the solved picture for a moment
  ?                - How to play
  N                - New scramble
  P                - Pause
  Esc/B            - Leave the stage
  Q/Ctrl+C         - Quit
  Ctrl+S           - Save a text screenshot

Examples:
  tiletwist play
  tiletwist play e01
  tiletwist play h03 --seed 42
  tiletwist play custom-my-cat-easy`,
	Args: cobra.MaximumNArgs(1),
	RunE: runPlay,
}

func runPlay(cmd *cobra.Command, args []string) error {
	if len(args) == 0 {
		return runMenu(cmd, args)
	}

	a, err := setup(false)
	if err != nil {
		return err
	}
	defer a.close()

	stage, ok := a.catalog.ByID(args[0])
	if !ok {
		return fmt.Errorf("unknown stage %q (run 'tiletwist stages list')", args[0])
	}

	a.useFileLog()
	return tui.RunStage(a.env(), stage, a.runtime())
}

func runMenu(_ *cobra.Command, _ []string) error {
	a, err := setup(false)
	if err != nil {
		return err
	}
	defer a.close()

	a.useFileLog()
	return tui.Run(a.env(), a.runtime())
}
