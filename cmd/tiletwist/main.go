// tiletwist is a picture puzzle for the terminal: rotate and swap scrambled
// tiles until the picture is restored.
//
// Usage:
//
//	tiletwist                 - Start the stage picker
//	tiletwist play <stage>    - Play one stage directly
//	tiletwist stages list     - List stages and progress
//	tiletwist stages add      - Add a custom stage from a picture file
//	tiletwist patterns        - List procedural pictures
//	tiletwist scores [stage]  - Show best times
//	tiletwist serve           - Start SSH server for remote play
//
// Global flags:
//
//	--fps <rate>        - Set tick rate (default: from game.yaml)
//	--seed <value>      - Set RNG seed for a reproducible scramble
//	--db <path>         - Set database path (default: ~/.tiletwist/tiletwist.db)
//	--stages <path>     - Use a custom stage catalog
//	--config <path>     - Use a custom game.yaml
//	--log-level <level> - debug, info, warn or error
//
// TILETWIST_DB, TILETWIST_STAGES and TILETWIST_CONFIG (also read from .env)
// fill in the matching flags when they are not given.
package main

import (
	"fmt"
	"os"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	// Register procedural pictures
	_ "github.com/vovakirdan/tiletwist/internal/patterns"
)

var (
	// Global flags
	flagFPS        int
	flagSeed       int64
	flagDBPath     string
	flagStagesPath string
	flagConfigPath string
	flagLogLevel   string
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "tiletwist",
	Short: "Tile Twist - restore scrambled pictures in your terminal",
	Long: `Tile Twist cuts a picture into square tiles, turns and shuffles them,
and asks you to put it back together against the clock.

Available commands:
  play      - Play a specific stage directly
  stages    - List, add and remove stages
  patterns  - Show the procedural pictures stages can use
  scores    - View best times
  serve     - Start SSH server for remote play

Examples:
  tiletwist
  tiletwist play e01
  tiletwist stages add --name "My cat" --source ./cat.jpg --both
  tiletwist serve --ssh :2222
  tiletwist scores h03`,
	SilenceUsage:      true,
	PersistentPreRunE: loadEnv,
	RunE:              runMenu,
}

func init() {
	rootCmd.PersistentFlags().IntVar(&flagFPS, "fps", 0, "Tick rate (0 = from game config)")
	rootCmd.PersistentFlags().Int64Var(&flagSeed, "seed", 0, "RNG seed (0 = random based on time)")
	rootCmd.PersistentFlags().StringVar(&flagDBPath, "db", "~/.tiletwist/tiletwist.db", "Path to progress database")
	rootCmd.PersistentFlags().StringVar(&flagStagesPath, "stages", "", "Path to custom stage catalog YAML")
	rootCmd.PersistentFlags().StringVar(&flagConfigPath, "config", "", "Path to custom game config YAML")
	rootCmd.PersistentFlags().StringVar(&flagLogLevel, "log-level", "info", "Log level: debug, info, warn, error")

	rootCmd.AddCommand(playCmd)
	rootCmd.AddCommand(stagesCmd)
	rootCmd.AddCommand(patternsCmd)
	rootCmd.AddCommand(scoresCmd)
	rootCmd.AddCommand(serveCmd)
}

// loadEnv reads .env and lets environment variables stand in for flags the
// user did not set.
func loadEnv(cmd *cobra.Command, _ []string) error {
	if err := godotenv.Load(); err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("cannot read .env: %w", err)
	}

	flags := cmd.Flags()
	for name, env := range map[string]string{
		"db":     "TILETWIST_DB",
		"stages": "TILETWIST_STAGES",
		"config": "TILETWIST_CONFIG",
	} {
		if flags.Changed(name) {
			continue
		}
		if v, ok := os.LookupEnv(env); ok && v != "" {
			if err := flags.Set(name, v); err != nil {
				return fmt.Errorf("%s: %w", env, err)
			}
		}
	}
	return nil
}
