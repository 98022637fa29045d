package main

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/tiletwist/internal/config"
	"github.com/vovakirdan/tiletwist/internal/platform/tui"
	"github.com/vovakirdan/tiletwist/internal/stages"
)

var (
	flagSSHAddr     string
	flagHostKey     string
	flagIdleTimeout int
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the Tile Twist SSH server",
	Long: `Start an SSH server that allows users to connect and play.

Each SSH connection gets its own session with the stage picker.
Progress and personal bests are kept per SSH user name; the best-times
board is shared by everyone on the server.

Host key handling:
  - If --host-key is provided, uses that key file
  - Otherwise, auto-generates a key at ~/.tiletwist/host_key

Examples:
  tiletwist serve                           # Listen on :23234 with auto-generated key
  tiletwist serve --ssh :2222               # Listen on port 2222
  tiletwist serve --host-key ./my_host_key  # Use specific host key
  tiletwist serve --db ./tiletwist.db       # Use specific database

Users can connect with:
  ssh localhost -p 23234`,
	Args: cobra.NoArgs,
	RunE: runServe,
}

func init() {
	serveCmd.Flags().StringVar(&flagSSHAddr, "ssh", ":23234", "SSH server address (host:port)")
	serveCmd.Flags().StringVar(&flagHostKey, "host-key", "", "Path to host key file (auto-generated if not specified)")
	serveCmd.Flags().IntVar(&flagIdleTimeout, "idle-timeout", 30, "Idle timeout in minutes before disconnecting")
}

func runServe(_ *cobra.Command, _ []string) error {
	gameCfg, err := config.Load(flagConfigPath)
	if err != nil {
		return err
	}
	if flagFPS > 0 {
		gameCfg.TickRate = flagFPS
	}
	if err := gameCfg.Validate(); err != nil {
		return err
	}

	catalog, err := stages.Load(flagStagesPath, gameCfg)
	if err != nil {
		return err
	}

	cfg := tui.SSHServerConfig{
		Address:     flagSSHAddr,
		HostKeyPath: flagHostKey,
		DBPath:      flagDBPath,
		IdleTimeout: time.Duration(flagIdleTimeout) * time.Minute,
		Seed:        flagSeed,
	}

	server, err := tui.NewSSHServer(cfg, gameCfg, catalog)
	if err != nil {
		return fmt.Errorf("error creating server: %w", err)
	}

	fmt.Printf("Starting Tile Twist SSH server on %s\n", cfg.Address)
	fmt.Println("Press Ctrl+C to stop")

	return server.ListenAndServe()
}
