package main

import (
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/charmbracelet/log"
	"golang.org/x/term"

	"github.com/vovakirdan/tiletwist/internal/config"
	"github.com/vovakirdan/tiletwist/internal/core"
	"github.com/vovakirdan/tiletwist/internal/platform/tui"
	"github.com/vovakirdan/tiletwist/internal/progress"
	"github.com/vovakirdan/tiletwist/internal/stages"
	"github.com/vovakirdan/tiletwist/internal/storage"
)

// app is everything a command needs, loaded from flags.
type app struct {
	cfg     config.Config
	catalog *stages.Catalog
	store   *storage.Store // nil when the database cannot be opened
	logger  *log.Logger
	logFile *os.File
}

// setup loads the configuration and stage catalog and opens the database.
// With requireDB a database failure is an error; otherwise the game runs
// with progress kept in memory.
func setup(requireDB bool) (*app, error) {
	cfg, err := config.Load(flagConfigPath)
	if err != nil {
		return nil, err
	}
	if flagFPS > 0 {
		cfg.TickRate = flagFPS
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	catalog, err := stages.Load(flagStagesPath, cfg)
	if err != nil {
		return nil, err
	}

	a := &app{cfg: cfg, catalog: catalog}

	store, err := storage.Open(flagDBPath)
	if err != nil {
		if requireDB {
			return nil, fmt.Errorf("cannot open database: %w", err)
		}
		fmt.Fprintf(os.Stderr, "Warning: could not open progress database: %v\n", err)
	} else {
		a.store = store
		if err := store.MergeCustomStages(catalog, cfg); err != nil {
			fmt.Fprintf(os.Stderr, "Warning: %v\n", err)
		}
	}

	return a, nil
}

// useFileLog sends logs to ~/.tiletwist/tiletwist.log so they do not draw
// over the full-screen UI.
func (a *app) useFileLog() {
	level, err := log.ParseLevel(flagLogLevel)
	if err != nil {
		level = log.InfoLevel
	}

	// Without a log file, logs are dropped.
	a.logger = log.New(io.Discard)
	path := config.UserPath("tiletwist.log")
	if path == "" {
		return
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return
	}
	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o600)
	if err != nil {
		return
	}
	a.logFile = f
	a.logger = log.NewWithOptions(f, log.Options{Level: level, ReportTimestamp: true})
}

// env builds the TUI environment for the local player.
func (a *app) env() tui.Env {
	env := tui.Env{
		Config:  a.cfg,
		Catalog: a.catalog,
		Logger:  a.logger,
	}
	if a.store != nil {
		env.Store = a.store
		env.Tracker = progress.NewTracker(a.store)
	}
	return env
}

// runtime reads the terminal size for the first frame.
func (a *app) runtime() core.RuntimeConfig {
	width, height := 80, 24 // Defaults
	if w, h, err := term.GetSize(int(os.Stdout.Fd())); err == nil {
		width = w
		height = h
	}
	return core.RuntimeConfig{
		ScreenW:  width,
		ScreenH:  height,
		TickRate: a.cfg.TickRate,
		Seed:     flagSeed,
	}
}

func (a *app) close() {
	if a.store != nil {
		a.store.Close()
	}
	if a.logFile != nil {
		a.logFile.Close()
	}
}
