package tui

import (
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/log"

	"github.com/vovakirdan/tiletwist/internal/config"
	"github.com/vovakirdan/tiletwist/internal/progress"
	"github.com/vovakirdan/tiletwist/internal/stages"
	"github.com/vovakirdan/tiletwist/internal/storage"
)

// Env bundles what every screen needs. Store may be nil when the game runs
// without a database; progress then lives in memory.
type Env struct {
	Config   config.Config
	Catalog  *stages.Catalog
	Tracker  *progress.Tracker
	Store    *storage.Store
	Player   string
	Logger   *log.Logger
	Renderer *lipgloss.Renderer
}

func (e Env) logger() *log.Logger {
	if e.Logger != nil {
		return e.Logger
	}
	return log.Default()
}

func (e Env) renderer() *lipgloss.Renderer {
	if e.Renderer != nil {
		return e.Renderer
	}
	return lipgloss.DefaultRenderer()
}

func (e Env) tracker() *progress.Tracker {
	if e.Tracker != nil {
		return e.Tracker
	}
	return progress.NewTracker(progress.NewMemoryKV())
}
