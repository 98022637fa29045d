package tui

import (
	"fmt"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/vovakirdan/tiletwist/internal/config"
	"github.com/vovakirdan/tiletwist/internal/core"
	"github.com/vovakirdan/tiletwist/internal/progress"
	"github.com/vovakirdan/tiletwist/internal/stages"
)

type screen int

const (
	screenHome screen = iota
	screenMap
	screenGame
	screenScores
)

// SessionModel manages the full flow: home -> stage map -> stage -> map.
// It is the top-level model for both local play and SSH sessions.
type SessionModel struct {
	env      Env
	config   core.RuntimeConfig
	screen   screen
	mode     config.Mode
	gen      int
	menu     MenuModel
	stageMap MapModel
	game     *GameModel
	scores   ScoreboardModel
	quitting bool
}

// NewSessionModel creates a new session model.
func NewSessionModel(env Env, cfg core.RuntimeConfig) SessionModel {
	// Every screen must share one tracker.
	if env.Tracker == nil {
		env.Tracker = progress.NewTracker(progress.NewMemoryKV())
	}
	return SessionModel{
		env:    env,
		config: cfg,
		menu:   NewMenuModel(env, cfg),
	}
}

// Init initializes the session.
func (m SessionModel) Init() tea.Cmd {
	return m.menu.Init()
}

// Update handles messages for the session.
func (m SessionModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	// Handle window resize globally
	if wsm, ok := msg.(tea.WindowSizeMsg); ok {
		m.config.ScreenW = wsm.Width
		m.config.ScreenH = wsm.Height
	}

	switch m.screen {
	case screenMap:
		return m.updateMap(msg)
	case screenGame:
		return m.updateGame(msg)
	case screenScores:
		return m.updateScores(msg)
	default:
		return m.updateHome(msg)
	}
}

func (m SessionModel) updateHome(msg tea.Msg) (tea.Model, tea.Cmd) {
	next, cmd := m.menu.Update(msg)
	if mm, ok := next.(MenuModel); ok {
		m.menu = mm
	}

	switch {
	case m.menu.IsQuitting():
		m.quitting = true
		return m, tea.Quit

	case m.menu.WantsScoreboard():
		m.scores = NewScoreboardModel(m.env, m.config.ScreenW, m.config.ScreenH)
		m.screen = screenScores
		return m, m.scores.Init()

	case m.menu.Selected() != nil:
		m.mode = m.menu.Selected().Mode
		return m.openMap()
	}

	return m, cmd
}

func (m SessionModel) updateMap(msg tea.Msg) (tea.Model, tea.Cmd) {
	next, cmd := m.stageMap.Update(msg)
	if mm, ok := next.(MapModel); ok {
		m.stageMap = mm
	}

	switch {
	case m.stageMap.IsQuitting():
		m.quitting = true
		return m, tea.Quit

	case m.stageMap.WantsBack():
		return m.openHome()

	case m.stageMap.Selected() != nil:
		return m.openStage(*m.stageMap.Selected())
	}

	return m, cmd
}

func (m SessionModel) updateGame(msg tea.Msg) (tea.Model, tea.Cmd) {
	next, cmd := m.game.Update(msg)
	if gm, ok := next.(GameModel); ok {
		m.game = &gm
	}

	switch {
	case m.game.IsQuitting():
		m.quitting = true
		return m, tea.Quit

	case m.game.BackToMap():
		m.game = nil
		// Retire the stage's tick chain.
		m.gen++
		return m.openMap()
	}

	return m, cmd
}

func (m SessionModel) updateScores(msg tea.Msg) (tea.Model, tea.Cmd) {
	next, cmd := m.scores.Update(msg)
	if sm, ok := next.(ScoreboardModel); ok {
		m.scores = sm
	}

	switch {
	case m.scores.IsQuitting():
		m.quitting = true
		return m, tea.Quit

	case m.scores.IsGoingBack():
		return m.openHome()
	}

	return m, cmd
}

func (m SessionModel) openHome() (tea.Model, tea.Cmd) {
	m.menu = NewMenuModel(m.env, m.config)
	m.screen = screenHome
	return m, m.menu.Init()
}

func (m SessionModel) openMap() (tea.Model, tea.Cmd) {
	m.stageMap = NewMapModel(m.env, m.mode, m.config.ScreenW, m.config.ScreenH)
	m.screen = screenMap
	return m, m.stageMap.Init()
}

func (m SessionModel) openStage(s stages.Stage) (tea.Model, tea.Cmd) {
	m.gen++
	cfg := m.config
	gm := NewGameModel(m.env, s, cfg, m.gen)
	m.game = &gm
	m.screen = screenGame
	m.env.logger().Info("stage started", "stage", s.ID, "player", m.env.Player)
	return m, m.game.Init()
}

// View renders the current screen.
func (m SessionModel) View() string {
	if m.quitting {
		return ""
	}

	switch m.screen {
	case screenMap:
		return m.stageMap.View()
	case screenGame:
		if m.game != nil {
			return m.game.View()
		}
	case screenScores:
		return m.scores.View()
	}
	return m.menu.View()
}

// Run starts the interactive session on the local terminal.
func Run(env Env, cfg core.RuntimeConfig) error {
	p := tea.NewProgram(NewSessionModel(env, cfg), tea.WithAltScreen(), tea.WithMouseCellMotion())
	if _, err := p.Run(); err != nil {
		return fmt.Errorf("error running session: %w", err)
	}
	return nil
}

// stageOnly plays a single stage; leaving it ends the program.
type stageOnly struct {
	GameModel
}

func (m stageOnly) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	next, cmd := m.GameModel.Update(msg)
	if gm, ok := next.(GameModel); ok {
		m.GameModel = gm
	}
	if m.BackToMap() {
		return m, tea.Quit
	}
	return m, cmd
}

// RunStage plays one stage directly, skipping the menus.
func RunStage(env Env, stage stages.Stage, cfg core.RuntimeConfig) error {
	if cfg.Seed == 0 {
		cfg.Seed = time.Now().UnixNano()
	}
	m := stageOnly{GameModel: NewGameModel(env, stage, cfg, 1)}
	p := tea.NewProgram(m, tea.WithAltScreen(), tea.WithMouseCellMotion())
	if _, err := p.Run(); err != nil {
		return fmt.Errorf("error running stage: %w", err)
	}
	return nil
}
