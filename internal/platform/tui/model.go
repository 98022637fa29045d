package tui

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/vovakirdan/tiletwist/internal/config"
	"github.com/vovakirdan/tiletwist/internal/core"
	"github.com/vovakirdan/tiletwist/internal/game"
	"github.com/vovakirdan/tiletwist/internal/stages"
	"github.com/vovakirdan/tiletwist/internal/storage"
)

// GameModel is the Bubble Tea model for playing one stage.
type GameModel struct {
	env        Env
	game       *game.Game
	screen     *core.Screen
	config     core.RuntimeConfig
	inputFrame core.InputFrame
	pointer    *PointerTracker
	keyMapper  *KeyMapper
	gameState  core.GameState
	gen        int
	quitting   bool
	backToMap  bool
}

// NewGameModel creates a model for stage. gen tags its tick chain.
func NewGameModel(env Env, stage stages.Stage, cfg core.RuntimeConfig, gen int) GameModel {
	// Use time-based seed if not specified
	if cfg.Seed == 0 {
		cfg.Seed = time.Now().UnixNano()
	}
	if cfg.TickRate <= 0 {
		cfg.TickRate = env.Config.TickRate
	}

	gcfg := env.Config
	if gcfg.TickRate == 0 {
		gcfg = config.Default()
	}
	gcfg.TickRate = cfg.TickRate

	logger := env.logger()
	g := game.New(stage, game.Options{
		Config:  gcfg,
		Tracker: env.tracker(),
		Logger:  logger,
		OnFinish: func(r game.Result) {
			if env.Store == nil {
				return
			}
			_, err := env.Store.SaveAttempt(storage.Attempt{
				Player:    env.Player,
				StageID:   r.StageID,
				Mode:      string(r.Mode),
				Elapsed:   r.Elapsed,
				Moves:     r.Moves,
				Solved:    r.Solved,
				EndReason: r.Reason,
			})
			if err != nil {
				logger.Warn("could not save attempt", "stage", r.StageID, "error", err)
			}
		},
	})

	return GameModel{
		env:        env,
		game:       g,
		screen:     core.NewScreen(cfg.ScreenW, cfg.ScreenH),
		config:     cfg,
		inputFrame: core.NewInputFrame(),
		pointer:    &PointerTracker{},
		keyMapper:  NewKeyMapper(),
		gen:        gen,
	}
}

// Init initializes the model and starts the game.
func (m GameModel) Init() tea.Cmd {
	m.game.Reset(m.config)
	return tickCmd(m.config.TickRate, m.gen)
}

// Update handles messages and updates the model state.
func (m GameModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)

	case tea.MouseMsg:
		if g, ok := m.pointer.Handle(msg, m.game.SlotAt); ok {
			m.inputFrame.AddGesture(g)
		}
		return m, nil

	case tea.WindowSizeMsg:
		m.config.ScreenW = msg.Width
		m.config.ScreenH = msg.Height
		m.screen.Resize(msg.Width, msg.Height)
		m.game.Resize(msg.Width, msg.Height)
		return m, nil

	case TickMsg:
		if msg.Gen != m.gen {
			return m, nil
		}
		return m.handleTick()
	}

	return m, nil
}

// handleKey processes keyboard input.
func (m GameModel) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if msg.String() == "ctrl+s" {
		m.saveScreenshot()
		return m, nil
	}

	if m.keyMapper.MapKeyToFrame(msg, &m.inputFrame) {
		m.game.Abandon()
		m.quitting = true
		return m, tea.Quit
	}

	if action, _ := m.keyMapper.MapKey(msg); action == core.ActionBack {
		m.game.Abandon()
		m.backToMap = true
	}
	return m, nil
}

// handleTick processes simulation ticks.
func (m GameModel) handleTick() (tea.Model, tea.Cmd) {
	result := m.game.Step(m.inputFrame)
	m.gameState = result.State

	// Clear input for next frame
	m.inputFrame.Clear()

	return m, tickCmd(m.config.TickRate, m.gen)
}

// saveScreenshot saves the current screen as plain text.
func (m *GameModel) saveScreenshot() {
	m.game.Render(m.screen)

	dir := config.UserPath("screenshots")
	if dir == "" {
		return
	}
	//nolint:errcheck // Best-effort directory creation
	os.MkdirAll(dir, 0o755)

	timestamp := time.Now().Format("20060102_150405")
	path := filepath.Join(dir, fmt.Sprintf("%s_%s.txt", m.game.Stage().ID, timestamp))

	if err := os.WriteFile(path, []byte(m.screen.String()), 0o600); err != nil {
		m.env.logger().Warn("could not save screenshot", "path", path, "error", err)
	}
}

// View renders the current state to a string for display.
func (m GameModel) View() string {
	if m.quitting {
		return ""
	}

	m.game.Render(m.screen)
	return RenderScreenWith(m.env.renderer(), m.screen)
}

// IsQuitting returns true if user requested to quit entirely.
func (m GameModel) IsQuitting() bool {
	return m.quitting
}

// BackToMap returns true if the player left the stage.
func (m GameModel) BackToMap() bool {
	return m.backToMap
}

// State returns the last reported game state.
func (m GameModel) State() core.GameState {
	return m.gameState
}
