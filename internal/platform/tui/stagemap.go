package tui

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/vovakirdan/tiletwist/internal/config"
	"github.com/vovakirdan/tiletwist/internal/game"
	"github.com/vovakirdan/tiletwist/internal/progress"
	"github.com/vovakirdan/tiletwist/internal/stages"
)

const progressBarWidth = 24

// stageEntry is one row of the map with its saved progress.
type stageEntry struct {
	stage     stages.Stage
	completed bool
	best      string
}

// MapModel lists the stages of one mode with completion marks and best times.
type MapModel struct {
	mode      config.Mode
	entries   []stageEntry
	summary   progress.ModeSummary
	cursor    int
	width     int
	height    int
	keyMapper *KeyMapper
	selected  *stages.Stage
	quitting  bool
	back      bool
}

// NewMapModel loads the stages of mode and the player's progress on them.
func NewMapModel(env Env, mode config.Mode, width, height int) MapModel {
	m := MapModel{
		mode:      mode,
		width:     width,
		height:    height,
		keyMapper: NewKeyMapper(),
	}
	if env.Catalog == nil {
		return m
	}

	tr := env.tracker()
	list := env.Catalog.ByMode(mode)
	for _, s := range list {
		e := stageEntry{stage: s}
		if done, err := tr.Completed(s); err == nil {
			e.completed = done
		}
		if best, ok, err := tr.BestTime(s); err == nil && ok {
			e.best = game.FormatDuration(best)
		}
		m.entries = append(m.entries, e)
	}
	if sum, err := tr.ModeProgress(list); err == nil {
		m.summary = sum
	}

	// Start on the first stage not yet completed.
	for i, e := range m.entries {
		if !e.completed {
			m.cursor = i
			break
		}
	}
	return m
}

// Init initializes the model.
func (m MapModel) Init() tea.Cmd {
	return nil
}

// Update handles messages.
func (m MapModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil
	}
	return m, nil
}

func (m MapModel) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch m.keyMapper.MapKeyToMenuAction(msg) {
	case MenuActionQuit:
		m.quitting = true
		return m, tea.Quit
	case MenuActionUp:
		if m.cursor > 0 {
			m.cursor--
		}
	case MenuActionDown:
		if m.cursor < len(m.entries)-1 {
			m.cursor++
		}
	case MenuActionSelect:
		if len(m.entries) > 0 {
			s := m.entries[m.cursor].stage
			m.selected = &s
		}
	case MenuActionBack:
		m.back = true
	}

	return m, nil
}

// View renders the stage map.
func (m MapModel) View() string {
	if m.quitting {
		return ""
	}

	var b strings.Builder

	b.WriteString("\n")
	b.WriteString(centerText(titleStyle.Render(strings.ToUpper(m.mode.Title())+" STAGES"), m.width))
	b.WriteString("\n\n")
	b.WriteString(centerText(m.progressBar(), m.width))
	b.WriteString("\n\n")

	if len(m.entries) == 0 {
		b.WriteString(centerText(subtleStyle.Render("No stages in this mode yet."), m.width))
		b.WriteString("\n")
	}

	for i, e := range m.entries {
		cursor := "  "
		if i == m.cursor {
			cursor = "> "
		}

		mark := "  "
		if e.completed {
			mark = doneStyle.Render("✓ ")
		}

		best := "  -  "
		if e.best != "" {
			best = e.best
		}

		name := e.stage.Name
		if e.stage.Custom {
			name += " *"
		}
		line := fmt.Sprintf("%2d. %-24s best %5s", i+1, name, best)
		if i == m.cursor {
			line = selectedStyle.Render(line)
		}
		b.WriteString(centerText(cursor+mark+line, m.width))
		b.WriteString("\n")

		if i == m.cursor && e.stage.Subtitle != "" {
			b.WriteString(centerText(subtleStyle.Render(e.stage.Subtitle), m.width))
			b.WriteString("\n")
		}
	}

	b.WriteString("\n")
	b.WriteString(centerText(subtleStyle.Render("Enter: Play  |  Esc: Back  |  Q: Quit"), m.width))

	return b.String()
}

// progressBar renders "[#####-----] 3/5 60%".
func (m MapModel) progressBar() string {
	filled := 0
	if m.summary.Total > 0 {
		filled = m.summary.Completed * progressBarWidth / m.summary.Total
	}
	bar := doneStyle.Render(strings.Repeat("█", filled)) +
		subtleStyle.Render(strings.Repeat("░", progressBarWidth-filled))
	return fmt.Sprintf("%s %d/%d %d%%", bar, m.summary.Completed, m.summary.Total, m.summary.Percent())
}

// Selected returns the chosen stage, or nil if still choosing.
func (m MapModel) Selected() *stages.Stage {
	return m.selected
}

// IsQuitting returns true if user wants to quit.
func (m MapModel) IsQuitting() bool {
	return m.quitting
}

// WantsBack returns true if user pressed back.
func (m MapModel) WantsBack() bool {
	return m.back
}
