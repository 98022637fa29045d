package tui

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/vovakirdan/tiletwist/internal/config"
	"github.com/vovakirdan/tiletwist/internal/core"
)

// MenuItem is one entry on the home screen.
type MenuItem struct {
	Title  string
	Mode   config.Mode // empty for the best-times entry
	Scores bool
}

// MenuModel is the home screen: pick a difficulty or open the best times.
type MenuModel struct {
	env            Env
	items          []MenuItem
	cursor         int
	width          int
	height         int
	keyMapper      *KeyMapper
	quitting       bool
	selected       *MenuItem // Set when user picks a mode
	openScoreboard bool
}

// NewMenuModel creates a new menu model.
func NewMenuModel(env Env, cfg core.RuntimeConfig) MenuModel {
	var items []MenuItem
	for _, mode := range config.Modes() {
		g := env.Config.Mode(mode).Grid
		items = append(items, MenuItem{
			Title: fmt.Sprintf("%s  %dx%d", mode.Title(), g, g),
			Mode:  mode,
		})
	}
	items = append(items, MenuItem{Title: "Best times", Scores: true})

	return MenuModel{
		env:       env,
		items:     items,
		width:     cfg.ScreenW,
		height:    cfg.ScreenH,
		keyMapper: NewKeyMapper(),
	}
}

// Init initializes the menu model.
func (m MenuModel) Init() tea.Cmd {
	return nil
}

// Update handles messages for the menu.
func (m MenuModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
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

// handleKey processes keyboard input for menu navigation.
func (m MenuModel) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch m.keyMapper.MapKeyToMenuAction(msg) {
	case MenuActionQuit, MenuActionBack:
		m.quitting = true
		return m, tea.Quit

	case MenuActionUp:
		if m.cursor > 0 {
			m.cursor--
		}

	case MenuActionDown:
		if m.cursor < len(m.items)-1 {
			m.cursor++
		}

	case MenuActionSelect:
		item := m.items[m.cursor]
		if item.Scores {
			m.openScoreboard = true
		} else {
			m.selected = &item
		}

	case MenuActionScoreboard:
		m.openScoreboard = true
	}

	return m, nil
}

var (
	titleStyle    = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("229"))
	subtleStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("241"))
	selectedStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#22d3ee"))
	doneStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color("#10b981"))
)

// View renders the menu.
func (m MenuModel) View() string {
	if m.quitting {
		return ""
	}

	var b strings.Builder

	b.WriteString("\n")
	b.WriteString(centerText(titleStyle.Render("T I L E   T W I S T"), m.width))
	b.WriteString("\n\n")
	b.WriteString(centerText(subtleStyle.Render("Rotate and swap the tiles to restore the picture"), m.width))
	b.WriteString("\n\n")

	for i, item := range m.items {
		cursor := "  "
		line := item.Title
		if item.Mode != "" {
			line += "   " + m.modeSummary(item.Mode)
		}
		if i == m.cursor {
			cursor = "> "
			line = selectedStyle.Render(line)
		}
		b.WriteString(centerText(cursor+line, m.width))
		b.WriteString("\n")
	}

	b.WriteString("\n")
	b.WriteString(centerText(subtleStyle.Render("Up/Down: Navigate  |  Enter: Select  |  Tab: Best times  |  Q: Quit"), m.width))
	b.WriteString("\n")

	return b.String()
}

// modeSummary reports how many stages of mode are completed.
func (m MenuModel) modeSummary(mode config.Mode) string {
	if m.env.Catalog == nil {
		return ""
	}
	sum, err := m.env.tracker().ModeProgress(m.env.Catalog.ByMode(mode))
	if err != nil {
		return ""
	}
	return fmt.Sprintf("%d/%d", sum.Completed, sum.Total)
}

// Selected returns the selected menu item, or nil if none selected.
func (m MenuModel) Selected() *MenuItem {
	return m.selected
}

// IsQuitting returns true if user requested to quit.
func (m MenuModel) IsQuitting() bool {
	return m.quitting
}

// WantsScoreboard returns true if user requested the best times.
func (m MenuModel) WantsScoreboard() bool {
	return m.openScoreboard
}

// centerText centers text within given width.
func centerText(text string, width int) string {
	w := lipgloss.Width(text)
	if w >= width {
		return text
	}
	padding := (width - w) / 2
	return strings.Repeat(" ", padding) + text
}
