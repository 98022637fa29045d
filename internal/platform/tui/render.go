package tui

import (
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/vovakirdan/tiletwist/internal/core"
)

type colorPair struct {
	fg, bg core.Color
}

// styleCache keeps one lipgloss style per colour pair.
type styleCache struct {
	r      *lipgloss.Renderer
	styles map[colorPair]lipgloss.Style
}

func (c styleCache) style(p colorPair) lipgloss.Style {
	if s, ok := c.styles[p]; ok {
		return s
	}
	s := c.r.NewStyle()
	if p.fg != core.ColorNone {
		s = s.Foreground(lipgloss.Color(p.fg.Hex()))
	}
	if p.bg != core.ColorNone {
		s = s.Background(lipgloss.Color(p.bg.Hex()))
	}
	c.styles[p] = s
	return s
}

// RenderScreen converts a Screen buffer to a styled string for display.
// Groups adjacent cells with the same colours to minimize ANSI escape sequences.
func RenderScreen(s *core.Screen) string {
	return RenderScreenWith(lipgloss.DefaultRenderer(), s)
}

// RenderScreenWith renders through r, e.g. an SSH session's renderer that
// knows the remote terminal's colour profile.
func RenderScreenWith(r *lipgloss.Renderer, s *core.Screen) string {
	styles := styleCache{r: r, styles: make(map[colorPair]lipgloss.Style)}

	var sb strings.Builder
	// Pre-allocate with extra space for ANSI codes
	sb.Grow(s.Width()*s.Height()*4 + s.Height())

	for y, yEnd := 0, s.Height(); y < yEnd; y++ {
		if y > 0 {
			sb.WriteRune('\n')
		}

		x := 0
		for x < s.Width() {
			cell := s.GetCell(x, y)
			start := colorPair{cell.Fg, cell.Bg}

			var run strings.Builder
			for x < s.Width() {
				cell = s.GetCell(x, y)
				if (colorPair{cell.Fg, cell.Bg}) != start {
					break
				}
				run.WriteRune(cell.Rune)
				x++
			}

			if start.fg == core.ColorNone && start.bg == core.ColorNone {
				sb.WriteString(run.String())
				continue
			}
			sb.WriteString(styles.style(start).Render(run.String()))
		}
	}
	return sb.String()
}
