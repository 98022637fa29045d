package game

import (
	"fmt"
	"time"

	"github.com/vovakirdan/tiletwist/internal/budget"
	"github.com/vovakirdan/tiletwist/internal/core"
	"github.com/vovakirdan/tiletwist/internal/imaging"
)

const (
	hudHeight    = 2
	footerHeight = 1
	minTextWidth = 44 // widest HUD line

	// A countdown at or below this is drawn in red.
	lowTime = 10 * time.Second
)

// layout places the board on screen. Every slot is tileW x tileH cells
// framed by a one-cell border.
type layout struct {
	grid         int
	tileW, tileH int
	side         int // tile raster edge in pixels
	boardX       int
	boardY       int
	boardW       int
	boardH       int
	minW, minH   int
}

func (g *Game) layout() layout {
	n := max(1, g.stage.Grid)
	tw, th := g.cfg.Tile.Width, g.cfg.Tile.Height
	l := layout{
		grid:   n,
		tileW:  tw,
		tileH:  th,
		side:   min(tw, 2*th),
		boardW: n*tw + 2,
		boardH: n*th + 2,
	}
	l.minW = max(l.boardW, minTextWidth)
	l.minH = hudHeight + l.boardH + footerHeight
	l.boardX = (g.screenW - l.boardW) / 2
	l.boardY = hudHeight
	return l
}

// slotRect returns the cells covered by slot.
func (l layout) slotRect(slot int) core.Rect {
	row, col := slot/l.grid, slot%l.grid
	return core.NewRect(l.boardX+1+col*l.tileW, l.boardY+1+row*l.tileH, l.tileW, l.tileH)
}

// SlotAt maps a screen cell to a board slot, or -1 when (x, y) is off the board.
func (g *Game) SlotAt(x, y int) int {
	if g.board == nil || g.tooSmall {
		return -1
	}
	l := g.layout()
	for slot := 0; slot < l.grid*l.grid; slot++ {
		if l.slotRect(slot).Contains(x, y) {
			return slot
		}
	}
	return -1
}

// cacheRasters scales every piece and the full picture once per load.
func (g *Game) cacheRasters() {
	l := g.layout()
	g.tiles = make(map[int]imaging.Pixels, g.board.Len())
	for _, tv := range g.board.Tiles() {
		px, err := imaging.Rasterize(tv.Image, l.side, l.side)
		if err != nil {
			g.log.Warn("cannot rasterize tile", "tile", tv.OriginalIndex, "err", err)
			continue
		}
		g.tiles[tv.OriginalIndex] = px
	}
	full, err := imaging.Rasterize(g.picture, l.grid*l.side, l.grid*l.side)
	if err != nil {
		g.log.Warn("cannot rasterize picture", "err", err)
	}
	g.full = full
}

// Render draws the game state to the screen.
func (g *Game) Render(dst *core.Screen) {
	dst.Clear()

	if g.loadErr != nil {
		g.renderLoadFailed(dst)
		return
	}
	if g.tooSmall {
		g.renderTooSmall(dst)
		return
	}

	l := g.layout()
	g.renderHUD(dst, l)
	dst.DrawBox(core.NewRect(l.boardX, l.boardY, l.boardW, l.boardH), core.ColorBoardEdge)

	if g.hintTicks > 0 {
		g.renderHint(dst, l)
	} else {
		g.renderBoard(dst, l)
	}

	g.renderFooter(dst, l)
	g.renderOverlays(dst, l)
}

func (g *Game) renderLoadFailed(dst *core.Screen) {
	y := g.screenH / 2
	dst.DrawTextCentered(y-1, "Could not load "+g.stage.Name, core.ColorRed)
	dst.DrawTextCentered(y, g.loadErr.Error(), core.ColorGray)
	dst.DrawTextCentered(y+2, "B: back to the map", core.ColorWhite)
}

func (g *Game) renderTooSmall(dst *core.Screen) {
	l := g.layout()
	y := g.screenH / 2
	dst.DrawTextCentered(y, "Window too small", core.ColorYellow)
	dst.DrawTextCentered(y+1, fmt.Sprintf("Need %dx%d, have %dx%d", l.minW, l.minH, g.screenW, g.screenH), core.ColorGray)
}

func (g *Game) renderHUD(dst *core.Screen, l layout) {
	title := fmt.Sprintf("%s  [%s %dx%d]", g.stage.Name, g.stage.Mode.Title(), l.grid, l.grid)
	dst.DrawTextCentered(0, title, core.ColorWhite)

	x := l.boardX
	timeColor := core.ColorWhite
	var timeStr string
	if left := g.clock.Remaining(); left >= 0 {
		timeStr = "Time " + FormatDuration(left)
		if left <= lowTime && !g.solved {
			timeColor = core.ColorRed
		}
	} else {
		timeStr = "Time " + FormatDuration(g.clock.Elapsed())
	}
	dst.DrawTextColor(x, 1, timeStr, timeColor)
	x += core.TextWidth(timeStr) + 2

	movesStr := fmt.Sprintf("Moves %d", g.clock.Moves())
	if left := g.clock.MovesLeft(); left >= 0 {
		_, limit := g.clock.Limits()
		movesStr = fmt.Sprintf("Moves %d/%d", g.clock.Moves(), limit)
		if left <= 3 && !g.solved {
			dst.DrawTextColor(x, 1, movesStr, core.ColorOrange)
		} else {
			dst.DrawTextColor(x, 1, movesStr, core.ColorWhite)
		}
	} else {
		dst.DrawTextColor(x, 1, movesStr, core.ColorWhite)
	}
	x += core.TextWidth(movesStr) + 2

	if tr := g.opts.Tracker; tr != nil {
		if best, ok, err := tr.BestTime(g.stage); err == nil && ok {
			dst.DrawTextColor(x, 1, "Best "+FormatDuration(best), core.ColorGreen)
		}
	}
}

func (g *Game) renderFooter(dst *core.Screen, l layout) {
	y := l.boardY + l.boardH
	switch {
	case g.paused:
		dst.DrawTextCentered(y, "PAUSED  P: resume", core.ColorYellow)
	case g.picked >= 0:
		dst.DrawTextCentered(y, "ENTER on another tile to swap, same tile to cancel", core.ColorCyan)
	default:
		dst.DrawTextCentered(y, "SPACE rotate  ENTER swap  I hint  ? help  N new  B back", core.ColorGray)
	}
}

// renderBoard draws every slot. The pixels are turned by DisplayRotation so
// a tile shows exactly the orientation the player has dialled in.
func (g *Game) renderBoard(dst *core.Screen, l layout) {
	for _, tv := range g.board.Tiles() {
		px := imaging.Rotate(g.tiles[tv.OriginalIndex], tv.DisplayRotation%360)

		edge := core.ColorNone
		switch {
		case tv.Slot == g.picked:
			edge = core.ColorCyan
		case tv.Slot == g.cursor && !g.over():
			edge = core.ColorYellow
		case tv.Correct:
			edge = core.ColorGreen
		}
		g.drawPixels(dst, l.slotRect(tv.Slot), px, edge)
	}
}

// drawPixels centres a square raster in r, two pixels per cell. A non-empty
// edge colour tints the raster's outer ring.
func (g *Game) drawPixels(dst *core.Screen, r core.Rect, px imaging.Pixels, edge core.Color) {
	ox := (r.W - px.W) / 2
	oy := (2*r.H - px.H) / 2

	at := func(x, y int) core.Color {
		c := px.At(x, y)
		if c == core.ColorNone {
			return core.ColorBlack
		}
		if edge != core.ColorNone && (x == 0 || y == 0 || x == px.W-1 || y == px.H-1) {
			return c.Blend(edge, 0.75)
		}
		return c
	}

	for cy := 0; cy < r.H; cy++ {
		for cx := 0; cx < r.W; cx++ {
			x := cx - ox
			top, bottom := 2*cy-oy, 2*cy+1-oy
			dst.SetPixels(r.X+cx, r.Y+cy, at(x, top), at(x, bottom))
		}
	}
}

func (g *Game) renderHint(dst *core.Screen, l layout) {
	area := core.NewRect(l.boardX+1, l.boardY+1, l.boardW-2, l.boardH-2)
	g.drawPixels(dst, area, g.full, core.ColorNone)

	secs := (g.hintTicks + g.cfg.TickRate - 1) / g.cfg.TickRate
	msg := fmt.Sprintf(" Hint hides in %ds ", secs)
	dst.DrawTextCentered(l.boardY, msg, core.ColorYellow)
}

func (g *Game) renderOverlays(dst *core.Screen, l layout) {
	switch {
	case g.tutorial:
		g.drawPanel(dst, l, core.ColorPurple, tutorialLines)
	case g.solved:
		lines := []string{
			"Picture restored!",
			"",
			fmt.Sprintf("Time %s   Moves %d", FormatDuration(g.clock.Elapsed()), g.clock.Moves()),
		}
		if g.solve.NewBest {
			lines = append(lines, "New personal best!")
		}
		lines = append(lines, "", "N: play again   B: back to map")
		g.drawPanel(dst, l, core.ColorGreen, lines)
	case g.expired:
		title := "Time's up!"
		if g.clock.Reason() == budget.ReasonMoves {
			title = "Out of moves!"
		}
		g.drawPanel(dst, l, core.ColorRed, []string{
			title,
			"Don't worry, let's try again!",
			"",
			"N: restart puzzle   B: back to map",
		})
	}
}

var tutorialLines = []string{
	"How to Play",
	"",
	"SPACE / click     rotate a tile 90° clockwise",
	"ENTER / drag      swap two tiles",
	"Put every tile in place, upright",
	"Beat the clock: easy 30s, hard 60s",
	"I                 see the whole picture for 3s",
	"",
	"ENTER or ? to start",
}

// drawPanel draws a framed box of centred lines over the board.
func (g *Game) drawPanel(dst *core.Screen, l layout, fg core.Color, lines []string) {
	w := 0
	for _, s := range lines {
		w = max(w, core.TextWidth(s))
	}
	w = min(w+4, g.screenW)
	h := len(lines) + 2
	x := (g.screenW - w) / 2
	y := max(0, l.boardY+(l.boardH-h)/2)

	box := core.NewRect(x, y, w, h)
	dst.DrawRect(box, core.Cell{Rune: ' ', Fg: core.ColorNone, Bg: core.ColorBlack})
	dst.DrawBox(box, fg)
	for i, s := range lines {
		c := core.ColorWhite
		if i == 0 {
			c = fg
		}
		sx := x + (w-core.TextWidth(s))/2
		dst.DrawTextColor(sx, y+1+i, s, c)
	}
}

// FormatDuration renders d as m:ss, rounding partial seconds up.
func FormatDuration(d time.Duration) string {
	if d < 0 {
		d = 0
	}
	secs := int((d + time.Second - 1) / time.Second)
	return fmt.Sprintf("%d:%02d", secs/60, secs%60)
}
