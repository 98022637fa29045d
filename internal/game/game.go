// Package game runs one stage attempt: it feeds player input to the puzzle
// engine, charges moves and ticks to the budget clock and records results.
package game

import (
	"errors"
	"image"
	"math/rand"
	"time"

	"github.com/charmbracelet/log"

	"github.com/vovakirdan/tiletwist/internal/budget"
	"github.com/vovakirdan/tiletwist/internal/config"
	"github.com/vovakirdan/tiletwist/internal/core"
	"github.com/vovakirdan/tiletwist/internal/imaging"
	"github.com/vovakirdan/tiletwist/internal/progress"
	"github.com/vovakirdan/tiletwist/internal/puzzle"
	"github.com/vovakirdan/tiletwist/internal/stages"
)

// Result describes a finished attempt.
type Result struct {
	StageID string
	Mode    config.Mode
	Solved  bool
	Reason  string // "solved", "time", "moves" or "abandoned"
	Elapsed time.Duration
	Moves   int
	NewBest bool
}

// Options wires a game to its collaborators. Every field is optional.
type Options struct {
	Config  config.Config
	Tracker *progress.Tracker
	// OnFinish is called once per attempt when it ends.
	OnFinish func(Result)
	// Picture overrides the stage's source picture, mainly for tests.
	Picture image.Image
	Logger  *log.Logger
}

// Game is a single-player session on one stage.
type Game struct {
	stage stages.Stage
	cfg   config.Config
	opts  Options
	log   *log.Logger

	rng  *rand.Rand
	tick uint64

	screenW int
	screenH int

	picture image.Image
	loadErr error
	board   *puzzle.State
	clock   *budget.Clock

	cursor    int
	picked    int // slot picked for a swap, -1 when none
	hintTicks int

	tutorial bool
	paused   bool
	tooSmall bool
	solved   bool
	expired  bool
	reported bool
	solve    progress.SolveResult

	tiles map[int]imaging.Pixels // upright rasters by original index
	full  imaging.Pixels         // the whole picture, for the hint overlay
}

// New creates a game for stage. Call Reset before the first Step.
func New(stage stages.Stage, opts Options) *Game {
	cfg := opts.Config
	if cfg.TickRate == 0 {
		cfg = config.Default()
	}
	logger := opts.Logger
	if logger == nil {
		logger = log.Default()
	}
	return &Game{
		stage:  stage,
		cfg:    cfg,
		opts:   opts,
		log:    logger.WithPrefix("game"),
		picked: -1,
	}
}

// Stage returns the stage being played.
func (g *Game) Stage() stages.Stage {
	return g.stage
}

// Reset loads the picture and starts a fresh attempt.
func (g *Game) Reset(rc core.RuntimeConfig) {
	seed := rc.Seed
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	g.rng = rand.New(rand.NewSource(seed))
	g.tick = 0
	g.screenW = rc.ScreenW
	g.screenH = rc.ScreenH
	g.loadErr = nil
	g.tiles = nil

	g.picture = g.opts.Picture
	if g.picture == nil {
		img, err := g.stage.Picture()
		if err != nil {
			g.fail(err)
			return
		}
		g.picture = img
	}

	g.tutorial = g.opts.Tracker != nil && !g.opts.Tracker.TutorialSeen()
	g.paused = false
	g.newAttempt()
	g.checkScreenSize()
}

// fail switches to the loading-failed phase. The board is discarded.
func (g *Game) fail(err error) {
	g.log.Warn("cannot load stage", "stage", g.stage.ID, "err", err)
	g.loadErr = err
	g.board = nil
	g.clock = nil
}

// newAttempt scrambles a fresh board and resets the allowances.
func (g *Game) newAttempt() {
	gen := puzzle.NewGenerator(imaging.Slicer{}, g.rng)
	board, err := gen.Generate(g.picture, g.stage.Grid)
	if err != nil {
		g.fail(err)
		return
	}
	g.board = board
	g.clock = budget.New(g.cfg.TickRate, g.stage.TimeLimit, g.stage.MoveLimit)
	g.cursor = 0
	g.picked = -1
	g.hintTicks = 0
	g.solved = false
	g.expired = false
	g.reported = false
	g.solve = progress.SolveResult{}
	if g.tiles == nil {
		g.cacheRasters()
	}
}

// Resize updates the terminal size.
func (g *Game) Resize(w, h int) {
	g.screenW = w
	g.screenH = h
	g.checkScreenSize()
}

func (g *Game) checkScreenSize() {
	l := g.layout()
	g.tooSmall = g.screenW < l.minW || g.screenH < l.minH
}

// Step advances the game by one tick.
func (g *Game) Step(in core.InputFrame) core.StepResult {
	g.tick++

	if g.loadErr != nil || g.tooSmall {
		return core.StepResult{State: g.State()}
	}

	// The tutorial overlay holds the clock until it is dismissed.
	if g.tutorial {
		if in.Has(core.ActionTutorial) || in.Has(core.ActionPick) {
			g.closeTutorial()
		}
		return core.StepResult{State: g.State()}
	}
	if in.Has(core.ActionTutorial) && !g.over() {
		g.tutorial = true
		return core.StepResult{State: g.State()}
	}

	if in.Has(core.ActionRestart) {
		g.Restart()
		return core.StepResult{State: g.State()}
	}

	if in.Has(core.ActionPause) && !g.over() {
		g.paused = !g.paused
	}
	if g.paused || g.over() {
		return core.StepResult{State: g.State()}
	}

	if g.hintTicks > 0 {
		g.hintTicks--
	} else if in.Has(core.ActionHint) {
		g.hintTicks = int(g.cfg.HintDuration() * time.Duration(g.cfg.TickRate) / time.Second)
	}

	// The hint covers the board, so moves wait until it is gone.
	if g.hintTicks == 0 {
		g.handleCursor(in)
		g.handleMoves(in)
	}

	if !g.over() && g.clock.Tick() {
		g.expire()
	}

	return core.StepResult{State: g.State()}
}

func (g *Game) handleCursor(in core.InputFrame) {
	n := g.stage.Grid
	row, col := g.cursor/n, g.cursor%n
	switch {
	case in.Has(core.ActionUp):
		row--
	case in.Has(core.ActionDown):
		row++
	case in.Has(core.ActionLeft):
		col--
	case in.Has(core.ActionRight):
		col++
	}
	g.cursor = core.Clamp(row, 0, n-1)*n + core.Clamp(col, 0, n-1)
}

func (g *Game) handleMoves(in core.InputFrame) {
	if in.Has(core.ActionRotate) {
		g.rotateSlot(g.cursor)
	}
	if in.Has(core.ActionPick) && !g.over() {
		g.pick(g.cursor)
	}
	for _, gs := range in.Gestures {
		if g.over() {
			return
		}
		switch gs.Kind {
		case core.GestureTap:
			g.rotateSlot(gs.From)
		case core.GestureDrag:
			g.swapSlots(gs.From, gs.To)
		}
	}
}

// pick implements keyboard swapping: the first press picks a slot, a press
// on another slot swaps the two, a press on the same slot cancels.
func (g *Game) pick(slot int) {
	switch g.picked {
	case -1:
		g.picked = slot
	case slot:
		g.picked = -1
	default:
		from := g.picked
		g.picked = -1
		g.swapSlots(from, slot)
	}
}

func (g *Game) rotateSlot(slot int) {
	if g.over() {
		return
	}
	t, err := g.board.TileAt(slot)
	if err != nil {
		return
	}
	solved, err := g.board.Rotate(t.OriginalIndex)
	if err != nil {
		g.log.Error("rotate refused", "slot", slot, "err", err)
		return
	}
	g.afterMove(solved)
}

func (g *Game) swapSlots(a, b int) {
	if g.over() {
		return
	}
	solved, err := g.board.Swap(a, b)
	if errors.Is(err, puzzle.ErrSameSlot) {
		return
	}
	if err != nil {
		g.log.Error("swap refused", "from", a, "to", b, "err", err)
		return
	}
	if g.picked == a || g.picked == b {
		g.picked = -1
	}
	g.afterMove(solved)
}

// afterMove charges the move. A move that solves the board wins even when it
// also used the last allowed move.
func (g *Game) afterMove(solved bool) {
	exhausted := g.clock.UseMove()
	if solved {
		g.win()
		return
	}
	if exhausted {
		g.expire()
	}
}

func (g *Game) win() {
	g.solved = true
	g.clock.Stop()
	g.picked = -1
	g.hintTicks = 0

	res := Result{Solved: true, Reason: "solved"}
	if tr := g.opts.Tracker; tr != nil {
		sr, err := tr.RecordSolve(g.stage, g.clock.Elapsed())
		if err != nil {
			g.log.Warn("cannot record progress", "stage", g.stage.ID, "err", err)
		}
		g.solve = sr
		res.NewBest = sr.NewBest
	}
	g.finish(res)
}

func (g *Game) expire() {
	g.expired = true
	g.picked = -1
	g.hintTicks = 0
	g.finish(Result{Reason: string(g.clock.Reason())})
}

// finish reports the attempt once.
func (g *Game) finish(res Result) {
	if g.reported {
		return
	}
	g.reported = true
	res.StageID = g.stage.ID
	res.Mode = g.stage.Mode
	res.Elapsed = g.clock.Elapsed()
	res.Moves = g.clock.Moves()
	g.log.Debug("attempt finished", "stage", res.StageID, "reason", res.Reason, "elapsed", res.Elapsed, "moves", res.Moves)
	if g.opts.OnFinish != nil {
		g.opts.OnFinish(res)
	}
}

// Abandon reports an unfinished attempt that had at least one move.
func (g *Game) Abandon() {
	if g.board == nil || g.over() || g.clock.Moves() == 0 {
		return
	}
	g.finish(Result{Reason: "abandoned"})
}

// Restart starts a new attempt on the same stage with a fresh scramble.
func (g *Game) Restart() {
	if g.loadErr != nil {
		return
	}
	g.Abandon()
	g.paused = false
	g.newAttempt()
}

func (g *Game) closeTutorial() {
	g.tutorial = false
	if tr := g.opts.Tracker; tr != nil {
		if err := tr.MarkTutorialSeen(); err != nil {
			g.log.Warn("cannot save tutorial flag", "err", err)
		}
	}
}

func (g *Game) over() bool {
	return g.solved || g.expired
}

// State returns the platform-facing summary.
func (g *Game) State() core.GameState {
	st := core.GameState{
		Solved:   g.solved,
		GameOver: g.over() || g.loadErr != nil,
		Paused:   g.paused || g.tutorial,
	}
	if g.clock != nil {
		st.Moves = g.clock.Moves()
	}
	return st
}

// Board exposes the engine state for inspection. It is nil after a load failure.
func (g *Game) Board() *puzzle.State {
	return g.board
}

// Err returns the load failure, if any.
func (g *Game) Err() error {
	return g.loadErr
}
