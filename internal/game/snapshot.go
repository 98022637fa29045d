package game

import "time"

// Phase is the coarse state of an attempt.
type Phase string

const (
	PhaseLoadFailed Phase = "loading_failed"
	PhasePlaying    Phase = "playing"
	PhasePaused     Phase = "paused"
	PhaseTutorial   Phase = "tutorial"
	PhaseSolved     Phase = "solved"
	PhaseExpired    Phase = "expired"
	PhaseTooSmall   Phase = "paused_small_window"
)

// TileSnapshot is one slot of the board.
type TileSnapshot struct {
	Original        int
	Rotation        int
	DisplayRotation int
}

// Snapshot captures the complete game state for determinism testing and replay.
type Snapshot struct {
	Tick      uint64
	StageID   string
	Phase     Phase
	Board     []TileSnapshot // in slot order
	Cursor    int
	Picked    int
	Moves     int
	Elapsed   time.Duration
	Remaining time.Duration // -1 when there is no countdown
	HintTicks int
	Correct   int
	NewBest   bool
}

// Phase returns the current phase.
func (g *Game) Phase() Phase {
	switch {
	case g.loadErr != nil:
		return PhaseLoadFailed
	case g.tooSmall:
		return PhaseTooSmall
	case g.solved:
		return PhaseSolved
	case g.expired:
		return PhaseExpired
	case g.tutorial:
		return PhaseTutorial
	case g.paused:
		return PhasePaused
	default:
		return PhasePlaying
	}
}

// Snapshot returns the current game snapshot for determinism verification.
func (g *Game) Snapshot() Snapshot {
	s := Snapshot{
		Tick:    g.tick,
		StageID: g.stage.ID,
		Phase:   g.Phase(),
		Cursor:  g.cursor,
		Picked:  g.picked,
		NewBest: g.solve.NewBest,
	}
	if g.board == nil {
		return s
	}
	for _, tv := range g.board.Tiles() {
		s.Board = append(s.Board, TileSnapshot{
			Original:        tv.OriginalIndex,
			Rotation:        tv.Rotation,
			DisplayRotation: tv.DisplayRotation,
		})
	}
	s.Moves = g.clock.Moves()
	s.Elapsed = g.clock.Elapsed()
	s.Remaining = g.clock.Remaining()
	s.HintTicks = g.hintTicks
	s.Correct = g.board.CorrectCount()
	return s
}
