package puzzle

import (
	"fmt"
	"image"
)

// Status is the attempt-level outcome the engine tracks.
type Status int

const (
	StatusUnsolved Status = iota
	StatusSolved
)

// String returns a human-readable name for the status.
func (s Status) String() string {
	switch s {
	case StatusUnsolved:
		return "unsolved"
	case StatusSolved:
		return "solved"
	default:
		return "unknown"
	}
}

// State is the board for one attempt.
// Tiles are stored by OriginalIndex; slots maps a slot to the original index
// of the tile occupying it, so both lookups are O(1).
type State struct {
	gridSize int
	tiles    []Tile
	slots    []int
	status   Status
}

// NewSolved builds a board in the solved layout. pieces may be nil; when
// present it must hold one image per tile in row-major order.
func NewSolved(gridSize int, pieces []image.Image) (*State, error) {
	if gridSize < 1 {
		return nil, ErrInvalidGridSize
	}
	n := gridSize * gridSize
	if pieces != nil && len(pieces) != n {
		return nil, fmt.Errorf("%w: got %d pieces for a %dx%d grid", ErrLoadFailed, len(pieces), gridSize, gridSize)
	}

	s := &State{
		gridSize: gridSize,
		tiles:    make([]Tile, n),
		slots:    make([]int, n),
		status:   StatusSolved,
	}
	for i := 0; i < n; i++ {
		t := Tile{OriginalIndex: i, CurrentIndex: i}
		if pieces != nil {
			t.Image = pieces[i]
		}
		s.tiles[i] = t
		s.slots[i] = i
	}
	return s, nil
}

// Restore rebuilds a board from an explicit tile layout, e.g. a scripted
// scramble or a saved snapshot. The layout must satisfy every invariant.
func Restore(gridSize int, tiles []Tile) (*State, error) {
	if gridSize < 1 {
		return nil, ErrInvalidGridSize
	}
	n := gridSize * gridSize
	if len(tiles) != n {
		return nil, fmt.Errorf("%w: %d tiles for a %dx%d grid", ErrCorruptState, len(tiles), gridSize, gridSize)
	}

	s := &State{
		gridSize: gridSize,
		tiles:    make([]Tile, n),
		slots:    make([]int, n),
	}
	seen := make([]bool, n)
	for _, t := range tiles {
		if t.OriginalIndex < 0 || t.OriginalIndex >= n || seen[t.OriginalIndex] {
			return nil, fmt.Errorf("%w: bad original index %d", ErrCorruptState, t.OriginalIndex)
		}
		seen[t.OriginalIndex] = true
		s.tiles[t.OriginalIndex] = t
	}
	for i := range s.slots {
		s.slots[i] = -1
	}
	for _, t := range s.tiles {
		if t.CurrentIndex < 0 || t.CurrentIndex >= n || s.slots[t.CurrentIndex] != -1 {
			return nil, fmt.Errorf("%w: bad current index %d", ErrCorruptState, t.CurrentIndex)
		}
		s.slots[t.CurrentIndex] = t.OriginalIndex
	}
	if err := s.Validate(); err != nil {
		return nil, err
	}
	if s.IsSolved() {
		s.status = StatusSolved
	}
	return s, nil
}

// GridSize returns the board edge length in tiles.
func (s *State) GridSize() int {
	return s.gridSize
}

// Len returns the number of tiles.
func (s *State) Len() int {
	return len(s.tiles)
}

// Status returns Solved once any win check has succeeded. It never goes back.
func (s *State) Status() Status {
	return s.status
}

// Tile returns the tile with the given original index.
func (s *State) Tile(originalIndex int) (Tile, error) {
	if originalIndex < 0 || originalIndex >= len(s.tiles) {
		return Tile{}, fmt.Errorf("%w: %d", ErrUnknownTile, originalIndex)
	}
	return s.tiles[originalIndex], nil
}

// TileAt returns the tile occupying the given slot.
func (s *State) TileAt(slot int) (Tile, error) {
	if slot < 0 || slot >= len(s.slots) {
		return Tile{}, fmt.Errorf("%w: %d", ErrUnknownSlot, slot)
	}
	return s.tiles[s.slots[slot]], nil
}

// Rotate turns the tile with the given original index a quarter turn
// clockwise and reports whether the board is now solved.
func (s *State) Rotate(originalIndex int) (bool, error) {
	if originalIndex < 0 || originalIndex >= len(s.tiles) {
		return false, fmt.Errorf("%w: %d", ErrUnknownTile, originalIndex)
	}
	t := &s.tiles[originalIndex]
	t.Rotation = (t.Rotation + QuarterTurn) % 360
	t.DisplayRotation += QuarterTurn
	return s.checkWin(), nil
}

// Swap exchanges the tiles in two slots and reports whether the board is
// now solved. Rotations travel with their tiles.
func (s *State) Swap(slotA, slotB int) (bool, error) {
	n := len(s.slots)
	if slotA < 0 || slotA >= n {
		return false, fmt.Errorf("%w: %d", ErrUnknownSlot, slotA)
	}
	if slotB < 0 || slotB >= n {
		return false, fmt.Errorf("%w: %d", ErrUnknownSlot, slotB)
	}
	if slotA == slotB {
		return false, fmt.Errorf("%w: %d", ErrSameSlot, slotA)
	}

	a, b := s.slots[slotA], s.slots[slotB]
	s.tiles[a].CurrentIndex = slotB
	s.tiles[b].CurrentIndex = slotA
	s.slots[slotA], s.slots[slotB] = b, a
	return s.checkWin(), nil
}

// IsSolved reports whether every tile is in its own slot with rotation 0.
func (s *State) IsSolved() bool {
	for _, t := range s.tiles {
		if !t.Correct() {
			return false
		}
	}
	return true
}

// checkWin runs after every mutation and latches the solved status.
func (s *State) checkWin() bool {
	solved := s.IsSolved()
	if solved {
		s.status = StatusSolved
	}
	return solved
}

// Tiles returns the board in slot order for rendering.
func (s *State) Tiles() []TileView {
	views := make([]TileView, len(s.slots))
	for slot, orig := range s.slots {
		t := s.tiles[orig]
		views[slot] = TileView{
			Slot:            slot,
			OriginalIndex:   t.OriginalIndex,
			Rotation:        t.Rotation,
			DisplayRotation: t.DisplayRotation,
			Correct:         t.Correct(),
			Image:           t.Image,
		}
	}
	return views
}

// CorrectCount returns how many tiles are already in place and upright.
func (s *State) CorrectCount() int {
	count := 0
	for _, t := range s.tiles {
		if t.Correct() {
			count++
		}
	}
	return count
}

// Validate checks the board invariants.
func (s *State) Validate() error {
	n := s.gridSize * s.gridSize
	if len(s.tiles) != n || len(s.slots) != n {
		return fmt.Errorf("%w: %d tiles for a %dx%d grid", ErrCorruptState, len(s.tiles), s.gridSize, s.gridSize)
	}
	seen := make([]bool, n)
	for i, t := range s.tiles {
		if t.OriginalIndex != i {
			return fmt.Errorf("%w: tile stored at %d has original index %d", ErrCorruptState, i, t.OriginalIndex)
		}
		if t.CurrentIndex < 0 || t.CurrentIndex >= n || seen[t.CurrentIndex] {
			return fmt.Errorf("%w: duplicate or out-of-range slot %d", ErrCorruptState, t.CurrentIndex)
		}
		seen[t.CurrentIndex] = true
		if s.slots[t.CurrentIndex] != i {
			return fmt.Errorf("%w: slot %d does not point at tile %d", ErrCorruptState, t.CurrentIndex, i)
		}
		if !validRotation(t.Rotation) {
			return fmt.Errorf("%w: tile %d has rotation %d", ErrCorruptState, i, t.Rotation)
		}
		if t.DisplayRotation < 0 || t.DisplayRotation%360 != t.Rotation {
			return fmt.Errorf("%w: tile %d display rotation %d disagrees with %d", ErrCorruptState, i, t.DisplayRotation, t.Rotation)
		}
	}
	return nil
}

// Clone returns an independent copy of the board. Images are shared.
func (s *State) Clone() *State {
	c := &State{
		gridSize: s.gridSize,
		tiles:    make([]Tile, len(s.tiles)),
		slots:    make([]int, len(s.slots)),
		status:   s.status,
	}
	copy(c.tiles, s.tiles)
	copy(c.slots, s.slots)
	return c
}
