// Package puzzle implements the tile-rotation puzzle engine: generating a
// scrambled board from a sliced picture, rotating and swapping tiles, and
// detecting the solved layout.
//
// The engine has no rendering or I/O of its own. Picture slicing is injected
// through the Slicer capability so the engine can be driven with synthetic
// images in tests.
package puzzle

import "image"

// QuarterTurn is the only rotation step the engine applies.
const QuarterTurn = 90

// Tile is one piece of the sliced picture.
type Tile struct {
	// OriginalIndex is the tile's identity and its correct slot.
	OriginalIndex int
	// CurrentIndex is the slot the tile occupies now.
	CurrentIndex int
	// Rotation is the logical orientation in degrees: 0, 90, 180 or 270.
	Rotation int
	// DisplayRotation only ever grows; renderers animate towards it.
	DisplayRotation int
	// Image is the sub-picture for this tile, unrotated.
	Image image.Image
}

// Correct reports whether the tile sits in its own slot with no rotation.
func (t Tile) Correct() bool {
	return t.CurrentIndex == t.OriginalIndex && t.Rotation == 0
}

// Row returns the row of the tile's original slot.
func (t Tile) Row(gridSize int) int {
	return t.OriginalIndex / gridSize
}

// Col returns the column of the tile's original slot.
func (t Tile) Col(gridSize int) int {
	return t.OriginalIndex % gridSize
}

// TileView is what a renderer needs to draw one slot.
type TileView struct {
	Slot            int
	OriginalIndex   int
	Rotation        int
	DisplayRotation int
	Correct         bool
	Image           image.Image
}

// validRotation reports whether deg is one of the four quarter turns.
func validRotation(deg int) bool {
	switch deg {
	case 0, 90, 180, 270:
		return true
	}
	return false
}
