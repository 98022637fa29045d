package puzzle

import "errors"

var (
	// ErrInvalidGridSize is returned when a grid smaller than 1x1 is requested.
	ErrInvalidGridSize = errors.New("puzzle: grid size must be at least 1")

	// ErrLoadFailed wraps any failure to turn the source picture into tiles.
	ErrLoadFailed = errors.New("puzzle: source image could not be loaded")

	// ErrUnknownTile is returned for an original index that is not on the board.
	ErrUnknownTile = errors.New("puzzle: unknown tile")

	// ErrUnknownSlot is returned for a slot index outside the board.
	ErrUnknownSlot = errors.New("puzzle: unknown slot")

	// ErrSameSlot is returned when a swap names the same slot twice.
	ErrSameSlot = errors.New("puzzle: cannot swap a slot with itself")

	// ErrCorruptState is returned by Validate and Restore for layouts that
	// break the board invariants.
	ErrCorruptState = errors.New("puzzle: corrupt state")
)
