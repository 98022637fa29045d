package puzzle

import (
	"fmt"
	"image"
)

// Rand is the randomness the scrambler needs. *math/rand.Rand satisfies it.
type Rand interface {
	Intn(n int) int
}

// Slicer cuts a source picture into gridSize*gridSize sub-images in
// row-major order.
type Slicer interface {
	Slice(src image.Image, gridSize int) ([]image.Image, error)
}

// SlicerFunc adapts a function to the Slicer interface.
type SlicerFunc func(src image.Image, gridSize int) ([]image.Image, error)

// Slice calls f(src, gridSize).
func (f SlicerFunc) Slice(src image.Image, gridSize int) ([]image.Image, error) {
	return f(src, gridSize)
}

// scrambleRotations are the starting orientations; 0 is never drawn.
var scrambleRotations = [...]int{90, 180, 270}

// Generator produces freshly scrambled boards.
type Generator struct {
	slicer Slicer
	rng    Rand
}

// NewGenerator creates a generator. A nil slicer yields tiles without images.
func NewGenerator(slicer Slicer, rng Rand) *Generator {
	return &Generator{slicer: slicer, rng: rng}
}

// Generate slices src into a gridSize x gridSize board, lays it out solved
// and scrambles it. No partial state is returned on error.
func (g *Generator) Generate(src image.Image, gridSize int) (*State, error) {
	if gridSize < 1 {
		return nil, ErrInvalidGridSize
	}
	if src == nil {
		return nil, fmt.Errorf("%w: no image", ErrLoadFailed)
	}
	if b := src.Bounds(); b.Dx() <= 0 || b.Dy() <= 0 {
		return nil, fmt.Errorf("%w: image has no area (%dx%d)", ErrLoadFailed, b.Dx(), b.Dy())
	}

	var pieces []image.Image
	if g.slicer != nil {
		var err error
		pieces, err = g.slicer.Slice(src, gridSize)
		if err != nil {
			return nil, fmt.Errorf("%w: %w", ErrLoadFailed, err)
		}
	}

	s, err := NewSolved(gridSize, pieces)
	if err != nil {
		return nil, err
	}
	s.Scramble(g.rng)
	return s, nil
}

// Scramble gives every tile a random non-zero rotation and a uniformly
// random slot.
func (s *State) Scramble(rng Rand) {
	for i := range s.tiles {
		rot := scrambleRotations[rng.Intn(len(scrambleRotations))]
		s.tiles[i].Rotation = rot
		s.tiles[i].DisplayRotation = rot
	}

	perm := Shuffle(len(s.tiles), rng)
	for i, slot := range perm {
		s.tiles[i].CurrentIndex = slot
		s.slots[slot] = i
	}

	s.status = StatusUnsolved
	if s.IsSolved() {
		s.status = StatusSolved
	}
}

// Shuffle returns a uniformly random permutation of 0..n-1 (Fisher-Yates).
func Shuffle(n int, rng Rand) []int {
	perm := make([]int, n)
	for i := range perm {
		perm[i] = i
	}
	for i := n - 1; i > 0; i-- {
		j := rng.Intn(i + 1)
		perm[i], perm[j] = perm[j], perm[i]
	}
	return perm
}
