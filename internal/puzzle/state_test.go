package puzzle

import (
	"errors"
	"image"
	"math/rand"
	"testing"
)

func testImage(w, h int) image.Image {
	return image.NewRGBA(image.Rect(0, 0, w, h))
}

func newTestState(t *testing.T, gridSize int, seed int64) *State {
	t.Helper()
	g := NewGenerator(nil, rand.New(rand.NewSource(seed)))
	s, err := g.Generate(testImage(60, 60), gridSize)
	if err != nil {
		t.Fatalf("Generate(%d) failed: %v", gridSize, err)
	}
	return s
}

// checkBijection asserts invariants 1-4 via Validate plus an explicit slot scan.
func checkBijection(t *testing.T, s *State) {
	t.Helper()
	if err := s.Validate(); err != nil {
		t.Fatalf("Validate() = %v", err)
	}
	seenOrig := make(map[int]bool)
	seenSlot := make(map[int]bool)
	for _, v := range s.Tiles() {
		seenOrig[v.OriginalIndex] = true
		seenSlot[v.Slot] = true
	}
	if len(seenOrig) != s.Len() || len(seenSlot) != s.Len() {
		t.Fatalf("bijection broken: %d originals, %d slots, want %d", len(seenOrig), len(seenSlot), s.Len())
	}
}

func TestGenerateLayout(t *testing.T) {
	for _, size := range []int{1, 2, 3, 5} {
		s := newTestState(t, size, 42)
		if s.Len() != size*size {
			t.Errorf("grid %d: Len() = %d, want %d", size, s.Len(), size*size)
		}
		if s.GridSize() != size {
			t.Errorf("GridSize() = %d, want %d", s.GridSize(), size)
		}
		checkBijection(t, s)
	}
}

func TestGenerateNeverSolved(t *testing.T) {
	for seed := int64(0); seed < 200; seed++ {
		for _, size := range []int{1, 2, 3} {
			s := newTestState(t, size, seed)
			if s.IsSolved() {
				t.Fatalf("seed %d grid %d: fresh board is solved", seed, size)
			}
			if s.Status() != StatusUnsolved {
				t.Fatalf("seed %d: Status() = %v, want unsolved", seed, s.Status())
			}
			for _, v := range s.Tiles() {
				if v.Rotation == 0 {
					t.Fatalf("seed %d: tile %d spawned upright", seed, v.OriginalIndex)
				}
				if v.DisplayRotation != v.Rotation {
					t.Fatalf("seed %d: display %d != rotation %d", seed, v.DisplayRotation, v.Rotation)
				}
			}
		}
	}
}

func TestGenerateErrors(t *testing.T) {
	g := NewGenerator(nil, rand.New(rand.NewSource(1)))

	tests := []struct {
		name     string
		src      image.Image
		gridSize int
		want     error
	}{
		{"zero grid", testImage(10, 10), 0, ErrInvalidGridSize},
		{"negative grid", testImage(10, 10), -2, ErrInvalidGridSize},
		{"nil image", nil, 2, ErrLoadFailed},
		{"empty image", testImage(0, 0), 2, ErrLoadFailed},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s, err := g.Generate(tt.src, tt.gridSize)
			if !errors.Is(err, tt.want) {
				t.Errorf("Generate() error = %v, want %v", err, tt.want)
			}
			if s != nil {
				t.Error("Generate() returned a partial state on error")
			}
		})
	}
}

func TestGenerateSlicerFailure(t *testing.T) {
	boom := errors.New("decoder exploded")
	slicer := SlicerFunc(func(image.Image, int) ([]image.Image, error) {
		return nil, boom
	})
	g := NewGenerator(slicer, rand.New(rand.NewSource(1)))

	_, err := g.Generate(testImage(10, 10), 2)
	if !errors.Is(err, ErrLoadFailed) || !errors.Is(err, boom) {
		t.Errorf("Generate() error = %v, want ErrLoadFailed wrapping cause", err)
	}
}

func TestGenerateAssignsPieces(t *testing.T) {
	var pieces []image.Image
	slicer := SlicerFunc(func(_ image.Image, n int) ([]image.Image, error) {
		pieces = make([]image.Image, n*n)
		for i := range pieces {
			pieces[i] = testImage(i+1, 1)
		}
		return pieces, nil
	})
	g := NewGenerator(slicer, rand.New(rand.NewSource(7)))

	s, err := g.Generate(testImage(30, 30), 3)
	if err != nil {
		t.Fatalf("Generate() failed: %v", err)
	}
	for i, iEnd := 0, s.Len(); i < iEnd; i++ {
		tile, err := s.Tile(i)
		if err != nil {
			t.Fatalf("Tile(%d) failed: %v", i, err)
		}
		if tile.Image != pieces[i] {
			t.Errorf("tile %d got piece of width %d", i, tile.Image.Bounds().Dx())
		}
	}
}

func TestRotateCycle(t *testing.T) {
	s := newTestState(t, 3, 5)
	before, _ := s.Tile(4)

	for i := 0; i < 4; i++ {
		if _, err := s.Rotate(4); err != nil {
			t.Fatalf("Rotate() failed: %v", err)
		}
	}

	after, _ := s.Tile(4)
	if after.Rotation != before.Rotation {
		t.Errorf("rotation after 4 turns = %d, want %d", after.Rotation, before.Rotation)
	}
	if after.DisplayRotation != before.DisplayRotation+360 {
		t.Errorf("display rotation = %d, want %d", after.DisplayRotation, before.DisplayRotation+360)
	}
	if after.CurrentIndex != before.CurrentIndex {
		t.Error("rotate moved the tile")
	}
}

func TestRotateUnknownTile(t *testing.T) {
	s := newTestState(t, 2, 1)
	snapshot := s.Clone()

	for _, idx := range []int{-1, 4, 100} {
		if _, err := s.Rotate(idx); !errors.Is(err, ErrUnknownTile) {
			t.Errorf("Rotate(%d) error = %v, want ErrUnknownTile", idx, err)
		}
	}
	assertSameLayout(t, snapshot, s)
}

func TestSwapInvolution(t *testing.T) {
	s := newTestState(t, 3, 11)
	snapshot := s.Clone()

	if _, err := s.Swap(0, 8); err != nil {
		t.Fatalf("Swap() failed: %v", err)
	}
	a, _ := s.TileAt(0)
	b, _ := s.TileAt(8)
	origA, _ := snapshot.TileAt(8)
	origB, _ := snapshot.TileAt(0)
	if a.OriginalIndex != origA.OriginalIndex || b.OriginalIndex != origB.OriginalIndex {
		t.Error("swap did not exchange the slot occupants")
	}
	if a.Rotation != origA.Rotation || b.Rotation != origB.Rotation {
		t.Error("swap changed a rotation")
	}

	if _, err := s.Swap(0, 8); err != nil {
		t.Fatalf("Swap() failed: %v", err)
	}
	assertSameLayout(t, snapshot, s)
}

func TestSwapRejectsBadSlots(t *testing.T) {
	s := newTestState(t, 2, 3)
	snapshot := s.Clone()

	tests := []struct {
		name string
		a, b int
		want error
	}{
		{"same slot", 1, 1, ErrSameSlot},
		{"negative", -1, 2, ErrUnknownSlot},
		{"past end", 0, 4, ErrUnknownSlot},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := s.Swap(tt.a, tt.b); !errors.Is(err, tt.want) {
				t.Errorf("Swap(%d, %d) error = %v, want %v", tt.a, tt.b, err, tt.want)
			}
		})
	}
	assertSameLayout(t, snapshot, s)
}

func TestRandomOperationsPreserveInvariants(t *testing.T) {
	rng := rand.New(rand.NewSource(99))
	s := newTestState(t, 3, 99)

	for i := 0; i < 2000; i++ {
		if rng.Intn(2) == 0 {
			if _, err := s.Rotate(rng.Intn(s.Len())); err != nil {
				t.Fatalf("Rotate() failed: %v", err)
			}
		} else {
			a, b := rng.Intn(s.Len()), rng.Intn(s.Len())
			if a == b {
				continue
			}
			if _, err := s.Swap(a, b); err != nil {
				t.Fatalf("Swap() failed: %v", err)
			}
		}
		checkBijection(t, s)
	}
}

func TestIsSolved(t *testing.T) {
	solved := []Tile{
		{OriginalIndex: 0, CurrentIndex: 0},
		{OriginalIndex: 1, CurrentIndex: 1},
		{OriginalIndex: 2, CurrentIndex: 2},
		{OriginalIndex: 3, CurrentIndex: 3},
	}

	tests := []struct {
		name  string
		tweak func(tiles []Tile)
		want  bool
	}{
		{"solved", func([]Tile) {}, true},
		{"one rotated", func(ts []Tile) { ts[2].Rotation, ts[2].DisplayRotation = 180, 180 }, false},
		{"full turn is upright", func(ts []Tile) { ts[1].DisplayRotation = 720 }, true},
		{"two swapped", func(ts []Tile) { ts[0].CurrentIndex, ts[3].CurrentIndex = 3, 0 }, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tiles := append([]Tile(nil), solved...)
			tt.tweak(tiles)
			s, err := Restore(2, tiles)
			if err != nil {
				t.Fatalf("Restore() failed: %v", err)
			}
			if got := s.IsSolved(); got != tt.want {
				t.Errorf("IsSolved() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestSingleTileScenario(t *testing.T) {
	s := newTestState(t, 1, 2024)
	tile, _ := s.Tile(0)
	if tile.CurrentIndex != 0 {
		t.Fatalf("1x1 tile sits at slot %d", tile.CurrentIndex)
	}

	turns := (360 - tile.Rotation) / QuarterTurn
	for i := 0; i < turns; i++ {
		solved, err := s.Rotate(0)
		if err != nil {
			t.Fatalf("Rotate() failed: %v", err)
		}
		if last := i == turns-1; solved != last {
			t.Fatalf("turn %d: solved = %v, want %v", i+1, solved, last)
		}
	}
	if s.Status() != StatusSolved {
		t.Errorf("Status() = %v, want solved", s.Status())
	}
}

func TestSingleTileThreeTurns(t *testing.T) {
	s, err := Restore(1, []Tile{{OriginalIndex: 0, CurrentIndex: 0, Rotation: 90, DisplayRotation: 90}})
	if err != nil {
		t.Fatalf("Restore() failed: %v", err)
	}
	for i := 0; i < 3; i++ {
		if _, err := s.Rotate(0); err != nil {
			t.Fatalf("Rotate() failed: %v", err)
		}
	}
	if !s.IsSolved() {
		t.Error("three quarter turns from 90 should solve a 1x1 board")
	}
}

func TestManualSolve2x2(t *testing.T) {
	// Tile 0 at slot 3 turned 90, tile 3 at slot 0 turned 270,
	// tile 1 at slot 2 turned 180, tile 2 at slot 1 turned 90.
	s, err := Restore(2, []Tile{
		{OriginalIndex: 0, CurrentIndex: 3, Rotation: 90, DisplayRotation: 90},
		{OriginalIndex: 1, CurrentIndex: 2, Rotation: 180, DisplayRotation: 180},
		{OriginalIndex: 2, CurrentIndex: 1, Rotation: 90, DisplayRotation: 90},
		{OriginalIndex: 3, CurrentIndex: 0, Rotation: 270, DisplayRotation: 270},
	})
	if err != nil {
		t.Fatalf("Restore() failed: %v", err)
	}

	type op struct {
		rotate int
		a, b   int
	}
	ops := []op{
		{rotate: -1, a: 0, b: 3},
		{rotate: -1, a: 1, b: 2},
		{rotate: 0}, {rotate: 0}, {rotate: 0},
		{rotate: 1}, {rotate: 1},
		{rotate: 2}, {rotate: 2}, {rotate: 2},
		{rotate: 3},
	}

	for i, o := range ops {
		var solved bool
		if o.rotate >= 0 {
			solved, err = s.Rotate(o.rotate)
		} else {
			solved, err = s.Swap(o.a, o.b)
		}
		if err != nil {
			t.Fatalf("op %d failed: %v", i, err)
		}
		if last := i == len(ops)-1; solved != last {
			t.Fatalf("op %d: solved = %v, want %v", i, solved, last)
		}
	}
	if s.CorrectCount() != 4 {
		t.Errorf("CorrectCount() = %d, want 4", s.CorrectCount())
	}
}

func TestSolvedStatusLatches(t *testing.T) {
	s, err := Restore(1, []Tile{{OriginalIndex: 0, CurrentIndex: 0, Rotation: 270, DisplayRotation: 270}})
	if err != nil {
		t.Fatalf("Restore() failed: %v", err)
	}
	if _, err := s.Rotate(0); err != nil {
		t.Fatal(err)
	}
	if s.Status() != StatusSolved {
		t.Fatal("expected solved after final turn")
	}
	if _, err := s.Rotate(0); err != nil {
		t.Fatal(err)
	}
	if s.IsSolved() {
		t.Error("IsSolved() should reflect the extra turn")
	}
	if s.Status() != StatusSolved {
		t.Error("Status() must stay solved once reached")
	}
}

func TestTilesOrderedBySlot(t *testing.T) {
	s := newTestState(t, 3, 8)
	for slot, v := range s.Tiles() {
		if v.Slot != slot {
			t.Errorf("view %d reports slot %d", slot, v.Slot)
		}
		tile, _ := s.TileAt(slot)
		if tile.OriginalIndex != v.OriginalIndex {
			t.Errorf("slot %d: view tile %d, TileAt tile %d", slot, v.OriginalIndex, tile.OriginalIndex)
		}
		if v.Correct != tile.Correct() {
			t.Errorf("slot %d: Correct mismatch", slot)
		}
	}
}

func TestRestoreRejectsCorruptLayouts(t *testing.T) {
	tests := []struct {
		name  string
		tiles []Tile
	}{
		{"too few", []Tile{{OriginalIndex: 0}}},
		{"duplicate slot", []Tile{
			{OriginalIndex: 0, CurrentIndex: 0},
			{OriginalIndex: 1, CurrentIndex: 0},
			{OriginalIndex: 2, CurrentIndex: 2},
			{OriginalIndex: 3, CurrentIndex: 3},
		}},
		{"duplicate identity", []Tile{
			{OriginalIndex: 0, CurrentIndex: 0},
			{OriginalIndex: 0, CurrentIndex: 1},
			{OriginalIndex: 2, CurrentIndex: 2},
			{OriginalIndex: 3, CurrentIndex: 3},
		}},
		{"odd rotation", []Tile{
			{OriginalIndex: 0, CurrentIndex: 0, Rotation: 45, DisplayRotation: 45},
			{OriginalIndex: 1, CurrentIndex: 1},
			{OriginalIndex: 2, CurrentIndex: 2},
			{OriginalIndex: 3, CurrentIndex: 3},
		}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := Restore(2, tt.tiles); !errors.Is(err, ErrCorruptState) {
				t.Errorf("Restore() error = %v, want ErrCorruptState", err)
			}
		})
	}
}

func TestShuffleIsPermutation(t *testing.T) {
	rng := rand.New(rand.NewSource(3))
	for n := 0; n < 12; n++ {
		perm := Shuffle(n, rng)
		seen := make([]bool, n)
		for _, v := range perm {
			if v < 0 || v >= n || seen[v] {
				t.Fatalf("Shuffle(%d) = %v is not a permutation", n, perm)
			}
			seen[v] = true
		}
	}
}

func assertSameLayout(t *testing.T, want, got *State) {
	t.Helper()
	for i, iEnd := 0, want.Len(); i < iEnd; i++ {
		w, _ := want.Tile(i)
		g, _ := got.Tile(i)
		if w.CurrentIndex != g.CurrentIndex || w.Rotation != g.Rotation || w.DisplayRotation != g.DisplayRotation {
			t.Errorf("tile %d: got %+v, want %+v", i, g, w)
		}
	}
}
