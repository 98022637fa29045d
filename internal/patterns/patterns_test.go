package patterns

import (
	"image"
	"testing"

	"github.com/vovakirdan/tiletwist/internal/registry"
)

func TestPatternsRegistered(t *testing.T) {
	for _, name := range []string{"sunset", "rings", "checker", "waves", "diamond"} {
		if !registry.Exists(name) {
			t.Errorf("pattern %q not registered", name)
		}
	}
}

// A picture that looks the same after a quarter turn would make the
// rotation axis of the puzzle unreadable.
func TestPatternsAreNotRotationSymmetric(t *testing.T) {
	const size = 32
	for _, info := range registry.List() {
		img, err := registry.Create(info.Name, size, size)
		if err != nil {
			t.Fatalf("Create(%q) failed: %v", info.Name, err)
		}
		if quarterTurnSymmetric(img, size) {
			t.Errorf("pattern %q is unchanged by a quarter turn", info.Name)
		}
	}
}

func quarterTurnSymmetric(img image.Image, size int) bool {
	for y := 0; y < size; y++ {
		for x := 0; x < size; x++ {
			r1, g1, b1, _ := img.At(x, y).RGBA()
			r2, g2, b2, _ := img.At(size-1-y, x).RGBA()
			if r1 != r2 || g1 != g2 || b1 != b2 {
				return false
			}
		}
	}
	return true
}
