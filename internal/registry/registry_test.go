package registry

import (
	"image"
	"image/color"
	"testing"
)

func solid(w, h int) image.Image {
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	for i := 0; i < len(img.Pix); i += 4 {
		img.Pix[i+3] = 0xff
	}
	return img
}

func TestRegisterAndCreate(t *testing.T) {
	Register("test-solid", "Solid", solid)

	if !Exists("test-solid") {
		t.Fatal("registered pattern should exist")
	}

	img, err := Create("test-solid", 8, 4)
	if err != nil {
		t.Fatalf("Create() failed: %v", err)
	}
	if b := img.Bounds(); b.Dx() != 8 || b.Dy() != 4 {
		t.Errorf("Create() size = %v", b)
	}
	if c := color.RGBAModel.Convert(img.At(0, 0)).(color.RGBA); c.A != 0xff {
		t.Errorf("unexpected pixel %v", c)
	}

	found := false
	for _, p := range List() {
		if p.Name == "test-solid" && p.Title == "Solid" {
			found = true
		}
	}
	if !found {
		t.Error("List() does not include the registered pattern")
	}
}

func TestCreateErrors(t *testing.T) {
	if _, err := Create("no-such-pattern", 4, 4); err == nil {
		t.Error("Create() should fail for unknown patterns")
	}

	Register("test-size", "Size", solid)
	if _, err := Create("test-size", 0, 4); err == nil {
		t.Error("Create() should reject empty sizes")
	}
}

func TestRegisterDuplicatePanics(t *testing.T) {
	Register("test-dup", "Dup", solid)
	defer func() {
		if recover() == nil {
			t.Error("duplicate Register should panic")
		}
	}()
	Register("test-dup", "Dup", solid)
}
