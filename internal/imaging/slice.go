package imaging

import (
	"errors"
	"fmt"
	"image"

	xdraw "golang.org/x/image/draw"

	"github.com/vovakirdan/tiletwist/internal/core"
)

// Slicer cuts pictures into equal row-major pieces.
// It satisfies puzzle.Slicer.
type Slicer struct{}

// Slice returns gridSize*gridSize sub-images. Piece (r, c) is at index
// r*gridSize+c. Leftover pixels on the right and bottom edges are dropped.
func (Slicer) Slice(src image.Image, gridSize int) ([]image.Image, error) {
	if gridSize < 1 {
		return nil, fmt.Errorf("imaging: invalid grid size %d", gridSize)
	}
	b := src.Bounds()
	pw, ph := b.Dx()/gridSize, b.Dy()/gridSize
	if pw <= 0 || ph <= 0 {
		return nil, fmt.Errorf("imaging: %dx%d image is too small for a %dx%d grid", b.Dx(), b.Dy(), gridSize, gridSize)
	}

	// Copy into an RGBA once so SubImage shares one buffer.
	rgba, ok := src.(*image.RGBA)
	if !ok {
		rgba = image.NewRGBA(b)
		xdraw.Draw(rgba, b, src, b.Min, xdraw.Src)
	}

	pieces := make([]image.Image, 0, gridSize*gridSize)
	for row := 0; row < gridSize; row++ {
		for col := 0; col < gridSize; col++ {
			r := image.Rect(
				b.Min.X+col*pw,
				b.Min.Y+row*ph,
				b.Min.X+(col+1)*pw,
				b.Min.Y+(row+1)*ph,
			)
			pieces = append(pieces, rgba.SubImage(r))
		}
	}
	return pieces, nil
}

// Pixels is a small true-colour raster sized for the terminal.
type Pixels struct {
	W, H int
	Data []core.Color
}

// At returns the colour at (x, y), or ColorNone outside the raster.
func (p Pixels) At(x, y int) core.Color {
	if x < 0 || y < 0 || x >= p.W || y >= p.H {
		return core.ColorNone
	}
	return p.Data[y*p.W+x]
}

// Rasterize scales img to w x h pixels.
func Rasterize(img image.Image, w, h int) (Pixels, error) {
	if w <= 0 || h <= 0 {
		return Pixels{}, errors.New("imaging: raster size must be positive")
	}
	if img == nil {
		return Pixels{}, errors.New("imaging: nil image")
	}

	dst := image.NewRGBA(image.Rect(0, 0, w, h))
	xdraw.CatmullRom.Scale(dst, dst.Bounds(), img, img.Bounds(), xdraw.Src, nil)

	px := Pixels{W: w, H: h, Data: make([]core.Color, w*h)}
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			i := dst.PixOffset(x, y)
			px.Data[y*w+x] = core.RGB(dst.Pix[i], dst.Pix[i+1], dst.Pix[i+2])
		}
	}
	return px, nil
}

// Rotate turns a raster clockwise by degrees (any multiple of 90, including
// values beyond 360). Non-square rasters swap their dimensions on odd turns.
func Rotate(p Pixels, degrees int) Pixels {
	turns := ((degrees/90)%4 + 4) % 4
	out := p
	for i := 0; i < turns; i++ {
		out = rotate90(out)
	}
	return out
}

func rotate90(p Pixels) Pixels {
	out := Pixels{W: p.H, H: p.W, Data: make([]core.Color, len(p.Data))}
	for y := 0; y < p.H; y++ {
		for x := 0; x < p.W; x++ {
			// (x, y) moves to (H-1-y, x)
			nx, ny := p.H-1-y, x
			out.Data[ny*out.W+nx] = p.Data[y*p.W+x]
		}
	}
	return out
}
