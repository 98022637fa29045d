// Package patterns provides the built-in procedural stage pictures.
// Every picture is asymmetric so that a rotated or misplaced tile is
// visibly wrong.
package patterns

import (
	"image"
	"image/color"
	"math"

	"github.com/vovakirdan/tiletwist/internal/registry"
)

func init() {
	registry.Register("sunset", "Sunset", Sunset)
	registry.Register("rings", "Rings", Rings)
	registry.Register("checker", "Checker", Checker)
	registry.Register("waves", "Waves", Waves)
	registry.Register("diamond", "Diamond", Diamond)
}

// paint fills an image by calling f with normalised coordinates in [0, 1).
func paint(w, h int, f func(u, v float64) color.RGBA) *image.RGBA {
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			u := (float64(x) + 0.5) / float64(w)
			v := (float64(y) + 0.5) / float64(h)
			img.SetRGBA(x, y, f(u, v))
		}
	}
	return img
}

func lerp(a, b uint8, t float64) uint8 {
	return uint8(float64(a) + (float64(b)-float64(a))*t)
}

func mix(a, b color.RGBA, t float64) color.RGBA {
	t = math.Max(0, math.Min(1, t))
	return color.RGBA{lerp(a.R, b.R, t), lerp(a.G, b.G, t), lerp(a.B, b.B, t), 0xff}
}

// Sunset is a sky gradient with a sun in the upper left and a dark hill.
func Sunset(w, h int) image.Image {
	sky1 := color.RGBA{0x2b, 0x1a, 0x5e, 0xff}
	sky2 := color.RGBA{0xff, 0x8c, 0x42, 0xff}
	sun := color.RGBA{0xff, 0xe0, 0x66, 0xff}
	hill := color.RGBA{0x1d, 0x3b, 0x2a, 0xff}

	return paint(w, h, func(u, v float64) color.RGBA {
		if v > 0.7+0.15*math.Sin(u*math.Pi*1.3) {
			return hill
		}
		if math.Hypot(u-0.3, v-0.35) < 0.14 {
			return sun
		}
		return mix(sky1, sky2, v*1.2)
	})
}

// Rings are concentric bands around an off-centre point.
func Rings(w, h int) image.Image {
	a := color.RGBA{0x0f, 0x76, 0x6e, 0xff}
	b := color.RGBA{0xf5, 0xf5, 0xdc, 0xff}
	c := color.RGBA{0xdc, 0x26, 0x26, 0xff}

	return paint(w, h, func(u, v float64) color.RGBA {
		d := math.Hypot(u-0.35, v-0.4)
		switch int(d*9) % 3 {
		case 0:
			return a
		case 1:
			return b
		default:
			return c
		}
	})
}

// Checker is a checkerboard tinted by a diagonal gradient.
func Checker(w, h int) image.Image {
	dark := color.RGBA{0x1e, 0x29, 0x3b, 0xff}
	light := color.RGBA{0x38, 0xbd, 0xf8, 0xff}
	warm := color.RGBA{0xf4, 0x72, 0xb6, 0xff}

	return paint(w, h, func(u, v float64) color.RGBA {
		if (int(u*6)+int(v*6))%2 == 0 {
			return dark
		}
		return mix(light, warm, (u+v)/2)
	})
}

// Waves are horizontal sine stripes that grow taller to the right.
func Waves(w, h int) image.Image {
	deep := color.RGBA{0x03, 0x1b, 0x4e, 0xff}
	foam := color.RGBA{0xa5, 0xf3, 0xfc, 0xff}
	sand := color.RGBA{0xfd, 0xe6, 0x8a, 0xff}

	return paint(w, h, func(u, v float64) color.RGBA {
		if v > 0.85-0.1*u {
			return sand
		}
		s := math.Sin((v*8 + math.Sin(u*math.Pi*2)*u) * math.Pi)
		return mix(deep, foam, (s+1)/2)
	})
}

// Diamond is a nested diamond with a marker in one corner.
func Diamond(w, h int) image.Image {
	bg := color.RGBA{0x31, 0x2e, 0x81, 0xff}
	fg := color.RGBA{0xfb, 0xbf, 0x24, 0xff}
	inner := color.RGBA{0xef, 0x44, 0x44, 0xff}
	marker := color.RGBA{0xf8, 0xfa, 0xfc, 0xff}

	return paint(w, h, func(u, v float64) color.RGBA {
		if u < 0.15 && v < 0.15 {
			return marker
		}
		d := math.Abs(u-0.5) + math.Abs(v-0.5)
		switch {
		case d < 0.15:
			return inner
		case d < 0.4:
			return mix(fg, inner, d/0.4)
		default:
			return mix(bg, fg, (u*v)*0.6)
		}
	})
}
