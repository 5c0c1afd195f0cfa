package renderer

import (
	"image"
	"image/color"
	"image/png"
	"math"
	"os"

	"github.com/pthm-cable/discsim/engine"
)

// WriteFrame rasterizes a particle snapshot to a PNG at path, scaling
// the domain [0,lengthX]x[0,lengthY] to a w x h canvas. Used by
// cmd/headless, which has no raylib window to draw into.
func WriteFrame(path string, views []engine.ParticleView, radius, lengthX, lengthY float64, w, h int) error {
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	bg := color.RGBA{R: 12, G: 12, B: 18, A: 255}
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			img.Set(x, y, bg)
		}
	}

	scaleX := float64(w) / lengthX
	scaleY := float64(h) / lengthY
	px := radius * math.Min(scaleX, scaleY)
	if px < 1 {
		px = 1
	}

	for _, v := range views {
		cx := v.Pos.X * scaleX
		cy := float64(h) - v.Pos.Y*scaleY
		drawDisc(img, cx, cy, px, scalarRGBA(v.Scalar))
	}

	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()
	return png.Encode(f, img)
}

func scalarRGBA(v float64) color.RGBA {
	c := scalarColor8(v)
	return color.RGBA{R: c[0], G: c[1], B: c[2], A: 255}
}

func scalarColor8(v float64) [3]uint8 {
	if v < 0 {
		v = 0
	}
	if v > 1 {
		v = 1
	}
	return [3]uint8{
		uint8(255 * v),
		uint8(80 * (1 - absDelta(v, 0.5)*2)),
		uint8(255 * (1 - v)),
	}
}

func drawDisc(img *image.RGBA, cx, cy, radius float64, col color.RGBA) {
	r2 := radius * radius
	minX, maxX := int(cx-radius), int(cx+radius)
	minY, maxY := int(cy-radius), int(cy+radius)
	bounds := img.Bounds()
	for y := minY; y <= maxY; y++ {
		if y < bounds.Min.Y || y >= bounds.Max.Y {
			continue
		}
		for x := minX; x <= maxX; x++ {
			if x < bounds.Min.X || x >= bounds.Max.X {
				continue
			}
			dx, dy := float64(x)-cx, float64(y)-cy
			if dx*dx+dy*dy <= r2 {
				img.Set(x, y, col)
			}
		}
	}
}
