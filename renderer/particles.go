package renderer

import (
	rl "github.com/gen2brain/raylib-go/raylib"

	"github.com/pthm-cable/discsim/camera"
	"github.com/pthm-cable/discsim/engine"
)

// DiscRenderer draws a particle snapshot as filled circles, colored by
// each disc's scalar tracer value on a cold-to-hot gradient.
type DiscRenderer struct{}

// NewDiscRenderer creates a new disc renderer.
func NewDiscRenderer() *DiscRenderer {
	return &DiscRenderer{}
}

// Draw renders every disc in views at its world position, plus ghost
// copies near a periodic seam so discs crossing the boundary don't pop.
func (r *DiscRenderer) Draw(views []engine.ParticleView, radius float64, cam *camera.Camera) {
	px := float32(radius) * cam.Zoom
	for _, v := range views {
		color := scalarColor(v.Scalar)
		sx, sy := cam.WorldToScreen(float32(v.Pos.X), float32(v.Pos.Y))
		rl.DrawCircle(int32(sx), int32(sy), px, color)

		for _, g := range cam.GhostPositions(float32(v.Pos.X), float32(v.Pos.Y), px) {
			rl.DrawCircle(int32(g.X), int32(g.Y), px, color)
		}
	}
}

// scalarColor maps a scalar value in [0, 1] to a blue-to-red gradient.
// Values outside [0, 1] are clamped; the tracer field's own dynamics
// (wall relax / collision mix) keep it in range in
// practice, but a renderer must not assume that of arbitrary input.
func scalarColor(v float64) rl.Color {
	if v < 0 {
		v = 0
	}
	if v > 1 {
		v = 1
	}
	return rl.Color{
		R: uint8(255 * v),
		G: uint8(80 * (1 - absDelta(v, 0.5)*2)),
		B: uint8(255 * (1 - v)),
		A: 255,
	}
}

func absDelta(a, b float64) float64 {
	d := a - b
	if d < 0 {
		return -d
	}
	return d
}
