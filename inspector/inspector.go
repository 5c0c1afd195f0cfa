// Package inspector mirrors a simulation window's particle snapshot
// into an ECS world so a running viewer can click a disc and read back
// its state. This is a display-side concern only: the simulation core
// never imports ark, for the reasons recorded in DESIGN.md.
package inspector

import (
	"fmt"

	rl "github.com/gen2brain/raylib-go/raylib"
	"github.com/mlange-42/ark/ecs"

	"github.com/pthm-cable/discsim/camera"
	"github.com/pthm-cable/discsim/engine"
	"github.com/pthm-cable/discsim/vecmath"
)

// Position, Velocity and Scalar are the ark components each mirrored
// disc carries — one entity per ParticleID, created once and updated
// in place every window (particle count is fixed for a run).
type Position struct{ X, Y float64 }
type Velocity struct{ X, Y float64 }
type Scalar struct{ V float64 }

// Inspector owns the mirrored ECS world and the current selection.
type Inspector struct {
	world    ecs.World
	mapper   *ecs.Map3[Position, Velocity, Scalar]
	entities []ecs.Entity

	selected    ecs.Entity
	hasSelected bool
}

// New builds a mirrored world with n disc entities, one per particle
// index in the Simulator being viewed.
func New(n int) *Inspector {
	world := ecs.NewWorld()
	mapper := ecs.NewMap3[Position, Velocity, Scalar](world)
	entities := make([]ecs.Entity, n)
	for i := 0; i < n; i++ {
		entities[i] = mapper.NewEntity(&Position{}, &Velocity{}, &Scalar{})
	}
	return &Inspector{world: world, mapper: mapper, entities: entities}
}

// Sync copies a fresh ParticlesView snapshot into the mirrored world.
func (ins *Inspector) Sync(views []engine.ParticleView) {
	for i, v := range views {
		pos, vel, sca := ins.mapper.Get(ins.entities[i])
		pos.X, pos.Y = v.Pos.X, v.Pos.Y
		vel.X, vel.Y = v.Vel.X, v.Vel.Y
		sca.V = v.Scalar
	}
}

// HandleClick selects the disc nearest the cursor, by minimum-image
// distance, if the cursor falls within radius of it. A right click or
// a click that hits nothing deselects.
func (ins *Inspector) HandleClick(mouseX, mouseY float32, cam *camera.Camera, lengths vecmath.Vector2, radius float64) {
	if rl.IsMouseButtonPressed(rl.MouseButtonRight) || rl.IsKeyPressed(rl.KeyEscape) {
		ins.hasSelected = false
		return
	}
	if !rl.IsMouseButtonPressed(rl.MouseButtonLeft) {
		return
	}

	wx, wy := cam.ScreenToWorld(mouseX, mouseY)
	cursor := vecmath.Vector2{X: float64(wx), Y: float64(wy)}

	best := -1
	bestDist := radius
	for i, e := range ins.entities {
		pos, _, _ := ins.mapper.Get(e)
		d := vecmath.MinimumDistance(lengths, cursor, vecmath.Vector2{X: pos.X, Y: pos.Y})
		if d <= bestDist {
			best = i
			bestDist = d
		}
	}
	if best >= 0 {
		ins.selected = ins.entities[best]
		ins.hasSelected = true
	} else {
		ins.hasSelected = false
	}
}

// Draw renders a small panel describing the selected disc's state, if
// any is selected.
func (ins *Inspector) Draw(screenW int32) {
	if !ins.hasSelected {
		return
	}
	pos, vel, sca := ins.mapper.Get(ins.selected)

	const w, h = 220, 90
	x, y := screenW-w-10, int32(10)
	rl.DrawRectangle(x, y, w, h, rl.Color{R: 30, G: 30, B: 35, A: 240})
	rl.DrawRectangleLines(x, y, w, h, rl.Color{R: 70, G: 70, B: 80, A: 255})
	rl.DrawText("DISC", x+8, y+6, 14, rl.White)
	rl.DrawText(fmt.Sprintf("pos  (%.2f, %.2f)", pos.X, pos.Y), x+8, y+26, 12, rl.RayWhite)
	rl.DrawText(fmt.Sprintf("vel  (%.2f, %.2f)", vel.X, vel.Y), x+8, y+44, 12, rl.RayWhite)
	rl.DrawText(fmt.Sprintf("scalar %.3f", sca.V), x+8, y+62, 12, rl.RayWhite)
}
