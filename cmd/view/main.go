// Command view runs the disc simulation in an interactive raylib
// window: pan/zoom, click-to-inspect, and live telemetry.
package main

import (
	"flag"
	"fmt"
	"log"
	"os"

	gui "github.com/gen2brain/raylib-go/raygui"
	rl "github.com/gen2brain/raylib-go/raylib"

	"github.com/pthm-cable/discsim/camera"
	"github.com/pthm-cable/discsim/config"
	"github.com/pthm-cable/discsim/engine"
	"github.com/pthm-cable/discsim/inspector"
	"github.com/pthm-cable/discsim/renderer"
	"github.com/pthm-cable/discsim/telemetry"
	"github.com/pthm-cable/discsim/vecmath"
)

const (
	screenWidth  = 1280
	screenHeight = 800
)

func main() {
	configPath := flag.String("config", "", "config YAML file (empty = use defaults)")
	logInterval := flag.Int("log", 0, "log telemetry every N windows (0 = disabled)")
	logFile := flag.String("logfile", "", "write logs to file instead of stdout")
	outputDir := flag.String("output", "", "directory for windows.csv and config.yaml (empty disables)")
	flag.Parse()

	if *logFile != "" {
		f, err := os.Create(*logFile)
		if err != nil {
			log.Fatalf("creating log file: %v", err)
		}
		defer f.Close()
		telemetry.SetLogWriter(f)
	}

	cfg, err := config.Load(*configPath)
	if err != nil {
		log.Fatalf("loading config: %v", err)
	}

	sim, err := engine.New(cfg)
	if err != nil {
		log.Fatalf("building simulator: %v", err)
	}

	om, err := telemetry.NewOutputManager(*outputDir)
	if err != nil {
		log.Fatalf("opening output directory: %v", err)
	}
	defer om.Close()
	if err := om.WriteConfig(cfg); err != nil {
		log.Printf("writing config.yaml: %v", err)
	}

	rl.InitWindow(screenWidth, screenHeight, "Disc Simulation")
	defer rl.CloseWindow()
	rl.SetTargetFPS(60)

	cam := camera.New(screenWidth, screenHeight, float32(cfg.Domain.LengthX), float32(cfg.Domain.LengthY),
		cfg.Domain.PeriodicX, cfg.Domain.PeriodicY)
	disc := renderer.NewDiscRenderer()
	insp := inspector.New(cfg.Particles.Count)
	collector := telemetry.NewCollector()

	paused := false
	window := 0

	for !rl.WindowShouldClose() {
		handleCameraInput(cam)

		if rl.IsKeyPressed(rl.KeySpace) {
			paused = !paused
		}

		if !paused {
			sim.Integrate()
			window++
			stats := collector.Sample(sim)
			if err := om.WriteWindow(stats); err != nil {
				log.Printf("writing window stats: %v", err)
			}
			if *logInterval > 0 && window%*logInterval == 0 {
				telemetry.LogWindow(stats)
			}
		}

		views := sim.ParticlesView()
		insp.Sync(views)
		mouse := rl.GetMousePosition()
		insp.HandleClick(mouse.X, mouse.Y, cam,
			vecmath.Vector2{X: cfg.Domain.LengthX, Y: cfg.Domain.LengthY}, sim.Radius())

		rl.BeginDrawing()
		rl.ClearBackground(rl.Color{R: 12, G: 12, B: 18, A: 255})
		disc.Draw(views, sim.Radius(), cam)
		insp.Draw(screenWidth)
		drawHUD(sim, window, paused)
		drawDynamicsPanel(sim)
		rl.EndDrawing()
	}
}

// drawDynamicsPanel draws a small raygui slider panel for live-tuning
// the restitution coefficient and pseudo-gravity bias.
func drawDynamicsPanel(sim *engine.Simulator) {
	const x, y, w = 10.0, 60.0, 220.0
	rl.DrawRectangle(x-4, y-4, w+8, 112, rl.Color{R: 20, G: 25, B: 30, A: 220})

	restitution, gravity := sim.Dynamics()

	rl.DrawText("restitution", x, y, 12, rl.LightGray)
	newRestitution := gui.SliderBar(rl.Rectangle{X: x, Y: y + 16, Width: w, Height: 18}, "0.5", "1.0", float32(restitution), 0.5, 1.0)

	rl.DrawText("gravity x", x, y+40, 12, rl.LightGray)
	newGravityX := gui.SliderBar(rl.Rectangle{X: x, Y: y + 56, Width: w, Height: 18}, "-0.5", "0.5", float32(gravity.X), -0.5, 0.5)

	rl.DrawText("gravity y", x, y+80, 12, rl.LightGray)
	newGravityY := gui.SliderBar(rl.Rectangle{X: x, Y: y + 96, Width: w, Height: 18}, "-0.5", "0.5", float32(gravity.Y), -0.5, 0.5)

	if float64(newRestitution) != restitution || float64(newGravityX) != gravity.X || float64(newGravityY) != gravity.Y {
		sim.SetDynamics(float64(newRestitution), vecmath.Vector2{X: float64(newGravityX), Y: float64(newGravityY)})
	}
}

func handleCameraInput(cam *camera.Camera) {
	if rl.IsMouseButtonDown(rl.MouseButtonMiddle) {
		d := rl.GetMouseDelta()
		cam.Pan(-d.X, -d.Y)
	}
	if wheel := rl.GetMouseWheelMove(); wheel != 0 {
		cam.ZoomBy(1 + wheel*0.1)
	}
	if rl.IsKeyPressed(rl.KeyR) {
		cam.Reset()
	}
}

func drawHUD(sim *engine.Simulator, window int, paused bool) {
	status := "running"
	if paused {
		status = "paused"
	}
	rl.DrawText("Disc Simulation", 10, 10, 20, rl.White)
	rl.DrawText(fmt.Sprintf("t=%.2f window=%d fps=%d (%s)", sim.Time(), window, rl.GetFPS(), status),
		10, 35, 16, rl.LightGray)
	rl.DrawText("SPACE: pause | wheel: zoom | middle-drag: pan | R: reset camera | click: inspect",
		10, int32(screenHeight-25), 14, rl.Gray)
}
