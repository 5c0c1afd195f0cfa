// Command headless runs the disc simulation with no display attached:
// it advances the simulator window by window, writes telemetry CSV and
// periodic PNG snapshots, and exits after a fixed duration.
package main

import (
	"flag"
	"fmt"
	"log"
	"log/slog"
	"os"

	"github.com/pthm-cable/discsim/config"
	"github.com/pthm-cable/discsim/engine"
	"github.com/pthm-cable/discsim/renderer"
	"github.com/pthm-cable/discsim/telemetry"
)

func main() {
	configPath := flag.String("config", "", "config YAML file (empty = use defaults)")
	duration := flag.Float64("duration", 100.0, "simulation seconds to run")
	outputDir := flag.String("output", "", "directory for windows.csv, config.yaml and frame snapshots (empty disables all output)")
	frameEvery := flag.Int("frame-every", 0, "write a PNG snapshot every N windows (0 disables)")
	frameSize := flag.Int("frame-size", 512, "frame snapshot edge length in pixels")
	flag.Parse()

	cfg, err := config.Load(*configPath)
	if err != nil {
		log.Fatalf("loading config: %v", err)
	}

	sim, err := engine.New(cfg)
	if err != nil {
		log.Fatalf("building simulator: %v", err)
	}

	telemetry.SetLogWriter(os.Stdout)

	om, err := telemetry.NewOutputManager(*outputDir)
	if err != nil {
		log.Fatalf("opening output directory: %v", err)
	}
	defer om.Close()
	if err := om.WriteConfig(cfg); err != nil {
		log.Printf("writing config.yaml: %v", err)
	}

	collector := telemetry.NewCollector()
	windows := int(*duration / cfg.Sync.Rate)
	if windows < 1 {
		windows = 1
	}

	for w := 0; w < windows; w++ {
		sim.Integrate()
		stats := collector.Sample(sim)
		telemetry.LogWindow(stats)
		if err := om.WriteWindow(stats); err != nil {
			log.Printf("writing window stats: %v", err)
		}

		if *frameEvery > 0 && w%*frameEvery == 0 && om.Dir() != "" {
			path := fmt.Sprintf("%s/frame_%06d.png", om.Dir(), w)
			if err := renderer.WriteFrame(path, sim.ParticlesView(), sim.Radius(), cfg.Domain.LengthX, cfg.Domain.LengthY, *frameSize, *frameSize); err != nil {
				log.Printf("writing frame %s: %v", path, err)
			}
		}
	}

	slog.Info("run complete", "windows", windows, "time", sim.Time())
}
