package main

import (
	"math"
	"sync"

	"github.com/pthm-cable/discsim/config"
	"github.com/pthm-cable/discsim/engine"
	"github.com/pthm-cable/discsim/telemetry"
)

// FitnessEvaluator runs headless simulations and scores how closely
// their late-time window statistics match a target energy level and
// scalar-mixing quality.
type FitnessEvaluator struct {
	params        *ParamVector
	windows       int
	settleWindows int
	seeds         []int64
	baseConfig    *config.Config
	targetEnergy  float64
	targetMixing  float64

	mu          sync.Mutex
	bestFitness float64
	lastWindows []telemetry.WindowStats
}

// NewFitnessEvaluator creates a new evaluator. windows is the number of
// synchronisation barriers to run per seed; settleWindows of those are
// discarded as warmup before scoring.
func NewFitnessEvaluator(params *ParamVector, windows, settleWindows int, seeds []int64, baseCfg *config.Config, targetEnergy, targetMixing float64) *FitnessEvaluator {
	return &FitnessEvaluator{
		params:        params,
		windows:       windows,
		settleWindows: settleWindows,
		seeds:         seeds,
		baseConfig:    baseCfg,
		targetEnergy:  targetEnergy,
		targetMixing:  targetMixing,
		bestFitness:   math.Inf(1),
	}
}

// LastWindows returns the window statistics of the best-scoring seed
// from the best-averaging evaluation so far.
func (fe *FitnessEvaluator) LastWindows() []telemetry.WindowStats {
	fe.mu.Lock()
	defer fe.mu.Unlock()
	return fe.lastWindows
}

// Evaluate computes fitness for a parameter vector (lower = better):
// squared error of the late-time mean kinetic energy per particle and
// scalar-field spread against their targets, averaged over seeds.
func (fe *FitnessEvaluator) Evaluate(x []float64) float64 {
	results := make([]seedResult, len(fe.seeds))
	var wg sync.WaitGroup

	for i, seed := range fe.seeds {
		wg.Add(1)
		go func(idx int, s int64) {
			defer wg.Done()
			results[idx] = fe.runSeed(x, s)
		}(i, seed)
	}
	wg.Wait()

	var total float64
	bestIdx := 0
	for i, r := range results {
		total += r.score
		if r.score < results[bestIdx].score {
			bestIdx = i
		}
	}

	fe.mu.Lock()
	avg := total / float64(len(results))
	if avg < fe.bestFitness {
		fe.bestFitness = avg
		fe.lastWindows = results[bestIdx].windows
	}
	fe.mu.Unlock()

	return avg
}

type seedResult struct {
	score   float64
	windows []telemetry.WindowStats
}

func (fe *FitnessEvaluator) runSeed(x []float64, seed int64) seedResult {
	cfg := fe.copyConfig()
	fe.params.ApplyToConfig(cfg, x)
	cfg.Particles.Seed = seedToUnit(seed)

	sim, err := engine.New(cfg)
	if err != nil {
		return seedResult{score: 1e9}
	}

	collector := telemetry.NewCollector()
	collected := make([]telemetry.WindowStats, 0, fe.windows)
	for w := 0; w < fe.windows; w++ {
		sim.Integrate()
		collected = append(collected, collector.Sample(sim))
	}

	scored := collected
	if len(scored) > fe.settleWindows {
		scored = scored[fe.settleWindows:]
	}
	if len(scored) == 0 {
		return seedResult{score: 1e9, windows: collected}
	}

	var energySum, mixingSum, maxSpeed float64
	for _, w := range scored {
		perParticle := w.KineticEnergy
		if w.Particles > 0 {
			perParticle /= float64(w.Particles)
		}
		energySum += perParticle
		mixingSum += w.ScalarStdDev
		if w.MaxSpeed > maxSpeed {
			maxSpeed = w.MaxSpeed
		}
	}
	n := float64(len(scored))
	energyErr := energySum/n - fe.targetEnergy
	mixingErr := mixingSum/n - fe.targetMixing

	score := energyErr*energyErr + mixingErr*mixingErr
	if maxSpeed > 50 {
		score += (maxSpeed - 50) * (maxSpeed - 50)
	}
	return seedResult{score: score, windows: collected}
}

// copyConfig creates a config carrying the base run's domain and
// particle setup, ready for ParamVector.ApplyToConfig to fill in the
// dynamics under test.
func (fe *FitnessEvaluator) copyConfig() *config.Config {
	cfg, _ := config.Load("")
	cfg.Domain = fe.baseConfig.Domain
	cfg.Particles = fe.baseConfig.Particles
	cfg.Boundary = fe.baseConfig.Boundary
	cfg.Sync = fe.baseConfig.Sync
	cfg.Telemetry = fe.baseConfig.Telemetry
	return cfg
}

// seedToUnit maps an integer seed into the [0,1) range config.Particles.Seed requires.
func seedToUnit(seed int64) float64 {
	const m = 1 << 31
	v := seed % m
	if v < 0 {
		v += m
	}
	return float64(v) / float64(m)
}
