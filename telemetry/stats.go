// Package telemetry samples, logs, and persists the diagnostic
// quantities of a running simulation: per-window momentum, kinetic
// energy, and scalar-field distribution.
package telemetry

import (
	"log/slog"
	"math"

	"gonum.org/v1/gonum/stat"
)

// WindowStats holds the aggregated state of one integration window: the
// system's total momentum and kinetic energy alongside the scalar
// tracer field's distribution.
type WindowStats struct {
	WindowEnd     float64 `csv:"window_end"`
	Particles     int     `csv:"particles"`
	MomentumX     float64 `csv:"momentum_x"`
	MomentumY     float64 `csv:"momentum_y"`
	KineticEnergy float64 `csv:"kinetic_energy"`
	MaxSpeed      float64 `csv:"max_speed"`
	ScalarMean    float64 `csv:"scalar_mean"`
	ScalarStdDev  float64 `csv:"scalar_stddev"`
}

// computeScalarStats wraps gonum/stat's mean/variance, used on the
// per-window snapshot of every particle's scalar value. The snapshot is
// the whole population, so the unbiased variance is rescaled to the
// population variance.
func computeScalarStats(values []float64) (mean, stddev float64) {
	if len(values) == 0 {
		return 0, 0
	}
	mean, variance := stat.MeanVariance(values, nil)
	n := float64(len(values))
	variance *= (n - 1) / n
	if variance < 0 {
		variance = 0
	}
	return mean, math.Sqrt(variance)
}

// LogValue implements slog.LogValuer for structured logging.
func (s WindowStats) LogValue() slog.Value {
	return slog.GroupValue(
		slog.Float64("window_end", s.WindowEnd),
		slog.Int("particles", s.Particles),
		slog.Float64("momentum_x", s.MomentumX),
		slog.Float64("momentum_y", s.MomentumY),
		slog.Float64("kinetic_energy", s.KineticEnergy),
		slog.Float64("max_speed", s.MaxSpeed),
		slog.Float64("scalar_mean", s.ScalarMean),
		slog.Float64("scalar_stddev", s.ScalarStdDev),
	)
}
