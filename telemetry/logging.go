package telemetry

import (
	"fmt"
	"io"
	"log/slog"
)

// logWriter is the destination for Logf output.
var logWriter io.Writer

// SetLogWriter sets the log output destination.
func SetLogWriter(w io.Writer) {
	logWriter = w
}

// Logf writes a formatted log message to logWriter, or stdout if none
// has been set.
func Logf(format string, args ...interface{}) {
	msg := fmt.Sprintf(format, args...)
	if logWriter != nil {
		fmt.Fprintln(logWriter, msg)
		return
	}
	fmt.Println(msg)
}

// LogWindow logs a window's stats both as a human-readable line and as
// a structured slog record.
func LogWindow(s WindowStats) {
	Logf("t=%.3f particles=%d |p|=(%.4f,%.4f) KE=%.6f scalar=%.4f±%.4f",
		s.WindowEnd, s.Particles, s.MomentumX, s.MomentumY, s.KineticEnergy, s.ScalarMean, s.ScalarStdDev)
	slog.Info("window", "stats", s)
}
