package telemetry

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/gocarina/gocsv"

	"github.com/pthm-cable/discsim/config"
)

// OutputManager writes per-window statistics to windows.csv and a copy
// of the run's configuration to config.yaml. A nil *OutputManager is a
// valid, inert no-op — every method tolerates it — so callers can
// construct one unconditionally from an optionally-empty directory.
type OutputManager struct {
	dir           string
	windowsFile   *os.File
	headerWritten bool
}

// NewOutputManager creates the output directory and opens windows.csv.
// Returns a nil *OutputManager, not an error, when dir is empty.
func NewOutputManager(dir string) (*OutputManager, error) {
	if dir == "" {
		return nil, nil
	}
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, fmt.Errorf("creating output directory: %w", err)
	}

	f, err := os.Create(filepath.Join(dir, "windows.csv"))
	if err != nil {
		return nil, fmt.Errorf("creating windows.csv: %w", err)
	}
	return &OutputManager{dir: dir, windowsFile: f}, nil
}

// WriteConfig saves cfg as YAML alongside the run's other output.
func (om *OutputManager) WriteConfig(cfg *config.Config) error {
	if om == nil {
		return nil
	}
	return cfg.WriteYAML(filepath.Join(om.dir, "config.yaml"))
}

// WriteWindow appends one WindowStats record to windows.csv.
func (om *OutputManager) WriteWindow(stats WindowStats) error {
	if om == nil {
		return nil
	}
	records := []WindowStats{stats}
	if !om.headerWritten {
		if err := gocsv.Marshal(records, om.windowsFile); err != nil {
			return fmt.Errorf("writing window stats: %w", err)
		}
		om.headerWritten = true
		return nil
	}
	if err := gocsv.MarshalWithoutHeaders(records, om.windowsFile); err != nil {
		return fmt.Errorf("writing window stats: %w", err)
	}
	return nil
}

// Dir returns the output directory, or "" if output is disabled.
func (om *OutputManager) Dir() string {
	if om == nil {
		return ""
	}
	return om.dir
}

// Close flushes and closes windows.csv.
func (om *OutputManager) Close() error {
	if om == nil || om.windowsFile == nil {
		return nil
	}
	return om.windowsFile.Close()
}
