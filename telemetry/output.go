package telemetry

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/gocarina/gocsv"

	"github.com/pthm-cable/evergreen/config"
)

// OutputManager owns the CSV files for a run. A nil manager is valid and
// discards everything, so call sites never need to branch on -output-dir.
type OutputManager struct {
	dir       string
	statsFile *os.File

	statsHeaderWritten bool
}

// NewOutputManager creates the output directory and its files. Returns nil
// when dir is empty (output disabled).
func NewOutputManager(dir string) (*OutputManager, error) {
	if dir == "" {
		return nil, nil
	}

	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, fmt.Errorf("creating output directory: %w", err)
	}

	f, err := os.Create(filepath.Join(dir, "stats.csv"))
	if err != nil {
		return nil, fmt.Errorf("creating stats.csv: %w", err)
	}
	return &OutputManager{dir: dir, statsFile: f}, nil
}

// WriteConfig saves the effective configuration next to the CSVs so a run's
// numbers can be traced back to its parameters.
func (om *OutputManager) WriteConfig(cfg *config.Config) error {
	if om == nil {
		return nil
	}
	return cfg.WriteYAML(filepath.Join(om.dir, "config.yaml"))
}

// WriteStats appends one window record to stats.csv.
func (om *OutputManager) WriteStats(stats WindowStats) error {
	if om == nil {
		return nil
	}

	records := []WindowStats{stats}
	if !om.statsHeaderWritten {
		if err := gocsv.Marshal(records, om.statsFile); err != nil {
			return fmt.Errorf("writing stats: %w", err)
		}
		om.statsHeaderWritten = true
		return nil
	}
	if err := gocsv.MarshalWithoutHeaders(records, om.statsFile); err != nil {
		return fmt.Errorf("writing stats: %w", err)
	}
	return nil
}

// Close flushes and closes the CSV files.
func (om *OutputManager) Close() error {
	if om == nil {
		return nil
	}
	return om.statsFile.Close()
}
