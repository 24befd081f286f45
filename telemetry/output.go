package telemetry

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/gocarina/gocsv"

	"github.com/rmorrow/smithfold/config"
)

// OutputManager handles structured run output with CSV logging.
type OutputManager struct {
	dir        string
	perfFile   *os.File
	motionFile *os.File

	// Track if headers have been written
	perfHeaderWritten   bool
	motionHeaderWritten bool
}

// NewOutputManager creates a new output manager and initializes the output
// directory. Returns nil if dir is empty (output disabled).
func NewOutputManager(dir string) (*OutputManager, error) {
	if dir == "" {
		return nil, nil
	}

	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, fmt.Errorf("creating output directory: %w", err)
	}

	om := &OutputManager{dir: dir}

	f, err := os.Create(filepath.Join(dir, "perf.csv"))
	if err != nil {
		return nil, fmt.Errorf("creating perf.csv: %w", err)
	}
	om.perfFile = f

	f, err = os.Create(filepath.Join(dir, "motion.csv"))
	if err != nil {
		om.perfFile.Close()
		return nil, fmt.Errorf("creating motion.csv: %w", err)
	}
	om.motionFile = f

	return om, nil
}

// WriteConfig saves the current configuration as YAML.
func (om *OutputManager) WriteConfig(cfg *config.Config) error {
	if om == nil {
		return nil
	}
	return cfg.WriteYAML(filepath.Join(om.dir, "config.yaml"))
}

// WritePerf writes a performance stats record to perf.csv.
func (om *OutputManager) WritePerf(stats PerfStats, windowEnd int64) error {
	if om == nil {
		return nil
	}

	records := []PerfStatsCSV{stats.ToCSV(windowEnd)}

	if !om.perfHeaderWritten {
		if err := gocsv.Marshal(records, om.perfFile); err != nil {
			return fmt.Errorf("writing perf: %w", err)
		}
		om.perfHeaderWritten = true
	} else {
		if err := gocsv.MarshalWithoutHeaders(records, om.perfFile); err != nil {
			return fmt.Errorf("writing perf: %w", err)
		}
	}

	return nil
}

// WriteMotion writes a motion stats record to motion.csv.
func (om *OutputManager) WriteMotion(stats MotionStats, windowEnd int64, progress float64) error {
	if om == nil {
		return nil
	}

	records := []MotionStatsCSV{stats.ToCSV(windowEnd, progress)}

	if !om.motionHeaderWritten {
		if err := gocsv.Marshal(records, om.motionFile); err != nil {
			return fmt.Errorf("writing motion: %w", err)
		}
		om.motionHeaderWritten = true
	} else {
		if err := gocsv.MarshalWithoutHeaders(records, om.motionFile); err != nil {
			return fmt.Errorf("writing motion: %w", err)
		}
	}

	return nil
}

// Dir returns the output directory path.
func (om *OutputManager) Dir() string {
	if om == nil {
		return ""
	}
	return om.dir
}

// Close flushes and closes all output files.
func (om *OutputManager) Close() error {
	if om == nil {
		return nil
	}

	var firstErr error

	if om.perfFile != nil {
		if err := om.perfFile.Close(); err != nil && firstErr == nil {
			firstErr = err
		}
	}

	if om.motionFile != nil {
		if err := om.motionFile.Close(); err != nil && firstErr == nil {
			firstErr = err
		}
	}

	return firstErr
}
