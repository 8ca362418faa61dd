package telemetry

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/gocarina/gocsv"

	"github.com/pthm-cable/mitosis/config"
)

// csvSink is one append-only CSV file whose header goes out with the first row.
type csvSink struct {
	name       string
	f          *os.File
	headerDone bool
}

func openSink(dir, name string) (*csvSink, error) {
	f, err := os.Create(filepath.Join(dir, name))
	if err != nil {
		return nil, fmt.Errorf("creating %s: %w", name, err)
	}
	return &csvSink{name: name, f: f}, nil
}

// writeCSV appends rec to sink, emitting the header on first use.
func writeCSV[T any](sink *csvSink, rec T) error {
	rows := []T{rec}
	var err error
	if sink.headerDone {
		err = gocsv.MarshalWithoutHeaders(rows, sink.f)
	} else {
		err = gocsv.Marshal(rows, sink.f)
	}
	if err != nil {
		return fmt.Errorf("writing %s: %w", sink.name, err)
	}
	sink.headerDone = true
	return nil
}

// OutputManager writes the files of one run: per-window population stats,
// frame timings, bookmarks and the effective config. A nil manager (output
// disabled) accepts every call.
type OutputManager struct {
	dir       string
	windows   *csvSink // telemetry.csv
	perf      *csvSink // perf.csv
	bookmarks *csvSink // bookmarks.csv
}

// NewOutputManager creates dir and opens the CSV files in it. An empty dir
// returns a nil manager.
func NewOutputManager(dir string) (*OutputManager, error) {
	if dir == "" {
		return nil, nil
	}
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, fmt.Errorf("creating output directory: %w", err)
	}

	om := &OutputManager{dir: dir}
	for _, s := range []struct {
		dst  **csvSink
		name string
	}{
		{&om.windows, "telemetry.csv"},
		{&om.perf, "perf.csv"},
		{&om.bookmarks, "bookmarks.csv"},
	} {
		sink, err := openSink(dir, s.name)
		if err != nil {
			om.Close()
			return nil, err
		}
		*s.dst = sink
	}
	return om, nil
}

// WriteConfig saves cfg as config.yaml next to the CSV files.
func (om *OutputManager) WriteConfig(cfg *config.Config) error {
	if om == nil {
		return nil
	}
	return cfg.WriteYAML(filepath.Join(om.dir, "config.yaml"))
}

// WriteTelemetry appends one stats window.
func (om *OutputManager) WriteTelemetry(stats WindowStats) error {
	if om == nil {
		return nil
	}
	return writeCSV(om.windows, stats)
}

// WritePerf appends the frame timings of the window ending at windowEnd.
func (om *OutputManager) WritePerf(stats PerfStats, windowEnd int32) error {
	if om == nil {
		return nil
	}
	return writeCSV(om.perf, stats.ToCSV(windowEnd))
}

// WriteBookmark appends one bookmark.
func (om *OutputManager) WriteBookmark(b Bookmark) error {
	if om == nil {
		return nil
	}
	return writeCSV(om.bookmarks, b)
}

// Dir returns the output directory path.
func (om *OutputManager) Dir() string {
	if om == nil {
		return ""
	}
	return om.dir
}

// Close closes every open file and returns the joined errors.
func (om *OutputManager) Close() error {
	if om == nil {
		return nil
	}
	var errs []error
	for _, s := range []*csvSink{om.windows, om.perf, om.bookmarks} {
		if s == nil {
			continue
		}
		if err := s.f.Close(); err != nil {
			errs = append(errs, fmt.Errorf("closing %s: %w", s.name, err))
		}
	}
	return errors.Join(errs...)
}
