package telemetry

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/pthm-cable/mitosis/config"
)

func init() {
	config.MustInit("")
}

func TestOutputManager_Disabled(t *testing.T) {
	om, err := NewOutputManager("")
	if err != nil || om != nil {
		t.Fatalf("empty dir should disable output, got %v, %v", om, err)
	}

	// All calls on a nil manager are no-ops.
	if err := om.WriteTelemetry(WindowStats{}); err != nil {
		t.Error(err)
	}
	if err := om.WritePerf(PerfStats{}, 0); err != nil {
		t.Error(err)
	}
	if err := om.WriteBookmark(Bookmark{}); err != nil {
		t.Error(err)
	}
	if err := om.WriteConfig(config.Cfg()); err != nil {
		t.Error(err)
	}
	if om.Dir() != "" {
		t.Error("nil manager should report an empty dir")
	}
	if err := om.Close(); err != nil {
		t.Error(err)
	}
}

func TestOutputManager_WritesHeadersOnce(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "run")
	om, err := NewOutputManager(dir)
	if err != nil {
		t.Fatal(err)
	}

	for i := 1; i <= 3; i++ {
		if err := om.WriteTelemetry(WindowStats{WindowEndTick: int32(i * 300), Cells: i * 2}); err != nil {
			t.Fatal(err)
		}
	}
	if err := om.WritePerf(PerfStats{PhasePct: map[string]float64{PhaseCycle: 50}}, 300); err != nil {
		t.Fatal(err)
	}
	if err := om.WriteBookmark(Bookmark{Type: BookmarkPhaseSync, Tick: 300, Description: "test"}); err != nil {
		t.Fatal(err)
	}
	if err := om.WriteConfig(config.Cfg()); err != nil {
		t.Fatal(err)
	}
	if err := om.Close(); err != nil {
		t.Fatal(err)
	}

	data, err := os.ReadFile(filepath.Join(dir, "telemetry.csv"))
	if err != nil {
		t.Fatal(err)
	}
	lines := strings.Split(strings.TrimSpace(string(data)), "\n")
	if len(lines) != 4 {
		t.Fatalf("telemetry.csv has %d lines, want header + 3 rows", len(lines))
	}
	if !strings.HasPrefix(lines[0], "window_end,sim_time,cells,births") {
		t.Errorf("unexpected header %q", lines[0])
	}
	if strings.Count(string(data), "window_end") != 1 {
		t.Error("header written more than once")
	}

	perf, err := os.ReadFile(filepath.Join(dir, "perf.csv"))
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(string(perf), "cycle_pct") {
		t.Error("perf.csv missing cycle_pct column")
	}

	bm, err := os.ReadFile(filepath.Join(dir, "bookmarks.csv"))
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(string(bm), "phase_sync") {
		t.Error("bookmarks.csv missing bookmark row")
	}

	if _, err := os.Stat(filepath.Join(dir, "config.yaml")); err != nil {
		t.Errorf("config.yaml not written: %v", err)
	}
}

func TestWriteCSV_HeaderOnFirstRowOnly(t *testing.T) {
	type row struct {
		A int    `csv:"a"`
		B string `csv:"b"`
	}
	sink, err := openSink(t.TempDir(), "rows.csv")
	if err != nil {
		t.Fatal(err)
	}
	for i := range 3 {
		if err := writeCSV(sink, row{A: i, B: "x"}); err != nil {
			t.Fatal(err)
		}
	}
	if err := sink.f.Close(); err != nil {
		t.Fatal(err)
	}

	data, err := os.ReadFile(sink.f.Name())
	if err != nil {
		t.Fatal(err)
	}
	want := "a,b\n0,x\n1,x\n2,x\n"
	if string(data) != want {
		t.Errorf("rows.csv = %q, want %q", data, want)
	}
}

func TestOutputManager_BadDir(t *testing.T) {
	blocker := filepath.Join(t.TempDir(), "file")
	if err := os.WriteFile(blocker, nil, 0644); err != nil {
		t.Fatal(err)
	}
	om, err := NewOutputManager(filepath.Join(blocker, "run"))
	if err == nil || om != nil {
		t.Fatalf("expected an error under a regular file, got %v, %v", om, err)
	}
}
