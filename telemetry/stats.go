// Package telemetry provides population statistics, frame timing, bookmarks and snapshots.
package telemetry

import (
	"log/slog"
	"sort"

	"gonum.org/v1/gonum/stat"

	"github.com/pthm-cable/mitosis/components"
)

// WindowStats holds aggregated statistics for a time window.
type WindowStats struct {
	WindowStartTick int32   `csv:"-"`
	WindowEndTick   int32   `csv:"window_end"`
	SimTimeSec      float64 `csv:"sim_time"`

	// Population at window end
	Cells int `csv:"cells"`

	// Events during window
	Births    int     `csv:"births"`
	BirthRate float64 `csv:"birth_rate"` // births per simulated second

	// Phase occupancy at window end
	G1        int `csv:"g1"`
	S         int `csv:"s"`
	G2        int `csv:"g2"`
	Prophase  int `csv:"prophase"`
	Metaphase int `csv:"metaphase"`
	Anaphase  int `csv:"anaphase"`
	Telophase int `csv:"telophase"`

	// Speed multiplier distribution
	SpeedMean float64 `csv:"speed_mean"`
	SpeedStd  float64 `csv:"speed_std"`
	SpeedP10  float64 `csv:"speed_p10"`
	SpeedP50  float64 `csv:"speed_p50"`
	SpeedP90  float64 `csv:"speed_p90"`

	RadiusMean float64 `csv:"radius_mean"`
}

// PhaseCounts returns the occupancy fields in cycle order.
func (s WindowStats) PhaseCounts() [components.PhaseCount]int {
	return [components.PhaseCount]int{s.G1, s.S, s.G2, s.Prophase, s.Metaphase, s.Anaphase, s.Telophase}
}

func (s *WindowStats) setPhaseCounts(c [components.PhaseCount]int) {
	s.G1, s.S, s.G2 = c[0], c[1], c[2]
	s.Prophase, s.Metaphase, s.Anaphase, s.Telophase = c[3], c[4], c[5], c[6]
}

// Percentile returns the p-th empirical quantile of a sorted slice.
// p should be in [0, 1]. Returns 0 if slice is empty.
func Percentile(sorted []float64, p float64) float64 {
	if len(sorted) == 0 {
		return 0
	}
	if p < 0 {
		p = 0
	}
	if p > 1 {
		p = 1
	}
	return stat.Quantile(p, stat.Empirical, sorted, nil)
}

// Distribution summarizes a sample.
type Distribution struct {
	Mean, Std     float64
	P10, P50, P90 float64
}

// ComputeDistribution calculates mean, sample standard deviation and
// percentiles. Fewer than two values report a zero deviation.
func ComputeDistribution(values []float64) Distribution {
	n := len(values)
	if n == 0 {
		return Distribution{}
	}

	var d Distribution
	if n < 2 {
		d.Mean = values[0]
	} else {
		d.Mean, d.Std = stat.MeanStdDev(values, nil)
	}

	sorted := make([]float64, n)
	copy(sorted, values)
	sort.Float64s(sorted)

	d.P10 = Percentile(sorted, 0.10)
	d.P50 = Percentile(sorted, 0.50)
	d.P90 = Percentile(sorted, 0.90)
	return d
}

// LogValue implements slog.LogValuer for structured logging.
func (s WindowStats) LogValue() slog.Value {
	return slog.GroupValue(
		slog.Int("window_start", int(s.WindowStartTick)),
		slog.Int("window_end", int(s.WindowEndTick)),
		slog.Float64("sim_time", s.SimTimeSec),
		slog.Int("cells", s.Cells),
		slog.Int("births", s.Births),
		slog.Float64("birth_rate", s.BirthRate),
		slog.Int("g1", s.G1),
		slog.Int("s", s.S),
		slog.Int("g2", s.G2),
		slog.Int("prophase", s.Prophase),
		slog.Int("metaphase", s.Metaphase),
		slog.Int("anaphase", s.Anaphase),
		slog.Int("telophase", s.Telophase),
		slog.Float64("speed_mean", s.SpeedMean),
		slog.Float64("speed_std", s.SpeedStd),
		slog.Float64("speed_p50", s.SpeedP50),
		slog.Float64("radius_mean", s.RadiusMean),
	)
}

// LogStats logs the window stats using slog.
func (s WindowStats) LogStats() {
	slog.Info("stats",
		"window_end", s.WindowEndTick,
		"sim_time", s.SimTimeSec,
		"cells", s.Cells,
		"births", s.Births,
		"birth_rate", s.BirthRate,
		"g1", s.G1,
		"s", s.S,
		"g2", s.G2,
		"prophase", s.Prophase,
		"metaphase", s.Metaphase,
		"anaphase", s.Anaphase,
		"telophase", s.Telophase,
		"speed_mean", s.SpeedMean,
		"speed_std", s.SpeedStd,
		"speed_p10", s.SpeedP10,
		"speed_p50", s.SpeedP50,
		"speed_p90", s.SpeedP90,
		"radius_mean", s.RadiusMean,
	)
}
