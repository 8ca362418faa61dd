package telemetry

import (
	"math"
	"testing"
)

func TestPercentile(t *testing.T) {
	tests := []struct {
		name   string
		sorted []float64
		p      float64
		want   float64
	}{
		{"empty slice", []float64{}, 0.5, 0},
		{"single element", []float64{5.0}, 0.5, 5.0},
		{"p0", []float64{1, 2, 3, 4, 5}, 0.0, 1.0},
		{"p100", []float64{1, 2, 3, 4, 5}, 1.0, 5.0},
		{"p50 odd", []float64{1, 2, 3, 4, 5}, 0.5, 3.0},
		{"p50 even", []float64{1, 2, 3, 4}, 0.5, 2.0},
		{"p10", []float64{1, 2, 3, 4, 5, 6, 7, 8, 9, 10}, 0.1, 1},
		{"p90", []float64{1, 2, 3, 4, 5, 6, 7, 8, 9, 10}, 0.9, 9},
		{"clamped high", []float64{1, 2, 3}, 1.5, 3},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Percentile(tt.sorted, tt.p)
			if math.Abs(got-tt.want) > 0.001 {
				t.Errorf("Percentile(%v, %v) = %v, want %v", tt.sorted, tt.p, got, tt.want)
			}
		})
	}
}

func TestComputeDistribution(t *testing.T) {
	values := []float64{1.0, 0.8, 1.2, 1.0}
	d := ComputeDistribution(values)

	if math.Abs(d.Mean-1.0) > 1e-9 {
		t.Errorf("mean = %v, want 1.0", d.Mean)
	}
	// Sample std of {0.8, 1, 1, 1.2}: sqrt(0.08/3)
	if want := math.Sqrt(0.08 / 3); math.Abs(d.Std-want) > 1e-9 {
		t.Errorf("std = %v, want %v", d.Std, want)
	}
	if d.P50 != 1.0 {
		t.Errorf("p50 = %v, want 1.0", d.P50)
	}
	if d.P10 != 0.8 || d.P90 != 1.2 {
		t.Errorf("p10/p90 = %v/%v, want 0.8/1.2", d.P10, d.P90)
	}
	if values[0] != 1.0 || values[1] != 0.8 {
		t.Error("input slice was reordered")
	}
}

func TestComputeDistributionSmall(t *testing.T) {
	if d := ComputeDistribution(nil); d != (Distribution{}) {
		t.Errorf("empty input should return zeros, got %+v", d)
	}

	d := ComputeDistribution([]float64{1.1})
	if d.Mean != 1.1 || d.Std != 0 || d.P50 != 1.1 {
		t.Errorf("single value: got %+v", d)
	}
}
