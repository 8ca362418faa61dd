package components

import (
	"math"
	"testing"
)

func TestPhaseTable(t *testing.T) {
	tests := []struct {
		phase    Phase
		duration float32
		min, max float32
	}{
		{PhaseG1, 2.4, 0.5, 0.9},
		{PhaseS, 2.1, 0.9, 0.9},
		{PhaseG2, 1.5, 0.9, 1.0},
		{PhaseProphase, 1.0, 1.0, 1.0},
		{PhaseMetaphase, 1.0, 1.0, 1.0},
		{PhaseAnaphase, 1.0, 1.0, 1.0},
		{PhaseTelophase, 1.0, 1.0, 1.0},
	}

	if Count() != 7 {
		t.Fatalf("Count() = %d, want 7", Count())
	}

	for _, tt := range tests {
		t.Run(tt.phase.String(), func(t *testing.T) {
			if got := DurationOf(tt.phase); got != tt.duration {
				t.Errorf("DurationOf = %v, want %v", got, tt.duration)
			}
			if got := MinRadiusOf(tt.phase); got != tt.min {
				t.Errorf("MinRadiusOf = %v, want %v", got, tt.min)
			}
			if got := MaxRadiusOf(tt.phase); got != tt.max {
				t.Errorf("MaxRadiusOf = %v, want %v", got, tt.max)
			}
		})
	}
}

func TestTotalCycleSeconds(t *testing.T) {
	if got := TotalCycleSeconds(); math.Abs(float64(got)-10.0) > 1e-5 {
		t.Errorf("TotalCycleSeconds() = %v, want 10", got)
	}
}

func TestNextWrapsOnlyAfterTelophase(t *testing.T) {
	for i, p := range AllPhases {
		next, wrapped := p.Next()
		if p == PhaseTelophase {
			if next != PhaseG1 || !wrapped {
				t.Errorf("Telophase.Next() = (%v, %v), want (G1, true)", next, wrapped)
			}
			continue
		}
		if wrapped {
			t.Errorf("%v.Next() reported a wrap", p)
		}
		if next != AllPhases[i+1] {
			t.Errorf("%v.Next() = %v, want %v", p, next, AllPhases[i+1])
		}
	}
}

func TestIsMitosis(t *testing.T) {
	for _, p := range AllPhases {
		want := p == PhaseProphase || p == PhaseMetaphase || p == PhaseAnaphase || p == PhaseTelophase
		if p.IsMitosis() != want {
			t.Errorf("%v.IsMitosis() = %v, want %v", p, p.IsMitosis(), want)
		}
	}
}

func TestPhaseFromTag(t *testing.T) {
	for _, p := range AllPhases {
		got, ok := PhaseFromTag(p.Tag())
		if !ok || got != p {
			t.Errorf("PhaseFromTag(%v) = (%v, %v), want (%v, true)", p.Tag(), got, ok, p)
		}
	}

	for _, bad := range []float32{-1, 7, 2.5, 100} {
		if _, ok := PhaseFromTag(bad); ok {
			t.Errorf("PhaseFromTag(%v) accepted an invalid tag", bad)
		}
	}
}

func TestTextureAndUniformNames(t *testing.T) {
	seen := make(map[string]bool)
	for _, p := range AllPhases {
		if p.TextureFile() == "" || p.UniformName() == "" {
			t.Errorf("%v has empty texture or uniform name", p)
		}
		if seen[p.UniformName()] {
			t.Errorf("duplicate uniform name %q", p.UniformName())
		}
		seen[p.UniformName()] = true
	}
	if PhaseTelophase.UniformName() != "teloTexture" {
		t.Errorf("unexpected telophase uniform %q", PhaseTelophase.UniformName())
	}
}
