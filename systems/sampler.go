package systems

import (
	"fmt"
	"math"

	"github.com/pthm-cable/mitosis/components"
)

// Precision is the granularity of uniform draws (1e-5).
const Precision = 100000

// RandomSource is the entropy behind every draw. *rand.Rand satisfies it;
// tests inject scripted sources.
type RandomSource interface {
	Int63n(n int64) int64
}

// Sampler turns a RandomSource into the discretized uniform draws used by
// seeding and duplication.
type Sampler struct {
	src RandomSource
}

// NewSampler wraps src.
func NewSampler(src RandomSource) *Sampler {
	return &Sampler{src: src}
}

// Uniform returns a value in [lo, hi] on a 1e-5 grid, both ends inclusive.
func (s *Sampler) Uniform(lo, hi float64) float32 {
	loK := int64(math.Round(lo * Precision))
	hiK := int64(math.Round(hi * Precision))
	if hiK <= loK {
		return float32(float64(loK) / Precision)
	}
	k := loK + s.src.Int63n(hiK-loK+1)
	return float32(float64(k) / Precision)
}

// Percent returns an integer in [1, total].
func (s *Sampler) Percent(total int) int {
	return 1 + int(s.src.Int63n(int64(total)))
}

// PhaseSampler draws initial phases from a fixed categorical distribution.
type PhaseSampler struct {
	cumulative [components.PhaseCount]int
	total      int
}

// DefaultPhaseWeights are the percentages of a desynchronized population
// found in each phase (G1, S, G2, Pro, Meta, Ana, Telo).
var DefaultPhaseWeights = []int{24, 21, 15, 10, 10, 10, 10}

// NewPhaseSampler builds a sampler from per-phase weights.
func NewPhaseSampler(weights []int) (*PhaseSampler, error) {
	if len(weights) != components.PhaseCount {
		return nil, fmt.Errorf("phase weights: need %d entries, got %d", components.PhaseCount, len(weights))
	}
	ps := &PhaseSampler{}
	for i, w := range weights {
		if w < 0 {
			return nil, fmt.Errorf("phase weights: negative weight %d for %v", w, components.Phase(i))
		}
		ps.total += w
		ps.cumulative[i] = ps.total
	}
	if ps.total <= 0 {
		return nil, fmt.Errorf("phase weights: total must be positive")
	}
	return ps, nil
}

// Cumulative returns the cumulative weight table.
func (ps *PhaseSampler) Cumulative() []int {
	out := make([]int, len(ps.cumulative))
	copy(out, ps.cumulative[:])
	return out
}

// Pick maps a draw in [1, total] onto a phase.
func (ps *PhaseSampler) Pick(r int) components.Phase {
	for i, c := range ps.cumulative {
		if r <= c {
			return components.Phase(i)
		}
	}
	return components.PhaseTelophase
}

// Sample draws one phase.
func (ps *PhaseSampler) Sample(s *Sampler) components.Phase {
	return ps.Pick(s.Percent(ps.total))
}
