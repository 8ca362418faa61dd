// Package components defines the immutable cell-cycle data shared by the simulation.
package components

// Phase identifies a stage of the cell cycle.
type Phase uint8

const (
	PhaseG1        Phase = iota // Interphase: growth
	PhaseS                      // Interphase: DNA synthesis
	PhaseG2                     // Interphase: second growth
	PhaseProphase               // Mitosis
	PhaseMetaphase              // Mitosis
	PhaseAnaphase               // Mitosis
	PhaseTelophase              // Mitosis; cytokinesis happens instantly on the wrap to G1
)

// PhaseCount is the number of phases in one cycle.
const PhaseCount = 7

// phaseInfo holds the fixed per-phase parameters.
type phaseInfo struct {
	name      string
	duration  float32 // seconds spent in the phase at speed multiplier 1
	minRadius float32 // radius factor at the start of the phase
	maxRadius float32 // radius factor at the end of the phase
	texture   string  // texture file name
	uniform   string  // sampler uniform name in the cell shader
}

var phaseTable = [PhaseCount]phaseInfo{
	PhaseG1:        {"G1", 2.4, 0.5, 0.9, "g1.png", "g1Texture"},
	PhaseS:         {"S", 2.1, 0.9, 0.9, "s.png", "sTexture"},
	PhaseG2:        {"G2", 1.5, 0.9, 1.0, "g2.png", "g2Texture"},
	PhaseProphase:  {"Prophase", 1.0, 1.0, 1.0, "pro.png", "proTexture"},
	PhaseMetaphase: {"Metaphase", 1.0, 1.0, 1.0, "meta.png", "metaTexture"},
	PhaseAnaphase:  {"Anaphase", 1.0, 1.0, 1.0, "ana.png", "anaTexture"},
	PhaseTelophase: {"Telophase", 1.0, 1.0, 1.0, "telo.png", "teloTexture"},
}

// AllPhases lists the phases in cycle order.
var AllPhases = [PhaseCount]Phase{
	PhaseG1, PhaseS, PhaseG2,
	PhaseProphase, PhaseMetaphase, PhaseAnaphase, PhaseTelophase,
}

// Count returns the number of phases.
func Count() int { return PhaseCount }

// DurationOf returns how long a cell stays in p, in seconds.
func DurationOf(p Phase) float32 { return phaseTable[p].duration }

// MinRadiusOf returns the radius factor at the start of p.
func MinRadiusOf(p Phase) float32 { return phaseTable[p].minRadius }

// MaxRadiusOf returns the radius factor at the end of p.
func MaxRadiusOf(p Phase) float32 { return phaseTable[p].maxRadius }

// TotalCycleSeconds returns the duration of one full cycle at speed multiplier 1.
func TotalCycleSeconds() float32 {
	var total float32
	for i := range phaseTable {
		total += phaseTable[i].duration
	}
	return total
}

// Next returns the phase that follows p. wrapped is true only for the
// Telophase to G1 transition, which is where a cell divides.
func (p Phase) Next() (next Phase, wrapped bool) {
	if p+1 >= PhaseCount {
		return PhaseG1, true
	}
	return p + 1, false
}

// IsMitosis reports whether p is one of the four mitotic phases.
func (p Phase) IsMitosis() bool {
	return p >= PhaseProphase
}

// Tag returns the numeric tag written into vertex data.
func (p Phase) Tag() float32 { return float32(p) }

// PhaseFromTag converts a vertex tag back into a Phase.
func PhaseFromTag(tag float32) (Phase, bool) {
	i := int(tag)
	if tag < 0 || i >= PhaseCount || float32(i) != tag {
		return 0, false
	}
	return Phase(i), true
}

// TextureFile returns the texture file name for p.
func (p Phase) TextureFile() string { return phaseTable[p].texture }

// UniformName returns the sampler uniform that holds p's texture.
func (p Phase) UniformName() string { return phaseTable[p].uniform }

func (p Phase) String() string {
	if p >= PhaseCount {
		return "Unknown"
	}
	return phaseTable[p].name
}
