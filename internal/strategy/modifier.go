package strategy

import "github.com/rcaudy/ilqgames/internal/ilqerrors"

// TrialFunc evaluates a scaled candidate strategy profile (e.g. by
// rolling it out through the true dynamics) and returns a scalar merit
// — lower is better. Modifiers that don't need a trial rollout (plain
// alpha-scaling) ignore it.
type TrialFunc func(scaled []Strategy) (merit float64, err error)

// Modifier implements spec §4.7's pluggable step control: it turns a
// candidate LQ-game solution into the (P, alpha) actually used in the
// next rollout. Every conforming Modifier never changes P, only alpha;
// is idempotent at gamma=1; and preserves lengths/dimensions.
type Modifier interface {
	Modify(candidate []Strategy, baselineMerit float64, trial TrialFunc) (accepted []Strategy, gammaUsed float64, err error)
}

func scaleAlpha(candidate []Strategy, gamma float64) []Strategy {
	out := make([]Strategy, len(candidate))
	for i, s := range candidate {
		alpha := make([][]float64, len(s.Alpha))
		for k, a := range s.Alpha {
			scaled := make([]float64, len(a))
			for j, v := range a {
				scaled[j] = v * gamma
			}
			alpha[k] = scaled
		}
		out[i] = Strategy{P: s.P, Alpha: alpha}
	}
	return out
}

func clipAlpha(candidate []Strategy, maxInf float64) []Strategy {
	out := make([]Strategy, len(candidate))
	for i, s := range candidate {
		alpha := make([][]float64, len(s.Alpha))
		for k, a := range s.Alpha {
			clipped := make([]float64, len(a))
			for j, v := range a {
				if v > maxInf {
					v = maxInf
				} else if v < -maxInf {
					v = -maxInf
				}
				clipped[j] = v
			}
			alpha[k] = clipped
		}
		out[i] = Strategy{P: s.P, Alpha: alpha}
	}
	return out
}

// AlphaScalingModifier is the default modifier of spec §4.7: multiply
// every alpha_i(k) by a fixed gamma in (0, 1]; gains are left unchanged.
type AlphaScalingModifier struct {
	Gamma float64
}

func (m AlphaScalingModifier) Modify(candidate []Strategy, _ float64, _ TrialFunc) ([]Strategy, float64, error) {
	gamma := m.Gamma
	if gamma <= 0 || gamma > 1 {
		gamma = 1
	}
	return scaleAlpha(candidate, gamma), gamma, nil
}

// LineSearchModifier implements the trust-region/line-search variant of
// spec §4.7: try a descending schedule of gamma, rolling out each trial
// candidate, and accept the first gamma whose trial merit does not
// exceed baselineMerit. Grounded on curioloop-optimizer's
// lbfgsb/linesearch.go backtracking structure (trial step, accept on
// sufficient decrease, shrink otherwise) composed with the descending-
// schedule recursion shape of the teacher's internal/optim/grid_search.go.
type LineSearchModifier struct {
	Initial float64
	Shrink  float64 // in (0,1), e.g. 0.5
	Floor   float64 // give up below this gamma
}

func (m LineSearchModifier) Modify(candidate []Strategy, baselineMerit float64, trial TrialFunc) ([]Strategy, float64, error) {
	gamma := m.Initial
	if gamma <= 0 || gamma > 1 {
		gamma = 1
	}
	shrink := m.Shrink
	if shrink <= 0 || shrink >= 1 {
		shrink = 0.5
	}
	floor := m.Floor
	if floor <= 0 {
		floor = 1e-4
	}

	for gamma >= floor {
		scaled := scaleAlpha(candidate, gamma)
		merit, err := trial(scaled)
		if err == nil && merit <= baselineMerit {
			return scaled, gamma, nil
		}
		gamma *= shrink
	}
	return nil, 0, ilqerrors.ErrModifierExhausted
}

// TrustRegionModifier composes an inner modifier (typically
// AlphaScalingModifier) with an additional hard clip on ||alpha_i(k)||_inf,
// per SPEC_FULL.md §6.3's resolution of spec §9's open question: the
// trust region is an additive cap, not a replacement for gamma-scaling.
type TrustRegionModifier struct {
	Inner    Modifier
	MaxAlpha float64 // <=0 disables the clip
}

func (m TrustRegionModifier) Modify(candidate []Strategy, baselineMerit float64, trial TrialFunc) ([]Strategy, float64, error) {
	inner := m.Inner
	if inner == nil {
		inner = AlphaScalingModifier{Gamma: 1}
	}
	scaled, gamma, err := inner.Modify(candidate, baselineMerit, trial)
	if err != nil {
		return nil, 0, err
	}
	if m.MaxAlpha > 0 {
		scaled = clipAlpha(scaled, m.MaxAlpha)
	}
	return scaled, gamma, nil
}
