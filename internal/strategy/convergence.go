package strategy

import "github.com/rcaudy/ilqgames/internal/jointstate"

// ConvergenceMonitor implements the elementwise trajectory stability
// test of spec §4.8: the outer loop has converged once consecutive
// operating points differ by less than the configured tolerances in
// every state and control component, or the iteration cap is reached.
type ConvergenceMonitor struct {
	EpsX     float64 // default 0.1
	EpsU     float64 // default equals EpsX
	MaxIters int     // default 50
}

// DefaultConvergenceMonitor returns the tolerances documented in spec §4.8/§6.
func DefaultConvergenceMonitor() ConvergenceMonitor {
	return ConvergenceMonitor{EpsX: 0.1, EpsU: 0.1, MaxIters: 50}
}

// Status is the outcome of one convergence check.
type Status struct {
	Converged bool
	TimedOut  bool
	DxInf     float64
	DuInf     float64
}

// Check compares the current and previous operating points component-
// wise and reports whether iteration n (0-indexed) has converged.
// Iteration 0 never converges; n >= MaxIters reports a timeout.
func (m ConvergenceMonitor) Check(n int, current, last OperatingPoint) Status {
	dx := maxStateDelta(current.Xhat, last.Xhat)
	du := maxControlDelta(current.Uhat, last.Uhat)

	maxIters := m.MaxIters
	if maxIters <= 0 {
		maxIters = 50
	}

	if n >= maxIters {
		return Status{Converged: true, TimedOut: true, DxInf: dx, DuInf: du}
	}

	epsX, epsU := m.EpsX, m.EpsU
	if epsX <= 0 {
		epsX = 0.1
	}
	if epsU <= 0 {
		epsU = epsX
	}

	converged := n >= 1 && dx <= epsX && du <= epsU
	return Status{Converged: converged, DxInf: dx, DuInf: du}
}

func maxStateDelta(current, last []jointstate.JointState) float64 {
	m := 0.0
	for k := range current {
		if k >= len(last) {
			break
		}
		if d := current[k].Sub(last[k]).InfNorm(); d > m {
			m = d
		}
	}
	return m
}

func maxControlDelta(current, last []jointstate.ControlProfile) float64 {
	m := 0.0
	for k := range current {
		if k >= len(last) {
			break
		}
		for i := range current[k] {
			if i >= len(last[k]) {
				break
			}
			if d := current[k][i].Sub(last[k][i]).InfNorm(); d > m {
				m = d
			}
		}
	}
	return m
}
