// Package ilqlog provides a small level-gated logger for the iterative
// LQ solver's outer loop. It intentionally does not pull in a logging
// framework: the solver runs once per call and produces at most two lines
// per iteration (one at LogEval, one more at LogVerbose).
package ilqlog

import (
	"fmt"
	"io"
)

// Level controls the verbosity of solver progress output.
type Level int

const (
	// LogNoop emits nothing.
	LogNoop Level = -1
	// LogLast prints only the final iteration's summary.
	LogLast Level = 0
	// LogEval prints one line per iteration: costs, deltas, gamma.
	LogEval Level = 1
	// LogVerbose additionally prints per-player Z/zeta norms at k=0.
	LogVerbose Level = 2
)

// Logger writes solver progress to Out at the configured Level.
// Writers must be safe for sequential use from a single goroutine; the
// solver never logs concurrently.
type Logger struct {
	Level Level
	Out   io.Writer
}

func (l *Logger) enabled(level Level) bool {
	return l != nil && l.Out != nil && l.Level >= level
}

func (l *Logger) logf(format string, a ...any) {
	if len(a) > 0 {
		_, _ = fmt.Fprintf(l.Out, format, a...)
	} else {
		_, _ = fmt.Fprint(l.Out, format)
	}
}

// Iteration reports one outer-loop iteration.
func (l *Logger) Iteration(n int, cost []float64, dxInf, duInf, gamma float64) {
	if !l.enabled(LogEval) {
		return
	}
	l.logf("iter %3d  cost=%v  dx=%.4g du=%.4g gamma=%.3g\n", n, cost, dxInf, duInf, gamma)
}

// Final reports the terminal status of a solve.
func (l *Logger) Final(n int, converged, timedOut bool, cost []float64) {
	if !l.enabled(LogLast) {
		return
	}
	status := "converged"
	switch {
	case timedOut:
		status = "timeout"
	case !converged:
		status = "failed"
	}
	l.logf("solve finished after %d iterations: %s  cost=%v\n", n, status, cost)
}

// Verbose reports per-player cost-to-go norms at the start of the horizon.
func (l *Logger) Verbose(n int, zNorm, zetaNorm []float64) {
	if !l.enabled(LogVerbose) {
		return
	}
	l.logf("iter %3d  Z[0] norms=%v  zeta[0] norms=%v\n", n, zNorm, zetaNorm)
}
