// Package gamelog holds the append-only per-iteration log of spec §3
// and a persisted-log writer/reader matching the directory format of
// spec §6 (xs.txt / costs.txt per zero-padded iteration directory).
package gamelog

import "github.com/rcaudy/ilqgames/internal/strategy"

// IterationRecord is one entry of the solver's log: the operating point
// and strategies produced by an iteration, plus the per-player total
// trajectory cost and whether this iteration was a convergence timeout.
type IterationRecord struct {
	OperatingPoint strategy.OperatingPoint
	Strategies     []strategy.Strategy
	Cost           []float64
	TimedOut       bool
}

// Log is the append-only sequence of iterates produced by a solve,
// bounded by the iteration cap (spec §3).
type Log []IterationRecord
