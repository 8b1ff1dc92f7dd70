// Package ilqerrors defines the error taxonomy of the iterative LQ game
// solver, per spec §7.
package ilqerrors

import (
	"errors"
	"fmt"
)

var (
	// ErrConfigMismatch indicates a dimension mismatch between strategies,
	// operating point, dynamics, or costs, detected before iteration begins.
	ErrConfigMismatch = errors.New("ilqgames: dimension mismatch in solver configuration")

	// ErrLinAlgSingular indicates the coupling matrix S(k) is effectively
	// singular even after regularization, so the LQ step cannot proceed.
	ErrLinAlgSingular = errors.New("ilqgames: coupling system singular at this timestep")

	// ErrModifierExhausted indicates step control could not find a usable
	// gamma above its floor.
	ErrModifierExhausted = errors.New("ilqgames: modifier exhausted step-size schedule")
)

// SolveError wraps a sentinel error with the iteration and timestep at
// which it occurred. The outer solver (internal/ilqsolver) sets only
// Iteration; Timestep is left at 0 there.
type SolveError struct {
	Iteration int
	Timestep  int
	Err       error
}

func (e *SolveError) Error() string {
	return fmt.Sprintf("ilqgames: iteration %d, k=%d: %v", e.Iteration, e.Timestep, e.Err)
}

func (e *SolveError) Unwrap() error {
	return e.Err
}
