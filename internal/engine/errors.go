package engine

import (
	"errors"
	"fmt"
)

var (
	// ErrNotInitialized indicates a run on an integrator whose system
	// was already consumed.
	ErrNotInitialized = errors.New("engine: integrator is not in the initialized state")

	// ErrNonFinite indicates a particle position or velocity became NaN
	// or Inf. Continuing would silently corrupt the trajectory.
	ErrNonFinite = errors.New("engine: non-finite particle state")
)

// StepError wraps a fatal error with the step it occurred on.
type StepError struct {
	Step    int
	Time    float64 // seconds
	Wrapped error
}

func (e *StepError) Error() string {
	return fmt.Sprintf("step %d (t=%.6g s): %v", e.Step, e.Time, e.Wrapped)
}

func (e *StepError) Unwrap() error { return e.Wrapped }
