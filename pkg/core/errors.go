// pkg/core/errors.go
package core

import "fmt"

// DomainError reports an input outside the physically valid range of a
// model. It is surfaced to the caller immediately and is never retried.
type DomainError struct {
	Quantity string
	Value    float64
	Reason   string
}

// NewDomainError creates a DomainError for the named quantity.
func NewDomainError(quantity string, value float64, reason string) *DomainError {
	return &DomainError{Quantity: quantity, Value: value, Reason: reason}
}

func (e *DomainError) Error() string {
	return fmt.Sprintf("domain error: %s=%g %s", e.Quantity, e.Value, e.Reason)
}

// ConvergenceError reports that a bounded iterative search exhausted its
// budget before reaching its target. The partial progress is carried along
// so the caller can report how far the search got.
type ConvergenceError struct {
	Op string
	// AltitudeM is the altitude the search reached before stopping.
	AltitudeM float64
	// Steps is the number of iterations or integration steps completed.
	Steps  int
	Reason string
}

func (e *ConvergenceError) Error() string {
	return fmt.Sprintf("%s did not converge: %s (reached %.0f m after %d steps)",
		e.Op, e.Reason, e.AltitudeM, e.Steps)
}
