package sim

import (
	"errors"
	"fmt"
)

// ErrInvariant matches every *InvariantViolation via errors.Is.
var ErrInvariant = errors.New("sim: invariant violation")

// InvariantViolation reports a data inconsistency detected during resolution,
// such as a non-mover kind reaching the outcome table or two alive entities
// sharing a settled cell. The tick that detected it produces no output.
type InvariantViolation struct {
	Op      string // Component that detected the violation
	Details string
}

// Error implements error.
func (e *InvariantViolation) Error() string {
	return fmt.Sprintf("sim: invariant violation in %s: %s", e.Op, e.Details)
}

// Is reports whether target is ErrInvariant.
func (e *InvariantViolation) Is(target error) bool {
	return target == ErrInvariant
}

func invariantf(op, format string, args ...any) error {
	return &InvariantViolation{Op: op, Details: fmt.Sprintf(format, args...)}
}
