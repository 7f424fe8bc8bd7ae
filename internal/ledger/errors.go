package ledger

import (
	"fmt"

	"github.com/shopspring/decimal"
)

// ValidationError reports malformed input rejected before any mutation.
type ValidationError struct {
	Reason string
}

func (e ValidationError) Error() string {
	return e.Reason
}

// InvariantError reports a mutation that would break the payment invariant
// (sum of payments never exceeds the trosa total). Remaining carries the
// exact amount still owed so the caller can correct the input.
type InvariantError struct {
	Reason    string
	Remaining decimal.Decimal
}

func (e InvariantError) Error() string {
	return e.Reason
}

// NotFoundError reports a missing payment or trosa.
type NotFoundError struct {
	Resource string
	ID       uint
}

func (e NotFoundError) Error() string {
	return fmt.Sprintf("%s %d not found", e.Resource, e.ID)
}
