package report

import (
	"errors"
	"fmt"

	"github.com/shopspring/decimal"
)

var (
	ErrAmountNegative     = errors.New("spending allocation amounts must not be negative")
	ErrPercentageOverflow = errors.New("the spending allocation percentages must not sum to more than 100%")
	ErrIndexOutOfRange    = errors.New("there is no spending allocation at this position")
)

// AllocationMismatchError reports that the sum of all allocation amounts does
// not match the total budget. It carries both values so that callers can
// present the difference.
type AllocationMismatchError struct {
	Expected decimal.Decimal // The total budget of the report
	Actual   decimal.Decimal // The sum of all allocation amounts
}

func (e AllocationMismatchError) Error() string {
	return fmt.Sprintf("the spending allocations sum to %s, but the total budget is %s", e.Actual, e.Expected)
}
