package report

import "github.com/shopspring/decimal"

// editEpsilon is the slack on the 100% check for single-field edits. It is
// looser than the save-time tolerance since percentages are rounded to two
// places independently of each other.
var editEpsilon = decimal.NewFromFloat(0.1)

// ApplyAmountEdit sets the amount of the allocation at index and recomputes
// its percentage from the total budget.
//
// The edit is rejected and the input left untouched if the amount is negative
// or if the new percentage sum of all allocations exceeds 100%. This is the
// optimistic per-field check; Reconcile remains the authority at save time.
func ApplyAmountEdit(allocations []Allocation, index int, amount, totalBudget decimal.Decimal) ([]Allocation, error) {
	if index < 0 || index >= len(allocations) {
		return nil, ErrIndexOutOfRange
	}

	if amount.IsNegative() {
		return nil, ErrAmountNegative
	}

	edited := make([]Allocation, len(allocations))
	copy(edited, allocations)

	edited[index].Amount = amount
	edited[index].Percentage = percentage(amount, totalBudget)

	if err := checkPercentageSum(edited); err != nil {
		return nil, err
	}

	return edited, nil
}

// ApplyPercentageEdit sets the percentage of the allocation at index and
// recomputes its amount from the total budget. The same rejection rules as
// for ApplyAmountEdit apply.
func ApplyPercentageEdit(allocations []Allocation, index int, pct, totalBudget decimal.Decimal) ([]Allocation, error) {
	if index < 0 || index >= len(allocations) {
		return nil, ErrIndexOutOfRange
	}

	if pct.IsNegative() {
		return nil, ErrAmountNegative
	}

	edited := make([]Allocation, len(allocations))
	copy(edited, allocations)

	edited[index].Percentage = pct.Round(2)
	edited[index].Amount = totalBudget.Mul(pct).Div(decimal.NewFromInt(100)).Round(2)

	if err := checkPercentageSum(edited); err != nil {
		return nil, err
	}

	return edited, nil
}

func checkPercentageSum(allocations []Allocation) error {
	sum := decimal.Zero
	for _, allocation := range allocations {
		sum = sum.Add(allocation.Percentage)
	}

	if sum.GreaterThan(decimal.NewFromInt(100).Add(editEpsilon)) {
		return ErrPercentageOverflow
	}

	return nil
}
