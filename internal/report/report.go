// Package report computes monthly financial reports for properties.
//
// The engine is a pure computation layer: it reads payment and spending
// category data through collaborator interfaces and knows nothing about how
// those are stored or fetched. Persistence of the resulting reports is the
// caller's concern.
package report

import (
	"github.com/estateops/backend/internal/types"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// PaymentStatus is the state of a tenant's rent obligation for one month.
type PaymentStatus string

const (
	StatusPaid    PaymentStatus = "paid"
	StatusPending PaymentStatus = "pending"
	StatusOverdue PaymentStatus = "overdue"
)

// Payment is one tenant's payment record for one month.
type Payment struct {
	TenantID uuid.UUID
	Amount   decimal.Decimal
	Status   PaymentStatus
}

// Category is a spending category configured for a property.
type Category struct {
	ID          uuid.UUID
	Title       string
	Description string
}

// Allocation assigns a portion of a month's collected budget to one spending
// category. The category's title and description are frozen by value so that
// historical reports stay stable when categories are edited or deleted.
type Allocation struct {
	ConfigID    uuid.UUID       `json:"configId"`
	Title       string          `json:"title"`
	Description string          `json:"description,omitempty"`
	Amount      decimal.Decimal `json:"amount"`
	Percentage  decimal.Decimal `json:"percentage"`
}

// Summary is the result of aggregating a property's payments for one month.
type Summary struct {
	PropertyID    uuid.UUID       `json:"propertyId"`
	Month         types.Month     `json:"month"`
	TotalBudget   decimal.Decimal `json:"totalBudget"`   // Sum of all paid amounts
	PendingAmount decimal.Decimal `json:"pendingAmount"` // Sum of all pending and overdue amounts
	TotalTenants  int64           `json:"totalTenants"`  // Tenants of the property, independent of payment records
	PaidTenants   int64           `json:"paidTenants"`   // Number of paid payments
}

// PaymentSource provides the payment records the engine aggregates.
type PaymentSource interface {
	// Payments returns all payment records for a property and month.
	Payments(propertyID uuid.UUID, month types.Month) ([]Payment, error)

	// TenantCount returns the number of tenants of the property.
	TenantCount(propertyID uuid.UUID) (int64, error)
}

// CategorySource provides the spending categories configured for a property.
type CategorySource interface {
	Categories(propertyID uuid.UUID) ([]Category, error)
}

// Engine computes monthly report summaries and spending allocations.
type Engine struct {
	payments   PaymentSource
	categories CategorySource

	// tolerance is the maximum accepted difference between the sum of all
	// allocation amounts and the total budget.
	tolerance decimal.Decimal
}

// New returns an Engine reading from the given sources.
func New(payments PaymentSource, categories CategorySource, tolerance decimal.Decimal) Engine {
	return Engine{
		payments:   payments,
		categories: categories,
		tolerance:  tolerance,
	}
}

// Summarize aggregates all payment records of a property for one month.
//
// It is a pure read, used both for unsaved previews and as the first step of
// report generation. A month without payments yields zero sums while the
// tenant count can still be positive.
func (e Engine) Summarize(propertyID uuid.UUID, month types.Month) (Summary, error) {
	payments, err := e.payments.Payments(propertyID, month)
	if err != nil {
		return Summary{}, err
	}

	tenants, err := e.payments.TenantCount(propertyID)
	if err != nil {
		return Summary{}, err
	}

	summary := Summary{
		PropertyID:    propertyID,
		Month:         month,
		TotalBudget:   decimal.Zero,
		PendingAmount: decimal.Zero,
		TotalTenants:  tenants,
	}

	for _, payment := range payments {
		switch payment.Status {
		case StatusPaid:
			summary.TotalBudget = summary.TotalBudget.Add(payment.Amount)
			summary.PaidTenants++
		case StatusPending, StatusOverdue:
			summary.PendingAmount = summary.PendingAmount.Add(payment.Amount)
		}
	}

	return summary, nil
}

// PropertyCategories returns the spending categories configured for a property.
func (e Engine) PropertyCategories(propertyID uuid.UUID) ([]Category, error) {
	return e.categories.Categories(propertyID)
}

// Allocations builds the spending breakdown for a summary.
//
// When explicit allocations are given they are used in caller order and only
// their percentages are derived. Otherwise the budget is distributed equally
// across the given categories. Without categories the breakdown is empty.
func (e Engine) Allocations(summary Summary, categories []Category, explicit []Allocation) []Allocation {
	if len(explicit) > 0 {
		allocations := make([]Allocation, 0, len(explicit))
		for _, allocation := range explicit {
			allocation.Percentage = percentage(allocation.Amount, summary.TotalBudget)
			allocations = append(allocations, allocation)
		}
		return allocations
	}

	if len(categories) == 0 {
		return []Allocation{}
	}

	count := decimal.NewFromInt(int64(len(categories)))
	share := summary.TotalBudget.DivRound(count, 2)
	pct := decimal.NewFromInt(100).DivRound(count, 2)

	allocations := make([]Allocation, 0, len(categories))
	for _, category := range categories {
		allocations = append(allocations, Allocation{
			ConfigID:    category.ID,
			Title:       category.Title,
			Description: category.Description,
			Amount:      share,
			Percentage:  pct,
		})
	}

	return allocations
}

// Reconcile validates that the allocations sum to the total budget within the
// engine's tolerance and rewrites every percentage from its amount.
//
// The returned slice is a copy; on failure the input is untouched and the
// error carries both totals.
func (e Engine) Reconcile(totalBudget decimal.Decimal, allocations []Allocation) ([]Allocation, error) {
	sum := decimal.Zero
	for _, allocation := range allocations {
		if allocation.Amount.IsNegative() {
			return nil, ErrAmountNegative
		}
		sum = sum.Add(allocation.Amount)
	}

	if sum.Sub(totalBudget).Abs().GreaterThan(e.tolerance) {
		return nil, AllocationMismatchError{
			Expected: totalBudget,
			Actual:   sum,
		}
	}

	reconciled := make([]Allocation, 0, len(allocations))
	for _, allocation := range allocations {
		allocation.Percentage = percentage(allocation.Amount, totalBudget)
		reconciled = append(reconciled, allocation)
	}

	return reconciled, nil
}

// percentage derives the share of the total that the amount represents.
// A zero total yields 0, not a division error.
func percentage(amount, total decimal.Decimal) decimal.Decimal {
	if total.IsZero() {
		return decimal.Zero
	}

	return amount.Div(total).Mul(decimal.NewFromInt(100)).Round(2)
}
