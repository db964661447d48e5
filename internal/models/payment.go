package models

import (
	"github.com/estateops/backend/internal/report"
	"github.com/estateops/backend/internal/types"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// Payment represents one tenant's rent obligation for one calendar month.
type Payment struct {
	DefaultModel
	PropertyID uuid.UUID            `json:"propertyId"`
	Property   Property             `json:"-"`
	TenantID   uuid.UUID            `json:"tenantId" gorm:"uniqueIndex:payment_tenant_month,where:deleted_at IS NULL"`
	Tenant     User                 `json:"-"`
	Month      types.Month          `json:"month" gorm:"uniqueIndex:payment_tenant_month"`
	Amount     decimal.Decimal      `json:"amount" gorm:"type:DECIMAL(20,8)"`
	Status     report.PaymentStatus `json:"status"`
}

func (p *Payment) BeforeCreate(tx *gorm.DB) error {
	_ = p.DefaultModel.BeforeCreate(tx)

	if p.Status == "" {
		p.Status = report.StatusPending
	}

	if err := validPaymentStatus(p.Status); err != nil {
		return err
	}

	if !p.Amount.IsPositive() {
		return ErrPaymentAmountNotPositive
	}

	return nil
}

// BeforeUpdate validates only the fields that are changed so that partial
// updates do not fail on zero values.
func (p *Payment) BeforeUpdate(tx *gorm.DB) error {
	toSave, ok := tx.Statement.Dest.(Payment)
	if !ok {
		return nil
	}

	if tx.Statement.Changed("Status") {
		if err := validPaymentStatus(toSave.Status); err != nil {
			return err
		}
	}

	if tx.Statement.Changed("Amount") && !toSave.Amount.IsPositive() {
		return ErrPaymentAmountNotPositive
	}

	return nil
}

func validPaymentStatus(status report.PaymentStatus) error {
	switch status {
	case report.StatusPaid, report.StatusPending, report.StatusOverdue:
		return nil
	default:
		return ErrPaymentStatusInvalid
	}
}
