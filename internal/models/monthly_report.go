package models

import (
	"github.com/estateops/backend/internal/report"
	"github.com/estateops/backend/internal/types"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/datatypes"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// MonthlyReport is the persisted financial summary of a property for one
// calendar month.
//
// The spending breakdown is stored as an embedded JSON snapshot, not as
// foreign-keyed rows: spending categories may be edited or deleted
// independently of historical reports.
type MonthlyReport struct {
	DefaultModel
	PropertyID    uuid.UUID                                `json:"propertyId" gorm:"uniqueIndex:report_property_month,where:deleted_at IS NULL"`
	Property      Property                                 `json:"-"`
	Month         types.Month                              `json:"month" gorm:"uniqueIndex:report_property_month"`
	GeneratedByID uuid.UUID                                `json:"generatedById"` // Last user who generated the report
	GeneratedBy   User                                     `json:"-"`
	TotalBudget   decimal.Decimal                          `json:"totalBudget" gorm:"type:DECIMAL(20,8)"`
	TotalTenants  int64                                    `json:"totalTenants"`
	PaidTenants   int64                                    `json:"paidTenants"`
	PendingAmount decimal.Decimal                          `json:"pendingAmount" gorm:"type:DECIMAL(20,8)"`
	Breakdown     datatypes.JSONType[[]report.Allocation]  `json:"breakdown"`
	Notes         *string                                  `json:"notes"`
}

func (r *MonthlyReport) BeforeSave(_ *gorm.DB) error {
	if r.GeneratedByID == uuid.Nil {
		return ErrReportGeneratedByRequired
	}
	return nil
}

// UpsertMonthlyReport persists the report for its property and month.
//
// Uniqueness of (property_id, month) is enforced by the database index
// combined with an atomic ON CONFLICT update, never by an application-level
// check-then-act: concurrent generate calls for the same month can not
// produce a duplicate row. The index only covers live rows, so a deleted
// report never blocks regenerating the same month. When preserveNotes is
// set, an existing row keeps its notes.
func UpsertMonthlyReport(r *MonthlyReport, preserveNotes bool) error {
	assignments := []string{
		"generated_by_id",
		"total_budget",
		"total_tenants",
		"paid_tenants",
		"pending_amount",
		"breakdown",
		"updated_at",
	}
	if !preserveNotes {
		assignments = append(assignments, "notes")
	}

	return DB.Clauses(clause.OnConflict{
		Columns:     []clause.Column{{Name: "property_id"}, {Name: "month"}},
		TargetWhere: clause.Where{Exprs: []clause.Expression{clause.Expr{SQL: "deleted_at IS NULL"}}},
		DoUpdates:   clause.AssignmentColumns(assignments),
	}).Create(r).Error
}

// ReportSources returns the database-backed collaborators for the report
// engine.
func ReportSources() (report.PaymentSource, report.CategorySource) {
	return paymentSource{}, categorySource{}
}

// paymentSource reads payment records from the database.
type paymentSource struct{}

func (paymentSource) Payments(propertyID uuid.UUID, month types.Month) ([]report.Payment, error) {
	var payments []Payment
	err := DB.
		Where(&Payment{PropertyID: propertyID, Month: month}).
		Order("created_at ASC").
		Find(&payments).Error
	if err != nil {
		return nil, err
	}

	records := make([]report.Payment, 0, len(payments))
	for _, payment := range payments {
		records = append(records, report.Payment{
			TenantID: payment.TenantID,
			Amount:   payment.Amount,
			Status:   payment.Status,
		})
	}

	return records, nil
}

func (paymentSource) TenantCount(propertyID uuid.UUID) (int64, error) {
	var count int64
	err := DB.Model(&User{}).
		Where("property_id = ? AND role = ?", propertyID, RoleTenant).
		Count(&count).Error

	return count, err
}

// categorySource reads spending categories from the database.
type categorySource struct{}

func (categorySource) Categories(propertyID uuid.UUID) ([]report.Category, error) {
	var configs []SpendingConfig
	err := DB.
		Where(&SpendingConfig{PropertyID: propertyID}).
		Order("title ASC").
		Find(&configs).Error
	if err != nil {
		return nil, err
	}

	categories := make([]report.Category, 0, len(configs))
	for _, config := range configs {
		categories = append(categories, report.Category{
			ID:          config.ID,
			Title:       config.Title,
			Description: config.Description,
		})
	}

	return categories, nil
}
