package v1

import (
	"fmt"

	"github.com/estateops/backend/internal/models"
	"github.com/estateops/backend/internal/report"
	eo_uuid "github.com/estateops/backend/internal/uuid"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// AllocationEditable is one entry of an explicit spending breakdown. The
// percentage is always derived from the amount, never set by the client.
type AllocationEditable struct {
	ConfigID    uuid.UUID       `json:"configId"`                                // The spending category the money goes to
	Title       string          `json:"title" example:"Maintenance"`             // Snapshot of the category title
	Description string          `json:"description" example:"Repairs and upkeep"`// Snapshot of the category description
	Amount      decimal.Decimal `json:"amount" example:"250.00"`                 // The amount allocated
}

func (editable AllocationEditable) model() report.Allocation {
	return report.Allocation{
		ConfigID:    editable.ConfigID,
		Title:       editable.Title,
		Description: editable.Description,
		Amount:      editable.Amount,
	}
}

func allocationModels(editables []AllocationEditable) []report.Allocation {
	allocations := make([]report.Allocation, 0, len(editables))
	for _, editable := range editables {
		allocations = append(allocations, editable.model())
	}
	return allocations
}

// ReportGenerateRequest is the body for generating or regenerating the
// monthly report of a property.
type ReportGenerateRequest struct {
	PropertyID  uuid.UUID            `json:"propertyId" binding:"required"`          // The property to report on
	Month       int                  `json:"month" binding:"required" example:"3"`   // The calendar month, 1 to 12
	Year        int                  `json:"year" binding:"required" example:"2026"` // The calendar year
	Notes       *string              `json:"notes"`                                  // Free-form notes. Omit to preserve existing notes, send "" to clear them
	Allocations []AllocationEditable `json:"allocations"`                            // Explicit spending breakdown. Omit for an equal split across the property's categories
}

// ReportEditable contains the fields of a report that can be changed after
// generation.
type ReportEditable struct {
	Notes       *string              `json:"notes"`       // Free-form notes. Send "" to clear them
	Allocations []AllocationEditable `json:"allocations"` // Replaces the whole spending breakdown
}

type ReportLinks struct {
	Self     string `json:"self" example:"https://example.com/api/v1/reports/6b42b86a-57c5-4dc1-a638-e9044ba3b464"`           // The report itself
	Property string `json:"property" example:"https://example.com/api/v1/properties/d1b7a04d-987d-4c10-bd06-5f39eb14c1b5"`    // The property the report is for
}

// Report is the API representation of a monthly report.
type Report struct {
	models.DefaultModel
	PropertyID    uuid.UUID           `json:"propertyId"`
	Month         string              `json:"month" example:"2026-03"`                // The month of the report, formatted as YYYY-MM
	GeneratedByID uuid.UUID           `json:"generatedById"`                          // The user who last generated the report
	TotalBudget   decimal.Decimal     `json:"totalBudget" example:"3000.00"`          // Sum of all paid amounts
	PendingAmount decimal.Decimal     `json:"pendingAmount" example:"750.00"`         // Sum of all pending and overdue amounts
	TotalTenants  int64               `json:"totalTenants" example:"5"`               // Number of tenants of the property
	PaidTenants   int64               `json:"paidTenants" example:"4"`                // Number of tenants who paid
	Breakdown     []report.Allocation `json:"breakdown"`                              // The spending breakdown snapshot
	Notes         *string             `json:"notes"`                                  // Free-form notes
	Links         ReportLinks         `json:"links"`
}

// newReport returns the API v1 representation of the resource
func newReport(c *gin.Context, model models.MonthlyReport) Report {
	url := c.GetString(string(models.DBContextURL))

	return Report{
		DefaultModel:  model.DefaultModel,
		PropertyID:    model.PropertyID,
		Month:         model.Month.String(),
		GeneratedByID: model.GeneratedByID,
		TotalBudget:   model.TotalBudget,
		PendingAmount: model.PendingAmount,
		TotalTenants:  model.TotalTenants,
		PaidTenants:   model.PaidTenants,
		Breakdown:     model.Breakdown.Data(),
		Notes:         model.Notes,
		Links: ReportLinks{
			Self:     fmt.Sprintf("%s/v1/reports/%s", url, model.ID),
			Property: fmt.Sprintf("%s/v1/properties/%s", url, model.PropertyID),
		},
	}
}

type ReportListResponse struct {
	Data       []Report    `json:"data"`                                                          // List of resources
	Error      *string     `json:"error" example:"the specified resource ID is not a valid UUID"` // The error, if any occurred
	Pagination *Pagination `json:"pagination"`                                                    // Pagination information
}

type ReportResponse struct {
	Error *string `json:"error" example:"the specified resource ID is not a valid UUID"` // The error, if any occurred
	Data  *Report `json:"data"`                                                          // The resource
}

// ReportPreview is an unsaved report computation: the summary for the
// requested month together with the property's current spending categories
// and the payment records that went into the sums.
type ReportPreview struct {
	Summary    report.Summary    `json:"summary"`
	Categories []report.Category `json:"categories"`
	Payments   []Payment         `json:"payments"`
}

type ReportPreviewResponse struct {
	Error *string        `json:"error" example:"the month must be between 1 and 12"` // The error, if any occurred
	Data  *ReportPreview `json:"data"`                                               // The preview
}

type ReportQueryFilter struct {
	PropertyID eo_uuid.UUID `form:"property"`                   // By property
	Year       int          `form:"year" filterField:"false"`   // By calendar year
	Offset     uint         `form:"offset" filterField:"false"` // The offset of the first report returned. Defaults to 0.
	Limit      int          `form:"limit" filterField:"false"`  // Maximum number of reports to return. Defaults to 50.
}

func (f ReportQueryFilter) model() models.MonthlyReport {
	return models.MonthlyReport{
		PropertyID: f.PropertyID.UUID,
	}
}

// ReportPreviewQuery are the query parameters for a report preview.
type ReportPreviewQuery struct {
	PropertyID eo_uuid.UUID `form:"property"` // The property to preview
	Month      int          `form:"month"`    // The calendar month, 1 to 12
	Year       int          `form:"year"`     // The calendar year
}
