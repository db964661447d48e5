package v1

import (
	"fmt"

	"github.com/estateops/backend/internal/models"
	"github.com/estateops/backend/internal/report"
	"github.com/estateops/backend/internal/types"
	eo_uuid "github.com/estateops/backend/internal/uuid"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

type PaymentEditable struct {
	PropertyID uuid.UUID            `json:"propertyId"`                                 // The property the payment belongs to
	TenantID   uuid.UUID            `json:"tenantId"`                                   // The tenant owing the payment
	Month      types.Month          `json:"month" example:"2026-03-01T00:00:00Z"`       // The month the payment is due for
	Amount     decimal.Decimal      `json:"amount" example:"750.00"`                    // The amount due
	Status     report.PaymentStatus `json:"status" example:"pending" default:"pending"` // One of "paid", "pending", "overdue"
}

// model returns the database resource for the API representation of the
// editable fields
func (editable PaymentEditable) model() models.Payment {
	return models.Payment{
		PropertyID: editable.PropertyID,
		TenantID:   editable.TenantID,
		Month:      editable.Month,
		Amount:     editable.Amount,
		Status:     editable.Status,
	}
}

type PaymentLinks struct {
	Self     string `json:"self" example:"https://example.com/api/v1/payments/7c5feb84-3a6f-4251-a2cf-4e1a4a0d0b4e"`                // The payment itself
	Property string `json:"property" example:"https://example.com/api/v1/properties/d1b7a04d-987d-4c10-bd06-5f39eb14c1b5"`          // The property the payment belongs to
	Tenant   string `json:"tenant" example:"https://example.com/api/v1/users/ae9a9a3f-9991-4b97-a7e8-e1e94b2a7a4b"`                 // The tenant owing the payment
}

// Payment is the API representation of a payment.
type Payment struct {
	models.DefaultModel
	PaymentEditable
	Links PaymentLinks `json:"links"`
}

// newPayment returns the API v1 representation of the resource
func newPayment(c *gin.Context, model models.Payment) Payment {
	url := c.GetString(string(models.DBContextURL))

	return Payment{
		DefaultModel: model.DefaultModel,
		PaymentEditable: PaymentEditable{
			PropertyID: model.PropertyID,
			TenantID:   model.TenantID,
			Month:      model.Month,
			Amount:     model.Amount,
			Status:     model.Status,
		},
		Links: PaymentLinks{
			Self:     fmt.Sprintf("%s/v1/payments/%s", url, model.ID),
			Property: fmt.Sprintf("%s/v1/properties/%s", url, model.PropertyID),
			Tenant:   fmt.Sprintf("%s/v1/users/%s", url, model.TenantID),
		},
	}
}

type PaymentListResponse struct {
	Data       []Payment   `json:"data"`                                                          // List of resources
	Error      *string     `json:"error" example:"the specified resource ID is not a valid UUID"` // The error, if any occurred
	Pagination *Pagination `json:"pagination"`                                                    // Pagination information
}

type PaymentCreateResponse struct {
	Error *string           `json:"error" example:"the specified resource ID is not a valid UUID"` // The error, if any occurred
	Data  []PaymentResponse `json:"data"`                                                          // List of created resources
}

func (t *PaymentCreateResponse) appendError(err error, currentStatus int) int {
	s := err.Error()
	t.Data = append(t.Data, PaymentResponse{Error: &s})

	// The final status code is the highest HTTP status code number
	newStatus := status(err)
	if newStatus > currentStatus {
		return newStatus
	}

	return currentStatus
}

type PaymentResponse struct {
	Error *string  `json:"error" example:"the specified resource ID is not a valid UUID"` // The error, if any occurred
	Data  *Payment `json:"data"`                                                          // The resource
}

type PaymentQueryFilter struct {
	PropertyID eo_uuid.UUID `form:"property"`                   // By property
	TenantID   eo_uuid.UUID `form:"tenant"`                     // By tenant
	Month      string       `form:"month" filterField:"false"`  // By month, formatted as YYYY-MM
	Status     string       `form:"status"`                     // By payment status
	Offset     uint         `form:"offset" filterField:"false"` // The offset of the first payment returned. Defaults to 0.
	Limit      int          `form:"limit" filterField:"false"`  // Maximum number of payments to return. Defaults to 50.
}

func (f PaymentQueryFilter) model() models.Payment {
	return models.Payment{
		PropertyID: f.PropertyID.UUID,
		TenantID:   f.TenantID.UUID,
		Status:     report.PaymentStatus(f.Status),
	}
}
