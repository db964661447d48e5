package v1

import (
	"fmt"

	"github.com/estateops/backend/internal/models"
	eo_uuid "github.com/estateops/backend/internal/uuid"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

type ComplaintEditable struct {
	PropertyID uuid.UUID              `json:"propertyId"`                                             // The property the complaint is about
	Subject    string                 `json:"subject" example:"Broken heating" default:""`            // Short summary of the issue
	Body       string                 `json:"body" example:"The radiator in the living room leaks."`  // Full description of the issue
	Status     models.ComplaintStatus `json:"status" example:"open" default:"open"`                   // One of "open", "in_progress", "resolved"
}

// model returns the database resource for the API representation of the
// editable fields
func (editable ComplaintEditable) model() models.Complaint {
	return models.Complaint{
		PropertyID: editable.PropertyID,
		Subject:    editable.Subject,
		Body:       editable.Body,
		Status:     editable.Status,
	}
}

type ComplaintLinks struct {
	Self     string `json:"self" example:"https://example.com/api/v1/complaints/19867a6b-bb6c-48a3-a28f-83a2f062a62a"`          // The complaint itself
	Property string `json:"property" example:"https://example.com/api/v1/properties/d1b7a04d-987d-4c10-bd06-5f39eb14c1b5"`      // The property the complaint is about
}

// Complaint is the API representation of a complaint.
type Complaint struct {
	models.DefaultModel
	ComplaintEditable
	TenantID uuid.UUID      `json:"tenantId"` // The tenant who filed the complaint
	Links    ComplaintLinks `json:"links"`
}

// newComplaint returns the API v1 representation of the resource
func newComplaint(c *gin.Context, model models.Complaint) Complaint {
	url := c.GetString(string(models.DBContextURL))

	return Complaint{
		DefaultModel: model.DefaultModel,
		ComplaintEditable: ComplaintEditable{
			PropertyID: model.PropertyID,
			Subject:    model.Subject,
			Body:       model.Body,
			Status:     model.Status,
		},
		TenantID: model.TenantID,
		Links: ComplaintLinks{
			Self:     fmt.Sprintf("%s/v1/complaints/%s", url, model.ID),
			Property: fmt.Sprintf("%s/v1/properties/%s", url, model.PropertyID),
		},
	}
}

type ComplaintListResponse struct {
	Data       []Complaint `json:"data"`                                                          // List of resources
	Error      *string     `json:"error" example:"the specified resource ID is not a valid UUID"` // The error, if any occurred
	Pagination *Pagination `json:"pagination"`                                                    // Pagination information
}

type ComplaintCreateResponse struct {
	Error *string             `json:"error" example:"the specified resource ID is not a valid UUID"` // The error, if any occurred
	Data  []ComplaintResponse `json:"data"`                                                          // List of created resources
}

func (t *ComplaintCreateResponse) appendError(err error, currentStatus int) int {
	s := err.Error()
	t.Data = append(t.Data, ComplaintResponse{Error: &s})

	// The final status code is the highest HTTP status code number
	newStatus := status(err)
	if newStatus > currentStatus {
		return newStatus
	}

	return currentStatus
}

type ComplaintResponse struct {
	Error *string    `json:"error" example:"the specified resource ID is not a valid UUID"` // The error, if any occurred
	Data  *Complaint `json:"data"`                                                          // The resource
}

type ComplaintQueryFilter struct {
	PropertyID eo_uuid.UUID `form:"property"`                   // By property
	TenantID   eo_uuid.UUID `form:"tenant"`                     // By tenant
	Status     string       `form:"status"`                     // By complaint status
	Offset     uint         `form:"offset" filterField:"false"` // The offset of the first complaint returned. Defaults to 0.
	Limit      int          `form:"limit" filterField:"false"`  // Maximum number of complaints to return. Defaults to 50.
}

func (f ComplaintQueryFilter) model() models.Complaint {
	return models.Complaint{
		PropertyID: f.PropertyID.UUID,
		TenantID:   f.TenantID.UUID,
		Status:     models.ComplaintStatus(f.Status),
	}
}
