package v1

import (
	"fmt"

	"github.com/estateops/backend/internal/models"
	eo_uuid "github.com/estateops/backend/internal/uuid"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

type SpendingConfigEditable struct {
	PropertyID  uuid.UUID `json:"propertyId"`                                               // The property the category belongs to
	Title       string    `json:"title" example:"Maintenance" default:""`                   // Name of the spending category
	Description string    `json:"description" example:"Repairs and upkeep" default:""`     // Notes about the category
}

// model returns the database resource for the API representation of the
// editable fields
func (editable SpendingConfigEditable) model() models.SpendingConfig {
	return models.SpendingConfig{
		PropertyID:  editable.PropertyID,
		Title:       editable.Title,
		Description: editable.Description,
	}
}

type SpendingConfigLinks struct {
	Self     string `json:"self" example:"https://example.com/api/v1/spending-configs/a1c9f0f3-6f4e-4b8a-9f7e-27c2ab1d4a14"`       // The category itself
	Property string `json:"property" example:"https://example.com/api/v1/properties/d1b7a04d-987d-4c10-bd06-5f39eb14c1b5"`         // The property the category belongs to
}

// SpendingConfig is the API representation of a spending category.
type SpendingConfig struct {
	models.DefaultModel
	SpendingConfigEditable
	Links SpendingConfigLinks `json:"links"`
}

// newSpendingConfig returns the API v1 representation of the resource
func newSpendingConfig(c *gin.Context, model models.SpendingConfig) SpendingConfig {
	url := c.GetString(string(models.DBContextURL))

	return SpendingConfig{
		DefaultModel: model.DefaultModel,
		SpendingConfigEditable: SpendingConfigEditable{
			PropertyID:  model.PropertyID,
			Title:       model.Title,
			Description: model.Description,
		},
		Links: SpendingConfigLinks{
			Self:     fmt.Sprintf("%s/v1/spending-configs/%s", url, model.ID),
			Property: fmt.Sprintf("%s/v1/properties/%s", url, model.PropertyID),
		},
	}
}

type SpendingConfigListResponse struct {
	Data       []SpendingConfig `json:"data"`                                                          // List of resources
	Error      *string          `json:"error" example:"the specified resource ID is not a valid UUID"` // The error, if any occurred
	Pagination *Pagination      `json:"pagination"`                                                    // Pagination information
}

type SpendingConfigCreateResponse struct {
	Error *string                  `json:"error" example:"the specified resource ID is not a valid UUID"` // The error, if any occurred
	Data  []SpendingConfigResponse `json:"data"`                                                          // List of created resources
}

func (t *SpendingConfigCreateResponse) appendError(err error, currentStatus int) int {
	s := err.Error()
	t.Data = append(t.Data, SpendingConfigResponse{Error: &s})

	// The final status code is the highest HTTP status code number
	newStatus := status(err)
	if newStatus > currentStatus {
		return newStatus
	}

	return currentStatus
}

type SpendingConfigResponse struct {
	Error *string         `json:"error" example:"the specified resource ID is not a valid UUID"` // The error, if any occurred
	Data  *SpendingConfig `json:"data"`                                                          // The resource
}

type SpendingConfigQueryFilter struct {
	PropertyID eo_uuid.UUID `form:"property"`                   // By property
	Title      string       `form:"title" filterField:"false"`  // By title
	Offset     uint         `form:"offset" filterField:"false"` // The offset of the first category returned. Defaults to 0.
	Limit      int          `form:"limit" filterField:"false"`  // Maximum number of categories to return. Defaults to 50.
}

func (f SpendingConfigQueryFilter) model() models.SpendingConfig {
	return models.SpendingConfig{
		PropertyID: f.PropertyID.UUID,
	}
}
