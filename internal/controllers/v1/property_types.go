package v1

import (
	"fmt"

	"github.com/estateops/backend/internal/models"
	eo_uuid "github.com/estateops/backend/internal/uuid"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

type PropertyEditable struct {
	Name      string    `json:"name" example:"Sunset Apartments" default:""`    // Name of the property
	Address   string    `json:"address" example:"12 Harbour Street" default:""` // Street address
	City      string    `json:"city" example:"Rotterdam" default:""`            // City the property is in
	ManagerID uuid.UUID `json:"managerId"`                                      // The user managing this property
}

// model returns the database resource for the API representation of the
// editable fields
func (editable PropertyEditable) model() models.Property {
	return models.Property{
		Name:      editable.Name,
		Address:   editable.Address,
		City:      editable.City,
		ManagerID: editable.ManagerID,
	}
}

type PropertyLinks struct {
	Self            string `json:"self" example:"https://example.com/api/v1/properties/d1b7a04d-987d-4c10-bd06-5f39eb14c1b5"`               // The property itself
	Reports         string `json:"reports" example:"https://example.com/api/v1/reports?property=d1b7a04d-987d-4c10-bd06-5f39eb14c1b5"`      // Monthly reports for this property
	SpendingConfigs string `json:"spendingConfigs" example:"https://example.com/api/v1/spending-configs?property=d1b7a04d-987d-4c10-bd06"`   // Spending categories of this property
	Payments        string `json:"payments" example:"https://example.com/api/v1/payments?property=d1b7a04d-987d-4c10-bd06-5f39eb14c1b5"`    // Payments for this property
}

// Property is the API representation of a property.
type Property struct {
	models.DefaultModel
	PropertyEditable
	Links PropertyLinks `json:"links"`
}

// newProperty returns the API v1 representation of the resource
func newProperty(c *gin.Context, model models.Property) Property {
	url := c.GetString(string(models.DBContextURL))

	return Property{
		DefaultModel: model.DefaultModel,
		PropertyEditable: PropertyEditable{
			Name:      model.Name,
			Address:   model.Address,
			City:      model.City,
			ManagerID: model.ManagerID,
		},
		Links: PropertyLinks{
			Self:            fmt.Sprintf("%s/v1/properties/%s", url, model.ID),
			Reports:         fmt.Sprintf("%s/v1/reports?property=%s", url, model.ID),
			SpendingConfigs: fmt.Sprintf("%s/v1/spending-configs?property=%s", url, model.ID),
			Payments:        fmt.Sprintf("%s/v1/payments?property=%s", url, model.ID),
		},
	}
}

type PropertyListResponse struct {
	Data       []Property  `json:"data"`                                                          // List of resources
	Error      *string     `json:"error" example:"the specified resource ID is not a valid UUID"` // The error, if any occurred
	Pagination *Pagination `json:"pagination"`                                                    // Pagination information
}

type PropertyCreateResponse struct {
	Error *string            `json:"error" example:"the specified resource ID is not a valid UUID"` // The error, if any occurred
	Data  []PropertyResponse `json:"data"`                                                          // List of created resources
}

func (t *PropertyCreateResponse) appendError(err error, currentStatus int) int {
	s := err.Error()
	t.Data = append(t.Data, PropertyResponse{Error: &s})

	// The final status code is the highest HTTP status code number
	newStatus := status(err)
	if newStatus > currentStatus {
		return newStatus
	}

	return currentStatus
}

type PropertyResponse struct {
	Error *string   `json:"error" example:"the specified resource ID is not a valid UUID"` // The error, if any occurred
	Data  *Property `json:"data"`                                                          // The resource
}

type PropertyQueryFilter struct {
	Name      string       `form:"name" filterField:"false"`   // By name
	City      string       `form:"city"`                       // By city
	ManagerID eo_uuid.UUID `form:"manager"`                    // By managing user
	Offset    uint         `form:"offset" filterField:"false"` // The offset of the first property returned. Defaults to 0.
	Limit     int          `form:"limit" filterField:"false"`  // Maximum number of properties to return. Defaults to 50.
}

func (f PropertyQueryFilter) model() models.Property {
	return models.Property{
		City:      f.City,
		ManagerID: f.ManagerID.UUID,
	}
}
