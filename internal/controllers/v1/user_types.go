package v1

import (
	"fmt"

	"github.com/estateops/backend/internal/models"
	eo_uuid "github.com/estateops/backend/internal/uuid"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

type UserEditable struct {
	Name       string          `json:"name" example:"Jane Doe" default:""`
	Email      string          `json:"email" example:"jane@doe.com" default:""`
	Password   string          `json:"password" default:""` // Only used on create and when changing the password
	Role       models.UserRole `json:"role" example:"manager" default:"tenant"`
	PropertyID *uuid.UUID      `json:"propertyId"` // The property the tenant lives in
}

// model returns the database resource for the API representation of the
// editable fields
func (editable UserEditable) model() models.User {
	return models.User{
		Name:       editable.Name,
		Email:      editable.Email,
		Role:       editable.Role,
		PropertyID: editable.PropertyID,
	}
}

// newUser returns the API v1 representation of the resource
func newUser(c *gin.Context, model models.User) User {
	url := c.GetString(string(models.DBContextURL))

	return User{
		DefaultModel: model.DefaultModel,
		Name:         model.Name,
		Email:        model.Email,
		Role:         model.Role,
		PropertyID:   model.PropertyID,
		Links: UserLinks{
			Self: fmt.Sprintf("%s/v1/users/%s", url, model.ID),
		},
	}
}

type UserListResponse struct {
	Data       []User      `json:"data"`                                                          // List of resources
	Error      *string     `json:"error" example:"the specified resource ID is not a valid UUID"` // The error, if any occurred
	Pagination *Pagination `json:"pagination"`                                                    // Pagination information
}

type UserCreateResponse struct {
	Error *string        `json:"error" example:"the specified resource ID is not a valid UUID"` // The error, if any occurred
	Data  []UserResponse `json:"data"`                                                          // List of created resources
}

func (t *UserCreateResponse) appendError(err error, currentStatus int) int {
	s := err.Error()
	t.Data = append(t.Data, UserResponse{Error: &s})

	// The final status code is the highest HTTP status code number
	newStatus := status(err)
	if newStatus > currentStatus {
		return newStatus
	}

	return currentStatus
}

type UserResponse struct {
	Error *string `json:"error" example:"the specified resource ID is not a valid UUID"` // The error, if any occurred
	Data  *User   `json:"data"`                                                          // The resource
}

type UserQueryFilter struct {
	Name       string       `form:"name" filterField:"false"`   // By name
	Email      string       `form:"email" filterField:"false"`  // By email
	Role       string       `form:"role"`                       // By role
	PropertyID eo_uuid.UUID `form:"property"`                   // By the property a tenant lives in
	Offset     uint         `form:"offset" filterField:"false"` // The offset of the first user returned. Defaults to 0.
	Limit      int          `form:"limit" filterField:"false"`  // Maximum number of users to return. Defaults to 50.
}

func (f UserQueryFilter) model() models.User {
	var propertyID *uuid.UUID
	if f.PropertyID.UUID != uuid.Nil {
		propertyID = &f.PropertyID.UUID
	}

	return models.User{
		Role:       models.UserRole(f.Role),
		PropertyID: propertyID,
	}
}
