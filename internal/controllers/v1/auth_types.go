package v1

import (
	"github.com/estateops/backend/internal/models"
	"github.com/google/uuid"
)

type RegisterRequest struct {
	Name       string     `json:"name" binding:"required" example:"Jane Doe"`            // Name of the new user
	Email      string     `json:"email" binding:"required,email" example:"jane@doe.com"` // Email address, used to log in
	Password   string     `json:"password" binding:"required,min=8"`                     // Password, at least 8 characters
	PropertyID *uuid.UUID `json:"propertyId"`                                            // The property the tenant lives in
}

type LoginRequest struct {
	Email    string `json:"email" binding:"required" example:"jane@doe.com"`
	Password string `json:"password" binding:"required"`
}

type LoginData struct {
	Token string `json:"token"` // Bearer token for the Authorization header
	User  User   `json:"user"`  // The authenticated user
}

type LoginResponse struct {
	Error *string    `json:"error" example:"the email or password is incorrect"` // The error, if any occurred
	Data  *LoginData `json:"data"`                                               // Token and user
}

// User is the API representation of a user.
type User struct {
	models.DefaultModel
	Name       string          `json:"name" example:"Jane Doe"`
	Email      string          `json:"email" example:"jane@doe.com"`
	Role       models.UserRole `json:"role" example:"tenant"`
	PropertyID *uuid.UUID      `json:"propertyId"`
	Links      UserLinks       `json:"links"`
}

type UserLinks struct {
	Self string `json:"self" example:"https://example.com/api/v1/users/d1b7a04d-987d-4c10-bd06-5f39eb14c1b5"` // The user itself
}
