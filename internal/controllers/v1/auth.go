package v1

import (
	"errors"
	"net/http"
	"strings"

	"github.com/estateops/backend/internal/httputil"
	"github.com/estateops/backend/internal/models"
	"github.com/gin-gonic/gin"
)

// RegisterAuthRoutes registers the routes for authentication with
// the RouterGroup that is passed.
func RegisterAuthRoutes(r *gin.RouterGroup) {
	r.OPTIONS("/register", OptionsAuth)
	r.POST("/register", Register)

	r.OPTIONS("/login", OptionsAuth)
	r.POST("/login", Login)
}

// @Summary		Allowed HTTP verbs
// @Description	Returns an empty response with the HTTP Header "allow" set to the allowed HTTP verbs
// @Tags			Auth
// @Success		204
// @Router			/v1/auth/register [options]
func OptionsAuth(c *gin.Context) {
	httputil.OptionsPost(c)
}

// @Summary		Register
// @Description	Creates a new tenant account and returns a bearer token for it
// @Tags			Auth
// @Accept			json
// @Produce		json
// @Success		201		{object}	LoginResponse
// @Failure		400		{object}	LoginResponse
// @Failure		500		{object}	LoginResponse
// @Param			user	body		RegisterRequest	true	"User"
// @Router			/v1/auth/register [post]
func Register(c *gin.Context) {
	var data RegisterRequest
	err := httputil.BindData(c, &data)
	if err != nil {
		s := err.Error()
		c.JSON(status(err), LoginResponse{Error: &s})
		return
	}

	// Accounts created through the public endpoint are always tenants.
	// Managers and admins are created by an admin through /v1/users.
	user := models.User{
		Name:       data.Name,
		Email:      data.Email,
		Role:       models.RoleTenant,
		PropertyID: data.PropertyID,
	}

	err = user.SetPassword(data.Password)
	if err != nil {
		s := models.ErrGeneral.Error()
		c.JSON(http.StatusInternalServerError, LoginResponse{Error: &s})
		return
	}

	err = models.DB.Create(&user).Error
	if err != nil {
		s := err.Error()
		c.JSON(status(err), LoginResponse{Error: &s})
		return
	}

	token, err := IssueToken(user)
	if err != nil {
		s := models.ErrGeneral.Error()
		c.JSON(http.StatusInternalServerError, LoginResponse{Error: &s})
		return
	}

	c.JSON(http.StatusCreated, LoginResponse{
		Data: &LoginData{
			Token: token,
			User:  newUser(c, user),
		},
	})
}

// @Summary		Login
// @Description	Authenticates a user and returns a bearer token
// @Tags			Auth
// @Accept			json
// @Produce		json
// @Success		200			{object}	LoginResponse
// @Failure		400			{object}	LoginResponse
// @Failure		401			{object}	LoginResponse
// @Param			credentials	body		LoginRequest	true	"Credentials"
// @Router			/v1/auth/login [post]
func Login(c *gin.Context) {
	var data LoginRequest
	err := httputil.BindData(c, &data)
	if err != nil {
		s := err.Error()
		c.JSON(status(err), LoginResponse{Error: &s})
		return
	}

	var user models.User
	err = models.DB.Where("email = ?", strings.ToLower(strings.TrimSpace(data.Email))).First(&user).Error
	if err != nil && !errors.Is(err, models.ErrResourceNotFound) {
		s := err.Error()
		c.JSON(status(err), LoginResponse{Error: &s})
		return
	}

	// The same error is returned for an unknown email and a wrong
	// password so that account existence does not leak.
	if err != nil || !user.CheckPassword(data.Password) {
		s := errLoginFailed.Error()
		c.JSON(status(errLoginFailed), LoginResponse{Error: &s})
		return
	}

	token, err := IssueToken(user)
	if err != nil {
		s := models.ErrGeneral.Error()
		c.JSON(http.StatusInternalServerError, LoginResponse{Error: &s})
		return
	}

	c.JSON(http.StatusOK, LoginResponse{
		Data: &LoginData{
			Token: token,
			User:  newUser(c, user),
		},
	})
}
