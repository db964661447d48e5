package v1

import (
	"strings"
	"time"

	"github.com/estateops/backend/internal/config"
	"github.com/estateops/backend/internal/models"
	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// cfg holds the configuration the controllers were set up with.
var cfg config.Config

// Configure sets the configuration used by the v1 controllers. It must be
// called before any route is registered.
func Configure(c config.Config) {
	cfg = c
}

const contextUser = "estateops-user"

type tokenClaims struct {
	jwt.RegisteredClaims
	Role string `json:"role"`
}

// IssueToken returns a signed bearer token for the user.
func IssueToken(user models.User) (string, error) {
	now := time.Now()

	claims := tokenClaims{
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   user.ID.String(),
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(cfg.JWT.Lifetime)),
		},
		Role: string(user.Role),
	}

	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(cfg.JWT.Secret))
}

// RequireLogin validates the bearer token and loads the acting user into the
// request context.
//
// The user is read from the database on every request so that role changes
// and deletions take effect immediately, not only after token expiry.
func RequireLogin() gin.HandlerFunc {
	return func(c *gin.Context) {
		header := c.GetHeader("Authorization")
		if !strings.HasPrefix(header, "Bearer ") {
			c.AbortWithStatusJSON(status(errTokenInvalid), httpError{Error: errTokenInvalid.Error()})
			return
		}

		claims := &tokenClaims{}
		token, err := jwt.ParseWithClaims(strings.TrimPrefix(header, "Bearer "), claims, func(t *jwt.Token) (interface{}, error) {
			if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
				return nil, errTokenInvalid
			}
			return []byte(cfg.JWT.Secret), nil
		})
		if err != nil || !token.Valid {
			c.AbortWithStatusJSON(status(errTokenInvalid), httpError{Error: errTokenInvalid.Error()})
			return
		}

		userID, err := uuid.Parse(claims.Subject)
		if err != nil {
			c.AbortWithStatusJSON(status(errTokenInvalid), httpError{Error: errTokenInvalid.Error()})
			return
		}

		var user models.User
		err = models.DB.First(&user, userID).Error
		if err != nil {
			c.AbortWithStatusJSON(status(errTokenInvalid), httpError{Error: errTokenInvalid.Error()})
			return
		}

		c.Set(contextUser, user)
		c.Next()
	}
}

// RequireRole rejects requests from users whose role is not in the list.
func RequireRole(roles ...models.UserRole) gin.HandlerFunc {
	return func(c *gin.Context) {
		user := currentUser(c)

		for _, role := range roles {
			if user.Role == role {
				c.Next()
				return
			}
		}

		c.AbortWithStatusJSON(status(errNotAllowed), httpError{Error: errNotAllowed.Error()})
	}
}

// currentUser returns the acting user loaded by RequireLogin.
func currentUser(c *gin.Context) models.User {
	user, _ := c.Get(contextUser)
	return user.(models.User)
}

// manageableProperties returns a query for the IDs of all properties the
// user manages. Admins manage everything.
func manageableProperties(user models.User) *gorm.DB {
	q := models.DB.Model(&models.Property{}).Select("id")
	if user.Role != models.RoleAdmin {
		q = q.Where("manager_id = ?", user.ID)
	}

	return q
}

// manageableProperty loads a property if the acting user manages it.
//
// A property that exists but is managed by someone else yields the same
// "not found" error as a missing one, so existence does not leak.
func manageableProperty(c *gin.Context, id uuid.UUID) (models.Property, error) {
	user := currentUser(c)

	var property models.Property
	err := models.DB.
		Where("id IN (?)", manageableProperties(user)).
		First(&property, id).Error

	return property, err
}
