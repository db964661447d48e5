package models

import (
	"strings"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

// UserRole determines which parts of the API a user may use.
type UserRole string

const (
	RoleAdmin   UserRole = "admin"
	RoleManager UserRole = "manager"
	RoleTenant  UserRole = "tenant"
)

// User represents a person with access to the backend.
//
// Tenants reference the property they live in; managers are referenced by
// the properties they manage.
type User struct {
	DefaultModel
	Name         string     `json:"name"`
	Email        string     `json:"email" gorm:"uniqueIndex:user_email,where:deleted_at IS NULL"`
	PasswordHash string     `json:"-"`
	Role         UserRole   `json:"role"`
	PropertyID   *uuid.UUID `json:"propertyId"` // The property a tenant lives in
	Property     *Property  `json:"-"`
}

func (u *User) BeforeSave(_ *gorm.DB) error {
	u.Name = strings.TrimSpace(u.Name)
	u.Email = strings.ToLower(strings.TrimSpace(u.Email))
	return nil
}

func (u *User) BeforeCreate(tx *gorm.DB) error {
	_ = u.DefaultModel.BeforeCreate(tx)

	if u.Role == "" {
		u.Role = RoleTenant
	}

	return validRole(u.Role)
}

// BeforeUpdate validates the role when it is changed. Partial updates
// leaving the role untouched must not fail on the zero value.
func (u *User) BeforeUpdate(tx *gorm.DB) error {
	if tx.Statement.Changed("Role") {
		toSave := tx.Statement.Dest.(User)
		return validRole(toSave.Role)
	}

	return nil
}

func validRole(role UserRole) error {
	switch role {
	case RoleAdmin, RoleManager, RoleTenant:
		return nil
	default:
		return ErrUserRoleInvalid
	}
}

// SetPassword hashes the password and stores the hash on the user.
func (u *User) SetPassword(password string) error {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return err
	}

	u.PasswordHash = string(hash)
	return nil
}

// CheckPassword reports whether the password matches the stored hash.
func (u User) CheckPassword(password string) bool {
	return bcrypt.CompareHashAndPassword([]byte(u.PasswordHash), []byte(password)) == nil
}
