package models

import (
	"strings"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// SpendingConfig is a named bucket a property manager defines once and
// reuses across months to categorize budget allocation, e.g. "Maintenance".
type SpendingConfig struct {
	DefaultModel
	PropertyID  uuid.UUID `json:"propertyId" gorm:"uniqueIndex:spending_config_property_title,where:deleted_at IS NULL"`
	Property    Property  `json:"-"`
	Title       string    `json:"title" gorm:"uniqueIndex:spending_config_property_title"`
	Description string    `json:"description"`
}

func (s *SpendingConfig) BeforeSave(_ *gorm.DB) error {
	s.Title = strings.TrimSpace(s.Title)
	s.Description = strings.TrimSpace(s.Description)
	return nil
}
