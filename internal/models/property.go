package models

import (
	"strings"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Property represents a managed building or unit group.
//
// A property is the highest level of organization in the backend, all other
// resources reference it directly or transitively.
type Property struct {
	DefaultModel
	Name      string    `json:"name"`
	Address   string    `json:"address"`
	City      string    `json:"city"`
	ManagerID uuid.UUID `json:"managerId"` // The user managing this property
	Manager   User      `json:"-"`
}

func (p *Property) BeforeSave(_ *gorm.DB) error {
	p.Name = strings.TrimSpace(p.Name)
	p.Address = strings.TrimSpace(p.Address)
	p.City = strings.TrimSpace(p.City)
	return nil
}

func (p *Property) BeforeCreate(tx *gorm.DB) error {
	_ = p.DefaultModel.BeforeCreate(tx)

	toSave := tx.Statement.Dest.(*Property)
	return tx.First(&User{}, toSave.ManagerID).Error
}
