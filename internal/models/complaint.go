package models

import (
	"strings"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// ComplaintStatus is the processing state of a complaint.
type ComplaintStatus string

const (
	ComplaintOpen       ComplaintStatus = "open"
	ComplaintInProgress ComplaintStatus = "in_progress"
	ComplaintResolved   ComplaintStatus = "resolved"
)

// Complaint is a tenant's issue report for their property.
type Complaint struct {
	DefaultModel
	PropertyID uuid.UUID       `json:"propertyId"`
	Property   Property        `json:"-"`
	TenantID   uuid.UUID       `json:"tenantId"`
	Tenant     User            `json:"-"`
	Subject    string          `json:"subject"`
	Body       string          `json:"body"`
	Status     ComplaintStatus `json:"status"`
}

func (c *Complaint) BeforeSave(_ *gorm.DB) error {
	c.Subject = strings.TrimSpace(c.Subject)
	c.Body = strings.TrimSpace(c.Body)
	return nil
}

func (c *Complaint) BeforeCreate(tx *gorm.DB) error {
	_ = c.DefaultModel.BeforeCreate(tx)

	if c.Status == "" {
		c.Status = ComplaintOpen
	}

	return validComplaintStatus(c.Status)
}

func (c *Complaint) BeforeUpdate(tx *gorm.DB) error {
	if tx.Statement.Changed("Status") {
		toSave := tx.Statement.Dest.(Complaint)
		return validComplaintStatus(toSave.Status)
	}

	return nil
}

func validComplaintStatus(status ComplaintStatus) error {
	switch status {
	case ComplaintOpen, ComplaintInProgress, ComplaintResolved:
		return nil
	default:
		return ErrComplaintStatusInvalid
	}
}
