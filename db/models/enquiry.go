package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// EnquiryStatus tracks the triage state of a public contact-form submission.
type EnquiryStatus string

const (
	EnquiryNew       EnquiryStatus = "NEW"
	EnquiryRead      EnquiryStatus = "READ"
	EnquiryContacted EnquiryStatus = "CONTACTED"
	EnquiryResolved  EnquiryStatus = "RESOLVED"
)

// Enquiry arrives from the public site; the first admin open advances
// NEW to READ, after which any status is reachable via a remark save.
type Enquiry struct {
	ID      uuid.UUID     `gorm:"type:uuid;primary_key;" json:"id"`
	Name    string        `gorm:"not null" json:"name"`
	Email   string        `gorm:"not null" json:"email"`
	Phone   string        `json:"phone"`
	Message string        `gorm:"type:text;not null" json:"message"`
	Status  EnquiryStatus `gorm:"type:varchar(20);default:'NEW';index" json:"status"`
	Remark  *string       `gorm:"type:text" json:"remark"`

	// Audit fields
	CreatedAt time.Time      `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt time.Time      `gorm:"autoUpdateTime" json:"updated_at"`
	UpdatedBy *string        `json:"updated_by"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`
}

// Enquiry
func (e *Enquiry) BeforeCreate(tx *gorm.DB) (err error) {
	if e.ID == uuid.Nil {
		e.ID = uuid.New()
	}
	return
}
