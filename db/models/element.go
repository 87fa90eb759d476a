package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// Element is a billable catalog entry (board material, vinyl, etc.) priced
// per unit unless a client carries an override.
type Element struct {
	ID           uuid.UUID       `gorm:"type:uuid;primary_key;" json:"id"`
	Name         string          `gorm:"unique;not null" json:"name"`
	StandardRate decimal.Decimal `gorm:"type:decimal(15,2);not null" json:"standard_rate"`
	Unit         string          `gorm:"default:'sq.ft'" json:"unit"`
	IsActive     bool            `gorm:"default:true" json:"is_active"`

	// Audit fields
	CreatedBy string         `gorm:"not null" json:"created_by"`
	UpdatedBy *string        `json:"updated_by"`
	CreatedAt time.Time      `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt time.Time      `gorm:"autoUpdateTime" json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`
}

// Element
func (e *Element) BeforeCreate(tx *gorm.DB) (err error) {
	if e.ID == uuid.Nil {
		e.ID = uuid.New()
	}
	return
}
