package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// ClientElement is a per-client price override for a catalog element.
type ClientElement struct {
	ElementID   uuid.UUID       `json:"element_id"`
	ElementName string          `json:"element_name"`
	CustomRate  decimal.Decimal `json:"custom_rate"`
	Quantity    int             `json:"quantity"`
}

// Client is a branding customer whose stores flow through the workflow.
type Client struct {
	ID         uuid.UUID        `gorm:"type:uuid;primary_key;" json:"id"`
	ClientCode string           `gorm:"unique;not null;index" json:"client_code"`
	ClientName string           `gorm:"not null" json:"client_name"`
	BranchName string           `json:"branch_name"`
	Amount     *decimal.Decimal `gorm:"type:decimal(15,2)" json:"amount"`
	GSTNumber  string           `json:"gst_number"`

	// Per-client price list overriding element standard rates
	Elements datatypes.JSONType[[]ClientElement] `json:"elements"`

	IsActive bool `gorm:"default:true" json:"is_active"`

	// Audit fields
	CreatedBy string         `gorm:"not null" json:"created_by"`
	UpdatedBy *string        `json:"updated_by"`
	CreatedAt time.Time      `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt time.Time      `gorm:"autoUpdateTime" json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`
}

// RateFor returns the client's override rate for an element when one exists.
func (c *Client) RateFor(elementID uuid.UUID) (decimal.Decimal, bool) {
	for _, el := range c.Elements.Data() {
		if el.ElementID == elementID {
			return el.CustomRate, true
		}
	}
	return decimal.Zero, false
}

// Client
func (c *Client) BeforeCreate(tx *gorm.DB) (err error) {
	if c.ID == uuid.Nil {
		c.ID = uuid.New()
	}
	return
}
