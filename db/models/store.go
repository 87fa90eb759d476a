package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// StoreStatus defines where a store sits in the recce/installation lifecycle.
type StoreStatus string

const (
	StatusUploaded              StoreStatus = "UPLOADED"
	StatusRecceAssigned         StoreStatus = "RECCE_ASSIGNED"
	StatusRecceSubmitted        StoreStatus = "RECCE_SUBMITTED"
	StatusRecceApproved         StoreStatus = "RECCE_APPROVED"
	StatusRecceRejected         StoreStatus = "RECCE_REJECTED"
	StatusInstallationAssigned  StoreStatus = "INSTALLATION_ASSIGNED"
	StatusInstallationSubmitted StoreStatus = "INSTALLATION_SUBMITTED"
	StatusInstallationRejected  StoreStatus = "INSTALLATION_REJECTED"
	StatusCompleted             StoreStatus = "COMPLETED"
)

// StorePriority tags the urgency of a job on its workflow block.
type StorePriority string

const (
	PriorityHigh   StorePriority = "HIGH"
	PriorityMedium StorePriority = "MEDIUM"
	PriorityLow    StorePriority = "LOW"
)

// MeasurementUnit for recce photo dimensions.
type MeasurementUnit string

const (
	UnitFeet   MeasurementUnit = "ft"
	UnitInches MeasurementUnit = "in"
	UnitMeters MeasurementUnit = "m"
)

// UserRef is a denormalized user reference embedded in workflow JSON so the
// assignment history survives user edits.
type UserRef struct {
	ID    uuid.UUID `json:"id"`
	Name  string    `json:"name"`
	Email string    `json:"email"`
}

// WorkflowAssignment tracks the two assignment slots on a store.
type WorkflowAssignment struct {
	RecceAssignedTo        *UserRef      `json:"recce_assigned_to,omitempty"`
	RecceAssignedBy        *UserRef      `json:"recce_assigned_by,omitempty"`
	InstallationAssignedTo *UserRef      `json:"installation_assigned_to,omitempty"`
	InstallationAssignedBy *UserRef      `json:"installation_assigned_by,omitempty"`
	Priority               StorePriority `json:"priority,omitempty"`
}

// ElementLine is one billable element measured against a recce photo.
type ElementLine struct {
	ElementID   uuid.UUID `json:"element_id"`
	ElementName string    `json:"element_name"`
	Quantity    int       `json:"quantity"`
}

// ReccePhoto pairs a site photograph with its measurements and the elements
// priced against it.
type ReccePhoto struct {
	FileURL  string          `json:"file_url"`
	Width    decimal.Decimal `json:"width"`
	Height   decimal.Decimal `json:"height"`
	Unit     MeasurementUnit `json:"unit"`
	Elements []ElementLine   `json:"elements"`
}

// RecceDetail is the recce sub-object on a store.
type RecceDetail struct {
	AssignedDate  *time.Time   `json:"assigned_date,omitempty"`
	SubmittedDate *time.Time   `json:"submitted_date,omitempty"`
	InitialPhotos []string     `json:"initial_photos,omitempty"`
	Photos        []ReccePhoto `json:"photos,omitempty"`
	Notes         string       `json:"notes,omitempty"`
	SubmittedBy   *UserRef     `json:"submitted_by,omitempty"`
}

// InstallationPhoto fulfills exactly one recce photo, addressed by index.
type InstallationPhoto struct {
	FileURL         string `json:"file_url"`
	ReccePhotoIndex int    `json:"recce_photo_index"`
}

// InstallationDetail is the installation sub-object on a store.
type InstallationDetail struct {
	AssignedDate  *time.Time          `json:"assigned_date,omitempty"`
	SubmittedDate *time.Time          `json:"submitted_date,omitempty"`
	Photos        []InstallationPhoto `json:"photos,omitempty"`
	SubmittedBy   *UserRef            `json:"submitted_by,omitempty"`
}

// Store represents one physical signage installation job. Stores are never
// deleted; terminal state is COMPLETED.
type Store struct {
	ID         uuid.UUID `gorm:"type:uuid;primary_key;" json:"id"`
	StoreCode  string    `gorm:"not null;index" json:"store_code"`
	DealerCode string    `gorm:"index" json:"dealer_code"`
	StoreName  string    `gorm:"not null" json:"store_name"`
	VendorCode string    `json:"vendor_code"`

	ClientID   *uuid.UUID `gorm:"type:uuid;index" json:"client_id"`
	ClientCode string     `gorm:"index" json:"client_code"`

	// Location
	Zone      string   `gorm:"index" json:"zone"`
	State     string   `json:"state"`
	District  string   `json:"district"`
	City      string   `json:"city"`
	Area      string   `json:"area"`
	Address   string   `gorm:"type:text" json:"address"`
	Pincode   string   `json:"pincode"`
	Latitude  *float64 `json:"latitude"`
	Longitude *float64 `json:"longitude"`

	// Board specs
	BoardType   string           `json:"board_type"`
	BoardWidth  *decimal.Decimal `gorm:"type:decimal(10,2)" json:"board_width"`
	BoardHeight *decimal.Decimal `gorm:"type:decimal(10,2)" json:"board_height"`
	Quantity    int              `gorm:"default:1" json:"quantity"`
	BoardSize   *decimal.Decimal `gorm:"type:decimal(15,2)" json:"board_size"` // width x height, sq.ft

	// Commercials
	PONumber      string           `gorm:"index" json:"po_number"`
	POMonth       string           `json:"po_month"`
	InvoiceNumber string           `json:"invoice_number"`
	TotalCost     *decimal.Decimal `gorm:"type:decimal(15,2)" json:"total_cost"`

	// Cost breakdown
	BoardRate          *decimal.Decimal `gorm:"type:decimal(15,2)" json:"board_rate"`
	TotalBoardCost     *decimal.Decimal `gorm:"type:decimal(15,2)" json:"total_board_cost"`
	AngleCharge        *decimal.Decimal `gorm:"type:decimal(15,2)" json:"angle_charge"`
	ScaffoldingCharge  *decimal.Decimal `gorm:"type:decimal(15,2)" json:"scaffolding_charge"`
	TransportCharge    *decimal.Decimal `gorm:"type:decimal(15,2)" json:"transport_charge"`
	FlangesCharge      *decimal.Decimal `gorm:"type:decimal(15,2)" json:"flanges_charge"`
	LollipopCharge     *decimal.Decimal `gorm:"type:decimal(15,2)" json:"lollipop_charge"`
	OneWayVisionCharge *decimal.Decimal `gorm:"type:decimal(15,2)" json:"one_way_vision_charge"`
	SunboardCharge     *decimal.Decimal `gorm:"type:decimal(15,2)" json:"sunboard_charge"`

	// Workflow
	CurrentStatus StoreStatus                            `gorm:"type:varchar(30);default:'UPLOADED';index" json:"current_status"`
	Workflow      datatypes.JSONType[WorkflowAssignment] `json:"workflow"`
	Recce         datatypes.JSONType[RecceDetail]        `json:"recce"`
	Installation  datatypes.JSONType[InstallationDetail] `json:"installation"`

	// Relationships
	Client *Client `gorm:"foreignKey:ClientID" json:"client,omitempty"`

	// Audit fields
	CreatedBy string         `gorm:"not null" json:"created_by"`
	UpdatedBy *string        `json:"updated_by"`
	CreatedAt time.Time      `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt time.Time      `gorm:"autoUpdateTime" json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`
}

// IsDone reports the list-view "Done/View" affordance: a submission already
// counts as done even before the admin review lands.
func (s StoreStatus) IsDone() bool {
	switch s {
	case StatusCompleted, StatusRecceSubmitted, StatusInstallationSubmitted:
		return true
	}
	return false
}

// RecceListStatuses is the status set the recce list view shows.
var RecceListStatuses = []StoreStatus{
	StatusRecceAssigned,
	StatusRecceSubmitted,
	StatusRecceApproved,
	StatusRecceRejected,
}

// InstallationListStatuses is the status set the installation list view shows.
var InstallationListStatuses = []StoreStatus{
	StatusRecceApproved,
	StatusInstallationAssigned,
	StatusInstallationSubmitted,
	StatusCompleted,
}

// Store
func (s *Store) BeforeCreate(tx *gorm.DB) (err error) {
	if s.ID == uuid.Nil {
		s.ID = uuid.New()
	}
	return
}
