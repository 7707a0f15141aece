package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// Acquisition is the central entity: a procurement request moving
// through the approval workflow. Every status change appends one
// StatusHistory row; the current Status always matches the NewStatus
// of the most recent history row.
type Acquisition struct {
	ID          uuid.UUID       `gorm:"type:uuid;primaryKey" json:"id"`
	Title       string          `gorm:"type:varchar(200);not null" json:"title"`
	Description string          `gorm:"type:text;not null" json:"description"`
	Type        AcquisitionType `gorm:"type:varchar(20);not null;index" json:"type"`
	Quantity    *int            `json:"quantity"`
	Unit        string          `gorm:"type:varchar(50)" json:"unit"`

	Status        AcquisitionStatus `gorm:"type:varchar(30);not null;default:'em_analise';index" json:"status"`
	Justification string            `gorm:"type:text;not null" json:"justification"`

	EstimatedValue decimal.NullDecimal `gorm:"type:numeric(12,2)" json:"estimated_value"`
	FinalValue     decimal.NullDecimal `gorm:"type:numeric(12,2)" json:"final_value"`
	PaymentMethod  *PaymentMethod      `gorm:"type:varchar(30)" json:"payment_method"`
	BudgetSource   *BudgetSource       `gorm:"type:varchar(30)" json:"budget_source"`

	// Budget negotiation sub-path fields.
	BudgetRequestedAt *time.Time          `json:"budget_requested_at"`
	BudgetReceivedAt  *time.Time          `json:"budget_received_at"`
	BudgetDeadline    *time.Time          `json:"budget_deadline"`
	BudgetValue       decimal.NullDecimal `gorm:"type:numeric(12,2)" json:"budget_value"`
	BudgetProvider    string              `gorm:"type:varchar(200)" json:"budget_provider"`
	BudgetNotes       string              `gorm:"type:text" json:"budget_notes"`

	RequesterID  uuid.UUID  `gorm:"type:uuid;not null;index" json:"requester_id"`
	Requester    *User      `gorm:"foreignKey:RequesterID" json:"requester,omitempty"`
	ApproverID   *uuid.UUID `gorm:"type:uuid" json:"approver_id"`
	Approver     *User      `gorm:"foreignKey:ApproverID" json:"approver,omitempty"`
	CategoryID   uuid.UUID  `gorm:"type:uuid;not null;index" json:"category_id"`
	Category     *Category  `gorm:"foreignKey:CategoryID" json:"category,omitempty"`
	CostCenterID uuid.UUID  `gorm:"type:uuid;not null;index" json:"cost_center_id"`
	CostCenter   *CostCenter `gorm:"foreignKey:CostCenterID" json:"cost_center,omitempty"`

	ApprovedAt  *time.Time `json:"approved_at"`
	CompletedAt *time.Time `json:"completed_at"`
	CreatedAt   time.Time  `gorm:"autoCreateTime;index" json:"created_at"`
	UpdatedAt   time.Time  `gorm:"autoUpdateTime" json:"updated_at"`

	StatusHistory []StatusHistory `gorm:"foreignKey:AcquisitionID" json:"status_history,omitempty"`
	Documents     []Document      `gorm:"foreignKey:AcquisitionID" json:"documents,omitempty"`
}

func (a *Acquisition) BeforeCreate(_ *gorm.DB) error {
	if a.ID == uuid.Nil {
		a.ID = uuid.New()
	}
	return nil
}

// StatusHistory is an append-only audit record of one status change.
// OldStatus is nil only on the record written at creation. Rows are
// never updated or deleted.
type StatusHistory struct {
	ID            uuid.UUID          `gorm:"type:uuid;primaryKey" json:"id"`
	AcquisitionID uuid.UUID          `gorm:"type:uuid;not null;index" json:"acquisition_id"`
	UserID        uuid.UUID          `gorm:"type:uuid;not null" json:"user_id"`
	User          *User              `gorm:"foreignKey:UserID" json:"user,omitempty"`
	OldStatus     *AcquisitionStatus `gorm:"type:varchar(30)" json:"old_status"`
	NewStatus     AcquisitionStatus  `gorm:"type:varchar(30);not null" json:"new_status"`
	Comment       string             `gorm:"type:text" json:"comment"`
	CreatedAt     time.Time          `gorm:"autoCreateTime;index" json:"created_at"`
}

func (h *StatusHistory) BeforeCreate(_ *gorm.DB) error {
	if h.ID == uuid.Nil {
		h.ID = uuid.New()
	}
	return nil
}

// Document is an immutable file attachment on an acquisition.
type Document struct {
	ID               uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	AcquisitionID    uuid.UUID `gorm:"type:uuid;not null;index" json:"acquisition_id"`
	UserID           uuid.UUID `gorm:"type:uuid;not null" json:"user_id"`
	User             *User     `gorm:"foreignKey:UserID" json:"user,omitempty"`
	Filename         string    `gorm:"type:varchar(255);not null" json:"filename"`
	OriginalFilename string    `gorm:"type:varchar(255);not null" json:"original_filename"`
	FilePath         string    `gorm:"type:varchar(500);not null" json:"file_path"`
	FileSize         int64     `json:"file_size"`
	MimeType         string    `gorm:"type:varchar(100)" json:"mime_type"`
	Description      string    `gorm:"type:text" json:"description"`
	CreatedAt        time.Time `gorm:"autoCreateTime" json:"created_at"`
}

func (d *Document) BeforeCreate(_ *gorm.DB) error {
	if d.ID == uuid.Nil {
		d.ID = uuid.New()
	}
	return nil
}
