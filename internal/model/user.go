package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// User represents an actor in the acquisition workflow.
// Users are never hard-deleted, only deactivated via Active.
type User struct {
	ID         uuid.UUID  `gorm:"type:uuid;primaryKey" json:"id"`
	Email      string     `gorm:"type:varchar(255);uniqueIndex;not null" json:"email"`
	FirstName  string     `gorm:"type:varchar(100)" json:"first_name"`
	LastName   string     `gorm:"type:varchar(100)" json:"last_name"`
	Password   string     `gorm:"type:varchar(255);not null" json:"-"` // bcrypt hash, omitted from JSON
	Role       UserRole   `gorm:"type:varchar(20);not null;default:'solicitante'" json:"role"`
	Active     bool       `gorm:"not null;default:true" json:"active"`
	Approved   bool       `gorm:"not null;default:false" json:"approved"`
	ApprovedBy *uuid.UUID `gorm:"type:uuid" json:"approved_by,omitempty"`
	ApprovedAt *time.Time `json:"approved_at,omitempty"`
	CreatedAt  time.Time  `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt  time.Time  `gorm:"autoUpdateTime" json:"updated_at"`
}

// BeforeCreate assigns the primary key so ID generation works the same
// on every database driver.
func (u *User) BeforeCreate(_ *gorm.DB) error {
	if u.ID == uuid.Nil {
		u.ID = uuid.New()
	}
	return nil
}

// FullName returns a display name, falling back to the email when the
// user never filled in a name.
func (u *User) FullName() string {
	switch {
	case u.FirstName != "" && u.LastName != "":
		return u.FirstName + " " + u.LastName
	case u.FirstName != "":
		return u.FirstName
	case u.LastName != "":
		return u.LastName
	default:
		return u.Email
	}
}

// PendingUser is a registration request awaiting admin action. It is
// promoted to a User on approval or deleted on rejection; the email
// must be unique across both pending and active users.
type PendingUser struct {
	ID            uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	Email         string    `gorm:"type:varchar(255);uniqueIndex;not null" json:"email"`
	FirstName     string    `gorm:"type:varchar(100);not null" json:"first_name"`
	LastName      string    `gorm:"type:varchar(100);not null" json:"last_name"`
	Password      string    `gorm:"type:varchar(255);not null" json:"-"`
	RequestedRole UserRole  `gorm:"type:varchar(20);not null;default:'solicitante'" json:"requested_role"`
	Message       string    `gorm:"type:text" json:"message"`
	CreatedAt     time.Time `gorm:"autoCreateTime" json:"created_at"`
}

func (p *PendingUser) BeforeCreate(_ *gorm.DB) error {
	if p.ID == uuid.Nil {
		p.ID = uuid.New()
	}
	return nil
}

// FullName returns the requester's display name.
func (p *PendingUser) FullName() string {
	if p.FirstName != "" && p.LastName != "" {
		return p.FirstName + " " + p.LastName
	}
	return p.Email
}
