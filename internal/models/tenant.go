package models

import (
	"time"

	"github.com/google/uuid"
)

type InviteStatusType string

const (
	InviteStatusInvited InviteStatusType = "INVITED"
	InviteStatusActive  InviteStatusType = "ACTIVE"
	InviteStatusRevoked InviteStatusType = "REVOKED"
)

type Tenant struct {
	Versioned

	ID          uuid.UUID `json:"id"`
	Email       string    `json:"email"`
	PhoneNumber *string   `json:"phone_number,omitempty"`
	FirstName   string    `json:"first_name"`
	LastName    string    `json:"last_name"`

	PropertyID uuid.UUID  `json:"property_id"`
	SpotNumber *string    `json:"spot_number,omitempty"`

	InviteStatus InviteStatusType `json:"invite_status"`

	// InviteToken is single-use; never serialize it.
	InviteToken string `json:"-"`

	Status    RecordStatus `json:"status"`
	CreatedAt time.Time    `json:"created_at"`
	UpdatedAt time.Time    `json:"updated_at"`
	DeletedAt *time.Time   `json:"deleted_at,omitempty"`
}

// ----- concurrency helpers -----
func (t *Tenant) GetID() string { return t.ID.String() }
