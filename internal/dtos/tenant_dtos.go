package dtos

import (
	"time"

	"github.com/google/uuid"

	"github.com/japetto/rental-portal-managment-backend-sub002/internal/models"
)

type InviteTenantRequest struct {
	Email       string    `json:"email" validate:"required,email"`
	PhoneNumber *string   `json:"phone_number" validate:"omitempty,e164"`
	FirstName   string    `json:"first_name" validate:"required,max=80"`
	LastName    string    `json:"last_name" validate:"required,max=80"`
	PropertyID  uuid.UUID `json:"property_id" validate:"required"`
	SpotNumber  *string   `json:"spot_number" validate:"omitempty,max=20"`
}

type AcceptInviteRequest struct {
	Token string `json:"token" validate:"required,len=48"`
}

type Tenant struct {
	ID           uuid.UUID `json:"id"`
	Email        string    `json:"email"`
	PhoneNumber  *string   `json:"phone_number,omitempty"`
	FirstName    string    `json:"first_name"`
	LastName     string    `json:"last_name"`
	PropertyID   uuid.UUID `json:"property_id"`
	SpotNumber   *string   `json:"spot_number,omitempty"`
	InviteStatus string    `json:"invite_status"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

func NewTenantFromModel(t *models.Tenant) Tenant {
	return Tenant{
		ID:           t.ID,
		Email:        t.Email,
		PhoneNumber:  t.PhoneNumber,
		FirstName:    t.FirstName,
		LastName:     t.LastName,
		PropertyID:   t.PropertyID,
		SpotNumber:   t.SpotNumber,
		InviteStatus: string(t.InviteStatus),
		CreatedAt:    t.CreatedAt,
		UpdatedAt:    t.UpdatedAt,
	}
}
