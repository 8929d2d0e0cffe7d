package dtos

import (
	"time"

	"github.com/google/uuid"

	"github.com/japetto/rental-portal-managment-backend-sub002/internal/models"
)

type CreateServiceRequestRequest struct {
	TenantID    uuid.UUID `json:"tenant_id" validate:"required"`
	Category    string    `json:"category" validate:"required,oneof=MAINTENANCE BILLING ACCESS OTHER"`
	Description string    `json:"description" validate:"required,min=5,max=5000"`
}

type UpdateServiceRequestRequest struct {
	RequestStatus  *string `json:"request_status" validate:"omitempty,oneof=OPEN IN_PROGRESS RESOLVED CANCELLED"`
	ResolutionNote *string `json:"resolution_note" validate:"omitempty,max=5000"`
}

type ServiceRequest struct {
	ID             uuid.UUID `json:"id"`
	PropertyID     uuid.UUID `json:"property_id"`
	TenantID       uuid.UUID `json:"tenant_id"`
	Category       string    `json:"category"`
	Description    string    `json:"description"`
	RequestStatus  string    `json:"request_status"`
	ResolutionNote *string   `json:"resolution_note,omitempty"`
	CreatedAt      time.Time `json:"created_at"`
	UpdatedAt      time.Time `json:"updated_at"`
}

func NewServiceRequestFromModel(sr *models.ServiceRequest) ServiceRequest {
	return ServiceRequest{
		ID:             sr.ID,
		PropertyID:     sr.PropertyID,
		TenantID:       sr.TenantID,
		Category:       string(sr.Category),
		Description:    sr.Description,
		RequestStatus:  string(sr.RequestStatus),
		ResolutionNote: sr.ResolutionNote,
		CreatedAt:      sr.CreatedAt,
		UpdatedAt:      sr.UpdatedAt,
	}
}
