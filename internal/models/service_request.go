package models

import (
	"time"

	"github.com/google/uuid"
)

type RequestStatusType string

const (
	RequestStatusOpen       RequestStatusType = "OPEN"
	RequestStatusInProgress RequestStatusType = "IN_PROGRESS"
	RequestStatusResolved   RequestStatusType = "RESOLVED"
	RequestStatusCancelled  RequestStatusType = "CANCELLED"
)

type RequestCategoryType string

const (
	RequestCategoryMaintenance RequestCategoryType = "MAINTENANCE"
	RequestCategoryBilling     RequestCategoryType = "BILLING"
	RequestCategoryAccess      RequestCategoryType = "ACCESS"
	RequestCategoryOther       RequestCategoryType = "OTHER"
)

type ServiceRequest struct {
	Versioned

	ID         uuid.UUID `json:"id"`
	PropertyID uuid.UUID `json:"property_id"`
	TenantID   uuid.UUID `json:"tenant_id"`

	Category    RequestCategoryType `json:"category"`
	Description string              `json:"description"`

	RequestStatus  RequestStatusType `json:"request_status"`
	ResolutionNote *string           `json:"resolution_note,omitempty"`

	Status    RecordStatus `json:"status"`
	CreatedAt time.Time    `json:"created_at"`
	UpdatedAt time.Time    `json:"updated_at"`
	DeletedAt *time.Time   `json:"deleted_at,omitempty"`
}

// ----- concurrency helpers -----
func (r *ServiceRequest) GetID() string { return r.ID.String() }
