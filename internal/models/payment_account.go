package models

import (
	"time"

	"github.com/google/uuid"
)

type AccountKindType string

const (
	AccountKindStandard AccountKindType = "STANDARD"
	AccountKindExpress  AccountKindType = "EXPRESS"
)

type WebhookStatusType string

const (
	WebhookStatusPending WebhookStatusType = "PENDING"
	WebhookStatusActive  WebhookStatusType = "ACTIVE"
	WebhookStatusFailed  WebhookStatusType = "FAILED"
)

// PaymentAccount links a Stripe account to zero or more properties.
// An account with an empty association list is only usable as a
// fallback when IsGlobal is set.
type PaymentAccount struct {
	Versioned

	ID          uuid.UUID   `json:"id"`
	Name        string      `json:"name"`
	Description string      `json:"description,omitempty"`
	PropertyIDs []uuid.UUID `json:"property_ids"`

	StripeAccountID *string `json:"stripe_account_id,omitempty"`

	// StripeSecretKey is encrypted at rest and never serialized.
	StripeSecretKey string `json:"-"`

	Kind       AccountKindType `json:"kind"`
	IsActive   bool            `json:"is_active"`
	IsVerified bool            `json:"is_verified"`
	IsGlobal   bool            `json:"is_global"`
	IsDefault  bool            `json:"is_default"`

	WebhookID        *string           `json:"webhook_id,omitempty"`
	WebhookURL       *string           `json:"webhook_url,omitempty"`
	WebhookStatus    WebhookStatusType `json:"webhook_status"`
	WebhookCreatedAt *time.Time        `json:"webhook_created_at,omitempty"`

	Metadata map[string]string `json:"metadata,omitempty"`

	Status    RecordStatus `json:"status"`
	CreatedAt time.Time    `json:"created_at"`
	UpdatedAt time.Time    `json:"updated_at"`
	DeletedAt *time.Time   `json:"deleted_at,omitempty"`
}

// ----- concurrency helpers -----
func (a *PaymentAccount) GetID() string { return a.ID.String() }

func (a *PaymentAccount) IsDeleted() bool { return a.Status == RecordDeleted }

// Covers reports whether the account's association list names propertyID.
func (a *PaymentAccount) Covers(propertyID uuid.UUID) bool {
	for _, id := range a.PropertyIDs {
		if id == propertyID {
			return true
		}
	}
	return false
}
