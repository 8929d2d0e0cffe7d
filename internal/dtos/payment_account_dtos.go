package dtos

import (
	"time"

	"github.com/google/uuid"

	"github.com/japetto/rental-portal-managment-backend-sub002/internal/models"
)

type CreatePaymentAccountRequest struct {
	Name            string            `json:"name" validate:"required,min=2,max=120"`
	Description     string            `json:"description" validate:"max=2000"`
	PropertyIDs     []uuid.UUID       `json:"property_ids"`
	StripeAccountID *string           `json:"stripe_account_id" validate:"omitempty,startswith=acct_"`
	StripeSecretKey string            `json:"stripe_secret_key" validate:"omitempty,startswith=sk_"`
	Kind            string            `json:"kind" validate:"required,oneof=STANDARD EXPRESS"`
	IsActive        *bool             `json:"is_active"`
	IsGlobal        bool              `json:"is_global"`
	IsDefault       bool              `json:"is_default"`
	Metadata        map[string]string `json:"metadata"`
}

type UpdatePaymentAccountRequest struct {
	Name            *string            `json:"name" validate:"omitempty,min=2,max=120"`
	Description     *string            `json:"description" validate:"omitempty,max=2000"`
	PropertyIDs     *[]uuid.UUID       `json:"property_ids"`
	StripeAccountID *string            `json:"stripe_account_id" validate:"omitempty,startswith=acct_"`
	StripeSecretKey *string            `json:"stripe_secret_key" validate:"omitempty,startswith=sk_"`
	Kind            *string            `json:"kind" validate:"omitempty,oneof=STANDARD EXPRESS"`
	IsActive        *bool              `json:"is_active"`
	IsGlobal        *bool              `json:"is_global"`
	IsDefault       *bool              `json:"is_default"`
	Metadata        *map[string]string `json:"metadata"`
}

// PaymentAccount is the admin read shape. The secret credential is
// write-only and never appears here.
type PaymentAccount struct {
	ID              uuid.UUID         `json:"id"`
	Name            string            `json:"name"`
	Description     string            `json:"description,omitempty"`
	PropertyIDs     []uuid.UUID       `json:"property_ids"`
	StripeAccountID *string           `json:"stripe_account_id,omitempty"`
	Kind            string            `json:"kind"`
	IsActive        bool              `json:"is_active"`
	IsVerified      bool              `json:"is_verified"`
	IsGlobal        bool              `json:"is_global"`
	IsDefault       bool              `json:"is_default"`
	WebhookID       *string           `json:"webhook_id,omitempty"`
	WebhookURL      *string           `json:"webhook_url,omitempty"`
	WebhookStatus   string            `json:"webhook_status"`
	WebhookCreatedAt *time.Time       `json:"webhook_created_at,omitempty"`
	Metadata        map[string]string `json:"metadata,omitempty"`
	CreatedAt       time.Time         `json:"created_at"`
	UpdatedAt       time.Time         `json:"updated_at"`
}

func NewPaymentAccountFromModel(a *models.PaymentAccount) PaymentAccount {
	return PaymentAccount{
		ID:               a.ID,
		Name:             a.Name,
		Description:      a.Description,
		PropertyIDs:      a.PropertyIDs,
		StripeAccountID:  a.StripeAccountID,
		Kind:             string(a.Kind),
		IsActive:         a.IsActive,
		IsVerified:       a.IsVerified,
		IsGlobal:         a.IsGlobal,
		IsDefault:        a.IsDefault,
		WebhookID:        a.WebhookID,
		WebhookURL:       a.WebhookURL,
		WebhookStatus:    string(a.WebhookStatus),
		WebhookCreatedAt: a.WebhookCreatedAt,
		Metadata:         a.Metadata,
		CreatedAt:        a.CreatedAt,
		UpdatedAt:        a.UpdatedAt,
	}
}
