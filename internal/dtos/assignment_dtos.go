package dtos

import (
	"github.com/google/uuid"

	"github.com/japetto/rental-portal-managment-backend-sub002/internal/models"
)

// AccountScope tags where a resolved account came from.
type AccountScope string

const (
	ScopePropertySpecific AccountScope = "PROPERTY_SPECIFIC"
	ScopeGlobal           AccountScope = "GLOBAL"
)

// ResolvedAccount is the account view exposed by the resolver reads.
// It deliberately omits the secret credential and webhook plumbing.
type ResolvedAccount struct {
	ID              uuid.UUID    `json:"id"`
	Name            string       `json:"name"`
	Description     string       `json:"description,omitempty"`
	StripeAccountID *string      `json:"stripe_account_id,omitempty"`
	IsActive        bool         `json:"is_active"`
	IsVerified      bool         `json:"is_verified"`
	IsGlobal        bool         `json:"is_global"`
	IsDefault       bool         `json:"is_default"`
	Scope           AccountScope `json:"scope,omitempty"`
}

func NewResolvedAccountFromModel(a *models.PaymentAccount, scope AccountScope) ResolvedAccount {
	return ResolvedAccount{
		ID:              a.ID,
		Name:            a.Name,
		Description:     a.Description,
		StripeAccountID: a.StripeAccountID,
		IsActive:        a.IsActive,
		IsVerified:      a.IsVerified,
		IsGlobal:        a.IsGlobal,
		IsDefault:       a.IsDefault,
		Scope:           scope,
	}
}

// PropertyWithAccount pairs a property with its dedicated account, if any.
type PropertyWithAccount struct {
	Property

	Account    *ResolvedAccount `json:"account"`
	HasAccount bool             `json:"has_account"`
}

// PropertyAvailableAccounts lists every account a property can settle
// through: its dedicated account plus all verified active globals.
type PropertyAvailableAccounts struct {
	Property

	DedicatedAccount *ResolvedAccount  `json:"dedicated_account"`
	GlobalAccounts   []ResolvedAccount `json:"global_accounts"`

	HasDedicatedAccount    bool `json:"has_dedicated_account"`
	HasGlobalAccounts      bool `json:"has_global_accounts"`
	TotalAvailableAccounts int  `json:"total_available_accounts"`
}
