package controllers

import (
	"encoding/json"
	"io"
	"net/http"

	"github.com/japetto/rental-portal-managment-backend-sub002/internal/services"
	"github.com/japetto/rental-portal-managment-backend-sub002/internal/utils"
	stripe "github.com/stripe/stripe-go/v82"
	"github.com/stripe/stripe-go/v82/webhook"
)

// StripeWebhookController is the single webhook endpoint for Stripe events.
type StripeWebhookController struct {
	stripeWebhookService *services.StripeWebhookService
}

func NewStripeWebhookController(stripeWebhookService *services.StripeWebhookService) *StripeWebhookController {
	return &StripeWebhookController{
		stripeWebhookService: stripeWebhookService,
	}
}

// WebhookHandler -> POST /api/v1/payments/stripe/webhook
func (c *StripeWebhookController) WebhookHandler(w http.ResponseWriter, r *http.Request) {
	sigHeader := r.Header.Get("Stripe-Signature")
	if sigHeader == "" {
		utils.Logger.Error("Missing Stripe-Signature header")
		w.WriteHeader(http.StatusBadRequest)
		return
	}

	payload, err := io.ReadAll(r.Body)
	if err != nil {
		utils.Logger.WithError(err).Error("Failed to read webhook body")
		w.WriteHeader(http.StatusBadRequest)
		return
	}

	event, verifyErr := webhook.ConstructEvent(payload, sigHeader, c.stripeWebhookService.WebhookSecret())
	if verifyErr != nil {
		utils.Logger.WithError(verifyErr).Error("Stripe webhook signature verification failed")
		w.WriteHeader(http.StatusBadRequest)
		return
	}

	switch event.Type {
	case "account.updated":
		var acct stripe.Account
		if err := json.Unmarshal(event.Data.Raw, &acct); err == nil {
			_ = c.stripeWebhookService.HandleAccountUpdated(r.Context(), &acct)
		} else {
			utils.Logger.WithError(err).Error("Could not parse account in account.updated")
		}

	case "capability.updated":
		var capObj stripe.Capability
		if err := json.Unmarshal(event.Data.Raw, &capObj); err == nil {
			_ = c.stripeWebhookService.HandleCapabilityUpdated(&capObj)
		} else {
			utils.Logger.WithError(err).Error("Could not parse capability in capability.updated")
		}

	default:
		utils.Logger.Debugf("Unhandled Stripe event type: %s", event.Type)
	}

	w.WriteHeader(http.StatusOK)
}
