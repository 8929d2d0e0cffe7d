package services

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/japetto/rental-portal-managment-backend-sub002/internal/config"
	"github.com/japetto/rental-portal-managment-backend-sub002/internal/models"
	"github.com/japetto/rental-portal-managment-backend-sub002/internal/repositories"
	"github.com/japetto/rental-portal-managment-backend-sub002/internal/routes"
	"github.com/japetto/rental-portal-managment-backend-sub002/internal/utils"
	stripe "github.com/stripe/stripe-go/v82"
	"github.com/stripe/stripe-go/v82/client"
	"github.com/stripe/stripe-go/v82/webhookendpoint"
)

const (
	createStripeWebhookMaxRetries = 3
	managedByKey                  = "managed_by"
)

var connectEvents = []string{
	"account.updated",
	"capability.updated",
}

// StripeWebhookService owns the lifecycle of our Stripe webhook endpoint and
// applies Connect account events back onto stored payment accounts.
type StripeWebhookService struct {
	Cfg  *config.Config
	repo repositories.PaymentAccountRepository

	webhookID     string
	webhookSecret string
	mu            sync.Mutex
}

func NewStripeWebhookService(cfg *config.Config, repo repositories.PaymentAccountRepository) *StripeWebhookService {
	stripe.Key = cfg.StripeSecretKey
	return &StripeWebhookService{
		Cfg:  cfg,
		repo: repo,
	}
}

func (s *StripeWebhookService) WebhookSecret() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.webhookSecret
}

// Start registers a fresh webhook endpoint when dynamic management is
// enabled; otherwise it falls back to the statically configured secret.
func (s *StripeWebhookService) Start(ctx context.Context) error {
	if !s.Cfg.LDFlag_DynamicStripeWebhookEndpoint {
		s.mu.Lock()
		s.webhookSecret = s.Cfg.StripeWebhookSecret
		s.mu.Unlock()
		return nil
	}
	dest := s.Cfg.AppUrl + routes.PaymentsStripeWebhook

	id, secret, err := s.ensureStripeEndpoint(ctx, dest, connectEvents)
	if err != nil {
		return err
	}

	s.mu.Lock()
	s.webhookID = id
	s.webhookSecret = secret
	s.mu.Unlock()

	return nil
}

func (s *StripeWebhookService) Stop(ctx context.Context) error {
	if !s.Cfg.LDFlag_DynamicStripeWebhookEndpoint {
		return nil
	}
	s.mu.Lock()
	id := s.webhookID
	s.mu.Unlock()

	if id == "" {
		return nil
	}
	delParams := &stripe.WebhookEndpointParams{}
	delParams.Params.Context = ctx
	if _, err := webhookendpoint.Del(id, delParams); err != nil {
		utils.Logger.WithError(err).Warnf("Failed to delete Stripe webhook endpoint %s", id)
	} else {
		utils.Logger.Infof("Deleted Stripe webhook endpoint %s", id)
	}
	return nil
}

// ensureStripeEndpoint deletes any existing endpoint for our URL, then
// unconditionally creates a new one.
func (s *StripeWebhookService) ensureStripeEndpoint(
	ctx context.Context,
	url string,
	events []string,
) (string, string, error) {

	// 1) Remove all endpoints with the same URL
	if err := s.cleanupStaleEndpoints(ctx, url); err != nil {
		return "", "", err
	}

	// 2) Create a fresh endpoint
	create := &stripe.WebhookEndpointParams{
		URL:           stripe.String(url),
		EnabledEvents: toPtrSlice(events),
		Metadata: map[string]string{
			managedByKey: s.Cfg.AppName,
		},
		Connect:    stripe.Bool(true),
		APIVersion: stripe.String(stripe.APIVersion),
	}
	create.Params.Context = ctx

	var tries int
createAttempt:
	tries++
	ep, err := webhookendpoint.New(create)
	if err == nil {
		utils.Logger.Infof("Created Stripe webhook endpoint %s", ep.ID)
		return ep.ID, ep.Secret, nil
	}

	switch {
	case limitErr(err):
		if tries > createStripeWebhookMaxRetries {
			return "", "", fmt.Errorf("endpoint limit reached; retries exhausted: %w", err)
		}
		utils.Logger.Warn("Endpoint limit hit – deleting one endpoint and retrying…")
		if rmErr := s.removeOldestStripeEndpoint(ctx, url); rmErr != nil {
			return "", "", rmErr
		}
		goto createAttempt

	case urlTakenErr(err):
		utils.Logger.Warn("URL already taken – attempting to delete existing matching endpoint and retry…")
		if rmErr := s.cleanupStaleEndpoints(ctx, url); rmErr != nil {
			return "", "", rmErr
		}
		goto createAttempt
	}

	return "", "", err
}

// cleanupStaleEndpoints removes any endpoint sharing the URL. Endpoints left
// behind by crashed runs are indistinguishable from live ones, so we always
// replace rather than reuse.
func (s *StripeWebhookService) cleanupStaleEndpoints(ctx context.Context, url string) error {
	lp := &stripe.WebhookEndpointListParams{}
	lp.Limit = stripe.Int64(100)
	lp.Context = ctx
	for it := webhookendpoint.List(lp); it.Next(); {
		ep := it.WebhookEndpoint()
		if ep.URL != url {
			continue
		}
		utils.Logger.Infof("Removing stale Stripe endpoint %s (managed_by=%s)", ep.ID, ep.Metadata[managedByKey])
		delParams := &stripe.WebhookEndpointParams{}
		delParams.Params.Context = ctx
		if _, err := webhookendpoint.Del(ep.ID, delParams); err != nil {
			return fmt.Errorf("delete stale endpoint %s: %w", ep.ID, err)
		}
	}
	return nil
}

// removeOldestStripeEndpoint deletes an endpoint to free capacity, trying oldest first.
// It will gracefully handle 404s if another service deletes the same endpoint first.
func (s *StripeWebhookService) removeOldestStripeEndpoint(ctx context.Context, targetURL string) error {
	lp := &stripe.WebhookEndpointListParams{}
	lp.Limit = stripe.Int64(100)
	lp.Context = ctx

	var removableEndpoints []*stripe.WebhookEndpoint
	for it := webhookendpoint.List(lp); it.Next(); {
		ep := it.WebhookEndpoint()
		if ep.URL != targetURL {
			removableEndpoints = append(removableEndpoints, ep)
		}
	}

	if len(removableEndpoints) == 0 {
		return fmt.Errorf("no removable webhook endpoints found")
	}

	sort.Slice(removableEndpoints, func(i, j int) bool {
		return removableEndpoints[i].Created < removableEndpoints[j].Created
	})

	for _, ep := range removableEndpoints {
		_, err := webhookendpoint.Del(ep.ID, nil)
		if err == nil {
			utils.Logger.Infof("Removed oldest Stripe webhook endpoint %s to free slot", ep.ID)
			return nil
		}

		// A 404 means another process beat us to it; move on to the next one.
		if stripeErr, ok := err.(*stripe.Error); ok && stripeErr.Code == stripe.ErrorCodeResourceMissing {
			utils.Logger.Warnf("Attempted to delete webhook %s, but it was already gone (race condition). Trying next oldest.", ep.ID)
			continue
		}

		return fmt.Errorf("failed to delete webhook %s to free slot: %w", ep.ID, err)
	}

	return fmt.Errorf("could not free a webhook slot; all candidates were deleted by other processes")
}

// ----------------------------------------------------------------------
// Webhook handlers for Stripe events
// ----------------------------------------------------------------------

// HandleAccountUpdated syncs verification state from Stripe onto the payment
// account that points at the Connect account.
func (s *StripeWebhookService) HandleAccountUpdated(ctx context.Context, acct *stripe.Account) error {
	utils.Logger.Infof("account.updated: acctID=%s, details_submitted=%v, charges_enabled=%v",
		acct.ID, acct.DetailsSubmitted, acct.ChargesEnabled)

	stored, err := s.repo.GetByStripeAccountID(ctx, acct.ID)
	if err != nil {
		utils.Logger.WithError(err).Errorf("Could not find payment account for Stripe account %s", acct.ID)
		return err
	}
	if stored == nil {
		utils.Logger.Warnf("No payment account found for Stripe account %s", acct.ID)
		return nil
	}

	verified := acct.DetailsSubmitted && acct.ChargesEnabled
	if stored.IsVerified == verified {
		return nil
	}

	if updErr := s.repo.UpdateWithRetry(ctx, stored.ID, func(pa *models.PaymentAccount) error {
		pa.IsVerified = verified
		return nil
	}); updErr != nil {
		utils.Logger.WithError(updErr).Errorf("Failed to update verification state for payment account %s", stored.ID)
		return updErr
	}
	utils.Logger.Infof("Payment account %s verification set to %v", stored.ID, verified)
	return nil
}

// HandleCapabilityUpdated is informational only; account.updated carries the
// state we persist.
func (s *StripeWebhookService) HandleCapabilityUpdated(capObj *stripe.Capability) error {
	utils.Logger.Infof("capability.updated: acctID=%s, capability=%s, status=%s",
		capObj.Account.ID, capObj.ID, capObj.Status)
	return nil
}

// ----------------------------------------------------------------------
// Scheduled webhook-health sweep
// ----------------------------------------------------------------------

// SweepWebhookHealth checks every active account that has a registered
// webhook endpoint and reconciles its stored webhook status with Stripe.
func (s *StripeWebhookService) SweepWebhookHealth(ctx context.Context) {
	accounts, err := s.repo.ListActive(ctx)
	if err != nil {
		utils.Logger.WithError(err).Error("Webhook health sweep: could not list payment accounts")
		return
	}

	for _, acct := range accounts {
		if acct.WebhookID == nil || *acct.WebhookID == "" {
			continue
		}

		status := s.probeEndpoint(ctx, acct)
		if status == acct.WebhookStatus {
			continue
		}

		now := time.Now().UTC()
		if err := s.repo.UpdateWithRetry(ctx, acct.ID, func(pa *models.PaymentAccount) error {
			pa.WebhookStatus = status
			if status == models.WebhookStatusActive && pa.WebhookCreatedAt == nil {
				pa.WebhookCreatedAt = &now
			}
			return nil
		}); err != nil {
			utils.Logger.WithError(err).Errorf("Webhook health sweep: could not update account %s", acct.ID)
			continue
		}
		utils.Logger.Infof("Webhook health sweep: account %s webhook status now %s", acct.ID, status)
	}
}

// probeEndpoint fetches the account's endpoint with the account's own
// API key when one is stored; endpoints registered under a connected
// account are invisible to the platform key.
func (s *StripeWebhookService) probeEndpoint(ctx context.Context, acct *models.PaymentAccount) models.WebhookStatusType {
	sc := &client.API{}
	sc.Init(s.probeKey(ctx, acct), nil)

	params := &stripe.WebhookEndpointParams{}
	params.Params.Context = ctx

	ep, err := sc.WebhookEndpoints.Get(*acct.WebhookID, params)
	if err != nil {
		if stripeErr, ok := err.(*stripe.Error); ok && stripeErr.Code == stripe.ErrorCodeResourceMissing {
			return models.WebhookStatusFailed
		}
		utils.Logger.WithError(err).Warnf("Webhook health sweep: probe of endpoint %s failed", *acct.WebhookID)
		return models.WebhookStatusPending
	}
	if ep.Status == "enabled" {
		return models.WebhookStatusActive
	}
	return models.WebhookStatusFailed
}

// probeKey resolves the API key for probing the account's endpoint:
// the account's decrypted secret key when one is stored, the platform
// key otherwise.
func (s *StripeWebhookService) probeKey(ctx context.Context, acct *models.PaymentAccount) string {
	if acct.StripeSecretKey == "" {
		return s.Cfg.StripeSecretKey
	}
	key, err := s.repo.GetDecryptedSecretKey(ctx, acct.ID)
	if err != nil || key == "" {
		utils.Logger.WithError(err).Warnf("Could not load secret key for account %s; probing with the platform key", acct.ID)
		return s.Cfg.StripeSecretKey
	}
	return key
}

func toPtrSlice(events []string) []*string {
	out := make([]*string, len(events))
	for i, s := range events {
		out[i] = stripe.String(s)
	}
	return out
}

// Helpers for Stripe error inspection.
func limitErr(err error) bool {
	if se, ok := err.(*stripe.Error); ok && se.Type == stripe.ErrorTypeInvalidRequest {
		return strings.Contains(se.Msg, "Allowed webhook API limit exceeded") ||
			strings.Contains(se.Msg, "16 test webhook endpoints") ||
			strings.Contains(se.Msg, "16 webhook endpoints")
	}
	return false
}

func urlTakenErr(err error) bool {
	if se, ok := err.(*stripe.Error); ok && se.Type == stripe.ErrorTypeInvalidRequest {
		msg := strings.ToLower(se.Msg)
		return strings.Contains(msg, "url has already been taken") ||
			strings.Contains(msg, "url is already in use")
	}
	return false
}
