package constants

import "time"

// Scheduling
const (
	// Cron spec for the Stripe webhook-health sweep.
	WebhookHealthSweepSpec = "@every 10m"
)

// HTTP server timeouts
const (
	ReadHeaderTimeout = 10 * time.Second
)
