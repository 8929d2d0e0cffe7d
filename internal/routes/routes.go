package routes

const (
	// Health
	Health = "/health"

	// Stripe webhook (unauthenticated; signature-verified)
	PaymentsStripeWebhook = "/api/v1/payments/stripe/webhook"

	// ───────────────────────────────
	// Admin Panel (Relative Paths)
	// ───────────────────────────────
	AdminBase = "/api/v1/admin" // Base prefix for the admin sub-router

	AdminProperties   = "/properties"
	AdminPropertyByID = "/properties/{propertyId}"

	AdminPaymentAccounts    = "/payment-accounts"
	AdminPaymentAccountByID = "/payment-accounts/{accountId}"

	// Assignment views over properties + payment accounts
	AdminPropertiesWithAccounts    = "/properties/with-accounts"
	AdminPropertiesAvailable       = "/properties/available-accounts"
	AdminPropertiesWithoutAccounts = "/properties/without-accounts"

	AdminTenants            = "/tenants"
	AdminTenantInvite       = "/tenants/invite"
	AdminTenantRevokeInvite = "/tenants/{tenantId}/revoke-invite"
	AdminServiceRequests    = "/service-requests"
	AdminServiceRequestByID = "/service-requests/{requestId}"

	// Tenant-facing invite acceptance (token-authenticated)
	TenantAcceptInvite = "/api/v1/tenants/accept-invite"

	// Tenant-facing service request intake
	TenantServiceRequests = "/api/v1/service-requests"
)
