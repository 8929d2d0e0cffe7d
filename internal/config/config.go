package config

import (
	"crypto/rsa"
	"encoding/base64"
	"encoding/pem"
	"os"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/japetto/rental-portal-managment-backend-sub002/internal/utils"
	"github.com/launchdarkly/go-sdk-common/v3/ldcontext"
	ld "github.com/launchdarkly/go-server-sdk/v7"
)

type Config struct {
	OrganizationName string
	AppName          string
	AppPort          string
	AppUrl           string

	// Database
	DBUrl           string
	DBEncryptionKey []byte

	// Stripe
	StripeSecretKey     string
	StripeWebhookSecret string

	// Twilio / SendGrid
	TwilioAccountSID string
	TwilioAuthToken  string
	TwilioFromNumber string
	SendgridAPIKey   string

	// Auth
	RSAPublicKey *rsa.PublicKey

	// LaunchDarkly flags
	LDFlag_SendgridFromEmail            string
	LDFlag_SendgridSandboxMode          bool
	LDFlag_ValidateEmailWithSG          bool
	LDFlag_ValidatePhoneWithTwilio      bool
	LDFlag_DynamicStripeWebhookEndpoint bool
	LDFlag_SeedDbWithTestData           bool
	LDFlag_CORSHighSecurity             bool
}

const (
	AppName             = "rental-portal-backend"
	LDConnectionTimeout = 5 * time.Second
)

func LoadConfig() *Config {
	utils.Logger.Info("Loading config for app: ", AppName)

	appUrl := requireEnv("APP_URL")
	appPort := requireEnv("APP_PORT")
	dbURL := requireEnv("DB_URL")
	orgName := requireEnv("ORGANIZATION_NAME")

	dbEncB64 := requireEnv("DB_ENCRYPTION_KEY_BASE64")
	dbEncKey, err := base64.StdEncoding.DecodeString(dbEncB64)
	if err != nil || len(dbEncKey) != 32 {
		utils.Logger.Fatal("DB_ENCRYPTION_KEY_BASE64 invalid – expect 32-byte key")
	}

	pubB64 := requireEnv("RSA_PUBLIC_KEY_BASE64")
	pubPEM, _ := base64.StdEncoding.DecodeString(pubB64)
	if block, _ := pem.Decode(pubPEM); block == nil {
		utils.Logger.Fatal("Failed to decode PEM block for public key")
	}
	pubKey, err := jwt.ParseRSAPublicKeyFromPEM(pubPEM)
	if err != nil {
		utils.Logger.WithError(err).Fatal("Failed to parse RSA public key")
	}

	stripeKey := requireEnv("STRIPE_SECRET_KEY")
	stripeWebhookSecret := os.Getenv("STRIPE_WEBHOOK_SECRET")

	twilioSID := requireEnv("TWILIO_ACCOUNT_SID")
	twilioToken := requireEnv("TWILIO_AUTH_TOKEN")
	twilioFrom := requireEnv("TWILIO_FROM_NUMBER")
	sgAPIKey := requireEnv("SENDGRID_API_KEY")

	ldSDKKey := requireEnv("LD_SDK_KEY")
	ldContextKey := requireEnv("LD_CONTEXT_KEY")

	ldClient, err := ld.MakeClient(ldSDKKey, LDConnectionTimeout)
	if err != nil {
		utils.Logger.WithError(err).Fatal("Failed to create LaunchDarkly client")
	}
	if !ldClient.Initialized() {
		ldClient.Close()
		utils.Logger.Fatal("LaunchDarkly client failed to initialize")
	}
	defer ldClient.Close()

	ctx := ldcontext.NewWithKind("service", ldContextKey)

	sgFromFlag := stringFlag(ldClient, ctx, "sendgrid_from_email", "")
	if sgFromFlag == "" {
		utils.Logger.Warn("sendgrid_from_email flag is empty, defaulting to no-reply@rentalportal.app")
		sgFromFlag = "no-reply@rentalportal.app"
	}

	sgSandboxFlag := boolFlag(ldClient, ctx, "sendgrid_sandbox_mode", false)
	validateEmailFlag := boolFlag(ldClient, ctx, "validate_email_with_sendgrid", false)
	validatePhoneFlag := boolFlag(ldClient, ctx, "validate_phone_with_twilio", false)
	dynamicWebhookFlag := boolFlag(ldClient, ctx, "dynamic_stripe_webhook_endpoint", false)
	seedDbFlag := boolFlag(ldClient, ctx, "seed_db_with_test_data", false)
	corsHighSecurityFlag := boolFlag(ldClient, ctx, "cors_high_security", false)

	if !dynamicWebhookFlag && stripeWebhookSecret == "" {
		utils.Logger.Fatal("STRIPE_WEBHOOK_SECRET required when dynamic_stripe_webhook_endpoint is disabled")
	}

	return &Config{
		OrganizationName: orgName,
		AppName:          AppName,
		AppPort:          appPort,
		AppUrl:           appUrl,

		DBUrl:           dbURL,
		DBEncryptionKey: dbEncKey,

		StripeSecretKey:     stripeKey,
		StripeWebhookSecret: stripeWebhookSecret,

		TwilioAccountSID: twilioSID,
		TwilioAuthToken:  twilioToken,
		TwilioFromNumber: twilioFrom,
		SendgridAPIKey:   sgAPIKey,

		RSAPublicKey: pubKey,

		LDFlag_SendgridFromEmail:            sgFromFlag,
		LDFlag_SendgridSandboxMode:          sgSandboxFlag,
		LDFlag_ValidateEmailWithSG:          validateEmailFlag,
		LDFlag_ValidatePhoneWithTwilio:      validatePhoneFlag,
		LDFlag_DynamicStripeWebhookEndpoint: dynamicWebhookFlag,
		LDFlag_SeedDbWithTestData:           seedDbFlag,
		LDFlag_CORSHighSecurity:             corsHighSecurityFlag,
	}
}

func requireEnv(name string) string {
	val := os.Getenv(name)
	if val == "" {
		utils.Logger.Fatalf("%s env var is missing", name)
	}
	return val
}

func boolFlag(client *ld.LDClient, ctx ldcontext.Context, name string, def bool) bool {
	val, err := client.BoolVariation(name, ctx, def)
	if err != nil {
		utils.Logger.WithError(err).Fatalf("Error retrieving %s flag", name)
	}
	utils.Logger.Debugf("%s flag: %t", name, val)
	return val
}

func stringFlag(client *ld.LDClient, ctx ldcontext.Context, name string, def string) string {
	val, err := client.StringVariation(name, ctx, def)
	if err != nil {
		utils.Logger.WithError(err).Fatalf("Error retrieving %s flag", name)
	}
	utils.Logger.Debugf("%s flag: %s", name, val)
	return val
}
