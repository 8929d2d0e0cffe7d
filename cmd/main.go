package main

import (
	"context"
	"net/http"
	_ "time/tzdata"

	"github.com/gorilla/mux"
	cron "github.com/robfig/cron/v3"
	"github.com/rs/cors"

	"github.com/japetto/rental-portal-managment-backend-sub002/internal/app"
	"github.com/japetto/rental-portal-managment-backend-sub002/internal/config"
	"github.com/japetto/rental-portal-managment-backend-sub002/internal/constants"
	"github.com/japetto/rental-portal-managment-backend-sub002/internal/controllers"
	"github.com/japetto/rental-portal-managment-backend-sub002/internal/middleware"
	"github.com/japetto/rental-portal-managment-backend-sub002/internal/repositories"
	"github.com/japetto/rental-portal-managment-backend-sub002/internal/routes"
	"github.com/japetto/rental-portal-managment-backend-sub002/internal/services"
	"github.com/japetto/rental-portal-managment-backend-sub002/internal/utils"
)

func main() {
	utils.InitLogger(config.AppName)
	cfg := config.LoadConfig()

	application, err := app.NewApp(cfg)
	if err != nil {
		utils.Logger.Fatal("Failed to initialize app:", err)
	}
	defer application.Close()

	propRepo := repositories.NewPropertyRepository(application.DB)
	acctRepo := repositories.NewPaymentAccountRepository(application.DB, cfg.DBEncryptionKey)
	tenantRepo := repositories.NewTenantRepository(application.DB)
	requestRepo := repositories.NewServiceRequestRepository(application.DB)

	if cfg.LDFlag_SeedDbWithTestData {
		if err := app.SeedTestData(context.Background(), propRepo, acctRepo); err != nil {
			utils.Logger.WithError(err).Fatal("Failed to seed test data")
		}
	}

	emailSender := services.NewEmailService(cfg)

	propertyService := services.NewPropertyService(propRepo)
	accountService := services.NewPaymentAccountService(acctRepo, propRepo)
	assignmentService := services.NewAssignmentService(propRepo, acctRepo)
	tenantService := services.NewTenantService(cfg, tenantRepo, propRepo, emailSender)
	requestService := services.NewServiceRequestService(requestRepo, tenantRepo, emailSender)
	stripeWebhookService := services.NewStripeWebhookService(cfg, acctRepo)

	if err := stripeWebhookService.Start(context.Background()); err != nil {
		utils.Logger.WithError(err).Fatal("Failed to register Stripe webhook endpoint")
	}
	defer func() {
		if err := stripeWebhookService.Stop(context.Background()); err != nil {
			utils.Logger.WithError(err).Warn("Failed to tear down Stripe webhook endpoint")
		}
	}()

	healthController := controllers.NewHealthController(application)
	propertyController := controllers.NewPropertyController(propertyService)
	accountController := controllers.NewPaymentAccountController(accountService)
	assignmentController := controllers.NewAssignmentController(assignmentService)
	tenantController := controllers.NewTenantController(tenantService)
	requestController := controllers.NewServiceRequestController(requestService)
	stripeWebhookController := controllers.NewStripeWebhookController(stripeWebhookService)

	router := mux.NewRouter()

	// Public
	router.HandleFunc(routes.Health, healthController.HealthCheckHandler).Methods(http.MethodGet)
	router.HandleFunc(routes.PaymentsStripeWebhook, stripeWebhookController.WebhookHandler).Methods(http.MethodPost)
	router.HandleFunc(routes.TenantAcceptInvite, tenantController.AcceptInviteHandler).Methods(http.MethodPost)
	router.HandleFunc(routes.TenantServiceRequests, requestController.CreateHandler).Methods(http.MethodPost)

	// Admin panel
	admin := router.PathPrefix(routes.AdminBase).Subrouter()
	admin.Use(middleware.AdminAuthMiddleware(cfg.RSAPublicKey))

	// Assignment views registered before the parameterized property routes so
	// mux does not swallow them as {propertyId}.
	admin.HandleFunc(routes.AdminPropertiesWithAccounts, assignmentController.ListWithAccountsHandler).Methods(http.MethodGet)
	admin.HandleFunc(routes.AdminPropertiesAvailable, assignmentController.ListAvailableAccountsHandler).Methods(http.MethodGet)
	admin.HandleFunc(routes.AdminPropertiesWithoutAccounts, assignmentController.ListWithoutAccountsHandler).Methods(http.MethodGet)

	admin.HandleFunc(routes.AdminProperties, propertyController.CreateHandler).Methods(http.MethodPost)
	admin.HandleFunc(routes.AdminProperties, propertyController.ListHandler).Methods(http.MethodGet)
	admin.HandleFunc(routes.AdminPropertyByID, propertyController.GetHandler).Methods(http.MethodGet)
	admin.HandleFunc(routes.AdminPropertyByID, propertyController.UpdateHandler).Methods(http.MethodPatch, http.MethodPut)
	admin.HandleFunc(routes.AdminPropertyByID, propertyController.DeleteHandler).Methods(http.MethodDelete)

	admin.HandleFunc(routes.AdminPaymentAccounts, accountController.CreateHandler).Methods(http.MethodPost)
	admin.HandleFunc(routes.AdminPaymentAccounts, accountController.ListHandler).Methods(http.MethodGet)
	admin.HandleFunc(routes.AdminPaymentAccountByID, accountController.GetHandler).Methods(http.MethodGet)
	admin.HandleFunc(routes.AdminPaymentAccountByID, accountController.UpdateHandler).Methods(http.MethodPatch, http.MethodPut)
	admin.HandleFunc(routes.AdminPaymentAccountByID, accountController.DeleteHandler).Methods(http.MethodDelete)

	admin.HandleFunc(routes.AdminTenantInvite, tenantController.InviteHandler).Methods(http.MethodPost)
	admin.HandleFunc(routes.AdminTenants, tenantController.ListHandler).Methods(http.MethodGet)
	admin.HandleFunc(routes.AdminTenantRevokeInvite, tenantController.RevokeInviteHandler).Methods(http.MethodPost)

	admin.HandleFunc(routes.AdminServiceRequests, requestController.CreateHandler).Methods(http.MethodPost)
	admin.HandleFunc(routes.AdminServiceRequests, requestController.ListHandler).Methods(http.MethodGet)
	admin.HandleFunc(routes.AdminServiceRequestByID, requestController.GetHandler).Methods(http.MethodGet)
	admin.HandleFunc(routes.AdminServiceRequestByID, requestController.UpdateHandler).Methods(http.MethodPatch, http.MethodPut)

	c := cron.New()
	_, sweepErr := c.AddFunc(constants.WebhookHealthSweepSpec, func() {
		stripeWebhookService.SweepWebhookHealth(context.Background())
	})
	if sweepErr != nil {
		utils.Logger.WithError(sweepErr).Fatal("Failed to schedule webhook-health sweep cron")
	}
	c.Start()
	defer c.Stop()

	allowedOrigins := []string{cfg.AppUrl}
	if !cfg.LDFlag_CORSHighSecurity {
		allowedOrigins = append(allowedOrigins, "http://localhost:3000")
	}

	co := cors.New(cors.Options{
		AllowedOrigins:   allowedOrigins,
		AllowedMethods:   []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Authorization", "Content-Type"},
		AllowCredentials: true,
	})

	server := &http.Server{
		Addr:              ":" + cfg.AppPort,
		Handler:           co.Handler(router),
		ReadHeaderTimeout: constants.ReadHeaderTimeout,
	}

	utils.Logger.Infof("Starting %s on port: %s", cfg.AppName, cfg.AppPort)
	if err := server.ListenAndServe(); err != nil {
		utils.Logger.Fatal("Server failed to start:", err)
	}
}
