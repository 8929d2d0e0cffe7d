package app

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgconn"
	"github.com/japetto/rental-portal-managment-backend-sub002/internal/models"
	"github.com/japetto/rental-portal-managment-backend-sub002/internal/repositories"
	"github.com/japetto/rental-portal-managment-backend-sub002/internal/utils"
)

// Helper to check for unique violation error (PostgreSQL specific code)
func isUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == "23505"
}

// SeedTestData inserts a small deterministic data set for local development.
// It is idempotent: a sentinel property signals data is already present, and
// duplicate-key errors from concurrent startups are tolerated.
func SeedTestData(
	ctx context.Context,
	propRepo repositories.PropertyRepository,
	acctRepo repositories.PaymentAccountRepository,
) error {
	sentinelPropID := uuid.MustParse("33333333-3333-3333-3333-333333333333")
	if existing, err := propRepo.GetByID(ctx, sentinelPropID); err != nil {
		return fmt.Errorf("check existing seed property: %w", err)
	} else if existing != nil {
		utils.Logger.Info("Seed data already present; skipping seeding")
		return nil
	}

	secondPropID := uuid.MustParse("44444444-4444-4444-4444-444444444444")
	thirdPropID := uuid.MustParse("55555555-5555-5555-5555-555555555555")

	props := []*models.Property{
		{
			ID:             sentinelPropID,
			Name:           "Maple Grove Estates",
			Description:    "Quiet community near the river trail.",
			Address:        "100 Maple Grove Rd, Springfield, IL 62701",
			Amenities:      []string{"laundry", "clubhouse"},
			Images:         []string{},
			IsActive:       true,
			TotalSpots:     40,
			AvailableSpots: 12,
			Status:         models.RecordActive,
		},
		{
			ID:             secondPropID,
			Name:           "Cedar Ridge Park",
			Description:    "Hillside lots with full hookups.",
			Address:        "2500 Cedar Ridge Dr, Springfield, IL 62702",
			Amenities:      []string{"playground"},
			Images:         []string{},
			IsActive:       true,
			TotalSpots:     25,
			AvailableSpots: 3,
			Status:         models.RecordActive,
		},
		{
			ID:             thirdPropID,
			Name:           "Willow Bend Commons",
			Description:    "New development; accounts not yet configured.",
			Address:        "77 Willow Bend Ln, Springfield, IL 62703",
			Amenities:      []string{},
			Images:         []string{},
			IsActive:       true,
			TotalSpots:     60,
			AvailableSpots: 60,
			Status:         models.RecordActive,
		},
	}

	for _, p := range props {
		if err := propRepo.Create(ctx, p); err != nil {
			if isUniqueViolation(err) {
				utils.Logger.Warnf("Seed property %q already exists; skipping", p.Name)
				continue
			}
			return fmt.Errorf("seed property %q: %w", p.Name, err)
		}
	}

	mapleAcctID := uuid.MustParse("aaaaaaaa-1111-2222-3333-444444444444")
	globalAcctID := uuid.MustParse("bbbbbbbb-1111-2222-3333-444444444444")
	stripeAcct := "acct_1SeedMapleGrove00"

	accounts := []*models.PaymentAccount{
		{
			ID:              mapleAcctID,
			Name:            "Maple Grove Operating",
			Description:     "Dedicated account for Maple Grove Estates.",
			PropertyIDs:     []uuid.UUID{sentinelPropID},
			StripeAccountID: &stripeAcct,
			StripeSecretKey: "sk_test_seed_maple_grove",
			Kind:            models.AccountKindStandard,
			IsActive:        true,
			IsVerified:      true,
			WebhookStatus:   models.WebhookStatusPending,
			Status:          models.RecordActive,
		},
		{
			ID:              globalAcctID,
			Name:            "Portfolio Fallback",
			Description:     "Global fallback for properties without a dedicated account.",
			PropertyIDs:     []uuid.UUID{},
			StripeSecretKey: "sk_test_seed_portfolio_fallback",
			Kind:            models.AccountKindStandard,
			IsActive:        true,
			IsVerified:      true,
			IsGlobal:        true,
			IsDefault:       true,
			WebhookStatus:   models.WebhookStatusPending,
			Status:          models.RecordActive,
		},
	}

	for _, a := range accounts {
		if err := acctRepo.Create(ctx, a); err != nil {
			if isUniqueViolation(err) {
				utils.Logger.Warnf("Seed payment account %q already exists; skipping", a.Name)
				continue
			}
			return fmt.Errorf("seed payment account %q: %w", a.Name, err)
		}
	}

	utils.Logger.Info("Seeded test data successfully")
	return nil
}
