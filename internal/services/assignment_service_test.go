package services

import (
	"context"
	"errors"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"

	"github.com/japetto/rental-portal-managment-backend-sub002/internal/dtos"
	"github.com/japetto/rental-portal-managment-backend-sub002/internal/models"
)

func seedProperty(t *testing.T, repo *fakePropertyRepo, name string) *models.Property {
	t.Helper()
	p := &models.Property{
		ID:       uuid.New(),
		Name:     name,
		Address:  "1 Test St",
		IsActive: true,
		Status:   models.RecordActive,
	}
	require.NoError(t, repo.Create(context.Background(), p))
	return p
}

func seedAccount(t *testing.T, repo *fakePaymentAccountRepo, name string, mutate func(*models.PaymentAccount)) *models.PaymentAccount {
	t.Helper()
	a := &models.PaymentAccount{
		ID:         uuid.New(),
		Name:       name,
		Kind:       models.AccountKindStandard,
		IsActive:   true,
		IsVerified: true,
		Status:     models.RecordActive,
	}
	if mutate != nil {
		mutate(a)
	}
	require.NoError(t, repo.Create(context.Background(), a))
	return a
}

func TestListPropertiesWithAccounts(t *testing.T) {
	ctx := context.Background()
	propRepo := newFakePropertyRepo()
	acctRepo := newFakePaymentAccountRepo()
	svc := NewAssignmentService(propRepo, acctRepo)

	covered := seedProperty(t, propRepo, "Covered Park")
	uncovered := seedProperty(t, propRepo, "Uncovered Park")

	acct := seedAccount(t, acctRepo, "Covered Operating", func(a *models.PaymentAccount) {
		a.PropertyIDs = []uuid.UUID{covered.ID}
	})

	views, err := svc.ListPropertiesWithAccounts(ctx)
	require.NoError(t, err)
	require.Len(t, views, 2)

	byID := make(map[uuid.UUID]dtos.PropertyWithAccount, len(views))
	for _, v := range views {
		byID[v.ID] = v
	}

	require.True(t, byID[covered.ID].HasAccount)
	require.NotNil(t, byID[covered.ID].Account)
	require.Equal(t, acct.ID, byID[covered.ID].Account.ID)

	require.False(t, byID[uncovered.ID].HasAccount)
	require.Nil(t, byID[uncovered.ID].Account)
}

func TestListPropertiesWithAccountsIgnoresDeletedAccounts(t *testing.T) {
	ctx := context.Background()
	propRepo := newFakePropertyRepo()
	acctRepo := newFakePaymentAccountRepo()
	svc := NewAssignmentService(propRepo, acctRepo)

	prop := seedProperty(t, propRepo, "Park")
	acct := seedAccount(t, acctRepo, "Old Operating", func(a *models.PaymentAccount) {
		a.PropertyIDs = []uuid.UUID{prop.ID}
	})
	require.NoError(t, acctRepo.SoftDelete(ctx, acct.ID))

	views, err := svc.ListPropertiesWithAccounts(ctx)
	require.NoError(t, err)
	require.Len(t, views, 1)
	require.False(t, views[0].HasAccount)

	// A deleted account no longer covers the property either.
	missing, err := svc.ListPropertiesWithoutAccounts(ctx)
	require.NoError(t, err)
	require.Len(t, missing, 1)
	require.Equal(t, prop.ID, missing[0].ID)
}

func TestListAvailableAccountsGlobalsIdenticalPerProperty(t *testing.T) {
	ctx := context.Background()
	propRepo := newFakePropertyRepo()
	acctRepo := newFakePaymentAccountRepo()
	svc := NewAssignmentService(propRepo, acctRepo)

	p1 := seedProperty(t, propRepo, "First Park")
	p2 := seedProperty(t, propRepo, "Second Park")

	dedicated := seedAccount(t, acctRepo, "First Operating", func(a *models.PaymentAccount) {
		a.PropertyIDs = []uuid.UUID{p1.ID}
	})
	global := seedAccount(t, acctRepo, "Fallback", func(a *models.PaymentAccount) {
		a.IsGlobal = true
	})
	// Ineligible globals must not appear in any list.
	seedAccount(t, acctRepo, "Inactive Fallback", func(a *models.PaymentAccount) {
		a.IsGlobal = true
		a.IsActive = false
	})
	seedAccount(t, acctRepo, "Unverified Fallback", func(a *models.PaymentAccount) {
		a.IsGlobal = true
		a.IsVerified = false
	})

	views, err := svc.ListAvailableAccounts(ctx)
	require.NoError(t, err)
	require.Len(t, views, 2)

	byID := make(map[uuid.UUID]dtos.PropertyAvailableAccounts, len(views))
	for _, v := range views {
		byID[v.ID] = v
	}

	for _, v := range views {
		require.Len(t, v.GlobalAccounts, 1)
		require.Equal(t, global.ID, v.GlobalAccounts[0].ID)
		require.Equal(t, dtos.ScopeGlobal, v.GlobalAccounts[0].Scope)
		require.True(t, v.HasGlobalAccounts)
	}

	v1 := byID[p1.ID]
	require.True(t, v1.HasDedicatedAccount)
	require.Equal(t, dedicated.ID, v1.DedicatedAccount.ID)
	require.Equal(t, dtos.ScopePropertySpecific, v1.DedicatedAccount.Scope)
	require.Equal(t, 2, v1.TotalAvailableAccounts)

	v2 := byID[p2.ID]
	require.False(t, v2.HasDedicatedAccount)
	require.Nil(t, v2.DedicatedAccount)
	require.Equal(t, 1, v2.TotalAvailableAccounts)
}

func TestListAvailableAccountsNoAccountsAtAll(t *testing.T) {
	ctx := context.Background()
	propRepo := newFakePropertyRepo()
	acctRepo := newFakePaymentAccountRepo()
	svc := NewAssignmentService(propRepo, acctRepo)

	seedProperty(t, propRepo, "Lonely Park")

	views, err := svc.ListAvailableAccounts(ctx)
	require.NoError(t, err)
	require.Len(t, views, 1)
	require.False(t, views[0].HasDedicatedAccount)
	require.False(t, views[0].HasGlobalAccounts)
	require.NotNil(t, views[0].GlobalAccounts)
	require.Empty(t, views[0].GlobalAccounts)
	require.Zero(t, views[0].TotalAvailableAccounts)
}

func TestListPropertiesWithoutAccountsPartition(t *testing.T) {
	ctx := context.Background()
	propRepo := newFakePropertyRepo()
	acctRepo := newFakePaymentAccountRepo()
	svc := NewAssignmentService(propRepo, acctRepo)

	covered := seedProperty(t, propRepo, "Covered Park")
	uncovered := seedProperty(t, propRepo, "Uncovered Park")

	seedAccount(t, acctRepo, "Covered Operating", func(a *models.PaymentAccount) {
		a.PropertyIDs = []uuid.UUID{covered.ID}
	})
	// A global with no associations covers nothing.
	seedAccount(t, acctRepo, "Fallback", func(a *models.PaymentAccount) {
		a.IsGlobal = true
	})

	missing, err := svc.ListPropertiesWithoutAccounts(ctx)
	require.NoError(t, err)
	require.Len(t, missing, 1)
	require.Equal(t, uncovered.ID, missing[0].ID)

	// Every property appears in exactly one of the two partitions.
	all, err := svc.ListPropertiesWithAccounts(ctx)
	require.NoError(t, err)
	withCount := 0
	for _, v := range all {
		if v.HasAccount {
			withCount++
		}
	}
	require.Equal(t, len(all)-withCount, len(missing))
}

func TestDedicatedTieBreakNewestAccountWins(t *testing.T) {
	ctx := context.Background()
	propRepo := newFakePropertyRepo()
	acctRepo := newFakePaymentAccountRepo()
	svc := NewAssignmentService(propRepo, acctRepo)

	prop := seedProperty(t, propRepo, "Contested Park")

	seedAccount(t, acctRepo, "Older Operating", func(a *models.PaymentAccount) {
		a.PropertyIDs = []uuid.UUID{prop.ID}
	})
	newer := seedAccount(t, acctRepo, "Newer Operating", func(a *models.PaymentAccount) {
		a.PropertyIDs = []uuid.UUID{prop.ID}
	})

	views, err := svc.ListPropertiesWithAccounts(ctx)
	require.NoError(t, err)
	require.Len(t, views, 1)
	require.True(t, views[0].HasAccount)
	require.Equal(t, newer.ID, views[0].Account.ID)
}

func TestAssignmentReadsAreIdempotent(t *testing.T) {
	ctx := context.Background()
	propRepo := newFakePropertyRepo()
	acctRepo := newFakePaymentAccountRepo()
	svc := NewAssignmentService(propRepo, acctRepo)

	prop := seedProperty(t, propRepo, "Stable Park")
	seedAccount(t, acctRepo, "Stable Operating", func(a *models.PaymentAccount) {
		a.PropertyIDs = []uuid.UUID{prop.ID}
		a.IsGlobal = true
	})

	first, err := svc.ListAvailableAccounts(ctx)
	require.NoError(t, err)
	second, err := svc.ListAvailableAccounts(ctx)
	require.NoError(t, err)
	require.Equal(t, first, second)
}

func TestAssignmentReadErrorPropagates(t *testing.T) {
	ctx := context.Background()
	propRepo := newFakePropertyRepo()
	acctRepo := newFakePaymentAccountRepo()
	svc := NewAssignmentService(propRepo, acctRepo)

	boom := errors.New("connection reset")
	propRepo.listErr = boom

	_, err := svc.ListPropertiesWithAccounts(ctx)
	require.ErrorIs(t, err, boom)

	propRepo.listErr = nil
	acctRepo.listErr = boom

	_, err = svc.ListAvailableAccounts(ctx)
	require.ErrorIs(t, err, boom)
}
