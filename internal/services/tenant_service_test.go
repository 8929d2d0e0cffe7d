package services

import (
	"context"
	"net/http"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"

	"github.com/japetto/rental-portal-managment-backend-sub002/internal/config"
	"github.com/japetto/rental-portal-managment-backend-sub002/internal/dtos"
	"github.com/japetto/rental-portal-managment-backend-sub002/internal/models"
	"github.com/japetto/rental-portal-managment-backend-sub002/internal/utils"
)

func newTenantServiceForTest(t *testing.T) (*TenantService, *fakeTenantRepo, *fakePropertyRepo, *fakeEmailSender) {
	t.Helper()
	cfg := &config.Config{
		AppUrl:           "https://portal.test",
		OrganizationName: "Test Org",
	}
	tenantRepo := newFakeTenantRepo()
	propRepo := newFakePropertyRepo()
	sender := &fakeEmailSender{}
	return NewTenantService(cfg, tenantRepo, propRepo, sender), tenantRepo, propRepo, sender
}

func seedInvitedTenant(t *testing.T, repo *fakeTenantRepo, propertyID uuid.UUID) *models.Tenant {
	t.Helper()
	tenant := &models.Tenant{
		ID:           uuid.New(),
		Email:        "tenant@example.com",
		FirstName:    "Alex",
		LastName:     "Smith",
		PropertyID:   propertyID,
		InviteStatus: models.InviteStatusInvited,
		InviteToken:  utils.RandomString(48),
		Status:       models.RecordActive,
	}
	require.NoError(t, repo.Create(context.Background(), tenant))
	return tenant
}

func TestInviteRejectsMalformedEmail(t *testing.T) {
	svc, tenantRepo, propRepo, _ := newTenantServiceForTest(t)
	prop := seedProperty(t, propRepo, "Park")

	_, err := svc.Invite(context.Background(), dtos.InviteTenantRequest{
		Email:      "not-an-email",
		FirstName:  "Alex",
		LastName:   "Smith",
		PropertyID: prop.ID,
	})
	require.Error(t, err)

	var appErr *utils.AppError
	require.ErrorAs(t, err, &appErr)
	require.Equal(t, http.StatusBadRequest, appErr.StatusCode)
	require.ErrorIs(t, err, utils.ErrInvalidEmail)

	tenants, listErr := tenantRepo.ListActive(context.Background())
	require.NoError(t, listErr)
	require.Empty(t, tenants)
}

func TestAcceptInviteActivatesAndConsumesToken(t *testing.T) {
	ctx := context.Background()
	svc, tenantRepo, propRepo, _ := newTenantServiceForTest(t)
	prop := seedProperty(t, propRepo, "Park")
	tenant := seedInvitedTenant(t, tenantRepo, prop.ID)
	token := tenant.InviteToken

	accepted, err := svc.AcceptInvite(ctx, token)
	require.NoError(t, err)
	require.Equal(t, string(models.InviteStatusActive), accepted.InviteStatus)

	stored, getErr := tenantRepo.GetByID(ctx, tenant.ID)
	require.NoError(t, getErr)
	require.Equal(t, models.InviteStatusActive, stored.InviteStatus)
	require.Empty(t, stored.InviteToken)

	// The token is single-use.
	_, err = svc.AcceptInvite(ctx, token)
	var appErr *utils.AppError
	require.ErrorAs(t, err, &appErr)
	require.Equal(t, http.StatusNotFound, appErr.StatusCode)
}

func TestAcceptInviteUnknownToken(t *testing.T) {
	svc, _, _, _ := newTenantServiceForTest(t)

	_, err := svc.AcceptInvite(context.Background(), utils.RandomString(48))

	var appErr *utils.AppError
	require.ErrorAs(t, err, &appErr)
	require.Equal(t, http.StatusNotFound, appErr.StatusCode)
}

func TestRevokeInviteStopsAcceptance(t *testing.T) {
	ctx := context.Background()
	svc, tenantRepo, propRepo, _ := newTenantServiceForTest(t)
	prop := seedProperty(t, propRepo, "Park")
	tenant := seedInvitedTenant(t, tenantRepo, prop.ID)
	token := tenant.InviteToken

	require.NoError(t, svc.RevokeInvite(ctx, tenant.ID))

	stored, err := tenantRepo.GetByID(ctx, tenant.ID)
	require.NoError(t, err)
	require.Equal(t, models.InviteStatusRevoked, stored.InviteStatus)

	_, acceptErr := svc.AcceptInvite(ctx, token)
	var appErr *utils.AppError
	require.ErrorAs(t, acceptErr, &appErr)
	require.Equal(t, http.StatusNotFound, appErr.StatusCode)
}

func TestRevokeInviteUnknownTenant(t *testing.T) {
	svc, _, _, _ := newTenantServiceForTest(t)

	err := svc.RevokeInvite(context.Background(), uuid.New())

	var appErr *utils.AppError
	require.ErrorAs(t, err, &appErr)
	require.Equal(t, http.StatusNotFound, appErr.StatusCode)
}
