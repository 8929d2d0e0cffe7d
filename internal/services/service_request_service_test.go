package services

import (
	"context"
	"net/http"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"

	"github.com/japetto/rental-portal-managment-backend-sub002/internal/dtos"
	"github.com/japetto/rental-portal-managment-backend-sub002/internal/models"
	"github.com/japetto/rental-portal-managment-backend-sub002/internal/utils"
)

func newServiceRequestServiceForTest(t *testing.T) (*ServiceRequestService, *fakeServiceRequestRepo, *fakeTenantRepo, *fakeEmailSender) {
	t.Helper()
	reqRepo := newFakeServiceRequestRepo()
	tenantRepo := newFakeTenantRepo()
	sender := &fakeEmailSender{}
	return NewServiceRequestService(reqRepo, tenantRepo, sender), reqRepo, tenantRepo, sender
}

func seedActiveTenant(t *testing.T, repo *fakeTenantRepo) *models.Tenant {
	t.Helper()
	tenant := &models.Tenant{
		ID:           uuid.New(),
		Email:        "tenant@example.com",
		FirstName:    "Alex",
		LastName:     "Smith",
		PropertyID:   uuid.New(),
		InviteStatus: models.InviteStatusActive,
		Status:       models.RecordActive,
	}
	require.NoError(t, repo.Create(context.Background(), tenant))
	return tenant
}

func TestCreateServiceRequestInheritsTenantProperty(t *testing.T) {
	ctx := context.Background()
	svc, _, tenantRepo, _ := newServiceRequestServiceForTest(t)
	tenant := seedActiveTenant(t, tenantRepo)

	created, err := svc.Create(ctx, dtos.CreateServiceRequestRequest{
		TenantID:    tenant.ID,
		Category:    string(models.RequestCategoryMaintenance),
		Description: "Kitchen faucet is leaking under the sink.",
	})
	require.NoError(t, err)
	require.Equal(t, tenant.PropertyID, created.PropertyID)
	require.Equal(t, string(models.RequestStatusOpen), created.RequestStatus)
}

func TestCreateServiceRequestRequiresActiveTenant(t *testing.T) {
	ctx := context.Background()
	svc, _, tenantRepo, _ := newServiceRequestServiceForTest(t)

	invited := &models.Tenant{
		ID:           uuid.New(),
		Email:        "pending@example.com",
		PropertyID:   uuid.New(),
		InviteStatus: models.InviteStatusInvited,
		Status:       models.RecordActive,
	}
	require.NoError(t, tenantRepo.Create(ctx, invited))

	for _, tenantID := range []uuid.UUID{invited.ID, uuid.New()} {
		_, err := svc.Create(ctx, dtos.CreateServiceRequestRequest{
			TenantID:    tenantID,
			Category:    string(models.RequestCategoryBilling),
			Description: "Last invoice shows the wrong amount.",
		})
		var appErr *utils.AppError
		require.ErrorAs(t, err, &appErr)
		require.Equal(t, http.StatusNotFound, appErr.StatusCode)
	}
}

func TestUpdateServiceRequestStatusChangeNotifiesTenant(t *testing.T) {
	ctx := context.Background()
	svc, _, tenantRepo, sender := newServiceRequestServiceForTest(t)
	tenant := seedActiveTenant(t, tenantRepo)

	created, err := svc.Create(ctx, dtos.CreateServiceRequestRequest{
		TenantID:    tenant.ID,
		Category:    string(models.RequestCategoryMaintenance),
		Description: "Front gate latch is broken.",
	})
	require.NoError(t, err)

	status := string(models.RequestStatusResolved)
	note := "Latch replaced on-site."
	updated, err := svc.Update(ctx, created.ID, dtos.UpdateServiceRequestRequest{
		RequestStatus:  &status,
		ResolutionNote: &note,
	})
	require.NoError(t, err)
	require.Equal(t, status, updated.RequestStatus)
	require.Equal(t, []string{tenant.Email}, sender.updates)
}

func TestUpdateServiceRequestNoteOnlySendsNoEmail(t *testing.T) {
	ctx := context.Background()
	svc, _, tenantRepo, sender := newServiceRequestServiceForTest(t)
	tenant := seedActiveTenant(t, tenantRepo)

	created, err := svc.Create(ctx, dtos.CreateServiceRequestRequest{
		TenantID:    tenant.ID,
		Category:    string(models.RequestCategoryOther),
		Description: "Question about parking assignments.",
	})
	require.NoError(t, err)

	note := "Forwarded to the site manager."
	_, err = svc.Update(ctx, created.ID, dtos.UpdateServiceRequestRequest{ResolutionNote: &note})
	require.NoError(t, err)
	require.Empty(t, sender.updates)
}

func TestUpdateUnknownServiceRequestIsNotFound(t *testing.T) {
	svc, _, _, _ := newServiceRequestServiceForTest(t)

	status := string(models.RequestStatusCancelled)
	_, err := svc.Update(context.Background(), uuid.New(), dtos.UpdateServiceRequestRequest{RequestStatus: &status})

	var appErr *utils.AppError
	require.ErrorAs(t, err, &appErr)
	require.Equal(t, http.StatusNotFound, appErr.StatusCode)
}
