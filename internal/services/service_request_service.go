package services

import (
	"context"
	"net/http"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v4"

	"github.com/japetto/rental-portal-managment-backend-sub002/internal/dtos"
	"github.com/japetto/rental-portal-managment-backend-sub002/internal/models"
	"github.com/japetto/rental-portal-managment-backend-sub002/internal/repositories"
	"github.com/japetto/rental-portal-managment-backend-sub002/internal/utils"
)

type ServiceRequestService struct {
	reqRepo     repositories.ServiceRequestRepository
	tenantRepo  repositories.TenantRepository
	emailSender EmailSender
}

func NewServiceRequestService(
	reqRepo repositories.ServiceRequestRepository,
	tenantRepo repositories.TenantRepository,
	emailSender EmailSender,
) *ServiceRequestService {
	return &ServiceRequestService{reqRepo: reqRepo, tenantRepo: tenantRepo, emailSender: emailSender}
}

func (s *ServiceRequestService) Create(ctx context.Context, req dtos.CreateServiceRequestRequest) (*dtos.ServiceRequest, error) {
	tenant, err := s.tenantRepo.GetByID(ctx, req.TenantID)
	if err != nil {
		return nil, &utils.AppError{StatusCode: http.StatusInternalServerError, Code: utils.ErrCodeInternal, Message: "Failed to verify tenant", Err: err}
	}
	if tenant == nil || tenant.Status == models.RecordDeleted || tenant.InviteStatus != models.InviteStatusActive {
		return nil, &utils.AppError{StatusCode: http.StatusNotFound, Code: utils.ErrCodeNotFound, Message: "Tenant not found or not active"}
	}

	sr := &models.ServiceRequest{
		ID:            uuid.New(),
		PropertyID:    tenant.PropertyID,
		TenantID:      tenant.ID,
		Category:      models.RequestCategoryType(req.Category),
		Description:   req.Description,
		RequestStatus: models.RequestStatusOpen,
		Status:        models.RecordActive,
	}

	if err := s.reqRepo.Create(ctx, sr); err != nil {
		return nil, &utils.AppError{StatusCode: http.StatusInternalServerError, Code: utils.ErrCodeInternal, Message: "Failed to create service request", Err: err}
	}

	dto := dtos.NewServiceRequestFromModel(sr)
	return &dto, nil
}

func (s *ServiceRequestService) GetByID(ctx context.Context, id uuid.UUID) (*dtos.ServiceRequest, error) {
	sr, err := s.reqRepo.GetByID(ctx, id)
	if err != nil {
		return nil, &utils.AppError{StatusCode: http.StatusInternalServerError, Code: utils.ErrCodeInternal, Message: "Failed to retrieve service request", Err: err}
	}
	if sr == nil || sr.Status == models.RecordDeleted {
		return nil, &utils.AppError{StatusCode: http.StatusNotFound, Code: utils.ErrCodeNotFound, Message: "Service request not found"}
	}
	dto := dtos.NewServiceRequestFromModel(sr)
	return &dto, nil
}

func (s *ServiceRequestService) List(ctx context.Context) ([]dtos.ServiceRequest, error) {
	reqs, err := s.reqRepo.ListActive(ctx)
	if err != nil {
		return nil, &utils.AppError{StatusCode: http.StatusInternalServerError, Code: utils.ErrCodeInternal, Message: "Failed to list service requests", Err: err}
	}
	out := make([]dtos.ServiceRequest, 0, len(reqs))
	for _, sr := range reqs {
		out = append(out, dtos.NewServiceRequestFromModel(sr))
	}
	return out, nil
}

// Update applies an admin edit. A status change notifies the tenant by
// email; a failed notification does not roll back the update.
func (s *ServiceRequestService) Update(ctx context.Context, id uuid.UUID, req dtos.UpdateServiceRequestRequest) (*dtos.ServiceRequest, error) {
	var (
		updated       *models.ServiceRequest
		statusChanged bool
	)
	err := s.reqRepo.UpdateWithRetry(ctx, id, func(sr *models.ServiceRequest) error {
		if sr.Status == models.RecordDeleted {
			return pgx.ErrNoRows
		}
		if req.RequestStatus != nil && models.RequestStatusType(*req.RequestStatus) != sr.RequestStatus {
			sr.RequestStatus = models.RequestStatusType(*req.RequestStatus)
			statusChanged = true
		}
		if req.ResolutionNote != nil {
			sr.ResolutionNote = req.ResolutionNote
		}
		updated = sr
		return nil
	})
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, &utils.AppError{StatusCode: http.StatusNotFound, Code: utils.ErrCodeNotFound, Message: "Service request not found"}
		}
		return nil, &utils.AppError{StatusCode: http.StatusInternalServerError, Code: utils.ErrCodeInternal, Message: "Failed to update service request", Err: err}
	}

	if statusChanged {
		s.notifyTenant(ctx, updated)
	}

	dto := dtos.NewServiceRequestFromModel(updated)
	return &dto, nil
}

func (s *ServiceRequestService) notifyTenant(ctx context.Context, sr *models.ServiceRequest) {
	tenant, err := s.tenantRepo.GetByID(ctx, sr.TenantID)
	if err != nil || tenant == nil {
		utils.Logger.WithError(err).Errorf("Could not load tenant %s for notification", sr.TenantID)
		return
	}
	note := ""
	if sr.ResolutionNote != nil {
		note = *sr.ResolutionNote
	}
	if err := s.emailSender.SendServiceRequestUpdate(ctx, tenant.Email, tenant.FirstName, string(sr.RequestStatus), note); err != nil {
		utils.Logger.WithError(err).Errorf("Failed to send service-request update email to %s", tenant.Email)
	}
}
