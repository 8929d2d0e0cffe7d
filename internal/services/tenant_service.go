package services

import (
	"context"
	"fmt"
	"net/http"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v4"
	twilio "github.com/twilio/twilio-go"
	twilioApi "github.com/twilio/twilio-go/rest/api/v2010"

	"github.com/japetto/rental-portal-managment-backend-sub002/internal/config"
	"github.com/japetto/rental-portal-managment-backend-sub002/internal/dtos"
	"github.com/japetto/rental-portal-managment-backend-sub002/internal/models"
	"github.com/japetto/rental-portal-managment-backend-sub002/internal/repositories"
	"github.com/japetto/rental-portal-managment-backend-sub002/internal/utils"
)

const inviteTokenLength = 48

// TenantService handles admin-driven tenant invitations and the
// tenant-side accept flow.
type TenantService struct {
	cfg          *config.Config
	tenantRepo   repositories.TenantRepository
	propRepo     repositories.PropertyRepository
	emailSender  EmailSender
	twilioClient *twilio.RestClient
}

func NewTenantService(
	cfg *config.Config,
	tenantRepo repositories.TenantRepository,
	propRepo repositories.PropertyRepository,
	emailSender EmailSender,
) *TenantService {
	var tClient *twilio.RestClient
	if cfg.TwilioAccountSID != "" {
		tClient = twilio.NewRestClientWithParams(twilio.ClientParams{
			Username: cfg.TwilioAccountSID,
			Password: cfg.TwilioAuthToken,
		})
	}
	return &TenantService{
		cfg:          cfg,
		tenantRepo:   tenantRepo,
		propRepo:     propRepo,
		emailSender:  emailSender,
		twilioClient: tClient,
	}
}

// Invite creates the tenant record and sends the invitation email
// (plus an SMS when a phone number was supplied and Twilio is wired).
func (s *TenantService) Invite(ctx context.Context, req dtos.InviteTenantRequest) (*dtos.Tenant, error) {
	ok, err := utils.ValidateEmail(ctx, s.cfg.SendgridAPIKey, req.Email, s.cfg.LDFlag_ValidateEmailWithSG)
	if err != nil {
		return nil, &utils.AppError{StatusCode: http.StatusBadGateway, Code: utils.ErrCodeExternalServiceFailure, Message: "Email validation unavailable", Err: err}
	}
	if !ok {
		return nil, &utils.AppError{StatusCode: http.StatusBadRequest, Code: utils.ErrCodeValidation, Message: "Email address is not deliverable", Err: utils.ErrInvalidEmail}
	}

	if req.PhoneNumber != nil {
		ok, err := utils.ValidatePhoneNumber(ctx, *req.PhoneNumber, nil, s.cfg.LDFlag_ValidatePhoneWithTwilio, s.twilioClient)
		if err != nil {
			return nil, &utils.AppError{StatusCode: http.StatusBadGateway, Code: utils.ErrCodeExternalServiceFailure, Message: "Phone validation unavailable", Err: err}
		}
		if !ok {
			return nil, &utils.AppError{StatusCode: http.StatusBadRequest, Code: utils.ErrCodeValidation, Message: "Phone number is not valid", Err: utils.ErrInvalidPhone}
		}
	}

	prop, err := s.propRepo.GetByID(ctx, req.PropertyID)
	if err != nil {
		return nil, &utils.AppError{StatusCode: http.StatusInternalServerError, Code: utils.ErrCodeInternal, Message: "Failed to verify property", Err: err}
	}
	if prop == nil || prop.IsDeleted() {
		return nil, &utils.ReferenceError{PropertyID: req.PropertyID.String()}
	}

	t := &models.Tenant{
		ID:           uuid.New(),
		Email:        req.Email,
		PhoneNumber:  req.PhoneNumber,
		FirstName:    req.FirstName,
		LastName:     req.LastName,
		PropertyID:   req.PropertyID,
		SpotNumber:   req.SpotNumber,
		InviteStatus: models.InviteStatusInvited,
		InviteToken:  utils.RandomString(inviteTokenLength),
		Status:       models.RecordActive,
	}

	if err := s.tenantRepo.Create(ctx, t); err != nil {
		if utils.IsDuplicateKey(err) {
			return nil, utils.TranslateDuplicateKey(err)
		}
		return nil, &utils.AppError{StatusCode: http.StatusInternalServerError, Code: utils.ErrCodeInternal, Message: "Failed to create tenant", Err: err}
	}

	inviteURL := fmt.Sprintf("%s/invite/%s", s.cfg.AppUrl, t.InviteToken)
	if err := s.emailSender.SendTenantInvite(ctx, t.Email, t.FirstName, prop.Name, inviteURL); err != nil {
		// The record is already persisted; the invite can be re-sent.
		utils.Logger.WithError(err).Errorf("Failed to send invite email to %s", t.Email)
	}

	if t.PhoneNumber != nil && s.twilioClient != nil && s.cfg.TwilioFromNumber != "" {
		s.sendInviteSMS(*t.PhoneNumber, prop.Name, inviteURL)
	}

	dto := dtos.NewTenantFromModel(t)
	return &dto, nil
}

// AcceptInvite activates the tenant matching the single-use token.
func (s *TenantService) AcceptInvite(ctx context.Context, token string) (*dtos.Tenant, error) {
	t, err := s.tenantRepo.GetByInviteToken(ctx, token)
	if err != nil {
		return nil, &utils.AppError{StatusCode: http.StatusInternalServerError, Code: utils.ErrCodeInternal, Message: "Failed to look up invitation", Err: err}
	}
	if t == nil || t.InviteStatus != models.InviteStatusInvited {
		return nil, &utils.AppError{StatusCode: http.StatusNotFound, Code: utils.ErrCodeNotFound, Message: "Invitation not found or no longer valid"}
	}

	var updated *models.Tenant
	err = s.tenantRepo.UpdateWithRetry(ctx, t.ID, func(cur *models.Tenant) error {
		if cur.InviteStatus != models.InviteStatusInvited {
			return pgx.ErrNoRows
		}
		cur.InviteStatus = models.InviteStatusActive
		cur.InviteToken = ""
		updated = cur
		return nil
	})
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, &utils.AppError{StatusCode: http.StatusNotFound, Code: utils.ErrCodeNotFound, Message: "Invitation not found or no longer valid"}
		}
		return nil, &utils.AppError{StatusCode: http.StatusInternalServerError, Code: utils.ErrCodeInternal, Message: "Failed to accept invitation", Err: err}
	}

	dto := dtos.NewTenantFromModel(updated)
	return &dto, nil
}

// RevokeInvite marks the invitation revoked; the token stops working.
func (s *TenantService) RevokeInvite(ctx context.Context, id uuid.UUID) error {
	err := s.tenantRepo.UpdateWithRetry(ctx, id, func(cur *models.Tenant) error {
		cur.InviteStatus = models.InviteStatusRevoked
		cur.InviteToken = ""
		return nil
	})
	if err != nil {
		if err == pgx.ErrNoRows {
			return &utils.AppError{StatusCode: http.StatusNotFound, Code: utils.ErrCodeNotFound, Message: "Tenant not found"}
		}
		return &utils.AppError{StatusCode: http.StatusInternalServerError, Code: utils.ErrCodeInternal, Message: "Failed to revoke invitation", Err: err}
	}
	return nil
}

func (s *TenantService) List(ctx context.Context) ([]dtos.Tenant, error) {
	tenants, err := s.tenantRepo.ListActive(ctx)
	if err != nil {
		return nil, &utils.AppError{StatusCode: http.StatusInternalServerError, Code: utils.ErrCodeInternal, Message: "Failed to list tenants", Err: err}
	}
	out := make([]dtos.Tenant, 0, len(tenants))
	for _, t := range tenants {
		out = append(out, dtos.NewTenantFromModel(t))
	}
	return out, nil
}

func (s *TenantService) sendInviteSMS(toNumber, propertyName, inviteURL string) {
	params := &twilioApi.CreateMessageParams{}
	params.SetTo(toNumber)
	params.SetFrom(s.cfg.TwilioFromNumber)
	params.SetBody(fmt.Sprintf("You've been invited to %s on %s. Accept: %s", propertyName, s.cfg.OrganizationName, inviteURL))

	if _, err := s.twilioClient.Api.CreateMessage(params); err != nil {
		utils.Logger.WithError(err).Errorf("Failed to send invite SMS to %s", toNumber)
	}
}
