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

// PaymentAccountService owns the PaymentAccount write path. Two
// validators run before any write commits:
//
//  1. every property id in the association list must name a non-deleted
//     property (all-or-nothing, the offending id is surfaced), and
//  2. at most one non-deleted account may be flagged default.
//
// Both checks are check-then-act without a transaction spanning check
// and commit; two concurrent writers can still race past them. Callers
// needing a hard guarantee must serialize externally.
type PaymentAccountService struct {
	acctRepo repositories.PaymentAccountRepository
	propRepo repositories.PropertyRepository
}

func NewPaymentAccountService(acctRepo repositories.PaymentAccountRepository, propRepo repositories.PropertyRepository) *PaymentAccountService {
	return &PaymentAccountService{acctRepo: acctRepo, propRepo: propRepo}
}

func (s *PaymentAccountService) Create(ctx context.Context, req dtos.CreatePaymentAccountRequest) (*dtos.PaymentAccount, error) {
	if err := s.validatePropertyRefs(ctx, req.PropertyIDs); err != nil {
		return nil, err
	}
	if req.IsDefault {
		if err := s.checkDefaultConflict(ctx, uuid.Nil); err != nil {
			return nil, err
		}
	}

	active := true
	if req.IsActive != nil {
		active = *req.IsActive
	}

	a := &models.PaymentAccount{
		ID:              uuid.New(),
		Name:            req.Name,
		Description:     req.Description,
		PropertyIDs:     req.PropertyIDs,
		StripeAccountID: req.StripeAccountID,
		StripeSecretKey: req.StripeSecretKey,
		Kind:            models.AccountKindType(req.Kind),
		IsActive:        active,
		IsGlobal:        req.IsGlobal,
		IsDefault:       req.IsDefault,
		WebhookStatus:   models.WebhookStatusPending,
		Metadata:        req.Metadata,
		Status:          models.RecordActive,
	}

	if err := s.acctRepo.Create(ctx, a); err != nil {
		if utils.IsDuplicateKey(err) {
			return nil, utils.TranslateDuplicateKey(err)
		}
		return nil, &utils.AppError{StatusCode: http.StatusInternalServerError, Code: utils.ErrCodeInternal, Message: "Failed to create payment account", Err: err}
	}

	dto := dtos.NewPaymentAccountFromModel(a)
	return &dto, nil
}

func (s *PaymentAccountService) GetByID(ctx context.Context, id uuid.UUID) (*dtos.PaymentAccount, error) {
	a, err := s.acctRepo.GetByID(ctx, id)
	if err != nil {
		return nil, &utils.AppError{StatusCode: http.StatusInternalServerError, Code: utils.ErrCodeInternal, Message: "Failed to retrieve payment account", Err: err}
	}
	if a == nil || a.IsDeleted() {
		return nil, &utils.AppError{StatusCode: http.StatusNotFound, Code: utils.ErrCodeNotFound, Message: "Payment account not found"}
	}
	dto := dtos.NewPaymentAccountFromModel(a)
	return &dto, nil
}

func (s *PaymentAccountService) List(ctx context.Context) ([]dtos.PaymentAccount, error) {
	accounts, err := s.acctRepo.ListActive(ctx)
	if err != nil {
		return nil, &utils.AppError{StatusCode: http.StatusInternalServerError, Code: utils.ErrCodeInternal, Message: "Failed to list payment accounts", Err: err}
	}
	out := make([]dtos.PaymentAccount, 0, len(accounts))
	for _, a := range accounts {
		out = append(out, dtos.NewPaymentAccountFromModel(a))
	}
	return out, nil
}

func (s *PaymentAccountService) Update(ctx context.Context, id uuid.UUID, req dtos.UpdatePaymentAccountRequest) (*dtos.PaymentAccount, error) {
	// Validators run before the optimistic-lock loop touches the row.
	// The reference check covers the list the row ends up with: a write
	// that leaves the associations untouched still fails when the stored
	// list names a deleted property.
	var refIDs []uuid.UUID
	if req.PropertyIDs != nil {
		refIDs = *req.PropertyIDs
	} else {
		cur, err := s.acctRepo.GetByID(ctx, id)
		if err != nil {
			return nil, &utils.AppError{StatusCode: http.StatusInternalServerError, Code: utils.ErrCodeInternal, Message: "Failed to retrieve payment account", Err: err}
		}
		if cur == nil || cur.IsDeleted() {
			return nil, &utils.AppError{StatusCode: http.StatusNotFound, Code: utils.ErrCodeNotFound, Message: "Payment account not found"}
		}
		refIDs = cur.PropertyIDs
	}
	if err := s.validatePropertyRefs(ctx, refIDs); err != nil {
		return nil, err
	}
	if req.IsDefault != nil && *req.IsDefault {
		if err := s.checkDefaultConflict(ctx, id); err != nil {
			return nil, err
		}
	}

	var updated *models.PaymentAccount
	err := s.acctRepo.UpdateWithRetry(ctx, id, func(a *models.PaymentAccount) error {
		if a.IsDeleted() {
			return pgx.ErrNoRows
		}
		if req.Name != nil {
			a.Name = *req.Name
		}
		if req.Description != nil {
			a.Description = *req.Description
		}
		if req.PropertyIDs != nil {
			a.PropertyIDs = *req.PropertyIDs
		}
		if req.StripeAccountID != nil {
			a.StripeAccountID = req.StripeAccountID
		}
		if req.StripeSecretKey != nil {
			a.StripeSecretKey = *req.StripeSecretKey
		}
		if req.Kind != nil {
			a.Kind = models.AccountKindType(*req.Kind)
		}
		if req.IsActive != nil {
			a.IsActive = *req.IsActive
		}
		if req.IsGlobal != nil {
			a.IsGlobal = *req.IsGlobal
		}
		if req.IsDefault != nil {
			a.IsDefault = *req.IsDefault
		}
		if req.Metadata != nil {
			a.Metadata = *req.Metadata
		}
		updated = a
		return nil
	})
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, &utils.AppError{StatusCode: http.StatusNotFound, Code: utils.ErrCodeNotFound, Message: "Payment account not found"}
		}
		if utils.IsDuplicateKey(err) {
			return nil, utils.TranslateDuplicateKey(err)
		}
		return nil, &utils.AppError{StatusCode: http.StatusInternalServerError, Code: utils.ErrCodeInternal, Message: "Failed to update payment account", Err: err}
	}

	dto := dtos.NewPaymentAccountFromModel(updated)
	return &dto, nil
}

func (s *PaymentAccountService) SoftDelete(ctx context.Context, id uuid.UUID) error {
	if err := s.acctRepo.SoftDelete(ctx, id); err != nil {
		if err == pgx.ErrNoRows {
			return &utils.AppError{StatusCode: http.StatusNotFound, Code: utils.ErrCodeNotFound, Message: "Payment account not found"}
		}
		return &utils.AppError{StatusCode: http.StatusInternalServerError, Code: utils.ErrCodeInternal, Message: "Failed to delete payment account", Err: err}
	}
	return nil
}

// validatePropertyRefs rejects the whole write when any listed property
// is missing or soft-deleted. An empty list is fine: an unassigned
// account is usable as a global fallback.
func (s *PaymentAccountService) validatePropertyRefs(ctx context.Context, ids []uuid.UUID) error {
	for _, pid := range ids {
		p, err := s.propRepo.GetByID(ctx, pid)
		if err != nil {
			return &utils.AppError{StatusCode: http.StatusInternalServerError, Code: utils.ErrCodeInternal, Message: "Failed to verify property reference", Err: err}
		}
		if p == nil || p.IsDeleted() {
			return &utils.ReferenceError{PropertyID: pid.String()}
		}
	}
	return nil
}

// checkDefaultConflict rejects the write when another non-deleted
// account is already flagged default.
func (s *PaymentAccountService) checkDefaultConflict(ctx context.Context, excludeID uuid.UUID) error {
	existing, err := s.acctRepo.GetDefault(ctx, excludeID)
	if err != nil {
		return &utils.AppError{StatusCode: http.StatusInternalServerError, Code: utils.ErrCodeInternal, Message: "Failed to check default account", Err: err}
	}
	if existing != nil {
		return &utils.AppError{
			StatusCode: http.StatusConflict,
			Code:       utils.ErrCodeConflict,
			Message:    "Another payment account is already marked as default",
		}
	}
	return nil
}
