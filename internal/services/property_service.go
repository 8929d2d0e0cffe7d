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

type PropertyService struct {
	propRepo repositories.PropertyRepository
}

func NewPropertyService(propRepo repositories.PropertyRepository) *PropertyService {
	return &PropertyService{propRepo: propRepo}
}

func (s *PropertyService) Create(ctx context.Context, req dtos.CreatePropertyRequest) (*dtos.Property, error) {
	// Pre-check the name; the unique index still backs this, so a
	// concurrent create surfaces through the duplicate-key translator.
	existing, err := s.propRepo.GetByName(ctx, req.Name)
	if err != nil {
		return nil, &utils.AppError{StatusCode: http.StatusInternalServerError, Code: utils.ErrCodeInternal, Message: "Failed to check property name", Err: err}
	}
	if existing != nil && !existing.IsDeleted() {
		return nil, utils.ConflictForField("name", req.Name)
	}

	active := true
	if req.IsActive != nil {
		active = *req.IsActive
	}

	p := &models.Property{
		ID:             uuid.New(),
		Name:           req.Name,
		Description:    req.Description,
		Address:        req.Address,
		Amenities:      req.Amenities,
		Images:         req.Images,
		Rules:          req.Rules,
		IsActive:       active,
		TotalSpots:     req.TotalSpots,
		AvailableSpots: req.AvailableSpots,
		Status:         models.RecordActive,
	}
	if p.Amenities == nil {
		p.Amenities = []string{}
	}
	if p.Images == nil {
		p.Images = []string{}
	}

	if err := s.propRepo.Create(ctx, p); err != nil {
		if utils.IsDuplicateKey(err) {
			return nil, utils.TranslateDuplicateKey(err)
		}
		return nil, &utils.AppError{StatusCode: http.StatusInternalServerError, Code: utils.ErrCodeInternal, Message: "Failed to create property", Err: err}
	}

	dto := dtos.NewPropertyFromModel(p)
	return &dto, nil
}

func (s *PropertyService) GetByID(ctx context.Context, id uuid.UUID) (*dtos.Property, error) {
	p, err := s.propRepo.GetByID(ctx, id)
	if err != nil {
		return nil, &utils.AppError{StatusCode: http.StatusInternalServerError, Code: utils.ErrCodeInternal, Message: "Failed to retrieve property", Err: err}
	}
	if p == nil || p.IsDeleted() {
		return nil, &utils.AppError{StatusCode: http.StatusNotFound, Code: utils.ErrCodeNotFound, Message: "Property not found"}
	}
	dto := dtos.NewPropertyFromModel(p)
	return &dto, nil
}

func (s *PropertyService) List(ctx context.Context) ([]dtos.Property, error) {
	props, err := s.propRepo.ListActive(ctx)
	if err != nil {
		return nil, &utils.AppError{StatusCode: http.StatusInternalServerError, Code: utils.ErrCodeInternal, Message: "Failed to list properties", Err: err}
	}
	out := make([]dtos.Property, 0, len(props))
	for _, p := range props {
		out = append(out, dtos.NewPropertyFromModel(p))
	}
	return out, nil
}

func (s *PropertyService) Update(ctx context.Context, id uuid.UUID, req dtos.UpdatePropertyRequest) (*dtos.Property, error) {
	var updated *models.Property
	err := s.propRepo.UpdateWithRetry(ctx, id, func(p *models.Property) error {
		if p.IsDeleted() {
			return pgx.ErrNoRows
		}
		if req.Name != nil {
			p.Name = *req.Name
		}
		if req.Description != nil {
			p.Description = *req.Description
		}
		if req.Address != nil {
			p.Address = *req.Address
		}
		if req.Amenities != nil {
			p.Amenities = *req.Amenities
		}
		if req.Images != nil {
			p.Images = *req.Images
		}
		if req.Rules != nil {
			p.Rules = *req.Rules
		}
		if req.IsActive != nil {
			p.IsActive = *req.IsActive
		}
		if req.TotalSpots != nil {
			p.TotalSpots = *req.TotalSpots
		}
		if req.AvailableSpots != nil {
			p.AvailableSpots = *req.AvailableSpots
		}
		updated = p
		return nil
	})
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, &utils.AppError{StatusCode: http.StatusNotFound, Code: utils.ErrCodeNotFound, Message: "Property not found"}
		}
		if utils.IsDuplicateKey(err) {
			return nil, utils.TranslateDuplicateKey(err)
		}
		return nil, &utils.AppError{StatusCode: http.StatusInternalServerError, Code: utils.ErrCodeInternal, Message: "Failed to update property", Err: err}
	}

	dto := dtos.NewPropertyFromModel(updated)
	return &dto, nil
}

// SoftDelete flags the property deleted. Accounts referencing it keep
// their stale reference; the next write to such an account fails the
// reference validator.
func (s *PropertyService) SoftDelete(ctx context.Context, id uuid.UUID) error {
	if err := s.propRepo.SoftDelete(ctx, id); err != nil {
		if err == pgx.ErrNoRows {
			return &utils.AppError{StatusCode: http.StatusNotFound, Code: utils.ErrCodeNotFound, Message: "Property not found"}
		}
		return &utils.AppError{StatusCode: http.StatusInternalServerError, Code: utils.ErrCodeInternal, Message: "Failed to delete property", Err: err}
	}
	return nil
}
