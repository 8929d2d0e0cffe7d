package dtos

import (
	"time"

	"github.com/google/uuid"

	"github.com/japetto/rental-portal-managment-backend-sub002/internal/models"
)

type CreatePropertyRequest struct {
	Name           string   `json:"name" validate:"required,min=2,max=120"`
	Description    string   `json:"description" validate:"max=2000"`
	Address        string   `json:"address" validate:"required,max=500"`
	Amenities      []string `json:"amenities" validate:"dive,max=120"`
	Images         []string `json:"images" validate:"dive,url"`
	Rules          string   `json:"rules" validate:"max=5000"`
	IsActive       *bool    `json:"is_active"`
	TotalSpots     int      `json:"total_spots" validate:"gte=0"`
	AvailableSpots int      `json:"available_spots" validate:"gte=0"`
}

type UpdatePropertyRequest struct {
	Name           *string   `json:"name" validate:"omitempty,min=2,max=120"`
	Description    *string   `json:"description" validate:"omitempty,max=2000"`
	Address        *string   `json:"address" validate:"omitempty,max=500"`
	Amenities      *[]string `json:"amenities" validate:"omitempty,dive,max=120"`
	Images         *[]string `json:"images" validate:"omitempty,dive,url"`
	Rules          *string   `json:"rules" validate:"omitempty,max=5000"`
	IsActive       *bool     `json:"is_active"`
	TotalSpots     *int      `json:"total_spots" validate:"omitempty,gte=0"`
	AvailableSpots *int      `json:"available_spots" validate:"omitempty,gte=0"`
}

// Property is the public read shape; soft-deleted records never reach it.
type Property struct {
	ID             uuid.UUID `json:"id"`
	Name           string    `json:"name"`
	Description    string    `json:"description,omitempty"`
	Address        string    `json:"address"`
	Amenities      []string  `json:"amenities"`
	Images         []string  `json:"images"`
	Rules          string    `json:"rules,omitempty"`
	IsActive       bool      `json:"is_active"`
	TotalSpots     int       `json:"total_spots"`
	AvailableSpots int       `json:"available_spots"`
	CreatedAt      time.Time `json:"created_at"`
	UpdatedAt      time.Time `json:"updated_at"`
}

func NewPropertyFromModel(p *models.Property) Property {
	return Property{
		ID:             p.ID,
		Name:           p.Name,
		Description:    p.Description,
		Address:        p.Address,
		Amenities:      p.Amenities,
		Images:         p.Images,
		Rules:          p.Rules,
		IsActive:       p.IsActive,
		TotalSpots:     p.TotalSpots,
		AvailableSpots: p.AvailableSpots,
		CreatedAt:      p.CreatedAt,
		UpdatedAt:      p.UpdatedAt,
	}
}
