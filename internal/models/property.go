package models

import (
	"time"

	"github.com/google/uuid"
)

// RecordStatus is a status tag rather than a boolean so future states
// (e.g. ARCHIVED) extend cleanly. All read paths filter by it explicitly.
type RecordStatus string

const (
	RecordActive  RecordStatus = "ACTIVE"
	RecordDeleted RecordStatus = "DELETED"
)

type Property struct {
	Versioned

	ID             uuid.UUID    `json:"id"`
	Name           string       `json:"name"`
	Description    string       `json:"description,omitempty"`
	Address        string       `json:"address"`
	Amenities      []string     `json:"amenities"`
	Images         []string     `json:"images"`
	Rules          string       `json:"rules,omitempty"`
	IsActive       bool         `json:"is_active"`
	TotalSpots     int          `json:"total_spots"`
	AvailableSpots int          `json:"available_spots"`
	Status         RecordStatus `json:"status"`
	CreatedAt      time.Time    `json:"created_at"`
	UpdatedAt      time.Time    `json:"updated_at"`
	DeletedAt      *time.Time   `json:"deleted_at,omitempty"`
}

// ----- concurrency helpers -----
func (p *Property) GetID() string { return p.ID.String() }

func (p *Property) IsDeleted() bool { return p.Status == RecordDeleted }
