package repositories

import (
	"context"

	"github.com/google/uuid"
	"github.com/jackc/pgconn"
	"github.com/jackc/pgx/v4"

	"github.com/japetto/rental-portal-managment-backend-sub002/internal/models"
)

/* ------------------------------------------------------------------
   Public interface
------------------------------------------------------------------ */

type PropertyRepository interface {
	Create(ctx context.Context, p *models.Property) error

	// GetByID returns the property regardless of status; callers that
	// must exclude soft-deleted records check Status themselves.
	GetByID(ctx context.Context, id uuid.UUID) (*models.Property, error)
	GetByName(ctx context.Context, name string) (*models.Property, error)

	Update(ctx context.Context, p *models.Property) error
	UpdateIfVersion(ctx context.Context, p *models.Property, expected int64) (pgconn.CommandTag, error)
	UpdateWithRetry(ctx context.Context, id uuid.UUID, mutate func(*models.Property) error) error
	SoftDelete(ctx context.Context, id uuid.UUID) error

	// ListActive returns non-deleted properties, newest first.
	ListActive(ctx context.Context) ([]*models.Property, error)
}

/* ------------------------------------------------------------------
   Implementation
------------------------------------------------------------------ */

type propertyRepo struct {
	*BaseVersionedRepo[*models.Property]
	db DB
}

func NewPropertyRepository(db DB) PropertyRepository {
	r := &propertyRepo{db: db}
	selectStmt := baseSelectProperty() + " WHERE id=$1"
	r.BaseVersionedRepo = NewBaseRepo(db, selectStmt, scanProperty)
	return r
}

func (r *propertyRepo) Create(ctx context.Context, p *models.Property) error {
	_, err := r.db.Exec(ctx, `
        INSERT INTO properties (
            id, name, description, address, amenities, images, rules,
            is_active, total_spots, available_spots, status,
            created_at, updated_at, row_version
        ) VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10,$11, NOW(), NOW(), 1)
    `,
		p.ID,
		p.Name,
		p.Description,
		p.Address,
		p.Amenities,
		p.Images,
		p.Rules,
		p.IsActive,
		p.TotalSpots,
		p.AvailableSpots,
		models.RecordActive,
	)
	return err
}

func (r *propertyRepo) GetByID(ctx context.Context, id uuid.UUID) (*models.Property, error) {
	return r.BaseVersionedRepo.GetByID(ctx, id.String())
}

func (r *propertyRepo) GetByName(ctx context.Context, name string) (*models.Property, error) {
	row := r.db.QueryRow(ctx, baseSelectProperty()+" WHERE name=$1 AND status=$2", name, models.RecordActive)
	return scanProperty(row)
}

func (r *propertyRepo) Update(ctx context.Context, p *models.Property) error {
	_, err := r.update(ctx, p, false, 0)
	return err
}

func (r *propertyRepo) UpdateIfVersion(ctx context.Context, p *models.Property, expected int64) (pgconn.CommandTag, error) {
	return r.update(ctx, p, true, expected)
}

func (r *propertyRepo) UpdateWithRetry(ctx context.Context, id uuid.UUID, mutate func(*models.Property) error) error {
	return r.BaseVersionedRepo.UpdateWithRetry(ctx, id.String(), mutate, r.UpdateIfVersion)
}

func (r *propertyRepo) update(ctx context.Context, p *models.Property, check bool, expected int64) (pgconn.CommandTag, error) {
	sql := `
        UPDATE properties SET
            name=$1, description=$2, address=$3, amenities=$4, images=$5,
            rules=$6, is_active=$7, total_spots=$8, available_spots=$9,
            updated_at=NOW()
    `
	args := []any{
		p.Name, p.Description, p.Address, p.Amenities, p.Images,
		p.Rules, p.IsActive, p.TotalSpots, p.AvailableSpots,
	}
	if check {
		sql += `, row_version=row_version+1 WHERE id=$10 AND row_version=$11`
		args = append(args, p.ID, expected)
	} else {
		sql += ` WHERE id=$10`
		args = append(args, p.ID)
	}

	return r.db.Exec(ctx, sql, args...)
}

// SoftDelete flags the property deleted; the row is kept.
func (r *propertyRepo) SoftDelete(ctx context.Context, id uuid.UUID) error {
	tag, err := r.db.Exec(ctx, `
        UPDATE properties SET status=$1, deleted_at=NOW(), updated_at=NOW()
        WHERE id=$2 AND status=$3
    `, models.RecordDeleted, id, models.RecordActive)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return pgx.ErrNoRows
	}
	return nil
}

func (r *propertyRepo) ListActive(ctx context.Context) ([]*models.Property, error) {
	rows, err := r.db.Query(ctx, baseSelectProperty()+" WHERE status=$1 ORDER BY created_at DESC", models.RecordActive)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []*models.Property
	for rows.Next() {
		p, err := scanProperty(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, p)
	}
	return out, rows.Err()
}

func baseSelectProperty() string {
	return `
        SELECT
            id, name, description, address, amenities, images, rules,
            is_active, total_spots, available_spots, status,
            created_at, updated_at, deleted_at, row_version
        FROM properties
    `
}

func scanProperty(row pgx.Row) (*models.Property, error) {
	var p models.Property
	err := row.Scan(
		&p.ID,
		&p.Name,
		&p.Description,
		&p.Address,
		&p.Amenities,
		&p.Images,
		&p.Rules,
		&p.IsActive,
		&p.TotalSpots,
		&p.AvailableSpots,
		&p.Status,
		&p.CreatedAt,
		&p.UpdatedAt,
		&p.DeletedAt,
		&p.RowVersion,
	)
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, nil
		}
		return nil, err
	}
	return &p, nil
}
