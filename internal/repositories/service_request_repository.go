package repositories

import (
	"context"

	"github.com/google/uuid"
	"github.com/jackc/pgconn"
	"github.com/jackc/pgx/v4"

	"github.com/japetto/rental-portal-managment-backend-sub002/internal/models"
)

type ServiceRequestRepository interface {
	Create(ctx context.Context, sr *models.ServiceRequest) error

	GetByID(ctx context.Context, id uuid.UUID) (*models.ServiceRequest, error)

	UpdateIfVersion(ctx context.Context, sr *models.ServiceRequest, expected int64) (pgconn.CommandTag, error)
	UpdateWithRetry(ctx context.Context, id uuid.UUID, mutate func(*models.ServiceRequest) error) error
	SoftDelete(ctx context.Context, id uuid.UUID) error

	ListActive(ctx context.Context) ([]*models.ServiceRequest, error)
	ListByTenantID(ctx context.Context, tenantID uuid.UUID) ([]*models.ServiceRequest, error)
	ListByPropertyID(ctx context.Context, propertyID uuid.UUID) ([]*models.ServiceRequest, error)
}

type serviceRequestRepo struct {
	*BaseVersionedRepo[*models.ServiceRequest]
	db DB
}

func NewServiceRequestRepository(db DB) ServiceRequestRepository {
	r := &serviceRequestRepo{db: db}
	selectStmt := baseSelectServiceRequest() + " WHERE id=$1"
	r.BaseVersionedRepo = NewBaseRepo(db, selectStmt, scanServiceRequest)
	return r
}

func (r *serviceRequestRepo) Create(ctx context.Context, sr *models.ServiceRequest) error {
	_, err := r.db.Exec(ctx, `
        INSERT INTO service_requests (
            id, property_id, tenant_id, category, description,
            request_status, resolution_note, status,
            created_at, updated_at, row_version
        ) VALUES ($1,$2,$3,$4,$5,$6,$7,$8, NOW(), NOW(), 1)
    `,
		sr.ID, sr.PropertyID, sr.TenantID, sr.Category, sr.Description,
		sr.RequestStatus, sr.ResolutionNote, models.RecordActive,
	)
	return err
}

func (r *serviceRequestRepo) GetByID(ctx context.Context, id uuid.UUID) (*models.ServiceRequest, error) {
	return r.BaseVersionedRepo.GetByID(ctx, id.String())
}

func (r *serviceRequestRepo) UpdateIfVersion(ctx context.Context, sr *models.ServiceRequest, expected int64) (pgconn.CommandTag, error) {
	return r.db.Exec(ctx, `
        UPDATE service_requests SET
            category=$1, description=$2, request_status=$3, resolution_note=$4,
            updated_at=NOW(), row_version=row_version+1
        WHERE id=$5 AND row_version=$6
    `,
		sr.Category, sr.Description, sr.RequestStatus, sr.ResolutionNote,
		sr.ID, expected,
	)
}

func (r *serviceRequestRepo) UpdateWithRetry(ctx context.Context, id uuid.UUID, mutate func(*models.ServiceRequest) error) error {
	return r.BaseVersionedRepo.UpdateWithRetry(ctx, id.String(), mutate, r.UpdateIfVersion)
}

func (r *serviceRequestRepo) SoftDelete(ctx context.Context, id uuid.UUID) error {
	tag, err := r.db.Exec(ctx, `
        UPDATE service_requests SET status=$1, deleted_at=NOW(), updated_at=NOW()
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

func (r *serviceRequestRepo) ListActive(ctx context.Context) ([]*models.ServiceRequest, error) {
	return r.list(ctx, baseSelectServiceRequest()+" WHERE status=$1 ORDER BY created_at DESC", models.RecordActive)
}

func (r *serviceRequestRepo) ListByTenantID(ctx context.Context, tenantID uuid.UUID) ([]*models.ServiceRequest, error) {
	return r.list(ctx, baseSelectServiceRequest()+" WHERE tenant_id=$1 AND status=$2 ORDER BY created_at DESC", tenantID, models.RecordActive)
}

func (r *serviceRequestRepo) ListByPropertyID(ctx context.Context, propertyID uuid.UUID) ([]*models.ServiceRequest, error) {
	return r.list(ctx, baseSelectServiceRequest()+" WHERE property_id=$1 AND status=$2 ORDER BY created_at DESC", propertyID, models.RecordActive)
}

func (r *serviceRequestRepo) list(ctx context.Context, sql string, args ...any) ([]*models.ServiceRequest, error) {
	rows, err := r.db.Query(ctx, sql, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []*models.ServiceRequest
	for rows.Next() {
		sr, err := scanServiceRequest(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, sr)
	}
	return out, rows.Err()
}

func baseSelectServiceRequest() string {
	return `
        SELECT
            id, property_id, tenant_id, category, description,
            request_status, resolution_note, status,
            created_at, updated_at, deleted_at, row_version
        FROM service_requests
    `
}

func scanServiceRequest(row pgx.Row) (*models.ServiceRequest, error) {
	var sr models.ServiceRequest
	err := row.Scan(
		&sr.ID,
		&sr.PropertyID,
		&sr.TenantID,
		&sr.Category,
		&sr.Description,
		&sr.RequestStatus,
		&sr.ResolutionNote,
		&sr.Status,
		&sr.CreatedAt,
		&sr.UpdatedAt,
		&sr.DeletedAt,
		&sr.RowVersion,
	)
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, nil
		}
		return nil, err
	}
	return &sr, nil
}
