package repositories

import (
	"context"

	"github.com/google/uuid"
	"github.com/jackc/pgconn"
	"github.com/jackc/pgx/v4"

	"github.com/japetto/rental-portal-managment-backend-sub002/internal/models"
)

type TenantRepository interface {
	Create(ctx context.Context, t *models.Tenant) error

	GetByID(ctx context.Context, id uuid.UUID) (*models.Tenant, error)
	GetByEmail(ctx context.Context, email string) (*models.Tenant, error)
	GetByInviteToken(ctx context.Context, token string) (*models.Tenant, error)

	Update(ctx context.Context, t *models.Tenant) error
	UpdateIfVersion(ctx context.Context, t *models.Tenant, expected int64) (pgconn.CommandTag, error)
	UpdateWithRetry(ctx context.Context, id uuid.UUID, mutate func(*models.Tenant) error) error
	SoftDelete(ctx context.Context, id uuid.UUID) error

	ListActive(ctx context.Context) ([]*models.Tenant, error)
	ListByPropertyID(ctx context.Context, propertyID uuid.UUID) ([]*models.Tenant, error)
}

type tenantRepo struct {
	*BaseVersionedRepo[*models.Tenant]
	db DB
}

func NewTenantRepository(db DB) TenantRepository {
	r := &tenantRepo{db: db}
	selectStmt := baseSelectTenant() + " WHERE id=$1"
	r.BaseVersionedRepo = NewBaseRepo(db, selectStmt, scanTenant)
	return r
}

func (r *tenantRepo) Create(ctx context.Context, t *models.Tenant) error {
	_, err := r.db.Exec(ctx, `
        INSERT INTO tenants (
            id, email, phone_number, first_name, last_name,
            property_id, spot_number, invite_status, invite_token,
            status, created_at, updated_at, row_version
        ) VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10, NOW(), NOW(), 1)
    `,
		t.ID, t.Email, t.PhoneNumber, t.FirstName, t.LastName,
		t.PropertyID, t.SpotNumber, t.InviteStatus, t.InviteToken,
		models.RecordActive,
	)
	return err
}

func (r *tenantRepo) GetByID(ctx context.Context, id uuid.UUID) (*models.Tenant, error) {
	return r.BaseVersionedRepo.GetByID(ctx, id.String())
}

func (r *tenantRepo) GetByEmail(ctx context.Context, email string) (*models.Tenant, error) {
	row := r.db.QueryRow(ctx, baseSelectTenant()+" WHERE email=$1 AND status=$2", email, models.RecordActive)
	return scanTenant(row)
}

func (r *tenantRepo) GetByInviteToken(ctx context.Context, token string) (*models.Tenant, error) {
	row := r.db.QueryRow(ctx, baseSelectTenant()+" WHERE invite_token=$1 AND status=$2 LIMIT 1", token, models.RecordActive)
	return scanTenant(row)
}

func (r *tenantRepo) Update(ctx context.Context, t *models.Tenant) error {
	_, err := r.update(ctx, t, false, 0)
	return err
}

func (r *tenantRepo) UpdateIfVersion(ctx context.Context, t *models.Tenant, expected int64) (pgconn.CommandTag, error) {
	return r.update(ctx, t, true, expected)
}

func (r *tenantRepo) UpdateWithRetry(ctx context.Context, id uuid.UUID, mutate func(*models.Tenant) error) error {
	return r.BaseVersionedRepo.UpdateWithRetry(ctx, id.String(), mutate, r.UpdateIfVersion)
}

func (r *tenantRepo) update(ctx context.Context, t *models.Tenant, check bool, expected int64) (pgconn.CommandTag, error) {
	sql := `
        UPDATE tenants SET
            email=$1, phone_number=$2, first_name=$3, last_name=$4,
            property_id=$5, spot_number=$6, invite_status=$7, invite_token=$8,
            updated_at=NOW()
    `
	args := []any{
		t.Email, t.PhoneNumber, t.FirstName, t.LastName,
		t.PropertyID, t.SpotNumber, t.InviteStatus, t.InviteToken,
	}
	if check {
		sql += `, row_version=row_version+1 WHERE id=$9 AND row_version=$10`
		args = append(args, t.ID, expected)
	} else {
		sql += ` WHERE id=$9`
		args = append(args, t.ID)
	}

	return r.db.Exec(ctx, sql, args...)
}

func (r *tenantRepo) SoftDelete(ctx context.Context, id uuid.UUID) error {
	tag, err := r.db.Exec(ctx, `
        UPDATE tenants SET status=$1, deleted_at=NOW(), updated_at=NOW()
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

func (r *tenantRepo) ListActive(ctx context.Context) ([]*models.Tenant, error) {
	return r.list(ctx, baseSelectTenant()+" WHERE status=$1 ORDER BY created_at DESC", models.RecordActive)
}

func (r *tenantRepo) ListByPropertyID(ctx context.Context, propertyID uuid.UUID) ([]*models.Tenant, error) {
	return r.list(ctx, baseSelectTenant()+" WHERE property_id=$1 AND status=$2 ORDER BY created_at DESC", propertyID, models.RecordActive)
}

func (r *tenantRepo) list(ctx context.Context, sql string, args ...any) ([]*models.Tenant, error) {
	rows, err := r.db.Query(ctx, sql, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []*models.Tenant
	for rows.Next() {
		t, err := scanTenant(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, t)
	}
	return out, rows.Err()
}

func baseSelectTenant() string {
	return `
        SELECT
            id, email, phone_number, first_name, last_name,
            property_id, spot_number, invite_status, invite_token,
            status, created_at, updated_at, deleted_at, row_version
        FROM tenants
    `
}

func scanTenant(row pgx.Row) (*models.Tenant, error) {
	var t models.Tenant
	err := row.Scan(
		&t.ID,
		&t.Email,
		&t.PhoneNumber,
		&t.FirstName,
		&t.LastName,
		&t.PropertyID,
		&t.SpotNumber,
		&t.InviteStatus,
		&t.InviteToken,
		&t.Status,
		&t.CreatedAt,
		&t.UpdatedAt,
		&t.DeletedAt,
		&t.RowVersion,
	)
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, nil
		}
		return nil, err
	}
	return &t, nil
}
