package repositories

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgconn"
	"github.com/jackc/pgtype"
	"github.com/jackc/pgx/v4"

	"github.com/japetto/rental-portal-managment-backend-sub002/internal/models"
	"github.com/japetto/rental-portal-managment-backend-sub002/internal/utils"
)

/* ------------------------------------------------------------------
   Public interface
------------------------------------------------------------------ */

type PaymentAccountRepository interface {
	Create(ctx context.Context, a *models.PaymentAccount) error

	GetByID(ctx context.Context, id uuid.UUID) (*models.PaymentAccount, error)
	GetByStripeAccountID(ctx context.Context, acct string) (*models.PaymentAccount, error)

	// GetDefault returns the non-deleted account flagged default,
	// excluding excludeID (pass uuid.Nil to exclude nothing).
	GetDefault(ctx context.Context, excludeID uuid.UUID) (*models.PaymentAccount, error)

	// GetDecryptedSecretKey is the only read path that exposes the
	// secret credential.
	GetDecryptedSecretKey(ctx context.Context, id uuid.UUID) (string, error)

	Update(ctx context.Context, a *models.PaymentAccount) error
	UpdateIfVersion(ctx context.Context, a *models.PaymentAccount, expected int64) (pgconn.CommandTag, error)
	UpdateWithRetry(ctx context.Context, id uuid.UUID, mutate func(*models.PaymentAccount) error) error
	SoftDelete(ctx context.Context, id uuid.UUID) error

	// ListActive returns non-deleted accounts, newest first. The secret
	// credential is never part of the projection.
	ListActive(ctx context.Context) ([]*models.PaymentAccount, error)
}

/* ------------------------------------------------------------------
   Implementation
------------------------------------------------------------------ */

type paymentAccountRepo struct {
	*BaseVersionedRepo[*models.PaymentAccount]
	db     DB
	encKey []byte
}

func NewPaymentAccountRepository(db DB, key []byte) PaymentAccountRepository {
	r := &paymentAccountRepo{db: db, encKey: key}
	selectStmt := baseSelectPaymentAccount() + " WHERE id=$1"
	r.BaseVersionedRepo = NewBaseRepo(db, selectStmt, scanPaymentAccount)
	return r
}

func (r *paymentAccountRepo) Create(ctx context.Context, a *models.PaymentAccount) error {
	var encSecret string
	if a.StripeSecretKey != "" {
		enc, err := utils.Encrypt(r.encKey, a.StripeSecretKey)
		if err != nil {
			return err
		}
		encSecret = enc
	}

	propertyIDs, err := uuidArray(a.PropertyIDs)
	if err != nil {
		return err
	}
	metadata, err := metadataJSONB(a.Metadata)
	if err != nil {
		return err
	}

	_, err = r.db.Exec(ctx, `
        INSERT INTO payment_accounts (
            id, name, description, property_ids,
            stripe_account_id, stripe_secret_key, kind,
            is_active, is_verified, is_global, is_default,
            webhook_id, webhook_url, webhook_status, webhook_created_at,
            metadata, status, created_at, updated_at, row_version
        ) VALUES (
            $1,$2,$3,$4,
            $5,$6,$7,
            $8,$9,$10,$11,
            $12,$13,$14,$15,
            $16,$17, NOW(), NOW(), 1
        )
    `,
		a.ID, a.Name, a.Description, propertyIDs,
		a.StripeAccountID, encSecret, a.Kind,
		a.IsActive, a.IsVerified, a.IsGlobal, a.IsDefault,
		a.WebhookID, a.WebhookURL, a.WebhookStatus, a.WebhookCreatedAt,
		metadata, models.RecordActive,
	)
	return err
}

func (r *paymentAccountRepo) GetByID(ctx context.Context, id uuid.UUID) (*models.PaymentAccount, error) {
	return r.BaseVersionedRepo.GetByID(ctx, id.String())
}

func (r *paymentAccountRepo) GetByStripeAccountID(ctx context.Context, acct string) (*models.PaymentAccount, error) {
	row := r.db.QueryRow(ctx, baseSelectPaymentAccount()+" WHERE stripe_account_id=$1 AND status=$2", acct, models.RecordActive)
	return scanPaymentAccount(row)
}

func (r *paymentAccountRepo) GetDefault(ctx context.Context, excludeID uuid.UUID) (*models.PaymentAccount, error) {
	row := r.db.QueryRow(ctx,
		baseSelectPaymentAccount()+" WHERE is_default=TRUE AND status=$1 AND id<>$2 LIMIT 1",
		models.RecordActive, excludeID)
	return scanPaymentAccount(row)
}

func (r *paymentAccountRepo) GetDecryptedSecretKey(ctx context.Context, id uuid.UUID) (string, error) {
	var encSecret string
	err := r.db.QueryRow(ctx, `SELECT stripe_secret_key FROM payment_accounts WHERE id=$1`, id).Scan(&encSecret)
	if err != nil {
		return "", err
	}
	if encSecret == "" {
		return "", nil
	}
	return utils.Decrypt(r.encKey, encSecret)
}

func (r *paymentAccountRepo) Update(ctx context.Context, a *models.PaymentAccount) error {
	_, err := r.update(ctx, a, false, 0)
	return err
}

func (r *paymentAccountRepo) UpdateIfVersion(ctx context.Context, a *models.PaymentAccount, expected int64) (pgconn.CommandTag, error) {
	return r.update(ctx, a, true, expected)
}

func (r *paymentAccountRepo) UpdateWithRetry(ctx context.Context, id uuid.UUID, mutate func(*models.PaymentAccount) error) error {
	return r.BaseVersionedRepo.UpdateWithRetry(ctx, id.String(), mutate, r.UpdateIfVersion)
}

func (r *paymentAccountRepo) update(ctx context.Context, a *models.PaymentAccount, check bool, expected int64) (pgconn.CommandTag, error) {
	propertyIDs, err := uuidArray(a.PropertyIDs)
	if err != nil {
		return nil, err
	}
	metadata, err := metadataJSONB(a.Metadata)
	if err != nil {
		return nil, err
	}

	sql := `
        UPDATE payment_accounts SET
            name=$1, description=$2, property_ids=$3, stripe_account_id=$4,
            kind=$5, is_active=$6, is_verified=$7, is_global=$8, is_default=$9,
            webhook_id=$10, webhook_url=$11, webhook_status=$12, webhook_created_at=$13,
            metadata=$14, updated_at=NOW()
    `
	args := []any{
		a.Name, a.Description, propertyIDs, a.StripeAccountID,
		a.Kind, a.IsActive, a.IsVerified, a.IsGlobal, a.IsDefault,
		a.WebhookID, a.WebhookURL, a.WebhookStatus, a.WebhookCreatedAt,
		metadata,
	}

	// The secret key only changes when a replacement was supplied.
	if a.StripeSecretKey != "" {
		enc, encErr := utils.Encrypt(r.encKey, a.StripeSecretKey)
		if encErr != nil {
			return nil, encErr
		}
		sql += `, stripe_secret_key=$15`
		args = append(args, enc)
	}

	if check {
		sql += fmt.Sprintf(`, row_version=row_version+1 WHERE id=$%d AND row_version=$%d`, len(args)+1, len(args)+2)
		args = append(args, a.ID, expected)
	} else {
		sql += fmt.Sprintf(` WHERE id=$%d`, len(args)+1)
		args = append(args, a.ID)
	}

	return r.db.Exec(ctx, sql, args...)
}

// SoftDelete flags the account deleted; the row is kept.
func (r *paymentAccountRepo) SoftDelete(ctx context.Context, id uuid.UUID) error {
	tag, err := r.db.Exec(ctx, `
        UPDATE payment_accounts SET status=$1, deleted_at=NOW(), updated_at=NOW()
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

func (r *paymentAccountRepo) ListActive(ctx context.Context) ([]*models.PaymentAccount, error) {
	rows, err := r.db.Query(ctx, baseSelectPaymentAccount()+" WHERE status=$1 ORDER BY created_at DESC", models.RecordActive)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []*models.PaymentAccount
	for rows.Next() {
		a, err := scanPaymentAccount(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, a)
	}
	return out, rows.Err()
}

func baseSelectPaymentAccount() string {
	return `
        SELECT
            id, name, description, property_ids, stripe_account_id, kind,
            is_active, is_verified, is_global, is_default,
            webhook_id, webhook_url, webhook_status, webhook_created_at,
            metadata, status, created_at, updated_at, deleted_at, row_version
        FROM payment_accounts
    `
}

func scanPaymentAccount(row pgx.Row) (*models.PaymentAccount, error) {
	var (
		a           models.PaymentAccount
		propertyIDs pgtype.UUIDArray
		metadata    pgtype.JSONB
	)
	err := row.Scan(
		&a.ID,
		&a.Name,
		&a.Description,
		&propertyIDs,
		&a.StripeAccountID,
		&a.Kind,
		&a.IsActive,
		&a.IsVerified,
		&a.IsGlobal,
		&a.IsDefault,
		&a.WebhookID,
		&a.WebhookURL,
		&a.WebhookStatus,
		&a.WebhookCreatedAt,
		&metadata,
		&a.Status,
		&a.CreatedAt,
		&a.UpdatedAt,
		&a.DeletedAt,
		&a.RowVersion,
	)
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, nil
		}
		return nil, err
	}

	if propertyIDs.Status == pgtype.Present {
		a.PropertyIDs = make([]uuid.UUID, 0, len(propertyIDs.Elements))
		for _, el := range propertyIDs.Elements {
			if el.Status == pgtype.Present {
				a.PropertyIDs = append(a.PropertyIDs, uuid.UUID(el.Bytes))
			}
		}
	}
	if metadata.Status == pgtype.Present && len(metadata.Bytes) > 0 {
		if err := json.Unmarshal(metadata.Bytes, &a.Metadata); err != nil {
			return nil, err
		}
	}

	return &a, nil
}

// ------------------------- encoding helpers -------------------------

func uuidArray(ids []uuid.UUID) (*pgtype.UUIDArray, error) {
	strs := make([]string, len(ids))
	for i, id := range ids {
		strs[i] = id.String()
	}
	arr := &pgtype.UUIDArray{}
	if err := arr.Set(strs); err != nil {
		return nil, err
	}
	return arr, nil
}

func metadataJSONB(m map[string]string) (*pgtype.JSONB, error) {
	j := &pgtype.JSONB{}
	if m == nil {
		j.Status = pgtype.Null
		return j, nil
	}
	raw, err := json.Marshal(m)
	if err != nil {
		return nil, err
	}
	if err := j.Set(raw); err != nil {
		return nil, err
	}
	return j, nil
}
