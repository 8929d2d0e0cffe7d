package services

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgconn"
	"github.com/jackc/pgx/v4"

	"github.com/japetto/rental-portal-managment-backend-sub002/internal/models"
)

// In-memory repository fakes. Insertion order is preserved and ListActive
// returns newest first, matching the SQL implementations.

type fakePropertyRepo struct {
	mu    sync.Mutex
	props []*models.Property

	listErr error
}

func newFakePropertyRepo() *fakePropertyRepo {
	return &fakePropertyRepo{}
}

func (r *fakePropertyRepo) Create(_ context.Context, p *models.Property) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	now := time.Now().UTC()
	p.CreatedAt = now
	p.UpdatedAt = now
	p.RowVersion = 1
	r.props = append(r.props, p)
	return nil
}

func (r *fakePropertyRepo) GetByID(_ context.Context, id uuid.UUID) (*models.Property, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, p := range r.props {
		if p.ID == id {
			return p, nil
		}
	}
	return nil, nil
}

func (r *fakePropertyRepo) GetByName(_ context.Context, name string) (*models.Property, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, p := range r.props {
		if p.Name == name {
			return p, nil
		}
	}
	return nil, nil
}

func (r *fakePropertyRepo) Update(_ context.Context, p *models.Property) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for i, stored := range r.props {
		if stored.ID == p.ID {
			r.props[i] = p
			return nil
		}
	}
	return pgx.ErrNoRows
}

func (r *fakePropertyRepo) UpdateIfVersion(ctx context.Context, p *models.Property, expected int64) (pgconn.CommandTag, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for i, stored := range r.props {
		if stored.ID == p.ID && stored.RowVersion == expected {
			p.RowVersion = expected + 1
			r.props[i] = p
			return pgconn.CommandTag("UPDATE 1"), nil
		}
	}
	return pgconn.CommandTag("UPDATE 0"), nil
}

func (r *fakePropertyRepo) UpdateWithRetry(ctx context.Context, id uuid.UUID, mutate func(*models.Property) error) error {
	p, err := r.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if p == nil {
		return pgx.ErrNoRows
	}
	if err := mutate(p); err != nil {
		return err
	}
	r.mu.Lock()
	p.RowVersion++
	p.UpdatedAt = time.Now().UTC()
	r.mu.Unlock()
	return nil
}

func (r *fakePropertyRepo) SoftDelete(_ context.Context, id uuid.UUID) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, p := range r.props {
		if p.ID == id && p.Status != models.RecordDeleted {
			now := time.Now().UTC()
			p.Status = models.RecordDeleted
			p.DeletedAt = &now
			return nil
		}
	}
	return pgx.ErrNoRows
}

func (r *fakePropertyRepo) ListActive(_ context.Context) ([]*models.Property, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.listErr != nil {
		return nil, r.listErr
	}
	out := make([]*models.Property, 0, len(r.props))
	for i := len(r.props) - 1; i >= 0; i-- {
		if r.props[i].Status != models.RecordDeleted {
			out = append(out, r.props[i])
		}
	}
	return out, nil
}

type fakePaymentAccountRepo struct {
	mu       sync.Mutex
	accounts []*models.PaymentAccount

	createErr error
	listErr   error
}

func newFakePaymentAccountRepo() *fakePaymentAccountRepo {
	return &fakePaymentAccountRepo{}
}

func (r *fakePaymentAccountRepo) Create(_ context.Context, a *models.PaymentAccount) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.createErr != nil {
		return r.createErr
	}
	now := time.Now().UTC()
	a.CreatedAt = now
	a.UpdatedAt = now
	a.RowVersion = 1
	r.accounts = append(r.accounts, a)
	return nil
}

func (r *fakePaymentAccountRepo) GetByID(_ context.Context, id uuid.UUID) (*models.PaymentAccount, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, a := range r.accounts {
		if a.ID == id {
			return a, nil
		}
	}
	return nil, nil
}

func (r *fakePaymentAccountRepo) GetByStripeAccountID(_ context.Context, acct string) (*models.PaymentAccount, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, a := range r.accounts {
		if a.StripeAccountID != nil && *a.StripeAccountID == acct && a.Status != models.RecordDeleted {
			return a, nil
		}
	}
	return nil, nil
}

func (r *fakePaymentAccountRepo) GetDefault(_ context.Context, excludeID uuid.UUID) (*models.PaymentAccount, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, a := range r.accounts {
		if a.IsDefault && a.Status != models.RecordDeleted && a.ID != excludeID {
			return a, nil
		}
	}
	return nil, nil
}

func (r *fakePaymentAccountRepo) GetDecryptedSecretKey(_ context.Context, id uuid.UUID) (string, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, a := range r.accounts {
		if a.ID == id {
			return a.StripeSecretKey, nil
		}
	}
	return "", pgx.ErrNoRows
}

func (r *fakePaymentAccountRepo) Update(_ context.Context, a *models.PaymentAccount) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for i, stored := range r.accounts {
		if stored.ID == a.ID {
			r.accounts[i] = a
			return nil
		}
	}
	return pgx.ErrNoRows
}

func (r *fakePaymentAccountRepo) UpdateIfVersion(ctx context.Context, a *models.PaymentAccount, expected int64) (pgconn.CommandTag, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for i, stored := range r.accounts {
		if stored.ID == a.ID && stored.RowVersion == expected {
			a.RowVersion = expected + 1
			r.accounts[i] = a
			return pgconn.CommandTag("UPDATE 1"), nil
		}
	}
	return pgconn.CommandTag("UPDATE 0"), nil
}

func (r *fakePaymentAccountRepo) UpdateWithRetry(ctx context.Context, id uuid.UUID, mutate func(*models.PaymentAccount) error) error {
	a, err := r.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if a == nil {
		return pgx.ErrNoRows
	}
	if err := mutate(a); err != nil {
		return err
	}
	r.mu.Lock()
	a.RowVersion++
	a.UpdatedAt = time.Now().UTC()
	r.mu.Unlock()
	return nil
}

func (r *fakePaymentAccountRepo) SoftDelete(_ context.Context, id uuid.UUID) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, a := range r.accounts {
		if a.ID == id && a.Status != models.RecordDeleted {
			now := time.Now().UTC()
			a.Status = models.RecordDeleted
			a.DeletedAt = &now
			return nil
		}
	}
	return pgx.ErrNoRows
}

func (r *fakePaymentAccountRepo) ListActive(_ context.Context) ([]*models.PaymentAccount, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.listErr != nil {
		return nil, r.listErr
	}
	out := make([]*models.PaymentAccount, 0, len(r.accounts))
	for i := len(r.accounts) - 1; i >= 0; i-- {
		if r.accounts[i].Status != models.RecordDeleted {
			out = append(out, r.accounts[i])
		}
	}
	return out, nil
}

type fakeTenantRepo struct {
	mu      sync.Mutex
	tenants []*models.Tenant
}

func newFakeTenantRepo() *fakeTenantRepo {
	return &fakeTenantRepo{}
}

func (r *fakeTenantRepo) Create(_ context.Context, t *models.Tenant) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	now := time.Now().UTC()
	t.CreatedAt = now
	t.UpdatedAt = now
	t.RowVersion = 1
	r.tenants = append(r.tenants, t)
	return nil
}

func (r *fakeTenantRepo) GetByID(_ context.Context, id uuid.UUID) (*models.Tenant, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, t := range r.tenants {
		if t.ID == id {
			return t, nil
		}
	}
	return nil, nil
}

func (r *fakeTenantRepo) GetByEmail(_ context.Context, email string) (*models.Tenant, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, t := range r.tenants {
		if t.Email == email && t.Status != models.RecordDeleted {
			return t, nil
		}
	}
	return nil, nil
}

func (r *fakeTenantRepo) GetByInviteToken(_ context.Context, token string) (*models.Tenant, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, t := range r.tenants {
		if t.InviteToken == token && t.Status != models.RecordDeleted {
			return t, nil
		}
	}
	return nil, nil
}

func (r *fakeTenantRepo) Update(_ context.Context, t *models.Tenant) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for i, stored := range r.tenants {
		if stored.ID == t.ID {
			r.tenants[i] = t
			return nil
		}
	}
	return pgx.ErrNoRows
}

func (r *fakeTenantRepo) UpdateIfVersion(ctx context.Context, t *models.Tenant, expected int64) (pgconn.CommandTag, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for i, stored := range r.tenants {
		if stored.ID == t.ID && stored.RowVersion == expected {
			t.RowVersion = expected + 1
			r.tenants[i] = t
			return pgconn.CommandTag("UPDATE 1"), nil
		}
	}
	return pgconn.CommandTag("UPDATE 0"), nil
}

func (r *fakeTenantRepo) UpdateWithRetry(ctx context.Context, id uuid.UUID, mutate func(*models.Tenant) error) error {
	t, err := r.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if t == nil {
		return pgx.ErrNoRows
	}
	if err := mutate(t); err != nil {
		return err
	}
	r.mu.Lock()
	t.RowVersion++
	t.UpdatedAt = time.Now().UTC()
	r.mu.Unlock()
	return nil
}

func (r *fakeTenantRepo) SoftDelete(_ context.Context, id uuid.UUID) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, t := range r.tenants {
		if t.ID == id && t.Status != models.RecordDeleted {
			now := time.Now().UTC()
			t.Status = models.RecordDeleted
			t.DeletedAt = &now
			return nil
		}
	}
	return pgx.ErrNoRows
}

func (r *fakeTenantRepo) ListActive(_ context.Context) ([]*models.Tenant, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]*models.Tenant, 0, len(r.tenants))
	for i := len(r.tenants) - 1; i >= 0; i-- {
		if r.tenants[i].Status != models.RecordDeleted {
			out = append(out, r.tenants[i])
		}
	}
	return out, nil
}

func (r *fakeTenantRepo) ListByPropertyID(_ context.Context, propertyID uuid.UUID) ([]*models.Tenant, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]*models.Tenant, 0)
	for i := len(r.tenants) - 1; i >= 0; i-- {
		t := r.tenants[i]
		if t.PropertyID == propertyID && t.Status != models.RecordDeleted {
			out = append(out, t)
		}
	}
	return out, nil
}

type fakeServiceRequestRepo struct {
	mu       sync.Mutex
	requests []*models.ServiceRequest
}

func newFakeServiceRequestRepo() *fakeServiceRequestRepo {
	return &fakeServiceRequestRepo{}
}

func (r *fakeServiceRequestRepo) Create(_ context.Context, sr *models.ServiceRequest) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	now := time.Now().UTC()
	sr.CreatedAt = now
	sr.UpdatedAt = now
	sr.RowVersion = 1
	r.requests = append(r.requests, sr)
	return nil
}

func (r *fakeServiceRequestRepo) GetByID(_ context.Context, id uuid.UUID) (*models.ServiceRequest, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, sr := range r.requests {
		if sr.ID == id {
			return sr, nil
		}
	}
	return nil, nil
}

func (r *fakeServiceRequestRepo) UpdateIfVersion(ctx context.Context, sr *models.ServiceRequest, expected int64) (pgconn.CommandTag, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for i, stored := range r.requests {
		if stored.ID == sr.ID && stored.RowVersion == expected {
			sr.RowVersion = expected + 1
			r.requests[i] = sr
			return pgconn.CommandTag("UPDATE 1"), nil
		}
	}
	return pgconn.CommandTag("UPDATE 0"), nil
}

func (r *fakeServiceRequestRepo) UpdateWithRetry(ctx context.Context, id uuid.UUID, mutate func(*models.ServiceRequest) error) error {
	sr, err := r.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if sr == nil {
		return pgx.ErrNoRows
	}
	if err := mutate(sr); err != nil {
		return err
	}
	r.mu.Lock()
	sr.RowVersion++
	sr.UpdatedAt = time.Now().UTC()
	r.mu.Unlock()
	return nil
}

func (r *fakeServiceRequestRepo) SoftDelete(_ context.Context, id uuid.UUID) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, sr := range r.requests {
		if sr.ID == id && sr.Status != models.RecordDeleted {
			now := time.Now().UTC()
			sr.Status = models.RecordDeleted
			sr.DeletedAt = &now
			return nil
		}
	}
	return pgx.ErrNoRows
}

func (r *fakeServiceRequestRepo) ListActive(_ context.Context) ([]*models.ServiceRequest, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]*models.ServiceRequest, 0, len(r.requests))
	for i := len(r.requests) - 1; i >= 0; i-- {
		if r.requests[i].Status != models.RecordDeleted {
			out = append(out, r.requests[i])
		}
	}
	return out, nil
}

func (r *fakeServiceRequestRepo) ListByTenantID(_ context.Context, tenantID uuid.UUID) ([]*models.ServiceRequest, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]*models.ServiceRequest, 0)
	for i := len(r.requests) - 1; i >= 0; i-- {
		sr := r.requests[i]
		if sr.TenantID == tenantID && sr.Status != models.RecordDeleted {
			out = append(out, sr)
		}
	}
	return out, nil
}

func (r *fakeServiceRequestRepo) ListByPropertyID(_ context.Context, propertyID uuid.UUID) ([]*models.ServiceRequest, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]*models.ServiceRequest, 0)
	for i := len(r.requests) - 1; i >= 0; i-- {
		sr := r.requests[i]
		if sr.PropertyID == propertyID && sr.Status != models.RecordDeleted {
			out = append(out, sr)
		}
	}
	return out, nil
}

type fakeEmailSender struct {
	mu      sync.Mutex
	invites []string
	updates []string

	sendErr error
}

func (f *fakeEmailSender) SendTenantInvite(_ context.Context, toEmail, _, _, _ string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.sendErr != nil {
		return f.sendErr
	}
	f.invites = append(f.invites, toEmail)
	return nil
}

func (f *fakeEmailSender) SendServiceRequestUpdate(_ context.Context, toEmail, _, _, _ string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.sendErr != nil {
		return f.sendErr
	}
	f.updates = append(f.updates, toEmail)
	return nil
}
