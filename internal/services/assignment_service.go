package services

import (
	"context"

	"github.com/google/uuid"

	"github.com/japetto/rental-portal-managment-backend-sub002/internal/dtos"
	"github.com/japetto/rental-portal-managment-backend-sub002/internal/models"
	"github.com/japetto/rental-portal-managment-backend-sub002/internal/repositories"
)

// AssignmentService computes which payment account(s) apply to each
// property. All three reads are pure functions of the current property
// and account collections; they hold no state and perform no writes.
type AssignmentService struct {
	propRepo repositories.PropertyRepository
	acctRepo repositories.PaymentAccountRepository
}

func NewAssignmentService(propRepo repositories.PropertyRepository, acctRepo repositories.PaymentAccountRepository) *AssignmentService {
	return &AssignmentService{propRepo: propRepo, acctRepo: acctRepo}
}

// ListPropertiesWithAccounts returns every non-deleted property together
// with its dedicated account (if one exists) and a has_account flag.
func (s *AssignmentService) ListPropertiesWithAccounts(ctx context.Context) ([]dtos.PropertyWithAccount, error) {
	props, accounts, err := s.load(ctx)
	if err != nil {
		return nil, err
	}

	dedicated := dedicatedAccountMap(accounts)

	out := make([]dtos.PropertyWithAccount, 0, len(props))
	for _, p := range props {
		entry := dtos.PropertyWithAccount{Property: dtos.NewPropertyFromModel(p)}
		if acct, ok := dedicated[p.ID]; ok {
			view := dtos.NewResolvedAccountFromModel(acct, "")
			entry.Account = &view
			entry.HasAccount = true
		}
		out = append(out, entry)
	}
	return out, nil
}

// ListAvailableAccounts returns, per property, the dedicated account plus
// every global account that is active, verified and not deleted. The
// global list is call-scoped: it is identical for every property in the
// response, because any property may fall back to any verified active
// global account.
func (s *AssignmentService) ListAvailableAccounts(ctx context.Context) ([]dtos.PropertyAvailableAccounts, error) {
	props, accounts, err := s.load(ctx)
	if err != nil {
		return nil, err
	}

	dedicated := dedicatedAccountMap(accounts)

	globals := make([]dtos.ResolvedAccount, 0)
	for _, a := range accounts {
		if a.IsGlobal && a.IsActive && a.IsVerified {
			globals = append(globals, dtos.NewResolvedAccountFromModel(a, dtos.ScopeGlobal))
		}
	}

	out := make([]dtos.PropertyAvailableAccounts, 0, len(props))
	for _, p := range props {
		entry := dtos.PropertyAvailableAccounts{
			Property:          dtos.NewPropertyFromModel(p),
			GlobalAccounts:    globals,
			HasGlobalAccounts: len(globals) > 0,
		}
		if acct, ok := dedicated[p.ID]; ok {
			view := dtos.NewResolvedAccountFromModel(acct, dtos.ScopePropertySpecific)
			entry.DedicatedAccount = &view
			entry.HasDedicatedAccount = true
		}
		entry.TotalAvailableAccounts = len(globals)
		if entry.HasDedicatedAccount {
			entry.TotalAvailableAccounts++
		}
		out = append(out, entry)
	}
	return out, nil
}

// ListPropertiesWithoutAccounts returns the properties whose id appears
// in no non-deleted account's association list.
func (s *AssignmentService) ListPropertiesWithoutAccounts(ctx context.Context) ([]dtos.PropertyWithAccount, error) {
	props, accounts, err := s.load(ctx)
	if err != nil {
		return nil, err
	}

	out := make([]dtos.PropertyWithAccount, 0)
	for _, p := range props {
		covered := false
		for _, a := range accounts {
			if a.Covers(p.ID) {
				covered = true
				break
			}
		}
		if covered {
			continue
		}
		out = append(out, dtos.PropertyWithAccount{Property: dtos.NewPropertyFromModel(p)})
	}
	return out, nil
}

// load fetches the two collections the resolver works from. Read errors
// propagate unmodified; no partial result is returned.
func (s *AssignmentService) load(ctx context.Context) ([]*models.Property, []*models.PaymentAccount, error) {
	props, err := s.propRepo.ListActive(ctx)
	if err != nil {
		return nil, nil, err
	}
	accounts, err := s.acctRepo.ListActive(ctx)
	if err != nil {
		return nil, nil, err
	}
	return props, accounts, nil
}

// dedicatedAccountMap maps each property id to its dedicated account.
// Accounts arrive newest-first and the first account seen per property
// wins, so when two accounts illegally reference the same property the
// most recently created one resolves as dedicated.
func dedicatedAccountMap(accounts []*models.PaymentAccount) map[uuid.UUID]*models.PaymentAccount {
	m := make(map[uuid.UUID]*models.PaymentAccount)
	for _, a := range accounts {
		for _, pid := range a.PropertyIDs {
			if _, taken := m[pid]; !taken {
				m[pid] = a
			}
		}
	}
	return m
}
