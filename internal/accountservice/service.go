// Package accountservice manages business logic layer of accounts.
package accountservice

import (
	"context"
	"fmt"

	"github.com/go-petr/account-api/internal/domain"
	"github.com/go-petr/account-api/pkg/errorspkg"
	"github.com/go-petr/account-api/pkg/validatepkg"
)

// Repo provides data access layer interface needed by account service layer.
//
//go:generate mockgen -source service.go -destination service_mock.go -package accountservice
type Repo interface {
	Create(ctx context.Context, arg domain.CreateAccountParams) (domain.Account, error)
	Get(ctx context.Context, id int64) (domain.Account, error)
	List(ctx context.Context) ([]domain.Account, error)
	Update(ctx context.Context, id int64, arg domain.UpdateAccountParams) (domain.Account, error)
	Delete(ctx context.Context, id int64) error
	Ping(ctx context.Context) error
}

// Service facilitates account service layer logic.
type Service struct {
	repo Repo
}

// New returns account service struct to manage account bussines logic.
func New(ar Repo) *Service {
	return &Service{repo: ar}
}

// Create escapes the given fields and stores a new account.
//
// Lengths are checked on the escaped values, those are what the columns hold.
func (s *Service) Create(ctx context.Context, arg domain.CreateAccountParams) (domain.Account, error) {
	arg.Name = validatepkg.Sanitize(arg.Name)
	arg.Email = validatepkg.Sanitize(arg.Email)
	arg.Phone = validatepkg.SanitizePtr(arg.Phone)

	if err := checkLengths(&arg.Name, &arg.Email, arg.Phone); err != nil {
		return domain.Account{}, err
	}

	account, err := s.repo.Create(ctx, arg)
	if err != nil {
		return account, err
	}

	return account, nil
}

// Get returns account for the given account ID.
func (s *Service) Get(ctx context.Context, id int64) (domain.Account, error) {
	account, err := s.repo.Get(ctx, id)
	if err != nil {
		return account, err
	}

	return account, nil
}

// List returns all accounts.
func (s *Service) List(ctx context.Context) ([]domain.Account, error) {
	accounts, err := s.repo.List(ctx)
	if err != nil {
		return nil, err
	}

	return accounts, nil
}

// Update escapes the present fields and applies them to the account with the given ID.
func (s *Service) Update(ctx context.Context, id int64, arg domain.UpdateAccountParams) (domain.Account, error) {
	arg.Name.Value = validatepkg.SanitizePtr(arg.Name.Value)
	arg.Email.Value = validatepkg.SanitizePtr(arg.Email.Value)
	arg.Phone.Value = validatepkg.SanitizePtr(arg.Phone.Value)

	if err := checkLengths(arg.Name.Value, arg.Email.Value, arg.Phone.Value); err != nil {
		return domain.Account{}, err
	}

	account, err := s.repo.Update(ctx, id, arg)
	if err != nil {
		return account, err
	}

	return account, nil
}

// Delete removes account with the given ID.
func (s *Service) Delete(ctx context.Context, id int64) error {
	return s.repo.Delete(ctx, id)
}

// Ping reports whether the storage is reachable.
func (s *Service) Ping(ctx context.Context) error {
	return s.repo.Ping(ctx)
}

// checkLengths rejects values that do not fit their columns. Nil values are skipped.
func checkLengths(name, email, phone *string) error {
	for _, f := range []struct {
		field string
		label string
		value *string
		max   int
	}{
		{"name", "Name", name, validatepkg.MaxNameLen},
		{"email", "Email", email, validatepkg.MaxEmailLen},
		{"phone", "Phone", phone, validatepkg.MaxPhoneLen},
	} {
		if f.value == nil || validatepkg.MaxLen(*f.value, f.max) {
			continue
		}

		return errorspkg.NewValidationError(f.field,
			fmt.Sprintf("%s must be at most %d characters long", f.label, f.max))
	}

	return nil
}
