// Package accountrepo manages repository layer of accounts.
package accountrepo

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"
	"github.com/rs/zerolog"

	"github.com/go-petr/account-api/internal/domain"
	"github.com/go-petr/account-api/pkg/dbpkg"
)

// Repo facilitates account repository layer logic.
//
// Queries are written with ? placeholders and rebound for the driver in use.
type Repo struct {
	db *sqlx.DB
}

// New returns account Repo.
func New(db *sqlx.DB) *Repo {
	return &Repo{
		db: db,
	}
}

const getIDByEmailQuery = `
SELECT id
FROM account
WHERE email = ?
`

const createQuery = `
INSERT INTO
    account (name, email, phone, date_joined)
VALUES
    (?, ?, ?, ?)
RETURNING id
`

// Create creates the account and then returns it.
//
// It fails with domain.ErrEmailAlreadyExists if the email is already taken.
func (r *Repo) Create(ctx context.Context, arg domain.CreateAccountParams) (domain.Account, error) {
	l := zerolog.Ctx(ctx)

	var a domain.Account

	err := dbpkg.WithTx(ctx, r.db, func(tx *sqlx.Tx) error {
		var id int64

		err := tx.GetContext(ctx, &id, tx.Rebind(getIDByEmailQuery), arg.Email)
		switch {
		case err == nil:
			return domain.ErrEmailAlreadyExists
		case !errors.Is(err, sql.ErrNoRows):
			return fmt.Errorf("check email: %w", err)
		}

		joined := time.Now().UTC().Truncate(time.Microsecond)

		row := tx.QueryRowxContext(ctx, tx.Rebind(createQuery), arg.Name, arg.Email, arg.Phone, joined)
		if err := row.Scan(&id); err != nil {
			if isUniqueViolation(err) {
				return domain.ErrEmailAlreadyExists
			}

			return fmt.Errorf("insert account: %w", err)
		}

		a, err = get(ctx, tx, id)

		return err
	})
	if err != nil {
		logErr(l, err).Str("email", arg.Email).Send()
		return domain.Account{}, err
	}

	return a, nil
}

const getQuery = `
SELECT
    id, name, email, phone, date_joined
FROM account
WHERE id = ?
`

// Get returns the account with the given id.
func (r *Repo) Get(ctx context.Context, id int64) (domain.Account, error) {
	l := zerolog.Ctx(ctx)

	a, err := get(ctx, r.db, id)
	if err != nil {
		logErr(l, err).Int64("id", id).Send()
		return a, err
	}

	return a, nil
}

func get(ctx context.Context, q sqlx.ExtContext, id int64) (domain.Account, error) {
	var a domain.Account

	if err := sqlx.GetContext(ctx, q, &a, q.Rebind(getQuery), id); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return domain.Account{}, domain.ErrAccountNotFound
		}

		return domain.Account{}, fmt.Errorf("get account: %w", err)
	}

	return a, nil
}

const listQuery = `
SELECT
    id, name, email, phone, date_joined
FROM account
ORDER BY id
`

// List returns all the accounts in creation order.
func (r *Repo) List(ctx context.Context) ([]domain.Account, error) {
	l := zerolog.Ctx(ctx)

	items := []domain.Account{}

	if err := r.db.SelectContext(ctx, &items, listQuery); err != nil {
		l.Error().Err(err).Send()
		return nil, fmt.Errorf("list accounts: %w", err)
	}

	return items, nil
}

const updateQuery = `
UPDATE account
SET name = ?, email = ?, phone = ?
WHERE id = ?
`

// Update overwrites the fields set in arg and returns the changed account.
//
// Name and email can not be cleared, a null value for them leaves the column as is.
// Email uniqueness is left to the unique index of the table.
func (r *Repo) Update(ctx context.Context, id int64, arg domain.UpdateAccountParams) (domain.Account, error) {
	l := zerolog.Ctx(ctx)

	var a domain.Account

	err := dbpkg.WithTx(ctx, r.db, func(tx *sqlx.Tx) error {
		var err error

		a, err = get(ctx, tx, id)
		if err != nil {
			return err
		}

		if arg.Name.Set && arg.Name.Value != nil {
			a.Name = *arg.Name.Value
		}

		if arg.Email.Set && arg.Email.Value != nil {
			a.Email = *arg.Email.Value
		}

		if arg.Phone.Set {
			a.Phone = arg.Phone.Value
		}

		if _, err := tx.ExecContext(ctx, tx.Rebind(updateQuery), a.Name, a.Email, a.Phone, id); err != nil {
			if isUniqueViolation(err) {
				return domain.ErrEmailAlreadyExists
			}

			return fmt.Errorf("update account: %w", err)
		}

		return nil
	})
	if err != nil {
		logErr(l, err).Int64("id", id).Send()
		return domain.Account{}, err
	}

	return a, nil
}

const deleteQuery = `
DELETE FROM account
WHERE id = ?
`

// Delete removes the account with the given id.
func (r *Repo) Delete(ctx context.Context, id int64) error {
	l := zerolog.Ctx(ctx)

	err := dbpkg.WithTx(ctx, r.db, func(tx *sqlx.Tx) error {
		res, err := tx.ExecContext(ctx, tx.Rebind(deleteQuery), id)
		if err != nil {
			return fmt.Errorf("delete account: %w", err)
		}

		n, err := res.RowsAffected()
		if err != nil {
			return fmt.Errorf("delete account: %w", err)
		}

		if n == 0 {
			return domain.ErrAccountNotFound
		}

		return nil
	})
	if err != nil {
		logErr(l, err).Int64("id", id).Send()
		return err
	}

	return nil
}

// Ping checks that the database answers queries.
func (r *Repo) Ping(ctx context.Context) error {
	var one int
	if err := r.db.GetContext(ctx, &one, "SELECT 1"); err != nil {
		zerolog.Ctx(ctx).Error().Err(err).Send()
		return fmt.Errorf("ping database: %w", err)
	}

	return nil
}

// logErr picks the level for err: expected domain errors are not failures of the store.
func logErr(l *zerolog.Logger, err error) *zerolog.Event {
	if errors.Is(err, domain.ErrAccountNotFound) || errors.Is(err, domain.ErrEmailAlreadyExists) {
		return l.Info().Err(err)
	}

	return l.Error().Err(err)
}
