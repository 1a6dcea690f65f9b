// Package balancerepo manages repository layer of balances.
package balancerepo

import (
	"context"
	"database/sql"

	"github.com/go-ppob/wallet/internal/domain"
	"github.com/go-ppob/wallet/pkg/dbpkg"
	"github.com/go-ppob/wallet/pkg/errorspkg"

	"github.com/lib/pq"
	"github.com/rs/zerolog"
)

// RepoPGS facilitates balance repository layer logic.
type RepoPGS struct {
	db dbpkg.SQLInterface
}

// NewRepoPGS returns balance RepoPGS.
func NewRepoPGS(db dbpkg.SQLInterface) *RepoPGS {
	return &RepoPGS{db: db}
}

const createQuery = `
INSERT INTO
    balances (email, balance)
VALUES
    ($1, 0)
RETURNING email, balance
`

// Create creates a zero balance for the given email and returns it.
func (r *RepoPGS) Create(ctx context.Context, email string) (domain.Balance, error) {
	l := zerolog.Ctx(ctx)

	row := r.db.QueryRowContext(ctx, createQuery, email)

	var b domain.Balance

	err := row.Scan(&b.Email, &b.Balance)
	if err != nil {
		l.Error().Err(err).Send()

		if pqErr, ok := err.(*pq.Error); ok {
			if pqErr.Constraint == "balances_email_fkey" {
				return b, domain.ErrAccountNotFound
			}
		}

		return b, errorspkg.ErrInternal
	}

	return b, nil
}

const getQuery = `
SELECT email, balance
FROM balances
WHERE email = $1
`

// Get returns the balance owned by the given email.
func (r *RepoPGS) Get(ctx context.Context, email string) (domain.Balance, error) {
	l := zerolog.Ctx(ctx)

	row := r.db.QueryRowContext(ctx, getQuery, email)

	var b domain.Balance

	err := row.Scan(&b.Email, &b.Balance)
	if err != nil {
		if err == sql.ErrNoRows {
			return b, domain.ErrAccountNotFound
		}

		l.Error().Err(err).Send()

		return b, errorspkg.ErrInternal
	}

	return b, nil
}

const addQuery = `
UPDATE balances
SET balance = balance + $1
WHERE email = $2
RETURNING email, balance
`

// Add changes the balance by delta and returns the changed balance.
//
// The update takes the row lock that serializes concurrent mutations
// of the same account. A debit below zero violates the
// balances_balance_check constraint and leaves the row untouched.
func (r *RepoPGS) Add(ctx context.Context, delta int64, email string) (domain.Balance, error) {
	l := zerolog.Ctx(ctx)

	row := r.db.QueryRowContext(ctx, addQuery, delta, email)

	var b domain.Balance

	err := row.Scan(&b.Email, &b.Balance)
	if err != nil {
		if err == sql.ErrNoRows {
			return b, domain.ErrAccountNotFound
		}

		if pqErr, ok := err.(*pq.Error); ok {
			if pqErr.Constraint == "balances_balance_check" {
				return b, domain.ErrInsufficientBalance
			}
		}

		l.Error().Err(err).Send()

		return b, errorspkg.ErrInternal
	}

	return b, nil
}
