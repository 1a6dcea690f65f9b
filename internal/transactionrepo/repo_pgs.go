// Package transactionrepo manages repository layer of ledger transactions.
package transactionrepo

import (
	"context"
	"database/sql"

	"github.com/go-ppob/wallet/internal/domain"
	"github.com/go-ppob/wallet/pkg/dbpkg"
	"github.com/go-ppob/wallet/pkg/errorspkg"

	"github.com/lib/pq"
	"github.com/rs/zerolog"
)

// RepoPGS facilitates transaction repository layer logic.
type RepoPGS struct {
	db dbpkg.SQLInterface
}

// NewRepoPGS returns transaction RepoPGS.
func NewRepoPGS(db dbpkg.SQLInterface) *RepoPGS {
	return &RepoPGS{db: db}
}

const createQuery = `
INSERT INTO
    transactions (email, invoice_number, transaction_type, service_code, service_name, total_amount, description)
VALUES
    ($1, $2, $3, $4, $5, $6, $7)
RETURNING id, email, invoice_number, transaction_type, service_code, service_name, total_amount, description, created_on
`

// Create appends one transaction record and returns it.
func (r *RepoPGS) Create(ctx context.Context, arg domain.ApplyDeltaParams, amount int64) (domain.Transaction, error) {
	l := zerolog.Ctx(ctx)

	serviceCode := sql.NullString{String: arg.ServiceCode, Valid: arg.ServiceCode != ""}
	serviceName := sql.NullString{String: arg.ServiceName, Valid: arg.ServiceName != ""}

	row := r.db.QueryRowContext(ctx, createQuery,
		arg.Email,
		arg.InvoiceNumber,
		arg.Type,
		serviceCode,
		serviceName,
		amount,
		arg.Description,
	)

	tr, err := scanTransaction(row.Scan)
	if err != nil {
		l.Error().Err(err).Send()

		if pqErr, ok := err.(*pq.Error); ok {
			switch pqErr.Constraint {
			case "transactions_email_fkey":
				return tr, domain.ErrAccountNotFound
			case "transactions_total_amount_check":
				return tr, domain.ErrInvalidAmount
			}
		}

		return tr, errorspkg.ErrInternal
	}

	return tr, nil
}

const listQuery = `
SELECT id, email, invoice_number, transaction_type, service_code, service_name, total_amount, description, created_on
FROM transactions
WHERE email = $1
ORDER BY created_on DESC, id DESC
LIMIT $2 OFFSET $3
`

const listAllQuery = `
SELECT id, email, invoice_number, transaction_type, service_code, service_name, total_amount, description, created_on
FROM transactions
WHERE email = $1
ORDER BY created_on DESC, id DESC
OFFSET $2
`

// List returns transactions of the given email, most recent first.
// A limit of 0 returns all records from offset onward.
func (r *RepoPGS) List(ctx context.Context, email string, offset, limit int32) ([]domain.Transaction, error) {
	l := zerolog.Ctx(ctx)

	var (
		rows *sql.Rows
		err  error
	)

	if limit > 0 {
		rows, err = r.db.QueryContext(ctx, listQuery, email, limit, offset)
	} else {
		rows, err = r.db.QueryContext(ctx, listAllQuery, email, offset)
	}

	if err != nil {
		l.Error().Err(err).Send()
		return nil, errorspkg.ErrInternal
	}
	defer rows.Close()

	items := []domain.Transaction{}

	for rows.Next() {
		tr, err := scanTransaction(rows.Scan)
		if err != nil {
			l.Error().Err(err).Send()
			return nil, errorspkg.ErrInternal
		}

		items = append(items, tr)
	}

	if err := rows.Err(); err != nil {
		l.Error().Err(err).Send()
		return nil, errorspkg.ErrInternal
	}

	return items, nil
}

func scanTransaction(scan func(...interface{}) error) (domain.Transaction, error) {
	var (
		tr                       domain.Transaction
		serviceCode, serviceName sql.NullString
	)

	err := scan(
		&tr.ID,
		&tr.Email,
		&tr.InvoiceNumber,
		&tr.Type,
		&serviceCode,
		&serviceName,
		&tr.Amount,
		&tr.Description,
		&tr.CreatedAt,
	)
	if err != nil {
		return tr, err
	}

	tr.ServiceCode = serviceCode.String
	tr.ServiceName = serviceName.String

	return tr, nil
}
