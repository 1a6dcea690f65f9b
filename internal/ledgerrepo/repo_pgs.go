// Package ledgerrepo manages the atomic balance mutation and transaction log unit.
package ledgerrepo

import (
	"context"
	"database/sql"

	"github.com/go-ppob/wallet/internal/balancerepo"
	"github.com/go-ppob/wallet/internal/domain"
	"github.com/go-ppob/wallet/internal/transactionrepo"
	"github.com/go-ppob/wallet/pkg/errorspkg"

	"github.com/rs/zerolog"
)

// RepoPGS facilitates ledger repository layer logic.
type RepoPGS struct {
	conn *sql.DB

	balanceRepo     *balancerepo.RepoPGS
	transactionRepo *transactionrepo.RepoPGS
}

// NewRepoPGS returns ledger RepoPGS with a connection to start transactions.
func NewRepoPGS(conn *sql.DB) *RepoPGS {
	return &RepoPGS{
		conn:            conn,
		balanceRepo:     balancerepo.NewRepoPGS(conn),
		transactionRepo: transactionrepo.NewRepoPGS(conn),
	}
}

// GetBalance returns the current balance of the given email.
func (r *RepoPGS) GetBalance(ctx context.Context, email string) (int64, error) {
	balance, err := r.balanceRepo.Get(ctx, email)
	if err != nil {
		return 0, err
	}

	return balance.Balance, nil
}

// ListTransactions returns transactions of the given email, most recent first.
// A limit of 0 returns all records from offset onward.
func (r *RepoPGS) ListTransactions(ctx context.Context, email string, offset, limit int32) ([]domain.Transaction, error) {
	return r.transactionRepo.List(ctx, email, offset, limit)
}

// ApplyDelta mutates the balance and appends the matching transaction record
// within a single database transaction.
//
// The balance update locks the account row, so concurrent calls against the
// same email serialize; a debit that would take the balance below zero fails
// with domain.ErrInsufficientBalance and no state is changed.
func (r *RepoPGS) ApplyDelta(ctx context.Context, arg domain.ApplyDeltaParams) (domain.LedgerTxResult, error) {
	l := zerolog.Ctx(ctx)

	var result domain.LedgerTxResult

	tx, err := r.conn.BeginTx(ctx, nil)
	if err != nil {
		l.Error().Err(err).Send()
		return result, errorspkg.ErrInternal
	}

	defer func() {
		if err := tx.Rollback(); err != nil && err != sql.ErrTxDone {
			l.Error().Err(err).Send()
		}
	}()

	balanceRepo := balancerepo.NewRepoPGS(tx)
	transactionRepo := transactionrepo.NewRepoPGS(tx)

	balance, err := balanceRepo.Add(ctx, arg.Delta, arg.Email)
	if err != nil {
		return result, err
	}

	amount := arg.Delta
	if amount < 0 {
		amount = -amount
	}

	transaction, err := transactionRepo.Create(ctx, arg, amount)
	if err != nil {
		return result, err
	}

	if err := tx.Commit(); err != nil {
		l.Error().Err(err).Send()
		return result, errorspkg.ErrInternal
	}

	result.Balance = balance.Balance
	result.Transaction = transaction

	return result, nil
}
