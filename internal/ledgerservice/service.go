// Package ledgerservice manages business logic layer of the ledger.
package ledgerservice

import (
	"context"
	"time"

	"github.com/go-ppob/wallet/internal/domain"
	"github.com/go-ppob/wallet/pkg/invoicepkg"
	"github.com/rs/zerolog"
)

// Repo provides data access layer interface needed by ledger service layer.
//
//go:generate mockgen -source service.go -destination service_mock.go -package ledgerservice
type Repo interface {
	ApplyDelta(ctx context.Context, arg domain.ApplyDeltaParams) (domain.LedgerTxResult, error)
	GetBalance(ctx context.Context, email string) (int64, error)
	ListTransactions(ctx context.Context, email string, offset, limit int32) ([]domain.Transaction, error)
}

// CatalogProvider provides the read-only service catalog lookup
// needed to resolve payment tariffs.
//
//go:generate mockgen -source service.go -destination service_mock.go -package ledgerservice
type CatalogProvider interface {
	GetService(ctx context.Context, code string) (domain.Service, error)
}

// Service facilitates ledger service layer logic.
type Service struct {
	repo    Repo
	catalog CatalogProvider
}

// New returns ledger service struct to manage ledger business logic.
func New(lr Repo, cp CatalogProvider) *Service {
	return &Service{
		repo:    lr,
		catalog: cp,
	}
}

// GetBalance returns the current balance of the given email.
func (s *Service) GetBalance(ctx context.Context, email string) (int64, error) {
	return s.repo.GetBalance(ctx, email)
}

// TopUp credits the balance by amount and returns the new balance.
//
// A non-positive amount fails with domain.ErrInvalidAmount before any
// store access.
func (s *Service) TopUp(ctx context.Context, email string, amount int64) (int64, error) {
	l := zerolog.Ctx(ctx)

	if amount <= 0 {
		l.Info().Int64("amount", amount).Msg("rejected top up amount")
		return 0, domain.ErrInvalidAmount
	}

	arg := domain.ApplyDeltaParams{
		Email:         email,
		Delta:         amount,
		Type:          domain.TypeTopup,
		Description:   "Top Up balance",
		InvoiceNumber: invoicepkg.Generate(time.Now()),
	}

	result, err := s.repo.ApplyDelta(ctx, arg)
	if err != nil {
		return 0, err
	}

	return result.Balance, nil
}

// Pay debits the tariff of the given service and returns the created
// transaction record.
//
// An unknown service code fails with domain.ErrServiceNotFound and a
// tariff exceeding the balance fails with domain.ErrInsufficientBalance;
// neither mutates any state.
func (s *Service) Pay(ctx context.Context, email, serviceCode string) (domain.Transaction, error) {
	service, err := s.catalog.GetService(ctx, serviceCode)
	if err != nil {
		return domain.Transaction{}, err
	}

	arg := domain.ApplyDeltaParams{
		Email:         email,
		Delta:         -service.Tariff,
		Type:          domain.TypePayment,
		ServiceCode:   service.Code,
		ServiceName:   service.Name,
		Description:   service.Name,
		InvoiceNumber: invoicepkg.Generate(time.Now()),
	}

	result, err := s.repo.ApplyDelta(ctx, arg)
	if err != nil {
		return domain.Transaction{}, err
	}

	return result.Transaction, nil
}

// ListTransactions returns transactions of the given email, most recent
// first. A limit of 0 returns all records from offset onward.
func (s *Service) ListTransactions(ctx context.Context, email string, offset, limit int32) ([]domain.Transaction, error) {
	return s.repo.ListTransactions(ctx, email, offset, limit)
}
