package domain

import "time"

// TransactionType distinguishes credits from debits.
type TransactionType string

// Transaction types recorded in the ledger.
const (
	TypeTopup   TransactionType = "TOPUP"
	TypePayment TransactionType = "PAYMENT"
)

// Transaction is one immutable row of the append-only ledger log.
type Transaction struct {
	ID            int64
	Email         string
	InvoiceNumber string
	Type          TransactionType
	ServiceCode   string // set for PAYMENT only
	ServiceName   string // set for PAYMENT only
	Amount        int64  // always positive
	Description   string
	CreatedAt     time.Time
}

// ApplyDeltaParams is the input data for one atomic ledger mutation.
//
// Delta is positive for a credit and negative for a debit.
type ApplyDeltaParams struct {
	Email         string
	Delta         int64
	Type          TransactionType
	ServiceCode   string
	ServiceName   string
	Description   string
	InvoiceNumber string
}

// LedgerTxResult is the result of one atomic ledger mutation.
type LedgerTxResult struct {
	Balance     int64
	Transaction Transaction
}
