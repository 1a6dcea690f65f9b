package domain

import "errors"

var (
	// ErrAccountNotFound indicates that the email does not resolve to a balance account.
	ErrAccountNotFound = errors.New("account not found")
	// ErrInsufficientBalance indicates that a debit exceeds the current balance.
	ErrInsufficientBalance = errors.New("insufficient balance")
	// ErrInvalidAmount indicates a non-positive amount.
	ErrInvalidAmount = errors.New("amount must be a positive number")
)

// Balance holds the single balance scalar for a user.
//
// The amount is an integer in the smallest currency unit and is
// never negative.
type Balance struct {
	Email   string `json:"-"`
	Balance int64  `json:"balance"`
}
