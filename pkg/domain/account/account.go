// Package account defines the Account aggregate: the in-memory pairing of an
// account number with its holder, balance and transaction history.
package account

import (
	"errors"

	"github.com/abaasith/unibank/pkg/domain/money"
)

var (
	// ErrAccountNotFound is returned when an account cannot be found in the
	// ledger.
	ErrAccountNotFound = errors.New("account not found")

	// ErrAmountMustBePositive is returned when a deposit, withdrawal or
	// transfer amount is not positive.
	ErrAmountMustBePositive = errors.New("amount must be positive")

	// ErrInsufficientFunds is returned when a withdrawal or transfer would
	// drive the balance negative.
	ErrInsufficientFunds = errors.New("insufficient funds")

	// ErrCannotTransferToSameAccount is returned when a transfer names the
	// same account on both sides.
	ErrCannotTransferToSameAccount = errors.New("cannot transfer to same account")

	// ErrAccountInactive is returned when an operation targets an account
	// whose customer profile is marked inactive.
	ErrAccountInactive = errors.New("account is inactive")
)

// Account is the ledger's view of a single bank account.
// Invariants:
//   - The balance never goes negative.
//   - Narrations are append-only and chronological.
type Account struct {
	Number     string
	Name       string
	Balance    money.Money
	Narrations []string
}

// New creates an account with an opening balance.
func New(number, name string, opening money.Money) *Account {
	return &Account{Number: number, Name: name, Balance: opening}
}

// Deposit adds a positive amount to the balance.
func (a *Account) Deposit(amount money.Money) error {
	if !amount.IsPositive() {
		return ErrAmountMustBePositive
	}
	a.Balance = a.Balance.Add(amount)
	return nil
}

// Withdraw removes a positive amount from the balance. The balance must cover
// the full amount.
func (a *Account) Withdraw(amount money.Money) error {
	if !amount.IsPositive() {
		return ErrAmountMustBePositive
	}
	if amount.GreaterThan(a.Balance) {
		return ErrInsufficientFunds
	}
	a.Balance = a.Balance.Subtract(amount)
	return nil
}

// Record appends a narration to the account's history.
func (a *Account) Record(narration string) {
	a.Narrations = append(a.Narrations, narration)
}
