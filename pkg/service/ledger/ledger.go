// Package ledger implements the account ledger engine: the in-memory
// account/balance state for a session, hydrated from the record store at
// start, with guarded deposit, withdraw, transfer, balance and history
// operations that persist every mutation back through the store.
package ledger

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/abaasith/unibank/pkg/domain/account"
	"github.com/abaasith/unibank/pkg/domain/customer"
	"github.com/abaasith/unibank/pkg/domain/money"
	"github.com/abaasith/unibank/pkg/domain/user"
	"github.com/abaasith/unibank/pkg/repository"
	"github.com/abaasith/unibank/pkg/service/auth"
)

const timestampLayout = "2006-01-02 15:04:05"

// StatusChecker reports the lifecycle status of an account's profile.
type StatusChecker interface {
	StatusOf(accountNo string) (customer.Status, error)
}

// StatusFunc adapts a function to the StatusChecker interface. The profile
// manager is constructed after the ledger, so wiring goes through a closure.
type StatusFunc func(accountNo string) (customer.Status, error)

func (f StatusFunc) StatusOf(accountNo string) (customer.Status, error) {
	return f(accountNo)
}

// Service owns the in-memory account state for one session.
type Service struct {
	accounts map[string]*account.Account
	store    repository.AccountStore
	txs      repository.TransactionStore
	journal  repository.Journal
	statuses StatusChecker
	logger   *slog.Logger
	now      func() time.Time
}

// Option customizes a Service.
type Option func(*Service)

// WithClock overrides the time source, for tests.
func WithClock(now func() time.Time) Option {
	return func(s *Service) { s.now = now }
}

// New hydrates the ledger from the record store.
func New(
	store repository.AccountStore,
	txs repository.TransactionStore,
	journal repository.Journal,
	statuses StatusChecker,
	logger *slog.Logger,
	opts ...Option,
) (*Service, error) {
	records, err := store.Load()
	if err != nil {
		return nil, fmt.Errorf("load accounts: %w", err)
	}
	narrations, err := txs.Load()
	if err != nil {
		return nil, fmt.Errorf("load transactions: %w", err)
	}
	accounts := make(map[string]*account.Account, len(records))
	for number, rec := range records {
		acc := account.New(number, rec.Name, rec.Balance)
		acc.Narrations = narrations[number]
		accounts[number] = acc
	}
	s := &Service{
		accounts: accounts,
		store:    store,
		txs:      txs,
		journal:  journal,
		statuses: statuses,
		logger:   logger.With("service", "ledger"),
		now:      time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s, nil
}

// Has reports whether the ledger holds an entry for the account number.
func (s *Service) Has(accountNo string) bool {
	_, ok := s.accounts[accountNo]
	return ok
}

// BalanceOf returns the balance without any access checks. It is used by the
// interest scheduler, which runs before any session exists.
func (s *Service) BalanceOf(accountNo string) (money.Money, bool) {
	acc, ok := s.accounts[accountNo]
	if !ok {
		return money.Zero(), false
	}
	return acc.Balance, true
}

// guard resolves an account for a session operation: the session must be
// allowed to target it, it must exist, and its profile must not be inactive.
func (s *Service) guard(sess *auth.Session, accountNo string) (*account.Account, error) {
	if !sess.CanAccess(accountNo) {
		return nil, user.ErrNotAuthorized
	}
	acc, ok := s.accounts[accountNo]
	if !ok {
		return nil, account.ErrAccountNotFound
	}
	if err := s.requireActive(accountNo); err != nil {
		return nil, err
	}
	return acc, nil
}

func (s *Service) requireActive(accountNo string) error {
	status, err := s.statuses.StatusOf(accountNo)
	if errors.Is(err, customer.ErrProfileNotFound) {
		// An account without a profile is treated as active; the original
		// store allowed such records.
		return nil
	}
	if err != nil {
		return err
	}
	if status == customer.StatusInactive {
		return account.ErrAccountInactive
	}
	return nil
}

// Deposit adds amount to the account, appends the narration and persists the
// new balance. Returns the new balance.
func (s *Service) Deposit(
	ctx context.Context,
	sess *auth.Session,
	accountNo string,
	amount money.Money,
) (money.Money, error) {
	acc, err := s.guard(sess, accountNo)
	if err != nil {
		return money.Zero(), err
	}
	if err := acc.Deposit(amount); err != nil {
		return money.Zero(), err
	}
	narration := fmt.Sprintf("Deposited Rs.%s on %s", amount, s.now().Format(timestampLayout))
	if err := s.persist(
		"deposit",
		fmt.Sprintf("account=%s amount=%s", accountNo, amount),
		[]repository.TransactionRecord{{AccountNo: accountNo, Narration: narration}},
		acc,
	); err != nil {
		acc.Balance = acc.Balance.Subtract(amount)
		return money.Zero(), err
	}
	acc.Record(narration)
	s.logger.Info("deposit applied",
		"session", sess.ID, "account", accountNo, "amount", amount, "balance", acc.Balance)
	return acc.Balance, nil
}

// Withdraw removes amount from the account, appends the narration and
// persists the new balance. Returns the new balance.
func (s *Service) Withdraw(
	ctx context.Context,
	sess *auth.Session,
	accountNo string,
	amount money.Money,
) (money.Money, error) {
	acc, err := s.guard(sess, accountNo)
	if err != nil {
		return money.Zero(), err
	}
	if err := acc.Withdraw(amount); err != nil {
		return money.Zero(), err
	}
	narration := fmt.Sprintf("Withdrew Rs.%s on %s", amount, s.now().Format(timestampLayout))
	if err := s.persist(
		"withdraw",
		fmt.Sprintf("account=%s amount=%s", accountNo, amount),
		[]repository.TransactionRecord{{AccountNo: accountNo, Narration: narration}},
		acc,
	); err != nil {
		acc.Balance = acc.Balance.Add(amount)
		return money.Zero(), err
	}
	acc.Record(narration)
	s.logger.Info("withdrawal applied",
		"session", sess.ID, "account", accountNo, "amount", amount, "balance", acc.Balance)
	return acc.Balance, nil
}

// Transfer moves amount between two accounts. Both must exist and be active;
// the session must be allowed to debit the sender. Both narrations are
// persisted as a single journaled unit.
func (s *Service) Transfer(
	ctx context.Context,
	sess *auth.Session,
	fromNo, toNo string,
	amount money.Money,
) error {
	if fromNo == toNo {
		return account.ErrCannotTransferToSameAccount
	}
	sender, err := s.guard(sess, fromNo)
	if err != nil {
		return err
	}
	receiver, ok := s.accounts[toNo]
	if !ok {
		return account.ErrAccountNotFound
	}
	if err := s.requireActive(toNo); err != nil {
		return err
	}
	if err := sender.Withdraw(amount); err != nil {
		return err
	}
	if err := receiver.Deposit(amount); err != nil {
		// Withdraw already vetted the amount, so this cannot fail; keep the
		// balances consistent regardless.
		sender.Balance = sender.Balance.Add(amount)
		return err
	}

	ts := s.now().Format(timestampLayout)
	sent := fmt.Sprintf("Transferred Rs.%s to %s on %s", amount, toNo, ts)
	received := fmt.Sprintf("Received Rs.%s from %s on %s", amount, fromNo, ts)
	if err := s.persist(
		"transfer",
		fmt.Sprintf("from=%s to=%s amount=%s", fromNo, toNo, amount),
		[]repository.TransactionRecord{
			{AccountNo: fromNo, Narration: sent},
			{AccountNo: toNo, Narration: received},
		},
		sender, receiver,
	); err != nil {
		sender.Balance = sender.Balance.Add(amount)
		receiver.Balance = receiver.Balance.Subtract(amount)
		return err
	}
	sender.Record(sent)
	receiver.Record(received)
	s.logger.Info("transfer applied",
		"session", sess.ID, "from", fromNo, "to", toNo, "amount", amount)
	return nil
}

// Balance returns the account balance. Read-only, but inactive accounts are
// still blocked.
func (s *Service) Balance(
	ctx context.Context,
	sess *auth.Session,
	accountNo string,
) (money.Money, error) {
	acc, err := s.guard(sess, accountNo)
	if err != nil {
		return money.Zero(), err
	}
	return acc.Balance, nil
}

// History returns a copy of the account's narrations in chronological order.
func (s *Service) History(
	ctx context.Context,
	sess *auth.Session,
	accountNo string,
) ([]string, error) {
	acc, err := s.guard(sess, accountNo)
	if err != nil {
		return nil, err
	}
	history := make([]string, len(acc.Narrations))
	copy(history, acc.Narrations)
	return history, nil
}

// Open registers a brand-new account in memory and persists its first
// account line and opening narration. Journaling is the caller's concern:
// account creation wraps credential, account and profile writes in one
// journal entry.
func (s *Service) Open(number, name string, opening money.Money, narration string) error {
	if opening.IsNegative() {
		return account.ErrAmountMustBePositive
	}
	acc := account.New(number, name, opening)
	if err := s.store.Append(repository.AccountRecord{
		Number: number, Name: name, Balance: opening,
	}); err != nil {
		return err
	}
	if err := s.txs.Append(repository.TransactionRecord{
		AccountNo: number, Narration: narration,
	}); err != nil {
		return err
	}
	acc.Record(narration)
	s.accounts[number] = acc
	return nil
}

// CreditInterest adds an accrued amount to the account and persists the
// narration and new balance. The interest scheduler owns eligibility checks
// and journaling.
func (s *Service) CreditInterest(
	accountNo string,
	amount money.Money,
	narration string,
) (money.Money, error) {
	acc, ok := s.accounts[accountNo]
	if !ok {
		return money.Zero(), account.ErrAccountNotFound
	}
	acc.Balance = acc.Balance.Add(amount)
	if err := s.txs.Append(repository.TransactionRecord{
		AccountNo: accountNo, Narration: narration,
	}); err != nil {
		acc.Balance = acc.Balance.Subtract(amount)
		return money.Zero(), err
	}
	if err := s.store.Append(repository.AccountRecord{
		Number: accountNo, Name: acc.Name, Balance: acc.Balance,
	}); err != nil {
		acc.Balance = acc.Balance.Subtract(amount)
		return money.Zero(), err
	}
	acc.Record(narration)
	return acc.Balance, nil
}

// persist writes the narrations and fresh balance lines for the touched
// accounts inside one journal entry.
func (s *Service) persist(
	op, details string,
	narrations []repository.TransactionRecord,
	touched ...*account.Account,
) error {
	token, err := s.journal.Begin(op, details)
	if err != nil {
		return err
	}
	if err := s.txs.AppendAll(narrations); err != nil {
		return err
	}
	for _, acc := range touched {
		if err := s.store.Append(repository.AccountRecord{
			Number: acc.Number, Name: acc.Name, Balance: acc.Balance,
		}); err != nil {
			return err
		}
	}
	return s.journal.Commit(token)
}
