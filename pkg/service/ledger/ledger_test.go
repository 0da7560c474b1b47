package ledger_test

import (
	"context"
	"log/slog"
	"testing"
	"time"

	"github.com/abaasith/unibank/infra/repository/flatfile"
	"github.com/abaasith/unibank/pkg/domain/account"
	"github.com/abaasith/unibank/pkg/domain/customer"
	"github.com/abaasith/unibank/pkg/domain/money"
	"github.com/abaasith/unibank/pkg/domain/user"
	"github.com/abaasith/unibank/pkg/service/auth"
	"github.com/abaasith/unibank/pkg/service/ledger"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type stubStatuses map[string]customer.Status

func (s stubStatuses) StatusOf(accountNo string) (customer.Status, error) {
	status, ok := s[accountNo]
	if !ok {
		return "", customer.ErrProfileNotFound
	}
	return status, nil
}

type fixture struct {
	store    *flatfile.Store
	accounts *flatfile.AccountStore
	txs      *flatfile.TransactionStore
	journal  *flatfile.Journal
	statuses stubStatuses
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	store, err := flatfile.New(t.TempDir(), slog.Default())
	require.NoError(t, err)
	return &fixture{
		store:    store,
		accounts: flatfile.NewAccountStore(store, 2003),
		txs:      flatfile.NewTransactionStore(store),
		journal:  flatfile.NewJournal(store),
		statuses: stubStatuses{},
	}
}

func (f *fixture) newLedger(t *testing.T) *ledger.Service {
	t.Helper()
	svc, err := ledger.New(f.accounts, f.txs, f.journal, f.statuses, slog.Default(),
		ledger.WithClock(func() time.Time {
			return time.Date(2026, 8, 28, 10, 30, 0, 0, time.UTC)
		}))
	require.NoError(t, err)
	return svc
}

func adminSession() *auth.Session {
	return &auth.Session{ID: uuid.New(), Role: user.RoleAdmin}
}

func userSession(accountNo string) *auth.Session {
	return &auth.Session{ID: uuid.New(), Role: user.RoleUser, AccountNo: accountNo}
}

func (f *fixture) open(t *testing.T, svc *ledger.Service, number string, cents int64) {
	t.Helper()
	require.NoError(t, svc.Open(number, "HOLDER "+number, money.FromCents(cents),
		"Account opened with Rs."+money.FromCents(cents).String()))
	f.statuses[number] = customer.StatusActive
}

func TestDepositThenWithdrawRestoresBalance(t *testing.T) {
	f := newFixture(t)
	svc := f.newLedger(t)
	f.open(t, svc, "2004", 100000)
	sess := userSession("2004")
	ctx := context.Background()

	_, err := svc.Deposit(ctx, sess, "2004", money.FromCents(25050))
	require.NoError(t, err)
	balance, err := svc.Withdraw(ctx, sess, "2004", money.FromCents(25050))
	require.NoError(t, err)
	assert.Equal(t, int64(100000), balance.Cents())
}

func TestDepositGuards(t *testing.T) {
	f := newFixture(t)
	svc := f.newLedger(t)
	f.open(t, svc, "2004", 100000)
	ctx := context.Background()

	_, err := svc.Deposit(ctx, userSession("2004"), "2004", money.Zero())
	require.ErrorIs(t, err, account.ErrAmountMustBePositive)

	_, err = svc.Deposit(ctx, adminSession(), "9999", money.FromCents(100))
	require.ErrorIs(t, err, account.ErrAccountNotFound)

	// A user may only target their own account.
	_, err = svc.Deposit(ctx, userSession("2005"), "2004", money.FromCents(100))
	require.ErrorIs(t, err, user.ErrNotAuthorized)

	balance, err := svc.Balance(ctx, adminSession(), "2004")
	require.NoError(t, err)
	assert.Equal(t, int64(100000), balance.Cents())
}

func TestWithdrawInsufficientFundsLeavesBalance(t *testing.T) {
	f := newFixture(t)
	svc := f.newLedger(t)
	f.open(t, svc, "2004", 5000)
	ctx := context.Background()

	_, err := svc.Withdraw(ctx, userSession("2004"), "2004", money.FromCents(5001))
	require.ErrorIs(t, err, account.ErrInsufficientFunds)

	balance, err := svc.Balance(ctx, userSession("2004"), "2004")
	require.NoError(t, err)
	assert.Equal(t, int64(5000), balance.Cents())
}

func TestTransferPreservesTotal(t *testing.T) {
	f := newFixture(t)
	svc := f.newLedger(t)
	f.open(t, svc, "2004", 100000)
	f.open(t, svc, "2005", 20000)
	ctx := context.Background()

	require.NoError(t, svc.Transfer(ctx, userSession("2004"), "2004", "2005", money.FromCents(2500)))

	admin := adminSession()
	from, err := svc.Balance(ctx, admin, "2004")
	require.NoError(t, err)
	to, err := svc.Balance(ctx, admin, "2005")
	require.NoError(t, err)
	assert.Equal(t, int64(97500), from.Cents())
	assert.Equal(t, int64(22500), to.Cents())
	assert.Equal(t, int64(120000), from.Add(to).Cents())

	fromHistory, err := svc.History(ctx, admin, "2004")
	require.NoError(t, err)
	toHistory, err := svc.History(ctx, admin, "2005")
	require.NoError(t, err)
	assert.Contains(t, fromHistory[len(fromHistory)-1], "Transferred Rs.25.00 to 2005")
	assert.Contains(t, toHistory[len(toHistory)-1], "Received Rs.25.00 from 2004")
}

func TestTransferGuards(t *testing.T) {
	f := newFixture(t)
	svc := f.newLedger(t)
	f.open(t, svc, "2004", 10000)
	f.open(t, svc, "2005", 0)
	ctx := context.Background()

	err := svc.Transfer(ctx, userSession("2004"), "2004", "2004", money.FromCents(100))
	require.ErrorIs(t, err, account.ErrCannotTransferToSameAccount)

	err = svc.Transfer(ctx, userSession("2004"), "2004", "9999", money.FromCents(100))
	require.ErrorIs(t, err, account.ErrAccountNotFound)

	err = svc.Transfer(ctx, userSession("2004"), "2004", "2005", money.FromCents(10001))
	require.ErrorIs(t, err, account.ErrInsufficientFunds)

	// A user cannot send from someone else's account.
	err = svc.Transfer(ctx, userSession("2005"), "2004", "2005", money.FromCents(100))
	require.ErrorIs(t, err, user.ErrNotAuthorized)
}

func TestInactiveAccountRejectsEverything(t *testing.T) {
	f := newFixture(t)
	svc := f.newLedger(t)
	f.open(t, svc, "2004", 10000)
	f.open(t, svc, "2005", 10000)
	f.statuses["2004"] = customer.StatusInactive
	ctx := context.Background()
	admin := adminSession()
	amount := money.FromCents(100)

	_, err := svc.Deposit(ctx, admin, "2004", amount)
	require.ErrorIs(t, err, account.ErrAccountInactive)

	_, err = svc.Withdraw(ctx, admin, "2004", amount)
	require.ErrorIs(t, err, account.ErrAccountInactive)

	_, err = svc.Balance(ctx, admin, "2004")
	require.ErrorIs(t, err, account.ErrAccountInactive)

	_, err = svc.History(ctx, admin, "2004")
	require.ErrorIs(t, err, account.ErrAccountInactive)

	// As sender and as receiver.
	err = svc.Transfer(ctx, admin, "2004", "2005", amount)
	require.ErrorIs(t, err, account.ErrAccountInactive)
	err = svc.Transfer(ctx, admin, "2005", "2004", amount)
	require.ErrorIs(t, err, account.ErrAccountInactive)

	// Balances unchanged throughout.
	balance, ok := svc.BalanceOf("2004")
	require.True(t, ok)
	assert.Equal(t, int64(10000), balance.Cents())
}

func TestMutationsSurviveReload(t *testing.T) {
	f := newFixture(t)
	svc := f.newLedger(t)
	f.open(t, svc, "2004", 100000)
	ctx := context.Background()

	_, err := svc.Deposit(ctx, userSession("2004"), "2004", money.FromCents(2500))
	require.NoError(t, err)

	reloaded := f.newLedger(t)
	balance, ok := reloaded.BalanceOf("2004")
	require.True(t, ok)
	assert.Equal(t, int64(102500), balance.Cents())

	history, err := reloaded.History(ctx, adminSession(), "2004")
	require.NoError(t, err)
	require.Len(t, history, 2)
	assert.Contains(t, history[1], "Deposited Rs.25.00")

	// The journal is clean after successful mutations.
	pending, err := f.journal.Recover()
	require.NoError(t, err)
	assert.Empty(t, pending)
}

func TestOpenRejectsNegativeBalance(t *testing.T) {
	f := newFixture(t)
	svc := f.newLedger(t)
	err := svc.Open("2004", "HOLDER", money.FromCents(-1), "opened")
	require.ErrorIs(t, err, account.ErrAmountMustBePositive)
	assert.False(t, svc.Has("2004"))
}
