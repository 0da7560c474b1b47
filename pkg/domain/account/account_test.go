package account_test

import (
	"testing"

	"github.com/abaasith/unibank/pkg/domain/account"
	"github.com/abaasith/unibank/pkg/domain/money"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDepositThenWithdrawRestoresBalance(t *testing.T) {
	a := account.New("2004", "NUWAN PERERA", money.FromCents(50000))
	amount := money.FromCents(12345)

	require.NoError(t, a.Deposit(amount))
	require.NoError(t, a.Withdraw(amount))
	assert.Equal(t, int64(50000), a.Balance.Cents())
}

func TestDepositRejectsNonPositive(t *testing.T) {
	a := account.New("2004", "NUWAN PERERA", money.FromCents(50000))

	err := a.Deposit(money.Zero())
	require.ErrorIs(t, err, account.ErrAmountMustBePositive)

	err = a.Deposit(money.FromCents(-100))
	require.ErrorIs(t, err, account.ErrAmountMustBePositive)

	assert.Equal(t, int64(50000), a.Balance.Cents())
}

func TestWithdrawGuards(t *testing.T) {
	a := account.New("2004", "NUWAN PERERA", money.FromCents(5000))

	err := a.Withdraw(money.FromCents(5001))
	require.ErrorIs(t, err, account.ErrInsufficientFunds)
	assert.Equal(t, int64(5000), a.Balance.Cents())

	err = a.Withdraw(money.Zero())
	require.ErrorIs(t, err, account.ErrAmountMustBePositive)

	// Withdrawing the exact balance is allowed.
	require.NoError(t, a.Withdraw(money.FromCents(5000)))
	assert.True(t, a.Balance.IsZero())
}

func TestRecordAppendsInOrder(t *testing.T) {
	a := account.New("2004", "NUWAN PERERA", money.Zero())
	a.Record("first")
	a.Record("second")
	assert.Equal(t, []string{"first", "second"}, a.Narrations)
}
