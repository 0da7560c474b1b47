package money_test

import (
	"testing"

	"github.com/abaasith/unibank/pkg/domain/money"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNew(t *testing.T) {
	tests := []struct {
		name      string
		amount    float64
		wantCents int64
		wantErr   error
	}{
		{"whole rupees", 100, 10000, nil},
		{"two decimals", 1250.75, 125075, nil},
		{"zero", 0, 0, nil},
		{"negative", -5.25, -525, nil},
		{"three decimals rejected", 10.001, 0, money.ErrTooManyDecimals},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m, err := money.New(tt.amount)
			if tt.wantErr != nil {
				require.ErrorIs(t, err, tt.wantErr)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.wantCents, m.Cents())
		})
	}
}

func TestParse(t *testing.T) {
	m, err := money.Parse(" 250.50 ")
	require.NoError(t, err)
	assert.Equal(t, int64(25050), m.Cents())

	_, err = money.Parse("not-a-number")
	require.ErrorIs(t, err, money.ErrInvalidAmount)

	_, err = money.Parse("1.005")
	require.ErrorIs(t, err, money.ErrTooManyDecimals)
}

func TestArithmetic(t *testing.T) {
	a := money.FromCents(10000)
	b := money.FromCents(2550)

	assert.Equal(t, int64(12550), a.Add(b).Cents())
	assert.Equal(t, int64(7450), a.Subtract(b).Cents())
	assert.True(t, a.GreaterThan(b))
	assert.False(t, b.GreaterThan(a))
	assert.True(t, a.Equals(money.FromCents(10000)))
}

func TestPredicates(t *testing.T) {
	assert.True(t, money.FromCents(1).IsPositive())
	assert.True(t, money.FromCents(-1).IsNegative())
	assert.True(t, money.Zero().IsZero())
	assert.False(t, money.Zero().IsPositive())
}

func TestMultiplyRound(t *testing.T) {
	// 3% annual over 12 months on 10000.00 credits exactly 25.00.
	balance := money.FromCents(1000000)
	interest := balance.MultiplyRound(0.03 / 12)
	assert.Equal(t, int64(2500), interest.Cents())

	// Half-cent results round away from zero.
	assert.Equal(t, int64(3), money.FromCents(1000).MultiplyRound(0.0025).Cents())
}

func TestString(t *testing.T) {
	assert.Equal(t, "1250.75", money.FromCents(125075).String())
	assert.Equal(t, "0.00", money.Zero().String())
	assert.Equal(t, "25.00", money.FromCents(2500).String())
}
