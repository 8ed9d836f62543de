package money_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"stayhub/internal/domain/shared/money"
)

func TestNewValidatesCurrency(t *testing.T) {
	m, err := money.New(12550, "usd")
	require.NoError(t, err)
	assert.Equal(t, "USD", m.Currency)
	assert.Equal(t, int64(12550), m.Amount)

	_, err = money.New(100, "dollars")
	assert.ErrorIs(t, err, money.ErrInvalidCurrency)
}

func TestAdd(t *testing.T) {
	sum, err := money.Must(100, "USD").Add(money.Must(250, "USD"))
	require.NoError(t, err)
	assert.Equal(t, int64(350), sum.Amount)

	_, err = money.Must(100, "USD").Add(money.Must(100, "EUR"))
	assert.ErrorIs(t, err, money.ErrCurrencyMismatch)
}

func TestMultiply(t *testing.T) {
	assert.Equal(t, int64(30000), money.Must(10000, "USD").Multiply(3).Amount)
	assert.True(t, money.Zero("USD").IsZero())
	assert.False(t, money.Zero("USD").IsPositive())
	assert.True(t, money.Must(1, "USD").IsPositive())
}

func TestString(t *testing.T) {
	assert.Equal(t, "125.50 USD", money.Must(12550, "USD").String())
}
