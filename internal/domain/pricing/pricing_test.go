package pricing_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"stayhub/internal/domain/pricing"
	"stayhub/internal/domain/shared/daterange"
	"stayhub/internal/domain/shared/money"
)

func stay(t *testing.T, inDay, outDay int) daterange.DateRange {
	t.Helper()
	r, err := daterange.New(
		time.Date(2025, 6, inDay, 0, 0, 0, 0, time.UTC),
		time.Date(2025, 6, outDay, 0, 0, 0, 0, time.UTC),
	)
	require.NoError(t, err)
	return r
}

func TestQuote(t *testing.T) {
	b, err := pricing.Quote(stay(t, 10, 13), money.Must(10000, "USD"))
	require.NoError(t, err)

	assert.Equal(t, 3, b.Nights)
	assert.Equal(t, int64(30000), b.Total.Amount)
	assert.Equal(t, int64(10000), b.Nightly.Amount)
	assert.True(t, b.ServiceFee.IsZero())
	assert.Equal(t, "USD", b.ServiceFee.Currency)
}

func TestQuoteSingleNight(t *testing.T) {
	b, err := pricing.Quote(stay(t, 10, 11), money.Must(9900, "EUR"))
	require.NoError(t, err)
	assert.Equal(t, 1, b.Nights)
	assert.Equal(t, int64(9900), b.Total.Amount)
}

func TestQuoteRejectsNonPositiveRate(t *testing.T) {
	_, err := pricing.Quote(stay(t, 10, 13), money.Zero("USD"))
	assert.ErrorIs(t, err, pricing.ErrInvalidRate)

	_, err = pricing.Quote(stay(t, 10, 13), money.Must(-100, "USD"))
	assert.ErrorIs(t, err, pricing.ErrInvalidRate)
}
