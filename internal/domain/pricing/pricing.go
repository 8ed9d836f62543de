package pricing

import (
	"errors"

	"stayhub/internal/domain/shared/daterange"
	"stayhub/internal/domain/shared/money"
)

var ErrInvalidRate = errors.New("pricing: nightly rate must be positive")

// Breakdown is the authoritative price of a stay: flat nightly rate times
// nights. The zero service fee is modeled explicitly because the displayed
// breakdown includes the line.
type Breakdown struct {
	Nights     int
	Nightly    money.Money
	ServiceFee money.Money
	Total      money.Money
}

// Quote prices a stay. Fails with ErrInvalidRate when the nightly rate is not
// strictly positive.
func Quote(dr daterange.DateRange, nightly money.Money) (Breakdown, error) {
	if !nightly.IsPositive() {
		return Breakdown{}, ErrInvalidRate
	}
	nights := dr.Nights()
	total := nightly.Multiply(int64(nights))
	fee := money.Zero(nightly.Currency)
	total, err := total.Add(fee)
	if err != nil {
		return Breakdown{}, err
	}
	return Breakdown{
		Nights:     nights,
		Nightly:    nightly,
		ServiceFee: fee,
		Total:      total,
	}, nil
}
