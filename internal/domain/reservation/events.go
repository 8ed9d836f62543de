package reservation

import (
	"time"

	"stayhub/internal/domain/listing"
	"stayhub/internal/domain/shared/daterange"
	"stayhub/internal/domain/shared/money"
)

type Reserved struct {
	ReservationID ReservationID
	ListingID     listing.ListingID
	GuestID       string
	Range         daterange.DateRange
	Guests        int
	Total         money.Money
	At            time.Time
}

func (e Reserved) EventName() string     { return "reservation.reserved" }
func (e Reserved) AggregateID() string   { return string(e.ReservationID) }
func (e Reserved) OccurredAt() time.Time { return e.At }

type Confirmed struct {
	ReservationID ReservationID
	ListingID     listing.ListingID
	Range         daterange.DateRange
	Total         money.Money
	At            time.Time
}

func (e Confirmed) EventName() string     { return "reservation.confirmed" }
func (e Confirmed) AggregateID() string   { return string(e.ReservationID) }
func (e Confirmed) OccurredAt() time.Time { return e.At }

type Cancelled struct {
	ReservationID ReservationID
	ListingID     listing.ListingID
	Range         daterange.DateRange
	At            time.Time
}

func (e Cancelled) EventName() string     { return "reservation.cancelled" }
func (e Cancelled) AggregateID() string   { return string(e.ReservationID) }
func (e Cancelled) OccurredAt() time.Time { return e.At }
