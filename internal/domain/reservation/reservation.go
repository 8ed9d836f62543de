package reservation

import (
	"context"
	"errors"
	"time"

	"stayhub/internal/domain/listing"
	"stayhub/internal/domain/shared/daterange"
	"stayhub/internal/domain/shared/events"
	"stayhub/internal/domain/shared/money"
)

var (
	ErrNotFound           = errors.New("reservation: not found")
	ErrInvalidGuests      = errors.New("reservation: guest count must be positive")
	ErrCapacityExceeded   = errors.New("reservation: guest count exceeds listing capacity")
	ErrCheckInInPast      = errors.New("reservation: check-in date is in the past")
	ErrListingNotBookable = errors.New("reservation: listing is not approved for booking")
	ErrListingUnavailable = errors.New("reservation: dates are already booked")
	ErrTerminalState      = errors.New("reservation: cancelled reservations cannot transition")
	ErrInvalidStatus      = errors.New("reservation: unknown status")
)

type ReservationID string

type Status string

const (
	StatusPending   Status = "pending"
	StatusConfirmed Status = "confirmed"
	StatusCancelled Status = "cancelled"
)

// ParseStatus validates a wire-level status value.
func ParseStatus(raw string) (Status, error) {
	switch Status(raw) {
	case StatusPending, StatusConfirmed, StatusCancelled:
		return Status(raw), nil
	default:
		return "", ErrInvalidStatus
	}
}

// Active reports whether the status counts toward the overlap set. Cancelled
// reservations release their dates.
func (s Status) Active() bool {
	return s == StatusPending || s == StatusConfirmed
}

// ActiveStatuses is the overlap set used by availability queries.
var ActiveStatuses = []Status{StatusPending, StatusConfirmed}

// Reservation ties one guest and one listing to a stay interval. The record
// owns its interval and its price; the price is derived at creation and never
// recomputed afterwards.
type Reservation struct {
	ID        ReservationID
	ListingID listing.ListingID
	GuestID   string
	Range     daterange.DateRange
	Guests    int
	Total     money.Money
	Status    Status
	CreatedAt time.Time
	UpdatedAt time.Time
	Version   int64
	events.EventRecorder
}

type Repository interface {
	ByID(ctx context.Context, id ReservationID) (*Reservation, error)
	Save(ctx context.Context, r *Reservation) error
	// ByListing returns the listing's reservations whose status is in the
	// given set; an empty set means all statuses.
	ByListing(ctx context.Context, id listing.ListingID, statuses []Status) ([]*Reservation, error)
	ByGuest(ctx context.Context, guestID string) ([]*Reservation, error)
	All(ctx context.Context) ([]*Reservation, error)
	Delete(ctx context.Context, id ReservationID) error
}

type CreateParams struct {
	ID        ReservationID
	ListingID listing.ListingID
	GuestID   string
	Range     daterange.DateRange
	Guests    int
	Total     money.Money
	CreatedAt time.Time
}

func New(params CreateParams) (*Reservation, error) {
	if params.Guests <= 0 {
		return nil, ErrInvalidGuests
	}
	if params.GuestID == "" {
		return nil, errors.New("reservation: guest id required")
	}
	now := params.CreatedAt.UTC()
	r := &Reservation{
		ID:        params.ID,
		ListingID: params.ListingID,
		GuestID:   params.GuestID,
		Range:     params.Range,
		Guests:    params.Guests,
		Total:     params.Total,
		Status:    StatusPending,
		CreatedAt: now,
		UpdatedAt: now,
	}
	r.Record(Reserved{ReservationID: r.ID, ListingID: r.ListingID, GuestID: r.GuestID, Range: r.Range, Guests: r.Guests, Total: r.Total, At: now})
	return r, nil
}

// ValidateDateRange rejects stays whose check-in lies before today.
func ValidateDateRange(dr daterange.DateRange, now time.Time) error {
	if dr.CheckIn.Before(daterange.Day(now)) {
		return ErrCheckInInPast
	}
	return nil
}

// Confirm moves a pending reservation to confirmed. Re-confirming is a
// no-op; confirming a cancelled reservation fails with ErrTerminalState.
// Availability is not re-checked here: the slot was claimed at creation.
func (r *Reservation) Confirm(now time.Time) error {
	switch r.Status {
	case StatusConfirmed:
		return nil
	case StatusCancelled:
		return ErrTerminalState
	}
	r.Status = StatusConfirmed
	r.UpdatedAt = now.UTC()
	r.Record(Confirmed{ReservationID: r.ID, ListingID: r.ListingID, Range: r.Range, Total: r.Total, At: r.UpdatedAt})
	return nil
}

// Cancel releases the reservation's dates. Legal from pending and confirmed;
// cancelling twice is a no-op.
func (r *Reservation) Cancel(now time.Time) error {
	if r.Status == StatusCancelled {
		return nil
	}
	r.Status = StatusCancelled
	r.UpdatedAt = now.UTC()
	r.Record(Cancelled{ReservationID: r.ID, ListingID: r.ListingID, Range: r.Range, At: r.UpdatedAt})
	return nil
}

// Transition dispatches a requested status change through the state machine.
func (r *Reservation) Transition(next Status, now time.Time) error {
	switch next {
	case StatusConfirmed:
		return r.Confirm(now)
	case StatusCancelled:
		return r.Cancel(now)
	case StatusPending:
		if r.Status == StatusPending {
			return nil
		}
		if r.Status == StatusCancelled {
			return ErrTerminalState
		}
		return ErrInvalidStatus
	default:
		return ErrInvalidStatus
	}
}
