package reservation_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"stayhub/internal/domain/reservation"
	"stayhub/internal/domain/shared/daterange"
	"stayhub/internal/domain/shared/money"
)

var now = time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)

func newReservation(t *testing.T) *reservation.Reservation {
	t.Helper()
	dr, err := daterange.New(
		time.Date(2025, 6, 10, 0, 0, 0, 0, time.UTC),
		time.Date(2025, 6, 13, 0, 0, 0, 0, time.UTC),
	)
	require.NoError(t, err)
	r, err := reservation.New(reservation.CreateParams{
		ID:        "res-1",
		ListingID: "lst-1",
		GuestID:   "guest-1",
		Range:     dr,
		Guests:    2,
		Total:     money.Must(30000, "USD"),
		CreatedAt: now,
	})
	require.NoError(t, err)
	return r
}

func TestNewStartsPending(t *testing.T) {
	r := newReservation(t)
	assert.Equal(t, reservation.StatusPending, r.Status)
	require.Len(t, r.PendingEvents(), 1)
	assert.Equal(t, "reservation.reserved", r.PendingEvents()[0].EventName())
}

func TestNewRejectsInvalidGuests(t *testing.T) {
	_, err := reservation.New(reservation.CreateParams{ID: "r", GuestID: "g", Guests: 0})
	assert.ErrorIs(t, err, reservation.ErrInvalidGuests)
}

func TestConfirm(t *testing.T) {
	r := newReservation(t)
	require.NoError(t, r.Confirm(now))
	assert.Equal(t, reservation.StatusConfirmed, r.Status)

	// repeating the confirmation changes nothing
	before := r.UpdatedAt
	require.NoError(t, r.Confirm(now.Add(time.Hour)))
	assert.Equal(t, before, r.UpdatedAt)
}

func TestCancelIdempotent(t *testing.T) {
	r := newReservation(t)
	require.NoError(t, r.Cancel(now))
	assert.Equal(t, reservation.StatusCancelled, r.Status)
	require.NoError(t, r.Cancel(now.Add(time.Hour)))
	assert.Equal(t, reservation.StatusCancelled, r.Status)
}

func TestCancelledIsTerminal(t *testing.T) {
	r := newReservation(t)
	require.NoError(t, r.Cancel(now))
	assert.ErrorIs(t, r.Confirm(now), reservation.ErrTerminalState)
	assert.ErrorIs(t, r.Transition(reservation.StatusPending, now), reservation.ErrTerminalState)
}

func TestCancelAfterConfirm(t *testing.T) {
	r := newReservation(t)
	require.NoError(t, r.Confirm(now))
	require.NoError(t, r.Cancel(now))
	assert.Equal(t, reservation.StatusCancelled, r.Status)
}

func TestTransition(t *testing.T) {
	cases := []struct {
		name    string
		prepare func(r *reservation.Reservation)
		next    reservation.Status
		wantErr error
		want    reservation.Status
	}{
		{"pending to confirmed", func(*reservation.Reservation) {}, reservation.StatusConfirmed, nil, reservation.StatusConfirmed},
		{"pending to cancelled", func(*reservation.Reservation) {}, reservation.StatusCancelled, nil, reservation.StatusCancelled},
		{"pending to pending is noop", func(*reservation.Reservation) {}, reservation.StatusPending, nil, reservation.StatusPending},
		{"confirmed to pending rejected", func(r *reservation.Reservation) { _ = r.Confirm(now) }, reservation.StatusPending, reservation.ErrInvalidStatus, reservation.StatusConfirmed},
		{"unknown status", func(*reservation.Reservation) {}, reservation.Status("done"), reservation.ErrInvalidStatus, reservation.StatusPending},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			r := newReservation(t)
			tc.prepare(r)
			err := r.Transition(tc.next, now)
			if tc.wantErr != nil {
				assert.ErrorIs(t, err, tc.wantErr)
			} else {
				assert.NoError(t, err)
			}
			assert.Equal(t, tc.want, r.Status)
		})
	}
}

func TestParseStatus(t *testing.T) {
	s, err := reservation.ParseStatus("confirmed")
	require.NoError(t, err)
	assert.Equal(t, reservation.StatusConfirmed, s)

	_, err = reservation.ParseStatus("CONFIRMED")
	assert.ErrorIs(t, err, reservation.ErrInvalidStatus)
}

func TestStatusActive(t *testing.T) {
	assert.True(t, reservation.StatusPending.Active())
	assert.True(t, reservation.StatusConfirmed.Active())
	assert.False(t, reservation.StatusCancelled.Active())
}

func TestValidateDateRange(t *testing.T) {
	dr, err := daterange.New(
		time.Date(2025, 5, 20, 0, 0, 0, 0, time.UTC),
		time.Date(2025, 5, 23, 0, 0, 0, 0, time.UTC),
	)
	require.NoError(t, err)
	assert.ErrorIs(t, reservation.ValidateDateRange(dr, now), reservation.ErrCheckInInPast)

	// check-in today is allowed
	today, err := daterange.New(now, now.AddDate(0, 0, 2))
	require.NoError(t, err)
	assert.NoError(t, reservation.ValidateDateRange(today, now))
}
