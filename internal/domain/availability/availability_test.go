package availability_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"stayhub/internal/domain/availability"
	"stayhub/internal/domain/reservation"
	"stayhub/internal/domain/shared/daterange"
	"stayhub/internal/domain/shared/money"
	"stayhub/internal/infra/storage/memory"
)

const listingID = "lst-1"

func day(d int) time.Time {
	return time.Date(2025, 6, d, 0, 0, 0, 0, time.UTC)
}

func save(t *testing.T, repo *memory.ReservationRepository, id string, inDay, outDay int, status reservation.Status) {
	t.Helper()
	dr, err := daterange.New(day(inDay), day(outDay))
	require.NoError(t, err)
	r, err := reservation.New(reservation.CreateParams{
		ID:        reservation.ReservationID(id),
		ListingID: listingID,
		GuestID:   "guest-1",
		Range:     dr,
		Guests:    2,
		Total:     money.Must(10000, "USD"),
		CreatedAt: day(1),
	})
	require.NoError(t, err)
	switch status {
	case reservation.StatusConfirmed:
		require.NoError(t, r.Confirm(day(1)))
	case reservation.StatusCancelled:
		require.NoError(t, r.Cancel(day(1)))
	}
	require.NoError(t, repo.Save(context.Background(), r))
}

func checker(repo *memory.ReservationRepository) availability.Checker {
	return availability.Checker{Reservations: repo}
}

func available(t *testing.T, c availability.Checker, inDay, outDay int) bool {
	t.Helper()
	dr, err := daterange.New(day(inDay), day(outDay))
	require.NoError(t, err)
	free, err := c.IsAvailable(context.Background(), listingID, dr, "")
	require.NoError(t, err)
	return free
}

func TestIsAvailable(t *testing.T) {
	repo := memory.NewReservationRepository()
	save(t, repo, "res-1", 10, 15, reservation.StatusConfirmed)
	save(t, repo, "res-2", 20, 22, reservation.StatusPending)
	c := checker(repo)

	assert.False(t, available(t, c, 12, 14), "overlap with confirmed stay")
	assert.False(t, available(t, c, 21, 25), "overlap with pending stay")
	assert.True(t, available(t, c, 15, 20), "gap between stays, checkout day reusable")
	assert.True(t, available(t, c, 5, 10), "ends on existing check-in")
	assert.True(t, available(t, c, 22, 28))
}

func TestCancelledReservationsReleaseDates(t *testing.T) {
	repo := memory.NewReservationRepository()
	save(t, repo, "res-1", 10, 15, reservation.StatusCancelled)

	assert.True(t, available(t, checker(repo), 10, 15))
}

func TestIsAvailableExcludesGivenReservation(t *testing.T) {
	repo := memory.NewReservationRepository()
	save(t, repo, "res-1", 10, 15, reservation.StatusConfirmed)

	dr, err := daterange.New(day(12), day(14))
	require.NoError(t, err)
	free, err := checker(repo).IsAvailable(context.Background(), listingID, dr, "res-1")
	require.NoError(t, err)
	assert.True(t, free)
}

func TestBookedIntervalsSorted(t *testing.T) {
	repo := memory.NewReservationRepository()
	save(t, repo, "res-1", 20, 22, reservation.StatusPending)
	save(t, repo, "res-2", 10, 15, reservation.StatusConfirmed)
	save(t, repo, "res-3", 16, 18, reservation.StatusCancelled)

	intervals, err := checker(repo).BookedIntervals(context.Background(), listingID)
	require.NoError(t, err)
	require.Len(t, intervals, 2)
	assert.Equal(t, day(10), intervals[0].CheckIn)
	assert.Equal(t, day(20), intervals[1].CheckIn)
}

func TestBookedDates(t *testing.T) {
	repo := memory.NewReservationRepository()
	save(t, repo, "res-1", 10, 12, reservation.StatusConfirmed)
	save(t, repo, "res-2", 14, 16, reservation.StatusPending)

	dates, err := checker(repo).BookedDates(context.Background(), listingID)
	require.NoError(t, err)
	require.Len(t, dates, 4)
	assert.Equal(t, day(10), dates[0])
	assert.Equal(t, day(11), dates[1])
	assert.Equal(t, day(14), dates[2])
	assert.Equal(t, day(15), dates[3])
}

func TestOverlappingActiveRecordsFailLoudly(t *testing.T) {
	repo := memory.NewReservationRepository()
	save(t, repo, "res-1", 10, 15, reservation.StatusConfirmed)
	save(t, repo, "res-2", 12, 16, reservation.StatusConfirmed)

	dr, err := daterange.New(day(20), day(22))
	require.NoError(t, err)
	_, err = checker(repo).IsAvailable(context.Background(), listingID, dr, "")
	assert.ErrorIs(t, err, availability.ErrCalendarCorrupted)
}
