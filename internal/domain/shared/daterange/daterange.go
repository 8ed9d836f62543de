package daterange

import (
	"errors"
	"fmt"
	"time"
)

var ErrInvalidRange = errors.New("daterange: check-out must be after check-in")

// DateRange is a half-open stay interval [CheckIn, CheckOut). Both bounds are
// calendar dates normalized to UTC midnight; time-of-day carried by the inputs
// is discarded.
type DateRange struct {
	CheckIn  time.Time
	CheckOut time.Time
}

// New builds a DateRange from two instants, truncating both to their UTC
// calendar date. Fails with ErrInvalidRange unless checkOut is strictly after
// checkIn, so every valid range covers at least one night.
func New(checkIn, checkOut time.Time) (DateRange, error) {
	in := Day(checkIn)
	out := Day(checkOut)
	if !out.After(in) {
		return DateRange{}, ErrInvalidRange
	}
	return DateRange{CheckIn: in, CheckOut: out}, nil
}

// Day truncates an instant to its UTC calendar date.
func Day(t time.Time) time.Time {
	t = t.UTC()
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}

// Overlaps reports whether two half-open ranges share at least one night.
// A check-out on day N never conflicts with a check-in on day N.
func (r DateRange) Overlaps(other DateRange) bool {
	return r.CheckIn.Before(other.CheckOut) && other.CheckIn.Before(r.CheckOut)
}

// Contains reports whether the given calendar day falls inside [CheckIn, CheckOut).
func (r DateRange) Contains(day time.Time) bool {
	d := Day(day)
	return !d.Before(r.CheckIn) && d.Before(r.CheckOut)
}

// Nights returns the stay length in whole nights. Always >= 1 for a range
// produced by New.
func (r DateRange) Nights() int {
	return int(r.CheckOut.Sub(r.CheckIn).Hours() / 24)
}

// Days enumerates the occupied calendar days, check-in inclusive, check-out
// exclusive.
func (r DateRange) Days() []time.Time {
	days := make([]time.Time, 0, r.Nights())
	for d := r.CheckIn; d.Before(r.CheckOut); d = d.AddDate(0, 0, 1) {
		days = append(days, d)
	}
	return days
}

func (r DateRange) String() string {
	return fmt.Sprintf("[%s, %s)", r.CheckIn.Format("2006-01-02"), r.CheckOut.Format("2006-01-02"))
}
