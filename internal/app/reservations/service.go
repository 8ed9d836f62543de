package reservations

import (
	"context"
	"time"

	"github.com/google/uuid"

	appoutbox "stayhub/internal/app/outbox"
	"stayhub/internal/domain/authz"
	"stayhub/internal/domain/availability"
	"stayhub/internal/domain/listing"
	"stayhub/internal/domain/pricing"
	"stayhub/internal/domain/reservation"
	"stayhub/internal/domain/shared/daterange"
)

// ListingLocker serializes the check-then-insert sequence per listing so two
// concurrent creations for overlapping dates cannot both observe "available".
type ListingLocker interface {
	Lock(id listing.ListingID)
	Unlock(id listing.ListingID)
}

// Service composes availability, pricing and the reservation state machine
// into the externally callable booking operations.
type Service struct {
	Reservations reservation.Repository
	Listings     listing.Repository
	Locks        ListingLocker
	Outbox       appoutbox.Outbox
	Now          func() time.Time
}

func (s *Service) now() time.Time {
	if s.Now != nil {
		return s.Now().UTC()
	}
	return time.Now().UTC()
}

func (s *Service) checker() availability.Checker {
	return availability.Checker{Reservations: s.Reservations}
}

type CreateParams struct {
	ListingID listing.ListingID
	CheckIn   time.Time
	CheckOut  time.Time
	Guests    int
	Actor     authz.Actor
}

// Create books a stay: it validates the range, prices it, and atomically
// checks availability and inserts the pending record while holding the
// listing's lock. At most one of several concurrent overlapping attempts for
// a listing can succeed; the rest fail with ErrListingUnavailable.
func (s *Service) Create(ctx context.Context, params CreateParams) (*reservation.Reservation, error) {
	if params.Actor.Banned || params.Actor.ID == "" {
		return nil, authz.ErrForbidden
	}
	dr, err := daterange.New(params.CheckIn, params.CheckOut)
	if err != nil {
		return nil, err
	}
	now := s.now()
	if err := reservation.ValidateDateRange(dr, now); err != nil {
		return nil, err
	}

	l, err := s.Listings.ByID(ctx, params.ListingID)
	if err != nil {
		return nil, err
	}
	if !l.Bookable() {
		return nil, reservation.ErrListingNotBookable
	}
	if params.Guests <= 0 {
		return nil, reservation.ErrInvalidGuests
	}
	if params.Guests > l.MaxGuests {
		return nil, reservation.ErrCapacityExceeded
	}

	quote, err := pricing.Quote(dr, l.PricePerNight)
	if err != nil {
		return nil, err
	}

	s.Locks.Lock(l.ID)
	defer s.Locks.Unlock(l.ID)

	free, err := s.checker().IsAvailable(ctx, l.ID, dr, "")
	if err != nil {
		return nil, err
	}
	if !free {
		return nil, reservation.ErrListingUnavailable
	}

	res, err := reservation.New(reservation.CreateParams{
		ID:        reservation.ReservationID(uuid.NewString()),
		ListingID: l.ID,
		GuestID:   params.Actor.ID,
		Range:     dr,
		Guests:    params.Guests,
		Total:     quote.Total,
		CreatedAt: now,
	})
	if err != nil {
		return nil, err
	}
	if err := s.Reservations.Save(ctx, res); err != nil {
		return nil, err
	}
	if err := s.drainEvents(ctx, res); err != nil {
		return nil, err
	}
	return res, nil
}

// SetStatus applies a confirm or cancel disposition. The caller must be the
// owning host or an admin; a guest may only cancel their own reservation.
// Confirmation does not re-run the availability check: the slot was claimed
// at creation and no overlapping record can have been inserted since.
func (s *Service) SetStatus(ctx context.Context, id reservation.ReservationID, next reservation.Status, actor authz.Actor) (*reservation.Reservation, error) {
	res, err := s.Reservations.ByID(ctx, id)
	if err != nil {
		return nil, err
	}

	ownerID := ""
	if l, err := s.Listings.ByID(ctx, res.ListingID); err == nil {
		ownerID = string(l.Host)
	}

	action := authz.ActionConfirmReservation
	if next == reservation.StatusCancelled {
		action = authz.ActionCancelReservation
	}
	if err := authz.CanTransition(actor, action, authz.Resource{HostID: ownerID, GuestID: res.GuestID}); err != nil {
		return nil, err
	}

	if err := res.Transition(next, s.now()); err != nil {
		return nil, err
	}
	if err := s.Reservations.Save(ctx, res); err != nil {
		return nil, err
	}
	if err := s.drainEvents(ctx, res); err != nil {
		return nil, err
	}
	return res, nil
}

// Cancel is the guest-facing self-service cancellation.
func (s *Service) Cancel(ctx context.Context, id reservation.ReservationID, actor authz.Actor) (*reservation.Reservation, error) {
	return s.SetStatus(ctx, id, reservation.StatusCancelled, actor)
}

// Delete hard-removes a reservation for moderation. Admin only.
func (s *Service) Delete(ctx context.Context, id reservation.ReservationID, actor authz.Actor) error {
	if err := authz.CanTransition(actor, authz.ActionDeleteReservation, authz.Resource{}); err != nil {
		return err
	}
	if _, err := s.Reservations.ByID(ctx, id); err != nil {
		return err
	}
	return s.Reservations.Delete(ctx, id)
}

// ListByGuest returns the guest's own reservations.
func (s *Service) ListByGuest(ctx context.Context, guestID string) ([]*reservation.Reservation, error) {
	return s.Reservations.ByGuest(ctx, guestID)
}

// ListByHost returns reservations across all of the host's listings.
func (s *Service) ListByHost(ctx context.Context, host listing.HostID) ([]*reservation.Reservation, error) {
	owned, err := s.Listings.List(ctx, listing.Query{Host: host})
	if err != nil {
		return nil, err
	}
	var out []*reservation.Reservation
	for _, l := range owned {
		rs, err := s.Reservations.ByListing(ctx, l.ID, nil)
		if err != nil {
			return nil, err
		}
		out = append(out, rs...)
	}
	return out, nil
}

// ListAll returns every reservation; admin console view.
func (s *Service) ListAll(ctx context.Context, actor authz.Actor) ([]*reservation.Reservation, error) {
	if actor.Banned || !actor.IsAdmin() {
		return nil, authz.ErrForbidden
	}
	return s.Reservations.All(ctx)
}

// BookedIntervals exposes the listing's occupied stay intervals for calendar
// rendering. Derived view only; Create re-runs the authoritative check.
func (s *Service) BookedIntervals(ctx context.Context, id listing.ListingID) ([]daterange.DateRange, error) {
	return s.checker().BookedIntervals(ctx, id)
}

// BookedDates exposes the union of occupied days for client-side date pickers.
func (s *Service) BookedDates(ctx context.Context, id listing.ListingID) ([]time.Time, error) {
	return s.checker().BookedDates(ctx, id)
}

// HasActive reports whether the listing still has pending or confirmed
// reservations; listing deletion is refused while any exist.
func (s *Service) HasActive(ctx context.Context, id listing.ListingID) (bool, error) {
	active, err := s.Reservations.ByListing(ctx, id, reservation.ActiveStatuses)
	if err != nil {
		return false, err
	}
	return len(active) > 0, nil
}

func (s *Service) drainEvents(ctx context.Context, res *reservation.Reservation) error {
	pending := res.PendingEvents()
	res.ClearEvents()
	return appoutbox.RecordDomainEvents(ctx, s.Outbox, nil, pending)
}
