package memory

import (
	"context"
	"sort"
	"sync"

	domainlisting "stayhub/internal/domain/listing"
	domainreservation "stayhub/internal/domain/reservation"
)

// ReservationRepository keeps reservations in memory. Reads hand out copies
// so callers never share mutable state with the store.
type ReservationRepository struct {
	mu    sync.RWMutex
	items map[domainreservation.ReservationID]*domainreservation.Reservation
}

func NewReservationRepository() *ReservationRepository {
	return &ReservationRepository{
		items: make(map[domainreservation.ReservationID]*domainreservation.Reservation),
	}
}

func (r *ReservationRepository) ByID(ctx context.Context, id domainreservation.ReservationID) (*domainreservation.Reservation, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	res, ok := r.items[id]
	if !ok {
		return nil, domainreservation.ErrNotFound
	}
	return cloneReservation(res), nil
}

func (r *ReservationRepository) Save(ctx context.Context, res *domainreservation.Reservation) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.items[res.ID] = cloneReservation(res)
	return nil
}

func (r *ReservationRepository) Delete(ctx context.Context, id domainreservation.ReservationID) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.items[id]; !ok {
		return domainreservation.ErrNotFound
	}
	delete(r.items, id)
	return nil
}

func (r *ReservationRepository) ByListing(ctx context.Context, id domainlisting.ListingID, statuses []domainreservation.Status) ([]*domainreservation.Reservation, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	matches := make([]*domainreservation.Reservation, 0)
	for _, res := range r.items {
		if res.ListingID != id {
			continue
		}
		if !statusIncluded(res.Status, statuses) {
			continue
		}
		matches = append(matches, cloneReservation(res))
	}
	sortByCreation(matches)
	return matches, nil
}

func (r *ReservationRepository) ByGuest(ctx context.Context, guestID string) ([]*domainreservation.Reservation, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	matches := make([]*domainreservation.Reservation, 0)
	for _, res := range r.items {
		if res.GuestID == guestID {
			matches = append(matches, cloneReservation(res))
		}
	}
	sortByCreation(matches)
	return matches, nil
}

func (r *ReservationRepository) All(ctx context.Context) ([]*domainreservation.Reservation, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	matches := make([]*domainreservation.Reservation, 0, len(r.items))
	for _, res := range r.items {
		matches = append(matches, cloneReservation(res))
	}
	sortByCreation(matches)
	return matches, nil
}

func statusIncluded(status domainreservation.Status, statuses []domainreservation.Status) bool {
	if len(statuses) == 0 {
		return true
	}
	for _, s := range statuses {
		if s == status {
			return true
		}
	}
	return false
}

func sortByCreation(items []*domainreservation.Reservation) {
	sort.Slice(items, func(i, j int) bool {
		if items[i].CreatedAt.Equal(items[j].CreatedAt) {
			return items[i].ID < items[j].ID
		}
		return items[i].CreatedAt.Before(items[j].CreatedAt)
	})
}

func cloneReservation(res *domainreservation.Reservation) *domainreservation.Reservation {
	clone := *res
	clone.ClearEvents()
	return &clone
}
