package memory

import (
	"sync"

	domainlisting "stayhub/internal/domain/listing"
)

// ListingLocks hands out one mutex per listing id so the availability check
// and the insert of a new reservation run as a single critical section for
// that listing. Entries are created lazily and never reclaimed; the map
// stays proportional to the number of listings ever booked in-process.
type ListingLocks struct {
	mu    sync.Mutex
	locks map[domainlisting.ListingID]*sync.Mutex
}

func NewListingLocks() *ListingLocks {
	return &ListingLocks{locks: make(map[domainlisting.ListingID]*sync.Mutex)}
}

func (l *ListingLocks) Lock(id domainlisting.ListingID) {
	l.forListing(id).Lock()
}

func (l *ListingLocks) Unlock(id domainlisting.ListingID) {
	l.forListing(id).Unlock()
}

func (l *ListingLocks) forListing(id domainlisting.ListingID) *sync.Mutex {
	l.mu.Lock()
	defer l.mu.Unlock()
	m, ok := l.locks[id]
	if !ok {
		m = &sync.Mutex{}
		l.locks[id] = m
	}
	return m
}
