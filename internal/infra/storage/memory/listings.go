package memory

import (
	"context"
	"sort"
	"strings"
	"sync"

	domainlisting "stayhub/internal/domain/listing"
)

// ListingRepository is an in-memory implementation backed by a map.
type ListingRepository struct {
	mu    sync.RWMutex
	items map[domainlisting.ListingID]*domainlisting.Listing
}

func NewListingRepository() *ListingRepository {
	return &ListingRepository{
		items: make(map[domainlisting.ListingID]*domainlisting.Listing),
	}
}

func (r *ListingRepository) ByID(ctx context.Context, id domainlisting.ListingID) (*domainlisting.Listing, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	l, ok := r.items[id]
	if !ok {
		return nil, domainlisting.ErrNotFound
	}
	return cloneListing(l), nil
}

func (r *ListingRepository) Save(ctx context.Context, l *domainlisting.Listing) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.items[l.ID] = cloneListing(l)
	return nil
}

func (r *ListingRepository) Delete(ctx context.Context, id domainlisting.ListingID) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.items[id]; !ok {
		return domainlisting.ErrNotFound
	}
	delete(r.items, id)
	return nil
}

func (r *ListingRepository) List(ctx context.Context, q domainlisting.Query) ([]*domainlisting.Listing, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	matches := make([]*domainlisting.Listing, 0, len(r.items))
	for _, l := range r.items {
		if q.OnlyApproved && !l.Bookable() {
			continue
		}
		if q.Host != "" && l.Host != q.Host {
			continue
		}
		if q.City != "" && !strings.EqualFold(l.City, q.City) {
			continue
		}
		matches = append(matches, cloneListing(l))
	}
	sort.Slice(matches, func(i, j int) bool {
		return matches[i].CreatedAt.Before(matches[j].CreatedAt)
	})
	return matches, nil
}

func cloneListing(l *domainlisting.Listing) *domainlisting.Listing {
	clone := *l
	clone.ClearEvents()
	return &clone
}
