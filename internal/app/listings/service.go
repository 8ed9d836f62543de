package listings

import (
	"context"
	"errors"
	"fmt"
	"io"
	"time"

	"github.com/google/uuid"

	appoutbox "stayhub/internal/app/outbox"
	"stayhub/internal/domain/authz"
	"stayhub/internal/domain/listing"
	"stayhub/internal/domain/shared/approval"
	"stayhub/internal/domain/shared/money"
)

// ErrActiveReservations blocks listing deletion while pending or confirmed
// reservations still reference the listing.
var ErrActiveReservations = errors.New("listings: active reservations exist")

// ActiveChecker answers whether a listing still has active reservations.
type ActiveChecker interface {
	HasActive(ctx context.Context, id listing.ListingID) (bool, error)
}

// PhotoUploader stores listing photos and returns a public URL.
type PhotoUploader interface {
	Upload(ctx context.Context, key string, reader io.Reader, contentType string) (string, error)
}

// Service owns the listing lifecycle: host-side content management and the
// admin approval workflow.
type Service struct {
	Listings     listing.Repository
	Reservations ActiveChecker
	Photos       PhotoUploader
	Outbox       appoutbox.Outbox
	Now          func() time.Time
}

func (s *Service) now() time.Time {
	if s.Now != nil {
		return s.Now().UTC()
	}
	return time.Now().UTC()
}

type CreateParams struct {
	Title         string
	Description   string
	Address       string
	City          string
	PricePerNight money.Money
	MaxGuests     int
	Actor         authz.Actor
}

// Create registers a host's listing. It always enters the pending approval
// queue; only an admin decision makes it bookable.
func (s *Service) Create(ctx context.Context, params CreateParams) (*listing.Listing, error) {
	if params.Actor.Banned || !(params.Actor.IsHost() || params.Actor.IsAdmin()) {
		return nil, authz.ErrForbidden
	}
	l, err := listing.New(listing.CreateParams{
		ID:            listing.ListingID(uuid.NewString()),
		Host:          listing.HostID(params.Actor.ID),
		Title:         params.Title,
		Description:   params.Description,
		Address:       params.Address,
		City:          params.City,
		PricePerNight: params.PricePerNight,
		MaxGuests:     params.MaxGuests,
		Now:           s.now(),
	})
	if err != nil {
		return nil, err
	}
	if err := s.Listings.Save(ctx, l); err != nil {
		return nil, err
	}
	if err := s.drainEvents(ctx, l); err != nil {
		return nil, err
	}
	return l, nil
}

// Update edits content fields. Owner or admin only; approval status is never
// writable through here.
func (s *Service) Update(ctx context.Context, id listing.ListingID, params listing.UpdateParams, actor authz.Actor) (*listing.Listing, error) {
	l, err := s.Listings.ByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := requireOwnerOrAdmin(actor, l); err != nil {
		return nil, err
	}
	if err := l.UpdateDetails(params, s.now()); err != nil {
		return nil, err
	}
	if err := s.Listings.Save(ctx, l); err != nil {
		return nil, err
	}
	return l, nil
}

// UploadPhoto stores a listing photo in object storage and records its URL.
func (s *Service) UploadPhoto(ctx context.Context, id listing.ListingID, actor authz.Actor, reader io.Reader, contentType string) (*listing.Listing, error) {
	if s.Photos == nil {
		return nil, errors.New("listings: photo storage not configured")
	}
	l, err := s.Listings.ByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := requireOwnerOrAdmin(actor, l); err != nil {
		return nil, err
	}
	key := fmt.Sprintf("listings/%s/%s", l.ID, uuid.NewString())
	url, err := s.Photos.Upload(ctx, key, reader, contentType)
	if err != nil {
		return nil, err
	}
	l.SetPhotoURL(url, s.now())
	if err := s.Listings.Save(ctx, l); err != nil {
		return nil, err
	}
	return l, nil
}

// SetApproval applies an admin moderation decision, including reversal of an
// earlier decision.
func (s *Service) SetApproval(ctx context.Context, id listing.ListingID, status approval.Status, actor authz.Actor) (*listing.Listing, error) {
	l, err := s.Listings.ByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := authz.CanTransition(actor, authz.ActionReviewListing, authz.Resource{HostID: string(l.Host)}); err != nil {
		return nil, err
	}
	if err := l.SetApproval(status, s.now()); err != nil {
		return nil, err
	}
	if err := s.Listings.Save(ctx, l); err != nil {
		return nil, err
	}
	if err := s.drainEvents(ctx, l); err != nil {
		return nil, err
	}
	return l, nil
}

// Delete removes a listing. Owner or admin; refused while active
// reservations reference it so paid stays are never silently orphaned.
func (s *Service) Delete(ctx context.Context, id listing.ListingID, actor authz.Actor) error {
	l, err := s.Listings.ByID(ctx, id)
	if err != nil {
		return err
	}
	if err := authz.CanTransition(actor, authz.ActionDeleteListing, authz.Resource{HostID: string(l.Host)}); err != nil {
		return err
	}
	if s.Reservations != nil {
		active, err := s.Reservations.HasActive(ctx, l.ID)
		if err != nil {
			return err
		}
		if active {
			return ErrActiveReservations
		}
	}
	return s.Listings.Delete(ctx, l.ID)
}

// Get returns one listing respecting visibility: approved listings are
// public, pending and rejected ones are visible only to their owner and to
// admins.
func (s *Service) Get(ctx context.Context, id listing.ListingID, actor authz.Actor) (*listing.Listing, error) {
	l, err := s.Listings.ByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if l.Bookable() {
		return l, nil
	}
	if actor.IsAdmin() || (actor.ID != "" && actor.ID == string(l.Host)) {
		return l, nil
	}
	return nil, listing.ErrNotFound
}

// Catalog is the guest-facing discovery feed: approved listings only.
func (s *Service) Catalog(ctx context.Context, city string) ([]*listing.Listing, error) {
	return s.Listings.List(ctx, listing.Query{OnlyApproved: true, City: city})
}

// ListByHost returns everything the host owns regardless of approval status.
func (s *Service) ListByHost(ctx context.Context, host listing.HostID) ([]*listing.Listing, error) {
	return s.Listings.List(ctx, listing.Query{Host: host})
}

// ListAll is the admin review queue across all statuses.
func (s *Service) ListAll(ctx context.Context, actor authz.Actor) ([]*listing.Listing, error) {
	if actor.Banned || !actor.IsAdmin() {
		return nil, authz.ErrForbidden
	}
	return s.Listings.List(ctx, listing.Query{})
}

func requireOwnerOrAdmin(actor authz.Actor, l *listing.Listing) error {
	if actor.Banned {
		return authz.ErrForbidden
	}
	if actor.IsAdmin() || actor.ID == string(l.Host) {
		return nil
	}
	return authz.ErrForbidden
}

func (s *Service) drainEvents(ctx context.Context, l *listing.Listing) error {
	pending := l.PendingEvents()
	l.ClearEvents()
	return appoutbox.RecordDomainEvents(ctx, s.Outbox, nil, pending)
}
