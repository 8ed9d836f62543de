package listing

import (
	"context"
	"errors"
	"strings"
	"time"

	"stayhub/internal/domain/shared/approval"
	"stayhub/internal/domain/shared/events"
	"stayhub/internal/domain/shared/money"
)

var (
	ErrNotFound       = errors.New("listing: not found")
	ErrTitleRequired  = errors.New("listing: title is required")
	ErrHostRequired   = errors.New("listing: host is required")
	ErrGuestsLimit    = errors.New("listing: max guests must be at least 1")
	ErrNightlyRate    = errors.New("listing: nightly rate must be positive")
	ErrNotApproved    = errors.New("listing: not approved")
)

type ListingID string
type HostID string

// Listing is a bookable unit owned by exactly one host. A new listing enters
// the pending approval queue; only approved listings are discoverable by
// guests and accept reservations.
type Listing struct {
	ID            ListingID
	Host          HostID
	Title         string
	Description   string
	Address       string
	City          string
	PricePerNight money.Money
	MaxGuests     int
	PhotoURL      string
	Approval      approval.Status
	Version       int64
	CreatedAt     time.Time
	UpdatedAt     time.Time
	events.EventRecorder
}

type Query struct {
	OnlyApproved bool
	Host         HostID
	City         string
}

type Repository interface {
	ByID(ctx context.Context, id ListingID) (*Listing, error)
	Save(ctx context.Context, listing *Listing) error
	List(ctx context.Context, q Query) ([]*Listing, error)
	Delete(ctx context.Context, id ListingID) error
}

type CreateParams struct {
	ID            ListingID
	Host          HostID
	Title         string
	Description   string
	Address       string
	City          string
	PricePerNight money.Money
	MaxGuests     int
	PhotoURL      string
	Now           time.Time
}

func New(params CreateParams) (*Listing, error) {
	if strings.TrimSpace(string(params.ID)) == "" {
		return nil, errors.New("listing: id is required")
	}
	if strings.TrimSpace(string(params.Host)) == "" {
		return nil, ErrHostRequired
	}
	if strings.TrimSpace(params.Title) == "" {
		return nil, ErrTitleRequired
	}
	if params.MaxGuests < 1 {
		return nil, ErrGuestsLimit
	}
	if !params.PricePerNight.IsPositive() {
		return nil, ErrNightlyRate
	}
	now := params.Now.UTC()

	l := &Listing{
		ID:            params.ID,
		Host:          params.Host,
		Title:         strings.TrimSpace(params.Title),
		Description:   strings.TrimSpace(params.Description),
		Address:       strings.TrimSpace(params.Address),
		City:          strings.TrimSpace(params.City),
		PricePerNight: params.PricePerNight,
		MaxGuests:     params.MaxGuests,
		PhotoURL:      strings.TrimSpace(params.PhotoURL),
		Approval:      approval.StatusPending,
		CreatedAt:     now,
		UpdatedAt:     now,
	}
	l.Record(Submitted{ListingID: l.ID, Host: l.Host, At: now})
	return l, nil
}

// Bookable reports whether new reservations may target this listing.
func (l *Listing) Bookable() bool {
	return l.Approval == approval.StatusApproved
}

// SetApproval applies a moderation decision. Content edits never travel
// through here; approval status is the only field a reviewer touches.
func (l *Listing) SetApproval(next approval.Status, now time.Time) error {
	updated, err := approval.Transition(l.Approval, next)
	if err != nil {
		return err
	}
	if updated == l.Approval {
		return nil
	}
	l.Approval = updated
	l.UpdatedAt = now.UTC()
	l.Record(ApprovalChanged{ListingID: l.ID, Host: l.Host, Status: updated, At: l.UpdatedAt})
	return nil
}

type UpdateParams struct {
	Title         string
	Description   string
	Address       string
	City          string
	PricePerNight money.Money
	MaxGuests     int
}

// UpdateDetails replaces the host-editable content fields. Approval status is
// deliberately untouched so edits to an approved listing stay live.
func (l *Listing) UpdateDetails(params UpdateParams, now time.Time) error {
	if strings.TrimSpace(params.Title) == "" {
		return ErrTitleRequired
	}
	if params.MaxGuests < 1 {
		return ErrGuestsLimit
	}
	if !params.PricePerNight.IsPositive() {
		return ErrNightlyRate
	}
	l.Title = strings.TrimSpace(params.Title)
	l.Description = strings.TrimSpace(params.Description)
	l.Address = strings.TrimSpace(params.Address)
	l.City = strings.TrimSpace(params.City)
	l.PricePerNight = params.PricePerNight
	l.MaxGuests = params.MaxGuests
	l.UpdatedAt = now.UTC()
	return nil
}

// SetPhotoURL stores the public URL of an uploaded listing photo.
func (l *Listing) SetPhotoURL(url string, now time.Time) {
	l.PhotoURL = strings.TrimSpace(url)
	l.UpdatedAt = now.UTC()
}
