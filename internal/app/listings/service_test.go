package listings_test

import (
	"context"
	"io"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"stayhub/internal/app/listings"
	"stayhub/internal/domain/authz"
	"stayhub/internal/domain/listing"
	"stayhub/internal/domain/shared/approval"
	"stayhub/internal/domain/shared/money"
	"stayhub/internal/domain/user"
	"stayhub/internal/infra/storage/memory"
)

var clock = time.Date(2025, 6, 1, 10, 0, 0, 0, time.UTC)

var (
	hostActor  = authz.Actor{ID: "host-1", Roles: []user.Role{user.RoleGuest, user.RoleHost}}
	otherHost  = authz.Actor{ID: "host-2", Roles: []user.Role{user.RoleGuest, user.RoleHost}}
	guestActor = authz.Actor{ID: "guest-1", Roles: []user.Role{user.RoleGuest}}
	adminActor = authz.Actor{ID: "admin-1", Roles: []user.Role{user.RoleAdmin}}
)

type activeStub struct {
	active bool
}

func (s activeStub) HasActive(context.Context, listing.ListingID) (bool, error) {
	return s.active, nil
}

func newService(active bool) *listings.Service {
	return &listings.Service{
		Listings:     memory.NewListingRepository(),
		Reservations: activeStub{active: active},
		Now:          func() time.Time { return clock },
	}
}

func create(t *testing.T, svc *listings.Service, actor authz.Actor) *listing.Listing {
	t.Helper()
	l, err := svc.Create(context.Background(), listings.CreateParams{
		Title:         "Sea view apartment",
		Description:   "Two rooms near the water",
		City:          "Lisbon",
		PricePerNight: money.Must(10000, "USD"),
		MaxGuests:     4,
		Actor:         actor,
	})
	require.NoError(t, err)
	return l
}

func TestCreateEntersPendingQueue(t *testing.T) {
	svc := newService(false)
	l := create(t, svc, hostActor)

	assert.Equal(t, approval.StatusPending, l.Approval)
	assert.Equal(t, listing.HostID("host-1"), l.Host)
	assert.False(t, l.Bookable())
}

func TestCreateRequiresHostRole(t *testing.T) {
	svc := newService(false)
	_, err := svc.Create(context.Background(), listings.CreateParams{
		Title:         "t",
		PricePerNight: money.Must(100, "USD"),
		MaxGuests:     1,
		Actor:         guestActor,
	})
	assert.ErrorIs(t, err, authz.ErrForbidden)
}

func TestSetApproval(t *testing.T) {
	svc := newService(false)
	l := create(t, svc, hostActor)

	approved, err := svc.SetApproval(context.Background(), l.ID, approval.StatusApproved, adminActor)
	require.NoError(t, err)
	assert.True(t, approved.Bookable())

	// admin reverses the decision later
	rejected, err := svc.SetApproval(context.Background(), l.ID, approval.StatusRejected, adminActor)
	require.NoError(t, err)
	assert.Equal(t, approval.StatusRejected, rejected.Approval)
	assert.False(t, rejected.Bookable())

	// but never back to pending
	_, err = svc.SetApproval(context.Background(), l.ID, approval.StatusPending, adminActor)
	assert.ErrorIs(t, err, approval.ErrInvalidTransition)
}

func TestSetApprovalIsAdminOnly(t *testing.T) {
	svc := newService(false)
	l := create(t, svc, hostActor)

	_, err := svc.SetApproval(context.Background(), l.ID, approval.StatusApproved, hostActor)
	assert.ErrorIs(t, err, authz.ErrForbidden)

	_, err = svc.SetApproval(context.Background(), l.ID, approval.StatusApproved, guestActor)
	assert.ErrorIs(t, err, authz.ErrForbidden)
}

func TestUpdateOwnership(t *testing.T) {
	svc := newService(false)
	l := create(t, svc, hostActor)

	params := listing.UpdateParams{
		Title:         "Renamed",
		PricePerNight: money.Must(12000, "USD"),
		MaxGuests:     3,
	}
	updated, err := svc.Update(context.Background(), l.ID, params, hostActor)
	require.NoError(t, err)
	assert.Equal(t, "Renamed", updated.Title)
	assert.Equal(t, int64(12000), updated.PricePerNight.Amount)

	_, err = svc.Update(context.Background(), l.ID, params, otherHost)
	assert.ErrorIs(t, err, authz.ErrForbidden)
}

func TestUpdateKeepsApprovalStatus(t *testing.T) {
	svc := newService(false)
	l := create(t, svc, hostActor)
	_, err := svc.SetApproval(context.Background(), l.ID, approval.StatusApproved, adminActor)
	require.NoError(t, err)

	updated, err := svc.Update(context.Background(), l.ID, listing.UpdateParams{
		Title:         "Still live",
		PricePerNight: money.Must(9000, "USD"),
		MaxGuests:     2,
	}, hostActor)
	require.NoError(t, err)
	assert.True(t, updated.Bookable())
}

func TestUploadPhoto(t *testing.T) {
	uploader := &photoRecorder{}
	svc := newService(false)
	svc.Photos = uploader
	l := create(t, svc, hostActor)

	updated, err := svc.UploadPhoto(context.Background(), l.ID, hostActor, strings.NewReader("jpeg-bytes"), "image/jpeg")
	require.NoError(t, err)
	assert.Contains(t, updated.PhotoURL, "listings/"+string(l.ID)+"/")
	assert.True(t, strings.HasPrefix(uploader.key, "listings/"+string(l.ID)+"/"))

	_, err = svc.UploadPhoto(context.Background(), l.ID, otherHost, strings.NewReader("x"), "image/jpeg")
	assert.ErrorIs(t, err, authz.ErrForbidden)
}

func TestDeleteBlockedByActiveReservations(t *testing.T) {
	svc := newService(true)
	l := create(t, svc, hostActor)

	err := svc.Delete(context.Background(), l.ID, hostActor)
	assert.ErrorIs(t, err, listings.ErrActiveReservations)
}

func TestDelete(t *testing.T) {
	svc := newService(false)
	l := create(t, svc, hostActor)

	assert.ErrorIs(t, svc.Delete(context.Background(), l.ID, otherHost), authz.ErrForbidden)

	require.NoError(t, svc.Delete(context.Background(), l.ID, hostActor))
	_, err := svc.Listings.ByID(context.Background(), l.ID)
	assert.ErrorIs(t, err, listing.ErrNotFound)
}

func TestGetVisibility(t *testing.T) {
	svc := newService(false)
	l := create(t, svc, hostActor)

	// pending listings are hidden from everyone but owner and admin
	_, err := svc.Get(context.Background(), l.ID, guestActor)
	assert.ErrorIs(t, err, listing.ErrNotFound)

	_, err = svc.Get(context.Background(), l.ID, hostActor)
	assert.NoError(t, err)
	_, err = svc.Get(context.Background(), l.ID, adminActor)
	assert.NoError(t, err)

	_, err = svc.SetApproval(context.Background(), l.ID, approval.StatusApproved, adminActor)
	require.NoError(t, err)
	_, err = svc.Get(context.Background(), l.ID, guestActor)
	assert.NoError(t, err)
}

func TestCatalogOnlyApproved(t *testing.T) {
	svc := newService(false)
	approvedListing := create(t, svc, hostActor)
	create(t, svc, hostActor)

	_, err := svc.SetApproval(context.Background(), approvedListing.ID, approval.StatusApproved, adminActor)
	require.NoError(t, err)

	catalog, err := svc.Catalog(context.Background(), "")
	require.NoError(t, err)
	require.Len(t, catalog, 1)
	assert.Equal(t, approvedListing.ID, catalog[0].ID)

	byHost, err := svc.ListByHost(context.Background(), "host-1")
	require.NoError(t, err)
	assert.Len(t, byHost, 2)

	all, err := svc.ListAll(context.Background(), adminActor)
	require.NoError(t, err)
	assert.Len(t, all, 2)

	_, err = svc.ListAll(context.Background(), hostActor)
	assert.ErrorIs(t, err, authz.ErrForbidden)
}

type photoRecorder struct {
	key string
}

func (p *photoRecorder) Upload(_ context.Context, key string, _ io.Reader, _ string) (string, error) {
	p.key = key
	return "http://photos.local/" + key, nil
}
