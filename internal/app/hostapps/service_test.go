package hostapps_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"stayhub/internal/app/hostapps"
	"stayhub/internal/domain/authz"
	"stayhub/internal/domain/hostapp"
	"stayhub/internal/domain/shared/approval"
	"stayhub/internal/domain/user"
	"stayhub/internal/infra/storage/memory"
)

var clock = time.Date(2025, 6, 1, 10, 0, 0, 0, time.UTC)

var (
	applicant  = authz.Actor{ID: "user-1", Roles: []user.Role{user.RoleGuest}}
	hostActor  = authz.Actor{ID: "host-1", Roles: []user.Role{user.RoleGuest, user.RoleHost}}
	adminActor = authz.Actor{ID: "admin-1", Roles: []user.Role{user.RoleAdmin}}
)

func newService(t *testing.T) *hostapps.Service {
	t.Helper()
	users := memory.NewUserRepository()
	u, err := user.New(user.CreateParams{
		ID:           "user-1",
		Email:        "user@example.com",
		Name:         "Sam",
		PasswordHash: "hash",
		CreatedAt:    clock,
	})
	require.NoError(t, err)
	require.NoError(t, users.Save(context.Background(), u))

	return &hostapps.Service{
		Applications: memory.NewHostApplicationRepository(),
		Users:        users,
		Now:          func() time.Time { return clock },
	}
}

func apply(t *testing.T, svc *hostapps.Service, actor authz.Actor) *hostapp.Application {
	t.Helper()
	app, err := svc.Apply(context.Background(), hostapps.ApplyParams{
		PhoneNumber: "+351000000",
		City:        "Lisbon",
		Motivation:  "I have a spare apartment",
		Actor:       actor,
	})
	require.NoError(t, err)
	return app
}

func TestApply(t *testing.T) {
	svc := newService(t)
	app := apply(t, svc, applicant)

	assert.Equal(t, approval.StatusPending, app.Status)
	assert.Equal(t, user.ID("user-1"), app.UserID)
}

func TestApplyRejectsSecondPending(t *testing.T) {
	svc := newService(t)
	apply(t, svc, applicant)

	_, err := svc.Apply(context.Background(), hostapps.ApplyParams{
		PhoneNumber: "+351000000",
		Motivation:  "again",
		Actor:       applicant,
	})
	assert.ErrorIs(t, err, hostapp.ErrAlreadyPending)
}

func TestApplyRejectsExistingHost(t *testing.T) {
	svc := newService(t)
	_, err := svc.Apply(context.Background(), hostapps.ApplyParams{
		PhoneNumber: "+351000000",
		Motivation:  "more listings",
		Actor:       hostActor,
	})
	assert.ErrorIs(t, err, authz.ErrForbidden)
}

func TestReviewApprovalPromotesApplicant(t *testing.T) {
	svc := newService(t)
	app := apply(t, svc, applicant)

	reviewed, err := svc.Review(context.Background(), app.ID, approval.StatusApproved, "looks good", adminActor)
	require.NoError(t, err)
	assert.Equal(t, approval.StatusApproved, reviewed.Status)
	assert.Equal(t, "looks good", reviewed.AdminNotes)

	u, err := svc.Users.ByID(context.Background(), "user-1")
	require.NoError(t, err)
	assert.True(t, u.HasRole(user.RoleHost))
}

func TestReviewRejectionKeepsGuestRole(t *testing.T) {
	svc := newService(t)
	app := apply(t, svc, applicant)

	_, err := svc.Review(context.Background(), app.ID, approval.StatusRejected, "no listings yet", adminActor)
	require.NoError(t, err)

	u, err := svc.Users.ByID(context.Background(), "user-1")
	require.NoError(t, err)
	assert.False(t, u.HasRole(user.RoleHost))

	// a rejected applicant may file a fresh application
	_, err = svc.Apply(context.Background(), hostapps.ApplyParams{
		PhoneNumber: "+351000000",
		Motivation:  "second try",
		Actor:       applicant,
	})
	assert.NoError(t, err)
}

func TestReviewIsAdminOnly(t *testing.T) {
	svc := newService(t)
	app := apply(t, svc, applicant)

	_, err := svc.Review(context.Background(), app.ID, approval.StatusApproved, "", applicant)
	assert.ErrorIs(t, err, authz.ErrForbidden)
}

func TestListing(t *testing.T) {
	svc := newService(t)
	apply(t, svc, applicant)

	mine, err := svc.ListMine(context.Background(), applicant)
	require.NoError(t, err)
	assert.Len(t, mine, 1)

	all, err := svc.ListAll(context.Background(), adminActor)
	require.NoError(t, err)
	assert.Len(t, all, 1)

	_, err = svc.ListAll(context.Background(), applicant)
	assert.ErrorIs(t, err, authz.ErrForbidden)
}
