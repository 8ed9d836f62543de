package authz_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"stayhub/internal/domain/authz"
	"stayhub/internal/domain/user"
)

var (
	admin      = authz.Actor{ID: "admin-1", Roles: []user.Role{user.RoleAdmin}}
	owner      = authz.Actor{ID: "host-1", Roles: []user.Role{user.RoleGuest, user.RoleHost}}
	otherHost  = authz.Actor{ID: "host-2", Roles: []user.Role{user.RoleGuest, user.RoleHost}}
	guest      = authz.Actor{ID: "guest-1", Roles: []user.Role{user.RoleGuest}}
	otherGuest = authz.Actor{ID: "guest-2", Roles: []user.Role{user.RoleGuest}}
	banned     = authz.Actor{ID: "admin-2", Roles: []user.Role{user.RoleAdmin}, Banned: true}
)

var resource = authz.Resource{HostID: "host-1", GuestID: "guest-1"}

func TestCanTransition(t *testing.T) {
	cases := []struct {
		name    string
		actor   authz.Actor
		action  authz.Action
		allowed bool
	}{
		{"admin confirms anything", admin, authz.ActionConfirmReservation, true},
		{"owning host confirms", owner, authz.ActionConfirmReservation, true},
		{"foreign host cannot confirm", otherHost, authz.ActionConfirmReservation, false},
		{"guest cannot confirm own reservation", guest, authz.ActionConfirmReservation, false},

		{"owning host cancels", owner, authz.ActionCancelReservation, true},
		{"booking guest cancels own", guest, authz.ActionCancelReservation, true},
		{"other guest cannot cancel", otherGuest, authz.ActionCancelReservation, false},
		{"foreign host cannot cancel", otherHost, authz.ActionCancelReservation, false},
		{"admin cancels", admin, authz.ActionCancelReservation, true},

		{"listing review is admin only", owner, authz.ActionReviewListing, false},
		{"guest cannot review listing", guest, authz.ActionReviewListing, false},
		{"admin reviews listing", admin, authz.ActionReviewListing, true},

		{"owner deletes own listing", owner, authz.ActionDeleteListing, true},
		{"foreign host cannot delete listing", otherHost, authz.ActionDeleteListing, false},

		{"application review is admin only", guest, authz.ActionReviewHostApplication, false},
		{"admin reviews application", admin, authz.ActionReviewHostApplication, true},

		{"ban is admin only", owner, authz.ActionBanUser, false},
		{"admin bans", admin, authz.ActionBanUser, true},

		{"reservation delete is admin only", owner, authz.ActionDeleteReservation, false},
		{"admin deletes reservation", admin, authz.ActionDeleteReservation, true},

		{"banned admin denied everywhere", banned, authz.ActionConfirmReservation, false},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			err := authz.CanTransition(tc.actor, tc.action, resource)
			if tc.allowed {
				assert.NoError(t, err)
			} else {
				assert.ErrorIs(t, err, authz.ErrForbidden)
			}
		})
	}
}

func TestActorRoleHelpers(t *testing.T) {
	assert.True(t, admin.IsAdmin())
	assert.False(t, admin.IsHost())
	assert.True(t, owner.IsHost())
	assert.False(t, guest.IsHost())
}
