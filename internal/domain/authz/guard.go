// Package authz holds the pure authorization decision applied before every
// state transition. It has no side effects and touches no store; callers
// pass in the actor and the ownership facts of the resource.
package authz

import (
	"errors"

	"stayhub/internal/domain/user"
)

var ErrForbidden = errors.New("authz: forbidden")

// Action names a requested state transition.
type Action string

const (
	ActionConfirmReservation    Action = "reservation.confirm"
	ActionCancelReservation     Action = "reservation.cancel"
	ActionDeleteReservation     Action = "reservation.delete"
	ActionReviewListing         Action = "listing.review"
	ActionDeleteListing         Action = "listing.delete"
	ActionReviewHostApplication Action = "hostapp.review"
	ActionBanUser               Action = "user.ban"
)

// Actor is the caller identity supplied by the session layer. The engine
// trusts it and performs no credential checks of its own.
type Actor struct {
	ID     string
	Roles  []user.Role
	Banned bool
}

func (a Actor) hasRole(role user.Role) bool {
	for _, r := range a.Roles {
		if r == role {
			return true
		}
	}
	return false
}

func (a Actor) IsAdmin() bool { return a.hasRole(user.RoleAdmin) }
func (a Actor) IsHost() bool  { return a.hasRole(user.RoleHost) }

// Resource carries the ownership facts a decision needs: the host owning the
// listing behind the resource and, for reservations, the booking guest.
type Resource struct {
	HostID  string
	GuestID string
}

// CanTransition decides whether the actor may perform the action on the
// resource. Banned actors are denied universally, admins allowed
// universally; hosts act only on resources of listings they own, and the one
// guest-initiated transition is cancelling their own reservation.
func CanTransition(actor Actor, action Action, res Resource) error {
	if actor.Banned {
		return ErrForbidden
	}
	if actor.IsAdmin() {
		return nil
	}
	switch action {
	case ActionConfirmReservation:
		if actor.IsHost() && actor.ID == res.HostID {
			return nil
		}
	case ActionCancelReservation:
		if actor.IsHost() && actor.ID == res.HostID {
			return nil
		}
		if actor.ID != "" && actor.ID == res.GuestID {
			return nil
		}
	case ActionDeleteListing:
		if actor.IsHost() && actor.ID == res.HostID {
			return nil
		}
	}
	// listing review, host application review, user bans and reservation
	// hard deletes are admin-only
	return ErrForbidden
}
