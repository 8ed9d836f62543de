package hostapps

import (
	"context"
	"time"

	"github.com/google/uuid"

	appoutbox "stayhub/internal/app/outbox"
	"stayhub/internal/domain/authz"
	"stayhub/internal/domain/hostapp"
	"stayhub/internal/domain/shared/approval"
	"stayhub/internal/domain/user"
)

// Service runs the guest-to-host promotion workflow: guests apply, admins
// review, approval grants the host role.
type Service struct {
	Applications hostapp.Repository
	Users        user.Repository
	Outbox       appoutbox.Outbox
	Now          func() time.Time
}

func (s *Service) now() time.Time {
	if s.Now != nil {
		return s.Now().UTC()
	}
	return time.Now().UTC()
}

type ApplyParams struct {
	PhoneNumber string
	Address     string
	City        string
	Motivation  string
	Experience  string
	Actor       authz.Actor
}

// Apply files a host application for the calling guest. Only one pending
// application per user at a time; hosts have nothing to apply for.
func (s *Service) Apply(ctx context.Context, params ApplyParams) (*hostapp.Application, error) {
	if params.Actor.Banned || params.Actor.ID == "" || params.Actor.IsHost() {
		return nil, authz.ErrForbidden
	}
	existing, err := s.Applications.ByUser(ctx, user.ID(params.Actor.ID))
	if err != nil {
		return nil, err
	}
	for _, app := range existing {
		if app.Status == approval.StatusPending {
			return nil, hostapp.ErrAlreadyPending
		}
	}
	app, err := hostapp.New(hostapp.CreateParams{
		ID:          hostapp.ApplicationID(uuid.NewString()),
		UserID:      user.ID(params.Actor.ID),
		PhoneNumber: params.PhoneNumber,
		Address:     params.Address,
		City:        params.City,
		Motivation:  params.Motivation,
		Experience:  params.Experience,
		Now:         s.now(),
	})
	if err != nil {
		return nil, err
	}
	if err := s.Applications.Save(ctx, app); err != nil {
		return nil, err
	}
	if err := s.drainEvents(ctx, app); err != nil {
		return nil, err
	}
	return app, nil
}

// Review applies an admin decision. Approval promotes the applicant to host.
func (s *Service) Review(ctx context.Context, id hostapp.ApplicationID, decision approval.Status, notes string, actor authz.Actor) (*hostapp.Application, error) {
	if err := authz.CanTransition(actor, authz.ActionReviewHostApplication, authz.Resource{}); err != nil {
		return nil, err
	}
	app, err := s.Applications.ByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := app.Review(decision, notes, s.now()); err != nil {
		return nil, err
	}
	if err := s.Applications.Save(ctx, app); err != nil {
		return nil, err
	}
	if app.Status == approval.StatusApproved {
		applicant, err := s.Users.ByID(ctx, app.UserID)
		if err != nil {
			return nil, err
		}
		applicant.PromoteToHost(s.now())
		if err := s.Users.Save(ctx, applicant); err != nil {
			return nil, err
		}
	}
	if err := s.drainEvents(ctx, app); err != nil {
		return nil, err
	}
	return app, nil
}

// ListMine returns the caller's applications.
func (s *Service) ListMine(ctx context.Context, actor authz.Actor) ([]*hostapp.Application, error) {
	if actor.ID == "" {
		return nil, authz.ErrForbidden
	}
	return s.Applications.ByUser(ctx, user.ID(actor.ID))
}

// ListAll is the admin review queue.
func (s *Service) ListAll(ctx context.Context, actor authz.Actor) ([]*hostapp.Application, error) {
	if actor.Banned || !actor.IsAdmin() {
		return nil, authz.ErrForbidden
	}
	return s.Applications.All(ctx)
}

func (s *Service) drainEvents(ctx context.Context, app *hostapp.Application) error {
	pending := app.PendingEvents()
	app.ClearEvents()
	return appoutbox.RecordDomainEvents(ctx, s.Outbox, nil, pending)
}
