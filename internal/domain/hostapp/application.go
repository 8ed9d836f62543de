package hostapp

import (
	"context"
	"errors"
	"strings"
	"time"

	"stayhub/internal/domain/shared/approval"
	"stayhub/internal/domain/shared/events"
	"stayhub/internal/domain/user"
)

var (
	ErrNotFound        = errors.New("hostapp: not found")
	ErrAlreadyPending  = errors.New("hostapp: a pending application already exists")
	ErrPhoneRequired   = errors.New("hostapp: phone number is required")
	ErrMotivationShort = errors.New("hostapp: motivation is required")
)

type ApplicationID string

// Application is a guest's request to become a host, reviewed by an admin.
// It follows the same pending/approved/rejected workflow as listing
// moderation; approval promotes the applicant to the host role.
type Application struct {
	ID          ApplicationID
	UserID      user.ID
	PhoneNumber string
	Address     string
	City        string
	Motivation  string
	Experience  string
	Status      approval.Status
	AdminNotes  string
	CreatedAt   time.Time
	UpdatedAt   time.Time
	events.EventRecorder
}

type Repository interface {
	ByID(ctx context.Context, id ApplicationID) (*Application, error)
	ByUser(ctx context.Context, userID user.ID) ([]*Application, error)
	Save(ctx context.Context, app *Application) error
	All(ctx context.Context) ([]*Application, error)
}

type CreateParams struct {
	ID          ApplicationID
	UserID      user.ID
	PhoneNumber string
	Address     string
	City        string
	Motivation  string
	Experience  string
	Now         time.Time
}

func New(params CreateParams) (*Application, error) {
	if strings.TrimSpace(string(params.UserID)) == "" {
		return nil, user.ErrIDRequired
	}
	if strings.TrimSpace(params.PhoneNumber) == "" {
		return nil, ErrPhoneRequired
	}
	if strings.TrimSpace(params.Motivation) == "" {
		return nil, ErrMotivationShort
	}
	now := params.Now.UTC()
	a := &Application{
		ID:          params.ID,
		UserID:      params.UserID,
		PhoneNumber: strings.TrimSpace(params.PhoneNumber),
		Address:     strings.TrimSpace(params.Address),
		City:        strings.TrimSpace(params.City),
		Motivation:  strings.TrimSpace(params.Motivation),
		Experience:  strings.TrimSpace(params.Experience),
		Status:      approval.StatusPending,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	a.Record(Submitted{ApplicationID: a.ID, UserID: a.UserID, At: now})
	return a, nil
}

// Review applies an admin decision and keeps the reviewer's notes.
func (a *Application) Review(decision approval.Status, notes string, now time.Time) error {
	updated, err := approval.Transition(a.Status, decision)
	if err != nil {
		return err
	}
	a.Status = updated
	a.AdminNotes = strings.TrimSpace(notes)
	a.UpdatedAt = now.UTC()
	a.Record(Reviewed{ApplicationID: a.ID, UserID: a.UserID, Status: updated, At: a.UpdatedAt})
	return nil
}

type Submitted struct {
	ApplicationID ApplicationID
	UserID        user.ID
	At            time.Time
}

func (e Submitted) EventName() string     { return "hostapp.submitted" }
func (e Submitted) AggregateID() string   { return string(e.ApplicationID) }
func (e Submitted) OccurredAt() time.Time { return e.At }

type Reviewed struct {
	ApplicationID ApplicationID
	UserID        user.ID
	Status        approval.Status
	At            time.Time
}

func (e Reviewed) EventName() string     { return "hostapp.reviewed" }
func (e Reviewed) AggregateID() string   { return string(e.ApplicationID) }
func (e Reviewed) OccurredAt() time.Time { return e.At }
