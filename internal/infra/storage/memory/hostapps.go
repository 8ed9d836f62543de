package memory

import (
	"context"
	"sort"
	"sync"

	domainhostapp "stayhub/internal/domain/hostapp"
	domainuser "stayhub/internal/domain/user"
)

// HostApplicationRepository keeps host applications in memory.
type HostApplicationRepository struct {
	mu    sync.RWMutex
	items map[domainhostapp.ApplicationID]*domainhostapp.Application
}

func NewHostApplicationRepository() *HostApplicationRepository {
	return &HostApplicationRepository{
		items: make(map[domainhostapp.ApplicationID]*domainhostapp.Application),
	}
}

func (r *HostApplicationRepository) ByID(ctx context.Context, id domainhostapp.ApplicationID) (*domainhostapp.Application, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	app, ok := r.items[id]
	if !ok {
		return nil, domainhostapp.ErrNotFound
	}
	return cloneApplication(app), nil
}

func (r *HostApplicationRepository) ByUser(ctx context.Context, userID domainuser.ID) ([]*domainhostapp.Application, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	matches := make([]*domainhostapp.Application, 0)
	for _, app := range r.items {
		if app.UserID == userID {
			matches = append(matches, cloneApplication(app))
		}
	}
	sortApplications(matches)
	return matches, nil
}

func (r *HostApplicationRepository) Save(ctx context.Context, app *domainhostapp.Application) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.items[app.ID] = cloneApplication(app)
	return nil
}

func (r *HostApplicationRepository) All(ctx context.Context) ([]*domainhostapp.Application, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	matches := make([]*domainhostapp.Application, 0, len(r.items))
	for _, app := range r.items {
		matches = append(matches, cloneApplication(app))
	}
	sortApplications(matches)
	return matches, nil
}

func sortApplications(items []*domainhostapp.Application) {
	sort.Slice(items, func(i, j int) bool {
		return items[i].CreatedAt.Before(items[j].CreatedAt)
	})
}

func cloneApplication(app *domainhostapp.Application) *domainhostapp.Application {
	clone := *app
	clone.ClearEvents()
	return &clone
}
