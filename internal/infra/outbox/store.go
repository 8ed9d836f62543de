package outbox

import (
	"context"
	"sync"
	"time"

	appoutbox "stayhub/internal/app/outbox"
)

type documentState string

const (
	statePending documentState = "pending"
	stateSent    documentState = "sent"
)

// EventDocument is a queued event with delivery bookkeeping.
type EventDocument struct {
	ID         string
	Name       string
	Aggregate  string
	Payload    []byte
	Headers    map[string]string
	OccurredAt time.Time
	Attempts   int
	NotBefore  time.Time
	ClaimedBy  string
	LastError  string
	state      documentState
}

// Store is an in-memory outbox queue drained by the Worker. Add runs inside
// the producer's request; Claim/MarkSent/MarkFailed belong to the worker.
type Store struct {
	mu   sync.Mutex
	docs []*EventDocument
}

func NewStore() *Store {
	return &Store{}
}

func (s *Store) Add(ctx context.Context, record appoutbox.EventRecord) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.docs = append(s.docs, &EventDocument{
		ID:         record.ID,
		Name:       record.Name,
		Aggregate:  record.Aggregate,
		Payload:    record.Payload,
		Headers:    record.Headers,
		OccurredAt: record.OccurredAt,
		state:      statePending,
	})
	return nil
}

// Claim hands the oldest deliverable document to the worker, or nil when the
// queue is drained.
func (s *Store) Claim(ctx context.Context, workerID string) (*EventDocument, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	now := time.Now()
	for _, doc := range s.docs {
		if doc.state != statePending || doc.ClaimedBy != "" {
			continue
		}
		if !doc.NotBefore.IsZero() && doc.NotBefore.After(now) {
			continue
		}
		doc.ClaimedBy = workerID
		return doc, nil
	}
	return nil, nil
}

func (s *Store) MarkSent(ctx context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i, doc := range s.docs {
		if doc.ID == id {
			doc.state = stateSent
			doc.ClaimedBy = ""
			s.docs = append(s.docs[:i], s.docs[i+1:]...)
			return nil
		}
	}
	return nil
}

func (s *Store) MarkFailed(ctx context.Context, id string, retryAt time.Time, reason string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, doc := range s.docs {
		if doc.ID == id {
			doc.Attempts++
			doc.NotBefore = retryAt
			doc.LastError = reason
			doc.ClaimedBy = ""
			return nil
		}
	}
	return nil
}

// Pending reports the queue depth, for readiness checks and tests.
func (s *Store) Pending() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.docs)
}

var _ appoutbox.Outbox = (*Store)(nil)
