package audit

import (
	"context"
	"sync"

	"greentax/pkg/domain"
)

// InMemoryStore keeps audit events in process. It is the default sink when
// no broker is configured.
type InMemoryStore struct {
	mu     sync.RWMutex
	events []Event
}

func NewInMemoryStore() *InMemoryStore {
	return &InMemoryStore{}
}

func (s *InMemoryStore) Append(_ context.Context, event Event) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.events = append(s.events, event)
	return nil
}

// ListAll returns every recorded event in append order.
func (s *InMemoryStore) ListAll(_ context.Context) ([]Event, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return append([]Event{}, s.events...), nil
}

// ListBySociety returns the events recorded for one society in append order.
func (s *InMemoryStore) ListBySociety(_ context.Context, societyID domain.SocietyID) ([]Event, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	var out []Event
	for _, e := range s.events {
		if e.SocietyID == societyID {
			out = append(out, e)
		}
	}
	return out, nil
}
