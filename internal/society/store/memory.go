package store

import (
	"context"
	"fmt"
	"sort"
	"sync"

	"greentax/internal/society/models"
	"greentax/pkg/domain"
	"greentax/pkg/platform/sentinel"
)

// InMemory is a mutex-guarded society store for tests and database-less runs.
type InMemory struct {
	mu        sync.RWMutex
	societies map[domain.SocietyID]*models.Society
	byTaxNo   map[string]domain.SocietyID
}

func NewInMemory() *InMemory {
	return &InMemory{
		societies: make(map[domain.SocietyID]*models.Society),
		byTaxNo:   make(map[string]domain.SocietyID),
	}
}

func (s *InMemory) Create(_ context.Context, society *models.Society) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	key := society.TaxNumber
	if _, taken := s.byTaxNo[key]; taken {
		return fmt.Errorf("tax number %s: %w", society.TaxNumber, sentinel.ErrAlreadyUsed)
	}
	if _, exists := s.societies[society.ID]; exists {
		return fmt.Errorf("society %s: %w", society.ID, sentinel.ErrAlreadyUsed)
	}
	copied := *society
	s.societies[society.ID] = &copied
	s.byTaxNo[key] = society.ID
	return nil
}

func (s *InMemory) FindByID(_ context.Context, id domain.SocietyID) (*models.Society, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	society, ok := s.societies[id]
	if !ok {
		return nil, sentinel.ErrNotFound
	}
	copied := *society
	return &copied, nil
}

// ListActive returns active societies ordered by ward, then name.
func (s *InMemory) ListActive(_ context.Context) ([]*models.Society, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]*models.Society, 0, len(s.societies))
	for _, society := range s.societies {
		if society.Active {
			copied := *society
			out = append(out, &copied)
		}
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Ward != out[j].Ward {
			return out[i].Ward < out[j].Ward
		}
		return out[i].Name < out[j].Name
	})
	return out, nil
}

// Execute runs validate and mutate under the write lock and persists the
// mutation only when validate succeeds.
func (s *InMemory) Execute(_ context.Context, id domain.SocietyID, validate func(*models.Society) error, mutate func(*models.Society)) (*models.Society, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	society, ok := s.societies[id]
	if !ok {
		return nil, sentinel.ErrNotFound
	}
	working := *society
	if err := validate(&working); err != nil {
		return nil, err
	}
	mutate(&working)
	s.societies[id] = &working
	result := working
	return &result, nil
}
