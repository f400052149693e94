package store

import (
	"context"
	"fmt"
	"sort"
	"sync"

	"greentax/internal/proof/models"
	"greentax/pkg/domain"
	"greentax/pkg/platform/sentinel"
)

// InMemory is a mutex-guarded proof log for tests and database-less runs.
// It enforces the same one-original-per-fingerprint rule as the Postgres index.
type InMemory struct {
	mu        sync.RWMutex
	proofs    map[domain.ProofID]*models.Proof
	originals map[string]domain.ProofID
}

func NewInMemory() *InMemory {
	return &InMemory{
		proofs:    make(map[domain.ProofID]*models.Proof),
		originals: make(map[string]domain.ProofID),
	}
}

func (s *InMemory) Create(_ context.Context, proof *models.Proof) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, exists := s.proofs[proof.ID]; exists {
		return fmt.Errorf("proof %s: %w", proof.ID, sentinel.ErrAlreadyUsed)
	}
	if proof.DuplicateOf == nil {
		if _, taken := s.originals[proof.Fingerprint]; taken {
			return fmt.Errorf("fingerprint %s: %w", proof.Fingerprint, sentinel.ErrAlreadyUsed)
		}
		s.originals[proof.Fingerprint] = proof.ID
	} else if _, ok := s.proofs[*proof.DuplicateOf]; !ok {
		return fmt.Errorf("original proof %s: %w", *proof.DuplicateOf, sentinel.ErrNotFound)
	}
	s.proofs[proof.ID] = cloneProof(proof)
	return nil
}

func (s *InMemory) FindByID(_ context.Context, id domain.ProofID) (*models.Proof, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	proof, ok := s.proofs[id]
	if !ok {
		return nil, sentinel.ErrNotFound
	}
	return cloneProof(proof), nil
}

func (s *InMemory) FindOriginalByFingerprint(_ context.Context, fingerprint string) (*models.Proof, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	id, ok := s.originals[fingerprint]
	if !ok {
		return nil, sentinel.ErrNotFound
	}
	return cloneProof(s.proofs[id]), nil
}

// ListBySociety returns the society's proofs newest capture first. A limit
// of zero or less returns all of them.
func (s *InMemory) ListBySociety(_ context.Context, societyID domain.SocietyID, limit int) ([]*models.Proof, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var out []*models.Proof
	for _, proof := range s.proofs {
		if proof.SocietyID == societyID {
			out = append(out, cloneProof(proof))
		}
	}
	sortNewestFirst(out)
	if limit > 0 && len(out) > limit {
		out = out[:limit]
	}
	return out, nil
}

// ListByStatus returns proofs in status, newest capture first.
func (s *InMemory) ListByStatus(_ context.Context, status models.Status) ([]*models.Proof, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var out []*models.Proof
	for _, proof := range s.proofs {
		if proof.Status == status {
			out = append(out, cloneProof(proof))
		}
	}
	sortNewestFirst(out)
	return out, nil
}

// CountByStatus counts proofs per status across all societies.
func (s *InMemory) CountByStatus(_ context.Context) (map[models.Status]int, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	counts := make(map[models.Status]int, 3)
	for _, proof := range s.proofs {
		counts[proof.Status]++
	}
	return counts, nil
}

// Review runs validate and mutate under the write lock. Only the review
// overlay is handed to mutate, so core fields cannot change.
func (s *InMemory) Review(_ context.Context, id domain.ProofID, validate func(*models.Proof) error, mutate func(*models.Review)) (*models.Proof, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	proof, ok := s.proofs[id]
	if !ok {
		return nil, sentinel.ErrNotFound
	}
	working := cloneProof(proof)
	if err := validate(working); err != nil {
		return nil, err
	}
	mutate(&working.Review)
	s.proofs[id] = working
	return cloneProof(working), nil
}

func sortNewestFirst(proofs []*models.Proof) {
	sort.Slice(proofs, func(i, j int) bool {
		if !proofs[i].CapturedAt.Equal(proofs[j].CapturedAt) {
			return proofs[i].CapturedAt.After(proofs[j].CapturedAt)
		}
		return proofs[i].ID.String() < proofs[j].ID.String()
	})
}

func cloneProof(p *models.Proof) *models.Proof {
	copied := *p
	if p.SubmittedBy != nil {
		v := *p.SubmittedBy
		copied.SubmittedBy = &v
	}
	if p.DuplicateOf != nil {
		v := *p.DuplicateOf
		copied.DuplicateOf = &v
	}
	if p.ReviewedBy != nil {
		v := *p.ReviewedBy
		copied.ReviewedBy = &v
	}
	if p.ReviewedAt != nil {
		v := *p.ReviewedAt
		copied.ReviewedAt = &v
	}
	return &copied
}
