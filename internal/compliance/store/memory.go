package store

import (
	"context"
	"sync"

	"greentax/internal/compliance/models"
	"greentax/pkg/domain"
	"greentax/pkg/period"
	"greentax/pkg/platform/sentinel"
)

type recordKey struct {
	society domain.SocietyID
	period  period.Key
}

// InMemory keeps compliance records keyed by society and period.
type InMemory struct {
	mu      sync.RWMutex
	records map[recordKey]*models.Record
}

func NewInMemory() *InMemory {
	return &InMemory{records: make(map[recordKey]*models.Record)}
}

// Upsert inserts the record or overwrites the existing one for the same
// society and period, keeping its original CreatedAt.
func (s *InMemory) Upsert(_ context.Context, record *models.Record) (*models.Record, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	key := recordKey{society: record.SocietyID, period: record.Period}
	stored := cloneRecord(record)
	if existing, ok := s.records[key]; ok {
		stored.CreatedAt = existing.CreatedAt
	}
	s.records[key] = stored
	return cloneRecord(stored), nil
}

func (s *InMemory) FindByPeriod(_ context.Context, societyID domain.SocietyID, key period.Key) (*models.Record, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	record, ok := s.records[recordKey{society: societyID, period: key}]
	if !ok {
		return nil, sentinel.ErrNotFound
	}
	return cloneRecord(record), nil
}

// LatestBySociety returns the chronologically latest record (period.Key.Less).
func (s *InMemory) LatestBySociety(_ context.Context, societyID domain.SocietyID) (*models.Record, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var latest *models.Record
	for key, record := range s.records {
		if key.society != societyID {
			continue
		}
		if latest == nil || latest.Period.Less(record.Period) {
			latest = record
		}
	}
	if latest == nil {
		return nil, sentinel.ErrNotFound
	}
	return cloneRecord(latest), nil
}

// LatestPerSociety returns each evaluated society's latest record.
func (s *InMemory) LatestPerSociety(_ context.Context) (map[domain.SocietyID]*models.Record, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make(map[domain.SocietyID]*models.Record)
	for key, record := range s.records {
		if current, ok := out[key.society]; !ok || current.Period.Less(record.Period) {
			out[key.society] = record
		}
	}
	for id, record := range out {
		out[id] = cloneRecord(record)
	}
	return out, nil
}

func (s *InMemory) Count(_ context.Context) (int, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.records), nil
}

func cloneRecord(r *models.Record) *models.Record {
	copied := *r
	if r.LastProofAt != nil {
		t := *r.LastProofAt
		copied.LastProofAt = &t
	}
	return &copied
}
