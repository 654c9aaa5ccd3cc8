package storage

import (
	"errors"
	"fmt"
	"slices"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/eugenenazirov/parcel-loader/internal/loader"
)

// DefaultLimit is the number of load records kept when no limit is configured.
const DefaultLimit = 100

var (
	// ErrNotFound indicates no record exists for the requested id.
	ErrNotFound = errors.New("load record not found")
	// ErrInvalidLimit indicates a non-positive retention limit.
	ErrInvalidLimit = errors.New("storage limit must be a positive integer")
)

// Record is a stored loading run.
type Record struct {
	ID        string
	Strategy  loader.StrategyType
	Source    string
	CreatedAt time.Time
	Result    loader.Result
}

// Storage keeps the results of loading runs.
type Storage interface {
	Save(rec Record) (Record, error)
	Get(id string) (Record, error)
	List() ([]Record, error)
}

// MemoryStorage keeps records in-memory and guards access with a RWMutex.
// Once the limit is reached the oldest record is evicted.
type MemoryStorage struct {
	mu      sync.RWMutex
	limit   int
	order   []string
	records map[string]Record
	now     func() time.Time
}

// NewMemoryStorage creates a store holding at most limit records.
func NewMemoryStorage(limit int) (*MemoryStorage, error) {
	if limit <= 0 {
		return nil, fmt.Errorf("%w: %d", ErrInvalidLimit, limit)
	}
	return &MemoryStorage{
		limit:   limit,
		order:   make([]string, 0, limit+1),
		records: make(map[string]Record, limit),
		now:     time.Now,
	}, nil
}

// Save assigns an id and creation time to rec and stores it.
func (s *MemoryStorage) Save(rec Record) (Record, error) {
	rec.ID = uuid.NewString()
	rec.CreatedAt = s.now().UTC()

	s.mu.Lock()
	defer s.mu.Unlock()

	s.records[rec.ID] = rec
	s.order = append(s.order, rec.ID)
	for len(s.order) > s.limit {
		delete(s.records, s.order[0])
		s.order = slices.Delete(s.order, 0, 1)
	}

	return rec, nil
}

// Get returns the record stored under id.
func (s *MemoryStorage) Get(id string) (Record, error) {
	if _, err := uuid.Parse(id); err != nil {
		return Record{}, fmt.Errorf("%w: %q", ErrNotFound, id)
	}

	s.mu.RLock()
	defer s.mu.RUnlock()

	rec, ok := s.records[id]
	if !ok {
		return Record{}, fmt.Errorf("%w: %q", ErrNotFound, id)
	}
	return rec, nil
}

// List returns all records, newest first.
func (s *MemoryStorage) List() ([]Record, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]Record, 0, len(s.order))
	for _, id := range slices.Backward(s.order) {
		out = append(out, s.records[id])
	}
	return out, nil
}

// Len returns the number of stored records.
func (s *MemoryStorage) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return len(s.order)
}
