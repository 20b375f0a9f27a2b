package repository

import (
	"context"
	"errors"
	"sort"
	"sync"
	"time"

	"github.com/vaultpass/passforge-go/internal/model"
)

// ErrRecordNotFound is returned when no record has the requested ID.
var ErrRecordNotFound = errors.New("password record not found")

// Store persists generated passwords. Save and SaveBatch assign record IDs.
// SaveBatch stores every record or none of them.
type Store interface {
	Save(ctx context.Context, record *model.PasswordRecord) error
	SaveBatch(ctx context.Context, records []*model.PasswordRecord) error
	Get(ctx context.Context, id int64) (*model.PasswordRecord, error)
	List(ctx context.Context) ([]model.PasswordRecord, error)
}

// MemoryStore keeps records in process memory. Nothing survives a restart.
type MemoryStore struct {
	mu      sync.RWMutex
	records map[int64]model.PasswordRecord
	nextID  int64
}

// NewMemoryStore creates an empty MemoryStore.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		records: make(map[int64]model.PasswordRecord),
		nextID:  1,
	}
}

// Save stores a single record and sets its ID.
func (s *MemoryStore) Save(ctx context.Context, record *model.PasswordRecord) error {
	return s.SaveBatch(ctx, []*model.PasswordRecord{record})
}

// SaveBatch stores records under one lock hold so readers never observe a
// partial batch. IDs are assigned in slice order.
func (s *MemoryStore) SaveBatch(ctx context.Context, records []*model.PasswordRecord) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	now := time.Now().UTC()
	for _, record := range records {
		record.ID = s.nextID
		s.nextID++
		if record.CreatedAt.IsZero() {
			record.CreatedAt = now
		}
		s.records[record.ID] = *record
	}
	return nil
}

// Get retrieves a record by its ID.
func (s *MemoryStore) Get(ctx context.Context, id int64) (*model.PasswordRecord, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	r, ok := s.records[id]
	if !ok {
		return nil, ErrRecordNotFound
	}
	return &r, nil
}

// List returns all records ordered by ID.
func (s *MemoryStore) List(ctx context.Context) ([]model.PasswordRecord, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	records := make([]model.PasswordRecord, 0, len(s.records))
	for _, r := range s.records {
		records = append(records, r)
	}
	sort.Slice(records, func(i, j int) bool { return records[i].ID < records[j].ID })
	return records, nil
}
