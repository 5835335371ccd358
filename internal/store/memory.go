package store

import (
	"context"
	"sort"
	"sync/atomic"

	"inventory-backend/internal/models"

	"github.com/puzpuzpuz/xsync/v3"
)

// MemoryStore keeps records in process. It is the substitute store for tests
// and the STORE_DRIVER=memory backend.
type MemoryStore struct {
	records *xsync.MapOf[int64, models.ProductRecord]
	seq     atomic.Int64
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{records: xsync.NewMapOf[int64, models.ProductRecord]()}
}

func (s *MemoryStore) List(_ context.Context) ([]models.ProductRecord, error) {
	out := make([]models.ProductRecord, 0, s.records.Size())
	s.records.Range(func(_ int64, r models.ProductRecord) bool {
		out = append(out, r)
		return true
	})
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (s *MemoryStore) Create(ctx context.Context, p models.Product) (models.ProductRecord, error) {
	for attempt := 0; attempt < maxInsertAttempts; attempt++ {
		if err := ctx.Err(); err != nil {
			return models.ProductRecord{}, err
		}
		rec := newRecord(s.seq.Add(1), p)
		if _, loaded := s.records.LoadOrStore(rec.ID, rec); !loaded {
			return rec, nil
		}
	}
	return models.ProductRecord{}, ErrDuplicateID
}

func (s *MemoryStore) Update(_ context.Context, id int64, p models.Product) (models.ProductRecord, error) {
	rec, ok := s.records.Compute(id, func(old models.ProductRecord, loaded bool) (models.ProductRecord, bool) {
		if !loaded {
			return old, true
		}
		old.Product = p
		return old, false
	})
	if !ok {
		return models.ProductRecord{}, ErrNotFound
	}
	return rec, nil
}

func (s *MemoryStore) Delete(_ context.Context, id int64) (models.ProductRecord, error) {
	rec, ok := s.records.LoadAndDelete(id)
	if !ok {
		return models.ProductRecord{}, ErrNotFound
	}
	return rec, nil
}

// Seed stores records as-is and moves the id counter past the largest id.
func (s *MemoryStore) Seed(records ...models.ProductRecord) {
	for _, r := range records {
		s.records.Store(r.ID, r)
		for {
			cur := s.seq.Load()
			if r.ID <= cur || s.seq.CompareAndSwap(cur, r.ID) {
				break
			}
		}
	}
}

func (s *MemoryStore) Ping(_ context.Context) error { return nil }

func (s *MemoryStore) Close(_ context.Context) error { return nil }
