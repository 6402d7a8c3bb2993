package memory

import (
	"context"
	"sync"

	"github.com/google/uuid"

	"github.com/Prakhar9001/Fake-news-detection-system/internal/domain/entity"
	"github.com/Prakhar9001/Fake-news-detection-system/internal/domain/repository"
)

// checkRepository is a fixed-size ring of recent checks
type checkRepository struct {
	mu    sync.RWMutex
	ring  []*entity.Check
	next  int
	count int
}

// NewCheckRepository creates a repository holding at most size checks.
// A size of zero disables history.
func NewCheckRepository(size int) repository.CheckRepository {
	if size < 0 {
		size = 0
	}
	return &checkRepository{ring: make([]*entity.Check, size)}
}

func (r *checkRepository) Add(_ context.Context, check *entity.Check) error {
	if len(r.ring) == 0 {
		return nil
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	r.ring[r.next] = check
	r.next = (r.next + 1) % len(r.ring)
	if r.count < len(r.ring) {
		r.count++
	}
	return nil
}

func (r *checkRepository) Recent(_ context.Context, limit int) ([]*entity.Check, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	if limit <= 0 || limit > r.count {
		limit = r.count
	}

	checks := make([]*entity.Check, 0, limit)
	for i := 1; i <= limit; i++ {
		idx := (r.next - i + len(r.ring)) % len(r.ring)
		checks = append(checks, r.ring[idx])
	}
	return checks, nil
}

func (r *checkRepository) GetByID(_ context.Context, id uuid.UUID) (*entity.Check, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	for i := 0; i < r.count; i++ {
		if r.ring[i] != nil && r.ring[i].ID == id {
			return r.ring[i], nil
		}
	}
	return nil, nil
}
