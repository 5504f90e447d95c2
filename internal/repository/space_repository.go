package repository

import (
	"context"
	"sort"
	"sync"

	"github.com/coworkflow/coworkflow/internal/model"
)

// SpaceRepo keeps spaces keyed by id.  Deleted ids are never handed out
// again.
type SpaceRepo struct {
	mu     sync.RWMutex
	nextID uint64
	spaces map[uint64]model.Space
}

func NewSpaceRepo() *SpaceRepo {
	return &SpaceRepo{spaces: make(map[uint64]model.Space)}
}

// Create stores s under a fresh id and returns the stored copy.
func (r *SpaceRepo) Create(_ context.Context, s model.Space) model.Space {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.nextID++
	s.ID = r.nextID
	r.spaces[s.ID] = s
	return s
}

func (r *SpaceRepo) Get(_ context.Context, id uint64) (model.Space, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	s, ok := r.spaces[id]
	if !ok {
		return model.Space{}, ErrNotFound
	}
	return s, nil
}

// List returns all spaces ordered by id.
func (r *SpaceRepo) List(_ context.Context) []model.Space {
	r.mu.RLock()
	out := make([]model.Space, 0, len(r.spaces))
	for _, s := range r.spaces {
		out = append(out, s)
	}
	r.mu.RUnlock()
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out
}

// Update applies patch to the space and returns the result.
func (r *SpaceRepo) Update(_ context.Context, id uint64, patch model.SpacePatch) (model.Space, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	s, ok := r.spaces[id]
	if !ok {
		return model.Space{}, ErrNotFound
	}
	patch.Apply(&s)
	r.spaces[id] = s
	return s, nil
}

func (r *SpaceRepo) Delete(_ context.Context, id uint64) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.spaces[id]; !ok {
		return ErrNotFound
	}
	delete(r.spaces, id)
	return nil
}
