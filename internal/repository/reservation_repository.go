package repository

import (
	"context"
	"sort"
	"sync"

	"github.com/coworkflow/coworkflow/internal/model"
)

// ReservationRepo keeps reservations keyed by id.
//
// Create does not check that the space exists, nor that the range
// overlaps another active reservation of the same space: double booking
// is possible.  Cancel is unconditional, so cancelling twice succeeds
// twice.
type ReservationRepo struct {
	mu           sync.RWMutex
	nextID       uint64
	reservations map[uint64]model.Reservation
}

// NewReservationRepo returns an empty store whose first id is 1.
func NewReservationRepo() *ReservationRepo {
	return &ReservationRepo{reservations: make(map[uint64]model.Reservation)}
}

// Create inserts an active reservation and returns it with its new id.
// Ids are strictly increasing for the lifetime of the store.
func (r *ReservationRepo) Create(_ context.Context, userID, spaceID uint64, start, end string, totalPrice float64) model.Reservation {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.nextID++
	res := model.Reservation{
		ID:         r.nextID,
		UserID:     userID,
		SpaceID:    spaceID,
		StartTime:  start,
		EndTime:    end,
		Status:     model.ReservationActive,
		TotalPrice: totalPrice,
	}
	r.reservations[res.ID] = res
	return res
}

func (r *ReservationRepo) Get(_ context.Context, id uint64) (model.Reservation, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	res, ok := r.reservations[id]
	if !ok {
		return model.Reservation{}, ErrNotFound
	}
	return res, nil
}

// ListByUser returns the user's reservations ordered by id.
func (r *ReservationRepo) ListByUser(_ context.Context, userID uint64) []model.Reservation {
	return r.collect(func(res model.Reservation) bool { return res.UserID == userID })
}

// ListAll returns every reservation ordered by id.
func (r *ReservationRepo) ListAll(_ context.Context) []model.Reservation {
	return r.collect(func(model.Reservation) bool { return true })
}

// Cancel marks the reservation cancelled whatever its current status.
func (r *ReservationRepo) Cancel(_ context.Context, id uint64) (model.Reservation, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	res, ok := r.reservations[id]
	if !ok {
		return model.Reservation{}, ErrNotFound
	}
	res.Status = model.ReservationCancelled
	r.reservations[id] = res
	return res, nil
}

func (r *ReservationRepo) collect(keep func(model.Reservation) bool) []model.Reservation {
	r.mu.RLock()
	out := make([]model.Reservation, 0, len(r.reservations))
	for _, res := range r.reservations {
		if keep(res) {
			out = append(out, res)
		}
	}
	r.mu.RUnlock()
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out
}
