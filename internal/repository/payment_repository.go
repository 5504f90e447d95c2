package repository

import (
	"context"
	"sync"

	"github.com/google/uuid"

	"github.com/coworkflow/coworkflow/internal/model"
)

// PaymentStore records charges and refunds.  Two implementations exist:
// MemoryPaymentRepo for local runs and tests, SQLPaymentRepo for MySQL.
type PaymentStore interface {
	// Charge records a completed payment with a fresh transaction id.
	Charge(ctx context.Context, reservationID uint64, amount float64, method string) (model.Payment, error)
	// Refund marks a payment refunded; ErrNotFound when absent.
	Refund(ctx context.Context, id uint64) (model.Payment, error)
	Get(ctx context.Context, id uint64) (model.Payment, error)
}

// MemoryPaymentRepo is the in-process PaymentStore.
type MemoryPaymentRepo struct {
	mu       sync.RWMutex
	nextID   uint64
	payments map[uint64]model.Payment
}

func NewMemoryPaymentRepo() *MemoryPaymentRepo {
	return &MemoryPaymentRepo{payments: make(map[uint64]model.Payment)}
}

func (r *MemoryPaymentRepo) Charge(_ context.Context, reservationID uint64, amount float64, method string) (model.Payment, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.nextID++
	p := model.Payment{
		ID:            r.nextID,
		ReservationID: reservationID,
		Amount:        amount,
		Method:        method,
		Status:        model.PaymentCompleted,
		TransactionID: uuid.NewString(),
	}
	r.payments[p.ID] = p
	return p, nil
}

func (r *MemoryPaymentRepo) Refund(_ context.Context, id uint64) (model.Payment, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	p, ok := r.payments[id]
	if !ok {
		return model.Payment{}, ErrNotFound
	}
	p.Status = model.PaymentRefunded
	r.payments[id] = p
	return p, nil
}

func (r *MemoryPaymentRepo) Get(_ context.Context, id uint64) (model.Payment, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	p, ok := r.payments[id]
	if !ok {
		return model.Payment{}, ErrNotFound
	}
	return p, nil
}
