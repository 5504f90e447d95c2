package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/google/uuid"

	"github.com/coworkflow/coworkflow/internal/model"
)

// SQLPaymentRepo stores payments in the `payments` table.
type SQLPaymentRepo struct {
	db *sql.DB
}

// NewSQLPaymentRepo returns a repo bound to db.  Call EnsureSchema once at
// startup before serving requests.
func NewSQLPaymentRepo(db *sql.DB) *SQLPaymentRepo { return &SQLPaymentRepo{db: db} }

const paymentsDDL = `CREATE TABLE IF NOT EXISTS payments (
	id             BIGINT UNSIGNED AUTO_INCREMENT PRIMARY KEY,
	reservation_id BIGINT UNSIGNED NOT NULL,
	amount         DOUBLE NOT NULL,
	method         VARCHAR(20) NOT NULL,
	status         VARCHAR(20) NOT NULL DEFAULT 'pending',
	transaction_id VARCHAR(100) NOT NULL,
	created_at     TIMESTAMP NOT NULL DEFAULT CURRENT_TIMESTAMP,
	updated_at     TIMESTAMP NOT NULL DEFAULT CURRENT_TIMESTAMP ON UPDATE CURRENT_TIMESTAMP
)`

// EnsureSchema creates the payments table when missing.
func (r *SQLPaymentRepo) EnsureSchema(ctx context.Context) error {
	if _, err := r.db.ExecContext(ctx, paymentsDDL); err != nil {
		return fmt.Errorf("create payments table: %w", err)
	}
	return nil
}

func (r *SQLPaymentRepo) Charge(ctx context.Context, reservationID uint64, amount float64, method string) (model.Payment, error) {
	p := model.Payment{
		ReservationID: reservationID,
		Amount:        amount,
		Method:        method,
		Status:        model.PaymentCompleted,
		TransactionID: uuid.NewString(),
	}
	res, err := r.db.ExecContext(ctx,
		"INSERT INTO payments (reservation_id, amount, method, status, transaction_id) VALUES (?,?,?,?,?)",
		p.ReservationID, p.Amount, p.Method, p.Status, p.TransactionID)
	if err != nil {
		return model.Payment{}, err
	}
	id, err := res.LastInsertId()
	if err != nil {
		return model.Payment{}, err
	}
	p.ID = uint64(id)
	return p, nil
}

// Refund runs the update and the read-back in one transaction so the
// returned row is the one that was refunded.
func (r *SQLPaymentRepo) Refund(ctx context.Context, id uint64) (model.Payment, error) {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return model.Payment{}, err
	}
	committed := false
	defer func() {
		if !committed {
			_ = tx.Rollback()
		}
	}()
	p, err := scanPayment(tx.QueryRowContext(ctx,
		"SELECT id, reservation_id, amount, method, status, transaction_id FROM payments WHERE id=? FOR UPDATE", id))
	if err != nil {
		return model.Payment{}, err
	}
	if _, err := tx.ExecContext(ctx, "UPDATE payments SET status=? WHERE id=?", model.PaymentRefunded, id); err != nil {
		return model.Payment{}, err
	}
	if err := tx.Commit(); err != nil {
		return model.Payment{}, err
	}
	committed = true
	p.Status = model.PaymentRefunded
	return p, nil
}

func (r *SQLPaymentRepo) Get(ctx context.Context, id uint64) (model.Payment, error) {
	return scanPayment(r.db.QueryRowContext(ctx,
		"SELECT id, reservation_id, amount, method, status, transaction_id FROM payments WHERE id=? LIMIT 1", id))
}

func scanPayment(row *sql.Row) (model.Payment, error) {
	var p model.Payment
	err := row.Scan(&p.ID, &p.ReservationID, &p.Amount, &p.Method, &p.Status, &p.TransactionID)
	if errors.Is(err, sql.ErrNoRows) {
		return model.Payment{}, ErrNotFound
	}
	return p, err
}
