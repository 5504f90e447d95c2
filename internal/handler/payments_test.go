package handler

import (
	"net/http"
	"testing"

	"github.com/google/uuid"

	"github.com/coworkflow/coworkflow/internal/model"
	"github.com/coworkflow/coworkflow/internal/repository"
)

func TestChargeAndRefund(t *testing.T) {
	h := NewPaymentsHandler(repository.NewMemoryPaymentRepo())
	e := newTestEcho()
	e.POST("/payments/charge", h.Charge)
	e.POST("/payments/refund", h.Refund)

	rec := call(e, http.MethodPost, "/payments/charge", `{"reservation_id":1,"amount":45,"method":"pix"}`)
	body := mapOf(t, rec)
	if rec.Code != http.StatusOK || body["status"] != model.PaymentCompleted || body["payment_id"] != float64(1) {
		t.Fatalf("charge = %d %v", rec.Code, body)
	}
	if _, err := uuid.Parse(body["transaction_id"].(string)); err != nil {
		t.Fatalf("transaction id: %v", err)
	}

	rec = call(e, http.MethodPost, "/payments/refund", `{"payment_id":1,"reason":"changed plans"}`)
	body = mapOf(t, rec)
	if rec.Code != http.StatusOK || body["status"] != model.PaymentRefunded || body["refund_amount"] != float64(45) {
		t.Fatalf("refund = %d %v", rec.Code, body)
	}

	expect(t, call(e, http.MethodPost, "/payments/refund", `{"payment_id":8}`), http.StatusNotFound, "error", "Payment not found")
}

func TestChargeValidation(t *testing.T) {
	h := NewPaymentsHandler(repository.NewMemoryPaymentRepo())
	e := newTestEcho()
	e.POST("/payments/charge", h.Charge)
	for _, body := range []string{
		`{"reservation_id":1,"amount":45,"method":"cash"}`,
		`{"reservation_id":1,"method":"card"}`,
		`{"amount":10,"method":"card"}`,
	} {
		if rec := call(e, http.MethodPost, "/payments/charge", body); rec.Code != http.StatusBadRequest {
			t.Errorf("%s: status = %d", body, rec.Code)
		}
	}
}
