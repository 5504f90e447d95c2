package handler

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/coworkflow/coworkflow/internal/logs"
	"github.com/coworkflow/coworkflow/internal/repository"
)

// PaymentsHandler exposes the charge/refund contract over a PaymentStore.
type PaymentsHandler struct {
	Payments repository.PaymentStore
}

func NewPaymentsHandler(s repository.PaymentStore) *PaymentsHandler {
	return &PaymentsHandler{Payments: s}
}

type chargeReq struct {
	ReservationID uint64         `json:"reservation_id" validate:"required"`
	Amount        *float64       `json:"amount" validate:"required,gte=0"`
	Method        string         `json:"method" validate:"required,oneof=pix card"`
	CardData      map[string]any `json:"card_data"`
}

type refundReq struct {
	PaymentID uint64 `json:"payment_id" validate:"required"`
	Reason    string `json:"reason"`
}

// Charge records a completed payment.  The reservation is not checked.
func (h *PaymentsHandler) Charge(c echo.Context) error {
	var req chargeReq
	if msg, ok := bindValid(c, &req); !ok {
		return errorJSON(c, http.StatusBadRequest, msg)
	}
	p, err := h.Payments.Charge(c.Request().Context(), req.ReservationID, *req.Amount, req.Method)
	if err != nil {
		logs.For("payments").WithError(err).Error("charge failed")
		return errorJSON(c, http.StatusInternalServerError, "Payment failed")
	}
	return c.JSON(http.StatusOK, echo.Map{
		"payment_id":     p.ID,
		"transaction_id": p.TransactionID,
		"status":         p.Status,
	})
}

func (h *PaymentsHandler) Refund(c echo.Context) error {
	var req refundReq
	if msg, ok := bindValid(c, &req); !ok {
		return errorJSON(c, http.StatusBadRequest, msg)
	}
	p, err := h.Payments.Refund(c.Request().Context(), req.PaymentID)
	if errors.Is(err, repository.ErrNotFound) {
		return errorJSON(c, http.StatusNotFound, "Payment not found")
	}
	if err != nil {
		logs.For("payments").WithError(err).Error("refund failed")
		return errorJSON(c, http.StatusInternalServerError, "Refund failed")
	}
	logs.For("payments").WithField("payment_id", p.ID).WithField("reason", req.Reason).Info("payment refunded")
	return c.JSON(http.StatusOK, echo.Map{
		"payment_id":    p.ID,
		"status":        p.Status,
		"refund_amount": p.Amount,
	})
}
