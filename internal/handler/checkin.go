package handler

import (
	"errors"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/coworkflow/coworkflow/internal/logs"
	"github.com/coworkflow/coworkflow/internal/service"
)

// CheckinHandler validates arrivals against reservations held by the
// reservations service.
type CheckinHandler struct {
	Reservations service.ReservationFetcher
	Now          func() time.Time
}

func NewCheckinHandler(f service.ReservationFetcher) *CheckinHandler {
	return &CheckinHandler{Reservations: f, Now: time.Now}
}

// CheckIn answers 404 whenever the reservation cannot be obtained, then
// 400 when it is too early or the reservation is not active.
func (h *CheckinHandler) CheckIn(c echo.Context) error {
	id, ok := pathID(c, "id")
	if !ok {
		return badID(c)
	}
	res, err := h.Reservations.FetchReservation(c.Request().Context(), id)
	if err != nil {
		logs.For("checkin").WithError(err).WithField("reservation_id", id).Info("reservation lookup failed")
		return errorJSON(c, http.StatusNotFound, "Reservation not found")
	}
	at, err := service.CheckIn(res, h.Now())
	switch {
	case errors.Is(err, service.ErrTooEarly):
		return errorJSON(c, http.StatusBadRequest, "Too early for check-in")
	case errors.Is(err, service.ErrInvalidStatus):
		return errorJSON(c, http.StatusBadRequest, "Invalid reservation")
	case err != nil:
		logs.For("checkin").WithError(err).WithField("reservation_id", id).Warn("unusable reservation")
		return errorJSON(c, http.StatusNotFound, "Reservation not found")
	}
	return c.JSON(http.StatusOK, echo.Map{
		"message":        "Check-in successful",
		"reservation_id": id,
		"checkin_time":   isoLocal(at),
	})
}

// CheckOut always succeeds; the reservation is not consulted.
func (h *CheckinHandler) CheckOut(c echo.Context) error {
	id, ok := pathID(c, "id")
	if !ok {
		return badID(c)
	}
	return c.JSON(http.StatusOK, echo.Map{
		"message":        "Check-out successful",
		"reservation_id": id,
		"checkout_time":  isoLocal(service.CheckOut(h.Now())),
	})
}

func isoLocal(t time.Time) string {
	return t.Format("2006-01-02T15:04:05.000000")
}
