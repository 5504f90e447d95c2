package handler

import (
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/coworkflow/coworkflow/internal/logs"
	"github.com/coworkflow/coworkflow/internal/model"
	"github.com/coworkflow/coworkflow/internal/queue"
	"github.com/coworkflow/coworkflow/internal/repository"
	"github.com/coworkflow/coworkflow/internal/service"
)

// ReservationsHandler serves the reservation lifecycle.
type ReservationsHandler struct {
	Reservations *repository.ReservationRepo
	Events       service.Publisher
}

func NewReservationsHandler(r *repository.ReservationRepo, p service.Publisher) *ReservationsHandler {
	if p == nil {
		p = service.NopPublisher{}
	}
	return &ReservationsHandler{Reservations: r, Events: p}
}

type createReservationReq struct {
	UserID     uint64   `json:"user_id" validate:"required"`
	SpaceID    uint64   `json:"space_id" validate:"required"`
	StartTime  string   `json:"start_time" validate:"required"`
	EndTime    string   `json:"end_time" validate:"required"`
	TotalPrice *float64 `json:"total_price" validate:"required"`
}

// Create stores an active reservation.  Timestamps must parse and end
// must be after start; the space and overlaps are not checked.
func (h *ReservationsHandler) Create(c echo.Context) error {
	var req createReservationReq
	if msg, ok := bindValid(c, &req); !ok {
		return errorJSON(c, http.StatusBadRequest, msg)
	}
	start, err := model.ParseTimestamp(req.StartTime)
	if err != nil {
		return errorJSON(c, http.StatusBadRequest, "Invalid start_time")
	}
	end, err := model.ParseTimestamp(req.EndTime)
	if err != nil {
		return errorJSON(c, http.StatusBadRequest, "Invalid end_time")
	}
	if !end.After(start) {
		return errorJSON(c, http.StatusBadRequest, "end_time must be after start_time")
	}

	ctx := c.Request().Context()
	res := h.Reservations.Create(ctx, req.UserID, req.SpaceID, req.StartTime, req.EndTime, *req.TotalPrice)

	ev := queue.ReservationCreatedEvent{
		ReservationID: res.ID,
		UserID:        res.UserID,
		SpaceID:       res.SpaceID,
		StartTime:     res.StartTime,
		EndTime:       res.EndTime,
		TotalPrice:    res.TotalPrice,
		CreatedAt:     time.Now().UTC().Format(time.RFC3339),
	}
	if err := h.Events.Publish(ctx, queue.ReservationCreatedQueue, ev); err != nil {
		logs.For("reservations").WithError(err).WithField("reservation_id", res.ID).Warn("reservation event not published")
	}
	return c.JSON(http.StatusCreated, echo.Map{"id": res.ID})
}

func (h *ReservationsHandler) Get(c echo.Context) error {
	id, ok := pathID(c, "id")
	if !ok {
		return badID(c)
	}
	res, err := h.Reservations.Get(c.Request().Context(), id)
	if err != nil {
		return errorJSON(c, http.StatusNotFound, "Reservation not found")
	}
	return c.JSON(http.StatusOK, res)
}

func (h *ReservationsHandler) ListByUser(c echo.Context) error {
	uid, ok := pathID(c, "user_id")
	if !ok {
		return badID(c)
	}
	return c.JSON(http.StatusOK, h.Reservations.ListByUser(c.Request().Context(), uid))
}

// Cancel marks the reservation cancelled.  Cancelling twice succeeds.
func (h *ReservationsHandler) Cancel(c echo.Context) error {
	id, ok := pathID(c, "id")
	if !ok {
		return badID(c)
	}
	if _, err := h.Reservations.Cancel(c.Request().Context(), id); err != nil {
		return errorJSON(c, http.StatusNotFound, "Reservation not found")
	}
	return messageJSON(c, http.StatusOK, "Reservation cancelled")
}

func (h *ReservationsHandler) ListAll(c echo.Context) error {
	return c.JSON(http.StatusOK, h.Reservations.ListAll(c.Request().Context()))
}
