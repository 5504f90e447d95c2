package handler

import (
	"context"
	"errors"
	"net/http"
	"testing"
	"time"

	"github.com/coworkflow/coworkflow/internal/model"
)

type fakeFetcher map[uint64]model.Reservation

func (f fakeFetcher) FetchReservation(_ context.Context, id uint64) (model.Reservation, error) {
	r, ok := f[id]
	if !ok {
		return model.Reservation{}, errors.New("no such reservation")
	}
	return r, nil
}

func TestCheckInHandler(t *testing.T) {
	now := time.Date(2030, 5, 1, 8, 50, 0, 0, time.UTC)
	at := func(d time.Duration) string { return now.Add(d).Format(time.RFC3339) }

	h := NewCheckinHandler(fakeFetcher{
		1: {ID: 1, StartTime: at(5 * time.Minute), Status: model.ReservationActive},
		2: {ID: 2, StartTime: at(2 * time.Hour), Status: model.ReservationActive},
		3: {ID: 3, StartTime: at(5 * time.Minute), Status: model.ReservationCancelled},
		4: {ID: 4, StartTime: "not a time", Status: model.ReservationActive},
	})
	h.Now = func() time.Time { return now }
	e := newTestEcho()
	e.POST("/checkin/:id", h.CheckIn)
	e.POST("/checkout/:id", h.CheckOut)

	rec := call(e, http.MethodPost, "/checkin/1", "")
	body := mapOf(t, rec)
	if rec.Code != http.StatusOK || body["message"] != "Check-in successful" || body["reservation_id"] != float64(1) {
		t.Fatalf("checkin = %d %v", rec.Code, body)
	}
	if body["checkin_time"] != "2030-05-01T08:50:00.000000" {
		t.Fatalf("checkin_time = %v", body["checkin_time"])
	}

	expect(t, call(e, http.MethodPost, "/checkin/2", ""), http.StatusBadRequest, "error", "Too early for check-in")
	expect(t, call(e, http.MethodPost, "/checkin/3", ""), http.StatusBadRequest, "error", "Invalid reservation")
	expect(t, call(e, http.MethodPost, "/checkin/4", ""), http.StatusNotFound, "error", "Reservation not found")
	expect(t, call(e, http.MethodPost, "/checkin/99", ""), http.StatusNotFound, "error", "Reservation not found")

	rec = call(e, http.MethodPost, "/checkout/99", "")
	body = mapOf(t, rec)
	if rec.Code != http.StatusOK || body["message"] != "Check-out successful" || body["checkout_time"] == "" {
		t.Fatalf("checkout = %d %v", rec.Code, body)
	}
}
