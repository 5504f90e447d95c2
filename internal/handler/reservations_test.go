package handler

import (
	"errors"
	"net/http"
	"testing"

	"github.com/coworkflow/coworkflow/internal/model"
	"github.com/coworkflow/coworkflow/internal/queue"
	"github.com/coworkflow/coworkflow/internal/repository"
)

func reservationsEcho(pub *recordingPublisher) func(method, target, body string) *httpRec {
	h := NewReservationsHandler(repository.NewReservationRepo(), pub)
	e := newTestEcho()
	e.POST("/reservations", h.Create)
	e.GET("/reservations/:id", h.Get)
	e.GET("/reservations/user/:user_id", h.ListByUser)
	e.DELETE("/reservations/:id", h.Cancel)
	e.GET("/admin/reservations", h.ListAll)
	return func(method, target, body string) *httpRec { return call(e, method, target, body) }
}

const bookingBody = `{"user_id":3,"space_id":1,"start_time":"2024-12-01T10:00:00","end_time":"2024-12-01T12:00:00","total_price":50}`

func TestCreateAndGetReservation(t *testing.T) {
	pub := &recordingPublisher{}
	do := reservationsEcho(pub)

	rec := do(http.MethodPost, "/reservations", bookingBody)
	if rec.Code != http.StatusCreated || mapOf(t, rec)["id"] != float64(1) {
		t.Fatalf("create = %d %s", rec.Code, rec.Body)
	}

	var r model.Reservation
	decode(t, do(http.MethodGet, "/reservations/1", ""), &r)
	if r.Status != model.ReservationActive || r.StartTime != "2024-12-01T10:00:00" || r.TotalPrice != 50 || r.UserID != 3 {
		t.Fatalf("reservation = %+v", r)
	}

	if len(pub.queues) != 1 || pub.queues[0] != queue.ReservationCreatedQueue {
		t.Fatalf("published %v", pub.queues)
	}
	ev, ok := pub.events[0].(queue.ReservationCreatedEvent)
	if !ok || ev.ReservationID != 1 || ev.SpaceID != 1 {
		t.Fatalf("event = %#v", pub.events[0])
	}
}

func TestCreateSurvivesPublishFailure(t *testing.T) {
	do := reservationsEcho(&recordingPublisher{err: errors.New("broker down")})
	if rec := do(http.MethodPost, "/reservations", bookingBody); rec.Code != http.StatusCreated {
		t.Fatalf("status = %d", rec.Code)
	}
}

func TestCreateReservationValidation(t *testing.T) {
	do := reservationsEcho(&recordingPublisher{})
	cases := map[string]string{
		"missing total": `{"user_id":3,"space_id":1,"start_time":"2024-12-01T10:00:00","end_time":"2024-12-01T12:00:00"}`,
		"missing user":  `{"space_id":1,"start_time":"2024-12-01T10:00:00","end_time":"2024-12-01T12:00:00","total_price":1}`,
		"bad start":     `{"user_id":3,"space_id":1,"start_time":"soon","end_time":"2024-12-01T12:00:00","total_price":1}`,
		"end before":    `{"user_id":3,"space_id":1,"start_time":"2024-12-01T12:00:00","end_time":"2024-12-01T10:00:00","total_price":1}`,
		"zero length":   `{"user_id":3,"space_id":1,"start_time":"2024-12-01T12:00:00","end_time":"2024-12-01T12:00:00","total_price":1}`,
	}
	for name, body := range cases {
		if rec := do(http.MethodPost, "/reservations", body); rec.Code != http.StatusBadRequest {
			t.Errorf("%s: status = %d", name, rec.Code)
		}
	}
	// zero price is allowed
	if rec := do(http.MethodPost, "/reservations", `{"user_id":3,"space_id":1,"start_time":"2024-12-01T10:00:00","end_time":"2024-12-01T11:00:00","total_price":0}`); rec.Code != http.StatusCreated {
		t.Fatalf("zero price: %d", rec.Code)
	}
}

func TestCancelTwice(t *testing.T) {
	do := reservationsEcho(&recordingPublisher{})
	do(http.MethodPost, "/reservations", bookingBody)

	expect(t, do(http.MethodDelete, "/reservations/1", ""), http.StatusOK, "message", "Reservation cancelled")
	expect(t, do(http.MethodDelete, "/reservations/1", ""), http.StatusOK, "message", "Reservation cancelled")

	var r model.Reservation
	decode(t, do(http.MethodGet, "/reservations/1", ""), &r)
	if r.Status != model.ReservationCancelled {
		t.Fatalf("status = %q", r.Status)
	}
	expect(t, do(http.MethodDelete, "/reservations/9", ""), http.StatusNotFound, "error", "Reservation not found")
	expect(t, do(http.MethodGet, "/reservations/9", ""), http.StatusNotFound, "error", "Reservation not found")
}

func TestListReservations(t *testing.T) {
	do := reservationsEcho(&recordingPublisher{})
	do(http.MethodPost, "/reservations", bookingBody)
	do(http.MethodPost, "/reservations", `{"user_id":4,"space_id":2,"start_time":"2024-12-02T10:00:00","end_time":"2024-12-02T12:00:00","total_price":45}`)
	do(http.MethodPost, "/reservations", bookingBody)

	var mine []model.Reservation
	decode(t, do(http.MethodGet, "/reservations/user/3", ""), &mine)
	if len(mine) != 2 || mine[0].ID != 1 || mine[1].ID != 3 {
		t.Fatalf("user 3 = %+v", mine)
	}
	var none []model.Reservation
	rec := do(http.MethodGet, "/reservations/user/99", "")
	decode(t, rec, &none)
	if rec.Body.String() == "null\n" || len(none) != 0 {
		t.Fatalf("user 99 = %s", rec.Body)
	}
	var all []model.Reservation
	decode(t, do(http.MethodGet, "/admin/reservations", ""), &all)
	if len(all) != 3 {
		t.Fatalf("all = %+v", all)
	}
}
