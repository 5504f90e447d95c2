package handler

import (
	"net/http"
	"testing"

	"github.com/coworkflow/coworkflow/internal/service"
)

func TestCalculatePriceHandler(t *testing.T) {
	e := newTestEcho()
	e.POST("/pricing/calc", CalculatePrice)

	cases := []struct {
		body  string
		total float64
	}{
		{`{"space_id":1,"start_time":"2024-12-01T10:00:00","end_time":"2024-12-01T12:00:00","user_plan":"premium"}`, 45},
		{`{"space_id":1,"start_time":"2024-12-01T10:00:00","end_time":"2024-12-01T12:00:00"}`, 50},
		{`{"space_id":1,"start_time":"2024-12-01T10:00:00Z","end_time":"2024-12-01T12:00:00Z","user_plan":"enterprise"}`, 40},
	}
	for _, tc := range cases {
		rec := call(e, http.MethodPost, "/pricing/calc", tc.body)
		var q service.PriceQuote
		decode(t, rec, &q)
		if rec.Code != http.StatusOK || q.Total != tc.total || q.BasePrice != 25 || q.Hours != 2 {
			t.Errorf("%s: %d %+v", tc.body, rec.Code, q)
		}
	}

	for _, body := range []string{
		`{"start_time":"2024-12-01T10:00:00"}`,
		`{"start_time":"yesterday","end_time":"2024-12-01T12:00:00"}`,
		`{"start_time":"2024-12-01T10:00:00","end_time":"12h"}`,
	} {
		if rec := call(e, http.MethodPost, "/pricing/calc", body); rec.Code != http.StatusBadRequest {
			t.Errorf("%s: status = %d", body, rec.Code)
		}
	}
}
