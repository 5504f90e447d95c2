package service

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strconv"

	"github.com/coworkflow/coworkflow/internal/model"
	"github.com/coworkflow/coworkflow/internal/proxy"
)

// ReservationFetcher looks up a reservation by id.
type ReservationFetcher interface {
	FetchReservation(ctx context.Context, id uint64) (model.Reservation, error)
}

// ReservationClient fetches reservations from the reservations service.
type ReservationClient struct {
	up *proxy.Upstream
}

func NewReservationClient(up *proxy.Upstream) *ReservationClient {
	return &ReservationClient{up: up}
}

// FetchReservation calls GET /reservations/{id}.  Any non-200 answer is an
// error; callers treat every failure as "not found".
func (c *ReservationClient) FetchReservation(ctx context.Context, id uint64) (model.Reservation, error) {
	hdr := http.Header{}
	hdr.Set("Accept", "application/json")
	resp, err := c.up.Do(ctx, proxy.Request{
		Method: http.MethodGet,
		Path:   "/reservations/" + strconv.FormatUint(id, 10),
		Header: hdr,
	})
	if err != nil {
		return model.Reservation{}, err
	}
	if resp.Status != http.StatusOK {
		return model.Reservation{}, fmt.Errorf("reservation %d: reservations service answered %d", id, resp.Status)
	}
	var res model.Reservation
	if err := json.Unmarshal(resp.Body, &res); err != nil {
		return model.Reservation{}, fmt.Errorf("reservation %d: decode: %w", id, err)
	}
	return res, nil
}
