package model

// Reservation statuses.  The only transition is active -> cancelled;
// check-in and check-out never change the stored status.
const (
	ReservationActive    = "active"
	ReservationCancelled = "cancelled"
)

// Reservation records a user's booking of a space for a time range.
//
// Fields:
//
//	ID         - monotonic identifier assigned by the store.
//	UserID     - user who booked.
//	SpaceID    - space being booked; not checked for existence.
//	StartTime  - ISO-8601 timestamp, kept exactly as submitted.
//	EndTime    - ISO-8601 timestamp, after StartTime.
//	Status     - ReservationActive or ReservationCancelled.
//	TotalPrice - price agreed at booking time.
type Reservation struct {
	ID         uint64  `json:"id"`
	UserID     uint64  `json:"user_id"`
	SpaceID    uint64  `json:"space_id"`
	StartTime  string  `json:"start_time"`
	EndTime    string  `json:"end_time"`
	Status     string  `json:"status"`
	TotalPrice float64 `json:"total_price"`
}

// Active reports whether the reservation has not been cancelled.
func (r Reservation) Active() bool { return r.Status == ReservationActive }
