package service

import (
	"errors"
	"fmt"
	"time"

	"github.com/coworkflow/coworkflow/internal/model"
)

// CheckInWindow is how long before the start time check-in opens.
const CheckInWindow = 15 * time.Minute

// Check-in rejections.
var (
	ErrTooEarly      = errors.New("too early for check-in")
	ErrInvalidStatus = errors.New("reservation is not active")
)

// CheckIn decides whether res can be checked into at now and returns the
// check-in time.  The time window is checked before the status.  The
// reservation itself is not modified.
func CheckIn(res model.Reservation, now time.Time) (time.Time, error) {
	start, err := model.ParseTimestamp(res.StartTime)
	if err != nil {
		return time.Time{}, fmt.Errorf("reservation %d start_time %q: %w", res.ID, res.StartTime, err)
	}
	if now.Before(start.Add(-CheckInWindow)) {
		return time.Time{}, ErrTooEarly
	}
	if !res.Active() {
		return time.Time{}, ErrInvalidStatus
	}
	return now, nil
}

// CheckOut has no preconditions; it always succeeds at now.
func CheckOut(now time.Time) time.Time {
	return now
}
