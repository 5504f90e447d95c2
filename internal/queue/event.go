// Package queue defines the events exchanged over RabbitMQ and the
// consumer that records them.
package queue

// Queue names.  Each event type has its own durable queue on the default
// exchange.
const (
	ReservationCreatedQueue = "reservation.created"
	NotificationSentQueue   = "notification.sent"
)

// ReservationCreatedEvent is published after a reservation is stored.  It
// carries enough for downstream consumers to notify or bill without
// calling back into the reservations service.
type ReservationCreatedEvent struct {
	ReservationID uint64  `json:"reservation_id"`
	UserID        uint64  `json:"user_id"`
	SpaceID       uint64  `json:"space_id"`
	StartTime     string  `json:"start_time"`
	EndTime       string  `json:"end_time"`
	TotalPrice    float64 `json:"total_price"`
	CreatedAt     string  `json:"created_at"`
}

// NotificationEvent is published for every notification accepted by the
// notifications service.
type NotificationEvent struct {
	Channel   string `json:"channel"` // email | sms | push
	Recipient string `json:"recipient"`
	Subject   string `json:"subject,omitempty"`
	SentAt    string `json:"sent_at"`
}
