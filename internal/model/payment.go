package model

// Payment methods and statuses.
const (
	MethodPix  = "pix"
	MethodCard = "card"

	PaymentPending   = "pending"
	PaymentCompleted = "completed"
	PaymentRefunded  = "refunded"
)

// Payment is a charge recorded against a reservation.  Charges complete
// immediately; there is no external acquirer round trip.
type Payment struct {
	ID            uint64  `json:"id"`
	ReservationID uint64  `json:"reservation_id"`
	Amount        float64 `json:"amount"`
	Method        string  `json:"method"`
	Status        string  `json:"status"`
	TransactionID string  `json:"transaction_id"`
}
