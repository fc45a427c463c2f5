package events

import (
	"time"

	"github.com/google/uuid"
)

// Kafka topics used by the service.
const (
	TopicReservationEvents = "parking.reservation.events"
	TopicPaymentEvents     = "parking.payment.events"
	TopicGateEvents        = "parking.gate.events"
)

// Event types.
const (
	ReservationBooked    = "parking.reservation.booked"
	ReservationCancelled = "parking.reservation.cancelled"
	ReservationCompleted = "parking.reservation.completed"

	PaymentRecorded = "parking.payment.recorded"
	PaymentFailed   = "parking.payment.failed"

	GateVehicleEntered = "parking.gate.vehicle_entered"
	GateVehicleExited  = "parking.gate.vehicle_exited"
)

// ReservationBookedEvent is published when a slot is claimed.
type ReservationBookedEvent struct {
	ReservationID uuid.UUID `json:"reservation_id"`
	LotID         uuid.UUID `json:"lot_id"`
	UserID        uuid.UUID `json:"user_id"`
	StartTime     time.Time `json:"start_time"`
	EndTime       time.Time `json:"end_time"`
	OccurredAt    time.Time `json:"occurred_at"`
}

// ReservationStatusChangedEvent is published on cancel and complete.
type ReservationStatusChangedEvent struct {
	ReservationID uuid.UUID `json:"reservation_id"`
	LotID         uuid.UUID `json:"lot_id"`
	Status        string    `json:"status"`
	OccurredAt    time.Time `json:"occurred_at"`
}

// PaymentRecordedEvent is published when a payment settles and the
// reservation moves to paid.
type PaymentRecordedEvent struct {
	PaymentID       uuid.UUID `json:"payment_id"`
	ReservationID   uuid.UUID `json:"reservation_id"`
	AmountCents     int64     `json:"amount_cents"`
	Method          string    `json:"method"`
	TransactionCode string    `json:"transaction_code"`
	OccurredAt      time.Time `json:"occurred_at"`
}

// PaymentFailedEvent is published when the payment saga aborts.
type PaymentFailedEvent struct {
	PaymentID     uuid.UUID `json:"payment_id"`
	ReservationID uuid.UUID `json:"reservation_id"`
	Reason        string    `json:"reason"`
	OccurredAt    time.Time `json:"occurred_at"`
}

// GateEvent is produced by lot gate hardware when a vehicle passes a
// barrier for a known reservation.
type GateEvent struct {
	ReservationID uuid.UUID `json:"reservation_id"`
	LotID         uuid.UUID `json:"lot_id"`
	OccurredAt    time.Time `json:"occurred_at"`
}
