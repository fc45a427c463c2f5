package payment

import (
	"time"

	"github.com/google/uuid"

	"github.com/parkstack/service-parking/internal/domain"
)

// Method is how the driver paid.
type Method string

const (
	MethodCard Method = "card"
	MethodCash Method = "cash"
)

// PaymentStatus represents the state of a payment record.
type PaymentStatus string

const (
	PaymentPending PaymentStatus = "pending"
	PaymentPaid    PaymentStatus = "paid"
	PaymentFailed  PaymentStatus = "failed"
)

// Payment is the aggregate root for a payment against one reservation.
type Payment struct {
	id              uuid.UUID
	reservationID   uuid.UUID
	amountCents     int64
	method          Method
	status          PaymentStatus
	transactionCode string
	failureReason   string
	paidAt          *time.Time
	createdAt       time.Time
	updatedAt       time.Time
}

// NewPayment creates a pending payment for a reservation.
func NewPayment(reservationID uuid.UUID, amountCents int64, method Method) (*Payment, error) {
	if amountCents <= 0 {
		return nil, domain.NewValidationError("amount must be greater than zero")
	}
	if method != MethodCard && method != MethodCash {
		return nil, domain.NewValidationError("method must be card or cash")
	}

	now := time.Now().UTC()
	return &Payment{
		id:            uuid.New(),
		reservationID: reservationID,
		amountCents:   amountCents,
		method:        method,
		status:        PaymentPending,
		createdAt:     now,
		updatedAt:     now,
	}, nil
}

func (p *Payment) ID() uuid.UUID            { return p.id }
func (p *Payment) ReservationID() uuid.UUID { return p.reservationID }
func (p *Payment) AmountCents() int64       { return p.amountCents }
func (p *Payment) Method() Method           { return p.method }
func (p *Payment) Status() PaymentStatus    { return p.status }
func (p *Payment) TransactionCode() string  { return p.transactionCode }
func (p *Payment) FailureReason() string    { return p.failureReason }
func (p *Payment) PaidAt() *time.Time       { return p.paidAt }
func (p *Payment) CreatedAt() time.Time     { return p.createdAt }
func (p *Payment) UpdatedAt() time.Time     { return p.updatedAt }

// MarkPaid transitions from pending to paid with the gateway's
// transaction code.
func (p *Payment) MarkPaid(transactionCode string) error {
	if p.status != PaymentPending {
		return domain.NewInvalidStateError(string(p.status), string(PaymentPaid))
	}
	now := time.Now().UTC()
	p.status = PaymentPaid
	p.transactionCode = transactionCode
	p.paidAt = &now
	p.updatedAt = now
	return nil
}

// Fail transitions from pending to failed with a reason.
func (p *Payment) Fail(reason string) error {
	if p.status != PaymentPending {
		return domain.NewInvalidStateError(string(p.status), string(PaymentFailed))
	}
	p.status = PaymentFailed
	p.failureReason = reason
	p.updatedAt = time.Now().UTC()
	return nil
}

// Reconstitute rebuilds a Payment from persisted data.
func Reconstitute(
	id, reservationID uuid.UUID,
	amountCents int64,
	method Method,
	status PaymentStatus,
	transactionCode, failureReason string,
	paidAt *time.Time,
	createdAt, updatedAt time.Time,
) *Payment {
	return &Payment{
		id:              id,
		reservationID:   reservationID,
		amountCents:     amountCents,
		method:          method,
		status:          status,
		transactionCode: transactionCode,
		failureReason:   failureReason,
		paidAt:          paidAt,
		createdAt:       createdAt,
		updatedAt:       updatedAt,
	}
}
