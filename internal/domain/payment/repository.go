package payment

import (
	"context"
	"time"

	"github.com/google/uuid"
)

// RevenueByLot is one row of the daily revenue breakdown.
type RevenueByLot struct {
	LotID      uuid.UUID
	LotName    string
	TotalCents int64
}

// PaymentRepository defines the persistence contract for Payment aggregates.
type PaymentRepository interface {
	// FindByID retrieves a payment by its unique ID.
	FindByID(ctx context.Context, id uuid.UUID) (*Payment, error)

	// FindByReservation retrieves payments for a reservation, newest first.
	FindByReservation(ctx context.Context, reservationID uuid.UUID) ([]*Payment, error)

	// Save persists a new payment aggregate.
	Save(ctx context.Context, p *Payment) error

	// Update persists changes to an existing payment aggregate.
	Update(ctx context.Context, p *Payment) error

	// SumPaidByDay returns total paid revenue for the calendar day.
	SumPaidByDay(ctx context.Context, day time.Time) (int64, error)

	// SumPaidByDayPerLot returns paid revenue for the day broken down by lot.
	SumPaidByDayPerLot(ctx context.Context, day time.Time) ([]RevenueByLot, error)
}
