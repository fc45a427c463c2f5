package reservation

import (
	"context"
	"time"

	"github.com/google/uuid"
)

// SlotInventoryLedger owns capacity bookkeeping for lots and the
// reservation lifecycle. Both operations are atomic: a failure partway
// through leaves capacity and status exactly as they were.
type SlotInventoryLedger interface {
	// Reserve claims one slot at the lot and creates a reservation in the
	// booked state. Returns a conflict error when the lot is full and a
	// not-found error when the lot does not exist.
	Reserve(ctx context.Context, lotID, userID uuid.UUID, slotLabel *string, startTime, endTime time.Time) (*Reservation, error)

	// Transition moves a reservation to next, applying the capacity
	// adjustment the status machine implies. Returns an invalid-state
	// error for disallowed transitions and a not-found error when the
	// reservation does not exist.
	Transition(ctx context.Context, reservationID uuid.UUID, next Status) (*Reservation, error)
}

// ReservationRepository defines read-side persistence for reservations.
// All writes go through the SlotInventoryLedger.
type ReservationRepository interface {
	// FindByID retrieves a reservation by its unique ID.
	FindByID(ctx context.Context, id uuid.UUID) (*Reservation, error)

	// FindByUser retrieves a user's reservations, newest first.
	FindByUser(ctx context.Context, userID uuid.UUID) ([]*Reservation, error)

	// ListAll retrieves all reservations with pagination (admin).
	ListAll(ctx context.Context, page, limit int) ([]*Reservation, int64, error)
}
