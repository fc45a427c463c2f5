package reservation

import (
	"time"

	"github.com/google/uuid"

	"github.com/parkstack/service-parking/internal/domain"
)

// Status represents the lifecycle state of a reservation.
type Status string

const (
	StatusBooked    Status = "booked"
	StatusActive    Status = "active"
	StatusPaid      Status = "paid"
	StatusCompleted Status = "completed"
	StatusCancelled Status = "cancelled"
)

// allowedTransitions is the reservation status machine. cancelled and
// completed are terminal.
var allowedTransitions = map[Status]map[Status]bool{
	StatusBooked: {
		StatusActive:    true,
		StatusPaid:      true,
		StatusCancelled: true,
	},
	StatusActive: {
		StatusPaid:      true,
		StatusCompleted: true,
		StatusCancelled: true,
	},
	StatusPaid: {
		StatusCompleted: true,
	},
	StatusCompleted: {},
	StatusCancelled: {},
}

// IsValidStatus reports whether s is one of the known statuses.
func IsValidStatus(s Status) bool {
	_, ok := allowedTransitions[s]
	return ok
}

// IsTerminal reports whether s admits no further transitions.
func IsTerminal(s Status) bool {
	return len(allowedTransitions[s]) == 0
}

// Reservation is the aggregate root for a driver's claim on one unit of a
// lot's capacity for a time window.
type Reservation struct {
	id        uuid.UUID
	userID    uuid.UUID
	lotID     uuid.UUID
	slotLabel *string
	startTime time.Time
	endTime   time.Time
	status    Status
	createdAt time.Time
	updatedAt time.Time
}

// NewReservation creates a reservation in the booked state. The capacity
// decrement happens in the ledger, atomically with persistence.
func NewReservation(userID, lotID uuid.UUID, slotLabel *string, startTime, endTime time.Time) (*Reservation, error) {
	if !endTime.After(startTime) {
		return nil, domain.NewValidationError("end_time must be after start_time")
	}

	now := time.Now().UTC()
	return &Reservation{
		id:        uuid.New(),
		userID:    userID,
		lotID:     lotID,
		slotLabel: slotLabel,
		startTime: startTime,
		endTime:   endTime,
		status:    StatusBooked,
		createdAt: now,
		updatedAt: now,
	}, nil
}

func (r *Reservation) ID() uuid.UUID        { return r.id }
func (r *Reservation) UserID() uuid.UUID    { return r.userID }
func (r *Reservation) LotID() uuid.UUID     { return r.lotID }
func (r *Reservation) SlotLabel() *string   { return r.slotLabel }
func (r *Reservation) StartTime() time.Time { return r.startTime }
func (r *Reservation) EndTime() time.Time   { return r.endTime }
func (r *Reservation) Status() Status       { return r.status }
func (r *Reservation) CreatedAt() time.Time { return r.createdAt }
func (r *Reservation) UpdatedAt() time.Time { return r.updatedAt }

// CapacityDelta returns the change to the lot's available capacity that
// moving from current to next implies. Only cancelling a booked or active
// reservation returns capacity; paid and completed keep it consumed.
func CapacityDelta(current, next Status) int {
	if next == StatusCancelled && (current == StatusBooked || current == StatusActive) {
		return 1
	}
	return 0
}

// TransitionTo moves the reservation to next and returns the capacity
// delta the caller must apply to the lot. Disallowed transitions return
// an invalid-state error and leave the reservation untouched. Cancelling
// a paid or completed reservation gets its own message since it is the
// path drivers actually hit.
func (r *Reservation) TransitionTo(next Status) (int, error) {
	if !IsValidStatus(next) {
		return 0, domain.NewValidationError("unknown reservation status: " + string(next))
	}
	if !allowedTransitions[r.status][next] {
		if next == StatusCancelled && (r.status == StatusPaid || r.status == StatusCompleted) {
			return 0, &domain.DomainError{
				Err:     domain.ErrInvalidState,
				Message: "cannot cancel a paid or completed reservation",
			}
		}
		return 0, domain.NewInvalidStateError(string(r.status), string(next))
	}

	delta := CapacityDelta(r.status, next)
	r.status = next
	r.updatedAt = time.Now().UTC()
	return delta, nil
}

// Reconstitute rebuilds a Reservation from persisted data.
func Reconstitute(
	id, userID, lotID uuid.UUID,
	slotLabel *string,
	startTime, endTime time.Time,
	status Status,
	createdAt, updatedAt time.Time,
) *Reservation {
	return &Reservation{
		id:        id,
		userID:    userID,
		lotID:     lotID,
		slotLabel: slotLabel,
		startTime: startTime,
		endTime:   endTime,
		status:    status,
		createdAt: createdAt,
		updatedAt: updatedAt,
	}
}
