package lot

import (
	"time"

	"github.com/google/uuid"

	"github.com/parkstack/service-parking/internal/domain"
)

// Lot is the aggregate root for a parking lot. It owns the capacity
// counters: 0 <= availableCapacity <= totalCapacity always holds.
type Lot struct {
	id                uuid.UUID
	name              string
	location          string
	totalCapacity     int
	availableCapacity int
	createdAt         time.Time
	updatedAt         time.Time
}

// NewLot creates a lot. When availableCapacity is negative the lot starts
// fully available.
func NewLot(name, location string, totalCapacity, availableCapacity int) (*Lot, error) {
	if name == "" || location == "" {
		return nil, domain.NewValidationError("name and location are required")
	}
	if totalCapacity < 0 {
		return nil, domain.NewValidationError("total_capacity must be >= 0")
	}
	if availableCapacity < 0 {
		availableCapacity = totalCapacity
	}
	if availableCapacity > totalCapacity {
		return nil, domain.NewValidationError("available_capacity must be between 0 and total_capacity")
	}

	now := time.Now().UTC()
	return &Lot{
		id:                uuid.New(),
		name:              name,
		location:          location,
		totalCapacity:     totalCapacity,
		availableCapacity: availableCapacity,
		createdAt:         now,
		updatedAt:         now,
	}, nil
}

func (l *Lot) ID() uuid.UUID          { return l.id }
func (l *Lot) Name() string           { return l.name }
func (l *Lot) Location() string       { return l.location }
func (l *Lot) TotalCapacity() int     { return l.totalCapacity }
func (l *Lot) AvailableCapacity() int { return l.availableCapacity }
func (l *Lot) CreatedAt() time.Time   { return l.createdAt }
func (l *Lot) UpdatedAt() time.Time   { return l.updatedAt }

// HasAvailability reports whether at least one slot is free.
func (l *Lot) HasAvailability() bool {
	return l.availableCapacity > 0
}

// ClaimSlot consumes one unit of capacity.
func (l *Lot) ClaimSlot() error {
	if l.availableCapacity <= 0 {
		return domain.NewConflictError("no available slots at this lot")
	}
	l.availableCapacity--
	l.updatedAt = time.Now().UTC()
	return nil
}

// ReleaseSlot returns one unit of capacity.
func (l *Lot) ReleaseSlot() error {
	if l.availableCapacity >= l.totalCapacity {
		return domain.NewConflictError("available capacity already at total capacity")
	}
	l.availableCapacity++
	l.updatedAt = time.Now().UTC()
	return nil
}

// UpdateDetails applies an administrative edit. Nil pointers leave the
// corresponding field untouched.
func (l *Lot) UpdateDetails(name, location *string, totalCapacity, availableCapacity *int) error {
	newTotal := l.totalCapacity
	if totalCapacity != nil {
		if *totalCapacity < 0 {
			return domain.NewValidationError("total_capacity must be >= 0")
		}
		newTotal = *totalCapacity
	}

	newAvailable := l.availableCapacity
	if availableCapacity != nil {
		newAvailable = *availableCapacity
	}
	if newAvailable < 0 || newAvailable > newTotal {
		return domain.NewValidationError("available_capacity must be between 0 and total_capacity")
	}

	if name != nil && *name != "" {
		l.name = *name
	}
	if location != nil && *location != "" {
		l.location = *location
	}
	l.totalCapacity = newTotal
	l.availableCapacity = newAvailable
	l.updatedAt = time.Now().UTC()
	return nil
}

// Reconstitute rebuilds a Lot from persisted data.
func Reconstitute(
	id uuid.UUID,
	name, location string,
	totalCapacity, availableCapacity int,
	createdAt, updatedAt time.Time,
) *Lot {
	return &Lot{
		id:                id,
		name:              name,
		location:          location,
		totalCapacity:     totalCapacity,
		availableCapacity: availableCapacity,
		createdAt:         createdAt,
		updatedAt:         updatedAt,
	}
}
