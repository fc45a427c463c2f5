package lot

import (
	"context"

	"github.com/google/uuid"
)

// LotRepository defines the persistence contract for Lot aggregates.
// Capacity counters are never written through this interface; only the
// inventory ledger mutates them.
type LotRepository interface {
	// FindByID retrieves a lot by its unique ID.
	FindByID(ctx context.Context, id uuid.UUID) (*Lot, error)

	// FindAll retrieves all lots, newest first.
	FindAll(ctx context.Context) ([]*Lot, error)

	// Save persists a new lot aggregate.
	Save(ctx context.Context, l *Lot) error

	// Update persists administrative edits to an existing lot.
	Update(ctx context.Context, l *Lot) error

	// Delete removes a lot.
	Delete(ctx context.Context, id uuid.UUID) error
}
