package repository

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/parkstack/service-parking/internal/domain"
	reservationDomain "github.com/parkstack/service-parking/internal/domain/reservation"
)

// SlotInventoryLedgerImpl enforces atomic, race-free capacity and status
// bookkeeping over PostgreSQL. Every operation runs in one transaction
// holding a FOR UPDATE lock on the affected lot row, so concurrent
// operations on the same lot serialize while different lots never block
// each other.
type SlotInventoryLedgerImpl struct {
	db     *gorm.DB
	logger *zap.Logger
}

// NewSlotInventoryLedger creates a ledger backed by the given database.
func NewSlotInventoryLedger(db *gorm.DB, logger *zap.Logger) *SlotInventoryLedgerImpl {
	return &SlotInventoryLedgerImpl{db: db, logger: logger}
}

// Reserve claims one slot at the lot and creates a booked reservation,
// committed as one unit. With available_capacity = 1 and two concurrent
// calls, exactly one succeeds; the other gets a conflict error.
func (l *SlotInventoryLedgerImpl) Reserve(
	ctx context.Context,
	lotID, userID uuid.UUID,
	slotLabel *string,
	startTime, endTime time.Time,
) (*reservationDomain.Reservation, error) {
	res, err := reservationDomain.NewReservation(userID, lotID, slotLabel, startTime, endTime)
	if err != nil {
		return nil, err
	}

	err = l.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var lotModel LotModel
		if err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).
			Where("id = ?", lotID).
			First(&lotModel).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return domain.NewNotFoundError("parking lot", lotID.String())
			}
			return err
		}

		if lotModel.AvailableCapacity <= 0 {
			return domain.NewConflictError("no available slots at this lot")
		}

		if err := tx.Model(&LotModel{}).
			Where("id = ?", lotID).
			Updates(map[string]interface{}{
				"available_capacity": gorm.Expr("available_capacity - 1"),
				"updated_at":         time.Now().UTC(),
			}).Error; err != nil {
			return err
		}

		return tx.Create(reservationToModel(res)).Error
	})
	if err != nil {
		return nil, err
	}

	l.logger.Info("reservation booked",
		zap.String("reservation_id", res.ID().String()),
		zap.String("lot_id", lotID.String()),
		zap.String("user_id", userID.String()),
	)
	return res, nil
}

// Transition moves a reservation to next under the same per-lot locking
// discipline, applying the capacity adjustment the status machine
// implies. Capacity is restored if and only if a booked or active
// reservation is cancelled.
func (l *SlotInventoryLedgerImpl) Transition(
	ctx context.Context,
	reservationID uuid.UUID,
	next reservationDomain.Status,
) (*reservationDomain.Reservation, error) {
	var updated *reservationDomain.Reservation

	err := l.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var resModel ReservationModel
		if err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).
			Where("id = ?", reservationID).
			First(&resModel).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return domain.NewNotFoundError("reservation", reservationID.String())
			}
			return err
		}

		res := reservationToDomain(&resModel)
		delta, err := res.TransitionTo(next)
		if err != nil {
			return err
		}

		if delta != 0 {
			// Lock the lot row before adjusting so the counter cannot race
			// with a concurrent Reserve on the same lot.
			var lotModel LotModel
			if err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).
				Where("id = ?", res.LotID()).
				First(&lotModel).Error; err != nil {
				if errors.Is(err, gorm.ErrRecordNotFound) {
					return domain.NewNotFoundError("parking lot", res.LotID().String())
				}
				return err
			}

			newAvailable := lotModel.AvailableCapacity + delta
			if newAvailable < 0 || newAvailable > lotModel.TotalCapacity {
				return domain.NewConflictError("capacity adjustment would violate lot capacity bounds")
			}

			if err := tx.Model(&LotModel{}).
				Where("id = ?", lotModel.ID).
				Updates(map[string]interface{}{
					"available_capacity": newAvailable,
					"updated_at":         time.Now().UTC(),
				}).Error; err != nil {
				return err
			}
		}

		if err := tx.Model(&ReservationModel{}).
			Where("id = ?", reservationID).
			Updates(map[string]interface{}{
				"status":     string(res.Status()),
				"updated_at": res.UpdatedAt(),
			}).Error; err != nil {
			return err
		}

		updated = res
		return nil
	})
	if err != nil {
		return nil, err
	}

	l.logger.Info("reservation transitioned",
		zap.String("reservation_id", reservationID.String()),
		zap.String("status", string(next)),
	)
	return updated, nil
}
