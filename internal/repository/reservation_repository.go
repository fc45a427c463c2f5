package repository

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/parkstack/service-parking/internal/domain"
	reservationDomain "github.com/parkstack/service-parking/internal/domain/reservation"
)

// ReservationModel is the GORM persistence model for the reservations table.
type ReservationModel struct {
	ID        uuid.UUID `gorm:"type:uuid;primaryKey;default:uuid_generate_v4()"`
	UserID    uuid.UUID `gorm:"type:uuid;not null;index"`
	LotID     uuid.UUID `gorm:"type:uuid;not null;index"`
	Lot       *LotModel `gorm:"foreignKey:LotID"`
	SlotLabel *string   `gorm:"type:varchar(50)"`
	StartTime time.Time `gorm:"type:timestamptz;not null"`
	EndTime   time.Time `gorm:"type:timestamptz;not null"`
	Status    string    `gorm:"type:varchar(20);not null;default:'booked';index"`
	CreatedAt time.Time `gorm:"type:timestamptz;not null;default:now()"`
	UpdatedAt time.Time `gorm:"type:timestamptz;not null;default:now()"`
}

// TableName specifies the table name for GORM.
func (ReservationModel) TableName() string {
	return "reservations"
}

// ReservationRepositoryImpl is the GORM-based read side for reservations.
// Status and capacity writes go through the ledger.
type ReservationRepositoryImpl struct {
	db *gorm.DB
}

// NewReservationRepository creates a new GORM-based reservation repository.
func NewReservationRepository(db *gorm.DB) *ReservationRepositoryImpl {
	return &ReservationRepositoryImpl{db: db}
}

// FindByID retrieves a reservation by its unique ID.
func (r *ReservationRepositoryImpl) FindByID(ctx context.Context, id uuid.UUID) (*reservationDomain.Reservation, error) {
	var model ReservationModel
	if err := r.db.WithContext(ctx).Where("id = ?", id).First(&model).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.NewNotFoundError("reservation", id.String())
		}
		return nil, err
	}
	return reservationToDomain(&model), nil
}

// FindByUser retrieves a user's reservations, newest first.
func (r *ReservationRepositoryImpl) FindByUser(ctx context.Context, userID uuid.UUID) ([]*reservationDomain.Reservation, error) {
	var models []ReservationModel
	if err := r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("created_at DESC").
		Find(&models).Error; err != nil {
		return nil, err
	}

	reservations := make([]*reservationDomain.Reservation, len(models))
	for i := range models {
		reservations[i] = reservationToDomain(&models[i])
	}
	return reservations, nil
}

// ListAll retrieves all reservations with pagination (admin).
func (r *ReservationRepositoryImpl) ListAll(ctx context.Context, page, limit int) ([]*reservationDomain.Reservation, int64, error) {
	var total int64
	if err := r.db.WithContext(ctx).Model(&ReservationModel{}).Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var models []ReservationModel
	offset := (page - 1) * limit
	if err := r.db.WithContext(ctx).
		Order("created_at DESC").
		Offset(offset).
		Limit(limit).
		Find(&models).Error; err != nil {
		return nil, 0, err
	}

	reservations := make([]*reservationDomain.Reservation, len(models))
	for i := range models {
		reservations[i] = reservationToDomain(&models[i])
	}
	return reservations, total, nil
}

// reservationToDomain maps a ReservationModel to the domain aggregate.
func reservationToDomain(model *ReservationModel) *reservationDomain.Reservation {
	return reservationDomain.Reconstitute(
		model.ID,
		model.UserID,
		model.LotID,
		model.SlotLabel,
		model.StartTime,
		model.EndTime,
		reservationDomain.Status(model.Status),
		model.CreatedAt,
		model.UpdatedAt,
	)
}

// reservationToModel maps a domain aggregate to a ReservationModel.
func reservationToModel(r *reservationDomain.Reservation) *ReservationModel {
	return &ReservationModel{
		ID:        r.ID(),
		UserID:    r.UserID(),
		LotID:     r.LotID(),
		SlotLabel: r.SlotLabel(),
		StartTime: r.StartTime(),
		EndTime:   r.EndTime(),
		Status:    string(r.Status()),
		CreatedAt: r.CreatedAt(),
		UpdatedAt: r.UpdatedAt(),
	}
}
