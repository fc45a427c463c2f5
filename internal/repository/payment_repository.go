package repository

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/parkstack/service-parking/internal/domain"
	paymentDomain "github.com/parkstack/service-parking/internal/domain/payment"
)

// PaymentModel is the GORM persistence model for the payments table.
type PaymentModel struct {
	ID              uuid.UUID         `gorm:"type:uuid;primaryKey;default:uuid_generate_v4()"`
	ReservationID   uuid.UUID         `gorm:"type:uuid;not null;index"`
	Reservation     *ReservationModel `gorm:"foreignKey:ReservationID"`
	AmountCents     int64             `gorm:"not null"`
	Method          string            `gorm:"type:varchar(20);not null"`
	Status          string            `gorm:"type:varchar(20);not null;default:'pending'"`
	TransactionCode string            `gorm:"type:varchar(255)"`
	FailureReason   string            `gorm:"type:text"`
	PaidAt          *time.Time        `gorm:"type:timestamptz"`
	CreatedAt       time.Time         `gorm:"type:timestamptz;not null;default:now()"`
	UpdatedAt       time.Time         `gorm:"type:timestamptz;not null;default:now()"`
}

// TableName specifies the table name for GORM.
func (PaymentModel) TableName() string {
	return "payments"
}

// PaymentRepositoryImpl is the GORM-based implementation of PaymentRepository.
type PaymentRepositoryImpl struct {
	db *gorm.DB
}

// NewPaymentRepository creates a new GORM-based payment repository.
func NewPaymentRepository(db *gorm.DB) *PaymentRepositoryImpl {
	return &PaymentRepositoryImpl{db: db}
}

// FindByID retrieves a payment by its unique ID.
func (r *PaymentRepositoryImpl) FindByID(ctx context.Context, id uuid.UUID) (*paymentDomain.Payment, error) {
	var model PaymentModel
	if err := r.db.WithContext(ctx).Where("id = ?", id).First(&model).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.NewNotFoundError("payment", id.String())
		}
		return nil, err
	}
	return paymentToDomain(&model), nil
}

// FindByReservation retrieves payments for a reservation, newest first.
func (r *PaymentRepositoryImpl) FindByReservation(ctx context.Context, reservationID uuid.UUID) ([]*paymentDomain.Payment, error) {
	var models []PaymentModel
	if err := r.db.WithContext(ctx).
		Where("reservation_id = ?", reservationID).
		Order("created_at DESC").
		Find(&models).Error; err != nil {
		return nil, err
	}

	payments := make([]*paymentDomain.Payment, len(models))
	for i := range models {
		payments[i] = paymentToDomain(&models[i])
	}
	return payments, nil
}

// Save persists a new payment aggregate.
func (r *PaymentRepositoryImpl) Save(ctx context.Context, p *paymentDomain.Payment) error {
	return r.db.WithContext(ctx).Create(paymentToModel(p)).Error
}

// Update persists changes to an existing payment aggregate.
func (r *PaymentRepositoryImpl) Update(ctx context.Context, p *paymentDomain.Payment) error {
	model := paymentToModel(p)
	result := r.db.WithContext(ctx).
		Model(&PaymentModel{}).
		Where("id = ?", model.ID).
		Select("Status", "TransactionCode", "FailureReason", "PaidAt", "UpdatedAt").
		Updates(model)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return domain.NewNotFoundError("payment", model.ID.String())
	}
	return nil
}

// SumPaidByDay returns total paid revenue for the calendar day.
func (r *PaymentRepositoryImpl) SumPaidByDay(ctx context.Context, day time.Time) (int64, error) {
	var total int64
	err := r.db.WithContext(ctx).Model(&PaymentModel{}).
		Where("status = ? AND DATE(paid_at) = ?", "paid", day.Format("2006-01-02")).
		Select("COALESCE(SUM(amount_cents), 0)").
		Scan(&total).Error
	return total, err
}

// SumPaidByDayPerLot returns paid revenue for the day broken down by lot.
func (r *PaymentRepositoryImpl) SumPaidByDayPerLot(ctx context.Context, day time.Time) ([]paymentDomain.RevenueByLot, error) {
	type row struct {
		LotID      uuid.UUID
		LotName    string
		TotalCents int64
	}
	var rows []row
	err := r.db.WithContext(ctx).Model(&PaymentModel{}).
		Select("reservations.lot_id AS lot_id, parking_lots.name AS lot_name, COALESCE(SUM(payments.amount_cents), 0) AS total_cents").
		Joins("JOIN reservations ON reservations.id = payments.reservation_id").
		Joins("JOIN parking_lots ON parking_lots.id = reservations.lot_id").
		Where("payments.status = ? AND DATE(payments.paid_at) = ?", "paid", day.Format("2006-01-02")).
		Group("reservations.lot_id, parking_lots.name").
		Order("total_cents DESC").
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}

	out := make([]paymentDomain.RevenueByLot, len(rows))
	for i, r := range rows {
		out[i] = paymentDomain.RevenueByLot{
			LotID:      r.LotID,
			LotName:    r.LotName,
			TotalCents: r.TotalCents,
		}
	}
	return out, nil
}

// paymentToDomain maps a PaymentModel to the domain Payment aggregate.
func paymentToDomain(model *PaymentModel) *paymentDomain.Payment {
	return paymentDomain.Reconstitute(
		model.ID,
		model.ReservationID,
		model.AmountCents,
		paymentDomain.Method(model.Method),
		paymentDomain.PaymentStatus(model.Status),
		model.TransactionCode,
		model.FailureReason,
		model.PaidAt,
		model.CreatedAt,
		model.UpdatedAt,
	)
}

// paymentToModel maps a domain Payment aggregate to a PaymentModel.
func paymentToModel(p *paymentDomain.Payment) *PaymentModel {
	return &PaymentModel{
		ID:              p.ID(),
		ReservationID:   p.ReservationID(),
		AmountCents:     p.AmountCents(),
		Method:          string(p.Method()),
		Status:          string(p.Status()),
		TransactionCode: p.TransactionCode(),
		FailureReason:   p.FailureReason(),
		PaidAt:          p.PaidAt(),
		CreatedAt:       p.CreatedAt(),
		UpdatedAt:       p.UpdatedAt(),
	}
}
