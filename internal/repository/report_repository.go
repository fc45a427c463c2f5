package repository

import (
	"context"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// BookingDetailRow is one reservation with its user, lot, and latest
// payment, as returned by the daily-details report.
type BookingDetailRow struct {
	ReservationID   uuid.UUID  `json:"reservation_id"`
	StartTime       time.Time  `json:"start_time"`
	EndTime         time.Time  `json:"end_time"`
	Status          string     `json:"status"`
	SlotLabel       *string    `json:"slot_label,omitempty"`
	UserName        string     `json:"user_name"`
	UserEmail       string     `json:"user_email"`
	UserPhone       string     `json:"user_phone,omitempty"`
	LotName         string     `json:"lot_name"`
	LotLocation     string     `json:"lot_location"`
	AmountCents     *int64     `json:"amount_cents,omitempty"`
	PaymentMethod   *string    `json:"payment_method,omitempty"`
	TransactionCode *string    `json:"transaction_code,omitempty"`
	PaidAt          *time.Time `json:"paid_at,omitempty"`
	PaymentStatus   *string    `json:"payment_status,omitempty"`
}

// ReportRepositoryImpl runs the cross-table report queries the
// per-aggregate repositories do not cover.
type ReportRepositoryImpl struct {
	db *gorm.DB
}

// NewReportRepository creates a new GORM-based report repository.
func NewReportRepository(db *gorm.DB) *ReportRepositoryImpl {
	return &ReportRepositoryImpl{db: db}
}

// BookingDetailsByDay returns all reservations created on the given
// calendar day joined with user, lot, and payment data.
func (r *ReportRepositoryImpl) BookingDetailsByDay(ctx context.Context, day time.Time) ([]BookingDetailRow, error) {
	var rows []BookingDetailRow
	err := r.db.WithContext(ctx).Model(&ReservationModel{}).
		Select(`reservations.id AS reservation_id,
			reservations.start_time, reservations.end_time, reservations.status,
			reservations.slot_label,
			users.name AS user_name, users.email AS user_email, users.phone AS user_phone,
			parking_lots.name AS lot_name, parking_lots.location AS lot_location,
			payments.amount_cents, payments.method AS payment_method,
			payments.transaction_code, payments.paid_at, payments.status AS payment_status`).
		Joins("JOIN users ON users.id = reservations.user_id").
		Joins("JOIN parking_lots ON parking_lots.id = reservations.lot_id").
		Joins("LEFT JOIN payments ON payments.reservation_id = reservations.id").
		Where("DATE(reservations.created_at) = ?", day.Format("2006-01-02")).
		Order("reservations.created_at DESC").
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}
	return rows, nil
}
