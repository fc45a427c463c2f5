package application

import (
	"context"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	paymentDomain "github.com/parkstack/service-parking/internal/domain/payment"
	"github.com/parkstack/service-parking/internal/repository"
)

// LotRevenueDTO is one lot's share of a day's revenue.
type LotRevenueDTO struct {
	LotID      uuid.UUID `json:"lot_id"`
	LotName    string    `json:"lot_name"`
	TotalCents int64     `json:"total_cents"`
}

// DailyReportDTO is the daily revenue summary.
type DailyReportDTO struct {
	Date               string          `json:"date"`
	TotalEarningsCents int64           `json:"total_earnings_cents"`
	Breakdown          []LotRevenueDTO `json:"breakdown"`
}

// DailySummaryDTO aggregates booking counts for the details report.
type DailySummaryDTO struct {
	TotalBookings   int   `json:"total_bookings"`
	PaidBookings    int   `json:"paid_bookings"`
	PendingBookings int   `json:"pending_bookings"`
	TotalRevenue    int64 `json:"total_revenue_cents"`
}

// DailyDetailsDTO is the per-booking daily report.
type DailyDetailsDTO struct {
	Date     string                        `json:"date"`
	Summary  DailySummaryDTO               `json:"summary"`
	Bookings []repository.BookingDetailRow `json:"bookings"`
}

// ReportService produces admin revenue reports.
type ReportService struct {
	payments paymentDomain.PaymentRepository
	reports  *repository.ReportRepositoryImpl
	logger   *zap.Logger
}

// NewReportService creates a new ReportService.
func NewReportService(
	payments paymentDomain.PaymentRepository,
	reports *repository.ReportRepositoryImpl,
	logger *zap.Logger,
) *ReportService {
	return &ReportService{payments: payments, reports: reports, logger: logger}
}

// Daily returns total paid revenue for the day with a per-lot breakdown.
func (s *ReportService) Daily(ctx context.Context, day time.Time) (*DailyReportDTO, error) {
	total, err := s.payments.SumPaidByDay(ctx, day)
	if err != nil {
		return nil, err
	}

	byLot, err := s.payments.SumPaidByDayPerLot(ctx, day)
	if err != nil {
		return nil, err
	}

	breakdown := make([]LotRevenueDTO, len(byLot))
	for i, r := range byLot {
		breakdown[i] = LotRevenueDTO{
			LotID:      r.LotID,
			LotName:    r.LotName,
			TotalCents: r.TotalCents,
		}
	}

	return &DailyReportDTO{
		Date:               day.Format("2006-01-02"),
		TotalEarningsCents: total,
		Breakdown:          breakdown,
	}, nil
}

// DailyDetails returns every booking created on the day with its user,
// lot, and payment data plus summary counts.
func (s *ReportService) DailyDetails(ctx context.Context, day time.Time) (*DailyDetailsDTO, error) {
	rows, err := s.reports.BookingDetailsByDay(ctx, day)
	if err != nil {
		return nil, err
	}

	summary := DailySummaryDTO{TotalBookings: len(rows)}
	for _, row := range rows {
		if row.PaymentStatus != nil && *row.PaymentStatus == "paid" {
			summary.PaidBookings++
			if row.AmountCents != nil {
				summary.TotalRevenue += *row.AmountCents
			}
		}
	}
	summary.PendingBookings = summary.TotalBookings - summary.PaidBookings

	return &DailyDetailsDTO{
		Date:     day.Format("2006-01-02"),
		Summary:  summary,
		Bookings: rows,
	}, nil
}
