package application

import (
	"context"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	paymentDomain "github.com/parkstack/service-parking/internal/domain/payment"
	reservationDomain "github.com/parkstack/service-parking/internal/domain/reservation"
	"github.com/parkstack/service-parking/internal/receipt"
	"github.com/parkstack/service-parking/internal/saga"
)

// CreatePaymentRequest is the DTO for recording a payment.
type CreatePaymentRequest struct {
	ReservationID uuid.UUID `json:"reservation_id" binding:"required"`
	AmountCents   int64     `json:"amount_cents" binding:"required,gt=0"`
	Method        string    `json:"method" binding:"required,oneof=card cash"`
}

// PaymentDTO is the API response representation of a payment.
type PaymentDTO struct {
	ID              uuid.UUID  `json:"id"`
	ReservationID   uuid.UUID  `json:"reservation_id"`
	AmountCents     int64      `json:"amount_cents"`
	Method          string     `json:"method"`
	Status          string     `json:"status"`
	TransactionCode string     `json:"transaction_code,omitempty"`
	PaidAt          *time.Time `json:"paid_at,omitempty"`
	CreatedAt       time.Time  `json:"created_at"`
}

// ReceiptDTO carries the scannable receipt for a settled payment.
type ReceiptDTO struct {
	QR              string `json:"qr"`
	TransactionCode string `json:"transaction_code"`
}

// PaymentResult is the response for a recorded payment.
type PaymentResult struct {
	Payment PaymentDTO `json:"payment"`
	Receipt ReceiptDTO `json:"receipt"`
}

// PaymentService orchestrates payment use cases.
type PaymentService struct {
	payments     paymentDomain.PaymentRepository
	reservations reservationDomain.ReservationRepository
	sagaSvc      *saga.PaymentSagaService
	receipts     *receipt.Generator
	logger       *zap.Logger
}

// NewPaymentService creates a new PaymentService.
func NewPaymentService(
	payments paymentDomain.PaymentRepository,
	reservations reservationDomain.ReservationRepository,
	sagaSvc *saga.PaymentSagaService,
	receipts *receipt.Generator,
	logger *zap.Logger,
) *PaymentService {
	return &PaymentService{
		payments:     payments,
		reservations: reservations,
		sagaSvc:      sagaSvc,
		receipts:     receipts,
		logger:       logger,
	}
}

// RecordPayment charges the gateway, moves the reservation to paid, and
// returns the payment with its QR receipt. After this succeeds the
// reservation can no longer be cancelled.
func (s *PaymentService) RecordPayment(ctx context.Context, req CreatePaymentRequest) (*PaymentResult, error) {
	// Surface a clean not-found before any side effects.
	if _, err := s.reservations.FindByID(ctx, req.ReservationID); err != nil {
		return nil, err
	}

	s.logger.Info("recording payment",
		zap.String("reservation_id", req.ReservationID.String()),
		zap.Int64("amount_cents", req.AmountCents),
		zap.String("method", req.Method),
	)

	p, err := s.sagaSvc.RecordPaymentSaga(ctx, req.ReservationID, req.AmountCents, paymentDomain.Method(req.Method))
	if err != nil {
		s.logger.Error("failed to record payment", zap.Error(err))
		return nil, err
	}

	qr, err := s.receipts.DataURL(p.ReservationID(), p.TransactionCode(), string(p.Method()), p.AmountCents())
	if err != nil {
		// The payment is settled; a receipt rendering failure should not
		// fail the request.
		s.logger.Error("failed to render receipt QR", zap.Error(err))
		qr = ""
	}

	return &PaymentResult{
		Payment: toPaymentDTO(p),
		Receipt: ReceiptDTO{
			QR:              qr,
			TransactionCode: p.TransactionCode(),
		},
	}, nil
}

// PaymentsByReservation retrieves payments for a reservation.
func (s *PaymentService) PaymentsByReservation(ctx context.Context, reservationID uuid.UUID) ([]PaymentDTO, error) {
	payments, err := s.payments.FindByReservation(ctx, reservationID)
	if err != nil {
		return nil, err
	}

	dtos := make([]PaymentDTO, len(payments))
	for i, p := range payments {
		dtos[i] = toPaymentDTO(p)
	}
	return dtos, nil
}

// toPaymentDTO maps a domain Payment to a PaymentDTO.
func toPaymentDTO(p *paymentDomain.Payment) PaymentDTO {
	return PaymentDTO{
		ID:              p.ID(),
		ReservationID:   p.ReservationID(),
		AmountCents:     p.AmountCents(),
		Method:          string(p.Method()),
		Status:          string(p.Status()),
		TransactionCode: p.TransactionCode(),
		PaidAt:          p.PaidAt(),
		CreatedAt:       p.CreatedAt(),
	}
}
