package application

import (
	"context"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/parkstack/service-parking/internal/auth"
	"github.com/parkstack/service-parking/internal/domain"
	reservationDomain "github.com/parkstack/service-parking/internal/domain/reservation"
	"github.com/parkstack/service-parking/internal/events"
	"github.com/parkstack/service-parking/internal/kafka"
)

// CreateReservationRequest is the DTO for booking a slot.
type CreateReservationRequest struct {
	LotID     uuid.UUID `json:"lot_id" binding:"required"`
	SlotLabel *string   `json:"slot_label"`
	StartTime time.Time `json:"start_time" binding:"required"`
	EndTime   time.Time `json:"end_time" binding:"required"`
}

// ReservationDTO is the API response representation of a reservation.
type ReservationDTO struct {
	ID        uuid.UUID `json:"id"`
	UserID    uuid.UUID `json:"user_id"`
	LotID     uuid.UUID `json:"lot_id"`
	SlotLabel *string   `json:"slot_label,omitempty"`
	StartTime time.Time `json:"start_time"`
	EndTime   time.Time `json:"end_time"`
	Status    string    `json:"status"`
	CreatedAt time.Time `json:"created_at"`
}

// ReservationService orchestrates reservation use cases on top of the
// slot inventory ledger.
type ReservationService struct {
	ledger       reservationDomain.SlotInventoryLedger
	reservations reservationDomain.ReservationRepository
	producer     *kafka.Producer
	logger       *zap.Logger
}

// NewReservationService creates a new ReservationService.
func NewReservationService(
	ledger reservationDomain.SlotInventoryLedger,
	reservations reservationDomain.ReservationRepository,
	producer *kafka.Producer,
	logger *zap.Logger,
) *ReservationService {
	return &ReservationService{
		ledger:       ledger,
		reservations: reservations,
		producer:     producer,
		logger:       logger,
	}
}

// Reserve books one slot at the lot for the user. The capacity decrement
// and the reservation insert commit together inside the ledger.
func (s *ReservationService) Reserve(ctx context.Context, userID uuid.UUID, req CreateReservationRequest) (*ReservationDTO, error) {
	if !req.EndTime.After(req.StartTime) {
		return nil, domain.NewValidationError("end_time must be after start_time")
	}

	res, err := s.ledger.Reserve(ctx, req.LotID, userID, req.SlotLabel, req.StartTime, req.EndTime)
	if err != nil {
		return nil, err
	}

	s.publishBooked(ctx, res)

	dto := toReservationDTO(res)
	return &dto, nil
}

// MyReservations returns the user's reservations, newest first.
func (s *ReservationService) MyReservations(ctx context.Context, userID uuid.UUID) ([]ReservationDTO, error) {
	reservations, err := s.reservations.FindByUser(ctx, userID)
	if err != nil {
		return nil, err
	}

	dtos := make([]ReservationDTO, len(reservations))
	for i, r := range reservations {
		dtos[i] = toReservationDTO(r)
	}
	return dtos, nil
}

// ListAll returns a paginated list of all reservations (admin).
func (s *ReservationService) ListAll(ctx context.Context, page, limit int) ([]ReservationDTO, int64, error) {
	reservations, total, err := s.reservations.ListAll(ctx, page, limit)
	if err != nil {
		return nil, 0, err
	}

	dtos := make([]ReservationDTO, len(reservations))
	for i, r := range reservations {
		dtos[i] = toReservationDTO(r)
	}
	return dtos, total, nil
}

// Cancel cancels a reservation and restores the lot's capacity when the
// status machine allows it. Drivers may only cancel their own
// reservations; admins may cancel any.
func (s *ReservationService) Cancel(ctx context.Context, reservationID, requesterID uuid.UUID, requesterRole string) (*ReservationDTO, error) {
	existing, err := s.reservations.FindByID(ctx, reservationID)
	if err != nil {
		return nil, err
	}
	if requesterRole != auth.RoleAdmin && existing.UserID() != requesterID {
		return nil, domain.NewNotFoundError("reservation", reservationID.String())
	}

	res, err := s.ledger.Transition(ctx, reservationID, reservationDomain.StatusCancelled)
	if err != nil {
		return nil, err
	}

	s.publishStatusChanged(ctx, res, events.ReservationCancelled)

	dto := toReservationDTO(res)
	return &dto, nil
}

// Complete marks a reservation completed (admin). Capacity stays
// consumed.
func (s *ReservationService) Complete(ctx context.Context, reservationID uuid.UUID) (*ReservationDTO, error) {
	res, err := s.ledger.Transition(ctx, reservationID, reservationDomain.StatusCompleted)
	if err != nil {
		return nil, err
	}

	s.publishStatusChanged(ctx, res, events.ReservationCompleted)

	dto := toReservationDTO(res)
	return &dto, nil
}

// Activate marks a booked reservation active (admin or gate hardware).
func (s *ReservationService) Activate(ctx context.Context, reservationID uuid.UUID) (*ReservationDTO, error) {
	res, err := s.ledger.Transition(ctx, reservationID, reservationDomain.StatusActive)
	if err != nil {
		return nil, err
	}
	dto := toReservationDTO(res)
	return &dto, nil
}

// ActivateReservation implements the gate consumer contract.
func (s *ReservationService) ActivateReservation(ctx context.Context, reservationID uuid.UUID) error {
	_, err := s.Activate(ctx, reservationID)
	return err
}

// CompleteReservation implements the gate consumer contract.
func (s *ReservationService) CompleteReservation(ctx context.Context, reservationID uuid.UUID) error {
	_, err := s.Complete(ctx, reservationID)
	return err
}

// publishBooked publishes a ReservationBookedEvent. Publishing is best
// effort; the booking already committed.
func (s *ReservationService) publishBooked(ctx context.Context, res *reservationDomain.Reservation) {
	event := events.ReservationBookedEvent{
		ReservationID: res.ID(),
		LotID:         res.LotID(),
		UserID:        res.UserID(),
		StartTime:     res.StartTime(),
		EndTime:       res.EndTime(),
		OccurredAt:    time.Now().UTC(),
	}
	ce, err := kafka.NewCloudEvent("service-parking", events.ReservationBooked, event)
	if err != nil {
		s.logger.Error("failed to create reservation booked event", zap.Error(err))
		return
	}
	if err := s.producer.PublishEvent(ctx, events.TopicReservationEvents, ce); err != nil {
		s.logger.Error("failed to publish reservation booked event", zap.Error(err))
	}
}

// publishStatusChanged publishes a ReservationStatusChangedEvent.
func (s *ReservationService) publishStatusChanged(ctx context.Context, res *reservationDomain.Reservation, eventType string) {
	event := events.ReservationStatusChangedEvent{
		ReservationID: res.ID(),
		LotID:         res.LotID(),
		Status:        string(res.Status()),
		OccurredAt:    time.Now().UTC(),
	}
	ce, err := kafka.NewCloudEvent("service-parking", eventType, event)
	if err != nil {
		s.logger.Error("failed to create reservation status event", zap.Error(err))
		return
	}
	if err := s.producer.PublishEvent(ctx, events.TopicReservationEvents, ce); err != nil {
		s.logger.Error("failed to publish reservation status event", zap.Error(err))
	}
}

// toReservationDTO maps a domain Reservation to a ReservationDTO.
func toReservationDTO(r *reservationDomain.Reservation) ReservationDTO {
	return ReservationDTO{
		ID:        r.ID(),
		UserID:    r.UserID(),
		LotID:     r.LotID(),
		SlotLabel: r.SlotLabel(),
		StartTime: r.StartTime(),
		EndTime:   r.EndTime(),
		Status:    string(r.Status()),
		CreatedAt: r.CreatedAt(),
	}
}
