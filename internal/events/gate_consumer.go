package events

import (
	"context"
	"errors"
	"strings"

	"github.com/google/uuid"
	kafkago "github.com/segmentio/kafka-go"
	"go.uber.org/zap"

	"github.com/parkstack/service-parking/internal/domain"
	"github.com/parkstack/service-parking/internal/kafka"
)

// ReservationTransitioner is the slice of the reservation service the
// gate consumer needs.
type ReservationTransitioner interface {
	ActivateReservation(ctx context.Context, reservationID uuid.UUID) error
	CompleteReservation(ctx context.Context, reservationID uuid.UUID) error
}

// GateEventConsumer listens to barrier events from lot gate hardware and
// moves reservations through arrival and departure.
type GateEventConsumer struct {
	consumer *kafka.Consumer
	service  ReservationTransitioner
	logger   *zap.Logger
}

// NewGateEventConsumer creates a consumer for gate events.
func NewGateEventConsumer(
	brokers []string,
	groupID string,
	service ReservationTransitioner,
	logger *zap.Logger,
) *GateEventConsumer {
	consumer := kafka.NewConsumer(brokers, groupID, TopicGateEvents, logger)
	return &GateEventConsumer{
		consumer: consumer,
		service:  service,
		logger:   logger,
	}
}

// Start begins consuming gate events. It blocks until the context is
// cancelled.
func (c *GateEventConsumer) Start(ctx context.Context) error {
	return c.consumer.Consume(ctx, c.handleMessage)
}

// handleMessage routes incoming Kafka messages to the matching transition.
func (c *GateEventConsumer) handleMessage(ctx context.Context, msg kafkago.Message) error {
	cloudEvent, err := kafka.ParseCloudEvent(msg.Value)
	if err != nil {
		c.logger.Error("failed to parse cloud event from gate topic",
			zap.Error(err),
			zap.String("raw", string(msg.Value)),
		)
		return err
	}

	var event GateEvent
	if err := cloudEvent.ParseData(&event); err != nil {
		c.logger.Error("failed to parse gate event data", zap.Error(err))
		return err
	}

	c.logger.Info("received gate event",
		zap.String("type", cloudEvent.Type),
		zap.String("reservation_id", event.ReservationID.String()),
	)

	switch {
	case strings.EqualFold(cloudEvent.Type, GateVehicleEntered):
		err = c.service.ActivateReservation(ctx, event.ReservationID)
	case strings.EqualFold(cloudEvent.Type, GateVehicleExited):
		err = c.service.CompleteReservation(ctx, event.ReservationID)
	default:
		c.logger.Debug("ignoring unhandled gate event type",
			zap.String("type", cloudEvent.Type),
		)
		return nil
	}

	// Gate hardware replays and out-of-order deliveries are expected;
	// skip rather than retry when the reservation is gone or the
	// transition no longer applies.
	if err != nil && (errors.Is(err, domain.ErrNotFound) || errors.Is(err, domain.ErrInvalidState)) {
		c.logger.Warn("skipping gate event",
			zap.String("reservation_id", event.ReservationID.String()),
			zap.Error(err),
		)
		return nil
	}
	return err
}

// Close closes the underlying Kafka consumer.
func (c *GateEventConsumer) Close() error {
	return c.consumer.Close()
}
