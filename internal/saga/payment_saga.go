package saga

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/parkstack/service-parking/internal/adapter"
	paymentDomain "github.com/parkstack/service-parking/internal/domain/payment"
	reservationDomain "github.com/parkstack/service-parking/internal/domain/reservation"
	"github.com/parkstack/service-parking/internal/events"
	"github.com/parkstack/service-parking/internal/kafka"
)

// SagaStep is a single step with an execute action and an optional
// compensating action.
type SagaStep struct {
	Name       string
	Execute    func(ctx context.Context) error
	Compensate func(ctx context.Context) error
}

// Saga runs steps in order and compensates executed steps in reverse
// order when one fails.
type Saga struct {
	name   string
	steps  []SagaStep
	logger *zap.Logger
}

// NewSaga creates a new saga orchestrator.
func NewSaga(name string, logger *zap.Logger) *Saga {
	return &Saga{name: name, logger: logger}
}

// AddStep appends a step to the saga.
func (s *Saga) AddStep(step SagaStep) {
	s.steps = append(s.steps, step)
}

// Execute runs all steps. On failure, executed steps are compensated in
// reverse order; compensation errors are logged, not returned.
func (s *Saga) Execute(ctx context.Context) error {
	s.logger.Info("saga started", zap.String("saga", s.name))

	executed := make([]SagaStep, 0, len(s.steps))
	for _, step := range s.steps {
		s.logger.Info("executing saga step",
			zap.String("saga", s.name),
			zap.String("step", step.Name),
		)

		if err := step.Execute(ctx); err != nil {
			s.logger.Error("saga step failed, starting compensation",
				zap.String("saga", s.name),
				zap.String("step", step.Name),
				zap.Error(err),
			)

			for i := len(executed) - 1; i >= 0; i-- {
				comp := executed[i]
				if comp.Compensate == nil {
					continue
				}
				s.logger.Info("compensating saga step",
					zap.String("saga", s.name),
					zap.String("step", comp.Name),
				)
				if compErr := comp.Compensate(ctx); compErr != nil {
					s.logger.Error("compensation failed",
						zap.String("saga", s.name),
						zap.String("step", comp.Name),
						zap.Error(compErr),
					)
				}
			}

			return fmt.Errorf("saga '%s' failed at step '%s': %w", s.name, step.Name, err)
		}

		executed = append(executed, step)
	}

	s.logger.Info("saga completed successfully", zap.String("saga", s.name))
	return nil
}

// PaymentSagaService orchestrates the record-payment workflow: charge the
// gateway, move the reservation to paid through the ledger, settle the
// payment record, and publish the result.
type PaymentSagaService struct {
	paymentRepo paymentDomain.PaymentRepository
	ledger      reservationDomain.SlotInventoryLedger
	gateway     adapter.PaymentGateway
	producer    *kafka.Producer
	logger      *zap.Logger
}

// NewPaymentSagaService creates a new PaymentSagaService.
func NewPaymentSagaService(
	paymentRepo paymentDomain.PaymentRepository,
	ledger reservationDomain.SlotInventoryLedger,
	gateway adapter.PaymentGateway,
	producer *kafka.Producer,
	logger *zap.Logger,
) *PaymentSagaService {
	return &PaymentSagaService{
		paymentRepo: paymentRepo,
		ledger:      ledger,
		gateway:     gateway,
		producer:    producer,
		logger:      logger,
	}
}

// RecordPaymentSaga records a payment for a reservation. Once the ledger
// transition to paid commits, the reservation can no longer be cancelled;
// a failure before that point voids the charge and marks the payment
// failed.
func (s *PaymentSagaService) RecordPaymentSaga(
	ctx context.Context,
	reservationID uuid.UUID,
	amountCents int64,
	method paymentDomain.Method,
) (*paymentDomain.Payment, error) {
	p, err := paymentDomain.NewPayment(reservationID, amountCents, method)
	if err != nil {
		return nil, err
	}

	var transactionCode string

	saga := NewSaga("record_payment", s.logger)

	// Step 1: persist the pending payment record.
	saga.AddStep(SagaStep{
		Name: "save_payment",
		Execute: func(ctx context.Context) error {
			return s.paymentRepo.Save(ctx, p)
		},
		Compensate: func(ctx context.Context) error {
			_ = p.Fail("saga compensation: payment recording failed")
			return s.paymentRepo.Update(ctx, p)
		},
	})

	// Step 2: capture the charge with the gateway.
	saga.AddStep(SagaStep{
		Name: "charge_gateway",
		Execute: func(ctx context.Context) error {
			var err error
			transactionCode, err = s.gateway.Charge(ctx, amountCents, string(method))
			return err
		},
		Compensate: func(ctx context.Context) error {
			if transactionCode != "" {
				return s.gateway.VoidCharge(ctx, transactionCode)
			}
			return nil
		},
	})

	// Step 3: move the reservation to paid through the ledger. From here
	// cancellation is permanently rejected.
	saga.AddStep(SagaStep{
		Name: "mark_reservation_paid",
		Execute: func(ctx context.Context) error {
			_, err := s.ledger.Transition(ctx, reservationID, reservationDomain.StatusPaid)
			return err
		},
		Compensate: nil, // the paid transition is not reversible
	})

	// Step 4: settle the payment record with the transaction code.
	saga.AddStep(SagaStep{
		Name: "settle_payment",
		Execute: func(ctx context.Context) error {
			if err := p.MarkPaid(transactionCode); err != nil {
				return err
			}
			return s.paymentRepo.Update(ctx, p)
		},
		Compensate: nil,
	})

	// Step 5: publish PaymentRecordedEvent.
	saga.AddStep(SagaStep{
		Name: "publish_payment_recorded",
		Execute: func(ctx context.Context) error {
			event := events.PaymentRecordedEvent{
				PaymentID:       p.ID(),
				ReservationID:   reservationID,
				AmountCents:     amountCents,
				Method:          string(method),
				TransactionCode: transactionCode,
				OccurredAt:      time.Now().UTC(),
			}
			cloudEvent, err := kafka.NewCloudEvent("service-parking", events.PaymentRecorded, event)
			if err != nil {
				return fmt.Errorf("failed to create cloud event: %w", err)
			}
			return s.producer.PublishEvent(ctx, events.TopicPaymentEvents, cloudEvent)
		},
		Compensate: nil, // event publishing has no compensating action
	})

	if err := saga.Execute(ctx); err != nil {
		s.publishFailedEvent(ctx, p.ID(), reservationID, err.Error())
		return nil, err
	}

	return p, nil
}

// publishFailedEvent publishes a PaymentFailedEvent.
func (s *PaymentSagaService) publishFailedEvent(ctx context.Context, paymentID, reservationID uuid.UUID, reason string) {
	event := events.PaymentFailedEvent{
		PaymentID:     paymentID,
		ReservationID: reservationID,
		Reason:        reason,
		OccurredAt:    time.Now().UTC(),
	}

	cloudEvent, err := kafka.NewCloudEvent("service-parking", events.PaymentFailed, event)
	if err != nil {
		s.logger.Error("failed to create payment failed cloud event", zap.Error(err))
		return
	}

	if err := s.producer.PublishEvent(ctx, events.TopicPaymentEvents, cloudEvent); err != nil {
		s.logger.Error("failed to publish payment failed event", zap.Error(err))
	}
}
