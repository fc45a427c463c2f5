//go:build integration

package main_test

import (
	"context"
	"fmt"
	"net"
	"testing"
	"time"

	"github.com/google/uuid"
	kafkago "github.com/segmentio/kafka-go"
	"github.com/stretchr/testify/require"
	"github.com/testcontainers/testcontainers-go"
	kafkamodule "github.com/testcontainers/testcontainers-go/modules/kafka"
	"github.com/testcontainers/testcontainers-go/wait"
	"go.uber.org/zap"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"

	"github.com/parkstack/service-parking/internal/adapter"
	"github.com/parkstack/service-parking/internal/application"
	parkingEvents "github.com/parkstack/service-parking/internal/events"
	"github.com/parkstack/service-parking/internal/kafka"
	"github.com/parkstack/service-parking/internal/receipt"
	"github.com/parkstack/service-parking/internal/repository"
	"github.com/parkstack/service-parking/internal/saga"
)

// testInfra holds shared test infrastructure.
type testInfra struct {
	DB           *gorm.DB
	KafkaBrokers []string
	Cleanup      func()
}

// parkingStack holds wired-up parking service components.
type parkingStack struct {
	Ledger          *repository.SlotInventoryLedgerImpl
	Lots            *repository.LotRepositoryImpl
	Reservations    *application.ReservationService
	Payments        *application.PaymentService
	GateConsumer    *parkingEvents.GateEventConsumer
	CleanupProducer func()
}

// setupContainers starts PostgreSQL and Kafka testcontainers and returns a connected GORM DB.
func setupContainers(t *testing.T) *testInfra {
	t.Helper()
	ctx := context.Background()

	pgReq := testcontainers.ContainerRequest{
		Image:        "postgres:16-alpine",
		ExposedPorts: []string{"5432/tcp"},
		Env: map[string]string{
			"POSTGRES_USER":     "test",
			"POSTGRES_PASSWORD": "test",
			"POSTGRES_DB":       "test_parking",
		},
		WaitingFor: wait.ForLog("database system is ready to accept connections").
			WithOccurrence(2).
			WithStartupTimeout(60 * time.Second),
	}
	pgContainer, err := testcontainers.GenericContainer(ctx, testcontainers.GenericContainerRequest{
		ContainerRequest: pgReq,
		Started:          true,
	})
	require.NoError(t, err, "failed to start PostgreSQL container")

	pgHost, err := pgContainer.Host(ctx)
	require.NoError(t, err)
	pgPort, err := pgContainer.MappedPort(ctx, "5432")
	require.NoError(t, err)

	dsn := fmt.Sprintf("host=%s port=%s user=test password=test dbname=test_parking sslmode=disable", pgHost, pgPort.Port())

	// Poll until GORM can actually connect and ping.
	var db *gorm.DB
	require.Eventually(t, func() bool {
		var err error
		db, err = gorm.Open(postgres.Open(dsn), &gorm.Config{})
		if err != nil {
			return false
		}
		sqlDB, err := db.DB()
		if err != nil {
			return false
		}
		return sqlDB.Ping() == nil
	}, 30*time.Second, 1*time.Second, "PostgreSQL not ready for connections")

	// Enable uuid-ossp extension and auto-migrate.
	require.NoError(t, db.Exec(`CREATE EXTENSION IF NOT EXISTS "uuid-ossp"`).Error)
	require.NoError(t, db.AutoMigrate(
		&repository.UserModel{},
		&repository.LotModel{},
		&repository.ReservationModel{},
		&repository.PaymentModel{},
	))

	// Start Kafka container using confluent-local (supports KRaft natively).
	kafkaContainer, err := kafkamodule.Run(ctx, "confluentinc/confluent-local:7.5.0")
	require.NoError(t, err, "failed to start Kafka container")

	kafkaBrokers, err := kafkaContainer.Brokers(ctx)
	require.NoError(t, err, "failed to get Kafka brokers")

	// Pre-create required topics.
	createTopics(t, kafkaBrokers,
		parkingEvents.TopicReservationEvents,
		parkingEvents.TopicPaymentEvents,
		parkingEvents.TopicGateEvents,
	)

	cleanup := func() {
		if err := kafkaContainer.Terminate(ctx); err != nil {
			t.Logf("failed to terminate Kafka container: %v", err)
		}
		if err := pgContainer.Terminate(ctx); err != nil {
			t.Logf("failed to terminate PostgreSQL container: %v", err)
		}
	}

	return &testInfra{
		DB:           db,
		KafkaBrokers: kafkaBrokers,
		Cleanup:      cleanup,
	}
}

// setupParkingStack wires up the full parking service stack.
func setupParkingStack(t *testing.T, db *gorm.DB, brokers []string) *parkingStack {
	t.Helper()
	logger, _ := zap.NewDevelopment()

	lotRepo := repository.NewLotRepository(db)
	reservationRepo := repository.NewReservationRepository(db)
	paymentRepo := repository.NewPaymentRepository(db)
	ledger := repository.NewSlotInventoryLedger(db, logger)

	producer := kafka.NewProducer(brokers, logger)
	gateway := adapter.NewMockGateway(logger)
	sagaSvc := saga.NewPaymentSagaService(paymentRepo, ledger, gateway, producer, logger)

	reservationSvc := application.NewReservationService(ledger, reservationRepo, producer, logger)
	paymentSvc := application.NewPaymentService(paymentRepo, reservationRepo, sagaSvc, receipt.NewGenerator(128), logger)

	groupID := fmt.Sprintf("test-parking-%s", uuid.New().String()[:8])
	gateConsumer := parkingEvents.NewGateEventConsumer(brokers, groupID, reservationSvc, logger)

	return &parkingStack{
		Ledger:          ledger,
		Lots:            lotRepo,
		Reservations:    reservationSvc,
		Payments:        paymentSvc,
		GateConsumer:    gateConsumer,
		CleanupProducer: func() { _ = producer.Close() },
	}
}

// seedLot inserts a parking lot with the given capacity and returns its ID.
func seedLot(t *testing.T, db *gorm.DB, total, available int) uuid.UUID {
	t.Helper()
	lotID := uuid.New()
	now := time.Now().UTC()
	model := repository.LotModel{
		ID:                lotID,
		Name:              fmt.Sprintf("Test Lot %s", lotID.String()[:8]),
		Location:          "1 Integration Way",
		TotalCapacity:     total,
		AvailableCapacity: available,
		CreatedAt:         now,
		UpdatedAt:         now,
	}
	require.NoError(t, db.Create(&model).Error, "failed to seed lot")
	return lotID
}

// lotAvailability reads the current available capacity straight from the table.
func lotAvailability(t *testing.T, db *gorm.DB, lotID uuid.UUID) int {
	t.Helper()
	var model repository.LotModel
	require.NoError(t, db.Where("id = ?", lotID).First(&model).Error)
	return model.AvailableCapacity
}

// reservationWindow returns a valid one-hour window starting an hour from now.
func reservationWindow() (time.Time, time.Time) {
	start := time.Now().UTC().Add(time.Hour)
	return start, start.Add(time.Hour)
}

// publishTestEvent publishes a CloudEvent to Kafka.
func publishTestEvent(t *testing.T, brokers []string, topic, source, eventType string, data interface{}) {
	t.Helper()
	logger, _ := zap.NewDevelopment()
	producer := kafka.NewProducer(brokers, logger)
	defer func() { _ = producer.Close() }()

	ce, err := kafka.NewCloudEvent(source, eventType, data)
	require.NoError(t, err, "failed to create cloud event")

	err = producer.PublishEvent(context.Background(), topic, ce)
	require.NoError(t, err, "failed to publish event")
}

// waitForReservationStatus polls the reservations table until the status matches.
func waitForReservationStatus(t *testing.T, db *gorm.DB, reservationID uuid.UUID, expectedStatus string, timeout time.Duration) repository.ReservationModel {
	t.Helper()
	var result repository.ReservationModel
	require.Eventually(t, func() bool {
		var model repository.ReservationModel
		err := db.Where("id = ?", reservationID).First(&model).Error
		if err != nil {
			return false
		}
		if model.Status == expectedStatus {
			result = model
			return true
		}
		return false
	}, timeout, 200*time.Millisecond, "reservation did not transition to %s", expectedStatus)
	return result
}

// consumeOneEvent reads from a Kafka topic until it finds an event of the expected type.
func consumeOneEvent(t *testing.T, brokers []string, topic, expectedType string, timeout time.Duration) kafka.CloudEvent {
	t.Helper()
	ctx, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()

	groupID := fmt.Sprintf("test-assert-%s", uuid.New().String()[:8])
	reader := kafkago.NewReader(kafkago.ReaderConfig{
		Brokers:     brokers,
		GroupID:     groupID,
		Topic:       topic,
		MinBytes:    1,
		MaxBytes:    10e6,
		StartOffset: kafkago.FirstOffset,
	})
	defer func() { _ = reader.Close() }()

	for {
		msg, err := reader.ReadMessage(ctx)
		if err != nil {
			if ctx.Err() != nil {
				t.Fatalf("timed out waiting for event type %q on topic %q", expectedType, topic)
			}
			continue
		}
		ce, err := kafka.ParseCloudEvent(msg.Value)
		if err != nil {
			continue
		}
		if ce.Type == expectedType {
			return ce
		}
	}
}

// createTopics pre-creates Kafka topics so producers don't fail with "Unknown Topic".
func createTopics(t *testing.T, brokers []string, topics ...string) {
	t.Helper()
	conn, err := kafkago.Dial("tcp", brokers[0])
	require.NoError(t, err, "failed to dial Kafka for topic creation")
	defer conn.Close()

	controller, err := conn.Controller()
	require.NoError(t, err, "failed to get Kafka controller")

	controllerConn, err := kafkago.Dial("tcp", net.JoinHostPort(controller.Host, fmt.Sprintf("%d", controller.Port)))
	require.NoError(t, err, "failed to connect to Kafka controller")
	defer controllerConn.Close()

	topicConfigs := make([]kafkago.TopicConfig, len(topics))
	for i, topic := range topics {
		topicConfigs[i] = kafkago.TopicConfig{
			Topic:             topic,
			NumPartitions:     1,
			ReplicationFactor: 1,
		}
	}
	err = controllerConn.CreateTopics(topicConfigs...)
	require.NoError(t, err, "failed to create Kafka topics")

	// Give Kafka a moment to propagate topic metadata.
	time.Sleep(1 * time.Second)
}
