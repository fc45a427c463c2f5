package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/parkstack/service-parking/internal/adapter"
	"github.com/parkstack/service-parking/internal/application"
	"github.com/parkstack/service-parking/internal/auth"
	"github.com/parkstack/service-parking/internal/config"
	"github.com/parkstack/service-parking/internal/database"
	parkingEvents "github.com/parkstack/service-parking/internal/events"
	"github.com/parkstack/service-parking/internal/handler"
	"github.com/parkstack/service-parking/internal/health"
	"github.com/parkstack/service-parking/internal/kafka"
	"github.com/parkstack/service-parking/internal/logger"
	"github.com/parkstack/service-parking/internal/middleware"
	"github.com/parkstack/service-parking/internal/receipt"
	"github.com/parkstack/service-parking/internal/repository"
	"github.com/parkstack/service-parking/internal/saga"
)

func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("failed to load configuration: %v", err)
	}

	// Initialize logger
	zapLogger, err := logger.NewNamed(cfg.AppEnv, "service-parking")
	if err != nil {
		log.Fatalf("failed to initialize logger: %v", err)
	}
	defer zapLogger.Sync()

	zapLogger.Info("starting service-parking",
		zap.String("port", cfg.Port),
	)

	// Connect to database
	db, err := database.Connect(cfg.DBConfig, zapLogger)
	if err != nil {
		zapLogger.Fatal("failed to connect to database", zap.Error(err))
	}

	// Run database migrations
	if cfg.AppEnv == "development" {
		if err := db.AutoMigrate(
			&repository.UserModel{},
			&repository.LotModel{},
			&repository.ReservationModel{},
			&repository.PaymentModel{},
		); err != nil {
			zapLogger.Fatal("failed to auto-migrate", zap.Error(err))
		}
		zapLogger.Info("database migration completed (dev auto-migrate)")
	}

	// Initialize JWT manager
	jwtManager := auth.NewJWTManager(cfg.JWTConfig.Secret, cfg.JWTConfig.TokenTTL)

	// Initialize Kafka producer
	kafkaProducer := kafka.NewProducer(cfg.KafkaConfig.Brokers, zapLogger)
	defer kafkaProducer.Close()

	// Initialize payment gateway (mock for development)
	gateway := adapter.NewMockGateway(zapLogger)

	// Initialize repositories and the slot inventory ledger
	userRepo := repository.NewUserRepository(db)
	lotRepo := repository.NewLotRepository(db)
	reservationRepo := repository.NewReservationRepository(db)
	paymentRepo := repository.NewPaymentRepository(db)
	reportRepo := repository.NewReportRepository(db)
	ledger := repository.NewSlotInventoryLedger(db, zapLogger)

	// Initialize saga service
	sagaService := saga.NewPaymentSagaService(paymentRepo, ledger, gateway, kafkaProducer, zapLogger)

	// Initialize application services
	authService := application.NewAuthService(userRepo, jwtManager, zapLogger)
	lotService := application.NewLotService(lotRepo, zapLogger)
	reservationService := application.NewReservationService(ledger, reservationRepo, kafkaProducer, zapLogger)
	paymentService := application.NewPaymentService(paymentRepo, reservationRepo, sagaService, receipt.NewGenerator(256), zapLogger)
	reportService := application.NewReportService(paymentRepo, reportRepo, zapLogger)

	// Initialize Kafka consumer for gate hardware events
	consumerGroupID := cfg.KafkaConfig.GroupPrefix + "parking-service"
	gateConsumer := parkingEvents.NewGateEventConsumer(
		cfg.KafkaConfig.Brokers,
		consumerGroupID,
		reservationService,
		zapLogger,
	)
	defer gateConsumer.Close()

	// Start Kafka consumer in a goroutine
	consumerCtx, consumerCancel := context.WithCancel(context.Background())
	defer consumerCancel()

	go func() {
		zapLogger.Info("starting gate event consumer")
		if err := gateConsumer.Start(consumerCtx); err != nil {
			if consumerCtx.Err() == nil {
				zapLogger.Error("gate event consumer failed", zap.Error(err))
			}
		}
	}()

	// Initialize HTTP handlers
	authHandler := handler.NewAuthHandler(authService)
	lotHandler := handler.NewLotHandler(lotService)
	reservationHandler := handler.NewReservationHandler(reservationService)
	paymentHandler := handler.NewPaymentHandler(paymentService)
	reportHandler := handler.NewReportHandler(reportService)

	// Setup Gin router
	gin.SetMode(gin.ReleaseMode)
	router := gin.New()

	// Apply global middleware
	router.Use(middleware.RecoveryMiddleware(zapLogger))
	router.Use(middleware.LoggerMiddleware(zapLogger))
	router.Use(middleware.CORSMiddleware())
	router.Use(middleware.RequestIDMiddleware())

	// Register health check routes
	healthHandler := health.NewHandler(db, "service-parking")
	healthHandler.RegisterRoutes(router)

	// Register API routes
	apiV1 := router.Group("/api/v1")
	authHandler.RegisterRoutes(apiV1, jwtManager)
	lotHandler.RegisterRoutes(apiV1, jwtManager)
	reservationHandler.RegisterRoutes(apiV1, jwtManager)
	paymentHandler.RegisterRoutes(apiV1, jwtManager)
	reportHandler.RegisterRoutes(apiV1, jwtManager)

	// Create HTTP server
	srv := &http.Server{
		Addr:         cfg.Port,
		Handler:      router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	// Start server in a goroutine
	go func() {
		zapLogger.Info("HTTP server starting", zap.String("addr", cfg.Port))
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			zapLogger.Fatal("HTTP server failed", zap.Error(err))
		}
	}()

	// Graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	zapLogger.Info("shutting down service-parking...")

	// Cancel Kafka consumer
	consumerCancel()

	// Shutdown HTTP server with timeout
	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		zapLogger.Error("server forced to shutdown", zap.Error(err))
	}

	zapLogger.Info("service-parking stopped")
}
