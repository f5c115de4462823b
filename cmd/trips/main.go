package main

import (
	"context"
	"log"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/praswib/tumpangan/internal/pkg/config"
	"github.com/praswib/tumpangan/internal/pkg/database"
	"github.com/praswib/tumpangan/internal/pkg/health"
	"github.com/praswib/tumpangan/internal/pkg/logger"
	"github.com/praswib/tumpangan/internal/pkg/middleware"
	"github.com/praswib/tumpangan/internal/pkg/nats"
	"github.com/praswib/tumpangan/internal/pkg/server"
	"github.com/praswib/tumpangan/services/trips/gateway"
	"github.com/praswib/tumpangan/services/trips/handler"
	"github.com/praswib/tumpangan/services/trips/repository"
	"github.com/praswib/tumpangan/services/trips/usecase"
)

func main() {
	appName := "trips-service"
	configPath := "config/trips.env"
	configs := config.InitConfig(configPath)

	zapLogger, err := logger.NewZapLogger(configs.Logger)
	if err != nil {
		log.Fatalf("Failed to create Zap logger: %v", err)
	}
	defer zapLogger.Close()

	// Set global logger for application-wide access
	logger.SetGlobalLogger(zapLogger)

	logger.Info("Starting application",
		logger.String("app", appName),
		logger.String("version", configs.App.Version),
		logger.String("environment", configs.App.Environment),
	)

	// Initialize PostgreSQL database connection
	postgresClient, err := database.NewPostgresClient(configs.Database)
	if err != nil {
		zapLogger.Fatal("Failed to connect to PostgreSQL", logger.Err(err))
	}
	defer postgresClient.Close()

	// Initialize Redis client
	redisClient, err := database.NewRedisClient(configs.Redis)
	if err != nil {
		zapLogger.Fatal("Failed to connect to Redis", logger.Err(err))
	}
	defer redisClient.Close()

	// Initialize NATS client
	natsClient, err := nats.NewClient(configs.NATS.URL)
	if err != nil {
		zapLogger.Fatal("Failed to connect to NATS", logger.Err(err))
	}
	defer natsClient.Close()

	if !natsClient.IsConnected() {
		zapLogger.Fatal("NATS client not connected")
	}

	// Initialize repositories
	db := postgresClient.GetDB()
	bookingRepo := repository.NewBookingRepository(configs, db, redisClient)
	rideRepo := repository.NewRideRepository(configs, db)
	paymentRepo := repository.NewPaymentRepository(configs, db)
	ratingRepo := repository.NewRatingRepository(configs, db)
	accountRepo := repository.NewAccountRepository(configs, db)
	vehicleRepo := repository.NewVehicleRepository(configs, db)

	// Initialize gateway
	tripGW := gateway.NewTripGW(natsClient)

	// Initialize usecase
	tripUC, err := usecase.NewTripUC(configs, bookingRepo, rideRepo, paymentRepo, ratingRepo, accountRepo, vehicleRepo, tripGW, nil)
	if err != nil {
		zapLogger.Fatal("Failed to initialize trip use case", logger.Err(err))
	}

	// Initialize handlers
	tripHandler := handler.NewHandler(tripUC, configs)

	// Initialize Echo server
	e := echo.New()

	// Add middlewares (panic recovery should be first)
	e.Use(middleware.PanicRecoveryWithZapMiddleware(zapLogger))
	e.Use(middleware.RequestIDMiddleware())
	e.Use(logger.ZapEchoMiddleware(zapLogger))

	// Health endpoints with dependency checkers
	healthService := health.NewService()
	healthService.AddChecker("postgres", health.CheckerFunc(func(ctx context.Context) error {
		return db.PingContext(ctx)
	}))
	healthService.AddChecker("redis", health.CheckerFunc(func(ctx context.Context) error {
		return redisClient.GetClient().Ping(ctx).Err()
	}))
	healthService.AddChecker("nats", health.CheckerFunc(func(ctx context.Context) error {
		if !natsClient.IsConnected() {
			return nats.ErrNotConnected
		}
		return nil
	}))
	health.RegisterHealthEndpoints(e, appName, configs.App.Version, healthService)

	// Register service routes
	tripHandler.RegisterRoutes(e)

	srv := server.NewGracefulServer(e, zapLogger, configs.Server.Port, time.Duration(configs.Server.ShutdownTimeout)*time.Second)
	if err := srv.Start(); err != nil {
		zapLogger.Fatal("Server terminated", logger.Err(err))
	}
}
