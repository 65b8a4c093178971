package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/efkobus/antifraud-system/internal/pkg/cardhash"
	"github.com/efkobus/antifraud-system/internal/pkg/circuitbreaker"
	"github.com/efkobus/antifraud-system/internal/pkg/config"
	"github.com/efkobus/antifraud-system/internal/pkg/database"
	"github.com/efkobus/antifraud-system/internal/pkg/health"
	"github.com/efkobus/antifraud-system/internal/pkg/keylock"
	"github.com/efkobus/antifraud-system/internal/pkg/logger"
	"github.com/efkobus/antifraud-system/internal/pkg/metrics"
	"github.com/efkobus/antifraud-system/internal/pkg/middleware"
	natspkg "github.com/efkobus/antifraud-system/internal/pkg/nats"
	nsqpkg "github.com/efkobus/antifraud-system/internal/pkg/nsq"
	"github.com/efkobus/antifraud-system/internal/pkg/server"
	"github.com/efkobus/antifraud-system/services/antifraud/gateway"
	"github.com/efkobus/antifraud-system/services/antifraud/handler"
	"github.com/efkobus/antifraud-system/services/antifraud/repository"
	"github.com/efkobus/antifraud-system/services/antifraud/usecase"
	"github.com/labstack/echo/v4"
	echomw "github.com/labstack/echo/v4/middleware"
)

func main() {
	appName := "antifraud-service"
	configPath := config.GetEnv("CONFIG_PATH", "config/antifraud.env")
	configs := config.InitConfig(configPath)

	zapLogger, err := logger.InitZapLoggerFromConfig(configs)
	if err != nil {
		log.Fatalf("Failed to create Zap logger: %v", err)
	}
	defer zapLogger.Close()

	zapLogger.Info("Starting application",
		logger.String("app", appName),
		logger.String("version", configs.App.Version),
		logger.String("environment", configs.App.Environment),
	)

	if err := config.ValidateAntifraud(configs.Antifraud); err != nil {
		zapLogger.Fatal("Invalid antifraud configuration", logger.Err(err))
	}

	shutdown := server.NewShutdownManager(zapLogger)
	healthService := health.NewHealthService(zapLogger)
	appMetrics := metrics.NewMetrics("antifraud")

	// Initialize PostgreSQL database connection
	postgresClient, err := database.NewPostgresClient(configs.Database)
	if err != nil {
		zapLogger.Fatal("Failed to connect to PostgreSQL", logger.Err(err))
	}
	shutdown.Register("postgres", func(context.Context) error { return postgresClient.Close() })
	healthService.AddChecker("postgres", health.NewPostgresHealthChecker(postgresClient))

	if configs.Database.AutoMigrate {
		if err := database.Migrate(context.Background(), postgresClient.GetDB()); err != nil {
			zapLogger.Fatal("Failed to apply schema", logger.Err(err))
		}
	}

	// Per-user lock, shared through Redis when more than one instance runs
	var locker keylock.Locker = keylock.NewLocal()
	if configs.Antifraud.LockBackend == "redis" {
		redisClient, err := database.NewRedisClient(configs.Redis)
		if err != nil {
			zapLogger.Fatal("Failed to connect to Redis", logger.Err(err))
		}
		shutdown.Register("redis", func(context.Context) error { return redisClient.Close() })
		healthService.AddChecker("redis", health.NewRedisHealthChecker(redisClient))
		locker = keylock.NewRedis(redisClient.GetClient(), configs.Antifraud.LockTTL, configs.Antifraud.LockWait, zapLogger.Named("keylock"))
	}

	hasher, err := cardhash.New(configs.Antifraud.CardHashKey)
	if err != nil {
		zapLogger.Fatal("Failed to initialize card hasher", logger.Err(err))
	}

	// Decision events
	var (
		natsClient  *natspkg.Client
		nsqProducer *nsqpkg.Producer
	)
	switch configs.Events.Broker {
	case "nats":
		natsClient, err = natspkg.NewClient(configs.NATS.URL, appName, zapLogger)
		if err != nil {
			zapLogger.Fatal("Failed to connect to NATS", logger.Err(err))
		}
		shutdown.Register("nats", func(context.Context) error { natsClient.Close(); return nil })
		healthService.AddChecker("nats", health.NewNATSHealthChecker(natsClient))
	case "nsq":
		nsqProducer, err = nsqpkg.NewProducer(configs.NSQ.Address, zapLogger)
		if err != nil {
			zapLogger.Fatal("Failed to connect to NSQ", logger.Err(err))
		}
		shutdown.Register("nsq-producer", func(context.Context) error { nsqProducer.Stop(); return nil })
		healthService.AddChecker("nsq", health.NewPingHealthChecker(nsqProducer))
	}
	decisionGW, err := gateway.NewDecisionGW(configs, natsClient, nsqProducer)
	if err != nil {
		zapLogger.Fatal("Failed to initialize decision gateway", logger.Err(err))
	}

	// Circuit breaker around the store
	breaker := circuitbreaker.New(circuitbreaker.Config{
		Name:         "transaction-store",
		Enabled:      configs.CircuitBreaker.Enabled,
		MaxRequests:  configs.CircuitBreaker.MaxRequests,
		Interval:     configs.CircuitBreaker.Interval,
		Timeout:      configs.CircuitBreaker.Timeout,
		FailureRatio: configs.CircuitBreaker.FailureRatio,
		MinRequests:  configs.CircuitBreaker.MinRequests,
		IsFailure:    usecase.IsStoreFailure,
	}, zapLogger, appMetrics)

	// Initialize repository
	antifraudRepo := repository.NewAntifraudRepository(configs, postgresClient.GetDB())

	// Initialize usecase
	opts := []usecase.Option{usecase.WithBreaker(breaker), usecase.WithMetrics(appMetrics)}
	if decisionGW != nil {
		opts = append(opts, usecase.WithGateway(decisionGW))
	}
	antifraudUC := usecase.NewAntifraudUC(configs.Antifraud, antifraudRepo, locker, hasher, zapLogger, opts...)
	shutdown.Register("decision-events", func(context.Context) error { antifraudUC.Close(); return nil })

	// Initialize handlers
	h := handler.NewHandler(antifraudUC, configs, zapLogger)

	if configs.NSQ.Address != "" || len(configs.NSQ.LookupdAddresses) > 0 {
		if err := h.InitNSQConsumers(); err != nil {
			zapLogger.Fatal("Failed to initialize NSQ consumers", logger.Err(err))
		}
		// registered last so it stops first, before the store closes
		shutdown.Register("chargeback-consumer", func(context.Context) error { h.Stop(); return nil })
	} else {
		zapLogger.Warn("No NSQ address configured, chargeback feed consumer disabled")
	}

	// Initialize Echo server
	e := echo.New()
	e.HideBanner = true
	e.Server.ReadTimeout = time.Duration(configs.Server.ReadTimeout) * time.Second
	e.Server.WriteTimeout = time.Duration(configs.Server.WriteTimeout) * time.Second

	// Add middlewares
	e.Use(echomw.BodyLimit("64K"))
	e.Use(middleware.RequestID())
	e.Use(middleware.PanicRecoveryWithZapMiddleware(zapLogger))
	e.Use(logger.ZapEchoMiddleware(zapLogger))
	if configs.Metrics.Enabled {
		e.Use(appMetrics.EchoMiddleware())
		e.GET(configs.Metrics.Path, echo.WrapHandler(appMetrics.Handler()))
	}

	// Register health endpoints
	health.RegisterEnhancedHealthEndpoints(e, appName, configs.App.Version, healthService)

	// Register service routes
	h.RegisterRoutes(e)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	srv := server.NewGracefulServer(e, zapLogger, configs.Server.Host, configs.Server.Port,
		time.Duration(configs.Server.ShutdownTimeout)*time.Second, shutdown)
	if err := srv.Run(ctx); err != nil {
		zapLogger.Error("Server stopped with error", logger.String("app", appName), logger.Err(err))
	}
}
