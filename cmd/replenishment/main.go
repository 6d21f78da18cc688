package main

import (
	"context"
	"database/sql"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/gorilla/mux"
	"github.com/joho/godotenv"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/redis/go-redis/v9"
	httpSwagger "github.com/swaggo/http-swagger/v2"

	"github.com/tair/parts-replenishment/docs"
	"github.com/tair/parts-replenishment/internal/app"
	"github.com/tair/parts-replenishment/internal/inventory/delivery/events"
	inventoryHTTP "github.com/tair/parts-replenishment/internal/inventory/delivery/http"
	"github.com/tair/parts-replenishment/internal/reorder/scheduler"
	"github.com/tair/parts-replenishment/internal/schema"
	"github.com/tair/parts-replenishment/kafka"
	"github.com/tair/parts-replenishment/pkg/database"
	"github.com/tair/parts-replenishment/pkg/lock"
	"github.com/tair/parts-replenishment/pkg/logger"
	"github.com/tair/parts-replenishment/pkg/middleware"
	"github.com/tair/parts-replenishment/pkg/tracing"
)

func main() {
	// .env is optional; real environment variables win
	_ = godotenv.Load()

	// Initialize logger
	serviceName := getEnv("OTEL_SERVICE_NAME", "replenishment-service")
	isDevelopment := getEnv("ENVIRONMENT", "development") == "development"
	logger.Init(serviceName, isDevelopment)

	logLevel := getEnv("LOG_LEVEL", "info")
	logger.SetLevel(logLevel)

	logger.Logger.Info().
		Str("service", serviceName).
		Str("environment", getEnv("ENVIRONMENT", "development")).
		Str("log_level", logLevel).
		Msg("Starting replenishment service")

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// Initialize tracer
	tp, err := tracing.InitTracer(tracing.Config{
		ServiceName:    serviceName,
		JaegerEndpoint: getEnv("JAEGER_ENDPOINT", ""),
	})
	if err != nil {
		logger.Logger.Error().Err(err).Msg("Failed to initialize tracer")
	} else {
		defer func() {
			ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
			defer cancel()
			if err := tracing.Shutdown(ctx, tp); err != nil {
				logger.Logger.Error().Err(err).Msg("Failed to shutdown tracer")
			}
		}()
	}

	// Load database configuration
	dbConfig := database.Config{
		Driver:   getEnv("DB_DRIVER", database.DriverPostgres),
		Host:     getEnv("DB_HOST", "localhost"),
		Port:     getEnv("DB_PORT", "5432"),
		User:     getEnv("DB_USER", "postgres"),
		Password: getEnv("DB_PASSWORD", "postgres"),
		DBName:   getEnv("DB_NAME", "replenishmentdb"),
		SSLMode:  getEnv("DB_SSLMODE", "disable"),
		Path:     getEnv("DB_PATH", "replenishment.db"),
	}

	db, err := database.NewGormConnection(dbConfig)
	if err != nil {
		logger.Logger.Fatal().Err(err).Msg("Failed to connect to database")
	}

	sqlDB, err := db.DB()
	if err != nil {
		logger.Logger.Fatal().Err(err).Msg("Failed to get database instance")
	}
	defer sqlDB.Close()

	if err := schema.Migrate(db); err != nil {
		logger.Logger.Fatal().Err(err).Msg("Failed to run migrations")
	}
	logger.Logger.Info().Msg("Database initialized successfully")

	// Kafka publisher; without brokers events are dropped
	var publisher kafka.EventPublisher = kafka.NopPublisher{}
	brokers := splitList(getEnv("KAFKA_BROKERS", ""))
	if len(brokers) > 0 {
		kafkaPublisher, err := kafka.NewPublisher(brokers)
		if err != nil {
			logger.Logger.Fatal().Err(err).Msg("Failed to create Kafka publisher")
		}
		defer kafkaPublisher.Close()
		publisher = kafkaPublisher
	} else {
		logger.Logger.Warn().Msg("KAFKA_BROKERS not set, domain events are disabled")
	}

	// Initialize handlers with Wire DI
	application, err := app.InitializeApp(db, publisher)
	if err != nil {
		logger.Logger.Fatal().Err(err).Msg("Failed to initialize application")
	}

	if len(brokers) > 0 {
		consumer, err := kafka.NewConsumer(brokers, getEnv("KAFKA_GROUP_ID", serviceName), []string{kafka.TopicPartsConsumed})
		if err != nil {
			logger.Logger.Fatal().Err(err).Msg("Failed to create Kafka consumer")
		}
		defer consumer.Close()
		consumer.RegisterHandler(kafka.EventTypePartConsumed, events.PartConsumedHandler(application.Ledger))
		if err := consumer.Start(ctx); err != nil {
			logger.Logger.Fatal().Err(err).Msg("Failed to start Kafka consumer")
		}
	}

	// Auto reorder scheduler
	if getEnv("AUTO_REORDER_ENABLED", "false") == "true" {
		sched := startScheduler(ctx, application)
		defer sched.Stop()
	}

	// Start HTTP server
	httpPort := getEnv("HTTP_PORT", "8080")
	server := newHTTPServer(application, sqlDB, httpPort, serviceName)
	go func() {
		logger.Logger.Info().
			Str("port", httpPort).
			Str("metrics_endpoint", "/metrics").
			Str("swagger_endpoint", "/swagger/").
			Msg("HTTP server started")
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Logger.Fatal().Err(err).Msg("Failed to start HTTP server")
		}
	}()

	<-ctx.Done()
	logger.Logger.Info().Msg("Shutting down server...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		logger.Logger.Error().Err(err).Msg("HTTP server shutdown failed")
	}
}

func newHTTPServer(application *app.App, sqlDB *sql.DB, port, serviceName string) *http.Server {
	router := mux.NewRouter()

	middlewareConfig := middleware.DefaultConfig(serviceName)
	middleware.Register(router, middlewareConfig)

	application.RegisterRoutes(router)
	app.RegisterHealthCheck(router, sqlDB)
	router.Handle("/metrics", promhttp.Handler())

	docs.SwaggerInfo.Host = "localhost:" + port
	inventoryHTTP.RegisterSwaggerDocs(router, httpSwagger.Handler(httpSwagger.URL("/swagger/doc.json")))

	return &http.Server{
		Addr:              ":" + port,
		Handler:           middleware.CORS(middlewareConfig)(router),
		ReadHeaderTimeout: 10 * time.Second,
	}
}

func startScheduler(ctx context.Context, application *app.App) *scheduler.Scheduler {
	cfg := scheduler.DefaultConfig()
	cfg.Spec = getEnv("AUTO_REORDER_CRON", cfg.Spec)
	if raw := getEnv("AUTO_REORDER_INITIAL_DELAY", ""); raw != "" {
		delay, err := time.ParseDuration(raw)
		if err != nil {
			logger.Logger.Fatal().Err(err).Msg("Invalid AUTO_REORDER_INITIAL_DELAY")
		}
		cfg.InitialDelay = delay
	}

	var locker lock.Locker = lock.Noop{}
	if addr := getEnv("REDIS_ADDR", ""); addr != "" {
		client := redis.NewClient(&redis.Options{Addr: addr})
		if err := client.Ping(ctx).Err(); err != nil {
			logger.Logger.Fatal().Err(err).Str("addr", addr).Msg("Failed to connect to Redis")
		}
		locker = lock.NewRedisLocker(client, "replenishment:lock:")
	}

	sched, err := scheduler.New(application.Scanner, locker, cfg)
	if err != nil {
		logger.Logger.Fatal().Err(err).Msg("Failed to create reorder scheduler")
	}
	if err := sched.Start(ctx); err != nil {
		logger.Logger.Fatal().Err(err).Msg("Failed to start reorder scheduler")
	}
	return sched
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func splitList(raw string) []string {
	var out []string
	for _, item := range strings.Split(raw, ",") {
		if item = strings.TrimSpace(item); item != "" {
			out = append(out, item)
		}
	}
	return out
}
