package main

import (
	"os"
	"os/signal"
	"syscall"

	"taskhub/internal/app"
	"taskhub/internal/config"
	"taskhub/internal/database"
	"taskhub/internal/logger"
	"taskhub/internal/services"
	"taskhub/pkg/rabbitmq"

	"github.com/rs/zerolog"
)

const auditQueue = "taskhub.audit"

func main() {
	// --- Configuration ---
	cfg, err := config.Load()
	if err != nil {
		bootLog := zerolog.New(os.Stderr)
		bootLog.Fatal().Err(err).Msg("invalid configuration")
	}
	log := logger.New(cfg.LogLevel, cfg.Debug)

	// --- Database ---
	db, err := database.Open(cfg.DatabaseURL, cfg.Debug, log)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to connect to database")
	}
	if err := database.Migrate(db); err != nil {
		log.Fatal().Err(err).Msg("failed to migrate database")
	}

	// --- Lifecycle events ---
	// Without RABBITMQ_URL the API runs normally and simply publishes nothing.
	var (
		mqClient *rabbitmq.Client
		events   *services.Events
	)
	if cfg.EventsEnabled() {
		mqClient, err = rabbitmq.NewClient(rabbitmq.Config{
			URL:      cfg.RabbitMQURL,
			Exchange: cfg.EventsExchange,
			Logger:   log,
		})
		if err != nil {
			log.Fatal().Err(err).Msg("failed to initialize RabbitMQ client")
		}
		events = services.NewEvents(mqClient, log)

		if err := mqClient.ConsumeEvents(auditQueue, "#", rabbitmq.AuditLogger(log)); err != nil {
			log.Error().Err(err).Msg("failed to start audit consumer")
		}
	}

	// --- HTTP ---
	application, err := app.New(app.Deps{Config: cfg, Log: log, DB: db, Events: events})
	if err != nil {
		log.Fatal().Err(err).Msg("failed to build application")
	}

	go func() {
		log.Info().Str("addr", cfg.AppPort).Str("version", cfg.AppVersion).Msg("starting server")
		if err := application.Listen(cfg.AppPort); err != nil {
			log.Fatal().Err(err).Msg("server failed to start")
		}
	}()

	// Graceful shutdown handling
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Info().Msg("shutting down server")

	if err := application.Shutdown(); err != nil {
		log.Error().Err(err).Msg("error during Fiber shutdown")
	}
	if mqClient != nil {
		if err := mqClient.Close(); err != nil {
			log.Error().Err(err).Msg("error closing RabbitMQ client")
		}
	}
	if err := database.Close(db); err != nil {
		log.Error().Err(err).Msg("error closing database")
	}
	log.Info().Msg("server gracefully stopped")
}
