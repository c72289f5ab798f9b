package worker

import (
	"context"
	"errors"
	"os"
	"os/signal"
	"syscall"
	"time"

	"spacebook/config"
	"spacebook/infras/otel"
	"spacebook/infras/postgres"
	"spacebook/internal/domains/notification/service"
	"spacebook/shared/event"

	"github.com/rs/zerolog/log"
)

const defaultCleanupPeriod = 10 * time.Second

// Worker consumes booking events and hands them to the notification service.
type Worker struct {
	Config *config.Config

	consumer     event.Consumer
	notification service.Notification
	db           *postgres.Connection
	otel         otel.Otel
}

func New(cfg *config.Config, consumer event.Consumer, notification service.Notification, db *postgres.Connection, ot otel.Otel) *Worker {
	return &Worker{
		Config:       cfg,
		consumer:     consumer,
		notification: notification,
		db:           db,
		otel:         ot,
	}
}

// Run blocks until SIGINT/SIGTERM or until the consumer gives up.
func (w *Worker) Run() error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	log.Info().Str("topic", w.Config.Events.Topic).Str("driver", w.Config.Events.Driver).Msg("Starting event worker.")

	err := w.consumer.Consume(ctx, w.notification.Handle)
	if errors.Is(err, context.Canceled) {
		err = nil
	}

	w.cleanup()

	return err //nolint:wrapcheck
}

func (w *Worker) cleanup() {
	period := time.Duration(w.Config.Server.Shutdown.CleanupPeriodSeconds) * time.Second
	if period <= 0 {
		period = defaultCleanupPeriod
	}

	ctx, cancel := context.WithTimeout(context.Background(), period)
	defer cancel()

	if err := w.consumer.Close(); err != nil {
		log.Error().Err(err).Msg("Failed to close event consumer")
	}

	if w.db != nil {
		w.db.Close()
	}

	if err := w.otel.Shutdown(ctx); err != nil {
		log.Error().Err(err).Msg("Failed to flush traces")
	}

	log.Info().Msg("Event worker stopped.")
}
