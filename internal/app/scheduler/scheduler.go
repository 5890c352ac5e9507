// Package scheduler запускает по расписанию рассылку уведомлений о платежах.
package scheduler

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/robfig/cron/v3"
	"github.com/streadway/amqp"

	"github.com/magabrotheeeer/subscription-tracker/internal/billing"
	"github.com/magabrotheeeer/subscription-tracker/internal/config"
	"github.com/magabrotheeeer/subscription-tracker/internal/lib/rabbitmq"
	"github.com/magabrotheeeer/subscription-tracker/internal/lib/sl"
	schedulerservice "github.com/magabrotheeeer/subscription-tracker/internal/services/scheduler"
	"github.com/magabrotheeeer/subscription-tracker/internal/storage/repository"
)

const (
	dbReadyRetries = 10
	dbReadyDelay   = 3 * time.Second
	jobTimeout     = 5 * time.Minute
)

// NoticeRunner выполняет один проход рассылки.
type NoticeRunner interface {
	RunDueNotices(ctx context.Context, now time.Time) (int, error)
}

// App представляет приложение планировщика.
type App struct {
	cron     *cron.Cron
	schedule string
	runner   NoticeRunner
	db       *repository.Storage
	conn     *amqp.Connection
	ch       *amqp.Channel
	logger   *slog.Logger
}

func waitForDB(ctx context.Context, db *repository.Storage) error {
	for range dbReadyRetries {
		if err := repository.CheckDatabaseReady(ctx, db); err == nil {
			return nil
		}
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-time.After(dbReadyDelay):
		}
	}
	return fmt.Errorf("database not ready after retries")
}

// NewCron создаёт cron, который логирует через slog и переживает панику задачи.
func NewCron(logger *slog.Logger) *cron.Cron {
	cronLogger := cron.PrintfLogger(slog.NewLogLogger(logger.Handler(), slog.LevelInfo))
	return cron.New(cron.WithChain(cron.Recover(cronLogger)))
}

// DueNoticeJob возвращает задачу cron: один проход рассылки с текущим временем now().
func DueNoticeJob(ctx context.Context, runner NoticeRunner, logger *slog.Logger, now func() time.Time) func() {
	return func() {
		jobCtx, cancel := context.WithTimeout(ctx, jobTimeout)
		defer cancel()

		published, err := runner.RunDueNotices(jobCtx, now())
		if err != nil {
			logger.Error("due notice run failed", sl.Err(err))
			return
		}
		logger.Info("due notice run finished", slog.Int("published", published))
	}
}

// New подключает RabbitMQ и базу и собирает планировщик.
func New(ctx context.Context, cfg *config.Config, logger *slog.Logger) (*App, error) {
	const op = "scheduler.New"

	engine, err := billing.NewFromConfig(cfg.Billing, logger)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	conn, err := rabbitmq.Connect(ctx, cfg.RabbitMQ.URL, cfg.RabbitMQ.MaxRetries, cfg.RabbitMQ.RetryDelay)
	if err != nil {
		return nil, fmt.Errorf("%s: failed to connect RabbitMQ: %w", op, err)
	}

	ch, err := rabbitmq.SetupChannel(conn, rabbitmq.NotificationQueues())
	if err != nil {
		closeResources(nil, conn, logger)
		return nil, fmt.Errorf("%s: failed to setup RabbitMQ channel: %w", op, err)
	}

	db, err := repository.New(ctx, cfg.StorageConnectionString)
	if err != nil {
		closeResources(ch, conn, logger)
		return nil, fmt.Errorf("%s: failed to connect storage: %w", op, err)
	}

	if err := waitForDB(ctx, db); err != nil {
		_ = db.Close()
		closeResources(ch, conn, logger)
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	publisher := rabbitmq.NewPublisher(ch, rabbitmq.NotificationsExchange)

	return &App{
		cron:     NewCron(logger),
		schedule: cfg.Scheduler.DueNoticeSchedule,
		runner:   schedulerservice.NewSchedulerService(db, publisher, engine, logger),
		db:       db,
		conn:     conn,
		ch:       ch,
		logger:   logger,
	}, nil
}

func closeResources(ch *amqp.Channel, conn *amqp.Connection, logger *slog.Logger) {
	if ch != nil {
		if err := ch.Close(); err != nil {
			logger.Error("failed to close channel", sl.Err(err))
		}
	}
	if conn != nil {
		if err := conn.Close(); err != nil {
			logger.Error("failed to close connection", sl.Err(err))
		}
	}
}

// Run запускает cron и ждёт отмены ctx.
func (a *App) Run(ctx context.Context) error {
	if _, err := a.cron.AddFunc(a.schedule, DueNoticeJob(ctx, a.runner, a.logger, time.Now)); err != nil {
		return fmt.Errorf("scheduler.Run: invalid schedule %q: %w", a.schedule, err)
	}
	a.logger.Info("scheduled due notice job", slog.String("schedule", a.schedule))
	a.cron.Start()

	<-ctx.Done()

	a.logger.Info("shutting down scheduler service")
	// ждём завершения уже запущенной задачи
	<-a.cron.Stop().Done()

	closeResources(a.ch, a.conn, a.logger)
	if err := a.db.Close(); err != nil {
		a.logger.Error("failed to close storage", sl.Err(err))
	}
	return nil
}
