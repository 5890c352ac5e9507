// Package services содержит поиск платежей, которые приходятся на сегодня,
// и публикацию уведомлений о них в RabbitMQ.
package services

import (
	"context"
	"fmt"
	"log/slog"
	"slices"
	"time"

	"github.com/magabrotheeeer/subscription-tracker/internal/billing"
	"github.com/magabrotheeeer/subscription-tracker/internal/lib/cyclelabel"
	"github.com/magabrotheeeer/subscription-tracker/internal/lib/month"
	"github.com/magabrotheeeer/subscription-tracker/internal/lib/rabbitmq"
	"github.com/magabrotheeeer/subscription-tracker/internal/lib/sl"
	"github.com/magabrotheeeer/subscription-tracker/internal/models"
)

// SubscriptionRepository источник подписок с датой договора.
type SubscriptionRepository interface {
	ListSubscriptionsWithContract(ctx context.Context) ([]*models.OwnedSubscription, error)
}

// Publisher публикует сообщение с ключом маршрутизации.
type Publisher interface {
	Publish(routingKey string, message any) error
}

// SchedulerService ищет сегодняшние платежи и публикует уведомления о них.
type SchedulerService struct {
	repo      SubscriptionRepository
	publisher Publisher
	engine    *billing.Engine
	log       *slog.Logger
}

// NewSchedulerService создает новый экземпляр SchedulerService.
func NewSchedulerService(repo SubscriptionRepository, publisher Publisher, engine *billing.Engine, log *slog.Logger) *SchedulerService {
	return &SchedulerService{
		repo:      repo,
		publisher: publisher,
		engine:    engine,
		log:       log,
	}
}

// RunDueNotices публикует по одному DueNotice на каждую подписку, у которой среди дней
// платежа в месяце now есть сегодняшний день. Возвращает число опубликованных сообщений.
// Ошибки расчёта и публикации по отдельной подписке только логируются.
func (s *SchedulerService) RunDueNotices(ctx context.Context, now time.Time) (int, error) {
	const op = "services.SchedulerService.RunDueNotices"
	log := s.log.With(slog.String("op", op))

	subs, err := s.repo.ListSubscriptionsWithContract(ctx)
	if err != nil {
		return 0, fmt.Errorf("%s: %w", op, err)
	}
	log.Info("checking subscriptions for due payments", slog.Int("count", len(subs)))

	today := month.TruncateUTC(now)
	published := 0
	for _, owned := range subs {
		if err := ctx.Err(); err != nil {
			return published, fmt.Errorf("%s: %w", op, err)
		}

		days, err := s.engine.DueDays(cyclelabel.ToRecord(&owned.Subscription), today)
		if err != nil {
			log.Warn("skip subscription", slog.Int64("subscription_id", owned.ID), sl.Err(err))
			continue
		}
		if !slices.Contains(days, today.Day()) {
			continue
		}

		notice := models.DueNotice{
			UserID:           owned.UserID,
			Email:            owned.Email,
			SubscriptionID:   owned.ID,
			SubscriptionName: owned.SubscriptionName,
			Amount:           owned.Amount,
			DueDate:          today,
		}
		if err := s.publisher.Publish(rabbitmq.UpcomingRoutingKey, notice); err != nil {
			log.Error("failed to publish due notice",
				slog.Int64("subscription_id", owned.ID), sl.UserID(owned.UserID), sl.Err(err))
			continue
		}
		published++
	}

	log.Info("due notices published", slog.Int("published", published))
	return published, nil
}
