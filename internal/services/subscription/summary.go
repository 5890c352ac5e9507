package services

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/magabrotheeeer/subscription-tracker/internal/billing"
	"github.com/magabrotheeeer/subscription-tracker/internal/lib/cyclelabel"
	"github.com/magabrotheeeer/subscription-tracker/internal/lib/sl"
	"github.com/magabrotheeeer/subscription-tracker/internal/models"
)

// UnknownCategory подпись для подписок без известной категории.
const UnknownCategory = "不明"

type amountBucket struct {
	name string
	max  int // включительно, 0 для последней корзины
}

var amountBuckets = []amountBucket{
	{name: "～999円", max: 999},
	{name: "～1,999円", max: 1999},
	{name: "～2,999円", max: 2999},
	{name: "～3,999円", max: 3999},
	{name: "～4,999円", max: 4999},
	{name: "5,000円～"},
}

// Summary строит сводку платежей пользователя за месяц, в который попадает ref.
func (s *SubscriptionService) Summary(ctx context.Context, userID int64, ref time.Time) (*models.MonthSummary, error) {
	const op = "services.SubscriptionService.Summary"
	subs, err := s.Snapshot(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	summary := s.engine.Summarize(cyclelabel.ToRecords(subs), ref)
	if len(summary.Failed) > 0 {
		s.log.Warn("some subscriptions have no schedule",
			sl.UserID(userID), slog.Any("ids", summary.Failed))
	}

	byID := make(map[int64]*models.Subscription, len(subs))
	for _, sub := range subs {
		byID[sub.ID] = sub
	}
	due := make([]*models.DueSubscription, 0, len(summary.Due))
	for _, d := range summary.Due {
		due = append(due, &models.DueSubscription{
			Subscription: byID[d.Record.ID],
			DueDays:      d.Days,
		})
	}

	return &models.MonthSummary{
		Month:          ref.UTC().Format("2006-01"),
		ThisMonthTotal: summary.Total,
		MonthlyAverage: summary.Average,
		DueThisMonth:   due,
		FailedIDs:      summary.Failed,
	}, nil
}

// Comparison группирует подписки пользователя по сумме и по категории.
func (s *SubscriptionService) Comparison(ctx context.Context, userID int64) (*models.Comparison, error) {
	const op = "services.SubscriptionService.Comparison"
	subs, err := s.Snapshot(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	return &models.Comparison{
		AmountData:     amountData(subs),
		CategoryData:   categoryData(subs),
		MonthlyAverage: billing.MonthlyAverage(cyclelabel.ToRecords(subs)),
	}, nil
}

func amountData(subs []*models.Subscription) []models.ChartItem {
	items := make([]models.ChartItem, len(amountBuckets))
	for i, b := range amountBuckets {
		items[i].Name = b.name
	}
	for _, sub := range subs {
		items[bucketOf(sub.Amount)].Value++
	}
	return items
}

func bucketOf(amount int) int {
	for i, b := range amountBuckets {
		if b.max == 0 || amount <= b.max {
			return i
		}
	}
	return len(amountBuckets) - 1
}

// categoryData считает подписки по названию категории в порядке первого появления.
func categoryData(subs []*models.Subscription) []models.ChartItem {
	items := make([]models.ChartItem, 0)
	index := make(map[string]int)
	for _, sub := range subs {
		name := UnknownCategory
		if sub.CategoryName != nil && *sub.CategoryName != "" {
			name = *sub.CategoryName
		}
		i, ok := index[name]
		if !ok {
			i = len(items)
			index[name] = i
			items = append(items, models.ChartItem{Name: name})
		}
		items[i].Value++
	}
	return items
}
