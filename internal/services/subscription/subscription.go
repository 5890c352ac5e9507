// Package services содержит бизнес-логику подписок: CRUD, постраничный список,
// сводку платежей за месяц и сравнение расходов.
package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/magabrotheeeer/subscription-tracker/internal/billing"
	"github.com/magabrotheeeer/subscription-tracker/internal/cache"
	"github.com/magabrotheeeer/subscription-tracker/internal/lib/sl"
	"github.com/magabrotheeeer/subscription-tracker/internal/models"
	"github.com/magabrotheeeer/subscription-tracker/internal/storage/repository"
)

// PageSize количество подписок на странице списка.
const PageSize = 10

// ErrInvalidInput данные подписки не прошли проверку.
var ErrInvalidInput = errors.New("invalid input")

// SubscriptionRepository методы хранилища, нужные сервису подписок.
type SubscriptionRepository interface {
	CreateSubscription(ctx context.Context, sub models.Subscription) (int64, error)
	GetSubscription(ctx context.Context, userID, id int64) (*models.Subscription, error)
	UpdateSubscription(ctx context.Context, sub models.Subscription) error
	DeleteSubscription(ctx context.Context, userID, id int64) error
	ListSubscriptions(ctx context.Context, q models.ListQuery) ([]*models.Subscription, error)
	CountSubscriptions(ctx context.Context, userID int64) (int, error)
	ListAllSubscriptions(ctx context.Context, userID int64) ([]*models.Subscription, error)
	SubscriptionNameExists(ctx context.Context, userID int64, name string) (bool, error)
}

// Cache описывает методы для кэширования данных.
type Cache interface {
	// Get пытается получить значение из кеша по ключу.
	Get(ctx context.Context, key string, result any) (bool, error)
	// Set сохраняет значение в кеш с временем жизни.
	Set(ctx context.Context, key string, value any, expiration time.Duration) error
	// Invalidate удаляет значение из кеша по ключу.
	Invalidate(ctx context.Context, key string) error
}

// SubscriptionService реализует бизнес-логику работы с подписками.
// Все подписки пользователя кешируются одним снимком, который сбрасывается при любом изменении.
type SubscriptionService struct {
	repo   SubscriptionRepository
	cache  Cache
	engine *billing.Engine
	log    *slog.Logger
}

// NewSubscriptionService создает новый экземпляр SubscriptionService.
func NewSubscriptionService(repo SubscriptionRepository, cache Cache, engine *billing.Engine, log *slog.Logger) *SubscriptionService {
	return &SubscriptionService{
		repo:   repo,
		cache:  cache,
		engine: engine,
		log:    log,
	}
}

func toSubscription(userID int64, req models.DummySubscription) (models.Subscription, error) {
	sub := models.Subscription{
		UserID:           userID,
		SubscriptionName: strings.TrimSpace(req.SubscriptionName),
		CategoryID:       req.CategoryID,
		Amount:           req.Amount,
		PaymentCycleID:   req.PaymentCycleID,
		PaymentDate:      req.PaymentDate,
		PaymentMethodID:  req.PaymentMethodID,
	}
	if sub.SubscriptionName == "" || sub.CategoryID <= 0 || sub.Amount <= 0 {
		return models.Subscription{}, ErrInvalidInput
	}
	if req.ContractDate != "" {
		d, err := time.Parse(time.DateOnly, req.ContractDate)
		if err != nil {
			return models.Subscription{}, fmt.Errorf("%w: contract_date: %w", ErrInvalidInput, err)
		}
		sub.ContractDate = &d
	}
	if req.Notes != "" {
		notes := req.Notes
		sub.Notes = &notes
	}
	return sub, nil
}

// Create сохраняет новую подписку пользователя и возвращает её ID.
func (s *SubscriptionService) Create(ctx context.Context, userID int64, req models.DummySubscription) (int64, error) {
	const op = "services.SubscriptionService.Create"
	sub, err := toSubscription(userID, req)
	if err != nil {
		return 0, fmt.Errorf("%s: %w", op, err)
	}

	id, err := s.repo.CreateSubscription(ctx, sub)
	if err != nil {
		return 0, fmt.Errorf("%s: %w", op, err)
	}
	s.log.Info("created new subscription", slog.Int64("id", id), sl.UserID(userID))
	s.invalidate(ctx, userID)
	return id, nil
}

// Get возвращает подписку пользователя.
func (s *SubscriptionService) Get(ctx context.Context, userID, id int64) (*models.Subscription, error) {
	const op = "services.SubscriptionService.Get"
	sub, err := s.repo.GetSubscription(ctx, userID, id)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return sub, nil
}

// Update перезаписывает подписку пользователя.
func (s *SubscriptionService) Update(ctx context.Context, userID, id int64, req models.DummySubscription) error {
	const op = "services.SubscriptionService.Update"
	sub, err := toSubscription(userID, req)
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	sub.ID = id

	if err := s.repo.UpdateSubscription(ctx, sub); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	s.log.Info("updated subscription", slog.Int64("id", id), sl.UserID(userID))
	s.invalidate(ctx, userID)
	return nil
}

// Delete удаляет подписку пользователя.
func (s *SubscriptionService) Delete(ctx context.Context, userID, id int64) error {
	const op = "services.SubscriptionService.Delete"
	if err := s.repo.DeleteSubscription(ctx, userID, id); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	s.log.Info("deleted subscription", slog.Int64("id", id), sl.UserID(userID))
	s.invalidate(ctx, userID)
	return nil
}

// List возвращает страницу page (с 1) подписок пользователя по PageSize штук.
// Страница меньше 1 считается первой, неизвестная сортировка означает newest.
func (s *SubscriptionService) List(ctx context.Context, userID int64, sort string, page int) (*models.Page, error) {
	const op = "services.SubscriptionService.List"
	if page < 1 {
		page = 1
	}
	switch sort {
	case repository.SortNewest, repository.SortOldest, repository.SortPriceDesc, repository.SortPriceAsc:
	default:
		sort = repository.SortNewest
	}

	total, err := s.repo.CountSubscriptions(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	items, err := s.repo.ListSubscriptions(ctx, models.ListQuery{
		UserID: userID,
		Sort:   sort,
		Limit:  PageSize,
		Offset: (page - 1) * PageSize,
	})
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	return &models.Page{
		Items:      items,
		Page:       page,
		TotalPages: (total + PageSize - 1) / PageSize,
		TotalCount: total,
	}, nil
}

// CheckDuplicate сообщает, есть ли у пользователя подписка с таким названием.
// Пустое название дубликатом не считается.
func (s *SubscriptionService) CheckDuplicate(ctx context.Context, userID int64, name string) (bool, error) {
	const op = "services.SubscriptionService.CheckDuplicate"
	name = strings.TrimSpace(name)
	if name == "" {
		return false, nil
	}
	exists, err := s.repo.SubscriptionNameExists(ctx, userID, name)
	if err != nil {
		return false, fmt.Errorf("%s: %w", op, err)
	}
	return exists, nil
}

// Snapshot возвращает все подписки пользователя, сначала из кеша.
// Ошибки кеша только логируются.
func (s *SubscriptionService) Snapshot(ctx context.Context, userID int64) ([]*models.Subscription, error) {
	const op = "services.SubscriptionService.Snapshot"
	key := cache.SubscriptionsKey(userID)

	var subs []*models.Subscription
	found, err := s.cache.Get(ctx, key, &subs)
	if err != nil {
		s.log.Warn("failed to read snapshot from cache", slog.String("key", key), sl.Err(err))
	}
	if found {
		return subs, nil
	}

	subs, err = s.repo.ListAllSubscriptions(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	if err := s.cache.Set(ctx, key, subs, cache.SubscriptionsTTL); err != nil {
		s.log.Warn("failed to cache snapshot", slog.String("key", key), sl.Err(err))
	}
	return subs, nil
}

func (s *SubscriptionService) invalidate(ctx context.Context, userID int64) {
	key := cache.SubscriptionsKey(userID)
	if err := s.cache.Invalidate(ctx, key); err != nil {
		s.log.Warn("failed to invalidate snapshot", slog.String("key", key), sl.Err(err))
	}
}
