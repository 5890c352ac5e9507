// Package services содержит управление категориями пользователя и справочники формы подписки.
package services

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/magabrotheeeer/subscription-tracker/internal/cache"
	"github.com/magabrotheeeer/subscription-tracker/internal/lib/sl"
	"github.com/magabrotheeeer/subscription-tracker/internal/models"
)

// CategoryRepository методы хранилища для категорий и справочников.
type CategoryRepository interface {
	ListCategories(ctx context.Context, userID int64) ([]*models.Category, error)
	CreateCategories(ctx context.Context, userID int64, names []string) error
	SaveCategories(ctx context.Context, userID int64, changes []models.CategoryChange) error
	ListPaymentCycles(ctx context.Context) ([]*models.PaymentCycle, error)
	ListPaymentMethods(ctx context.Context) ([]*models.PaymentMethod, error)
}

// Invalidator сбрасывает закешированный снимок подписок.
type Invalidator interface {
	Invalidate(ctx context.Context, key string) error
}

// CategoryService управляет категориями пользователя.
type CategoryService struct {
	repo  CategoryRepository
	cache Invalidator
	log   *slog.Logger
}

// NewCategoryService создает новый экземпляр CategoryService.
func NewCategoryService(repo CategoryRepository, cache Invalidator, log *slog.Logger) *CategoryService {
	return &CategoryService{repo: repo, cache: cache, log: log}
}

// List возвращает неудалённые категории пользователя.
func (s *CategoryService) List(ctx context.Context, userID int64) ([]*models.Category, error) {
	const op = "services.CategoryService.List"
	cats, err := s.repo.ListCategories(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return cats, nil
}

// Save применяет пакет изменений и возвращает актуальный список категорий.
// Снимок подписок сбрасывается, потому что в нём хранятся названия категорий.
func (s *CategoryService) Save(ctx context.Context, userID int64, changes []models.CategoryChange) ([]*models.Category, error) {
	const op = "services.CategoryService.Save"
	if err := s.repo.SaveCategories(ctx, userID, changes); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	s.log.Info("categories saved", sl.UserID(userID), slog.Int("changes", len(changes)))

	key := cache.SubscriptionsKey(userID)
	if err := s.cache.Invalidate(ctx, key); err != nil {
		s.log.Warn("failed to invalidate snapshot", slog.String("key", key), sl.Err(err))
	}
	return s.List(ctx, userID)
}

// Master возвращает категории, периоды и способы оплаты для формы подписки.
// Пользователю без категорий сначала создаются категории по умолчанию.
func (s *CategoryService) Master(ctx context.Context, userID int64) (*models.Master, error) {
	const op = "services.CategoryService.Master"
	cats, err := s.repo.ListCategories(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	if len(cats) == 0 {
		if err := s.repo.CreateCategories(ctx, userID, models.DefaultCategoryNames); err != nil {
			return nil, fmt.Errorf("%s: %w", op, err)
		}
		s.log.Info("default categories created", sl.UserID(userID))
		if cats, err = s.repo.ListCategories(ctx, userID); err != nil {
			return nil, fmt.Errorf("%s: %w", op, err)
		}
	}

	cycles, err := s.repo.ListPaymentCycles(ctx)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	methods, err := s.repo.ListPaymentMethods(ctx)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return &models.Master{
		Categories:     cats,
		PaymentCycles:  cycles,
		PaymentMethods: methods,
	}, nil
}
