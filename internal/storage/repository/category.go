package repository

import (
	"context"
	"database/sql"
	"fmt"
	"strings"

	"github.com/magabrotheeeer/subscription-tracker/internal/models"
)

// ListCategories возвращает неудалённые категории пользователя в порядке создания.
func (s *Storage) ListCategories(ctx context.Context, userID int64) ([]*models.Category, error) {
	const op = "repository.ListCategories"
	if err := checkCtx(ctx, op); err != nil {
		return nil, err
	}

	query := `SELECT id, category_name, user_id
			  FROM categories
			  WHERE user_id = $1 AND deleted_at IS NULL
			  ORDER BY id`
	rows, err := s.DB.QueryContext(ctx, query, userID)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	defer func() {
		_ = rows.Close()
	}()

	result := make([]*models.Category, 0)
	for rows.Next() {
		var c models.Category
		if err := rows.Scan(&c.ID, &c.CategoryName, &c.UserID); err != nil {
			return nil, fmt.Errorf("%s: %w", op, err)
		}
		result = append(result, &c)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return result, nil
}

// CreateCategories создаёт категории с именами names одной транзакцией.
func (s *Storage) CreateCategories(ctx context.Context, userID int64, names []string) error {
	const op = "repository.CreateCategories"
	if err := checkCtx(ctx, op); err != nil {
		return err
	}

	changes := make([]models.CategoryChange, 0, len(names))
	for _, name := range names {
		changes = append(changes, models.CategoryChange{CategoryName: name})
	}
	if err := s.SaveCategories(ctx, userID, changes); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	return nil
}

// SaveCategories применяет пакет изменений категорий одной транзакцией.
// Изменение с ID и Deleted помечает категорию удалённой, без ID создаёт новую
// (пустые имена пропускаются), остальные переименовывают и восстанавливают категорию.
// Чужие категории не затрагиваются.
func (s *Storage) SaveCategories(ctx context.Context, userID int64, changes []models.CategoryChange) (err error) {
	const op = "repository.SaveCategories"
	if err := checkCtx(ctx, op); err != nil {
		return err
	}

	tx, err := s.DB.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	defer func() {
		if err != nil {
			_ = tx.Rollback()
		}
	}()

	for _, c := range changes {
		if err = applyCategoryChange(ctx, tx, userID, c); err != nil {
			return fmt.Errorf("%s: %w", op, err)
		}
	}
	if err = tx.Commit(); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	return nil
}

func applyCategoryChange(ctx context.Context, tx *sql.Tx, userID int64, c models.CategoryChange) error {
	switch {
	case c.ID != 0 && c.Deleted:
		_, err := tx.ExecContext(ctx,
			`UPDATE categories SET deleted_at = NOW() WHERE id = $1 AND user_id = $2`,
			c.ID, userID)
		return err
	case c.ID == 0:
		name := strings.TrimSpace(c.CategoryName)
		if name == "" || c.Deleted {
			return nil
		}
		_, err := tx.ExecContext(ctx,
			`INSERT INTO categories (category_name, user_id) VALUES ($1, $2)`,
			name, userID)
		return err
	default:
		_, err := tx.ExecContext(ctx,
			`UPDATE categories SET category_name = $1, deleted_at = NULL WHERE id = $2 AND user_id = $3`,
			c.CategoryName, c.ID, userID)
		return err
	}
}
