package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/magabrotheeeer/subscription-tracker/internal/models"
)

// Поддерживаемые порядки сортировки списка подписок.
const (
	SortNewest    = "newest"
	SortOldest    = "oldest"
	SortPriceDesc = "price_desc"
	SortPriceAsc  = "price_asc"
)

var orderBy = map[string]string{
	SortNewest:    "s.created_at DESC, s.id DESC",
	SortOldest:    "s.created_at ASC, s.id ASC",
	SortPriceDesc: "s.amount DESC, s.id DESC",
	SortPriceAsc:  "s.amount ASC, s.id ASC",
}

const (
	subscriptionColumns = `s.id, s.user_id, s.subscription_name, s.category_id, c.category_name,
			      s.amount, s.contract_date, s.payment_cycle_id, pc.payment_cycle_name,
			      s.payment_date, s.payment_method_id, pm.payment_method_name, s.notes,
			      s.created_at, s.updated_at`
	subscriptionJoins = `
			  LEFT JOIN categories c ON c.id = s.category_id
			  LEFT JOIN payment_cycles pc ON pc.id = s.payment_cycle_id
			  LEFT JOIN payment_methods pm ON pm.id = s.payment_method_id`
	selectSubscription = `SELECT ` + subscriptionColumns + `
			  FROM subscriptions s` + subscriptionJoins
	// $1 владелец, $3 категория.
	categoryOwned = `EXISTS (SELECT 1 FROM categories
			  WHERE id = $3 AND user_id = $1 AND deleted_at IS NULL)`
)

type rowScanner interface {
	Scan(dest ...any) error
}

func scanSubscription(row rowScanner, extra ...any) (*models.Subscription, error) {
	var (
		sub          models.Subscription
		categoryName sql.NullString
		contractDate sql.NullTime
		cycleID      sql.NullInt64
		cycleName    sql.NullString
		paymentDate  sql.NullInt32
		methodID     sql.NullInt64
		methodName   sql.NullString
		notes        sql.NullString
	)
	dest := []any{
		&sub.ID, &sub.UserID, &sub.SubscriptionName, &sub.CategoryID, &categoryName,
		&sub.Amount, &contractDate, &cycleID, &cycleName,
		&paymentDate, &methodID, &methodName, &notes,
		&sub.CreatedAt, &sub.UpdatedAt,
	}
	if err := row.Scan(append(dest, extra...)...); err != nil {
		return nil, err
	}

	if categoryName.Valid {
		sub.CategoryName = &categoryName.String
	}
	if contractDate.Valid {
		sub.ContractDate = &contractDate.Time
	}
	if cycleID.Valid {
		sub.PaymentCycleID = &cycleID.Int64
	}
	if cycleName.Valid {
		sub.PaymentCycleName = &cycleName.String
	}
	if paymentDate.Valid {
		d := int(paymentDate.Int32)
		sub.PaymentDate = &d
	}
	if methodID.Valid {
		sub.PaymentMethodID = &methodID.Int64
	}
	if methodName.Valid {
		sub.PaymentMethodName = &methodName.String
	}
	if notes.Valid {
		sub.Notes = &notes.String
	}
	return &sub, nil
}

// CreateSubscription сохраняет подписку и возвращает её ID.
func (s *Storage) CreateSubscription(ctx context.Context, sub models.Subscription) (int64, error) {
	const op = "repository.CreateSubscription"
	if err := checkCtx(ctx, op); err != nil {
		return 0, err
	}

	query := `INSERT INTO subscriptions (user_id, subscription_name, category_id, amount, contract_date,
			      payment_cycle_id, payment_date, payment_method_id, notes)
			  SELECT $1::bigint, $2::text, $3::bigint, $4::integer, $5::date,
			         $6::bigint, $7::smallint, $8::bigint, $9::text
			  WHERE ` + categoryOwned + `
			  RETURNING id`
	var id int64
	err := s.DB.QueryRowContext(ctx, query,
		sub.UserID, sub.SubscriptionName, sub.CategoryID, sub.Amount, sub.ContractDate,
		sub.PaymentCycleID, sub.PaymentDate, sub.PaymentMethodID, sub.Notes).Scan(&id)
	if errors.Is(err, sql.ErrNoRows) || isForeignKeyViolation(err) {
		return 0, fmt.Errorf("%s: %w", op, ErrInvalidReference)
	}
	if err != nil {
		return 0, fmt.Errorf("%s: %w", op, err)
	}
	return id, nil
}

// GetSubscription возвращает подписку пользователя по ID.
func (s *Storage) GetSubscription(ctx context.Context, userID, id int64) (*models.Subscription, error) {
	const op = "repository.GetSubscription"
	if err := checkCtx(ctx, op); err != nil {
		return nil, err
	}

	query := selectSubscription + ` WHERE s.id = $1 AND s.user_id = $2`
	sub, err := scanSubscription(s.DB.QueryRowContext(ctx, query, id, userID))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("%s: %w", op, ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return sub, nil
}

// UpdateSubscription перезаписывает поля подписки sub.ID, если она принадлежит sub.UserID.
func (s *Storage) UpdateSubscription(ctx context.Context, sub models.Subscription) error {
	const op = "repository.UpdateSubscription"
	if err := checkCtx(ctx, op); err != nil {
		return err
	}

	query := `UPDATE subscriptions
			  SET subscription_name = $2, category_id = $3, amount = $4, contract_date = $5,
			      payment_cycle_id = $6, payment_date = $7, payment_method_id = $8, notes = $9,
			      updated_at = NOW()
			  WHERE id = $10 AND user_id = $1 AND ` + categoryOwned
	res, err := s.DB.ExecContext(ctx, query,
		sub.UserID, sub.SubscriptionName, sub.CategoryID, sub.Amount, sub.ContractDate,
		sub.PaymentCycleID, sub.PaymentDate, sub.PaymentMethodID, sub.Notes,
		sub.ID)
	if isForeignKeyViolation(err) {
		return fmt.Errorf("%s: %w", op, ErrInvalidReference)
	}
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	if n > 0 {
		return nil
	}

	// Ничего не обновилось: либо подписки нет, либо категория чужая.
	var exists bool
	err = s.DB.QueryRowContext(ctx,
		`SELECT EXISTS (SELECT 1 FROM subscriptions WHERE id = $1 AND user_id = $2)`,
		sub.ID, sub.UserID).Scan(&exists)
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	if !exists {
		return fmt.Errorf("%s: %w", op, ErrNotFound)
	}
	return fmt.Errorf("%s: %w", op, ErrInvalidReference)
}

// DeleteSubscription удаляет подписку пользователя.
func (s *Storage) DeleteSubscription(ctx context.Context, userID, id int64) error {
	const op = "repository.DeleteSubscription"
	if err := checkCtx(ctx, op); err != nil {
		return err
	}

	res, err := s.DB.ExecContext(ctx, `DELETE FROM subscriptions WHERE id = $1 AND user_id = $2`, id, userID)
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	return expectAffected(res, op)
}

// ListSubscriptions возвращает страницу подписок пользователя в порядке q.Sort.
// Неизвестный порядок сортировки означает newest.
func (s *Storage) ListSubscriptions(ctx context.Context, q models.ListQuery) ([]*models.Subscription, error) {
	const op = "repository.ListSubscriptions"
	if err := checkCtx(ctx, op); err != nil {
		return nil, err
	}

	order, ok := orderBy[q.Sort]
	if !ok {
		order = orderBy[SortNewest]
	}
	query := selectSubscription + ` WHERE s.user_id = $1 ORDER BY ` + order + ` LIMIT $2 OFFSET $3`
	rows, err := s.DB.QueryContext(ctx, query, q.UserID, q.Limit, q.Offset)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	defer func() {
		_ = rows.Close()
	}()

	result := make([]*models.Subscription, 0)
	for rows.Next() {
		sub, err := scanSubscription(rows)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", op, err)
		}
		result = append(result, sub)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return result, nil
}

// CountSubscriptions возвращает количество подписок пользователя.
func (s *Storage) CountSubscriptions(ctx context.Context, userID int64) (int, error) {
	const op = "repository.CountSubscriptions"
	if err := checkCtx(ctx, op); err != nil {
		return 0, err
	}

	var count int
	if err := s.DB.QueryRowContext(ctx, `SELECT COUNT(*) FROM subscriptions WHERE user_id = $1`, userID).
		Scan(&count); err != nil {
		return 0, fmt.Errorf("%s: %w", op, err)
	}
	return count, nil
}

// ListAllSubscriptions возвращает все подписки пользователя в порядке создания.
func (s *Storage) ListAllSubscriptions(ctx context.Context, userID int64) ([]*models.Subscription, error) {
	const op = "repository.ListAllSubscriptions"
	if err := checkCtx(ctx, op); err != nil {
		return nil, err
	}

	rows, err := s.DB.QueryContext(ctx, selectSubscription+` WHERE s.user_id = $1 ORDER BY s.id`, userID)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	defer func() {
		_ = rows.Close()
	}()

	result := make([]*models.Subscription, 0)
	for rows.Next() {
		sub, err := scanSubscription(rows)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", op, err)
		}
		result = append(result, sub)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return result, nil
}

// ListSubscriptionsWithContract возвращает подписки всех пользователей с датой договора
// вместе с почтой владельца.
func (s *Storage) ListSubscriptionsWithContract(ctx context.Context) ([]*models.OwnedSubscription, error) {
	const op = "repository.ListSubscriptionsWithContract"
	if err := checkCtx(ctx, op); err != nil {
		return nil, err
	}

	query := `SELECT ` + subscriptionColumns + `, u.email
			  FROM subscriptions s
			  JOIN users u ON u.id = s.user_id` + subscriptionJoins + `
			  WHERE s.contract_date IS NOT NULL
			  ORDER BY s.id`
	rows, err := s.DB.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	defer func() {
		_ = rows.Close()
	}()

	result := make([]*models.OwnedSubscription, 0)
	for rows.Next() {
		var email string
		sub, err := scanSubscription(rows, &email)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", op, err)
		}
		result = append(result, &models.OwnedSubscription{Subscription: *sub, Email: email})
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return result, nil
}

// SubscriptionNameExists проверяет, есть ли у пользователя подписка с таким названием.
func (s *Storage) SubscriptionNameExists(ctx context.Context, userID int64, name string) (bool, error) {
	const op = "repository.SubscriptionNameExists"
	if err := checkCtx(ctx, op); err != nil {
		return false, err
	}

	var exists bool
	err := s.DB.QueryRowContext(ctx,
		`SELECT EXISTS (SELECT 1 FROM subscriptions WHERE user_id = $1 AND subscription_name = $2)`,
		userID, name).Scan(&exists)
	if err != nil {
		return false, fmt.Errorf("%s: %w", op, err)
	}
	return exists, nil
}
