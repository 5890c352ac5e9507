package repository

import (
	"context"
	"fmt"

	"github.com/magabrotheeeer/subscription-tracker/internal/models"
)

// ListPaymentCycles возвращает справочник периодов оплаты.
func (s *Storage) ListPaymentCycles(ctx context.Context) ([]*models.PaymentCycle, error) {
	const op = "repository.ListPaymentCycles"
	if err := checkCtx(ctx, op); err != nil {
		return nil, err
	}

	rows, err := s.DB.QueryContext(ctx, `SELECT id, payment_cycle_name FROM payment_cycles ORDER BY id`)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	defer func() {
		_ = rows.Close()
	}()

	result := make([]*models.PaymentCycle, 0)
	for rows.Next() {
		var pc models.PaymentCycle
		if err := rows.Scan(&pc.ID, &pc.PaymentCycleName); err != nil {
			return nil, fmt.Errorf("%s: %w", op, err)
		}
		result = append(result, &pc)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return result, nil
}

// ListPaymentMethods возвращает справочник способов оплаты.
func (s *Storage) ListPaymentMethods(ctx context.Context) ([]*models.PaymentMethod, error) {
	const op = "repository.ListPaymentMethods"
	if err := checkCtx(ctx, op); err != nil {
		return nil, err
	}

	rows, err := s.DB.QueryContext(ctx, `SELECT id, payment_method_name FROM payment_methods ORDER BY id`)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	defer func() {
		_ = rows.Close()
	}()

	result := make([]*models.PaymentMethod, 0)
	for rows.Next() {
		var pm models.PaymentMethod
		if err := rows.Scan(&pm.ID, &pm.PaymentMethodName); err != nil {
			return nil, fmt.Errorf("%s: %w", op, err)
		}
		result = append(result, &pm)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return result, nil
}
