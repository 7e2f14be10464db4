package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/gymflowhq/gymflow/internal/models"
)

// ListPlans возвращает все тарифные планы по возрастанию цены.
func (s *Storage) ListPlans(ctx context.Context) ([]*models.Plan, error) {
	const op = "storage.ListPlans"
	select {
	case <-ctx.Done():
		return nil, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	query := `SELECT id, name, price, duration_days, discount_percentage
			  FROM plans
			  ORDER BY price ASC`
	rows, err := s.DB.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	defer func() {
		_ = rows.Close()
	}()

	var result []*models.Plan
	for rows.Next() {
		var p models.Plan
		if err := rows.Scan(&p.ID, &p.Name, &p.Price, &p.DurationDays,
			&p.DiscountPercentage); err != nil {
			return nil, fmt.Errorf("%s: %w", op, err)
		}
		result = append(result, &p)
	}
	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return result, nil
}

// GetPlan возвращает тарифный план по его ID.
func (s *Storage) GetPlan(ctx context.Context, id string) (*models.Plan, error) {
	const op = "storage.GetPlan"
	select {
	case <-ctx.Done():
		return nil, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	query := `SELECT id, name, price, duration_days, discount_percentage
			  FROM plans
			  WHERE id = $1`
	var p models.Plan
	row := s.DB.QueryRowContext(ctx, query, id)
	if err := row.Scan(&p.ID, &p.Name, &p.Price, &p.DurationDays,
		&p.DiscountPercentage); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("%s: %w", op, ErrPlanNotFound)
		}
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return &p, nil
}
