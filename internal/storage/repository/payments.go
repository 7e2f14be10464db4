package repository

import (
	"context"
	"fmt"
	"time"

	"github.com/gymflowhq/gymflow/internal/models"
)

// ReconcilePayment применяет успешный платёж к подписке участника в одной
// транзакции. Вставка в леджер идёт первой с ON CONFLICT DO NOTHING по
// уникальному payment_reference: ноль затронутых строк означает повторную
// доставку события — транзакция завершается, ничего не меняя, и метод
// возвращает applied=false. Уникальный индекс — единственный механизм
// защиты от двойного продления: конкурирующие запросы могут обслуживаться
// разными процессами, внутрипроцессные блокировки здесь не работают.
func (s *Storage) ReconcilePayment(ctx context.Context, billing *models.MemberBilling,
	reference string, amount float64, newExpiry time.Time) (bool, error) {
	const op = "storage.ReconcilePayment"
	select {
	case <-ctx.Done():
		return false, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	tx, err := s.DB.BeginTx(ctx, nil)
	if err != nil {
		return false, fmt.Errorf("%s: %w", op, err)
	}
	defer func() {
		_ = tx.Rollback()
	}()

	ledgerQuery := `INSERT INTO payments (member_id, amount, payment_reference, status)
			  VALUES ($1, $2, $3, $4)
			  ON CONFLICT (payment_reference) DO NOTHING`
	res, err := tx.ExecContext(ctx, ledgerQuery,
		billing.MemberID, amount, reference, models.PaymentStatusSuccess)
	if err != nil {
		return false, fmt.Errorf("%s: %w", op, err)
	}
	rowsAffected, err := res.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("%s: %w", op, err)
	}
	if rowsAffected == 0 {
		// Повтор события: леджер уже содержит этот reference
		if err := tx.Commit(); err != nil {
			return false, fmt.Errorf("%s: %w", op, err)
		}
		return false, nil
	}

	subQuery := `UPDATE subscriptions
			  SET expiry_date = $1, status = $2
			  WHERE id = $3`
	if _, err := tx.ExecContext(ctx, subQuery,
		newExpiry, models.SubscriptionStatusActive, billing.SubscriptionID); err != nil {
		return false, fmt.Errorf("%s: %w", op, err)
	}

	memberQuery := `UPDATE members
			  SET status = $1
			  WHERE id = $2`
	if _, err := tx.ExecContext(ctx, memberQuery,
		models.MemberStatusActive, billing.MemberID); err != nil {
		return false, fmt.Errorf("%s: %w", op, err)
	}

	if err := tx.Commit(); err != nil {
		return false, fmt.Errorf("%s: %w", op, err)
	}
	return true, nil
}

// ListSuccessfulPayments возвращает все успешные платежи леджера.
func (s *Storage) ListSuccessfulPayments(ctx context.Context) ([]*models.Payment, error) {
	const op = "storage.ListSuccessfulPayments"
	select {
	case <-ctx.Done():
		return nil, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	query := `SELECT id, member_id, amount, payment_reference, status, created_at
			  FROM payments
			  WHERE status = $1
			  ORDER BY created_at`
	rows, err := s.DB.QueryContext(ctx, query, models.PaymentStatusSuccess)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	defer func() {
		_ = rows.Close()
	}()

	var result []*models.Payment
	for rows.Next() {
		var p models.Payment
		if err := rows.Scan(&p.ID, &p.MemberID, &p.Amount, &p.Reference,
			&p.Status, &p.CreatedAt); err != nil {
			return nil, fmt.Errorf("%s: %w", op, err)
		}
		result = append(result, &p)
	}
	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return result, nil
}

// ListPaymentsByManager возвращает платежи участников менеджера,
// от новых к старым.
func (s *Storage) ListPaymentsByManager(ctx context.Context, managerID string, limit, offset int) ([]*models.Payment, error) {
	const op = "storage.ListPaymentsByManager"
	select {
	case <-ctx.Done():
		return nil, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	query := `SELECT p.id, p.member_id, p.amount, p.payment_reference, p.status, p.created_at
			  FROM payments p
			  JOIN members m ON m.id = p.member_id
			  WHERE m.manager_id = $1
			  ORDER BY p.created_at DESC
			  LIMIT $2 OFFSET $3`
	rows, err := s.DB.QueryContext(ctx, query, managerID, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	defer func() {
		_ = rows.Close()
	}()

	var result []*models.Payment
	for rows.Next() {
		var p models.Payment
		if err := rows.Scan(&p.ID, &p.MemberID, &p.Amount, &p.Reference,
			&p.Status, &p.CreatedAt); err != nil {
			return nil, fmt.Errorf("%s: %w", op, err)
		}
		result = append(result, &p)
	}
	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return result, nil
}

// SumPaymentsByManager возвращает суммарную выручку по участникам менеджера.
func (s *Storage) SumPaymentsByManager(ctx context.Context, managerID string) (float64, error) {
	const op = "storage.SumPaymentsByManager"
	select {
	case <-ctx.Done():
		return 0, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	query := `SELECT COALESCE(SUM(p.amount), 0)
			  FROM payments p
			  JOIN members m ON m.id = p.member_id
			  WHERE m.manager_id = $1 AND p.status = $2`
	var total float64
	if err := s.DB.QueryRowContext(ctx, query, managerID,
		models.PaymentStatusSuccess).Scan(&total); err != nil {
		return 0, fmt.Errorf("%s: %w", op, err)
	}
	return total, nil
}
