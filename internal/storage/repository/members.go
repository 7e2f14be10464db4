package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/jackc/pgerrcode"
	"github.com/jackc/pgx/v5/pgconn"

	"github.com/gymflowhq/gymflow/internal/models"
)

// RegisterMember создаёт участника и его подписку в одной транзакции
// и возвращает ID нового участника. Какой из двух шагов не удался,
// различимо по обёрнутой сентинельной ошибке; полусозданный участник
// без подписки в базе остаться не может.
func (s *Storage) RegisterMember(ctx context.Context, member models.Member, sub models.Subscription) (string, error) {
	const op = "storage.RegisterMember"
	select {
	case <-ctx.Done():
		return "", fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	tx, err := s.DB.BeginTx(ctx, nil)
	if err != nil {
		return "", fmt.Errorf("%s: %w", op, err)
	}
	defer func() {
		_ = tx.Rollback()
	}()

	var memberID string
	memberQuery := `INSERT INTO members (full_name, email, phone, manager_id, status)
			  VALUES ($1, $2, $3, $4, $5)
			  RETURNING id`
	if err := tx.QueryRowContext(ctx, memberQuery,
		member.FullName, member.Email, member.Phone, member.ManagerID,
		member.Status).Scan(&memberID); err != nil {
		// Нарушение уникальности email отличаем от остальных сбоев вставки:
		// это ошибка клиента, а не хранилища
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == pgerrcode.UniqueViolation {
			return "", fmt.Errorf("%s: %w: %w", op, ErrMemberExists, err)
		}
		return "", fmt.Errorf("%s: %w: %w", op, ErrMemberCreateFailed, err)
	}

	subQuery := `INSERT INTO subscriptions (member_id, plan_id, expiry_date, status)
			  VALUES ($1, $2, $3, $4)`
	if _, err := tx.ExecContext(ctx, subQuery,
		memberID, sub.PlanID, sub.ExpiryDate, sub.Status); err != nil {
		return "", fmt.Errorf("%s: %w: %w", op, ErrSubscriptionCreateFailed, err)
	}

	if err := tx.Commit(); err != nil {
		return "", fmt.Errorf("%s: %w", op, err)
	}
	return memberID, nil
}

// GetMemberBillingByEmail возвращает данные для сверки платежа: ID участника
// по email, его текущую подписку и срок действия её плана. Текущей считается
// самая свежая строка подписки.
func (s *Storage) GetMemberBillingByEmail(ctx context.Context, email string) (*models.MemberBilling, error) {
	const op = "storage.GetMemberBillingByEmail"
	select {
	case <-ctx.Done():
		return nil, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	var memberID string
	memberQuery := `SELECT id FROM members WHERE email = $1`
	if err := s.DB.QueryRowContext(ctx, memberQuery, email).Scan(&memberID); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("%s: %w", op, ErrMemberNotFound)
		}
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	var result models.MemberBilling
	result.MemberID = memberID
	subQuery := `SELECT s.id, p.duration_days
			  FROM subscriptions s
			  JOIN plans p ON p.id = s.plan_id
			  WHERE s.member_id = $1
			  ORDER BY s.created_at DESC
			  LIMIT 1`
	if err := s.DB.QueryRowContext(ctx, subQuery, memberID).Scan(
		&result.SubscriptionID, &result.PlanDurationDays); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("%s: %w", op, ErrNoSubscription)
		}
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return &result, nil
}

// ListMemberSummaries возвращает участников менеджера с названием текущего
// плана и датой окончания абонемента, от новых к старым.
func (s *Storage) ListMemberSummaries(ctx context.Context, managerID string, limit int) ([]*models.MemberSummary, error) {
	const op = "storage.ListMemberSummaries"
	select {
	case <-ctx.Done():
		return nil, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	query := `SELECT m.id, m.full_name, m.status,
			      COALESCE(cs.plan_name, 'No Plan'), cs.expiry_date
			  FROM members m
			  LEFT JOIN LATERAL (
			      SELECT p.name AS plan_name, s.expiry_date
			      FROM subscriptions s
			      JOIN plans p ON p.id = s.plan_id
			      WHERE s.member_id = m.id
			      ORDER BY s.created_at DESC
			      LIMIT 1
			  ) cs ON true
			  WHERE m.manager_id = $1
			  ORDER BY m.created_at DESC
			  LIMIT $2`
	rows, err := s.DB.QueryContext(ctx, query, managerID, limit)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	defer func() {
		_ = rows.Close()
	}()

	var result []*models.MemberSummary
	for rows.Next() {
		var item models.MemberSummary
		var expiry sql.NullTime
		if err := rows.Scan(&item.ID, &item.FullName, &item.Status,
			&item.PlanName, &expiry); err != nil {
			return nil, fmt.Errorf("%s: %w", op, err)
		}
		if expiry.Valid {
			t := expiry.Time
			item.ExpiryDate = &t
		}
		result = append(result, &item)
	}
	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return result, nil
}

// ListMemberEmails возвращает email всех участников менеджера;
// пустой managerID — всех участников платформы.
func (s *Storage) ListMemberEmails(ctx context.Context, managerID string) ([]string, error) {
	const op = "storage.ListMemberEmails"
	select {
	case <-ctx.Done():
		return nil, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	query := `SELECT email FROM members
			  WHERE $1 = '' OR manager_id::text = $1`
	rows, err := s.DB.QueryContext(ctx, query, managerID)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	defer func() {
		_ = rows.Close()
	}()

	var result []string
	for rows.Next() {
		var email string
		if err := rows.Scan(&email); err != nil {
			return nil, fmt.Errorf("%s: %w", op, err)
		}
		result = append(result, email)
	}
	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return result, nil
}

// CountMembersByManager возвращает число участников на каждого менеджера.
func (s *Storage) CountMembersByManager(ctx context.Context) (map[string]int, error) {
	const op = "storage.CountMembersByManager"
	select {
	case <-ctx.Done():
		return nil, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	query := `SELECT manager_id, COUNT(*) FROM members GROUP BY manager_id`
	rows, err := s.DB.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	defer func() {
		_ = rows.Close()
	}()

	result := make(map[string]int)
	for rows.Next() {
		var managerID string
		var count int
		if err := rows.Scan(&managerID, &count); err != nil {
			return nil, fmt.Errorf("%s: %w", op, err)
		}
		result[managerID] = count
	}
	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return result, nil
}

// CountActiveMembers возвращает число активных участников платформы.
func (s *Storage) CountActiveMembers(ctx context.Context) (int, error) {
	const op = "storage.CountActiveMembers"
	select {
	case <-ctx.Done():
		return 0, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	query := `SELECT COUNT(*) FROM members WHERE status = $1`
	var count int
	if err := s.DB.QueryRowContext(ctx, query, models.MemberStatusActive).Scan(&count); err != nil {
		return 0, fmt.Errorf("%s: %w", op, err)
	}
	return count, nil
}
