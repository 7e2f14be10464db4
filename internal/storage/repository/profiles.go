package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/gymflowhq/gymflow/internal/models"
)

// GetProfile возвращает профиль по ID пользователя identity-провайдера.
func (s *Storage) GetProfile(ctx context.Context, id string) (*models.Profile, error) {
	const op = "storage.GetProfile"
	select {
	case <-ctx.Done():
		return nil, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	query := `SELECT id, email, role, COALESCE(gym_name, '')
			  FROM profiles
			  WHERE id = $1`
	var p models.Profile
	row := s.DB.QueryRowContext(ctx, query, id)
	if err := row.Scan(&p.ID, &p.Email, &p.Role, &p.GymName); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("%s: %w", op, ErrProfileNotFound)
		}
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return &p, nil
}

// GetProfileByEmail возвращает профиль по email пользователя.
func (s *Storage) GetProfileByEmail(ctx context.Context, email string) (*models.Profile, error) {
	const op = "storage.GetProfileByEmail"
	select {
	case <-ctx.Done():
		return nil, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	query := `SELECT id, email, role, COALESCE(gym_name, '')
			  FROM profiles
			  WHERE email = $1`
	var p models.Profile
	row := s.DB.QueryRowContext(ctx, query, email)
	if err := row.Scan(&p.ID, &p.Email, &p.Role, &p.GymName); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("%s: %w", op, ErrProfileNotFound)
		}
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return &p, nil
}

// UpsertProfile создаёт профиль или обновляет существующий по тому же ID.
// Идемпотентность нужна резолверу сессии: повторное завершение онбординга
// не плодит дубликаты.
func (s *Storage) UpsertProfile(ctx context.Context, profile models.Profile) error {
	const op = "storage.UpsertProfile"
	select {
	case <-ctx.Done():
		return fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	query := `INSERT INTO profiles (id, email, role, gym_name)
			  VALUES ($1, $2, $3, $4)
			  ON CONFLICT (id) DO UPDATE
			  SET email = EXCLUDED.email,
			      role = EXCLUDED.role,
			      gym_name = EXCLUDED.gym_name`
	if _, err := s.DB.ExecContext(ctx, query,
		profile.ID, profile.Email, profile.Role, profile.GymName); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	return nil
}

// DeleteProfile удаляет профиль. Отсутствующая строка не считается ошибкой:
// деактивация менеджера должна быть повторяемой.
func (s *Storage) DeleteProfile(ctx context.Context, id string) error {
	const op = "storage.DeleteProfile"
	select {
	case <-ctx.Done():
		return fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	query := `DELETE FROM profiles WHERE id = $1`
	if _, err := s.DB.ExecContext(ctx, query, id); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	return nil
}

// ListManagerProfiles возвращает профили с ролью manager.
func (s *Storage) ListManagerProfiles(ctx context.Context) ([]*models.Profile, error) {
	const op = "storage.ListManagerProfiles"
	select {
	case <-ctx.Done():
		return nil, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	query := `SELECT id, email, role, COALESCE(gym_name, '')
			  FROM profiles
			  WHERE role = $1`
	rows, err := s.DB.QueryContext(ctx, query, models.RoleManager)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	defer func() {
		_ = rows.Close()
	}()

	var result []*models.Profile
	for rows.Next() {
		var p models.Profile
		if err := rows.Scan(&p.ID, &p.Email, &p.Role, &p.GymName); err != nil {
			return nil, fmt.Errorf("%s: %w", op, err)
		}
		result = append(result, &p)
	}
	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return result, nil
}
