package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/gymflowhq/gymflow/internal/identity"
	"github.com/gymflowhq/gymflow/internal/lib/password"
	"github.com/gymflowhq/gymflow/internal/lib/sl"
	"github.com/gymflowhq/gymflow/internal/models"
	"github.com/gymflowhq/gymflow/internal/storage/repository"
)

var (
	// ErrManagerExists у identity-провайдера уже есть пользователь
	// с таким email.
	ErrManagerExists = errors.New("manager already exists")
	// ErrProfileExists email занят строкой в профильной таблице.
	ErrProfileExists = errors.New("profile with email already exists")
	// ErrProviderCreate провайдер отклонил создание учётной записи.
	// Отличим от прочих сбоев: это обычно триггер на стороне провайдера.
	ErrProviderCreate = errors.New("identity provider rejected user creation")
)

type ManagerProfileRepository interface {
	GetProfile(ctx context.Context, id string) (*models.Profile, error)
	GetProfileByEmail(ctx context.Context, email string) (*models.Profile, error)
	UpsertProfile(ctx context.Context, profile models.Profile) error
	DeleteProfile(ctx context.Context, id string) error
	CountMembersByManager(ctx context.Context) (map[string]int, error)
}

const defaultGymName = "GymFlow"

// ManagerService ведёт каталог менеджеров. Учётные данные живут у
// identity-провайдера, профильная таблица хранит зеркальную запись
// для серверных проверок роли.
type ManagerService struct {
	repo      ManagerProfileRepository
	provider  IdentityAdmin
	publisher NotificationPublisher
	log       *slog.Logger
}

func NewManagerService(repo ManagerProfileRepository, provider IdentityAdmin,
	publisher NotificationPublisher, log *slog.Logger) *ManagerService {
	return &ManagerService{
		repo:      repo,
		provider:  provider,
		publisher: publisher,
		log:       log,
	}
}

// Create создаёт менеджера в два приёма: сначала минимальная учётка
// у провайдера (роль и зал), затем обогащение метаданных именем и
// телефоном. Дубликат email отклоняется по обоим источникам: и по
// провайдеру, и по профильной таблице. Возвращает временный пароль
// для приглашения.
func (s *ManagerService) Create(ctx context.Context, owner Principal, req models.DummyManager) (string, error) {
	email := strings.ToLower(strings.TrimSpace(req.Email))

	users, err := s.provider.ListUsers(ctx)
	if err != nil {
		return "", err
	}
	for _, u := range users {
		if strings.EqualFold(u.Email, email) {
			return "", ErrManagerExists
		}
	}

	if _, err := s.repo.GetProfileByEmail(ctx, email); err == nil {
		return "", ErrProfileExists
	} else if !errors.Is(err, repository.ErrProfileNotFound) {
		return "", err
	}

	gymName := s.resolveGymName(ctx, owner)

	tempPassword, err := password.GenerateTemp()
	if err != nil {
		return "", err
	}

	// Фаза 1: минимальная учётка. Лишние метаданные на этом шаге
	// приводили к срабатыванию триггеров провайдера
	user, err := s.provider.CreateUser(ctx, identity.CreateUserRequest{
		Email:        email,
		Password:     tempPassword,
		EmailConfirm: true,
		UserMetadata: map[string]string{
			"role":     models.RoleManager,
			"gym_name": gymName,
		},
	})
	if err != nil {
		return "", fmt.Errorf("%w: %w", ErrProviderCreate, err)
	}

	// Фаза 2: обогащение метаданных. Учётка уже создана, сбой здесь
	// не фатален
	if _, err := s.provider.UpdateUser(ctx, user.ID, identity.UpdateUserRequest{
		UserMetadata: map[string]string{
			"full_name":          req.FullName,
			"phone":              req.Phone,
			"role":               models.RoleManager,
			"gym_name":           gymName,
			"has_finished_setup": "true",
		},
	}); err != nil {
		s.log.Warn("failed to enrich manager metadata",
			slog.String("manager_id", user.ID), sl.Err(err))
	}

	if err := s.repo.UpsertProfile(ctx, models.Profile{
		ID:      user.ID,
		Email:   email,
		Role:    models.RoleManager,
		GymName: gymName,
	}); err != nil {
		return "", err
	}

	notification := models.Notification{
		Type:         models.NotificationInvite,
		Email:        email,
		FullName:     req.FullName,
		TempPassword: tempPassword,
	}
	if err := s.publisher.Publish(models.NotificationInvite, notification); err != nil {
		s.log.Warn("failed to publish invite notification", sl.Err(err))
	}

	s.log.Info("created manager",
		slog.String("manager_id", user.ID),
		slog.String("gym_name", gymName))
	return tempPassword, nil
}

// Update обновляет имя и телефон менеджера в метаданных провайдера.
// Профильная таблица не затрагивается: в ней этих полей нет.
func (s *ManagerService) Update(ctx context.Context, id string, req models.DummyManagerUpdate) error {
	_, err := s.provider.UpdateUser(ctx, id, identity.UpdateUserRequest{
		UserMetadata: map[string]string{
			"full_name": req.FullName,
			"phone":     req.Phone,
		},
	})
	return err
}

// Deactivate удаляет учётку менеджера у провайдера и его профильную
// строку. Ошибка удаления профиля после удаления учётки логируется,
// но не возвращается: учётки уже нет, вход невозможен.
func (s *ManagerService) Deactivate(ctx context.Context, id string) error {
	if err := s.provider.DeleteUser(ctx, id); err != nil {
		return err
	}
	if err := s.repo.DeleteProfile(ctx, id); err != nil {
		s.log.Warn("failed to delete manager profile",
			slog.String("manager_id", id), sl.Err(err))
	}
	s.log.Info("deactivated manager", slog.String("manager_id", id))
	return nil
}

// List возвращает менеджеров платформы с числом приведённых участников.
func (s *ManagerService) List(ctx context.Context) ([]*models.ManagerInfo, error) {
	users, err := s.provider.ListUsers(ctx)
	if err != nil {
		return nil, err
	}
	conversions, err := s.repo.CountMembersByManager(ctx)
	if err != nil {
		return nil, err
	}

	var result []*models.ManagerInfo
	for _, u := range users {
		if u.UserMetadata["role"] != models.RoleManager {
			continue
		}
		name := u.UserMetadata["full_name"]
		if name == "" {
			name = u.Email
		}
		result = append(result, &models.ManagerInfo{
			ID:          u.ID,
			Name:        name,
			Email:       u.Email,
			Phone:       u.UserMetadata["phone"],
			Role:        models.RoleManager,
			Conversions: conversions[u.ID],
			LastActive:  u.LastSignIn,
			CreatedAt:   u.CreatedAt,
		})
	}
	return result, nil
}

// resolveGymName определяет название зала для нового менеджера: профиль
// владельца, затем его токен, затем значение по умолчанию.
func (s *ManagerService) resolveGymName(ctx context.Context, owner Principal) string {
	if profile, err := s.repo.GetProfile(ctx, owner.UserID); err == nil && profile.GymName != "" {
		return profile.GymName
	}
	if owner.GymName != "" {
		return owner.GymName
	}
	return defaultGymName
}
