package services

import (
	"context"
	"errors"
	"log/slog"

	"github.com/gymflowhq/gymflow/internal/identity"
	"github.com/gymflowhq/gymflow/internal/lib/sl"
	"github.com/gymflowhq/gymflow/internal/models"
	"github.com/gymflowhq/gymflow/internal/storage/repository"
)

type ProfileRepository interface {
	GetProfile(ctx context.Context, id string) (*models.Profile, error)
	UpsertProfile(ctx context.Context, profile models.Profile) error
}

type IdentityAdmin interface {
	ListUsers(ctx context.Context) ([]*identity.User, error)
	CreateUser(ctx context.Context, req identity.CreateUserRequest) (*identity.User, error)
	UpdateUser(ctx context.Context, id string, req identity.UpdateUserRequest) (*identity.User, error)
	DeleteUser(ctx context.Context, id string) error
}

// Пункты назначения после входа.
const (
	DestinationAdminDashboard   = "admin_dashboard"
	DestinationManagerDashboard = "manager_dashboard"
	DestinationOnboarding       = "onboarding"
)

// Principal аутентифицированный пользователь из access-токена.
type Principal struct {
	UserID           string
	Email            string
	Role             string
	GymName          string
	HasFinishedSetup bool
}

// Resolution ответ резолвера сессии: кем пользователь является и куда
// его направить после входа.
type Resolution struct {
	Role             string `json:"role"`
	GymName          string `json:"gym_name,omitempty"`
	HasFinishedSetup bool   `json:"has_finished_setup"`
	Destination      string `json:"destination"`
}

// ProfileService резолвит сессии и ведёт онбординг владельца. Роль и
// gym_name каноничны в профильной таблице; claims токена служат запасным
// источником, пока профиль не создан.
type ProfileService struct {
	repo     ProfileRepository
	provider IdentityAdmin
	log      *slog.Logger
}

func NewProfileService(repo ProfileRepository, provider IdentityAdmin, log *slog.Logger) *ProfileService {
	return &ProfileService{
		repo:     repo,
		provider: provider,
		log:      log,
	}
}

// Resolve определяет роль и состояние онбординга пользователя и выбирает
// пункт назначения: менеджер всегда попадает на свой дашборд, владелец —
// на онбординг, пока не задано название зала, затем на админский дашборд.
func (s *ProfileService) Resolve(ctx context.Context, principal Principal) (*Resolution, error) {
	role := principal.Role
	gymName := principal.GymName
	finishedSetup := principal.HasFinishedSetup

	profile, err := s.repo.GetProfile(ctx, principal.UserID)
	switch {
	case err == nil:
		// Профильная строка каноническая: claim токена может отставать
		// от реального состояния онбординга
		role = profile.Role
		gymName = profile.GymName
		finishedSetup = profile.GymName != ""
	case errors.Is(err, repository.ErrProfileNotFound):
		// Профиля ещё нет: онбординг не завершён, роль берётся из токена
		finishedSetup = false
	default:
		return nil, err
	}

	if role == "" {
		role = models.RoleAdmin
	}

	resolution := &Resolution{
		Role:             role,
		GymName:          gymName,
		HasFinishedSetup: finishedSetup,
	}
	switch {
	case role == models.RoleManager:
		resolution.Destination = DestinationManagerDashboard
	case finishedSetup:
		resolution.Destination = DestinationAdminDashboard
	default:
		resolution.Destination = DestinationOnboarding
	}
	return resolution, nil
}

// CompleteSetup завершает онбординг владельца: записывает профиль с названием
// зала и обогащает метаданные identity-провайдера. Профильная строка
// каноническая, ошибка обновления метаданных не откатывает онбординг.
func (s *ProfileService) CompleteSetup(ctx context.Context, principal Principal, req models.DummySetup) error {
	profile := models.Profile{
		ID:      principal.UserID,
		Email:   principal.Email,
		Role:    models.RoleAdmin,
		GymName: req.GymName,
	}
	if err := s.repo.UpsertProfile(ctx, profile); err != nil {
		return err
	}

	_, err := s.provider.UpdateUser(ctx, principal.UserID, identity.UpdateUserRequest{
		UserMetadata: map[string]string{
			"full_name":          req.FullName,
			"phone":              req.Phone,
			"gym_name":           req.GymName,
			"role":               models.RoleAdmin,
			"has_finished_setup": "true",
		},
	})
	if err != nil {
		s.log.Warn("failed to enrich provider metadata after setup",
			slog.String("user_id", principal.UserID), sl.Err(err))
	}

	s.log.Info("owner setup completed",
		slog.String("user_id", principal.UserID),
		slog.String("gym_name", req.GymName))
	return nil
}
