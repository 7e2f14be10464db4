package services

import (
	"context"
	"log/slog"
	"time"

	"github.com/gymflowhq/gymflow/internal/models"
)

type PlanRepository interface {
	ListPlans(ctx context.Context) ([]*models.Plan, error)
	GetPlan(ctx context.Context, id string) (*models.Plan, error)
}

type Cache interface {
	Get(key string, result any) (bool, error)
	Set(key string, value any, expiration time.Duration) error
	Invalidate(key string) error
}

const plansCacheKey = "plans:all"

// PlanService отдаёт справочник тарифных планов. Справочник меняется
// только миграциями, поэтому читается сквозь кэш.
type PlanService struct {
	repo  PlanRepository
	cache Cache
	log   *slog.Logger
}

func NewPlanService(repo PlanRepository, cache Cache, log *slog.Logger) *PlanService {
	return &PlanService{
		repo:  repo,
		cache: cache,
		log:   log,
	}
}

// List возвращает все планы по возрастанию цены.
func (s *PlanService) List(ctx context.Context) ([]*models.Plan, error) {
	var result []*models.Plan
	found, err := s.cache.Get(plansCacheKey, &result)
	if err != nil {
		s.log.Warn("failed to read plans from cache", slog.Any("err", err))
	}
	if found {
		return result, nil
	}

	result, err = s.repo.ListPlans(ctx)
	if err != nil {
		return nil, err
	}

	if err := s.cache.Set(plansCacheKey, result, time.Hour); err != nil {
		s.log.Warn("failed to cache plans", slog.String("key", plansCacheKey), slog.Any("err", err))
	}
	return result, nil
}

// Get возвращает план по ID, минуя кэш.
func (s *PlanService) Get(ctx context.Context, id string) (*models.Plan, error) {
	return s.repo.GetPlan(ctx, id)
}
