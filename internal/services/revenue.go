package services

import (
	"context"
	"log/slog"
	"time"

	"github.com/gymflowhq/gymflow/internal/lib/revenue"
	"github.com/gymflowhq/gymflow/internal/models"
)

type RevenueRepository interface {
	ListSuccessfulPayments(ctx context.Context) ([]*models.Payment, error)
	CountActiveMembers(ctx context.Context) (int, error)
}

// Значения фильтра серии выручки.
const (
	FilterLast30Days   = "30days"
	FilterLast12Months = "12months"
)

// PlatformMetrics метрики платформы для владельца.
type PlatformMetrics struct {
	TotalRevenue  float64          `json:"total_revenue"`
	TodayRevenue  float64          `json:"today_revenue"`
	ActiveMembers int              `json:"active_members"`
	Series        []revenue.Bucket `json:"series"`
}

// RevenueService агрегирует леджер платежей в метрики платформы.
type RevenueService struct {
	repo RevenueRepository
	log  *slog.Logger
	now  func() time.Time
}

func NewRevenueService(repo RevenueRepository, log *slog.Logger) *RevenueService {
	return &RevenueService{
		repo: repo,
		log:  log,
		now:  time.Now,
	}
}

// Metrics возвращает метрики платформы. Фильтр выбирает серию:
// 30 дневных корзин либо 6 месячных; исторически фильтр месячной
// серии называется "12months".
func (s *RevenueService) Metrics(ctx context.Context, filter string) (*PlatformMetrics, error) {
	payments, err := s.repo.ListSuccessfulPayments(ctx)
	if err != nil {
		return nil, err
	}
	activeMembers, err := s.repo.CountActiveMembers(ctx)
	if err != nil {
		return nil, err
	}

	now := s.now()
	points := make([]revenue.Point, 0, len(payments))
	var total, today float64
	for _, p := range payments {
		total += p.Amount
		if sameDay(p.CreatedAt, now) {
			today += p.Amount
		}
		points = append(points, revenue.Point{
			Amount:    p.Amount,
			CreatedAt: p.CreatedAt,
		})
	}

	var series []revenue.Bucket
	if filter == FilterLast12Months {
		series = revenue.Last6Months(points, now)
	} else {
		series = revenue.Last30Days(points, now)
	}

	return &PlatformMetrics{
		TotalRevenue:  total,
		TodayRevenue:  today,
		ActiveMembers: activeMembers,
		Series:        series,
	}, nil
}

func sameDay(a, b time.Time) bool {
	ay, am, ad := a.Date()
	by, bm, bd := b.Date()
	return ay == by && am == bm && ad == bd
}
