// Package platform реализует HTTP-обработчик метрик платформы для
// админского дашборда.
package platform

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/middleware"
	"github.com/go-chi/render"

	"github.com/gymflowhq/gymflow/internal/http/response"
	"github.com/gymflowhq/gymflow/internal/lib/sl"
	"github.com/gymflowhq/gymflow/internal/services"
)

// Service описывает интерфейс агрегации метрик платформы.
type Service interface {
	Metrics(ctx context.Context, filter string) (*services.PlatformMetrics, error)
}

// Handler управляет HTTP-запросами метрик платформы.
type Handler struct {
	log     *slog.Logger
	service Service
}

// New создает новый Handler с переданными логгером и сервисом.
func New(log *slog.Logger, service Service) *Handler {
	return &Handler{
		log:     log,
		service: service,
	}
}

// ServeHTTP godoc
// @Summary Метрики платформы
// @Description Возвращает выручку, активных участников и временной ряд выручки за выбранный период.
// @Tags Metrics
// @Produce json
// @Param filter query string false "Период ряда: 30days или 12months" default(30days)
// @Success 200 {object} response.Response "Метрики платформы"
// @Failure 500 {object} response.ErrorResponse "Ошибка сервера"
// @Security BearerAuth
// @Router /metrics/platform [get]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.metrics.platform"
	log := h.log.With(
		slog.String("op", op),
		slog.String("request_id", middleware.GetReqID(r.Context())),
	)

	filter := r.URL.Query().Get("filter")
	if filter == "" {
		filter = services.FilterLast30Days
	}

	m, err := h.service.Metrics(r.Context(), filter)
	if err != nil {
		log.Error("failed to aggregate platform metrics", sl.Err(err))
		w.WriteHeader(http.StatusInternalServerError)
		render.JSON(w, r, response.Error("could not aggregate metrics"))
		return
	}

	log.Info("platform metrics aggregated",
		slog.String("filter", filter),
		slog.Float64("total_revenue", m.TotalRevenue))
	render.JSON(w, r, response.OKWithData(m))
}
