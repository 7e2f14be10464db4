// Package dashboard реализует HTTP-обработчик сводки менеджера.
package dashboard

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/middleware"
	"github.com/go-chi/render"

	"github.com/gymflowhq/gymflow/internal/http/middlewarectx"
	"github.com/gymflowhq/gymflow/internal/http/response"
	"github.com/gymflowhq/gymflow/internal/lib/sl"
	"github.com/gymflowhq/gymflow/internal/services"
)

// Service описывает интерфейс сводки дашборда.
type Service interface {
	Dashboard(ctx context.Context, managerID string) (*services.DashboardSummary, error)
}

// Handler управляет HTTP-запросами сводки дашборда.
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
// @Summary Сводка дашборда менеджера
// @Description Возвращает свежих участников менеджера и суммарную выручку по успешным платежам.
// @Tags Members
// @Produce json
// @Success 200 {object} response.Response "Сводка дашборда"
// @Failure 401 {object} response.ErrorResponse "Пользователь не авторизован"
// @Failure 500 {object} response.ErrorResponse "Ошибка сервера"
// @Security BearerAuth
// @Router /dashboard [get]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.member.dashboard"
	log := h.log.With(
		slog.String("op", op),
		slog.String("request_id", middleware.GetReqID(r.Context())),
	)

	principal, ok := middlewarectx.PrincipalFromContext(r.Context())
	if !ok {
		log.Error("principal not found in context")
		w.WriteHeader(http.StatusUnauthorized)
		render.JSON(w, r, response.Error("unauthorized"))
		return
	}

	summary, err := h.service.Dashboard(r.Context(), principal.UserID)
	if err != nil {
		log.Error("failed to build dashboard", sl.Err(err))
		w.WriteHeader(http.StatusInternalServerError)
		render.JSON(w, r, response.Error("could not build dashboard"))
		return
	}

	log.Info("dashboard built",
		slog.Int("members", len(summary.Members)),
		slog.Float64("total_revenue", summary.TotalRevenue))
	render.JSON(w, r, response.OKWithData(summary))
}
