// Package list реализует HTTP-обработчик каталога менеджеров.
package list

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/middleware"
	"github.com/go-chi/render"

	"github.com/gymflowhq/gymflow/internal/http/response"
	"github.com/gymflowhq/gymflow/internal/lib/sl"
	"github.com/gymflowhq/gymflow/internal/models"
)

// Service описывает интерфейс каталога менеджеров.
type Service interface {
	List(ctx context.Context) ([]*models.ManagerInfo, error)
}

// Handler управляет HTTP-запросами каталога менеджеров.
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
// @Summary Список менеджеров
// @Description Возвращает менеджеров всех залов вместе с числом привязанных участников.
// @Tags Managers
// @Produce json
// @Success 200 {object} response.Response "Список менеджеров"
// @Failure 500 {object} response.ErrorResponse "Ошибка сервера"
// @Security BearerAuth
// @Router /managers [get]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.manager.list"
	log := h.log.With(
		slog.String("op", op),
		slog.String("request_id", middleware.GetReqID(r.Context())),
	)

	managers, err := h.service.List(r.Context())
	if err != nil {
		log.Error("failed to list managers", sl.Err(err))
		w.WriteHeader(http.StatusInternalServerError)
		render.JSON(w, r, response.Error("could not list managers"))
		return
	}

	log.Info("managers listed", slog.Int("count", len(managers)))
	render.JSON(w, r, response.OKWithData(managers))
}
