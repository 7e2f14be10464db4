// Package deactivate реализует HTTP-обработчик деактивации менеджера.
package deactivate

import (
	"context"
	"errors"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi"
	"github.com/go-chi/chi/middleware"
	"github.com/go-chi/render"

	"github.com/gymflowhq/gymflow/internal/http/response"
	"github.com/gymflowhq/gymflow/internal/identity"
	"github.com/gymflowhq/gymflow/internal/lib/sl"
)

// Service описывает интерфейс деактивации менеджера.
type Service interface {
	Deactivate(ctx context.Context, id string) error
}

// Handler управляет HTTP-запросами деактивации менеджера.
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
// @Summary Деактивировать менеджера
// @Description Удаляет менеджера у identity-провайдера и чистит его профиль.
// @Tags Managers
// @Produce json
// @Param id path string true "ID менеджера"
// @Success 200 {object} response.Response "Менеджер деактивирован"
// @Failure 404 {object} response.ErrorResponse "Менеджер не найден"
// @Failure 500 {object} response.ErrorResponse "Ошибка сервера"
// @Security BearerAuth
// @Router /managers/{id} [delete]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.manager.deactivate"
	log := h.log.With(
		slog.String("op", op),
		slog.String("request_id", middleware.GetReqID(r.Context())),
	)

	managerID := chi.URLParam(r, "id")

	err := h.service.Deactivate(r.Context(), managerID)
	switch {
	case errors.Is(err, identity.ErrUserNotFound):
		log.Error("manager not found", slog.String("manager_id", managerID))
		w.WriteHeader(http.StatusNotFound)
		render.JSON(w, r, response.Error("manager not found"))
		return
	case err != nil:
		log.Error("failed to deactivate manager", sl.Err(err))
		w.WriteHeader(http.StatusInternalServerError)
		render.JSON(w, r, response.Error("could not deactivate manager"))
		return
	}

	log.Info("manager deactivated", slog.String("manager_id", managerID))
	render.JSON(w, r, response.OK())
}
