// Package update реализует HTTP-обработчик обновления данных менеджера.
package update

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi"
	"github.com/go-chi/chi/middleware"
	"github.com/go-chi/render"
	"github.com/go-playground/validator"

	"github.com/gymflowhq/gymflow/internal/http/response"
	"github.com/gymflowhq/gymflow/internal/identity"
	"github.com/gymflowhq/gymflow/internal/lib/sl"
	"github.com/gymflowhq/gymflow/internal/models"
)

// Service описывает интерфейс обновления менеджера.
type Service interface {
	Update(ctx context.Context, id string, req models.DummyManagerUpdate) error
}

// Handler управляет HTTP-запросами обновления менеджера.
type Handler struct {
	log      *slog.Logger
	service  Service
	validate *validator.Validate
}

// New создает новый Handler с переданными логгером и сервисом.
func New(log *slog.Logger, service Service) *Handler {
	return &Handler{
		log:      log,
		service:  service,
		validate: validator.New(),
	}
}

// ServeHTTP godoc
// @Summary Обновить менеджера
// @Description Обновляет имя и телефон менеджера в метаданных identity-провайдера.
// @Tags Managers
// @Accept json
// @Produce json
// @Param id path string true "ID менеджера"
// @Param request body models.DummyManagerUpdate true "Новые данные"
// @Success 200 {object} response.Response "Менеджер обновлён"
// @Failure 400 {object} response.ErrorResponse "Некорректный JSON"
// @Failure 404 {object} response.ErrorResponse "Менеджер не найден"
// @Failure 422 {object} response.ErrorResponse "Ошибка валидации"
// @Failure 500 {object} response.ErrorResponse "Ошибка сервера"
// @Security BearerAuth
// @Router /managers/{id} [put]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.manager.update"
	log := h.log.With(
		slog.String("op", op),
		slog.String("request_id", middleware.GetReqID(r.Context())),
	)

	managerID := chi.URLParam(r, "id")

	var req models.DummyManagerUpdate
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		log.Error("failed to decode request", sl.Err(err))
		w.WriteHeader(http.StatusBadRequest)
		render.JSON(w, r, response.Error("invalid request body"))
		return
	}

	if err := h.validate.Struct(req); err != nil {
		log.Error("validation failed", sl.Err(err))
		w.WriteHeader(http.StatusUnprocessableEntity)
		render.JSON(w, r, response.ValidationError(err.(validator.ValidationErrors)))
		return
	}

	err := h.service.Update(r.Context(), managerID, req)
	switch {
	case errors.Is(err, identity.ErrUserNotFound):
		log.Error("manager not found", slog.String("manager_id", managerID))
		w.WriteHeader(http.StatusNotFound)
		render.JSON(w, r, response.Error("manager not found"))
		return
	case err != nil:
		log.Error("failed to update manager", sl.Err(err))
		w.WriteHeader(http.StatusInternalServerError)
		render.JSON(w, r, response.Error("could not update manager"))
		return
	}

	log.Info("manager updated", slog.String("manager_id", managerID))
	render.JSON(w, r, response.OK())
}
