// Package broadcast реализует HTTP-обработчик рассылки объявлений участникам.
package broadcast

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/middleware"
	"github.com/go-chi/render"
	"github.com/go-playground/validator"

	"github.com/gymflowhq/gymflow/internal/http/middlewarectx"
	"github.com/gymflowhq/gymflow/internal/http/response"
	"github.com/gymflowhq/gymflow/internal/lib/sl"
	"github.com/gymflowhq/gymflow/internal/models"
)

// Service описывает интерфейс рассылки объявлений.
type Service interface {
	Broadcast(ctx context.Context, managerID string, req models.DummyBroadcast) (int, error)
}

// Handler управляет HTTP-запросами рассылки объявлений.
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
// @Summary Разослать объявление
// @Description Ставит объявление в очередь для участников в зоне видимости вызывающего: админ рассылает всем, менеджер только своим.
// @Tags Members
// @Accept json
// @Produce json
// @Param request body models.DummyBroadcast true "Тема и текст объявления"
// @Success 200 {object} response.Response "Число поставленных в очередь сообщений"
// @Failure 400 {object} response.ErrorResponse "Некорректный JSON"
// @Failure 401 {object} response.ErrorResponse "Пользователь не авторизован"
// @Failure 422 {object} response.ErrorResponse "Ошибка валидации"
// @Failure 500 {object} response.ErrorResponse "Ошибка сервера"
// @Security BearerAuth
// @Router /broadcast [post]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.member.broadcast"
	log := h.log.With(
		slog.String("op", op),
		slog.String("request_id", middleware.GetReqID(r.Context())),
	)

	var req models.DummyBroadcast
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

	principal, ok := middlewarectx.PrincipalFromContext(r.Context())
	if !ok {
		log.Error("principal not found in context")
		w.WriteHeader(http.StatusUnauthorized)
		render.JSON(w, r, response.Error("unauthorized"))
		return
	}

	// Админ рассылает всем участникам платформы, менеджер только своим.
	managerID := principal.UserID
	if principal.Role == models.RoleAdmin {
		managerID = ""
	}

	queued, err := h.service.Broadcast(r.Context(), managerID, req)
	if err != nil {
		log.Error("failed to queue broadcast", sl.Err(err))
		w.WriteHeader(http.StatusInternalServerError)
		render.JSON(w, r, response.Error("could not queue broadcast"))
		return
	}

	log.Info("broadcast queued", slog.Int("queued", queued))
	render.JSON(w, r, response.OKWithData(map[string]int{"queued": queued}))
}
