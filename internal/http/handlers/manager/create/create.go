// Package create реализует HTTP-обработчик создания менеджера зала.
package create

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/middleware"
	"github.com/go-chi/render"
	"github.com/go-playground/validator"

	"github.com/gymflowhq/gymflow/internal/http/middlewarectx"
	"github.com/gymflowhq/gymflow/internal/http/response"
	"github.com/gymflowhq/gymflow/internal/lib/sl"
	"github.com/gymflowhq/gymflow/internal/models"
	"github.com/gymflowhq/gymflow/internal/services"
)

// Service описывает интерфейс создания менеджера.
type Service interface {
	Create(ctx context.Context, owner services.Principal, req models.DummyManager) (string, error)
}

// Handler управляет HTTP-запросами создания менеджера.
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
// @Summary Создать менеджера
// @Description Заводит менеджера у identity-провайдера и возвращает временный пароль для передачи ему.
// @Tags Managers
// @Accept json
// @Produce json
// @Param request body models.DummyManager true "Данные менеджера"
// @Success 200 {object} response.Response "Временный пароль менеджера"
// @Failure 400 {object} response.ErrorResponse "Некорректный JSON"
// @Failure 401 {object} response.ErrorResponse "Пользователь не авторизован"
// @Failure 409 {object} response.ErrorResponse "Менеджер с таким email уже существует"
// @Failure 422 {object} response.ErrorResponse "Ошибка валидации"
// @Failure 502 {object} response.ErrorResponse "Identity-провайдер недоступен"
// @Failure 500 {object} response.ErrorResponse "Ошибка сервера"
// @Security BearerAuth
// @Router /managers [post]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.manager.create"
	log := h.log.With(
		slog.String("op", op),
		slog.String("request_id", middleware.GetReqID(r.Context())),
	)

	var req models.DummyManager
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

	owner, ok := middlewarectx.PrincipalFromContext(r.Context())
	if !ok {
		log.Error("principal not found in context")
		w.WriteHeader(http.StatusUnauthorized)
		render.JSON(w, r, response.Error("unauthorized"))
		return
	}

	tempPassword, err := h.service.Create(r.Context(), owner, req)
	switch {
	case errors.Is(err, services.ErrManagerExists), errors.Is(err, services.ErrProfileExists):
		log.Error("manager already exists", slog.String("email", req.Email))
		w.WriteHeader(http.StatusConflict)
		render.JSON(w, r, response.Error("manager with this email already exists"))
		return
	case errors.Is(err, services.ErrProviderCreate):
		log.Error("identity provider rejected create", sl.Err(err))
		w.WriteHeader(http.StatusBadGateway)
		render.JSON(w, r, response.Error("identity provider unavailable"))
		return
	case err != nil:
		log.Error("failed to create manager", sl.Err(err))
		w.WriteHeader(http.StatusInternalServerError)
		render.JSON(w, r, response.Error("could not create manager"))
		return
	}

	log.Info("manager created", slog.String("email", req.Email))
	render.JSON(w, r, response.OKWithData(map[string]string{
		"temp_password": tempPassword,
	}))
}
