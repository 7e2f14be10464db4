// Package register реализует HTTP-обработчик регистрации участника зала.
package register

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
	"github.com/gymflowhq/gymflow/internal/storage/repository"
)

// Service описывает интерфейс регистрации участника.
type Service interface {
	Register(ctx context.Context, managerID string, req models.DummyMember) (string, error)
}

// Handler управляет HTTP-запросами регистрации участника.
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
// @Summary Зарегистрировать участника
// @Description Создаёт участника с подпиской на выбранный тарифный план.
// @Tags Members
// @Accept json
// @Produce json
// @Param request body models.DummyMember true "Данные участника"
// @Success 200 {object} response.Response "ID нового участника"
// @Failure 400 {object} response.ErrorResponse "Некорректный JSON"
// @Failure 401 {object} response.ErrorResponse "Пользователь не авторизован"
// @Failure 404 {object} response.ErrorResponse "Тарифный план не найден"
// @Failure 409 {object} response.ErrorResponse "Участник с таким email уже существует"
// @Failure 422 {object} response.ErrorResponse "Ошибка валидации"
// @Failure 500 {object} response.ErrorResponse "Ошибка сервера"
// @Security BearerAuth
// @Router /members [post]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.member.register"
	log := h.log.With(
		slog.String("op", op),
		slog.String("request_id", middleware.GetReqID(r.Context())),
	)

	var req models.DummyMember
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

	memberID, err := h.service.Register(r.Context(), principal.UserID, req)
	switch {
	case errors.Is(err, repository.ErrPlanNotFound):
		log.Error("plan not found", slog.String("plan_id", req.PlanID))
		w.WriteHeader(http.StatusNotFound)
		render.JSON(w, r, response.Error("plan not found"))
		return
	case errors.Is(err, repository.ErrMemberExists):
		log.Error("member already exists", slog.String("email", req.Email))
		w.WriteHeader(http.StatusConflict)
		render.JSON(w, r, response.Error("member with this email already exists"))
		return
	case err != nil:
		log.Error("failed to register member", sl.Err(err))
		w.WriteHeader(http.StatusInternalServerError)
		render.JSON(w, r, response.Error("could not register member"))
		return
	}

	log.Info("member registered", slog.String("member_id", memberID))
	render.JSON(w, r, response.OKWithData(map[string]string{"member_id": memberID}))
}
