// Package list реализует HTTP-обработчик списка участников.
package list

import (
	"context"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/middleware"
	"github.com/go-chi/render"

	"github.com/gymflowhq/gymflow/internal/http/middlewarectx"
	"github.com/gymflowhq/gymflow/internal/http/response"
	"github.com/gymflowhq/gymflow/internal/lib/sl"
	"github.com/gymflowhq/gymflow/internal/models"
)

const defaultLimit = 50

// Service описывает интерфейс чтения списка участников.
type Service interface {
	List(ctx context.Context, managerID string, limit int) ([]*models.MemberSummary, error)
}

// Handler управляет HTTP-запросами списка участников.
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
// @Summary Список участников
// @Description Возвращает участников в зоне видимости вызывающего: админ видит всех, менеджер только своих.
// @Tags Members
// @Produce json
// @Param limit query int false "Максимум строк" default(50)
// @Success 200 {object} response.Response "Список участников"
// @Failure 401 {object} response.ErrorResponse "Пользователь не авторизован"
// @Failure 500 {object} response.ErrorResponse "Ошибка сервера"
// @Security BearerAuth
// @Router /members [get]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.member.list"
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

	limit := defaultLimit
	if raw := r.URL.Query().Get("limit"); raw != "" {
		if parsed, err := strconv.Atoi(raw); err == nil && parsed > 0 {
			limit = parsed
		}
	}

	// Админ видит участников всех залов, менеджер только привязанных к нему.
	managerID := principal.UserID
	if principal.Role == models.RoleAdmin {
		managerID = ""
	}

	members, err := h.service.List(r.Context(), managerID, limit)
	if err != nil {
		log.Error("failed to list members", sl.Err(err))
		w.WriteHeader(http.StatusInternalServerError)
		render.JSON(w, r, response.Error("could not list members"))
		return
	}

	log.Info("members listed", slog.Int("count", len(members)))
	render.JSON(w, r, response.OKWithData(members))
}
