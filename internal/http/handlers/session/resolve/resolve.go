// Package resolve реализует HTTP-обработчик резолва сессии: определяет роль
// пользователя, состояние онбординга и пункт назначения после входа.
package resolve

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

// Service описывает интерфейс резолвера сессии.
type Service interface {
	Resolve(ctx context.Context, principal services.Principal) (*services.Resolution, error)
}

// Handler управляет HTTP-запросами резолва сессии.
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
// @Summary Резолв сессии
// @Description Возвращает роль текущего пользователя и пункт назначения после входа.
// @Tags Session
// @Produce json
// @Success 200 {object} response.Response "Данные сессии"
// @Failure 401 {object} response.ErrorResponse "Пользователь не авторизован"
// @Failure 500 {object} response.ErrorResponse "Ошибка сервера"
// @Security BearerAuth
// @Router /session [get]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.session.resolve"
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

	resolution, err := h.service.Resolve(r.Context(), principal)
	if err != nil {
		log.Error("failed to resolve session", sl.Err(err))
		w.WriteHeader(http.StatusInternalServerError)
		render.JSON(w, r, response.Error("could not resolve session"))
		return
	}

	log.Info("session resolved",
		slog.String("role", resolution.Role),
		slog.String("destination", resolution.Destination))
	render.JSON(w, r, response.OKWithData(resolution))
}
