// Package paymentlink реализует HTTP-обработчик генерации платёжной ссылки
// на продление абонемента участника.
package paymentlink

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
	"github.com/gymflowhq/gymflow/internal/lib/sl"
	"github.com/gymflowhq/gymflow/internal/models"
	"github.com/gymflowhq/gymflow/internal/services"
)

// Service описывает интерфейс генерации платёжной ссылки.
type Service interface {
	RenewalLink(ctx context.Context, memberID string, req models.DummyPaymentLink) (*services.PaymentLink, error)
}

// Handler управляет HTTP-запросами генерации платёжной ссылки.
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
// @Summary Платёжная ссылка на продление
// @Description Инициализирует транзакцию у платёжного шлюза и возвращает ссылку на оплату.
// @Tags Members
// @Accept json
// @Produce json
// @Param id path string true "ID участника"
// @Param request body models.DummyPaymentLink true "Сумма и email плательщика"
// @Success 200 {object} response.Response "Платёжная ссылка"
// @Failure 400 {object} response.ErrorResponse "Некорректный JSON"
// @Failure 422 {object} response.ErrorResponse "Ошибка валидации"
// @Failure 502 {object} response.ErrorResponse "Платёжный шлюз недоступен"
// @Failure 500 {object} response.ErrorResponse "Ошибка сервера"
// @Security BearerAuth
// @Router /members/{id}/payment-link [post]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.member.paymentlink"
	log := h.log.With(
		slog.String("op", op),
		slog.String("request_id", middleware.GetReqID(r.Context())),
	)

	memberID := chi.URLParam(r, "id")

	var req models.DummyPaymentLink
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

	link, err := h.service.RenewalLink(r.Context(), memberID, req)
	switch {
	case errors.Is(err, services.ErrGatewayInit):
		log.Error("gateway rejected transaction", sl.Err(err))
		w.WriteHeader(http.StatusBadGateway)
		render.JSON(w, r, response.Error("payment gateway unavailable"))
		return
	case err != nil:
		log.Error("failed to create payment link", sl.Err(err))
		w.WriteHeader(http.StatusInternalServerError)
		render.JSON(w, r, response.Error("could not create payment link"))
		return
	}

	log.Info("payment link created",
		slog.String("member_id", memberID),
		slog.String("reference", link.Reference))
	render.JSON(w, r, response.OKWithData(link))
}
