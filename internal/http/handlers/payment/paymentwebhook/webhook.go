// Package paymentwebhook реализует приём вебхуков платёжного шлюза.
// Подпись проверяется до разбора тела, событие charge.success сверяется
// с леджером платежей, повторные доставки подтверждаются без побочных
// эффектов.
package paymentwebhook

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"net/http"

	"github.com/gymflowhq/gymflow/internal/lib/sl"
	"github.com/gymflowhq/gymflow/internal/metrics"
	"github.com/gymflowhq/gymflow/internal/paystack"
	"github.com/gymflowhq/gymflow/internal/services"
	"github.com/gymflowhq/gymflow/internal/storage/repository"
)

const chargeSuccess = "charge.success"

type Service interface {
	Reconcile(ctx context.Context, event services.ChargeEvent) (bool, error)
}

type Handler struct {
	log           *slog.Logger
	service       Service
	webhookSecret string // Секрет для проверки подписи
}

func New(log *slog.Logger, service Service, secret string) *Handler {
	return &Handler{
		log:           log,
		service:       service,
		webhookSecret: secret,
	}
}

// ServeHTTP godoc
// @Summary Вебхук платёжного шлюза
// @Description Принимает события шлюза, проверяет подпись X-Paystack-Signature и сверяет успешные оплаты с леджером.
// @Tags Payments
// @Accept json
// @Produce json
// @Param X-Paystack-Signature header string true "HMAC-SHA512 подпись тела"
// @Success 200 "Событие принято"
// @Failure 400 "Некорректное тело"
// @Failure 401 "Подпись отсутствует или не совпала"
// @Failure 404 "Участник или подписка не найдены"
// @Failure 500 "Ошибка сервера"
// @Router /payments/webhook [post]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.payment.webhook"
	log := h.log.With(slog.String("op", op))

	body, err := io.ReadAll(r.Body)
	if err != nil {
		log.Error("failed to read webhook body", sl.Err(err))
		w.WriteHeader(http.StatusBadRequest)
		return
	}
	defer r.Body.Close()

	// Без секрета подпись проверить нельзя, принимать события небезопасно.
	if h.webhookSecret == "" {
		log.Error("webhook secret is not configured")
		metrics.WebhooksRejectedTotal.Inc()
		w.WriteHeader(http.StatusUnauthorized)
		return
	}

	signature := r.Header.Get("X-Paystack-Signature")
	if signature == "" || !paystack.VerifySignature(h.webhookSecret, body, signature) {
		log.Error("invalid or missing webhook signature")
		metrics.WebhooksRejectedTotal.Inc()
		w.WriteHeader(http.StatusUnauthorized)
		return
	}

	var payload paystack.WebhookEvent
	if err := json.Unmarshal(body, &payload); err != nil {
		log.Error("failed to unmarshal webhook payload", sl.Err(err))
		w.WriteHeader(http.StatusBadRequest)
		return
	}
	metrics.RecordWebhook(payload.Event)

	// Интересны только успешные оплаты, остальные события подтверждаем
	// без обработки, чтобы шлюз не ретраил их бесконечно.
	if payload.Event != chargeSuccess {
		log.Info("ignored webhook event", slog.String("event", payload.Event))
		w.WriteHeader(http.StatusOK)
		return
	}

	event := services.ChargeEvent{
		Reference: payload.Data.Reference,
		Email:     payload.Data.Customer.Email,
		Amount:    float64(payload.Data.Amount) / 100,
	}

	applied, err := h.service.Reconcile(r.Context(), event)
	switch {
	case errors.Is(err, repository.ErrMemberNotFound), errors.Is(err, repository.ErrNoSubscription):
		log.Error("webhook references unknown member", sl.Err(err),
			slog.String("email", event.Email))
		w.WriteHeader(http.StatusNotFound)
		return
	case err != nil:
		log.Error("failed to reconcile payment", sl.Err(err))
		w.WriteHeader(http.StatusInternalServerError)
		return
	}

	if !applied {
		log.Info("duplicate webhook delivery acknowledged",
			slog.String("reference", event.Reference))
		w.WriteHeader(http.StatusOK)
		return
	}

	log.Info("webhook processed successfully",
		slog.String("event", payload.Event),
		slog.String("reference", event.Reference))
	w.WriteHeader(http.StatusOK)
}
