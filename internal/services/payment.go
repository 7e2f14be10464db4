package services

import (
	"context"
	"log/slog"
	"time"

	"github.com/gymflowhq/gymflow/internal/lib/sl"
	"github.com/gymflowhq/gymflow/internal/metrics"
	"github.com/gymflowhq/gymflow/internal/models"
)

type PaymentRepository interface {
	GetMemberBillingByEmail(ctx context.Context, email string) (*models.MemberBilling, error)
	ReconcilePayment(ctx context.Context, billing *models.MemberBilling,
		reference string, amount float64, newExpiry time.Time) (bool, error)
	ListPaymentsByManager(ctx context.Context, managerID string, limit, offset int) ([]*models.Payment, error)
}

// ChargeEvent успешное списание, извлечённое из вебхука. Amount уже
// в основной единице валюты.
type ChargeEvent struct {
	Reference string
	Email     string
	Amount    float64
}

// PaymentService сверяет платежи шлюза с подписками. Вся защита от
// повторной доставки события живёт в транзакции хранилища, сервис лишь
// интерпретирует её результат.
type PaymentService struct {
	repo      PaymentRepository
	publisher NotificationPublisher
	log       *slog.Logger
	now       func() time.Time
}

func NewPaymentService(repo PaymentRepository, publisher NotificationPublisher, log *slog.Logger) *PaymentService {
	return &PaymentService{
		repo:      repo,
		publisher: publisher,
		log:       log,
		now:       time.Now,
	}
}

// Reconcile применяет успешное списание: находит участника по email,
// продлевает его текущую подписку на срок плана от текущего момента
// и записывает платёж в леджер. Повторная доставка того же reference
// завершается успешно, ничего не меняя. Возвращает, был ли платёж применён.
func (s *PaymentService) Reconcile(ctx context.Context, event ChargeEvent) (bool, error) {
	billing, err := s.repo.GetMemberBillingByEmail(ctx, event.Email)
	if err != nil {
		return false, err
	}

	// Продление всегда стартует от момента оплаты, остаток старого
	// срока не переносится
	newExpiry := s.now().AddDate(0, 0, billing.PlanDurationDays)

	applied, err := s.repo.ReconcilePayment(ctx, billing, event.Reference, event.Amount, newExpiry)
	if err != nil {
		return false, err
	}
	if !applied {
		metrics.PaymentsDuplicateTotal.Inc()
		s.log.Info("duplicate payment delivery ignored",
			slog.String("reference", event.Reference))
		return false, nil
	}

	metrics.PaymentsReconciledTotal.Inc()
	s.log.Info("payment reconciled",
		slog.String("reference", event.Reference),
		slog.String("member_id", billing.MemberID),
		slog.Float64("amount", event.Amount))

	notification := models.Notification{
		Type:   models.NotificationPayment,
		Email:  event.Email,
		Amount: event.Amount,
	}
	if err := s.publisher.Publish(models.NotificationPayment, notification); err != nil {
		s.log.Warn("failed to publish payment notification", sl.Err(err))
	}

	return true, nil
}

// ListByManager возвращает платежи участников менеджера.
func (s *PaymentService) ListByManager(ctx context.Context, managerID string, limit, offset int) ([]*models.Payment, error) {
	return s.repo.ListPaymentsByManager(ctx, managerID, limit, offset)
}
