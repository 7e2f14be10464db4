package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/gymflowhq/gymflow/internal/lib/sl"
	"github.com/gymflowhq/gymflow/internal/metrics"
	"github.com/gymflowhq/gymflow/internal/models"
	"github.com/gymflowhq/gymflow/internal/paystack"
)

// ErrGatewayInit платёжный шлюз не инициализировал транзакцию.
var ErrGatewayInit = errors.New("payment gateway initialize failed")

type MemberRepository interface {
	RegisterMember(ctx context.Context, member models.Member, sub models.Subscription) (string, error)
	ListMemberSummaries(ctx context.Context, managerID string, limit int) ([]*models.MemberSummary, error)
	ListMemberEmails(ctx context.Context, managerID string) ([]string, error)
	CountActiveMembers(ctx context.Context) (int, error)
}

type PaymentGateway interface {
	InitializeTransaction(email string, amount float64, metadata map[string]string) (*paystack.InitializeResponse, error)
}

// NotificationPublisher публикует уведомления в очередь. Отправка
// fire-and-forget: ошибки публикации не должны ронять бизнес-операцию.
type NotificationPublisher interface {
	Publish(routingKey string, message any) error
}

// PaymentLink платёжная ссылка, выданная шлюзом.
type PaymentLink struct {
	AuthorizationURL string `json:"authorization_url"`
	Reference        string `json:"reference"`
}

// DashboardSummary сводка дашборда менеджера.
type DashboardSummary struct {
	Members      []*models.MemberSummary `json:"members"`
	TotalRevenue float64                 `json:"total_revenue"`
}

// MemberService реализует жизненный цикл участника: регистрацию с плановой
// подпиской, списки для дашборда, платёжные ссылки и рассылку объявлений.
type MemberService struct {
	repo      MemberRepository
	payments  PaymentLedger
	plans     PlanRepository
	gateway   PaymentGateway
	publisher NotificationPublisher
	log       *slog.Logger
	now       func() time.Time
}

// PaymentLedger читающая часть леджера платежей для сводок.
type PaymentLedger interface {
	SumPaymentsByManager(ctx context.Context, managerID string) (float64, error)
}

func NewMemberService(repo MemberRepository, payments PaymentLedger, plans PlanRepository,
	gateway PaymentGateway, publisher NotificationPublisher, log *slog.Logger) *MemberService {
	return &MemberService{
		repo:      repo,
		payments:  payments,
		plans:     plans,
		gateway:   gateway,
		publisher: publisher,
		log:       log,
		now:       time.Now,
	}
}

// Register создаёт участника с подпиской на выбранный план и возвращает
// ID нового участника. Дата окончания считается в календарных днях от
// текущего момента. Приветственное письмо ставится в очередь, сбой
// публикации регистрацию не отменяет.
func (s *MemberService) Register(ctx context.Context, managerID string, req models.DummyMember) (string, error) {
	plan, err := s.plans.GetPlan(ctx, req.PlanID)
	if err != nil {
		return "", err
	}

	expiry := s.now().AddDate(0, 0, plan.DurationDays)
	member := models.Member{
		FullName:  req.FullName,
		Email:     req.Email,
		Phone:     req.Phone,
		ManagerID: managerID,
		Status:    models.MemberStatusActive,
	}
	sub := models.Subscription{
		PlanID:     plan.ID,
		ExpiryDate: expiry,
		Status:     models.SubscriptionStatusActive,
	}

	memberID, err := s.repo.RegisterMember(ctx, member, sub)
	if err != nil {
		return "", err
	}
	metrics.MembersRegisteredTotal.Inc()
	s.log.Info("registered new member",
		slog.String("member_id", memberID),
		slog.String("plan", plan.Name))

	notification := models.Notification{
		Type:     models.NotificationWelcome,
		Email:    req.Email,
		FullName: req.FullName,
	}
	if err := s.publisher.Publish(models.NotificationWelcome, notification); err != nil {
		s.log.Warn("failed to publish welcome notification", sl.Err(err))
	}

	return memberID, nil
}

// RenewalLink запрашивает у шлюза платёжную ссылку для продления абонемента.
func (s *MemberService) RenewalLink(ctx context.Context, memberID string, req models.DummyPaymentLink) (*PaymentLink, error) {
	_ = ctx

	resp, err := s.gateway.InitializeTransaction(req.Email, req.Amount,
		map[string]string{"member_id": memberID})
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrGatewayInit, err)
	}
	return &PaymentLink{
		AuthorizationURL: resp.Data.AuthorizationURL,
		Reference:        resp.Data.Reference,
	}, nil
}

// List возвращает участников менеджера со сведениями о текущем плане.
func (s *MemberService) List(ctx context.Context, managerID string, limit int) ([]*models.MemberSummary, error) {
	return s.repo.ListMemberSummaries(ctx, managerID, limit)
}

// Dashboard возвращает сводку менеджера: свежие участники и суммарная выручка.
func (s *MemberService) Dashboard(ctx context.Context, managerID string) (*DashboardSummary, error) {
	members, err := s.repo.ListMemberSummaries(ctx, managerID, 10)
	if err != nil {
		return nil, err
	}
	total, err := s.payments.SumPaymentsByManager(ctx, managerID)
	if err != nil {
		return nil, err
	}
	return &DashboardSummary{
		Members:      members,
		TotalRevenue: total,
	}, nil
}

// Broadcast ставит в очередь по одному объявлению на каждого участника
// в области видимости вызывающего: админ рассылает всем, менеджер — своим.
// Возвращает число поставленных в очередь сообщений.
func (s *MemberService) Broadcast(ctx context.Context, managerID string, req models.DummyBroadcast) (int, error) {
	emails, err := s.repo.ListMemberEmails(ctx, managerID)
	if err != nil {
		return 0, err
	}

	queued := 0
	for _, email := range emails {
		notification := models.Notification{
			Type:    models.NotificationBroadcast,
			Email:   email,
			Subject: req.Subject,
			Message: req.Message,
		}
		if err := s.publisher.Publish(models.NotificationBroadcast, notification); err != nil {
			s.log.Warn("failed to publish broadcast notification",
				slog.String("email", email), sl.Err(err))
			continue
		}
		queued++
	}
	s.log.Info("queued broadcast", slog.Int("queued", queued), slog.Int("recipients", len(emails)))
	return queued, nil
}
