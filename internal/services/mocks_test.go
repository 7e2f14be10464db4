package services

import (
	"context"
	"io"
	"log/slog"
	"time"

	"github.com/stretchr/testify/mock"

	"github.com/gymflowhq/gymflow/internal/identity"
	"github.com/gymflowhq/gymflow/internal/lib/smtp"
	"github.com/gymflowhq/gymflow/internal/models"
	"github.com/gymflowhq/gymflow/internal/paystack"
)

type RepoMock struct{ mock.Mock }

func (m *RepoMock) RegisterMember(ctx context.Context, member models.Member, sub models.Subscription) (string, error) {
	args := m.Called(ctx, member, sub)
	return args.String(0), args.Error(1)
}

func (m *RepoMock) ListMemberSummaries(ctx context.Context, managerID string, limit int) ([]*models.MemberSummary, error) {
	args := m.Called(ctx, managerID, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*models.MemberSummary), args.Error(1)
}

func (m *RepoMock) ListMemberEmails(ctx context.Context, managerID string) ([]string, error) {
	args := m.Called(ctx, managerID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]string), args.Error(1)
}

func (m *RepoMock) CountActiveMembers(ctx context.Context) (int, error) {
	args := m.Called(ctx)
	return args.Int(0), args.Error(1)
}

func (m *RepoMock) CountMembersByManager(ctx context.Context) (map[string]int, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(map[string]int), args.Error(1)
}

func (m *RepoMock) ListPlans(ctx context.Context) ([]*models.Plan, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*models.Plan), args.Error(1)
}

func (m *RepoMock) GetPlan(ctx context.Context, id string) (*models.Plan, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Plan), args.Error(1)
}

func (m *RepoMock) GetMemberBillingByEmail(ctx context.Context, email string) (*models.MemberBilling, error) {
	args := m.Called(ctx, email)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.MemberBilling), args.Error(1)
}

func (m *RepoMock) ReconcilePayment(ctx context.Context, billing *models.MemberBilling,
	reference string, amount float64, newExpiry time.Time) (bool, error) {
	args := m.Called(ctx, billing, reference, amount, newExpiry)
	return args.Bool(0), args.Error(1)
}

func (m *RepoMock) ListPaymentsByManager(ctx context.Context, managerID string, limit, offset int) ([]*models.Payment, error) {
	args := m.Called(ctx, managerID, limit, offset)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*models.Payment), args.Error(1)
}

func (m *RepoMock) ListSuccessfulPayments(ctx context.Context) ([]*models.Payment, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*models.Payment), args.Error(1)
}

func (m *RepoMock) SumPaymentsByManager(ctx context.Context, managerID string) (float64, error) {
	args := m.Called(ctx, managerID)
	return args.Get(0).(float64), args.Error(1)
}

func (m *RepoMock) GetProfile(ctx context.Context, id string) (*models.Profile, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Profile), args.Error(1)
}

func (m *RepoMock) GetProfileByEmail(ctx context.Context, email string) (*models.Profile, error) {
	args := m.Called(ctx, email)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Profile), args.Error(1)
}

func (m *RepoMock) UpsertProfile(ctx context.Context, profile models.Profile) error {
	return m.Called(ctx, profile).Error(0)
}

func (m *RepoMock) DeleteProfile(ctx context.Context, id string) error {
	return m.Called(ctx, id).Error(0)
}

type CacheMock struct{ mock.Mock }

func (m *CacheMock) Get(key string, result any) (bool, error) {
	args := m.Called(key, result)
	return args.Bool(0), args.Error(1)
}

func (m *CacheMock) Set(key string, value any, expiration time.Duration) error {
	return m.Called(key, value, expiration).Error(0)
}

func (m *CacheMock) Invalidate(key string) error {
	return m.Called(key).Error(0)
}

type PublisherMock struct{ mock.Mock }

func (m *PublisherMock) Publish(routingKey string, message any) error {
	return m.Called(routingKey, message).Error(0)
}

type GatewayMock struct{ mock.Mock }

func (m *GatewayMock) InitializeTransaction(email string, amount float64, metadata map[string]string) (*paystack.InitializeResponse, error) {
	args := m.Called(email, amount, metadata)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*paystack.InitializeResponse), args.Error(1)
}

type IdentityMock struct{ mock.Mock }

func (m *IdentityMock) ListUsers(ctx context.Context) ([]*identity.User, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*identity.User), args.Error(1)
}

func (m *IdentityMock) CreateUser(ctx context.Context, req identity.CreateUserRequest) (*identity.User, error) {
	args := m.Called(ctx, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*identity.User), args.Error(1)
}

func (m *IdentityMock) UpdateUser(ctx context.Context, id string, req identity.UpdateUserRequest) (*identity.User, error) {
	args := m.Called(ctx, id, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*identity.User), args.Error(1)
}

func (m *IdentityMock) DeleteUser(ctx context.Context, id string) error {
	return m.Called(ctx, id).Error(0)
}

type MockTransport struct{ mock.Mock }

func (m *MockTransport) Connect() (smtp.Client, error) {
	args := m.Called()
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(smtp.Client), args.Error(1)
}

func (m *MockTransport) GetSMTPUser() string {
	args := m.Called()
	return args.String(0)
}

type MockSMTPClient struct{ mock.Mock }

func (m *MockSMTPClient) Mail(from string) error {
	return m.Called(from).Error(0)
}

func (m *MockSMTPClient) Rcpt(to string) error {
	return m.Called(to).Error(0)
}

func (m *MockSMTPClient) Data() (io.WriteCloser, error) {
	args := m.Called()
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(io.WriteCloser), args.Error(1)
}

func (m *MockSMTPClient) Quit() error {
	return m.Called().Error(0)
}

func (m *MockSMTPClient) Close() error {
	return m.Called().Error(0)
}

type nopWriteCloser struct{ io.Writer }

func (nopWriteCloser) Close() error { return nil }

func NewNoopLogger() *slog.Logger {
	h := slog.NewTextHandler(io.Discard, &slog.HandlerOptions{})
	return slog.New(h)
}
