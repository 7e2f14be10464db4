package services

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/gymflowhq/gymflow/internal/models"
	"github.com/gymflowhq/gymflow/internal/storage/repository"
)

func TestPayment_Reconcile(t *testing.T) {
	now := time.Date(2026, 8, 30, 14, 0, 0, 0, time.UTC)
	billing := &models.MemberBilling{
		MemberID:         "member-1",
		SubscriptionID:   "sub-1",
		PlanDurationDays: 30,
	}
	event := ChargeEvent{Reference: "ref_abc", Email: "john@example.com", Amount: 15000}

	tests := []struct {
		name        string
		setupMocks  func(repo *RepoMock, publisher *PublisherMock)
		wantApplied bool
		wantErr     error
	}{
		{
			name: "applies payment and publishes confirmation",
			setupMocks: func(repo *RepoMock, publisher *PublisherMock) {
				repo.On("GetMemberBillingByEmail", mock.Anything, "john@example.com").Return(billing, nil)
				// Срок считается от момента оплаты, не от старого expiry
				repo.On("ReconcilePayment", mock.Anything, billing, "ref_abc", 15000.0,
					now.AddDate(0, 0, 30)).Return(true, nil)
				publisher.On("Publish", models.NotificationPayment, mock.Anything).Return(nil)
			},
			wantApplied: true,
		},
		{
			name: "replayed delivery is a success no-op",
			setupMocks: func(repo *RepoMock, publisher *PublisherMock) {
				repo.On("GetMemberBillingByEmail", mock.Anything, "john@example.com").Return(billing, nil)
				repo.On("ReconcilePayment", mock.Anything, billing, "ref_abc", 15000.0,
					mock.Anything).Return(false, nil)
			},
			wantApplied: false,
		},
		{
			name: "unknown member",
			setupMocks: func(repo *RepoMock, _ *PublisherMock) {
				repo.On("GetMemberBillingByEmail", mock.Anything, "john@example.com").
					Return(nil, repository.ErrMemberNotFound)
			},
			wantErr: repository.ErrMemberNotFound,
		},
		{
			name: "member without subscription",
			setupMocks: func(repo *RepoMock, _ *PublisherMock) {
				repo.On("GetMemberBillingByEmail", mock.Anything, "john@example.com").
					Return(nil, repository.ErrNoSubscription)
			},
			wantErr: repository.ErrNoSubscription,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			repo := new(RepoMock)
			publisher := new(PublisherMock)
			tt.setupMocks(repo, publisher)

			svc := NewPaymentService(repo, publisher, NewNoopLogger())
			svc.now = func() time.Time { return now }

			applied, err := svc.Reconcile(context.Background(), event)

			if tt.wantErr != nil {
				require.ErrorIs(t, err, tt.wantErr)
				repo.AssertNotCalled(t, "ReconcilePayment",
					mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.wantApplied, applied)
			if !tt.wantApplied {
				// Повтор не шлёт повторное письмо об оплате
				publisher.AssertNotCalled(t, "Publish", models.NotificationPayment, mock.Anything)
			}
		})
	}
}
