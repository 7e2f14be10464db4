package services

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/gymflowhq/gymflow/internal/identity"
	"github.com/gymflowhq/gymflow/internal/models"
	"github.com/gymflowhq/gymflow/internal/storage/repository"
)

func TestManager_Create(t *testing.T) {
	owner := Principal{UserID: "owner-1", Email: "owner@example.com", Role: models.RoleAdmin}
	req := models.DummyManager{
		FullName: "New Manager",
		Email:    "manager@example.com",
		Phone:    "+2348012345678",
	}

	tests := []struct {
		name       string
		setupMocks func(repo *RepoMock, provider *IdentityMock, publisher *PublisherMock)
		wantErr    error
	}{
		{
			name: "success",
			setupMocks: func(repo *RepoMock, provider *IdentityMock, publisher *PublisherMock) {
				provider.On("ListUsers", mock.Anything).Return([]*identity.User{}, nil)
				repo.On("GetProfileByEmail", mock.Anything, "manager@example.com").
					Return(nil, repository.ErrProfileNotFound)
				repo.On("GetProfile", mock.Anything, "owner-1").
					Return(&models.Profile{ID: "owner-1", GymName: "Iron Temple"}, nil)
				provider.On("CreateUser", mock.Anything, mock.Anything).
					Return(&identity.User{ID: "mgr-1", Email: "manager@example.com"}, nil)
				provider.On("UpdateUser", mock.Anything, "mgr-1", mock.Anything).
					Return(&identity.User{ID: "mgr-1"}, nil)
				repo.On("UpsertProfile", mock.Anything, mock.Anything).Return(nil)
				publisher.On("Publish", models.NotificationInvite, mock.Anything).Return(nil)
			},
		},
		{
			name: "duplicate in identity provider",
			setupMocks: func(_ *RepoMock, provider *IdentityMock, _ *PublisherMock) {
				provider.On("ListUsers", mock.Anything).Return([]*identity.User{
					{ID: "u-1", Email: "MANAGER@example.com"}, // сравнение без учёта регистра
				}, nil)
			},
			wantErr: ErrManagerExists,
		},
		{
			name: "duplicate in profiles table",
			setupMocks: func(repo *RepoMock, provider *IdentityMock, _ *PublisherMock) {
				provider.On("ListUsers", mock.Anything).Return([]*identity.User{}, nil)
				repo.On("GetProfileByEmail", mock.Anything, "manager@example.com").
					Return(&models.Profile{ID: "stale", Email: "manager@example.com"}, nil)
			},
			wantErr: ErrProfileExists,
		},
		{
			name: "provider rejects creation",
			setupMocks: func(repo *RepoMock, provider *IdentityMock, _ *PublisherMock) {
				provider.On("ListUsers", mock.Anything).Return([]*identity.User{}, nil)
				repo.On("GetProfileByEmail", mock.Anything, "manager@example.com").
					Return(nil, repository.ErrProfileNotFound)
				repo.On("GetProfile", mock.Anything, "owner-1").
					Return(nil, repository.ErrProfileNotFound)
				provider.On("CreateUser", mock.Anything, mock.Anything).
					Return(nil, identity.ErrUserNotFound)
			},
			wantErr: ErrProviderCreate,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			repo := new(RepoMock)
			provider := new(IdentityMock)
			publisher := new(PublisherMock)
			tt.setupMocks(repo, provider, publisher)

			svc := NewManagerService(repo, provider, publisher, NewNoopLogger())
			tempPassword, err := svc.Create(context.Background(), owner, req)

			if tt.wantErr != nil {
				require.ErrorIs(t, err, tt.wantErr)
				repo.AssertNotCalled(t, "UpsertProfile", mock.Anything, mock.Anything)
				return
			}
			require.NoError(t, err)

			// Временный пароль формата "GF" + 6 символов
			require.Len(t, tempPassword, 8)
			assert.Equal(t, "GF", tempPassword[:2])

			// Фаза 1 создаёт минимальную учётку с ролью и залом
			createArg := provider.Calls[1].Arguments.Get(1).(identity.CreateUserRequest)
			assert.Equal(t, models.RoleManager, createArg.UserMetadata["role"])
			assert.Equal(t, "Iron Temple", createArg.UserMetadata["gym_name"])
			assert.Empty(t, createArg.UserMetadata["full_name"])
			assert.True(t, createArg.EmailConfirm)

			// Фаза 2 дописывает имя и телефон
			updateArg := provider.Calls[2].Arguments.Get(2).(identity.UpdateUserRequest)
			assert.Equal(t, "New Manager", updateArg.UserMetadata["full_name"])
			assert.Equal(t, "+2348012345678", updateArg.UserMetadata["phone"])

			profileArg := repo.Calls[2].Arguments.Get(1).(models.Profile)
			assert.Equal(t, models.RoleManager, profileArg.Role)
			assert.Equal(t, "mgr-1", profileArg.ID)

			publisher.AssertCalled(t, "Publish", models.NotificationInvite, mock.MatchedBy(func(n any) bool {
				msg := n.(models.Notification)
				return msg.TempPassword == tempPassword && msg.Email == "manager@example.com"
			}))
		})
	}
}

func TestManager_Create_GymNameFallbacks(t *testing.T) {
	req := models.DummyManager{FullName: "M", Email: "m@example.com", Phone: "+234"}

	t.Run("falls back to owner token", func(t *testing.T) {
		repo := new(RepoMock)
		provider := new(IdentityMock)
		publisher := new(PublisherMock)
		provider.On("ListUsers", mock.Anything).Return([]*identity.User{}, nil)
		repo.On("GetProfileByEmail", mock.Anything, mock.Anything).Return(nil, repository.ErrProfileNotFound)
		repo.On("GetProfile", mock.Anything, "owner-1").Return(nil, repository.ErrProfileNotFound)
		provider.On("CreateUser", mock.Anything, mock.Anything).Return(&identity.User{ID: "mgr-1"}, nil)
		provider.On("UpdateUser", mock.Anything, mock.Anything, mock.Anything).Return(&identity.User{ID: "mgr-1"}, nil)
		repo.On("UpsertProfile", mock.Anything, mock.Anything).Return(nil)
		publisher.On("Publish", mock.Anything, mock.Anything).Return(nil)

		svc := NewManagerService(repo, provider, publisher, NewNoopLogger())
		owner := Principal{UserID: "owner-1", GymName: "Token Gym"}
		_, err := svc.Create(context.Background(), owner, req)
		require.NoError(t, err)

		createArg := provider.Calls[1].Arguments.Get(1).(identity.CreateUserRequest)
		assert.Equal(t, "Token Gym", createArg.UserMetadata["gym_name"])
	})

	t.Run("falls back to default", func(t *testing.T) {
		repo := new(RepoMock)
		provider := new(IdentityMock)
		publisher := new(PublisherMock)
		provider.On("ListUsers", mock.Anything).Return([]*identity.User{}, nil)
		repo.On("GetProfileByEmail", mock.Anything, mock.Anything).Return(nil, repository.ErrProfileNotFound)
		repo.On("GetProfile", mock.Anything, "owner-1").Return(nil, repository.ErrProfileNotFound)
		provider.On("CreateUser", mock.Anything, mock.Anything).Return(&identity.User{ID: "mgr-1"}, nil)
		provider.On("UpdateUser", mock.Anything, mock.Anything, mock.Anything).Return(&identity.User{ID: "mgr-1"}, nil)
		repo.On("UpsertProfile", mock.Anything, mock.Anything).Return(nil)
		publisher.On("Publish", mock.Anything, mock.Anything).Return(nil)

		svc := NewManagerService(repo, provider, publisher, NewNoopLogger())
		_, err := svc.Create(context.Background(), Principal{UserID: "owner-1"}, req)
		require.NoError(t, err)

		createArg := provider.Calls[1].Arguments.Get(1).(identity.CreateUserRequest)
		assert.Equal(t, defaultGymName, createArg.UserMetadata["gym_name"])
	})
}

func TestManager_List(t *testing.T) {
	repo := new(RepoMock)
	provider := new(IdentityMock)
	lastSignIn := time.Date(2026, 8, 20, 10, 0, 0, 0, time.UTC)
	provider.On("ListUsers", mock.Anything).Return([]*identity.User{
		{ID: "mgr-1", Email: "a@example.com",
			UserMetadata: map[string]string{"role": models.RoleManager, "full_name": "Alice", "phone": "+234"},
			LastSignIn:   &lastSignIn},
		{ID: "mgr-2", Email: "b@example.com",
			UserMetadata: map[string]string{"role": models.RoleManager}},
		{ID: "owner", Email: "owner@example.com",
			UserMetadata: map[string]string{"role": models.RoleAdmin}},
	}, nil)
	repo.On("CountMembersByManager", mock.Anything).Return(map[string]int{"mgr-1": 7}, nil)

	svc := NewManagerService(repo, provider, new(PublisherMock), NewNoopLogger())
	got, err := svc.List(context.Background())
	require.NoError(t, err)
	require.Len(t, got, 2)

	assert.Equal(t, "Alice", got[0].Name)
	assert.Equal(t, 7, got[0].Conversions)
	require.NotNil(t, got[0].LastActive)

	// Без имени в метаданных показывается email
	assert.Equal(t, "b@example.com", got[1].Name)
	assert.Equal(t, 0, got[1].Conversions)
}

func TestManager_Deactivate(t *testing.T) {
	repo := new(RepoMock)
	provider := new(IdentityMock)
	provider.On("DeleteUser", mock.Anything, "mgr-1").Return(nil)
	repo.On("DeleteProfile", mock.Anything, "mgr-1").Return(nil)

	svc := NewManagerService(repo, provider, new(PublisherMock), NewNoopLogger())
	require.NoError(t, svc.Deactivate(context.Background(), "mgr-1"))
	repo.AssertCalled(t, "DeleteProfile", mock.Anything, "mgr-1")
}

func TestManager_Update(t *testing.T) {
	repo := new(RepoMock)
	provider := new(IdentityMock)
	provider.On("UpdateUser", mock.Anything, "mgr-1", mock.Anything).Return(&identity.User{ID: "mgr-1"}, nil)

	svc := NewManagerService(repo, provider, new(PublisherMock), NewNoopLogger())
	err := svc.Update(context.Background(), "mgr-1", models.DummyManagerUpdate{
		FullName: "Renamed", Phone: "+235",
	})
	require.NoError(t, err)

	updateArg := provider.Calls[0].Arguments.Get(2).(identity.UpdateUserRequest)
	assert.Equal(t, "Renamed", updateArg.UserMetadata["full_name"])
	// Профильная таблица не затрагивается
	repo.AssertNotCalled(t, "UpsertProfile", mock.Anything, mock.Anything)
}
