package service

import (
	"context"
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/primetrade/task-api/internal/model"
	"github.com/primetrade/task-api/internal/repo"
	"github.com/primetrade/task-api/internal/token"
)

// MockUserRepository - мок репозитория учетных записей
type MockUserRepository struct {
	mock.Mock
}

func (m *MockUserRepository) Create(ctx context.Context, a model.Account) (model.Account, error) {
	args := m.Called(ctx, a)
	return args.Get(0).(model.Account), args.Error(1)
}

func (m *MockUserRepository) GetByEmail(ctx context.Context, email string) (model.Account, error) {
	args := m.Called(ctx, email)
	return args.Get(0).(model.Account), args.Error(1)
}

func (m *MockUserRepository) GetByID(ctx context.Context, id string) (model.Account, error) {
	args := m.Called(ctx, id)
	return args.Get(0).(model.Account), args.Error(1)
}

func newTestTokens() *token.Manager {
	return token.NewManager("test-secret", time.Hour)
}

func TestAuthService_Register(t *testing.T) {
	tests := []struct {
		name      string
		req       model.RegisterRequest
		setupMock func(*MockUserRepository)
		wantErr   error
		wantMsg   string
	}{
		{
			name: "successful registration",
			req:  model.RegisterRequest{Name: "Alice", Email: "Alice@X.com", Password: "secret1"},
			setupMock: func(m *MockUserRepository) {
				m.On("Create", mock.Anything, mock.MatchedBy(func(a model.Account) bool {
					// Email приводится к нижнему регистру, роль всегда user,
					// пароль уже захэширован
					return a.Email == "alice@x.com" &&
						a.Role == model.RoleUser &&
						a.PasswordHash != "" &&
						a.PasswordHash != "secret1"
				})).Return(model.Account{
					ID:           "u-1",
					Name:         "Alice",
					Email:        "alice@x.com",
					PasswordHash: "hashed",
					Role:         model.RoleUser,
				}, nil)
			},
		},
		{
			name:    "name too short",
			req:     model.RegisterRequest{Name: "A", Email: "alice@x.com", Password: "secret1"},
			wantErr: ErrValidation,
			wantMsg: "Name must be at least 2 characters long",
		},
		{
			name:    "invalid email",
			req:     model.RegisterRequest{Name: "Alice", Email: "not-an-email", Password: "secret1"},
			wantErr: ErrValidation,
			wantMsg: "Valid email is required",
		},
		{
			name:    "password too short",
			req:     model.RegisterRequest{Name: "Alice", Email: "alice@x.com", Password: "123"},
			wantErr: ErrValidation,
			wantMsg: "Password must be at least 6 characters long",
		},
		{
			name: "duplicate email",
			req:  model.RegisterRequest{Name: "Alice", Email: "alice@x.com", Password: "secret1"},
			setupMock: func(m *MockUserRepository) {
				m.On("Create", mock.Anything, mock.Anything).Return(model.Account{}, repo.ErrorConflict)
			},
			wantErr: ErrConflict,
			wantMsg: "User already exists",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mockRepo := new(MockUserRepository)
			if tt.setupMock != nil {
				tt.setupMock(mockRepo)
			}

			svc := NewAuthService(mockRepo, newTestTokens())
			acc, tok, err := svc.Register(context.Background(), tt.req)

			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				assert.Equal(t, tt.wantMsg, err.Error())
			} else {
				require.NoError(t, err)
				assert.NotEmpty(t, tok)
				assert.Equal(t, "u-1", acc.ID)
			}

			mockRepo.AssertExpectations(t)
		})
	}
}

func TestAuthService_Register_NoHashInResponse(t *testing.T) {
	mockRepo := new(MockUserRepository)
	mockRepo.On("Create", mock.Anything, mock.Anything).Return(model.Account{
		ID:           "u-1",
		Name:         "Alice",
		Email:        "alice@x.com",
		PasswordHash: "super-secret-hash",
		Role:         model.RoleUser,
	}, nil)

	svc := NewAuthService(mockRepo, newTestTokens())
	acc, _, err := svc.Register(context.Background(), model.RegisterRequest{
		Name: "Alice", Email: "alice@x.com", Password: "secret1",
	})
	require.NoError(t, err)

	// Хэш пароля не должен просочиться в сериализованный ответ
	raw, err := json.Marshal(acc)
	require.NoError(t, err)
	assert.NotContains(t, string(raw), "super-secret-hash")
	assert.NotContains(t, string(raw), "password")
}

func TestAuthService_Login(t *testing.T) {
	hash, err := bcrypt.GenerateFromPassword([]byte("correct1"), bcrypt.DefaultCost)
	require.NoError(t, err)

	stored := model.Account{
		ID:           "u-1",
		Name:         "Alice",
		Email:        "alice@x.com",
		PasswordHash: string(hash),
		Role:         model.RoleUser,
	}

	t.Run("successful login", func(t *testing.T) {
		mockRepo := new(MockUserRepository)
		mockRepo.On("GetByEmail", mock.Anything, "alice@x.com").Return(stored, nil)

		svc := NewAuthService(mockRepo, newTestTokens())
		acc, tok, err := svc.Login(context.Background(), model.LoginRequest{
			Email: "alice@x.com", Password: "correct1",
		})

		require.NoError(t, err)
		assert.NotEmpty(t, tok)
		assert.Equal(t, "u-1", acc.ID)
	})

	t.Run("identical message for unknown email and wrong password", func(t *testing.T) {
		unknownRepo := new(MockUserRepository)
		unknownRepo.On("GetByEmail", mock.Anything, "ghost@x.com").Return(model.Account{}, repo.ErrorNotFound)

		wrongRepo := new(MockUserRepository)
		wrongRepo.On("GetByEmail", mock.Anything, "alice@x.com").Return(stored, nil)

		_, _, errUnknown := NewAuthService(unknownRepo, newTestTokens()).Login(context.Background(),
			model.LoginRequest{Email: "ghost@x.com", Password: "correct1"})
		_, _, errWrong := NewAuthService(wrongRepo, newTestTokens()).Login(context.Background(),
			model.LoginRequest{Email: "alice@x.com", Password: "wrong99"})

		require.Error(t, errUnknown)
		require.Error(t, errWrong)
		assert.ErrorIs(t, errUnknown, ErrAuthentication)
		assert.ErrorIs(t, errWrong, ErrAuthentication)
		// Сообщения обязаны совпадать, чтобы нельзя было выяснить,
		// какой email зарегистрирован
		assert.Equal(t, errUnknown.Error(), errWrong.Error())
		assert.Equal(t, "Invalid credentials", errUnknown.Error())
	})

	t.Run("missing password", func(t *testing.T) {
		svc := NewAuthService(new(MockUserRepository), newTestTokens())
		_, _, err := svc.Login(context.Background(), model.LoginRequest{Email: "alice@x.com"})
		assert.ErrorIs(t, err, ErrValidation)
	})
}

func TestAuthService_Authenticate(t *testing.T) {
	tokens := newTestTokens()

	t.Run("role read fresh from store", func(t *testing.T) {
		tok, err := tokens.Issue("u-1")
		require.NoError(t, err)

		// На момент выпуска токена роль была user, с тех пор сменилась
		mockRepo := new(MockUserRepository)
		mockRepo.On("GetByID", mock.Anything, "u-1").Return(model.Account{
			ID:   "u-1",
			Role: model.RoleAdmin,
		}, nil)

		svc := NewAuthService(mockRepo, tokens)
		acc, err := svc.Authenticate(context.Background(), tok)

		require.NoError(t, err)
		assert.Equal(t, model.RoleAdmin, acc.Role)
	})

	t.Run("garbage token", func(t *testing.T) {
		svc := NewAuthService(new(MockUserRepository), tokens)
		_, err := svc.Authenticate(context.Background(), "not-a-token")
		assert.ErrorIs(t, err, ErrAuthentication)
	})

	t.Run("token for deleted account", func(t *testing.T) {
		tok, err := tokens.Issue("gone")
		require.NoError(t, err)

		mockRepo := new(MockUserRepository)
		mockRepo.On("GetByID", mock.Anything, "gone").Return(model.Account{}, repo.ErrorNotFound)

		svc := NewAuthService(mockRepo, tokens)
		_, err = svc.Authenticate(context.Background(), tok)
		assert.ErrorIs(t, err, ErrAuthentication)
	})
}
