package handler

import (
	"context"
	"encoding/json"
	"net/http"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"

	domain "user-directory-service/internal/domain/user"
	"user-directory-service/internal/usecase/auth"
	"user-directory-service/pkg/hash"
	"user-directory-service/pkg/token"
)

// MockUserRepo backs the auth usecase in handler tests, since the handler
// takes the concrete usecase rather than an interface
type MockUserRepo struct {
	mock.Mock
}

func (m *MockUserRepo) FindByID(ctx context.Context, id int64) (*domain.User, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.User), args.Error(1)
}

func (m *MockUserRepo) FindByName(ctx context.Context, name string) (*domain.User, error) {
	args := m.Called(ctx, name)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.User), args.Error(1)
}

func (m *MockUserRepo) FindMany(ctx context.Context, q domain.ListQuery) ([]domain.User, error) {
	args := m.Called(ctx, q)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.User), args.Error(1)
}

func (m *MockUserRepo) Insert(ctx context.Context, u *domain.User) (*domain.User, error) {
	args := m.Called(ctx, u)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.User), args.Error(1)
}

func (m *MockUserRepo) Replace(ctx context.Context, u *domain.User) (*domain.User, error) {
	args := m.Called(ctx, u)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.User), args.Error(1)
}

func (m *MockUserRepo) Remove(ctx context.Context, id int64) (*domain.User, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.User), args.Error(1)
}

func setupAuthTest(t *testing.T) (*gin.Engine, *MockUserRepo, hash.Hasher, *token.Issuer) {
	gin.SetMode(gin.TestMode)

	mockRepo := new(MockUserRepo)
	hasher := hash.NewBcryptHasher(4)
	issuer := token.NewIssuer("test-secret", "user-directory-service", 15*time.Minute)
	logger := zaptest.NewLogger(t)

	uc := auth.New(mockRepo, hasher, issuer, logger)
	h := NewAuthHandler(uc, logger)

	router := gin.New()
	router.POST("/v1/auth/login", h.Login)

	return router, mockRepo, hasher, issuer
}

func TestLogin(t *testing.T) {
	t.Run("valid credentials return a parsable token", func(t *testing.T) {
		router, mockRepo, hasher, issuer := setupAuthTest(t)

		digest, err := hasher.Hash("s3cret")
		require.NoError(t, err)
		mockRepo.On("FindByName", mock.Anything, "acme-supplies").
			Return(&domain.User{ID: 7, Name: "acme-supplies", UserType: domain.TypeSupplier, PasswordHash: digest}, nil)

		w := performRequest(router, http.MethodPost, "/v1/auth/login", gin.H{
			"name":     "acme-supplies",
			"password": "s3cret",
		})

		assert.Equal(t, http.StatusOK, w.Code)

		var resp LoginResponse
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
		require.NotEmpty(t, resp.AccessToken)

		userID, err := issuer.Parse(resp.AccessToken)
		require.NoError(t, err)
		assert.Equal(t, int64(7), userID)
	})

	t.Run("wrong password returns 401", func(t *testing.T) {
		router, mockRepo, hasher, _ := setupAuthTest(t)

		digest, err := hasher.Hash("s3cret")
		require.NoError(t, err)
		mockRepo.On("FindByName", mock.Anything, "acme-supplies").
			Return(&domain.User{ID: 7, Name: "acme-supplies", PasswordHash: digest}, nil)

		w := performRequest(router, http.MethodPost, "/v1/auth/login", gin.H{
			"name":     "acme-supplies",
			"password": "wrong",
		})

		assert.Equal(t, http.StatusUnauthorized, w.Code)

		var resp ErrorResponse
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
		assert.Equal(t, "unauthenticated", resp.Error)
	})

	t.Run("unknown account returns the same 401 body as a wrong password", func(t *testing.T) {
		router, mockRepo, _, _ := setupAuthTest(t)

		mockRepo.On("FindByName", mock.Anything, "nobody").Return(nil, nil)

		w := performRequest(router, http.MethodPost, "/v1/auth/login", gin.H{
			"name":     "nobody",
			"password": "s3cret",
		})

		assert.Equal(t, http.StatusUnauthorized, w.Code)
		assert.Contains(t, w.Body.String(), "invalid credentials")
	})

	t.Run("missing fields return 400", func(t *testing.T) {
		router, mockRepo, _, _ := setupAuthTest(t)

		w := performRequest(router, http.MethodPost, "/v1/auth/login", gin.H{
			"name": "acme-supplies",
		})

		assert.Equal(t, http.StatusBadRequest, w.Code)
		mockRepo.AssertNotCalled(t, "FindByName", mock.Anything, mock.Anything)
	})
}
