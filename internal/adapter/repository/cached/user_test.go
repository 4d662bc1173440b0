package cached

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"

	"user-directory-service/internal/adapter/cache"
	domain "user-directory-service/internal/domain/user"
	apperrors "user-directory-service/pkg/errors"
)

// MockDBRepository is a mock of the persistent repository behind the cache
type MockDBRepository struct {
	mock.Mock
}

func (m *MockDBRepository) FindByID(ctx context.Context, id int64) (*domain.User, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.User), args.Error(1)
}

func (m *MockDBRepository) FindByName(ctx context.Context, name string) (*domain.User, error) {
	args := m.Called(ctx, name)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.User), args.Error(1)
}

func (m *MockDBRepository) FindMany(ctx context.Context, q domain.ListQuery) ([]domain.User, error) {
	args := m.Called(ctx, q)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.User), args.Error(1)
}

func (m *MockDBRepository) Insert(ctx context.Context, u *domain.User) (*domain.User, error) {
	args := m.Called(ctx, u)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.User), args.Error(1)
}

func (m *MockDBRepository) Replace(ctx context.Context, u *domain.User) (*domain.User, error) {
	args := m.Called(ctx, u)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.User), args.Error(1)
}

func (m *MockDBRepository) Remove(ctx context.Context, id int64) (*domain.User, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.User), args.Error(1)
}

func setupCachedRepo(t *testing.T) (*CachedUserRepository, *MockDBRepository) {
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = client.Close() })

	logger := zaptest.NewLogger(t)
	userCache := cache.NewRedisUserCache(client, 5*time.Minute, logger)
	mockDB := new(MockDBRepository)

	repo := NewCachedUserRepository(mockDB, userCache, logger).(*CachedUserRepository)
	return repo, mockDB
}

func TestFindByID_PopulatesCacheOnMiss(t *testing.T) {
	repo, mockDB := setupCachedRepo(t)
	ctx := context.Background()

	stored := &domain.User{ID: 7, Name: "acme-supplies", UserType: domain.TypeSupplier, PasswordHash: "digest"}
	// The database is hit exactly once; the second read is served from cache
	mockDB.On("FindByID", ctx, int64(7)).Return(stored, nil).Once()

	first, err := repo.FindByID(ctx, 7)
	require.NoError(t, err)
	assert.Equal(t, stored, first)

	second, err := repo.FindByID(ctx, 7)
	require.NoError(t, err)
	assert.Equal(t, stored, second)

	mockDB.AssertExpectations(t)
}

func TestFindByID_ErrorIsNotCached(t *testing.T) {
	repo, mockDB := setupCachedRepo(t)
	ctx := context.Background()

	notFound := apperrors.NewNotFoundError("user", "user not found: id=404")
	mockDB.On("FindByID", ctx, int64(404)).Return(nil, notFound).Twice()

	_, err := repo.FindByID(ctx, 404)
	require.Error(t, err)
	_, err = repo.FindByID(ctx, 404)
	require.Error(t, err)

	mockDB.AssertExpectations(t)
}

func TestReplace_InvalidatesCache(t *testing.T) {
	repo, mockDB := setupCachedRepo(t)
	ctx := context.Background()

	original := &domain.User{ID: 7, Name: "acme-supplies", UserType: domain.TypeSupplier, PasswordHash: "digest"}
	updated := &domain.User{ID: 7, Name: "acme-retail", UserType: domain.TypeRetailer, PasswordHash: "digest"}

	mockDB.On("FindByID", ctx, int64(7)).Return(original, nil).Once()
	mockDB.On("Replace", ctx, updated).Return(updated, nil).Once()

	// Warm the cache, update, then read again: the stale entry must be gone
	_, err := repo.FindByID(ctx, 7)
	require.NoError(t, err)

	_, err = repo.Replace(ctx, updated)
	require.NoError(t, err)

	mockDB.On("FindByID", ctx, int64(7)).Return(updated, nil).Once()
	got, err := repo.FindByID(ctx, 7)
	require.NoError(t, err)
	assert.Equal(t, "acme-retail", got.Name)

	mockDB.AssertExpectations(t)
}

func TestRemove_InvalidatesCache(t *testing.T) {
	repo, mockDB := setupCachedRepo(t)
	ctx := context.Background()

	stored := &domain.User{ID: 7, Name: "acme-supplies", UserType: domain.TypeSupplier, PasswordHash: "digest"}
	notFound := apperrors.NewNotFoundError("user", "user not found: id=7")

	mockDB.On("FindByID", ctx, int64(7)).Return(stored, nil).Once()
	mockDB.On("Remove", ctx, int64(7)).Return(stored, nil).Once()

	_, err := repo.FindByID(ctx, 7)
	require.NoError(t, err)

	removed, err := repo.Remove(ctx, 7)
	require.NoError(t, err)
	assert.Equal(t, stored, removed)

	mockDB.On("FindByID", ctx, int64(7)).Return(nil, notFound).Once()
	_, err = repo.FindByID(ctx, 7)
	require.Error(t, err)
	assert.True(t, apperrors.IsNotFound(err))

	mockDB.AssertExpectations(t)
}

func TestFindByName_AlwaysReadsThrough(t *testing.T) {
	repo, mockDB := setupCachedRepo(t)
	ctx := context.Background()

	stored := &domain.User{ID: 7, Name: "acme-supplies", UserType: domain.TypeSupplier, PasswordHash: "digest"}
	mockDB.On("FindByName", ctx, "acme-supplies").Return(stored, nil).Twice()

	for i := 0; i < 2; i++ {
		got, err := repo.FindByName(ctx, "acme-supplies")
		require.NoError(t, err)
		assert.Equal(t, stored, got)
	}

	mockDB.AssertExpectations(t)
}

func TestNilCacheFallsBackToDatabase(t *testing.T) {
	mockDB := new(MockDBRepository)
	repo := NewCachedUserRepository(mockDB, nil, zaptest.NewLogger(t))
	ctx := context.Background()

	stored := &domain.User{ID: 7, Name: "acme-supplies", UserType: domain.TypeSupplier, PasswordHash: "digest"}
	mockDB.On("FindByID", ctx, int64(7)).Return(stored, nil).Once()

	got, err := repo.FindByID(ctx, 7)
	require.NoError(t, err)
	assert.Equal(t, stored, got)

	mockDB.AssertExpectations(t)
}
