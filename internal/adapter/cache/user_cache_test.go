package cache

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"

	domain "user-directory-service/internal/domain/user"
)

// setupTestRedis creates a miniredis instance and a Redis client for testing
func setupTestRedis(t *testing.T) (*miniredis.Miniredis, *redis.Client) {
	mr := miniredis.RunT(t)

	client := redis.NewClient(&redis.Options{
		Addr: mr.Addr(),
	})

	t.Cleanup(func() {
		_ = client.Close()
	})

	return mr, client
}

func TestRedisUserCache_SetAndGet(t *testing.T) {
	_, client := setupTestRedis(t)
	c := NewRedisUserCache(client, 5*time.Minute, zaptest.NewLogger(t))
	ctx := context.Background()

	stored := &domain.User{ID: 7, Name: "acme-supplies", UserType: domain.TypeSupplier, PasswordHash: "digest"}
	require.NoError(t, c.Set(ctx, stored))

	got, err := c.Get(ctx, 7)
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, stored, got)
}

func TestRedisUserCache_MissReturnsNilNil(t *testing.T) {
	_, client := setupTestRedis(t)
	c := NewRedisUserCache(client, 5*time.Minute, zaptest.NewLogger(t))

	got, err := c.Get(context.Background(), 404)
	require.NoError(t, err)
	assert.Nil(t, got)
}

func TestRedisUserCache_SetNilUser(t *testing.T) {
	_, client := setupTestRedis(t)
	c := NewRedisUserCache(client, 5*time.Minute, zaptest.NewLogger(t))

	err := c.Set(context.Background(), nil)
	require.Error(t, err)
}

func TestRedisUserCache_Delete(t *testing.T) {
	_, client := setupTestRedis(t)
	c := NewRedisUserCache(client, 5*time.Minute, zaptest.NewLogger(t))
	ctx := context.Background()

	stored := &domain.User{ID: 7, Name: "acme-supplies", UserType: domain.TypeSupplier, PasswordHash: "digest"}
	require.NoError(t, c.Set(ctx, stored))
	require.NoError(t, c.Delete(ctx, 7))

	got, err := c.Get(ctx, 7)
	require.NoError(t, err)
	assert.Nil(t, got)
}

func TestRedisUserCache_DeleteMissingKeyIsNotAnError(t *testing.T) {
	_, client := setupTestRedis(t)
	c := NewRedisUserCache(client, 5*time.Minute, zaptest.NewLogger(t))

	assert.NoError(t, c.Delete(context.Background(), 404))
}

func TestRedisUserCache_EntryExpires(t *testing.T) {
	mr, client := setupTestRedis(t)
	c := NewRedisUserCache(client, time.Minute, zaptest.NewLogger(t))
	ctx := context.Background()

	stored := &domain.User{ID: 7, Name: "acme-supplies", UserType: domain.TypeSupplier, PasswordHash: "digest"}
	require.NoError(t, c.Set(ctx, stored))

	mr.FastForward(2 * time.Minute)

	got, err := c.Get(ctx, 7)
	require.NoError(t, err)
	assert.Nil(t, got)
}
