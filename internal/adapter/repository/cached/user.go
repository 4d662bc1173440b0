package cached

import (
	"context"
	"fmt"

	"go.uber.org/zap"
	"golang.org/x/sync/singleflight"

	"user-directory-service/internal/adapter/cache"
	domain "user-directory-service/internal/domain/user"
	"user-directory-service/internal/usecase/user"
)

// CachedUserRepository implements user.Repository with caching support.
// It wraps a persistent repository (DB) and a cache implementation. Only
// by-ID lookups are cached; name lookups and listings always hit the store
// because they back uniqueness checks and must observe current state.
type CachedUserRepository struct {
	dbRepo user.Repository
	cache  cache.UserCache
	log    *zap.Logger
	group  singleflight.Group
}

// NewCachedUserRepository creates a new instance of CachedUserRepository.
func NewCachedUserRepository(dbRepo user.Repository, cache cache.UserCache, log *zap.Logger) user.Repository {
	return &CachedUserRepository{
		dbRepo: dbRepo,
		cache:  cache,
		log:    log,
	}
}

// Insert delegates to the DB repository.
func (r *CachedUserRepository) Insert(ctx context.Context, u *domain.User) (*domain.User, error) {
	return r.dbRepo.Insert(ctx, u)
}

// FindByID retrieves a user by ID using the cache-aside pattern.
func (r *CachedUserRepository) FindByID(ctx context.Context, id int64) (*domain.User, error) {
	// Try to get from cache first
	if r.cache != nil {
		cachedUser, err := r.cache.Get(ctx, id)
		if err != nil {
			r.log.Warn("cache get error, falling back to database", zap.Int64("id", id), zap.Error(err))
		} else if cachedUser != nil {
			r.log.Debug("user retrieved from cache", zap.Int64("id", id))
			return cachedUser, nil
		}
	}

	// Cache miss or cache disabled - use single-flight to prevent stampede
	key := fmt.Sprintf("user:%d", id)
	result, err, _ := r.group.Do(key, func() (any, error) {
		// Double-check cache in case another request populated it while we were waiting
		if r.cache != nil {
			cachedUser, err := r.cache.Get(ctx, id)
			if err == nil && cachedUser != nil {
				r.log.Debug("user retrieved from cache after single-flight wait", zap.Int64("id", id))
				return cachedUser, nil
			}
		}

		// Only one request hits database
		u, err := r.dbRepo.FindByID(ctx, id)
		if err != nil {
			return nil, err
		}

		// Store in cache for future requests
		if r.cache != nil {
			if err := r.cache.Set(ctx, u); err != nil {
				r.log.Warn("failed to cache user", zap.Int64("id", id), zap.Error(err))
			}
		}

		return u, nil
	})

	if err != nil {
		return nil, err
	}

	return result.(*domain.User), nil
}

// FindByName delegates to the DB repository. Uniqueness pre-checks read
// through here, so stale cache entries must never answer name lookups.
func (r *CachedUserRepository) FindByName(ctx context.Context, name string) (*domain.User, error) {
	return r.dbRepo.FindByName(ctx, name)
}

// Replace updates the user in DB and invalidates the cache.
func (r *CachedUserRepository) Replace(ctx context.Context, u *domain.User) (*domain.User, error) {
	updated, err := r.dbRepo.Replace(ctx, u)
	if err != nil {
		return nil, err
	}

	// Invalidate cache after successful update
	if r.cache != nil {
		if err := r.cache.Delete(ctx, u.ID); err != nil {
			r.log.Warn("failed to invalidate cache after update", zap.Int64("id", u.ID), zap.Error(err))
		}
	}

	return updated, nil
}

// Remove deletes the user from DB and invalidates the cache.
func (r *CachedUserRepository) Remove(ctx context.Context, id int64) (*domain.User, error) {
	removed, err := r.dbRepo.Remove(ctx, id)
	if err != nil {
		return nil, err
	}

	// Invalidate cache after successful deletion
	if r.cache != nil {
		if err := r.cache.Delete(ctx, id); err != nil {
			r.log.Warn("failed to invalidate cache after delete", zap.Int64("id", id), zap.Error(err))
		}
	}

	return removed, nil
}

// FindMany delegates to the DB repository.
func (r *CachedUserRepository) FindMany(ctx context.Context, q domain.ListQuery) ([]domain.User, error) {
	return r.dbRepo.FindMany(ctx, q)
}
