package repository

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"github.com/prohmpiriya/healthcare-portal/internal/domain"
	"github.com/prohmpiriya/healthcare-portal/pkg/logger"
)

const (
	// ProviderDirectoryKey caches the provider directory
	ProviderDirectoryKey = "directory:providers"
	// DefaultDirectoryTTL bounds staleness when an invalidation is missed
	DefaultDirectoryTTL = 5 * time.Minute
)

// CacheClient is the subset of the redis client used by the cache
type CacheClient interface {
	Get(ctx context.Context, key string) *redis.StringCmd
	Set(ctx context.Context, key string, value interface{}, expiration time.Duration) *redis.StatusCmd
	Del(ctx context.Context, keys ...string) *redis.IntCmd
}

// cachedProvider holds only directory fields; hashes never reach the cache
type cachedProvider struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	Email     string    `json:"email"`
	CreatedAt time.Time `json:"created_at"`
}

// CachedUserRepository decorates a UserRepository with a cache-aside provider directory.
// Redis failures fall back to the underlying store.
type CachedUserRepository struct {
	UserRepository
	cache CacheClient
	ttl   time.Duration
	log   *logger.Logger
}

// NewCachedUserRepository creates a new CachedUserRepository
func NewCachedUserRepository(next UserRepository, cache CacheClient, ttl time.Duration, log *logger.Logger) *CachedUserRepository {
	if ttl <= 0 {
		ttl = DefaultDirectoryTTL
	}
	if log == nil {
		log = logger.NewNop()
	}
	return &CachedUserRepository{UserRepository: next, cache: cache, ttl: ttl, log: log}
}

// Create inserts the user and drops the directory when a provider was added
func (r *CachedUserRepository) Create(ctx context.Context, user *domain.User) error {
	if err := r.UserRepository.Create(ctx, user); err != nil {
		return err
	}
	if user.IsProvider() {
		r.InvalidateDirectory(ctx)
	}
	return nil
}

// UpdateProfile persists the profile and drops the directory when a provider changed
func (r *CachedUserRepository) UpdateProfile(ctx context.Context, user *domain.User) error {
	if err := r.UserRepository.UpdateProfile(ctx, user); err != nil {
		return err
	}
	if user.IsProvider() {
		r.InvalidateDirectory(ctx)
	}
	return nil
}

// ListByRole serves providers from cache; other roles go to the store
func (r *CachedUserRepository) ListByRole(ctx context.Context, role domain.Role) ([]*domain.User, error) {
	if role != domain.RoleProvider {
		return r.UserRepository.ListByRole(ctx, role)
	}

	if users, ok := r.getDirectory(ctx); ok {
		return users, nil
	}

	users, err := r.UserRepository.ListByRole(ctx, role)
	if err != nil {
		return nil, err
	}
	r.setDirectory(ctx, users)
	return users, nil
}

// InvalidateDirectory removes the cached provider directory
func (r *CachedUserRepository) InvalidateDirectory(ctx context.Context) {
	if err := r.cache.Del(ctx, ProviderDirectoryKey).Err(); err != nil {
		r.log.Warn("failed to invalidate provider directory", zap.Error(err))
	}
}

func (r *CachedUserRepository) getDirectory(ctx context.Context) ([]*domain.User, bool) {
	data, err := r.cache.Get(ctx, ProviderDirectoryKey).Bytes()
	if err != nil {
		if !errors.Is(err, redis.Nil) {
			r.log.Warn("provider directory cache read failed", zap.Error(err))
		}
		return nil, false
	}

	var cached []cachedProvider
	if err := json.Unmarshal(data, &cached); err != nil {
		r.log.Warn("provider directory cache corrupt", zap.Error(err))
		return nil, false
	}

	users := make([]*domain.User, 0, len(cached))
	for _, p := range cached {
		users = append(users, &domain.User{
			ID:        p.ID,
			Name:      p.Name,
			Email:     p.Email,
			Role:      domain.RoleProvider,
			CreatedAt: p.CreatedAt,
		})
	}
	return users, true
}

func (r *CachedUserRepository) setDirectory(ctx context.Context, users []*domain.User) {
	cached := make([]cachedProvider, 0, len(users))
	for _, u := range users {
		cached = append(cached, cachedProvider{ID: u.ID, Name: u.Name, Email: u.Email, CreatedAt: u.CreatedAt})
	}
	data, err := json.Marshal(cached)
	if err != nil {
		return
	}
	if err := r.cache.Set(ctx, ProviderDirectoryKey, data, r.ttl).Err(); err != nil {
		r.log.Warn("provider directory cache write failed", zap.Error(err))
	}
}
