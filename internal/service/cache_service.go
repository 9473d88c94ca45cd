package service

import (
	"context"
	"errors"
	"time"

	"go.uber.org/zap"

	"github.com/noah-isme/workshop-hub-api/internal/models"
	appErrors "github.com/noah-isme/workshop-hub-api/pkg/errors"
)

// CacheRepository abstracts the key/value backend behind the view cache.
type CacheRepository interface {
	Get(ctx context.Context, key string, dest interface{}) error
	Set(ctx context.Context, key string, value interface{}, ttl time.Duration) error
	DeleteByPattern(ctx context.Context, pattern string) error
}

const viewKeyPrefix = "views:"

// ViewCacheKey is the cache key of a rendered view.
func ViewCacheKey(view models.View) string {
	return viewKeyPrefix + string(view)
}

// CacheService is a read-through cache for rendered views. A disabled or missing backend
// turns every call into a no-op miss.
type CacheService struct {
	repo    CacheRepository
	metrics *MetricsService
	ttl     time.Duration
	logger  *zap.Logger
	enabled bool
}

// NewCacheService constructs a cache service.
func NewCacheService(repo CacheRepository, metrics *MetricsService, ttl time.Duration, logger *zap.Logger, enabled bool) *CacheService {
	if ttl <= 0 {
		ttl = 30 * time.Second
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &CacheService{repo: repo, metrics: metrics, ttl: ttl, logger: logger, enabled: enabled}
}

// Enabled indicates whether caching is active.
func (s *CacheService) Enabled() bool {
	return s != nil && s.enabled && s.repo != nil
}

// Get loads key into dest and reports whether it was a hit. Backend failures are logged and
// reported as misses together with the error.
func (s *CacheService) Get(ctx context.Context, key string, dest interface{}) (bool, error) {
	if !s.Enabled() {
		return false, nil
	}
	start := time.Now()
	err := s.repo.Get(ctx, key, dest)
	s.metrics.RecordCacheOperation(err == nil, time.Since(start))
	switch {
	case err == nil:
		return true, nil
	case errors.Is(err, appErrors.ErrCacheMiss):
		return false, nil
	default:
		s.logger.Warn("view cache get failed", zap.String("key", key), zap.Error(err))
		return false, err
	}
}

// Set stores value under key using the configured TTL.
func (s *CacheService) Set(ctx context.Context, key string, value interface{}) error {
	if !s.Enabled() {
		return nil
	}
	start := time.Now()
	err := s.repo.Set(ctx, key, value, s.ttl)
	s.metrics.ObserveCacheWrite(time.Since(start))
	if err != nil {
		s.logger.Warn("view cache set failed", zap.String("key", key), zap.Error(err))
	}
	return err
}

// InvalidateViews drops the cached renders of the given views.
func (s *CacheService) InvalidateViews(ctx context.Context, views ...models.View) error {
	if !s.Enabled() {
		return nil
	}
	var firstErr error
	for _, v := range views {
		if err := s.repo.DeleteByPattern(ctx, ViewCacheKey(v)); err != nil {
			s.logger.Warn("view cache invalidate failed", zap.String("view", string(v)), zap.Error(err))
			if firstErr == nil {
				firstErr = err
			}
		}
	}
	return firstErr
}
