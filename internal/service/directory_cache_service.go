package service

import (
	"context"
	"encoding/json"
	"errors"
	"strconv"
	"time"

	"wmhn-clinic-api/internal/domain/entity"
	"wmhn-clinic-api/internal/infrastructure/monitoring"

	"github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus"
)

const (
	// DirectoryGenerationKey counts invalidations. Cached views live under
	// directory:<generation>:..., so bumping it retires every view at once and
	// a view computed before the bump is written where no reader looks.
	DirectoryGenerationKey = "directory:gen"

	directoryKeyPrefix = "directory:"

	redisOpTimeout    = 2 * time.Second
	auditWriteTimeout = 5 * time.Second
)

// DirectoryCache caches the public (active-only) directory views per
// generation. Callers take the generation before reading the store and write
// back under it. Lookups report ok=false on a miss or on any cache failure.
type DirectoryCache interface {
	// Generation returns the live generation. ok=false means the cache is
	// unavailable and should be neither read nor written.
	Generation(ctx context.Context) (gen int64, ok bool)
	GetList(ctx context.Context, gen int64) ([]entity.Doctor, bool)
	SetList(ctx context.Context, gen int64, doctors []entity.Doctor)
	GetDoctor(ctx context.Context, gen int64, slug string) (*entity.Doctor, bool)
	SetDoctor(ctx context.Context, gen int64, doctor entity.Doctor)
	Invalidate(ctx context.Context) error
}

func directoryListKey(gen int64) string {
	return directoryKeyPrefix + strconv.FormatInt(gen, 10) + ":list"
}

func directoryDoctorKey(gen int64, slug string) string {
	return directoryKeyPrefix + strconv.FormatInt(gen, 10) + ":slug:" + slug
}

type redisDirectoryCache struct {
	client  *redis.Client
	ttl     time.Duration
	log     *logrus.Logger
	metrics *monitoring.Metrics
}

func NewRedisDirectoryCache(client *redis.Client, ttl time.Duration, log *logrus.Logger, metrics *monitoring.Metrics) DirectoryCache {
	return &redisDirectoryCache{
		client:  client,
		ttl:     ttl,
		log:     log,
		metrics: metrics,
	}
}

func (c *redisDirectoryCache) Generation(ctx context.Context) (int64, bool) {
	ctx, cancel := context.WithTimeout(ctx, redisOpTimeout)
	defer cancel()

	gen, err := c.client.Get(ctx, DirectoryGenerationKey).Int64()
	switch {
	case errors.Is(err, redis.Nil):
		return 0, true
	case err != nil:
		c.log.Warnf("Failed to read directory cache generation: %+v", err)
		c.metrics.DirectoryCache.WithLabelValues("error").Inc()
		return 0, false
	}
	return gen, true
}

func (c *redisDirectoryCache) GetList(ctx context.Context, gen int64) ([]entity.Doctor, bool) {
	var doctors []entity.Doctor
	if !c.get(ctx, directoryListKey(gen), &doctors) {
		return nil, false
	}
	return doctors, true
}

func (c *redisDirectoryCache) SetList(ctx context.Context, gen int64, doctors []entity.Doctor) {
	c.set(ctx, directoryListKey(gen), doctors)
}

func (c *redisDirectoryCache) GetDoctor(ctx context.Context, gen int64, slug string) (*entity.Doctor, bool) {
	var doctor entity.Doctor
	if !c.get(ctx, directoryDoctorKey(gen, slug), &doctor) {
		return nil, false
	}
	return &doctor, true
}

func (c *redisDirectoryCache) SetDoctor(ctx context.Context, gen int64, doctor entity.Doctor) {
	if !doctor.IsActive {
		return
	}
	c.set(ctx, directoryDoctorKey(gen, doctor.Slug), doctor)
}

// Invalidate starts a new generation. Views of older generations are left to
// expire on their own TTL.
func (c *redisDirectoryCache) Invalidate(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, redisOpTimeout)
	defer cancel()

	if err := c.client.Incr(ctx, DirectoryGenerationKey).Err(); err != nil {
		c.log.Warnf("Failed to invalidate directory cache: %+v", err)
		return err
	}
	return nil
}

func (c *redisDirectoryCache) get(ctx context.Context, key string, dest interface{}) bool {
	ctx, cancel := context.WithTimeout(ctx, redisOpTimeout)
	defer cancel()

	raw, err := c.client.Get(ctx, key).Bytes()
	if err != nil {
		if !errors.Is(err, redis.Nil) {
			c.log.Warnf("Failed to read directory cache key %s: %+v", key, err)
			c.metrics.DirectoryCache.WithLabelValues("error").Inc()
			return false
		}
		c.metrics.DirectoryCache.WithLabelValues("miss").Inc()
		return false
	}

	if err := json.Unmarshal(raw, dest); err != nil {
		c.log.Warnf("Failed to decode directory cache key %s: %+v", key, err)
		c.metrics.DirectoryCache.WithLabelValues("error").Inc()
		return false
	}

	c.metrics.DirectoryCache.WithLabelValues("hit").Inc()
	return true
}

// set writes one view with its own TTL; no write extends another view's life.
func (c *redisDirectoryCache) set(ctx context.Context, key string, value interface{}) {
	raw, err := json.Marshal(value)
	if err != nil {
		c.log.Warnf("Failed to encode directory cache key %s: %+v", key, err)
		return
	}

	ctx, cancel := context.WithTimeout(ctx, redisOpTimeout)
	defer cancel()

	if err := c.client.Set(ctx, key, raw, c.ttl).Err(); err != nil {
		c.log.Warnf("Failed to write directory cache key %s: %+v", key, err)
	}
}

type noopDirectoryCache struct{}

// NewNoopDirectoryCache is used when Redis is not configured; every lookup misses.
func NewNoopDirectoryCache() DirectoryCache {
	return noopDirectoryCache{}
}

func (noopDirectoryCache) Generation(ctx context.Context) (int64, bool) { return 0, false }

func (noopDirectoryCache) GetList(ctx context.Context, gen int64) ([]entity.Doctor, bool) {
	return nil, false
}

func (noopDirectoryCache) SetList(ctx context.Context, gen int64, doctors []entity.Doctor) {}

func (noopDirectoryCache) GetDoctor(ctx context.Context, gen int64, slug string) (*entity.Doctor, bool) {
	return nil, false
}

func (noopDirectoryCache) SetDoctor(ctx context.Context, gen int64, doctor entity.Doctor) {}

func (noopDirectoryCache) Invalidate(ctx context.Context) error { return nil }
