package cache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus"

	"github.com/andressep95/leadcapture/internal/domain"
	"github.com/andressep95/leadcapture/internal/repository"
)

// TenantRepository is a read-through Redis cache in front of another
// TenantRepository. Only hits are cached; a miss always reaches the store so
// a newly provisioned tenant becomes visible immediately. A tenant deactivated
// or deleted after it was cached keeps resolving until its entry expires, so
// ttl is the staleness window and is kept to seconds.
type TenantRepository struct {
	next   repository.TenantRepository
	redis  redis.Cmdable
	ttl    time.Duration
	logger *logrus.Logger
}

// NewTenantRepository wraps next with a Redis cache
func NewTenantRepository(next repository.TenantRepository, client redis.Cmdable, ttl time.Duration, logger *logrus.Logger) *TenantRepository {
	return &TenantRepository{
		next:   next,
		redis:  client,
		ttl:    ttl,
		logger: logger,
	}
}

func subdomainKey(subdomain string) string {
	return fmt.Sprintf("tenant:subdomain:%s", subdomain)
}

// GetActiveBySubdomain serves from Redis when possible. Cache failures are
// logged and fall through to the store.
func (r *TenantRepository) GetActiveBySubdomain(ctx context.Context, subdomain string) (*domain.Tenant, error) {
	key := subdomainKey(subdomain)

	raw, err := r.redis.Get(ctx, key).Bytes()
	switch {
	case err == nil:
		var tenant domain.Tenant
		if jsonErr := json.Unmarshal(raw, &tenant); jsonErr == nil && tenant.Servable() {
			return &tenant, nil
		}
		r.logger.WithField("key", key).Warn("Discarding unusable cached tenant")
	case !errors.Is(err, redis.Nil):
		r.logger.WithError(err).WithField("key", key).Warn("Tenant cache read failed")
	}

	tenant, err := r.next.GetActiveBySubdomain(ctx, subdomain)
	if err != nil {
		return nil, err
	}

	if payload, err := json.Marshal(tenant); err == nil {
		if err := r.redis.Set(ctx, key, payload, r.ttl).Err(); err != nil {
			r.logger.WithError(err).WithField("key", key).Warn("Tenant cache write failed")
		}
	}

	return tenant, nil
}

// GetByID is not cached
func (r *TenantRepository) GetByID(ctx context.Context, id int64) (*domain.Tenant, error) {
	return r.next.GetByID(ctx, id)
}
