package affiliate

import (
	"context"
	"time"

	"github.com/patrickmn/go-cache"
	"github.com/redis/go-redis/v9"

	"deal_hunter/internal/domain/entity"
	"deal_hunter/pkg/contextx"
	"deal_hunter/pkg/logx"
)

var logger = contextx.LoggerFromContextOrDefault //nolint:gochecknoglobals

const (
	localCacheTTL = time.Hour
	redisCacheTTL = 7 * 24 * time.Hour

	redisKeyPrefix = "affiliate:link:"
)

// Strategy rewrites one link for one marketplace. Strategies may fail; the
// Resolver guarantees the pipeline never sees that failure.
type Strategy interface {
	Resolve(ctx context.Context, link string) (string, error)
}

// Resolver picks a per-source strategy and guarantees a usable, non-empty
// link comes back no matter what: on any failure the original link is
// returned so the deal still ships, just untagged.
//
// Resolved links are cached in-process and, when a redis client is supplied,
// across restarts, so the expensive session-based strategies run once per
// product.
type Resolver struct {
	strategies map[entity.Source]Strategy
	local      *cache.Cache
	redis      *redis.Client
}

func NewResolver() *Resolver {
	return &Resolver{
		strategies: make(map[entity.Source]Strategy),
		local:      cache.New(localCacheTTL, 10*time.Minute),
	}
}

// WithStrategy registers the strategy used for a source. Sources without a
// strategy pass links through unchanged.
func (r *Resolver) WithStrategy(source entity.Source, strategy Strategy) *Resolver {
	r.strategies[source] = strategy
	return r
}

// WithRedisCache enables the cross-run short-link cache.
func (r *Resolver) WithRedisCache(client *redis.Client) *Resolver {
	r.redis = client
	return r
}

// Resolve rewrites link for source. It never returns an empty string and
// never fails.
func (r *Resolver) Resolve(ctx context.Context, link string, source entity.Source) string {
	if link == "" {
		return link
	}

	strategy, ok := r.strategies[source]
	if !ok {
		return link
	}

	if cached, ok := r.cachedLink(ctx, link); ok {
		return cached
	}

	resolved, err := strategy.Resolve(ctx, link)
	if err != nil || resolved == "" {
		logger(ctx).Warn("affiliate resolution fell back to original link",
			"source", source.String(),
			logx.Error(err),
		)
		return link
	}

	r.storeLink(ctx, link, resolved)

	return resolved
}

func (r *Resolver) cachedLink(ctx context.Context, link string) (string, bool) {
	if cached, ok := r.local.Get(link); ok {
		if resolved, ok := cached.(string); ok {
			return resolved, true
		}
	}

	if r.redis != nil {
		resolved, err := r.redis.Get(ctx, redisKeyPrefix+link).Result()
		if err == nil && resolved != "" {
			r.local.SetDefault(link, resolved)
			return resolved, true
		}
	}

	return "", false
}

func (r *Resolver) storeLink(ctx context.Context, link, resolved string) {
	r.local.SetDefault(link, resolved)

	if r.redis != nil {
		if err := r.redis.Set(ctx, redisKeyPrefix+link, resolved, redisCacheTTL).Err(); err != nil {
			logger(ctx).Warn("failed to cache resolved link", logx.Error(err))
		}
	}
}
