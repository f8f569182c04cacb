package redis

import (
	"context"
	"time"

	"github.com/redis/go-redis/v9"
	"go.uber.org/atomic"

	"eops/ratesync/pkg/logger"
)

// 汇率缓存键与兜底汇率（JPY per USD）
const (
	fxCacheKey     = "ratesync:fx:jpy_per_usd"
	FallbackFxRate = 150.0
)

// FxSource 汇率底层来源（数据库）
type FxSource interface {
	Latest(ctx context.Context) (float64, error)
}

// FxCache 读穿透汇率缓存
// 缓存未命中时读库并以 TTL 写回；读库失败时退回最近一次成功值，再退回兜底常量
type FxCache struct {
	client *redis.Client
	source FxSource
	ttl    time.Duration
	last   *atomic.Float64
	log    logger.Logger
}

// NewFxCache 创建汇率缓存
func NewFxCache(client *redis.Client, source FxSource, ttl time.Duration, log logger.Logger) *FxCache {
	return &FxCache{
		client: client,
		source: source,
		ttl:    ttl,
		last:   atomic.NewFloat64(0),
		log:    log,
	}
}

// Rate 获取当前汇率，保证返回正值
func (c *FxCache) Rate(ctx context.Context) float64 {
	if c.client != nil {
		if v, err := c.client.Get(ctx, fxCacheKey).Float64(); err == nil && v > 0 {
			c.last.Store(v)
			return v
		}
	}

	v, err := c.source.Latest(ctx)
	if err != nil || v <= 0 {
		if last := c.last.Load(); last > 0 {
			c.log.Warnf(ctx, "fx lookup failed, using last known rate %.4f: %v", last, err)
			return last
		}
		c.log.Warnf(ctx, "fx lookup failed, using fallback rate %.1f: %v", FallbackFxRate, err)
		return FallbackFxRate
	}

	if c.client != nil {
		// 缓存写失败不影响本次计算
		if serr := c.client.Set(ctx, fxCacheKey, v, c.ttl).Err(); serr != nil {
			c.log.Warnf(ctx, "fx cache write failed: %v", serr)
		}
	}
	c.last.Store(v)
	return v
}
