package cacheapi

import (
	"context"
	"errors"
)

var (
	ErrCacheKeyNotExist = errors.New("cache key not exist")
)

type ICacheGetter[K comparable, V any] interface {
	Get(ctx context.Context, k K) (V, error)
}

type ICacheSetter[K comparable, V any] interface {
	Set(ctx context.Context, k K, v V) error
}

type ICacheDeleter[K comparable] interface {
	Del(ctx context.Context, k K) error
}

type ICache[K comparable, V any] interface {
	ICacheGetter[K, V]
	ICacheSetter[K, V]
	ICacheDeleter[K]
}

type LoadCallbackFunc[K comparable, V any] func(ctx context.Context, k K) (V, error)

// Load 读穿缓存: miss时回源并写回. 回源失败不污染缓存.
func Load[K comparable, V any](ctx context.Context, c ICache[K, V], k K, cb LoadCallbackFunc[K, V]) (V, error) {
	v, err := c.Get(ctx, k)
	if err == nil {
		return v, nil
	}
	if !errors.Is(err, ErrCacheKeyNotExist) {
		var defaultV V
		return defaultV, err
	}
	v, err = cb(ctx, k)
	if err != nil {
		var defaultV V
		return defaultV, err
	}
	_ = c.Set(ctx, k, v)
	return v, nil
}
