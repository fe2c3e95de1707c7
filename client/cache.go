package client

import (
	"context"
	"time"

	"github.com/xxxsen/davclient/cacheapi"
	cachewrap "github.com/xxxsen/davclient/cacheapi/adaptor"
	"github.com/xxxsen/davclient/entity"
	"github.com/xxxsen/davclient/utils"

	"github.com/dgraph-io/ristretto/v2"
	explru "github.com/hashicorp/golang-lru/v2/expirable"
)

// statCache 可选的stat结果缓存, 写操作(put/delete/move/copy/proppatch)后主动失效
type statCache struct {
	c cacheapi.ICache[uint64, *entity.Resource]
}

func newStatCache(size int, ttl time.Duration) *statCache {
	if ttl <= 0 {
		ttl = 5 * time.Second
	}
	lc := explru.NewLRU[uint64, *entity.Resource](size, nil, ttl)
	return &statCache{c: cachewrap.WrapExpirableLruCache(lc)}
}

func (s *statCache) key(fullUrl string) uint64 {
	return utils.HashUrl(fullUrl)
}

func (s *statCache) Get(ctx context.Context, fullUrl string) (*entity.Resource, bool) {
	v, err := s.c.Get(ctx, s.key(fullUrl))
	if err != nil {
		return nil, false
	}
	return v, true
}

func (s *statCache) Set(ctx context.Context, fullUrl string, res *entity.Resource) {
	_ = s.c.Set(ctx, s.key(fullUrl), res)
}

func (s *statCache) Del(ctx context.Context, fullUrl string) {
	_ = s.c.Del(ctx, s.key(fullUrl))
}

type cachedBody struct {
	Etag string
	Data []byte
}

// getCache 小文件GET缓存, 命中后靠etag条件请求复核, 304直接回缓存体
type getCache struct {
	c     cacheapi.ICache[uint64, *cachedBody]
	limit int64
}

func newGetCache(totalBytes int64, perBodyLimit int64) (*getCache, error) {
	if perBodyLimit <= 0 {
		perBodyLimit = 512 * 1024
	}
	rc, err := ristretto.NewCache(&ristretto.Config[uint64, *cachedBody]{
		NumCounters: 10000,
		MaxCost:     totalBytes,
		BufferItems: 64,
		Cost: func(v *cachedBody) int64 {
			return int64(len(v.Data))
		},
	})
	if err != nil {
		return nil, err
	}
	return &getCache{
		c:     cachewrap.WrapRistrettoCache(rc),
		limit: perBodyLimit,
	}, nil
}

func (g *getCache) Get(ctx context.Context, fullUrl string) (*cachedBody, bool) {
	v, err := g.c.Get(ctx, utils.HashUrl(fullUrl))
	if err != nil {
		return nil, false
	}
	return v, true
}

func (g *getCache) Set(ctx context.Context, fullUrl string, etag string, data []byte) {
	if len(etag) == 0 || int64(len(data)) > g.limit {
		return
	}
	_ = g.c.Set(ctx, utils.HashUrl(fullUrl), &cachedBody{Etag: etag, Data: data})
}

func (g *getCache) Del(ctx context.Context, fullUrl string) {
	_ = g.c.Del(ctx, utils.HashUrl(fullUrl))
}

// invalidate 写操作后踢掉相关缓存
func (c *Client) invalidate(ctx context.Context, refs ...string) {
	for _, ref := range refs {
		fullUrl := c.resolveUrl(ref)
		if c.statCache != nil {
			c.statCache.Del(ctx, fullUrl)
		}
		if c.getCache != nil {
			c.getCache.Del(ctx, fullUrl)
		}
	}
}
