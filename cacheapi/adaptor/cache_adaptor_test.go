package cachewrap

import (
	"context"
	"testing"
	"time"

	"github.com/dgraph-io/ristretto/v2"
	lru "github.com/hashicorp/golang-lru/v2"
	explru "github.com/hashicorp/golang-lru/v2/expirable"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/xxxsen/davclient/cacheapi"
)

func testCacheBasic(t *testing.T, c cacheapi.ICache[uint64, string]) {
	ctx := context.Background()
	_, err := c.Get(ctx, 1)
	assert.ErrorIs(t, err, cacheapi.ErrCacheKeyNotExist)
	require.NoError(t, c.Set(ctx, 1, "v1"))
	v, err := c.Get(ctx, 1)
	require.NoError(t, err)
	assert.Equal(t, "v1", v)
	require.NoError(t, c.Del(ctx, 1))
	_, err = c.Get(ctx, 1)
	assert.ErrorIs(t, err, cacheapi.ErrCacheKeyNotExist)
}

func TestLruAdaptor(t *testing.T) {
	lc, err := lru.New[uint64, string](16)
	require.NoError(t, err)
	testCacheBasic(t, WrapLruCache(lc))
}

func TestExpirableLruAdaptor(t *testing.T) {
	lc := explru.NewLRU[uint64, string](16, nil, 50*time.Millisecond)
	c := WrapExpirableLruCache(lc)
	testCacheBasic(t, c)
	// ttl到期后视同miss
	require.NoError(t, c.Set(context.Background(), 2, "v2"))
	time.Sleep(80 * time.Millisecond)
	_, err := c.Get(context.Background(), 2)
	assert.ErrorIs(t, err, cacheapi.ErrCacheKeyNotExist)
}

func TestRistrettoAdaptor(t *testing.T) {
	rc, err := ristretto.NewCache(&ristretto.Config[uint64, string]{
		NumCounters: 1000,
		MaxCost:     1 << 20,
		BufferItems: 64,
		Cost: func(v string) int64 {
			return int64(len(v))
		},
	})
	require.NoError(t, err)
	defer rc.Close()
	c := WrapRistrettoCache(rc)
	ctx := context.Background()
	_, err = c.Get(ctx, 1)
	assert.ErrorIs(t, err, cacheapi.ErrCacheKeyNotExist)
	require.NoError(t, c.Set(ctx, 1, "v1"))
	// ristretto写入是异步落位的
	require.Eventually(t, func() bool {
		v, err := c.Get(ctx, 1)
		return err == nil && v == "v1"
	}, time.Second, 5*time.Millisecond)
	require.NoError(t, c.Del(ctx, 1))
	_, err = c.Get(ctx, 1)
	assert.ErrorIs(t, err, cacheapi.ErrCacheKeyNotExist)
}
