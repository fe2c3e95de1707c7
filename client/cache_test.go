package client

import (
	"context"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const statBody = `<?xml version="1.0"?><D:multistatus xmlns:D="DAV:"><D:response><D:href>/f.txt</D:href><D:propstat><D:prop><D:displayname>f.txt</D:displayname><D:getcontentlength>3</D:getcontentlength></D:prop><D:status>HTTP/1.1 200 OK</D:status></D:propstat></D:response></D:multistatus>`

func TestStatCache(t *testing.T) {
	ctx := context.Background()
	var hits int32
	r := gin.New()
	r.Handle("PROPFIND", "/f.txt", func(gctx *gin.Context) {
		atomic.AddInt32(&hits, 1)
		gctx.Header("Content-Type", "application/xml")
		gctx.String(http.StatusMultiStatus, statBody)
	})
	r.PUT("/f.txt", func(gctx *gin.Context) {
		gctx.Status(http.StatusCreated)
	})
	svr := httptest.NewServer(r)
	defer svr.Close()

	c, err := New(WithBaseUrl(svr.URL), WithStatCache(128, time.Minute))
	require.NoError(t, err)
	res, err := c.Stat(ctx, "/f.txt")
	require.NoError(t, err)
	assert.Equal(t, int64(3), res.ContentLength)
	// 第二次命中缓存, 不再打服务端
	_, err = c.Stat(ctx, "/f.txt")
	require.NoError(t, err)
	assert.Equal(t, int32(1), atomic.LoadInt32(&hits))

	// 写操作失效缓存, 下一次stat重新发请求
	require.NoError(t, c.PutBytes(ctx, "/f.txt", []byte("xyz"), "text/plain"))
	_, err = c.Stat(ctx, "/f.txt")
	require.NoError(t, err)
	assert.Equal(t, int32(2), atomic.LoadInt32(&hits))
}

func TestGetCacheRevalidate(t *testing.T) {
	ctx := context.Background()
	var full, revalidated int32
	r := gin.New()
	r.GET("/f.txt", func(gctx *gin.Context) {
		if gctx.GetHeader("If-None-Match") == `"v1"` {
			atomic.AddInt32(&revalidated, 1)
			gctx.Status(http.StatusNotModified)
			return
		}
		atomic.AddInt32(&full, 1)
		gctx.Header("Etag", `"v1"`)
		gctx.String(http.StatusOK, "cached-content")
	})
	svr := httptest.NewServer(r)
	defer svr.Close()

	c, err := New(WithBaseUrl(svr.URL), WithGetCache(1<<20, 0))
	require.NoError(t, err)
	data, err := c.GetBytes(ctx, "/f.txt")
	require.NoError(t, err)
	assert.Equal(t, "cached-content", string(data))
	// ristretto入缓存有异步窗口, 等它落位
	require.Eventually(t, func() bool {
		_, ok := c.getCache.Get(ctx, c.resolveUrl("/f.txt"))
		return ok
	}, time.Second, 10*time.Millisecond)

	data, err = c.GetBytes(ctx, "/f.txt")
	require.NoError(t, err)
	assert.Equal(t, "cached-content", string(data))
	assert.Equal(t, int32(1), atomic.LoadInt32(&full))
	assert.Equal(t, int32(1), atomic.LoadInt32(&revalidated))
}

func TestGetCacheSkipNoEtag(t *testing.T) {
	ctx := context.Background()
	r := gin.New()
	r.GET("/f.txt", func(gctx *gin.Context) {
		gctx.String(http.StatusOK, "no-etag")
	})
	svr := httptest.NewServer(r)
	defer svr.Close()

	c, err := New(WithBaseUrl(svr.URL), WithGetCache(1<<20, 0))
	require.NoError(t, err)
	_, err = c.GetBytes(ctx, "/f.txt")
	require.NoError(t, err)
	// 无etag的响应不进缓存, 没法复核
	time.Sleep(50 * time.Millisecond)
	_, ok := c.getCache.Get(ctx, c.resolveUrl("/f.txt"))
	assert.False(t, ok)
}
