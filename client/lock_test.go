package client

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRefreshLockKeepsCallerToken(t *testing.T) {
	const callerToken = "opaquelocktoken:11111111-2222-3333-4444-555555555555"
	var gotIf, gotTimeout string
	r := gin.New()
	r.Handle("LOCK", "/doc.txt", func(gctx *gin.Context) {
		gotIf = gctx.GetHeader("If")
		gotTimeout = gctx.GetHeader("Timeout")
		// 续锁应答只回scope/timeout不回locktoken, 协议允许
		gctx.Header("Content-Type", "application/xml")
		gctx.String(http.StatusOK, `<?xml version="1.0"?><D:prop xmlns:D="DAV:"><D:lockdiscovery><D:activelock><D:lockscope><D:exclusive/></D:lockscope><D:timeout>Second-600</D:timeout></D:activelock></D:lockdiscovery></D:prop>`)
	})
	svr := httptest.NewServer(r)
	defer svr.Close()

	c, err := New(WithBaseUrl(svr.URL))
	require.NoError(t, err)
	token, err := c.RefreshLock(context.Background(), "/doc.txt", callerToken, 600)
	require.NoError(t, err)
	assert.Equal(t, callerToken, token)
	assert.Equal(t, "(<"+callerToken+">)", gotIf)
	assert.Equal(t, "Second-600", gotTimeout)
}

func TestRefreshLockNonXmlResponse(t *testing.T) {
	const callerToken = "opaquelocktoken:aaaa-bbbb"
	r := gin.New()
	r.Handle("LOCK", "/doc.txt", func(gctx *gin.Context) {
		gctx.String(http.StatusOK, "ok")
	})
	svr := httptest.NewServer(r)
	defer svr.Close()

	c, err := New(WithBaseUrl(svr.URL))
	require.NoError(t, err)
	// 2xx但body不是锁应答, 同样沿用调用方token
	token, err := c.RefreshLock(context.Background(), "/doc.txt", callerToken, 300)
	require.NoError(t, err)
	assert.Equal(t, callerToken, token)
}
