package client

import (
	"fmt"
	"net/http"
	"strings"

	"github.com/xxxsen/davclient/auth"
	"github.com/xxxsen/davclient/cacheapi"
)

// Client webdav客户端. 除认证状态变更外无请求级可变状态,
// 并发发请求是安全的, 切换凭据需要调用方自己和在途请求串行.
type Client struct {
	c           *config
	hc          *http.Client
	negotiator  *auth.Negotiator
	compression bool
	statCache   *statCache
	getCache    *getCache
	vhCache     cacheapi.ICache[uint64, string]
}

func New(opts ...Option) (*Client, error) {
	c := &config{
		Client: defaultHttpClient,
	}
	for _, opt := range opts {
		opt(c)
	}
	if len(c.BaseUrl) == 0 {
		return nil, fmt.Errorf("no base url found")
	}
	cli := &Client{
		c:           c,
		hc:          c.Client,
		negotiator:  auth.NewNegotiator(),
		compression: true,
		vhCache:     newVersionHistoryCache(),
	}
	if c.StatCacheSize > 0 {
		cli.statCache = newStatCache(c.StatCacheSize, c.StatCacheTTL)
	}
	if c.GetCacheSize > 0 {
		gc, err := newGetCache(c.GetCacheSize, c.GetCacheLimit)
		if err != nil {
			return nil, fmt.Errorf("init get cache failed, err:%w", err)
		}
		cli.getCache = gc
	}
	return cli, nil
}

// SetBasicAuth 使用用户名密码认证
func (c *Client) SetBasicAuth(user string, pass string, preemptive bool) {
	c.negotiator.SetBasic(user, pass, preemptive)
}

// SetDomainAuth 使用domain限定的凭据, workstation可为空
func (c *Client) SetDomainAuth(user string, pass string, domain string, workstation string, preemptive bool) {
	c.negotiator.SetDomain(user, pass, domain, workstation, preemptive)
}

// SetAuthHandler 挂外置认证方案, 清掉已存的用户名密码
func (c *Client) SetAuthHandler(h auth.IAuthHandler) {
	c.negotiator.SetHandler(h)
}

// ClearAuthentication 清空认证状态, 重复调用无副作用
func (c *Client) ClearAuthentication() {
	c.negotiator.Clear()
}

// DisableCompression 关闭下载透明解压, 重复调用无副作用
func (c *Client) DisableCompression() {
	c.compression = false
}

func (c *Client) EnableCompression() {
	c.compression = true
}

// resolveUrl 目标已是绝对url则原样使用, 否则拼到base上, 保证恰好一个分隔斜杠
func (c *Client) resolveUrl(ref string) string {
	if strings.Contains(ref, "://") {
		return ref
	}
	base := strings.TrimSuffix(c.c.BaseUrl, "/")
	if !strings.HasPrefix(ref, "/") {
		ref = "/" + ref
	}
	return base + ref
}
