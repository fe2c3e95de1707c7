package client

import (
	"net/http"
	"time"
)

type config struct {
	BaseUrl        string
	Client         *http.Client
	DefaultHeaders map[string]string
	StatCacheSize  int
	StatCacheTTL   time.Duration
	GetCacheSize   int64 // 字节预算, <=0关闭
	GetCacheLimit  int64 // 单条body大小上限
}

type Option func(*config)

func WithBaseUrl(u string) Option {
	return func(c *config) {
		c.BaseUrl = u
	}
}

// WithHTTPClient 替换底层transport, 超时等传输层配置由调用方在这里给
func WithHTTPClient(hc *http.Client) Option {
	return func(c *config) {
		c.Client = hc
	}
}

// WithDefaultHeader 每个出站请求都携带的头
func WithDefaultHeader(k string, v string) Option {
	return func(c *config) {
		if c.DefaultHeaders == nil {
			c.DefaultHeaders = make(map[string]string)
		}
		c.DefaultHeaders[k] = v
	}
}

// WithStatCache 开启stat结果缓存
func WithStatCache(size int, ttl time.Duration) Option {
	return func(c *config) {
		c.StatCacheSize = size
		c.StatCacheTTL = ttl
	}
}

// WithGetCache 开启小文件GET缓存, 带etag校验
func WithGetCache(totalBytes int64, perBodyLimit int64) Option {
	return func(c *config) {
		c.GetCacheSize = totalBytes
		c.GetCacheLimit = perBodyLimit
	}
}

var defaultHttpClient = &http.Client{
	Timeout: 0, // 由调用方通过context控制, 大文件传输不能拍一个全局超时
	Transport: &http.Transport{
		IdleConnTimeout:     20 * time.Second,
		MaxIdleConns:        5,
		MaxIdleConnsPerHost: 2,
		DisableCompression:  true, // 解压走transfer, 进度要按接收字节计
	},
}
