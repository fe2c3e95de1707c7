package client

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"os"
	"strconv"

	"github.com/xxxsen/davclient/transfer"
	"github.com/xxxsen/davclient/utils"

	"github.com/xxxsen/common/logutil"
	"go.uber.org/zap"
)

// Get 流式下载, 返回已透明解压的body, 调用方负责Close.
// 进度回调按接收字节(解压前)计数, total未知时为-1.
func (c *Client) Get(ctx context.Context, ref string, progress transfer.ProgressFunc) (io.ReadCloser, error) {
	rsp, err := c.doStream(ctx, "GET", ref, nil, nil, progress)
	if err != nil {
		return nil, err
	}
	return rsp.Body, nil
}

type progressBody struct {
	io.Reader
	closer io.Closer
}

func (p *progressBody) Close() error {
	return p.closer.Close()
}

// GetBytes 整读下载, 开了GET缓存时走etag条件请求
func (c *Client) GetBytes(ctx context.Context, ref string) ([]byte, error) {
	fullUrl := c.resolveUrl(ref)
	var hdr map[string]string
	var cached *cachedBody
	if c.getCache != nil {
		if v, ok := c.getCache.Get(ctx, fullUrl); ok {
			cached = v
			hdr = map[string]string{"If-None-Match": v.Etag}
		}
	}
	rsp, err := c.do(ctx, "GET", ref, hdr, nil)
	if err != nil {
		return nil, err
	}
	defer rsp.Body.Close()
	if cached != nil && rsp.StatusCode == 304 {
		logutil.GetLogger(ctx).Debug("get cache revalidated", zap.String("url", fullUrl))
		return cached.Data, nil
	}
	if rsp.StatusCode < 200 || rsp.StatusCode > 299 {
		raw, _ := io.ReadAll(io.LimitReader(rsp.Body, 64*1024))
		return nil, &ProtocolError{Method: "GET", Url: fullUrl, StatusCode: rsp.StatusCode, Body: raw}
	}
	reader, err := c.responseReader(rsp)
	if err != nil {
		return nil, &NetworkError{Method: "GET", Url: fullUrl, Err: err}
	}
	raw, err := io.ReadAll(reader)
	if err != nil {
		return nil, &NetworkError{Method: "GET", Url: fullUrl, Err: err}
	}
	if c.getCache != nil {
		c.getCache.Set(ctx, fullUrl, rsp.Header.Get("Etag"), raw)
	}
	return raw, nil
}

// GetFile 下载到本地文件, 先写临时文件成功后rename.
// 传输中途失败不会留下打开的句柄, 但已存在的目标文件是否清理由调用方决定.
func (c *Client) GetFile(ctx context.Context, ref string, dst string, progress transfer.ProgressFunc) error {
	body, err := c.Get(ctx, ref, progress)
	if err != nil {
		return err
	}
	defer body.Close()
	if err := transfer.SaveToFile(dst, body); err != nil {
		return &NetworkError{Method: "GET", Url: c.resolveUrl(ref), Err: err}
	}
	return nil
}

// Put 流式上传, 不整体缓冲payload. size未知传-1(chunked编码),
// 但size=-1时401重试不可用, 需要预发认证.
func (c *Client) Put(ctx context.Context, ref string, r io.Reader, size int64, contentType string, progress transfer.ProgressFunc) error {
	hdr := map[string]string{}
	if contentType == "" {
		contentType = utils.DetermineMimeType(ref)
	}
	hdr["Content-Type"] = contentType
	if size >= 0 {
		hdr["Content-Length"] = strconv.FormatInt(size, 10)
	}
	body := transfer.NewProgressReader(r, size, progress)
	// 进度包装会抹掉Seeker, 上传流不可重放, 401重放的拦截在dispatch里做
	_, _, _, err := c.doBuffered(ctx, "PUT", ref, hdr, body)
	if err != nil {
		return err
	}
	c.invalidate(ctx, ref)
	return nil
}

// PutBytes 小payload整体上传, 支持401重放
func (c *Client) PutBytes(ctx context.Context, ref string, data []byte, contentType string) error {
	hdr := map[string]string{}
	if contentType == "" {
		contentType = utils.DetermineMimeType(ref)
	}
	hdr["Content-Type"] = contentType
	_, _, _, err := c.doBuffered(ctx, "PUT", ref, hdr, bytes.NewReader(data))
	if err != nil {
		return err
	}
	c.invalidate(ctx, ref)
	return nil
}

// PutFile 上传本地文件
func (c *Client) PutFile(ctx context.Context, src string, ref string, progress transfer.ProgressFunc) error {
	f, err := os.Open(src)
	if err != nil {
		return fmt.Errorf("open local file failed, err:%w", err)
	}
	defer f.Close()
	info, err := f.Stat()
	if err != nil {
		return fmt.Errorf("stat local file failed, err:%w", err)
	}
	return c.Put(ctx, ref, f, info.Size(), utils.SniffFileMimeType(src), progress)
}
