package client

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"github.com/xxxsen/davclient/codec"
	"github.com/xxxsen/davclient/entity"

	"github.com/xxxsen/common/logutil"
	"go.uber.org/zap"
)

var defaultStatProps = []string{
	"displayname", "resourcetype", "getcontenttype", "getcontentlength",
	"getetag", "creationdate", "getlastmodified",
}

// Stat 取单个资源的描述, 资源不存在返回ProtocolError(404)
func (c *Client) Stat(ctx context.Context, ref string) (*entity.Resource, error) {
	fullUrl := c.resolveUrl(ref)
	if c.statCache != nil {
		if res, ok := c.statCache.Get(ctx, fullUrl); ok {
			return res, nil
		}
	}
	ms, err := c.doMultistatus(ctx, MethodPropfind, ref,
		map[string]string{HeaderDepth: codec.FormatDepth(codec.DepthZero), "Content-Type": contentTypeXml},
		xmlBody(codec.EncodePropfind(defaultStatProps)))
	if err != nil {
		return nil, err
	}
	if len(ms.Responses) == 0 {
		return nil, fmt.Errorf("%w: empty multistatus for stat, url:%s", codec.ErrMalformedResponse, fullUrl)
	}
	res := ms.Responses[0].ToResource()
	if c.statCache != nil {
		c.statCache.Set(ctx, fullUrl, res)
	}
	return res, nil
}

// List 枚举collection的直接子级, 返回结果不含collection自身
func (c *Client) List(ctx context.Context, ref string) ([]*entity.Resource, error) {
	ms, err := c.doMultistatus(ctx, MethodPropfind, ref,
		map[string]string{HeaderDepth: codec.FormatDepth(codec.DepthOne), "Content-Type": contentTypeXml},
		xmlBody(codec.EncodePropfind(defaultStatProps)))
	if err != nil {
		return nil, err
	}
	rs := make([]*entity.Resource, 0, len(ms.Responses))
	self := strings.TrimSuffix(urlPath(c.resolveUrl(ref)), "/")
	for _, resp := range ms.Responses {
		if strings.TrimSuffix(urlPath(resp.Href), "/") == self {
			continue
		}
		rs = append(rs, resp.ToResource())
	}
	return rs, nil
}

// Exists 判断资源是否存在.
// 注意: 任何失败(包括网络失败)都折叠成false, 这是刻意的简化,
// 区分"不存在"和"探测不到"的场景请直接用Stat.
func (c *Client) Exists(ctx context.Context, ref string) bool {
	_, err := c.Stat(ctx, ref)
	if err != nil {
		logutil.GetLogger(ctx).Debug("exists check failed, treat as not exist",
			zap.String("ref", ref), zap.Error(err))
		return false
	}
	return true
}

// Mkcol 创建collection
func (c *Client) Mkcol(ctx context.Context, ref string) error {
	_, _, _, err := c.doBuffered(ctx, MethodMkcol, ref, nil, nil)
	if err != nil {
		return err
	}
	c.invalidate(ctx, ref)
	return nil
}

// Delete 删除资源, 目录整树删除, lockToken可为空
func (c *Client) Delete(ctx context.Context, ref string, lockToken string) error {
	hdr := map[string]string{}
	if lockToken != "" {
		hdr[HeaderIf] = codec.FormatIfHeader(lockToken)
	}
	_, _, _, err := c.doBuffered(ctx, "DELETE", ref, hdr, nil)
	if err != nil {
		return err
	}
	c.invalidate(ctx, ref)
	return nil
}

// Copy 服务端复制, overwrite=false时目标已存在会返回412
func (c *Client) Copy(ctx context.Context, src string, dst string, overwrite bool) error {
	return c.copyMove(ctx, MethodCopy, src, dst, overwrite)
}

// Move 服务端移动
func (c *Client) Move(ctx context.Context, src string, dst string, overwrite bool) error {
	return c.copyMove(ctx, MethodMove, src, dst, overwrite)
}

func (c *Client) copyMove(ctx context.Context, method string, src string, dst string, overwrite bool) error {
	ow := "F"
	if overwrite {
		ow = "T"
	}
	hdr := map[string]string{
		HeaderDestination: c.resolveUrl(dst),
		HeaderOverwrite:   ow,
		HeaderDepth:       codec.FormatDepth(codec.DepthInfinity),
	}
	_, _, _, err := c.doBuffered(ctx, method, src, hdr, nil)
	if err != nil {
		return err
	}
	c.invalidate(ctx, src, dst)
	return nil
}

// Compliance 通过OPTIONS探测服务端支持的DAV等级token
func (c *Client) Compliance(ctx context.Context, ref string) ([]string, error) {
	_, hdr, _, err := c.doBuffered(ctx, "OPTIONS", ref, nil, nil)
	if err != nil {
		return nil, err
	}
	var rs []string
	for _, line := range hdr.Values("Dav") {
		for _, item := range strings.Split(line, ",") {
			item = strings.TrimSpace(item)
			if item != "" {
				rs = append(rs, item)
			}
		}
	}
	return rs, nil
}

// Quota 查询RFC4331配额, 服务端没返回的字段为-1
func (c *Client) Quota(ctx context.Context, ref string) (*entity.Quota, error) {
	ms, err := c.doMultistatus(ctx, MethodPropfind, ref,
		map[string]string{HeaderDepth: codec.FormatDepth(codec.DepthZero), "Content-Type": contentTypeXml},
		xmlBody(codec.EncodePropfind([]string{"quota-available-bytes", "quota-used-bytes"})))
	if err != nil {
		return nil, err
	}
	q := &entity.Quota{AvailableBytes: -1, UsedBytes: -1}
	if len(ms.Responses) == 0 {
		return q, nil
	}
	res := ms.Responses[0].ToResource()
	if v, ok := res.Property("quota-available-bytes"); ok {
		q.AvailableBytes = parseInt64(v, -1)
	}
	if v, ok := res.Property("quota-used-bytes"); ok {
		q.UsedBytes = parseInt64(v, -1)
	}
	return q, nil
}

func parseInt64(s string, dft int64) int64 {
	v, err := strconv.ParseInt(strings.TrimSpace(s), 10, 64)
	if err != nil {
		return dft
	}
	return v
}

// urlPath 取url的path部分, 非法url原样返回
func urlPath(u string) string {
	idx := strings.Index(u, "://")
	if idx < 0 {
		return u
	}
	rest := u[idx+3:]
	slash := strings.Index(rest, "/")
	if slash < 0 {
		return "/"
	}
	return rest[slash:]
}
