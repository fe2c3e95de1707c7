package client

import (
	"context"
	"fmt"

	"github.com/xxxsen/davclient/codec"
	"github.com/xxxsen/davclient/entity"
)

// PropFind 按名查属性, names为空等价allprop, depth用codec.Depth*常量
func (c *Client) PropFind(ctx context.Context, ref string, depth int, names []string) ([]*entity.Resource, error) {
	ms, err := c.doMultistatus(ctx, MethodPropfind, ref,
		map[string]string{HeaderDepth: codec.FormatDepth(depth), "Content-Type": contentTypeXml},
		xmlBody(codec.EncodePropfind(names)))
	if err != nil {
		return nil, err
	}
	return ms.ToResources(), nil
}

// PropFindRaw 与PropFind一致但保留propstat分组, 调用方要检查逐属性成败时用这个
func (c *Client) PropFindRaw(ctx context.Context, ref string, depth int, names []string) (*codec.Multistatus, error) {
	return c.doMultistatus(ctx, MethodPropfind, ref,
		map[string]string{HeaderDepth: codec.FormatDepth(depth), "Content-Type": contentTypeXml},
		xmlBody(codec.EncodePropfind(names)))
}

// PropNames 只枚举属性名不取值
func (c *Client) PropNames(ctx context.Context, ref string) ([]string, error) {
	ms, err := c.doMultistatus(ctx, MethodPropfind, ref,
		map[string]string{HeaderDepth: codec.FormatDepth(codec.DepthZero), "Content-Type": contentTypeXml},
		xmlBody(codec.EncodePropname()))
	if err != nil {
		return nil, err
	}
	if len(ms.Responses) == 0 {
		return nil, fmt.Errorf("%w: empty multistatus for propname", codec.ErrMalformedResponse)
	}
	var rs []string
	for _, ps := range ms.Responses[0].Propstats {
		for name := range ps.Props {
			rs = append(rs, name)
		}
	}
	return rs, nil
}

// PropPatch 设置/移除属性. 207里逐属性的失败不会折叠成error,
// 调用方检查返回的propstat分组; 移除不存在的属性由服务端裁决.
func (c *Client) PropPatch(ctx context.Context, ref string, set map[string]string, remove []string) (*codec.Multistatus, error) {
	ms, err := c.doMultistatus(ctx, MethodProppatch, ref,
		map[string]string{"Content-Type": contentTypeXml},
		xmlBody(codec.EncodeProppatch(set, remove)))
	if err != nil {
		return nil, err
	}
	c.invalidate(ctx, ref)
	return ms, nil
}
