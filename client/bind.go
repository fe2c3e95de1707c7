package client

import (
	"context"

	"github.com/xxxsen/davclient/codec"
)

// Bind RFC5842: 在collection下为已有资源建新绑定名(类似硬链接)
func (c *Client) Bind(ctx context.Context, collection string, segment string, href string) error {
	_, _, _, err := c.doBuffered(ctx, MethodBind, collection,
		map[string]string{"Content-Type": contentTypeXml},
		xmlBody(codec.EncodeBind(segment, c.resolveUrl(href))))
	if err != nil {
		return err
	}
	c.invalidate(ctx, collection)
	return nil
}

// Unbind 删除绑定名, 其他绑定仍指向同一资源
func (c *Client) Unbind(ctx context.Context, collection string, segment string) error {
	_, _, _, err := c.doBuffered(ctx, MethodUnbind, collection,
		map[string]string{"Content-Type": contentTypeXml},
		xmlBody(codec.EncodeUnbind(segment)))
	if err != nil {
		return err
	}
	c.invalidate(ctx, collection)
	return nil
}

// Rebind 原子地把绑定移到新collection
func (c *Client) Rebind(ctx context.Context, collection string, segment string, href string) error {
	_, _, _, err := c.doBuffered(ctx, MethodRebind, collection,
		map[string]string{"Content-Type": contentTypeXml},
		xmlBody(codec.EncodeRebind(segment, c.resolveUrl(href))))
	if err != nil {
		return err
	}
	c.invalidate(ctx, collection)
	return nil
}
