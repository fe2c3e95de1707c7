package client

import (
	"context"
	"fmt"

	"github.com/xxxsen/davclient/codec"
	"github.com/xxxsen/davclient/entity"
)

// SetAcl 整体覆盖资源的访问控制列表
func (c *Client) SetAcl(ctx context.Context, ref string, acl *entity.Acl) error {
	_, _, _, err := c.doBuffered(ctx, MethodAcl, ref,
		map[string]string{"Content-Type": contentTypeXml},
		xmlBody(codec.EncodeAcl(acl)))
	return err
}

// GetAcl 读取资源的访问控制列表
func (c *Client) GetAcl(ctx context.Context, ref string) (*entity.Acl, error) {
	ms, err := c.propfindNode(ctx, ref, "acl")
	if err != nil {
		return nil, err
	}
	for _, resp := range ms.Responses {
		for _, ps := range resp.Propstats {
			if node, ok := ps.Raw["acl"]; ok {
				return codec.DecodeAclNode(node), nil
			}
		}
	}
	return nil, fmt.Errorf("%w: no acl property in response", codec.ErrMalformedResponse)
}

// CurrentUserPrincipal 查当前认证用户对应的principal href
func (c *Client) CurrentUserPrincipal(ctx context.Context, ref string) (string, error) {
	ms, err := c.doMultistatus(ctx, MethodPropfind, ref,
		map[string]string{HeaderDepth: codec.FormatDepth(codec.DepthZero), "Content-Type": contentTypeXml},
		xmlBody(codec.EncodePropfind([]string{"current-user-principal"})))
	if err != nil {
		return "", err
	}
	for _, res := range ms.ToResources() {
		if v, ok := res.Property("current-user-principal"); ok && v != "" && v != entity.PropMarkerValue {
			return v, nil
		}
	}
	return "", fmt.Errorf("%w: no current-user-principal in response", codec.ErrMalformedResponse)
}

func (c *Client) propfindNode(ctx context.Context, ref string, prop string) (*codec.Multistatus, error) {
	return c.doMultistatus(ctx, MethodPropfind, ref,
		map[string]string{HeaderDepth: codec.FormatDepth(codec.DepthZero), "Content-Type": contentTypeXml},
		xmlBody(codec.EncodePropfind([]string{prop})))
}
