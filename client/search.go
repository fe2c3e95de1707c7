package client

import (
	"context"

	"github.com/xxxsen/davclient/codec"
	"github.com/xxxsen/davclient/entity"
)

// Search RFC5323 basicsearch, scope为空时默认base url根
func (c *Client) Search(ctx context.Context, req *entity.SearchRequest) ([]*entity.Resource, error) {
	if req.Scope == "" {
		req.Scope = "/"
	}
	raw, err := codec.EncodeSearch(req)
	if err != nil {
		return nil, err
	}
	ms, err := c.doMultistatus(ctx, MethodSearch, req.Scope,
		map[string]string{"Content-Type": contentTypeXml},
		xmlBody(raw))
	if err != nil {
		return nil, err
	}
	return ms.ToResources(), nil
}

// SyncCollection RFC6578增量同步, 传上一轮的SyncToken拿增量, 空token全量
func (c *Client) SyncCollection(ctx context.Context, ref string, req *entity.SyncRequest) (*entity.SyncResult, error) {
	_, _, raw, err := c.doBuffered(ctx, MethodReport, ref,
		map[string]string{"Content-Type": contentTypeXml},
		xmlBody(codec.EncodeSyncCollection(req)))
	if err != nil {
		return nil, err
	}
	return codec.DecodeSyncResponse(raw)
}
