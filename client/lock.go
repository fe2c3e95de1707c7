package client

import (
	"context"
	"net/http"

	"github.com/xxxsen/davclient/codec"

	"github.com/xxxsen/common/logutil"
	"go.uber.org/zap"
)

// Lock 申请独占写锁, 返回锁token. token只在进程内流转, 不落盘.
func (c *Client) Lock(ctx context.Context, ref string, owner string, timeoutSeconds int64) (*codec.LockInfo, error) {
	hdr := map[string]string{
		HeaderTimeout:  codec.FormatTimeout(timeoutSeconds),
		HeaderDepth:    codec.FormatDepth(codec.DepthZero),
		"Content-Type": contentTypeXml,
	}
	_, _, raw, err := c.doBuffered(ctx, MethodLock, ref, hdr,
		xmlBody(codec.EncodeLock(owner, codec.LockScopeExclusive)))
	if err != nil {
		return nil, err
	}
	info, err := codec.DecodeLockResponse(raw)
	if err != nil {
		return nil, err
	}
	return info, nil
}

// RefreshLock 续锁: 无body的LOCK带If头. 服务端没回新token时沿用传入的token,
// 这是协议允许的回退, 不算失败.
func (c *Client) RefreshLock(ctx context.Context, ref string, token string, timeoutSeconds int64) (string, error) {
	hdr := map[string]string{
		HeaderTimeout: codec.FormatTimeout(timeoutSeconds),
		HeaderIf:      codec.FormatIfHeader(token),
	}
	_, _, raw, err := c.doBuffered(ctx, MethodLock, ref, hdr, nil)
	if err != nil {
		return "", err
	}
	info, err := codec.DecodeLockResponse(raw)
	if err != nil || info.Token == "" {
		logutil.GetLogger(ctx).Debug("refresh response carries no token, keep caller token",
			zap.String("ref", ref))
		return token, nil
	}
	return info.Token, nil
}

// Unlock 释放锁
func (c *Client) Unlock(ctx context.Context, ref string, token string) error {
	hdr := map[string]string{
		HeaderLockToken: codec.FormatLockTokenHeader(token),
	}
	_, _, _, err := c.doBuffered(ctx, MethodUnlock, ref, hdr, nil)
	return err
}

// DiscoverLock 通过PROPFIND的lockdiscovery属性查当前活动锁, 无锁返回nil
func (c *Client) DiscoverLock(ctx context.Context, ref string) (*codec.LockInfo, error) {
	ms, err := c.doMultistatus(ctx, MethodPropfind, ref,
		map[string]string{HeaderDepth: codec.FormatDepth(codec.DepthZero), "Content-Type": contentTypeXml},
		xmlBody(codec.EncodePropfind([]string{"lockdiscovery"})))
	if err != nil {
		return nil, err
	}
	for _, resp := range ms.Responses {
		for _, ps := range resp.Propstats {
			if ps.StatusCode == http.StatusOK && ps.Lock != nil {
				return ps.Lock, nil
			}
		}
	}
	return nil, nil
}
