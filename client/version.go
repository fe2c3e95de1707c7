package client

import (
	"context"
	"fmt"

	"github.com/xxxsen/davclient/cacheapi"
	cachewrap "github.com/xxxsen/davclient/cacheapi/adaptor"
	"github.com/xxxsen/davclient/codec"
	"github.com/xxxsen/davclient/entity"
	"github.com/xxxsen/davclient/utils"

	lru "github.com/hashicorp/golang-lru/v2"
	"github.com/xxxsen/common/logutil"
	"go.uber.org/zap"
)

const defaultVersionHistoryCacheSize = 256

// VersionControl 将资源纳入版本控制
func (c *Client) VersionControl(ctx context.Context, ref string) error {
	_, _, _, err := c.doBuffered(ctx, MethodVersionControl, ref, nil, nil)
	return err
}

// Checkout 检出资源准备修改, lockToken可为空
func (c *Client) Checkout(ctx context.Context, ref string) error {
	_, _, _, err := c.doBuffered(ctx, MethodCheckout, ref, nil, nil)
	return err
}

// Checkin 提交新版本
func (c *Client) Checkin(ctx context.Context, ref string) error {
	_, _, _, err := c.doBuffered(ctx, MethodCheckin, ref, nil, nil)
	return err
}

// Uncheckout 放弃检出
func (c *Client) Uncheckout(ctx context.Context, ref string) error {
	_, _, _, err := c.doBuffered(ctx, MethodUncheckout, ref, nil, nil)
	return err
}

// ListVersions 通过version-tree REPORT枚举资源的历史版本
func (c *Client) ListVersions(ctx context.Context, ref string) ([]*entity.Version, error) {
	ms, err := c.doMultistatus(ctx, MethodReport, ref,
		map[string]string{HeaderDepth: codec.FormatDepth(codec.DepthZero), "Content-Type": contentTypeXml},
		xmlBody(codec.EncodeVersionTreeReport(nil)))
	if err != nil {
		return nil, err
	}
	rs := make([]*entity.Version, 0, len(ms.Responses))
	for _, resp := range ms.Responses {
		v := &entity.Version{Href: resp.Href}
		for _, ps := range resp.Propstats {
			if name, ok := ps.Props["version-name"]; ok {
				v.VersionName = name
			}
			if creator, ok := ps.Props["creator-displayname"]; ok {
				v.CreatorName = creator
			}
		}
		rs = append(rs, v)
	}
	return rs, nil
}

// GetVersion 按版本名取历史内容. 先走version-history发现版本存储地址,
// 发现失败(属性缺失/查询报错)时降级为带Label头直接GET, 降级路径不会额外抛错,
// 最终要么拿到内容要么返回分类后的错误.
func (c *Client) GetVersion(ctx context.Context, ref string, versionName string) ([]byte, error) {
	href, err := c.resolveVersionHref(ctx, ref, versionName)
	if err == nil && href != "" {
		return c.GetBytes(ctx, href)
	}
	logutil.GetLogger(ctx).Debug("version history discovery failed, fallback to label header",
		zap.String("ref", ref), zap.String("version", versionName), zap.Error(err))
	_, _, raw, err := c.doBuffered(ctx, "GET", ref, map[string]string{HeaderLabel: versionName}, nil)
	if err != nil {
		return nil, err
	}
	return raw, nil
}

// resolveVersionHref 查version-history collection并在其中按version-name匹配
func (c *Client) resolveVersionHref(ctx context.Context, ref string, versionName string) (string, error) {
	history, err := c.versionHistoryUrl(ctx, ref)
	if err != nil {
		return "", err
	}
	ms, err := c.doMultistatus(ctx, MethodPropfind, history,
		map[string]string{HeaderDepth: codec.FormatDepth(codec.DepthOne), "Content-Type": contentTypeXml},
		xmlBody(codec.EncodePropfind([]string{"version-name"})))
	if err != nil {
		return "", err
	}
	for _, resp := range ms.Responses {
		for _, ps := range resp.Propstats {
			if ps.Props["version-name"] == versionName {
				return resp.Href, nil
			}
		}
	}
	return "", fmt.Errorf("version not found in history, version:%s", versionName)
}

// versionHistoryUrl depth-0属性查询发现version-history地址, 结果进lru缓存
func (c *Client) versionHistoryUrl(ctx context.Context, ref string) (string, error) {
	return cacheapi.Load(ctx, c.vhCache, utils.HashUrl(c.resolveUrl(ref)), func(ctx context.Context, _ uint64) (string, error) {
		ms, err := c.doMultistatus(ctx, MethodPropfind, ref,
			map[string]string{HeaderDepth: codec.FormatDepth(codec.DepthZero), "Content-Type": contentTypeXml},
			xmlBody(codec.EncodePropfind([]string{"version-history"})))
		if err != nil {
			return "", err
		}
		for _, resp := range ms.Responses {
			for _, ps := range resp.Propstats {
				node, ok := ps.Raw["version-history"]
				if !ok {
					continue
				}
				if href := node.Descendant("href"); href != nil && href.InnerText() != "" {
					return href.InnerText(), nil
				}
			}
		}
		return "", fmt.Errorf("no version-history property, ref:%s", ref)
	})
}

func newVersionHistoryCache() cacheapi.ICache[uint64, string] {
	lc, err := lru.New[uint64, string](defaultVersionHistoryCacheSize)
	if err != nil {
		// size为正不会失败
		panic(fmt.Sprintf("init version history cache failed, err:%v", err))
	}
	return cachewrap.WrapLruCache(lc)
}
