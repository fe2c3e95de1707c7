package codec

import (
	"fmt"
	"strconv"

	"github.com/xxxsen/davclient/entity"
)

// EncodeSearch 生成RFC5323 basicsearch请求体
func EncodeSearch(req *entity.SearchRequest) ([]byte, error) {
	w := newBodyWriter()
	w.Open("D:searchrequest", davNSAttr)
	w.Open("D:basicsearch")
	w.Open("D:select").Open("D:prop")
	props := req.Properties
	if len(props) == 0 {
		props = []string{"displayname"}
	}
	for _, name := range props {
		w.Empty("D:" + name)
	}
	w.Close("D:prop").Close("D:select")
	w.Open("D:from").Open("D:scope")
	w.Elem("D:href", req.Scope)
	w.Elem("D:depth", FormatDepth(req.Depth))
	w.Close("D:scope").Close("D:from")
	if req.Where != nil {
		w.Open("D:where")
		if err := writeSearchCondition(w, req.Where); err != nil {
			return nil, err
		}
		w.Close("D:where")
	}
	if req.Limit > 0 {
		w.Open("D:limit").Elem("D:nresults", strconv.FormatInt(req.Limit, 10)).Close("D:limit")
	}
	w.Close("D:basicsearch")
	w.Close("D:searchrequest")
	return w.Bytes(), nil
}

func writeSearchCondition(w *bodyWriter, cond *entity.SearchCondition) error {
	switch cond.Op {
	case "and", "or", "not":
		if len(cond.Children) == 0 {
			return fmt.Errorf("search op %s requires children", cond.Op)
		}
		w.Open("D:" + cond.Op)
		for _, child := range cond.Children {
			if err := writeSearchCondition(w, child); err != nil {
				return err
			}
		}
		w.Close("D:" + cond.Op)
	case "eq", "lt", "gt", "lte", "gte", "like", "contains":
		name, ok := searchOpElem[cond.Op]
		if !ok {
			return fmt.Errorf("unknown search op:%s", cond.Op)
		}
		w.Open("D:" + name)
		w.Open("D:prop").Empty("D:" + cond.Property).Close("D:prop")
		w.Elem("D:literal", cond.Value)
		w.Close("D:" + name)
	default:
		return fmt.Errorf("unknown search op:%s", cond.Op)
	}
	return nil
}

var searchOpElem = map[string]string{
	"eq":       "eq",
	"lt":       "lt",
	"gt":       "gt",
	"lte":      "lte",
	"gte":      "gte",
	"like":     "like",
	"contains": "contains",
}

// EncodeSyncCollection 生成RFC6578 sync-collection REPORT请求体
func EncodeSyncCollection(req *entity.SyncRequest) []byte {
	w := newBodyWriter()
	w.Open("D:sync-collection", davNSAttr)
	w.Elem("D:sync-token", req.SyncToken)
	level := "1"
	if req.Level == DepthInfinity {
		level = "infinite"
	}
	w.Elem("D:sync-level", level)
	if req.Limit > 0 {
		w.Open("D:limit").Elem("D:nresults", strconv.FormatInt(req.Limit, 10)).Close("D:limit")
	}
	w.Open("D:prop")
	props := req.Properties
	if len(props) == 0 {
		props = []string{"getetag"}
	}
	for _, name := range props {
		w.Empty("D:" + name)
	}
	w.Close("D:prop")
	w.Close("D:sync-collection")
	return w.Bytes()
}

// DecodeSyncResponse 将sync-collection的207响应拆成变更/删除两组
func DecodeSyncResponse(raw []byte) (*entity.SyncResult, error) {
	ms, err := DecodeMultistatus(raw)
	if err != nil {
		return nil, err
	}
	rs := &entity.SyncResult{
		SyncToken: ms.SyncToken,
	}
	for _, resp := range ms.Responses {
		// 服务端用顶层404标记已删除资源
		if resp.StatusCode == 404 {
			rs.Removed = append(rs.Removed, resp.Href)
			continue
		}
		if resp.StatusCode == 507 {
			rs.Truncated = true
			continue
		}
		rs.Changed = append(rs.Changed, resp.ToResource())
	}
	return rs, nil
}

// EncodeVersionTreeReport 生成RFC3253 version-tree REPORT请求体
func EncodeVersionTreeReport(names []string) []byte {
	w := newBodyWriter()
	w.Open("D:version-tree", davNSAttr)
	w.Open("D:prop")
	if len(names) == 0 {
		names = []string{"version-name", "creator-displayname", "getlastmodified"}
	}
	for _, name := range names {
		w.Empty("D:" + name)
	}
	w.Close("D:prop")
	w.Close("D:version-tree")
	return w.Bytes()
}

// EncodeBind 生成RFC5842 BIND请求体, segment为新绑定名, href为已有资源
func EncodeBind(segment string, href string) []byte {
	w := newBodyWriter()
	w.Open("D:bind", davNSAttr)
	w.Elem("D:segment", segment)
	w.Elem("D:href", href)
	w.Close("D:bind")
	return w.Bytes()
}

// EncodeUnbind 生成RFC5842 UNBIND请求体
func EncodeUnbind(segment string) []byte {
	w := newBodyWriter()
	w.Open("D:unbind", davNSAttr)
	w.Elem("D:segment", segment)
	w.Close("D:unbind")
	return w.Bytes()
}

// EncodeRebind 生成RFC5842 REBIND请求体
func EncodeRebind(segment string, href string) []byte {
	w := newBodyWriter()
	w.Open("D:rebind", davNSAttr)
	w.Elem("D:segment", segment)
	w.Elem("D:href", href)
	w.Close("D:rebind")
	return w.Bytes()
}
