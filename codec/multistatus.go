package codec

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/xxxsen/davclient/entity"
)

// Propstat 一组共享同一status的属性
type Propstat struct {
	StatusCode int
	Status     string
	Props      map[string]string // local name => 文本内容, 无文本的标记属性存PropMarkerValue
	Raw        map[string]*Node  // local name => 原始节点, acl这类结构化属性从这里取
	Collection bool              // resourcetype后代中出现collection
	Lock       *LockInfo         // lockdiscovery里解析出的活动锁, 可能为nil
}

// Response multistatus中单个href的结果.
// 要么带顶层status(简单形态), 要么带>=1个propstat(属性形态), 两种形态都要保留,
// 属性的成败是按propstat分组的, 不能合并成单一状态.
type Response struct {
	Href       string
	Status     string
	StatusCode int
	Propstats  []*Propstat
}

// Multistatus 207响应体
type Multistatus struct {
	Responses []*Response
	SyncToken string // sync-collection响应才有
}

// DecodeMultistatus 解析207响应体, 元素匹配只看local name
func DecodeMultistatus(raw []byte) (*Multistatus, error) {
	root, err := ParseDocumentBytes(raw)
	if err != nil {
		return nil, err
	}
	if !root.Is("multistatus") {
		return nil, fmt.Errorf("%w: root is %s, not multistatus", ErrMalformedResponse, root.Name.Local)
	}
	ms := &Multistatus{}
	if tok := root.Child("sync-token"); tok != nil {
		ms.SyncToken = tok.InnerText()
	}
	for _, rnode := range root.ChildAll("response") {
		resp, err := decodeResponse(rnode)
		if err != nil {
			return nil, err
		}
		ms.Responses = append(ms.Responses, resp)
	}
	return ms, nil
}

func decodeResponse(rnode *Node) (*Response, error) {
	href := rnode.Child("href")
	if href == nil {
		return nil, fmt.Errorf("%w: response without href", ErrMalformedResponse)
	}
	resp := &Response{
		Href: href.InnerText(),
	}
	if st := rnode.Child("status"); st != nil {
		resp.Status = st.InnerText()
		resp.StatusCode = parseStatusLine(resp.Status)
	}
	for _, psnode := range rnode.ChildAll("propstat") {
		ps, err := decodePropstat(psnode)
		if err != nil {
			return nil, err
		}
		resp.Propstats = append(resp.Propstats, ps)
	}
	if resp.Status == "" && len(resp.Propstats) == 0 {
		return nil, fmt.Errorf("%w: response carries neither status nor propstat, href:%s", ErrMalformedResponse, resp.Href)
	}
	return resp, nil
}

func decodePropstat(psnode *Node) (*Propstat, error) {
	ps := &Propstat{
		Props: make(map[string]string),
		Raw:   make(map[string]*Node),
	}
	if st := psnode.Child("status"); st != nil {
		ps.Status = st.InnerText()
		ps.StatusCode = parseStatusLine(ps.Status)
	}
	prop := psnode.Child("prop")
	if prop == nil {
		return ps, nil
	}
	for _, item := range prop.Children {
		name := item.Local()
		ps.Raw[name] = item
		switch name {
		case "resourcetype":
			// collection可能被扩展元素嵌套, 扫全部后代
			if item.Descendant("collection") != nil {
				ps.Collection = true
				ps.Props[entity.ResourceTypeCollection] = entity.PropMarkerValue
			}
			for _, sub := range item.Children {
				if !sub.Is("collection") {
					ps.Props[sub.Local()] = entity.PropMarkerValue
				}
			}
		case "lockdiscovery":
			if lock, err := decodeActiveLock(psnode); err == nil {
				ps.Lock = lock
			}
			ps.Props[name] = item.InnerText()
		default:
			text := item.InnerText()
			if text == "" && len(item.Children) > 0 {
				// 无文本但有子元素的标记属性
				text = entity.PropMarkerValue
			}
			ps.Props[name] = text
		}
	}
	return ps, nil
}

// parseStatusLine 从"HTTP/1.1 200 OK"中取出状态码, 解析失败返回0
func parseStatusLine(line string) int {
	items := strings.Fields(line)
	if len(items) < 2 {
		return 0
	}
	code, err := strconv.Atoi(items[1])
	if err != nil {
		return 0
	}
	return code
}

// ToResources 将multistatus转为资源描述列表.
// 资源字段只取2xx的propstat, 失败分组的属性留在Response.Propstats里供调用方检查.
func (ms *Multistatus) ToResources() []*entity.Resource {
	rs := make([]*entity.Resource, 0, len(ms.Responses))
	for _, resp := range ms.Responses {
		rs = append(rs, resp.ToResource())
	}
	return rs
}

// ToResource 将单个response转为资源描述
func (resp *Response) ToResource() *entity.Resource {
	res := &entity.Resource{
		Href:          resp.Href,
		StatusCode:    resp.StatusCode,
		ContentLength: -1,
		Properties:    make(map[string]string),
	}
	for _, ps := range resp.Propstats {
		if ps.StatusCode < 200 || ps.StatusCode > 299 {
			continue
		}
		if res.StatusCode == 0 {
			res.StatusCode = ps.StatusCode
		}
		fillResource(res, ps)
	}
	return res
}

func fillResource(res *entity.Resource, ps *Propstat) {
	for name, val := range ps.Props {
		switch name {
		case "displayname":
			res.DisplayName = val
		case "getcontenttype":
			res.ContentType = val
		case "getetag":
			res.Etag = val
		case "getcontentlength":
			if size, err := strconv.ParseInt(val, 10, 64); err == nil {
				res.ContentLength = size
			}
		case "creationdate":
			res.Ctime = parseDavTime(val)
		case "getlastmodified":
			res.Mtime = parseDavTime(val)
		default:
			res.Properties[name] = val
		}
	}
	if ps.Collection {
		res.ResourceTypes = append(res.ResourceTypes, entity.ResourceTypeCollection)
	}
}

// parseDavTime creationdate一般是RFC3339, getlastmodified是RFC1123, 但实现各异, 多试几种
func parseDavTime(s string) time.Time {
	for _, layout := range []string{time.RFC3339, time.RFC1123, time.RFC1123Z, time.RFC850, time.ANSIC} {
		if t, err := time.Parse(layout, s); err == nil {
			return t
		}
	}
	return time.Time{}
}
