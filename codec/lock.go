package codec

import "fmt"

const (
	LockScopeExclusive = "exclusive"
	LockScopeShared    = "shared"
)

// LockInfo LOCK响应中解析出来的锁信息
type LockInfo struct {
	Token   string
	Scope   string
	Owner   string
	Timeout string
	Depth   int
	Root    string
}

// EncodeLock 生成LOCK请求体, scope传空默认exclusive
func EncodeLock(owner string, scope string) []byte {
	if scope == "" {
		scope = LockScopeExclusive
	}
	w := newBodyWriter()
	w.Open("D:lockinfo", davNSAttr)
	w.Open("D:lockscope").Empty("D:" + scope).Close("D:lockscope")
	w.Open("D:locktype").Empty("D:write").Close("D:locktype")
	if owner != "" {
		w.Open("D:owner").Open("D:href").Text(owner).Close("D:href").Close("D:owner")
	}
	w.Close("D:lockinfo")
	return w.Bytes()
}

// DecodeLockResponse 解析LOCK响应(prop>lockdiscovery>activelock),
// 也用于从PROPFIND的lockdiscovery属性提取活动锁
func DecodeLockResponse(raw []byte) (*LockInfo, error) {
	root, err := ParseDocumentBytes(raw)
	if err != nil {
		return nil, err
	}
	return decodeActiveLock(root)
}

func decodeActiveLock(root *Node) (*LockInfo, error) {
	active := root.Descendant("activelock")
	if active == nil {
		return nil, fmt.Errorf("%w: no activelock element", ErrMalformedResponse)
	}
	info := &LockInfo{
		Depth: DepthZero,
	}
	// token在locktoken>href下, prefix随服务端喜好变化, 全部按local name找
	if lt := active.Child("locktoken"); lt != nil {
		if href := lt.Descendant("href"); href != nil {
			info.Token = href.InnerText()
		}
	}
	if ls := active.Child("lockscope"); ls != nil && len(ls.Children) > 0 {
		info.Scope = ls.Children[0].Local()
	}
	if owner := active.Child("owner"); owner != nil {
		info.Owner = owner.InnerText()
	}
	if timeout := active.Child("timeout"); timeout != nil {
		info.Timeout = timeout.InnerText()
	}
	if depth := active.Child("depth"); depth != nil {
		info.Depth = ParseDepth(depth.InnerText())
	}
	if rootElem := active.Child("lockroot"); rootElem != nil {
		if href := rootElem.Descendant("href"); href != nil {
			info.Root = href.InnerText()
		}
	}
	return info, nil
}

// FormatIfHeader 生成token守护操作用的If头
func FormatIfHeader(token string) string {
	return fmt.Sprintf("(<%s>)", token)
}

// FormatLockTokenHeader 生成UNLOCK用的Lock-Token头
func FormatLockTokenHeader(token string) string {
	return fmt.Sprintf("<%s>", token)
}

// FormatTimeout 生成LOCK用的Timeout头, 秒数<=0表示Infinite
func FormatTimeout(seconds int64) string {
	if seconds <= 0 {
		return "Infinite"
	}
	return fmt.Sprintf("Second-%d", seconds)
}
