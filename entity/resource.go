package entity

import (
	"encoding/json"
	"time"
)

const (
	// 部分服务端(apache mod_dav等)不返回resourcetype, 只能通过content-type识别目录
	DirContentType = "httpd/unix-directory"

	ResourceTypeCollection = "collection"

	// 无文本内容的标记属性(例如collection)在自定义属性表中的占位值
	PropMarkerValue = "true"
)

// Resource 描述multistatus中单个href对应的资源信息
type Resource struct {
	Href          string            `json:"href"`
	StatusCode    int               `json:"status_code"`
	DisplayName   string            `json:"display_name"`
	ContentType   string            `json:"content_type"`
	ContentLength int64             `json:"content_length"`
	Etag          string            `json:"etag"`
	ResourceTypes []string          `json:"resource_types,omitempty"`
	Ctime         time.Time         `json:"ctime"`
	Mtime         time.Time         `json:"mtime"`
	Properties    map[string]string `json:"properties,omitempty"`
}

// IsDir 运行时推导, 不落存储: resourcetype带collection或者content-type为目录标记均视为目录
func (r *Resource) IsDir() bool {
	for _, item := range r.ResourceTypes {
		if item == ResourceTypeCollection {
			return true
		}
	}
	return r.ContentType == DirContentType
}

func (r *Resource) Property(name string) (string, bool) {
	v, ok := r.Properties[name]
	return v, ok
}

func (r *Resource) String() string {
	raw, _ := json.Marshal(r)
	return string(raw)
}
