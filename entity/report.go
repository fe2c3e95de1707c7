package entity

// SearchRequest RFC5323 basicsearch参数
type SearchRequest struct {
	Scope      string           `json:"scope"`                // 检索的collection href
	Depth      int              `json:"depth"`                // 0/1/-1(infinity)
	Properties []string         `json:"properties,omitempty"` // 期望返回的属性
	Where      *SearchCondition `json:"where,omitempty"`
	Limit      int64            `json:"limit,omitempty"`
}

// SearchCondition basicsearch的where子树, Op取比较op或and/or/not
type SearchCondition struct {
	Op       string             `json:"op"` // eq/lt/gt/lte/gte/like/contains/and/or/not
	Property string             `json:"property,omitempty"`
	Value    string             `json:"value,omitempty"`
	Children []*SearchCondition `json:"children,omitempty"`
}

// SyncRequest RFC6578 sync-collection参数
type SyncRequest struct {
	SyncToken  string   `json:"sync_token"` // 空串表示全量同步
	Level      int      `json:"level"`      // 1或-1(infinite)
	Limit      int64    `json:"limit,omitempty"`
	Properties []string `json:"properties,omitempty"`
}

// SyncResult 一轮sync-collection的结果
type SyncResult struct {
	SyncToken string      `json:"sync_token"`
	Changed   []*Resource `json:"changed,omitempty"`
	Removed   []string    `json:"removed,omitempty"` // 被删除资源的href
	Truncated bool        `json:"truncated,omitempty"`
}

// Version 版本历史中的一个版本
type Version struct {
	Href         string `json:"href"`
	VersionName  string `json:"version_name"`
	CreatorName  string `json:"creator_name,omitempty"`
	CheckedState string `json:"checked_state,omitempty"` // checked-in/checked-out
}
