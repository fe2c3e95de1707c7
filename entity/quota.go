package entity

// Quota RFC4331配额信息, -1表示服务端未返回对应属性
type Quota struct {
	AvailableBytes int64 `json:"available_bytes"`
	UsedBytes      int64 `json:"used_bytes"`
}

func (q *Quota) HasLimit() bool {
	return q.AvailableBytes >= 0
}
