package utils

import (
	"github.com/cespare/xxhash/v2"
)

// HashUrl url规整后做缓存key, 避免整串url做map key的内存开销
func HashUrl(u string) uint64 {
	return xxhash.Sum64String(u)
}
