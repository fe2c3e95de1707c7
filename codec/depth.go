package codec

const (
	DepthZero     = 0
	DepthOne      = 1
	DepthInfinity = -1
)

// FormatDepth 将depth映射为Depth头的三种wire token.
// 其余数值统一落到"1", 这是历史兼容行为, 调用方传错不会报错, 注意自查.
func FormatDepth(depth int) string {
	switch depth {
	case DepthZero:
		return "0"
	case DepthOne:
		return "1"
	case DepthInfinity:
		return "infinity"
	default:
		return "1"
	}
}

// ParseDepth 是FormatDepth在{"0","1","infinity"}上的逆映射
func ParseDepth(s string) int {
	switch s {
	case "0":
		return DepthZero
	case "infinity":
		return DepthInfinity
	default:
		return DepthOne
	}
}
