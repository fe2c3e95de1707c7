package codec

// DecodeErrorConditions 从非2xx响应体中提取RFC4918的precondition/postcondition标记
// (例如lock-token-submitted). 响应体不是合法xml或者没有error根节点时返回空, 不报错,
// 纯文本错误页是常态.
func DecodeErrorConditions(raw []byte) []string {
	if len(raw) == 0 {
		return nil
	}
	root, err := ParseDocumentBytes(raw)
	if err != nil {
		return nil
	}
	errNode := root
	if !root.Is("error") {
		errNode = root.Descendant("error")
		if errNode == nil {
			return nil
		}
	}
	rs := make([]string, 0, len(errNode.Children))
	for _, item := range errNode.Children {
		rs = append(rs, item.Local())
	}
	return rs
}
