package transfer

import "io"

// ProgressFunc 进度回调, 在io路径上同步调用, total未知时为-1.
// 回调里不要做重活, 会拖慢传输.
type ProgressFunc func(transferred int64, total int64)

type countingReader struct {
	r     io.Reader
	total int64
	done  int64
	cb    ProgressFunc
}

// NewProgressReader 包装reader, 每读一块上报一次累计字节数, cb为nil时原样返回
func NewProgressReader(r io.Reader, total int64, cb ProgressFunc) io.Reader {
	if cb == nil {
		return r
	}
	return &countingReader{r: r, total: total, cb: cb}
}

func (c *countingReader) Read(p []byte) (int, error) {
	n, err := c.r.Read(p)
	if n > 0 {
		c.done += int64(n)
		c.cb(c.done, c.total)
	}
	return n, err
}
