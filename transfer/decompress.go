package transfer

import (
	"fmt"
	"io"
	"strings"

	"github.com/klauspost/compress/flate"
	"github.com/klauspost/compress/gzip"
)

const (
	AcceptEncodingValue = "gzip, deflate"
)

type wrappedBody struct {
	io.Reader
	closers []io.Closer
}

func (w *wrappedBody) Close() error {
	var last error
	for _, c := range w.closers {
		if err := c.Close(); err != nil {
			last = err
		}
	}
	return last
}

// WrapDecompress 根据Content-Encoding透明解压响应体.
// 只认gzip和raw deflate, 其他encoding原样透传, 进度按接收字节(解压前)计.
func WrapDecompress(body io.ReadCloser, contentEncoding string) (io.ReadCloser, error) {
	switch strings.ToLower(strings.TrimSpace(contentEncoding)) {
	case "gzip":
		zr, err := gzip.NewReader(body)
		if err != nil {
			_ = body.Close()
			return nil, fmt.Errorf("create gzip reader failed, err:%w", err)
		}
		return &wrappedBody{Reader: zr, closers: []io.Closer{zr, body}}, nil
	case "deflate":
		fr := flate.NewReader(body)
		return &wrappedBody{Reader: fr, closers: []io.Closer{fr, body}}, nil
	default:
		return body, nil
	}
}
