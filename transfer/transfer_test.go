package transfer

import (
	"bytes"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/klauspost/compress/flate"
	"github.com/klauspost/compress/gzip"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func gzipBytes(t *testing.T, data []byte) []byte {
	var buf bytes.Buffer
	zw := gzip.NewWriter(&buf)
	_, err := zw.Write(data)
	require.NoError(t, err)
	require.NoError(t, zw.Close())
	return buf.Bytes()
}

func deflateBytes(t *testing.T, data []byte) []byte {
	var buf bytes.Buffer
	fw, err := flate.NewWriter(&buf, flate.DefaultCompression)
	require.NoError(t, err)
	_, err = fw.Write(data)
	require.NoError(t, err)
	require.NoError(t, fw.Close())
	return buf.Bytes()
}

type trackCloser struct {
	io.Reader
	closed bool
}

func (c *trackCloser) Close() error {
	c.closed = true
	return nil
}

func TestWrapDecompressGzip(t *testing.T) {
	payload := []byte(strings.Repeat("hello webdav ", 100))
	raw := &trackCloser{Reader: bytes.NewReader(gzipBytes(t, payload))}
	body, err := WrapDecompress(raw, "gzip")
	require.NoError(t, err)
	got, err := io.ReadAll(body)
	require.NoError(t, err)
	assert.Equal(t, payload, got)
	require.NoError(t, body.Close())
	assert.True(t, raw.closed)
}

func TestWrapDecompressDeflate(t *testing.T) {
	payload := []byte("deflate payload")
	raw := &trackCloser{Reader: bytes.NewReader(deflateBytes(t, payload))}
	body, err := WrapDecompress(raw, "Deflate")
	require.NoError(t, err)
	got, err := io.ReadAll(body)
	require.NoError(t, err)
	assert.Equal(t, payload, got)
	require.NoError(t, body.Close())
	assert.True(t, raw.closed)
}

func TestWrapDecompressPassthrough(t *testing.T) {
	payload := []byte("identity payload")
	raw := &trackCloser{Reader: bytes.NewReader(payload)}
	body, err := WrapDecompress(raw, "")
	require.NoError(t, err)
	got, err := io.ReadAll(body)
	require.NoError(t, err)
	assert.Equal(t, payload, got)
	// 未知encoding也原样透传
	raw2 := &trackCloser{Reader: bytes.NewReader(payload)}
	body2, err := WrapDecompress(raw2, "br")
	require.NoError(t, err)
	got, err = io.ReadAll(body2)
	require.NoError(t, err)
	assert.Equal(t, payload, got)
}

func TestWrapDecompressBadGzip(t *testing.T) {
	raw := &trackCloser{Reader: bytes.NewReader([]byte("not gzip at all"))}
	_, err := WrapDecompress(raw, "gzip")
	assert.Error(t, err)
	// 失败时原始body必须被关掉, 不能漏连接
	assert.True(t, raw.closed)
}

func TestProgressReader(t *testing.T) {
	payload := bytes.Repeat([]byte("x"), 1000)
	var last, calls int64
	r := NewProgressReader(bytes.NewReader(payload), int64(len(payload)), func(done int64, total int64) {
		calls++
		assert.Equal(t, int64(len(payload)), total)
		assert.GreaterOrEqual(t, done, last)
		last = done
	})
	got, err := io.ReadAll(r)
	require.NoError(t, err)
	assert.Equal(t, payload, got)
	assert.Equal(t, int64(len(payload)), last)
	assert.Greater(t, calls, int64(0))
}

func TestProgressReaderNilCallback(t *testing.T) {
	src := bytes.NewReader([]byte("abc"))
	r := NewProgressReader(src, 3, nil)
	// cb为nil时不包装
	assert.Equal(t, io.Reader(src), r)
}

func TestSaveToFile(t *testing.T) {
	dir := t.TempDir()
	dst := filepath.Join(dir, "sub", "out.bin")
	require.NoError(t, SaveToFile(dst, strings.NewReader("content-1")))
	data, err := os.ReadFile(dst)
	require.NoError(t, err)
	assert.Equal(t, "content-1", string(data))
	// 覆盖已有文件
	require.NoError(t, SaveToFile(dst, strings.NewReader("content-2")))
	data, err = os.ReadFile(dst)
	require.NoError(t, err)
	assert.Equal(t, "content-2", string(data))
}

type failingReader struct {
	n int
}

func (f *failingReader) Read(p []byte) (int, error) {
	if f.n > 0 {
		f.n--
		p[0] = 'x'
		return 1, nil
	}
	return 0, io.ErrUnexpectedEOF
}

func TestSaveToFileStreamFailure(t *testing.T) {
	dir := t.TempDir()
	dst := filepath.Join(dir, "out.bin")
	require.NoError(t, SaveToFile(dst, strings.NewReader("original")))
	err := SaveToFile(dst, &failingReader{n: 3})
	require.Error(t, err)
	// 失败后原文件不受影响, 临时文件被清掉
	data, err := os.ReadFile(dst)
	require.NoError(t, err)
	assert.Equal(t, "original", string(data))
	items, err := os.ReadDir(dir)
	require.NoError(t, err)
	assert.Len(t, items, 1)
}

func TestReplayable(t *testing.T) {
	assert.True(t, IsReplayable(nil))
	assert.True(t, IsReplayable(bytes.NewReader([]byte("x"))))
	assert.True(t, IsReplayable(strings.NewReader("x")))
	assert.False(t, IsReplayable(io.LimitReader(strings.NewReader("x"), 1)))

	r := strings.NewReader("abc")
	_, err := io.ReadAll(r)
	require.NoError(t, err)
	require.NoError(t, Rewind(r))
	data, err := io.ReadAll(r)
	require.NoError(t, err)
	assert.Equal(t, "abc", string(data))
	assert.Error(t, Rewind(io.LimitReader(strings.NewReader("x"), 1)))
}
