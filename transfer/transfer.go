package transfer

import (
	"fmt"
	"io"
	"os"
	"path"

	"github.com/google/uuid"
)

// SaveToFile 将流落盘到dst: 先写uuid后缀的临时文件, 成功后rename覆盖.
// 中途失败时临时文件会被清掉, 已存在的dst不受影响; 但本层不负责清理
// 调用方自己半途写出的目标文件, 删除策略是调用方的事.
func SaveToFile(dst string, r io.Reader) error {
	dir := path.Dir(dst)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("create directory failed, err:%w", err)
	}
	dstTmp := dst + "." + uuid.NewString() + ".temp"
	f, err := os.OpenFile(dstTmp, os.O_WRONLY|os.O_CREATE|os.O_TRUNC, 0644)
	if err != nil {
		return fmt.Errorf("create tmp file failed, err:%w", err)
	}
	defer os.Remove(dstTmp)
	if _, err := io.Copy(f, r); err != nil {
		_ = f.Close()
		return fmt.Errorf("copy stream to tmp file failed, err:%w", err)
	}
	if err := f.Close(); err != nil {
		return fmt.Errorf("close tmp file failed, err:%w", err)
	}
	if err := os.Rename(dstTmp, dst); err != nil {
		return fmt.Errorf("rename tmp file to target failed, err:%w", err)
	}
	return nil
}

// IsReplayable 判断请求体能否重发. 只有可Seek的源(文件/字节流)支持401重试,
// 纯流式body重放会把空body发出去, 上层必须拒绝.
func IsReplayable(r io.Reader) bool {
	if r == nil {
		return true
	}
	switch r.(type) {
	case io.Seeker:
		return true
	default:
		return false
	}
}

// Rewind 将可重放的body拨回起点
func Rewind(r io.Reader) error {
	if r == nil {
		return nil
	}
	s, ok := r.(io.Seeker)
	if !ok {
		return fmt.Errorf("body not seekable")
	}
	if _, err := s.Seek(0, io.SeekStart); err != nil {
		return fmt.Errorf("rewind body failed, err:%w", err)
	}
	return nil
}
