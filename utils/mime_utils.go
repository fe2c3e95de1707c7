package utils

import (
	"mime"
	"path"

	"github.com/gabriel-vasile/mimetype"
)

const defaultMimeType = "application/octet-stream"

// DetermineMimeType 基于扩展名提取文件类型
func DetermineMimeType(filename string) string {
	ext := path.Ext(filename)
	mimeType := mime.TypeByExtension(ext)
	if mimeType == "" {
		return defaultMimeType
	}
	return mimeType
}

// SniffFileMimeType 读文件头嗅探类型, 嗅探不出再退回扩展名
func SniffFileMimeType(filename string) string {
	mt, err := mimetype.DetectFile(filename)
	if err == nil && mt.String() != defaultMimeType {
		return mt.String()
	}
	return DetermineMimeType(filename)
}
