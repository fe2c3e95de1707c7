package codec

import (
	"bytes"
	"encoding/xml"
)

const (
	xmlHeader = `<?xml version="1.0" encoding="utf-8"?>` + "\n"

	nsDav = "DAV:"
)

// bodyWriter 生成带D:前缀的请求体.
// 请求侧的元素名全部是编译期确定的, 直接拼串比挂一堆struct tag省事,
// 文本内容统一走EscapeText防注入.
type bodyWriter struct {
	buf bytes.Buffer
}

func newBodyWriter() *bodyWriter {
	w := &bodyWriter{}
	w.buf.WriteString(xmlHeader)
	return w
}

// Open 写入开始标签, extra为原样附加的属性串(形如` xmlns:D="DAV:"`)
func (w *bodyWriter) Open(name string, extra ...string) *bodyWriter {
	w.buf.WriteString("<" + name)
	for _, item := range extra {
		w.buf.WriteString(item)
	}
	w.buf.WriteString(">")
	return w
}

func (w *bodyWriter) Close(name string) *bodyWriter {
	w.buf.WriteString("</" + name + ">")
	return w
}

// Empty 写入自闭合标签
func (w *bodyWriter) Empty(name string) *bodyWriter {
	w.buf.WriteString("<" + name + "/>")
	return w
}

func (w *bodyWriter) Text(s string) *bodyWriter {
	_ = xml.EscapeText(&w.buf, []byte(s))
	return w
}

// Elem 写入带文本的完整元素
func (w *bodyWriter) Elem(name string, text string) *bodyWriter {
	return w.Open(name).Text(text).Close(name)
}

func (w *bodyWriter) Raw(s string) *bodyWriter {
	w.buf.WriteString(s)
	return w
}

func (w *bodyWriter) Bytes() []byte {
	return w.buf.Bytes()
}

const davNSAttr = ` xmlns:D="DAV:"`
