package codec

import (
	"bytes"
	"encoding/xml"
	"fmt"
	"io"
	"strings"
)

// Node 是一棵命名空间无关的xml节点树.
// webdav各家服务端对namespace prefix的处理差异极大(D:/d:/无prefix/自定义prefix),
// 所有response解析统一走这里, 只按local name匹配, 不在各个decoder里重复实现.
type Node struct {
	Name     xml.Name
	Attrs    []xml.Attr
	Children []*Node
	Text     string
}

// ParseDocument 将xml文档解析为节点树, 返回根节点
func ParseDocument(r io.Reader) (*Node, error) {
	dec := xml.NewDecoder(r)
	for {
		tok, err := dec.Token()
		if err == io.EOF {
			return nil, fmt.Errorf("%w: no root element", ErrMalformedResponse)
		}
		if err != nil {
			return nil, fmt.Errorf("%w: read token failed, err:%v", ErrMalformedResponse, err)
		}
		start, ok := tok.(xml.StartElement)
		if !ok {
			continue
		}
		return parseElement(dec, start)
	}
}

func ParseDocumentBytes(raw []byte) (*Node, error) {
	return ParseDocument(bytes.NewReader(raw))
}

func parseElement(dec *xml.Decoder, start xml.StartElement) (*Node, error) {
	n := &Node{
		Name:  start.Name,
		Attrs: start.Attr,
	}
	var text strings.Builder
	for {
		tok, err := dec.Token()
		if err != nil {
			return nil, fmt.Errorf("%w: element not closed, name:%s, err:%v", ErrMalformedResponse, start.Name.Local, err)
		}
		switch t := tok.(type) {
		case xml.StartElement:
			child, err := parseElement(dec, t)
			if err != nil {
				return nil, err
			}
			n.Children = append(n.Children, child)
		case xml.CharData:
			text.Write(t)
		case xml.EndElement:
			n.Text = strings.TrimSpace(text.String())
			return n, nil
		}
	}
}

// Local 返回小写化的local name
func (n *Node) Local() string {
	return strings.ToLower(n.Name.Local)
}

// Is 按local name比较, 忽略namespace
func (n *Node) Is(local string) bool {
	return strings.EqualFold(n.Name.Local, local)
}

// Child 返回第一个local name匹配的直接子节点
func (n *Node) Child(local string) *Node {
	for _, c := range n.Children {
		if c.Is(local) {
			return c
		}
	}
	return nil
}

// ChildAll 返回所有local name匹配的直接子节点
func (n *Node) ChildAll(local string) []*Node {
	var rs []*Node
	for _, c := range n.Children {
		if c.Is(local) {
			rs = append(rs, c)
		}
	}
	return rs
}

// Descendant 深度优先查找local name匹配的后代节点, 包含间接子级.
// resourcetype下的collection可能被扩展元素包一层, 必须扫全部后代.
func (n *Node) Descendant(local string) *Node {
	for _, c := range n.Children {
		if c.Is(local) {
			return c
		}
		if sub := c.Descendant(local); sub != nil {
			return sub
		}
	}
	return nil
}

// Path 逐级按local name下钻, 任意一级缺失返回nil
func (n *Node) Path(locals ...string) *Node {
	cur := n
	for _, item := range locals {
		cur = cur.Child(item)
		if cur == nil {
			return nil
		}
	}
	return cur
}

// InnerText 返回节点自身及全部后代的文本拼接
func (n *Node) InnerText() string {
	if len(n.Children) == 0 {
		return n.Text
	}
	var sb strings.Builder
	sb.WriteString(n.Text)
	for _, c := range n.Children {
		sb.WriteString(c.InnerText())
	}
	return strings.TrimSpace(sb.String())
}
