package codec

import (
	"fmt"

	"github.com/xxxsen/davclient/entity"
)

// EncodeAcl 生成RFC3744的ACL请求体
func EncodeAcl(acl *entity.Acl) []byte {
	w := newBodyWriter()
	w.Open("D:acl", davNSAttr)
	for _, ace := range acl.Aces {
		writeAce(w, &ace)
	}
	w.Close("D:acl")
	return w.Bytes()
}

func writeAce(w *bodyWriter, ace *entity.Ace) {
	w.Open("D:ace")
	if ace.Invert {
		w.Open("D:invert")
	}
	w.Open("D:principal")
	writePrincipal(w, &ace.Principal)
	w.Close("D:principal")
	if ace.Invert {
		w.Close("D:invert")
	}
	if len(ace.Grant) > 0 {
		w.Open("D:grant")
		writePrivileges(w, ace.Grant)
		w.Close("D:grant")
	}
	if len(ace.Deny) > 0 {
		w.Open("D:deny")
		writePrivileges(w, ace.Deny)
		w.Close("D:deny")
	}
	w.Close("D:ace")
}

func writePrincipal(w *bodyWriter, p *entity.Principal) {
	switch {
	case p.Href != "":
		w.Elem("D:href", p.Href)
	case p.KnownKind == entity.PrincipalProperty:
		w.Open("D:property").Empty("D:" + p.Property).Close("D:property")
	case p.KnownKind != "":
		w.Empty("D:" + p.KnownKind)
	default:
		w.Empty("D:all")
	}
}

func writePrivileges(w *bodyWriter, privs []entity.Privilege) {
	for _, priv := range privs {
		w.Open("D:privilege").Empty("D:" + string(priv)).Close("D:privilege")
	}
}

// DecodeAcl 从PROPFIND acl属性的节点树解析ACE列表
func DecodeAcl(raw []byte) (*entity.Acl, error) {
	root, err := ParseDocumentBytes(raw)
	if err != nil {
		return nil, err
	}
	aclNode := root
	if !root.Is("acl") {
		aclNode = root.Descendant("acl")
	}
	if aclNode == nil {
		return nil, fmt.Errorf("%w: no acl element", ErrMalformedResponse)
	}
	return DecodeAclNode(aclNode), nil
}

// DecodeAclNode 解析acl节点, 容忍缺字段, 坏的ace跳过不报错
func DecodeAclNode(aclNode *Node) *entity.Acl {
	acl := &entity.Acl{}
	for _, aceNode := range aclNode.ChildAll("ace") {
		ace := entity.Ace{}
		pNode := aceNode.Child("principal")
		if inv := aceNode.Child("invert"); inv != nil {
			ace.Invert = true
			pNode = inv.Child("principal")
		}
		if pNode == nil {
			continue
		}
		ace.Principal = decodePrincipal(pNode)
		if grant := aceNode.Child("grant"); grant != nil {
			ace.Grant = decodePrivileges(grant)
		}
		if deny := aceNode.Child("deny"); deny != nil {
			ace.Deny = decodePrivileges(deny)
		}
		if aceNode.Child("protected") != nil {
			ace.Protected = true
		}
		if inherited := aceNode.Child("inherited"); inherited != nil {
			if href := inherited.Descendant("href"); href != nil {
				ace.InheritUrl = href.InnerText()
			}
		}
		acl.Aces = append(acl.Aces, ace)
	}
	return acl
}

func decodePrincipal(pNode *Node) entity.Principal {
	if href := pNode.Child("href"); href != nil {
		return entity.Principal{Href: href.InnerText()}
	}
	if prop := pNode.Child("property"); prop != nil {
		p := entity.Principal{KnownKind: entity.PrincipalProperty}
		if len(prop.Children) > 0 {
			p.Property = prop.Children[0].Local()
		}
		return p
	}
	if len(pNode.Children) > 0 {
		return entity.Principal{KnownKind: pNode.Children[0].Local()}
	}
	return entity.Principal{}
}

func decodePrivileges(node *Node) []entity.Privilege {
	var rs []entity.Privilege
	for _, priv := range node.ChildAll("privilege") {
		if len(priv.Children) > 0 {
			rs = append(rs, entity.Privilege(priv.Children[0].Local()))
		}
	}
	return rs
}
