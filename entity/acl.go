package entity

// Principal 表示acl中的授权主体, Href/KnownKind二选一
type Principal struct {
	Href      string `json:"href,omitempty"`
	KnownKind string `json:"known_kind,omitempty"` // all/authenticated/unauthenticated/self/property
	Property  string `json:"property,omitempty"`   // KnownKind=property时的属性名, 例如owner
}

const (
	PrincipalAll             = "all"
	PrincipalAuthenticated   = "authenticated"
	PrincipalUnauthenticated = "unauthenticated"
	PrincipalSelf            = "self"
	PrincipalProperty        = "property"
)

// Privilege RFC3744定义的权限token, 按local name保存
type Privilege string

const (
	PrivilegeRead         Privilege = "read"
	PrivilegeWrite        Privilege = "write"
	PrivilegeWriteContent Privilege = "write-content"
	PrivilegeWriteProps   Privilege = "write-properties"
	PrivilegeUnlock       Privilege = "unlock"
	PrivilegeReadAcl      Privilege = "read-acl"
	PrivilegeWriteAcl     Privilege = "write-acl"
	PrivilegeAll          Privilege = "all"
)

// Ace 一条访问控制项
type Ace struct {
	Principal  Principal   `json:"principal"`
	Grant      []Privilege `json:"grant,omitempty"`
	Deny       []Privilege `json:"deny,omitempty"`
	Invert     bool        `json:"invert,omitempty"`
	Protected  bool        `json:"protected,omitempty"`
	InheritUrl string      `json:"inherit_url,omitempty"`
}

type Acl struct {
	Aces []Ace `json:"aces"`
}
