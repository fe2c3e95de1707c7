package auth

import (
	"context"
	"net/http"
	"strings"
)

// Credential 当前生效的用户凭据
type Credential struct {
	User        string
	Pass        string
	Domain      string
	Workstation string
}

// IAuthHandler 认证方案的扩展点. 内置basic/basic-domain两种实现,
// 外部可以注册自己的方案(例如真正的ntlm/kerberos握手).
type IAuthHandler interface {
	Name() string
	// CanHandle 判断能否处理WWW-Authenticate中的scheme token
	CanHandle(scheme string) bool
	// Preemptive 计算预先携带的Authorization值, 不支持预发时返回false
	Preemptive(cred *Credential) (string, bool)
	// Challenge 针对401质询计算下一个Authorization值, 给不出更好答案时返回error
	Challenge(ctx context.Context, requestUrl string, challenge http.Header, cred *Credential) (string, error)
}

var mp = make(map[string]IAuthHandler)

// Register 注册认证方案实现, 同名覆盖
func Register(h IAuthHandler) {
	mp[h.Name()] = h
}

func Lookup(name string) (IAuthHandler, bool) {
	h, ok := mp[name]
	return h, ok
}

// HandlerList 返回全部已注册的认证方案
func HandlerList() []IAuthHandler {
	rs := make([]IAuthHandler, 0, len(mp))
	for _, v := range mp {
		rs = append(rs, v)
	}
	return rs
}

// ChallengeSchemes 提取WWW-Authenticate头中的scheme token列表
func ChallengeSchemes(hdr http.Header) []string {
	var rs []string
	for _, line := range hdr.Values("Www-Authenticate") {
		items := strings.Fields(line)
		if len(items) == 0 {
			continue
		}
		rs = append(rs, items[0])
	}
	return rs
}
