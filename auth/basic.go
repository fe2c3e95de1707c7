package auth

import (
	"context"
	"encoding/base64"
	"fmt"
	"net/http"
	"strings"
)

const (
	BasicAuthName       = "basic"
	DomainBasicAuthName = "basic-domain"
)

func init() {
	Register(&basicAuth{})
	Register(&domainBasicAuth{})
}

type basicAuth struct {
}

func (b *basicAuth) Name() string {
	return BasicAuthName
}

func (b *basicAuth) CanHandle(scheme string) bool {
	return strings.EqualFold(scheme, "Basic")
}

func (b *basicAuth) Preemptive(cred *Credential) (string, bool) {
	if len(cred.User) == 0 {
		return "", false
	}
	return BasicValue(cred.User, cred.Pass), true
}

func (b *basicAuth) Challenge(ctx context.Context, requestUrl string, challenge http.Header, cred *Credential) (string, error) {
	if len(cred.User) == 0 {
		return "", fmt.Errorf("no credential for basic challenge, url:%s", requestUrl)
	}
	return BasicValue(cred.User, cred.Pass), nil
}

// domainBasicAuth 针对老式ntlm风格服务端的降级方案:
// 用户名按domain\user拼接走basic, 不做真实的ntlm握手.
type domainBasicAuth struct {
}

func (d *domainBasicAuth) Name() string {
	return DomainBasicAuthName
}

func (d *domainBasicAuth) CanHandle(scheme string) bool {
	switch strings.ToLower(scheme) {
	case "basic", "ntlm", "negotiate":
		return true
	default:
		return false
	}
}

func (d *domainBasicAuth) Preemptive(cred *Credential) (string, bool) {
	if len(cred.User) == 0 || len(cred.Domain) == 0 {
		return "", false
	}
	return BasicValue(cred.Domain+`\`+cred.User, cred.Pass), true
}

func (d *domainBasicAuth) Challenge(ctx context.Context, requestUrl string, challenge http.Header, cred *Credential) (string, error) {
	if len(cred.User) == 0 || len(cred.Domain) == 0 {
		return "", fmt.Errorf("no domain credential for challenge, url:%s", requestUrl)
	}
	return BasicValue(cred.Domain+`\`+cred.User, cred.Pass), nil
}

// BasicValue 生成Basic方案的Authorization值
func BasicValue(user string, pass string) string {
	raw := base64.StdEncoding.EncodeToString([]byte(user + ":" + pass))
	return "Basic " + raw
}
