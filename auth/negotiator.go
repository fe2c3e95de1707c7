package auth

import (
	"context"
	"errors"
	"fmt"
	"net/http"

	"github.com/xxxsen/common/logutil"
	"go.uber.org/zap"
)

const (
	HeaderAuthorization = "Authorization"
	HeaderWorkstation   = "X-Workstation"
)

// ErrNoAnswer 表示当前认证状态给不出Authorization值
var ErrNoAnswer = errors.New("no auth answer available")

// Negotiator 维护认证状态并应答401质询.
// 凭据模式和handler模式二选一, 设置其中一种会整体清掉另一种.
// 状态切换与请求发起的并发交错不做保护, 由调用方串行化.
type Negotiator struct {
	cred       *Credential
	handler    IAuthHandler
	preemptive bool
}

func NewNegotiator() *Negotiator {
	return &Negotiator{}
}

// SetBasic 进入用户名密码模式
func (n *Negotiator) SetBasic(user string, pass string, preemptive bool) {
	n.cred = &Credential{User: user, Pass: pass}
	n.handler = nil
	n.preemptive = preemptive
}

// SetDomain 进入domain限定的凭据模式, workstation可为空
func (n *Negotiator) SetDomain(user string, pass string, domain string, workstation string, preemptive bool) {
	n.cred = &Credential{User: user, Pass: pass, Domain: domain, Workstation: workstation}
	n.handler = nil
	n.preemptive = preemptive
}

// SetHandler 进入外置handler模式, 清空已存凭据
func (n *Negotiator) SetHandler(h IAuthHandler) {
	n.handler = h
	n.cred = nil
	n.preemptive = false
}

// Clear 清空全部认证状态, 幂等
func (n *Negotiator) Clear() {
	n.cred = nil
	n.handler = nil
	n.preemptive = false
}

func (n *Negotiator) SetPreemptive(v bool) {
	n.preemptive = v
}

func (n *Negotiator) HasAuth() bool {
	return n.cred != nil || n.handler != nil
}

func (n *Negotiator) credential() *Credential {
	if n.cred != nil {
		return n.cred
	}
	return &Credential{}
}

func (n *Negotiator) pickBuiltin() IAuthHandler {
	name := BasicAuthName
	if len(n.credential().Domain) > 0 {
		name = DomainBasicAuthName
	}
	h, _ := Lookup(name)
	return h
}

// HeadersForRequest 返回每个请求出站前要带的认证相关头.
// workstation头独立于认证方案, 只要设置了就带, 部分老服务端靠它识别机器.
func (n *Negotiator) HeadersForRequest() map[string]string {
	rs := make(map[string]string, 2)
	cred := n.credential()
	if len(cred.Workstation) > 0 {
		rs[HeaderWorkstation] = cred.Workstation
	}
	if !n.preemptive {
		return rs
	}
	if n.handler != nil {
		if v, ok := n.handler.Preemptive(cred); ok {
			rs[HeaderAuthorization] = v
		}
		return rs
	}
	if h := n.pickBuiltin(); h != nil {
		if v, ok := h.Preemptive(cred); ok {
			rs[HeaderAuthorization] = v
		}
	}
	return rs
}

// RespondToChallenge 针对一次401质询计算重试用的Authorization值.
// 优先走外置handler, handler失败或没有handler时降级到内置basic,
// 两边都给不出答案时返回ErrNoAnswer.
func (n *Negotiator) RespondToChallenge(ctx context.Context, requestUrl string, challenge http.Header) (string, error) {
	cred := n.credential()
	if n.handler != nil {
		v, err := n.handler.Challenge(ctx, requestUrl, challenge, cred)
		if err == nil {
			return v, nil
		}
		logutil.GetLogger(ctx).Debug("auth handler failed, try fallback",
			zap.String("handler", n.handler.Name()), zap.Error(err))
	}
	if len(cred.User) == 0 {
		return "", fmt.Errorf("%w, url:%s", ErrNoAnswer, requestUrl)
	}
	builtin := n.pickBuiltin()
	if builtin == nil {
		return "", fmt.Errorf("%w, url:%s", ErrNoAnswer, requestUrl)
	}
	if !n.schemeAccepted(builtin, challenge) {
		logutil.GetLogger(ctx).Debug("challenge scheme not matched, answer with basic anyway",
			zap.Strings("schemes", ChallengeSchemes(challenge)))
	}
	return builtin.Challenge(ctx, requestUrl, challenge, cred)
}

func (n *Negotiator) schemeAccepted(h IAuthHandler, challenge http.Header) bool {
	schemes := ChallengeSchemes(challenge)
	if len(schemes) == 0 {
		return true
	}
	for _, s := range schemes {
		if h.CanHandle(s) {
			return true
		}
	}
	return false
}
