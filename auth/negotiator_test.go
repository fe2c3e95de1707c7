package auth

import (
	"context"
	"encoding/base64"
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func basicOf(user string, pass string) string {
	return "Basic " + base64.StdEncoding.EncodeToString([]byte(user+":"+pass))
}

func TestPreemptiveBasic(t *testing.T) {
	n := NewNegotiator()
	// 未开启preemptive时不带Authorization
	n.SetBasic("alice", "secret", false)
	assert.Empty(t, n.HeadersForRequest())
	n.SetPreemptive(true)
	hdrs := n.HeadersForRequest()
	assert.Equal(t, basicOf("alice", "secret"), hdrs[HeaderAuthorization])
	_, ok := hdrs[HeaderWorkstation]
	assert.False(t, ok)
}

func TestPreemptiveDomain(t *testing.T) {
	n := NewNegotiator()
	n.SetDomain("user", "p", "DOM", "WS01", true)
	hdrs := n.HeadersForRequest()
	// domain模式的basic值是DOM\user:p
	assert.Equal(t, basicOf(`DOM\user`, "p"), hdrs[HeaderAuthorization])
	assert.Equal(t, "WS01", hdrs[HeaderWorkstation])
}

func TestWorkstationWithoutPreemptive(t *testing.T) {
	n := NewNegotiator()
	n.SetDomain("user", "p", "DOM", "WS01", false)
	hdrs := n.HeadersForRequest()
	// workstation头不受preemptive开关控制
	assert.Equal(t, "WS01", hdrs[HeaderWorkstation])
	_, ok := hdrs[HeaderAuthorization]
	assert.False(t, ok)
}

func TestRespondToChallenge(t *testing.T) {
	ctx := context.Background()
	challenge := http.Header{}
	challenge.Add("Www-Authenticate", `Basic realm="dav"`)

	n := NewNegotiator()
	_, err := n.RespondToChallenge(ctx, "http://x/y", challenge)
	assert.ErrorIs(t, err, ErrNoAnswer)

	n.SetBasic("alice", "secret", false)
	v, err := n.RespondToChallenge(ctx, "http://x/y", challenge)
	require.NoError(t, err)
	assert.Equal(t, basicOf("alice", "secret"), v)

	n.SetDomain("user", "p", "DOM", "", false)
	v, err = n.RespondToChallenge(ctx, "http://x/y", challenge)
	require.NoError(t, err)
	assert.Equal(t, basicOf(`DOM\user`, "p"), v)
}

func TestClearIdempotent(t *testing.T) {
	n := NewNegotiator()
	n.SetBasic("alice", "secret", true)
	assert.True(t, n.HasAuth())
	n.Clear()
	n.Clear()
	assert.False(t, n.HasAuth())
	assert.Empty(t, n.HeadersForRequest())
	_, err := n.RespondToChallenge(context.Background(), "http://x/y", http.Header{})
	assert.ErrorIs(t, err, ErrNoAnswer)
}

type fakeHandler struct {
	name       string
	preemptive string
	answer     string
	err        error
	calls      int
}

func (f *fakeHandler) Name() string { return f.name }
func (f *fakeHandler) CanHandle(scheme string) bool { return true }

func (f *fakeHandler) Preemptive(cred *Credential) (string, bool) {
	if f.preemptive == "" {
		return "", false
	}
	return f.preemptive, true
}

func (f *fakeHandler) Challenge(ctx context.Context, requestUrl string, challenge http.Header, cred *Credential) (string, error) {
	f.calls++
	if f.err != nil {
		return "", f.err
	}
	return f.answer, nil
}

func TestHandlerMode(t *testing.T) {
	ctx := context.Background()
	n := NewNegotiator()
	h := &fakeHandler{name: "fake", preemptive: "Fake pre", answer: "Fake answer"}
	n.SetHandler(h)
	assert.True(t, n.HasAuth())
	// handler模式默认不预发
	assert.Empty(t, n.HeadersForRequest())
	n.SetPreemptive(true)
	assert.Equal(t, "Fake pre", n.HeadersForRequest()[HeaderAuthorization])
	v, err := n.RespondToChallenge(ctx, "http://x", http.Header{})
	require.NoError(t, err)
	assert.Equal(t, "Fake answer", v)
	assert.Equal(t, 1, h.calls)
}

func TestHandlerFallbackToBasic(t *testing.T) {
	ctx := context.Background()
	n := NewNegotiator()
	h := &fakeHandler{name: "fake", err: fmt.Errorf("handshake failed")}
	n.SetHandler(h)
	// handler失败且无凭据, 没有降级路径
	_, err := n.RespondToChallenge(ctx, "http://x", http.Header{})
	assert.ErrorIs(t, err, ErrNoAnswer)
}

func TestModeSwitchClearsOther(t *testing.T) {
	n := NewNegotiator()
	n.SetBasic("alice", "secret", true)
	h := &fakeHandler{name: "fake", answer: "Fake answer"}
	n.SetHandler(h)
	// 切handler模式后凭据和preemptive都被清掉
	assert.Empty(t, n.HeadersForRequest())
	v, err := n.RespondToChallenge(context.Background(), "http://x", http.Header{})
	require.NoError(t, err)
	assert.Equal(t, "Fake answer", v)

	n.SetBasic("bob", "pw", false)
	v, err = n.RespondToChallenge(context.Background(), "http://x", http.Header{})
	require.NoError(t, err)
	// 切回凭据模式后不再碰handler
	assert.Equal(t, basicOf("bob", "pw"), v)
	assert.Equal(t, 1, h.calls)
}

func TestRegistry(t *testing.T) {
	h, ok := Lookup(BasicAuthName)
	require.True(t, ok)
	assert.True(t, h.CanHandle("Basic"))
	assert.True(t, h.CanHandle("basic"))
	assert.False(t, h.CanHandle("NTLM"))

	dh, ok := Lookup(DomainBasicAuthName)
	require.True(t, ok)
	assert.True(t, dh.CanHandle("NTLM"))
	assert.True(t, dh.CanHandle("Negotiate"))
	assert.GreaterOrEqual(t, len(HandlerList()), 2)
}

func TestChallengeSchemes(t *testing.T) {
	hdr := http.Header{}
	hdr.Add("Www-Authenticate", `Basic realm="dav"`)
	hdr.Add("Www-Authenticate", "NTLM")
	assert.Equal(t, []string{"Basic", "NTLM"}, ChallengeSchemes(hdr))
	assert.Empty(t, ChallengeSchemes(http.Header{}))
}
