package client

import (
	"bytes"
	"context"
	"io"
	"net/http"
	"strconv"

	"github.com/xxxsen/davclient/auth"
	"github.com/xxxsen/davclient/codec"
	"github.com/xxxsen/davclient/transfer"

	"github.com/xxxsen/common/logutil"
	"go.uber.org/zap"
)

// webdav方法与扩展头
const (
	MethodPropfind       = "PROPFIND"
	MethodProppatch      = "PROPPATCH"
	MethodMkcol          = "MKCOL"
	MethodCopy           = "COPY"
	MethodMove           = "MOVE"
	MethodLock           = "LOCK"
	MethodUnlock         = "UNLOCK"
	MethodReport         = "REPORT"
	MethodSearch         = "SEARCH"
	MethodAcl            = "ACL"
	MethodVersionControl = "VERSION-CONTROL"
	MethodCheckout       = "CHECKOUT"
	MethodCheckin        = "CHECKIN"
	MethodUncheckout     = "UNCHECKOUT"
	MethodBind           = "BIND"
	MethodUnbind         = "UNBIND"
	MethodRebind         = "REBIND"

	HeaderDepth       = "Depth"
	HeaderDestination = "Destination"
	HeaderOverwrite   = "Overwrite"
	HeaderIf          = "If"
	HeaderLockToken   = "Lock-Token"
	HeaderTimeout     = "Timeout"
	HeaderLabel       = "Label"

	contentTypeXml = "application/xml; charset=utf-8"
)

// do 发一次请求, 401时走negotiator重试一次, 返回原始响应由上层分类.
// 任何传输层失败都包成NetworkError.
func (c *Client) do(ctx context.Context, method string, ref string, hdr map[string]string, body io.Reader) (*http.Response, error) {
	fullUrl := c.resolveUrl(ref)
	req, err := c.buildRequest(ctx, method, fullUrl, hdr, body)
	if err != nil {
		return nil, &NetworkError{Method: method, Url: fullUrl, Err: err}
	}
	rsp, err := c.hc.Do(req)
	if err != nil {
		return nil, &NetworkError{Method: method, Url: fullUrl, Err: err}
	}
	if rsp.StatusCode != http.StatusUnauthorized || !c.negotiator.HasAuth() {
		return rsp, nil
	}
	// 一次401重试, 再失败直接认输, 避免对死凭据无限ping-pong
	challenge := rsp.Header
	drainBody(rsp)
	if !transfer.IsReplayable(body) {
		return nil, &AuthError{
			Method: method, Url: fullUrl,
			Reason: "stream body can not replay after 401, use preemptive auth for streamed upload",
		}
	}
	value, err := c.negotiator.RespondToChallenge(ctx, fullUrl, challenge)
	if err != nil {
		return nil, &AuthError{Method: method, Url: fullUrl, Reason: "no challenge answer", Err: err}
	}
	if err := transfer.Rewind(body); err != nil {
		return nil, &AuthError{Method: method, Url: fullUrl, Reason: "rewind body failed", Err: err}
	}
	logutil.GetLogger(ctx).Debug("retry request with challenge answer",
		zap.String("method", method), zap.String("url", fullUrl))
	req, err = c.buildRequest(ctx, method, fullUrl, hdr, body)
	if err != nil {
		return nil, &NetworkError{Method: method, Url: fullUrl, Err: err}
	}
	req.Header.Set(auth.HeaderAuthorization, value)
	rsp, err = c.hc.Do(req)
	if err != nil {
		return nil, &NetworkError{Method: method, Url: fullUrl, Err: err}
	}
	if rsp.StatusCode == http.StatusUnauthorized {
		drainBody(rsp)
		return nil, &AuthError{Method: method, Url: fullUrl, Reason: "challenge retry exhausted"}
	}
	return rsp, nil
}

func (c *Client) buildRequest(ctx context.Context, method string, fullUrl string, hdr map[string]string, body io.Reader) (*http.Request, error) {
	req, err := http.NewRequestWithContext(ctx, method, fullUrl, body)
	if err != nil {
		return nil, err
	}
	for k, v := range c.c.DefaultHeaders {
		req.Header.Set(k, v)
	}
	for k, v := range c.negotiator.HeadersForRequest() {
		req.Header.Set(k, v)
	}
	if c.compression {
		req.Header.Set("Accept-Encoding", transfer.AcceptEncodingValue)
	}
	// 显式头优先级最高
	for k, v := range hdr {
		req.Header.Set(k, v)
	}
	// transport不认header里的Content-Length, 要落到请求字段上才不走chunked
	if v := req.Header.Get("Content-Length"); v != "" {
		if n, err := strconv.ParseInt(v, 10, 64); err == nil {
			req.ContentLength = n
			req.Header.Del("Content-Length")
		}
	}
	return req, nil
}

func drainBody(rsp *http.Response) {
	_, _ = io.Copy(io.Discard, io.LimitReader(rsp.Body, 4*1024))
	_ = rsp.Body.Close()
}

// doBuffered 发请求并整读响应体, 2xx为成功, 其余包成ProtocolError并尝试解析condition
func (c *Client) doBuffered(ctx context.Context, method string, ref string, hdr map[string]string, body io.Reader) (int, http.Header, []byte, error) {
	rsp, err := c.do(ctx, method, ref, hdr, body)
	if err != nil {
		return 0, nil, nil, err
	}
	defer rsp.Body.Close()
	reader, err := c.responseReader(rsp)
	if err != nil {
		return 0, nil, nil, &NetworkError{Method: method, Url: c.resolveUrl(ref), Err: err}
	}
	raw, err := io.ReadAll(reader)
	if err != nil {
		return 0, nil, nil, &NetworkError{Method: method, Url: c.resolveUrl(ref), Err: err}
	}
	if rsp.StatusCode < 200 || rsp.StatusCode > 299 {
		return 0, nil, nil, &ProtocolError{
			Method:     method,
			Url:        c.resolveUrl(ref),
			StatusCode: rsp.StatusCode,
			Body:       raw,
			Conditions: codec.DecodeErrorConditions(raw),
		}
	}
	return rsp.StatusCode, rsp.Header, raw, nil
}

// doMultistatus 发多资源动词并解析207信封.
// 207本身不代表失败, 哪怕信封里全是失败项也照样解析返回.
func (c *Client) doMultistatus(ctx context.Context, method string, ref string, hdr map[string]string, body io.Reader) (*codec.Multistatus, error) {
	_, _, raw, err := c.doBuffered(ctx, method, ref, hdr, body)
	if err != nil {
		return nil, err
	}
	if len(raw) == 0 {
		return &codec.Multistatus{}, nil
	}
	ms, err := codec.DecodeMultistatus(raw)
	if err != nil {
		return nil, err
	}
	return ms, nil
}

// doStream 发请求并返回已挂好透明解压的响应, 调用方负责Close.
// 进度在解压前挂上, 计的是线缆字节, 和Content-Length同口径
func (c *Client) doStream(ctx context.Context, method string, ref string, hdr map[string]string, body io.Reader, progress transfer.ProgressFunc) (*http.Response, error) {
	rsp, err := c.do(ctx, method, ref, hdr, body)
	if err != nil {
		return nil, err
	}
	if rsp.StatusCode < 200 || rsp.StatusCode > 299 {
		raw, _ := io.ReadAll(io.LimitReader(rsp.Body, 64*1024))
		_ = rsp.Body.Close()
		return nil, &ProtocolError{
			Method:     method,
			Url:        c.resolveUrl(ref),
			StatusCode: rsp.StatusCode,
			Body:       raw,
			Conditions: codec.DecodeErrorConditions(raw),
		}
	}
	raw := rsp.Body
	if progress != nil {
		raw = &progressBody{
			Reader: transfer.NewProgressReader(rsp.Body, rsp.ContentLength, progress),
			closer: rsp.Body,
		}
	}
	wrapped, err := c.responseReaderCloser(raw, rsp.Header.Get("Content-Encoding"))
	if err != nil {
		return nil, &NetworkError{Method: method, Url: c.resolveUrl(ref), Err: err}
	}
	rsp.Body = wrapped
	return rsp, nil
}

func (c *Client) responseReader(rsp *http.Response) (io.Reader, error) {
	rc, err := c.responseReaderCloser(rsp.Body, rsp.Header.Get("Content-Encoding"))
	if err != nil {
		return nil, err
	}
	return rc, nil
}

func (c *Client) responseReaderCloser(body io.ReadCloser, encoding string) (io.ReadCloser, error) {
	if !c.compression {
		return body, nil
	}
	return transfer.WrapDecompress(body, encoding)
}

func xmlBody(raw []byte) io.Reader {
	return bytes.NewReader(raw)
}
