package client

import (
	"errors"
	"fmt"

	"github.com/xxxsen/davclient/codec"
)

// NetworkError 传输层失败(dns/连接/超时), 服务端没有给出应答, 调用方可重试
type NetworkError struct {
	Method string
	Url    string
	Err    error
}

func (e *NetworkError) Error() string {
	return fmt.Sprintf("network error, method:%s, url:%s, err:%v", e.Method, e.Url, e.Err)
}

func (e *NetworkError) Unwrap() error {
	return e.Err
}

// ProtocolError 服务端明确拒绝(非2xx/207), Conditions为响应体里解析出的机读错误标记
type ProtocolError struct {
	Method     string
	Url        string
	StatusCode int
	Body       []byte
	Conditions []string
}

func (e *ProtocolError) Error() string {
	if len(e.Conditions) > 0 {
		return fmt.Sprintf("protocol error, method:%s, url:%s, code:%d, conditions:%v", e.Method, e.Url, e.StatusCode, e.Conditions)
	}
	return fmt.Sprintf("protocol error, method:%s, url:%s, code:%d", e.Method, e.Url, e.StatusCode)
}

// AuthError 401重试打满或者流式body无法重放
type AuthError struct {
	Method string
	Url    string
	Reason string
	Err    error
}

func (e *AuthError) Error() string {
	return fmt.Sprintf("auth error, method:%s, url:%s, reason:%s", e.Method, e.Url, e.Reason)
}

func (e *AuthError) Unwrap() error {
	return e.Err
}

// IsNetworkError 判断错误链上是否有传输层失败
func IsNetworkError(err error) bool {
	var ne *NetworkError
	return errors.As(err, &ne)
}

func IsAuthError(err error) bool {
	var ae *AuthError
	return errors.As(err, &ae)
}

// AsProtocolError 取错误链上的协议错误, 没有返回nil
func AsProtocolError(err error) *ProtocolError {
	var pe *ProtocolError
	if errors.As(err, &pe) {
		return pe
	}
	return nil
}

// IsMalformedResponse 判断是否为响应体缺协议元素
func IsMalformedResponse(err error) bool {
	return errors.Is(err, codec.ErrMalformedResponse)
}
