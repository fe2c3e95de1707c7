package codec

import "errors"

// ErrMalformedResponse 响应缺少协议要求的元素或者不是合法xml
var ErrMalformedResponse = errors.New("malformed protocol response")
