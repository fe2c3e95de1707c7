package codec

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestEncodePropfindAllprop(t *testing.T) {
	raw := string(EncodePropfind(nil))
	assert.Contains(t, raw, "<D:allprop/>")
	assert.NotContains(t, raw, "<D:prop>")
}

func TestEncodePropname(t *testing.T) {
	raw := string(EncodePropname())
	assert.Contains(t, raw, "<D:propname/>")
}

func TestEncodeProppatch(t *testing.T) {
	raw := string(EncodeProppatch(map[string]string{
		"author": "bob",
		"rating": "5",
	}, []string{"obsolete"}))
	assert.Contains(t, raw, "<D:set>")
	assert.Contains(t, raw, "<D:author>bob</D:author>")
	assert.Contains(t, raw, "<D:rating>5</D:rating>")
	assert.Contains(t, raw, "<D:remove>")
	assert.Contains(t, raw, "<D:obsolete/>")
	// set在remove前面
	assert.Less(t, strings.Index(raw, "<D:set>"), strings.Index(raw, "<D:remove>"))
}

func TestEncodeProppatchEscaping(t *testing.T) {
	raw := string(EncodeProppatch(map[string]string{"note": `a<b&"c>`}, nil))
	assert.Contains(t, raw, "a&lt;b&amp;")
	assert.NotContains(t, raw, `a<b&"c>`)
}

func TestEncodeProppatchSetOnly(t *testing.T) {
	raw := string(EncodeProppatch(map[string]string{"k": "v"}, nil))
	assert.NotContains(t, raw, "<D:remove>")
	raw = string(EncodeProppatch(nil, []string{"k"}))
	assert.NotContains(t, raw, "<D:set>")
}
