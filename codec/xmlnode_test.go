package codec

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNodeWalk(t *testing.T) {
	raw := `<?xml version="1.0"?>
<a:root xmlns:a="urn:x" xmlns:b="urn:y">
  <a:item>first</a:item>
  <b:item>second</b:item>
  <a:group>
    <b:leaf>deep</b:leaf>
  </a:group>
</a:root>`
	root, err := ParseDocumentBytes([]byte(raw))
	require.NoError(t, err)
	assert.True(t, root.Is("ROOT"))
	// prefix不同的同名元素都要能匹配到
	assert.Len(t, root.ChildAll("item"), 2)
	assert.Equal(t, "first", root.Child("item").InnerText())
	assert.Equal(t, "deep", root.Descendant("leaf").InnerText())
	assert.Equal(t, "deep", root.Path("group", "leaf").InnerText())
	assert.Nil(t, root.Path("group", "nope"))
	assert.Nil(t, root.Child("leaf"))
}

func TestNodeInnerText(t *testing.T) {
	raw := `<r>pre<c1>a</c1><c2>b</c2></r>`
	root, err := ParseDocumentBytes([]byte(raw))
	require.NoError(t, err)
	assert.Equal(t, "preab", root.InnerText())
}

func TestParseDocumentInvalid(t *testing.T) {
	_, err := ParseDocumentBytes([]byte(``))
	assert.ErrorIs(t, err, ErrMalformedResponse)
	_, err = ParseDocumentBytes([]byte(`<a><b></a>`))
	assert.ErrorIs(t, err, ErrMalformedResponse)
	_, err = ParseDocumentBytes([]byte(`plain text`))
	assert.ErrorIs(t, err, ErrMalformedResponse)
}
