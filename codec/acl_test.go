package codec

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/xxxsen/davclient/entity"
)

func TestEncodeAcl(t *testing.T) {
	acl := &entity.Acl{
		Aces: []entity.Ace{
			{
				Principal: entity.Principal{Href: "/principals/bob"},
				Grant:     []entity.Privilege{entity.PrivilegeRead, entity.PrivilegeWrite},
			},
			{
				Principal: entity.Principal{KnownKind: entity.PrincipalAll},
				Deny:      []entity.Privilege{entity.PrivilegeWrite},
				Invert:    true,
			},
		},
	}
	raw := string(EncodeAcl(acl))
	assert.Contains(t, raw, "<D:href>/principals/bob</D:href>")
	assert.Contains(t, raw, "<D:read/>")
	assert.Contains(t, raw, "<D:write/>")
	assert.Contains(t, raw, "<D:deny>")
	assert.Contains(t, raw, "<D:invert>")
	assert.Contains(t, raw, "<D:all/>")
}

func TestDecodeAcl(t *testing.T) {
	body := `<?xml version="1.0"?>
<d:acl xmlns:d="DAV:">
  <d:ace>
    <d:principal><d:href>/principals/alice</d:href></d:principal>
    <d:grant>
      <d:privilege><d:read/></d:privilege>
      <d:privilege><d:write/></d:privilege>
    </d:grant>
    <d:protected/>
  </d:ace>
  <d:ace>
    <d:invert><d:principal><d:authenticated/></d:principal></d:invert>
    <d:deny><d:privilege><d:write-acl/></d:privilege></d:deny>
    <d:inherited><d:href>/parent</d:href></d:inherited>
  </d:ace>
  <d:ace>
    <!-- principal缺失, 跳过 -->
    <d:grant><d:privilege><d:read/></d:privilege></d:grant>
  </d:ace>
</d:acl>`
	acl, err := DecodeAcl([]byte(body))
	require.NoError(t, err)
	require.Len(t, acl.Aces, 2)
	assert.Equal(t, "/principals/alice", acl.Aces[0].Principal.Href)
	assert.Equal(t, []entity.Privilege{entity.PrivilegeRead, entity.PrivilegeWrite}, acl.Aces[0].Grant)
	assert.True(t, acl.Aces[0].Protected)
	assert.True(t, acl.Aces[1].Invert)
	assert.Equal(t, "authenticated", acl.Aces[1].Principal.KnownKind)
	assert.Equal(t, "/parent", acl.Aces[1].InheritUrl)
}

func TestDecodeAclPropertyPrincipal(t *testing.T) {
	body := `<?xml version="1.0"?>
<D:acl xmlns:D="DAV:">
  <D:ace>
    <D:principal><D:property><D:owner/></D:property></D:principal>
    <D:grant><D:privilege><D:all/></D:privilege></D:grant>
  </D:ace>
</D:acl>`
	acl, err := DecodeAcl([]byte(body))
	require.NoError(t, err)
	require.Len(t, acl.Aces, 1)
	assert.Equal(t, entity.PrincipalProperty, acl.Aces[0].Principal.KnownKind)
	assert.Equal(t, "owner", acl.Aces[0].Principal.Property)
}
