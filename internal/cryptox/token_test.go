package cryptox

import (
	"encoding/hex"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGenerateOpaqueToken(t *testing.T) {
	raw, digest, err := GenerateOpaqueToken()
	require.NoError(t, err)

	b, err := hex.DecodeString(raw)
	require.NoError(t, err)
	assert.Len(t, b, OpaqueTokenSize)

	assert.NotEqual(t, raw, digest)
	assert.Equal(t, digest, DigestOpaqueToken(raw))
	assert.Len(t, digest, 64)

	raw2, digest2, err := GenerateOpaqueToken()
	require.NoError(t, err)
	assert.NotEqual(t, raw, raw2)
	assert.NotEqual(t, digest, digest2)
}

func TestDigestOpaqueToken_KnownValue(t *testing.T) {
	// sha256("abc")
	assert.Equal(t, "ba7816bf8f01cfea414140de5dae2223b00361a396177a9cb410ff61f20015ad", DigestOpaqueToken("abc"))
}
