package cryptox

import (
	"crypto/sha256"
	"encoding/hex"

	"github.com/dmitrijs2005/coursehub/internal/common"
)

// OpaqueTokenSize is the number of random bytes behind every emailed token.
const OpaqueTokenSize = 32

// GenerateOpaqueToken returns a random token for the end user and the digest
// that is stored in its place.
func GenerateOpaqueToken() (raw string, digest string, err error) {
	raw, err = common.MakeRandHexString(OpaqueTokenSize)
	if err != nil {
		return "", "", err
	}
	return raw, DigestOpaqueToken(raw), nil
}

// DigestOpaqueToken is the deterministic SHA-256 digest (hex) of raw. The
// raw value already carries 256 bits of entropy, so a fast hash is enough and
// keeps lookups by digest cheap.
func DigestOpaqueToken(raw string) string {
	sum := sha256.Sum256([]byte(raw))
	return hex.EncodeToString(sum[:])
}
