// Package cryptox holds the one-way transformations used by the credential
// subsystem: salted password digests and digests of opaque single-use tokens.
package cryptox

import (
	"context"
	"crypto/rand"
	"crypto/subtle"
	"encoding/base64"
	"errors"
	"fmt"
	"runtime"
	"strings"

	"golang.org/x/crypto/argon2"
	"golang.org/x/crypto/bcrypt"
	"golang.org/x/sync/semaphore"
)

var errInvalidDigest = errors.New("invalid password digest")

// Argon2Params are the argon2id cost parameters baked into every digest.
type Argon2Params struct {
	Memory      uint32
	Iterations  uint32
	Parallelism uint8
	SaltLength  uint32
	KeyLength   uint32
}

// DefaultArgon2Params costs a few tens of milliseconds per digest on
// current server hardware.
func DefaultArgon2Params() Argon2Params {
	return Argon2Params{
		Memory:      64 * 1024,
		Iterations:  3,
		Parallelism: 2,
		SaltLength:  16,
		KeyLength:   32,
	}
}

// PasswordHasher produces and verifies argon2id digests in the PHC string
// format. Digests created by the legacy system (bcrypt, "$2a$"/"$2b$"/"$2y$")
// still verify so imported accounts can log in and get re-hashed.
//
// At most maxConcurrent hash computations run at once; callers beyond that
// wait (honouring ctx) instead of piling memory-hard work onto the CPUs.
type PasswordHasher struct {
	params Argon2Params
	sem    *semaphore.Weighted
}

// NewPasswordHasher builds a hasher. maxConcurrent <= 0 means one slot per CPU.
func NewPasswordHasher(params Argon2Params, maxConcurrent int64) *PasswordHasher {
	if maxConcurrent <= 0 {
		maxConcurrent = int64(runtime.NumCPU())
	}
	return &PasswordHasher{params: params, sem: semaphore.NewWeighted(maxConcurrent)}
}

// Hash returns a freshly salted digest of plaintext.
func (h *PasswordHasher) Hash(ctx context.Context, plaintext string) (string, error) {
	salt := make([]byte, h.params.SaltLength)
	if _, err := rand.Read(salt); err != nil {
		return "", fmt.Errorf("salt: %w", err)
	}

	if err := h.sem.Acquire(ctx, 1); err != nil {
		return "", err
	}
	key := argon2.IDKey([]byte(plaintext), salt, h.params.Iterations, h.params.Memory, h.params.Parallelism, h.params.KeyLength)
	h.sem.Release(1)

	return fmt.Sprintf("$argon2id$v=%d$m=%d,t=%d,p=%d$%s$%s",
		argon2.Version, h.params.Memory, h.params.Iterations, h.params.Parallelism,
		base64.RawStdEncoding.EncodeToString(salt),
		base64.RawStdEncoding.EncodeToString(key)), nil
}

// Verify reports whether plaintext matches digest. A malformed digest is a
// mismatch, not an error; the error is only set when ctx ends while waiting
// for a hashing slot.
func (h *PasswordHasher) Verify(ctx context.Context, plaintext, digest string) (bool, error) {
	if isBcrypt(digest) {
		if err := h.sem.Acquire(ctx, 1); err != nil {
			return false, err
		}
		defer h.sem.Release(1)
		return bcrypt.CompareHashAndPassword([]byte(digest), []byte(plaintext)) == nil, nil
	}

	params, salt, want, err := decodeArgon2(digest)
	if err != nil {
		return false, nil
	}

	if err := h.sem.Acquire(ctx, 1); err != nil {
		return false, err
	}
	got := argon2.IDKey([]byte(plaintext), salt, params.Iterations, params.Memory, params.Parallelism, uint32(len(want)))
	h.sem.Release(1)

	return subtle.ConstantTimeCompare(want, got) == 1, nil
}

// NeedsRehash is true for legacy digests and for argon2 digests made with
// parameters other than the current ones.
func (h *PasswordHasher) NeedsRehash(digest string) bool {
	if isBcrypt(digest) {
		return true
	}
	params, salt, key, err := decodeArgon2(digest)
	if err != nil {
		return true
	}
	return params.Memory != h.params.Memory ||
		params.Iterations != h.params.Iterations ||
		params.Parallelism != h.params.Parallelism ||
		uint32(len(salt)) != h.params.SaltLength ||
		uint32(len(key)) != h.params.KeyLength
}

func isBcrypt(digest string) bool {
	return strings.HasPrefix(digest, "$2a$") ||
		strings.HasPrefix(digest, "$2b$") ||
		strings.HasPrefix(digest, "$2y$")
}

func decodeArgon2(digest string) (Argon2Params, []byte, []byte, error) {
	var params Argon2Params

	parts := strings.Split(digest, "$")
	if len(parts) != 6 || parts[1] != "argon2id" {
		return params, nil, nil, errInvalidDigest
	}

	var version int
	if _, err := fmt.Sscanf(parts[2], "v=%d", &version); err != nil || version != argon2.Version {
		return params, nil, nil, errInvalidDigest
	}
	if _, err := fmt.Sscanf(parts[3], "m=%d,t=%d,p=%d", &params.Memory, &params.Iterations, &params.Parallelism); err != nil {
		return params, nil, nil, errInvalidDigest
	}

	salt, err := base64.RawStdEncoding.DecodeString(parts[4])
	if err != nil {
		return params, nil, nil, errInvalidDigest
	}
	key, err := base64.RawStdEncoding.DecodeString(parts[5])
	if err != nil || len(key) == 0 {
		return params, nil, nil, errInvalidDigest
	}
	params.SaltLength = uint32(len(salt))
	params.KeyLength = uint32(len(key))

	return params, salt, key, nil
}
