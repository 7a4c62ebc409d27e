package auth

import (
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/dmitrijs2005/coursehub/internal/common"
	"github.com/dmitrijs2005/coursehub/internal/server/models"
	"github.com/golang-jwt/jwt/v5"
)

func newTestIssuer() *Issuer {
	return NewIssuer([]byte("access-secret"), []byte("refresh-secret"), time.Hour, 7*24*time.Hour)
}

func TestIssueAndVerifyAccess(t *testing.T) {
	t.Parallel()

	iss := newTestIssuer()

	tok, err := iss.IssueAccess("user-123", models.RoleInstructor)
	if err != nil {
		t.Fatalf("IssueAccess error: %v", err)
	}

	claims, err := iss.VerifyAccess(tok)
	if err != nil {
		t.Fatalf("VerifyAccess error: %v", err)
	}
	if claims.Subject != "user-123" {
		t.Fatalf("subject mismatch: got %q", claims.Subject)
	}
	if claims.Role != models.RoleInstructor {
		t.Fatalf("role mismatch: got %q", claims.Role)
	}
	if claims.IssuedAt == nil || claims.ExpiresAt == nil {
		t.Fatalf("iat/exp must be set")
	}
	if got := claims.ExpiresAt.Sub(claims.IssuedAt.Time); got != time.Hour {
		t.Fatalf("lifetime: got %v want 1h", got)
	}
}

func TestIssueAndVerifyRefresh(t *testing.T) {
	t.Parallel()

	iss := newTestIssuer()

	tok, err := iss.IssueRefresh("u1", models.RoleStudent)
	if err != nil {
		t.Fatalf("IssueRefresh error: %v", err)
	}

	claims, err := iss.VerifyRefresh(tok)
	if err != nil {
		t.Fatalf("VerifyRefresh error: %v", err)
	}
	if claims.Subject != "u1" {
		t.Fatalf("subject mismatch: got %q", claims.Subject)
	}
}

func TestTokenKindsAreNotInterchangeable(t *testing.T) {
	t.Parallel()

	iss := newTestIssuer()

	access, _ := iss.IssueAccess("u1", models.RoleStudent)
	refresh, _ := iss.IssueRefresh("u1", models.RoleStudent)

	if _, err := iss.VerifyRefresh(access); err == nil {
		t.Fatalf("access token accepted as refresh token")
	}
	if _, err := iss.VerifyAccess(refresh); err == nil {
		t.Fatalf("refresh token accepted as access token")
	}

	// same secret on both sides still rejected by kind
	same := NewIssuer([]byte("k"), []byte("k"), time.Hour, time.Hour)
	access, _ = same.IssueAccess("u1", models.RoleStudent)
	if _, err := same.VerifyRefresh(access); !errors.Is(err, common.ErrTokenMalformed) {
		t.Fatalf("expected ErrTokenMalformed, got %v", err)
	}
}

func TestVerify_Expired(t *testing.T) {
	t.Parallel()

	base := time.Date(2026, 3, 1, 10, 0, 0, 0, time.UTC)
	now := base
	iss := newTestIssuer().WithClock(func() time.Time { return now })

	tok, err := iss.IssueAccess("u1", models.RoleStudent)
	if err != nil {
		t.Fatalf("IssueAccess error: %v", err)
	}

	now = base.Add(59 * time.Minute)
	if _, err := iss.VerifyAccess(tok); err != nil {
		t.Fatalf("token should still be valid: %v", err)
	}

	now = base.Add(61 * time.Minute)
	_, err = iss.VerifyAccess(tok)
	if !errors.Is(err, common.ErrTokenExpired) {
		t.Fatalf("expected ErrTokenExpired, got %v", err)
	}
}

func TestVerify_WrongSecret(t *testing.T) {
	t.Parallel()

	tok, _ := NewIssuer([]byte("right"), []byte("r"), time.Hour, time.Hour).IssueAccess("u2", models.RoleStudent)

	_, err := NewIssuer([]byte("wrong"), []byte("r"), time.Hour, time.Hour).VerifyAccess(tok)
	if !errors.Is(err, common.ErrTokenBadSignature) {
		t.Fatalf("expected ErrTokenBadSignature, got %v", err)
	}
}

func TestVerify_Tampered(t *testing.T) {
	t.Parallel()

	iss := newTestIssuer()
	tok, _ := iss.IssueAccess("u1", models.RoleStudent)

	parts := strings.Split(tok, ".")
	forged, _ := iss.IssueAccess("u1", models.RoleAdmin)
	// splice the admin payload onto the student signature
	parts[1] = strings.Split(forged, ".")[1]

	_, err := iss.VerifyAccess(strings.Join(parts, "."))
	if !errors.Is(err, common.ErrTokenBadSignature) {
		t.Fatalf("expected ErrTokenBadSignature, got %v", err)
	}
}

func TestVerify_Malformed(t *testing.T) {
	t.Parallel()

	iss := newTestIssuer()
	for _, tok := range []string{"", "not.a.jwt", "abc"} {
		if _, err := iss.VerifyAccess(tok); !errors.Is(err, common.ErrTokenMalformed) {
			t.Fatalf("%q: expected ErrTokenMalformed, got %v", tok, err)
		}
	}
}

func TestVerify_RejectsOtherAlgorithms(t *testing.T) {
	t.Parallel()

	tok := jwt.NewWithClaims(jwt.SigningMethodNone, Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   "u1",
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
		},
		Role: models.RoleAdmin,
		Kind: KindAccess,
	})
	s, err := tok.SignedString(jwt.UnsafeAllowNoneSignatureType)
	if err != nil {
		t.Fatalf("sign none: %v", err)
	}

	if _, err := newTestIssuer().VerifyAccess(s); err == nil {
		t.Fatalf("alg=none token accepted")
	}
}

func TestVerify_MissingExpiry(t *testing.T) {
	t.Parallel()

	tok := jwt.NewWithClaims(jwt.SigningMethodHS256, Claims{
		RegisteredClaims: jwt.RegisteredClaims{Subject: "u1"},
		Kind:             KindAccess,
	})
	s, _ := tok.SignedString([]byte("access-secret"))

	if _, err := newTestIssuer().VerifyAccess(s); err == nil {
		t.Fatalf("token without exp accepted")
	}
}
