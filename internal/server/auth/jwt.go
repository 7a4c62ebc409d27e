// Package auth issues and verifies the signed bearer tokens handed to clients
// after a successful login.
package auth

import (
	"errors"
	"fmt"
	"time"

	"github.com/dmitrijs2005/coursehub/internal/common"
	"github.com/dmitrijs2005/coursehub/internal/server/models"
	"github.com/golang-jwt/jwt/v5"
)

type Kind string

const (
	KindAccess  Kind = "access"
	KindRefresh Kind = "refresh"
)

// Claims carries the account id in Subject and the role at issue time.
// Kind keeps an access token from being replayed as a refresh token even if
// both secrets were configured to the same value.
type Claims struct {
	jwt.RegisteredClaims
	Role models.Role `json:"role"`
	Kind Kind        `json:"kind"`
}

// Issuer signs access and refresh tokens with independent HS256 secrets.
type Issuer struct {
	accessSecret  []byte
	refreshSecret []byte
	accessTTL     time.Duration
	refreshTTL    time.Duration
	now           func() time.Time
}

func NewIssuer(accessSecret, refreshSecret []byte, accessTTL, refreshTTL time.Duration) *Issuer {
	return &Issuer{
		accessSecret:  accessSecret,
		refreshSecret: refreshSecret,
		accessTTL:     accessTTL,
		refreshTTL:    refreshTTL,
		now:           time.Now,
	}
}

// WithClock replaces the time source; used by tests.
func (i *Issuer) WithClock(now func() time.Time) *Issuer {
	i.now = now
	return i
}

func (i *Issuer) AccessTTL() time.Duration  { return i.accessTTL }
func (i *Issuer) RefreshTTL() time.Duration { return i.refreshTTL }

func (i *Issuer) IssueAccess(accountID string, role models.Role) (string, error) {
	return i.issue(accountID, role, KindAccess, i.accessSecret, i.accessTTL)
}

func (i *Issuer) IssueRefresh(accountID string, role models.Role) (string, error) {
	return i.issue(accountID, role, KindRefresh, i.refreshSecret, i.refreshTTL)
}

func (i *Issuer) VerifyAccess(token string) (*Claims, error) {
	return i.verify(token, KindAccess, i.accessSecret)
}

func (i *Issuer) VerifyRefresh(token string) (*Claims, error) {
	return i.verify(token, KindRefresh, i.refreshSecret)
}

func (i *Issuer) issue(accountID string, role models.Role, kind Kind, secret []byte, ttl time.Duration) (string, error) {
	now := i.now()
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   accountID,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
		},
		Role: role,
		Kind: kind,
	})

	s, err := token.SignedString(secret)
	if err != nil {
		return "", fmt.Errorf("sign %s token: %w", kind, err)
	}
	return s, nil
}

func (i *Issuer) verify(tokenString string, kind Kind, secret []byte) (*Claims, error) {
	claims := &Claims{}

	token, err := jwt.ParseWithClaims(tokenString, claims, func(t *jwt.Token) (interface{}, error) {
		return secret, nil
	},
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithTimeFunc(i.now),
		jwt.WithExpirationRequired(),
	)
	if err != nil {
		return nil, mapJWTError(err)
	}

	if !token.Valid || claims.Subject == "" || claims.Kind != kind {
		return nil, common.ErrTokenMalformed
	}

	return claims, nil
}

func mapJWTError(err error) error {
	switch {
	case errors.Is(err, jwt.ErrTokenExpired):
		return common.ErrTokenExpired
	case errors.Is(err, jwt.ErrTokenSignatureInvalid):
		return common.ErrTokenBadSignature
	default:
		return common.ErrTokenMalformed
	}
}
