// Package models defines server-side data models persisted in the database.
package models

import (
	"fmt"
	"strings"
	"time"

	"github.com/dmitrijs2005/coursehub/internal/common"
)

type Role string

const (
	RoleStudent    Role = "student"
	RoleInstructor Role = "instructor"
	RoleAdmin      Role = "admin"
)

// ParseRole maps the wire value onto a Role. The empty string is the
// default role.
func ParseRole(s string) (Role, error) {
	switch r := Role(strings.ToLower(strings.TrimSpace(s))); r {
	case "":
		return RoleStudent, nil
	case RoleStudent, RoleInstructor, RoleAdmin:
		return r, nil
	default:
		return "", fmt.Errorf("%w: %q", common.ErrRoleInvalid, s)
	}
}

func (r Role) Valid() bool {
	return r == RoleStudent || r == RoleInstructor || r == RoleAdmin
}

// PendingToken is the at-rest half of an emailed single-use token. Digest
// and ExpiresAt are always set and cleared together; a nil *PendingToken
// means no token is outstanding.
type PendingToken struct {
	Digest    string
	ExpiresAt time.Time
}

// Usable reports whether the token may still be redeemed at now.
func (p *PendingToken) Usable(now time.Time) bool {
	return p != nil && p.Digest != "" && now.Before(p.ExpiresAt)
}

// Account is the only persisted entity of the credential subsystem.
// PasswordDigest and the pending token digests never leave the server.
type Account struct {
	ID                string
	DisplayName       string
	Email             string
	PasswordDigest    string
	Role              Role
	EmailVerified     bool
	EmailVerification *PendingToken
	PasswordReset     *PendingToken
	// AvatarKey is the object storage key of the profile image, empty when
	// none was uploaded.
	AvatarKey         string
	CreatedAt         time.Time
	UpdatedAt         time.Time
}

// NormalizeEmail trims and lowercases an address so that comparisons are
// case-insensitive.
func NormalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

// AccountView is the public projection of an Account.
type AccountView struct {
	ID            string    `json:"id"`
	DisplayName   string    `json:"displayName"`
	Email         string    `json:"email"`
	Role          Role      `json:"role"`
	EmailVerified bool      `json:"emailVerified"`
	HasAvatar     bool      `json:"hasAvatar"`
	CreatedAt     time.Time `json:"createdAt"`
	UpdatedAt     time.Time `json:"updatedAt"`
}

func (a *Account) View() AccountView {
	return AccountView{
		ID:            a.ID,
		DisplayName:   a.DisplayName,
		Email:         a.Email,
		Role:          a.Role,
		EmailVerified: a.EmailVerified,
		HasAvatar:     a.AvatarKey != "",
		CreatedAt:     a.CreatedAt,
		UpdatedAt:     a.UpdatedAt,
	}
}
