package auth

import (
	"regexp"
	"time"
)

// usernamePattern restricts usernames to alphanumerics plus dots,
// hyphens and underscores, up to 64 characters.
var usernamePattern = regexp.MustCompile(`^[a-zA-Z0-9._-]{1,64}$`)

// IsValidUsername reports whether a username meets format requirements.
func IsValidUsername(username string) bool {
	return usernamePattern.MatchString(username)
}

// Role is an authorisation tier.
type Role string

// Known roles. Admins manage accounts; users control the home.
const (
	RoleUser  Role = "user"
	RoleAdmin Role = "admin"
)

// IsValidRole reports whether the role is one of the known tiers.
func IsValidRole(r Role) bool {
	return r == RoleUser || r == RoleAdmin
}

// User is an authenticated account.
type User struct {
	ID           string    `json:"id"`
	Username     string    `json:"username"`
	PasswordHash string    `json:"-"` // never serialised
	Role         Role      `json:"role"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

// Validate checks structural invariants before a user is stored.
func (u *User) Validate() error {
	if !IsValidUsername(u.Username) {
		return ErrInvalidUser
	}
	if u.PasswordHash == "" {
		return ErrInvalidUser
	}
	if !IsValidRole(u.Role) {
		return ErrInvalidUser
	}
	return nil
}
