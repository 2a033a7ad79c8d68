package auth

import "errors"

// Sentinel errors returned by the auth package.
var (
	ErrInvalidCredentials = errors.New("auth: invalid credentials")
	ErrUserNotFound       = errors.New("auth: user not found")
	ErrUsernameExists     = errors.New("auth: username already exists")
	ErrInvalidUser        = errors.New("auth: invalid user")
	ErrWeakPassword       = errors.New("auth: password too short")
	ErrTokenInvalid       = errors.New("auth: invalid token")
)
