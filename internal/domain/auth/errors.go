package auth

import "errors"

var (
	ErrInvalidCredentials  = errors.New("invalid username or password")
	ErrInvalidToken        = errors.New("invalid or expired token")
	ErrRefreshTokenRevoked = errors.New("refresh token has been revoked")
	ErrGoogleNotLinked     = errors.New("no account is linked to this Google identity")
	ErrGoogleDisabled      = errors.New("Google sign-in is not configured")
)
