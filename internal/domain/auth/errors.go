package auth

import "errors"

var (
	// ErrInvalidCredentials covers both unknown username and wrong password.
	// The two are deliberately indistinguishable to the caller.
	ErrInvalidCredentials = errors.New("invalid username or password")

	// ErrMalformedToken is returned when a token cannot be decoded at all
	ErrMalformedToken = errors.New("malformed token")

	// ErrInvalidSignature is returned when a token decodes but its
	// signature does not verify
	ErrInvalidSignature = errors.New("invalid token signature")

	// ErrInvalidToken is returned when a token verifies but is not usable
	// for the requested purpose (wrong type, blank, missing subject)
	ErrInvalidToken = errors.New("invalid token")

	// ErrExpiredToken is returned when a structurally valid token is past
	// its embedded expiry
	ErrExpiredToken = errors.New("token expired")

	// ErrSessionNotFound is returned when no active session backs the
	// refresh token; a revoked session looks the same as an unknown one
	ErrSessionNotFound = errors.New("session not found or expired")

	// ErrSessionExpired is returned when the session row itself has passed
	// its expiry; the row's expiry is authoritative over the token's
	ErrSessionExpired = errors.New("session expired")

	// ErrUnauthenticated is returned when no usable credential was presented
	ErrUnauthenticated = errors.New("unauthenticated")

	// ErrInternal is the generic failure surfaced for unexpected errors.
	// Details go to the log, never to the caller.
	ErrInternal = errors.New("internal error")
)
