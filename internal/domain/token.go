package domain

import "time"

// TokenKind enumerates single-use and session token families.
type TokenKind string

const (
	// TokenKindActivation grants one account activation. Consumed on validate.
	TokenKindActivation TokenKind = "ACTIVATION"
	// TokenKindReset grants one password reset. Consumed on validate.
	TokenKindReset TokenKind = "RESET"
	// TokenKindRefresh anchors a refresh session. Persists until logout,
	// expiry, or cascading invalidation on password reset.
	TokenKindRefresh TokenKind = "REFRESH"
)

// Token is the persisted form of an opaque secret grant. Only the SHA-256
// hash of the plaintext is ever stored; the plaintext leaves the process
// exactly once, embedded in an outbound link or cookie.
type Token struct {
	ID        string
	UserID    string
	Hashed    string
	Kind      TokenKind
	ExpiresAt time.Time
	CreatedAt time.Time
}
