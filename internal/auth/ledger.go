package auth

import (
	"context"
	"crypto/rand"
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"time"

	"github.com/jackc/pgx/v5"

	"github.com/campusclubs/club-blog-service/internal/domain"
	"github.com/campusclubs/club-blog-service/internal/repository"
)

// Ledger issues and validates opaque single-use and refresh tokens. The
// plaintext never touches storage or logs; only its SHA-256 hash does.
type Ledger struct {
	tokens repository.TokenRepository
	now    func() time.Time
}

// LedgerOption customizes ledger construction.
type LedgerOption func(*Ledger)

// WithLedgerClock injects a custom clock (useful for tests).
func WithLedgerClock(clock func() time.Time) LedgerOption {
	return func(l *Ledger) {
		if clock != nil {
			l.now = clock
		}
	}
}

// NewLedger builds a ledger over the token repository.
func NewLedger(tokens repository.TokenRepository, opts ...LedgerOption) *Ledger {
	l := &Ledger{tokens: tokens, now: time.Now}
	for _, opt := range opts {
		opt(l)
	}
	return l
}

// GenerateToken produces a 256-bit random opaque value, hex encoded.
func GenerateToken() (string, error) {
	buf := make([]byte, 32)
	if _, err := rand.Read(buf); err != nil {
		return "", err
	}
	return hex.EncodeToString(buf), nil
}

// HashToken derives the storage form of a plaintext token.
func HashToken(plaintext string) string {
	sum := sha256.Sum256([]byte(plaintext))
	return hex.EncodeToString(sum[:])
}

// Issue persists a hashed token row and returns the plaintext exactly once.
func (l *Ledger) Issue(ctx context.Context, userID string, kind domain.TokenKind, ttl time.Duration) (string, error) {
	plaintext, err := GenerateToken()
	if err != nil {
		return "", err
	}

	token := &domain.Token{
		UserID:    userID,
		Hashed:    HashToken(plaintext),
		Kind:      kind,
		ExpiresAt: l.now().Add(ttl),
	}
	if err := l.tokens.Create(ctx, token); err != nil {
		return "", err
	}
	return plaintext, nil
}

// Validate resolves a plaintext token of the expected kind. ACTIVATION and
// RESET tokens are consumed atomically at the moment of successful
// validation; of two concurrent redemptions at most one succeeds. REFRESH
// tokens are left in place. A miss returns nil without distinguishing
// missing, consumed or expired.
func (l *Ledger) Validate(ctx context.Context, plaintext string, kind domain.TokenKind) (*domain.Token, error) {
	hashed := HashToken(plaintext)

	var (
		token *domain.Token
		err   error
	)
	if kind == domain.TokenKindRefresh {
		token, err = l.tokens.Get(ctx, hashed, kind, l.now())
	} else {
		token, err = l.tokens.Consume(ctx, hashed, kind, l.now())
	}
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}
	return token, nil
}

// Revoke deletes the token matching a plaintext value, used for logout.
func (l *Ledger) Revoke(ctx context.Context, plaintext string, kind domain.TokenKind) error {
	return l.tokens.DeleteByHash(ctx, HashToken(plaintext), kind)
}

// RevokeAll bulk-deletes every token of the kind owned by the user, used to
// force re-login everywhere after a password reset.
func (l *Ledger) RevokeAll(ctx context.Context, userID string, kind domain.TokenKind) (int64, error) {
	return l.tokens.DeleteByUserAndKind(ctx, userID, kind)
}

// SweepExpired removes expired rows. Purely storage hygiene; expiry is
// already enforced at read time.
func (l *Ledger) SweepExpired(ctx context.Context) (int64, error) {
	return l.tokens.DeleteExpired(ctx, l.now())
}
