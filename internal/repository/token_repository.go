package repository

import (
	"context"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/campusclubs/club-blog-service/internal/domain"
)

// TokenRepository manages persisted token hashes. Consume is the single
// synchronization point for single-use tokens: the conditional
// DELETE ... RETURNING makes lookup and deletion one atomic statement, so
// concurrent redemptions of the same token cannot both succeed.
type TokenRepository interface {
	Create(ctx context.Context, token *domain.Token) error
	// Consume atomically deletes and returns the live token matching
	// hash+kind. Returns pgx.ErrNoRows when missing or expired.
	Consume(ctx context.Context, hashed string, kind domain.TokenKind, now time.Time) (*domain.Token, error)
	// Get returns the live token matching hash+kind without consuming it.
	Get(ctx context.Context, hashed string, kind domain.TokenKind, now time.Time) (*domain.Token, error)
	DeleteByHash(ctx context.Context, hashed string, kind domain.TokenKind) error
	DeleteByUserAndKind(ctx context.Context, userID string, kind domain.TokenKind) (int64, error)
	DeleteExpired(ctx context.Context, now time.Time) (int64, error)
}

type tokenRepository struct {
	pool *pgxpool.Pool
}

// NewTokenRepository returns a Postgres-backed implementation.
func NewTokenRepository(pool *pgxpool.Pool) TokenRepository {
	return &tokenRepository{pool: pool}
}

func (r *tokenRepository) Create(ctx context.Context, token *domain.Token) error {
	const query = `
        INSERT INTO tokens (user_id, hashed, kind, expires_at)
        VALUES ($1, $2, $3, $4)
        RETURNING id, created_at`

	return r.pool.QueryRow(ctx, query,
		token.UserID,
		token.Hashed,
		token.Kind,
		token.ExpiresAt,
	).Scan(&token.ID, &token.CreatedAt)
}

func (r *tokenRepository) Consume(ctx context.Context, hashed string, kind domain.TokenKind, now time.Time) (*domain.Token, error) {
	const query = `
        DELETE FROM tokens
        WHERE hashed=$1 AND kind=$2 AND expires_at > $3
        RETURNING id, user_id, hashed, kind, expires_at, created_at`

	var token domain.Token
	if err := r.pool.QueryRow(ctx, query, hashed, kind, now).Scan(
		&token.ID,
		&token.UserID,
		&token.Hashed,
		&token.Kind,
		&token.ExpiresAt,
		&token.CreatedAt,
	); err != nil {
		return nil, err
	}
	return &token, nil
}

func (r *tokenRepository) Get(ctx context.Context, hashed string, kind domain.TokenKind, now time.Time) (*domain.Token, error) {
	const query = `
        SELECT id, user_id, hashed, kind, expires_at, created_at
        FROM tokens WHERE hashed=$1 AND kind=$2 AND expires_at > $3`

	var token domain.Token
	if err := r.pool.QueryRow(ctx, query, hashed, kind, now).Scan(
		&token.ID,
		&token.UserID,
		&token.Hashed,
		&token.Kind,
		&token.ExpiresAt,
		&token.CreatedAt,
	); err != nil {
		return nil, err
	}
	return &token, nil
}

func (r *tokenRepository) DeleteByHash(ctx context.Context, hashed string, kind domain.TokenKind) error {
	const query = `DELETE FROM tokens WHERE hashed=$1 AND kind=$2`
	_, err := r.pool.Exec(ctx, query, hashed, kind)
	return err
}

func (r *tokenRepository) DeleteByUserAndKind(ctx context.Context, userID string, kind domain.TokenKind) (int64, error) {
	const query = `DELETE FROM tokens WHERE user_id=$1 AND kind=$2`
	cmd, err := r.pool.Exec(ctx, query, userID, kind)
	if err != nil {
		return 0, err
	}
	return cmd.RowsAffected(), nil
}

func (r *tokenRepository) DeleteExpired(ctx context.Context, now time.Time) (int64, error) {
	const query = `DELETE FROM tokens WHERE expires_at <= $1`
	cmd, err := r.pool.Exec(ctx, query, now)
	if err != nil {
		return 0, err
	}
	return cmd.RowsAffected(), nil
}
