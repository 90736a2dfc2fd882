package auth

import (
	"context"
	"strconv"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/campusclubs/club-blog-service/internal/domain"
)

// memTokenRepo is an in-memory TokenRepository. The mutex around Consume
// mirrors the atomic delete-returning semantics of the SQL implementation.
type memTokenRepo struct {
	mu   sync.Mutex
	rows map[string]*domain.Token
	seq  int
}

func newMemTokenRepo() *memTokenRepo {
	return &memTokenRepo{rows: make(map[string]*domain.Token)}
}

func (r *memTokenRepo) Create(_ context.Context, token *domain.Token) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.seq++
	token.ID = "tok-" + strconv.Itoa(r.seq)
	token.CreatedAt = time.Now()
	copied := *token
	r.rows[token.Hashed] = &copied
	return nil
}

func (r *memTokenRepo) Consume(_ context.Context, hashed string, kind domain.TokenKind, now time.Time) (*domain.Token, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	token, ok := r.rows[hashed]
	if !ok || token.Kind != kind || !token.ExpiresAt.After(now) {
		return nil, pgx.ErrNoRows
	}
	delete(r.rows, hashed)
	copied := *token
	return &copied, nil
}

func (r *memTokenRepo) Get(_ context.Context, hashed string, kind domain.TokenKind, now time.Time) (*domain.Token, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	token, ok := r.rows[hashed]
	if !ok || token.Kind != kind || !token.ExpiresAt.After(now) {
		return nil, pgx.ErrNoRows
	}
	copied := *token
	return &copied, nil
}

func (r *memTokenRepo) DeleteByHash(_ context.Context, hashed string, kind domain.TokenKind) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if token, ok := r.rows[hashed]; ok && token.Kind == kind {
		delete(r.rows, hashed)
	}
	return nil
}

func (r *memTokenRepo) DeleteByUserAndKind(_ context.Context, userID string, kind domain.TokenKind) (int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var deleted int64
	for hashed, token := range r.rows {
		if token.UserID == userID && token.Kind == kind {
			delete(r.rows, hashed)
			deleted++
		}
	}
	return deleted, nil
}

func (r *memTokenRepo) DeleteExpired(_ context.Context, now time.Time) (int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var deleted int64
	for hashed, token := range r.rows {
		if !token.ExpiresAt.After(now) {
			delete(r.rows, hashed)
			deleted++
		}
	}
	return deleted, nil
}

func (r *memTokenRepo) count() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.rows)
}

func TestLedgerIssueStoresOnlyHash(t *testing.T) {
	repo := newMemTokenRepo()
	ledger := NewLedger(repo)

	plaintext, err := ledger.Issue(context.Background(), "user-1", domain.TokenKindActivation, 24*time.Hour)
	require.NoError(t, err)
	require.Len(t, plaintext, 64, "256-bit hex value")

	repo.mu.Lock()
	for hashed := range repo.rows {
		assert.NotEqual(t, plaintext, hashed)
		assert.Equal(t, HashToken(plaintext), hashed)
	}
	repo.mu.Unlock()
}

func TestLedgerSingleUseValidation(t *testing.T) {
	repo := newMemTokenRepo()
	ledger := NewLedger(repo)
	ctx := context.Background()

	for _, kind := range []domain.TokenKind{domain.TokenKindActivation, domain.TokenKindReset} {
		plaintext, err := ledger.Issue(ctx, "user-1", kind, time.Hour)
		require.NoError(t, err)

		first, err := ledger.Validate(ctx, plaintext, kind)
		require.NoError(t, err)
		require.NotNil(t, first, "first validation must succeed")
		assert.Equal(t, "user-1", first.UserID)

		second, err := ledger.Validate(ctx, plaintext, kind)
		require.NoError(t, err)
		assert.Nil(t, second, "second validation must observe not found")
	}
}

func TestLedgerRefreshNotConsumedOnValidate(t *testing.T) {
	repo := newMemTokenRepo()
	ledger := NewLedger(repo)
	ctx := context.Background()

	plaintext, err := ledger.Issue(ctx, "user-1", domain.TokenKindRefresh, time.Hour)
	require.NoError(t, err)

	for i := 0; i < 3; i++ {
		record, err := ledger.Validate(ctx, plaintext, domain.TokenKindRefresh)
		require.NoError(t, err)
		require.NotNil(t, record)
	}

	require.NoError(t, ledger.Revoke(ctx, plaintext, domain.TokenKindRefresh))
	record, err := ledger.Validate(ctx, plaintext, domain.TokenKindRefresh)
	require.NoError(t, err)
	assert.Nil(t, record)
}

func TestLedgerKindMismatch(t *testing.T) {
	repo := newMemTokenRepo()
	ledger := NewLedger(repo)
	ctx := context.Background()

	plaintext, err := ledger.Issue(ctx, "user-1", domain.TokenKindActivation, time.Hour)
	require.NoError(t, err)

	record, err := ledger.Validate(ctx, plaintext, domain.TokenKindReset)
	require.NoError(t, err)
	assert.Nil(t, record, "kind mismatch must not validate")

	record, err = ledger.Validate(ctx, plaintext, domain.TokenKindActivation)
	require.NoError(t, err)
	assert.NotNil(t, record, "kind mismatch must not have consumed the token")
}

func TestLedgerStrictExpiryBoundary(t *testing.T) {
	issued := time.Date(2026, 1, 2, 3, 0, 0, 0, time.UTC)
	now := issued
	repo := newMemTokenRepo()
	ledger := NewLedger(repo, WithLedgerClock(func() time.Time { return now }))
	ctx := context.Background()

	plaintext, err := ledger.Issue(ctx, "user-1", domain.TokenKindReset, time.Hour)
	require.NoError(t, err)
	expiresAt := issued.Add(time.Hour)

	now = expiresAt.Add(-time.Millisecond)
	record, err := ledger.Validate(ctx, plaintext, domain.TokenKindReset)
	require.NoError(t, err)
	assert.NotNil(t, record, "1ms before expiry must validate")

	plaintext2, err := ledger.Issue(ctx, "user-1", domain.TokenKindReset, time.Hour)
	require.NoError(t, err)

	now = now.Add(time.Hour).Add(2 * time.Millisecond)
	record, err = ledger.Validate(ctx, plaintext2, domain.TokenKindReset)
	require.NoError(t, err)
	assert.Nil(t, record, "1ms after expiry must not validate")
}

func TestLedgerRevokeAll(t *testing.T) {
	repo := newMemTokenRepo()
	ledger := NewLedger(repo)
	ctx := context.Background()

	var sessions []string
	for i := 0; i < 3; i++ {
		plaintext, err := ledger.Issue(ctx, "user-1", domain.TokenKindRefresh, time.Hour)
		require.NoError(t, err)
		sessions = append(sessions, plaintext)
	}
	otherUser, err := ledger.Issue(ctx, "user-2", domain.TokenKindRefresh, time.Hour)
	require.NoError(t, err)

	revoked, err := ledger.RevokeAll(ctx, "user-1", domain.TokenKindRefresh)
	require.NoError(t, err)
	assert.EqualValues(t, 3, revoked)

	for _, plaintext := range sessions {
		record, err := ledger.Validate(ctx, plaintext, domain.TokenKindRefresh)
		require.NoError(t, err)
		assert.Nil(t, record)
	}

	record, err := ledger.Validate(ctx, otherUser, domain.TokenKindRefresh)
	require.NoError(t, err)
	assert.NotNil(t, record, "other users' sessions must survive")
}

func TestLedgerConcurrentRedemption(t *testing.T) {
	repo := newMemTokenRepo()
	ledger := NewLedger(repo)
	ctx := context.Background()

	plaintext, err := ledger.Issue(ctx, "user-1", domain.TokenKindActivation, time.Hour)
	require.NoError(t, err)

	const attempts = 32
	var successes atomic.Int64
	var wg sync.WaitGroup
	for i := 0; i < attempts; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			record, err := ledger.Validate(ctx, plaintext, domain.TokenKindActivation)
			if err == nil && record != nil {
				successes.Add(1)
			}
		}()
	}
	wg.Wait()

	assert.EqualValues(t, 1, successes.Load(), "exactly one concurrent redemption may succeed")
}

func TestLedgerSweepExpired(t *testing.T) {
	now := time.Date(2026, 1, 2, 3, 0, 0, 0, time.UTC)
	repo := newMemTokenRepo()
	ledger := NewLedger(repo, WithLedgerClock(func() time.Time { return now }))
	ctx := context.Background()

	_, err := ledger.Issue(ctx, "user-1", domain.TokenKindRefresh, time.Minute)
	require.NoError(t, err)
	_, err = ledger.Issue(ctx, "user-1", domain.TokenKindRefresh, time.Hour)
	require.NoError(t, err)

	now = now.Add(30 * time.Minute)
	swept, err := ledger.SweepExpired(ctx)
	require.NoError(t, err)
	assert.EqualValues(t, 1, swept)
	assert.Equal(t, 1, repo.count())
}
