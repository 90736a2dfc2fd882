package service

import (
	"context"
	"errors"
	"strconv"
	"sync"
	"time"

	"github.com/jackc/pgx/v5"

	"github.com/campusclubs/club-blog-service/internal/config"
	"github.com/campusclubs/club-blog-service/internal/domain"
	"github.com/campusclubs/club-blog-service/internal/events"
)

func testConfig() config.Config {
	return config.Config{
		App: config.AppConfig{BaseURL: "http://localhost:8080"},
		Auth: config.AuthConfig{
			JWTAccessSecret:         "access-secret",
			JWTRefreshSecret:        "refresh-secret",
			AccessTokenTTLMinutes:   15,
			RefreshTokenTTLHours:    168,
			ActivationTokenTTLHours: 24,
			ResetTokenTTLHours:      1,
			// bcrypt min cost keeps the suite fast
			BcryptCost: 4,
		},
	}
}

type memUsers struct {
	mu   sync.Mutex
	rows map[string]*domain.User
	seq  int
}

func newMemUsers() *memUsers {
	return &memUsers{rows: make(map[string]*domain.User)}
}

func (r *memUsers) Create(_ context.Context, user *domain.User) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, existing := range r.rows {
		if existing.Email == user.Email {
			return errors.New("duplicate key value violates unique constraint")
		}
	}
	r.seq++
	user.ID = "user-" + strconv.Itoa(r.seq)
	user.CreatedAt = time.Now()
	user.UpdatedAt = user.CreatedAt
	copied := *user
	r.rows[user.ID] = &copied
	return nil
}

func (r *memUsers) Update(_ context.Context, user *domain.User) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.rows[user.ID]; !ok {
		return pgx.ErrNoRows
	}
	copied := *user
	copied.UpdatedAt = time.Now()
	r.rows[user.ID] = &copied
	return nil
}

func (r *memUsers) GetByID(_ context.Context, id string) (*domain.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	user, ok := r.rows[id]
	if !ok {
		return nil, pgx.ErrNoRows
	}
	copied := *user
	return &copied, nil
}

func (r *memUsers) GetByEmail(_ context.Context, email string) (*domain.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, user := range r.rows {
		if user.Email == email {
			copied := *user
			return &copied, nil
		}
	}
	return nil, pgx.ErrNoRows
}

func (r *memUsers) ListByStatus(_ context.Context, status domain.UserStatus, limit int) ([]*domain.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var users []*domain.User
	for _, user := range r.rows {
		if user.Status == status && len(users) < limit {
			copied := *user
			users = append(users, &copied)
		}
	}
	return users, nil
}

type memTokens struct {
	mu   sync.Mutex
	rows map[string]*domain.Token
	seq  int
}

func newMemTokens() *memTokens {
	return &memTokens{rows: make(map[string]*domain.Token)}
}

func (r *memTokens) Create(_ context.Context, token *domain.Token) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.seq++
	token.ID = "tok-" + strconv.Itoa(r.seq)
	token.CreatedAt = time.Now()
	copied := *token
	r.rows[token.Hashed] = &copied
	return nil
}

func (r *memTokens) Consume(_ context.Context, hashed string, kind domain.TokenKind, now time.Time) (*domain.Token, error) {
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

func (r *memTokens) Get(_ context.Context, hashed string, kind domain.TokenKind, now time.Time) (*domain.Token, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	token, ok := r.rows[hashed]
	if !ok || token.Kind != kind || !token.ExpiresAt.After(now) {
		return nil, pgx.ErrNoRows
	}
	copied := *token
	return &copied, nil
}

func (r *memTokens) DeleteByHash(_ context.Context, hashed string, kind domain.TokenKind) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if token, ok := r.rows[hashed]; ok && token.Kind == kind {
		delete(r.rows, hashed)
	}
	return nil
}

func (r *memTokens) DeleteByUserAndKind(_ context.Context, userID string, kind domain.TokenKind) (int64, error) {
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

func (r *memTokens) DeleteExpired(_ context.Context, now time.Time) (int64, error) {
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

func (r *memTokens) countByKind(kind domain.TokenKind) int {
	r.mu.Lock()
	defer r.mu.Unlock()
	n := 0
	for _, token := range r.rows {
		if token.Kind == kind {
			n++
		}
	}
	return n
}

type memBlogs struct {
	mu   sync.Mutex
	rows map[string]*domain.Blog
	seq  int
}

func newMemBlogs() *memBlogs {
	return &memBlogs{rows: make(map[string]*domain.Blog)}
}

func (r *memBlogs) Create(_ context.Context, blog *domain.Blog) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.seq++
	blog.ID = "blog-" + strconv.Itoa(r.seq)
	blog.CreatedAt = time.Now()
	blog.UpdatedAt = blog.CreatedAt
	copied := *blog
	r.rows[blog.ID] = &copied
	return nil
}

func (r *memBlogs) Update(_ context.Context, blog *domain.Blog) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.rows[blog.ID]; !ok {
		return pgx.ErrNoRows
	}
	copied := *blog
	r.rows[blog.ID] = &copied
	return nil
}

func (r *memBlogs) GetByID(_ context.Context, id string) (*domain.Blog, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	blog, ok := r.rows[id]
	if !ok {
		return nil, pgx.ErrNoRows
	}
	copied := *blog
	return &copied, nil
}

func (r *memBlogs) ListByStatus(_ context.Context, status domain.BlogStatus, limit int) ([]*domain.Blog, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var blogs []*domain.Blog
	for _, blog := range r.rows {
		if blog.Status == status && len(blogs) < limit {
			copied := *blog
			blogs = append(blogs, &copied)
		}
	}
	return blogs, nil
}

func (r *memBlogs) ListByAuthor(_ context.Context, authorID string, limit int) ([]*domain.Blog, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var blogs []*domain.Blog
	for _, blog := range r.rows {
		if blog.AuthorID == authorID && len(blogs) < limit {
			copied := *blog
			blogs = append(blogs, &copied)
		}
	}
	return blogs, nil
}

type sentMail struct {
	To      string
	Subject string
	HTML    string
}

// captureMailer records sends and can be flipped to fail.
type captureMailer struct {
	mu   sync.Mutex
	sent []sentMail
	fail error
}

func (m *captureMailer) Send(_ context.Context, to, subject, html string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.fail != nil {
		return m.fail
	}
	m.sent = append(m.sent, sentMail{To: to, Subject: subject, HTML: html})
	return nil
}

func (m *captureMailer) lastTo() string {
	m.mu.Lock()
	defer m.mu.Unlock()
	if len(m.sent) == 0 {
		return ""
	}
	return m.sent[len(m.sent)-1].To
}

func (m *captureMailer) count() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.sent)
}

// recordEvents subscribes a capturing handler for the given types and
// returns the captured slice accessor.
func recordEvents(d events.Dispatcher, types ...events.EventType) func() []events.Event {
	var mu sync.Mutex
	var captured []events.Event
	for _, t := range types {
		d.Subscribe(t, func(_ context.Context, e events.Event) error {
			mu.Lock()
			captured = append(captured, e)
			mu.Unlock()
			return nil
		})
	}
	return func() []events.Event {
		mu.Lock()
		defer mu.Unlock()
		return append([]events.Event{}, captured...)
	}
}
