package service

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	apperrors "github.com/campusclubs/club-blog-service/pkg/util"
)

// LoginLimiter throttles login attempts per email+IP on a redis fixed
// window. A redis outage fails open; the bcrypt cost is the backstop.
type LoginLimiter struct {
	client *redis.Client
	max    int
	window time.Duration
}

// NewLoginLimiter builds the limiter. A nil client disables limiting.
func NewLoginLimiter(client *redis.Client, max int, window time.Duration) *LoginLimiter {
	if max <= 0 {
		max = 10
	}
	if window <= 0 {
		window = 5 * time.Minute
	}
	return &LoginLimiter{client: client, max: max, window: window}
}

// Allow records one attempt and reports whether it may proceed.
func (l *LoginLimiter) Allow(ctx context.Context, email, ip string) error {
	if l == nil || l.client == nil {
		return nil
	}

	key := fmt.Sprintf("login_attempts:%s:%s", email, ip)
	count, err := l.client.Incr(ctx, key).Result()
	if err != nil {
		return nil
	}
	if count == 1 {
		l.client.Expire(ctx, key, l.window)
	}
	if count > int64(l.max) {
		return apperrors.NewTooManyRequests("too many login attempts, try again later")
	}
	return nil
}

// Reset clears the window after a successful login.
func (l *LoginLimiter) Reset(ctx context.Context, email, ip string) {
	if l == nil || l.client == nil {
		return
	}
	l.client.Del(ctx, fmt.Sprintf("login_attempts:%s:%s", email, ip))
}
