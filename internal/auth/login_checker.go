package auth

import (
	"context"
	"time"

	"github.com/go-redis/redis/v8"
)

var _ Checker = (*LoginChecker)(nil)

type Checker interface {
	UserID(ctx context.Context, token string) (int, error)
}

// LoginChecker resolves a session token to the logged-in user ID.
type LoginChecker struct {
	ttl         time.Duration
	redisClient *redis.Client
}

func NewLoginChecker(ttl time.Duration, redisClient *redis.Client) *LoginChecker {
	return &LoginChecker{
		ttl:         ttl,
		redisClient: redisClient,
	}
}

// UserID returns ErrNotLoggedIn for unknown or expired tokens.
func (c *LoginChecker) UserID(ctx context.Context, token string) (int, error) {
	sessionKey := sessionKeyPrefix + token
	val, err := c.redisClient.Get(ctx, sessionKey).Result()
	if err == redis.Nil {
		return 0, ErrNotLoggedIn
	}
	if err != nil {
		return 0, err
	}

	userID, createdAt, err := parseSessionValue(val)
	if err != nil {
		return 0, err
	}

	if time.Since(createdAt) > c.ttl {
		return 0, ErrNotLoggedIn
	}

	return userID, nil
}
