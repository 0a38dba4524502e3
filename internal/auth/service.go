package auth

import (
	"context"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/repforge/repforge/pkg"

	"github.com/go-redis/redis/v8"
	log "github.com/sirupsen/logrus"
)

// Service owns login sessions: opaque tokens mapped to user IDs in redis.
type Service struct {
	redisClient *redis.Client
	ttl         time.Duration
	// ability to inject random string generator func for tokens (for unit and dev testing)
	RandStringFunc func(s int) (string, error)
}

func NewService(ttl time.Duration, redisClient *redis.Client) *Service {
	return &Service{
		ttl:            ttl,
		redisClient:    redisClient,
		RandStringFunc: pkg.GenerateRandomString,
	}
}

func (s *Service) Login(ctx context.Context, userID int, createdAt time.Time) (string, error) {
	token, err := s.RandStringFunc(35)
	if err != nil {
		return "", err
	}

	sessionKey := sessionKeyPrefix + token
	sessionVal := fmt.Sprintf("%d|%d", userID, createdAt.Unix())
	if err := s.redisClient.Set(ctx, sessionKey, sessionVal, s.ttl).Err(); err != nil {
		return "", err
	}

	// add token to the set of sessions, so ScanAndClean can find them all
	if err := s.redisClient.SAdd(ctx, tokensSetKey, token).Err(); err != nil {
		return "", err
	}

	return token, nil
}

func (s *Service) Logout(ctx context.Context, token string) error {
	sessionKey := sessionKeyPrefix + token
	res, err := s.redisClient.Del(ctx, sessionKey).Result()
	if err != nil {
		return err
	}
	if res == 0 {
		return ErrNotLoggedIn
	}

	return s.redisClient.SRem(ctx, tokensSetKey, token).Err()
}

// ScanAndClean runs through all known session tokens and removes the expired ones.
// The session keys themselves carry a TTL, this only keeps the token set tidy.
func (s *Service) ScanAndClean(ctx context.Context) {
	sessionTokens, err := s.redisClient.SMembers(ctx, tokensSetKey).Result()
	if err != nil {
		log.Errorf("auth service, scan and clean, get sessions: %s", err)
		return
	}
	if len(sessionTokens) == 0 {
		return
	}

	log.Debugf("auth service, scan and clean [%d sessions] start ...", len(sessionTokens))
	for _, token := range sessionTokens {
		sessionKey := sessionKeyPrefix + token
		_, err := s.redisClient.Get(ctx, sessionKey).Result()
		if err == redis.Nil {
			// key expired, drop the token from the set as well
			if err := s.redisClient.SRem(ctx, tokensSetKey, token).Err(); err != nil {
				log.Errorf("auth service, clean token %s: %s", token, err)
			}
			continue
		}
		if err != nil {
			log.Errorf("auth service, scan and clean token %s: %s", token, err)
		}
	}
}

func parseSessionValue(val string) (userID int, createdAt time.Time, err error) {
	parts := strings.SplitN(val, "|", 2)
	if len(parts) != 2 {
		return 0, time.Time{}, fmt.Errorf("malformed session value [%s]", val)
	}
	userID, err = strconv.Atoi(parts[0])
	if err != nil {
		return 0, time.Time{}, fmt.Errorf("malformed session user id: %w", err)
	}
	createdAtUnix, err := strconv.ParseInt(parts[1], 10, 64)
	if err != nil {
		return 0, time.Time{}, fmt.Errorf("malformed session created at: %w", err)
	}
	return userID, time.Unix(createdAtUnix, 0), nil
}
