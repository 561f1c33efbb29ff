package session

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"fmt"
	"strconv"
	"time"

	"goalboard/internal/providers/redis"
)

type Service interface {
	CreateSession(userID uint64) (*Session, error)
	UserIDByKey(ctx context.Context, sessionKey string) (uint64, error)
	EndSession(ctx context.Context, sessionKey string) error
	CloseOtherSessions(ctx context.Context, userID uint64, keepKey string) error
}

type service struct {
	repo   Repository
	redisP *redis.RedisProvider
	ttl    time.Duration
}

func NewService(repo Repository, redisP *redis.RedisProvider, ttl time.Duration) Service {
	return &service{repo: repo, redisP: redisP, ttl: ttl}
}

func (s *service) CreateSession(userID uint64) (*Session, error) {
	sessionKey, err := generateSessionKey()
	if err != nil {
		return nil, fmt.Errorf("failed to generate session key: %w", err)
	}

	session := &Session{
		SessionKey: sessionKey,
		UserID:     userID,
		ExpiresAt:  time.Now().UTC().Add(s.ttl),
	}
	if err := s.repo.CreateSession(session); err != nil {
		return nil, fmt.Errorf("failed to create session: %w", err)
	}
	return session, nil
}

// UserIDByKey resolves a session key to its user. Hits redis first so
// the auth middleware does not touch Postgres on every request.
func (s *service) UserIDByKey(ctx context.Context, sessionKey string) (uint64, error) {
	cacheKey := cacheKeyFor(sessionKey)
	if s.redisP != nil {
		if cached, err := s.redisP.Get(ctx, cacheKey).Result(); err == nil {
			if id, err := strconv.ParseUint(cached, 10, 64); err == nil {
				return id, nil
			}
		}
	}

	session, err := s.repo.GetActiveByKey(sessionKey)
	if err != nil {
		return 0, fmt.Errorf("session not found: %w", err)
	}

	if s.redisP != nil {
		s.redisP.SetWithDefaultTTL(ctx, cacheKey, strconv.FormatUint(session.UserID, 10), 0)
	}
	return session.UserID, nil
}

func (s *service) EndSession(ctx context.Context, sessionKey string) error {
	if s.redisP != nil {
		s.redisP.Del(ctx, cacheKeyFor(sessionKey))
	}
	return s.repo.EndSession(sessionKey)
}

// CloseOtherSessions ends every active session of the user except
// keepKey and drops their cache entries, so a password change logs out
// all other devices immediately.
func (s *service) CloseOtherSessions(ctx context.Context, userID uint64, keepKey string) error {
	keys, err := s.repo.ActiveKeysForUser(userID)
	if err != nil {
		return fmt.Errorf("failed to list active sessions: %w", err)
	}
	if s.redisP != nil {
		for _, key := range keys {
			if key == keepKey {
				continue
			}
			s.redisP.Del(ctx, cacheKeyFor(key))
		}
	}
	return s.repo.CloseUserSessions(userID, keepKey)
}

func cacheKeyFor(sessionKey string) string {
	return "session:" + sessionKey
}

func generateSessionKey() (string, error) {
	bytes := make([]byte, 32)
	if _, err := rand.Read(bytes); err != nil {
		return "", err
	}
	return hex.EncodeToString(bytes), nil
}
