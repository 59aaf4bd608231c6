package redis

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	goredis "github.com/redis/go-redis/v9"

	"github.com/peak10/examprep-backend/internal/platform/logger"
	"github.com/peak10/examprep-backend/internal/types"
	"github.com/peak10/examprep-backend/internal/utils"
)

// SessionStore caches the signed-in user record so request handling does not
// hit postgres on every call. A miss is not an error; callers fall back to
// the user repo.
type SessionStore interface {
	GetUser(ctx context.Context, userID uuid.UUID) (*types.User, error)
	SetUser(ctx context.Context, user *types.User) error
	Close() error
}

type sessionStore struct {
	log *logger.Logger
	rdb *goredis.Client
	ttl time.Duration
}

func NewSessionStore(log *logger.Logger) (SessionStore, error) {
	if log == nil {
		return nil, fmt.Errorf("logger required")
	}

	addr := strings.TrimSpace(utils.GetEnv("REDIS_ADDR", "", log))
	if addr == "" {
		return nil, fmt.Errorf("missing REDIS_ADDR")
	}
	ttlSec := utils.GetEnvAsInt("SESSION_TTL_SECONDS", 3600, log)

	rdb := goredis.NewClient(&goredis.Options{
		Addr:        addr,
		DialTimeout: 5 * time.Second,
	})

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := rdb.Ping(ctx).Err(); err != nil {
		_ = rdb.Close()
		return nil, fmt.Errorf("redis ping: %w", err)
	}

	return &sessionStore{
		log: log.With("client", "RedisSessionStore"),
		rdb: rdb,
		ttl: time.Duration(ttlSec) * time.Second,
	}, nil
}

func sessionKey(userID uuid.UUID) string {
	return "session:user:" + userID.String()
}

func (s *sessionStore) GetUser(ctx context.Context, userID uuid.UUID) (*types.User, error) {
	if userID == uuid.Nil {
		return nil, nil
	}
	raw, err := s.rdb.Get(ctx, sessionKey(userID)).Bytes()
	if err == goredis.Nil {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("redis get session: %w", err)
	}
	var u types.User
	if err := json.Unmarshal(raw, &u); err != nil {
		s.log.Warn("Dropping undecodable session record", "user_id", userID, "error", err)
		return nil, nil
	}
	return &u, nil
}

func (s *sessionStore) SetUser(ctx context.Context, user *types.User) error {
	if user == nil || user.ID == uuid.Nil {
		return nil
	}
	raw, err := json.Marshal(user)
	if err != nil {
		return fmt.Errorf("encode session record: %w", err)
	}
	if err := s.rdb.Set(ctx, sessionKey(user.ID), raw, s.ttl).Err(); err != nil {
		return fmt.Errorf("redis set session: %w", err)
	}
	return nil
}

func (s *sessionStore) Close() error { return s.rdb.Close() }
