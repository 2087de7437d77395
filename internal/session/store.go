package session

import (
	"context"
	"fmt"
	"strconv"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus"
)

// ErrNotFound is returned when a session ID has no stored session
var ErrNotFound = fmt.Errorf("session not found")

// Store holds agent sessions keyed by an opaque session ID
type Store interface {
	Create(ctx context.Context, userID uint) (string, error)
	Get(ctx context.Context, sessionID string) (uint, error)
	Delete(ctx context.Context, sessionID string) error
}

// RedisStore implements Store on redis
type RedisStore struct {
	client *redis.Client
	ttl    time.Duration
	logger *logrus.Logger
}

// RedisConfig holds redis connection settings for the session store
type RedisConfig struct {
	Addr     string
	Password string
	DB       int
	TTL      time.Duration
}

// NewRedisStore connects to redis and returns a session store
func NewRedisStore(cfg RedisConfig, logger *logrus.Logger) (*RedisStore, error) {
	if logger == nil {
		logger = logrus.New()
	}

	client := redis.NewClient(&redis.Options{
		Addr:     cfg.Addr,
		Password: cfg.Password,
		DB:       cfg.DB,
	})

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := client.Ping(ctx).Err(); err != nil {
		return nil, fmt.Errorf("failed to connect to redis: %w", err)
	}

	return &RedisStore{
		client: client,
		ttl:    cfg.TTL,
		logger: logger,
	}, nil
}

func sessionKey(id string) string {
	return "session:" + id
}

// Create stores a new session and returns its opaque ID
func (s *RedisStore) Create(ctx context.Context, userID uint) (string, error) {
	sessionID := uuid.New().String()

	err := s.client.Set(ctx, sessionKey(sessionID), strconv.FormatUint(uint64(userID), 10), s.ttl).Err()
	if err != nil {
		return "", fmt.Errorf("failed to store session: %w", err)
	}

	s.logger.WithField("user_id", userID).Debug("Created session")
	return sessionID, nil
}

// Get resolves a session ID to the signed-in user ID
func (s *RedisStore) Get(ctx context.Context, sessionID string) (uint, error) {
	value, err := s.client.Get(ctx, sessionKey(sessionID)).Result()
	if err == redis.Nil {
		return 0, ErrNotFound
	}
	if err != nil {
		return 0, fmt.Errorf("failed to get session: %w", err)
	}

	userID, err := strconv.ParseUint(value, 10, 64)
	if err != nil {
		return 0, fmt.Errorf("corrupt session value: %w", err)
	}
	return uint(userID), nil
}

// Delete removes a session
func (s *RedisStore) Delete(ctx context.Context, sessionID string) error {
	if err := s.client.Del(ctx, sessionKey(sessionID)).Err(); err != nil {
		return fmt.Errorf("failed to delete session: %w", err)
	}
	return nil
}

// Close releases the redis connection
func (s *RedisStore) Close() error {
	return s.client.Close()
}

// MemoryStore implements Store in process memory. Used when redis is not
// configured and in tests. Sessions expire after the configured TTL just
// like the redis store; a non-positive TTL keeps them until deleted.
type MemoryStore struct {
	mu       sync.Mutex
	ttl      time.Duration
	sessions map[string]memorySession
}

type memorySession struct {
	userID    uint
	expiresAt time.Time
}

// NewMemoryStore creates an in-memory session store
func NewMemoryStore(ttl time.Duration) *MemoryStore {
	return &MemoryStore{ttl: ttl, sessions: make(map[string]memorySession)}
}

// Create stores a new session and returns its opaque ID
func (s *MemoryStore) Create(ctx context.Context, userID uint) (string, error) {
	sessionID := uuid.New().String()
	entry := memorySession{userID: userID}
	if s.ttl > 0 {
		entry.expiresAt = time.Now().Add(s.ttl)
	}
	s.mu.Lock()
	s.sessions[sessionID] = entry
	s.mu.Unlock()
	return sessionID, nil
}

// Get resolves a session ID to the signed-in user ID. Expired sessions are
// dropped on lookup.
func (s *MemoryStore) Get(ctx context.Context, sessionID string) (uint, error) {
	s.mu.Lock()
	entry, ok := s.sessions[sessionID]
	if ok && !entry.expiresAt.IsZero() && time.Now().After(entry.expiresAt) {
		delete(s.sessions, sessionID)
		ok = false
	}
	s.mu.Unlock()
	if !ok {
		return 0, ErrNotFound
	}
	return entry.userID, nil
}

// Delete removes a session
func (s *MemoryStore) Delete(ctx context.Context, sessionID string) error {
	s.mu.Lock()
	delete(s.sessions, sessionID)
	s.mu.Unlock()
	return nil
}
