package sessions

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"

	"github.com/caredesk/appointment-service/internal/models"
)

// ErrSessionNotFound is returned when a token has no live session, either
// because it never existed or because it expired.
var ErrSessionNotFound = errors.New("session not found")

const keyPrefix = "session:"

// Session is the server-side login state referenced by the browser cookie.
type Session struct {
	Token     string          `json:"token"`
	UserID    uint            `json:"user_id"`
	Role      models.UserRole `json:"role"`
	CreatedAt time.Time       `json:"created_at"`
}

// Store keeps sessions in Redis under opaque tokens so logins survive
// process restarts and are shared across replicas.
type Store struct {
	client      *redis.Client
	ttl         time.Duration
	rememberTTL time.Duration
}

func NewStore(client *redis.Client, ttl, rememberTTL time.Duration) *Store {
	return &Store{client: client, ttl: ttl, rememberTTL: rememberTTL}
}

// Create starts a session for the user and returns its token. With remember
// set the session lives for the extended TTL.
func (s *Store) Create(ctx context.Context, user *models.User, remember bool) (*Session, error) {
	session := &Session{
		Token:     uuid.New().String(),
		UserID:    user.ID,
		Role:      user.Role,
		CreatedAt: time.Now().UTC(),
	}

	data, err := json.Marshal(session)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal session: %w", err)
	}

	ttl := s.ttl
	if remember {
		ttl = s.rememberTTL
	}

	if err := s.client.Set(ctx, keyPrefix+session.Token, data, ttl).Err(); err != nil {
		return nil, fmt.Errorf("failed to store session: %w", err)
	}
	return session, nil
}

// Get resolves a token to its session, or ErrSessionNotFound.
func (s *Store) Get(ctx context.Context, token string) (*Session, error) {
	if token == "" {
		return nil, ErrSessionNotFound
	}

	data, err := s.client.Get(ctx, keyPrefix+token).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, ErrSessionNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to load session: %w", err)
	}

	var session Session
	if err := json.Unmarshal(data, &session); err != nil {
		return nil, fmt.Errorf("failed to unmarshal session: %w", err)
	}
	return &session, nil
}

// Destroy removes the session. Destroying an unknown token is not an error.
func (s *Store) Destroy(ctx context.Context, token string) error {
	if token == "" {
		return nil
	}
	if err := s.client.Del(ctx, keyPrefix+token).Err(); err != nil {
		return fmt.Errorf("failed to destroy session: %w", err)
	}
	return nil
}
