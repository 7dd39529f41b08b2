package auth

import (
	"context"
	"time"

	"github.com/google/uuid"

	"focolog/core/cache"
	"focolog/model/entity"
)

const sessionPrefix = "session:"

// Session is a logged-in user bound to a bearer token.
type Session struct {
	Token     string    `json:"token"`
	UserID    int64     `json:"user_id"`
	Name      string    `json:"name"`
	Email     string    `json:"email"`
	Role      string    `json:"role"`
	ExpiresAt time.Time `json:"expires_at"`
}

// Sessions keeps sessions in the cache until their TTL runs out.
type Sessions struct {
	cache cache.Store
	ttl   time.Duration
	now   func() time.Time
}

func NewSessions(c cache.Store, ttl time.Duration) *Sessions {
	if ttl <= 0 {
		ttl = 8 * time.Hour
	}
	return &Sessions{cache: c, ttl: ttl, now: time.Now}
}

// Issue starts a session for u.
func (s *Sessions) Issue(ctx context.Context, u entity.User) (*Session, error) {
	sess := &Session{
		Token:     uuid.NewString(),
		UserID:    u.ID,
		Name:      u.Name,
		Email:     u.Email,
		Role:      u.Role,
		ExpiresAt: s.now().Add(s.ttl),
	}
	if err := cache.SetJSON(ctx, s.cache, sessionPrefix+sess.Token, sess, s.ttl); err != nil {
		return nil, err
	}
	return sess, nil
}

func (s *Sessions) Lookup(ctx context.Context, token string) (*Session, bool) {
	if token == "" {
		return nil, false
	}
	var sess Session
	if !cache.GetJSON(ctx, s.cache, sessionPrefix+token, &sess) {
		return nil, false
	}
	return &sess, true
}

func (s *Sessions) Revoke(ctx context.Context, token string) {
	s.cache.Delete(ctx, sessionPrefix+token)
}
