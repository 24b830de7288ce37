package repository

import (
	"context"
	"errors"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/noah-isme/successpath-portal/internal/session"
)

const sessionKeyPrefix = "portal:session:"

type sessionCacheRepository struct {
	client *redis.Client
	ttl    time.Duration
	now    func() time.Time
}

// NewSessionCacheRepository stores session entries in redis under
// portal:session:<id>:token and portal:session:<id>:user. Both keys expire
// after ttl, or earlier when the token itself expires sooner.
func NewSessionCacheRepository(client *redis.Client, ttl time.Duration) session.Store {
	return &sessionCacheRepository{client: client, ttl: ttl, now: time.Now}
}

func sessionKey(sessionID, name string) string {
	return sessionKeyPrefix + sessionID + ":" + name
}

func (r *sessionCacheRepository) Load(ctx context.Context, sessionID string) (session.Entries, error) {
	values, err := r.client.MGet(ctx, sessionKey(sessionID, session.TokenKey), sessionKey(sessionID, session.UserKey)).Result()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return session.Entries{}, nil
		}
		return session.Entries{}, err
	}

	var entries session.Entries
	if token, ok := values[0].(string); ok {
		entries.Token = token
	}
	if user, ok := values[1].(string); ok {
		entries.User = []byte(user)
	}
	return entries, nil
}

func (r *sessionCacheRepository) Save(ctx context.Context, sessionID string, entries session.Entries) error {
	ttl := r.expiryFor(entries.Token)
	_, err := r.client.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
		pipe.Set(ctx, sessionKey(sessionID, session.TokenKey), entries.Token, ttl)
		pipe.Set(ctx, sessionKey(sessionID, session.UserKey), entries.User, ttl)
		return nil
	})
	return err
}

func (r *sessionCacheRepository) Clear(ctx context.Context, sessionID string) error {
	return r.client.Del(ctx, sessionKey(sessionID, session.TokenKey), sessionKey(sessionID, session.UserKey)).Err()
}

func (r *sessionCacheRepository) expiryFor(token string) time.Duration {
	ttl := r.ttl
	if expiry, ok := session.TokenExpiry(token); ok {
		if untilExpiry := expiry.Sub(r.now()); untilExpiry > 0 && (ttl <= 0 || untilExpiry < ttl) {
			ttl = untilExpiry
		}
	}
	return ttl
}
