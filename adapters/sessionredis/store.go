// Package sessionredis stores sessions in Redis, letting multiple server
// processes share one session table.
package sessionredis

import (
	"context"
	"errors"
	"strconv"
	"time"

	"github.com/go-redis/redis/v8"
	"github.com/goliatone/go-folio/folio"
)

const keyPrefix = "folio:session:"

// Store is a Redis-backed session store. Expiry is delegated to Redis
// key TTLs.
type Store struct {
	Client *redis.Client
	Now    func() time.Time
}

// NewStore creates a Redis-backed session store.
func NewStore(client *redis.Client) *Store {
	return &Store{Client: client, Now: time.Now}
}

func (s *Store) Set(ctx context.Context, session folio.Session) error {
	if s == nil || s.Client == nil {
		return folio.NewError(folio.KindInternal, "redis client not configured", nil)
	}
	if session.Token == "" {
		return folio.NewError(folio.KindValidation, "session token is required", nil)
	}

	ttl := time.Until(session.ExpiresAt)
	if s.Now != nil {
		ttl = session.ExpiresAt.Sub(s.Now())
	}
	if ttl <= 0 {
		return folio.NewError(folio.KindValidation, "session already expired", nil)
	}
	return s.Client.Set(ctx, keyPrefix+session.Token, strconv.FormatInt(session.AccountID, 10), ttl).Err()
}

func (s *Store) Get(ctx context.Context, token string) (folio.Session, error) {
	if s == nil || s.Client == nil {
		return folio.Session{}, folio.NewError(folio.KindInternal, "redis client not configured", nil)
	}

	value, err := s.Client.Get(ctx, keyPrefix+token).Result()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return folio.Session{}, folio.NewError(folio.KindNotFound, "session not found", nil)
		}
		return folio.Session{}, err
	}

	accountID, err := strconv.ParseInt(value, 10, 64)
	if err != nil {
		return folio.Session{}, folio.NewError(folio.KindInternal, "corrupt session payload", err)
	}

	// The key exists, so Redis considers it unexpired; a failed TTL lookup
	// still yields a live session.
	ttl, err := s.Client.TTL(ctx, keyPrefix+token).Result()
	if err != nil || ttl <= 0 {
		ttl = time.Second
	}
	now := time.Now
	if s.Now != nil {
		now = s.Now
	}
	return folio.Session{
		Token:     token,
		AccountID: accountID,
		ExpiresAt: now().Add(ttl),
	}, nil
}

func (s *Store) Delete(ctx context.Context, token string) error {
	if s == nil || s.Client == nil {
		return folio.NewError(folio.KindInternal, "redis client not configured", nil)
	}
	return s.Client.Del(ctx, keyPrefix+token).Err()
}
