// Package redisdb tracks the hashes of generated QR payloads. A hash
// lives for the configured expiry window; a scan carrying a stamp
// whose hash is no longer present is treated as expired.
package redisdb

import (
	"context"
	"time"

	"github.com/pkg/errors"
	"github.com/redis/go-redis/v9"
)

const prefix = "qr:"

type Store struct {
	client *redis.Client
}

func NewStore(client *redis.Client) *Store {
	return &Store{client: client}
}

// SaveHash registers a generated payload hash for the expiry window.
func (s *Store) SaveHash(ctx context.Context, hash string, ttl time.Duration) error {
	if err := s.client.Set(ctx, prefix+hash, 1, ttl).Err(); err != nil {
		return errors.Wrap(err, "saving qr hash")
	}
	return nil
}

// HashAlive reports whether a payload hash is still within its window.
func (s *Store) HashAlive(ctx context.Context, hash string) (bool, error) {
	err := s.client.Get(ctx, prefix+hash).Err()
	if errors.Is(err, redis.Nil) {
		return false, nil
	}
	if err != nil {
		return false, errors.Wrap(err, "checking qr hash")
	}
	return true, nil
}
