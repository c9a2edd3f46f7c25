package redis

import (
	"context"
	"errors"

	"github.com/redis/go-redis/v9"
)

// ErrUnavailable is returned by LocalStore when no Redis client is
// configured.
var ErrUnavailable = errors.New("redis unavailable")

// LocalStore keeps one autosave payload per key with no expiry.
type LocalStore struct {
	client *redis.Client
	prefix string
}

func NewLocalStore(client *redis.Client, prefix string) *LocalStore {
	return &LocalStore{client: client, prefix: prefix}
}

// Load returns the payload under key, or nil when nothing is stored.
func (s *LocalStore) Load(ctx context.Context, key string) ([]byte, error) {
	if s.client == nil {
		return nil, ErrUnavailable
	}
	raw, err := s.client.Get(ctx, s.prefix+key).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, nil
	}
	return raw, err
}

// Save overwrites the payload under key.
func (s *LocalStore) Save(ctx context.Context, key string, payload []byte) error {
	if s.client == nil {
		return ErrUnavailable
	}
	return s.client.Set(ctx, s.prefix+key, payload, 0).Err()
}
