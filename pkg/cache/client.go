package cache

import (
	"context"
	"errors"
	"time"
)

// ErrNotFound is returned on a miss or an expired entry
var ErrNotFound = errors.New("cache: key not found")

type Cache interface {
	Set(ctx context.Context, key string, value string, ttl time.Duration) error
	Get(ctx context.Context, key string) (string, error)
	Del(ctx context.Context, key string) error
}
