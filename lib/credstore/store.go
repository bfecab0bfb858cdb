// Package credstore persists the session token, user id and cached API data
// in a local key-value store.
package credstore

import (
	"context"
	"fmt"

	"github.com/joshnies/pocket/config"
)

// Store is a persistent string key-value store.
type Store interface {
	// Get returns the value for key and whether it was present.
	Get(ctx context.Context, key string) (string, bool, error)
	Set(ctx context.Context, key string, value string) error
	Delete(ctx context.Context, key string) error
}

// Open the store backend selected in config.
func Open(ctx context.Context, cfg config.StoreConfig) (Store, error) {
	switch cfg.Driver {
	case config.StoreDriverFile, "":
		return NewFileStore(cfg.Path), nil
	case config.StoreDriverRedis:
		return NewRedisStore(ctx, cfg.RedisURL, cfg.RedisPrefix)
	case config.StoreDriverMemory:
		return NewMemoryStore(), nil
	}

	return nil, fmt.Errorf("unknown store driver \"%s\"", cfg.Driver)
}
