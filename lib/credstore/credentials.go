package credstore

import (
	"context"

	"github.com/joshnies/pocket/constants"
	"github.com/joshnies/pocket/lib/console"
)

// Credentials reads and writes the session token and user id.
//
// Reads fail open: a store error is logged and reported as an absent value,
// so callers must handle an empty token explicitly.
type Credentials struct {
	store Store
}

func NewCredentials(store Store) *Credentials {
	return &Credentials{store: store}
}

// Underlying store.
func (c *Credentials) Store() Store {
	return c.store
}

// Token returns the stored auth token, or an empty string if there is none.
func (c *Credentials) Token(ctx context.Context) string {
	return c.get(ctx, constants.StoreKeyAuthToken)
}

// UserID returns the stored user id, or an empty string if there is none.
func (c *Credentials) UserID(ctx context.Context) string {
	return c.get(ctx, constants.StoreKeyUserID)
}

func (c *Credentials) SetToken(ctx context.Context, token string) error {
	return c.set(ctx, constants.StoreKeyAuthToken, token)
}

func (c *Credentials) SetUserID(ctx context.Context, id string) error {
	return c.set(ctx, constants.StoreKeyUserID, id)
}

func (c *Credentials) get(ctx context.Context, key string) string {
	v, ok, err := c.store.Get(ctx, key)
	if err != nil {
		console.Warning("Failed to read %s from credential store: %v", key, err)
		return ""
	}
	if !ok {
		return ""
	}

	return v
}

func (c *Credentials) set(ctx context.Context, key string, value string) error {
	if err := c.store.Set(ctx, key, value); err != nil {
		console.Warning("Failed to write %s to credential store: %v", key, err)
		return err
	}

	return nil
}
