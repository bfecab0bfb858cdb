// Package shop lists catalogue items and the user's favourites.
package shop

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/cespare/xxhash/v2"
	"github.com/joshnies/pocket/constants"
	"github.com/joshnies/pocket/lib/api"
	"github.com/joshnies/pocket/lib/console"
	"github.com/joshnies/pocket/lib/credstore"
	"github.com/joshnies/pocket/lib/endpoints"
	"github.com/joshnies/pocket/models"
	"github.com/samber/lo"
)

// Where a list of items came from.
type Source string

const (
	SourceCache  Source = "cache"
	SourceRemote Source = "remote"
)

var errCacheMiss = errors.New("items cache miss")

type Service struct {
	api   api.Dispatcher
	store credstore.Store
}

func NewService(d api.Dispatcher, store credstore.Store) *Service {
	return &Service{api: d, store: store}
}

// Items returns the item catalogue.
// The cached copy is used unless it is missing, corrupt or refresh is set.
// If fetching fails, a valid cached copy is returned instead of the error.
func (s *Service) Items(ctx context.Context, refresh bool) ([]models.Item, Source, error) {
	if !refresh {
		items, err := s.cachedItems(ctx)
		if err == nil {
			return items, SourceCache, nil
		}
		console.Verbose("Not using items cache: %v", err)
	}

	items, err := s.fetchItems(ctx)
	if err != nil {
		cached, cacheErr := s.cachedItems(ctx)
		if cacheErr != nil {
			return nil, "", err
		}

		console.Warning("Failed to fetch items, showing saved copy")
		console.Verbose("Fetch error: %v", err)
		return cached, SourceCache, nil
	}

	return items, SourceRemote, nil
}

func (s *Service) fetchItems(ctx context.Context) ([]models.Item, error) {
	res, err := s.api.Call(ctx, api.Request{Key: endpoints.ItemsSearch})
	if err != nil {
		return nil, err
	}

	var items []models.Item
	if err = res.Decode(&items); err != nil {
		return nil, err
	}

	// A failed cache write doesn't fail the listing
	data := string(res.Body)
	if err = s.store.Set(ctx, constants.StoreKeyItemsData, data); err != nil {
		console.Warning("Failed to save items: %v", err)
	} else if err = s.store.Set(ctx, constants.StoreKeyItemsDataHash, checksum(data)); err != nil {
		console.Warning("Failed to save items: %v", err)
	}

	return items, nil
}

func (s *Service) cachedItems(ctx context.Context) ([]models.Item, error) {
	data, ok, err := s.store.Get(ctx, constants.StoreKeyItemsData)
	if err != nil {
		return nil, err
	}
	if !ok || data == "" {
		return nil, errCacheMiss
	}

	hash, _, err := s.store.Get(ctx, constants.StoreKeyItemsDataHash)
	if err != nil {
		return nil, err
	}
	if hash != checksum(data) {
		return nil, fmt.Errorf("items cache checksum mismatch")
	}

	var items []models.Item
	if err = json.Unmarshal([]byte(data), &items); err != nil {
		return nil, fmt.Errorf("failed to parse items cache: %w", err)
	}

	return items, nil
}

func checksum(data string) string {
	return fmt.Sprintf("%016x", xxhash.Sum64String(data))
}

// Filter returns the items whose name contains query, ignoring case.
// A blank query matches everything.
func Filter(items []models.Item, query string) []models.Item {
	query = strings.ToLower(strings.TrimSpace(query))
	if query == "" {
		return items
	}

	return lo.Filter(items, func(item models.Item, _ int) bool {
		return strings.Contains(strings.ToLower(item.Name), query)
	})
}
