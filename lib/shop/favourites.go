package shop

import (
	"context"

	"github.com/joshnies/pocket/lib/api"
	"github.com/joshnies/pocket/lib/endpoints"
	"github.com/joshnies/pocket/models"
)

func (s *Service) Favourites(ctx context.Context) ([]models.Item, error) {
	res, err := s.api.Call(ctx, api.Request{Key: endpoints.GetFavourites})
	if err != nil {
		return nil, err
	}

	var body models.FavouritesResponse
	if err = res.Decode(&body); err != nil {
		return nil, err
	}

	return body.Favourites, nil
}
