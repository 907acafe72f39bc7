package services

import (
	"context"

	"staynest/internal/domain"
	"staynest/internal/repos"
)

// FavoriteService maintains a user's saved listings. Adding is idempotent.
type FavoriteService struct {
	Store *repos.Store
}

func NewFavoriteService(store *repos.Store) *FavoriteService {
	return &FavoriteService{Store: store}
}

func (s *FavoriteService) Add(ctx context.Context, userID, listingID string) ([]string, error) {
	var ids []string
	err := s.Store.InTx(ctx, func(r repos.Repos) error {
		if _, err := r.Listings.Get(ctx, listingID); err != nil {
			return err
		}
		if err := r.Favorites.Add(ctx, userID, listingID); err != nil {
			return err
		}
		var err error
		ids, err = r.Favorites.IDs(ctx, userID)
		return err
	})
	return ids, err
}

func (s *FavoriteService) Remove(ctx context.Context, userID, listingID string) ([]string, error) {
	r := s.Store.Repos()
	if err := r.Favorites.Remove(ctx, userID, listingID); err != nil {
		return nil, err
	}
	return r.Favorites.IDs(ctx, userID)
}

func (s *FavoriteService) List(ctx context.Context, userID string) ([]domain.Listing, error) {
	return s.Store.Repos().Favorites.Listings(ctx, userID)
}
