package services

import (
	"context"

	"staynest/internal/domain"
	"staynest/internal/repos"
)

type UserService struct {
	Store *repos.Store
}

func NewUserService(store *repos.Store) *UserService {
	return &UserService{Store: store}
}

// Current returns the user with its booking list, favorites and hosted listings.
func (s *UserService) Current(ctx context.Context, id string) (domain.Profile, error) {
	r := s.Store.Repos()
	u, err := r.Users.ByID(ctx, id)
	if err != nil {
		return domain.Profile{}, err
	}
	return profile(ctx, r, *u)
}

func (s *UserService) List(ctx context.Context) ([]domain.Profile, error) {
	r := s.Store.Repos()
	users, err := r.Users.List(ctx)
	if err != nil {
		return nil, err
	}
	out := make([]domain.Profile, 0, len(users))
	for _, u := range users {
		p, err := profile(ctx, r, u)
		if err != nil {
			return nil, err
		}
		out = append(out, p)
	}
	return out, nil
}

// Delete removes a user account. The user's active bookings are cancelled
// and the listings they host are deleted, all in one transaction.
func (s *UserService) Delete(ctx context.Context, callerID, id string) error {
	if callerID == id {
		return domain.ErrSelfDelete
	}
	return s.Store.InTx(ctx, func(r repos.Repos) error {
		if _, err := r.Users.ByID(ctx, id); err != nil {
			return err
		}

		active, err := r.Bookings.ListActiveByGuest(ctx, id)
		if err != nil {
			return err
		}
		for _, b := range active {
			if err := cancelInTx(ctx, r, b); err != nil {
				return err
			}
		}

		hosted, err := r.Listings.ListByHost(ctx, id)
		if err != nil {
			return err
		}
		for _, l := range hosted {
			if err := deleteListingInTx(ctx, r, l.ID); err != nil {
				return err
			}
		}
		return r.Users.Delete(ctx, id)
	})
}

func profile(ctx context.Context, r repos.Repos, u domain.User) (domain.Profile, error) {
	refs, err := r.Users.BookingRefs(ctx, u.ID)
	if err != nil {
		return domain.Profile{}, err
	}
	favs, err := r.Favorites.IDs(ctx, u.ID)
	if err != nil {
		return domain.Profile{}, err
	}
	hosted, err := r.Listings.ListByHost(ctx, u.ID)
	if err != nil {
		return domain.Profile{}, err
	}
	if refs == nil {
		refs = []domain.BookingRef{}
	}
	if favs == nil {
		favs = []string{}
	}
	if hosted == nil {
		hosted = []domain.Listing{}
	}
	return domain.Profile{User: u, Booking: refs, Favorites: favs, Listings: hosted}, nil
}
