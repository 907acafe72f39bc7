package services

import (
	"context"
	"math"

	"staynest/internal/domain"
	"staynest/internal/repos"

	"github.com/google/uuid"
)

type ListingService struct {
	Store *repos.Store
}

func NewListingService(store *repos.Store) *ListingService {
	return &ListingService{Store: store}
}

type CreateListingInput struct {
	HostID        string
	Title         string
	Description   string
	Rent          float64
	City          string
	Landmark      string
	Category      string
	TotalQuantity int
}

// Create publishes a listing with all of its units available.
func (s *ListingService) Create(ctx context.Context, in CreateListingInput) (domain.Listing, error) {
	if in.TotalQuantity < 1 {
		return domain.Listing{}, domain.ErrInvalidQuantity
	}
	if in.Rent < 0 || math.IsNaN(in.Rent) || math.IsInf(in.Rent, 0) {
		return domain.Listing{}, domain.ErrInvalidPrice
	}

	var l domain.Listing
	err := s.Store.InTx(ctx, func(r repos.Repos) error {
		if _, err := r.Users.ByID(ctx, in.HostID); err != nil {
			return err
		}
		l = domain.Listing{
			ID:            uuid.NewString(),
			Title:         in.Title,
			Description:   in.Description,
			Rent:          in.Rent,
			City:          in.City,
			Landmark:      in.Landmark,
			Category:      in.Category,
			TotalQuantity: in.TotalQuantity,
			HostID:        in.HostID,
		}
		return r.Listings.Create(ctx, &l)
	})
	if err != nil {
		return domain.Listing{}, err
	}
	return l, nil
}

func (s *ListingService) List(ctx context.Context, category string, page, pageSize int) ([]domain.Listing, error) {
	if page < 1 {
		page = 1
	}
	if pageSize <= 0 {
		pageSize = 12
	}
	offset := (page - 1) * pageSize
	return s.Store.Repos().Listings.List(ctx, category, pageSize, offset)
}

func (s *ListingService) Get(ctx context.Context, id string) (domain.Listing, error) {
	return s.Store.Repos().Listings.Get(ctx, id)
}

// Delete removes a listing. Active bookings on it are cancelled first so no
// guest keeps a reference to a unit that no longer exists.
func (s *ListingService) Delete(ctx context.Context, callerID, callerRole, id string) error {
	return s.Store.InTx(ctx, func(r repos.Repos) error {
		l, err := r.Listings.Get(ctx, id)
		if err != nil {
			return err
		}
		if l.HostID != callerID && callerRole != domain.RoleAdmin {
			return domain.ErrNotOwner
		}
		return deleteListingInTx(ctx, r, l.ID)
	})
}

// Resize changes how many units a listing offers. Units held by active
// bookings cannot be removed.
func (s *ListingService) Resize(ctx context.Context, callerID, callerRole, id string, total int) (domain.Listing, error) {
	var out domain.Listing
	err := s.Store.InTx(ctx, func(r repos.Repos) error {
		l, err := r.Listings.Get(ctx, id)
		if err != nil {
			return err
		}
		if l.HostID != callerID && callerRole != domain.RoleAdmin {
			return domain.ErrNotOwner
		}
		if err := r.Inventory.Resize(ctx, l.ID, total); err != nil {
			return err
		}
		out, err = r.Listings.Get(ctx, l.ID)
		return err
	})
	if err != nil {
		return domain.Listing{}, err
	}
	return out, nil
}

func deleteListingInTx(ctx context.Context, r repos.Repos, listingID string) error {
	active, err := r.Bookings.ListActiveByListing(ctx, listingID)
	if err != nil {
		return err
	}
	for _, b := range active {
		if err := cancelInTx(ctx, r, b); err != nil {
			return err
		}
	}
	if err := r.Favorites.RemoveListing(ctx, listingID); err != nil {
		return err
	}
	return r.Listings.Delete(ctx, listingID)
}
