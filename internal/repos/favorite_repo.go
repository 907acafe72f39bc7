package repos

import (
	"context"

	"staynest/internal/domain"

	"github.com/jmoiron/sqlx"
)

type FavoriteRepo struct{ q sqlx.ExtContext }

func NewFavoriteRepo(q sqlx.ExtContext) *FavoriteRepo { return &FavoriteRepo{q: q} }

func (r *FavoriteRepo) Add(ctx context.Context, userID, listingID string) error {
	_, err := r.q.ExecContext(ctx, r.q.Rebind(`
	  INSERT INTO favorites(user_id, listing_id, created_at)
	  VALUES(?, ?, ?)
	  ON CONFLICT(user_id, listing_id) DO NOTHING
	`), userID, listingID, now())
	return err
}

func (r *FavoriteRepo) Remove(ctx context.Context, userID, listingID string) error {
	_, err := r.q.ExecContext(ctx, r.q.Rebind(`DELETE FROM favorites WHERE user_id=? AND listing_id=?`), userID, listingID)
	return err
}

func (r *FavoriteRepo) RemoveListing(ctx context.Context, listingID string) error {
	_, err := r.q.ExecContext(ctx, r.q.Rebind(`DELETE FROM favorites WHERE listing_id=?`), listingID)
	return err
}

// IDs returns the favorite listing ids in the order they were saved.
func (r *FavoriteRepo) IDs(ctx context.Context, userID string) ([]string, error) {
	out := []string{}
	err := sqlx.SelectContext(ctx, r.q, &out, r.q.Rebind(`
	  SELECT listing_id FROM favorites
	  WHERE user_id = ?
	  ORDER BY created_at, listing_id`), userID)
	return out, err
}

func (r *FavoriteRepo) Listings(ctx context.Context, userID string) ([]domain.Listing, error) {
	out := []domain.Listing{}
	err := sqlx.SelectContext(ctx, r.q, &out, r.q.Rebind(`
	  SELECT
	    l.id, l.title, l.description, l.rent, l.city, l.landmark, l.category,
	    l.total_quantity, l.available_quantity, l.is_booked, l.host_id,
	    COALESCE(l.guest_id,'') AS guest_id, l.created_at, COALESCE(l.updated_at,'') AS updated_at
	  FROM favorites f
	  JOIN listings l ON l.id = f.listing_id
	  WHERE f.user_id = ?
	  ORDER BY f.created_at, l.id`), userID)
	return out, err
}
