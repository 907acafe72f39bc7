package repos

import (
	"context"
	"database/sql"
	"errors"

	"staynest/internal/domain"

	"github.com/jmoiron/sqlx"
)

type ListingRepo struct{ q sqlx.ExtContext }

func NewListingRepo(q sqlx.ExtContext) *ListingRepo { return &ListingRepo{q: q} }

const listingCols = `
    id, title, description, rent, city, landmark, category,
    total_quantity, available_quantity, is_booked, host_id,
    COALESCE(guest_id,'') AS guest_id, created_at, COALESCE(updated_at,'') AS updated_at`

// Create inserts l with every unit available.
func (r *ListingRepo) Create(ctx context.Context, l *domain.Listing) error {
	l.AvailableQuantity = l.TotalQuantity
	l.IsBooked = false
	l.CreatedAt = now()
	_, err := r.q.ExecContext(ctx, r.q.Rebind(`
	  INSERT INTO listings
	    (id, host_id, title, description, rent, city, landmark, category,
	     total_quantity, available_quantity, is_booked, created_at)
	  VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
	`), l.ID, l.HostID, l.Title, l.Description, l.Rent, l.City, l.Landmark, l.Category,
		l.TotalQuantity, l.AvailableQuantity, l.IsBooked, l.CreatedAt)
	return err
}

func (r *ListingRepo) Get(ctx context.Context, id string) (domain.Listing, error) {
	var l domain.Listing
	err := sqlx.GetContext(ctx, r.q, &l, r.q.Rebind(`SELECT`+listingCols+` FROM listings WHERE id = ?`), id)
	if errors.Is(err, sql.ErrNoRows) {
		return domain.Listing{}, domain.ErrListingNotFound
	}
	return l, err
}

// List returns listings newest first, optionally filtered by category.
func (r *ListingRepo) List(ctx context.Context, category string, limit, offset int) ([]domain.Listing, error) {
	where := `1 = 1`
	args := []any{}
	if category != "" {
		where += ` AND category = ?`
		args = append(args, category)
	}
	args = append(args, limit, offset)

	out := []domain.Listing{}
	err := sqlx.SelectContext(ctx, r.q, &out, r.q.Rebind(`
	  SELECT`+listingCols+`
	  FROM listings
	  WHERE `+where+`
	  ORDER BY created_at DESC
	  LIMIT ? OFFSET ?`), args...)
	return out, err
}

func (r *ListingRepo) ListByHost(ctx context.Context, hostID string) ([]domain.Listing, error) {
	out := []domain.Listing{}
	err := sqlx.SelectContext(ctx, r.q, &out, r.q.Rebind(`
	  SELECT`+listingCols+`
	  FROM listings
	  WHERE host_id = ?
	  ORDER BY created_at DESC`), hostID)
	return out, err
}

func (r *ListingRepo) Delete(ctx context.Context, id string) error {
	res, err := r.q.ExecContext(ctx, r.q.Rebind(`DELETE FROM listings WHERE id = ?`), id)
	if err != nil {
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return domain.ErrListingNotFound
	}
	return nil
}
