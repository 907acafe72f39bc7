package repos

import (
	"context"
	"database/sql"
	"errors"

	"staynest/internal/domain"

	"github.com/jmoiron/sqlx"
)

// InventoryRepo owns the availability counter of a listing. Every write is a
// single conditional UPDATE so the counter cannot leave [0, total] even under
// concurrent callers.
type InventoryRepo struct{ q sqlx.ExtContext }

func NewInventoryRepo(q sqlx.ExtContext) *InventoryRepo { return &InventoryRepo{q: q} }

type InventoryRow struct {
	Available int `db:"available_quantity"`
	Total     int `db:"total_quantity"`
}

// Qty returns the current counters for a listing.
func (r *InventoryRepo) Qty(ctx context.Context, listingID string) (InventoryRow, error) {
	var row InventoryRow
	err := sqlx.GetContext(ctx, r.q, &row, r.q.Rebind(`
		SELECT available_quantity, total_quantity FROM listings
		WHERE id = ?
	`), listingID)
	if errors.Is(err, sql.ErrNoRows) {
		return InventoryRow{}, domain.ErrListingNotFound
	}
	return row, err
}

// ReserveUnit takes one unit for guestID if any is left and records guestID
// as the most recent guest. Returns domain.ErrFullyBooked when none is left.
func (r *InventoryRepo) ReserveUnit(ctx context.Context, listingID, guestID string) error {
	res, err := r.q.ExecContext(ctx, r.q.Rebind(`
		UPDATE listings
		SET available_quantity = available_quantity - 1,
		    is_booked = (available_quantity <= 1),
		    guest_id = ?,
		    updated_at = ?
		WHERE id = ? AND available_quantity > 0
	`), guestID, now(), listingID)
	if err != nil {
		return err
	}
	n, _ := res.RowsAffected()
	if n == 0 {
		return domain.ErrFullyBooked
	}
	return nil
}

// ReleaseUnit gives one unit back. The most recent guest is recomputed from
// the remaining ACTIVE ledger rows, so call it after the booking has been
// marked cancelled.
func (r *InventoryRepo) ReleaseUnit(ctx context.Context, listingID string) error {
	res, err := r.q.ExecContext(ctx, r.q.Rebind(`
		UPDATE listings
		SET available_quantity = available_quantity + 1,
		    is_booked = FALSE,
		    guest_id = (
		      SELECT b.guest_id FROM bookings b
		      WHERE b.listing_id = listings.id AND b.status = 'ACTIVE'
		      ORDER BY b.created_at DESC
		      LIMIT 1
		    ),
		    updated_at = ?
		WHERE id = ? AND available_quantity < total_quantity
	`), now(), listingID)
	if err != nil {
		return err
	}
	n, _ := res.RowsAffected()
	if n == 0 {
		return domain.ErrInventoryDrift
	}
	return nil
}

// Resize sets a new total, shifting availability by the same delta. Units
// that are currently booked can't be removed.
func (r *InventoryRepo) Resize(ctx context.Context, listingID string, total int) error {
	if total < 1 {
		return domain.ErrInvalidQuantity
	}
	res, err := r.q.ExecContext(ctx, r.q.Rebind(`
		UPDATE listings
		SET available_quantity = available_quantity + (? - total_quantity),
		    is_booked = (available_quantity + (? - total_quantity) = 0),
		    total_quantity = ?,
		    updated_at = ?
		WHERE id = ? AND available_quantity + (? - total_quantity) >= 0
	`), total, total, total, now(), listingID, total)
	if err != nil {
		return err
	}
	n, _ := res.RowsAffected()
	if n == 0 {
		return domain.ErrUnitsInUse
	}
	return nil
}
