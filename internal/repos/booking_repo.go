package repos

import (
	"context"
	"database/sql"
	"errors"

	"staynest/internal/domain"

	"github.com/jmoiron/sqlx"
)

// BookingRepo is the ledger. Rows are never deleted; cancellation flips the
// status and stamps cancelled_at.
type BookingRepo struct{ q sqlx.ExtContext }

func NewBookingRepo(q sqlx.ExtContext) *BookingRepo { return &BookingRepo{q: q} }

const bookingCols = `
    id, listing_id, host_id, guest_id, check_in, check_out, total_rent, status,
    created_at, COALESCE(cancelled_at,'') AS cancelled_at`

const bookingViewSelect = `
	SELECT
	  b.id, b.listing_id, b.host_id, b.guest_id, b.check_in, b.check_out, b.total_rent, b.status,
	  b.created_at, COALESCE(b.cancelled_at,'') AS cancelled_at,
	  COALESCE(h.id,'')    AS "host.id",
	  COALESCE(h.name,'')  AS "host.name",
	  COALESCE(h.email,'') AS "host.email",
	  COALESCE(g.id,'')    AS "guest.id",
	  COALESCE(g.name,'')  AS "guest.name",
	  COALESCE(g.email,'') AS "guest.email",
	  COALESCE(l.id,'')       AS "listing.id",
	  COALESCE(l.title,'')    AS "listing.title",
	  COALESCE(l.city,'')     AS "listing.city",
	  COALESCE(l.landmark,'') AS "listing.landmark",
	  COALESCE(l.rent,0)      AS "listing.rent"
	FROM bookings b
	LEFT JOIN users h    ON h.id = b.host_id
	LEFT JOIN users g    ON g.id = b.guest_id
	LEFT JOIN listings l ON l.id = b.listing_id`

// Create inserts an ACTIVE booking.
func (r *BookingRepo) Create(ctx context.Context, b *domain.Booking) error {
	b.Status = domain.BookingActive
	b.CreatedAt = now()
	_, err := r.q.ExecContext(ctx, r.q.Rebind(`
	  INSERT INTO bookings
	    (id, listing_id, host_id, guest_id, check_in, check_out, total_rent, status, created_at)
	  VALUES
	    (?,  ?,          ?,       ?,        ?,        ?,         ?,          ?,      ?)
	`), b.ID, b.ListingID, b.HostID, b.GuestID, b.CheckIn, b.CheckOut, b.TotalRent, b.Status, b.CreatedAt)
	return err
}

func (r *BookingRepo) Get(ctx context.Context, id string) (domain.Booking, error) {
	var b domain.Booking
	err := sqlx.GetContext(ctx, r.q, &b, r.q.Rebind(`SELECT`+bookingCols+` FROM bookings WHERE id = ?`), id)
	if errors.Is(err, sql.ErrNoRows) {
		return domain.Booking{}, domain.ErrBookingNotFound
	}
	return b, err
}

func (r *BookingRepo) View(ctx context.Context, id string) (domain.BookingView, error) {
	var v domain.BookingView
	err := sqlx.GetContext(ctx, r.q, &v, r.q.Rebind(bookingViewSelect+` WHERE b.id = ?`), id)
	if errors.Is(err, sql.ErrNoRows) {
		return domain.BookingView{}, domain.ErrBookingNotFound
	}
	return v, err
}

// LatestActive returns guestID's most recent ACTIVE booking on listingID.
func (r *BookingRepo) LatestActive(ctx context.Context, listingID, guestID string) (domain.Booking, error) {
	var b domain.Booking
	err := sqlx.GetContext(ctx, r.q, &b, r.q.Rebind(`
	  SELECT`+bookingCols+`
	  FROM bookings
	  WHERE listing_id = ? AND guest_id = ? AND status = 'ACTIVE'
	  ORDER BY created_at DESC
	  LIMIT 1`), listingID, guestID)
	if errors.Is(err, sql.ErrNoRows) {
		return domain.Booking{}, domain.ErrBookingNotFound
	}
	return b, err
}

// MarkCancelled moves an ACTIVE booking to CANCELLED. A booking that is
// already cancelled (or missing) yields domain.ErrBookingNotFound.
func (r *BookingRepo) MarkCancelled(ctx context.Context, id string) error {
	res, err := r.q.ExecContext(ctx, r.q.Rebind(`
	  UPDATE bookings SET status = 'CANCELLED', cancelled_at = ?
	  WHERE id = ? AND status = 'ACTIVE'
	`), now(), id)
	if err != nil {
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return domain.ErrBookingNotFound
	}
	return nil
}

func (r *BookingRepo) ListActiveByGuest(ctx context.Context, guestID string) ([]domain.Booking, error) {
	out := []domain.Booking{}
	err := sqlx.SelectContext(ctx, r.q, &out, r.q.Rebind(`
	  SELECT`+bookingCols+`
	  FROM bookings
	  WHERE guest_id = ? AND status = 'ACTIVE'
	  ORDER BY created_at DESC`), guestID)
	return out, err
}

func (r *BookingRepo) ListActiveByListing(ctx context.Context, listingID string) ([]domain.Booking, error) {
	out := []domain.Booking{}
	err := sqlx.SelectContext(ctx, r.q, &out, r.q.Rebind(`
	  SELECT`+bookingCols+`
	  FROM bookings
	  WHERE listing_id = ? AND status = 'ACTIVE'
	  ORDER BY created_at DESC`), listingID)
	return out, err
}

// ListByGuest returns every booking a guest ever made, cancelled ones included.
func (r *BookingRepo) ListByGuest(ctx context.Context, guestID string) ([]domain.BookingView, error) {
	out := []domain.BookingView{}
	err := sqlx.SelectContext(ctx, r.q, &out, r.q.Rebind(bookingViewSelect+`
	  WHERE b.guest_id = ?
	  ORDER BY b.created_at DESC`), guestID)
	return out, err
}

// ListViews returns the ledger newest first. limit <= 0 returns every row.
func (r *BookingRepo) ListViews(ctx context.Context, limit, offset int) ([]domain.BookingView, error) {
	out := []domain.BookingView{}
	q := bookingViewSelect + `
	  ORDER BY b.created_at DESC, b.id`
	args := []any{}
	if limit > 0 {
		q += `
	  LIMIT ? OFFSET ?`
		args = append(args, limit, offset)
	}
	err := sqlx.SelectContext(ctx, r.q, &out, r.q.Rebind(q), args...)
	return out, err
}

func (r *BookingRepo) Count(ctx context.Context) (int, error) {
	var n int
	err := sqlx.GetContext(ctx, r.q, &n, `SELECT COUNT(*) FROM bookings`)
	return n, err
}
