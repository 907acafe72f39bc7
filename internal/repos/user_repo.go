package repos

import (
	"context"
	"database/sql"
	"errors"

	"staynest/internal/domain"

	"github.com/jmoiron/sqlx"
)

type UserRepo struct{ q sqlx.ExtContext }

func NewUserRepo(q sqlx.ExtContext) *UserRepo { return &UserRepo{q: q} }

const userCols = `id, email, name, password_hash, role, created_at`

func (r *UserRepo) Create(ctx context.Context, u *domain.User) error {
	u.CreatedAt = now()
	_, err := r.q.ExecContext(ctx, r.q.Rebind(`
	  INSERT INTO users(id, email, name, password_hash, role, created_at)
	  VALUES(?, ?, ?, ?, ?, ?)`), u.ID, u.Email, u.Name, u.Hash, u.Role, u.CreatedAt)
	if isUniqueViolation(err) {
		return domain.ErrEmailTaken
	}
	return err
}

func (r *UserRepo) ByEmail(ctx context.Context, email string) (*domain.User, error) {
	var u domain.User
	err := sqlx.GetContext(ctx, r.q, &u, r.q.Rebind(`SELECT `+userCols+` FROM users WHERE LOWER(email)=LOWER(?)`), email)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, domain.ErrUserNotFound
	}
	if err != nil {
		return nil, err
	}
	return &u, nil
}

func (r *UserRepo) ByID(ctx context.Context, id string) (*domain.User, error) {
	var u domain.User
	err := sqlx.GetContext(ctx, r.q, &u, r.q.Rebind(`SELECT `+userCols+` FROM users WHERE id=?`), id)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, domain.ErrUserNotFound
	}
	if err != nil {
		return nil, err
	}
	return &u, nil
}

func (r *UserRepo) List(ctx context.Context) ([]domain.User, error) {
	out := []domain.User{}
	err := sqlx.SelectContext(ctx, r.q, &out, `SELECT `+userCols+` FROM users ORDER BY email`)
	return out, err
}

// Delete removes the user row; booking refs and favorites go with it.
func (r *UserRepo) Delete(ctx context.Context, id string) error {
	if _, err := r.q.ExecContext(ctx, r.q.Rebind(`DELETE FROM user_bookings WHERE user_id=?`), id); err != nil {
		return err
	}
	if _, err := r.q.ExecContext(ctx, r.q.Rebind(`DELETE FROM favorites WHERE user_id=?`), id); err != nil {
		return err
	}
	res, err := r.q.ExecContext(ctx, r.q.Rebind(`DELETE FROM users WHERE id=?`), id)
	if err != nil {
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return domain.ErrUserNotFound
	}
	return nil
}

// AppendBooking adds a booking to the end of the user's booking list.
func (r *UserRepo) AppendBooking(ctx context.Context, userID, bookingID, listingID string) error {
	_, err := r.q.ExecContext(ctx, r.q.Rebind(`
	  INSERT INTO user_bookings(user_id, booking_id, listing_id, added_at)
	  VALUES(?, ?, ?, ?)`), userID, bookingID, listingID, now())
	return err
}

// RemoveBooking drops a booking from the user's list. Removing an entry that
// is not there is not an error.
func (r *UserRepo) RemoveBooking(ctx context.Context, userID, bookingID string) error {
	_, err := r.q.ExecContext(ctx, r.q.Rebind(`DELETE FROM user_bookings WHERE user_id=? AND booking_id=?`), userID, bookingID)
	return err
}

// BookingRefs returns the user's booking list in insertion order.
func (r *UserRepo) BookingRefs(ctx context.Context, userID string) ([]domain.BookingRef, error) {
	out := []domain.BookingRef{}
	err := sqlx.SelectContext(ctx, r.q, &out, r.q.Rebind(`
	  SELECT booking_id, listing_id, added_at
	  FROM user_bookings
	  WHERE user_id = ?
	  ORDER BY added_at, booking_id`), userID)
	return out, err
}
