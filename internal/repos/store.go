package repos

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"
)

// Repos is a set of repositories bound to the same executor, either the
// pool or one open transaction.
type Repos struct {
	Listings  *ListingRepo
	Inventory *InventoryRepo
	Bookings  *BookingRepo
	Users     *UserRepo
	Favorites *FavoriteRepo
}

func newRepos(q sqlx.ExtContext) Repos {
	return Repos{
		Listings:  NewListingRepo(q),
		Inventory: NewInventoryRepo(q),
		Bookings:  NewBookingRepo(q),
		Users:     NewUserRepo(q),
		Favorites: NewFavoriteRepo(q),
	}
}

// Store hands out repositories and runs units of work.
type Store struct{ db *sqlx.DB }

func NewStore(db *sqlx.DB) *Store { return &Store{db: db} }

// Repos returns repositories that run outside any transaction.
func (s *Store) Repos() Repos { return newRepos(s.db) }

// InTx runs fn inside one transaction. fn's error (or panic) rolls back
// everything fn wrote; a nil return commits.
func (s *Store) InTx(ctx context.Context, fn func(r Repos) error) (err error) {
	tx, err := s.db.BeginTxx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin tx: %w", err)
	}
	defer func() {
		if p := recover(); p != nil {
			_ = tx.Rollback()
			panic(p)
		}
	}()

	if err = fn(newRepos(tx)); err != nil {
		_ = tx.Rollback()
		return err
	}
	if err = tx.Commit(); err != nil {
		return fmt.Errorf("commit tx: %w", err)
	}
	return nil
}
