package repos

import (
	"context"
	"embed"
	"errors"
	"fmt"
	"io/fs"
	"log"
	"strings"
	"time"

	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"
	"github.com/pressly/goose/v3"
	"golang.org/x/crypto/bcrypt"
	_ "modernc.org/sqlite"
)

//go:embed migrations/*.sql
var migrations embed.FS

type Options struct {
	Driver string // sqlite | postgres
	DSN    string
	Seed   bool
}

func OpenDB(opts Options) (*sqlx.DB, error) {
	if opts.Driver == "" {
		opts.Driver = "sqlite"
	}
	db, err := sqlx.Open(opts.Driver, opts.DSN)
	if err != nil {
		return nil, err
	}
	if opts.Driver == "sqlite" {
		// SQLite has a single writer; one pooled connection also keeps
		// ":memory:" databases alive across calls.
		db.SetMaxOpenConns(1)
	}
	if err = db.Ping(); err != nil {
		return nil, err
	}
	if opts.Driver == "sqlite" {
		if _, err := db.Exec(`PRAGMA foreign_keys = ON`); err != nil {
			return nil, err
		}
	}

	if err := migrate(db, opts.Driver); err != nil {
		return nil, fmt.Errorf("migrate: %w", err)
	}
	// Demo accounts and listings (idempotent; safe to run every start)
	if opts.Seed {
		if err := seedUsers(db); err != nil {
			return nil, fmt.Errorf("seed users: %w", err)
		}
		if err := seedListings(db); err != nil {
			return nil, fmt.Errorf("seed listings: %w", err)
		}
	}
	return db, nil
}

func migrate(db *sqlx.DB, driver string) error {
	dialect := goose.DialectSQLite3
	if driver == "postgres" {
		dialect = goose.DialectPostgres
	}
	fsys, err := fs.Sub(migrations, "migrations")
	if err != nil {
		return err
	}
	p, err := goose.NewProvider(dialect, db.DB, fsys)
	if err != nil {
		return err
	}
	res, err := p.Up(context.Background())
	if err != nil {
		return err
	}
	for _, r := range res {
		log.Printf("[migrate] %s (%s)", r.Source.Path, r.Duration)
	}
	return nil
}

// now is the timestamp format stored in every *_at column. Fixed width so
// that lexical order equals chronological order.
func now() string {
	return time.Now().UTC().Format("2006-01-02 15:04:05.000000")
}

func isUniqueViolation(err error) bool {
	var pqErr *pq.Error
	if errors.As(err, &pqErr) {
		return pqErr.Code == "23505"
	}
	return err != nil && strings.Contains(err.Error(), "UNIQUE constraint failed")
}

// seedUsers ensures two guests, one host and one ADMIN exist (idempotent).
func seedUsers(db *sqlx.DB) error {
	type u struct {
		ID, Email, Name, Role, Hash string
	}
	mk := func(id, email, name, role, raw string) u {
		h, _ := bcrypt.GenerateFromPassword([]byte(raw), bcrypt.DefaultCost)
		return u{ID: id, Email: email, Name: name, Role: role, Hash: string(h)}
	}

	users := []u{
		mk("u-alice", "alice@staynest.test", "Alice", "USER", "Passw0rd!"),
		mk("u-bob", "bob@staynest.test", "Bob", "USER", "Passw0rd!"),
		mk("u-hana", "hana@staynest.test", "Hana", "USER", "Passw0rd!"),
		mk("u-admin", "admin@staynest.test", "Admin", "ADMIN", "Passw0rd!"),
	}

	tx := db.MustBegin()
	defer func() { _ = tx.Rollback() }()

	for _, x := range users {
		if _, err := tx.Exec(tx.Rebind(`
			INSERT INTO users(id,email,name,password_hash,role,created_at)
			VALUES(?,?,?,?,?,?)
			ON CONFLICT DO NOTHING
		`), x.ID, x.Email, x.Name, x.Hash, x.Role, now()); err != nil {
			return err
		}
	}

	return tx.Commit()
}

// seedListings inserts demo listings hosted by u-hana if they don't already exist.
func seedListings(db *sqlx.DB) error {
	type l struct {
		ID, Title, Desc, City, Landmark, Category string
		Rent                                      float64
		Qty                                       int
	}
	listings := []l{
		{"lst-beach", "Beach Bungalow", "One-room bungalow steps from the sand.", "Goa", "Baga Beach", "beach", 120, 1},
		{"lst-cabin", "Pine Cabins", "Three identical cabins in the woods.", "Manali", "Old Manali", "cabin", 85.5, 3},
		{"lst-loft", "City Loft", "Top-floor loft near the old town.", "Jaipur", "Hawa Mahal", "city", 60, 2},
	}

	tx := db.MustBegin()
	defer func() { _ = tx.Rollback() }()

	for _, x := range listings {
		if _, err := tx.Exec(tx.Rebind(`
			INSERT INTO listings(
				id, host_id, title, description, rent, city, landmark, category,
				total_quantity, available_quantity, is_booked, created_at
			)
			VALUES(?, 'u-hana', ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
			ON CONFLICT DO NOTHING
		`), x.ID, x.Title, x.Desc, x.Rent, x.City, x.Landmark, x.Category, x.Qty, x.Qty, false, now()); err != nil {
			return err
		}
	}

	return tx.Commit()
}
