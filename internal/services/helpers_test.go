package services_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"

	"staynest/internal/domain"
	"staynest/internal/repos"
)

// memstore opens a fresh seeded in-memory database.
//
// Seeded: guests u-alice, u-bob; host u-hana; admin u-admin.
// Listings (host u-hana): lst-beach (1 unit), lst-cabin (3), lst-loft (2).
func memstore(t *testing.T) *repos.Store {
	t.Helper()
	db, err := repos.OpenDB(repos.Options{Driver: "sqlite", DSN: ":memory:", Seed: true})
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })
	return repos.NewStore(db)
}

func listing(t *testing.T, st *repos.Store, id string) domain.Listing {
	t.Helper()
	l, err := st.Repos().Listings.Get(context.Background(), id)
	require.NoError(t, err)
	require.True(t, l.Consistent(), "inconsistent counters: %+v", l)
	return l
}

func refs(t *testing.T, st *repos.Store, userID string) []domain.BookingRef {
	t.Helper()
	out, err := st.Repos().Users.BookingRefs(context.Background(), userID)
	require.NoError(t, err)
	return out
}
