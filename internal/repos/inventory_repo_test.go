package repos_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"staynest/internal/domain"
	"staynest/internal/repos"
)

func seeded(t *testing.T) repos.Repos {
	t.Helper()
	db, err := repos.OpenDB(repos.Options{Driver: "sqlite", DSN: ":memory:", Seed: true})
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })
	return repos.NewStore(db).Repos()
}

func TestReserveUnit_EmptyCounterIsRejected(t *testing.T) {
	ctx := context.Background()
	r := seeded(t)

	require.NoError(t, r.Inventory.ReserveUnit(ctx, "lst-beach", "u-alice"))
	before, err := r.Listings.Get(ctx, "lst-beach")
	require.NoError(t, err)
	require.Equal(t, 0, before.AvailableQuantity)

	// no service pre-check here: the UPDATE itself must refuse
	err = r.Inventory.ReserveUnit(ctx, "lst-beach", "u-bob")
	require.ErrorIs(t, err, domain.ErrFullyBooked)

	after, err := r.Listings.Get(ctx, "lst-beach")
	require.NoError(t, err)
	assert.Equal(t, 0, after.AvailableQuantity)
	assert.True(t, after.IsBooked)
	assert.Equal(t, "u-alice", after.GuestID)
	assert.Equal(t, before.UpdatedAt, after.UpdatedAt)
}

func TestReserveUnit_CountsDownToZero(t *testing.T) {
	ctx := context.Background()
	r := seeded(t)

	for i := 0; i < 3; i++ {
		require.NoError(t, r.Inventory.ReserveUnit(ctx, "lst-cabin", "u-alice"))
	}
	q, err := r.Inventory.Qty(ctx, "lst-cabin")
	require.NoError(t, err)
	assert.Equal(t, repos.InventoryRow{Available: 0, Total: 3}, q)

	assert.ErrorIs(t, r.Inventory.ReserveUnit(ctx, "lst-cabin", "u-alice"), domain.ErrFullyBooked)
}

func TestReserveUnit_UnknownListing(t *testing.T) {
	r := seeded(t)
	assert.ErrorIs(t, r.Inventory.ReserveUnit(context.Background(), "lst-nope", "u-alice"), domain.ErrFullyBooked)

	_, err := r.Inventory.Qty(context.Background(), "lst-nope")
	assert.ErrorIs(t, err, domain.ErrListingNotFound)
}

func TestReleaseUnit_FullCounterIsDrift(t *testing.T) {
	ctx := context.Background()
	r := seeded(t)

	before, err := r.Listings.Get(ctx, "lst-loft")
	require.NoError(t, err)
	require.Equal(t, before.TotalQuantity, before.AvailableQuantity)

	err = r.Inventory.ReleaseUnit(ctx, "lst-loft")
	require.ErrorIs(t, err, domain.ErrInventoryDrift)
	assert.ErrorIs(t, err, domain.ErrInternal)

	after, err := r.Listings.Get(ctx, "lst-loft")
	require.NoError(t, err)
	assert.Equal(t, before.TotalQuantity, after.AvailableQuantity)
	assert.False(t, after.IsBooked)
	assert.Equal(t, before.UpdatedAt, after.UpdatedAt)
}

func TestReleaseUnit_GivesBackOneUnit(t *testing.T) {
	ctx := context.Background()
	r := seeded(t)

	require.NoError(t, r.Inventory.ReserveUnit(ctx, "lst-beach", "u-alice"))
	require.NoError(t, r.Inventory.ReleaseUnit(ctx, "lst-beach"))

	l, err := r.Listings.Get(ctx, "lst-beach")
	require.NoError(t, err)
	assert.Equal(t, 1, l.AvailableQuantity)
	assert.False(t, l.IsBooked)
	// no ACTIVE ledger row is left to name a guest
	assert.Empty(t, l.GuestID)

	assert.ErrorIs(t, r.Inventory.ReleaseUnit(ctx, "lst-beach"), domain.ErrInventoryDrift)
}

func TestResize_CannotDropBookedUnits(t *testing.T) {
	ctx := context.Background()
	r := seeded(t)

	require.NoError(t, r.Inventory.ReserveUnit(ctx, "lst-cabin", "u-alice"))
	require.NoError(t, r.Inventory.ReserveUnit(ctx, "lst-cabin", "u-bob"))

	assert.ErrorIs(t, r.Inventory.Resize(ctx, "lst-cabin", 1), domain.ErrUnitsInUse)
	assert.ErrorIs(t, r.Inventory.Resize(ctx, "lst-cabin", 0), domain.ErrInvalidQuantity)

	require.NoError(t, r.Inventory.Resize(ctx, "lst-cabin", 2))
	q, err := r.Inventory.Qty(ctx, "lst-cabin")
	require.NoError(t, err)
	assert.Equal(t, repos.InventoryRow{Available: 0, Total: 2}, q)

	require.NoError(t, r.Inventory.Resize(ctx, "lst-cabin", 5))
	l, err := r.Listings.Get(ctx, "lst-cabin")
	require.NoError(t, err)
	assert.Equal(t, 3, l.AvailableQuantity)
	assert.False(t, l.IsBooked)
	assert.True(t, l.Consistent())
}
