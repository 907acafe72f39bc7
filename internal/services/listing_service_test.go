package services_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"staynest/internal/domain"
	"staynest/internal/services"
)

func TestListing_CreateStartsFullyAvailable(t *testing.T) {
	ctx := context.Background()
	st := memstore(t)
	svc := services.NewListingService(st)

	l, err := svc.Create(ctx, services.CreateListingInput{
		HostID: "u-bob", Title: "Lake House", Rent: 99, City: "Udaipur", Category: "lake", TotalQuantity: 4,
	})
	require.NoError(t, err)
	assert.NotEmpty(t, l.ID)
	assert.Equal(t, 4, l.AvailableQuantity)
	assert.False(t, l.IsBooked)

	got := listing(t, st, l.ID)
	assert.Equal(t, "u-bob", got.HostID)
	assert.Equal(t, 4, got.TotalQuantity)

	_, err = svc.Create(ctx, services.CreateListingInput{HostID: "u-bob", Title: "x", TotalQuantity: 0})
	assert.ErrorIs(t, err, domain.ErrInvalidQuantity)
	_, err = svc.Create(ctx, services.CreateListingInput{HostID: "u-bob", Title: "x", TotalQuantity: 1, Rent: -5})
	assert.ErrorIs(t, err, domain.ErrInvalidPrice)
	_, err = svc.Create(ctx, services.CreateListingInput{HostID: "u-ghost", Title: "x", TotalQuantity: 1})
	assert.ErrorIs(t, err, domain.ErrUserNotFound)
}

func TestListing_ListPagesAndFilters(t *testing.T) {
	ctx := context.Background()
	st := memstore(t)
	svc := services.NewListingService(st)

	all, err := svc.List(ctx, "", 0, 0)
	require.NoError(t, err)
	assert.Len(t, all, 3)

	cabins, err := svc.List(ctx, "cabin", 1, 12)
	require.NoError(t, err)
	require.Len(t, cabins, 1)
	assert.Equal(t, "lst-cabin", cabins[0].ID)

	page2, err := svc.List(ctx, "", 2, 2)
	require.NoError(t, err)
	assert.Len(t, page2, 1)
}

func TestListing_DeleteCancelsActiveBookings(t *testing.T) {
	ctx := context.Background()
	st := memstore(t)
	listings := services.NewListingService(st)
	bookings := services.NewBookingService(st)
	favs := services.NewFavoriteService(st)

	v, err := bookings.Create(ctx, book("lst-cabin", "u-alice"))
	require.NoError(t, err)
	_, err = favs.Add(ctx, "u-bob", "lst-cabin")
	require.NoError(t, err)

	err = listings.Delete(ctx, "u-bob", domain.RoleUser, "lst-cabin")
	require.ErrorIs(t, err, domain.ErrNotOwner)

	require.NoError(t, listings.Delete(ctx, "u-hana", domain.RoleUser, "lst-cabin"))

	_, err = listings.Get(ctx, "lst-cabin")
	assert.ErrorIs(t, err, domain.ErrListingNotFound)

	b, err := st.Repos().Bookings.Get(ctx, v.ID)
	require.NoError(t, err)
	assert.Equal(t, domain.BookingCancelled, b.Status)
	assert.Empty(t, refs(t, st, "u-alice"))

	ids, err := st.Repos().Favorites.IDs(ctx, "u-bob")
	require.NoError(t, err)
	assert.Empty(t, ids)

	// admins may delete any listing
	require.NoError(t, listings.Delete(ctx, "u-admin", domain.RoleAdmin, "lst-loft"))
	assert.ErrorIs(t, listings.Delete(ctx, "u-admin", domain.RoleAdmin, "lst-loft"), domain.ErrListingNotFound)
}

func TestListing_Resize(t *testing.T) {
	ctx := context.Background()
	st := memstore(t)
	listings := services.NewListingService(st)
	bookings := services.NewBookingService(st)

	_, err := bookings.Create(ctx, book("lst-loft", "u-alice"))
	require.NoError(t, err)

	l, err := listings.Resize(ctx, "u-hana", domain.RoleUser, "lst-loft", 5)
	require.NoError(t, err)
	assert.Equal(t, 5, l.TotalQuantity)
	assert.Equal(t, 4, l.AvailableQuantity)

	l, err = listings.Resize(ctx, "u-hana", domain.RoleUser, "lst-loft", 1)
	require.NoError(t, err)
	assert.Equal(t, 0, l.AvailableQuantity)
	assert.True(t, l.IsBooked)
	listing(t, st, "lst-loft")

	_, err = listings.Resize(ctx, "u-admin", domain.RoleAdmin, "lst-loft", 0)
	assert.ErrorIs(t, err, domain.ErrInvalidQuantity)
	_, err = listings.Resize(ctx, "u-bob", domain.RoleUser, "lst-loft", 3)
	assert.ErrorIs(t, err, domain.ErrForbidden)
}

func TestListing_ResizeBelowBookedUnits(t *testing.T) {
	ctx := context.Background()
	st := memstore(t)
	listings := services.NewListingService(st)
	bookings := services.NewBookingService(st)

	_, err := bookings.Create(ctx, book("lst-cabin", "u-alice"))
	require.NoError(t, err)
	_, err = bookings.Create(ctx, book("lst-cabin", "u-bob"))
	require.NoError(t, err)

	_, err = listings.Resize(ctx, "u-hana", domain.RoleUser, "lst-cabin", 1)
	require.ErrorIs(t, err, domain.ErrUnitsInUse)

	l := listing(t, st, "lst-cabin")
	assert.Equal(t, 3, l.TotalQuantity)
	assert.Equal(t, 1, l.AvailableQuantity)
}
