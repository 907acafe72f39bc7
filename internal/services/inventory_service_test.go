package services_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"staynest/internal/domain"
	"staynest/internal/services"
)

func TestInventoryService_CheckAvailability(t *testing.T) {
	ctx := context.Background()
	st := memstore(t)
	inv := services.NewInventoryService(st.Repos().Inventory)
	bookings := services.NewBookingService(st)

	a, err := inv.CheckAvailability(ctx, "lst-loft")
	require.NoError(t, err)
	assert.Equal(t, domain.Available, a.Status)
	assert.Equal(t, 2, a.Qty)
	assert.Equal(t, 2, a.Total)

	_, err = bookings.Create(ctx, book("lst-loft", "u-alice"))
	require.NoError(t, err)
	a, err = inv.CheckAvailability(ctx, "lst-loft")
	require.NoError(t, err)
	assert.Equal(t, domain.LastUnit, a.Status)
	assert.Equal(t, 1, a.Qty)

	_, err = bookings.Create(ctx, book("lst-loft", "u-bob"))
	require.NoError(t, err)
	a, err = inv.CheckAvailability(ctx, "lst-loft")
	require.NoError(t, err)
	assert.Equal(t, domain.FullyBooked, a.Status)
	assert.Equal(t, 0, a.Qty)

	_, err = inv.CheckAvailability(ctx, "lst-nope")
	assert.ErrorIs(t, err, domain.ErrListingNotFound)
}
