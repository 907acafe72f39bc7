package services

import (
	"context"

	"staynest/internal/domain"
	"staynest/internal/repos"
)

type InventoryService struct {
	Inv *repos.InventoryRepo
}

func NewInventoryService(inv *repos.InventoryRepo) *InventoryService {
	return &InventoryService{Inv: inv}
}

// CheckAvailability converts the counter into AVAILABLE / LAST_UNIT / FULLY_BOOKED.
func (s *InventoryService) CheckAvailability(ctx context.Context, listingID string) (domain.Availability, error) {
	row, err := s.Inv.Qty(ctx, listingID)
	if err != nil {
		return domain.Availability{}, err
	}

	status := domain.FullyBooked
	switch {
	case row.Available > 1:
		status = domain.Available
	case row.Available == 1:
		status = domain.LastUnit
	}
	return domain.Availability{
		ListingID: listingID,
		Status:    status,
		Qty:       row.Available,
		Total:     row.Total,
	}, nil
}
