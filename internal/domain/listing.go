package domain

type Listing struct {
	ID                string  `db:"id" json:"id"`
	Title             string  `db:"title" json:"title"`
	Description       string  `db:"description" json:"description"`
	Rent              float64 `db:"rent" json:"rent"`
	City              string  `db:"city" json:"city"`
	Landmark          string  `db:"landmark" json:"landMark"`
	Category          string  `db:"category" json:"category"`
	TotalQuantity     int     `db:"total_quantity" json:"totalQuantity"`
	AvailableQuantity int     `db:"available_quantity" json:"availableQuantity"`
	IsBooked          bool    `db:"is_booked" json:"isBooked"`
	HostID            string  `db:"host_id" json:"host"`
	GuestID           string  `db:"guest_id" json:"guest,omitempty"` // most recent active guest
	CreatedAt         string  `db:"created_at" json:"createdAt"`
	UpdatedAt         string  `db:"updated_at" json:"updatedAt,omitempty"`
}

// Availability statuses reported by the availability endpoint.
const (
	Available   = "AVAILABLE"
	LastUnit    = "LAST_UNIT"
	FullyBooked = "FULLY_BOOKED"
)

type Availability struct {
	ListingID string `json:"listingId"`
	Status    string `json:"status"` // AVAILABLE | LAST_UNIT | FULLY_BOOKED
	Qty       int    `json:"qty"`
	Total     int    `json:"total"`
}

// Consistent reports whether the inventory counters satisfy
// 0 <= available <= total and isBooked == (available == 0).
func (l Listing) Consistent() bool {
	if l.AvailableQuantity < 0 || l.AvailableQuantity > l.TotalQuantity {
		return false
	}
	return l.IsBooked == (l.AvailableQuantity == 0)
}
