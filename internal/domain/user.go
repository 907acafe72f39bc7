package domain

const (
	RoleUser  = "USER"
	RoleAdmin = "ADMIN"
)

type User struct {
	ID        string `db:"id" json:"id"`
	Email     string `db:"email" json:"email"`
	Name      string `db:"name" json:"name"`
	Hash      string `db:"password_hash" json:"-"`
	Role      string `db:"role" json:"role"`
	CreatedAt string `db:"created_at" json:"createdAt"`
}

func (u *User) IsAdmin() bool { return u != nil && u.Role == RoleAdmin }

// BookingRef is one entry of a user's booking list.
type BookingRef struct {
	BookingID string `db:"booking_id" json:"bookingId"`
	ListingID string `db:"listing_id" json:"listingId"`
	AddedAt   string `db:"added_at" json:"addedAt"`
}

// Profile is a user together with the lists the booking and favorite flows maintain.
type Profile struct {
	User
	Booking   []BookingRef `json:"booking"`
	Favorites []string     `json:"favorites"`
	Listings  []Listing    `json:"listing"`
}
