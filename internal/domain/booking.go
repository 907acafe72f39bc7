package domain

import (
	"strings"
	"time"
)

type BookingStatus string

const (
	BookingActive    BookingStatus = "ACTIVE"
	BookingCancelled BookingStatus = "CANCELLED"
)

// DateLayout is the storage format of check-in/check-out dates.
const DateLayout = "2006-01-02"

type Booking struct {
	ID          string        `db:"id" json:"id"`
	ListingID   string        `db:"listing_id" json:"listing"`
	HostID      string        `db:"host_id" json:"hostId"`
	GuestID     string        `db:"guest_id" json:"guest"`
	CheckIn     string        `db:"check_in" json:"checkIn"`
	CheckOut    string        `db:"check_out" json:"checkOut"`
	TotalRent   float64       `db:"total_rent" json:"totalRent"`
	Status      BookingStatus `db:"status" json:"status"`
	CreatedAt   string        `db:"created_at" json:"createdAt"`
	CancelledAt string        `db:"cancelled_at" json:"cancelledAt,omitempty"`
}

func (b Booking) Active() bool { return b.Status == BookingActive }

type Party struct {
	ID    string `db:"id" json:"id"`
	Name  string `db:"name" json:"name"`
	Email string `db:"email" json:"email"`
}

type ListingSummary struct {
	ID       string  `db:"id" json:"id"`
	Title    string  `db:"title" json:"title"`
	City     string  `db:"city" json:"city"`
	Landmark string  `db:"landmark" json:"landMark"`
	Rent     float64 `db:"rent" json:"rent"`
}

// BookingView is a booking with host, guest and listing populated. The
// populated guest and listing objects replace the bare ids of Booking in
// JSON output; the ids stay available as guest.id and listing.id.
type BookingView struct {
	Booking
	Host    Party          `db:"host" json:"host"`
	Guest   Party          `db:"guest" json:"guest"`
	Listing ListingSummary `db:"listing" json:"listing"`
}

// ParseStayDates parses a check-in/check-out pair given either as plain
// dates or RFC 3339 timestamps. Both are truncated to UTC calendar days and
// checkIn must fall strictly before checkOut.
func ParseStayDates(checkIn, checkOut string) (time.Time, time.Time, error) {
	in, err := parseDay(checkIn)
	if err != nil {
		return time.Time{}, time.Time{}, ErrInvalidDates
	}
	out, err := parseDay(checkOut)
	if err != nil {
		return time.Time{}, time.Time{}, ErrInvalidDates
	}
	if !in.Before(out) {
		return time.Time{}, time.Time{}, ErrInvalidDates
	}
	return in, out, nil
}

func parseDay(s string) (time.Time, error) {
	s = strings.TrimSpace(s)
	t, err := time.Parse(DateLayout, s)
	if err != nil {
		t, err = time.Parse(time.RFC3339, s)
		if err != nil {
			return time.Time{}, err
		}
	}
	t = t.UTC()
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC), nil
}
