package services

import (
	"context"
	"fmt"
	"math"

	"staynest/internal/domain"
	"staynest/internal/repos"

	"github.com/google/uuid"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"
)

// BookingService keeps listing inventory, the booking ledger and the guest's
// booking list in step. Each operation is one transaction.
type BookingService struct {
	Store *repos.Store
}

func NewBookingService(store *repos.Store) *BookingService {
	return &BookingService{Store: store}
}

type CreateBookingInput struct {
	ListingID   string
	RequesterID string
	CheckIn     string
	CheckOut    string
	TotalRent   float64
}

// Create books one unit of a listing for the requester. The listing is
// resolved first, then the stay and the requester, all before anything is
// written.
func (s *BookingService) Create(ctx context.Context, in CreateBookingInput) (_ domain.BookingView, err error) {
	ctx, span := tracer.Start(ctx, "booking.create", trace.WithAttributes(
		attribute.String("listing.id", in.ListingID),
		attribute.String("user.id", in.RequesterID),
	))
	defer func() { endSpan(span, err) }()

	var view domain.BookingView
	err = s.Store.InTx(ctx, func(r repos.Repos) error {
		listing, err := r.Listings.Get(ctx, in.ListingID)
		if err != nil {
			return err
		}
		checkIn, checkOut, err := domain.ParseStayDates(in.CheckIn, in.CheckOut)
		if err != nil {
			return err
		}
		if in.TotalRent < 0 || math.IsNaN(in.TotalRent) || math.IsInf(in.TotalRent, 0) {
			return domain.ErrInvalidRent
		}
		guest, err := r.Users.ByID(ctx, in.RequesterID)
		if err != nil {
			return err
		}
		if guest.IsAdmin() {
			return domain.ErrGuestOnly
		}
		if listing.AvailableQuantity <= 0 {
			return domain.ErrFullyBooked
		}
		// The conditional decrement is the authoritative check.
		if err := r.Inventory.ReserveUnit(ctx, listing.ID, guest.ID); err != nil {
			return err
		}

		b := domain.Booking{
			ID:        uuid.NewString(),
			ListingID: listing.ID,
			HostID:    listing.HostID,
			GuestID:   guest.ID,
			CheckIn:   checkIn.Format(domain.DateLayout),
			CheckOut:  checkOut.Format(domain.DateLayout),
			TotalRent: in.TotalRent,
		}
		if err := r.Bookings.Create(ctx, &b); err != nil {
			return fmt.Errorf("insert booking: %w", err)
		}
		if err := r.Users.AppendBooking(ctx, guest.ID, b.ID, listing.ID); err != nil {
			return fmt.Errorf("append booking ref: %w", err)
		}
		view, err = r.Bookings.View(ctx, b.ID)
		return err
	})
	if err != nil {
		return domain.BookingView{}, err
	}
	span.SetAttributes(attribute.String("booking.id", view.ID))
	return view, nil
}

type CancelBookingInput struct {
	ListingID  string
	CallerID   string
	CallerRole string
	// BookingID picks a specific booking. Empty means the caller's most
	// recent active booking on the listing.
	BookingID string
}

// Cancel releases the unit held by one booking and detaches it from its
// guest's list. Only the booking's guest or an admin may cancel.
func (s *BookingService) Cancel(ctx context.Context, in CancelBookingInput) (_ domain.Booking, err error) {
	ctx, span := tracer.Start(ctx, "booking.cancel", trace.WithAttributes(
		attribute.String("listing.id", in.ListingID),
		attribute.String("user.id", in.CallerID),
	))
	defer func() { endSpan(span, err) }()

	var cancelled domain.Booking
	err = s.Store.InTx(ctx, func(r repos.Repos) error {
		if _, err := r.Listings.Get(ctx, in.ListingID); err != nil {
			return err
		}

		var (
			b   domain.Booking
			err error
		)
		if in.BookingID != "" {
			b, err = r.Bookings.Get(ctx, in.BookingID)
			if err == nil && b.ListingID != in.ListingID {
				err = domain.ErrBookingNotFound
			}
		} else {
			b, err = r.Bookings.LatestActive(ctx, in.ListingID, in.CallerID)
		}
		if err != nil {
			return err
		}
		if b.GuestID != in.CallerID && in.CallerRole != domain.RoleAdmin {
			return domain.ErrNotOwner
		}

		if err := cancelInTx(ctx, r, b); err != nil {
			return err
		}
		cancelled, err = r.Bookings.Get(ctx, b.ID)
		return err
	})
	if err != nil {
		return domain.Booking{}, err
	}
	span.SetAttributes(attribute.String("booking.id", cancelled.ID))
	return cancelled, nil
}

// CancelByID cancels a booking identified only by its id (admin dashboard).
func (s *BookingService) CancelByID(ctx context.Context, callerID, callerRole, bookingID string) (domain.Booking, error) {
	b, err := s.Store.Repos().Bookings.Get(ctx, bookingID)
	if err != nil {
		return domain.Booking{}, err
	}
	return s.Cancel(ctx, CancelBookingInput{
		ListingID:  b.ListingID,
		CallerID:   callerID,
		CallerRole: callerRole,
		BookingID:  b.ID,
	})
}

// ListMine returns every booking the user made, newest first.
func (s *BookingService) ListMine(ctx context.Context, userID string) ([]domain.BookingView, error) {
	return s.Store.Repos().Bookings.ListByGuest(ctx, userID)
}

// BookingPage is one page of the booking ledger. Total counts every row.
type BookingPage struct {
	Bookings []domain.BookingView `json:"bookings"`
	Total    int                  `json:"total"`
	Page     int                  `json:"page"`
	PageSize int                  `json:"pageSize"`
}

// ListAll returns the whole ledger when pageSize <= 0, otherwise one page of it.
func (s *BookingService) ListAll(ctx context.Context, page, pageSize int) (BookingPage, error) {
	r := s.Store.Repos()
	if page < 1 {
		page = 1
	}
	if pageSize < 0 {
		pageSize = 0
	}
	total, err := r.Bookings.Count(ctx)
	if err != nil {
		return BookingPage{}, err
	}
	vs, err := r.Bookings.ListViews(ctx, pageSize, (page-1)*pageSize)
	if err != nil {
		return BookingPage{}, err
	}
	return BookingPage{Bookings: vs, Total: total, Page: page, PageSize: pageSize}, nil
}

// cancelInTx must run inside Store.InTx: the status flip, the inventory
// release and the list removal commit together.
func cancelInTx(ctx context.Context, r repos.Repos, b domain.Booking) error {
	if err := r.Bookings.MarkCancelled(ctx, b.ID); err != nil {
		return err
	}
	if err := r.Inventory.ReleaseUnit(ctx, b.ListingID); err != nil {
		return err
	}
	if err := r.Users.RemoveBooking(ctx, b.GuestID, b.ID); err != nil {
		return fmt.Errorf("remove booking ref: %w", err)
	}
	return nil
}
