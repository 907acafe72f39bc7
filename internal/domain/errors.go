package domain

import "errors"

// Error kinds. Every concrete error below unwraps to exactly one of them.
var (
	ErrNotFound        = errors.New("not found")
	ErrInvalidArgument = errors.New("invalid argument")
	ErrConflict        = errors.New("conflict")
	ErrForbidden       = errors.New("forbidden")
	ErrUnauthorized    = errors.New("unauthorized")
	ErrInternal        = errors.New("internal")
)

type kindError struct {
	kind error
	msg  string
}

func (e *kindError) Error() string { return e.msg }
func (e *kindError) Unwrap() error { return e.kind }

func newError(kind error, msg string) error { return &kindError{kind: kind, msg: msg} }

var (
	ErrListingNotFound = newError(ErrNotFound, "Listing is not found")
	ErrUserNotFound    = newError(ErrNotFound, "User is not found")
	ErrBookingNotFound = newError(ErrNotFound, "Booking is not found")

	ErrInvalidDates    = newError(ErrInvalidArgument, "Invalid checkIn/checkOut date")
	ErrInvalidRent     = newError(ErrInvalidArgument, "Invalid totalRent")
	ErrInvalidPrice    = newError(ErrInvalidArgument, "Invalid rent")
	ErrInvalidQuantity = newError(ErrInvalidArgument, "totalQuantity must be at least 1")
	ErrSelfDelete      = newError(ErrInvalidArgument, "Cannot delete your own account")

	ErrFullyBooked = newError(ErrConflict, "Listing is fully booked")
	ErrEmailTaken  = newError(ErrConflict, "Email is already registered")
	ErrUnitsInUse  = newError(ErrConflict, "Cannot remove units that are currently booked")

	ErrNotOwner       = newError(ErrForbidden, "You are not allowed to modify this resource")
	ErrAdminOnly      = newError(ErrForbidden, "Access denied. Admin only.")
	ErrGuestOnly      = newError(ErrForbidden, "Admins cannot perform this action. This is for regular users only.")
	ErrNoToken        = newError(ErrUnauthorized, "user doesn't have a token")
	ErrBadToken       = newError(ErrUnauthorized, "user doesn't have a valid token")
	ErrBadCredentials = newError(ErrUnauthorized, "Invalid email or password")

	// ErrInventoryDrift means a release would push availableQuantity above totalQuantity.
	ErrInventoryDrift = newError(ErrInternal, "listing inventory is inconsistent")
)

// Message returns the user-facing message of the first domain error in err's
// chain, or "" if there is none.
func Message(err error) string {
	var ke *kindError
	if errors.As(err, &ke) {
		return ke.msg
	}
	return ""
}
