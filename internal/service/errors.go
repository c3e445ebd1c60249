package service

import "errors"

var (
	ErrNotAuthenticated = errors.New("not authenticated")
	ErrForbidden        = errors.New("forbidden")

	ErrPackageNotFound  = errors.New("package not found")
	ErrBookingNotFound  = errors.New("booking not found")
	ErrCustomerNotFound = errors.New("customer not found")

	ErrPackageInactive      = errors.New("this package is not available")
	ErrGuestCountOutOfRange = errors.New("guest count out of range")
	ErrInvalidTimeSlot      = errors.New("invalid time slot")
	ErrInvalidStatus        = errors.New("invalid booking status")
	ErrCancelNotPending     = errors.New("only pending bookings can be cancelled")
	ErrCancelOnly           = errors.New("you can only cancel your booking")

	ErrSlugTaken     = errors.New("a package with this slug already exists")
	ErrInvalidSlug   = errors.New("slug must be lowercase letters, digits and hyphens")
	ErrInvalidPrice  = errors.New("price per person must be positive")
	ErrInvalidGuests = errors.New("minimum guests must be at least 1 and not exceed maximum guests")
)
