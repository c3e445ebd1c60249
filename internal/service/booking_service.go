package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/capecharters/charter-api/internal/bookingref"
	"github.com/capecharters/charter-api/internal/models"
	"github.com/capecharters/charter-api/internal/pricing"
	"github.com/capecharters/charter-api/internal/repository"
	"github.com/capecharters/charter-api/pkg/rabbitmq"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// maxGuestsCeiling caps guest count system-wide, independent of any package's
// own maximum.
const maxGuestsCeiling = 20

// booking number collisions are retryable; the unique index is the backstop
const createAttempts = 3

// CreateBookingInput carries everything a customer submits when booking.
// The acting customer is passed separately on every call; there is no
// ambient request identity below the handler layer.
type CreateBookingInput struct {
	PackageID           uuid.UUID
	Date                time.Time
	TimeSlot            models.TimeSlot
	GuestCount          int
	ContactName         string
	ContactEmail        string
	ContactPhone        string
	SpecialRequests     string
	DietaryRequirements string
}

// AdminBookingUpdate enumerates exactly the fields an administrator may
// change. Customers have no analogous type: their only mutation is Cancel.
type AdminBookingUpdate struct {
	Status     *models.BookingStatus
	AdminNotes *string
	Date       *time.Time
	TimeSlot   *models.TimeSlot
	GuestCount *int
}

func (u AdminBookingUpdate) empty() bool {
	return u.Status == nil && u.AdminNotes == nil && u.Date == nil && u.TimeSlot == nil && u.GuestCount == nil
}

type ListBookingsOptions struct {
	// All requests every booking in the system; honored for admins only and
	// silently ignored otherwise.
	All    bool
	Status *models.BookingStatus
}

type BookingService interface {
	Create(ctx context.Context, actor *models.Customer, in CreateBookingInput) (*models.Booking, error)
	Get(ctx context.Context, actor *models.Customer, id uuid.UUID) (*models.Booking, error)
	List(ctx context.Context, actor *models.Customer, opts ListBookingsOptions) ([]models.Booking, error)
	Cancel(ctx context.Context, actor *models.Customer, id uuid.UUID) (*models.Booking, error)
	AdminUpdate(ctx context.Context, actor *models.Customer, id uuid.UUID, in AdminBookingUpdate) (*models.Booking, error)
	Delete(ctx context.Context, actor *models.Customer, id uuid.UUID) error
}

type bookingService struct {
	bookingRepo repository.BookingRepository
	packageRepo repository.PackageRepository
	publisher   *rabbitmq.Publisher
}

func NewBookingService(bookingRepo repository.BookingRepository, packageRepo repository.PackageRepository, publisher *rabbitmq.Publisher) BookingService {
	return &bookingService{
		bookingRepo: bookingRepo,
		packageRepo: packageRepo,
		publisher:   publisher,
	}
}

func (s *bookingService) Create(ctx context.Context, actor *models.Customer, in CreateBookingInput) (*models.Booking, error) {
	if actor == nil {
		return nil, ErrNotAuthenticated
	}

	pkg, err := s.packageRepo.FindByID(ctx, in.PackageID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrPackageNotFound
		}
		return nil, fmt.Errorf("find package: %w", err)
	}
	if !pkg.IsActive {
		return nil, ErrPackageInactive
	}
	if !models.ValidTimeSlot(in.TimeSlot) {
		return nil, ErrInvalidTimeSlot
	}
	if in.GuestCount < pkg.MinGuests || in.GuestCount > pkg.MaxGuests {
		return nil, fmt.Errorf("%w: must be between %d and %d", ErrGuestCountOutOfRange, pkg.MinGuests, pkg.MaxGuests)
	}
	if in.GuestCount > maxGuestsCeiling {
		return nil, fmt.Errorf("%w: at most %d guests per booking", ErrGuestCountOutOfRange, maxGuestsCeiling)
	}

	// Snapshot price and total now; later package edits must not affect this booking.
	total := pricing.Total(pkg.PricePerPerson, in.GuestCount)

	var booking *models.Booking
	for attempt := 0; attempt < createAttempts; attempt++ {
		booking = &models.Booking{
			BookingNumber:       bookingref.New(),
			CustomerID:          actor.ID,
			PackageID:           pkg.ID,
			Date:                in.Date,
			TimeSlot:            in.TimeSlot,
			GuestCount:          in.GuestCount,
			PricePerPerson:      pkg.PricePerPerson,
			TotalPrice:          total,
			ContactName:         in.ContactName,
			ContactEmail:        in.ContactEmail,
			ContactPhone:        in.ContactPhone,
			SpecialRequests:     in.SpecialRequests,
			DietaryRequirements: in.DietaryRequirements,
			Status:              models.StatusPending,
		}

		err = s.bookingRepo.Create(ctx, booking)
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			continue
		}
		if err != nil {
			return nil, fmt.Errorf("create booking: %w", err)
		}

		if s.publisher != nil {
			_ = s.publisher.Publish("booking.created", booking)
		}
		return booking, nil
	}

	return nil, fmt.Errorf("create booking: booking number collision after %d attempts: %w", createAttempts, err)
}

func (s *bookingService) Get(ctx context.Context, actor *models.Customer, id uuid.UUID) (*models.Booking, error) {
	if actor == nil {
		return nil, ErrNotAuthenticated
	}

	booking, err := s.bookingRepo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrBookingNotFound
		}
		return nil, fmt.Errorf("find booking: %w", err)
	}

	if booking.CustomerID != actor.ID && !actor.IsAdmin() {
		return nil, ErrForbidden
	}
	return booking, nil
}

func (s *bookingService) List(ctx context.Context, actor *models.Customer, opts ListBookingsOptions) ([]models.Booking, error) {
	if actor == nil {
		return nil, ErrNotAuthenticated
	}

	if opts.All && actor.IsAdmin() {
		return s.bookingRepo.FindAll(ctx, opts.Status)
	}
	return s.bookingRepo.FindByCustomerID(ctx, actor.ID, opts.Status)
}

// Cancel is the only mutation available to customers: their own booking,
// only while it is still pending.
func (s *bookingService) Cancel(ctx context.Context, actor *models.Customer, id uuid.UUID) (*models.Booking, error) {
	if actor == nil {
		return nil, ErrNotAuthenticated
	}

	booking, err := s.bookingRepo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrBookingNotFound
		}
		return nil, fmt.Errorf("find booking: %w", err)
	}

	if booking.CustomerID != actor.ID {
		return nil, ErrForbidden
	}
	if booking.Status != models.StatusPending {
		return nil, ErrCancelNotPending
	}

	now := time.Now()
	booking.Status = models.StatusCancelled
	booking.CancelledAt = &now

	if err := s.bookingRepo.Update(ctx, booking); err != nil {
		return nil, fmt.Errorf("cancel booking: %w", err)
	}

	if s.publisher != nil {
		_ = s.publisher.Publish("booking.status_changed", booking)
	}
	return booking, nil
}

// AdminUpdate applies any subset of the admin-editable fields. Every field is
// validated before anything is written; a failed update changes nothing. Any
// status transition is permitted (admins may correct completed or cancelled
// bookings); entering confirmed or cancelled stamps the matching timestamp,
// overwriting a previous one, and leaving a state never clears it.
func (s *bookingService) AdminUpdate(ctx context.Context, actor *models.Customer, id uuid.UUID, in AdminBookingUpdate) (*models.Booking, error) {
	if actor == nil {
		return nil, ErrNotAuthenticated
	}
	if !actor.IsAdmin() {
		return nil, ErrForbidden
	}

	booking, err := s.bookingRepo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrBookingNotFound
		}
		return nil, fmt.Errorf("find booking: %w", err)
	}

	if in.empty() {
		return booking, nil
	}
	if in.Status != nil && !models.ValidBookingStatus(*in.Status) {
		return nil, ErrInvalidStatus
	}
	if in.TimeSlot != nil && !models.ValidTimeSlot(*in.TimeSlot) {
		return nil, ErrInvalidTimeSlot
	}
	if in.GuestCount != nil && (*in.GuestCount < 1 || *in.GuestCount > maxGuestsCeiling) {
		return nil, fmt.Errorf("%w: must be between 1 and %d", ErrGuestCountOutOfRange, maxGuestsCeiling)
	}

	statusChanged := false
	if in.Status != nil {
		statusChanged = *in.Status != booking.Status
		booking.Status = *in.Status
		// Stamped on every transition into the state, even repeats; leaving
		// a state never clears its timestamp.
		now := time.Now()
		switch *in.Status {
		case models.StatusConfirmed:
			booking.ConfirmedAt = &now
		case models.StatusCancelled:
			booking.CancelledAt = &now
		}
	}
	if in.AdminNotes != nil {
		booking.AdminNotes = *in.AdminNotes
	}
	if in.Date != nil {
		booking.Date = *in.Date
	}
	if in.TimeSlot != nil {
		booking.TimeSlot = *in.TimeSlot
	}
	if in.GuestCount != nil {
		booking.GuestCount = *in.GuestCount
	}

	if err := s.bookingRepo.Update(ctx, booking); err != nil {
		return nil, fmt.Errorf("update booking: %w", err)
	}

	if statusChanged && s.publisher != nil {
		_ = s.publisher.Publish("booking.status_changed", booking)
	}
	return booking, nil
}

func (s *bookingService) Delete(ctx context.Context, actor *models.Customer, id uuid.UUID) error {
	if actor == nil {
		return ErrNotAuthenticated
	}
	if !actor.IsAdmin() {
		return ErrForbidden
	}

	if _, err := s.bookingRepo.FindByID(ctx, id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrBookingNotFound
		}
		return fmt.Errorf("find booking: %w", err)
	}

	if err := s.bookingRepo.Delete(ctx, id); err != nil {
		return fmt.Errorf("delete booking: %w", err)
	}
	return nil
}
