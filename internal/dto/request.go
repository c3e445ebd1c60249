package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

type CreateBookingRequest struct {
	PackageID           string    `json:"packageId" validate:"required,uuid4"`
	Date                time.Time `json:"date" validate:"required"`
	TimeSlot            string    `json:"timeSlot" validate:"required"`
	GuestCount          int       `json:"guestCount" validate:"required,min=1,max=20"`
	ContactName         string    `json:"contactName" validate:"required,min=2"`
	ContactEmail        string    `json:"contactEmail" validate:"required,email"`
	ContactPhone        string    `json:"contactPhone" validate:"required,min=10"`
	SpecialRequests     string    `json:"specialRequests" validate:"omitempty,max=2000"`
	DietaryRequirements string    `json:"dietaryRequirements" validate:"omitempty,max=2000"`
}

// UpdateBookingRequest is the PATCH body. Which fields are honored depends on
// the acting role; the handler rejects anything outside the caller's scope
// before the service is invoked.
type UpdateBookingRequest struct {
	Status     *string    `json:"status" validate:"omitempty,oneof=pending confirmed cancelled completed"`
	AdminNotes *string    `json:"adminNotes"`
	Date       *time.Time `json:"date"`
	TimeSlot   *string    `json:"timeSlot" validate:"omitempty,oneof=morning afternoon sunset"`
	GuestCount *int       `json:"guestCount" validate:"omitempty,min=1,max=20"`
}

// CancelOnly reports whether the request changes nothing but status, with
// cancelled as the target. This is the full extent of what a customer may do.
func (r UpdateBookingRequest) CancelOnly() bool {
	return r.Status != nil && *r.Status == "cancelled" &&
		r.AdminNotes == nil && r.Date == nil && r.TimeSlot == nil && r.GuestCount == nil
}

type CreatePackageRequest struct {
	Slug           string          `json:"slug" validate:"required,min=2,max=100"`
	Name           string          `json:"name" validate:"required,min=2,max=200"`
	Tagline        string          `json:"tagline"`
	Description    string          `json:"description" validate:"required,min=10"`
	Duration       string          `json:"duration" validate:"required"`
	PricePerPerson decimal.Decimal `json:"pricePerPerson"`
	MinGuests      int             `json:"minGuests"`
	MaxGuests      int             `json:"maxGuests"`
	Category       string          `json:"category" validate:"required"`
	Highlights     []string        `json:"highlights"`
	ImageURL       string          `json:"imageUrl" validate:"omitempty,url"`
	IsActive       *bool           `json:"isActive"`
	IsFeatured     bool            `json:"isFeatured"`
}

type UpdatePackageRequest struct {
	Name           *string          `json:"name" validate:"omitempty,min=2,max=200"`
	Tagline        *string          `json:"tagline"`
	Description    *string          `json:"description" validate:"omitempty,min=10"`
	Duration       *string          `json:"duration"`
	PricePerPerson *decimal.Decimal `json:"pricePerPerson"`
	MinGuests      *int             `json:"minGuests"`
	MaxGuests      *int             `json:"maxGuests"`
	Category       *string          `json:"category"`
	Highlights     *[]string        `json:"highlights"`
	ImageURL       *string          `json:"imageUrl" validate:"omitempty,url"`
	IsActive       *bool            `json:"isActive"`
	IsFeatured     *bool            `json:"isFeatured"`
}

// IdentityWebhookEvent mirrors the identity provider's webhook envelope.
type IdentityWebhookEvent struct {
	Type string              `json:"type"`
	Data IdentityWebhookUser `json:"data"`
}

type IdentityWebhookUser struct {
	ID                    string                 `json:"id"`
	FirstName             string                 `json:"first_name"`
	LastName              string                 `json:"last_name"`
	ImageURL              string                 `json:"image_url"`
	PrimaryEmailAddressID string                 `json:"primary_email_address_id"`
	EmailAddresses        []IdentityEmailAddress `json:"email_addresses"`
	PrimaryPhoneNumberID  string                 `json:"primary_phone_number_id"`
	PhoneNumbers          []IdentityPhoneNumber  `json:"phone_numbers"`
}

type IdentityEmailAddress struct {
	ID           string `json:"id"`
	EmailAddress string `json:"email_address"`
}

type IdentityPhoneNumber struct {
	ID          string `json:"id"`
	PhoneNumber string `json:"phone_number"`
}

// PrimaryEmail returns the address matching the primary id, falling back to
// the first one on record.
func (u IdentityWebhookUser) PrimaryEmail() string {
	for _, e := range u.EmailAddresses {
		if e.ID == u.PrimaryEmailAddressID {
			return e.EmailAddress
		}
	}
	if len(u.EmailAddresses) > 0 {
		return u.EmailAddresses[0].EmailAddress
	}
	return ""
}

func (u IdentityWebhookUser) PrimaryPhone() string {
	for _, p := range u.PhoneNumbers {
		if p.ID == u.PrimaryPhoneNumberID {
			return p.PhoneNumber
		}
	}
	if len(u.PhoneNumbers) > 0 {
		return u.PhoneNumbers[0].PhoneNumber
	}
	return ""
}
