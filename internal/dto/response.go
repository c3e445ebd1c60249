package dto

import (
	"time"

	"github.com/capecharters/charter-api/internal/models"
	"github.com/shopspring/decimal"
)

type BookingResponse struct {
	ID                  string                `json:"id"`
	BookingNumber       string                `json:"bookingNumber"`
	CustomerID          string                `json:"customerId"`
	PackageID           string                `json:"packageId"`
	Date                time.Time             `json:"date"`
	TimeSlot            models.TimeSlot       `json:"timeSlot"`
	GuestCount          int                   `json:"guestCount"`
	PricePerPerson      decimal.Decimal       `json:"pricePerPerson"`
	TotalPrice          decimal.Decimal       `json:"totalPrice"`
	ContactName         string                `json:"contactName"`
	ContactEmail        string                `json:"contactEmail"`
	ContactPhone        string                `json:"contactPhone"`
	SpecialRequests     string                `json:"specialRequests,omitempty"`
	DietaryRequirements string                `json:"dietaryRequirements,omitempty"`
	Status              models.BookingStatus  `json:"status"`
	AdminNotes          string                `json:"adminNotes,omitempty"`
	CreatedAt           time.Time             `json:"createdAt"`
	UpdatedAt           time.Time             `json:"updatedAt"`
	ConfirmedAt         *time.Time            `json:"confirmedAt,omitempty"`
	CancelledAt         *time.Time            `json:"cancelledAt,omitempty"`
	Package             *PackageResponse      `json:"package,omitempty"`
	Customer            *CustomerResponse     `json:"customer,omitempty"`
}

type PackageResponse struct {
	ID             string          `json:"id"`
	Slug           string          `json:"slug"`
	Name           string          `json:"name"`
	Tagline        string          `json:"tagline,omitempty"`
	Description    string          `json:"description"`
	Duration       string          `json:"duration"`
	PricePerPerson decimal.Decimal `json:"pricePerPerson"`
	MinGuests      int             `json:"minGuests"`
	MaxGuests      int             `json:"maxGuests"`
	Category       string          `json:"category"`
	Highlights     []string        `json:"highlights,omitempty"`
	ImageURL       string          `json:"imageUrl,omitempty"`
	IsActive       bool            `json:"isActive"`
	IsFeatured     bool            `json:"isFeatured"`
	CreatedAt      time.Time       `json:"createdAt"`
	UpdatedAt      time.Time       `json:"updatedAt"`
}

type CustomerResponse struct {
	ID        string      `json:"id"`
	Email     string      `json:"email"`
	FirstName string      `json:"firstName,omitempty"`
	LastName  string      `json:"lastName,omitempty"`
	Phone     string      `json:"phone,omitempty"`
	Role      models.Role `json:"role"`
}

type ErrorResponse struct {
	Message string `json:"message"`
}

func ToBookingResponse(b *models.Booking) BookingResponse {
	resp := BookingResponse{
		ID:                  b.ID.String(),
		BookingNumber:       b.BookingNumber,
		CustomerID:          b.CustomerID.String(),
		PackageID:           b.PackageID.String(),
		Date:                b.Date,
		TimeSlot:            b.TimeSlot,
		GuestCount:          b.GuestCount,
		PricePerPerson:      b.PricePerPerson,
		TotalPrice:          b.TotalPrice,
		ContactName:         b.ContactName,
		ContactEmail:        b.ContactEmail,
		ContactPhone:        b.ContactPhone,
		SpecialRequests:     b.SpecialRequests,
		DietaryRequirements: b.DietaryRequirements,
		Status:              b.Status,
		AdminNotes:          b.AdminNotes,
		CreatedAt:           b.CreatedAt,
		UpdatedAt:           b.UpdatedAt,
		ConfirmedAt:         b.ConfirmedAt,
		CancelledAt:         b.CancelledAt,
	}
	if b.Package != nil {
		pkg := ToPackageResponse(b.Package)
		resp.Package = &pkg
	}
	if b.Customer != nil {
		cust := ToCustomerResponse(b.Customer)
		resp.Customer = &cust
	}
	return resp
}

func ToPackageResponse(p *models.Package) PackageResponse {
	return PackageResponse{
		ID:             p.ID.String(),
		Slug:           p.Slug,
		Name:           p.Name,
		Tagline:        p.Tagline,
		Description:    p.Description,
		Duration:       p.Duration,
		PricePerPerson: p.PricePerPerson,
		MinGuests:      p.MinGuests,
		MaxGuests:      p.MaxGuests,
		Category:       p.Category,
		Highlights:     p.Highlights,
		ImageURL:       p.ImageURL,
		IsActive:       p.IsActive,
		IsFeatured:     p.IsFeatured,
		CreatedAt:      p.CreatedAt,
		UpdatedAt:      p.UpdatedAt,
	}
}

func ToCustomerResponse(c *models.Customer) CustomerResponse {
	return CustomerResponse{
		ID:        c.ID.String(),
		Email:     c.Email,
		FirstName: c.FirstName,
		LastName:  c.LastName,
		Phone:     c.Phone,
		Role:      c.Role,
	}
}
