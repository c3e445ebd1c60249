package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

type BookingStatus string

const (
	StatusPending   BookingStatus = "pending"
	StatusConfirmed BookingStatus = "confirmed"
	StatusCancelled BookingStatus = "cancelled"
	StatusCompleted BookingStatus = "completed"
)

func ValidBookingStatus(s BookingStatus) bool {
	switch s {
	case StatusPending, StatusConfirmed, StatusCancelled, StatusCompleted:
		return true
	}
	return false
}

type TimeSlot string

// The departure windows are a fixed set; there is no per-slot configuration.
const (
	SlotMorning   TimeSlot = "morning"
	SlotAfternoon TimeSlot = "afternoon"
	SlotSunset    TimeSlot = "sunset"
)

func ValidTimeSlot(s TimeSlot) bool {
	switch s {
	case SlotMorning, SlotAfternoon, SlotSunset:
		return true
	}
	return false
}

// Booking is one reservation of a Package by a Customer. PricePerPerson,
// TotalPrice and the contact fields are snapshots taken at creation time and
// never re-derived from the package or the customer profile.
type Booking struct {
	ID            uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	BookingNumber string    `gorm:"uniqueIndex;not null" json:"bookingNumber"`
	CustomerID    uuid.UUID `gorm:"type:uuid;not null;index" json:"customerId"`
	PackageID     uuid.UUID `gorm:"type:uuid;not null;index" json:"packageId"`

	Date       time.Time `gorm:"not null" json:"date"`
	TimeSlot   TimeSlot  `gorm:"type:varchar(20);not null" json:"timeSlot"`
	GuestCount int       `gorm:"not null" json:"guestCount"`

	PricePerPerson decimal.Decimal `gorm:"type:decimal(10,2);not null" json:"pricePerPerson"`
	TotalPrice     decimal.Decimal `gorm:"type:decimal(10,2);not null" json:"totalPrice"`

	ContactName  string `gorm:"not null" json:"contactName"`
	ContactEmail string `gorm:"not null" json:"contactEmail"`
	ContactPhone string `gorm:"not null" json:"contactPhone"`

	SpecialRequests     string `json:"specialRequests,omitempty"`
	DietaryRequirements string `json:"dietaryRequirements,omitempty"`

	Status     BookingStatus `gorm:"type:varchar(20);not null;default:'pending'" json:"status"`
	AdminNotes string        `json:"adminNotes,omitempty"`

	CreatedAt   time.Time  `json:"createdAt"`
	UpdatedAt   time.Time  `json:"updatedAt"`
	ConfirmedAt *time.Time `json:"confirmedAt,omitempty"`
	CancelledAt *time.Time `json:"cancelledAt,omitempty"`

	Package  *Package  `gorm:"foreignKey:PackageID" json:"package,omitempty"`
	Customer *Customer `gorm:"foreignKey:CustomerID" json:"customer,omitempty"`
}

func (b *Booking) BeforeCreate(tx *gorm.DB) error {
	if b.ID == uuid.Nil {
		b.ID = uuid.New()
	}
	return nil
}
