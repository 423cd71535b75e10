package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

const (
	BookingActive    = "active"
	BookingCancelled = "cancelled"
	BookingRefunded  = "refunded"
)

// Booking is owned by the booking subsystem. The verification core reads it
// and performs exactly one mutating transition: is_used false -> true with a
// used_at stamp. Once set, is_used is never reset.
type Booking struct {
	gorm.Model
	ID            uuid.UUID `gorm:"type:uuid;primary_key"`
	BookingNumber string    `gorm:"unique;not null"`
	EventID       uuid.UUID `gorm:"type:uuid;not null;index"`
	Event         Event
	PaymentID     uuid.UUID `gorm:"type:uuid;not null"`
	Payment       Payment
	UserID        *uuid.UUID `gorm:"type:uuid"`
	User          *User
	GuestName     string
	GuestEmail    string
	Items         []BookingItem
	TotalAmount   int    `gorm:"not null"`
	Status        string `gorm:"not null;default:'active'"`
	IsUsed        bool   `gorm:"not null;default:false"`
	UsedAt        *time.Time
	QRPayload     string
}

func (booking *Booking) BeforeCreate(tx *gorm.DB) (err error) {
	if booking.ID == uuid.Nil {
		booking.ID = uuid.New()
	}
	return
}

// AttendeeName resolves the display name for whoever holds the booking: the
// linked registered user if present, else the embedded guest details.
func (booking *Booking) AttendeeName() string {
	if booking.User != nil {
		return booking.User.Name
	}
	return booking.GuestName
}

func (booking *Booking) AttendeeEmail() string {
	if booking.User != nil {
		return booking.User.Email
	}
	return booking.GuestEmail
}

type BookingItem struct {
	ID         uuid.UUID `gorm:"type:uuid;default:uuid_generate_v4();primary_key"`
	BookingID  uuid.UUID `gorm:"type:uuid;not null;index"`
	TicketType string    `gorm:"not null"`
	Quantity   int       `gorm:"not null"`
	Price      int       `gorm:"not null"`
	CreatedAt  time.Time
	UpdatedAt  time.Time
}
