package models

import (
	"time"

	"github.com/google/uuid"
)

// ScanRecord is one append-only audit entry per scan or override attempt.
// Records are never updated after insert, with one exception: an override
// sets the override fields on the original denied record while also
// appending a brand-new record for the forced entry.
type ScanRecord struct {
	ID             uuid.UUID  `gorm:"type:uuid;default:uuid_generate_v4();primary_key"`
	ScanID         string     `gorm:"unique;not null;index"`
	BookingID      *uuid.UUID `gorm:"type:uuid;index"`
	Booking        *Booking
	EventID        *uuid.UUID `gorm:"type:uuid;index"`
	Event          *Event
	ScannerID      uuid.UUID `gorm:"type:uuid;not null"`
	Scanner        Scanner
	Outcome        string `gorm:"not null"`
	RawPayload     string
	Digest         string
	Geolocation    string
	DeviceInfo     string
	WasOverridden  bool `gorm:"not null;default:false"`
	OverrideReason string
	OverriddenByID *uuid.UUID `gorm:"type:uuid"`
	OverriddenBy   *Scanner   `gorm:"foreignKey:OverriddenByID"`
	CreatedAt      time.Time
}
