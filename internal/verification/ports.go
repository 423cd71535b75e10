package verification

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/rakhadenny/scangate/internal/models"
)

var (
	ErrBookingNotFound = errors.New("booking not found")
	// ErrAlreadyRedeemed is the compare-and-swap miss: another scan flipped
	// is_used between our read and our write.
	ErrAlreadyRedeemed  = errors.New("booking already redeemed")
	ErrScannerNotFound  = errors.New("scanner not found")
	ErrScannerInactive  = errors.New("scanner is not active")
	ErrScanNotFound     = errors.New("scan record not found")
	ErrNoBookingRef     = errors.New("scan record has no booking reference")
	ErrPermissionDenied = errors.New("scanner is not permitted to override scans")
)

// BookingStore reads bookings and performs the single mutating transition
// the core is allowed: is_used false -> true.
type BookingStore interface {
	// GetByID loads a booking with its event, payment, items and user.
	GetByID(ctx context.Context, id uuid.UUID) (*models.Booking, error)
	// MarkUsed atomically flips is_used from false to true and stamps
	// used_at. It returns ErrAlreadyRedeemed when the booking was already
	// used, making concurrent redemptions of the same booking settle to
	// exactly one winner.
	MarkUsed(ctx context.Context, id uuid.UUID, at time.Time) error
	// ForceUse sets is_used true unconditionally (override path).
	ForceUse(ctx context.Context, id uuid.UUID, at time.Time) error
	SavePayload(ctx context.Context, id uuid.UUID, payload string) error
}

type ScannerStore interface {
	GetByID(ctx context.Context, id uuid.UUID) (*models.Scanner, error)
}

// ScanStore is the append-only audit log. MarkOverridden is the only
// permitted in-place mutation, and it only sets override metadata.
type ScanStore interface {
	Append(ctx context.Context, rec *models.ScanRecord) error
	GetByScanID(ctx context.Context, scanID string) (*models.ScanRecord, error)
	MarkOverridden(ctx context.Context, scanID string, reason string, by uuid.UUID) error
	// FirstValid returns the earliest record with outcome valid for a
	// booking, or ErrScanNotFound if none exists.
	FirstValid(ctx context.Context, bookingID uuid.UUID) (*models.ScanRecord, error)
	// ListByEvent returns up to limit records for an event, most recent
	// first, with booking, scanner and attendee associations loaded.
	ListByEvent(ctx context.Context, eventID uuid.UUID, limit int) ([]models.ScanRecord, error)
}
