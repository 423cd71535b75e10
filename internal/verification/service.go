package verification

import (
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/rakhadenny/scangate/internal/qrpayload"
)

// Outcomes are terminal verdicts, not errors: callers branch on them and
// every one of them leaves exactly one audit record behind.
const (
	OutcomeInvalidQR      = "invalid_qr"
	OutcomeExpired        = "expired"
	OutcomeWrongEvent     = "wrong_event"
	OutcomePaymentPending = "payment_pending"
	OutcomeCancelled      = "cancelled"
	OutcomeRefunded       = "refunded"
	OutcomeAlreadyUsed    = "already_used"
	OutcomeValid          = "valid"
)

// Service is the redemption and verification core: payload issuance, the
// scan decision pipeline, overrides and the audit history.
type Service struct {
	bookings BookingStore
	scanners ScannerStore
	scans    ScanStore
	cache    *redis.Client
	verifier *qrpayload.Verifier

	now func() time.Time
}

func NewService(bookings BookingStore, scanners ScannerStore, scans ScanStore, cache *redis.Client) *Service {
	return &Service{
		bookings: bookings,
		scanners: scanners,
		scans:    scans,
		cache:    cache,
		verifier: qrpayload.NewVerifier(),
		now:      time.Now,
	}
}

type VerifyRequest struct {
	Payload     string `json:"payload" binding:"required"`
	Geolocation string `json:"geolocation"`
	DeviceInfo  string `json:"device_info"`
}

type VerifyResult struct {
	Outcome     string           `json:"outcome"`
	ScanID      string           `json:"scan_id"`
	Message     string           `json:"message"`
	Booking     *BookingSummary  `json:"booking,omitempty"`
	Attendee    *AttendeeSummary `json:"attendee,omitempty"`
	Event       *EventSummary    `json:"event,omitempty"`
	FirstUsedAt *time.Time       `json:"first_used_at,omitempty"`
	FirstScanID string           `json:"first_scan_id,omitempty"`
}

type BookingSummary struct {
	BookingNumber string        `json:"booking_number"`
	Items         []ItemSummary `json:"items"`
	TotalAmount   int           `json:"total_amount"`
}

type ItemSummary struct {
	TicketType string `json:"ticket_type"`
	Quantity   int    `json:"quantity"`
}

type AttendeeSummary struct {
	Name  string `json:"name"`
	Email string `json:"email"`
}

type EventSummary struct {
	Title     string    `json:"title"`
	StartTime time.Time `json:"start_time"`
	Location  string    `json:"location"`
}

type IssueResult struct {
	Payload string `json:"payload"`
	Digest  string `json:"digest"`
}

type OverrideResult struct {
	NewScanID string `json:"new_scan_id"`
	Message   string `json:"message"`
}
