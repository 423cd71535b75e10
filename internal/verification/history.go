package verification

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/rakhadenny/scangate/internal/models"
)

const (
	DefaultHistoryLimit = 50
	historyCacheTTL     = time.Minute
)

// EnrichedScan is one audit row joined at read time with booking, attendee
// and scanner display data. Enrichment fields stay empty when a referenced
// entity is missing; that is not an error.
type EnrichedScan struct {
	ScanID         string    `json:"scan_id"`
	Outcome        string    `json:"outcome"`
	BookingNumber  string    `json:"booking_number,omitempty"`
	AttendeeName   string    `json:"attendee_name,omitempty"`
	ScannerName    string    `json:"scanner_name,omitempty"`
	TicketSummary  string    `json:"ticket_summary,omitempty"`
	Geolocation    string    `json:"geolocation,omitempty"`
	DeviceInfo     string    `json:"device_info,omitempty"`
	WasOverridden  bool      `json:"was_overridden"`
	OverrideReason string    `json:"override_reason,omitempty"`
	ScannedAt      time.Time `json:"scanned_at"`
}

// ListScanHistory returns up to limit enriched records for an event, most
// recent first. The default-limit listing is cached per event and the cache
// entry is dropped whenever a new record lands for that event.
func (s *Service) ListScanHistory(ctx context.Context, eventID uuid.UUID, limit int) ([]EnrichedScan, error) {
	if limit <= 0 {
		limit = DefaultHistoryLimit
	}

	useCache := s.cache != nil && limit == DefaultHistoryLimit
	if useCache {
		if raw, err := s.cache.Get(ctx, historyCacheKey(eventID)).Result(); err == nil {
			var cached []EnrichedScan
			if err := json.Unmarshal([]byte(raw), &cached); err == nil {
				return cached, nil
			}
			// Corrupt entry: drop it now rather than leaving it to expire.
			s.invalidateHistory(ctx, eventID)
		}
	}

	records, err := s.scans.ListByEvent(ctx, eventID, limit)
	if err != nil {
		return nil, err
	}

	enriched := make([]EnrichedScan, 0, len(records))
	for i := range records {
		enriched = append(enriched, enrichRecord(&records[i]))
	}

	if useCache {
		if raw, err := json.Marshal(enriched); err == nil {
			if err := s.cache.Set(ctx, historyCacheKey(eventID), raw, historyCacheTTL).Err(); err != nil {
				log.Printf("Failed to cache scan history for event %s: %v", eventID, err)
			}
		}
	}

	return enriched, nil
}

func historyCacheKey(eventID uuid.UUID) string {
	return fmt.Sprintf("scans:%s", eventID.String())
}

func (s *Service) invalidateHistory(ctx context.Context, eventID uuid.UUID) {
	if s.cache == nil {
		return
	}
	if err := s.cache.Del(ctx, historyCacheKey(eventID)).Err(); err != nil {
		log.Printf("Failed to invalidate scan history cache for event %s: %v", eventID, err)
	}
}

func enrichRecord(rec *models.ScanRecord) EnrichedScan {
	out := EnrichedScan{
		ScanID:         rec.ScanID,
		Outcome:        rec.Outcome,
		Geolocation:    rec.Geolocation,
		DeviceInfo:     rec.DeviceInfo,
		WasOverridden:  rec.WasOverridden,
		OverrideReason: rec.OverrideReason,
		ScannedAt:      rec.CreatedAt,
	}

	if rec.Booking != nil {
		out.BookingNumber = rec.Booking.BookingNumber
		out.AttendeeName = rec.Booking.AttendeeName()
		out.TicketSummary = ticketSummary(rec.Booking.Items)
	}
	out.ScannerName = rec.Scanner.Name

	return out
}

func ticketSummary(items []models.BookingItem) string {
	parts := make([]string, 0, len(items))
	for _, item := range items {
		parts = append(parts, fmt.Sprintf("%dx %s", item.Quantity, item.TicketType))
	}
	return strings.Join(parts, ", ")
}
