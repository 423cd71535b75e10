package verification

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/rakhadenny/scangate/internal/models"
	"github.com/rakhadenny/scangate/internal/qrpayload"
)

// VerifyScan runs the ordered decision pipeline for one scanned payload and,
// on success, performs the single is_used transition. Every verdict writes
// exactly one audit record; only an unknown or inactive scanner returns a
// hard error with no record at all.
//
// The check order is a contract: each step short-circuits with its own
// outcome, so reordering changes what gets logged for a given artifact.
func (s *Service) VerifyScan(ctx context.Context, scannerID uuid.UUID, req VerifyRequest) (*VerifyResult, error) {
	scanner, err := s.scanners.GetByID(ctx, scannerID)
	if err != nil {
		return nil, err
	}
	if !scanner.IsActive {
		return nil, ErrScannerInactive
	}

	p, err := qrpayload.Decode(req.Payload)
	if err != nil {
		return s.verdict(ctx, scannerID, req, nil, OutcomeInvalidQR, "Invalid QR code format.")
	}

	if assigned, ok := scanner.Scope().AssignedEvent(); ok && assigned != p.EventID {
		message := fmt.Sprintf("Scanner is assigned to event %s.", assigned)
		return s.verdict(ctx, scannerID, req, p, OutcomeWrongEvent, message)
	}

	if !s.verifier.VerifySignature(p) {
		return s.verdict(ctx, scannerID, req, p, OutcomeInvalidQR, "Invalid QR code signature.")
	}

	if !s.verifier.Fresh(p.IssuedAt()) {
		return s.verdict(ctx, scannerID, req, p, OutcomeExpired, "QR code has expired.")
	}

	booking, err := s.bookings.GetByID(ctx, p.BookingID)
	if err != nil {
		if errors.Is(err, ErrBookingNotFound) {
			return s.verdict(ctx, scannerID, req, p, OutcomeInvalidQR, "No booking matches this QR code.")
		}
		return nil, err
	}

	if booking.EventID != p.EventID {
		message := fmt.Sprintf("Ticket belongs to a different event: %s.", booking.Event.Title)
		return s.verdict(ctx, scannerID, req, p, OutcomeWrongEvent, message)
	}

	if booking.Payment.Status != models.PaymentCaptured {
		return s.verdict(ctx, scannerID, req, p, OutcomePaymentPending, "Payment has not been captured for this booking.")
	}

	if booking.Status == models.BookingCancelled {
		return s.verdict(ctx, scannerID, req, p, OutcomeCancelled, "Booking has been cancelled.")
	}
	if booking.Status == models.BookingRefunded {
		return s.verdict(ctx, scannerID, req, p, OutcomeRefunded, "Booking has been refunded.")
	}

	if booking.IsUsed {
		return s.alreadyUsed(ctx, scannerID, req, p, booking)
	}

	if err := s.bookings.MarkUsed(ctx, booking.ID, s.now()); err != nil {
		if errors.Is(err, ErrAlreadyRedeemed) {
			// Lost the race to a concurrent scan; re-read for the
			// winner's used_at before logging the denial.
			if fresh, ferr := s.bookings.GetByID(ctx, booking.ID); ferr == nil {
				booking = fresh
			}
			return s.alreadyUsed(ctx, scannerID, req, p, booking)
		}
		return nil, err
	}

	scanID, err := s.appendRecord(ctx, scannerID, req, p, OutcomeValid)
	if err != nil {
		return nil, err
	}

	return &VerifyResult{
		Outcome: OutcomeValid,
		ScanID:  scanID,
		Message: "Ticket validated successfully.",
		Booking: bookingSummary(booking),
		Attendee: &AttendeeSummary{
			Name:  booking.AttendeeName(),
			Email: booking.AttendeeEmail(),
		},
		Event: eventSummary(&booking.Event),
	}, nil
}

// verdict logs a terminal denial and returns it.
func (s *Service) verdict(ctx context.Context, scannerID uuid.UUID, req VerifyRequest, p *qrpayload.Payload, outcome, message string) (*VerifyResult, error) {
	scanID, err := s.appendRecord(ctx, scannerID, req, p, outcome)
	if err != nil {
		return nil, err
	}

	return &VerifyResult{
		Outcome: outcome,
		ScanID:  scanID,
		Message: message,
	}, nil
}

func (s *Service) alreadyUsed(ctx context.Context, scannerID uuid.UUID, req VerifyRequest, p *qrpayload.Payload, booking *models.Booking) (*VerifyResult, error) {
	scanID, err := s.appendRecord(ctx, scannerID, req, p, OutcomeAlreadyUsed)
	if err != nil {
		return nil, err
	}

	message := "Ticket has already been used."
	if booking.UsedAt != nil {
		message = fmt.Sprintf("Ticket already used at %s.", booking.UsedAt.UTC().Format(time.RFC3339))
	}

	result := &VerifyResult{
		Outcome:     OutcomeAlreadyUsed,
		ScanID:      scanID,
		Message:     message,
		FirstUsedAt: booking.UsedAt,
	}
	if first, err := s.scans.FirstValid(ctx, booking.ID); err == nil {
		result.FirstScanID = first.ScanID
	}

	return result, nil
}

// appendRecord writes the audit entry for one scan attempt. Booking and
// event references stay absent when the payload never parsed.
func (s *Service) appendRecord(ctx context.Context, scannerID uuid.UUID, req VerifyRequest, p *qrpayload.Payload, outcome string) (string, error) {
	rec := &models.ScanRecord{
		ScanID:      NewScanID(s.now()),
		ScannerID:   scannerID,
		Outcome:     outcome,
		RawPayload:  req.Payload,
		Geolocation: req.Geolocation,
		DeviceInfo:  req.DeviceInfo,
	}
	if p != nil {
		bookingID, eventID := p.BookingID, p.EventID
		rec.BookingID = &bookingID
		rec.EventID = &eventID
		rec.Digest = p.Hash
	}

	if err := s.scans.Append(ctx, rec); err != nil {
		return "", err
	}
	if rec.EventID != nil {
		s.invalidateHistory(ctx, *rec.EventID)
	}

	return rec.ScanID, nil
}

func bookingSummary(booking *models.Booking) *BookingSummary {
	items := make([]ItemSummary, 0, len(booking.Items))
	for _, item := range booking.Items {
		items = append(items, ItemSummary{
			TicketType: item.TicketType,
			Quantity:   item.Quantity,
		})
	}

	return &BookingSummary{
		BookingNumber: booking.BookingNumber,
		Items:         items,
		TotalAmount:   booking.TotalAmount,
	}
}

func eventSummary(event *models.Event) *EventSummary {
	return &EventSummary{
		Title:     event.Title,
		StartTime: event.StartTime,
		Location:  event.Location,
	}
}
