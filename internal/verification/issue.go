package verification

import (
	"context"

	"github.com/google/uuid"
	"github.com/rakhadenny/scangate/internal/qrpayload"
)

// IssuePayload encodes a fresh signed payload for a booking and persists it
// as the booking's current QR payload. Re-issuing simply replaces the stored
// value.
func (s *Service) IssuePayload(ctx context.Context, bookingID uuid.UUID) (*IssueResult, error) {
	booking, err := s.bookings.GetByID(ctx, bookingID)
	if err != nil {
		return nil, err
	}

	p := qrpayload.Encode(booking.ID, booking.EventID)
	raw, err := p.String()
	if err != nil {
		return nil, err
	}

	if err := s.bookings.SavePayload(ctx, booking.ID, raw); err != nil {
		return nil, err
	}

	return &IssueResult{
		Payload: raw,
		Digest:  p.Hash,
	}, nil
}
