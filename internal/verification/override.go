package verification

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/rakhadenny/scangate/internal/models"
)

// OverrideScan lets a privileged scanner force entry despite a prior
// unfavorable verdict. The original record keeps its outcome and gains
// override metadata; a new valid record is appended alongside it, so the
// denial stays visible next to the corrective action.
func (s *Service) OverrideScan(ctx context.Context, scanID, reason string, actingScannerID uuid.UUID) (*OverrideResult, error) {
	actor, err := s.scanners.GetByID(ctx, actingScannerID)
	if err != nil {
		return nil, err
	}
	if !actor.IsActive {
		return nil, ErrScannerInactive
	}
	if !actor.CanOverrideScans {
		return nil, ErrPermissionDenied
	}

	prior, err := s.scans.GetByScanID(ctx, scanID)
	if err != nil {
		return nil, err
	}
	if prior.BookingID == nil {
		// A parse failure has nothing to force entry for.
		return nil, ErrNoBookingRef
	}

	now := s.now()
	if err := s.bookings.ForceUse(ctx, *prior.BookingID, now); err != nil {
		return nil, err
	}
	if err := s.scans.MarkOverridden(ctx, scanID, reason, actingScannerID); err != nil {
		return nil, err
	}

	rec := &models.ScanRecord{
		ScanID:         NewScanID(now),
		BookingID:      prior.BookingID,
		EventID:        prior.EventID,
		ScannerID:      actingScannerID,
		Outcome:        OutcomeValid,
		RawPayload:     prior.RawPayload,
		Digest:         prior.Digest,
		WasOverridden:  true,
		OverrideReason: reason,
		OverriddenByID: &actingScannerID,
	}
	if err := s.scans.Append(ctx, rec); err != nil {
		return nil, err
	}
	if prior.EventID != nil {
		s.invalidateHistory(ctx, *prior.EventID)
	}

	return &OverrideResult{
		NewScanID: rec.ScanID,
		Message:   fmt.Sprintf("Scan %s overridden; entry granted.", scanID),
	}, nil
}
