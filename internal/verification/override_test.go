package verification_test

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/rakhadenny/scangate/internal/models"
	"github.com/rakhadenny/scangate/internal/verification"
)

func overrideCapableScanner(id uuid.UUID) *models.Scanner {
	scanner := activeScanner(id)
	scanner.CanOverrideScans = true
	return scanner
}

func TestOverrideScan_ForcesEntryAndKeepsHistory(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	actorID := uuid.New()
	bookingID := uuid.New()
	eventID := uuid.New()

	prior := &models.ScanRecord{
		ScanID:     "SCAN-20240115-QQ7PX",
		BookingID:  &bookingID,
		EventID:    &eventID,
		ScannerID:  uuid.New(),
		Outcome:    verification.OutcomeAlreadyUsed,
		RawPayload: `{"bookingId":"x"}`,
		Digest:     "cafe",
	}

	f.scanners.On("GetByID", ctx, actorID).Return(overrideCapableScanner(actorID), nil)
	f.scans.On("GetByScanID", ctx, "SCAN-20240115-QQ7PX").Return(prior, nil)
	f.bookings.On("ForceUse", ctx, bookingID, mock.AnythingOfType("time.Time")).Return(nil)
	f.scans.On("MarkOverridden", ctx, "SCAN-20240115-QQ7PX", "gate supervisor approved", actorID).Return(nil)

	var appended *models.ScanRecord
	f.scans.On("Append", ctx, mock.AnythingOfType("*models.ScanRecord")).
		Run(func(args mock.Arguments) { appended = args.Get(1).(*models.ScanRecord) }).
		Return(nil)

	result, err := f.svc.OverrideScan(ctx, "SCAN-20240115-QQ7PX", "gate supervisor approved", actorID)

	require.NoError(t, err)
	assert.Regexp(t, scanIDPattern, result.NewScanID)
	assert.NotEqual(t, "SCAN-20240115-QQ7PX", result.NewScanID)
	assert.Contains(t, result.Message, "SCAN-20240115-QQ7PX")

	// The corrective record is a brand-new valid entry flagged as an
	// override; the original denial stays put with its own outcome.
	require.NotNil(t, appended)
	assert.Equal(t, verification.OutcomeValid, appended.Outcome)
	assert.True(t, appended.WasOverridden)
	assert.Equal(t, "gate supervisor approved", appended.OverrideReason)
	require.NotNil(t, appended.OverriddenByID)
	assert.Equal(t, actorID, *appended.OverriddenByID)
	require.NotNil(t, appended.BookingID)
	assert.Equal(t, bookingID, *appended.BookingID)
	assert.Equal(t, prior.RawPayload, appended.RawPayload)
}

func TestOverrideScan_PermissionDenied(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	actorID := uuid.New()

	f.scanners.On("GetByID", ctx, actorID).Return(activeScanner(actorID), nil)

	result, err := f.svc.OverrideScan(ctx, "SCAN-20240115-QQ7PX", "please", actorID)

	assert.ErrorIs(t, err, verification.ErrPermissionDenied)
	assert.Nil(t, result)
	f.scans.AssertNotCalled(t, "GetByScanID", mock.Anything, mock.Anything)
	f.bookings.AssertNotCalled(t, "ForceUse", mock.Anything, mock.Anything, mock.Anything)
}

func TestOverrideScan_ScanNotFound(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	actorID := uuid.New()

	f.scanners.On("GetByID", ctx, actorID).Return(overrideCapableScanner(actorID), nil)
	f.scans.On("GetByScanID", ctx, "SCAN-19990101-ZZZZZ").Return(nil, verification.ErrScanNotFound)

	result, err := f.svc.OverrideScan(ctx, "SCAN-19990101-ZZZZZ", "reason", actorID)

	assert.ErrorIs(t, err, verification.ErrScanNotFound)
	assert.Nil(t, result)
}

func TestOverrideScan_NoBookingReference(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	actorID := uuid.New()

	// A parse-failure record carries no booking reference and cannot be
	// overridden into an entry.
	prior := &models.ScanRecord{
		ScanID:    "SCAN-20240115-MM2AA",
		ScannerID: uuid.New(),
		Outcome:   verification.OutcomeInvalidQR,
	}

	f.scanners.On("GetByID", ctx, actorID).Return(overrideCapableScanner(actorID), nil)
	f.scans.On("GetByScanID", ctx, "SCAN-20240115-MM2AA").Return(prior, nil)

	result, err := f.svc.OverrideScan(ctx, "SCAN-20240115-MM2AA", "reason", actorID)

	assert.ErrorIs(t, err, verification.ErrNoBookingRef)
	assert.Nil(t, result)
	f.bookings.AssertNotCalled(t, "ForceUse", mock.Anything, mock.Anything, mock.Anything)
}

func TestOverrideScan_InactiveActor(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	actorID := uuid.New()

	scanner := overrideCapableScanner(actorID)
	scanner.IsActive = false
	f.scanners.On("GetByID", ctx, actorID).Return(scanner, nil)

	result, err := f.svc.OverrideScan(ctx, "SCAN-20240115-QQ7PX", "reason", actorID)

	assert.ErrorIs(t, err, verification.ErrScannerInactive)
	assert.Nil(t, result)
}
