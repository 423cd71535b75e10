package verification_test

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/rakhadenny/scangate/internal/qrpayload"
	"github.com/rakhadenny/scangate/internal/verification"
)

func TestIssuePayload(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	bookingID := uuid.New()
	eventID := uuid.New()

	f.bookings.On("GetByID", ctx, bookingID).Return(capturedBooking(bookingID, eventID), nil)

	var saved string
	f.bookings.On("SavePayload", ctx, bookingID, mock.AnythingOfType("string")).
		Run(func(args mock.Arguments) { saved = args.Get(2).(string) }).
		Return(nil)

	result, err := f.svc.IssuePayload(ctx, bookingID)

	require.NoError(t, err)
	assert.Len(t, result.Digest, 64)
	assert.Equal(t, result.Payload, saved)

	// An issued payload must survive the scan path: decodable and signed.
	p, err := qrpayload.Decode(result.Payload)
	require.NoError(t, err)
	assert.Equal(t, bookingID, p.BookingID)
	assert.Equal(t, eventID, p.EventID)
	assert.True(t, qrpayload.NewVerifier().VerifySignature(p))
}

func TestIssuePayload_BookingNotFound(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	bookingID := uuid.New()

	f.bookings.On("GetByID", ctx, bookingID).Return(nil, verification.ErrBookingNotFound)

	result, err := f.svc.IssuePayload(ctx, bookingID)

	assert.ErrorIs(t, err, verification.ErrBookingNotFound)
	assert.Nil(t, result)
}
