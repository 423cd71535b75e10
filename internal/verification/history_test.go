package verification_test

import (
	"context"
	"encoding/json"
	"fmt"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rakhadenny/scangate/internal/models"
	"github.com/rakhadenny/scangate/internal/verification"
)

func TestListScanHistory_Enrichment(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	eventID := uuid.New()
	bookingID := uuid.New()

	cacheKey := fmt.Sprintf("scans:%s", eventID.String())
	f.redis.ExpectGet(cacheKey).RedisNil()

	booking := capturedBooking(bookingID, eventID)
	booking.Items = []models.BookingItem{
		{TicketType: "VIP", Quantity: 2},
		{TicketType: "Regular", Quantity: 1},
	}

	records := []models.ScanRecord{
		{
			ScanID:    "SCAN-20240116-XY12Z",
			BookingID: &bookingID,
			Booking:   booking,
			EventID:   &eventID,
			Scanner:   models.Scanner{Name: "Gate A"},
			Outcome:   verification.OutcomeValid,
			CreatedAt: time.Date(2024, 1, 16, 19, 5, 0, 0, time.UTC),
		},
		{
			// Parse failure: no booking to enrich from.
			ScanID:    "SCAN-20240116-AA9QK",
			EventID:   &eventID,
			Outcome:   verification.OutcomeInvalidQR,
			CreatedAt: time.Date(2024, 1, 16, 19, 1, 0, 0, time.UTC),
		},
	}

	f.scans.On("ListByEvent", ctx, eventID, 50).Return(records, nil)

	history, err := f.svc.ListScanHistory(ctx, eventID, 0)

	require.NoError(t, err)
	require.Len(t, history, 2)

	assert.Equal(t, "SCAN-20240116-XY12Z", history[0].ScanID)
	assert.Equal(t, "BK-1001", history[0].BookingNumber)
	assert.Equal(t, "Budi Santoso", history[0].AttendeeName)
	assert.Equal(t, "Gate A", history[0].ScannerName)
	assert.Equal(t, "2x VIP, 1x Regular", history[0].TicketSummary)

	// Missing references leave enrichment fields empty rather than erroring.
	assert.Equal(t, verification.OutcomeInvalidQR, history[1].Outcome)
	assert.Empty(t, history[1].BookingNumber)
	assert.Empty(t, history[1].AttendeeName)
}

func TestListScanHistory_CacheHit(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	eventID := uuid.New()

	cached := []verification.EnrichedScan{{ScanID: "SCAN-20240116-XY12Z", Outcome: verification.OutcomeValid}}
	raw, err := json.Marshal(cached)
	require.NoError(t, err)

	cacheKey := fmt.Sprintf("scans:%s", eventID.String())
	f.redis.ExpectGet(cacheKey).SetVal(string(raw))

	history, err := f.svc.ListScanHistory(ctx, eventID, 0)

	require.NoError(t, err)
	require.Len(t, history, 1)
	assert.Equal(t, "SCAN-20240116-XY12Z", history[0].ScanID)
	// Served straight from cache.
	f.scans.AssertNotCalled(t, "ListByEvent", ctx, eventID, 50)

	if err := f.redis.ExpectationsWereMet(); err != nil {
		t.Errorf("there were unfulfilled expectations: %s", err)
	}
}

func TestListScanHistory_CorruptCacheEntryDropped(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	eventID := uuid.New()

	cacheKey := fmt.Sprintf("scans:%s", eventID.String())
	f.redis.ExpectGet(cacheKey).SetVal("not-json{")
	f.redis.ExpectDel(cacheKey).SetVal(1)
	f.redis.ExpectSet(cacheKey, []byte("[]"), time.Minute).SetVal("OK")

	f.scans.On("ListByEvent", ctx, eventID, 50).Return([]models.ScanRecord{}, nil)

	history, err := f.svc.ListScanHistory(ctx, eventID, 0)

	require.NoError(t, err)
	assert.Empty(t, history)

	// The unreadable entry is deleted before the listing is refreshed.
	if err := f.redis.ExpectationsWereMet(); err != nil {
		t.Errorf("there were unfulfilled expectations: %s", err)
	}
}

func TestListScanHistory_ExplicitLimitBypassesCache(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	eventID := uuid.New()

	f.scans.On("ListByEvent", ctx, eventID, 10).Return([]models.ScanRecord{}, nil)

	history, err := f.svc.ListScanHistory(ctx, eventID, 10)

	require.NoError(t, err)
	assert.Empty(t, history)
}
