package repository

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/rakhadenny/scangate/internal/models"
	"github.com/rakhadenny/scangate/internal/verification"
)

// ScanStore persists the append-only audit log. Rows are only ever inserted,
// except for the override metadata set by MarkOverridden.
type ScanStore struct {
	db *gorm.DB
}

func NewScanStore(db *gorm.DB) *ScanStore {
	return &ScanStore{db: db}
}

func (s *ScanStore) Append(ctx context.Context, rec *models.ScanRecord) error {
	return s.db.WithContext(ctx).Create(rec).Error
}

func (s *ScanStore) GetByScanID(ctx context.Context, scanID string) (*models.ScanRecord, error) {
	var rec models.ScanRecord
	err := s.db.WithContext(ctx).First(&rec, "scan_id = ?", scanID).Error
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, verification.ErrScanNotFound
		}
		return nil, err
	}
	return &rec, nil
}

func (s *ScanStore) MarkOverridden(ctx context.Context, scanID string, reason string, by uuid.UUID) error {
	result := s.db.WithContext(ctx).
		Model(&models.ScanRecord{}).
		Where("scan_id = ?", scanID).
		Updates(map[string]interface{}{
			"was_overridden":   true,
			"override_reason":  reason,
			"overridden_by_id": by,
		})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return verification.ErrScanNotFound
	}
	return nil
}

func (s *ScanStore) FirstValid(ctx context.Context, bookingID uuid.UUID) (*models.ScanRecord, error) {
	var rec models.ScanRecord
	err := s.db.WithContext(ctx).
		Where("booking_id = ? AND outcome = ?", bookingID, verification.OutcomeValid).
		Order("created_at ASC").
		First(&rec).Error
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, verification.ErrScanNotFound
		}
		return nil, err
	}
	return &rec, nil
}

func (s *ScanStore) ListByEvent(ctx context.Context, eventID uuid.UUID, limit int) ([]models.ScanRecord, error) {
	var records []models.ScanRecord
	err := s.db.WithContext(ctx).
		Preload("Booking").
		Preload("Booking.User").
		Preload("Booking.Items").
		Preload("Scanner").
		Where("event_id = ?", eventID).
		Order("created_at DESC").
		Limit(limit).
		Find(&records).Error
	if err != nil {
		return nil, err
	}
	return records, nil
}
