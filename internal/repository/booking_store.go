package repository

import (
	"context"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/rakhadenny/scangate/internal/models"
	"github.com/rakhadenny/scangate/internal/verification"
)

type BookingStore struct {
	db *gorm.DB
}

func NewBookingStore(db *gorm.DB) *BookingStore {
	return &BookingStore{db: db}
}

func (s *BookingStore) GetByID(ctx context.Context, id uuid.UUID) (*models.Booking, error) {
	var booking models.Booking
	err := s.db.WithContext(ctx).
		Preload("Event").
		Preload("Payment").
		Preload("Items").
		Preload("User").
		First(&booking, "id = ?", id).Error
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, verification.ErrBookingNotFound
		}
		return nil, err
	}
	return &booking, nil
}

// MarkUsed is the exactly-once gate: the WHERE clause only matches an unused
// booking, so of any number of concurrent redemptions exactly one update
// sticks and the rest see zero rows affected.
func (s *BookingStore) MarkUsed(ctx context.Context, id uuid.UUID, at time.Time) error {
	result := s.db.WithContext(ctx).
		Model(&models.Booking{}).
		Where("id = ? AND is_used = ?", id, false).
		Updates(map[string]interface{}{"is_used": true, "used_at": at})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return verification.ErrAlreadyRedeemed
	}
	return nil
}

// ForceUse re-asserts is_used regardless of current state. Only the
// override path calls this.
func (s *BookingStore) ForceUse(ctx context.Context, id uuid.UUID, at time.Time) error {
	result := s.db.WithContext(ctx).
		Model(&models.Booking{}).
		Where("id = ?", id).
		Updates(map[string]interface{}{"is_used": true, "used_at": at})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return verification.ErrBookingNotFound
	}
	return nil
}

func (s *BookingStore) SavePayload(ctx context.Context, id uuid.UUID, payload string) error {
	result := s.db.WithContext(ctx).
		Model(&models.Booking{}).
		Where("id = ?", id).
		Update("qr_payload", payload)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return verification.ErrBookingNotFound
	}
	return nil
}
