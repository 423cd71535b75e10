package repository

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/rakhadenny/scangate/internal/models"
	"github.com/rakhadenny/scangate/internal/verification"
)

type ScannerStore struct {
	db *gorm.DB
}

func NewScannerStore(db *gorm.DB) *ScannerStore {
	return &ScannerStore{db: db}
}

func (s *ScannerStore) GetByID(ctx context.Context, id uuid.UUID) (*models.Scanner, error) {
	var scanner models.Scanner
	err := s.db.WithContext(ctx).First(&scanner, "id = ?", id).Error
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, verification.ErrScannerNotFound
		}
		return nil, err
	}
	return &scanner, nil
}
