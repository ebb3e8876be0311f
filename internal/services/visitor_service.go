package services

import (
	"errors"

	"gorm.io/gorm"

	"github.com/bookhaven/backend/internal/apperr"
	"github.com/bookhaven/backend/internal/models"
)

type VisitorService struct {
	db *gorm.DB
}

func NewVisitorService(db *gorm.DB) *VisitorService {
	return &VisitorService{db: db}
}

// Increment bumps the single-row visit counter and returns the new count.
// The row is created on first hit.
func (s *VisitorService) Increment() (int64, error) {
	var visitor models.Visitor
	err := s.db.First(&visitor).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		visitor = models.Visitor{Count: 1}
		if err := s.db.Create(&visitor).Error; err != nil {
			return 0, apperr.Internal(err)
		}
		return visitor.Count, nil
	}
	if err != nil {
		return 0, apperr.Internal(err)
	}

	visitor.Count++
	if err := s.db.Save(&visitor).Error; err != nil {
		return 0, apperr.Internal(err)
	}
	return visitor.Count, nil
}
