package services

import (
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/bookhaven/backend/internal/apperr"
	"github.com/bookhaven/backend/internal/models"
)

type VideoService struct {
	db *gorm.DB
}

func NewVideoService(db *gorm.DB) *VideoService {
	return &VideoService{db: db}
}

func (s *VideoService) Add(link string) (*models.Video, error) {
	if link == "" {
		return nil, apperr.Validation("link is required")
	}

	video := &models.Video{Link: link}
	if err := s.db.Create(video).Error; err != nil {
		return nil, apperr.Internal(err)
	}
	return video, nil
}

func (s *VideoService) List() ([]models.Video, error) {
	var videos []models.Video
	if err := s.db.Order("created_at DESC").Find(&videos).Error; err != nil {
		return nil, apperr.Internal(err)
	}
	return videos, nil
}

func (s *VideoService) Delete(id uuid.UUID) error {
	var video models.Video
	if err := s.db.First(&video, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return apperr.NotFound("video")
		}
		return apperr.Internal(err)
	}
	if err := s.db.Delete(&video).Error; err != nil {
		return apperr.Internal(err)
	}
	return nil
}
