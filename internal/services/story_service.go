package services

import (
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/bookhaven/backend/internal/apperr"
	"github.com/bookhaven/backend/internal/models"
	"github.com/bookhaven/backend/pkg/validation"
)

type StoryService struct {
	db *gorm.DB
}

func NewStoryService(db *gorm.DB) *StoryService {
	return &StoryService{db: db}
}

// Add stores a public story submission
func (s *StoryService) Add(title, description, fullName, phone, email string) (*models.Story, error) {
	if title == "" || description == "" {
		return nil, apperr.Validation("story title and description are required")
	}

	story := &models.Story{
		Title:       validation.SanitizeString(title),
		Description: validation.SanitizeString(description),
		FullName:    validation.SanitizeString(fullName),
		Phone:       validation.SanitizeString(phone),
		Email:       validation.SanitizeString(email),
	}
	if err := s.db.Create(story).Error; err != nil {
		return nil, apperr.Internal(err)
	}
	return story, nil
}

func (s *StoryService) List() ([]models.Story, error) {
	var stories []models.Story
	if err := s.db.Order("created_at DESC").Find(&stories).Error; err != nil {
		return nil, apperr.Internal(err)
	}
	return stories, nil
}

func (s *StoryService) Delete(id uuid.UUID) (*models.Story, error) {
	var story models.Story
	if err := s.db.First(&story, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperr.NotFound("story")
		}
		return nil, apperr.Internal(err)
	}
	if err := s.db.Delete(&story).Error; err != nil {
		return nil, apperr.Internal(err)
	}
	return &story, nil
}
