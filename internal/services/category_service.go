package services

import (
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/bookhaven/backend/internal/apperr"
	"github.com/bookhaven/backend/internal/models"
)

type CategoryService struct {
	db *gorm.DB
}

func NewCategoryService(db *gorm.DB) *CategoryService {
	return &CategoryService{db: db}
}

func (s *CategoryService) Add(title string) (*models.Category, error) {
	if title == "" {
		return nil, apperr.Validation("category title is required")
	}

	category := &models.Category{Title: title}
	if err := s.db.Create(category).Error; err != nil {
		return nil, apperr.Internal(err)
	}
	return category, nil
}

func (s *CategoryService) Update(id uuid.UUID, title string) (*models.Category, error) {
	if title == "" {
		return nil, apperr.Validation("category title is required")
	}

	var category models.Category
	if err := s.db.First(&category, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperr.NotFound("category")
		}
		return nil, apperr.Internal(err)
	}

	category.Title = title
	if err := s.db.Save(&category).Error; err != nil {
		return nil, apperr.Internal(err)
	}
	return &category, nil
}

func (s *CategoryService) List() ([]models.Category, error) {
	var categories []models.Category
	if err := s.db.Order("created_at DESC").Find(&categories).Error; err != nil {
		return nil, apperr.Internal(err)
	}
	return categories, nil
}
