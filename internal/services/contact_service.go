package services

import (
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/bookhaven/backend/internal/apperr"
	"github.com/bookhaven/backend/internal/models"
	"github.com/bookhaven/backend/pkg/validation"
)

type ContactService struct {
	db *gorm.DB
}

func NewContactService(db *gorm.DB) *ContactService {
	return &ContactService{db: db}
}

// Add stores a public contact submission
func (s *ContactService) Add(fullName, phoneNumber, email, message string) (*models.Contact, error) {
	if email == "" {
		return nil, apperr.Validation("email is required")
	}
	if !validation.ValidateEmail(email) {
		return nil, apperr.Validation("invalid email address")
	}

	contact := &models.Contact{
		FullName:    validation.SanitizeString(fullName),
		PhoneNumber: validation.SanitizeString(phoneNumber),
		Email:       validation.SanitizeString(email),
		Message:     validation.SanitizeString(message),
	}
	if err := s.db.Create(contact).Error; err != nil {
		return nil, apperr.Internal(err)
	}
	return contact, nil
}

func (s *ContactService) List() ([]models.Contact, error) {
	var contacts []models.Contact
	if err := s.db.Order("created_at DESC").Find(&contacts).Error; err != nil {
		return nil, apperr.Internal(err)
	}
	return contacts, nil
}

func (s *ContactService) Delete(id uuid.UUID) error {
	var contact models.Contact
	if err := s.db.First(&contact, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return apperr.NotFound("contact")
		}
		return apperr.Internal(err)
	}
	if err := s.db.Delete(&contact).Error; err != nil {
		return apperr.Internal(err)
	}
	return nil
}
