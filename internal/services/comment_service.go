package services

import (
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/bookhaven/backend/internal/apperr"
	"github.com/bookhaven/backend/internal/models"
	"github.com/bookhaven/backend/pkg/validation"
)

type CommentService struct {
	db *gorm.DB
}

func NewCommentService(db *gorm.DB) *CommentService {
	return &CommentService{db: db}
}

// Add stores a public comment on a book
func (s *CommentService) Add(bookID uuid.UUID, name, email, text string) (*models.Comment, error) {
	if name == "" || email == "" || text == "" {
		return nil, apperr.Validation("name, email and comment are required")
	}
	if !validation.ValidateEmail(email) {
		return nil, apperr.Validation("invalid email address")
	}

	comment := &models.Comment{
		BookID: bookID,
		Name:   validation.SanitizeString(name),
		Email:  validation.SanitizeString(email),
		Text:   validation.SanitizeString(text),
	}
	if err := s.db.Create(comment).Error; err != nil {
		return nil, apperr.Internal(err)
	}
	return comment, nil
}

// ListByBook returns all comments on a book, newest first
func (s *CommentService) ListByBook(bookID uuid.UUID) ([]models.Comment, error) {
	var comments []models.Comment
	if err := s.db.Where("book_id = ?", bookID).Order("created_at DESC").Find(&comments).Error; err != nil {
		return nil, apperr.Internal(err)
	}
	return comments, nil
}

// ListAll returns every comment, newest first
func (s *CommentService) ListAll() ([]models.Comment, error) {
	var comments []models.Comment
	if err := s.db.Order("created_at DESC").Find(&comments).Error; err != nil {
		return nil, apperr.Internal(err)
	}
	return comments, nil
}

// Reply sets the admin reply on a comment
func (s *CommentService) Reply(id uuid.UUID, reply string) (*models.Comment, error) {
	if reply == "" {
		return nil, apperr.Validation("reply is required")
	}

	var comment models.Comment
	if err := s.db.First(&comment, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperr.NotFound("comment")
		}
		return nil, apperr.Internal(err)
	}

	comment.Reply = &reply
	if err := s.db.Save(&comment).Error; err != nil {
		return nil, apperr.Internal(err)
	}
	return &comment, nil
}

// Delete removes a comment
func (s *CommentService) Delete(id uuid.UUID) (*models.Comment, error) {
	var comment models.Comment
	if err := s.db.First(&comment, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperr.NotFound("comment")
		}
		return nil, apperr.Internal(err)
	}
	if err := s.db.Delete(&comment).Error; err != nil {
		return nil, apperr.Internal(err)
	}
	return &comment, nil
}
