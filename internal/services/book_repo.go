package services

import (
	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/bookhaven/backend/internal/models"
)

// gormBookRepository implements BookRepository on postgres
type gormBookRepository struct {
	db *gorm.DB
}

func NewBookRepository(db *gorm.DB) BookRepository {
	return &gormBookRepository{db: db}
}

func (r *gormBookRepository) Create(book *models.Book) error {
	return r.db.Create(book).Error
}

func (r *gormBookRepository) FindByID(id uuid.UUID) (*models.Book, error) {
	var book models.Book
	if err := r.db.First(&book, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &book, nil
}

func (r *gormBookRepository) Save(book *models.Book) error {
	return r.db.Save(book).Error
}

// Delete removes the record and returns it so the caller can release the
// remote assets it referenced
func (r *gormBookRepository) Delete(id uuid.UUID) (*models.Book, error) {
	var book models.Book
	if err := r.db.First(&book, "id = ?", id).Error; err != nil {
		return nil, err
	}
	if err := r.db.Delete(&book).Error; err != nil {
		return nil, err
	}
	return &book, nil
}

func (r *gormBookRepository) List() ([]models.Book, error) {
	var books []models.Book
	if err := r.db.Order("created_at DESC").Find(&books).Error; err != nil {
		return nil, err
	}
	return books, nil
}

func (r *gormBookRepository) ListByCategory(category string) ([]models.Book, error) {
	var books []models.Book
	if err := r.db.Where("category_name = ?", category).Order("created_at DESC").Find(&books).Error; err != nil {
		return nil, err
	}
	return books, nil
}

func (r *gormBookRepository) Search(query string) ([]models.Book, error) {
	var books []models.Book
	pattern := "%" + query + "%"
	if err := r.db.Where("title ILIKE ? OR description ILIKE ?", pattern, pattern).
		Order("created_at DESC").Find(&books).Error; err != nil {
		return nil, err
	}
	return books, nil
}
