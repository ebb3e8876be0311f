package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Story is a reader-submitted story
type Story struct {
	ID          uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	Title       string    `gorm:"size:255" json:"title"`
	Description string    `gorm:"size:10000" json:"description"`
	FullName    string    `gorm:"size:255" json:"full_name"`
	Phone       string    `gorm:"size:64" json:"phone"`
	Email       string    `gorm:"size:255" json:"email"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (s *Story) BeforeCreate(tx *gorm.DB) error {
	if s.ID == uuid.Nil {
		s.ID = uuid.New()
	}
	return nil
}
