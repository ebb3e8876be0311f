package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Comment is a public comment on a book, optionally answered by an admin
type Comment struct {
	ID     uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	BookID uuid.UUID `gorm:"type:uuid;not null;index" json:"book_id"`
	Name   string    `gorm:"size:255" json:"name"`
	Email  string    `gorm:"size:255" json:"email"`
	Text   string    `gorm:"size:5000" json:"text"`
	Reply  *string   `gorm:"size:5000" json:"reply"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`

	Book *Book `gorm:"foreignKey:BookID" json:"-"`
}

func (c *Comment) BeforeCreate(tx *gorm.DB) error {
	if c.ID == uuid.Nil {
		c.ID = uuid.New()
	}
	return nil
}
