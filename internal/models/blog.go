package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Blog represents a blog post with a single remote image
type Blog struct {
	ID           uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	Title        string    `gorm:"size:255" json:"title"`
	Description  string    `gorm:"size:10000" json:"description"`
	ImageURL     string    `gorm:"size:1024" json:"image_url"`
	ImageAssetID string    `gorm:"size:255" json:"image_asset_id"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (b *Blog) BeforeCreate(tx *gorm.DB) error {
	if b.ID == uuid.Nil {
		b.ID = uuid.New()
	}
	return nil
}
