package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// GalleryImage is a single remote image in the public gallery
type GalleryImage struct {
	ID       uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	URL      string    `gorm:"size:1024" json:"url"`
	AssetID  string    `gorm:"size:255" json:"asset_id"`
	Position int       `json:"position"` // optional ordering hint

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (g *GalleryImage) BeforeCreate(tx *gorm.DB) error {
	if g.ID == uuid.Nil {
		g.ID = uuid.New()
	}
	return nil
}
