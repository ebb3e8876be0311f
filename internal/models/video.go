package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Video is an external video link shown on the site
type Video struct {
	ID   uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	Link string    `gorm:"size:1024" json:"link"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (v *Video) BeforeCreate(tx *gorm.DB) error {
	if v.ID == uuid.Nil {
		v.ID = uuid.New()
	}
	return nil
}
