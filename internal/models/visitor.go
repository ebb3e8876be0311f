package models

import "time"

// Visitor is the single-row site visit counter
type Visitor struct {
	ID    uint  `gorm:"primaryKey" json:"id"`
	Count int64 `json:"count"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
