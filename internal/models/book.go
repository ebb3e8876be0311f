package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// PageAsset is one rendered page of a book stored remotely.
// Slice order is page order.
type PageAsset struct {
	URL     string `json:"url"`
	AssetID string `json:"asset_id"`
}

// Book represents a book with a cover image, a source PDF and one
// rendered image per PDF page, all stored in the remote asset store.
// The AssetID fields are the remote deletion handles.
type Book struct {
	ID           uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	Title        string    `gorm:"size:255" json:"title"`
	Description  string    `gorm:"size:5000" json:"description"`
	CategoryName string    `gorm:"size:255;index" json:"category_name"`

	CoverURL     string `gorm:"size:1024" json:"cover_url"`
	CoverAssetID string `gorm:"size:255" json:"cover_asset_id"`

	PDFURL     string `gorm:"size:1024" json:"pdf_url"`
	PDFAssetID string `gorm:"size:255" json:"pdf_asset_id"`

	Pages []PageAsset `gorm:"type:jsonb;serializer:json" json:"pages"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (b *Book) BeforeCreate(tx *gorm.DB) error {
	if b.ID == uuid.Nil {
		b.ID = uuid.New()
	}
	return nil
}

// PageURLs returns the page URLs in page order
func (b *Book) PageURLs() []string {
	urls := make([]string, len(b.Pages))
	for i, p := range b.Pages {
		urls[i] = p.URL
	}
	return urls
}

// PageAssetIDs returns the remote handles of all pages in page order
func (b *Book) PageAssetIDs() []string {
	ids := make([]string, len(b.Pages))
	for i, p := range b.Pages {
		ids[i] = p.AssetID
	}
	return ids
}
