package services

import (
	"context"
	"errors"
	"log"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/bookhaven/backend/internal/apperr"
	"github.com/bookhaven/backend/internal/models"
)

// BlogService is the single-image variant of the asset pipeline:
// upload image, persist record, release the old handle on replacement
type BlogService struct {
	db      *gorm.DB
	assets  AssetStore
	scratch *ScratchStore
}

func NewBlogService(db *gorm.DB, assets AssetStore, scratch *ScratchStore) *BlogService {
	return &BlogService{db: db, assets: assets, scratch: scratch}
}

func (s *BlogService) Create(ctx context.Context, title, description, imagePath string) (*models.Blog, error) {
	defer s.scratch.Remove(imagePath)

	if title == "" || description == "" || imagePath == "" {
		return nil, apperr.Validation("title, description and image are required")
	}

	res, err := s.assets.Upload(ctx, imagePath, "blogImage", ResourceImage)
	if err != nil {
		return nil, apperr.RemoteStore("failed to upload blog image", err)
	}
	log.Printf("blog create: stored image asset %s", res.AssetID)

	blog := &models.Blog{
		Title:        title,
		Description:  description,
		ImageURL:     res.URL,
		ImageAssetID: res.AssetID,
	}
	if err := s.db.Create(blog).Error; err != nil {
		return nil, apperr.Internal(err)
	}
	return blog, nil
}

// Update merges the supplied fields; a new image is uploaded and persisted
// before the old handle is released
func (s *BlogService) Update(ctx context.Context, id uuid.UUID, title, description, newImagePath string) (*models.Blog, error) {
	defer s.scratch.Remove(newImagePath)

	var blog models.Blog
	if err := s.db.First(&blog, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperr.NotFound("blog")
		}
		return nil, apperr.Internal(err)
	}

	if title != "" {
		blog.Title = title
	}
	if description != "" {
		blog.Description = description
	}

	var oldAssetID string
	if newImagePath != "" {
		res, err := s.assets.Upload(ctx, newImagePath, "blogImage", ResourceImage)
		if err != nil {
			return nil, apperr.RemoteStore("failed to upload blog image", err)
		}
		log.Printf("blog update: stored image asset %s", res.AssetID)
		oldAssetID = blog.ImageAssetID
		blog.ImageURL, blog.ImageAssetID = res.URL, res.AssetID
	}

	if err := s.db.Save(&blog).Error; err != nil {
		return nil, apperr.Internal(err)
	}

	if oldAssetID != "" {
		CleanupAssets(ctx, s.assets, ResourceImage, []string{oldAssetID})
	}
	return &blog, nil
}

func (s *BlogService) Delete(ctx context.Context, id uuid.UUID) (*models.Blog, error) {
	var blog models.Blog
	if err := s.db.First(&blog, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperr.NotFound("blog")
		}
		return nil, apperr.Internal(err)
	}

	if err := s.db.Delete(&blog).Error; err != nil {
		return nil, apperr.Internal(err)
	}

	if blog.ImageAssetID != "" {
		CleanupAssets(ctx, s.assets, ResourceImage, []string{blog.ImageAssetID})
	}
	return &blog, nil
}

func (s *BlogService) List() ([]models.Blog, error) {
	var blogs []models.Blog
	if err := s.db.Order("created_at DESC").Find(&blogs).Error; err != nil {
		return nil, apperr.Internal(err)
	}
	return blogs, nil
}
