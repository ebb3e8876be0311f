package services

import (
	"context"
	"log"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/bookhaven/backend/internal/apperr"
	"github.com/bookhaven/backend/internal/models"
)

// GalleryRepository is the record-store boundary for gallery images
type GalleryRepository interface {
	InsertMany(images []models.GalleryImage) error
	FindByIDs(ids []uuid.UUID) ([]models.GalleryImage, error)
	DeleteByIDs(ids []uuid.UUID) error
	List() ([]models.GalleryImage, error)
}

// GalleryService handles batch image upload and bulk deletion
type GalleryService struct {
	repo    GalleryRepository
	assets  AssetStore
	scratch *ScratchStore
}

func NewGalleryService(repo GalleryRepository, assets AssetStore, scratch *ScratchStore) *GalleryService {
	return &GalleryService{repo: repo, assets: assets, scratch: scratch}
}

// UploadBatch uploads every scratch file to the remote store and persists
// one record per image. A failed upload aborts the batch; earlier uploads
// are not rolled back.
func (s *GalleryService) UploadBatch(ctx context.Context, imagePaths []string) ([]models.GalleryImage, error) {
	defer func() {
		for _, p := range imagePaths {
			s.scratch.Remove(p)
		}
	}()

	if len(imagePaths) == 0 {
		return nil, apperr.Validation("no files were uploaded")
	}

	images := make([]models.GalleryImage, 0, len(imagePaths))
	for i, p := range imagePaths {
		res, err := s.assets.Upload(ctx, p, "gallery", ResourceImage)
		if err != nil {
			return nil, apperr.RemoteStore("failed to upload gallery image", err)
		}
		log.Printf("gallery upload: stored asset %s", res.AssetID)
		images = append(images, models.GalleryImage{URL: res.URL, AssetID: res.AssetID, Position: i})
		s.scratch.Remove(p)
	}

	if err := s.repo.InsertMany(images); err != nil {
		return nil, apperr.Internal(err)
	}
	return images, nil
}

// BulkDelete removes the given records and releases one remote handle per
// image. Remote failures are logged, never propagated.
func (s *GalleryService) BulkDelete(ctx context.Context, ids []uuid.UUID) error {
	if len(ids) == 0 {
		return apperr.Validation("invalid or empty ids array")
	}

	images, err := s.repo.FindByIDs(ids)
	if err != nil {
		return apperr.Internal(err)
	}

	assetIDs := make([]string, 0, len(images))
	for _, img := range images {
		assetIDs = append(assetIDs, img.AssetID)
	}
	CleanupAssets(ctx, s.assets, ResourceImage, assetIDs)

	if err := s.repo.DeleteByIDs(ids); err != nil {
		return apperr.Internal(err)
	}
	return nil
}

func (s *GalleryService) List() ([]models.GalleryImage, error) {
	images, err := s.repo.List()
	if err != nil {
		return nil, apperr.Internal(err)
	}
	return images, nil
}

// gormGalleryRepository implements GalleryRepository on postgres
type gormGalleryRepository struct {
	db *gorm.DB
}

func NewGalleryRepository(db *gorm.DB) GalleryRepository {
	return &gormGalleryRepository{db: db}
}

func (r *gormGalleryRepository) InsertMany(images []models.GalleryImage) error {
	return r.db.Create(&images).Error
}

func (r *gormGalleryRepository) FindByIDs(ids []uuid.UUID) ([]models.GalleryImage, error) {
	var images []models.GalleryImage
	if err := r.db.Where("id IN ?", ids).Find(&images).Error; err != nil {
		return nil, err
	}
	return images, nil
}

func (r *gormGalleryRepository) DeleteByIDs(ids []uuid.UUID) error {
	return r.db.Where("id IN ?", ids).Delete(&models.GalleryImage{}).Error
}

func (r *gormGalleryRepository) List() ([]models.GalleryImage, error) {
	var images []models.GalleryImage
	if err := r.db.Order("created_at DESC").Find(&images).Error; err != nil {
		return nil, err
	}
	return images, nil
}
