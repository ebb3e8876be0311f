package handlers

import (
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/bookhaven/backend/internal/apperr"
	"github.com/bookhaven/backend/internal/config"
	"github.com/bookhaven/backend/internal/services"
)

const maxGalleryBatch = 10

type GalleryHandler struct {
	galleryService *services.GalleryService
	scratch        *services.ScratchStore
	cfg            *config.Config
}

func NewGalleryHandler(galleryService *services.GalleryService, scratch *services.ScratchStore, cfg *config.Config) *GalleryHandler {
	return &GalleryHandler{galleryService: galleryService, scratch: scratch, cfg: cfg}
}

// UploadBatch handles multi-image gallery upload
// POST /admin/gallery
// Multipart form: gallery_images (repeated)
func (h *GalleryHandler) UploadBatch(c *gin.Context) {
	form, err := c.MultipartForm()
	if err != nil {
		respondError(c, apperr.Validation("failed to parse multipart form"))
		return
	}

	files := form.File["gallery_images"]
	if len(files) == 0 {
		respondError(c, apperr.Validation("no files were uploaded"))
		return
	}
	if len(files) > maxGalleryBatch {
		respondError(c, apperr.Validation("maximum 10 files per batch"))
		return
	}

	paths := make([]string, 0, len(files))
	for _, fh := range files {
		if err := validateUpload(fh, h.cfg.UploadMaxImageSize, false); err != nil {
			for _, p := range paths {
				h.scratch.Remove(p)
			}
			respondError(c, err)
			return
		}
		path, err := h.scratch.SaveUpload(fh, "gallery")
		if err != nil {
			for _, p := range paths {
				h.scratch.Remove(p)
			}
			respondError(c, apperr.Internal(err))
			return
		}
		paths = append(paths, path)
	}

	images, err := h.galleryService.UploadBatch(c.Request.Context(), paths)
	if err != nil {
		respondError(c, err)
		return
	}
	respondSuccess(c, "images uploaded successfully", images)
}

// List returns all gallery images
// GET /gallery
func (h *GalleryHandler) List(c *gin.Context) {
	images, err := h.galleryService.List()
	if err != nil {
		respondError(c, err)
		return
	}
	respondSuccess(c, "fetch successful", images)
}

type bulkDeleteRequest struct {
	IDs []string `json:"ids"`
}

// BulkDelete removes a list of gallery images and their remote assets
// DELETE /admin/gallery
func (h *GalleryHandler) BulkDelete(c *gin.Context) {
	var req bulkDeleteRequest
	if err := c.ShouldBindJSON(&req); err != nil || len(req.IDs) == 0 {
		respondError(c, apperr.Validation("invalid or empty ids array"))
		return
	}

	ids := make([]uuid.UUID, 0, len(req.IDs))
	for _, raw := range req.IDs {
		id, err := uuid.Parse(raw)
		if err != nil {
			respondError(c, apperr.Validation("invalid id: "+raw))
			return
		}
		ids = append(ids, id)
	}

	if err := h.galleryService.BulkDelete(c.Request.Context(), ids); err != nil {
		respondError(c, err)
		return
	}
	respondSuccess(c, "bulk delete successful", nil)
}
