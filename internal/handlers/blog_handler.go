package handlers

import (
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/bookhaven/backend/internal/apperr"
	"github.com/bookhaven/backend/internal/config"
	"github.com/bookhaven/backend/internal/services"
)

type BlogHandler struct {
	blogService *services.BlogService
	scratch     *services.ScratchStore
	cfg         *config.Config
}

func NewBlogHandler(blogService *services.BlogService, scratch *services.ScratchStore, cfg *config.Config) *BlogHandler {
	return &BlogHandler{blogService: blogService, scratch: scratch, cfg: cfg}
}

func (h *BlogHandler) saveImage(c *gin.Context) (string, error) {
	fh, err := c.FormFile("blog_image")
	if err != nil {
		return "", nil
	}
	if err := validateUpload(fh, h.cfg.UploadMaxImageSize, false); err != nil {
		return "", err
	}
	return h.scratch.SaveUpload(fh, "blog_image")
}

// Create handles blog creation with a single image
// POST /admin/blogs
// Multipart form: title, description, blog_image
func (h *BlogHandler) Create(c *gin.Context) {
	imagePath, err := h.saveImage(c)
	if err != nil {
		respondError(c, err)
		return
	}

	blog, err := h.blogService.Create(c.Request.Context(), c.PostForm("title"), c.PostForm("description"), imagePath)
	if err != nil {
		respondError(c, err)
		return
	}
	respondSuccess(c, "blog uploaded successfully", blog)
}

// Update handles partial blog updates, optionally with a new image
// PUT /admin/blogs/:id
func (h *BlogHandler) Update(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		respondError(c, apperr.Validation("invalid blog id"))
		return
	}

	imagePath, err := h.saveImage(c)
	if err != nil {
		respondError(c, err)
		return
	}

	blog, err := h.blogService.Update(c.Request.Context(), id, c.PostForm("title"), c.PostForm("description"), imagePath)
	if err != nil {
		respondError(c, err)
		return
	}
	respondSuccess(c, "blog updated successfully", blog)
}

// Delete removes a blog and its remote image
// DELETE /admin/blogs/:id
func (h *BlogHandler) Delete(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		respondError(c, apperr.Validation("invalid blog id"))
		return
	}

	blog, err := h.blogService.Delete(c.Request.Context(), id)
	if err != nil {
		respondError(c, err)
		return
	}
	respondSuccess(c, "blog deleted successfully", blog)
}

// List returns all blogs
// GET /blogs
func (h *BlogHandler) List(c *gin.Context) {
	blogs, err := h.blogService.List()
	if err != nil {
		respondError(c, err)
		return
	}
	respondSuccess(c, "fetch successful", blogs)
}
