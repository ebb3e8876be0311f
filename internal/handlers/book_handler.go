package handlers

import (
	"mime/multipart"
	"path/filepath"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/bookhaven/backend/internal/apperr"
	"github.com/bookhaven/backend/internal/config"
	"github.com/bookhaven/backend/internal/services"
)

type BookHandler struct {
	bookService *services.BookService
	scratch     *services.ScratchStore
	cfg         *config.Config
}

func NewBookHandler(bookService *services.BookService, scratch *services.ScratchStore, cfg *config.Config) *BookHandler {
	return &BookHandler{bookService: bookService, scratch: scratch, cfg: cfg}
}

var imageExts = map[string]bool{".jpg": true, ".jpeg": true, ".png": true, ".webp": true}

// saveFormFile validates and writes one multipart file to scratch storage.
// A missing file is not an error: the service layer decides whether the
// field was required.
func (h *BookHandler) saveFormFile(c *gin.Context, field string, maxSize int64, wantPDF bool) (string, error) {
	fh, err := c.FormFile(field)
	if err != nil {
		return "", nil
	}
	if err := validateUpload(fh, maxSize, wantPDF); err != nil {
		return "", err
	}
	return h.scratch.SaveUpload(fh, field)
}

func validateUpload(fh *multipart.FileHeader, maxSize int64, wantPDF bool) error {
	if fh.Size > maxSize {
		return apperr.Validation("uploaded file is too large")
	}
	ext := strings.ToLower(filepath.Ext(fh.Filename))
	if wantPDF {
		if ext != ".pdf" {
			return apperr.Validation("a pdf file is required")
		}
		return nil
	}
	if !imageExts[ext] {
		return apperr.Validation("unsupported image format")
	}
	return nil
}

// Create handles book ingestion: cover image + pdf
// POST /admin/books
// Multipart form: title, description, category_name, book_image, book_pdf
func (h *BookHandler) Create(c *gin.Context) {
	coverPath, err := h.saveFormFile(c, "book_image", h.cfg.UploadMaxImageSize, false)
	if err != nil {
		respondError(c, err)
		return
	}
	pdfPath, err := h.saveFormFile(c, "book_pdf", h.cfg.UploadMaxPDFSize, true)
	if err != nil {
		h.scratch.Remove(coverPath)
		respondError(c, err)
		return
	}

	book, err := h.bookService.Create(c.Request.Context(), services.CreateBookInput{
		Title:        c.PostForm("title"),
		Description:  c.PostForm("description"),
		CategoryName: c.PostForm("category_name"),
		CoverPath:    coverPath,
		PDFPath:      pdfPath,
	})
	if err != nil {
		respondError(c, err)
		return
	}
	respondSuccess(c, "book uploaded successfully", book)
}

// Update handles partial updates, optionally with new cover and/or pdf
// PUT /admin/books/:id
func (h *BookHandler) Update(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		respondError(c, apperr.Validation("invalid book id"))
		return
	}

	coverPath, err := h.saveFormFile(c, "book_image", h.cfg.UploadMaxImageSize, false)
	if err != nil {
		respondError(c, err)
		return
	}
	pdfPath, err := h.saveFormFile(c, "book_pdf", h.cfg.UploadMaxPDFSize, true)
	if err != nil {
		h.scratch.Remove(coverPath)
		respondError(c, err)
		return
	}

	book, err := h.bookService.Update(c.Request.Context(), id, services.UpdateBookInput{
		Title:        c.PostForm("title"),
		Description:  c.PostForm("description"),
		CategoryName: c.PostForm("category_name"),
		NewCoverPath: coverPath,
		NewPDFPath:   pdfPath,
	})
	if err != nil {
		respondError(c, err)
		return
	}
	respondSuccess(c, "book updated successfully", book)
}

// Delete removes a book and releases its remote assets
// DELETE /admin/books/:id
func (h *BookHandler) Delete(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		respondError(c, apperr.Validation("invalid book id"))
		return
	}

	if err := h.bookService.Delete(c.Request.Context(), id); err != nil {
		respondError(c, err)
		return
	}
	respondSuccess(c, "book deleted successfully", nil)
}

// List returns all books
// GET /books
func (h *BookHandler) List(c *gin.Context) {
	books, err := h.bookService.List()
	if err != nil {
		respondError(c, err)
		return
	}
	respondSuccess(c, "fetch successful", books)
}

// ListByCategory returns all books in a category
// GET /books/category/:cat
func (h *BookHandler) ListByCategory(c *gin.Context) {
	books, err := h.bookService.ListByCategory(c.Param("cat"))
	if err != nil {
		respondError(c, err)
		return
	}
	respondSuccess(c, "fetch successful", books)
}

// GetByID returns a single book
// GET /books/:id
func (h *BookHandler) GetByID(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		respondError(c, apperr.Validation("invalid book id"))
		return
	}

	book, err := h.bookService.GetByID(id)
	if err != nil {
		respondError(c, err)
		return
	}
	respondSuccess(c, "fetch successful", book)
}

// Search returns books matching the query in title or description
// GET /books/search?s=
func (h *BookHandler) Search(c *gin.Context) {
	books, err := h.bookService.Search(c.Query("s"))
	if err != nil {
		respondError(c, err)
		return
	}
	respondSuccess(c, "fetch successful", books)
}
