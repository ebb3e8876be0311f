package services

import (
	"context"
	"errors"
	"log"
	"path/filepath"
	"strings"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/bookhaven/backend/internal/apperr"
	"github.com/bookhaven/backend/internal/config"
	"github.com/bookhaven/backend/internal/models"
	"github.com/bookhaven/backend/internal/pkg/pdfrender"
)

// BookRepository is the record-store boundary for books
type BookRepository interface {
	Create(book *models.Book) error
	FindByID(id uuid.UUID) (*models.Book, error)
	Save(book *models.Book) error
	Delete(id uuid.UUID) (*models.Book, error)
	List() ([]models.Book, error)
	ListByCategory(category string) ([]models.Book, error)
	Search(query string) ([]models.Book, error)
}

// BookService coordinates the book asset pipeline: intake, PDF rendering,
// per-page upload, record persistence and remote/local cleanup
type BookService struct {
	repo     BookRepository
	assets   AssetStore
	renderer pdfrender.Renderer
	scratch  *ScratchStore
	cfg      *config.Config
}

func NewBookService(repo BookRepository, assets AssetStore, renderer pdfrender.Renderer, scratch *ScratchStore, cfg *config.Config) *BookService {
	return &BookService{
		repo:     repo,
		assets:   assets,
		renderer: renderer,
		scratch:  scratch,
		cfg:      cfg,
	}
}

// CreateBookInput carries form fields plus scratch paths of the uploads
type CreateBookInput struct {
	Title        string
	Description  string
	CategoryName string
	CoverPath    string
	PDFPath      string
}

// UpdateBookInput carries the changed fields only; empty values keep the
// record's prior state
type UpdateBookInput struct {
	Title        string
	Description  string
	CategoryName string
	NewCoverPath string
	NewPDFPath   string
}

// Create runs the full ingestion pipeline. Remote uploads completed before
// a later failure are not rolled back; every stored handle is logged so an
// offline reconciliation pass stays possible.
func (s *BookService) Create(ctx context.Context, in CreateBookInput) (*models.Book, error) {
	// Scratch files never outlive the request, success or failure
	pageDir := s.scratch.PageDir(in.PDFPath)
	defer func() {
		s.scratch.Remove(in.CoverPath)
		s.scratch.Remove(in.PDFPath)
		s.scratch.RemoveDir(pageDir)
	}()

	if in.Title == "" || in.Description == "" || in.CategoryName == "" || in.CoverPath == "" || in.PDFPath == "" {
		return nil, apperr.Validation("please fill all fields: title, description, category, cover image and pdf are required")
	}

	book := &models.Book{
		Title:        in.Title,
		Description:  in.Description,
		CategoryName: in.CategoryName,
	}

	cover, err := s.assets.Upload(ctx, in.CoverPath, "books/covers", ResourceImage)
	if err != nil {
		return nil, apperr.RemoteStore("failed to upload cover image", err)
	}
	log.Printf("book create: stored cover asset %s", cover.AssetID)
	book.CoverURL, book.CoverAssetID = cover.URL, cover.AssetID
	s.scratch.Remove(in.CoverPath)

	pdf, err := s.assets.Upload(ctx, in.PDFPath, "books/pdf", ResourceRaw)
	if err != nil {
		return nil, apperr.RemoteStore("failed to upload pdf", err)
	}
	log.Printf("book create: stored pdf asset %s", pdf.AssetID)
	book.PDFURL, book.PDFAssetID = pdf.URL, pdf.AssetID

	pages, err := s.renderAndUploadPages(ctx, in.PDFPath, pageDir)
	if err != nil {
		return nil, err
	}
	book.Pages = pages

	if err := s.repo.Create(book); err != nil {
		return nil, apperr.Internal(err)
	}
	return book, nil
}

// renderAndUploadPages rasterizes the pdf into pageDir and uploads every
// page in page order. Local page files are removed as they are consumed.
func (s *BookService) renderAndUploadPages(ctx context.Context, pdfPath, pageDir string) ([]models.PageAsset, error) {
	paths, err := s.renderer.Render(ctx, pdfPath, pageDir, pdfrender.Options{
		Format:     "jpeg",
		PagePrefix: "page",
		ScaleTo:    s.cfg.RenderScaleTo,
		Timeout:    s.cfg.RenderTimeout,
	})
	if err != nil {
		return nil, apperr.Conversion("failed to convert pdf to images", err)
	}

	stem := strings.TrimSuffix(filepath.Base(pdfPath), filepath.Ext(pdfPath))
	folder := "books/pages/" + stem

	pages := make([]models.PageAsset, 0, len(paths))
	for _, p := range paths {
		res, err := s.assets.Upload(ctx, p, folder, ResourceImage)
		if err != nil {
			return nil, apperr.RemoteStore("failed to upload page image", err)
		}
		log.Printf("book pages: stored page asset %s", res.AssetID)
		pages = append(pages, models.PageAsset{URL: res.URL, AssetID: res.AssetID})
		s.scratch.Remove(p)
	}
	return pages, nil
}

// Update applies a partial update. New assets are uploaded and persisted
// first; old handles are released only after the record references the new
// ones, so a failed upload never orphans the previous assets.
func (s *BookService) Update(ctx context.Context, id uuid.UUID, in UpdateBookInput) (*models.Book, error) {
	pageDir := s.scratch.PageDir(in.NewPDFPath)
	defer func() {
		s.scratch.Remove(in.NewCoverPath)
		s.scratch.Remove(in.NewPDFPath)
		s.scratch.RemoveDir(pageDir)
	}()

	book, err := s.repo.FindByID(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperr.NotFound("book")
		}
		return nil, apperr.Internal(err)
	}

	if in.Title != "" {
		book.Title = in.Title
	}
	if in.Description != "" {
		book.Description = in.Description
	}
	if in.CategoryName != "" {
		book.CategoryName = in.CategoryName
	}

	var oldCoverID, oldPDFID string
	var oldPageIDs []string

	if in.NewCoverPath != "" {
		cover, err := s.assets.Upload(ctx, in.NewCoverPath, "books/covers", ResourceImage)
		if err != nil {
			return nil, apperr.RemoteStore("failed to upload cover image", err)
		}
		log.Printf("book update: stored cover asset %s", cover.AssetID)
		oldCoverID = book.CoverAssetID
		book.CoverURL, book.CoverAssetID = cover.URL, cover.AssetID
		s.scratch.Remove(in.NewCoverPath)
	}

	if in.NewPDFPath != "" {
		pdf, err := s.assets.Upload(ctx, in.NewPDFPath, "books/pdf", ResourceRaw)
		if err != nil {
			return nil, apperr.RemoteStore("failed to upload pdf", err)
		}
		log.Printf("book update: stored pdf asset %s", pdf.AssetID)

		pages, err := s.renderAndUploadPages(ctx, in.NewPDFPath, pageDir)
		if err != nil {
			return nil, err
		}

		oldPDFID = book.PDFAssetID
		oldPageIDs = book.PageAssetIDs()
		book.PDFURL, book.PDFAssetID = pdf.URL, pdf.AssetID
		book.Pages = pages
	}

	if err := s.repo.Save(book); err != nil {
		return nil, apperr.Internal(err)
	}

	// Record now references the new assets; release the replaced ones
	if oldCoverID != "" {
		CleanupAssets(ctx, s.assets, ResourceImage, []string{oldCoverID})
	}
	if oldPDFID != "" {
		CleanupAssets(ctx, s.assets, ResourceRaw, []string{oldPDFID})
	}
	if len(oldPageIDs) > 0 {
		CleanupAssets(ctx, s.assets, ResourceImage, oldPageIDs)
	}

	return book, nil
}

// Delete removes the record, then releases every remote asset it referenced.
// Remote cleanup failures are logged and never block the deletion.
func (s *BookService) Delete(ctx context.Context, id uuid.UUID) error {
	book, err := s.repo.Delete(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return apperr.NotFound("book")
		}
		return apperr.Internal(err)
	}

	if book.CoverAssetID != "" {
		CleanupAssets(ctx, s.assets, ResourceImage, []string{book.CoverAssetID})
	}
	if ids := book.PageAssetIDs(); len(ids) > 0 {
		CleanupAssets(ctx, s.assets, ResourceImage, ids)
	}
	if book.PDFAssetID != "" {
		CleanupAssets(ctx, s.assets, ResourceRaw, []string{book.PDFAssetID})
	}
	return nil
}

// GetByID returns a single book
func (s *BookService) GetByID(id uuid.UUID) (*models.Book, error) {
	book, err := s.repo.FindByID(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperr.NotFound("book")
		}
		return nil, apperr.Internal(err)
	}
	return book, nil
}

// List returns all books, newest first
func (s *BookService) List() ([]models.Book, error) {
	books, err := s.repo.List()
	if err != nil {
		return nil, apperr.Internal(err)
	}
	return books, nil
}

// ListByCategory returns all books with the given category, newest first
func (s *BookService) ListByCategory(category string) ([]models.Book, error) {
	books, err := s.repo.ListByCategory(category)
	if err != nil {
		return nil, apperr.Internal(err)
	}
	return books, nil
}

// Search returns books whose title or description contains the query,
// case-insensitive, newest first
func (s *BookService) Search(query string) ([]models.Book, error) {
	books, err := s.repo.Search(query)
	if err != nil {
		return nil, apperr.Internal(err)
	}
	return books, nil
}
