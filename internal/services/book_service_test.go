package services

import (
	"context"
	"errors"
	"fmt"
	"path/filepath"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/bookhaven/backend/internal/apperr"
	"github.com/bookhaven/backend/internal/config"
	"github.com/bookhaven/backend/internal/models"
	"github.com/bookhaven/backend/internal/pkg/pdfrender"
)

type uploadCall struct {
	Path   string
	Folder string
	Kind   ResourceKind
}

type deleteCall struct {
	AssetID string
	Kind    ResourceKind
}

type fakeAssetStore struct {
	uploads    []uploadCall
	deletes    []deleteCall
	failUpload map[string]error // keyed by local path
	failDelete map[string]error // keyed by asset id
	seq        int
}

func newFakeAssetStore() *fakeAssetStore {
	return &fakeAssetStore{
		failUpload: map[string]error{},
		failDelete: map[string]error{},
	}
}

func (f *fakeAssetStore) Upload(ctx context.Context, localPath, folder string, kind ResourceKind) (UploadResult, error) {
	if err := f.failUpload[localPath]; err != nil {
		return UploadResult{}, err
	}
	f.seq++
	f.uploads = append(f.uploads, uploadCall{Path: localPath, Folder: folder, Kind: kind})
	id := fmt.Sprintf("%s/asset-%d", folder, f.seq)
	return UploadResult{URL: "https://assets.test/" + id, AssetID: id}, nil
}

func (f *fakeAssetStore) Delete(ctx context.Context, assetID string, kind ResourceKind) error {
	f.deletes = append(f.deletes, deleteCall{AssetID: assetID, Kind: kind})
	return f.failDelete[assetID]
}

func (f *fakeAssetStore) deletedIDs() []string {
	ids := make([]string, len(f.deletes))
	for i, d := range f.deletes {
		ids[i] = d.AssetID
	}
	return ids
}

type fakeRenderer struct {
	pageCount int
	err       error
	calls     int
}

func (f *fakeRenderer) Render(ctx context.Context, pdfPath, outputDir string, opts pdfrender.Options) ([]string, error) {
	f.calls++
	if f.err != nil {
		return nil, f.err
	}
	prefix := opts.PagePrefix
	if prefix == "" {
		prefix = "page"
	}
	paths := make([]string, f.pageCount)
	for i := range paths {
		paths[i] = filepath.Join(outputDir, fmt.Sprintf("%s-%d.jpg", prefix, i+1))
	}
	return paths, nil
}

type fakeBookRepo struct {
	books   map[uuid.UUID]*models.Book
	created int
	saved   int
}

func newFakeBookRepo() *fakeBookRepo {
	return &fakeBookRepo{books: map[uuid.UUID]*models.Book{}}
}

func (r *fakeBookRepo) Create(book *models.Book) error {
	if book.ID == uuid.Nil {
		book.ID = uuid.New()
	}
	cp := *book
	r.books[book.ID] = &cp
	r.created++
	return nil
}

func (r *fakeBookRepo) FindByID(id uuid.UUID) (*models.Book, error) {
	b, ok := r.books[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	cp := *b
	return &cp, nil
}

func (r *fakeBookRepo) Save(book *models.Book) error {
	cp := *book
	r.books[book.ID] = &cp
	r.saved++
	return nil
}

func (r *fakeBookRepo) Delete(id uuid.UUID) (*models.Book, error) {
	b, ok := r.books[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	delete(r.books, id)
	return b, nil
}

func (r *fakeBookRepo) List() ([]models.Book, error) {
	out := make([]models.Book, 0, len(r.books))
	for _, b := range r.books {
		out = append(out, *b)
	}
	return out, nil
}

func (r *fakeBookRepo) ListByCategory(category string) ([]models.Book, error) {
	var out []models.Book
	for _, b := range r.books {
		if b.CategoryName == category {
			out = append(out, *b)
		}
	}
	return out, nil
}

func (r *fakeBookRepo) Search(query string) ([]models.Book, error) {
	return r.List()
}

func newTestBookService(t *testing.T, repo BookRepository, assets AssetStore, renderer pdfrender.Renderer) *BookService {
	t.Helper()
	cfg := &config.Config{RenderScaleTo: 1024, RenderTimeout: time.Minute}
	return NewBookService(repo, assets, renderer, NewScratchStore(t.TempDir()), cfg)
}

func TestBookCreateUploadsCoverPDFAndPagesInOrder(t *testing.T) {
	repo := newFakeBookRepo()
	assets := newFakeAssetStore()
	renderer := &fakeRenderer{pageCount: 3}
	svc := newTestBookService(t, repo, assets, renderer)

	book, err := svc.Create(context.Background(), CreateBookInput{
		Title:        "Atlas",
		Description:  "maps of everywhere",
		CategoryName: "reference",
		CoverPath:    "/scratch/book_image_a.jpg",
		PDFPath:      "/scratch/book_pdf_a.pdf",
	})
	require.NoError(t, err)
	require.NotNil(t, book)

	require.Len(t, assets.uploads, 5)
	assert.Equal(t, "books/covers", assets.uploads[0].Folder)
	assert.Equal(t, ResourceImage, assets.uploads[0].Kind)
	assert.Equal(t, "books/pdf", assets.uploads[1].Folder)
	assert.Equal(t, ResourceRaw, assets.uploads[1].Kind)
	for i := 2; i < 5; i++ {
		assert.Equal(t, "books/pages/book_pdf_a", assets.uploads[i].Folder)
		assert.Equal(t, ResourceImage, assets.uploads[i].Kind)
	}

	require.Len(t, book.Pages, 3)
	for i, p := range book.Pages {
		assert.Equal(t, filepath.Base(assets.uploads[2+i].Path), fmt.Sprintf("page-%d.jpg", i+1))
		assert.NotEmpty(t, p.URL)
		assert.NotEmpty(t, p.AssetID)
	}

	assert.Equal(t, 1, repo.created)
	assert.NotEqual(t, uuid.Nil, book.ID)
	assert.Empty(t, assets.deletes)
}

func TestBookCreateValidatesBeforeAnyUpload(t *testing.T) {
	repo := newFakeBookRepo()
	assets := newFakeAssetStore()
	svc := newTestBookService(t, repo, assets, &fakeRenderer{pageCount: 1})

	_, err := svc.Create(context.Background(), CreateBookInput{
		Title:       "Atlas",
		Description: "maps",
		CoverPath:   "/scratch/book_image_a.jpg",
		PDFPath:     "/scratch/book_pdf_a.pdf",
	})
	require.Error(t, err)
	assert.True(t, apperr.IsKind(err, apperr.KindValidation))
	assert.Empty(t, assets.uploads)
	assert.Equal(t, 0, repo.created)
}

func TestBookCreateRendererFailureLeavesNoRecord(t *testing.T) {
	repo := newFakeBookRepo()
	assets := newFakeAssetStore()
	renderer := &fakeRenderer{err: errors.New("pdftocairo failed: corrupt xref")}
	svc := newTestBookService(t, repo, assets, renderer)

	_, err := svc.Create(context.Background(), CreateBookInput{
		Title:        "Atlas",
		Description:  "maps",
		CategoryName: "reference",
		CoverPath:    "/scratch/book_image_a.jpg",
		PDFPath:      "/scratch/book_pdf_a.pdf",
	})
	require.Error(t, err)
	assert.True(t, apperr.IsKind(err, apperr.KindConversion))
	assert.Equal(t, 0, repo.created)

	// cover and pdf went up before the renderer ran; no page uploads followed
	require.Len(t, assets.uploads, 2)
	assert.Equal(t, "books/covers", assets.uploads[0].Folder)
	assert.Equal(t, "books/pdf", assets.uploads[1].Folder)
}

func TestBookCreateCoverUploadFailure(t *testing.T) {
	repo := newFakeBookRepo()
	assets := newFakeAssetStore()
	assets.failUpload["/scratch/book_image_a.jpg"] = errors.New("connection reset")
	renderer := &fakeRenderer{pageCount: 2}
	svc := newTestBookService(t, repo, assets, renderer)

	_, err := svc.Create(context.Background(), CreateBookInput{
		Title:        "Atlas",
		Description:  "maps",
		CategoryName: "reference",
		CoverPath:    "/scratch/book_image_a.jpg",
		PDFPath:      "/scratch/book_pdf_a.pdf",
	})
	require.Error(t, err)
	assert.True(t, apperr.IsKind(err, apperr.KindRemoteStore))
	assert.Equal(t, 0, renderer.calls)
	assert.Equal(t, 0, repo.created)
}

func TestBookUpdateMetadataOnlyTouchesNoAssets(t *testing.T) {
	repo := newFakeBookRepo()
	assets := newFakeAssetStore()
	svc := newTestBookService(t, repo, assets, &fakeRenderer{pageCount: 1})

	id := uuid.New()
	repo.books[id] = &models.Book{
		ID:           id,
		Title:        "Atlas",
		CoverAssetID: "books/covers/old",
		PDFAssetID:   "books/pdf/old",
		Pages:        []models.PageAsset{{AssetID: "books/pages/a/p1"}},
	}

	book, err := svc.Update(context.Background(), id, UpdateBookInput{Title: "Atlas, Second Edition"})
	require.NoError(t, err)
	assert.Equal(t, "Atlas, Second Edition", book.Title)
	assert.Equal(t, "books/covers/old", book.CoverAssetID)
	assert.Empty(t, assets.uploads)
	assert.Empty(t, assets.deletes)
	assert.Equal(t, 1, repo.saved)
}

func TestBookUpdateNewCoverReleasesOnlyOldCover(t *testing.T) {
	repo := newFakeBookRepo()
	assets := newFakeAssetStore()
	svc := newTestBookService(t, repo, assets, &fakeRenderer{pageCount: 1})

	id := uuid.New()
	repo.books[id] = &models.Book{
		ID:           id,
		Title:        "Atlas",
		CoverAssetID: "books/covers/old",
		PDFAssetID:   "books/pdf/old",
		Pages:        []models.PageAsset{{AssetID: "books/pages/a/p1"}},
	}

	book, err := svc.Update(context.Background(), id, UpdateBookInput{NewCoverPath: "/scratch/book_image_b.png"})
	require.NoError(t, err)

	require.Len(t, assets.uploads, 1)
	assert.Equal(t, "books/covers", assets.uploads[0].Folder)
	assert.Equal(t, assets.deletedIDs(), []string{"books/covers/old"})
	assert.NotEqual(t, "books/covers/old", book.CoverAssetID)
	assert.Equal(t, "books/pdf/old", book.PDFAssetID)
}

func TestBookUpdateNewPDFReplacesPagesAndReleasesOldHandles(t *testing.T) {
	repo := newFakeBookRepo()
	assets := newFakeAssetStore()
	svc := newTestBookService(t, repo, assets, &fakeRenderer{pageCount: 2})

	id := uuid.New()
	repo.books[id] = &models.Book{
		ID:           id,
		Title:        "Atlas",
		CoverAssetID: "books/covers/old",
		PDFAssetID:   "books/pdf/old",
		Pages: []models.PageAsset{
			{AssetID: "books/pages/a/p1"},
			{AssetID: "books/pages/a/p2"},
			{AssetID: "books/pages/a/p3"},
		},
	}

	book, err := svc.Update(context.Background(), id, UpdateBookInput{NewPDFPath: "/scratch/book_pdf_b.pdf"})
	require.NoError(t, err)

	// new pdf plus two new page images
	require.Len(t, assets.uploads, 3)
	assert.Equal(t, "books/pdf", assets.uploads[0].Folder)
	assert.Equal(t, "books/pages/book_pdf_b", assets.uploads[1].Folder)
	require.Len(t, book.Pages, 2)

	assert.ElementsMatch(t, assets.deletedIDs(),
		[]string{"books/pdf/old", "books/pages/a/p1", "books/pages/a/p2", "books/pages/a/p3"})
	// cover untouched
	assert.Equal(t, "books/covers/old", book.CoverAssetID)
}

func TestBookUpdateUploadFailureKeepsOldAssets(t *testing.T) {
	repo := newFakeBookRepo()
	assets := newFakeAssetStore()
	assets.failUpload["/scratch/book_image_b.png"] = errors.New("bucket unavailable")
	svc := newTestBookService(t, repo, assets, &fakeRenderer{pageCount: 1})

	id := uuid.New()
	repo.books[id] = &models.Book{ID: id, Title: "Atlas", CoverAssetID: "books/covers/old"}

	_, err := svc.Update(context.Background(), id, UpdateBookInput{NewCoverPath: "/scratch/book_image_b.png"})
	require.Error(t, err)
	assert.True(t, apperr.IsKind(err, apperr.KindRemoteStore))
	assert.Empty(t, assets.deletes)
	assert.Equal(t, 0, repo.saved)
	assert.Equal(t, "books/covers/old", repo.books[id].CoverAssetID)
}

func TestBookUpdateNotFound(t *testing.T) {
	svc := newTestBookService(t, newFakeBookRepo(), newFakeAssetStore(), &fakeRenderer{pageCount: 1})

	_, err := svc.Update(context.Background(), uuid.New(), UpdateBookInput{Title: "x"})
	require.Error(t, err)
	assert.True(t, apperr.IsKind(err, apperr.KindNotFound))
}

func TestBookDeleteReleasesEveryHandle(t *testing.T) {
	repo := newFakeBookRepo()
	assets := newFakeAssetStore()
	svc := newTestBookService(t, repo, assets, &fakeRenderer{pageCount: 1})

	id := uuid.New()
	repo.books[id] = &models.Book{
		ID:           id,
		CoverAssetID: "books/covers/c",
		PDFAssetID:   "books/pdf/d",
		Pages: []models.PageAsset{
			{AssetID: "books/pages/a/p1"},
			{AssetID: "books/pages/a/p2"},
			{AssetID: "books/pages/a/p3"},
		},
	}

	require.NoError(t, svc.Delete(context.Background(), id))
	assert.Empty(t, repo.books)
	assert.ElementsMatch(t, assets.deletedIDs(),
		[]string{"books/covers/c", "books/pdf/d", "books/pages/a/p1", "books/pages/a/p2", "books/pages/a/p3"})
}

func TestBookDeleteContinuesPastFailedHandle(t *testing.T) {
	repo := newFakeBookRepo()
	assets := newFakeAssetStore()
	assets.failDelete["books/pages/a/p2"] = errors.New("access denied")
	svc := newTestBookService(t, repo, assets, &fakeRenderer{pageCount: 1})

	id := uuid.New()
	repo.books[id] = &models.Book{
		ID:           id,
		CoverAssetID: "books/covers/c",
		PDFAssetID:   "books/pdf/d",
		Pages: []models.PageAsset{
			{AssetID: "books/pages/a/p1"},
			{AssetID: "books/pages/a/p2"},
			{AssetID: "books/pages/a/p3"},
		},
	}

	// a failed remote deletion never surfaces to the caller
	require.NoError(t, svc.Delete(context.Background(), id))
	assert.Empty(t, repo.books)
	assert.ElementsMatch(t, assets.deletedIDs(),
		[]string{"books/covers/c", "books/pdf/d", "books/pages/a/p1", "books/pages/a/p2", "books/pages/a/p3"})
}

func TestBookDeleteNotFound(t *testing.T) {
	assets := newFakeAssetStore()
	svc := newTestBookService(t, newFakeBookRepo(), assets, &fakeRenderer{pageCount: 1})

	err := svc.Delete(context.Background(), uuid.New())
	require.Error(t, err)
	assert.True(t, apperr.IsKind(err, apperr.KindNotFound))
	assert.Empty(t, assets.deletes)
}

func TestCleanupAssetsReportsPerHandleOutcome(t *testing.T) {
	assets := newFakeAssetStore()
	assets.failDelete["b"] = errors.New("boom")

	results := CleanupAssets(context.Background(), assets, ResourceImage, []string{"a", "", "b", "c"})
	require.Len(t, results, 3)
	assert.NoError(t, results[0].Err)
	assert.Equal(t, "b", results[1].AssetID)
	assert.Error(t, results[1].Err)
	assert.NoError(t, results[2].Err)
	assert.Equal(t, []string{"a", "b", "c"}, assets.deletedIDs())
}
