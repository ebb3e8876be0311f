package pdfrender

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/jung-kurt/gofpdf"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func touch(t *testing.T, dir, name string) {
	t.Helper()
	require.NoError(t, os.WriteFile(filepath.Join(dir, name), []byte("x"), 0o644))
}

func TestListRenderedPagesSortsNumerically(t *testing.T) {
	dir := t.TempDir()
	touch(t, dir, "page-10.jpg")
	touch(t, dir, "page-2.jpg")
	touch(t, dir, "page-1.jpg")

	pages, err := ListRenderedPages(dir, "page")
	require.NoError(t, err)
	require.Len(t, pages, 3)
	assert.Equal(t, "page-1.jpg", filepath.Base(pages[0]))
	assert.Equal(t, "page-2.jpg", filepath.Base(pages[1]))
	assert.Equal(t, "page-10.jpg", filepath.Base(pages[2]))
}

func TestListRenderedPagesHandlesZeroPadding(t *testing.T) {
	dir := t.TempDir()
	touch(t, dir, "page-01.jpg")
	touch(t, dir, "page-02.jpg")
	touch(t, dir, "page-10.jpg")

	pages, err := ListRenderedPages(dir, "page")
	require.NoError(t, err)
	require.Len(t, pages, 3)
	assert.Equal(t, "page-01.jpg", filepath.Base(pages[0]))
	assert.Equal(t, "page-10.jpg", filepath.Base(pages[2]))
}

func TestListRenderedPagesIgnoresForeignFiles(t *testing.T) {
	dir := t.TempDir()
	touch(t, dir, "page-1.jpg")
	touch(t, dir, "page-2.png")
	touch(t, dir, "cover-1.jpg")
	touch(t, dir, "page-x.jpg")
	touch(t, dir, "notes.txt")
	require.NoError(t, os.MkdirAll(filepath.Join(dir, "page-3.jpg"), 0o755))

	pages, err := ListRenderedPages(dir, "page")
	require.NoError(t, err)
	require.Len(t, pages, 2)
	assert.Equal(t, "page-1.jpg", filepath.Base(pages[0]))
	assert.Equal(t, "page-2.png", filepath.Base(pages[1]))
}

func TestListRenderedPagesMissingDir(t *testing.T) {
	_, err := ListRenderedPages(filepath.Join(t.TempDir(), "absent"), "page")
	assert.Error(t, err)
}

func TestRenderMissingBinary(t *testing.T) {
	r := NewCLIRenderer("/nonexistent/pdftocairo")
	_, err := r.Render(context.Background(), "in.pdf", t.TempDir(), Options{})
	assert.Error(t, err)
}

// End-to-end against a real rasterizer when the host has one.
func TestRenderProducesOrderedPages(t *testing.T) {
	renderer, err := Detect()
	if err != nil {
		t.Skip("no pdf rasterizer installed")
	}

	dir := t.TempDir()
	pdfPath := filepath.Join(dir, "sample.pdf")
	doc := gofpdf.New("P", "mm", "A4", "")
	for i := 1; i <= 3; i++ {
		doc.AddPage()
		doc.SetFont("Helvetica", "", 24)
		doc.Cell(40, 10, "hello")
	}
	require.NoError(t, doc.OutputFileAndClose(pdfPath))

	outDir := filepath.Join(dir, "pages")
	pages, err := renderer.Render(context.Background(), pdfPath, outDir, Options{
		Format:     "jpeg",
		PagePrefix: "page",
		ScaleTo:    256,
		Timeout:    time.Minute,
	})
	require.NoError(t, err)
	require.Len(t, pages, 3)
	for _, p := range pages {
		info, err := os.Stat(p)
		require.NoError(t, err)
		assert.Greater(t, info.Size(), int64(0))
	}
}
