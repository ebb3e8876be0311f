package services

import (
	"fmt"
	"io"
	"mime/multipart"
	"os"
	"path/filepath"
	"strings"

	"github.com/google/uuid"
)

// ScratchStore holds uploaded files on local disk for the duration of one
// request. Names are collision-resistant so concurrent requests never clash;
// the user-supplied filename is only consulted for its extension.
type ScratchStore struct {
	basePath string
}

func NewScratchStore(basePath string) *ScratchStore {
	_ = os.MkdirAll(basePath, 0o755)
	_ = os.MkdirAll(filepath.Join(basePath, "pages"), 0o755)
	return &ScratchStore{basePath: basePath}
}

// SaveUpload writes a multipart file to scratch storage under
// <field>_<uuid><ext> and returns its absolute path
func (s *ScratchStore) SaveUpload(fh *multipart.FileHeader, field string) (string, error) {
	src, err := fh.Open()
	if err != nil {
		return "", fmt.Errorf("failed to open upload: %w", err)
	}
	defer src.Close()

	ext := strings.ToLower(filepath.Ext(fh.Filename))
	absPath := filepath.Join(s.basePath, fmt.Sprintf("%s_%s%s", field, uuid.New().String(), ext))

	dst, err := os.Create(absPath)
	if err != nil {
		return "", fmt.Errorf("failed to create scratch file: %w", err)
	}
	defer dst.Close()

	if _, err := io.Copy(dst, src); err != nil {
		_ = os.Remove(absPath)
		return "", fmt.Errorf("failed to write scratch file: %w", err)
	}
	return absPath, nil
}

// PageDir returns the per-document scratch directory for rendered pages,
// named after the generated pdf filename stem
func (s *ScratchStore) PageDir(pdfPath string) string {
	if pdfPath == "" {
		return ""
	}
	stem := strings.TrimSuffix(filepath.Base(pdfPath), filepath.Ext(pdfPath))
	return filepath.Join(s.basePath, "pages", stem)
}

// Remove deletes a scratch file best-effort
func (s *ScratchStore) Remove(path string) {
	if path == "" {
		return
	}
	_ = os.Remove(path)
}

// RemoveDir deletes a scratch directory tree best-effort
func (s *ScratchStore) RemoveDir(dir string) {
	if dir == "" {
		return
	}
	_ = os.RemoveAll(dir)
}
