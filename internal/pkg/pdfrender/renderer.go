package pdfrender

import (
	"bytes"
	"context"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"regexp"
	"sort"
	"strconv"
	"strings"
	"time"
)

// Options controls a single render run
type Options struct {
	Format     string        // output image format, defaults to jpeg
	PagePrefix string        // filename prefix for rendered pages, defaults to "page"
	ScaleTo    int           // longest side in pixels, 0 disables scaling
	Timeout    time.Duration // per-run timeout, defaults to 5 minutes
}

// Renderer rasterizes a PDF into one image file per page.
// The returned paths are ordered by page number.
type Renderer interface {
	Render(ctx context.Context, pdfPath, outputDir string, opts Options) ([]string, error)
}

// cliRenderer shells out to a poppler rasterizer (pdftocairo or pdftoppm)
type cliRenderer struct {
	binary string
}

// Detect probes the host for a usable rasterizer binary and returns a
// Renderer bound to it. pdftocairo is preferred, pdftoppm is the fallback.
// The probe runs once at startup; per-call branching is deliberately avoided.
func Detect() (Renderer, error) {
	for _, bin := range []string{"pdftocairo", "pdftoppm"} {
		if path, err := exec.LookPath(bin); err == nil {
			return &cliRenderer{binary: path}, nil
		}
	}
	return nil, fmt.Errorf("no PDF rasterizer found: install pdftocairo or pdftoppm (poppler-utils)")
}

// NewCLIRenderer returns a Renderer bound to an explicit binary path
func NewCLIRenderer(binary string) Renderer {
	return &cliRenderer{binary: binary}
}

func (r *cliRenderer) Render(ctx context.Context, pdfPath, outputDir string, opts Options) ([]string, error) {
	format := opts.Format
	if format == "" {
		format = "jpeg"
	}
	prefix := opts.PagePrefix
	if prefix == "" {
		prefix = "page"
	}
	timeout := opts.Timeout
	if timeout == 0 {
		timeout = 5 * time.Minute
	}

	if err := os.MkdirAll(outputDir, 0o755); err != nil {
		return nil, fmt.Errorf("failed to create output dir: %w", err)
	}

	args := []string{"-" + format}
	if opts.ScaleTo > 0 {
		args = append(args, "-scale-to", strconv.Itoa(opts.ScaleTo))
	}
	args = append(args, pdfPath, filepath.Join(outputDir, prefix))

	// Bounded run with process kill on expiry; a hung rasterizer must not
	// stall the request forever.
	ctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	cmd := exec.CommandContext(ctx, r.binary, args...)
	var stderr bytes.Buffer
	cmd.Stderr = &stderr

	if err := cmd.Run(); err != nil {
		return nil, fmt.Errorf("%s failed: %w: %s", filepath.Base(r.binary), err, stderr.String())
	}

	pages, err := ListRenderedPages(outputDir, prefix)
	if err != nil {
		return nil, err
	}
	if len(pages) == 0 {
		return nil, fmt.Errorf("%s produced no pages for %s", filepath.Base(r.binary), filepath.Base(pdfPath))
	}
	return pages, nil
}

// ListRenderedPages returns the rendered page files under dir matching
// prefix-N.ext, sorted by page number. Sorting is numeric: a lexicographic
// sort would put page-10 before page-2.
func ListRenderedPages(dir, prefix string) ([]string, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("failed to read output dir: %w", err)
	}

	pattern := regexp.MustCompile(`^` + regexp.QuoteMeta(prefix) + `-0*(\d+)\.(jpe?g|png|tiff?)$`)

	type page struct {
		num  int
		path string
	}
	var pages []page
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		m := pattern.FindStringSubmatch(strings.ToLower(entry.Name()))
		if m == nil {
			continue
		}
		num, err := strconv.Atoi(m[1])
		if err != nil {
			continue
		}
		pages = append(pages, page{num: num, path: filepath.Join(dir, entry.Name())})
	}

	sort.Slice(pages, func(i, j int) bool { return pages[i].num < pages[j].num })

	paths := make([]string, len(pages))
	for i, p := range pages {
		paths[i] = p.path
	}
	return paths, nil
}
