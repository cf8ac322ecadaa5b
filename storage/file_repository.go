package storage

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// PageRepository is the storage contract the scraper writes raw page bodies
// through, keyed by run id and page index.
type PageRepository interface {
	SaveListPage(body []byte, index int, runID string) error
	SaveDetailPage(body []byte, index int, runID string) error
	GetListPages(runID string) ([][]byte, error)
	GetDetailPages(runID string) ([][]byte, error)
}

const (
	listPagePrefix   = "list_"
	detailPagePrefix = "detail_"
)

// FileRepository stores page bodies as flat files under <dir>/<run id>/.
// Index order is encoded in the zero-padded file names, so reading a run
// back returns pages in index order.
type FileRepository struct {
	dir string
}

func NewFileRepository(dir string) *FileRepository {
	return &FileRepository{dir: dir}
}

func (r *FileRepository) SaveListPage(body []byte, index int, runID string) error {
	return r.save(fmt.Sprintf("%s%04d.html", listPagePrefix, index), body, runID)
}

func (r *FileRepository) SaveDetailPage(body []byte, index int, runID string) error {
	return r.save(fmt.Sprintf("%s%04d.html", detailPagePrefix, index), body, runID)
}

func (r *FileRepository) GetListPages(runID string) ([][]byte, error) {
	return r.readAll(runID, listPagePrefix)
}

func (r *FileRepository) GetDetailPages(runID string) ([][]byte, error) {
	return r.readAll(runID, detailPagePrefix)
}

func (r *FileRepository) runDir(runID string) string {
	return filepath.Join(r.dir, runID)
}

func (r *FileRepository) save(name string, body []byte, runID string) error {
	dir := r.runDir(runID)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("create run directory: %w", err)
	}
	if err := os.WriteFile(filepath.Join(dir, name), body, 0o644); err != nil {
		return fmt.Errorf("write page file: %w", err)
	}
	return nil
}

func (r *FileRepository) readAll(runID, prefix string) ([][]byte, error) {
	dir := r.runDir(runID)
	// os.ReadDir sorts by file name; the zero-padded index makes that the
	// page index order.
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("read run directory: %w", err)
	}

	var pages [][]byte
	for _, entry := range entries {
		if entry.IsDir() || !strings.HasPrefix(entry.Name(), prefix) {
			continue
		}
		body, err := os.ReadFile(filepath.Join(dir, entry.Name()))
		if err != nil {
			return nil, fmt.Errorf("read page file: %w", err)
		}
		pages = append(pages, body)
	}
	return pages, nil
}
