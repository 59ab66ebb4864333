// Package upload stores admin-submitted images on local disk under
// generated names so uploads can never collide or traverse paths.
package upload

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/google/uuid"
)

var allowedExtensions = map[string]struct{}{
	".jpg":  {},
	".jpeg": {},
	".png":  {},
	".gif":  {},
	".webp": {},
}

type Store struct {
	dir     string
	maxSize int64
}

func NewStore(dir string, maxSize int64) (*Store, error) {
	if strings.TrimSpace(dir) == "" {
		return nil, fmt.Errorf("upload directory is required")
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("create upload directory: %w", err)
	}
	return &Store{dir: dir, maxSize: maxSize}, nil
}

// Save writes the uploaded content to disk and returns the stored filename.
// The original filename contributes only its extension.
func (s *Store) Save(originalName string, size int64, content io.Reader) (string, error) {
	if s.maxSize > 0 && size > s.maxSize {
		return "", fmt.Errorf("file exceeds maximum size of %d bytes", s.maxSize)
	}

	ext := strings.ToLower(filepath.Ext(filepath.Base(originalName)))
	if _, ok := allowedExtensions[ext]; !ok {
		return "", fmt.Errorf("file type %q is not allowed", ext)
	}

	name := uuid.NewString() + ext
	path := filepath.Join(s.dir, name)

	out, err := os.Create(path)
	if err != nil {
		return "", fmt.Errorf("create upload file: %w", err)
	}
	defer out.Close()

	limit := content
	if s.maxSize > 0 {
		limit = io.LimitReader(content, s.maxSize+1)
	}
	written, err := io.Copy(out, limit)
	if err != nil {
		os.Remove(path)
		return "", fmt.Errorf("write upload file: %w", err)
	}
	if s.maxSize > 0 && written > s.maxSize {
		os.Remove(path)
		return "", fmt.Errorf("file exceeds maximum size of %d bytes", s.maxSize)
	}

	return name, nil
}

func (s *Store) Dir() string { return s.dir }
