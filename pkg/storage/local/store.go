package local

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/google/uuid"

	"github.com/marioskal/eshop-backend/pkg/config"
	"github.com/marioskal/eshop-backend/pkg/logger"
)

// ErrFileTooLarge signals that an upload exceeded the configured size cap.
var ErrFileTooLarge = errors.New("file exceeds maximum upload size")

// Descriptor captures where an uploaded file landed on disk.
type Descriptor struct {
	Filename    string
	SavedName   string
	FilePath    string
	ContentType string
	Extension   string
}

// Store persists uploaded files under a single directory, renaming each file
// to a generated name so original filenames never collide.
type Store struct {
	dir      string
	maxBytes int64
}

// NewStore prepares the upload directory and returns a disk-backed store.
func NewStore(ctx context.Context, cfg config.StorageConfig, logg *logger.Logger) (*Store, error) {
	if cfg.UploadDir == "" {
		return nil, errors.New("upload directory is required")
	}
	if err := os.MkdirAll(cfg.UploadDir, 0o755); err != nil {
		return nil, fmt.Errorf("creating upload dir %q: %w", cfg.UploadDir, err)
	}

	maxBytes := cfg.MaxUploadMB * 1024 * 1024
	if maxBytes <= 0 {
		maxBytes = 10 * 1024 * 1024
	}

	if logg != nil {
		logg.Info(ctx, "local file store initialized")
	}

	return &Store{dir: cfg.UploadDir, maxBytes: maxBytes}, nil
}

// Save streams the content to disk under a generated name and returns the
// descriptor the caller attaches to the owning entity.
func (s *Store) Save(ctx context.Context, filename, contentType string, content io.Reader) (*Descriptor, error) {
	if filename == "" {
		return nil, errors.New("filename is required")
	}

	ext := strings.ToLower(strings.TrimPrefix(filepath.Ext(filename), "."))
	savedName := uuid.NewString()
	if ext != "" {
		savedName = savedName + "." + ext
	}
	fullPath := filepath.Join(s.dir, savedName)

	dst, err := os.OpenFile(fullPath, os.O_WRONLY|os.O_CREATE|os.O_EXCL, 0o644)
	if err != nil {
		return nil, fmt.Errorf("creating file %q: %w", fullPath, err)
	}

	written, err := io.Copy(dst, io.LimitReader(content, s.maxBytes+1))
	if cerr := dst.Close(); cerr != nil && err == nil {
		err = cerr
	}
	if err == nil && written > s.maxBytes {
		err = ErrFileTooLarge
	}
	if err != nil {
		_ = os.Remove(fullPath)
		return nil, err
	}

	return &Descriptor{
		Filename:    filepath.Base(filename),
		SavedName:   savedName,
		FilePath:    fullPath,
		ContentType: contentType,
		Extension:   ext,
	}, nil
}

// Remove deletes a previously saved file, tolerating already-missing files.
func (s *Store) Remove(ctx context.Context, savedName string) error {
	if savedName == "" {
		return errors.New("saved name is required")
	}
	err := os.Remove(filepath.Join(s.dir, filepath.Base(savedName)))
	if err != nil && !errors.Is(err, os.ErrNotExist) {
		return err
	}
	return nil
}

// Open returns a reader over a previously saved file.
func (s *Store) Open(ctx context.Context, savedName string) (io.ReadCloser, error) {
	if savedName == "" {
		return nil, errors.New("saved name is required")
	}
	return os.Open(filepath.Join(s.dir, filepath.Base(savedName)))
}
