package uploads

import (
	"errors"
	"fmt"
	"io"
	"mime/multipart"
	"os"
	"path/filepath"
	"strings"

	"github.com/google/uuid"
)

var (
	ErrUnsupportedType = errors.New("unsupported file type")
	ErrFileTooLarge    = errors.New("file too large")
)

// Store saves uploaded files under a single directory with random names so
// uploads can never collide or traverse paths.
type Store struct {
	dir        string
	maxBytes   int64
	extensions map[string]bool
}

func NewStore(dir string, maxBytes int64, allowedExtensions []string) (*Store, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("failed to create upload directory: %w", err)
	}

	extensions := make(map[string]bool, len(allowedExtensions))
	for _, ext := range allowedExtensions {
		extensions[strings.ToLower(strings.TrimPrefix(ext, "."))] = true
	}

	return &Store{dir: dir, maxBytes: maxBytes, extensions: extensions}, nil
}

// Allowed reports whether the filename carries a permitted extension.
func (s *Store) Allowed(filename string) bool {
	ext := strings.ToLower(strings.TrimPrefix(filepath.Ext(filename), "."))
	return ext != "" && s.extensions[ext]
}

// Save validates and writes the upload, returning the stored filename.
func (s *Store) Save(header *multipart.FileHeader) (string, error) {
	if !s.Allowed(header.Filename) {
		return "", ErrUnsupportedType
	}
	if header.Size > s.maxBytes {
		return "", ErrFileTooLarge
	}

	src, err := header.Open()
	if err != nil {
		return "", fmt.Errorf("failed to open upload: %w", err)
	}
	defer src.Close()

	ext := strings.ToLower(filepath.Ext(header.Filename))
	name := uuid.New().String() + ext

	dst, err := os.Create(filepath.Join(s.dir, name))
	if err != nil {
		return "", fmt.Errorf("failed to create upload file: %w", err)
	}
	defer dst.Close()

	// The size header is client-supplied; enforce the cap on actual bytes.
	written, err := io.Copy(dst, io.LimitReader(src, s.maxBytes+1))
	if err != nil {
		os.Remove(dst.Name())
		return "", fmt.Errorf("failed to write upload: %w", err)
	}
	if written > s.maxBytes {
		os.Remove(dst.Name())
		return "", ErrFileTooLarge
	}

	return name, nil
}

// Remove deletes a previously stored file. A missing file is not an error.
func (s *Store) Remove(name string) error {
	if name == "" {
		return nil
	}
	err := os.Remove(filepath.Join(s.dir, filepath.Base(name)))
	if err != nil && !errors.Is(err, os.ErrNotExist) {
		return fmt.Errorf("failed to remove upload: %w", err)
	}
	return nil
}

// Dir returns the directory files are stored in, for static serving.
func (s *Store) Dir() string { return s.dir }
