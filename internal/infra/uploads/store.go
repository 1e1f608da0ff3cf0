package uploads

import (
	"errors"
	"fmt"
	"io"
	"mime/multipart"
	"os"
	"path"
	"path/filepath"
	"strings"

	"github.com/google/uuid"
)

var ErrUnsupportedType = errors.New("unsupported file type")

var imageExts = map[string]bool{
	".jpg": true, ".jpeg": true, ".png": true, ".gif": true, ".webp": true, ".avif": true,
}

// Store keeps uploaded files below Dir, one sub directory per media kind.
type Store struct {
	Dir string
}

func New(dir string) *Store {
	if dir == "" {
		dir = "./uploads"
	}
	return &Store{Dir: dir}
}

// IsImage reports whether filename has an accepted image extension.
func IsImage(filename string) bool {
	return imageExts[strings.ToLower(filepath.Ext(filename))]
}

// Save copies the upload to "<sub>/<uuid><ext>" and returns that relative,
// slash separated path.
func (s *Store) Save(fh *multipart.FileHeader, sub string) (string, error) {
	ext := strings.ToLower(filepath.Ext(fh.Filename))
	if sub == "images" && !imageExts[ext] {
		return "", fmt.Errorf("%w: %q", ErrUnsupportedType, ext)
	}

	dir := filepath.Join(s.Dir, sub)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", fmt.Errorf("create upload dir: %w", err)
	}

	name := uuid.New().String() + ext
	src, err := fh.Open()
	if err != nil {
		return "", fmt.Errorf("open upload: %w", err)
	}
	defer src.Close()

	if err := writeFile(filepath.Join(dir, name), src); err != nil {
		return "", err
	}
	return path.Join(sub, name), nil
}

// writeFile copies src to target. A partly written target is removed.
func writeFile(target string, src io.Reader) error {
	dst, err := os.Create(target)
	if err != nil {
		return fmt.Errorf("create file: %w", err)
	}
	if _, err := io.Copy(dst, src); err != nil {
		dst.Close()
		_ = os.Remove(target)
		return fmt.Errorf("write file: %w", err)
	}
	if err := dst.Close(); err != nil {
		_ = os.Remove(target)
		return fmt.Errorf("close file: %w", err)
	}
	return nil
}

// Remove deletes a stored file. Missing files and absolute URLs are ignored.
func (s *Store) Remove(rel string) error {
	if rel == "" || strings.Contains(rel, "://") {
		return nil
	}
	clean := filepath.Clean(filepath.FromSlash(rel))
	if filepath.IsAbs(clean) || strings.HasPrefix(clean, "..") {
		return fmt.Errorf("refusing to remove %q outside the upload dir", rel)
	}
	err := os.Remove(filepath.Join(s.Dir, clean))
	if err != nil && !errors.Is(err, os.ErrNotExist) {
		return err
	}
	return nil
}
