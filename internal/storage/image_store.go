package storage

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"sync/atomic"
	"time"
)

// PublicPrefix is the URL prefix under which stored images are served
const PublicPrefix = "/img"

// ImageStore persists uploaded images under a single public root directory.
// Filenames are a base36 timestamp plus the original extension, so they
// never collide with each other or reveal the uploader's filename.
type ImageStore struct {
	root string
	seq  atomic.Int64 // breaks ties when two saves land on the same nanosecond
}

// NewImageStore creates the root directory if needed and returns the store
func NewImageStore(root string) (*ImageStore, error) {
	if err := os.MkdirAll(root, os.ModePerm); err != nil {
		return nil, fmt.Errorf("failed to create image directory %s: %w", root, err)
	}
	return &ImageStore{root: root}, nil
}

// Save writes the uploaded bytes under a generated filename and returns the
// filename together with its public path.
func (s *ImageStore) Save(src io.Reader, originalName string) (string, string, error) {
	ext := strings.ToLower(filepath.Ext(filepath.Base(originalName)))
	token := strconv.FormatInt(time.Now().UnixNano(), 36)
	fileName := fmt.Sprintf("%s%d%s", token, s.seq.Add(1), ext)

	dst, err := os.Create(filepath.Join(s.root, fileName))
	if err != nil {
		return "", "", fmt.Errorf("failed to create image file: %w", err)
	}
	defer dst.Close()

	if _, err := io.Copy(dst, src); err != nil {
		os.Remove(dst.Name()) // Attempt to clean up the partial write
		return "", "", fmt.Errorf("failed to save image file: %w", err)
	}

	return fileName, PublicPrefix + "/" + fileName, nil
}

// Delete removes a stored image. A missing file is not an error.
func (s *ImageStore) Delete(fileName string) error {
	err := os.Remove(filepath.Join(s.root, filepath.Base(fileName)))
	if err != nil && !errors.Is(err, os.ErrNotExist) {
		return fmt.Errorf("failed to delete image file %s: %w", fileName, err)
	}
	return nil
}

// Root returns the directory images are written to
func (s *ImageStore) Root() string {
	return s.root
}
