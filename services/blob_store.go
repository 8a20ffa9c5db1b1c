package services

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/google/uuid"
)

// BlobStore uploads an opaque document and returns a URL the request can
// carry. The engine never looks inside FileURL.
type BlobStore interface {
	Upload(data []byte, contentType, ownerKey string) (string, error)
}

var blobExtensions = map[string]string{
	"application/pdf": ".pdf",
	"image/jpeg":      ".jpg",
	"image/png":       ".png",
}

// LocalBlobStore keeps uploads on disk under baseDir and serves them from
// baseURL (the /uploads static route).
type LocalBlobStore struct {
	baseDir string
	baseURL string
}

func NewLocalBlobStore(baseDir, baseURL string) *LocalBlobStore {
	return &LocalBlobStore{baseDir: baseDir, baseURL: baseURL}
}

func (s *LocalBlobStore) Upload(data []byte, contentType, ownerKey string) (string, error) {
	ext, ok := blobExtensions[contentType]
	if !ok {
		ext = ".pdf"
	}

	if err := os.MkdirAll(s.baseDir, os.ModePerm); err != nil {
		return "", fmt.Errorf("failed to create upload directory: %w", err)
	}

	name := fmt.Sprintf("%s_%s%s", ownerKey, uuid.New().String(), ext)
	if err := os.WriteFile(filepath.Join(s.baseDir, name), data, 0o644); err != nil {
		return "", fmt.Errorf("failed to store document: %w", err)
	}

	return s.baseURL + "/" + name, nil
}
