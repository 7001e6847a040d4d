package services

import (
	"bytes"
	"fmt"
	"image/jpeg"
	"os"
	"path/filepath"

	"github.com/disintegration/imaging"
	"github.com/google/uuid"
)

// ImageStore persists an uploaded image and returns its public URL and
// storage id.
type ImageStore interface {
	Upload(data []byte, folder string) (url string, id string, err error)
}

const (
	// Base directory for storing uploaded files
	uploadBaseDir = "uploads"
	// Base URL for serving files
	baseURL = "/uploads"
	// Maximum file size (10MB)
	maxFileSize = 10 * 1024 * 1024
	// Bounding box applied to every verification image
	maxImageDimension = 1000
	jpegQuality       = 85
)

// LocalImageStore writes normalized JPEGs under the uploads directory,
// which the server exposes as static files.
type LocalImageStore struct{}

// NewLocalImageStore creates a disk-backed image store.
func NewLocalImageStore() *LocalImageStore {
	return &LocalImageStore{}
}

// Upload decodes, normalizes, and saves the image. Images larger than the
// bounding box are scaled down with Lanczos resampling; smaller images are
// kept as-is. Output is always JPEG.
func (s *LocalImageStore) Upload(data []byte, folder string) (string, string, error) {
	if len(data) > maxFileSize {
		return "", "", fmt.Errorf("file too large, maximum size is %d bytes", maxFileSize)
	}

	img, err := imaging.Decode(bytes.NewReader(data))
	if err != nil {
		return "", "", fmt.Errorf("failed to decode image: %w", err)
	}

	bounds := img.Bounds()
	if bounds.Dx() > maxImageDimension || bounds.Dy() > maxImageDimension {
		img = imaging.Fit(img, maxImageDimension, maxImageDimension, imaging.Lanczos)
	}

	var buf bytes.Buffer
	if err := jpeg.Encode(&buf, img, &jpeg.Options{Quality: jpegQuality}); err != nil {
		return "", "", fmt.Errorf("failed to encode image: %w", err)
	}

	storageID := uuid.New().String()
	filename := storageID + ".jpg"
	dir := filepath.Join(uploadBaseDir, folder)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return "", "", fmt.Errorf("failed to create directory %s: %w", dir, err)
	}

	fullPath := filepath.Join(dir, filename)
	if err := os.WriteFile(fullPath, buf.Bytes(), 0644); err != nil {
		return "", "", fmt.Errorf("failed to write file %s: %w", fullPath, err)
	}

	url := fmt.Sprintf("%s/%s/%s", baseURL, folder, filename)
	return url, storageID, nil
}
