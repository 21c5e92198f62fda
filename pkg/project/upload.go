package project

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"regexp"
	"strings"
	"time"
)

// MaxImageSize caps uploads at 10MB.
const MaxImageSize = 10 << 20

// UploadsDir is where uploaded images land, relative to the project root.
const UploadsDir = ".mdraft/uploads"

var allowedImageExts = map[string]bool{
	".png":  true,
	".jpg":  true,
	".jpeg": true,
	".gif":  true,
	".webp": true,
	".svg":  true,
	".bmp":  true,
}

var unsafeNameChars = regexp.MustCompile(`[^a-zA-Z0-9._-]`)

// UploadResult describes a stored image.
type UploadResult struct {
	URL          string `json:"url"`
	Filename     string `json:"filename"`
	OriginalName string `json:"originalName"`
	Size         int64  `json:"size"`
}

// ValidateImage checks name and declared size against the upload policy.
func ValidateImage(originalName, contentType string, size int64) error {
	if size > MaxImageSize {
		return fmt.Errorf("image exceeds the %dMB limit", MaxImageSize>>20)
	}

	ext := strings.ToLower(filepath.Ext(originalName))
	if !allowedImageExts[ext] {
		return fmt.Errorf("unsupported image type %q", ext)
	}
	if contentType != "" && !strings.HasPrefix(contentType, "image/") {
		return fmt.Errorf("unsupported content type %q", contentType)
	}
	return nil
}

// SaveImage stores an uploaded image under the project uploads directory
// and returns where it can be fetched from.
func SaveImage(root, originalName, contentType string, size int64, r io.Reader) (*UploadResult, error) {
	if err := ValidateImage(originalName, contentType, size); err != nil {
		return nil, err
	}

	dir, err := ResolveWithinRoot(root, UploadsDir)
	if err != nil {
		return nil, err
	}
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create uploads directory: %w", err)
	}

	base := unsafeNameChars.ReplaceAllString(filepath.Base(originalName), "_")
	filename := fmt.Sprintf("%d-%s", time.Now().UnixMilli(), base)

	f, err := os.Create(filepath.Join(dir, filename))
	if err != nil {
		return nil, fmt.Errorf("failed to create upload file: %w", err)
	}
	defer f.Close()

	// LimitReader guards against a client lying about the declared size.
	written, err := io.Copy(f, io.LimitReader(r, MaxImageSize+1))
	if err != nil {
		return nil, fmt.Errorf("failed to store upload: %w", err)
	}
	if written > MaxImageSize {
		os.Remove(f.Name())
		return nil, fmt.Errorf("image exceeds the %dMB limit", MaxImageSize>>20)
	}

	return &UploadResult{
		URL:          "/uploads/" + filename,
		Filename:     filename,
		OriginalName: originalName,
		Size:         written,
	}, nil
}
