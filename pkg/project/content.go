package project

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"
)

// ErrOutsideRoot is returned for any path that resolves outside the
// project root. Such requests are denied, never silently served.
var ErrOutsideRoot = errors.New("path escapes project root")

// FileContent is the payload of a successful file read.
type FileContent struct {
	Content      string    `json:"content"`
	Path         string    `json:"path"`
	Size         int64     `json:"size"`
	LastModified time.Time `json:"lastModified"`
}

// ResolveWithinRoot resolves rel against root and verifies the result
// stays inside it.
func ResolveWithinRoot(root, rel string) (string, error) {
	absRoot, err := filepath.Abs(root)
	if err != nil {
		return "", fmt.Errorf("failed to resolve project root: %w", err)
	}

	full := filepath.Clean(filepath.Join(absRoot, filepath.FromSlash(rel)))
	if full != absRoot && !strings.HasPrefix(full, absRoot+string(filepath.Separator)) {
		return "", ErrOutsideRoot
	}
	return full, nil
}

// ReadFileContent reads a project file identified by its root-relative
// path.
func ReadFileContent(root, rel string) (*FileContent, error) {
	full, err := ResolveWithinRoot(root, rel)
	if err != nil {
		return nil, err
	}

	info, err := os.Stat(full)
	if err != nil {
		return nil, fmt.Errorf("failed to stat %s: %w", rel, err)
	}
	if info.IsDir() {
		return nil, fmt.Errorf("%s is a directory, not a file", rel)
	}

	content, err := os.ReadFile(full)
	if err != nil {
		return nil, fmt.Errorf("failed to read %s: %w", rel, err)
	}

	return &FileContent{
		Content:      string(content),
		Path:         filepath.ToSlash(rel),
		Size:         info.Size(),
		LastModified: info.ModTime(),
	}, nil
}
