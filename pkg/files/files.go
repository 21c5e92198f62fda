package files

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/mdraft/mdraft-cli/pkg/models"
	"gopkg.in/yaml.v3"
)

const (
	MdraftDir    = ".mdraft"
	SettingsFile = "settings.yaml"
	UploadsDir   = "uploads"
)

// InitProjectStructure creates the .mdraft directory layout in the
// current directory.
func InitProjectStructure() error {
	dirs := []string{
		MdraftDir,
		filepath.Join(MdraftDir, UploadsDir),
	}

	for _, dir := range dirs {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return fmt.Errorf("failed to create directory %s: %w", dir, err)
		}
	}

	return nil
}

// ReadSettings loads settings from .mdraft/settings.yaml. A missing or
// unparseable file yields the defaults, never an error: corrupt settings
// must not lock the user out of the editor.
func ReadSettings() *models.Settings {
	content, err := os.ReadFile(filepath.Join(MdraftDir, SettingsFile))
	if err != nil {
		return models.DefaultSettings()
	}

	settings := models.DefaultSettings()
	if err := yaml.Unmarshal(content, settings); err != nil {
		return models.DefaultSettings()
	}

	return settings
}

// WriteSettings persists settings to .mdraft/settings.yaml.
func WriteSettings(settings *models.Settings) error {
	if err := os.MkdirAll(MdraftDir, 0755); err != nil {
		return fmt.Errorf("failed to create settings directory: %w", err)
	}

	content, err := yaml.Marshal(settings)
	if err != nil {
		return fmt.Errorf("failed to marshal settings to YAML: %w", err)
	}

	path := filepath.Join(MdraftDir, SettingsFile)
	if err := os.WriteFile(path, content, 0644); err != nil {
		return fmt.Errorf("failed to write settings %s: %w", path, err)
	}

	return nil
}

// ReadDocument reads a markdown file from disk.
func ReadDocument(path string) (string, time.Time, error) {
	content, err := os.ReadFile(path)
	if err != nil {
		return "", time.Time{}, fmt.Errorf("failed to read document %s: %w", path, err)
	}

	info, err := os.Stat(path)
	if err != nil {
		return "", time.Time{}, fmt.Errorf("failed to stat document %s: %w", path, err)
	}

	return string(content), info.ModTime(), nil
}

// WriteDocument writes document text to disk, creating parent
// directories as needed.
func WriteDocument(path, text string) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("failed to create directory for document: %w", err)
	}

	if err := os.WriteFile(path, []byte(text), 0644); err != nil {
		return fmt.Errorf("failed to write document %s: %w", path, err)
	}

	return nil
}
