package cli

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/mdraft/mdraft-cli/pkg/files"
	"github.com/mdraft/mdraft-cli/pkg/models"
)

var (
	quiet   bool
	noColor bool
)

// SetQuiet suppresses non-error output.
func SetQuiet(q bool) { quiet = q }

// SetNoColor disables decorated output.
func SetNoColor(nc bool) { noColor = nc }

// CommandContext manages project validation and common command context.
// ProjectPath is the project root; the .mdraft directory lives inside it.
type CommandContext struct {
	ProjectPath string
	Settings    *models.Settings
	validated   bool
}

// NewCommandContext creates a new command context rooted at the current
// directory
func NewCommandContext() (*CommandContext, error) {
	cwd, err := os.Getwd()
	if err != nil {
		return nil, fmt.Errorf("failed to determine current directory: %w", err)
	}
	return &CommandContext{ProjectPath: cwd}, nil
}

// ValidateProject ensures the project is initialized
func (c *CommandContext) ValidateProject() error {
	if c.validated {
		return nil
	}

	if _, err := os.Stat(filepath.Join(c.ProjectPath, files.MdraftDir)); os.IsNotExist(err) {
		return fmt.Errorf("no .mdraft directory found. Run 'mdraft init' first")
	}

	c.validated = true
	return nil
}

// LoadSettings returns the project settings, loading them on first use.
// Missing or corrupt settings fall back to defaults.
func (c *CommandContext) LoadSettings() *models.Settings {
	if c.Settings == nil {
		c.Settings = files.ReadSettings()
	}
	return c.Settings
}

// PrintSuccess prints a success message unless quiet mode is enabled
func PrintSuccess(format string, args ...interface{}) {
	if !quiet {
		msg := fmt.Sprintf(format, args...)
		if !noColor {
			fmt.Printf("✓ %s\n", msg)
		} else {
			fmt.Printf("OK: %s\n", msg)
		}
	}
}

// PrintInfo prints an info message unless quiet mode is enabled
func PrintInfo(format string, args ...interface{}) {
	if !quiet {
		msg := fmt.Sprintf(format, args...)
		if !noColor {
			fmt.Printf("ℹ %s\n", msg)
		} else {
			fmt.Printf("INFO: %s\n", msg)
		}
	}
}

// PrintError prints an error message to stderr
func PrintError(format string, args ...interface{}) {
	msg := fmt.Sprintf(format, args...)
	if !noColor {
		fmt.Fprintf(os.Stderr, "✗ %s\n", msg)
	} else {
		fmt.Fprintf(os.Stderr, "ERROR: %s\n", msg)
	}
}
