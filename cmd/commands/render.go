package commands

import (
	"fmt"
	"os"

	"github.com/atotto/clipboard"
	"github.com/spf13/cobra"

	"github.com/mdraft/mdraft-cli/internal/cli"
	"github.com/mdraft/mdraft-cli/pkg/files"
	"github.com/mdraft/mdraft-cli/pkg/markdown"
)

var (
	renderOutput    string
	renderClipboard bool
)

// NewRenderCommand creates the render command
func NewRenderCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "render <file>",
		Short: "Render a markdown file to HTML",
		Long: `Renders a markdown file to HTML using the same pipeline as the
live preview (GitHub Flavored Markdown, raw HTML escaped).

Examples:
  # Print HTML to stdout
  mdraft render notes.md

  # Write HTML to a file
  mdraft render notes.md -o notes.html

  # Copy HTML to the clipboard
  mdraft render notes.md --clipboard`,
		Args: cobra.ExactArgs(1),
		RunE: runRender,
	}

	cmd.Flags().StringVarP(&renderOutput, "output", "o", "", "write HTML to file instead of stdout")
	cmd.Flags().BoolVarP(&renderClipboard, "clipboard", "c", false, "copy HTML to the clipboard")
	return cmd
}

func runRender(cmd *cobra.Command, args []string) error {
	text, _, err := files.ReadDocument(args[0])
	if err != nil {
		return fmt.Errorf("failed to read %s: %w", args[0], err)
	}

	html := markdown.RenderHTML(text)

	if renderClipboard {
		if err := clipboard.WriteAll(html); err != nil {
			return fmt.Errorf("failed to copy to clipboard: %w", err)
		}
		cli.PrintSuccess("HTML copied to clipboard")
		return nil
	}

	if renderOutput != "" {
		if err := os.WriteFile(renderOutput, []byte(html), 0644); err != nil {
			return fmt.Errorf("failed to write %s: %w", renderOutput, err)
		}
		cli.PrintSuccess("Wrote %s", renderOutput)
		return nil
	}

	fmt.Println(html)
	return nil
}
